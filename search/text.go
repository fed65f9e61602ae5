package search

import "strings"

// edgePunctuation is stripped from both ends of every word before comparison.
const edgePunctuation = ".,!?;:'\"-()[]{}"

// tokenSet is the set of distinct normalized words in a text.
type tokenSet map[string]struct{}

// tokenize splits text on whitespace, lowercases, and trims edge punctuation.
// Words that are empty after trimming are dropped.
func tokenize(text string) tokenSet {
	words := strings.Fields(text)
	set := make(tokenSet, len(words))

	for _, word := range words {
		cleaned := strings.ToLower(strings.Trim(word, edgePunctuation))
		if cleaned != "" {
			set[cleaned] = struct{}{}
		}
	}

	return set
}

// Tokens returns the distinct normalized words of text in first-seen order.
func Tokens(text string) []string {
	words := strings.Fields(text)
	seen := make(tokenSet, len(words))
	out := make([]string, 0, len(words))
	for _, word := range words {
		cleaned := strings.ToLower(strings.Trim(word, edgePunctuation))
		if cleaned == "" {
			continue
		}
		if _, ok := seen[cleaned]; ok {
			continue
		}
		seen[cleaned] = struct{}{}
		out = append(out, cleaned)
	}
	return out
}

// jaccard returns |a∩b| / |a∪b|, or 0 when both sets are empty.
func jaccard(a, b tokenSet) float64 {
	if len(a) > len(b) {
		a, b = b, a
	}

	intersection := 0
	for word := range a {
		if _, ok := b[word]; ok {
			intersection++
		}
	}

	union := len(a) + len(b) - intersection
	if union == 0 {
		return 0
	}
	return float64(intersection) / float64(union)
}

// Similarity scores how lexically close query is to text using the Jaccard
// coefficient over normalized word sets. The result is in [0, 1].
func Similarity(query, text string) float64 {
	return jaccard(tokenize(query), tokenize(text))
}
