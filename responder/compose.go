package responder

import (
	"fmt"
	"strings"

	"github.com/poiesic/gitkb/core"
)

// Compose builds the reply for a retrieval result that has context: the first
// item's content, the second item's content when present, and the closing
// prompt, separated by blank lines.
func Compose(result core.RetrievalResult) (string, error) {
	if !result.HasContext || len(result.Items) == 0 {
		return "", ErrNoContext
	}

	n := min(len(result.Items), maxComposedItems)

	var sb strings.Builder
	for i, item := range result.Items[:n] {
		if strings.TrimSpace(item.Content) == "" {
			return "", fmt.Errorf("%w: item %d (%q) has no content", ErrMalformedContext, i, item.Topic)
		}
		if i > 0 {
			sb.WriteString(paragraphSeparator)
		}
		sb.WriteString(item.Content)
	}
	sb.WriteString(paragraphSeparator)
	sb.WriteString(ClosingPrompt)

	return sb.String(), nil
}

// GeneralResponse picks a canned reply for a query without context.
// Keywords are matched case-insensitively as substrings; the first match wins:
// "help" or "start" gives OnboardingMessage, "thank" gives ThanksMessage, and
// anything else gives NoInformationMessage.
func GeneralResponse(query string) string {
	q := strings.ToLower(query)

	switch {
	case strings.Contains(q, "help") || strings.Contains(q, "start"):
		return OnboardingMessage
	case strings.Contains(q, "thank"):
		return ThanksMessage
	default:
		return NoInformationMessage
	}
}
