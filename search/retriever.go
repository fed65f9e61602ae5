package search

import (
	"cmp"
	"log/slog"
	"slices"

	"github.com/poiesic/gitkb/core"
	"github.com/poiesic/gitkb/knowledge"
)

// DefaultTopK is the number of entries GetContext keeps before dropping zero scores.
const DefaultTopK = 3

// Retriever ranks knowledge entries against a query by lexical similarity.
// It holds no mutable state and is safe for concurrent use.
type Retriever struct {
	set    *knowledge.Set
	tokens []tokenSet // tokens[i] is the token set of entry i's Text()
	topK   int
	logger *slog.Logger
}

// Option configures a Retriever.
type Option func(*Retriever) error

// WithTopK sets the number of entries GetContext considers.
// Default is DefaultTopK.
func WithTopK(k int) Option {
	return func(r *Retriever) error {
		if k < 1 {
			return ErrInvalidTopK
		}
		r.topK = k
		return nil
	}
}

// WithLogger sets a custom logger.
// Default is slog.Default().
func WithLogger(logger *slog.Logger) Option {
	return func(r *Retriever) error {
		if logger == nil {
			logger = slog.Default()
		}
		r.logger = logger
		return nil
	}
}

// NewRetriever creates a retriever over set.
func NewRetriever(set *knowledge.Set, opts ...Option) (*Retriever, error) {
	if set == nil {
		return nil, ErrKnowledgeSetRequired
	}

	r := &Retriever{
		set:    set,
		topK:   DefaultTopK,
		logger: slog.Default(),
	}

	// Apply options
	for _, opt := range opts {
		if err := opt(r); err != nil {
			return nil, err
		}
	}

	r.tokens = make([]tokenSet, set.Len())
	for i, e := range set.All() {
		r.tokens[i] = tokenize(e.Text())
	}

	return r, nil
}

// TopK returns the configured number of entries GetContext considers.
func (r *Retriever) TopK() int {
	return r.topK
}

// Knowledge returns the set the retriever ranks.
func (r *Retriever) Knowledge() *knowledge.Set {
	return r.set
}

// Rank scores every entry against query and returns at most topK of them with
// a positive score, highest first. Ties keep knowledge-set order.
// The list is truncated to topK before zero scores are dropped.
func (r *Retriever) Rank(query string, topK int) []core.ScoredEntry {
	return r.RankWithMonitor(query, topK, nil)
}

// RankWithMonitor is Rank with monitoring.
// The monitor receives callbacks at each stage of the ranking process.
func (r *Retriever) RankWithMonitor(query string, topK int, monitor Monitor) []core.ScoredEntry {
	// Use noop monitor if none provided
	if monitor == nil {
		monitor = &noopMonitor{}
	}

	monitor.Start(query, Tokens(query))

	if topK <= 0 {
		results := []core.ScoredEntry{}
		monitor.AfterTruncate(results)
		monitor.Finish(results)
		return results
	}

	queryTokens := tokenize(query)
	scored := make([]core.ScoredEntry, 0, r.set.Len())
	for i, e := range r.set.All() {
		score := jaccard(queryTokens, r.tokens[i])
		monitor.EntryScored(e, score)
		scored = append(scored, core.ScoredEntry{Entry: e, Score: score})
	}

	slices.SortStableFunc(scored, func(a, b core.ScoredEntry) int {
		return cmp.Compare(b.Score, a.Score)
	})

	if len(scored) > topK {
		scored = scored[:topK]
	}
	monitor.AfterTruncate(scored)

	results := make([]core.ScoredEntry, 0, len(scored))
	for _, s := range scored {
		if s.Score > 0 {
			results = append(results, s)
		}
	}

	monitor.Finish(results)
	return results
}

// GetContext ranks query with the configured top-K and packages the result
// for the responder.
func (r *Retriever) GetContext(query string) core.RetrievalResult {
	ranked := r.Rank(query, r.topK)

	items := make([]core.ContextItem, len(ranked))
	for i, s := range ranked {
		items[i] = core.ContextItem{
			Topic:   s.Entry.Topic,
			Content: s.Entry.Content,
			Score:   s.Score,
		}
	}

	r.logger.Debug("retrieved context", "query", query, "items", len(items))

	return core.RetrievalResult{
		HasContext: len(items) > 0,
		Items:      items,
	}
}

// Topics returns every topic in knowledge-set order.
func (r *Retriever) Topics() []string {
	return r.set.Topics()
}
