package responder

import (
	"fmt"
	"log/slog"
	"time"

	"github.com/patrickmn/go-cache"
	"github.com/poiesic/gitkb/core"
)

// ContextRetriever supplies ranked context and the topic list.
// *search.Retriever satisfies it.
type ContextRetriever interface {
	GetContext(query string) core.RetrievalResult
	Topics() []string
}

// Responder turns queries into user-facing replies.
// It is safe for concurrent use.
type Responder struct {
	retriever ContextRetriever
	cache     *cache.Cache
	logger    *slog.Logger
}

// Option configures a Responder.
type Option func(*Responder) error

// WithLogger sets a custom logger.
// Default is slog.Default().
func WithLogger(logger *slog.Logger) Option {
	return func(r *Responder) error {
		if logger == nil {
			logger = slog.Default()
		}
		r.logger = logger
		return nil
	}
}

// WithResponseCache memoizes successful answers per exact query for ttl.
// Failures are never cached. Disabled by default.
func WithResponseCache(ttl time.Duration) Option {
	return func(r *Responder) error {
		if ttl <= 0 {
			return ErrInvalidCacheTTL
		}
		r.cache = cache.New(ttl, 2*ttl)
		return nil
	}
}

// NewResponder creates a responder backed by retriever.
func NewResponder(retriever ContextRetriever, opts ...Option) (*Responder, error) {
	if retriever == nil {
		return nil, ErrRetrieverRequired
	}

	r := &Responder{
		retriever: retriever,
		logger:    slog.Default(),
	}

	// Apply options
	for _, opt := range opts {
		if err := opt(r); err != nil {
			return nil, err
		}
	}

	return r, nil
}

// GenerateResponse answers query. It never panics: any fault while retrieving
// or composing is logged and returned as a Failure.
func (r *Responder) GenerateResponse(query string) (result Result) {
	defer func() {
		if rec := recover(); rec != nil {
			err := fmt.Errorf("%w: %v", ErrResponseFailed, rec)
			r.logger.Error("error generating response", "query", query, "err", err)
			result = Failure{Fault: err}
		}
	}()

	if r.cache != nil {
		if cached, ok := r.cache.Get(query); ok {
			return cached.(Answer)
		}
	}

	result = r.generate(query)

	if answer, ok := result.(Answer); ok && r.cache != nil {
		r.cache.SetDefault(query, answer)
	}
	return result
}

func (r *Responder) generate(query string) Result {
	retrieved := r.retriever.GetContext(query)

	if !retrieved.HasContext {
		r.logger.Debug("no context for query, using general response", "query", query)
		return Answer{Text: GeneralResponse(query), Context: retrieved}
	}

	text, err := Compose(retrieved)
	if err != nil {
		r.logger.Error("error composing response", "query", query, "err", err)
		return Failure{Fault: err}
	}

	r.logger.Debug("composed response", "query", query, "top_topic", retrieved.Items[0].Topic)
	return Answer{Text: text, Context: retrieved}
}

// AvailableTopics returns the knowledge base topics in their fixed order.
func (r *Responder) AvailableTopics() []string {
	return r.retriever.Topics()
}

// CachedResponses returns how many answers are currently memoized.
func (r *Responder) CachedResponses() int {
	if r.cache == nil {
		return 0
	}
	return r.cache.ItemCount()
}
