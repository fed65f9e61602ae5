package batch

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"runtime"
	"sync"

	"github.com/panjf2000/ants/v2"
	"github.com/poiesic/gitkb/responder"
)

// Answerer produces a result for one query. *responder.Responder satisfies it.
type Answerer interface {
	GenerateResponse(query string) responder.Result
}

// Outcome pairs a query with its result.
type Outcome struct {
	Query  string
	Result responder.Result
}

// Runner answers many queries concurrently on a bounded worker pool.
type Runner struct {
	answerer       Answerer
	pool           *ants.Pool
	progress       io.Writer
	reportInterval int
	logger         *slog.Logger
}

// Option configures a Runner.
type Option func(*Runner) error

// WithPoolSize sets the worker pool size.
// Default is runtime.NumCPU() / 2, with a minimum of 1.
func WithPoolSize(size int) Option {
	return func(r *Runner) error {
		if size < 1 {
			size = 1
		}

		// Release old pool
		if r.pool != nil {
			r.pool.Release()
		}

		pool, err := ants.NewPool(size)
		if err != nil {
			return err
		}
		r.pool = pool
		return nil
	}
}

// WithProgress reports progress to w every reportInterval queries.
// Progress is not reported by default.
func WithProgress(w io.Writer, reportInterval int) Option {
	return func(r *Runner) error {
		r.progress = w
		r.reportInterval = reportInterval
		return nil
	}
}

// WithLogger sets a custom logger.
// Default is slog.Default().
func WithLogger(logger *slog.Logger) Option {
	return func(r *Runner) error {
		if logger == nil {
			logger = slog.Default()
		}
		r.logger = logger
		return nil
	}
}

// NewRunner creates a batch runner around answerer.
func NewRunner(answerer Answerer, opts ...Option) (*Runner, error) {
	if answerer == nil {
		return nil, ErrAnswererRequired
	}

	// Default pool size
	poolSize := runtime.NumCPU() / 2
	if poolSize < 1 {
		poolSize = 1
	}

	pool, err := ants.NewPool(poolSize)
	if err != nil {
		return nil, err
	}

	r := &Runner{
		answerer: answerer,
		pool:     pool,
		logger:   slog.Default(),
	}

	// Apply options (may override defaults)
	for _, opt := range opts {
		if optErr := opt(r); optErr != nil {
			r.Release()
			return nil, optErr
		}
	}

	return r, nil
}

// PoolSize returns the worker pool capacity.
func (r *Runner) PoolSize() int {
	return r.pool.Cap()
}

// Run answers every query and returns the outcomes in input order.
// If ctx is canceled, no further queries are submitted; Run waits for the ones
// already running and returns ctx's error.
func (r *Runner) Run(ctx context.Context, queries []string) ([]Outcome, error) {
	outcomes := make([]Outcome, len(queries))

	var tracker *ProgressTracker
	if r.progress != nil {
		tracker = NewProgressTracker(r.progress, len(queries), r.reportInterval)
		tracker.Start()
		defer tracker.Finish()
	}

	r.logger.Debug("starting batch", "queries", len(queries), "workers", r.pool.Cap())

	var wg sync.WaitGroup
	for i, query := range queries {
		if err := ctx.Err(); err != nil {
			wg.Wait()
			r.logger.Warn("batch canceled", "submitted", i, "total", len(queries))
			return nil, err
		}

		wg.Add(1)
		err := r.pool.Submit(func() {
			defer wg.Done()
			outcomes[i] = Outcome{Query: query, Result: r.answerer.GenerateResponse(query)}
			if tracker != nil {
				tracker.Increment(1)
			}
		})
		if err != nil {
			wg.Done()
			wg.Wait()
			return nil, fmt.Errorf("%w: %w", ErrSubmitFailed, err)
		}
	}
	wg.Wait()

	r.logger.Debug("batch finished", "queries", len(queries))
	return outcomes, nil
}

// Release releases the worker pool.
// The runner should not be used after calling Release.
func (r *Runner) Release() {
	if r.pool != nil {
		r.pool.Release()
	}
}

// Summary counts outcomes by kind.
type Summary struct {
	Total     int
	Answered  int // answers quoting retrieved context
	Fallbacks int // canned answers given without context
	Failures  int
}

// Summarize tallies outcomes.
func Summarize(outcomes []Outcome) Summary {
	s := Summary{Total: len(outcomes)}
	for _, o := range outcomes {
		switch v := o.Result.(type) {
		case responder.Answer:
			if v.Context.HasContext {
				s.Answered++
			} else {
				s.Fallbacks++
			}
		case responder.Failure:
			s.Failures++
		}
	}
	return s
}
