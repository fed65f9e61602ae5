// Copyright 2025 Poiesic Systems
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.


package gitkb

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/poiesic/gitkb/batch"
	"github.com/poiesic/gitkb/core"
	"github.com/poiesic/gitkb/knowledge"
	"github.com/poiesic/gitkb/responder"
	"github.com/poiesic/gitkb/search"
	"github.com/poiesic/gitkb/storage/badger"
)

var (
	// ErrConflictingSources indicates that more than one knowledge source was configured.
	ErrConflictingSources = errors.New("only one knowledge source may be configured")
)

// Assistant wires a knowledge set to a retriever and a responder.
// It is safe for concurrent use.
type Assistant struct {
	set       *knowledge.Set
	retriever *search.Retriever
	responder *responder.Responder
	backend   *badger.Backend
	logger    *slog.Logger
}

// Option configures an Assistant.
type Option func(*assistantOptions) error

type assistantOptions struct {
	knowledgeFile string
	snapshotPath  string
	set           *knowledge.Set
	topK          int
	cacheTTL      time.Duration
	logger        *slog.Logger
}

// WithKnowledgeFile loads the knowledge set from a YAML file.
func WithKnowledgeFile(path string) Option {
	return func(o *assistantOptions) error {
		o.knowledgeFile = path
		return nil
	}
}

// WithSnapshot loads the knowledge set from a BadgerDB snapshot directory.
// The snapshot stays open until Close.
func WithSnapshot(path string) Option {
	return func(o *assistantOptions) error {
		o.snapshotPath = path
		return nil
	}
}

// WithKnowledgeSet uses set directly.
func WithKnowledgeSet(set *knowledge.Set) Option {
	return func(o *assistantOptions) error {
		o.set = set
		return nil
	}
}

// WithTopK sets how many entries retrieval keeps.
// Default is search.DefaultTopK.
func WithTopK(k int) Option {
	return func(o *assistantOptions) error {
		o.topK = k
		return nil
	}
}

// WithResponseCache memoizes answers for ttl. Zero disables caching.
func WithResponseCache(ttl time.Duration) Option {
	return func(o *assistantOptions) error {
		o.cacheTTL = ttl
		return nil
	}
}

// WithLogger sets a custom logger.
// Default is slog.Default().
func WithLogger(logger *slog.Logger) Option {
	return func(o *assistantOptions) error {
		o.logger = logger
		return nil
	}
}

// NewAssistant builds an assistant. Without a knowledge option the built-in
// Git knowledge base is used.
func NewAssistant(opts ...Option) (*Assistant, error) {
	options := &assistantOptions{
		topK:   search.DefaultTopK,
		logger: slog.Default(),
	}
	for _, opt := range opts {
		if err := opt(options); err != nil {
			return nil, err
		}
	}
	if options.logger == nil {
		options.logger = slog.Default()
	}

	sources := 0
	for _, set := range []bool{options.knowledgeFile != "", options.snapshotPath != "", options.set != nil} {
		if set {
			sources++
		}
	}
	if sources > 1 {
		return nil, ErrConflictingSources
	}

	a := &Assistant{logger: options.logger}

	switch {
	case options.set != nil:
		a.set = options.set
	case options.knowledgeFile != "":
		set, err := knowledge.LoadFile(options.knowledgeFile)
		if err != nil {
			return nil, err
		}
		a.set = set
	case options.snapshotPath != "":
		backend, set, err := loadSnapshot(options.snapshotPath, options.logger)
		if err != nil {
			return nil, err
		}
		a.backend = backend
		a.set = set
	default:
		a.set = knowledge.Default()
	}

	retriever, err := search.NewRetriever(a.set,
		search.WithTopK(options.topK),
		search.WithLogger(options.logger),
	)
	if err != nil {
		a.Close()
		return nil, err
	}
	a.retriever = retriever

	responderOpts := []responder.Option{responder.WithLogger(options.logger)}
	if options.cacheTTL > 0 {
		responderOpts = append(responderOpts, responder.WithResponseCache(options.cacheTTL))
	}
	resp, err := responder.NewResponder(retriever, responderOpts...)
	if err != nil {
		a.Close()
		return nil, err
	}
	a.responder = resp

	a.logger.Debug("assistant ready", "entries", a.set.Len(), "digest", a.set.Digest().Hex(), "top_k", options.topK)
	return a, nil
}

func loadSnapshot(path string, logger *slog.Logger) (*badger.Backend, *knowledge.Set, error) {
	backend, err := badger.OpenBackendWithLogger(path, false, logger)
	if err != nil {
		return nil, nil, err
	}

	repo, err := badger.NewKnowledgeRepository(backend)
	if err != nil {
		backend.Close()
		return nil, nil, err
	}

	entries, err := repo.LoadEntries(context.Background())
	if err != nil {
		backend.Close()
		return nil, nil, fmt.Errorf("loading snapshot %s: %w", path, err)
	}

	set, err := knowledge.NewSet(entries)
	if err != nil {
		backend.Close()
		return nil, nil, err
	}
	return backend, set, nil
}

// SaveSnapshot writes set into the BadgerDB snapshot at path, replacing
// whatever was stored there. It returns the digest recorded with the snapshot.
func SaveSnapshot(ctx context.Context, path string, set *knowledge.Set) (core.ID, error) {
	backend, err := badger.OpenBackend(path, false)
	if err != nil {
		return 0, err
	}
	defer backend.Close()

	repo, err := badger.NewKnowledgeRepository(backend)
	if err != nil {
		return 0, err
	}
	defer repo.Close()

	if err := repo.ReplaceEntries(ctx, set.Entries()...); err != nil {
		return 0, err
	}
	return repo.Digest(ctx)
}

// Close releases the snapshot backend, if any.
func (a *Assistant) Close() error {
	if a.backend == nil || a.backend.IsClosed() {
		return nil
	}
	if err := a.backend.Close(); err != nil {
		a.logger.Error("error closing backend storage", "err", err)
		return err
	}
	return nil
}

func (a *Assistant) Knowledge() *knowledge.Set {
	return a.set
}

func (a *Assistant) Retriever() *search.Retriever {
	return a.retriever
}

func (a *Assistant) Responder() *responder.Responder {
	return a.responder
}

// GenerateResponse answers query. See responder.Responder.GenerateResponse.
func (a *Assistant) GenerateResponse(query string) responder.Result {
	return a.responder.GenerateResponse(query)
}

func (a *Assistant) AvailableTopics() []string {
	return a.responder.AvailableTopics()
}

func (a *Assistant) NewBatchRunner(opts ...batch.Option) (*batch.Runner, error) {
	return batch.NewRunner(a.responder, append([]batch.Option{batch.WithLogger(a.logger)}, opts...)...)
}

func (a *Assistant) DocumentRetriever() (*search.DocumentRetriever, error) {
	return search.NewDocumentRetriever(a.retriever)
}
