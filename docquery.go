// Copyright 2025 Quester Labs
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


package docquery

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/quester-io/docquery/ai"
	"github.com/quester-io/docquery/ai/openai"
	"github.com/quester-io/docquery/chunker"
	"github.com/quester-io/docquery/core"
	"github.com/quester-io/docquery/index"
	"github.com/quester-io/docquery/loader"
	"github.com/quester-io/docquery/search"
	"github.com/quester-io/docquery/storage"
	badgerstore "github.com/quester-io/docquery/storage/badger"
	"github.com/quester-io/docquery/synth"
)

// Engine ties the pipeline together: load, chunk, embed, index, retrieve,
// synthesize. One engine serves one document root. Queries and rebuilds may
// run concurrently; a query always sees a complete index generation.
type Engine struct {
	cfg         Config
	provider    ai.AIProvider
	loader      *loader.Loader
	chunker     *chunker.Chunker
	builder     *index.Builder
	retriever   *search.Retriever
	synthesizer *synth.Synthesizer
	handle      *index.Handle
	backend     *badgerstore.Backend
	cache       storage.VectorCache
	ownsCache   bool
	logger      *slog.Logger
}

// Option configures an Engine.
type Option func(*engineOptions)

type engineOptions struct {
	aiConfig  *ai.Config
	provider  ai.AIProvider
	cache     storage.VectorCache
	cachePath string
	logger    *slog.Logger
}

// WithAIConfig sets the model endpoints and names.
// Default is ai.DefaultConfig().
func WithAIConfig(cfg *ai.Config) Option {
	return func(o *engineOptions) {
		if cfg != nil {
			o.aiConfig = cfg
		}
	}
}

// WithProvider injects an AI provider directly, bypassing the OpenAI client
// construction. Intended for tests and custom backends.
func WithProvider(provider ai.AIProvider) Option {
	return func(o *engineOptions) {
		o.provider = provider
	}
}

// WithCache injects an embedding cache. The engine uses it but does not own
// it; the caller closes it.
func WithCache(cache storage.VectorCache) Option {
	return func(o *engineOptions) {
		o.cache = cache
	}
}

// WithCachePath opens a persistent embedding cache at the given directory.
// The engine owns it and closes it on Close.
func WithCachePath(path string) Option {
	return func(o *engineOptions) {
		o.cachePath = path
	}
}

// WithLogger sets a custom logger.
// Default is slog.Default().
func WithLogger(logger *slog.Logger) Option {
	return func(o *engineOptions) {
		if logger != nil {
			o.logger = logger
		}
	}
}

// New creates an Engine for the given configuration. Invalid configuration
// is rejected here with a *ConfigError, before any document is read or any
// model is called.
func New(cfg Config, opts ...Option) (*Engine, error) {
	options := &engineOptions{
		aiConfig: ai.DefaultConfig(),
		logger:   slog.Default(),
	}
	for _, opt := range opts {
		opt(options)
	}

	cfg = cfg.withDefaults()
	if err := cfg.validate(); err != nil {
		return nil, err
	}

	options.aiConfig.Normalize()
	if err := options.aiConfig.Validate(); err != nil {
		return nil, &ConfigError{Err: err}
	}

	ld, err := loader.New(cfg.Root, cfg.Extensions, loader.WithLogger(options.logger))
	if err != nil {
		return nil, &ConfigError{Err: err}
	}

	ch, err := chunker.New(cfg.ChunkSize, cfg.ChunkOverlap, chunker.WithLogger(options.logger))
	if err != nil {
		return nil, &ConfigError{Err: err}
	}

	e := &Engine{
		cfg:     cfg,
		loader:  ld,
		chunker: ch,
		handle:  index.NewHandle(),
		logger:  options.logger,
	}

	e.provider = options.provider
	if e.provider == nil {
		provider, err := openai.NewProvider(options.aiConfig)
		if err != nil {
			return nil, err
		}
		e.provider = provider
	}

	e.cache = options.cache
	if e.cache == nil && options.cachePath != "" {
		backend, err := badgerstore.OpenBackend(options.cachePath, false)
		if err != nil {
			e.provider.Close()
			return nil, err
		}
		cache, err := badgerstore.NewVectorCache(backend)
		if err != nil {
			backend.Close()
			e.provider.Close()
			return nil, err
		}
		e.backend = backend
		e.cache = cache
		e.ownsCache = true
	}

	builderOpts := []index.Option{index.WithLogger(options.logger)}
	if e.cache != nil {
		builderOpts = append(builderOpts, index.WithCache(e.cache))
	}
	builder, err := index.NewBuilder(e.provider.Embedder(), options.aiConfig.EmbeddingModel, builderOpts...)
	if err != nil {
		e.Close()
		return nil, err
	}
	e.builder = builder

	retriever, err := search.NewRetriever(e.provider.Embedder(), cfg.TopK, search.WithLogger(options.logger))
	if err != nil {
		e.Close()
		return nil, err
	}
	e.retriever = retriever

	synthesizer, err := synth.NewSynthesizer(e.provider.Generator(), synth.WithLogger(options.logger))
	if err != nil {
		e.Close()
		return nil, err
	}
	e.synthesizer = synthesizer

	return e, nil
}

// BuildReport summarizes one completed build.
type BuildReport struct {
	Documents  int
	Chunks     int
	Skipped    []loader.FileError
	Generation uint64
	Duration   time.Duration
}

// Build loads the root, chunks every document, embeds all chunks, and
// publishes the resulting index. Queries running concurrently keep the
// previous generation until the swap; if the build fails at any stage, the
// previous generation stays published untouched.
func (e *Engine) Build(ctx context.Context) (*BuildReport, error) {
	start := time.Now()

	result, err := e.loader.Load(ctx)
	if err != nil {
		if errors.Is(err, loader.ErrDuplicateSource) {
			return nil, &ConfigError{Err: err}
		}
		return nil, err
	}
	if len(result.Documents) == 0 {
		return nil, &ConfigError{Err: fmt.Errorf("%w under %s", ErrNoDocuments, e.cfg.Root)}
	}

	var chunks []core.Chunk
	for _, doc := range result.Documents {
		docChunks, err := e.chunker.Chunk(doc)
		if err != nil {
			return nil, fmt.Errorf("chunking %s: %w", doc.SourceID, err)
		}
		chunks = append(chunks, docChunks...)
	}

	idx, err := e.builder.Build(ctx, chunks)
	if err != nil {
		return nil, err
	}

	generation := e.handle.Publish(idx)

	report := &BuildReport{
		Documents:  len(result.Documents),
		Chunks:     len(chunks),
		Skipped:    result.Skipped,
		Generation: generation,
		Duration:   time.Since(start),
	}

	e.logger.Info("index built",
		"documents", report.Documents,
		"chunks", report.Chunks,
		"skipped", len(report.Skipped),
		"generation", report.Generation,
		"duration", report.Duration)

	return report, nil
}

// Refresh rebuilds the index from the current state of the root and swaps it
// in. In-flight queries are served by the old generation until the swap.
func (e *Engine) Refresh(ctx context.Context) (*BuildReport, error) {
	return e.Build(ctx)
}

// Ask answers a question from the indexed corpus. Before the first
// successful Build it fails with ErrNotBuilt. A question the corpus cannot
// answer yields an abstaining Answer, not an error.
func (e *Engine) Ask(ctx context.Context, question string) (*core.Answer, error) {
	return e.AskWithMonitor(ctx, question, nil)
}

// AskWithMonitor is Ask with retrieval observation hooks.
func (e *Engine) AskWithMonitor(ctx context.Context, question string, monitor search.QueryMonitor) (*core.Answer, error) {
	snapshot := e.handle.Snapshot()
	if snapshot == nil {
		return nil, ErrNotBuilt
	}

	retrieved, err := e.retriever.RetrieveWithMonitor(ctx, snapshot, question, monitor)
	if err != nil {
		return nil, err
	}

	return e.synthesizer.Synthesize(ctx, question, retrieved)
}

// Generation returns the number of index generations published so far.
func (e *Engine) Generation() uint64 {
	return e.handle.Generation()
}

// Close releases the provider and any cache the engine owns.
func (e *Engine) Close() error {
	if err := e.provider.Close(); err != nil {
		e.logger.Error("error closing AI provider", "err", err)
	}
	return e.closeOwned()
}

func (e *Engine) closeOwned() error {
	if !e.ownsCache {
		return nil
	}
	if err := e.cache.Close(); err != nil {
		e.logger.Error("error closing embedding cache", "err", err)
	}
	if err := e.backend.Close(); err != nil {
		e.logger.Error("error closing cache backend", "err", err)
		return err
	}
	return nil
}
