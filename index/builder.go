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


package index

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"runtime"
	"sync"
	"time"

	"github.com/panjf2000/ants/v2"
	"github.com/quester-io/docquery/ai"
	"github.com/quester-io/docquery/core"
	"github.com/quester-io/docquery/storage"
)

const (
	defaultBatchSize      = 16
	defaultMaxRetries     = 3
	defaultRetryBaseDelay = 500 * time.Millisecond
)

// Builder embeds chunks and assembles an Index. Embedding runs concurrently
// over batches; any batch failure aborts the whole build, so a partial index
// is never produced.
type Builder struct {
	embedder       ai.Embedder
	model          string
	cache          storage.VectorCache
	poolSize       int
	batchSize      int
	maxRetries     int
	retryBaseDelay time.Duration
	progress       *ProgressTracker
	logger         *slog.Logger
}

// Option configures a Builder.
type Option func(*Builder) error

// WithCache sets an embedding cache consulted by chunk content hash before
// calling the embedder. Without a cache every build embeds every chunk.
func WithCache(cache storage.VectorCache) Option {
	return func(b *Builder) error {
		b.cache = cache
		return nil
	}
}

// WithPoolSize sets the worker pool size for concurrent embedding.
// Default is runtime.NumCPU() / 2, with a minimum of 1.
func WithPoolSize(size int) Option {
	return func(b *Builder) error {
		if size < 1 {
			size = 1
		}
		b.poolSize = size
		return nil
	}
}

// WithBatchSize sets how many chunks are embedded per call to the embedder.
func WithBatchSize(size int) Option {
	return func(b *Builder) error {
		if size < 1 {
			size = 1
		}
		b.batchSize = size
		return nil
	}
}

// WithRetry sets the retry policy for embedding calls.
func WithRetry(maxAttempts int, baseDelay time.Duration) Option {
	return func(b *Builder) error {
		if maxAttempts < 1 {
			return ErrInvalidMaxAttempts
		}
		b.maxRetries = maxAttempts
		b.retryBaseDelay = baseDelay
		return nil
	}
}

// WithProgress sets a progress tracker updated as chunks are embedded.
func WithProgress(progress *ProgressTracker) Option {
	return func(b *Builder) error {
		b.progress = progress
		return nil
	}
}

// WithLogger sets a custom logger.
// Default is slog.Default().
func WithLogger(logger *slog.Logger) Option {
	return func(b *Builder) error {
		if logger == nil {
			logger = slog.Default()
		}
		b.logger = logger
		return nil
	}
}

// NewBuilder creates a Builder for the given embedder and model tag. The
// model tag keys the cache and is stamped on the built index; querying an
// index with vectors from a different model is meaningless.
func NewBuilder(embedder ai.Embedder, model string, opts ...Option) (*Builder, error) {
	if embedder == nil {
		return nil, ErrEmbedderRequired
	}
	if model == "" {
		return nil, ErrModelRequired
	}

	poolSize := runtime.NumCPU() / 2
	if poolSize < 1 {
		poolSize = 1
	}

	b := &Builder{
		embedder:       embedder,
		model:          model,
		poolSize:       poolSize,
		batchSize:      defaultBatchSize,
		maxRetries:     defaultMaxRetries,
		retryBaseDelay: defaultRetryBaseDelay,
		logger:         slog.Default().With("component", "index"),
	}

	for _, opt := range opts {
		if err := opt(b); err != nil {
			return nil, err
		}
	}

	return b, nil
}

// Build embeds all chunks and returns a fresh Index. Chunks whose content
// hash is in the cache skip the embedder. Any embedding failure, after
// retries, aborts the build and returns an error wrapping ErrEmbeddingFailed.
func (b *Builder) Build(ctx context.Context, chunks []core.Chunk) (*Index, error) {
	if len(chunks) == 0 {
		return nil, ErrNoChunks
	}
	for i := range chunks {
		if err := core.ValidateChunk(&chunks[i]); err != nil {
			return nil, err
		}
	}

	if b.progress != nil {
		b.progress.Start()
		defer b.progress.Finish()
	}

	vectors := make([][]float32, len(chunks))
	pending := b.consultCache(ctx, chunks, vectors)

	b.logger.Info("building index",
		"chunks", len(chunks),
		"cached", len(chunks)-len(pending),
		"to_embed", len(pending))

	if b.progress != nil {
		b.progress.Increment(len(chunks) - len(pending))
	}

	if err := b.embedPending(ctx, chunks, vectors, pending); err != nil {
		return nil, err
	}

	dim := len(vectors[0])
	for i, v := range vectors {
		if len(v) != dim {
			return nil, fmt.Errorf("%w: chunk %s has dimension %d, expected %d",
				ErrDimensionMismatch, chunks[i].Key.String(), len(v), dim)
		}
	}

	b.storeCache(ctx, chunks, vectors, pending)

	mags := make([]float64, len(vectors))
	for i, v := range vectors {
		mags[i] = magnitude(v)
	}

	indexed := make([]core.Chunk, len(chunks))
	copy(indexed, chunks)

	return &Index{
		chunks:  indexed,
		vectors: vectors,
		mags:    mags,
		dim:     dim,
		model:   b.model,
		builtAt: time.Now().UTC(),
	}, nil
}

// consultCache fills vectors from the cache and returns the indices of
// chunks that still need embedding. Cache read failures other than a miss
// are logged and treated as misses.
func (b *Builder) consultCache(ctx context.Context, chunks []core.Chunk, vectors [][]float32) []int {
	pending := make([]int, 0, len(chunks))
	if b.cache == nil {
		for i := range chunks {
			pending = append(pending, i)
		}
		return pending
	}

	for i := range chunks {
		vector, err := b.cache.Get(ctx, chunks[i].ContentID(), b.model)
		if err != nil {
			if !errors.Is(err, storage.ErrNotFound) {
				b.logger.Warn("cache read failed", "chunk", chunks[i].Key.String(), "err", err)
			}
			pending = append(pending, i)
			continue
		}
		vectors[i] = vector
	}
	return pending
}

// embedPending embeds the pending chunks in concurrent batches.
func (b *Builder) embedPending(ctx context.Context, chunks []core.Chunk, vectors [][]float32, pending []int) error {
	if len(pending) == 0 {
		return nil
	}

	pool, err := ants.NewPool(b.poolSize)
	if err != nil {
		return err
	}
	defer pool.Release()

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	var (
		wg       sync.WaitGroup
		mu       sync.Mutex
		firstErr error
	)
	fail := func(err error) {
		mu.Lock()
		if firstErr == nil {
			firstErr = err
			cancel()
		}
		mu.Unlock()
	}

	for start := 0; start < len(pending); start += b.batchSize {
		end := start + b.batchSize
		if end > len(pending) {
			end = len(pending)
		}
		batch := pending[start:end]

		wg.Add(1)
		submitErr := pool.Submit(func() {
			defer wg.Done()
			if err := ctx.Err(); err != nil {
				fail(err)
				return
			}

			texts := make([]string, len(batch))
			for j, i := range batch {
				texts[j] = chunks[i].Text
			}

			var embeddings [][]float32
			err := RetryWithBackoff(ctx, func() error {
				var err error
				embeddings, err = b.embedder.EmbedTexts(ctx, texts)
				return err
			}, b.maxRetries, b.retryBaseDelay)
			if err == nil && len(embeddings) != len(texts) {
				err = fmt.Errorf("%w: expected %d, got %d", ErrCountMismatch, len(texts), len(embeddings))
			}
			if err != nil {
				fail(err)
				return
			}

			for j, i := range batch {
				vectors[i] = embeddings[j]
			}
			if b.progress != nil {
				b.progress.Increment(len(batch))
			}
		})
		if submitErr != nil {
			wg.Done()
			fail(submitErr)
			break
		}
	}

	wg.Wait()

	if firstErr != nil {
		return fmt.Errorf("%w: %w", ErrEmbeddingFailed, firstErr)
	}
	return nil
}

// storeCache writes freshly embedded vectors back to the cache.
// Write failures are logged; they never fail a build.
func (b *Builder) storeCache(ctx context.Context, chunks []core.Chunk, vectors [][]float32, pending []int) {
	if b.cache == nil {
		return
	}
	for _, i := range pending {
		record := &core.EmbeddingRecord{
			ChunkID: chunks[i].ContentID(),
			Model:   b.model,
			Vector:  vectors[i],
		}
		if err := b.cache.Put(ctx, record); err != nil {
			b.logger.Warn("cache write failed", "chunk", chunks[i].Key.String(), "err", err)
		}
	}
}
