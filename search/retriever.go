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


package search

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/quester-io/docquery/ai"
	"github.com/quester-io/docquery/core"
	"github.com/quester-io/docquery/index"
)

// DefaultTopK is the number of chunks retrieved per query.
const DefaultTopK = 3

// Retriever embeds a query and pulls the most similar chunks from an index
// snapshot. The snapshot is passed per call, so a retriever works across
// index generations without holding a reference to any of them.
type Retriever struct {
	embedder ai.Embedder
	topK     int
	logger   *slog.Logger
}

// Option configures a Retriever.
type Option func(*Retriever) error

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

// NewRetriever creates a Retriever. topK of zero means DefaultTopK.
func NewRetriever(embedder ai.Embedder, topK int, opts ...Option) (*Retriever, error) {
	if embedder == nil {
		return nil, ErrEmbedderRequired
	}
	if topK == 0 {
		topK = DefaultTopK
	}
	if topK < 1 {
		return nil, fmt.Errorf("%w: got %d", ErrInvalidTopK, topK)
	}

	r := &Retriever{
		embedder: embedder,
		topK:     topK,
		logger:   slog.Default().With("component", "search"),
	}

	for _, opt := range opts {
		if err := opt(r); err != nil {
			return nil, err
		}
	}

	return r, nil
}

// Retrieve returns the top chunks for a query against the given snapshot.
func (r *Retriever) Retrieve(ctx context.Context, idx *index.Index, query string) ([]core.RetrievedChunk, error) {
	return r.RetrieveWithMonitor(ctx, idx, query, NoopMonitor())
}

// RetrieveWithMonitor is Retrieve with observation hooks.
//
// An empty or nil index yields an empty result and no error; deciding what an
// empty retrieval means is the caller's concern. A query whose embedding
// dimension disagrees with the index is a configuration fault and fails.
func (r *Retriever) RetrieveWithMonitor(ctx context.Context, idx *index.Index, query string, monitor QueryMonitor) ([]core.RetrievedChunk, error) {
	if monitor == nil {
		monitor = NoopMonitor()
	}
	if strings.TrimSpace(query) == "" {
		return nil, ErrEmptyQuery
	}

	monitor.Start(query)

	if idx.Len() == 0 {
		r.logger.Debug("retrieval against empty index", "query", query)
		monitor.Finish(nil)
		return nil, nil
	}

	vector, err := r.embedder.EmbedText(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrQueryEmbedding, err)
	}
	monitor.AfterQueryEmbedding(len(vector))

	results, err := idx.Query(vector, r.topK)
	if err != nil {
		return nil, err
	}
	monitor.AfterRetrieval(results)

	for _, result := range results {
		if containsAllQueryWords(result.Text, query) {
			monitor.VerbatimMatch(result.Chunk)
		}
	}

	r.logger.Debug("retrieval complete",
		"query", query,
		"results", len(results),
		"top_k", r.topK)

	monitor.Finish(results)
	return results, nil
}
