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


package storage

import (
	"context"

	"github.com/quester-io/docquery/core"
)

// VectorCache persists embedding vectors keyed by chunk content hash and
// model tag, so rebuilding an index only re-embeds chunks whose text changed.
// Implementations must be safe for concurrent use.
type VectorCache interface {
	// Get retrieves the cached vector for a chunk content hash under the
	// given model tag. Returns ErrNotFound on a cache miss.
	Get(ctx context.Context, id core.ID, model string) ([]float32, error)

	// Put stores an embedding record, overwriting any previous entry for
	// the same content hash and model.
	Put(ctx context.Context, record *core.EmbeddingRecord) error

	// Close releases the cache's resources.
	Close() error
}
