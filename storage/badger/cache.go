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


package badger

import (
	"context"
	"errors"

	"github.com/dgraph-io/badger/v4"
	"github.com/quester-io/docquery/core"
	"github.com/quester-io/docquery/storage"
)

// VectorCache implements storage.VectorCache on a BadgerDB backend.
type VectorCache struct {
	backend *Backend
}

var _ storage.VectorCache = (*VectorCache)(nil)

// NewVectorCache creates a vector cache on the given backend.
func NewVectorCache(backend *Backend) (*VectorCache, error) {
	return &VectorCache{
		backend: backend,
	}, nil
}

// Close releases resources. VectorCache has no resources of its own; the
// backend is closed by its owner.
func (c *VectorCache) Close() error {
	return nil
}

// Get retrieves the cached vector for a content hash under a model tag.
func (c *VectorCache) Get(ctx context.Context, id core.ID, model string) ([]float32, error) {
	if model == "" {
		return nil, storage.ErrModelRequired
	}
	if c.backend.IsClosed() {
		return nil, storage.ErrStorageClosed
	}

	var vector []float32
	err := c.backend.WithTx(func(tx *badger.Txn) error {
		item, err := tx.Get(makeVectorKey(model, id))
		if err != nil {
			if errors.Is(err, badger.ErrKeyNotFound) {
				return storage.ErrNotFound
			}
			return err
		}
		return item.Value(func(val []byte) error {
			record, err := storage.UnmarshalEmbeddingRecord(val)
			if err != nil {
				return err
			}
			vector = record.Vector
			return nil
		})
	}, false)
	if err != nil {
		return nil, err
	}

	return vector, nil
}

// Put stores an embedding record, overwriting any previous entry.
func (c *VectorCache) Put(ctx context.Context, record *core.EmbeddingRecord) error {
	if record.Model == "" {
		return storage.ErrModelRequired
	}
	if err := core.ValidateEmbeddingRecord(record); err != nil {
		return err
	}
	if c.backend.IsClosed() {
		return storage.ErrStorageClosed
	}

	return c.backend.WithTx(func(tx *badger.Txn) error {
		key := makeVectorKey(record.Model, record.ChunkID)
		if err := tx.Set(key, storage.MarshalEmbeddingRecord(record)); err != nil {
			return err
		}
		return tx.Commit()
	}, true)
}
