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
	"fmt"

	"github.com/quester-io/docquery/chunker"
	"github.com/quester-io/docquery/loader"
	"github.com/quester-io/docquery/search"
)

// Config describes one engine instance. Zero values take documented defaults;
// Root is the only mandatory field.
type Config struct {
	// Root is the directory whose files are indexed.
	Root string

	// Extensions is the recognized file extension set.
	// Default is loader.DefaultExtensions().
	Extensions []string

	// ChunkSize is the chunk budget in words. Default 512.
	ChunkSize int

	// ChunkOverlap is the number of words carried between adjacent chunks.
	// Must be strictly smaller than ChunkSize. Default 50.
	ChunkOverlap int

	// TopK is the number of chunks retrieved per question. Default 3.
	TopK int
}

// withDefaults returns a copy with defaults filled in for zero values.
func (c Config) withDefaults() Config {
	if len(c.Extensions) == 0 {
		c.Extensions = loader.DefaultExtensions()
	}
	if c.ChunkSize == 0 {
		c.ChunkSize = chunker.DefaultChunkSize
	}
	if c.ChunkOverlap == 0 {
		c.ChunkOverlap = chunker.DefaultChunkOverlap
	}
	if c.TopK == 0 {
		c.TopK = search.DefaultTopK
	}
	return c
}

// validate checks the record after defaults are applied. Chunk parameter
// coherence is enforced by the chunker constructor; this covers the rest.
func (c Config) validate() error {
	if c.Root == "" {
		return &ConfigError{Err: ErrRootRequired}
	}
	if c.TopK < 1 {
		return &ConfigError{Err: fmt.Errorf("%w: got %d", ErrInvalidTopK, c.TopK)}
	}
	return nil
}
