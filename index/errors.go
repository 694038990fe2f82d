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

import "errors"

var (
	// ErrEmbedderRequired is returned when a builder is created without an embedder.
	ErrEmbedderRequired = errors.New("embedder is required")

	// ErrModelRequired is returned when a builder is created without a model tag.
	ErrModelRequired = errors.New("embedding model tag is required")

	// ErrNoChunks is returned when a build is attempted with no chunks.
	ErrNoChunks = errors.New("no chunks to index")

	// ErrDimensionMismatch indicates vectors of differing dimensionality.
	// An index holds vectors of exactly one dimension.
	ErrDimensionMismatch = errors.New("embedding dimension mismatch")

	// ErrEmbeddingFailed indicates the embedder failed after all retries.
	// The build is aborted; no partial index is ever produced.
	ErrEmbeddingFailed = errors.New("embedding generation failed")

	// ErrCountMismatch indicates the embedder returned a different number of
	// vectors than texts submitted.
	ErrCountMismatch = errors.New("embedding count mismatch")

	// ErrInvalidMaxAttempts indicates a retry configuration with no attempts.
	ErrInvalidMaxAttempts = errors.New("max attempts must be greater than zero")
)
