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

import "errors"

var (
	// ErrEmbedderRequired is returned when a retriever is created without an embedder.
	ErrEmbedderRequired = errors.New("embedder is required")

	// ErrInvalidTopK is returned for a top-k below one.
	ErrInvalidTopK = errors.New("top-k must be at least 1")

	// ErrEmptyQuery is returned for a blank query string.
	ErrEmptyQuery = errors.New("query cannot be empty")

	// ErrQueryEmbedding indicates the query could not be embedded.
	ErrQueryEmbedding = errors.New("query embedding failed")
)
