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


package chunker

import "errors"

var (
	// ErrInvalidSize is returned for a chunk size below one word.
	ErrInvalidSize = errors.New("chunk size must be at least 1")

	// ErrInvalidOverlap is returned for a negative overlap.
	ErrInvalidOverlap = errors.New("chunk overlap must not be negative")

	// ErrOverlapTooLarge is returned when the overlap is not strictly
	// smaller than the chunk size. Rejected at construction, before any
	// document is processed.
	ErrOverlapTooLarge = errors.New("chunk overlap must be smaller than chunk size")
)
