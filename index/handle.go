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

import "sync/atomic"

// Handle is the publication point for index generations. A build assembles a
// complete Index off to the side, then Publish swaps it in atomically.
// Readers snapshot the current generation and keep using it for the duration
// of their query; a concurrent rebuild never disturbs them.
type Handle struct {
	current    atomic.Pointer[Index]
	generation atomic.Uint64
}

// NewHandle creates an empty handle. Snapshot returns nil until the first
// Publish.
func NewHandle() *Handle {
	return &Handle{}
}

// Publish installs a new index generation and returns its generation number.
// Generation numbers start at 1 and only increase.
func (h *Handle) Publish(idx *Index) uint64 {
	h.current.Store(idx)
	return h.generation.Add(1)
}

// Snapshot returns the currently published index, or nil if none has been
// published yet. The returned index is immutable and remains valid even if
// another generation is published afterwards.
func (h *Handle) Snapshot() *Index {
	return h.current.Load()
}

// Generation returns the number of generations published so far.
func (h *Handle) Generation() uint64 {
	return h.generation.Load()
}
