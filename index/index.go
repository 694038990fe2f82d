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
	"fmt"
	"math"
	"slices"
	"strings"
	"time"

	"github.com/quester-io/docquery/core"
)

// Index is an immutable in-memory embedding index. Once built it is never
// mutated; a rebuild produces a new Index published through a Handle. Reads
// require no locking.
type Index struct {
	chunks  []core.Chunk
	vectors [][]float32
	mags    []float64 // vector magnitudes, precomputed at build
	dim     int
	model   string
	builtAt time.Time
}

// Len returns the number of indexed chunks.
func (idx *Index) Len() int {
	if idx == nil {
		return 0
	}
	return len(idx.chunks)
}

// Dimension returns the embedding dimensionality, uniform across the index.
func (idx *Index) Dimension() int {
	if idx == nil {
		return 0
	}
	return idx.dim
}

// Model returns the embedding model tag the index was built with.
func (idx *Index) Model() string {
	if idx == nil {
		return ""
	}
	return idx.model
}

// BuiltAt returns the build completion time.
func (idx *Index) BuiltAt() time.Time {
	if idx == nil {
		return time.Time{}
	}
	return idx.builtAt
}

// Query ranks all chunks by cosine similarity to the given vector and
// returns the top k. Results are ordered by score descending; exact ties are
// broken by chunk ordinal, then source id, so equal inputs always produce
// identical output. k larger than the index returns every chunk, ranked.
// A nil or empty index returns an empty result.
func (idx *Index) Query(vector []float32, k int) ([]core.RetrievedChunk, error) {
	if idx.Len() == 0 {
		return nil, nil
	}
	if len(vector) != idx.dim {
		return nil, fmt.Errorf("%w: query dimension %d, index dimension %d",
			ErrDimensionMismatch, len(vector), idx.dim)
	}
	if k < 1 {
		return nil, nil
	}

	qmag := magnitude(vector)

	results := make([]core.RetrievedChunk, len(idx.chunks))
	for i, chunk := range idx.chunks {
		results[i] = core.RetrievedChunk{
			Chunk: chunk,
			Score: cosine(vector, qmag, idx.vectors[i], idx.mags[i]),
		}
	}

	slices.SortFunc(results, func(a, b core.RetrievedChunk) int {
		if a.Score > b.Score {
			return -1
		}
		if a.Score < b.Score {
			return 1
		}
		if c := a.Key.Ordinal - b.Key.Ordinal; c != 0 {
			return c
		}
		return strings.Compare(a.Key.SourceID, b.Key.SourceID)
	})

	if len(results) > k {
		results = results[:k]
	}
	return results, nil
}

// cosine computes cosine similarity given precomputed magnitudes.
// Zero-magnitude vectors score zero instead of dividing by zero.
func cosine(a []float32, amag float64, b []float32, bmag float64) float64 {
	if amag == 0 || bmag == 0 {
		return 0
	}
	var dot float64
	for i := range a {
		dot += float64(a[i]) * float64(b[i])
	}
	return dot / (amag * bmag)
}

// magnitude computes the Euclidean norm of a vector.
func magnitude(v []float32) float64 {
	var sum float64
	for _, x := range v {
		sum += float64(x) * float64(x)
	}
	return math.Sqrt(sum)
}
