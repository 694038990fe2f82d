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
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/quester-io/docquery/core"
)

func TestHandleEmpty(t *testing.T) {
	h := NewHandle()
	assert.Nil(t, h.Snapshot())
	assert.Equal(t, uint64(0), h.Generation())
}

func TestHandlePublishAndSnapshot(t *testing.T) {
	h := NewHandle()
	idx := buildTestIndex(t,
		[]core.Chunk{chunk("a.txt", 0, "x")},
		[][]float32{{1, 0}})

	gen := h.Publish(idx)
	assert.Equal(t, uint64(1), gen)
	assert.Same(t, idx, h.Snapshot())

	next := buildTestIndex(t,
		[]core.Chunk{chunk("b.txt", 0, "y")},
		[][]float32{{0, 1}})
	gen = h.Publish(next)
	assert.Equal(t, uint64(2), gen)
	assert.Same(t, next, h.Snapshot())
}

func TestHandleSnapshotSurvivesRepublish(t *testing.T) {
	h := NewHandle()
	old := buildTestIndex(t,
		[]core.Chunk{chunk("a.txt", 0, "old text")},
		[][]float32{{1, 0}})
	h.Publish(old)

	snap := h.Snapshot()
	h.Publish(buildTestIndex(t,
		[]core.Chunk{chunk("a.txt", 0, "new text")},
		[][]float32{{0, 1}}))

	// The old snapshot still answers queries against its own contents.
	results, err := snap.Query([]float32{1, 0}, 1)
	require.NoError(t, err)
	require.Len(t, results, 1)
	assert.Equal(t, "old text", results[0].Text)
}

func TestHandleConcurrentReadersAndPublishers(t *testing.T) {
	h := NewHandle()
	a := buildTestIndex(t,
		[]core.Chunk{chunk("a.txt", 0, "alpha")},
		[][]float32{{1, 0}})
	b := buildTestIndex(t,
		[]core.Chunk{chunk("b.txt", 0, "beta")},
		[][]float32{{0, 1}})
	h.Publish(a)

	var wg sync.WaitGroup
	for i := 0; i < 4; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < 200; j++ {
				snap := h.Snapshot()
				require.NotNil(t, snap)
				results, err := snap.Query([]float32{1, 1}, 1)
				assert.NoError(t, err)
				// Whichever generation was observed, it is complete.
				assert.Len(t, results, 1)
			}
		}()
	}
	wg.Add(1)
	go func() {
		defer wg.Done()
		for j := 0; j < 100; j++ {
			if j%2 == 0 {
				h.Publish(b)
			} else {
				h.Publish(a)
			}
		}
	}()
	wg.Wait()

	assert.Equal(t, uint64(101), h.Generation())
}
