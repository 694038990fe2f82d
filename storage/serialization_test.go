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
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/quester-io/docquery/core"
)

func TestIDRoundTrip(t *testing.T) {
	ids := []core.ID{0, 1, 255, 1 << 32, core.IDFromContent("some chunk text")}

	for _, id := range ids {
		data := MarshalID(id)
		got, err := UnmarshalID(data)
		require.NoError(t, err)
		assert.Equal(t, id, got)
	}
}

func TestUnmarshalIDTruncated(t *testing.T) {
	data := MarshalID(core.ID(1 << 60))
	_, err := UnmarshalID(data[:1])
	assert.ErrorIs(t, err, ErrSerializationFailed)
}

func TestEmbeddingRecordRoundTrip(t *testing.T) {
	record := &core.EmbeddingRecord{
		ChunkID: core.IDFromContent("alpha"),
		Model:   "embeddinggemma",
		Vector:  []float32{0.25, -0.5, 1.0, 3.14},
	}

	data := MarshalEmbeddingRecord(record)
	got, err := UnmarshalEmbeddingRecord(data)
	require.NoError(t, err)
	assert.Equal(t, record, got)
}

func TestUnmarshalEmbeddingRecordCorrupt(t *testing.T) {
	record := &core.EmbeddingRecord{
		ChunkID: 42,
		Model:   "m",
		Vector:  []float32{1, 2, 3},
	}

	data := MarshalEmbeddingRecord(record)
	_, err := UnmarshalEmbeddingRecord(data[:len(data)-3])
	assert.ErrorIs(t, err, ErrSerializationFailed)
}
