package core

import (
	"encoding/binary"
	"strconv"

	"github.com/go-crypt/x/blake2b"
)

// ID is a unique identifier for domain entities.
// It is generated by content-based hashing so that identical content
// always maps to the same ID.
type ID uint64

// IDFromContent generates a deterministic ID from text content using BLAKE2b hashing.
func IDFromContent(text string) ID {
	h, _ := blake2b.New(8, nil) // 8 bytes = 64 bits
	h.Write([]byte(text))
	sum := h.Sum(nil)
	return ID(binary.LittleEndian.Uint64(sum))
}

// Document is a single source file after text extraction.
// Documents are immutable; a rebuild replaces them wholesale.
type Document struct {
	SourceID string // root-relative path, normalized; unique within one corpus
	Text     string // extracted plain text
	Format   string // format tag derived from the extension, e.g. "markdown"
}

// ChunkKey identifies a chunk within its parent document.
type ChunkKey struct {
	SourceID string
	Ordinal  int // position within the document, starting at 0
}

// String returns the key as "source#ordinal", used for logging and tie-breaks.
func (k ChunkKey) String() string {
	return k.SourceID + "#" + strconv.Itoa(k.Ordinal)
}

// Chunk is a bounded contiguous span of a document's text, the retrievable unit.
// Chunks from one document share ordering via Key.Ordinal. Concatenating the
// non-overlapping spans of a document's chunks in ordinal order reconstructs
// the original text.
type Chunk struct {
	Key          ChunkKey
	Text         string
	OverlapsNext bool // the next chunk of the same document repeats this chunk's tail
}

// ContentID returns the content-hash ID of the chunk text.
// It is the key under which embeddings for this chunk are cached.
func (c *Chunk) ContentID() ID {
	return IDFromContent(c.Text)
}

// EmbeddingRecord is a cached embedding for a chunk's text under a given model.
type EmbeddingRecord struct {
	ChunkID ID     // ContentID of the embedded chunk text
	Model   string // embedding model the vector was produced with
	Vector  []float32
}

// RetrievedChunk is a chunk joined with its similarity score for one query.
type RetrievedChunk struct {
	Chunk
	Score float64
}

// Answer is the synthesized response to a single query. It is not persisted.
type Answer struct {
	Text      string
	Sources   []string // distinct cited source IDs, in retrieval rank order
	Abstained bool     // true when no relevant context supported an answer
}
