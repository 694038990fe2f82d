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

import (
	"fmt"
	"log/slog"
	"regexp"
	"unicode"

	"github.com/quester-io/docquery/core"
)

// Defaults sized for prose documents and typical embedding context windows.
const (
	DefaultChunkSize    = 512
	DefaultChunkOverlap = 50
)

var (
	paragraphRe = regexp.MustCompile(`\n{2,}`)
	sentenceRe  = regexp.MustCompile(`[.!?]+\s+`)
)

// Chunker splits documents into overlapping chunks. Sizes are measured in
// whitespace-delimited words. A Chunker is stateless and safe for concurrent use.
type Chunker struct {
	size    int
	overlap int
	logger  *slog.Logger
}

// Option configures a Chunker.
type Option func(*Chunker) error

// WithLogger sets a custom logger.
// Default is slog.Default().
func WithLogger(logger *slog.Logger) Option {
	return func(c *Chunker) error {
		if logger == nil {
			logger = slog.Default()
		}
		c.logger = logger
		return nil
	}
}

// New creates a Chunker with the given size and overlap, both in words.
// The overlap must be strictly smaller than the size; this is rejected here,
// before any document is seen.
func New(size, overlap int, opts ...Option) (*Chunker, error) {
	if size < 1 {
		return nil, fmt.Errorf("%w: got %d", ErrInvalidSize, size)
	}
	if overlap < 0 {
		return nil, fmt.Errorf("%w: got %d", ErrInvalidOverlap, overlap)
	}
	if overlap >= size {
		return nil, fmt.Errorf("%w: overlap %d, size %d", ErrOverlapTooLarge, overlap, size)
	}

	c := &Chunker{
		size:    size,
		overlap: overlap,
		logger:  slog.Default().With("component", "chunker"),
	}

	for _, opt := range opts {
		if err := opt(c); err != nil {
			return nil, err
		}
	}

	return c, nil
}

// Chunk splits a document into ordered chunks.
//
// The document text is cut into units at paragraph boundaries first, then at
// sentence boundaries within each paragraph. Units are raw substrings of the
// original text, boundary characters included, so the concatenation of all
// units reproduces the document byte for byte. Chunks are built by greedy
// accumulation of consecutive units up to the word budget; each chunk after
// the first is prefixed with the trailing overlap words of its predecessor,
// and the predecessor is marked OverlapsNext.
//
// A single unit longer than the budget is emitted whole rather than split
// mid-sentence. A document that fits in one chunk yields exactly one chunk.
// Chunking the same document twice yields identical output.
func (c *Chunker) Chunk(doc core.Document) ([]core.Chunk, error) {
	if err := core.ValidateDocument(&doc); err != nil {
		return nil, err
	}

	units := splitUnits(doc.Text)

	var chunks []core.Chunk
	var current []string // units of the chunk under construction
	carried := ""        // overlap prefix carried from the previous chunk
	words := 0           // word count of carried + current

	flush := func(last bool) {
		if len(current) == 0 {
			return
		}
		text := carried
		for _, u := range current {
			text += u
		}
		chunk := core.Chunk{
			Key:  core.ChunkKey{SourceID: doc.SourceID, Ordinal: len(chunks)},
			Text: text,
		}
		if !last && c.overlap > 0 {
			carried = trailingWords(text, c.overlap)
			chunk.OverlapsNext = carried != ""
		} else {
			carried = ""
		}
		chunks = append(chunks, chunk)
		current = current[:0]
		words = countWords(carried)
	}

	for _, unit := range units {
		w := countWords(unit)
		if len(current) > 0 && words+w > c.size {
			flush(false)
		}
		current = append(current, unit)
		words += w
	}
	flush(true)

	c.logger.Debug("chunked document",
		"source", doc.SourceID,
		"units", len(units),
		"chunks", len(chunks))

	return chunks, nil
}

// splitUnits cuts text into raw substring units. Paragraph boundaries (blank
// lines) are cut first, then sentence boundaries within each paragraph. Every
// boundary stays attached to the unit it terminates, so the units concatenate
// back to the input exactly.
func splitUnits(text string) []string {
	var units []string
	for _, para := range splitAfter(text, paragraphRe) {
		units = append(units, splitAfter(para, sentenceRe)...)
	}
	return units
}

// splitAfter splits s immediately after each match of re, keeping the match
// with the preceding piece.
func splitAfter(s string, re *regexp.Regexp) []string {
	var parts []string
	prev := 0
	for _, m := range re.FindAllStringIndex(s, -1) {
		parts = append(parts, s[prev:m[1]])
		prev = m[1]
	}
	if prev < len(s) {
		parts = append(parts, s[prev:])
	}
	return parts
}

// countWords counts whitespace-delimited words.
func countWords(s string) int {
	n := 0
	inWord := false
	for _, r := range s {
		if unicode.IsSpace(r) {
			inWord = false
		} else if !inWord {
			inWord = true
			n++
		}
	}
	return n
}

// trailingWords returns the suffix of s that starts at the nth word from the
// end, trailing whitespace included. Fewer than n words returns s whole.
func trailingWords(s string, n int) string {
	if n <= 0 {
		return ""
	}
	var starts []int
	inWord := false
	for i, r := range s {
		if unicode.IsSpace(r) {
			inWord = false
		} else if !inWord {
			inWord = true
			starts = append(starts, i)
		}
	}
	if len(starts) == 0 {
		return ""
	}
	if n >= len(starts) {
		return s
	}
	return s[starts[len(starts)-n]:]
}
