// Package chunker splits documents into overlapping, retrievable chunks.
//
// Splitting respects natural boundaries: paragraphs first, sentences within
// them. Units are raw substrings of the source text, so the original document
// can always be reconstructed from its chunks with overlaps stripped.
package chunker
