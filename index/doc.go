// Package index builds and queries the in-memory embedding index.
//
// An Index is immutable: Builder assembles a complete new index, Handle
// publishes it atomically, and readers query whichever generation they
// snapshotted. Ranking is exact cosine similarity over every indexed chunk
// with deterministic tie-breaking.
package index
