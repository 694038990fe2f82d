// Package storage defines the embedding cache abstraction and the binary
// serialization used by its implementations. The BadgerDB implementation
// lives in the badger subpackage.
package storage
