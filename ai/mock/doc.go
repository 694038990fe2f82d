// Package mock provides test doubles for the ai interfaces.
//
// The mock embedder produces deterministic unit vectors derived from an FNV
// hash of the input text, so similarity comparisons are stable across runs.
// The mock generator echoes the source tags it finds in the prompt. Both
// support behavior injection via function fields for failure-path tests.
package mock
