// Package synth generates grounded answers from retrieved chunks. The
// generator is instructed to answer only from the provided context and to
// abstain explicitly when it cannot; every answer carries the sources it
// drew from.
package synth
