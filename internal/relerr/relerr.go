// Package relerr defines the small set of sentinel errors shared across the
// compressor's layers, so that a caller several packages removed from where an error
// originated can still test for it with errors.Is.
package relerr

import "errors"

var (
	// ErrMalformedInput marks a blob that fails structural validation: header metadata
	// outside the defined tier/precision set, a zero batch length, a total element
	// count mismatch, or an encoded-length sentinel of 0.
	ErrMalformedInput = errors.New("relfloat: malformed input")

	// ErrOutOfRange marks a value that falls outside [1.0, 2.0) after normalization,
	// which can only happen if an upstream batcher violated the max/min invariant.
	ErrOutOfRange = errors.New("relfloat: value out of range")

	// ErrInternalInvariant marks a condition that should be unreachable given a correct
	// implementation: an analyser selecting an undefined key, or a decoder encountering
	// one.
	ErrInternalInvariant = errors.New("relfloat: internal invariant violated")

	// ErrAllocationFailure marks a failed allocation of a scratch or output buffer.
	ErrAllocationFailure = errors.New("relfloat: allocation failed")
)
