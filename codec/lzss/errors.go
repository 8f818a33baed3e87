/*
DESCRIPTION
  errors.go collects the sentinel errors the lzss package returns, per
  the error taxonomy of spec.md §7.
*/

package lzss

import "github.com/pkg/errors"

var (
	// ErrTruncatedStream is returned when the compressed payload ends
	// (including mid-reference) before the caller's pixel budget is
	// filled, or when Decompress meets a zero-distance reference. A
	// partial final group after the budget is filled is not an error.
	ErrTruncatedStream = errors.New("lzss: truncated stream")

	// ErrEncodingRange is returned by Pack when the caller asks for an
	// (offset, length) outside the wire-legal ranges.
	ErrEncodingRange = errors.New("lzss: offset/length outside wire-legal range")

	// ErrSelfReferenceRejected signals a programmer-contract violation:
	// the Matcher produced a candidate the safety predicate must have
	// already filtered out. This should never surface to a caller; it
	// indicates a bug in the Matcher, not malformed input.
	ErrSelfReferenceRejected = errors.New("lzss: matcher produced a zero-distance self reference")

	// ErrZeroDistanceReference is the Ring-Buffer-level signal that a
	// candidate or decoded reference has zero circular distance to the
	// write cursor (the d=0 hazard of spec.md §4.4.1). The Matcher treats
	// it as "unsafe, try another candidate"; Decompress treats it as a
	// truncated/corrupt stream (the locked-down choice for spec.md §9's
	// Open Question on this exact case — see DESIGN.md).
	ErrZeroDistanceReference = errors.New("lzss: reference has zero circular distance to write cursor")
)
