package bufferlayout

import "errors"

// Sentinel errors returned by the aggregator.
// Use errors.Is() to check for these errors.
var (
	// ErrFinalized indicates Update or Finalize was called on an aggregator
	// that has already produced its layout. Aggregators are single-use.
	ErrFinalized = errors.New("aggregator already finalized")

	// ErrDistanceOverflow indicates the gap between two adjacent offsets
	// does not fit in a signed 64-bit integer. Only reachable when negative
	// offsets are mixed with very large positive ones.
	ErrDistanceOverflow = errors.New("distance overflows int64")

	// ErrInvalidKey indicates a layout key is not of the form "@<offset>".
	ErrInvalidKey = errors.New("invalid layout key")
)
