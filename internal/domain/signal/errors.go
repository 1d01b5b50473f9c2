package signal

import "errors"

// Sentinel error kinds for this package, matchable via errors.Is.
var (
	// ErrMissingColumn marks input lacking a time or resistance column.
	ErrMissingColumn = errors.New("missing required column")

	// ErrBadInput marks rows that cannot be parsed.
	ErrBadInput = errors.New("bad signal input")
)
