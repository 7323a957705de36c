package demo

import "errors"

// Sentinel error kinds for this package.
var (
	ErrUnknownPart = errors.New("unknown demo part")
	ErrPartFailed  = errors.New("demo part failed")
)
