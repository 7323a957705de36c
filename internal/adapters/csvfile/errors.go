package csvfile

import "errors"

// Sentinel kinds for CSV errors.
var (
	ErrNotFound        = errors.New("file not found")
	ErrIO              = errors.New("csv i/o failed")
	ErrMalformedRecord = errors.New("malformed record")
)
