package repository

import "errors"

// Sentinel kinds for history errors.
var (
	ErrEmpty = errors.New("history is empty")
)
