package queue

import "errors"

// Sentinel kinds for queue errors.
var (
	ErrEmpty = errors.New("queue is empty")
)
