package mq

import (
	"errors"
	"fmt"
)

// ErrEmpty is the value 'Top' and 'Pop' panic with when called on an empty 'MultiQueue'. Calling either on an empty
// queue is a bug in the caller, which should check 'Empty' first.
var ErrEmpty = errors.New("top or pop called on an empty multi-queue")

// NegativePriorityError is the value 'Push' panics with when given a priority below zero.
type NegativePriorityError struct {
	Priority int
}

func (e *NegativePriorityError) Error() string {
	return fmt.Sprintf("priority must be non-negative, got %d", e.Priority)
}
