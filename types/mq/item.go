package mq

// Item encapsulates a payload and its priority, where a lower priority value is retrieved first.
type Item[T any] struct {
	Payload  T
	Priority int
}
