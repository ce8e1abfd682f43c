// Package fifo provides a first-in-first-out queue implemented using a growable ring buffer.
package fifo

const (
	// defaultInitialCapacity is the capacity allocated by the first push onto a zero value queue.
	defaultInitialCapacity = 2

	// growthFactor is the factor by which the capacity increases once the ring buffer is full.
	growthFactor = 2
)

// mod returns numerator % denominator where the result is always non-negative, which is the definition that is useful
// when wrapping indexes around the ring.
func mod(numerator, denominator int) int {
	m := numerator % denominator
	if m < 0 {
		m += denominator
	}

	return m
}

// IterFunc is a function which will be executed for every element in the queue.
type IterFunc[T any] func(v T)

// Queue is a FIFO queue of items with type T. Pushing to the back and popping from the front are amortized constant
// time.
//
// The zero value of Queue is an empty queue ready for use.
//
// NOTE: Queue is not safe for concurrent use.
type Queue[T any] struct {
	// head points to the first element in the queue.
	head int

	// tail points to the next free slot at the end of the queue.
	tail int

	// items always has one spare slot, head == tail means the queue is empty.
	items []T
}

// NewQueueWithCapacity creates a queue which can hold the given number of items before it has to grow.
func NewQueueWithCapacity[T any](capacity int) Queue[T] {
	return Queue[T]{items: make([]T, capacity+1)}
}

// Len returns the number of items currently in the queue.
func (q *Queue[T]) Len() int {
	// The items may wrap, in which case count those after the head and then those before the tail.
	if q.head > q.tail {
		return len(q.items) - q.head + q.tail
	}

	return q.tail - q.head
}

// Cap returns the number of items the queue can hold before it has to grow.
func (q *Queue[T]) Cap() int {
	if len(q.items) == 0 {
		return 0
	}

	return len(q.items) - 1
}

// Empty returns whether there are no items in the queue.
func (q *Queue[T]) Empty() bool {
	return q.head == q.tail
}

// full returns whether pushing another item requires the ring to grow.
func (q *Queue[T]) full() bool {
	return q.Len() >= q.Cap()
}

// grow reallocates the ring with a larger capacity, compacting the existing items to the start of the new ring.
func (q *Queue[T]) grow() {
	capacity := q.Len() * growthFactor
	if capacity < defaultInitialCapacity {
		capacity = defaultInitialCapacity
	}

	*q = q.withCapacity(capacity)
}

// withCapacity returns a copy of the queue whose ring has the given capacity, which must be at least Len.
func (q *Queue[T]) withCapacity(capacity int) Queue[T] {
	n := NewQueueWithCapacity[T](capacity)

	q.Iter(func(v T) {
		n.items[n.tail] = v
		n.tail++
	})

	return n
}

// PushBack adds v to the back of the queue, growing the queue if required.
func (q *Queue[T]) PushBack(v T) {
	if q.full() {
		q.grow()
	}

	q.items[q.tail] = v
	q.tail = mod(q.tail+1, len(q.items))
}

// PopFront removes and returns the item at the front of the queue. If the queue is empty then it returns the default
// value and false.
func (q *Queue[T]) PopFront() (T, bool) {
	if q.Empty() {
		return *new(T), false
	}

	v := q.items[q.head]

	// Release the slot so the queue doesn't keep the popped value reachable.
	q.items[q.head] = *new(T)
	q.head = mod(q.head+1, len(q.items))

	return v, true
}

// Front returns a pointer to the item at the front of the queue, or nil if the queue is empty.
//
// NOTE: The pointer is only valid until the next call to PushBack or PopFront.
func (q *Queue[T]) Front() *T {
	if q.Empty() {
		return nil
	}

	return &q.items[q.head]
}

// Iter calls fn on each item in the queue, starting from the front.
func (q *Queue[T]) Iter(fn IterFunc[T]) {
	end := q.tail

	// If the head is after the tail then iterate to the end of the ring and then from the beginning up to tail.
	if q.head > q.tail {
		end = len(q.items)
	}

	for i := q.head; i < end; i++ {
		fn(q.items[i])
	}

	if q.tail >= q.head {
		return
	}

	for i := 0; i < q.tail; i++ {
		fn(q.items[i])
	}
}

// Clone returns an independent copy of the queue, the copy is compacted to the number of items currently held.
func (q *Queue[T]) Clone() Queue[T] {
	if q.Empty() {
		return Queue[T]{}
	}

	return q.withCapacity(q.Len())
}
