// Package mq exposes a generic fixed priority multi-queue, a set of FIFO queues indexed by priority level where the
// lowest numbered non-empty level always supplies the next item.
//
// Unlike the heap based priority queue, items are never compared; each level preserves arrival order and a level is
// only considered once every level before it is empty.
package mq

import (
	"iter"

	"golang.org/x/exp/constraints"
	"golang.org/x/exp/maps"
	"golang.org/x/exp/slices"

	"github.com/couchbase/tools-multiqueue/types/fifo"
)

// MultiQueue is a strict priority queue made up of one FIFO queue per priority level, where level zero is the highest
// priority.
//
// Levels are allocated lazily, pushing at priority 'p' allocates every level up to and including 'p'. Levels are never
// released once allocated, even when emptied, so 'MaxPriority' only shrinks through 'Assign', 'MoveFrom', 'Swap' or
// 'UnmarshalJSON'.
//
// The zero value of MultiQueue is an empty queue ready for use.
//
// NOTE: MultiQueue is not safe for concurrent use and needs to be wrapped in a lock to be shared safely between
// goroutines.
type MultiQueue[T any] struct {
	levels []fifo.Queue[T]
}

// New returns an empty multi-queue with no allocated priority levels.
func New[T any]() *MultiQueue[T] {
	return &MultiQueue[T]{}
}

// FromSeq returns a multi-queue loaded by pushing every (value, priority) pair yielded by seq, in the order they're
// yielded. The result is identical to pushing each pair individually.
func FromSeq[T any](seq iter.Seq2[T, int]) *MultiQueue[T] {
	q := New[T]()

	for v, priority := range seq {
		q.Push(v, priority)
	}

	return q
}

// FromItems returns a multi-queue loaded by pushing the given items in order.
func FromItems[T any](items ...Item[T]) *MultiQueue[T] {
	q := New[T]()

	for _, item := range items {
		q.Push(item.Payload, item.Priority)
	}

	return q
}

// FromMap returns a multi-queue loaded from a map of values to their priority. Values are pushed in ascending order,
// so values sharing a priority are retrieved smallest first.
func FromMap[T constraints.Ordered](m map[T]int) *MultiQueue[T] {
	values := maps.Keys(m)
	slices.Sort(values)

	q := New[T]()

	for _, v := range values {
		q.Push(v, m[v])
	}

	return q
}

// Move returns a new multi-queue which has taken ownership of the contents of src, src is left with no allocated
// priority levels.
func Move[T any](src *MultiQueue[T]) *MultiQueue[T] {
	q := New[T]()
	q.MoveFrom(src)

	return q
}

// Push appends v to the queue for the given priority, allocating any missing levels up to and including it.
//
// NOTE: Panics with a '*NegativePriorityError' if priority is negative.
func (q *MultiQueue[T]) Push(v T, priority int) {
	if priority < 0 {
		panic(&NegativePriorityError{Priority: priority})
	}

	if priority >= len(q.levels) {
		q.levels = append(q.levels, make([]fifo.Queue[T], priority+1-len(q.levels))...)
	}

	q.levels[priority].PushBack(v)
}

// next returns the index of the first non-empty level, or -1 if every level is empty.
func (q *MultiQueue[T]) next() int {
	for p := range q.levels {
		if !q.levels[p].Empty() {
			return p
		}
	}

	return -1
}

// Top returns a pointer to the next item, the front of the highest priority non-empty level. The pointer is valid
// until the queue is next modified.
//
// NOTE: Panics with 'ErrEmpty' if the queue is empty, use 'Peek' where the queue may be empty.
func (q *MultiQueue[T]) Top() *T {
	p := q.next()
	if p < 0 {
		panic(ErrEmpty)
	}

	return q.levels[p].Front()
}

// Peek returns a copy of the next item, returning the default value and false if the queue is empty.
func (q *MultiQueue[T]) Peek() (T, bool) {
	p := q.next()
	if p < 0 {
		return *new(T), false
	}

	return *q.levels[p].Front(), true
}

// Pop removes the next item.
//
// NOTE: Panics with 'ErrEmpty' if the queue is empty.
func (q *MultiQueue[T]) Pop() {
	p := q.next()
	if p < 0 {
		panic(ErrEmpty)
	}

	q.levels[p].PopFront()
}

// Dequeue removes and returns the next item along with its priority, returning false if the queue is empty.
func (q *MultiQueue[T]) Dequeue() (Item[T], bool) {
	p := q.next()
	if p < 0 {
		return Item[T]{}, false
	}

	v, _ := q.levels[p].PopFront()

	return Item[T]{Payload: v, Priority: p}, true
}

// Size returns the number of items across all priority levels.
func (q *MultiQueue[T]) Size() int {
	var n int

	for p := range q.levels {
		n += q.levels[p].Len()
	}

	return n
}

// Empty returns whether there are no items in the queue.
func (q *MultiQueue[T]) Empty() bool {
	return q.Size() == 0
}

// MaxPriority returns the number of allocated priority levels, which is one more than the highest priority pushed.
// Emptied levels are still counted.
func (q *MultiQueue[T]) MaxPriority() int {
	return len(q.levels)
}

// LevelLen returns the number of items queued at the given priority, unallocated levels have none.
func (q *MultiQueue[T]) LevelLen(priority int) int {
	if priority < 0 || priority >= len(q.levels) {
		return 0
	}

	return q.levels[priority].Len()
}

// cloneLevels returns a deep copy of the allocated levels.
func (q *MultiQueue[T]) cloneLevels() []fifo.Queue[T] {
	if q.levels == nil {
		return nil
	}

	levels := make([]fifo.Queue[T], len(q.levels))

	for p := range q.levels {
		levels[p] = q.levels[p].Clone()
	}

	return levels
}

// Clone returns an independent copy of the queue with the same allocated levels and items.
func (q *MultiQueue[T]) Clone() *MultiQueue[T] {
	return &MultiQueue[T]{levels: q.cloneLevels()}
}

// Assign replaces the contents of the queue with a copy of other, afterwards both have the same size and number of
// allocated levels.
func (q *MultiQueue[T]) Assign(other *MultiQueue[T]) {
	if q == other {
		return
	}

	q.levels = other.cloneLevels()
}

// MoveFrom replaces the contents of the queue with those of other, leaving other with no allocated levels.
func (q *MultiQueue[T]) MoveFrom(other *MultiQueue[T]) {
	if q == other {
		return
	}

	q.levels, other.levels = other.levels, nil
}

// Swap exchanges the contents of the queue with other without copying any items.
func (q *MultiQueue[T]) Swap(other *MultiQueue[T]) {
	q.levels, other.levels = other.levels, q.levels
}

// Swap exchanges the contents of the two queues, see 'MultiQueue.Swap'.
func Swap[T any](a, b *MultiQueue[T]) {
	a.Swap(b)
}

// All returns an iterator over the queued items and their priorities in the order they would be retrieved, without
// removing them. The queue must not be modified during iteration.
func (q *MultiQueue[T]) All() iter.Seq2[T, int] {
	return func(yield func(T, int) bool) {
		for p := range q.levels {
			stopped := false

			q.levels[p].Iter(func(v T) {
				if !stopped && !yield(v, p) {
					stopped = true
				}
			})

			if stopped {
				return
			}
		}
	}
}

// Drain removes all items from the queue in retrieval order running the given function on each item. In the event of
// an error, dequeuing stops early, and returns the error.
func (q *MultiQueue[T]) Drain(fn func(item Item[T]) error) error {
	for {
		item, ok := q.Dequeue()
		if !ok {
			return nil
		}

		if err := fn(item); err != nil {
			return err
		}
	}
}
