package mq

import (
	"fmt"

	jsoniter "github.com/json-iterator/go"

	"github.com/couchbase/tools-multiqueue/types/fifo"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

// MarshalJSON encodes the queue as an array with one array of items per allocated level, empty levels are kept so that
// the number of levels survives a round trip e.g. '[[1,2],[],[3]]'.
func (q *MultiQueue[T]) MarshalJSON() ([]byte, error) {
	levels := make([][]T, len(q.levels))

	for p := range q.levels {
		level := make([]T, 0, q.levels[p].Len())
		q.levels[p].Iter(func(v T) { level = append(level, v) })
		levels[p] = level
	}

	return json.Marshal(levels)
}

// UnmarshalJSON replaces the contents of the queue with the levels decoded from data, in the format produced by
// 'MarshalJSON'.
func (q *MultiQueue[T]) UnmarshalJSON(data []byte) error {
	var levels [][]T

	err := json.Unmarshal(data, &levels)
	if err != nil {
		return fmt.Errorf("failed to unmarshal multi-queue levels: %w", err)
	}

	if levels == nil {
		q.levels = nil
		return nil
	}

	decoded := make([]fifo.Queue[T], len(levels))

	for p, level := range levels {
		if len(level) == 0 {
			continue
		}

		decoded[p] = fifo.NewQueueWithCapacity[T](len(level))

		for _, v := range level {
			decoded[p].PushBack(v)
		}
	}

	q.levels = decoded

	return nil
}
