package main

import (
	"bufio"
	"context"
	"fmt"
	"io"

	jsoniter "github.com/json-iterator/go"
	"golang.org/x/time/rate"

	"github.com/couchbase/tools-multiqueue/log"
	"github.com/couchbase/tools-multiqueue/types/mq"
)

// drained is the output format of a value drained with '-with-priority'.
type drained struct {
	Value    jsoniter.RawMessage `json:"value"`
	Priority int                 `json:"priority"`
}

// run loads the queue from in then writes it to out according to the configured mode.
//
// When records were skipped the output is still written, and the error describing the skipped records is returned.
func run(ctx context.Context, opts Options, in io.Reader, out io.Writer) error {
	q, loadErr := load(in, opts)
	if q == nil {
		return fmt.Errorf("failed to load items: %w", loadErr)
	}

	log.Infof("Loaded %d items across %d priority levels", q.Size(), q.MaxPriority())

	w := bufio.NewWriter(out)

	var err error

	switch opts.Mode {
	case modeDrain:
		err = drain(ctx, q, opts, w)
	case modeSnapshot:
		err = snapshot(q, w)
	case modeStats:
		err = stats(q, w)
	}

	if flushErr := w.Flush(); err == nil && flushErr != nil {
		err = fmt.Errorf("failed to flush output: %w", flushErr)
	}

	if err != nil {
		return err
	}

	return loadErr
}

// drain writes every item in retrieval order, one JSON value per line, waiting on the rate limiter between items.
func drain(ctx context.Context, q *mq.MultiQueue[jsoniter.RawMessage], opts Options, w io.Writer) error {
	var limiter *rate.Limiter
	if opts.Rate > 0 {
		limiter = rate.NewLimiter(rate.Limit(opts.Rate), opts.Burst)
	}

	var (
		encoder = json.NewEncoder(w)
		written int
	)

	err := q.Drain(func(item mq.Item[jsoniter.RawMessage]) error {
		if err := wait(ctx, limiter); err != nil {
			return err
		}

		var err error
		if opts.WithPriority {
			err = encoder.Encode(drained{Value: item.Payload, Priority: item.Priority})
		} else {
			err = encoder.Encode(item.Payload)
		}

		if err != nil {
			return fmt.Errorf("failed to write item: %w", err)
		}

		written++

		log.Tracef("Wrote item %d with priority %d", written, item.Priority)

		return nil
	})
	if err != nil {
		return fmt.Errorf("failed to drain queue after writing %d items, %d items remain: %w", written, q.Size(), err)
	}

	log.Infof("Drained %d items", written)

	return nil
}

// wait blocks until the limiter allows another item, or returns the context error if it's cancelled first.
func wait(ctx context.Context, limiter *rate.Limiter) error {
	if limiter == nil {
		return ctx.Err()
	}

	return limiter.Wait(ctx)
}

// snapshot writes the JSON encoding of the queue on a single line.
func snapshot(q *mq.MultiQueue[jsoniter.RawMessage], w io.Writer) error {
	data, err := json.Marshal(q)
	if err != nil {
		return fmt.Errorf("failed to marshal queue: %w", err)
	}

	_, err = fmt.Fprintf(w, "%s\n", data)

	return err
}

// stats writes the length of each allocated priority level followed by the totals.
func stats(q *mq.MultiQueue[jsoniter.RawMessage], w io.Writer) error {
	for p := 0; p < q.MaxPriority(); p++ {
		if _, err := fmt.Fprintf(w, "priority=%d len=%d\n", p, q.LevelLen(p)); err != nil {
			return err
		}
	}

	_, err := fmt.Fprintf(w, "total=%d levels=%d\n", q.Size(), q.MaxPriority())

	return err
}
