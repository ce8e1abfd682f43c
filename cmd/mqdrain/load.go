package main

import (
	"bufio"
	"bytes"
	"errors"
	"fmt"
	"io"

	jsoniter "github.com/json-iterator/go"

	"github.com/couchbase/tools-multiqueue/errors/definitions"
	"github.com/couchbase/tools-multiqueue/log"
	"github.com/couchbase/tools-multiqueue/types/mq"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

const (
	// maxLineSize is the longest record which may be loaded.
	maxLineSize = 16 * 1024 * 1024

	// errorOutputCap bounds the length of the error reported for skipped records.
	errorOutputCap = 4096
)

var (
	errMissingValue     = errors.New("missing value")
	errNegativePriority = errors.New("priority must be non-negative")
)

// record is a single line of input.
type record struct {
	Value    jsoniter.RawMessage `json:"value"`
	Priority *int                `json:"priority"`
}

// decodeRecord decodes a single line of input, using defaultPriority where the record doesn't specify one.
func decodeRecord(line []byte, defaultPriority int) (jsoniter.RawMessage, int, error) {
	var rec record

	err := json.Unmarshal(line, &rec)
	if err != nil {
		return nil, 0, fmt.Errorf("invalid JSON: %w", err)
	}

	if rec.Value == nil {
		return nil, 0, errMissingValue
	}

	priority := defaultPriority
	if rec.Priority != nil {
		priority = *rec.Priority
	}

	if priority < 0 {
		return nil, 0, fmt.Errorf("%w, got %d", errNegativePriority, priority)
	}

	return append(jsoniter.RawMessage(nil), rec.Value...), priority, nil
}

// load reads every record from r into a new multi-queue in a single pass.
//
// Invalid records are skipped and returned as a '*definitions.MultiError' alongside the loaded queue, unless running in
// strict mode in which case the first invalid record aborts the load and no queue is returned.
func load(r io.Reader, opts Options) (*mq.MultiQueue[jsoniter.RawMessage], error) {
	var (
		invalid = &definitions.MultiError{Prefix: "skipped invalid records: ", OutputCap: errorOutputCap}
		fatal   error
	)

	records := func(yield func(jsoniter.RawMessage, int) bool) {
		scanner := bufio.NewScanner(r)
		scanner.Buffer(nil, maxLineSize)

		for line := 1; scanner.Scan(); line++ {
			raw := bytes.TrimSpace(scanner.Bytes())
			if len(raw) == 0 {
				continue
			}

			value, priority, err := decodeRecord(raw, opts.DefaultPriority)
			if err != nil && opts.Strict {
				fatal = fmt.Errorf("line %d: %w", line, err)
				return
			}

			if err != nil {
				log.Warnf("Skipping invalid record on line %d: %v", line, err)
				invalid.Add(fmt.Errorf("line %d: %w", line, err))

				continue
			}

			if !yield(value, priority) {
				return
			}
		}

		if err := scanner.Err(); err != nil {
			fatal = fmt.Errorf("failed to read input: %w", err)
		}
	}

	q := mq.FromSeq[jsoniter.RawMessage](records)
	if fatal != nil {
		return nil, fatal
	}

	return q, invalid.ErrOrNil()
}
