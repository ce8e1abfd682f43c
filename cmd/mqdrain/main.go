// Command mqdrain loads (value, priority) records into a fixed priority multi-queue and writes them back out in strict
// priority order.
//
// Each line of input is a JSON object such as '{"value": {"task": "reindex"}, "priority": 1}', where a lower priority
// is written first and records sharing a priority keep their input order.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/couchbase/tools-multiqueue/log"
)

func main() {
	os.Exit(mainWithStatus(os.Args[1:], os.Stdin, os.Stdout, os.Stderr))
}

func mainWithStatus(args []string, stdin io.Reader, stdout, stderr io.Writer) int {
	opts, err := parseOptions(args, stderr)
	if errors.Is(err, flag.ErrHelp) {
		return 0
	}

	if err != nil {
		fmt.Fprintf(stderr, "Error: %v\n", err)
		return 1
	}

	setupLogging(stderr, opts.Verbose)

	log.Debugf("Running with arguments: %s", strings.Join(log.UserTagArguments(args, []string{"-input"}), " "))

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if opts.Timeout > 0 {
		var cancel context.CancelFunc

		ctx, cancel = context.WithTimeout(ctx, opts.Timeout)
		defer cancel()
	}

	in, err := openInput(opts.Input, stdin)
	if err != nil {
		log.Errorf("%v", err)
		return 1
	}
	defer in.Close()

	err = run(ctx, opts, in, stdout)
	if err != nil {
		log.Errorf("Failed to %s queue: %v", opts.Mode, err)
		return 1
	}

	return 0
}

// setupLogging sends log output to w as structured text, verbose output includes trace logging.
func setupLogging(w io.Writer, verbose bool) {
	level := log.SlogLevel(log.LevelInfo)
	if verbose {
		level = log.SlogLevel(log.LevelTrace)
	}

	log.SetLogger(log.NewSlogLogger(slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: level}))))
}

// openInput opens the named input file, or returns stdin when reading from '-'.
func openInput(name string, stdin io.Reader) (io.ReadCloser, error) {
	if name == stdinInput {
		log.Infof("Reading items from stdin")
		return io.NopCloser(stdin), nil
	}

	log.Infof("Reading items from %s", log.UserDataValue(name))

	file, err := os.Open(name)
	if err != nil {
		return nil, fmt.Errorf("failed to open input file: %w", err)
	}

	return file, nil
}
