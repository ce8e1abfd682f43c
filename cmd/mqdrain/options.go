package main

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"time"

	"github.com/couchbase/tools-multiqueue/envvar"
)

const (
	modeDrain    = "drain"
	modeSnapshot = "snapshot"
	modeStats    = "stats"
)

// Environment variables which override the defaults of flags not given on the command line.
const (
	envRate            = "MQDRAIN_RATE"
	envBurst           = "MQDRAIN_BURST"
	envDefaultPriority = "MQDRAIN_DEFAULT_PRIORITY"
	envStrict          = "MQDRAIN_STRICT"
	envTimeout         = "MQDRAIN_TIMEOUT"
	envVerbose         = "MQDRAIN_VERBOSE"
)

// stdinInput is the input name which reads from stdin.
const stdinInput = "-"

// Options encapsulates the configuration for a single run of mqdrain.
type Options struct {
	// Input is the file containing the JSON lines to load. Defaults to '-' which reads from stdin.
	Input string

	// Mode is one of 'drain', 'snapshot' or 'stats'. Defaults to 'drain'.
	Mode string

	// WithPriority wraps each drained value in an object which includes its priority.
	WithPriority bool

	// Rate is the maximum number of items written per second when draining. Zero means no limit.
	Rate float64

	// Burst is the burst size for the rate limiter. Defaults to 1.
	Burst int

	// DefaultPriority is used for records which don't specify a priority.
	DefaultPriority int

	// Strict aborts on the first invalid record, rather than skipping it.
	Strict bool

	// Timeout bounds the whole run. Zero means no timeout.
	Timeout time.Duration

	// Verbose enables trace level logging.
	Verbose bool
}

func (o *Options) defaults() {
	if o.Input == "" {
		o.Input = stdinInput
	}

	if o.Mode == "" {
		o.Mode = modeDrain
	}

	if o.Burst <= 0 {
		o.Burst = 1
	}
}

// applyEnv overrides any option whose flag was not explicitly set with the value of its environment variable.
func (o *Options) applyEnv(set map[string]bool) {
	if v, ok := envvar.GetFloat64(envRate); ok && !set["rate"] {
		o.Rate = v
	}

	if v, ok := envvar.GetInt(envBurst); ok && !set["burst"] {
		o.Burst = v
	}

	if v, ok := envvar.GetInt(envDefaultPriority); ok && !set["default-priority"] {
		o.DefaultPriority = v
	}

	if v, ok := envvar.GetBool(envStrict); ok && !set["strict"] {
		o.Strict = v
	}

	if v, ok := envvar.GetDuration(envTimeout); ok && !set["timeout"] {
		o.Timeout = v
	}

	if v, ok := envvar.GetBool(envVerbose); ok && !set["verbose"] {
		o.Verbose = v
	}
}

func (o *Options) validate() error {
	switch o.Mode {
	case modeDrain, modeSnapshot, modeStats:
	default:
		return fmt.Errorf("unknown mode '%s', expected one of '%s', '%s' or '%s'", o.Mode, modeDrain, modeSnapshot,
			modeStats)
	}

	if o.Rate < 0 {
		return fmt.Errorf("rate must be non-negative, got %g", o.Rate)
	}

	if o.DefaultPriority < 0 {
		return fmt.Errorf("default priority must be non-negative, got %d", o.DefaultPriority)
	}

	if o.Timeout < 0 {
		return fmt.Errorf("timeout must be non-negative, got %s", o.Timeout)
	}

	return nil
}

// parseOptions parses the command line arguments, applies any environment overrides then fills in the defaults.
func parseOptions(args []string, output io.Writer) (Options, error) {
	var (
		opts Options
		fs   = flag.NewFlagSet("mqdrain", flag.ContinueOnError)
	)

	fs.SetOutput(output)

	fs.StringVar(&opts.Input, "input", stdinInput, "file to read JSON lines from, '-' reads from stdin")
	fs.StringVar(&opts.Mode, "mode", modeDrain, "one of 'drain', 'snapshot' or 'stats'")
	fs.BoolVar(&opts.WithPriority, "with-priority", false, "include the priority of each drained value")
	fs.Float64Var(&opts.Rate, "rate", 0, "maximum items written per second when draining, zero is unlimited")
	fs.IntVar(&opts.Burst, "burst", 1, "burst size when rate limiting")
	fs.IntVar(&opts.DefaultPriority, "default-priority", 0, "priority of records which don't specify one")
	fs.BoolVar(&opts.Strict, "strict", false, "abort on the first invalid record")
	fs.DurationVar(&opts.Timeout, "timeout", 0, "maximum duration of the run, zero is unlimited")
	fs.BoolVar(&opts.Verbose, "verbose", false, "enable trace logging")

	err := fs.Parse(args)
	if err != nil {
		return Options{}, err
	}

	if fs.NArg() != 0 {
		return Options{}, errors.New("unexpected positional arguments, use '-input' to name the input file")
	}

	set := make(map[string]bool)
	fs.Visit(func(f *flag.Flag) { set[f.Name] = true })

	opts.applyEnv(set)
	opts.defaults()

	return opts, opts.validate()
}
