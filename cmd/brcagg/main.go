package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"strconv"
	"time"

	"github.com/dhartunian/brcagg/internal/cursor"
	"github.com/dhartunian/brcagg/internal/engine"
	"github.com/dhartunian/brcagg/internal/logger"
	"github.com/dhartunian/brcagg/internal/partition"
	"github.com/dhartunian/brcagg/internal/report"
	"github.com/dhartunian/brcagg/internal/source"
)

var errUsage = errors.New("usage")

// errMismatch is returned when the output differs from the -expect file.
var errMismatch = errors.New("output does not match expected")

type options struct {
	path   string
	cfg    engine.Config
	format report.Format
	expect string
	digest bool
	timing bool
}

func parseArgs(args []string, stderr io.Writer) (options, error) {
	fs := flag.NewFlagSet("brcagg", flag.ContinueOnError)
	fs.SetOutput(stderr)
	fs.Usage = func() {
		fmt.Fprintln(fs.Output(), "usage: brcagg [flags] <file-path> [line-count]")
		fs.PrintDefaults()
	}

	workers := fs.Int("workers", 0, "number of workers (0 uses every available CPU)")
	remainder := fs.String("remainder", "drop", `leftover lines of a bounded run: "drop" or "last"`)
	start := fs.String("start", "seek", `how workers reach their range: "seek" or "skip"`)
	kind := fs.String("source", "mmap", `file backing: "mmap" or "file"`)
	format := fs.String("format", "braces", `output format: "braces" or "lines"`)
	expect := fs.String("expect", "", "compare the output against this file")
	digest := fs.Bool("digest", false, "print an xxh3 digest of the result")
	timing := fs.Bool("timing", false, "log the elapsed time")
	level := fs.String("log-level", "WARN", "DEBUG, INFO, WARN or ERROR")

	if err := fs.Parse(args); err != nil {
		return options{}, errUsage
	}

	var opts options
	if fs.NArg() < 1 || fs.NArg() > 2 {
		fs.Usage()
		return opts, errUsage
	}
	opts.path = fs.Arg(0)
	if fs.NArg() == 2 {
		n, err := strconv.ParseUint(fs.Arg(1), 10, 64)
		if err != nil {
			return opts, fmt.Errorf("%w: line count %q: %v", errUsage, fs.Arg(1), err)
		}
		opts.cfg.Lines = engine.Limit(n)
	}

	var err error
	if opts.cfg.Remainder, err = partition.ParsePolicy(*remainder); err != nil {
		return opts, fmt.Errorf("%w: %v", errUsage, err)
	}
	if opts.cfg.Start, err = cursor.ParseStrategy(*start); err != nil {
		return opts, fmt.Errorf("%w: %v", errUsage, err)
	}
	if opts.cfg.Source, err = source.ParseKind(*kind); err != nil {
		return opts, fmt.Errorf("%w: %v", errUsage, err)
	}
	if opts.format, err = report.ParseFormat(*format); err != nil {
		return opts, fmt.Errorf("%w: %v", errUsage, err)
	}
	opts.cfg.Workers = *workers
	opts.cfg.Logger = logger.New(*level, stderr)
	opts.expect = *expect
	opts.digest = *digest
	opts.timing = *timing
	return opts, nil
}

func run(ctx context.Context, args []string, stdout, stderr io.Writer) error {
	opts, err := parseArgs(args, stderr)
	if err != nil {
		return err
	}

	var want []byte
	if opts.expect != "" {
		if want, err = os.ReadFile(opts.expect); err != nil {
			return err
		}
	}

	began := time.Now()
	result, err := engine.AggregateFile(ctx, opts.path, opts.cfg)
	if err != nil {
		return err
	}
	if opts.timing {
		fmt.Fprintf(stderr, "aggregated %d records over %d keys in %s\n", result.Count(), len(result), time.Since(began))
	}

	out := report.Render(result, opts.format)
	if opts.format == report.FormatBraces {
		fmt.Fprintln(stdout, out)
	} else {
		fmt.Fprint(stdout, out)
	}
	if opts.digest {
		fmt.Fprintf(stdout, "%016x\n", report.Digest(result))
	}

	if opts.expect != "" {
		expected, actual := string(want), out
		if opts.format == report.FormatBraces {
			expected, actual = report.Split(expected), report.Split(actual)
		}
		if d := report.Compare(expected, actual); d != "" {
			fmt.Fprintln(stderr, d)
			return errMismatch
		}
	}
	return nil
}

func main() {
	err := run(context.Background(), os.Args[1:], os.Stdout, os.Stderr)
	switch {
	case err == nil:
	case errors.Is(err, errUsage):
		if err != errUsage {
			fmt.Fprintf(os.Stderr, "brcagg: %v\n", err)
		}
		os.Exit(2)
	default:
		fmt.Fprintf(os.Stderr, "brcagg: %v\n", err)
		os.Exit(1)
	}
}
