// bdump decodes bencode documents and prints them. With no file arguments
// it reads a single document from stdin.
package main

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/davecgh/go-spew/spew"
	"github.com/spf13/pflag"
	"go.uber.org/zap"

	bencode "github.com/lpeterse/bencode-minimal"
	"github.com/lpeterse/bencode-minimal/envelope"
)

type options struct {
	maxAllocs   int
	strict      bool
	useEnvelope bool
	useSpew     bool
	reencode    bool
	verbose     bool
}

func main() {
	if err := run(os.Args[1:], os.Stdin, os.Stdout); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

func run(args []string, stdin io.Reader, stdout io.Writer) error {
	var opts options

	flagSet := pflag.NewFlagSet("bdump", pflag.ContinueOnError)
	flagSet.IntVar(&opts.maxAllocs, "max-allocs", 1<<20, "allocation budget per document")
	flagSet.BoolVar(&opts.strict, "strict", false, "reject bytes after the top-level value")
	flagSet.BoolVarP(&opts.useEnvelope, "envelope", "e", false, "input is an envelope document")
	flagSet.BoolVarP(&opts.useSpew, "spew", "s", false, "dump the decoded Go values with spew")
	flagSet.BoolVarP(&opts.reencode, "reencode", "r", false, "write the canonical encoding instead of a dump")
	flagSet.BoolVarP(&opts.verbose, "verbose", "v", false, "log debug information to stderr")

	if err := flagSet.Parse(args); err != nil {
		if errors.Is(err, pflag.ErrHelp) {
			return nil
		}
		return err
	}

	logger, err := newLogger(opts.verbose)
	if err != nil {
		return err
	}
	defer logger.Sync()
	envelope.SetLogger(logger)

	if flagSet.NArg() == 0 {
		b, err := io.ReadAll(stdin)
		if err != nil {
			return fmt.Errorf("reading stdin: %w", err)
		}
		return process(opts, logger, stdout, "stdin", b)
	}

	for _, arg := range flagSet.Args() {
		b, err := os.ReadFile(arg)
		if err != nil {
			return fmt.Errorf("reading %s: %w", arg, err)
		}
		if err := process(opts, logger, stdout, arg, b); err != nil {
			return err
		}
	}
	return nil
}

func newLogger(verbose bool) (*zap.Logger, error) {
	if verbose {
		return zap.NewDevelopment()
	}
	config := zap.NewProductionConfig()
	config.Level = zap.NewAtomicLevelAt(zap.WarnLevel)
	return config.Build()
}

func decode(opts options, b []byte) (bencode.Value, error) {
	if opts.useEnvelope {
		return envelope.NewDecoder(opts.maxAllocs).Unmarshal(b)
	}
	d := bencode.Decoder{MaxAllocs: opts.maxAllocs, Strict: opts.strict}
	return d.Unmarshal(b)
}

func process(opts options, logger *zap.Logger, w io.Writer, name string, b []byte) error {
	v, err := decode(opts, b)
	if err != nil {
		return fmt.Errorf("processing %s: %w", name, err)
	}

	logger.Debug("decoded document",
		zap.String("name", name),
		zap.Int("size", len(b)),
		zap.Int("allocs", v.Allocs()))

	switch {
	case opts.reencode:
		_, err = v.WriteTo(w)
	case opts.useSpew:
		var i any
		if err := bencode.FromValue(v, &i); err != nil {
			return err
		}
		spew.Fdump(w, i)
	default:
		_, err = fmt.Fprintln(w, v)
	}
	return err
}
