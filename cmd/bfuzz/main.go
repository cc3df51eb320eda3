// bfuzz feeds random documents to the decoder and checks that everything it
// accepts re-encodes to a stable canonical form. A counterexample is shrunk
// before it is reported.
package main

import (
	"encoding/hex"
	"errors"
	"fmt"
	"math/rand/v2"
	"os"
	"time"

	"github.com/spf13/pflag"
	"go.uber.org/zap"

	"github.com/lpeterse/bencode-minimal/internal/fuzzcheck"
)

func main() {
	if err := run(os.Args[1:]); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

func run(args []string) error {
	var (
		iterations int
		seed       uint64
		maxLen     int
		maxAllocs  int
		verbose    bool
	)

	flagSet := pflag.NewFlagSet("bfuzz", pflag.ContinueOnError)
	flagSet.IntVarP(&iterations, "iterations", "n", 0, "number of documents to try, 0 runs forever")
	flagSet.Uint64Var(&seed, "seed", uint64(time.Now().UnixNano()), "random seed")
	flagSet.IntVar(&maxLen, "max-len", 200, "maximum document length")
	flagSet.IntVar(&maxAllocs, "max-allocs", 64, "allocation budget per document")
	flagSet.BoolVarP(&verbose, "verbose", "v", false, "log every decodable document")

	if err := flagSet.Parse(args); err != nil {
		if errors.Is(err, pflag.ErrHelp) {
			return nil
		}
		return err
	}

	logger, err := zap.NewDevelopment()
	if err != nil {
		return err
	}
	defer logger.Sync()

	logger.Info("fuzzing", zap.Uint64("seed", seed), zap.Int("max-len", maxLen))

	r := rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))

	for i := 0; iterations == 0 || i < iterations; i++ {
		doc := fuzzcheck.Generate(r, maxLen)

		err := fuzzcheck.Check(doc, maxAllocs)
		if err == nil {
			if verbose {
				logger.Debug("checked", zap.ByteString("doc", doc))
			}
			continue
		}

		small := fuzzcheck.Shrink(doc, func(d []byte) bool {
			return fuzzcheck.Check(d, maxAllocs) != nil
		})
		logger.Error("counterexample",
			zap.Int("iteration", i),
			zap.Error(err),
			zap.String("shrunk", hex.Dump(small)))
		return err
	}

	logger.Info("done", zap.Int("iterations", iterations))
	return nil
}
