// Package fuzzcheck holds the invariants shared by the fuzz targets and the
// bfuzz command, plus input shrinking for counterexamples.
package fuzzcheck

import (
	"bytes"
	"errors"
	"fmt"
	"math/rand/v2"

	"github.com/dgryski/go-ddmin"

	bencode "github.com/lpeterse/bencode-minimal"
)

var (
	ErrReencode = errors.New("re-encoded value does not decode")
	ErrUnstable = errors.New("decode/encode is not stable")
	ErrBudget   = errors.New("value needs a different budget than reported")
)

// Check decodes doc and, if that succeeds, verifies that the canonical
// re-encoding decodes to an equal value with exactly Allocs units of budget
// and encodes to the same bytes again. Documents that do not decode pass.
func Check(doc []byte, maxAllocs int) error {
	v, ok := bencode.Decode(doc, maxAllocs)
	if !ok {
		return nil
	}

	enc := v.Encode()
	if len(enc) != v.Size() {
		return fmt.Errorf("%w: size %d, encoded %d bytes", ErrUnstable, v.Size(), len(enc))
	}

	allocs := v.Allocs()
	if allocs > maxAllocs {
		return fmt.Errorf("%w: decoded with %d, reports %d", ErrBudget, maxAllocs, allocs)
	}

	w, ok := bencode.Decode(enc, allocs)
	if !ok {
		return ErrReencode
	}
	if allocs > 0 {
		if _, ok := bencode.Decode(enc, allocs-1); ok {
			return fmt.Errorf("%w: decoded with %d, reports %d", ErrBudget, allocs-1, allocs)
		}
	}

	if !v.Equal(w) || !bytes.Equal(enc, w.Encode()) {
		return ErrUnstable
	}
	return nil
}

// Shrink reduces doc to a 1-minimal input for which failing still reports
// true.
func Shrink(doc []byte, failing func([]byte) bool) []byte {
	return ddmin.Minimize(doc, func(d []byte) ddmin.Result {
		if failing(d) {
			return ddmin.Fail
		}
		return ddmin.Pass
	})
}

var alphabet = []byte("ilde:-0123456789")

// Generate returns a random document of up to maxLen bytes. Most bytes come
// from the token alphabet so that a useful share of documents decode.
func Generate(r *rand.Rand, maxLen int) []byte {
	doc := make([]byte, r.IntN(maxLen+1))
	for i := range doc {
		if r.IntN(8) == 0 {
			doc[i] = byte(r.IntN(256))
			continue
		}
		doc[i] = alphabet[r.IntN(len(alphabet))]
	}
	return doc
}
