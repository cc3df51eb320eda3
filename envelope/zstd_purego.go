//go:build !clibs

package envelope

import (
	"bytes"
	"errors"
	"io"

	"github.com/klauspost/compress/zstd"
)

func zstdEncode(buf []byte, level int) ([]byte, error) {
	encoder, err := zstd.NewWriter(nil, zstd.WithEncoderLevel(zstd.EncoderLevelFromZstd(level)))
	if err != nil {
		return nil, err
	}
	defer encoder.Close()

	return encoder.EncodeAll(buf, nil), nil
}

func zstdDecode(buf []byte, maxSize int) ([]byte, error) {
	// the memory limit also caps the window size, so it never drops below
	// DefaultMaxSize; the output itself is bounded by the LimitReader
	zr, err := zstd.NewReader(bytes.NewReader(buf),
		zstd.WithDecoderConcurrency(1),
		zstd.WithDecoderMaxMemory(uint64(max(maxSize, DefaultMaxSize))+1))
	if err != nil {
		return nil, ErrCorrupt
	}
	defer zr.Close()

	// read one byte past the limit so an oversized body is noticed
	dst, err := io.ReadAll(io.LimitReader(zr, int64(maxSize)+1))
	switch {
	case errors.Is(err, zstd.ErrDecoderSizeExceeded), errors.Is(err, zstd.ErrWindowSizeExceeded):
		return nil, ErrTooLarge
	case err != nil:
		return nil, ErrCorrupt
	case len(dst) > maxSize:
		return nil, ErrTooLarge
	}
	return dst, nil
}
