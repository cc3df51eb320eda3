//go:build clibs

package envelope

import (
	"bytes"
	"io"

	"github.com/DataDog/zstd"
)

func zstdEncode(buf []byte, level int) ([]byte, error) {
	return zstd.CompressLevel(nil, buf, level)
}

func zstdDecode(buf []byte, maxSize int) ([]byte, error) {
	zr := zstd.NewReader(bytes.NewReader(buf))
	defer zr.Close()

	// read one byte past the limit so an oversized body is noticed
	dst, err := io.ReadAll(io.LimitReader(zr, int64(maxSize)+1))
	if err != nil {
		return nil, ErrCorrupt
	}
	if len(dst) > maxSize {
		return nil, ErrTooLarge
	}
	return dst, nil
}
