package envelope

import (
	"bytes"
	"encoding/binary"
	"io"

	"github.com/klauspost/compress/zlib"
)

// ZlibCompressor compresses a document body using the zlib format.
type ZlibCompressor struct {
	Level int // compression level, ZlibDefaultCompression if zero
}

// Zlib constants
const (
	ZlibBestSpeed          = zlib.BestSpeed
	ZlibBestCompression    = zlib.BestCompression
	ZlibDefaultCompression = zlib.DefaultCompression
)

func (c ZlibCompressor) docType() DocumentType { return TypeZlib }

func (c ZlibCompressor) compress(buf []byte) ([]byte, error) {
	if c.Level == 0 {
		c.Level = ZlibDefaultCompression
	}

	var comp bytes.Buffer

	zw, err := zlib.NewWriterLevel(&comp, c.Level)
	if err != nil {
		return nil, err
	}

	if _, err := zw.Write(buf); err != nil {
		return nil, err
	}

	if err := zw.Close(); err != nil {
		return nil, err
	}

	// <uvarint uncompressed length><uvarint compressed length><zlib blob>
	tail := comp.Bytes()
	head := binary.AppendUvarint(nil, uint64(len(buf)))
	head = binary.AppendUvarint(head, uint64(len(tail)))

	return append(head, tail...), nil
}

func (c ZlibCompressor) decompress(buf []byte, maxSize int) ([]byte, error) {
	uln, usz := binary.Uvarint(buf)
	if usz <= 0 {
		return nil, ErrCorrupt
	}
	if uln > uint64(maxSize) {
		return nil, ErrTooLarge
	}

	blob, _, err := lengthPrefixed(buf[usz:])
	if err != nil {
		return nil, err
	}

	zr, err := zlib.NewReader(bytes.NewReader(blob))
	if err != nil {
		return nil, ErrCorrupt
	}
	defer zr.Close()

	// read one byte past the claimed length to notice a lying header
	dec := bytes.NewBuffer(make([]byte, 0, int(uln)))
	if _, err := dec.ReadFrom(io.LimitReader(zr, int64(uln)+1)); err != nil {
		return nil, ErrCorrupt
	}

	if uint64(dec.Len()) != uln {
		return nil, ErrCorrupt
	}

	return dec.Bytes(), nil
}
