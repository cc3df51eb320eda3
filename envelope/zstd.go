package envelope

import (
	"encoding/binary"

	"github.com/klauspost/compress/zstd"
)

// ZstdCompressor compresses a document body using the zstd format.
type ZstdCompressor struct {
	Level int // compression level, ZstdDefaultCompression if zero
}

// Zstd constants
const (
	ZstdBestSpeed          = 1
	ZstdBestCompression    = 20
	ZstdDefaultCompression = 3
)

func (c ZstdCompressor) docType() DocumentType { return TypeZstd }

func (c ZstdCompressor) compress(buf []byte) ([]byte, error) {
	if c.Level == 0 {
		c.Level = ZstdDefaultCompression
	}

	tail, err := zstdEncode(buf, c.Level)
	if err != nil {
		return nil, err
	}

	head := binary.AppendUvarint(make([]byte, 0, binary.MaxVarintLen64+len(tail)), uint64(len(tail)))
	return append(head, tail...), nil
}

func (c ZstdCompressor) decompress(buf []byte, maxSize int) ([]byte, error) {
	blob, _, err := lengthPrefixed(buf)
	if err != nil {
		return nil, err
	}

	// frames that declare their size are rejected before any allocation
	var h zstd.Header
	if err := h.Decode(blob); err == nil && h.HasFCS && h.FrameContentSize > uint64(maxSize) {
		return nil, ErrTooLarge
	}

	dec, err := zstdDecode(blob, maxSize)
	if err != nil {
		return nil, err
	}
	if len(dec) > maxSize {
		return nil, ErrTooLarge
	}

	return dec, nil
}
