package envelope

import (
	"encoding/binary"
	"math"

	"github.com/golang/snappy"
)

// SnappyCompressor compresses a document body using the Snappy format.
type SnappyCompressor struct{}

func (c SnappyCompressor) docType() DocumentType { return TypeSnappy }

func (c SnappyCompressor) compress(b []byte) ([]byte, error) {
	if uint64(len(b)) > math.MaxUint32 {
		return nil, ErrTooLarge
	}

	compressed := snappy.Encode(nil, b)

	out := binary.AppendUvarint(make([]byte, 0, binary.MaxVarintLen64+len(compressed)), uint64(len(compressed)))
	return append(out, compressed...), nil
}

func (c SnappyCompressor) decompress(b []byte, maxSize int) ([]byte, error) {
	body, _, err := lengthPrefixed(b)
	if err != nil {
		return nil, err
	}

	ln, err := snappy.DecodedLen(body)
	if err != nil {
		return nil, ErrCorrupt
	}
	if ln > maxSize {
		return nil, ErrTooLarge
	}

	decompressed, err := snappy.Decode(nil, body)
	if err != nil {
		return nil, ErrCorrupt
	}

	return decompressed, nil
}
