package envelope

import (
	"bytes"
	"encoding/binary"
	"fmt"

	"go.uber.org/zap"

	bencode "github.com/lpeterse/bencode-minimal"
)

const magicHeader = "=bnc"

const headerSize = len(magicHeader) + 1

// DefaultCompressionThreshold is the body size below which NewEncoder leaves
// documents uncompressed.
const DefaultCompressionThreshold = 1024

// DefaultMaxSize bounds the decompressed body when Decoder.MaxSize is zero.
const DefaultMaxSize = 64 << 20

// DocumentType is the body encoding recorded in the header.
type DocumentType byte

const (
	TypeRaw DocumentType = iota
	TypeSnappy
	TypeZlib
	TypeZstd
)

func (t DocumentType) String() string {
	switch t {
	case TypeRaw:
		return "raw"
	case TypeSnappy:
		return "snappy"
	case TypeZlib:
		return "zlib"
	case TypeZstd:
		return "zstd"
	default:
		return fmt.Sprintf("DocumentType(%d)", byte(t))
	}
}

// A Compressor compresses document bodies. The implementations are
// SnappyCompressor, ZlibCompressor and ZstdCompressor.
type Compressor interface {
	docType() DocumentType
	compress(b []byte) ([]byte, error)
	decompress(b []byte, maxSize int) ([]byte, error)
}

func compressorFor(t DocumentType) (Compressor, error) {
	switch t {
	case TypeSnappy:
		return SnappyCompressor{}, nil
	case TypeZlib:
		return ZlibCompressor{}, nil
	case TypeZstd:
		return ZstdCompressor{}, nil
	}
	return nil, fmt.Errorf("%w: %d", ErrUnknownType, byte(t))
}

// Encoder writes envelope documents.
type Encoder struct {
	Compression          Compressor // nil leaves every body raw
	CompressionThreshold int        // bodies shorter than this stay raw
}

// NewEncoder returns an encoder without compression and with the default
// threshold.
func NewEncoder() *Encoder {
	return &Encoder{CompressionThreshold: DefaultCompressionThreshold}
}

// Marshal encodes v and wraps it in an envelope.
func (e *Encoder) Marshal(v bencode.Value) ([]byte, error) {
	if !v.IsValid() {
		return nil, bencode.ErrInvalid
	}

	b := appendHeader(make([]byte, 0, headerSize+v.Size()), TypeRaw)
	b = v.AppendTo(b)

	body := b[headerSize:]
	if e.Compression == nil || len(body) < e.CompressionThreshold {
		return b, nil
	}

	compressed, err := e.Compression.compress(body)
	if err != nil {
		return nil, fmt.Errorf("envelope: compressing %s body: %w", e.Compression.docType(), err)
	}

	Logger().Debug("compressed document",
		zap.Stringer("type", e.Compression.docType()),
		zap.Int("size", len(body)),
		zap.Int("compressed", len(compressed)))

	out := appendHeader(make([]byte, 0, headerSize+len(compressed)), e.Compression.docType())
	return append(out, compressed...), nil
}

func appendHeader(b []byte, t DocumentType) []byte {
	b = append(b, magicHeader...)
	return append(b, byte(t))
}

// Decoder reads envelope documents.
type Decoder struct {
	MaxAllocs int // allocation budget of the bencode body
	MaxSize   int // decompressed body limit, DefaultMaxSize if zero
}

// NewDecoder returns a decoder with the given allocation budget and default
// size limit.
func NewDecoder(maxAllocs int) *Decoder {
	return &Decoder{MaxAllocs: maxAllocs}
}

// ReadType returns the document type recorded in the header of b.
func ReadType(b []byte) (DocumentType, error) {
	if len(b) < headerSize || !bytes.Equal(b[:len(magicHeader)], []byte(magicHeader)) {
		return 0, ErrBadHeader
	}
	return DocumentType(b[len(magicHeader)]), nil
}

// Unmarshal unwraps and decodes the document in b. The body must hold
// exactly one bencode value. Strings in the result borrow from b for raw
// documents and from the decompressed body otherwise.
func (d *Decoder) Unmarshal(b []byte) (bencode.Value, error) {
	t, err := ReadType(b)
	if err != nil {
		return bencode.Value{}, err
	}

	maxSize := d.MaxSize
	if maxSize <= 0 {
		maxSize = DefaultMaxSize
	}

	body := b[headerSize:]
	if t != TypeRaw {
		c, err := compressorFor(t)
		if err != nil {
			return bencode.Value{}, err
		}
		body, err = c.decompress(body, maxSize)
		if err != nil {
			return bencode.Value{}, err
		}
		Logger().Debug("decompressed document",
			zap.Stringer("type", t),
			zap.Int("compressed", len(b)-headerSize),
			zap.Int("size", len(body)))
	} else if len(body) > maxSize {
		return bencode.Value{}, ErrTooLarge
	}

	dec := bencode.Decoder{MaxAllocs: d.MaxAllocs, Strict: true}
	return dec.Unmarshal(body)
}

// lengthPrefixed splits a uvarint length prefix off b and returns exactly
// that many following bytes.
func lengthPrefixed(b []byte) ([]byte, []byte, error) {
	ln, sz := binary.Uvarint(b)
	if sz <= 0 || ln > uint64(len(b)-sz) {
		return nil, nil, ErrCorrupt
	}
	end := sz + int(ln)
	return b[sz:end], b[end:], nil
}
