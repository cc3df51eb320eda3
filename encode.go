package bencode

import (
	"io"
	"strconv"
)

// Encode returns the canonical encoding of v.
func (v Value) Encode() []byte {
	return v.AppendTo(make([]byte, 0, v.Size()))
}

// AppendTo appends the canonical encoding of v to by.
func (v Value) AppendTo(by []byte) []byte {
	return encode(by, v)
}

// WriteTo writes the canonical encoding of v to w.
func (v Value) WriteTo(w io.Writer) (int64, error) {
	n, err := w.Write(v.Encode())
	return int64(n), err
}

// Size returns the length of the encoding of v.
func (v Value) Size() int {
	switch v.kind {
	case KindString:
		return strSize(v.str.Len())
	case KindInt:
		return 2 + intLen(v.num)
	case KindList:
		n := 2
		for _, item := range v.list {
			n += item.Size()
		}
		return n
	case KindDict:
		n := 2
		for k, val := range v.dict.All() {
			n += strSize(k.Len()) + val.Size()
		}
		return n
	}
	return 0
}

// An Encoder reuses one output buffer across calls.
type Encoder struct {
	buf []byte
}

func NewEncoder() *Encoder {
	return &Encoder{buf: make([]byte, 0, encodeBufferSize)}
}

// Encode returns the encoding of v. The result is only valid until the next
// call to Encode.
func (e *Encoder) Encode(v Value) []byte {
	e.buf = encode(e.buf[:0], v)
	return e.buf
}

func encode(by []byte, v Value) []byte {
	switch v.kind {
	case KindString:
		by = encodeBytes(by, v.str.b)
	case KindInt:
		by = encodeInt(by, v.num)
	case KindList:
		by = encodeList(by, v.list)
	case KindDict:
		by = encodeDict(by, v.dict)
	}
	return by
}

func encodeBytes(by []byte, b []byte) []byte {
	by = strconv.AppendUint(by, uint64(len(b)), 10)
	by = append(by, tokenColon)
	return append(by, b...)
}

func encodeInt(by []byte, i int64) []byte {
	by = append(by, tokenInt)
	by = strconv.AppendInt(by, i, 10)
	return append(by, tokenEnd)
}

func encodeList(by []byte, l []Value) []byte {
	by = append(by, tokenList)
	for _, item := range l {
		by = encode(by, item)
	}
	return append(by, tokenEnd)
}

// encodeDict relies on Dict keeping its entries sorted by key.
func encodeDict(by []byte, d *Dict) []byte {
	by = append(by, tokenDict)
	for k, v := range d.All() {
		by = encodeBytes(by, k.b)
		by = encode(by, v)
	}
	return append(by, tokenEnd)
}

func strSize(n int) int {
	return uintLen(uint64(n)) + 1 + n
}

func intLen(i int64) int {
	if i < 0 {
		// -i overflows for MinInt64 but the uint64 conversion is still exact
		return 1 + uintLen(uint64(-i))
	}
	return uintLen(uint64(i))
}

func uintLen(u uint64) int {
	n := 1
	for u >= 10 {
		u /= 10
		n++
	}
	return n
}
