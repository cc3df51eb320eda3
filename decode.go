package bencode

import "math"

// Decode parses the value at the start of b. Decoding stops after the first
// complete value; trailing bytes are ignored. At most maxAllocs list elements
// and dict entries may be created, and nesting is limited to
// DefaultMaxDepth.
//
// Strings in the result borrow from b, so b must not be modified while the
// result is in use. Any failure returns false with no further detail.
func Decode(b []byte, maxAllocs int) (Value, bool) {
	d := Decoder{MaxAllocs: maxAllocs}
	return d.Decode(b)
}

// A Decoder holds the limits applied while decoding. The zero Decoder
// accepts only values that need no allocations.
type Decoder struct {
	MaxAllocs int  // list elements plus dict entries
	MaxDepth  int  // container nesting, DefaultMaxDepth if zero
	Strict    bool // reject bytes following the top-level value
}

// NewDecoder returns a decoder with the given allocation budget and default
// flags.
func NewDecoder(maxAllocs int) *Decoder {
	return &Decoder{MaxAllocs: maxAllocs}
}

// Decode parses the value at the start of b.
func (d *Decoder) Decode(b []byte) (Value, bool) {
	v, rest, ok := d.DecodePrefix(b)
	if !ok || (d.Strict && len(rest) > 0) {
		return Value{}, false
	}
	return v, true
}

// DecodePrefix parses the value at the start of b and returns the bytes
// following it. The allocation budget applies to this one value.
func (d *Decoder) DecodePrefix(b []byte) (Value, []byte, bool) {
	s := decodeState{
		buf:      b,
		budget:   newBudget(d.MaxAllocs),
		maxDepth: d.MaxDepth,
	}
	if s.maxDepth <= 0 {
		s.maxDepth = DefaultMaxDepth
	}

	v, idx, ok := s.value(0, 0)
	if !ok {
		return Value{}, nil, false
	}
	return v, b[idx:], true
}

// Unmarshal is Decode for callers that need an error; every failure is
// ErrInvalid.
func (d *Decoder) Unmarshal(b []byte) (Value, error) {
	v, ok := d.Decode(b)
	if !ok {
		return Value{}, ErrInvalid
	}
	return v, nil
}

type decodeState struct {
	buf      []byte
	budget   budget
	maxDepth int
}

// value decodes the value starting at idx and returns it together with the
// index just past it.
func (s *decodeState) value(idx, depth int) (Value, int, bool) {
	if idx >= len(s.buf) {
		return Value{}, 0, false
	}

	switch tag := s.buf[idx]; {
	case tag == tokenInt:
		n, next, ok := s.integer(idx + 1)
		if !ok {
			return Value{}, 0, false
		}
		return NewInt(n), next, true

	case tag == tokenList:
		if depth >= s.maxDepth {
			return Value{}, 0, false
		}
		return s.list(idx+1, depth+1)

	case tag == tokenDict:
		if depth >= s.maxDepth {
			return Value{}, 0, false
		}
		return s.dict(idx+1, depth+1)

	case isDigit(tag):
		str, next, ok := s.str(idx)
		if !ok {
			return Value{}, 0, false
		}
		return NewStr(str), next, true
	}

	return Value{}, 0, false
}

func (s *decodeState) integer(idx int) (int64, int, bool) {
	start := idx
	if idx < len(s.buf) && s.buf[idx] == tokenMinus {
		idx++
	}
	for idx < len(s.buf) && isDigit(s.buf[idx]) {
		idx++
	}
	if idx >= len(s.buf) || s.buf[idx] != tokenEnd {
		return 0, 0, false
	}

	n, ok := parseInt(s.buf[start:idx])
	if !ok {
		return 0, 0, false
	}
	return n, idx + 1, true
}

func (s *decodeState) str(idx int) (Str, int, bool) {
	start := idx
	for idx < len(s.buf) && isDigit(s.buf[idx]) {
		idx++
	}
	if idx >= len(s.buf) || s.buf[idx] != tokenColon {
		return Str{}, 0, false
	}
	idx++

	ln, ok := parseLength(s.buf[start:idx-1], len(s.buf)-idx)
	if !ok {
		return Str{}, 0, false
	}

	end := idx + ln
	// cap the borrowed slice so appending to it never writes into the input
	return BorrowStr(s.buf[idx:end:end]), end, true
}

func (s *decodeState) list(idx, depth int) (Value, int, bool) {
	var items []Value

	for {
		if idx >= len(s.buf) {
			return Value{}, 0, false
		}
		if s.buf[idx] == tokenEnd {
			break
		}

		if !s.budget.charge(1) {
			return Value{}, 0, false
		}

		item, next, ok := s.value(idx, depth)
		if !ok {
			return Value{}, 0, false
		}
		items = append(items, item)
		idx = next
	}

	return Value{kind: KindList, list: items}, idx + 1, true
}

func (s *decodeState) dict(idx, depth int) (Value, int, bool) {
	var entries []Entry

	for {
		if idx >= len(s.buf) {
			return Value{}, 0, false
		}
		if s.buf[idx] == tokenEnd {
			break
		}

		// keys are always byte strings
		if !isDigit(s.buf[idx]) {
			return Value{}, 0, false
		}
		key, next, ok := s.str(idx)
		if !ok {
			return Value{}, 0, false
		}

		if !s.budget.charge(1) {
			return Value{}, 0, false
		}

		val, next, ok := s.value(next, depth)
		if !ok {
			return Value{}, 0, false
		}
		entries = append(entries, Entry{Key: key, Value: val})
		idx = next
	}

	// input order is free, keys must still be unique
	if !sortUnique(entries) {
		return Value{}, 0, false
	}

	return Value{kind: KindDict, dict: &Dict{entries: entries}}, idx + 1, true
}

// parseInt parses the digits of an integer token: an optional minus sign,
// no leading zeros and no negative zero.
func parseInt(b []byte) (int64, bool) {
	neg := false
	if len(b) > 0 && b[0] == tokenMinus {
		neg = true
		b = b[1:]
	}
	if len(b) == 0 || (b[0] == '0' && (len(b) > 1 || neg)) {
		return 0, false
	}

	limit := uint64(math.MaxInt64)
	if neg {
		limit++
	}

	var n uint64
	for _, c := range b {
		if !isDigit(c) {
			return 0, false
		}
		d := uint64(c - '0')
		if n > (limit-d)/10 {
			return 0, false
		}
		n = n*10 + d
	}

	if neg {
		return -int64(n), true
	}
	return int64(n), true
}

// parseLength parses a string length prefix that may not exceed max.
func parseLength(b []byte, max int) (int, bool) {
	if len(b) == 0 || (b[0] == '0' && len(b) > 1) {
		return 0, false
	}

	n := 0
	for _, c := range b {
		d := int(c - '0')
		if d > max || n > (max-d)/10 {
			return 0, false
		}
		n = n*10 + d
	}
	return n, true
}
