package bencode

import (
	"cmp"
	"iter"
	"slices"
)

// Kind identifies the variant held by a Value.
type Kind uint8

const (
	KindInvalid Kind = iota
	KindString
	KindInt
	KindList
	KindDict
)

func (k Kind) String() string {
	switch k {
	case KindString:
		return "string"
	case KindInt:
		return "integer"
	case KindList:
		return "list"
	case KindDict:
		return "dictionary"
	default:
		return "invalid"
	}
}

// Value is a bencode value: a byte string, an integer, a list or a
// dictionary. The zero Value is invalid and encodes to nothing.
//
// Lists and dictionaries are reference-like: copies of a Value share the
// underlying elements, as Go slices and maps do.
type Value struct {
	kind Kind
	num  int64
	str  Str
	list []Value
	dict *Dict
}

// NewInt returns an integer value.
func NewInt(i int64) Value { return Value{kind: KindInt, num: i} }

// NewBytes returns a string value that owns b.
func NewBytes(b []byte) Value { return Value{kind: KindString, str: OwnStr(b)} }

// BorrowBytes returns a string value that references b.
func BorrowBytes(b []byte) Value { return Value{kind: KindString, str: BorrowStr(b)} }

// NewText returns a string value holding the UTF-8 bytes of s.
func NewText(s string) Value { return Value{kind: KindString, str: TextStr(s)} }

// NewStr wraps a Str.
func NewStr(s Str) Value { return Value{kind: KindString, str: s} }

// NewList returns a list value of items in the given order.
func NewList(items ...Value) Value {
	if items == nil {
		items = []Value{}
	}
	return Value{kind: KindList, list: items}
}

// NewDict returns a dictionary value. Construction order does not matter;
// if a key is given more than once the last value wins.
func NewDict(entries ...Entry) Value {
	return Value{kind: KindDict, dict: newDict(slices.Clone(entries))}
}

func (v Value) Kind() Kind { return v.kind }

func (v Value) IsValid() bool { return v.kind != KindInvalid }

// Str returns the byte string held by v.
func (v Value) Str() (Str, bool) {
	if v.kind != KindString {
		return Str{}, false
	}
	return v.str, true
}

// Bytes returns the bytes of a string value.
func (v Value) Bytes() ([]byte, bool) {
	if v.kind != KindString {
		return nil, false
	}
	return v.str.b, true
}

// Text returns a string value interpreted as UTF-8. It fails for other
// kinds and for invalid UTF-8.
func (v Value) Text() (string, bool) {
	if v.kind != KindString {
		return "", false
	}
	return v.str.Text()
}

func (v Value) Int() (int64, bool) {
	if v.kind != KindInt {
		return 0, false
	}
	return v.num, true
}

// List returns the elements of a list value. The slice is shared with v.
func (v Value) List() ([]Value, bool) {
	if v.kind != KindList {
		return nil, false
	}
	return v.list, true
}

// Dict returns the dictionary of a dict value. Mutations through it are
// visible to every copy of v.
func (v Value) Dict() (*Dict, bool) {
	if v.kind != KindDict {
		return nil, false
	}
	return v.dict, true
}

// Len returns the number of bytes, list elements or dict entries.
func (v Value) Len() int {
	switch v.kind {
	case KindString:
		return v.str.Len()
	case KindList:
		return len(v.list)
	case KindDict:
		return v.dict.Len()
	}
	return 0
}

// Index returns the i'th element of a list value.
func (v Value) Index(i int) (Value, bool) {
	if v.kind != KindList || i < 0 || i >= len(v.list) {
		return Value{}, false
	}
	return v.list[i], true
}

// Items iterates a list value in order. It yields nothing for other kinds.
func (v Value) Items() iter.Seq2[int, Value] {
	return func(yield func(int, Value) bool) {
		if v.kind != KindList {
			return
		}
		for i, item := range v.list {
			if !yield(i, item) {
				return
			}
		}
	}
}

// Get looks up key in a dict value.
func (v Value) Get(key string) (Value, bool) {
	if v.kind != KindDict {
		return Value{}, false
	}
	return v.dict.Get(key)
}

func (v Value) GetBytes(key string) ([]byte, bool) {
	x, ok := v.Get(key)
	if !ok {
		return nil, false
	}
	return x.Bytes()
}

func (v Value) GetText(key string) (string, bool) {
	x, ok := v.Get(key)
	if !ok {
		return "", false
	}
	return x.Text()
}

func (v Value) GetInt(key string) (int64, bool) {
	x, ok := v.Get(key)
	if !ok {
		return 0, false
	}
	return x.Int()
}

func (v Value) GetList(key string) ([]Value, bool) {
	x, ok := v.Get(key)
	if !ok {
		return nil, false
	}
	return x.List()
}

func (v Value) GetDict(key string) (*Dict, bool) {
	x, ok := v.Get(key)
	if !ok {
		return nil, false
	}
	return x.Dict()
}

// GetFixed returns the string stored under key if it is exactly n bytes
// long, as used for fixed-size identifiers and hashes.
func (v Value) GetFixed(key string, n int) ([]byte, bool) {
	b, ok := v.GetBytes(key)
	if !ok || len(b) != n {
		return nil, false
	}
	return b, true
}

// GetPair returns the first two elements of the list stored under key.
func (v Value) GetPair(key string) (Value, Value, bool) {
	l, ok := v.GetList(key)
	if !ok || len(l) < 2 {
		return Value{}, Value{}, false
	}
	return l[0], l[1], true
}

// Owned returns a deep copy of v in which no string or key borrows from a
// decoded buffer anymore.
func (v Value) Owned() Value {
	switch v.kind {
	case KindString:
		return NewStr(v.str.Clone())
	case KindList:
		l := make([]Value, len(v.list))
		for i, item := range v.list {
			l[i] = item.Owned()
		}
		return Value{kind: KindList, list: l}
	case KindDict:
		d := &Dict{entries: make([]Entry, 0, v.dict.Len())}
		for k, x := range v.dict.All() {
			d.entries = append(d.entries, Entry{Key: k.Clone(), Value: x.Owned()})
		}
		return Value{kind: KindDict, dict: d}
	}
	return v
}

// Allocs returns the allocation budget Decode needs for the encoding of v:
// one unit for every list element and every dict entry.
func (v Value) Allocs() int {
	n := 0
	switch v.kind {
	case KindList:
		n += len(v.list)
		for _, item := range v.list {
			n += item.Allocs()
		}
	case KindDict:
		n += v.dict.Len()
		for _, x := range v.dict.All() {
			n += x.Allocs()
		}
	}
	return n
}

// Equal compares by content. Borrowed and owned strings compare equal.
func (v Value) Equal(o Value) bool {
	return v.Compare(o) == 0
}

// Compare orders values first by kind (string, integer, list, dict) and then
// by content.
func (v Value) Compare(o Value) int {
	if c := cmp.Compare(v.kind, o.kind); c != 0 {
		return c
	}
	switch v.kind {
	case KindString:
		return v.str.Compare(o.str)
	case KindInt:
		return cmp.Compare(v.num, o.num)
	case KindList:
		return slices.CompareFunc(v.list, o.list, Value.Compare)
	case KindDict:
		var a, b []Entry
		if v.dict != nil {
			a = v.dict.entries
		}
		if o.dict != nil {
			b = o.dict.entries
		}
		return slices.CompareFunc(a, b, func(x, y Entry) int {
			if c := x.Key.Compare(y.Key); c != 0 {
				return c
			}
			return x.Value.Compare(y.Value)
		})
	}
	return 0
}
