package bencode

import (
	"bytes"
	"unicode/utf8"
)

// Str is a bencode byte string. It either borrows a sub-slice of a decoded
// input buffer or owns its bytes. A borrowed Str is only meaningful while the
// input buffer is left unmodified; use Clone or Value.Owned to detach it.
type Str struct {
	b        []byte
	borrowed bool
}

// OwnStr returns a Str that takes ownership of b. The caller must not modify
// b afterwards.
func OwnStr(b []byte) Str { return Str{b: b} }

// BorrowStr returns a Str that references b without copying it.
func BorrowStr(b []byte) Str { return Str{b: b, borrowed: true} }

// TextStr returns an owned Str holding the bytes of s.
func TextStr(s string) Str { return Str{b: []byte(s)} }

// Bytes returns the string's bytes. For a borrowed Str this aliases the
// decoded input.
func (s Str) Bytes() []byte { return s.b }

func (s Str) Len() int { return len(s.b) }

func (s Str) IsBorrowed() bool { return s.borrowed }

// Text interprets the bytes as UTF-8 text.
func (s Str) Text() (string, bool) {
	if !utf8.Valid(s.b) {
		return "", false
	}
	return string(s.b), true
}

// String returns the bytes converted to a Go string, valid UTF-8 or not.
func (s Str) String() string { return string(s.b) }

// Clone returns an owned copy.
func (s Str) Clone() Str {
	if s.b == nil {
		return Str{}
	}
	return Str{b: bytes.Clone(s.b)}
}

// Compare orders strings by their bytes.
func (s Str) Compare(o Str) int { return bytes.Compare(s.b, o.b) }

// Equal compares content only; borrowed and owned strings with the same
// bytes are equal.
func (s Str) Equal(o Str) bool { return bytes.Equal(s.b, o.b) }
