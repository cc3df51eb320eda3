package bencode

import (
	"errors"
	"reflect"
)

// Errors
var (
	// ErrInvalid is returned when a document cannot be decoded. It carries
	// no position or cause: malformed tokens, truncation, duplicate keys and
	// an exhausted allocation budget are indistinguishable.
	ErrInvalid = errors.New("bencode: invalid document")

	ErrFinished = errors.New("bencode: merger already finished")
)

// UnsupportedTypeError is returned by Marshal for Go values that have no
// bencode representation.
type UnsupportedTypeError struct {
	Type reflect.Type
}

func (e *UnsupportedTypeError) Error() string {
	if e.Type == nil {
		return "bencode: unsupported type: nil"
	}
	return "bencode: unsupported type: " + e.Type.String()
}

// UnmarshalTypeError describes a bencode value that cannot be stored in a Go
// value of a specific type.
type UnmarshalTypeError struct {
	Value string // kind of the bencode value
	Type  reflect.Type
}

func (e *UnmarshalTypeError) Error() string {
	return "bencode: cannot unmarshal " + e.Value + " into Go value of type " + e.Type.String()
}

// InvalidUnmarshalError is returned when the Unmarshal target is not a
// non-nil pointer.
type InvalidUnmarshalError struct {
	Type reflect.Type
}

func (e *InvalidUnmarshalError) Error() string {
	if e.Type == nil {
		return "bencode: Unmarshal(nil)"
	}
	if e.Type.Kind() != reflect.Pointer {
		return "bencode: Unmarshal(non-pointer " + e.Type.String() + ")"
	}
	return "bencode: Unmarshal(nil " + e.Type.String() + ")"
}
