package bencode

import (
	"bytes"
	"fmt"
	"math"
	"reflect"
)

var (
	valueType = reflect.TypeFor[Value]()
	strType   = reflect.TypeFor[Str]()
	dictType  = reflect.TypeFor[Dict]()
)

// Marshal returns the bencode encoding of v.
//
// Integers map to integers, strings and byte slices to byte strings, slices
// and arrays to lists, maps with string keys and structs to dictionaries.
// Struct fields are named by their `bencode:"name,omitempty"` tag or their
// field name; a tag of "-" skips the field. Nil pointers and interfaces in
// struct fields and map values are left out. Booleans, floats and other
// kinds have no bencode representation and return an UnsupportedTypeError.
func Marshal(v any) ([]byte, error) {
	val, err := ToValue(v)
	if err != nil {
		return nil, err
	}
	return val.Encode(), nil
}

// ToValue converts a Go value into a Value following the rules of Marshal.
func ToValue(v any) (Value, error) {
	return toValue(reflect.ValueOf(v))
}

func toValue(rv reflect.Value) (Value, error) {
	if !rv.IsValid() {
		return Value{}, &UnsupportedTypeError{}
	}

	switch rv.Type() {
	case valueType:
		v := rv.Interface().(Value)
		if !v.IsValid() {
			return Value{}, ErrInvalid
		}
		return v, nil
	case strType:
		return NewStr(rv.Interface().(Str)), nil
	case dictType:
		d := rv.Interface().(Dict)
		return Value{kind: KindDict, dict: copyDict(&d)}, nil
	}

	switch rk := rv.Kind(); rk {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return NewInt(rv.Int()), nil

	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr:
		u := rv.Uint()
		if u > math.MaxInt64 {
			return Value{}, fmt.Errorf("bencode: %d overflows int64", u)
		}
		return NewInt(int64(u)), nil

	case reflect.String:
		return NewText(rv.String()), nil

	case reflect.Slice:
		if rv.Type().Elem().Kind() == reflect.Uint8 {
			return NewBytes(bytes.Clone(rv.Bytes())), nil
		}
		return encodeArray(rv)

	case reflect.Array:
		if rv.Type().Elem().Kind() == reflect.Uint8 {
			b := make([]byte, rv.Len())
			for i := range b {
				b[i] = byte(rv.Index(i).Uint())
			}
			return NewBytes(b), nil
		}
		return encodeArray(rv)

	case reflect.Map:
		return encodeMap(rv)

	case reflect.Struct:
		return encodeStruct(rv)

	case reflect.Pointer, reflect.Interface:
		if rv.IsNil() {
			return Value{}, fmt.Errorf("bencode: cannot marshal nil %s", rv.Type())
		}
		// recurse until we get a concrete type
		return toValue(rv.Elem())
	}

	return Value{}, &UnsupportedTypeError{Type: rv.Type()}
}

func encodeArray(arr reflect.Value) (Value, error) {
	l := arr.Len()
	items := make([]Value, l)
	for i := 0; i < l; i++ {
		item, err := toValue(arr.Index(i))
		if err != nil {
			return Value{}, err
		}
		items[i] = item
	}
	return NewList(items...), nil
}

func encodeMap(m reflect.Value) (Value, error) {
	if m.Type().Key().Kind() != reflect.String {
		return Value{}, &UnsupportedTypeError{Type: m.Type()}
	}

	entries := make([]Entry, 0, m.Len())
	iter := m.MapRange()
	for iter.Next() {
		if isNil(iter.Value()) {
			continue
		}
		v, err := toValue(iter.Value())
		if err != nil {
			return Value{}, err
		}
		entries = append(entries, Pair(iter.Key().String(), v))
	}
	return Value{kind: KindDict, dict: newDict(entries)}, nil
}

func encodeStruct(st reflect.Value) (Value, error) {
	fields := structTags.Get(st.Type())

	entries := make([]Entry, 0, len(fields))
	for _, f := range fields {
		fv := st.Field(f.index)
		if isNil(fv) || (f.omitEmpty && isEmptyValue(fv)) {
			continue
		}
		v, err := toValue(fv)
		if err != nil {
			return Value{}, fmt.Errorf("field %s: %w", f.name, err)
		}
		entries = append(entries, Pair(f.name, v))
	}
	return Value{kind: KindDict, dict: newDict(entries)}, nil
}

// Unmarshal decodes b with an allocation budget of maxAllocs and stores the
// result in the value pointed to by v. Decoding failures return ErrInvalid.
func Unmarshal(b []byte, v any, maxAllocs int) error {
	val, ok := Decode(b, maxAllocs)
	if !ok {
		return ErrInvalid
	}
	return FromValue(val, v)
}

// FromValue stores val in the value pointed to by v. Byte slices and any
// targets receive copies, so the result does not borrow from a decoded
// buffer. A Value target is stored as is.
//
// Into an empty interface, integers become int64, strings []byte, lists
// []any and dictionaries map[string]any.
func FromValue(val Value, v any) error {
	rv := reflect.ValueOf(v)
	if rv.Kind() != reflect.Pointer || rv.IsNil() {
		return &InvalidUnmarshalError{Type: reflect.TypeOf(v)}
	}
	return assign(val, rv.Elem())
}

func assign(val Value, rv reflect.Value) error {
	switch rv.Type() {
	case valueType:
		rv.Set(reflect.ValueOf(val))
		return nil
	case strType:
		s, ok := val.Str()
		if !ok {
			return mismatch(val, rv)
		}
		rv.Set(reflect.ValueOf(s))
		return nil
	case dictType:
		d, ok := val.Dict()
		if !ok {
			return mismatch(val, rv)
		}
		rv.Set(reflect.ValueOf(*copyDict(d)))
		return nil
	}

	switch rv.Kind() {
	case reflect.Pointer:
		if rv.IsNil() {
			rv.Set(reflect.New(rv.Type().Elem()))
		}
		return assign(val, rv.Elem())

	case reflect.Interface:
		if rv.NumMethod() != 0 || !val.IsValid() {
			return mismatch(val, rv)
		}
		rv.Set(reflect.ValueOf(natural(val)))

	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		n, ok := val.Int()
		if !ok || rv.OverflowInt(n) {
			return mismatch(val, rv)
		}
		rv.SetInt(n)

	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr:
		n, ok := val.Int()
		if !ok || n < 0 || rv.OverflowUint(uint64(n)) {
			return mismatch(val, rv)
		}
		rv.SetUint(uint64(n))

	case reflect.String:
		b, ok := val.Bytes()
		if !ok {
			return mismatch(val, rv)
		}
		rv.SetString(string(b))

	case reflect.Slice:
		if rv.Type().Elem().Kind() == reflect.Uint8 {
			b, ok := val.Bytes()
			if !ok {
				return mismatch(val, rv)
			}
			rv.SetBytes(bytes.Clone(b))
			return nil
		}

		l, ok := val.List()
		if !ok {
			return mismatch(val, rv)
		}
		slice := reflect.MakeSlice(rv.Type(), len(l), len(l))
		for i, item := range l {
			if err := assign(item, slice.Index(i)); err != nil {
				return err
			}
		}
		rv.Set(slice)

	case reflect.Array:
		if rv.Type().Elem().Kind() == reflect.Uint8 {
			b, ok := val.Bytes()
			if !ok || len(b) != rv.Len() {
				return mismatch(val, rv)
			}
			reflect.Copy(rv, reflect.ValueOf(b))
			return nil
		}

		l, ok := val.List()
		if !ok {
			return mismatch(val, rv)
		}
		for i := 0; i < rv.Len(); i++ {
			if i >= len(l) {
				rv.Index(i).SetZero()
				continue
			}
			if err := assign(l[i], rv.Index(i)); err != nil {
				return err
			}
		}

	case reflect.Map:
		d, ok := val.Dict()
		if !ok || rv.Type().Key().Kind() != reflect.String {
			return mismatch(val, rv)
		}
		if rv.IsNil() {
			rv.Set(reflect.MakeMapWithSize(rv.Type(), d.Len()))
		}
		keyType, elemType := rv.Type().Key(), rv.Type().Elem()
		for k, x := range d.All() {
			e := reflect.New(elemType).Elem()
			if err := assign(x, e); err != nil {
				return err
			}
			rv.SetMapIndex(reflect.ValueOf(k.String()).Convert(keyType), e)
		}

	case reflect.Struct:
		d, ok := val.Dict()
		if !ok {
			return mismatch(val, rv)
		}
		for _, f := range structTags.Get(rv.Type()) {
			x, ok := d.Get(f.name)
			if !ok {
				continue
			}
			if err := assign(x, rv.Field(f.index)); err != nil {
				return fmt.Errorf("field %s: %w", f.name, err)
			}
		}

	default:
		return mismatch(val, rv)
	}

	return nil
}

// copyDict returns a dictionary with its own entry slice. Keys and values
// are shared with d.
func copyDict(d *Dict) *Dict {
	entries := make([]Entry, 0, d.Len())
	for k, x := range d.All() {
		entries = append(entries, Entry{Key: k, Value: x})
	}
	return &Dict{entries: entries}
}

// natural converts val into plain Go values.
func natural(val Value) any {
	switch val.kind {
	case KindInt:
		return val.num
	case KindString:
		return bytes.Clone(val.str.b)
	case KindList:
		l := make([]any, len(val.list))
		for i, item := range val.list {
			l[i] = natural(item)
		}
		return l
	case KindDict:
		m := make(map[string]any, val.dict.Len())
		for k, x := range val.dict.All() {
			m[k.String()] = natural(x)
		}
		return m
	}
	return nil
}

func mismatch(val Value, rv reflect.Value) error {
	return &UnmarshalTypeError{Value: val.Kind().String(), Type: rv.Type()}
}

// isNil reports values that are left out of dictionaries: nil pointers and
// interfaces, and the zero Value.
func isNil(v reflect.Value) bool {
	switch v.Kind() {
	case reflect.Pointer, reflect.Interface:
		return v.IsNil()
	case reflect.Struct:
		return v.Type() == valueType && !v.Interface().(Value).IsValid()
	}
	return false
}

func isEmptyValue(v reflect.Value) bool {
	switch v.Kind() {
	case reflect.Array, reflect.Map, reflect.Slice, reflect.String:
		return v.Len() == 0
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return v.Int() == 0
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr:
		return v.Uint() == 0
	case reflect.Pointer, reflect.Interface:
		return v.IsNil()
	}
	return false
}
