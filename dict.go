package bencode

import (
	"bytes"
	"iter"
	"slices"
	"sort"
)

// Entry is a single key/value pair of a dictionary.
type Entry struct {
	Key   Str
	Value Value
}

// Pair builds an Entry with an owned text key.
func Pair(key string, v Value) Entry { return Entry{Key: TextStr(key), Value: v} }

// BytesPair builds an Entry that borrows key.
func BytesPair(key []byte, v Value) Entry { return Entry{Key: BorrowStr(key), Value: v} }

// Dict maps byte string keys to values. Entries are kept in ascending key
// order with no duplicates, which is also the order they are encoded in.
type Dict struct {
	entries []Entry
}

func compareEntries(a, b Entry) int { return bytes.Compare(a.Key.b, b.Key.b) }

// newDict sorts entries in place. A key given more than once keeps its last
// value.
func newDict(entries []Entry) *Dict {
	slices.SortStableFunc(entries, compareEntries)
	out := entries[:0]
	for i, e := range entries {
		if i+1 < len(entries) && bytes.Equal(e.Key.b, entries[i+1].Key.b) {
			continue
		}
		out = append(out, e)
	}
	return &Dict{entries: out}
}

// sortUnique sorts decoded entries and reports whether all keys are distinct.
func sortUnique(entries []Entry) bool {
	slices.SortFunc(entries, compareEntries)
	for i := 1; i < len(entries); i++ {
		if bytes.Equal(entries[i-1].Key.b, entries[i].Key.b) {
			return false
		}
	}
	return true
}

func (d *Dict) Len() int {
	if d == nil {
		return 0
	}
	return len(d.entries)
}

func (d *Dict) index(key string) (int, bool) {
	if d == nil {
		return 0, false
	}
	i := sort.Search(len(d.entries), func(i int) bool { return string(d.entries[i].Key.b) >= key })
	return i, i < len(d.entries) && string(d.entries[i].Key.b) == key
}

// Get looks up key.
func (d *Dict) Get(key string) (Value, bool) {
	i, ok := d.index(key)
	if !ok {
		return Value{}, false
	}
	return d.entries[i].Value, true
}

// Lookup is Get for a binary key.
func (d *Dict) Lookup(key []byte) (Value, bool) {
	if d == nil {
		return Value{}, false
	}
	i, ok := slices.BinarySearchFunc(d.entries, key, func(e Entry, k []byte) int {
		return bytes.Compare(e.Key.b, k)
	})
	if !ok {
		return Value{}, false
	}
	return d.entries[i].Value, true
}

// Set inserts or replaces the value stored under key.
func (d *Dict) Set(key Str, v Value) {
	i, ok := d.index(string(key.b))
	if ok {
		d.entries[i] = Entry{Key: key, Value: v}
		return
	}
	d.entries = slices.Insert(d.entries, i, Entry{Key: key, Value: v})
}

// Delete removes key and reports whether it was present.
func (d *Dict) Delete(key string) bool {
	i, ok := d.index(key)
	if !ok {
		return false
	}
	d.entries = slices.Delete(d.entries, i, i+1)
	return true
}

// Keys returns the keys in ascending order.
func (d *Dict) Keys() []Str {
	keys := make([]Str, 0, d.Len())
	for k := range d.All() {
		keys = append(keys, k)
	}
	return keys
}

// All iterates the entries in ascending key order.
func (d *Dict) All() iter.Seq2[Str, Value] {
	return func(yield func(Str, Value) bool) {
		if d == nil {
			return
		}
		for _, e := range d.entries {
			if !yield(e.Key, e.Value) {
				return
			}
		}
	}
}
