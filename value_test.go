package bencode

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func ping() Value {
	return NewDict(
		Pair("t", NewText("1234")),
		Pair("y", NewText("q")),
		Pair("q", NewText("ping")),
		Pair("a", NewDict(
			Pair("id", NewBytes(make([]byte, 20))),
			Pair("port", NewList(NewInt(6881), NewText("udp"))),
		)),
	)
}

func TestAccessors(t *testing.T) {
	v := ping()

	y, ok := v.GetText("y")
	require.True(t, ok)
	assert.Equal(t, "q", y)

	tid, ok := v.GetBytes("t")
	require.True(t, ok)
	assert.Equal(t, []byte("1234"), tid)

	a, ok := v.Get("a")
	require.True(t, ok)
	assert.Equal(t, KindDict, a.Kind())

	id, ok := a.GetFixed("id", 20)
	require.True(t, ok)
	assert.Len(t, id, 20)
	_, ok = a.GetFixed("id", 32)
	assert.False(t, ok)

	port, proto, ok := a.GetPair("port")
	require.True(t, ok)
	p, _ := port.Int()
	assert.Equal(t, int64(6881), p)
	s, _ := proto.Text()
	assert.Equal(t, "udp", s)

	_, ok = v.GetInt("y")
	assert.False(t, ok, "wrong kind")
	_, ok = v.Get("missing")
	assert.False(t, ok)
	_, ok = NewInt(1).Get("y")
	assert.False(t, ok, "not a dict")

	_, ok = NewBytes([]byte{0xff, 0xfe}).Text()
	assert.False(t, ok, "invalid UTF-8")

	l, ok := a.GetList("port")
	require.True(t, ok)
	assert.Len(t, l, 2)

	d, ok := v.GetDict("a")
	require.True(t, ok)
	assert.Equal(t, 2, d.Len())
}

func TestListAccess(t *testing.T) {
	v := NewList(NewInt(1), NewText("two"), NewList())

	assert.Equal(t, 3, v.Len())

	item, ok := v.Index(1)
	require.True(t, ok)
	assert.Equal(t, KindString, item.Kind())

	_, ok = v.Index(3)
	assert.False(t, ok)
	_, ok = v.Index(-1)
	assert.False(t, ok)

	var kinds []Kind
	for _, item := range v.Items() {
		kinds = append(kinds, item.Kind())
	}
	assert.Equal(t, []Kind{KindInt, KindString, KindList}, kinds)

	for range NewInt(1).Items() {
		t.Fatal("non-list yielded items")
	}
}

func TestDictMutation(t *testing.T) {
	v := NewDict(Pair("b", NewInt(2)))
	d, ok := v.Dict()
	require.True(t, ok)

	d.Set(TextStr("c"), NewInt(3))
	d.Set(TextStr("a"), NewInt(1))
	d.Set(TextStr("b"), NewInt(20))
	assert.Equal(t, "d1:ai1e1:bi20e1:ci3ee", string(v.Encode()))

	assert.True(t, d.Delete("b"))
	assert.False(t, d.Delete("b"))
	assert.Equal(t, "d1:ai1e1:ci3ee", string(v.Encode()))

	x, ok := d.Lookup([]byte("c"))
	require.True(t, ok)
	n, _ := x.Int()
	assert.Equal(t, int64(3), n)

	var keys []string
	for _, k := range d.Keys() {
		keys = append(keys, k.String())
	}
	assert.Equal(t, []string{"a", "c"}, keys)
}

func TestNewDictDuplicateKeepsLast(t *testing.T) {
	entries := []Entry{Pair("k", NewInt(1)), Pair("j", NewInt(0)), Pair("k", NewInt(2))}
	v := NewDict(entries...)

	assert.Equal(t, "d1:ji0e1:ki2ee", string(v.Encode()))
	assert.Equal(t, "k", entries[0].Key.String(), "caller's slice is left alone")
}

func TestEqualIgnoresStorage(t *testing.T) {
	a := NewDict(Pair("x", BorrowBytes([]byte("abc"))), Pair("y", NewInt(1)))
	b := NewDict(Pair("y", NewInt(1)), Pair("x", NewText("abc")))

	assert.True(t, a.Equal(b))
	assert.Empty(t, cmp.Diff(a, b))

	assert.False(t, a.Equal(NewDict(Pair("x", NewText("abc")))))
	assert.False(t, NewInt(1).Equal(NewText("1")))
}

func TestCompare(t *testing.T) {
	ordered := []Value{
		NewText(""),
		NewText("a"),
		NewText("b"),
		NewInt(-1),
		NewInt(5),
		NewList(),
		NewList(NewInt(1)),
		NewDict(),
		NewDict(Pair("a", NewInt(1))),
		NewDict(Pair("a", NewInt(2))),
		NewDict(Pair("b", NewInt(0))),
	}

	for i := range ordered {
		for j := range ordered {
			got := ordered[i].Compare(ordered[j])
			switch {
			case i < j:
				assert.Negative(t, got, "%v < %v", ordered[i], ordered[j])
			case i > j:
				assert.Positive(t, got, "%v > %v", ordered[i], ordered[j])
			default:
				assert.Zero(t, got)
			}
		}
	}
}

func TestString(t *testing.T) {
	v := NewDict(
		Pair("bin", NewBytes([]byte{0xde, 0xad})),
		Pair("list", NewList(NewInt(-3), NewText("x"))),
	)

	assert.Equal(t, `{"bin": dead, "list": [-3, "x"]}`, v.String())
	assert.Equal(t, "<invalid>", Value{}.String())
	assert.Equal(t, "dictionary", KindDict.String())
	assert.Equal(t, "invalid", Kind(42).String())
}

func TestAllocs(t *testing.T) {
	assert.Equal(t, 0, NewInt(1).Allocs())
	assert.Equal(t, 0, NewList().Allocs())
	assert.Equal(t, 8, ping().Allocs())
}

func TestLen(t *testing.T) {
	assert.Equal(t, 5, NewText("hello").Len())
	assert.Equal(t, 2, NewList(NewInt(1), NewInt(2)).Len())
	assert.Equal(t, 4, ping().Len())
	assert.Equal(t, 0, NewInt(7).Len())
}

func TestNilDictValue(t *testing.T) {
	v := Value{kind: KindDict}

	assert.Equal(t, 0, v.Allocs())
	assert.Equal(t, "de", string(v.Encode()))
	assert.Equal(t, "de", string(v.Owned().Encode()))
	assert.Equal(t, "{}", v.String())
}
