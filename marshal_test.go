package bencode

import (
	"errors"
	"math"
	"reflect"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type torrentFile struct {
	Length int64    `bencode:"length"`
	Path   []string `bencode:"path"`
}

type torrentInfo struct {
	Name        string        `bencode:"name"`
	PieceLength int           `bencode:"piece length"`
	Pieces      []byte        `bencode:"pieces"`
	Private     uint8         `bencode:"private,omitempty"`
	Files       []torrentFile `bencode:"files,omitempty"`
	Comment     *string       `bencode:"comment"`
	Ignored     string        `bencode:"-"`
	hidden      int
}

type metainfo struct {
	Announce string
	Info     torrentInfo `bencode:"info"`
	Extra    Value       `bencode:"extra,omitempty"`
}

func TestMarshalStruct(t *testing.T) {
	m := metainfo{
		Announce: "http://tracker/announce",
		Info: torrentInfo{
			Name:        "dir",
			PieceLength: 16384,
			Pieces:      []byte{0x01, 0x02},
			Files: []torrentFile{
				{Length: 3, Path: []string{"a", "b"}},
			},
			Ignored: "x",
			hidden:  1,
		},
	}

	b, err := Marshal(m)
	require.NoError(t, err)

	want := "d8:Announce23:http://tracker/announce" +
		"4:infod5:filesld6:lengthi3e4:pathl1:a1:beee" +
		"4:name3:dir12:piece lengthi16384e6:pieces2:\x01\x02ee"
	assert.Equal(t, want, string(b))

	var got metainfo
	require.NoError(t, Unmarshal(b, &got, 100))

	m.Info.Ignored = ""
	m.Info.hidden = 0
	if diff := cmp.Diff(m, got, cmp.AllowUnexported(torrentInfo{})); diff != "" {
		t.Errorf("roundtrip mismatch (-want +got):\n%s", diff)
	}
}

func TestMarshalPointerField(t *testing.T) {
	comment := "hi"
	b, err := Marshal(torrentInfo{Name: "n", Comment: &comment})
	require.NoError(t, err)
	assert.Equal(t, "d7:comment2:hi4:name1:n12:piece lengthi0e6:pieces0:e", string(b))

	var got torrentInfo
	require.NoError(t, Unmarshal(b, &got, 10))
	require.NotNil(t, got.Comment)
	assert.Equal(t, "hi", *got.Comment)
}

func TestMarshalValues(t *testing.T) {
	tests := []struct {
		in   any
		want string
	}{
		{42, "i42e"},
		{int8(-3), "i-3e"},
		{uint64(math.MaxInt64), "i9223372036854775807e"},
		{"spam", "4:spam"},
		{[]byte("eggs"), "4:eggs"},
		{[4]byte{'a', 'b', 'c', 'd'}, "4:abcd"},
		{[]int{1, 2}, "li1ei2ee"},
		{[2]string{"x", "y"}, "l1:x1:ye"},
		{map[string]int{"b": 2, "a": 1}, "d1:ai1e1:bi2ee"},
		{map[string]any{"k": nil, "v": "x"}, "d1:v1:xe"},
		{NewList(NewInt(1)), "li1ee"},
		{TextStr("s"), "1:s"},
	}

	for _, tt := range tests {
		b, err := Marshal(tt.in)
		if assert.NoError(t, err, "%#v", tt.in) {
			assert.Equal(t, tt.want, string(b), "%#v", tt.in)
		}
	}
}

func TestMarshalErrors(t *testing.T) {
	var ute *UnsupportedTypeError

	for _, in := range []any{true, 1.5, map[int]string{1: "a"}, []any{func() {}}} {
		_, err := Marshal(in)
		assert.True(t, errors.As(err, &ute), "%T: %v", in, err)
	}

	_, err := Marshal(nil)
	assert.True(t, errors.As(err, &ute))

	_, err = Marshal(uint64(math.MaxUint64))
	assert.Error(t, err)

	_, err = Marshal([]*int{nil})
	assert.Error(t, err)
}

func TestUnmarshalInterface(t *testing.T) {
	var got any
	require.NoError(t, Unmarshal([]byte("d1:ai1e1:bl2:xyi-2eee"), &got, 10))

	want := map[string]any{
		"a": int64(1),
		"b": []any{[]byte("xy"), int64(-2)},
	}
	assert.Equal(t, want, got)
}

func TestUnmarshalCopiesBytes(t *testing.T) {
	in := []byte("5:hello")

	var b []byte
	require.NoError(t, Unmarshal(in, &b, 0))
	in[2] = 'j'
	assert.Equal(t, "hello", string(b))
}

func TestUnmarshalValue(t *testing.T) {
	var got struct {
		Raw Value `bencode:"raw"`
		N   int   `bencode:"n"`
	}
	require.NoError(t, Unmarshal([]byte("d1:ni7e3:rawli1eee"), &got, 10))

	assert.Equal(t, 7, got.N)
	assert.Equal(t, "li1ee", string(got.Raw.Encode()))
}

func TestUnmarshalFixedArray(t *testing.T) {
	var id [4]byte
	require.NoError(t, Unmarshal([]byte("4:abcd"), &id, 0))
	assert.Equal(t, [4]byte{'a', 'b', 'c', 'd'}, id)

	var ute *UnmarshalTypeError
	err := Unmarshal([]byte("3:abc"), &id, 0)
	assert.True(t, errors.As(err, &ute))

	var nums [3]int
	nums[2] = 9
	require.NoError(t, Unmarshal([]byte("li1ei2ee"), &nums, 2))
	assert.Equal(t, [3]int{1, 2, 0}, nums)
}

func TestUnmarshalErrors(t *testing.T) {
	var n int8
	var ute *UnmarshalTypeError

	err := Unmarshal([]byte("i300e"), &n, 0)
	assert.True(t, errors.As(err, &ute), "overflow")

	var u uint
	err = Unmarshal([]byte("i-1e"), &u, 0)
	assert.True(t, errors.As(err, &ute), "negative into unsigned")

	var s string
	err = Unmarshal([]byte("i1e"), &s, 0)
	require.True(t, errors.As(err, &ute))
	assert.Equal(t, "bencode: cannot unmarshal integer into Go value of type string", err.Error())

	err = Unmarshal([]byte("li1ee"), &s, 0)
	assert.ErrorIs(t, err, ErrInvalid, "budget")

	var iue *InvalidUnmarshalError
	err = Unmarshal([]byte("i1e"), n, 0)
	assert.True(t, errors.As(err, &iue))
	err = Unmarshal([]byte("i1e"), nil, 0)
	assert.True(t, errors.As(err, &iue))

	var st struct {
		A int `bencode:"a"`
	}
	err = Unmarshal([]byte("d1:a1:xe"), &st, 1)
	assert.ErrorContains(t, err, "field a")
}

func TestTagOptions(t *testing.T) {
	name, opts := parseTag("field,omitempty,other")
	assert.Equal(t, "field", name)
	assert.True(t, opts.Contains("omitempty"))
	assert.True(t, opts.Contains("other"))
	assert.False(t, opts.Contains("omit"))

	fields := structTags.Get(reflect.TypeFor[torrentInfo]())
	var names []string
	for _, f := range fields {
		names = append(names, f.name)
	}
	assert.Equal(t, []string{"name", "piece length", "pieces", "private", "files", "comment"}, names)
}

func TestMarshalDict(t *testing.T) {
	v := NewDict(Pair("a", NewInt(1)), Pair("b", NewList(NewText("x"))))
	d, _ := v.Dict()

	b, err := Marshal(d)
	require.NoError(t, err)
	assert.Equal(t, "d1:ai1e1:bl1:xee", string(b))

	b, err = Marshal(*d)
	require.NoError(t, err)
	assert.Equal(t, "d1:ai1e1:bl1:xee", string(b))

	var got Dict
	require.NoError(t, Unmarshal(b, &got, 10))
	require.Equal(t, 2, got.Len())
	n, ok := got.Get("a")
	require.True(t, ok)
	assert.True(t, n.Equal(NewInt(1)))

	got.Set(TextStr("c"), NewInt(3))
	assert.Equal(t, 2, d.Len(), "unmarshalled dict has its own entries")

	var ute *UnmarshalTypeError
	err = Unmarshal([]byte("li1ee"), &got, 10)
	assert.True(t, errors.As(err, &ute))
}

func TestMarshalDictField(t *testing.T) {
	var st struct {
		Peers *Dict `bencode:"peers"`
		Empty *Dict `bencode:"empty"`
	}
	require.NoError(t, Unmarshal([]byte("d5:peersd1:ai1eee"), &st, 10))
	require.NotNil(t, st.Peers)
	assert.Equal(t, 1, st.Peers.Len())
	assert.Nil(t, st.Empty)

	b, err := Marshal(st)
	require.NoError(t, err)
	assert.Equal(t, "d5:peersd1:ai1eee", string(b))
}
