package bencode

import (
	"encoding/hex"
	"strconv"
	"strings"
	"unicode/utf8"
)

// String formats v for debugging: integers in decimal, UTF-8 strings quoted,
// other strings as hex, lists in brackets and dicts in braces.
func (v Value) String() string {
	var sb strings.Builder
	format(&sb, v)
	return sb.String()
}

func (v Value) GoString() string { return v.String() }

func format(sb *strings.Builder, v Value) {
	switch v.kind {
	case KindInt:
		sb.WriteString(strconv.FormatInt(v.num, 10))
	case KindString:
		formatStr(sb, v.str)
	case KindList:
		sb.WriteByte('[')
		for i, item := range v.list {
			if i > 0 {
				sb.WriteString(", ")
			}
			format(sb, item)
		}
		sb.WriteByte(']')
	case KindDict:
		sb.WriteByte('{')
		i := 0
		for k, val := range v.dict.All() {
			if i > 0 {
				sb.WriteString(", ")
			}
			formatStr(sb, k)
			sb.WriteString(": ")
			format(sb, val)
			i++
		}
		sb.WriteByte('}')
	default:
		sb.WriteString("<invalid>")
	}
}

func formatStr(sb *strings.Builder, s Str) {
	if utf8.Valid(s.b) {
		sb.WriteString(strconv.Quote(string(s.b)))
		return
	}
	sb.WriteString(hex.EncodeToString(s.b))
}
