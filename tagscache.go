package bencode

import (
	"reflect"
	"strings"
	"sync"
)

// structTags caches the dictionary layout of struct types for Marshal and
// Unmarshal.
var structTags tagsCache

type tagsCache struct {
	cmap sync.Map // reflect.Type -> []structField
}

type structField struct {
	name      string
	index     int
	omitEmpty bool
}

func (tc *tagsCache) Get(t reflect.Type) []structField {
	if t.Kind() != reflect.Struct {
		return nil
	}

	if m, ok := tc.cmap.Load(t); ok {
		return m.([]structField)
	}

	var fields []structField

	l := t.NumField()
	for i := 0; i < l; i++ {
		sf := t.Field(i)
		name, opts := parseTag(sf.Tag.Get("bencode"))
		if name == "-" {
			// bencode tag is "-" -- skip
			continue
		}

		if !sf.IsExported() {
			continue
		}

		if name == "" {
			// no tag? make one from the field name
			name = sf.Name
		}
		fields = append(fields, structField{name: name, index: i, omitEmpty: opts.Contains("omitempty")})
	}

	m, _ := tc.cmap.LoadOrStore(t, fields)
	return m.([]structField)
}

type tagOptions string

func parseTag(tag string) (string, tagOptions) {
	name, opts, _ := strings.Cut(tag, ",")
	return name, tagOptions(opts)
}

func (o tagOptions) Contains(option string) bool {
	s := string(o)
	for s != "" {
		var name string
		name, s, _ = strings.Cut(s, ",")
		if name == option {
			return true
		}
	}
	return false
}
