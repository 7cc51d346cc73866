package entity

import (
	"github.com/beevik/etree"
)

// Serialize appends one child element to sink for every present attribute of
// e, in declaration order. Absent attributes are omitted.
func Serialize[T any](s *Schema[T], e *T, sink *etree.Element) {
	if e == nil {
		return
	}
	for _, f := range s.fields {
		f.encode(e, sink)
	}
}

// Record returns the present attributes of e keyed by wire name. Nested
// entities become maps and arrays become slices.
func Record[T any](s *Schema[T], e *T) map[string]any {
	if e == nil {
		return nil
	}
	out := make(map[string]any, len(s.fields))
	for _, f := range s.fields {
		if v, ok := f.export(e); ok {
			out[f.wire] = v
		}
	}
	return out
}

// Records applies Record to every element of items.
func Records[T any](s *Schema[T], items []*T) []map[string]any {
	out := make([]map[string]any, 0, len(items))
	for _, item := range items {
		out = append(out, Record(s, item))
	}
	return out
}
