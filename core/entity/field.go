package entity

import (
	"net/url"
	"strings"
	"time"

	"github.com/beevik/etree"
)

// ItemTag is the element name used for each member of a serialized array.
const ItemTag = "item"

// Field is one entry of a schema: a wire name bound to an attribute of T.
type Field[T any] struct {
	wire string
	kind Kind

	decode    func(dst *T, node *etree.Element) error
	encode    func(src *T, sink *etree.Element)
	export    func(src *T) (any, bool)
	predicate func(src *T) bool
}

// Wire returns the tag name the remote service uses for this field.
func (f Field[T]) Wire() string {
	return f.wire
}

// Kind returns the converter kind the field was declared with.
func (f Field[T]) Kind() Kind {
	return f.kind
}

// Scalar declares a text field decoded with conv.
func Scalar[T, V any](wire string, conv Converter[V], attr func(*T) **V) Field[T] {
	f := Field[T]{wire: wire, kind: conv.Kind}
	f.decode = func(dst *T, node *etree.Element) error {
		if hasChildElements(node) {
			return &MaterializationError{Wire: wire, Err: ErrShape}
		}
		raw := node.Text()
		v, err := conv.Decode(raw)
		if err != nil {
			return &ConversionError{Wire: wire, Raw: raw, Err: err}
		}
		*attr(dst) = &v
		return nil
	}
	f.encode = func(src *T, sink *etree.Element) {
		if p := *attr(src); p != nil {
			sink.CreateElement(wire).SetText(conv.Encode(*p))
		}
	}
	f.export = func(src *T) (any, bool) {
		p := *attr(src)
		if p == nil {
			return nil, false
		}
		if conv.Export != nil {
			return conv.Export(*p), true
		}
		return conv.Encode(*p), true
	}
	return f
}

// String declares an identity-converted field.
func String[T any](wire string, attr func(*T) **string) Field[T] {
	return Scalar(wire, StringConverter, attr)
}

// Bool declares a boolean field and registers its predicate.
func Bool[T any](wire string, attr func(*T) **bool) Field[T] {
	f := Scalar(wire, BoolConverter, attr)
	f.predicate = func(src *T) bool {
		p := *attr(src)
		return p != nil && *p
	}
	return f
}

// Int declares an integer field.
func Int[T any](wire string, attr func(*T) **int64) Field[T] {
	return Scalar(wire, IntConverter, attr)
}

// Date declares a date-only field.
func Date[T any](wire string, attr func(*T) **time.Time) Field[T] {
	return Scalar(wire, DateConverter, attr)
}

// DateTime declares a timestamp field.
func DateTime[T any](wire string, attr func(*T) **time.Time) Field[T] {
	return Scalar(wire, DateTimeConverter, attr)
}

// URL declares a URL field.
func URL[T any](wire string, attr func(*T) **url.URL) Field[T] {
	return Scalar(wire, URLConverter, attr)
}

// Strings declares a field whose child elements each carry one string.
func Strings[T any](wire string, attr func(*T) *[]string) Field[T] {
	f := Field[T]{wire: wire, kind: KindStrings}
	f.decode = func(dst *T, node *etree.Element) error {
		if hasOnlyCharData(node) {
			return &MaterializationError{Wire: wire, Err: ErrShape}
		}
		children := node.ChildElements()
		out := make([]string, 0, len(children))
		for _, c := range children {
			out = append(out, c.Text())
		}
		*attr(dst) = out
		return nil
	}
	f.encode = func(src *T, sink *etree.Element) {
		items := *attr(src)
		if items == nil {
			return
		}
		el := sink.CreateElement(wire)
		for _, s := range items {
			el.CreateElement(ItemTag).SetText(s)
		}
	}
	f.export = func(src *T) (any, bool) {
		items := *attr(src)
		if items == nil {
			return nil, false
		}
		out := make([]any, len(items))
		for i, s := range items {
			out[i] = s
		}
		return out, true
	}
	return f
}

// Nested declares a field holding one entity of type U.
func Nested[T, U any](wire string, attr func(*T) **U, schema *Schema[U]) Field[T] {
	f := Field[T]{wire: wire, kind: KindNested}
	f.decode = func(dst *T, node *etree.Element) error {
		if hasOnlyCharData(node) {
			return &MaterializationError{Wire: wire, Err: ErrShape}
		}
		v, err := Materialize(schema, node)
		if err != nil {
			return qualify(wire, err)
		}
		*attr(dst) = v
		return nil
	}
	f.encode = func(src *T, sink *etree.Element) {
		if v := *attr(src); v != nil {
			Serialize(schema, v, sink.CreateElement(wire))
		}
	}
	f.export = func(src *T) (any, bool) {
		v := *attr(src)
		if v == nil {
			return nil, false
		}
		return Record(schema, v), true
	}
	return f
}

// ArrayOf declares a field whose child elements are each an entity of type U.
// Element order is preserved.
func ArrayOf[T, U any](wire string, attr func(*T) *[]*U, schema *Schema[U]) Field[T] {
	f := Field[T]{wire: wire, kind: KindArray}
	f.decode = func(dst *T, node *etree.Element) error {
		if hasOnlyCharData(node) {
			return &MaterializationError{Wire: wire, Err: ErrShape}
		}
		items, err := MaterializeAll(schema, node)
		if err != nil {
			return qualify(wire, err)
		}
		*attr(dst) = items
		return nil
	}
	f.encode = func(src *T, sink *etree.Element) {
		items := *attr(src)
		if items == nil {
			return
		}
		el := sink.CreateElement(wire)
		for _, item := range items {
			Serialize(schema, item, el.CreateElement(ItemTag))
		}
	}
	f.export = func(src *T) (any, bool) {
		items := *attr(src)
		if items == nil {
			return nil, false
		}
		out := make([]any, len(items))
		for i, item := range items {
			out[i] = Record(schema, item)
		}
		return out, true
	}
	return f
}

// lift rebinds a field declared on B onto T through get.
func lift[T, B any](f Field[B], get func(*T) *B) Field[T] {
	out := Field[T]{wire: f.wire, kind: f.kind}
	out.decode = func(dst *T, node *etree.Element) error { return f.decode(get(dst), node) }
	out.encode = func(src *T, sink *etree.Element) { f.encode(get(src), sink) }
	out.export = func(src *T) (any, bool) { return f.export(get(src)) }
	if f.predicate != nil {
		out.predicate = func(src *T) bool { return f.predicate(get(src)) }
	}
	return out
}

func hasChildElements(node *etree.Element) bool {
	for _, tok := range node.Child {
		if _, ok := tok.(*etree.Element); ok {
			return true
		}
	}
	return false
}

// hasOnlyCharData reports a node with meaningful text and no child elements,
// i.e. a scalar where a structure was expected.
func hasOnlyCharData(node *etree.Element) bool {
	if hasChildElements(node) {
		return false
	}
	return strings.TrimSpace(node.Text()) != ""
}

// IsNil reports whether node carries xsi:nil="true".
func IsNil(node *etree.Element) bool {
	for _, a := range node.Attr {
		if a.Key == "nil" && (a.Space == "xsi" || a.Space == "") {
			return strings.EqualFold(strings.TrimSpace(a.Value), "true") || a.Value == "1"
		}
	}
	return false
}
