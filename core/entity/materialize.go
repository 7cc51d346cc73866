package entity

import (
	"github.com/beevik/etree"
)

// Materialize allocates a T and fills it from the children of fragment.
func Materialize[T any](s *Schema[T], fragment *etree.Element) (*T, error) {
	v := new(T)
	if err := MaterializeInto(s, v, fragment); err != nil {
		return nil, err
	}
	return v, nil
}

// MaterializeInto fills dst from the children of fragment. Children whose tag
// is not in the schema are skipped. The namespace prefix of a tag is ignored.
func MaterializeInto[T any](s *Schema[T], dst *T, fragment *etree.Element) error {
	if fragment == nil {
		return ErrNilFragment
	}
	for _, child := range fragment.ChildElements() {
		f, ok := s.Lookup(child.Tag)
		if !ok || IsNil(child) {
			continue
		}
		if err := f.decode(dst, child); err != nil {
			return attribute(s.name, err)
		}
	}
	return nil
}

// MaterializeAll turns every child element of node into a T, in document order.
// A node without children yields an empty, non-nil slice.
func MaterializeAll[T any](s *Schema[T], node *etree.Element) ([]*T, error) {
	if node == nil {
		return nil, ErrNilFragment
	}
	children := node.ChildElements()
	out := make([]*T, 0, len(children))
	for _, child := range children {
		v, err := Materialize(s, child)
		if err != nil {
			return nil, err
		}
		out = append(out, v)
	}
	return out, nil
}
