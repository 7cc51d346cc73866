package rpc

import (
	"github.com/beevik/etree"
)

// ResponsePath is the element-child offset of the return value, starting at
// the document node: envelope, body, method response, then the second child
// (the first one is the result marker).
var ResponsePath = [...]int{0, 0, 0, 1}

// NodeSet is the result of walking ResponsePath: one element, or none when
// the method response has no return value.
type NodeSet []*etree.Element

// First returns the first node or nil.
func (ns NodeSet) First() *etree.Element {
	if len(ns) == 0 {
		return nil
	}
	return ns[0]
}

// Empty reports whether the set holds no node.
func (ns NodeSet) Empty() bool {
	return len(ns) == 0
}

// Children returns the element children of the first node, in document order.
func (ns NodeSet) Children() []*etree.Element {
	if first := ns.First(); first != nil {
		return first.ChildElements()
	}
	return nil
}

// Extract walks ResponsePath over doc. A missing step before the last one
// means the envelope itself is wrong; a missing last step is an empty result.
func Extract(doc *etree.Document) (NodeSet, error) {
	if doc == nil {
		return nil, ErrMalformedResponse
	}
	node := &doc.Element
	last := len(ResponsePath) - 1
	for i, step := range ResponsePath {
		children := node.ChildElements()
		if step >= len(children) {
			if i == last {
				return NodeSet{}, nil
			}
			return nil, ErrMalformedResponse
		}
		node = children[step]
	}
	return NodeSet{node}, nil
}
