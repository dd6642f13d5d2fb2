// Package dom defines the document tree consumed by style resolution
// and layout. The tree is built once (by the html package or by test
// fixtures) and treated as immutable from then on; styled and layout
// nodes hold pointers back into it rather than copies.
package dom

import "strings"

// NodeType discriminates the two node variants.
type NodeType int

const (
	TextNode NodeType = iota
	ElementNode
)

// Node is a single node in the document tree: either a text leaf or an
// element with a tag name and attributes.
type Node struct {
	Type NodeType

	// Text holds the character data of a TextNode.
	Text string

	// TagName and Attributes are set for ElementNode.
	TagName    string
	Attributes map[string]string

	Children []*Node
}

// NewText creates a text leaf.
func NewText(data string) *Node {
	return &Node{Type: TextNode, Text: data}
}

// NewElement creates an element node. attrs may be nil.
func NewElement(tag string, attrs map[string]string, children []*Node) *Node {
	if attrs == nil {
		attrs = map[string]string{}
	}
	return &Node{
		Type:       ElementNode,
		TagName:    tag,
		Attributes: attrs,
		Children:   children,
	}
}

// Attr returns the value of the named attribute and whether it is present.
func (n *Node) Attr(name string) (string, bool) {
	v, ok := n.Attributes[name]
	return v, ok
}

// ID returns the element's id attribute, or "" if absent.
func (n *Node) ID() string {
	return n.Attributes["id"]
}

// Classes returns the whitespace-split class attribute as a set.
func (n *Node) Classes() map[string]bool {
	classes := map[string]bool{}
	if attr, ok := n.Attributes["class"]; ok {
		for _, c := range strings.Fields(attr) {
			classes[c] = true
		}
	}
	return classes
}
