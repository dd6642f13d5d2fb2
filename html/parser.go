// Package html builds document trees from HTML text using
// golang.org/x/net/html as the underlying parser.
package html

import (
	"errors"
	"io"
	"strings"

	"golang.org/x/net/html"

	"tinybrowser/dom"
)

// ErrNoRootElement is returned when the parsed document contains no
// element at all.
var ErrNoRootElement = errors.New("html: document has no root element")

// Parse reads HTML and returns the root element of the document tree,
// normally the <html> element. Comments, doctypes and whitespace-only
// text nodes are dropped.
func Parse(r io.Reader) (*dom.Node, error) {
	doc, err := html.Parse(r)
	if err != nil {
		return nil, err
	}
	for c := doc.FirstChild; c != nil; c = c.NextSibling {
		if c.Type == html.ElementNode {
			return convert(c), nil
		}
	}
	return nil, ErrNoRootElement
}

// ParseString is Parse over an in-memory document.
func ParseString(s string) (*dom.Node, error) {
	return Parse(strings.NewReader(s))
}

// convert maps an x/net/html element to a dom element, recursively.
func convert(n *html.Node) *dom.Node {
	attrs := make(map[string]string, len(n.Attr))
	for _, a := range n.Attr {
		attrs[a.Key] = a.Val
	}

	var children []*dom.Node
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		switch c.Type {
		case html.ElementNode:
			children = append(children, convert(c))
		case html.TextNode:
			if strings.TrimSpace(c.Data) != "" {
				children = append(children, dom.NewText(c.Data))
			}
		}
	}
	return dom.NewElement(n.Data, attrs, children)
}
