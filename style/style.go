// Package style resolves the CSS cascade against a document tree,
// producing a styled tree that mirrors the document 1:1. Every element
// resolves to some property map; elements no rule matches get an empty
// one, and text nodes always carry an empty one.
package style

import (
	"sort"

	"tinybrowser/css"
	"tinybrowser/dom"
)

// PropertyMap maps property names to their specified values.
type PropertyMap map[string]css.Value

// Display is the set of display modes the layout engine understands.
type Display int

const (
	Inline Display = iota
	Block
	None
)

// StyledNode pairs a document node with its resolved property map. The
// styled tree has exactly the shape of the document tree and borrows
// its nodes; it must not outlive the document.
type StyledNode struct {
	Node      *dom.Node
	Specified PropertyMap
	Children  []*StyledNode
}

// Value returns the specified value of a property, if any.
func (sn *StyledNode) Value(name string) (css.Value, bool) {
	v, ok := sn.Specified[name]
	return v, ok
}

// Lookup returns the value of property name, else of fallback, else the
// given default, in exactly that order of preference. This covers the
// longhand-or-shorthand-or-initial pattern, e.g.
// Lookup("margin-left", "margin", zero).
func (sn *StyledNode) Lookup(name, fallback string, def css.Value) css.Value {
	if v, ok := sn.Value(name); ok {
		return v
	}
	if v, ok := sn.Value(fallback); ok {
		return v
	}
	return def
}

// Display returns the node's display mode. Anything other than the
// literal keywords "block" and "none" is inline, including a missing
// property and non-keyword values.
func (sn *StyledNode) Display() Display {
	v, ok := sn.Value("display")
	if !ok {
		return Inline
	}
	switch {
	case v.IsKeyword("block"):
		return Block
	case v.IsKeyword("none"):
		return None
	default:
		return Inline
	}
}

// matchedRule pairs a rule with the specificity of the selector that
// matched it.
type matchedRule struct {
	specificity css.Specificity
	rule        *css.Rule
}

// matchRule tests a rule against an element. The first selector in the
// rule's list that matches supplies the specificity; selectors are kept
// sorted most specific first, so this is also the highest-specificity
// match.
func matchRule(n *dom.Node, rule *css.Rule) (matchedRule, bool) {
	for i := range rule.Selectors {
		if rule.Selectors[i].Matches(n) {
			return matchedRule{
				specificity: rule.Selectors[i].Specificity(),
				rule:        rule,
			}, true
		}
	}
	return matchedRule{}, false
}

// matchingRules collects all rules that match the element, in
// stylesheet order.
func matchingRules(n *dom.Node, sheet *css.Stylesheet) []matchedRule {
	var matched []matchedRule
	for i := range sheet.Rules {
		if mr, ok := matchRule(n, &sheet.Rules[i]); ok {
			matched = append(matched, mr)
		}
	}
	return matched
}

// specifiedValues resolves the cascade for a single element. Matched
// rules are applied in ascending specificity order so that more
// specific declarations overwrite less specific ones; the sort is
// stable so that rules of equal specificity win by source order.
func specifiedValues(n *dom.Node, sheet *css.Stylesheet) PropertyMap {
	values := PropertyMap{}
	matched := matchingRules(n, sheet)

	sort.SliceStable(matched, func(i, j int) bool {
		return matched[i].specificity.Compare(matched[j].specificity) < 0
	})
	for _, mr := range matched {
		for _, decl := range mr.rule.Declarations {
			values[decl.Name] = decl.Value
		}
	}
	return values
}

// Tree applies a stylesheet to a whole document tree and returns the
// styled tree. Matching is total: there are no error cases.
func Tree(root *dom.Node, sheet *css.Stylesheet) *StyledNode {
	sn := &StyledNode{
		Node:      root,
		Specified: PropertyMap{},
	}
	if root.Type == dom.ElementNode {
		sn.Specified = specifiedValues(root, sheet)
	}
	for _, child := range root.Children {
		sn.Children = append(sn.Children, Tree(child, sheet))
	}
	return sn
}
