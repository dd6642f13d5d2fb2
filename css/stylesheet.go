package css

import "tinybrowser/dom"

// Stylesheet is an ordered list of rules. Rule order is significant:
// declarations from later rules win ties against earlier rules of equal
// specificity.
type Stylesheet struct {
	Rules []Rule

	// Warnings lists constructs the parser recognized but skipped
	// (unsupported selectors, units, at-rules).
	Warnings []string
}

// Rule pairs OR-combined selectors with an ordered declaration list.
// Selectors are kept sorted by specificity, highest first, so the first
// matching selector is also the most specific one.
type Rule struct {
	Selectors    []Selector
	Declarations []Declaration
}

// Declaration is a single property: value pair.
type Declaration struct {
	Name  string
	Value Value
}

// Selector is a simple selector: optional tag name, optional id, and
// zero or more class names. A selector with no constraints matches
// every element (the universal selector "*").
type Selector struct {
	TagName string
	ID      string
	Classes []string
}

// Specificity ranks competing selectors: ids beat classes beat tags,
// compared lexicographically.
type Specificity struct {
	IDs     int
	Classes int
	Tags    int
}

// Specificity computes the specificity triple of the selector.
func (s Selector) Specificity() Specificity {
	spec := Specificity{Classes: len(s.Classes)}
	if s.ID != "" {
		spec.IDs = 1
	}
	if s.TagName != "" {
		spec.Tags = 1
	}
	return spec
}

// Compare returns -1, 0 or 1 as s ranks below, equal to or above other.
func (s Specificity) Compare(other Specificity) int {
	if s.IDs != other.IDs {
		return sign(s.IDs - other.IDs)
	}
	if s.Classes != other.Classes {
		return sign(s.Classes - other.Classes)
	}
	return sign(s.Tags - other.Tags)
}

func sign(n int) int {
	switch {
	case n < 0:
		return -1
	case n > 0:
		return 1
	}
	return 0
}

// Matches reports whether the element satisfies every constraint the
// selector carries. Text nodes never match.
func (s Selector) Matches(n *dom.Node) bool {
	if n.Type != dom.ElementNode {
		return false
	}
	if s.TagName != "" && s.TagName != n.TagName {
		return false
	}
	if s.ID != "" && s.ID != n.ID() {
		return false
	}
	if len(s.Classes) > 0 {
		classes := n.Classes()
		for _, c := range s.Classes {
			if !classes[c] {
				return false
			}
		}
	}
	return true
}
