// Package css provides the stylesheet data model and a parser for the
// subset of CSS2 this engine understands: simple selectors (tag, #id,
// .class), keyword values, pixel lengths, and RGBA colors.
package css

// ValueType discriminates the closed set of declaration value variants.
type ValueType int

const (
	KeywordValue ValueType = iota
	LengthValue
	ColorValue
)

// Unit is a length unit. Pixels are the only supported unit; the parser
// rejects dimensions in any other unit.
type Unit int

const (
	Px Unit = iota
)

// Color is an 8-bit RGBA color.
type Color struct {
	R, G, B, A uint8
}

// Value is a single declaration value.
type Value struct {
	Type    ValueType
	Keyword string  // KeywordValue: the bare identifier
	Length  float64 // LengthValue: magnitude
	Unit    Unit    // LengthValue: unit
	Color   Color   // ColorValue
}

// Keyword constructs a keyword value.
func Keyword(s string) Value {
	return Value{Type: KeywordValue, Keyword: s}
}

// Length constructs a pixel length value.
func Length(px float64) Value {
	return Value{Type: LengthValue, Length: px, Unit: Px}
}

// RGBA constructs a color value.
func RGBA(r, g, b, a uint8) Value {
	return Value{Type: ColorValue, Color: Color{R: r, G: g, B: b, A: a}}
}

// ToPx returns the pixel magnitude of a length value. Every other
// variant, including the "auto" keyword, contributes 0 to sums.
func (v Value) ToPx() float64 {
	if v.Type == LengthValue && v.Unit == Px {
		return v.Length
	}
	return 0
}

// IsKeyword reports whether v is the given bare identifier.
func (v Value) IsKeyword(kw string) bool {
	return v.Type == KeywordValue && v.Keyword == kw
}

// IsAuto reports whether v is the "auto" keyword.
func (v Value) IsAuto() bool {
	return v.IsKeyword("auto")
}
