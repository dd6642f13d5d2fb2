// CSS color keywords and hex color notation.
package css

// NamedColors maps CSS color keywords to their RGBA values. Only the
// CSS2.1 palette plus a few common extended names is carried; anything
// else stays a plain keyword.
var NamedColors = map[string]Color{
	"black":       {R: 0, G: 0, B: 0, A: 255},
	"silver":      {R: 192, G: 192, B: 192, A: 255},
	"gray":        {R: 128, G: 128, B: 128, A: 255},
	"grey":        {R: 128, G: 128, B: 128, A: 255},
	"white":       {R: 255, G: 255, B: 255, A: 255},
	"maroon":      {R: 128, G: 0, B: 0, A: 255},
	"red":         {R: 255, G: 0, B: 0, A: 255},
	"purple":      {R: 128, G: 0, B: 128, A: 255},
	"fuchsia":     {R: 255, G: 0, B: 255, A: 255},
	"green":       {R: 0, G: 128, B: 0, A: 255},
	"lime":        {R: 0, G: 255, B: 0, A: 255},
	"olive":       {R: 128, G: 128, B: 0, A: 255},
	"yellow":      {R: 255, G: 255, B: 0, A: 255},
	"navy":        {R: 0, G: 0, B: 128, A: 255},
	"blue":        {R: 0, G: 0, B: 255, A: 255},
	"teal":        {R: 0, G: 128, B: 128, A: 255},
	"aqua":        {R: 0, G: 255, B: 255, A: 255},
	"cyan":        {R: 0, G: 255, B: 255, A: 255},
	"magenta":     {R: 255, G: 0, B: 255, A: 255},
	"orange":      {R: 255, G: 165, B: 0, A: 255},
	"transparent": {R: 0, G: 0, B: 0, A: 0},
}

// ParseHexColor parses #rgb and #rrggbb notation. The leading '#' is
// required.
func ParseHexColor(s string) (Color, bool) {
	if len(s) == 0 || s[0] != '#' {
		return Color{}, false
	}
	hex := s[1:]
	switch len(hex) {
	case 3:
		r, okR := hexNibble(hex[0])
		g, okG := hexNibble(hex[1])
		b, okB := hexNibble(hex[2])
		if !okR || !okG || !okB {
			return Color{}, false
		}
		return Color{R: r * 17, G: g * 17, B: b * 17, A: 255}, true
	case 6:
		r, okR := hexByte(hex[0], hex[1])
		g, okG := hexByte(hex[2], hex[3])
		b, okB := hexByte(hex[4], hex[5])
		if !okR || !okG || !okB {
			return Color{}, false
		}
		return Color{R: r, G: g, B: b, A: 255}, true
	}
	return Color{}, false
}

func hexNibble(c byte) (uint8, bool) {
	switch {
	case c >= '0' && c <= '9':
		return c - '0', true
	case c >= 'a' && c <= 'f':
		return c - 'a' + 10, true
	case c >= 'A' && c <= 'F':
		return c - 'A' + 10, true
	}
	return 0, false
}

func hexByte(hi, lo byte) (uint8, bool) {
	h, okH := hexNibble(hi)
	l, okL := hexNibble(lo)
	return h<<4 | l, okH && okL
}
