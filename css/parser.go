package css

import (
	"bytes"
	"sort"
	"strconv"
	"strings"
	"unicode"

	parse "github.com/tdewolff/parse/v2"
	"github.com/tdewolff/parse/v2/css"
	"go.uber.org/zap"
)

// Parser parses CSS text into a Stylesheet. Constructs outside the
// supported subset are skipped and recorded as warnings rather than
// failing the parse.
type Parser struct {
	log *zap.Logger
}

// NewParser creates a new CSS parser. A nil logger disables logging.
func NewParser(log *zap.Logger) *Parser {
	if log == nil {
		log = zap.NewNop()
	}
	return &Parser{log: log.Named("css-parser")}
}

// Parse parses CSS text into a Stylesheet.
func (p *Parser) Parse(data []byte) *Stylesheet {
	sheet := &Stylesheet{}

	input := parse.NewInput(bytes.NewReader(data))
	parser := css.NewParser(input, false)

	// Selector groups already seen for the ruleset being parsed; the
	// grammar reports "a," of "a, b { ... }" before the block begins.
	var pending []Selector

	for {
		gt, _, data := parser.Next()

		switch gt {
		case css.ErrorGrammar:
			if err := parser.Err(); err != nil && err.Error() != "EOF" {
				p.log.Debug("CSS parse error", zap.Error(err))
			}
			return sheet

		case css.BeginAtRuleGrammar:
			name := string(data)
			p.skipAtRuleBlock(parser)
			sheet.warn("unsupported at-rule: " + name)
			p.log.Debug("Skipping at-rule", zap.String("rule", name))

		case css.AtRuleGrammar:
			name := string(data)
			sheet.warn("unsupported at-rule: " + name)
			p.log.Debug("Skipping at-rule", zap.String("rule", name))

		case css.QualifiedRuleGrammar:
			pending = append(pending, p.parseSelectors(data, parser.Values(), sheet)...)

		case css.BeginRulesetGrammar:
			selectors := append(pending, p.parseSelectors(data, parser.Values(), sheet)...)
			pending = nil
			declarations := p.parseDeclarations(parser, sheet)
			if len(selectors) == 0 || len(declarations) == 0 {
				continue
			}
			// Highest specificity first, so matching can stop at the
			// first selector that applies.
			sort.SliceStable(selectors, func(i, j int) bool {
				return selectors[i].Specificity().Compare(selectors[j].Specificity()) > 0
			})
			sheet.Rules = append(sheet.Rules, Rule{
				Selectors:    selectors,
				Declarations: declarations,
			})
		}
	}
}

func (s *Stylesheet) warn(msg string) {
	s.Warnings = append(s.Warnings, msg)
}

// parseSelectors splits the rule prelude on commas and parses each part
// as a simple selector.
func (p *Parser) parseSelectors(data []byte, values []css.Token, sheet *Stylesheet) []Selector {
	var sb strings.Builder
	sb.Write(data)
	for _, v := range values {
		sb.Write(v.Data)
	}

	var selectors []Selector
	for _, part := range strings.Split(sb.String(), ",") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		sel, ok := p.parseSimpleSelector(part)
		if !ok {
			sheet.warn("unsupported selector: " + part)
			p.log.Debug("Skipping selector", zap.String("selector", part))
			continue
		}
		selectors = append(selectors, sel)
	}
	return selectors
}

// parseSimpleSelector parses tag, #id and .class components. Anything
// beyond a simple selector (combinators, attribute matchers, pseudo
// classes) is rejected.
func (p *Parser) parseSimpleSelector(s string) (Selector, bool) {
	if strings.ContainsAny(s, " \t\n>+~[]():") {
		return Selector{}, false
	}

	var sel Selector
	for len(s) > 0 {
		switch s[0] {
		case '#':
			name, rest := readIdent(s[1:])
			if name == "" {
				return Selector{}, false
			}
			sel.ID = name
			s = rest
		case '.':
			name, rest := readIdent(s[1:])
			if name == "" {
				return Selector{}, false
			}
			sel.Classes = append(sel.Classes, name)
			s = rest
		case '*':
			s = s[1:]
		default:
			name, rest := readIdent(s)
			if name == "" {
				return Selector{}, false
			}
			sel.TagName = name
			s = rest
		}
	}
	return sel, true
}

// readIdent consumes a leading CSS identifier and returns it with the
// remainder of the string.
func readIdent(s string) (string, string) {
	end := 0
	for end < len(s) {
		c := s[end]
		if c == '-' || c == '_' ||
			(c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z') ||
			(c >= '0' && c <= '9') {
			end++
			continue
		}
		break
	}
	return s[:end], s[end:]
}

// parseDeclarations consumes property declarations until the end of the
// ruleset.
func (p *Parser) parseDeclarations(parser *css.Parser, sheet *Stylesheet) []Declaration {
	var declarations []Declaration

	for {
		gt, _, data := parser.Next()

		switch gt {
		case css.ErrorGrammar, css.EndRulesetGrammar:
			return declarations

		case css.DeclarationGrammar:
			name := strings.ToLower(string(data))
			value, ok := p.parseValue(parser.Values())
			if !ok {
				sheet.warn("unsupported value for property: " + name)
				continue
			}
			declarations = append(declarations, Declaration{Name: name, Value: value})

		case css.CustomPropertyGrammar:
			sheet.warn("unsupported custom property: " + string(data))
		}
	}
}

// parseValue converts declaration value tokens to a Value. Only single
// token values are supported: keywords, pixel dimensions, unitless
// numbers (treated as pixels) and hex colors.
func (p *Parser) parseValue(tokens []css.Token) (Value, bool) {
	var significant []css.Token
	for _, t := range tokens {
		if t.TokenType != css.WhitespaceToken {
			significant = append(significant, t)
		}
	}
	if len(significant) != 1 {
		return Value{}, false
	}

	t := significant[0]
	switch t.TokenType {
	case css.IdentToken:
		return Keyword(strings.ToLower(string(t.Data))), true

	case css.NumberToken:
		n, err := strconv.ParseFloat(string(t.Data), 64)
		if err != nil {
			return Value{}, false
		}
		return Length(n), true

	case css.DimensionToken:
		n, unit := parseDimension(string(t.Data))
		if unit != "px" {
			p.log.Debug("Skipping dimension", zap.String("unit", unit))
			return Value{}, false
		}
		return Length(n), true

	case css.HashToken:
		c, ok := ParseHexColor(string(t.Data))
		if !ok {
			return Value{}, false
		}
		return Value{Type: ColorValue, Color: c}, true
	}

	return Value{}, false
}

// parseDimension splits a dimension token into magnitude and unit.
func parseDimension(s string) (float64, string) {
	numEnd := 0
	for i, r := range s {
		if unicode.IsDigit(r) || r == '.' || r == '-' || r == '+' {
			numEnd = i + 1
		} else {
			break
		}
	}
	n, _ := strconv.ParseFloat(s[:numEnd], 64)
	return n, strings.ToLower(s[numEnd:])
}

// skipAtRuleBlock skips tokens until the matching end of an at-rule block.
func (p *Parser) skipAtRuleBlock(parser *css.Parser) {
	depth := 1
	for depth > 0 {
		gt, _, _ := parser.Next()
		switch gt {
		case css.ErrorGrammar:
			return
		case css.BeginAtRuleGrammar, css.BeginRulesetGrammar:
			depth++
		case css.EndAtRuleGrammar, css.EndRulesetGrammar:
			depth--
		}
	}
}
