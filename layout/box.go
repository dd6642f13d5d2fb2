// Package layout implements the CSS2 block box model. It turns a
// styled tree plus a containing block into a tree of positioned,
// sized boxes. Inline and anonymous boxes are constructed but not
// measured: inline layout is not implemented and their dimensions
// stay zero.
package layout

import (
	"errors"
	"fmt"
	"strings"

	"tinybrowser/style"
)

var (
	// ErrDisplayNoneRoot is returned when the style root resolves to
	// display: none and the document has nothing renderable.
	ErrDisplayNoneRoot = errors.New("layout: root node has display: none")

	// ErrAnonymousBoxStyle is returned on a request for the style node
	// of an anonymous box, which has none.
	ErrAnonymousBoxStyle = errors.New("layout: anonymous box has no style node")
)

// Rect is a rectangular area.
type Rect struct {
	X, Y, Width, Height float64
}

// EdgeSizes holds the sizes of the four edges of a box layer.
type EdgeSizes struct {
	Left, Right, Top, Bottom float64
}

// Dimensions describes a box: the content area plus surrounding
// padding, border and margin edges. All sizes are in px.
type Dimensions struct {
	// Content is the content area, positioned relative to the
	// document origin.
	Content Rect

	Padding EdgeSizes
	Border  EdgeSizes
	Margin  EdgeSizes
}

// ExpandedBy returns the rectangle grown outward by the given edges.
func (r Rect) ExpandedBy(edge EdgeSizes) Rect {
	return Rect{
		X:      r.X - edge.Left,
		Y:      r.Y - edge.Top,
		Width:  r.Width + edge.Left + edge.Right,
		Height: r.Height + edge.Top + edge.Bottom,
	}
}

// PaddingBox returns the area covered by content and padding.
func (d Dimensions) PaddingBox() Rect {
	return d.Content.ExpandedBy(d.Padding)
}

// BorderBox returns the area covered by content, padding and border.
func (d Dimensions) BorderBox() Rect {
	return d.PaddingBox().ExpandedBy(d.Border)
}

// MarginBox returns the area covered by content, padding, border and
// margin.
func (d Dimensions) MarginBox() Rect {
	return d.BorderBox().ExpandedBy(d.Margin)
}

// marginBoxHeight is the height a box contributes to its parent's
// vertical stacking: content height plus twice the vertical padding.
// Margin and border are not counted. Downstream geometry depends on
// this exact arithmetic; do not change it to the CSS margin-box
// formula without revisiting the stacking behavior.
func (d Dimensions) marginBoxHeight() float64 {
	return d.Content.Height + 2*(d.Padding.Top+d.Padding.Bottom)
}

// BoxType discriminates the three kinds of layout boxes.
type BoxType int

const (
	// BlockBox is a block-level box generated by a styled node.
	BlockBox BoxType = iota
	// InlineBox is an inline-level box generated by a styled node.
	InlineBox
	// AnonymousBox is a generated container grouping consecutive
	// inline-level siblings under a block parent. It has no style.
	AnonymousBox
)

func (t BoxType) String() string {
	switch t {
	case BlockBox:
		return "block"
	case InlineBox:
		return "inline"
	case AnonymousBox:
		return "anonymous"
	}
	return fmt.Sprintf("BoxType(%d)", int(t))
}

// LayoutBox is a node in the layout tree. Block and inline boxes
// borrow their styled node from the styled tree, which in turn borrows
// from the document tree; none of the three may outlive its source.
type LayoutBox struct {
	Type       BoxType
	Dimensions Dimensions
	Children   []*LayoutBox

	// styled is the node this box was generated from; nil for
	// anonymous boxes.
	styled *style.StyledNode
}

func newLayoutBox(t BoxType, sn *style.StyledNode) *LayoutBox {
	return &LayoutBox{Type: t, styled: sn}
}

// StyleNode returns the styled node this box was generated from.
// Anonymous boxes have none; asking for it is a usage error.
func (b *LayoutBox) StyleNode() (*style.StyledNode, error) {
	if b.Type == AnonymousBox {
		return nil, ErrAnonymousBoxStyle
	}
	return b.styled, nil
}

// Dump renders the layout tree as indented text, one box per line.
func (b *LayoutBox) Dump() string {
	var sb strings.Builder
	b.dump(&sb, 0)
	return sb.String()
}

func (b *LayoutBox) dump(sb *strings.Builder, depth int) {
	c := b.Dimensions.Content
	fmt.Fprintf(sb, "%s%s x=%g y=%g w=%g h=%g\n",
		strings.Repeat("  ", depth), b.Type, c.X, c.Y, c.Width, c.Height)
	for _, child := range b.Children {
		child.dump(sb, depth+1)
	}
}
