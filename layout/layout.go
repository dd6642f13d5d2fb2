package layout

import (
	"tinybrowser/css"
	"tinybrowser/style"
)

// Tree builds and lays out the layout tree for a styled tree. The
// containing block supplies the origin and available width; its height
// is reset to zero before layout since block position accumulates into
// the containing block's height as siblings are placed.
//
// The call either returns a fully laid-out tree or an error; there are
// no partial results.
func Tree(sn *style.StyledNode, containingBlock Dimensions) (*LayoutBox, error) {
	root, err := buildLayoutTree(sn)
	if err != nil {
		return nil, err
	}
	containingBlock.Content.Height = 0
	if err := root.layout(containingBlock); err != nil {
		return nil, err
	}
	return root, nil
}

// buildLayoutTree walks the styled tree and generates boxes, without
// computing any geometry yet. Subtrees under display: none nodes are
// omitted entirely.
func buildLayoutTree(sn *style.StyledNode) (*LayoutBox, error) {
	var root *LayoutBox
	switch sn.Display() {
	case style.Block:
		root = newLayoutBox(BlockBox, sn)
	case style.Inline:
		root = newLayoutBox(InlineBox, sn)
	case style.None:
		return nil, ErrDisplayNoneRoot
	}

	for _, child := range sn.Children {
		switch child.Display() {
		case style.Block:
			box, err := buildLayoutTree(child)
			if err != nil {
				return nil, err
			}
			root.Children = append(root.Children, box)
		case style.Inline:
			box, err := buildLayoutTree(child)
			if err != nil {
				return nil, err
			}
			container := root.inlineContainer()
			container.Children = append(container.Children, box)
		case style.None:
			// Omitted from the layout tree.
		}
	}
	return root, nil
}

// inlineContainer returns the box an inline-level child should be
// appended to. A block box hosts inline children in a trailing
// anonymous box; consecutive inline children share the same one, so
// anonymous boxes never interleave with block-level siblings.
func (b *LayoutBox) inlineContainer() *LayoutBox {
	switch b.Type {
	case InlineBox, AnonymousBox:
		return b
	default:
		if n := len(b.Children); n == 0 || b.Children[n-1].Type != AnonymousBox {
			b.Children = append(b.Children, newLayoutBox(AnonymousBox, nil))
		}
		return b.Children[len(b.Children)-1]
	}
}

// layout computes the geometry of a box and its descendants. Inline
// and anonymous boxes are not yet implemented: they keep zeroed
// dimensions rather than being measured.
func (b *LayoutBox) layout(containingBlock Dimensions) error {
	switch b.Type {
	case BlockBox:
		return b.layoutBlock(containingBlock)
	case InlineBox, AnonymousBox:
		// Not implemented. Inline content contributes no geometry.
		return nil
	}
	return nil
}

// layoutBlock lays out a block-level box. The steps are ordered by
// their data dependencies: width depends on the parent, position on
// the siblings already placed, height on the children.
func (b *LayoutBox) layoutBlock(containingBlock Dimensions) error {
	if err := b.calculateBlockWidth(containingBlock); err != nil {
		return err
	}
	if err := b.calculateBlockPosition(containingBlock); err != nil {
		return err
	}
	if err := b.layoutBlockChildren(); err != nil {
		return err
	}
	return b.calculateBlockHeight()
}

// calculateBlockWidth resolves the box's width and horizontal margins,
// borders and padding against the containing block.
// http://www.w3.org/TR/CSS2/visudet.html#blockwidth
func (b *LayoutBox) calculateBlockWidth(containingBlock Dimensions) error {
	sn, err := b.StyleNode()
	if err != nil {
		return err
	}

	// width defaults to auto; the edges default to zero.
	width := css.Keyword("auto")
	if v, ok := sn.Value("width"); ok {
		width = v
	}
	zero := css.Length(0)

	marginLeft := sn.Lookup("margin-left", "margin", zero)
	marginRight := sn.Lookup("margin-right", "margin", zero)

	borderLeft := sn.Lookup("border-left-width", "border-width", zero)
	borderRight := sn.Lookup("border-right-width", "border-width", zero)

	paddingLeft := sn.Lookup("padding-left", "padding", zero)
	paddingRight := sn.Lookup("padding-right", "padding", zero)

	total := marginLeft.ToPx() + marginRight.ToPx() +
		borderLeft.ToPx() + borderRight.ToPx() +
		paddingLeft.ToPx() + paddingRight.ToPx() + width.ToPx()

	// If width is not auto and the total is wider than the container,
	// treat auto margins as 0.
	if !width.IsAuto() && total > containingBlock.Content.Width {
		if marginLeft.IsAuto() {
			marginLeft = zero
		}
		if marginRight.IsAuto() {
			marginRight = zero
		}
	}

	underflow := containingBlock.Content.Width - total

	switch {
	// Over-constrained: margin-right absorbs the difference.
	case !width.IsAuto() && !marginLeft.IsAuto() && !marginRight.IsAuto():
		marginRight = css.Length(marginRight.ToPx() + underflow)

	// Exactly one margin is auto: its used value follows from the
	// equality.
	case !width.IsAuto() && !marginLeft.IsAuto() && marginRight.IsAuto():
		marginRight = css.Length(underflow)
	case !width.IsAuto() && marginLeft.IsAuto() && !marginRight.IsAuto():
		marginLeft = css.Length(underflow)

	// Width is auto: any remaining auto margins become 0 and width
	// fills the underflow. Width cannot go negative; a negative
	// underflow moves into margin-right instead.
	case width.IsAuto():
		if marginLeft.IsAuto() {
			marginLeft = zero
		}
		if marginRight.IsAuto() {
			marginRight = zero
		}
		if underflow >= 0 {
			width = css.Length(underflow)
		} else {
			width = zero
			marginRight = css.Length(marginRight.ToPx() + underflow)
		}

	// Both margins are auto: they split the underflow evenly.
	default:
		marginLeft = css.Length(underflow / 2)
		marginRight = css.Length(underflow / 2)
	}

	d := &b.Dimensions
	d.Content.Width = width.ToPx()

	d.Padding.Left = paddingLeft.ToPx()
	d.Padding.Right = paddingRight.ToPx()

	d.Border.Left = borderLeft.ToPx()
	d.Border.Right = borderRight.ToPx()

	d.Margin.Left = marginLeft.ToPx()
	d.Margin.Right = marginRight.ToPx()
	return nil
}

// calculateBlockPosition resolves the vertical edges and positions the
// box directly beneath all sibling content already accumulated into the
// containing block's height.
func (b *LayoutBox) calculateBlockPosition(containingBlock Dimensions) error {
	sn, err := b.StyleNode()
	if err != nil {
		return err
	}
	d := &b.Dimensions
	zero := css.Length(0)

	d.Margin.Top = sn.Lookup("margin-top", "margin", zero).ToPx()
	d.Margin.Bottom = sn.Lookup("margin-bottom", "margin", zero).ToPx()

	d.Border.Top = sn.Lookup("border-top-width", "border-width", zero).ToPx()
	d.Border.Bottom = sn.Lookup("border-bottom-width", "border-width", zero).ToPx()

	d.Padding.Top = sn.Lookup("padding-top", "padding", zero).ToPx()
	d.Padding.Bottom = sn.Lookup("padding-bottom", "padding", zero).ToPx()

	d.Content.X = containingBlock.Content.X +
		d.Margin.Left + d.Border.Left + d.Padding.Left
	d.Content.Y = containingBlock.Content.Y + containingBlock.Content.Height +
		d.Margin.Top + d.Border.Top + d.Padding.Top
	return nil
}

// layoutBlockChildren lays out each child against this box's current
// dimensions, growing this box's height as each child is placed so the
// next sibling lands below it.
func (b *LayoutBox) layoutBlockChildren() error {
	d := &b.Dimensions
	for _, child := range b.Children {
		if err := child.layout(*d); err != nil {
			return err
		}
		d.Content.Height += child.Dimensions.marginBoxHeight()
	}
	return nil
}

// calculateBlockHeight overrides the accumulated height when the box
// has an explicit pixel height.
func (b *LayoutBox) calculateBlockHeight() error {
	sn, err := b.StyleNode()
	if err != nil {
		return err
	}
	if v, ok := sn.Value("height"); ok && v.Type == css.LengthValue {
		b.Dimensions.Content.Height = v.ToPx()
	}
	return nil
}
