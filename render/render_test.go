package render

import (
	"testing"

	"tinybrowser/css"
	"tinybrowser/dom"
	"tinybrowser/layout"
	"tinybrowser/style"
)

func styledBlock(props map[string]css.Value, children ...*style.StyledNode) *style.StyledNode {
	sn := &style.StyledNode{
		Node:      dom.NewElement("div", nil, nil),
		Specified: style.PropertyMap{"display": css.Keyword("block")},
		Children:  children,
	}
	for k, v := range props {
		sn.Specified[k] = v
	}
	return sn
}

func layoutFor(t *testing.T, sn *style.StyledNode) *layout.LayoutBox {
	t.Helper()
	root, err := layout.Tree(sn, layout.Dimensions{Content: layout.Rect{Width: 100, Height: 100}})
	if err != nil {
		t.Fatalf("layout: %v", err)
	}
	return root
}

func TestDisplayListBackground(t *testing.T) {
	root := layoutFor(t, styledBlock(map[string]css.Value{
		"height":     css.Length(10),
		"background": css.RGBA(255, 0, 0, 255),
	}))

	list := DisplayList(root)
	if len(list) != 1 {
		t.Fatalf("got %d commands, want 1", len(list))
	}
	cmd := list[0]
	if cmd.Color != (css.Color{R: 255, A: 255}) {
		t.Errorf("color = %+v, want red", cmd.Color)
	}
	if cmd.Rect != (layout.Rect{X: 0, Y: 0, Width: 100, Height: 10}) {
		t.Errorf("rect = %+v, want full border box", cmd.Rect)
	}
}

func TestDisplayListKeywordColor(t *testing.T) {
	root := layoutFor(t, styledBlock(map[string]css.Value{
		"height":           css.Length(10),
		"background-color": css.Keyword("blue"),
	}))

	list := DisplayList(root)
	if len(list) != 1 || list[0].Color != (css.Color{B: 255, A: 255}) {
		t.Fatalf("list = %+v, want one blue command", list)
	}
}

func TestDisplayListBorders(t *testing.T) {
	root := layoutFor(t, styledBlock(map[string]css.Value{
		"height":       css.Length(20),
		"width":        css.Length(50),
		"border-width": css.Length(2),
		"border-color": css.RGBA(0, 0, 0, 255),
	}))

	list := DisplayList(root)
	// Four border edges, no background.
	if len(list) != 4 {
		t.Fatalf("got %d commands, want 4", len(list))
	}
	left := list[0]
	if left.Rect.Width != 2 || left.Rect.Height != 24 {
		t.Errorf("left edge = %+v, want 2x24", left.Rect)
	}
	top := list[2]
	if top.Rect.Width != 54 || top.Rect.Height != 2 {
		t.Errorf("top edge = %+v, want 54x2", top.Rect)
	}
}

func TestUnstyledBoxPaintsNothing(t *testing.T) {
	root := layoutFor(t, styledBlock(map[string]css.Value{"height": css.Length(10)}))
	if list := DisplayList(root); len(list) != 0 {
		t.Errorf("got %d commands, want none", len(list))
	}
}

func TestCanvasPaint(t *testing.T) {
	c := NewCanvas(10, 10)
	red := css.Color{R: 255, A: 255}
	c.Paint([]DisplayCommand{
		{Color: red, Rect: layout.Rect{X: 2, Y: 2, Width: 3, Height: 3}},
	})

	if got := c.Pixels[2*10+2]; got != red {
		t.Errorf("pixel (2,2) = %+v, want red", got)
	}
	if got := c.Pixels[4*10+4]; got != red {
		t.Errorf("pixel (4,4) = %+v, want red", got)
	}
	white := css.Color{R: 255, G: 255, B: 255, A: 255}
	if got := c.Pixels[5*10+5]; got != white {
		t.Errorf("pixel (5,5) = %+v, want white", got)
	}
}

func TestCanvasPaintClipsToBounds(t *testing.T) {
	c := NewCanvas(4, 4)
	c.Paint([]DisplayCommand{
		{Color: css.Color{A: 255}, Rect: layout.Rect{X: -10, Y: -10, Width: 100, Height: 100}},
	})

	black := css.Color{A: 255}
	for i, p := range c.Pixels {
		if p != black {
			t.Fatalf("pixel %d = %+v, want black", i, p)
		}
	}
}

func TestCanvasImage(t *testing.T) {
	c := NewCanvas(2, 1)
	c.Pixels[1] = css.Color{R: 255, A: 255}

	img := c.Image()
	if got := img.RGBAAt(1, 0); got.R != 255 || got.A != 255 {
		t.Errorf("image pixel (1,0) = %+v, want red", got)
	}
	if got := img.RGBAAt(0, 0); got.R != 255 || got.G != 255 || got.B != 255 {
		t.Errorf("image pixel (0,0) = %+v, want white", got)
	}
}

func TestPaintWholeTree(t *testing.T) {
	root := layoutFor(t, styledBlock(map[string]css.Value{
		"background": css.Keyword("black"),
		"height":     css.Length(4),
	}))

	canvas := Paint(root, layout.Rect{Width: 8, Height: 8})
	black := css.Color{A: 255}
	if got := canvas.Pixels[0]; got != black {
		t.Errorf("pixel (0,0) = %+v, want black", got)
	}
	white := css.Color{R: 255, G: 255, B: 255, A: 255}
	if got := canvas.Pixels[7*8]; got != white {
		t.Errorf("pixel (0,7) = %+v, want white", got)
	}
}
