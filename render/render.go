// Package render paints a layout tree into an in-memory canvas. Only
// solid rectangles are painted: backgrounds and borders. There is no
// text rendering since inline content carries no geometry.
package render

import (
	"image"
	"image/color"

	"tinybrowser/css"
	"tinybrowser/layout"
)

// DisplayCommand is a single painting operation.
type DisplayCommand struct {
	Color css.Color
	Rect  layout.Rect
}

// DisplayList flattens a layout tree into painting operations in
// back-to-front order.
func DisplayList(root *layout.LayoutBox) []DisplayCommand {
	var list []DisplayCommand
	renderBox(&list, root)
	return list
}

func renderBox(list *[]DisplayCommand, box *layout.LayoutBox) {
	renderBackground(list, box)
	renderBorders(list, box)
	for _, child := range box.Children {
		renderBox(list, child)
	}
}

func renderBackground(list *[]DisplayCommand, box *layout.LayoutBox) {
	c, ok := boxColor(box, "background-color", "background")
	if !ok {
		return
	}
	*list = append(*list, DisplayCommand{Color: c, Rect: box.Dimensions.BorderBox()})
}

func renderBorders(list *[]DisplayCommand, box *layout.LayoutBox) {
	c, ok := boxColor(box, "border-color", "")
	if !ok {
		return
	}
	d := box.Dimensions
	borderBox := d.BorderBox()

	*list = append(*list,
		// Left edge.
		DisplayCommand{Color: c, Rect: layout.Rect{
			X: borderBox.X, Y: borderBox.Y,
			Width: d.Border.Left, Height: borderBox.Height,
		}},
		// Right edge.
		DisplayCommand{Color: c, Rect: layout.Rect{
			X: borderBox.X + borderBox.Width - d.Border.Right, Y: borderBox.Y,
			Width: d.Border.Right, Height: borderBox.Height,
		}},
		// Top edge.
		DisplayCommand{Color: c, Rect: layout.Rect{
			X: borderBox.X, Y: borderBox.Y,
			Width: borderBox.Width, Height: d.Border.Top,
		}},
		// Bottom edge.
		DisplayCommand{Color: c, Rect: layout.Rect{
			X: borderBox.X, Y: borderBox.Y + borderBox.Height - d.Border.Bottom,
			Width: borderBox.Width, Height: d.Border.Bottom,
		}},
	)
}

// boxColor resolves a color-valued property on the box's style, trying
// name then fallback. Anonymous boxes have no style and paint nothing
// of their own.
func boxColor(box *layout.LayoutBox, name, fallback string) (css.Color, bool) {
	sn, err := box.StyleNode()
	if err != nil {
		// Anonymous box: nothing of its own to paint.
		return css.Color{}, false
	}
	if v, ok := sn.Value(name); ok {
		return resolveColor(v)
	}
	if fallback != "" {
		if v, ok := sn.Value(fallback); ok {
			return resolveColor(v)
		}
	}
	return css.Color{}, false
}

// resolveColor turns a value into a color: color values directly,
// keyword values through the named color table.
func resolveColor(v css.Value) (css.Color, bool) {
	switch v.Type {
	case css.ColorValue:
		return v.Color, true
	case css.KeywordValue:
		c, ok := css.NamedColors[v.Keyword]
		return c, ok
	}
	return css.Color{}, false
}

// Canvas is a rendering surface of RGBA pixels.
type Canvas struct {
	Pixels []css.Color
	Width  int
	Height int
}

// NewCanvas creates a white canvas of the given size.
func NewCanvas(width, height int) *Canvas {
	pixels := make([]css.Color, width*height)
	white := css.Color{R: 255, G: 255, B: 255, A: 255}
	for i := range pixels {
		pixels[i] = white
	}
	return &Canvas{Pixels: pixels, Width: width, Height: height}
}

// Paint executes a display list against the canvas.
func (c *Canvas) Paint(list []DisplayCommand) {
	for _, cmd := range list {
		c.fillRect(cmd.Rect, cmd.Color)
	}
}

// fillRect paints a solid rectangle, clipped to the canvas bounds.
func (c *Canvas) fillRect(r layout.Rect, col css.Color) {
	x0 := clamp(int(r.X), 0, c.Width)
	y0 := clamp(int(r.Y), 0, c.Height)
	x1 := clamp(int(r.X+r.Width), 0, c.Width)
	y1 := clamp(int(r.Y+r.Height), 0, c.Height)

	for y := y0; y < y1; y++ {
		row := y * c.Width
		for x := x0; x < x1; x++ {
			c.Pixels[row+x] = col
		}
	}
}

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

// Image copies the canvas into a standard image for encoding.
func (c *Canvas) Image() *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, c.Width, c.Height))
	for i, p := range c.Pixels {
		x, y := i%c.Width, i/c.Width
		img.SetRGBA(x, y, color.RGBA{R: p.R, G: p.G, B: p.B, A: p.A})
	}
	return img
}

// Paint lays a painted canvas over the layout tree's bounds: builds the
// display list and rasterizes it.
func Paint(root *layout.LayoutBox, bounds layout.Rect) *Canvas {
	canvas := NewCanvas(int(bounds.Width), int(bounds.Height))
	canvas.Paint(DisplayList(root))
	return canvas
}
