package grid

import "fmt"

// Viewport is the region a table level is laid out in.
//
// Width and Height are the visible extent. OffsetX and OffsetY locate the
// visible region inside the owning layer, whose full size is OriginalWidth
// by OriginalHeight. Depth is the indentation level used by textual
// renderers.
type Viewport struct {
	Width, Height                 int
	OffsetX, OffsetY              int
	OriginalWidth, OriginalHeight int
	Depth                         int
}

// Root returns an unclipped viewport of the given size.
func Root(width, height, depth int) Viewport {
	return Viewport{
		Width:          width,
		Height:         height,
		OriginalWidth:  width,
		OriginalHeight: height,
		Depth:          depth,
	}
}

// ClippedLeft reports whether the layer's left edge lies outside the viewport.
func (v Viewport) ClippedLeft() bool { return v.OffsetX > 0 }

// ClippedTop reports whether the layer's top edge lies outside the viewport.
func (v Viewport) ClippedTop() bool { return v.OffsetY > 0 }

// ClippedRight reports whether the layer's right edge lies outside the viewport.
func (v Viewport) ClippedRight() bool { return v.OriginalWidth > v.Width+v.OffsetX }

// ClippedBottom reports whether the layer's bottom edge lies outside the viewport.
func (v Viewport) ClippedBottom() bool { return v.OriginalHeight > v.Height+v.OffsetY }

// Clipped reports whether any edge of the layer is cut by the viewport.
func (v Viewport) Clipped() bool {
	return v.ClippedLeft() || v.ClippedTop() || v.ClippedRight() || v.ClippedBottom()
}

// Inner returns the viewport of the layer's content box, inset by border on
// every edge. Offsets are rebased on the content origin and only the parts
// of the border that fall inside the viewport are subtracted.
func (v Viewport) Inner(border int) Viewport {
	if border <= 0 {
		return v
	}
	w, offX := inset(v.Width, v.OffsetX, v.OriginalWidth, border)
	h, offY := inset(v.Height, v.OffsetY, v.OriginalHeight, border)
	return Viewport{
		Width:          w,
		Height:         h,
		OffsetX:        offX,
		OffsetY:        offY,
		OriginalWidth:  max(0, v.OriginalWidth-2*border),
		OriginalHeight: max(0, v.OriginalHeight-2*border),
		Depth:          v.Depth,
	}
}

func inset(size, offset, original, border int) (int, int) {
	lead := max(0, border-offset)
	trail := max(0, offset+size-(original-border))
	return max(0, size-lead-trail), max(0, offset-border)
}

// String implements fmt.Stringer.
func (v Viewport) String() string {
	return fmt.Sprintf("%dx%d+%d+%d of %dx%d", v.Width, v.Height, v.OffsetX, v.OffsetY, v.OriginalWidth, v.OriginalHeight)
}
