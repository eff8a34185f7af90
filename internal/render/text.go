package render

import (
	"image"
	"image/color"

	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/fixed"
)

// Text alignment modes.
type Align int

const (
	AlignLeft Align = iota
	AlignCenter
	AlignRight
)

// Text draws a single line of text with its baseline-left anchor at (x, y).
func (c *Canvas) Text(s string, x, y int, col color.RGBA) {
	c.drawText(s, x, y, col)
}

// TextAligned draws a single line of text anchored at (x, y) according to
// the alignment mode. y is the text baseline.
func (c *Canvas) TextAligned(s string, x, y int, align Align, col color.RGBA) {
	switch align {
	case AlignCenter:
		x -= c.TextWidth(s) / 2
	case AlignRight:
		x -= c.TextWidth(s)
	}
	c.drawText(s, x, y, col)
}

// TextWidth returns the pixel width of s in the canvas font.
func (c *Canvas) TextWidth(s string) int {
	return font.MeasureString(basicfont.Face7x13, s).Ceil()
}

// TextHeight returns the pixel height of one text line.
func (c *Canvas) TextHeight() int {
	return basicfont.Face7x13.Metrics().Height.Ceil()
}

func (c *Canvas) drawText(s string, x, y int, col color.RGBA) {
	d := font.Drawer{
		Dst:  c.img,
		Src:  image.NewUniform(col),
		Face: basicfont.Face7x13,
		Dot:  fixed.P(x, y),
	}
	d.DrawString(s)
}
