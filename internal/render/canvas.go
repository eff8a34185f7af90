// Package render provides a software 2D drawing surface backed by an RGBA
// image. The pattern views draw onto a Canvas; the result can be blitted
// to a window texture or exported as PNG.
package render

import (
	"image"
	"image/color"
	"math"
)

// Canvas is a fixed-size RGBA drawing surface with y-down pixel coordinates.
type Canvas struct {
	img *image.RGBA
}

// New creates a canvas of the given size, cleared to transparent black.
func New(width, height int) *Canvas {
	if width < 1 {
		width = 1
	}
	if height < 1 {
		height = 1
	}
	return &Canvas{img: image.NewRGBA(image.Rect(0, 0, width, height))}
}

// Width returns the canvas width in pixels.
func (c *Canvas) Width() int { return c.img.Rect.Dx() }

// Height returns the canvas height in pixels.
func (c *Canvas) Height() int { return c.img.Rect.Dy() }

// Image returns the backing image.
func (c *Canvas) Image() *image.RGBA { return c.img }

// Pix returns the raw RGBA pixel buffer (row-major, top-left origin).
func (c *Canvas) Pix() []byte { return c.img.Pix }

// Clear fills the whole canvas with one color.
func (c *Canvas) Clear(col color.RGBA) {
	w, h := c.Width(), c.Height()
	for y := 0; y < h; y++ {
		o := y * c.img.Stride
		for x := 0; x < w; x++ {
			i := o + x*4
			c.img.Pix[i] = col.R
			c.img.Pix[i+1] = col.G
			c.img.Pix[i+2] = col.B
			c.img.Pix[i+3] = col.A
		}
	}
}

// SetPixel writes one opaque pixel, ignoring out-of-bounds coordinates.
func (c *Canvas) SetPixel(x, y int, col color.RGBA) {
	if x < 0 || y < 0 || x >= c.Width() || y >= c.Height() {
		return
	}
	i := y*c.img.Stride + x*4
	c.img.Pix[i] = col.R
	c.img.Pix[i+1] = col.G
	c.img.Pix[i+2] = col.B
	c.img.Pix[i+3] = col.A
}

// BlendPixel alpha-blends one pixel over the existing canvas content.
func (c *Canvas) BlendPixel(x, y int, col color.RGBA) {
	if x < 0 || y < 0 || x >= c.Width() || y >= c.Height() {
		return
	}
	if col.A == 255 {
		c.SetPixel(x, y, col)
		return
	}
	if col.A == 0 {
		return
	}
	i := y*c.img.Stride + x*4
	a := uint32(col.A)
	ia := 255 - a
	c.img.Pix[i] = uint8((uint32(col.R)*a + uint32(c.img.Pix[i])*ia) / 255)
	c.img.Pix[i+1] = uint8((uint32(col.G)*a + uint32(c.img.Pix[i+1])*ia) / 255)
	c.img.Pix[i+2] = uint8((uint32(col.B)*a + uint32(c.img.Pix[i+2])*ia) / 255)
	c.img.Pix[i+3] = 255
}

// Line draws a 1px line from (x0, y0) to (x1, y1) using DDA stepping.
func (c *Canvas) Line(x0, y0, x1, y1 float64, col color.RGBA) {
	dx, dy := x1-x0, y1-y0
	steps := math.Max(math.Abs(dx), math.Abs(dy))
	if steps < 1 {
		c.SetPixel(int(math.Round(x0)), int(math.Round(y0)), col)
		return
	}
	xInc, yInc := dx/steps, dy/steps
	x, y := x0, y0
	for i := 0; i <= int(steps); i++ {
		c.SetPixel(int(math.Round(x)), int(math.Round(y)), col)
		x += xInc
		y += yInc
	}
}

// FillRect fills an axis-aligned rectangle.
func (c *Canvas) FillRect(x, y, w, h int, col color.RGBA) {
	for py := y; py < y+h; py++ {
		for px := x; px < x+w; px++ {
			c.SetPixel(px, py, col)
		}
	}
}

// StrokeRect outlines an axis-aligned rectangle.
func (c *Canvas) StrokeRect(x, y, w, h int, col color.RGBA) {
	c.Line(float64(x), float64(y), float64(x+w-1), float64(y), col)
	c.Line(float64(x), float64(y+h-1), float64(x+w-1), float64(y+h-1), col)
	c.Line(float64(x), float64(y), float64(x), float64(y+h-1), col)
	c.Line(float64(x+w-1), float64(y), float64(x+w-1), float64(y+h-1), col)
}

// StrokeCircle outlines a circle using the midpoint algorithm.
func (c *Canvas) StrokeCircle(cx, cy, r float64, col color.RGBA) {
	xc, yc := int(math.Round(cx)), int(math.Round(cy))
	ri := int(math.Round(r))
	if ri < 1 {
		c.SetPixel(xc, yc, col)
		return
	}
	x, y := ri, 0
	err := 1 - ri
	for x >= y {
		c.SetPixel(xc+x, yc+y, col)
		c.SetPixel(xc+y, yc+x, col)
		c.SetPixel(xc-y, yc+x, col)
		c.SetPixel(xc-x, yc+y, col)
		c.SetPixel(xc-x, yc-y, col)
		c.SetPixel(xc-y, yc-x, col)
		c.SetPixel(xc+y, yc-x, col)
		c.SetPixel(xc+x, yc-y, col)
		y++
		if err < 0 {
			err += 2*y + 1
		} else {
			x--
			err += 2*(y-x) + 1
		}
	}
}

// FillCircle fills a disc of radius r centered at (cx, cy).
func (c *Canvas) FillCircle(cx, cy, r float64, col color.RGBA) {
	ri := int(math.Ceil(r))
	xc, yc := int(math.Round(cx)), int(math.Round(cy))
	r2 := r * r
	for dy := -ri; dy <= ri; dy++ {
		for dx := -ri; dx <= ri; dx++ {
			if float64(dx*dx+dy*dy) <= r2 {
				c.SetPixel(xc+dx, yc+dy, col)
			}
		}
	}
}

// Polyline draws connected line segments through the given points.
// Points are (x, y) pairs; closed joins the last point back to the first.
func (c *Canvas) Polyline(pts [][2]float64, closed bool, col color.RGBA) {
	if len(pts) < 2 {
		return
	}
	for i := 1; i < len(pts); i++ {
		c.Line(pts[i-1][0], pts[i-1][1], pts[i][0], pts[i][1], col)
	}
	if closed {
		last := pts[len(pts)-1]
		c.Line(last[0], last[1], pts[0][0], pts[0][1], col)
	}
}

// FillPolygon fills a simple polygon using even-odd scanline filling,
// alpha-blending the fill color over existing content.
func (c *Canvas) FillPolygon(pts [][2]float64, col color.RGBA) {
	if len(pts) < 3 {
		return
	}

	minY, maxY := pts[0][1], pts[0][1]
	for _, p := range pts {
		minY = math.Min(minY, p[1])
		maxY = math.Max(maxY, p[1])
	}
	y0 := int(math.Max(0, math.Floor(minY)))
	y1 := int(math.Min(float64(c.Height()-1), math.Ceil(maxY)))

	xs := make([]float64, 0, 16)
	for y := y0; y <= y1; y++ {
		fy := float64(y) + 0.5
		xs = xs[:0]
		j := len(pts) - 1
		for i := 0; i < len(pts); i++ {
			yi, yj := pts[i][1], pts[j][1]
			if (yi <= fy && yj > fy) || (yj <= fy && yi > fy) {
				t := (fy - yi) / (yj - yi)
				xs = append(xs, pts[i][0]+t*(pts[j][0]-pts[i][0]))
			}
			j = i
		}
		// Insertion sort: crossing counts are tiny.
		for i := 1; i < len(xs); i++ {
			for k := i; k > 0 && xs[k] < xs[k-1]; k-- {
				xs[k], xs[k-1] = xs[k-1], xs[k]
			}
		}
		for i := 0; i+1 < len(xs); i += 2 {
			xa := int(math.Round(xs[i]))
			xb := int(math.Round(xs[i+1]))
			for x := xa; x <= xb; x++ {
				c.BlendPixel(x, y, col)
			}
		}
	}
}

// FillTriangle fills one flat-colored triangle (opaque), used by the
// software 3D rasterizer.
func (c *Canvas) FillTriangle(x0, y0, x1, y1, x2, y2 float64, col color.RGBA) {
	c.FillPolygon([][2]float64{{x0, y0}, {x1, y1}, {x2, y2}},
		color.RGBA{col.R, col.G, col.B, 255})
}
