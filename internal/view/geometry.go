package view

import (
	"strconv"

	"github.com/Faultbox/beamscope/internal/pattern"
	"github.com/Faultbox/beamscope/internal/render"
	"github.com/Faultbox/beamscope/pkg/geom"
)

const elementMarkerRadius = 6.0

// drawGeometry plots the array element layout: markers with 1-based index
// labels, centered on the element bounding box, rotated as a batch about
// the canvas center. The title stays unrotated.
func drawGeometry(c *render.Canvas, g *pattern.ArrayGeometry, t *Transform, margin int) {
	if len(g.Elements) == 0 {
		return
	}

	w, h := float64(c.Width()), float64(c.Height())
	plotW := w - 2*float64(margin)
	plotH := h - 2*float64(margin)
	if plotW <= 0 || plotH <= 0 {
		return
	}

	minX, maxX := g.Elements[0].X, g.Elements[0].X
	minY, maxY := g.Elements[0].Y, g.Elements[0].Y
	for _, e := range g.Elements {
		if e.X < minX {
			minX = e.X
		}
		if e.X > maxX {
			maxX = e.X
		}
		if e.Y < minY {
			minY = e.Y
		}
		if e.Y > maxY {
			maxY = e.Y
		}
	}

	// Degenerate boxes fall back to a unit range so the scale stays finite.
	rangeX := maxX - minX
	if rangeX == 0 {
		rangeX = 1
	}
	rangeY := maxY - minY
	if rangeY == 0 {
		rangeY = 1
	}

	scale := plotW / rangeX
	if s := plotH / rangeY; s < scale {
		scale = s
	}
	scale *= 0.8 * t.Zoom()

	cx, cy := w/2, h/2
	midX, midY := (minX+maxX)/2, (minY+maxY)/2
	rot := t.Rotation()

	for i, e := range g.Elements {
		// Data y grows upward, pixel y grows downward.
		px := cx + (e.X-midX)*scale
		py := cy - (e.Y-midY)*scale
		px, py = geom.Rotate2D(px, py, cx, cy, rot)

		c.FillCircle(px, py, elementMarkerRadius, render.ColorMarker)
		c.StrokeCircle(px, py, elementMarkerRadius, render.ColorText)
		c.TextAligned(strconv.Itoa(i+1), int(px), int(py)-10, render.AlignCenter, render.ColorText)
	}

	c.TextAligned("Array Geometry", c.Width()/2, margin/2+5, render.AlignCenter, render.ColorText)
}
