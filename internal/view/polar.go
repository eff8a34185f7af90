package view

import (
	"fmt"
	"math"

	"github.com/Faultbox/beamscope/internal/pattern"
	"github.com/Faultbox/beamscope/internal/render"
	"github.com/Faultbox/beamscope/pkg/geom"
)

// The polar plot spans 40 dB from the outer ring down to the center.
const polarFloorDB = -40.0

var polarRingLevels = []float64{0, -10, -20, -30}

// polarRadius maps a dB magnitude onto the plot radius. Magnitudes are
// floor-clamped so the radius never goes negative.
func polarRadius(magDB, scaledRadius float64) float64 {
	if magDB < polarFloorDB {
		magDB = polarFloorDB
	}
	return scaledRadius * (1 + magDB/40)
}

// drawPolar plots the azimuth cut on a dB-ring polar grid. The data angle
// convention puts 0 degrees pointing up (display angle = data angle - 90).
// Rotation turns the grid and curve; ring/spoke labels and the title stay
// fixed.
func drawPolar(c *render.Canvas, p *pattern.AzimuthPattern, t *Transform, margin int) {
	if len(p.Angles) == 0 {
		return
	}

	w, h := float64(c.Width()), float64(c.Height())
	plotW := w - 2*float64(margin)
	plotH := h - 2*float64(margin)
	if plotW <= 0 || plotH <= 0 {
		return
	}

	cx, cy := w/2, h/2
	scaledRadius := math.Min(plotW, plotH) / 2 * t.Zoom()
	rot := t.Rotation()

	// dB rings with labels along the vertical axis.
	for _, db := range polarRingLevels {
		r := scaledRadius * (1 - math.Abs(db)/40)
		c.StrokeCircle(cx, cy, r, render.ColorGrid)
		c.TextAligned(fmt.Sprintf("%.0f dB", db), int(cx)+4, int(cy-r)-3, render.AlignLeft, render.ColorTextDim)
	}

	// Radial spokes every 30 degrees; the lines rotate, the labels do not.
	for deg := 0; deg < 360; deg += 30 {
		rad := geom.Radians(float64(deg) - 90 + rot)
		x := cx + scaledRadius*math.Cos(rad)
		y := cy + scaledRadius*math.Sin(rad)
		c.Line(cx, cy, x, y, render.ColorGrid)

		lrad := geom.Radians(float64(deg) - 90)
		lx := cx + (scaledRadius+14)*math.Cos(lrad)
		ly := cy + (scaledRadius+14)*math.Sin(lrad)
		c.TextAligned(fmt.Sprintf("%d°", deg), int(lx), int(ly)+4, render.AlignCenter, render.ColorTextDim)
	}

	// Pattern curve: closed polyline with a translucent fill.
	pts := make([][2]float64, 0, len(p.Angles))
	for i, ang := range p.Angles {
		r := polarRadius(p.Magnitudes[i], scaledRadius)
		rad := geom.Radians(ang - 90 + rot)
		pts = append(pts, [2]float64{
			cx + r*math.Cos(rad),
			cy + r*math.Sin(rad),
		})
	}

	fill := render.ColorCurve
	fill.A = 70
	c.FillPolygon(pts, fill)
	c.Polyline(pts, true, render.ColorCurve)

	c.TextAligned(fmt.Sprintf("Azimuth Pattern (steering %.0f°)", p.SteeringAngle),
		c.Width()/2, margin/2+5, render.AlignCenter, render.ColorText)
}
