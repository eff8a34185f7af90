package view

import (
	"fmt"
	"math"

	"github.com/Faultbox/beamscope/internal/pattern"
	"github.com/Faultbox/beamscope/internal/render"
)

const (
	heatmapTicks    = 5
	colorbarWidth   = 14
	colorbarGap     = 10
	speedOfLight    = 3e8
	overlayFreqHz   = 1e9 // TODO: thread the array's configured frequency into the payload instead of assuming 1 GHz
	overlayMarkerPx = 3.0
)

// drawHeatmap rasterizes the interference grid as a grayscale image with
// axes, element-position overlay and a colorbar. Grid row 0 holds the
// minimum y-coordinate and is drawn at the bottom of the canvas, since
// pixel space has an inverted y-axis relative to the data.
func drawHeatmap(c *render.Canvas, g *pattern.InterferenceGrid, geo *pattern.ArrayGeometry, margin int) {
	rows, cols := g.Rows(), g.Cols()
	if rows == 0 || cols == 0 {
		return
	}

	w, h := c.Width(), c.Height()
	plotW := w - 2*margin - colorbarWidth - colorbarGap
	plotH := h - 2*margin
	if plotW <= 0 || plotH <= 0 {
		return
	}

	cellW := float64(plotW) / float64(cols)
	cellH := float64(plotH) / float64(rows)

	for row := 0; row < rows; row++ {
		y := float64(h-margin) - float64(row+1)*cellH
		for col := 0; col < cols; col++ {
			v := g.Magnitude[row][col]
			if v < 0 {
				v = 0
			}
			if v > 1 {
				v = 1
			}
			shade := render.Gray(uint8(math.Floor(v * 255)))
			x := float64(margin) + float64(col)*cellW
			c.FillRect(int(x), int(y), int(math.Ceil(cellW)), int(math.Ceil(cellH)), shade)
		}
	}

	minX, maxX := g.XGrid[0][0], g.XGrid[rows-1][cols-1]
	minY, maxY := g.YGrid[0][0], g.YGrid[rows-1][cols-1]

	drawHeatmapAxes(c, margin, plotW, plotH, minX, maxX, minY, maxY)
	if geo != nil {
		drawElementOverlay(c, geo, margin, plotW, plotH, minX, maxX, minY, maxY)
	}
	drawColorbar(c, w-margin-colorbarWidth, margin, plotH)

	c.TextAligned("Interference Pattern", margin+plotW/2, margin/2+5, render.AlignCenter, render.ColorText)
}

// drawHeatmapAxes draws the plot border and five evenly spaced ticks per
// axis with linearly interpolated labels.
func drawHeatmapAxes(c *render.Canvas, margin, plotW, plotH int, minX, maxX, minY, maxY float64) {
	h := c.Height()
	c.StrokeRect(margin, margin, plotW, plotH, render.ColorAxis)

	for i := 0; i < heatmapTicks; i++ {
		f := float64(i) / float64(heatmapTicks-1)

		x := margin + int(f*float64(plotW))
		c.Line(float64(x), float64(h-margin), float64(x), float64(h-margin+4), render.ColorAxis)
		c.TextAligned(fmt.Sprintf("%.1f", minX+f*(maxX-minX)), x, h-margin+16, render.AlignCenter, render.ColorTextDim)

		// y ticks run bottom-up to match the data orientation.
		y := h - margin - int(f*float64(plotH))
		c.Line(float64(margin-4), float64(y), float64(margin), float64(y), render.ColorAxis)
		c.TextAligned(fmt.Sprintf("%.1f", minY+f*(maxY-minY)), margin-6, y+4, render.AlignRight, render.ColorTextDim)
	}
}

// drawElementOverlay marks the array element positions on the heatmap.
// Positions are converted from physical units into the grid's wavelength
// units. The conversion frequency is pinned at 1 GHz regardless of the
// array's configured operating frequency.
func drawElementOverlay(c *render.Canvas, geo *pattern.ArrayGeometry, margin, plotW, plotH int, minX, maxX, minY, maxY float64) {
	if maxX == minX || maxY == minY {
		return
	}
	lambda := speedOfLight / overlayFreqHz
	h := c.Height()

	for _, e := range geo.Elements {
		gx := e.X / lambda
		gy := e.Y / lambda
		if gx < minX || gx > maxX || gy < minY || gy > maxY {
			continue
		}
		px := float64(margin) + (gx-minX)/(maxX-minX)*float64(plotW)
		py := float64(h-margin) - (gy-minY)/(maxY-minY)*float64(plotH)
		c.FillCircle(px, py, overlayMarkerPx, render.ColorMarker)
	}
}

// drawColorbar renders the vertical magnitude legend: value 1 at the top,
// 0 at the bottom, one gradient step per pixel row. The gradient needs at
// least two rows; a shorter bar is skipped.
func drawColorbar(c *render.Canvas, x, y, height int) {
	if height < 2 {
		return
	}
	for row := 0; row < height; row++ {
		v := 1 - float64(row)/float64(height-1)
		shade := render.Gray(uint8(math.Floor(v * 255)))
		for px := 0; px < colorbarWidth; px++ {
			c.SetPixel(x+px, y+row, shade)
		}
	}
	c.StrokeRect(x, y, colorbarWidth, height, render.ColorAxis)

	c.Text("1.0", x+colorbarWidth+3, y+10, render.ColorTextDim)
	c.Text("0.5", x+colorbarWidth+3, y+height/2+4, render.ColorTextDim)
	c.Text("0.0", x+colorbarWidth+3, y+height-2, render.ColorTextDim)
}
