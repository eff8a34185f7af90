package view

import (
	"fmt"

	"go.uber.org/zap"

	"github.com/Faultbox/beamscope/internal/logger"
	"github.com/Faultbox/beamscope/internal/pattern"
	"github.com/Faultbox/beamscope/internal/render"
)

// Mode selects the active projection.
type Mode int

const (
	ModeGeometry Mode = iota
	ModePolar
	ModeHeatmap
	ModeSurface
)

// String returns the mode name for logs and window titles.
func (m Mode) String() string {
	switch m {
	case ModeGeometry:
		return "geometry"
	case ModePolar:
		return "polar"
	case ModeHeatmap:
		return "heatmap"
	case ModeSurface:
		return "surface"
	default:
		return fmt.Sprintf("mode(%d)", int(m))
	}
}

// Surface3D is the 3D view delegate. The scene owns its own resources and
// lifecycle; the manager only routes the payload slice and the target
// canvas to it.
type Surface3D interface {
	Render(p *pattern.Pattern3D, dst *render.Canvas) error
}

// Options holds the layout parameters that used to be literals.
type Options struct {
	Margin int
}

// DefaultOptions returns the standard plot layout.
func DefaultOptions() Options {
	return Options{Margin: 50}
}

// Manager routes the active view's slice of a payload set to the matching
// projector. All 2D projectors are pure functions of (data, transform,
// canvas); the 3D projection goes through the Surface3D delegate.
type Manager struct {
	opts    Options
	surface Surface3D
}

// NewManager creates a view manager with the given layout options.
func NewManager(opts Options) *Manager {
	return &Manager{opts: opts}
}

// SetSurface3D installs the 3D scene delegate used by ModeSurface.
func (m *Manager) SetSurface3D(s Surface3D) {
	m.surface = s
}

// Render draws the requested view of the payload set onto the canvas.
// It never panics outward: missing or mis-shaped data renders a
// placeholder, and any failure inside a projector is caught and drawn as
// an in-surface error message.
func (m *Manager) Render(set *pattern.Set, mode Mode, t *Transform, c *render.Canvas) {
	defer func() {
		if r := recover(); r != nil {
			logger.Log.Error("render failed",
				zap.Stringer("mode", mode),
				zap.Any("panic", r),
			)
			m.drawError(c, fmt.Sprintf("render error: %v", r))
		}
	}()

	c.Clear(render.ColorBackground)

	if set == nil {
		m.drawPlaceholder(c)
		return
	}

	switch mode {
	case ModeGeometry:
		if set.ArrayGeometry.Validate() != nil {
			m.drawPlaceholder(c)
			return
		}
		drawGeometry(c, set.ArrayGeometry, t, m.opts.Margin)

	case ModePolar:
		if set.AzimuthPattern.Validate() != nil {
			m.drawPlaceholder(c)
			return
		}
		drawPolar(c, set.AzimuthPattern, t, m.opts.Margin)

	case ModeHeatmap:
		if set.InterferencePattern.Validate() != nil {
			m.drawPlaceholder(c)
			return
		}
		drawHeatmap(c, set.InterferencePattern, set.ArrayGeometry, m.opts.Margin)

	case ModeSurface:
		if m.surface == nil || set.Pattern3D.Validate() != nil {
			m.drawPlaceholder(c)
			return
		}
		if err := m.surface.Render(set.Pattern3D, c); err != nil {
			logger.Log.Error("surface render failed", zap.Error(err))
			m.drawError(c, fmt.Sprintf("render error: %v", err))
		}

	default:
		m.drawPlaceholder(c)
	}
}

func (m *Manager) drawPlaceholder(c *render.Canvas) {
	c.TextAligned("no data available", c.Width()/2, c.Height()/2, render.AlignCenter, render.ColorTextDim)
}

func (m *Manager) drawError(c *render.Canvas, msg string) {
	c.Clear(render.ColorBackground)
	c.TextAligned(msg, c.Width()/2, c.Height()/2, render.AlignCenter, render.ColorError)
}
