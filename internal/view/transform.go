// Package view renders pattern-data payloads into canvas projections:
// element layout, polar azimuth cut, interference heatmap and the 3D
// directivity surface (delegated to the 3D scene).
package view

import "github.com/Faultbox/beamscope/pkg/geom"

// Zoom limits and the drag sensitivity shared by all 2D views.
const (
	MinZoom = 0.5
	MaxZoom = 3.0

	// Degrees of rotation per horizontal pixel of drag.
	DragRotationFactor = 0.5
)

// DragState tracks the pointer-drag state machine.
type DragState int

const (
	DragIdle DragState = iota
	Dragging
)

// Transform holds the interactive view state for the 2D projections.
// It persists across payload replacement; only Reset clears it.
type Transform struct {
	zoom     float64
	rotation float64

	drag             DragState
	originX, originY int
}

// NewTransform returns a transform at zoom 1, rotation 0, idle drag.
func NewTransform() *Transform {
	return &Transform{zoom: 1.0}
}

// Zoom returns the current zoom level.
func (t *Transform) Zoom() float64 { return t.zoom }

// Rotation returns the current rotation in degrees, in [0, 360).
func (t *Transform) Rotation() float64 { return t.rotation }

// Drag returns the current drag state.
func (t *Transform) Drag() DragState { return t.drag }

// SetZoom sets the zoom level, clamped to [MinZoom, MaxZoom].
func (t *Transform) SetZoom(level float64) {
	t.zoom = geom.Clamp(level, MinZoom, MaxZoom)
}

// AdjustZoom multiplies the zoom level by factor, clamped.
func (t *Transform) AdjustZoom(factor float64) {
	t.SetZoom(t.zoom * factor)
}

// SetRotation sets the rotation, wrapped into [0, 360).
func (t *Transform) SetRotation(deg float64) {
	t.rotation = geom.WrapDegrees(deg)
}

// Reset restores zoom 1, rotation 0 and ends any drag.
func (t *Transform) Reset() {
	t.zoom = 1.0
	t.rotation = 0
	t.drag = DragIdle
}

// RotationDelta computes the rotation change for a horizontal pointer
// displacement. Pure function of the displacement.
func RotationDelta(dx int) float64 {
	return float64(dx) * DragRotationFactor
}

// PointerDown begins a drag at the given pixel position.
func (t *Transform) PointerDown(x, y int) {
	t.drag = Dragging
	t.originX = x
	t.originY = y
}

// PointerMove applies the drag rotation delta while dragging; it is a
// no-op when idle. This is the only rotation mutator during a drag.
func (t *Transform) PointerMove(x, y int) {
	if t.drag != Dragging {
		return
	}
	t.rotation = geom.WrapDegrees(t.rotation + RotationDelta(x-t.originX))
	t.originX = x
	t.originY = y
}

// PointerUp ends the drag.
func (t *Transform) PointerUp() {
	t.drag = DragIdle
}

// PointerLeave ends the drag when the pointer exits the surface.
func (t *Transform) PointerLeave() {
	t.drag = DragIdle
}
