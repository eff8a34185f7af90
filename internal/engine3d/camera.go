package engine3d

import (
	gomath "math"

	"github.com/Faultbox/beamscope/pkg/geom"
)

// OrbitCamera orbits around a center point. Input updates the target
// spherical coordinates and center; Update eases the actual coordinates
// toward the targets with the damping factor, once per animation tick.
type OrbitCamera struct {
	// Center point to orbit around
	CenterX, CenterY, CenterZ float32

	// Spherical coordinates
	Distance  float32
	RotationX float32 // Pitch (vertical angle, radians)
	RotationY float32 // Yaw (horizontal angle, radians)

	// Constraints
	MinDistance float32
	MaxDistance float32
	MinPitch    float32
	MaxPitch    float32

	// Sensitivity
	DragSensitivity float32
	ZoomSensitivity float32
	PanSensitivity  float32

	// Damping eases motion toward the input targets, per tick.
	Damping float32

	targetDistance  float32
	targetRotationX float32
	targetRotationY float32
	targetCenterX   float32
	targetCenterY   float32
	targetCenterZ   float32
}

// NewOrbitCamera creates an orbit camera with defaults suited to a
// unit-radius pattern surface.
func NewOrbitCamera() *OrbitCamera {
	c := &OrbitCamera{
		Distance:        4.0,
		RotationX:       0.5,
		RotationY:       0.6,
		MinDistance:     2.0,
		MaxDistance:     10.0,
		MinPitch:        -1.5,
		MaxPitch:        1.5,
		DragSensitivity: 0.005,
		ZoomSensitivity: 0.1,
		PanSensitivity:  0.002,
		Damping:         0.05,
	}
	c.targetDistance = c.Distance
	c.targetRotationX = c.RotationX
	c.targetRotationY = c.RotationY
	return c
}

// SetDistanceLimits overrides the zoom clamp range.
func (c *OrbitCamera) SetDistanceLimits(min, max float32) {
	c.MinDistance = min
	c.MaxDistance = max
	c.targetDistance = clamp(c.targetDistance, min, max)
	c.Distance = clamp(c.Distance, min, max)
}

// Position returns the camera position in world space.
func (c *OrbitCamera) Position() geom.Vec3 {
	x := c.Distance * float32(gomath.Cos(float64(c.RotationX))*gomath.Sin(float64(c.RotationY)))
	y := c.Distance * float32(gomath.Sin(float64(c.RotationX)))
	z := c.Distance * float32(gomath.Cos(float64(c.RotationX))*gomath.Cos(float64(c.RotationY)))

	return geom.Vec3{
		X: c.CenterX + x,
		Y: c.CenterY + y,
		Z: c.CenterZ + z,
	}
}

// ViewMatrix returns the view matrix for this camera.
func (c *OrbitCamera) ViewMatrix() geom.Mat4 {
	pos := c.Position()
	center := geom.Vec3{X: c.CenterX, Y: c.CenterY, Z: c.CenterZ}
	up := geom.Vec3{X: 0, Y: 1, Z: 0}
	return geom.LookAt(pos, center, up)
}

// HandleDrag updates the target rotation from a mouse drag delta.
func (c *OrbitCamera) HandleDrag(deltaX, deltaY float32) {
	c.targetRotationY -= deltaX * c.DragSensitivity
	c.targetRotationX += deltaY * c.DragSensitivity
	c.targetRotationX = clamp(c.targetRotationX, c.MinPitch, c.MaxPitch)
}

// HandleZoom updates the target distance from a scroll wheel delta.
func (c *OrbitCamera) HandleZoom(delta float32) {
	c.targetDistance -= delta * c.targetDistance * c.ZoomSensitivity
	c.targetDistance = clamp(c.targetDistance, c.MinDistance, c.MaxDistance)
}

// HandlePan shifts the target center in the camera's screen plane from a
// secondary-button drag delta. The scene follows the pointer, so the
// center moves against the drag. Pan speed scales with distance so the
// gesture covers the same fraction of the view at any zoom.
func (c *OrbitCamera) HandlePan(deltaX, deltaY float32) {
	center := geom.Vec3{X: c.CenterX, Y: c.CenterY, Z: c.CenterZ}
	forward := center.Sub(c.Position()).Normalize()
	right := forward.Cross(geom.Vec3{Y: 1}).Normalize()
	up := right.Cross(forward)

	s := c.PanSensitivity * c.Distance
	shift := right.Scale(-deltaX * s).Add(up.Scale(deltaY * s))
	c.targetCenterX += shift.X
	c.targetCenterY += shift.Y
	c.targetCenterZ += shift.Z
}

// Update advances the eased coordinates one tick toward the targets.
func (c *OrbitCamera) Update() {
	c.Distance += (c.targetDistance - c.Distance) * c.Damping
	c.RotationX += (c.targetRotationX - c.RotationX) * c.Damping
	c.RotationY += (c.targetRotationY - c.RotationY) * c.Damping
	c.CenterX += (c.targetCenterX - c.CenterX) * c.Damping
	c.CenterY += (c.targetCenterY - c.CenterY) * c.Damping
	c.CenterZ += (c.targetCenterZ - c.CenterZ) * c.Damping
}

// Snap jumps the eased coordinates straight to the targets.
func (c *OrbitCamera) Snap() {
	c.Distance = c.targetDistance
	c.RotationX = c.targetRotationX
	c.RotationY = c.targetRotationY
	c.CenterX = c.targetCenterX
	c.CenterY = c.targetCenterY
	c.CenterZ = c.targetCenterZ
}

// SetCenter sets the camera's center point.
func (c *OrbitCamera) SetCenter(x, y, z float32) {
	c.CenterX, c.targetCenterX = x, x
	c.CenterY, c.targetCenterY = y, y
	c.CenterZ, c.targetCenterZ = z, z
}

// Reset restores the default pose.
func (c *OrbitCamera) Reset() {
	c.targetDistance = clamp(4.0, c.MinDistance, c.MaxDistance)
	c.targetRotationX = 0.5
	c.targetRotationY = 0.6
	c.targetCenterX = 0
	c.targetCenterY = 0
	c.targetCenterZ = 0
}

func clamp(v, lo, hi float32) float32 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
