package engine3d

import (
	"fmt"

	"go.uber.org/zap"

	"github.com/Faultbox/beamscope/internal/logger"
	"github.com/Faultbox/beamscope/internal/pattern"
	"github.com/Faultbox/beamscope/internal/render"
)

// Scene owns the surface mesh lifecycle on top of an Engine. Rebuild
// follows a strict order: stop the animation, release the old mesh
// resources, build and upload the new mesh, then resume. Cancel and
// Dispose are idempotent.
type Scene struct {
	engine Engine
	camera *OrbitCamera
	lights []Light

	ticks     uint64
	animating bool
	disposed  bool
	hasMesh   bool
}

// NewScene creates a scene over the given backend and camera. The
// default light is installed; the animation starts after the first
// Rebuild.
func NewScene(e Engine, cam *OrbitCamera) *Scene {
	s := &Scene{
		engine: e,
		camera: cam,
		lights: []Light{DefaultLight()},
	}
	e.AttachCamera(cam)
	for _, l := range s.lights {
		e.AddLight(l)
	}
	return s
}

// Camera returns the scene's orbit camera.
func (s *Scene) Camera() *OrbitCamera { return s.camera }

// Ticks returns the number of animation ticks advanced so far.
func (s *Scene) Ticks() uint64 { return s.ticks }

// Animating reports whether the animation loop is running.
func (s *Scene) Animating() bool { return s.animating }

// Rebuild replaces the surface with one built from a new pattern.
func (s *Scene) Rebuild(p *pattern.Pattern3D) error {
	if s.disposed {
		return fmt.Errorf("scene: rebuild after dispose")
	}

	s.Cancel()
	s.engine.Dispose()
	s.hasMesh = false

	mesh, err := BuildSurfaceMesh(p)
	if err != nil {
		return err
	}
	if err := s.engine.BuildMesh(mesh); err != nil {
		return fmt.Errorf("scene: uploading mesh: %w", err)
	}

	logger.Log.Debug("surface rebuilt",
		zap.Int("vertices", len(mesh.Vertices)),
		zap.Int("triangles", mesh.TriangleCount()))

	s.hasMesh = true
	s.animating = true
	return nil
}

// Advance runs one animation tick: camera easing plus the tick counter.
// It does nothing once the animation is cancelled or the scene disposed.
func (s *Scene) Advance() {
	if !s.animating || s.disposed {
		return
	}
	s.camera.Update()
	s.ticks++
}

// Cancel stops the animation loop. Safe to call repeatedly.
func (s *Scene) Cancel() {
	s.animating = false
}

// Dispose cancels the animation and releases backend resources. Safe to
// call repeatedly; the scene cannot be rebuilt afterwards.
func (s *Scene) Dispose() {
	if s.disposed {
		return
	}
	s.Cancel()
	s.engine.Dispose()
	s.hasMesh = false
	s.disposed = true
}

// Render draws the current surface into dst.
func (s *Scene) Render(dst *render.Canvas) error {
	if s.disposed {
		return fmt.Errorf("scene: render after dispose")
	}
	if !s.hasMesh {
		return fmt.Errorf("scene: no surface built")
	}
	return s.engine.Render(dst)
}

// Resize propagates a viewport change to the backend. The mesh is kept;
// only the projection changes.
func (s *Scene) Resize(width, height int) {
	s.engine.Resize(width, height)
}
