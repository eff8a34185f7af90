// Package engine3d renders the 3D directivity surface. The Engine
// interface abstracts the backend: a software rasterizer for headless
// rendering and tests, and an OpenGL backend for the interactive viewer.
package engine3d

import (
	"github.com/Faultbox/beamscope/internal/render"
	"github.com/Faultbox/beamscope/pkg/geom"
)

// Vertex is a single surface vertex with position, lighting normal and
// vertex color, all ready for GPU upload.
type Vertex struct {
	Position geom.Vec3
	Normal   geom.Vec3
	Color    [3]float32 // RGB in [0, 1]
}

// Mesh is an indexed triangle mesh with a deduplicated edge list for the
// wireframe overlay.
type Mesh struct {
	Vertices []Vertex
	Indices  []uint32   // triangle list
	Edges    [][2]uint32 // unique wireframe edges
}

// TriangleCount returns the number of triangles in the mesh.
func (m *Mesh) TriangleCount() int { return len(m.Indices) / 3 }

// Light is a point light source.
type Light struct {
	Position  geom.Vec3
	Color     [3]float32
	Intensity float32
}

// DefaultLight returns a white light placed above and in front of the
// surface.
func DefaultLight() Light {
	return Light{
		Position:  geom.Vec3{X: 3, Y: 3, Z: 5},
		Color:     [3]float32{1, 1, 1},
		Intensity: 1,
	}
}

// Engine is a 3D rendering backend. BuildMesh replaces any previously
// built mesh. Dispose releases mesh resources and is idempotent; the
// engine stays usable and a later BuildMesh re-creates them.
type Engine interface {
	BuildMesh(m *Mesh) error
	AddLight(l Light)
	AttachCamera(c *OrbitCamera)
	Render(dst *render.Canvas) error
	Resize(width, height int)
	Dispose()
}
