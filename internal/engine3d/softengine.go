package engine3d

import (
	"fmt"
	"image/color"
	"math"
	"sort"

	"github.com/Faultbox/beamscope/internal/render"
	"github.com/Faultbox/beamscope/pkg/geom"
)

const (
	softFOV  = float32(45 * math.Pi / 180)
	softNear = float32(0.1)
	softFar  = float32(100)
)

// SoftEngine is a CPU rasterizer backend. Triangles are depth-sorted and
// painted back to front with flat diffuse shading, then the wireframe is
// overlaid. It needs no GPU or window and backs both tests and the
// offline PNG renderer.
type SoftEngine struct {
	width, height int
	mesh          *Mesh
	lights        []Light
	camera        *OrbitCamera
	Wireframe     bool
}

// NewSoftEngine creates a software backend with the given viewport.
func NewSoftEngine(width, height int) *SoftEngine {
	return &SoftEngine{width: width, height: height, Wireframe: true}
}

// BuildMesh stores the mesh for rendering, replacing any previous one.
func (e *SoftEngine) BuildMesh(m *Mesh) error {
	if m == nil || len(m.Vertices) == 0 || len(m.Indices) == 0 {
		return fmt.Errorf("softengine: empty mesh")
	}
	e.mesh = m
	return nil
}

// AddLight appends a light source.
func (e *SoftEngine) AddLight(l Light) {
	e.lights = append(e.lights, l)
}

// AttachCamera sets the camera used for the view transform.
func (e *SoftEngine) AttachCamera(c *OrbitCamera) {
	e.camera = c
}

// Resize updates the viewport used for projection.
func (e *SoftEngine) Resize(width, height int) {
	e.width = width
	e.height = height
}

// Dispose releases the stored mesh. Idempotent.
func (e *SoftEngine) Dispose() {
	e.mesh = nil
}

type softTriangle struct {
	screen [3][2]float64
	depth  float32
	col    color.RGBA
}

// Render rasterizes the mesh into dst.
func (e *SoftEngine) Render(dst *render.Canvas) error {
	if e.mesh == nil {
		return fmt.Errorf("softengine: no mesh built")
	}
	if e.camera == nil {
		return fmt.Errorf("softengine: no camera attached")
	}

	w, h := dst.Width(), dst.Height()
	aspect := float32(w) / float32(h)
	proj := geom.Perspective(softFOV, aspect, softNear, softFar)
	mvp := proj.Mul(e.camera.ViewMatrix())

	// Project every vertex once.
	type projected struct {
		x, y   float64
		z      float32
		behind bool
	}
	pts := make([]projected, len(e.mesh.Vertices))
	eye := e.camera.Position()
	forward := geom.Vec3{
		X: e.camera.CenterX - eye.X,
		Y: e.camera.CenterY - eye.Y,
		Z: e.camera.CenterZ - eye.Z,
	}.Normalize()
	for i, v := range e.mesh.Vertices {
		ndc := mvp.TransformPoint(v.Position)
		pts[i] = projected{
			x:      (float64(ndc.X) + 1) / 2 * float64(w),
			y:      (1 - float64(ndc.Y)) / 2 * float64(h),
			z:      ndc.Z,
			behind: v.Position.Sub(eye).Dot(forward) <= 0,
		}
	}

	tris := make([]softTriangle, 0, e.mesh.TriangleCount())
	for t := 0; t < len(e.mesh.Indices); t += 3 {
		i0 := e.mesh.Indices[t]
		i1 := e.mesh.Indices[t+1]
		i2 := e.mesh.Indices[t+2]
		if pts[i0].behind || pts[i1].behind || pts[i2].behind {
			continue
		}

		v0, v1, v2 := e.mesh.Vertices[i0], e.mesh.Vertices[i1], e.mesh.Vertices[i2]

		// Flat shade from the face normal and the first light.
		normal := v1.Position.Sub(v0.Position).Cross(v2.Position.Sub(v0.Position)).Normalize()
		shade := 0.35
		if len(e.lights) > 0 {
			centroid := v0.Position.Add(v1.Position).Add(v2.Position).Scale(1.0 / 3.0)
			lightDir := e.lights[0].Position.Sub(centroid).Normalize()
			d := float64(normal.Dot(lightDir))
			if d < 0 {
				d = -d // the surface is visible from both sides
			}
			shade = 0.35 + 0.65*d*float64(e.lights[0].Intensity)
		}

		base := color.RGBA{
			R: uint8((v0.Color[0] + v1.Color[0] + v2.Color[0]) / 3 * 255),
			G: uint8((v0.Color[1] + v1.Color[1] + v2.Color[1]) / 3 * 255),
			B: uint8((v0.Color[2] + v1.Color[2] + v2.Color[2]) / 3 * 255),
			A: 255,
		}

		tris = append(tris, softTriangle{
			screen: [3][2]float64{
				{pts[i0].x, pts[i0].y},
				{pts[i1].x, pts[i1].y},
				{pts[i2].x, pts[i2].y},
			},
			depth: (pts[i0].z + pts[i1].z + pts[i2].z) / 3,
			col:   render.Shade(base, shade),
		})
	}

	// Painter's algorithm: far triangles first.
	sort.Slice(tris, func(a, b int) bool { return tris[a].depth > tris[b].depth })

	for _, tri := range tris {
		dst.FillTriangle(
			tri.screen[0][0], tri.screen[0][1],
			tri.screen[1][0], tri.screen[1][1],
			tri.screen[2][0], tri.screen[2][1],
			tri.col)
	}

	if e.Wireframe {
		wire := color.RGBA{40, 44, 54, 255}
		for _, edge := range e.mesh.Edges {
			a, b := pts[edge[0]], pts[edge[1]]
			if a.behind || b.behind {
				continue
			}
			dst.Line(a.x, a.y, b.x, b.y, wire)
		}
	}

	return nil
}
