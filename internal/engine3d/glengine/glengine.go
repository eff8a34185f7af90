// Package glengine is the OpenGL 4.1 core backend for the surface
// renderer. It renders into an offscreen framebuffer and reads the frame
// back into a canvas, so the viewer and the PNG writer share one path.
// All methods must run on the thread that owns the GL context.
package glengine

import (
	"fmt"
	"math"
	"unsafe"

	"github.com/go-gl/gl/v4.1-core/gl"

	"github.com/Faultbox/beamscope/internal/engine3d"
	"github.com/Faultbox/beamscope/internal/render"
	"github.com/Faultbox/beamscope/pkg/geom"
)

const (
	fov  = float32(45 * math.Pi / 180)
	near = float32(0.1)
	far  = float32(100)

	// Interleaved layout: position, normal, color.
	vertexStride = 9 * 4
)

// Engine implements engine3d.Engine on OpenGL.
type Engine struct {
	program uint32
	target  *offscreenTarget

	vao        uint32
	vbo        uint32
	ebo        uint32
	edgeEBO    uint32
	indexCount int32
	edgeCount  int32

	locMVP            int32
	locLightPos       int32
	locLightColor     int32
	locLightIntensity int32
	locWireframe      int32
	locWireColor      int32

	camera *engine3d.OrbitCamera
	lights []engine3d.Light

	Wireframe bool
}

// New creates the GL backend. Requires a current GL context.
func New(width, height int) (*Engine, error) {
	program, err := compileProgram(vertexShaderSource, fragmentShaderSource)
	if err != nil {
		return nil, fmt.Errorf("glengine: surface shader: %w", err)
	}

	target, err := newOffscreenTarget(int32(width), int32(height))
	if err != nil {
		gl.DeleteProgram(program)
		return nil, fmt.Errorf("glengine: %w", err)
	}

	e := &Engine{
		program:   program,
		target:    target,
		Wireframe: true,
	}
	e.locMVP = uniform(program, "uMVP")
	e.locLightPos = uniform(program, "uLightPos")
	e.locLightColor = uniform(program, "uLightColor")
	e.locLightIntensity = uniform(program, "uLightIntensity")
	e.locWireframe = uniform(program, "uWireframe")
	e.locWireColor = uniform(program, "uWireColor")
	return e, nil
}

// BuildMesh uploads the mesh, replacing any previously uploaded one.
func (e *Engine) BuildMesh(m *engine3d.Mesh) error {
	if m == nil || len(m.Vertices) == 0 || len(m.Indices) == 0 {
		return fmt.Errorf("glengine: empty mesh")
	}
	e.Dispose()

	// Interleave into a flat float32 buffer.
	data := make([]float32, 0, len(m.Vertices)*9)
	for _, v := range m.Vertices {
		data = append(data,
			v.Position.X, v.Position.Y, v.Position.Z,
			v.Normal.X, v.Normal.Y, v.Normal.Z,
			v.Color[0], v.Color[1], v.Color[2])
	}

	gl.GenVertexArrays(1, &e.vao)
	gl.BindVertexArray(e.vao)

	gl.GenBuffers(1, &e.vbo)
	gl.BindBuffer(gl.ARRAY_BUFFER, e.vbo)
	gl.BufferData(gl.ARRAY_BUFFER, len(data)*4, unsafe.Pointer(&data[0]), gl.STATIC_DRAW)

	gl.EnableVertexAttribArray(0)
	gl.VertexAttribPointerWithOffset(0, 3, gl.FLOAT, false, vertexStride, 0)
	gl.EnableVertexAttribArray(1)
	gl.VertexAttribPointerWithOffset(1, 3, gl.FLOAT, false, vertexStride, 3*4)
	gl.EnableVertexAttribArray(2)
	gl.VertexAttribPointerWithOffset(2, 3, gl.FLOAT, false, vertexStride, 6*4)

	gl.GenBuffers(1, &e.ebo)
	gl.BindBuffer(gl.ELEMENT_ARRAY_BUFFER, e.ebo)
	gl.BufferData(gl.ELEMENT_ARRAY_BUFFER, len(m.Indices)*4, unsafe.Pointer(&m.Indices[0]), gl.STATIC_DRAW)
	e.indexCount = int32(len(m.Indices))

	// Separate index buffer for the wireframe overlay.
	if len(m.Edges) > 0 {
		lines := make([]uint32, 0, len(m.Edges)*2)
		for _, edge := range m.Edges {
			lines = append(lines, edge[0], edge[1])
		}
		gl.GenBuffers(1, &e.edgeEBO)
		gl.BindBuffer(gl.ELEMENT_ARRAY_BUFFER, e.edgeEBO)
		gl.BufferData(gl.ELEMENT_ARRAY_BUFFER, len(lines)*4, unsafe.Pointer(&lines[0]), gl.STATIC_DRAW)
		e.edgeCount = int32(len(lines))
	}

	gl.BindVertexArray(0)
	return nil
}

// AddLight appends a light source. The shader uses the first light.
func (e *Engine) AddLight(l engine3d.Light) {
	e.lights = append(e.lights, l)
}

// AttachCamera sets the camera used for the view transform.
func (e *Engine) AttachCamera(c *engine3d.OrbitCamera) {
	e.camera = c
}

// Resize updates the offscreen target dimensions.
func (e *Engine) Resize(width, height int) {
	e.target.resize(int32(width), int32(height))
}

// Render draws the surface into the offscreen target, then reads the
// frame back into dst.
func (e *Engine) Render(dst *render.Canvas) error {
	if e.vao == 0 {
		return fmt.Errorf("glengine: no mesh built")
	}
	if e.camera == nil {
		return fmt.Errorf("glengine: no camera attached")
	}
	e.target.resize(int32(dst.Width()), int32(dst.Height()))

	e.target.bind()
	defer e.target.unbind()

	bg := render.ColorBackground
	gl.ClearColor(float32(bg.R)/255, float32(bg.G)/255, float32(bg.B)/255, 1)
	gl.Clear(gl.COLOR_BUFFER_BIT | gl.DEPTH_BUFFER_BIT)
	gl.Enable(gl.DEPTH_TEST)
	gl.Disable(gl.CULL_FACE)

	aspect := float32(dst.Width()) / float32(dst.Height())
	proj := geom.Perspective(fov, aspect, near, far)
	mvp := proj.Mul(e.camera.ViewMatrix())

	gl.UseProgram(e.program)
	gl.UniformMatrix4fv(e.locMVP, 1, false, mvp.Ptr())

	light := engine3d.DefaultLight()
	if len(e.lights) > 0 {
		light = e.lights[0]
	}
	gl.Uniform3f(e.locLightPos, light.Position.X, light.Position.Y, light.Position.Z)
	gl.Uniform3f(e.locLightColor, light.Color[0], light.Color[1], light.Color[2])
	gl.Uniform1f(e.locLightIntensity, light.Intensity)

	gl.BindVertexArray(e.vao)

	gl.Uniform1i(e.locWireframe, 0)
	gl.BindBuffer(gl.ELEMENT_ARRAY_BUFFER, e.ebo)
	gl.DrawElements(gl.TRIANGLES, e.indexCount, gl.UNSIGNED_INT, nil)

	if e.Wireframe && e.edgeCount > 0 {
		gl.Uniform1i(e.locWireframe, 1)
		gl.Uniform3f(e.locWireColor, 40.0/255, 44.0/255, 54.0/255)
		// Edges share vertices with the triangles, so equal depth must pass.
		gl.DepthFunc(gl.LEQUAL)
		gl.BindBuffer(gl.ELEMENT_ARRAY_BUFFER, e.edgeEBO)
		gl.DrawElements(gl.LINES, e.edgeCount, gl.UNSIGNED_INT, nil)
		gl.DepthFunc(gl.LESS)
	}

	gl.BindVertexArray(0)
	return e.target.readInto(dst)
}

// Dispose releases the mesh buffers. The shader and framebuffer stay so
// a later BuildMesh can reuse them. Idempotent.
func (e *Engine) Dispose() {
	if e.vao != 0 {
		gl.DeleteVertexArrays(1, &e.vao)
		e.vao = 0
	}
	if e.vbo != 0 {
		gl.DeleteBuffers(1, &e.vbo)
		e.vbo = 0
	}
	if e.ebo != 0 {
		gl.DeleteBuffers(1, &e.ebo)
		e.ebo = 0
	}
	if e.edgeEBO != 0 {
		gl.DeleteBuffers(1, &e.edgeEBO)
		e.edgeEBO = 0
	}
	e.indexCount = 0
	e.edgeCount = 0
}

// Destroy releases every GL resource including the shader program and
// framebuffer. The engine is unusable afterwards.
func (e *Engine) Destroy() {
	e.Dispose()
	if e.program != 0 {
		gl.DeleteProgram(e.program)
		e.program = 0
	}
	if e.target != nil {
		e.target.destroy()
		e.target = nil
	}
}
