package engine3d

import (
	"bytes"
	"math"
	"testing"

	"github.com/Faultbox/beamscope/internal/pattern"
	"github.com/Faultbox/beamscope/internal/render"
)

// testPattern builds a phi x theta grid with constant magnitude.
func testPattern(phiSteps, thetaSteps int, magnitude float64) *pattern.Pattern3D {
	p := &pattern.Pattern3D{
		Theta:     make([][]float64, phiSteps),
		Phi:       make([][]float64, phiSteps),
		Magnitude: make([][]float64, phiSteps),
	}
	for i := 0; i < phiSteps; i++ {
		p.Theta[i] = make([]float64, thetaSteps)
		p.Phi[i] = make([]float64, thetaSteps)
		p.Magnitude[i] = make([]float64, thetaSteps)
		for j := 0; j < thetaSteps; j++ {
			p.Theta[i][j] = 360 * float64(j) / float64(thetaSteps-1)
			p.Phi[i][j] = 180 * float64(i) / float64(phiSteps-1)
			p.Magnitude[i][j] = magnitude
		}
	}
	return p
}

func TestBuildSurfaceMeshCounts(t *testing.T) {
	const phiSteps, thetaSteps = 9, 18
	mesh, err := BuildSurfaceMesh(testPattern(phiSteps, thetaSteps, 0.5))
	if err != nil {
		t.Fatalf("BuildSurfaceMesh failed: %v", err)
	}

	if len(mesh.Vertices) != phiSteps*thetaSteps {
		t.Errorf("expected %d vertices, got %d", phiSteps*thetaSteps, len(mesh.Vertices))
	}
	wantTris := 2 * (phiSteps - 1) * (thetaSteps - 1)
	if mesh.TriangleCount() != wantTris {
		t.Errorf("expected %d triangles, got %d", wantTris, mesh.TriangleCount())
	}
}

func TestBuildSurfaceMeshUnitSphere(t *testing.T) {
	mesh, err := BuildSurfaceMesh(testPattern(9, 18, 1.0))
	if err != nil {
		t.Fatalf("BuildSurfaceMesh failed: %v", err)
	}

	// Unit magnitude everywhere puts every vertex on the unit sphere.
	for i, v := range mesh.Vertices {
		l := float64(v.Position.Length())
		if math.Abs(l-1) > 1e-5 {
			t.Fatalf("vertex %d: distance from origin %f, want 1", i, l)
		}
	}

	// Normals are unit length after accumulation.
	for i, v := range mesh.Vertices {
		l := float64(v.Normal.Length())
		if math.Abs(l-1) > 1e-5 {
			t.Fatalf("vertex %d: normal length %f, want 1", i, l)
		}
	}
}

func TestBuildSurfaceMeshColormap(t *testing.T) {
	// Peak magnitude maps to red, zero to blue.
	peak, err := BuildSurfaceMesh(testPattern(3, 4, 1.0))
	if err != nil {
		t.Fatalf("BuildSurfaceMesh failed: %v", err)
	}
	v := peak.Vertices[0]
	if v.Color[0] < 0.9 || v.Color[2] > 0.1 {
		t.Errorf("peak magnitude should be red, got %v", v.Color)
	}

	null, err := BuildSurfaceMesh(testPattern(3, 4, 0.0))
	if err != nil {
		t.Fatalf("BuildSurfaceMesh failed: %v", err)
	}
	v = null.Vertices[0]
	if v.Color[2] < 0.9 || v.Color[0] > 0.1 {
		t.Errorf("zero magnitude should be blue, got %v", v.Color)
	}
}

func TestBuildSurfaceMeshRejectsBadGrids(t *testing.T) {
	if _, err := BuildSurfaceMesh(nil); err == nil {
		t.Error("expected error for nil pattern")
	}
	if _, err := BuildSurfaceMesh(testPattern(1, 4, 1)); err == nil {
		t.Error("expected error for single-row grid")
	}
	ragged := testPattern(3, 4, 1)
	ragged.Magnitude[1] = ragged.Magnitude[1][:2]
	if _, err := BuildSurfaceMesh(ragged); err == nil {
		t.Error("expected error for ragged grid")
	}
}

func TestCollectEdgesDeduplicates(t *testing.T) {
	// Two triangles sharing an edge: 5 unique edges, not 6.
	edges := collectEdges([]uint32{0, 1, 2, 1, 3, 2})
	if len(edges) != 5 {
		t.Errorf("expected 5 unique edges, got %d", len(edges))
	}
}

func TestOrbitCameraZoomClamp(t *testing.T) {
	cam := NewOrbitCamera()

	for i := 0; i < 100; i++ {
		cam.HandleZoom(5)
	}
	cam.Snap()
	if cam.Distance != cam.MinDistance {
		t.Errorf("expected distance clamped to %f, got %f", cam.MinDistance, cam.Distance)
	}

	for i := 0; i < 100; i++ {
		cam.HandleZoom(-5)
	}
	cam.Snap()
	if cam.Distance != cam.MaxDistance {
		t.Errorf("expected distance clamped to %f, got %f", cam.MaxDistance, cam.Distance)
	}
}

func TestOrbitCameraDamping(t *testing.T) {
	cam := NewOrbitCamera()
	start := cam.Distance

	cam.HandleZoom(10)
	if cam.Distance != start {
		t.Fatal("zoom should not move the camera before Update")
	}

	cam.Update()
	afterOne := cam.Distance
	if afterOne >= start {
		t.Fatalf("expected camera to ease toward target, got %f -> %f", start, afterOne)
	}

	// Easing converges on the target over many ticks.
	for i := 0; i < 1000; i++ {
		cam.Update()
	}
	if math.Abs(float64(cam.Distance-cam.targetDistance)) > 1e-3 {
		t.Errorf("expected convergence to %f, got %f", cam.targetDistance, cam.Distance)
	}
}

func TestOrbitCameraPitchClamp(t *testing.T) {
	cam := NewOrbitCamera()
	for i := 0; i < 10000; i++ {
		cam.HandleDrag(0, 100)
	}
	cam.Snap()
	if cam.RotationX != cam.MaxPitch {
		t.Errorf("expected pitch clamped to %f, got %f", cam.MaxPitch, cam.RotationX)
	}
}

func TestOrbitCameraPan(t *testing.T) {
	cam := NewOrbitCamera()

	cam.HandlePan(40, 0)
	if cam.CenterX != 0 || cam.CenterY != 0 || cam.CenterZ != 0 {
		t.Fatal("pan should not move the center before Update")
	}

	cam.Update()
	moved := math.Abs(float64(cam.CenterX)) + math.Abs(float64(cam.CenterZ))
	if moved == 0 {
		t.Fatal("expected center to ease toward the pan target")
	}

	// A horizontal pan stays in the camera's screen plane, which has no
	// vertical component for a y-up orbit.
	cam.Snap()
	if cam.CenterY != 0 {
		t.Errorf("expected horizontal pan to keep CenterY at 0, got %f", cam.CenterY)
	}
	if cam.CenterX == 0 && cam.CenterZ == 0 {
		t.Error("expected horizontal pan to shift the center")
	}

	cam.HandlePan(0, -25)
	cam.Snap()
	if cam.CenterY == 0 {
		t.Error("expected vertical pan to shift CenterY")
	}

	cam.Reset()
	cam.Snap()
	if cam.CenterX != 0 || cam.CenterY != 0 || cam.CenterZ != 0 {
		t.Errorf("expected Reset to restore the origin center, got (%f, %f, %f)",
			cam.CenterX, cam.CenterY, cam.CenterZ)
	}
}

func TestSceneLifecycle(t *testing.T) {
	engine := NewSoftEngine(200, 200)
	scene := NewScene(engine, NewOrbitCamera())

	if scene.Animating() {
		t.Error("scene should not animate before the first rebuild")
	}
	scene.Advance()
	if scene.Ticks() != 0 {
		t.Error("ticks should not advance before the first rebuild")
	}

	if err := scene.Rebuild(testPattern(9, 18, 1.0)); err != nil {
		t.Fatalf("Rebuild failed: %v", err)
	}
	if !scene.Animating() {
		t.Error("scene should animate after rebuild")
	}

	scene.Advance()
	scene.Advance()
	if scene.Ticks() != 2 {
		t.Errorf("expected 2 ticks, got %d", scene.Ticks())
	}

	// Cancel stops the tick counter and is idempotent.
	scene.Cancel()
	scene.Cancel()
	scene.Advance()
	if scene.Ticks() != 2 {
		t.Errorf("expected ticks frozen at 2 after cancel, got %d", scene.Ticks())
	}

	// A rebuild resumes the animation.
	if err := scene.Rebuild(testPattern(9, 18, 0.5)); err != nil {
		t.Fatalf("Rebuild failed: %v", err)
	}
	scene.Advance()
	if scene.Ticks() != 3 {
		t.Errorf("expected 3 ticks after resumed rebuild, got %d", scene.Ticks())
	}

	// Dispose is terminal and idempotent.
	scene.Dispose()
	scene.Dispose()
	scene.Advance()
	if scene.Ticks() != 3 {
		t.Errorf("expected ticks frozen after dispose, got %d", scene.Ticks())
	}
	if err := scene.Rebuild(testPattern(9, 18, 1.0)); err == nil {
		t.Error("expected error rebuilding a disposed scene")
	}
	c := render.New(100, 100)
	if err := scene.Render(c); err == nil {
		t.Error("expected error rendering a disposed scene")
	}
}

func TestSceneRenderBeforeRebuild(t *testing.T) {
	scene := NewScene(NewSoftEngine(100, 100), NewOrbitCamera())
	if err := scene.Render(render.New(100, 100)); err == nil {
		t.Error("expected error rendering before any rebuild")
	}
}

func TestSoftEngineRenderDraws(t *testing.T) {
	engine := NewSoftEngine(200, 200)
	scene := NewScene(engine, NewOrbitCamera())
	if err := scene.Rebuild(testPattern(18, 36, 1.0)); err != nil {
		t.Fatalf("Rebuild failed: %v", err)
	}

	c := render.New(200, 200)
	c.Clear(render.ColorBackground)
	if err := scene.Render(c); err != nil {
		t.Fatalf("Render failed: %v", err)
	}

	// The surface must cover some pixels.
	drawn := 0
	bg := render.ColorBackground
	pix := c.Pix()
	for i := 0; i < len(pix); i += 4 {
		if pix[i] != bg.R || pix[i+1] != bg.G || pix[i+2] != bg.B {
			drawn++
		}
	}
	if drawn < 100 {
		t.Errorf("expected the surface to cover pixels, got %d", drawn)
	}
}

func TestSceneResizeKeepsMesh(t *testing.T) {
	engine := NewSoftEngine(200, 200)
	scene := NewScene(engine, NewOrbitCamera())
	if err := scene.Rebuild(testPattern(18, 36, 1.0)); err != nil {
		t.Fatalf("Rebuild failed: %v", err)
	}
	ticksBefore := scene.Ticks()

	// A resize changes only the viewport; the mesh survives and the
	// animation state is untouched.
	scene.Resize(320, 240)
	if scene.Ticks() != ticksBefore {
		t.Errorf("expected resize to leave ticks at %d, got %d", ticksBefore, scene.Ticks())
	}
	if !scene.Animating() {
		t.Error("expected scene to keep animating across a resize")
	}

	c := render.New(320, 240)
	c.Clear(render.ColorBackground)
	if err := scene.Render(c); err != nil {
		t.Fatalf("Render after resize failed: %v", err)
	}

	drawn := 0
	bg := render.ColorBackground
	pix := c.Pix()
	for i := 0; i < len(pix); i += 4 {
		if pix[i] != bg.R || pix[i+1] != bg.G || pix[i+2] != bg.B {
			drawn++
		}
	}
	if drawn < 100 {
		t.Errorf("expected the surface to survive a resize, got %d drawn pixels", drawn)
	}
}

func TestSoftEngineRenderDeterministic(t *testing.T) {
	p := testPattern(12, 24, 1.0)

	renderOnce := func() []byte {
		engine := NewSoftEngine(160, 160)
		scene := NewScene(engine, NewOrbitCamera())
		if err := scene.Rebuild(p); err != nil {
			t.Fatalf("Rebuild failed: %v", err)
		}
		c := render.New(160, 160)
		c.Clear(render.ColorBackground)
		if err := scene.Render(c); err != nil {
			t.Fatalf("Render failed: %v", err)
		}
		out := make([]byte, len(c.Pix()))
		copy(out, c.Pix())
		return out
	}

	if !bytes.Equal(renderOnce(), renderOnce()) {
		t.Error("two renders of the same pattern differ")
	}
}
