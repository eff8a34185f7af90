package viewer

import (
	"fmt"

	"github.com/go-gl/gl/v4.1-core/gl"
	"github.com/veandco/go-sdl2/sdl"
	"go.uber.org/zap"

	"github.com/Faultbox/beamscope/internal/config"
	"github.com/Faultbox/beamscope/internal/engine3d"
	"github.com/Faultbox/beamscope/internal/engine3d/glengine"
	"github.com/Faultbox/beamscope/internal/logger"
	"github.com/Faultbox/beamscope/internal/pattern"
	"github.com/Faultbox/beamscope/internal/render"
	"github.com/Faultbox/beamscope/internal/view"
)

// surfaceScene bridges the view manager to the 3D scene. The scene is
// rebuilt when the pattern payload changes; rendering is delegated.
type surfaceScene struct {
	scene *engine3d.Scene
	last  *pattern.Pattern3D
}

func (s *surfaceScene) Render(p *pattern.Pattern3D, dst *render.Canvas) error {
	if p != s.last {
		if err := s.scene.Rebuild(p); err != nil {
			return err
		}
		s.last = p
	}
	return s.scene.Render(dst)
}

// Run opens the window and drives the interactive loop until quit.
// Keys 1-4 switch views, R resets the view transform and camera.
func Run(cfg *config.Config, set *pattern.Set) error {
	win, err := NewWindow(WindowConfig{
		Title:      "beamscope",
		Width:      cfg.Display.Width,
		Height:     cfg.Display.Height,
		Fullscreen: cfg.Display.Fullscreen,
		VSync:      cfg.Display.VSync,
	})
	if err != nil {
		return err
	}
	defer win.Close()

	if err := gl.Init(); err != nil {
		return fmt.Errorf("initializing OpenGL: %w", err)
	}

	blit, err := newBlitter()
	if err != nil {
		return err
	}
	defer blit.destroy()

	width, height := win.Size()
	engine, err := glengine.New(width, height)
	if err != nil {
		return err
	}
	defer engine.Destroy()

	camera := engine3d.NewOrbitCamera()
	camera.SetDistanceLimits(float32(cfg.Camera.MinDistance), float32(cfg.Camera.MaxDistance))
	camera.Damping = float32(cfg.Camera.Damping)

	scene := engine3d.NewScene(engine, camera)
	defer scene.Dispose()

	mgr := view.NewManager(view.Options{Margin: cfg.Display.Margin})
	mgr.SetSurface3D(&surfaceScene{scene: scene})

	transform := view.NewTransform()
	canvas := render.New(width, height)
	input := NewInput()

	mode := view.ModeGeometry
	dragging3D := false
	panning3D := false
	lastX, lastY := 0, 0

	for {
		quit := input.Update()

		for _, e := range input.Events() {
			switch e.Type {
			case EventKeyDown:
				switch e.Key {
				case sdl.SCANCODE_1:
					mode = view.ModeGeometry
				case sdl.SCANCODE_2:
					mode = view.ModePolar
				case sdl.SCANCODE_3:
					mode = view.ModeHeatmap
				case sdl.SCANCODE_4:
					mode = view.ModeSurface
				case sdl.SCANCODE_R:
					transform.Reset()
					camera.Reset()
				case sdl.SCANCODE_ESCAPE:
					quit = true
				}

			case EventMouseDown:
				if mode == view.ModeSurface {
					switch e.Button {
					case sdl.BUTTON_LEFT:
						dragging3D = true
						lastX, lastY = e.MouseX, e.MouseY
					case sdl.BUTTON_RIGHT:
						panning3D = true
						lastX, lastY = e.MouseX, e.MouseY
					}
				} else if e.Button == sdl.BUTTON_LEFT {
					transform.PointerDown(e.MouseX, e.MouseY)
				}

			case EventMouseMove:
				switch {
				case dragging3D:
					camera.HandleDrag(float32(e.MouseX-lastX), float32(e.MouseY-lastY))
					lastX, lastY = e.MouseX, e.MouseY
				case panning3D:
					camera.HandlePan(float32(e.MouseX-lastX), float32(e.MouseY-lastY))
					lastX, lastY = e.MouseX, e.MouseY
				default:
					transform.PointerMove(e.MouseX, e.MouseY)
				}

			case EventMouseUp:
				switch e.Button {
				case sdl.BUTTON_LEFT:
					dragging3D = false
					transform.PointerUp()
				case sdl.BUTTON_RIGHT:
					panning3D = false
				}

			case EventMouseLeave:
				dragging3D = false
				panning3D = false
				transform.PointerLeave()

			case EventMouseWheel:
				if mode == view.ModeSurface {
					camera.HandleZoom(float32(e.WheelY))
				} else if e.WheelY > 0 {
					transform.AdjustZoom(1.1)
				} else if e.WheelY < 0 {
					transform.AdjustZoom(1 / 1.1)
				}

			case EventWindowResize:
				// The mesh survives a resize; only the viewport and
				// projection change.
				canvas = render.New(e.Width, e.Height)
				scene.Resize(e.Width, e.Height)
				logger.Log.Debug("window resized",
					zap.Int("width", e.Width),
					zap.Int("height", e.Height))
			}
		}

		if quit {
			return nil
		}

		scene.Advance()
		mgr.Render(set, mode, transform, canvas)

		winW, winH := win.Size()
		blit.draw(canvas, winW, winH)
		win.SwapBuffers()

		if !cfg.Display.VSync {
			sdl.Delay(16)
		}
	}
}
