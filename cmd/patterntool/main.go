// patterntool is a CLI utility for synthesizing and rendering
// beamforming pattern payloads without opening a window.
package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"os"
	"path/filepath"

	"github.com/Faultbox/beamscope/internal/beamform"
	"github.com/Faultbox/beamscope/internal/engine3d"
	"github.com/Faultbox/beamscope/internal/pattern"
	"github.com/Faultbox/beamscope/internal/render"
	"github.com/Faultbox/beamscope/internal/view"
)

func main() {
	if len(os.Args) < 2 {
		printUsage()
		os.Exit(1)
	}

	command := os.Args[1]
	args := os.Args[2:]

	switch command {
	case "synth":
		cmdSynth(args)
	case "render":
		cmdRender(args)
	case "presets":
		cmdPresets()
	case "help", "-h", "--help":
		printUsage()
	default:
		fmt.Fprintf(os.Stderr, "Unknown command: %s\n", command)
		printUsage()
		os.Exit(1)
	}
}

func printUsage() {
	fmt.Println(`patterntool - beamforming pattern utility

Usage:
  patterntool <command> [options]

Commands:
  synth    Synthesize a pattern payload JSON file
  render   Render payload views to PNG files
  presets  List the built-in scenario presets

Examples:
  patterntool synth -elements 16 -steer 30 -o patterns.json
  patterntool synth -scenario 5g -o 5g.json
  patterntool render -payload patterns.json -view polar -o out/
  patterntool render -scenario ultrasound -view all -o out/`)
}

// arrayFlags registers the shared array/steering flags on fs.
type arrayFlags struct {
	scenario  *string
	elements  *int
	spacing   *float64
	frequency *float64
	kind      *string
	curvature *float64
	steerAz   *float64
	steerEl   *float64
}

func registerArrayFlags(fs *flag.FlagSet) *arrayFlags {
	return &arrayFlags{
		scenario:  fs.String("scenario", "", "Built-in preset (overrides array flags)"),
		elements:  fs.Int("elements", 8, "Number of array elements"),
		spacing:   fs.Float64("spacing", 0.5, "Element spacing in wavelengths"),
		frequency: fs.Float64("frequency", 1e9, "Operating frequency in Hz"),
		kind:      fs.String("kind", "linear", "Array kind: linear or curved"),
		curvature: fs.Float64("curvature", 0, "Curvature for curved arrays"),
		steerAz:   fs.Float64("steer", 0, "Steering azimuth in degrees"),
		steerEl:   fs.Float64("steer-el", 0, "Steering elevation in degrees"),
	}
}

func (af *arrayFlags) synthesize() (*pattern.Set, error) {
	params := beamform.Params{
		Elements:  *af.elements,
		Spacing:   *af.spacing,
		Frequency: *af.frequency,
		Kind:      *af.kind,
		Curvature: *af.curvature,
	}
	if *af.scenario != "" {
		preset, err := beamform.Preset(*af.scenario)
		if err != nil {
			return nil, err
		}
		params = preset.Params
	}
	arr, err := beamform.New(params)
	if err != nil {
		return nil, err
	}
	return arr.Set(*af.steerAz, *af.steerEl), nil
}

func cmdSynth(args []string) {
	fs := flag.NewFlagSet("synth", flag.ExitOnError)
	af := registerArrayFlags(fs)
	out := fs.String("o", "patterns.json", "Output JSON path")
	fs.Parse(args)

	set, err := af.synthesize()
	if err != nil {
		fatal(err)
	}

	data, err := json.MarshalIndent(set, "", "  ")
	if err != nil {
		fatal(err)
	}
	if err := os.WriteFile(*out, data, 0644); err != nil {
		fatal(err)
	}
	fmt.Printf("wrote %s\n", *out)
}

func cmdRender(args []string) {
	fs := flag.NewFlagSet("render", flag.ExitOnError)
	af := registerArrayFlags(fs)
	payload := fs.String("payload", "", "Payload JSON path (overrides synthesis)")
	viewName := fs.String("view", "all", "View to render: geometry, polar, heatmap, surface or all")
	out := fs.String("o", ".", "Output directory")
	width := fs.Int("width", 800, "Image width")
	height := fs.Int("height", 600, "Image height")
	fs.Parse(args)

	var set *pattern.Set
	if *payload != "" {
		f, err := os.Open(*payload)
		if err != nil {
			fatal(err)
		}
		s, err := pattern.Decode(f)
		f.Close()
		if err != nil {
			fatal(err)
		}
		set = s
	} else {
		s, err := af.synthesize()
		if err != nil {
			fatal(err)
		}
		set = s
	}

	modes := map[string]view.Mode{
		"geometry": view.ModeGeometry,
		"polar":    view.ModePolar,
		"heatmap":  view.ModeHeatmap,
		"surface":  view.ModeSurface,
	}

	var selected []string
	if *viewName == "all" {
		selected = []string{"geometry", "polar", "heatmap", "surface"}
	} else {
		if _, ok := modes[*viewName]; !ok {
			fatal(fmt.Errorf("unknown view %q", *viewName))
		}
		selected = []string{*viewName}
	}

	// Software backend: no window or GPU needed for PNG output.
	engine := engine3d.NewSoftEngine(*width, *height)
	scene := engine3d.NewScene(engine, engine3d.NewOrbitCamera())
	defer scene.Dispose()

	mgr := view.NewManager(view.DefaultOptions())
	mgr.SetSurface3D(&offlineSurface{scene: scene})
	transform := view.NewTransform()

	for _, name := range selected {
		canvas := render.New(*width, *height)
		mgr.Render(set, modes[name], transform, canvas)

		path := filepath.Join(*out, name+".png")
		if err := canvas.SavePNG(path); err != nil {
			fatal(err)
		}
		fmt.Printf("wrote %s\n", path)
	}
}

func cmdPresets() {
	for _, name := range beamform.PresetNames() {
		preset, err := beamform.Preset(name)
		if err != nil {
			fatal(err)
		}
		fmt.Printf("%-16s %s\n", name, preset.Description)
	}
}

// offlineSurface adapts the scene for one-shot offline rendering.
type offlineSurface struct {
	scene *engine3d.Scene
	last  *pattern.Pattern3D
}

func (s *offlineSurface) Render(p *pattern.Pattern3D, dst *render.Canvas) error {
	if p != s.last {
		if err := s.scene.Rebuild(p); err != nil {
			return err
		}
		s.last = p
	}
	return s.scene.Render(dst)
}

func fatal(err error) {
	fmt.Fprintf(os.Stderr, "Error: %v\n", err)
	os.Exit(1)
}
