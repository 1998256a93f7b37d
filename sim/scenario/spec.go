// Package scenario loads declarative belt layouts from YAML and drives the
// engine headlessly at a fixed tick rate with interleaved render frames.
package scenario

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/belt-sim/belt-sim/sim"
)

// Spec is a complete scenario description, loadable from a YAML file: the grid
// extent, the belt layout, machines, timed item spawns, and timed pause
// windows.
type Spec struct {
	Name          string  `yaml:"name"`
	Ticks         int     `yaml:"ticks"`
	FramesPerTick int     `yaml:"frames_per_tick"`
	TickSeconds   float64 `yaml:"tick_seconds"`

	Grid      GridSpec       `yaml:"grid"`
	Animation AnimationSpec  `yaml:"animation"`
	Belts     []BeltSpec     `yaml:"belts"`
	Junctions []JunctionSpec `yaml:"junctions"`
	Conveyors []ConveyorSpec `yaml:"conveyors"`
	Machines  []MachineSpec  `yaml:"machines"`
	Spawns    []SpawnSpec    `yaml:"spawns"`
	Pauses    []PauseSpec    `yaml:"pauses"`
}

// GridSpec defines the grid bounds (inclusive) and world-space cell size.
type GridSpec struct {
	CellSize float64 `yaml:"cell_size"`
	MinX     int     `yaml:"min_x"`
	MinY     int     `yaml:"min_y"`
	MaxX     int     `yaml:"max_x"`
	MaxY     int     `yaml:"max_y"`
}

// AnimationSpec overrides visual interpolation defaults. Zero values fall back
// to sim.DefaultEngineConfig.
type AnimationSpec struct {
	CellsPerSecond    float64 `yaml:"cells_per_second"`
	MinSegmentSeconds float64 `yaml:"min_segment_seconds"`
	Buckets           int     `yaml:"buckets"`
	SyncToTick        bool    `yaml:"sync_to_tick"`
}

// BeltSpec is a single belt cell with one input and one output direction.
type BeltSpec struct {
	X   int    `yaml:"x"`
	Y   int    `yaml:"y"`
	In  string `yaml:"in"`
	Out string `yaml:"out"`
}

// JunctionSpec is a merge junction (2-3 inputs, 1 output) or splitter
// (1 input, 2 outputs).
type JunctionSpec struct {
	X       int      `yaml:"x"`
	Y       int      `yaml:"y"`
	Inputs  []string `yaml:"inputs"`
	Outputs []string `yaml:"outputs"`
}

// ConveyorSpec is a legacy single-direction conveyor segment.
type ConveyorSpec struct {
	X   int    `yaml:"x"`
	Y   int    `yaml:"y"`
	Dir string `yaml:"dir"`
}

// MachineSpec places a sink machine. Empty accepts means any approach.
type MachineSpec struct {
	X            int      `yaml:"x"`
	Y            int      `yaml:"y"`
	Accepts      []string `yaml:"accepts"`
	Capacity     int      `yaml:"capacity"` // 0 = unlimited
	VisualIntake bool     `yaml:"visual_intake"`
}

// SpawnSpec injects an item at a tick. Advance requests the immediate
// first-move attempt so the item does not wait a full tick.
type SpawnSpec struct {
	Tick    int    `yaml:"tick"`
	X       int    `yaml:"x"`
	Y       int    `yaml:"y"`
	Kind    string `yaml:"kind"`
	Advance bool   `yaml:"advance"`
}

// PauseSpec freezes the engine at Tick and resumes it at ResumeTick.
type PauseSpec struct {
	Tick       int `yaml:"tick"`
	ResumeTick int `yaml:"resume_tick"`
}

// Load reads and parses a YAML scenario file.
func Load(path string) (*Spec, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading scenario: %w", err)
	}
	var spec Spec
	if err := yaml.Unmarshal(data, &spec); err != nil {
		return nil, fmt.Errorf("parsing scenario: %w", err)
	}
	return &spec, nil
}

// ValidDirections is the set of recognized direction names in scenario files.
// Shared by Validate() and the builders to avoid duplication.
var ValidDirections = map[string]bool{
	"up": true, "right": true, "down": true, "left": true, "none": true, "": true,
}

// Validate checks structural constraints: positive tick counts, sane bounds,
// recognized direction names, and junction arity (at most 3 inputs, at most
// 2 outputs, at least one of each).
func (s *Spec) Validate() error {
	if s.Ticks <= 0 {
		return fmt.Errorf("ticks must be positive, got %d", s.Ticks)
	}
	if s.FramesPerTick <= 0 {
		return fmt.Errorf("frames_per_tick must be positive, got %d", s.FramesPerTick)
	}
	if s.TickSeconds <= 0 {
		return fmt.Errorf("tick_seconds must be positive, got %f", s.TickSeconds)
	}
	if s.Grid.MaxX < s.Grid.MinX || s.Grid.MaxY < s.Grid.MinY {
		return fmt.Errorf("grid bounds are inverted")
	}
	for i, b := range s.Belts {
		if !ValidDirections[b.In] || !ValidDirections[b.Out] {
			return fmt.Errorf("belt %d: unknown direction %q/%q", i, b.In, b.Out)
		}
		if b.Out == "none" || b.Out == "" {
			return fmt.Errorf("belt %d: output direction required", i)
		}
	}
	for i, j := range s.Junctions {
		if len(j.Inputs) < 1 || len(j.Inputs) > 3 {
			return fmt.Errorf("junction %d: needs 1-3 inputs, got %d", i, len(j.Inputs))
		}
		if len(j.Outputs) < 1 || len(j.Outputs) > 2 {
			return fmt.Errorf("junction %d: needs 1-2 outputs, got %d", i, len(j.Outputs))
		}
		for _, d := range append(append([]string{}, j.Inputs...), j.Outputs...) {
			if !ValidDirections[d] || d == "none" || d == "" {
				return fmt.Errorf("junction %d: unknown direction %q", i, d)
			}
		}
	}
	for i, cv := range s.Conveyors {
		if !ValidDirections[cv.Dir] || cv.Dir == "none" || cv.Dir == "" {
			return fmt.Errorf("conveyor %d: unknown direction %q", i, cv.Dir)
		}
	}
	for i, m := range s.Machines {
		for _, d := range m.Accepts {
			if !ValidDirections[d] || d == "none" || d == "" {
				return fmt.Errorf("machine %d: unknown direction %q", i, d)
			}
		}
		if m.Capacity < 0 {
			return fmt.Errorf("machine %d: capacity must be non-negative", i)
		}
	}
	for i, sp := range s.Spawns {
		if sp.Tick < 0 || sp.Tick >= s.Ticks {
			return fmt.Errorf("spawn %d: tick %d outside run of %d ticks", i, sp.Tick, s.Ticks)
		}
	}
	for i, p := range s.Pauses {
		if p.Tick < 0 || p.ResumeTick <= p.Tick {
			return fmt.Errorf("pause %d: resume_tick must be after tick", i)
		}
	}
	return nil
}

func mustDirection(name string) sim.Direction {
	d, err := sim.ParseDirection(name)
	if err != nil {
		// Validate() runs before any builder touches direction names.
		panic(err)
	}
	return d
}

func directions(names []string) []sim.Direction {
	out := make([]sim.Direction, 0, len(names))
	for _, n := range names {
		out = append(out, mustDirection(n))
	}
	return out
}
