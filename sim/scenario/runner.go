package scenario

import (
	"fmt"

	"github.com/sirupsen/logrus"

	"github.com/belt-sim/belt-sim/sim"
)

// Runner builds an engine from a validated Spec and drives it: one Step per
// tick, FramesPerTick render frames interleaved after each tick.
type Runner struct {
	spec   *Spec
	grid   *sim.SparseGrid
	engine *sim.Engine
	sinks  []*SinkMachine
}

// NewRunner validates the spec and constructs the grid, engine, cells,
// conveyors, and machines it describes.
func NewRunner(spec *Spec) (*Runner, error) {
	if err := spec.Validate(); err != nil {
		return nil, fmt.Errorf("invalid scenario: %w", err)
	}

	cfg := sim.DefaultEngineConfig()
	cfg.TickSeconds = spec.TickSeconds
	if spec.Animation.CellsPerSecond > 0 {
		cfg.Animation.CellsPerSecond = spec.Animation.CellsPerSecond
	}
	if spec.Animation.MinSegmentSeconds > 0 {
		cfg.Animation.MinSegmentSeconds = spec.Animation.MinSegmentSeconds
	}
	if spec.Animation.Buckets > 0 {
		cfg.Animation.Buckets = spec.Animation.Buckets
	}
	cfg.Animation.SyncToTick = spec.Animation.SyncToTick

	cellSize := spec.Grid.CellSize
	if cellSize <= 0 {
		cellSize = 1
	}
	grid := sim.NewSparseGrid(cellSize,
		sim.Coord{X: spec.Grid.MinX, Y: spec.Grid.MinY},
		sim.Coord{X: spec.Grid.MaxX, Y: spec.Grid.MaxY})
	engine := sim.NewEngine(grid, cfg)

	r := &Runner{spec: spec, grid: grid, engine: engine}

	for _, b := range spec.Belts {
		c := sim.Coord{X: b.X, Y: b.Y}
		cell := grid.EnsureCell(c)
		cell.Kind = sim.CellBelt
		if in := mustDirection(b.In); in != sim.DirNone {
			cell.Inputs = []sim.Direction{in}
		}
		cell.Outputs = []sim.Direction{mustDirection(b.Out)}
		engine.RegisterCell(c)
	}
	for _, j := range spec.Junctions {
		c := sim.Coord{X: j.X, Y: j.Y}
		cell := grid.EnsureCell(c)
		cell.Kind = sim.CellJunction
		cell.Inputs = directions(j.Inputs)
		cell.Outputs = directions(j.Outputs)
		engine.RegisterCell(c)
	}
	for _, cv := range spec.Conveyors {
		engine.RegisterConveyor(&sim.Conveyor{
			Pos: sim.Coord{X: cv.X, Y: cv.Y},
			Dir: mustDirection(cv.Dir),
		})
	}
	for _, m := range spec.Machines {
		sink := NewSinkMachine(sim.Coord{X: m.X, Y: m.Y},
			directions(m.Accepts), m.Capacity, m.VisualIntake)
		engine.RegisterMachine(sink)
		r.sinks = append(r.sinks, sink)
	}

	return r, nil
}

// Engine returns the constructed engine.
func (r *Runner) Engine() *sim.Engine {
	return r.engine
}

// Sinks returns the scenario's machines, in declaration order.
func (r *Runner) Sinks() []*SinkMachine {
	return r.sinks
}

// Run executes the scenario to completion and returns the engine metrics.
func (r *Runner) Run() *sim.Metrics {
	frameDT := r.spec.TickSeconds / float64(r.spec.FramesPerTick)

	for tick := 0; tick < r.spec.Ticks; tick++ {
		for _, p := range r.spec.Pauses {
			if p.Tick == tick {
				r.engine.Pause()
			}
			if p.ResumeTick == tick {
				r.engine.Resume()
			}
		}

		for _, sp := range r.spec.Spawns {
			if sp.Tick != tick {
				continue
			}
			c := sim.Coord{X: sp.X, Y: sp.Y}
			kind := sp.Kind
			if kind == "" {
				kind = "ore"
			}
			if !r.engine.TrySpawnItem(c, sim.NewItem(kind)) {
				logrus.Debugf("spawn at %v blocked on tick %d", c, tick)
				continue
			}
			if sp.Advance {
				r.engine.TryAdvanceSpawnedItem(c)
			}
		}

		r.engine.Step()
		for f := 0; f < r.spec.FramesPerTick; f++ {
			r.engine.RenderTick(frameDT)
		}
	}

	return r.engine.Metrics()
}
