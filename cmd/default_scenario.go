package cmd

import "github.com/belt-sim/belt-sim/sim/scenario"

// DefaultScenario is the built-in demo used when no --scenario file is given:
// a straight belt line feeding a splitter whose two legs merge back into a
// sink machine, with a steady stream of spawned items and one pause window.
func DefaultScenario() *scenario.Spec {
	spec := &scenario.Spec{
		Name:          "demo-split-merge",
		Ticks:         120,
		FramesPerTick: 4,
		TickSeconds:   0.25,
		Grid: scenario.GridSpec{
			CellSize: 1,
			MinX:     0, MinY: 0,
			MaxX: 9, MaxY: 4,
		},
		Animation: scenario.AnimationSpec{
			CellsPerSecond: 4,
			SyncToTick:     true,
		},
		Belts: []scenario.BeltSpec{
			// Inlet line along y=2.
			{X: 0, Y: 2, Out: "right"},
			{X: 1, Y: 2, In: "left", Out: "right"},
			// Upper leg of the split.
			{X: 2, Y: 3, In: "down", Out: "right"},
			{X: 3, Y: 3, In: "left", Out: "right"},
			{X: 4, Y: 3, In: "left", Out: "down"},
			// Lower leg of the split.
			{X: 2, Y: 1, In: "up", Out: "right"},
			{X: 3, Y: 1, In: "left", Out: "right"},
			{X: 4, Y: 1, In: "left", Out: "up"},
			// Outlet line into the sink.
			{X: 5, Y: 2, In: "left", Out: "right"},
		},
		Junctions: []scenario.JunctionSpec{
			// Splitter: items from the inlet alternate up and down.
			{X: 2, Y: 2, Inputs: []string{"left"}, Outputs: []string{"up", "down"}},
			// Merge: both legs feed back into the outlet round-robin.
			{X: 4, Y: 2, Inputs: []string{"up", "down"}, Outputs: []string{"right"}},
		},
		Machines: []scenario.MachineSpec{
			{X: 6, Y: 2, Accepts: []string{"left"}, VisualIntake: true},
		},
		Pauses: []scenario.PauseSpec{
			{Tick: 60, ResumeTick: 70},
		},
	}
	for tick := 0; tick < 100; tick += 3 {
		spec.Spawns = append(spec.Spawns, scenario.SpawnSpec{
			Tick: tick, X: 0, Y: 2, Kind: "ore", Advance: true,
		})
	}
	return spec
}
