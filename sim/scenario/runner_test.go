package scenario

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/belt-sim/belt-sim/sim"
)

func lineSpec() *Spec {
	spec := &Spec{
		Name:          "line",
		Ticks:         40,
		FramesPerTick: 2,
		TickSeconds:   0.25,
		Grid:          GridSpec{CellSize: 1, MaxX: 5, MaxY: 5},
		Belts: []BeltSpec{
			{X: 0, Y: 0, Out: "right"},
			{X: 1, Y: 0, In: "left", Out: "right"},
			{X: 2, Y: 0, In: "left", Out: "right"},
		},
		Machines: []MachineSpec{
			{X: 3, Y: 0, Accepts: []string{"left"}},
		},
	}
	for i := 0; i < 10; i++ {
		spec.Spawns = append(spec.Spawns, SpawnSpec{
			Tick: i * 2, X: 0, Y: 0, Kind: "ore", Advance: true,
		})
	}
	return spec
}

func TestRunner_LineScenario_DeliversAllItems(t *testing.T) {
	runner, err := NewRunner(lineSpec())
	require.NoError(t, err)

	metrics := runner.Run()

	assert.EqualValues(t, 10, metrics.Spawns)
	assert.EqualValues(t, 10, metrics.Consumed)
	require.Len(t, runner.Sinks(), 1)
	assert.Len(t, runner.Sinks()[0].Received(), 10)
	assert.Greater(t, metrics.Moves, int64(0))
}

func TestRunner_PauseWindow_DelaysButLosesNothing(t *testing.T) {
	spec := lineSpec()
	spec.Ticks = 60
	spec.Pauses = []PauseSpec{{Tick: 5, ResumeTick: 15}}

	runner, err := NewRunner(spec)
	require.NoError(t, err)

	metrics := runner.Run()

	// Spawns inside the pause window fail (the engine is frozen mid-run only
	// for stepping; spawning stays legal), so everything handed in arrives.
	assert.EqualValues(t, metrics.Spawns, metrics.Consumed)
	assert.Greater(t, metrics.Consumed, int64(0))
}

func TestRunner_CapacitySink_BlocksOverflow(t *testing.T) {
	spec := lineSpec()
	spec.Machines[0].Capacity = 3

	runner, err := NewRunner(spec)
	require.NoError(t, err)

	metrics := runner.Run()

	// Only the sink capacity is consumed; the rest back up on the belts.
	assert.EqualValues(t, 3, metrics.Consumed)
	assert.Len(t, runner.Sinks()[0].Received(), 3)
	assert.Greater(t, metrics.Blocked, int64(0))
}

func TestRunner_VisualIntake_ConsumesAfterSegment(t *testing.T) {
	spec := lineSpec()
	spec.Machines[0].VisualIntake = true
	spec.Animation = AnimationSpec{CellsPerSecond: 4, SyncToTick: true}

	runner, err := NewRunner(spec)
	require.NoError(t, err)

	metrics := runner.Run()

	assert.EqualValues(t, 10, metrics.Consumed)
}

func TestRunner_RejectsInvalidSpec(t *testing.T) {
	spec := lineSpec()
	spec.Ticks = 0
	_, err := NewRunner(spec)
	assert.Error(t, err)
}

func TestRunner_EngineAccessors(t *testing.T) {
	runner, err := NewRunner(lineSpec())
	require.NoError(t, err)

	require.NotNil(t, runner.Engine())
	cell := runner.Engine().Grid().GetCell(sim.Coord{X: 1, Y: 0})
	require.NotNil(t, cell)
	assert.Equal(t, sim.CellBelt, cell.Kind)
}
