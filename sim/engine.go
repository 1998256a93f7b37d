package sim

import (
	"github.com/sirupsen/logrus"
)

// Engine is the belt simulation core: it owns the scheduler and animator,
// borrows the grid, and routes items between cells once per logical tick.
// All collaborators are injected at construction; there are no singletons.
type Engine struct {
	grid    GridSource
	cfg     EngineConfig
	sched   *Scheduler
	anim    *Animator
	metrics *Metrics

	machines  map[Coord]Machine
	conveyors map[*Conveyor]struct{}

	// pendingConsume maps item ID -> source coordinate for items accepted by
	// a visually-animated machine intake; the source cell clears only when the
	// item's visual segment completes.
	pendingConsume map[int64]Coord

	paused bool
	// One-shot flags set on resume: skip the next Step entirely, then suppress
	// pull operations for the step after that. Both self-clear once consumed.
	skipNextStep  bool
	suppressPulls bool
}

// NewEngine creates an engine over the given grid.
func NewEngine(grid GridSource, cfg EngineConfig) *Engine {
	return &Engine{
		grid:           grid,
		cfg:            cfg,
		sched:          NewScheduler(),
		anim:           NewAnimator(cfg.Animation, cfg.TickSeconds),
		metrics:        &Metrics{},
		machines:       make(map[Coord]Machine),
		conveyors:      make(map[*Conveyor]struct{}),
		pendingConsume: make(map[int64]Coord),
	}
}

// Metrics returns the engine's counters.
func (e *Engine) Metrics() *Metrics {
	return e.metrics
}

// Animator returns the visual animation layer, for the render frontend.
func (e *Engine) Animator() *Animator {
	return e.anim
}

// Grid returns the borrowed grid collaborator.
func (e *Engine) Grid() GridSource {
	return e.grid
}

// RegisterCell schedules a cell for evaluation starting next step. Exposed to
// placement tooling; idempotent.
func (e *Engine) RegisterCell(c Coord) {
	e.sched.RegisterCell(c)
}

// UnregisterCell removes a destroyed cell from scheduling.
func (e *Engine) UnregisterCell(c Coord) {
	e.sched.UnregisterCell(c)
}

// RegisterConveyor attaches a legacy single-direction conveyor to its cell and
// schedules it. Idempotent.
func (e *Engine) RegisterConveyor(cv *Conveyor) {
	if cv == nil || !e.grid.InBounds(cv.Pos) {
		return
	}
	cell := e.grid.EnsureCell(cv.Pos)
	cell.Conveyor = cv
	e.conveyors[cv] = struct{}{}
	e.sched.RegisterCell(cv.Pos)
}

// UnregisterConveyor detaches a conveyor from its cell. The cell leaves the
// scheduling sets unless it is still belt-like through other configuration.
func (e *Engine) UnregisterConveyor(cv *Conveyor) {
	if cv == nil {
		return
	}
	delete(e.conveyors, cv)
	cell := e.grid.GetCell(cv.Pos)
	if cell == nil {
		return
	}
	if cell.Conveyor == cv {
		cell.Conveyor = nil
	}
	if !cell.BeltLike() {
		e.sched.UnregisterCell(cv.Pos)
	}
}

// RegisterMachine registers a machine collaborator at its cell coordinate.
func (e *Engine) RegisterMachine(m Machine) {
	if m == nil {
		return
	}
	c := m.Cell()
	e.machines[c] = m
	cell := e.grid.EnsureCell(c)
	if cell.Kind == CellEmpty {
		cell.Kind = CellMachine
	}
}

// UnregisterMachine removes a machine from the registry.
func (e *Engine) UnregisterMachine(m Machine) {
	if m == nil {
		return
	}
	c := m.Cell()
	if e.machines[c] != m {
		return
	}
	delete(e.machines, c)
	if cell := e.grid.GetCell(c); cell != nil && cell.Kind == CellMachine {
		cell.Kind = CellEmpty
	}
}

// MachineAt returns the registered machine at c, if any.
func (e *Engine) MachineAt(c Coord) (Machine, bool) {
	m, ok := e.machines[c]
	return m, ok
}

// TrySpawnItem hands a producer-created item into the engine at c. Fails if
// the coordinate is out of bounds, not belt-like, or already occupied.
func (e *Engine) TrySpawnItem(c Coord, it *Item) bool {
	if it == nil || !e.grid.InBounds(c) {
		return false
	}
	cell := e.grid.GetCell(c)
	if cell == nil || !cell.BeltLike() || cell.Occupied {
		return false
	}
	cell.SetItem(it)
	e.anim.SetPosition(it.ID, e.grid.CellToWorld(c))
	e.sched.RegisterCell(c)
	e.metrics.Spawns++
	logrus.Debugf("spawned item %d (%s) at %v", it.ID, it.Kind, c)
	return true
}

// TryAdvanceSpawnedItem attempts one immediate logical step for a just-spawned
// item so it does not wait a full tick before its first move. Returns true if
// the item left c. The view snaps to the destination's center rather than
// animating: the item was handed in this same frame, so there is no on-screen
// position for a segment to depart from.
func (e *Engine) TryAdvanceSpawnedItem(c Coord) bool {
	if e.paused {
		return false
	}
	cell := e.grid.GetCell(c)
	if cell == nil || !cell.Occupied {
		return false
	}
	it := cell.Item
	if next, ok := e.evalCell(c); ok {
		e.sched.RegisterCell(next)
		if !cell.Occupied && e.anim.Animating(it.ID) {
			e.anim.Remove(it.ID)
			e.anim.SetPosition(it.ID, e.grid.CellToWorld(next))
		}
	}
	return !cell.Occupied
}

// Step executes one logical tick. A no-op while paused; consumes the one-shot
// skip flag set on resume.
func (e *Engine) Step() {
	if e.paused {
		return
	}
	if e.skipNextStep {
		e.skipNextStep = false
		return
	}
	e.metrics.Steps++
	e.sched.Step(e.evalCell)
	e.suppressPulls = false
}

// RenderTick advances the visual animation layer by dt seconds of real time.
// Call once per render frame regardless of the stepping cadence. Items whose
// intake segment completed are consumed here.
func (e *Engine) RenderTick(dt float64) {
	if e.paused {
		return
	}
	for _, id := range e.anim.RenderTick(dt) {
		src, ok := e.pendingConsume[id]
		if !ok {
			continue
		}
		delete(e.pendingConsume, id)
		e.finishConsumption(id, src)
	}
}

// finishConsumption clears the source cell of an item whose visual intake
// segment has completed.
func (e *Engine) finishConsumption(id int64, src Coord) {
	if cell := e.grid.GetCell(src); cell != nil && cell.Occupied && cell.Item.ID == id {
		cell.ClearItem()
		e.sched.RegisterCell(src)
	}
	e.anim.Remove(id)
	e.metrics.Consumed++
	logrus.Debugf("item %d consumed from %v", id, src)
}

// IsPaused reports whether the engine is frozen.
func (e *Engine) IsPaused() bool {
	return e.paused
}

// Pause freezes scheduling and animation coherently: every in-flight visual
// segment is snapped to its current interpolated position and cleared, and
// Step becomes a no-op. Idempotent.
func (e *Engine) Pause() {
	if e.paused {
		return
	}
	e.paused = true
	e.anim.SnapAll()
	logrus.Debug("engine paused")
}

// Resume thaws the engine: outstanding machine intakes are resolved, every
// occupied cell's item view snaps to its cell center, the active set is
// reseeded from all occupied cells, and the one-shot step-skip and
// pull-suppression flags are armed so the player sees no instantaneous
// double-move after an edit.
func (e *Engine) Resume() {
	if !e.paused {
		return
	}
	e.paused = false

	// Intake segments were cleared by the pause snap and will never settle;
	// complete those handoffs now.
	for id, src := range e.pendingConsume {
		delete(e.pendingConsume, id)
		e.finishConsumption(id, src)
	}

	for _, c := range e.grid.OccupiedCells() {
		cell := e.grid.GetCell(c)
		if cell == nil || cell.Item == nil {
			continue
		}
		e.anim.SetPosition(cell.Item.ID, e.grid.CellToWorld(c))
		e.sched.RegisterCell(c)
	}

	e.skipNextStep = true
	e.suppressPulls = true
	logrus.Debug("engine resumed")
}
