package sim

import (
	"github.com/sirupsen/logrus"
)

// evalCell is the per-cell step evaluation. It returns the coordinate that
// should be scheduled for the next step (the cell's own position when it still
// needs re-evaluation, or the destination an item moved into), or false when
// nothing is pending there.
func (e *Engine) evalCell(c Coord) (Coord, bool) {
	cell := e.grid.GetCell(c)
	if cell == nil || !cell.BeltLike() {
		return Coord{}, false
	}

	if !cell.Occupied {
		if len(cell.InputDirs()) == 0 {
			return Coord{}, false
		}
		if e.suppressPulls {
			// Post-resume one-shot: no pulls this step, retry next.
			return c, true
		}
		if e.tryPull(c, cell) {
			// The cell now holds an item that itself needs to try to move.
			return c, true
		}
		return Coord{}, false
	}

	// Items mid-handoff into a visual intake stay put until their segment
	// completes; consumption is resolved in RenderTick.
	if _, mid := e.pendingConsume[cell.Item.ID]; mid {
		return Coord{}, false
	}

	return e.dispatch(c, cell)
}

// inputReady reports whether the neighbor in input direction d holds an item
// and has an output directed back at c.
func (e *Engine) inputReady(c Coord, d Direction) bool {
	if d == DirNone {
		return false
	}
	src := c.Add(d.Vector())
	srcCell := e.grid.GetCell(src)
	return srcCell != nil && srcCell.Occupied && srcCell.BeltLike() &&
		srcCell.HasOutput(d.Opposite())
}

// tryPull attempts to draw an item from the cell's configured input
// direction(s). Belts pull their single input once; merge junctions arbitrate
// ready inputs round-robin starting at Alt mod n, guaranteeing no
// permanently-starved input under contention.
func (e *Engine) tryPull(c Coord, cell *Cell) bool {
	inputs := cell.InputDirs()
	switch len(inputs) {
	case 0:
		return false
	case 1:
		return e.pullFrom(c, cell, inputs[0])
	}

	ready := 0
	for _, d := range inputs {
		if e.inputReady(c, d) {
			ready++
		}
	}
	if ready == 0 {
		return false
	}
	if ready == 1 {
		for _, d := range inputs {
			if e.inputReady(c, d) && e.pullFrom(c, cell, d) {
				return true
			}
		}
		return false
	}

	n := len(inputs)
	start := cell.Alt % n
	for i := 0; i < n; i++ {
		idx := (start + i) % n
		if !e.inputReady(c, inputs[idx]) {
			continue
		}
		if e.pullFrom(c, cell, inputs[idx]) {
			// Advance past the serviced input so contention rotates fairly.
			cell.Alt = idx + 1
			return true
		}
	}
	return false
}

// pullFrom relocates the item from the neighbor in direction d into the empty
// cell at c. Refuses sources whose item already advanced this step. A splitter
// source releases its item only along its counter-selected leg (or the other
// leg when that one's destination is blocked), and its counter advances on the
// pull just as it does on dispatch, so legs alternate no matter which side of
// the move initiated it.
func (e *Engine) pullFrom(c Coord, cell *Cell, d Direction) bool {
	if d == DirNone {
		return false
	}
	src := c.Add(d.Vector())
	if !e.grid.InBounds(src) {
		return false
	}
	srcCell := e.grid.GetCell(src)
	if srcCell == nil || !srcCell.Occupied || !srcCell.BeltLike() {
		return false
	}
	if !srcCell.HasOutput(d.Opposite()) {
		return false
	}
	if srcCell.IsSplitter() && !e.splitterLegOpen(src, srcCell, d.Opposite()) {
		return false
	}
	if e.sched.MovedThisStep(src) {
		return false
	}
	if _, mid := e.pendingConsume[srcCell.Item.ID]; mid {
		return false
	}

	it := srcCell.ClearItem()
	cell.SetItem(it)
	e.sched.MarkMoved(c)
	if srcCell.IsSplitter() {
		srcCell.Alt++
	}
	e.anim.EnqueueMove(it, e.grid.CellToWorld(src), e.grid.CellToWorld(c))
	e.metrics.Moves++
	e.metrics.Pulls++
	logrus.Debugf("pulled item %d %v -> %v", it.ID, src, c)
	return true
}

// splitterLegOpen reports whether a splitter may release its item along leg:
// either the alternation counter currently selects that leg, or it selects the
// other leg whose destination cannot receive right now.
func (e *Engine) splitterLegOpen(c Coord, cell *Cell, leg Direction) bool {
	outs := cell.OutputDirs()
	if len(outs) != 2 {
		return true
	}
	primary := outs[cell.Alt%2]
	if leg == primary {
		return true
	}
	return !e.destOpen(c, primary)
}

// dispatch moves the occupied cell's item toward its output. Splitters
// alternate outputs by the cell counter, falling back to the other leg when
// the primary destination is blocked.
func (e *Engine) dispatch(c Coord, cell *Cell) (Coord, bool) {
	dir, ok := e.chooseOutput(c, cell)
	if !ok {
		// No cardinal output resolvable; retry next step.
		return c, true
	}

	dst := c.Add(dir.Vector())

	// A machine destination consumes the step attempt regardless of the
	// acceptance outcome, keeping timing deterministic.
	if m, found := e.machines[dst]; found {
		e.handoff(c, cell, m, dir)
		return c, true
	}

	dstCell := e.grid.GetCell(dst)
	if !e.grid.InBounds(dst) || dstCell == nil || !dstCell.BeltLike() || dstCell.Occupied {
		e.metrics.Blocked++
		return c, true
	}

	// Merge junctions take items only via their own arbitrated pull; waking
	// the junction here keeps round-robin fairness independent of cell
	// evaluation order.
	if len(dstCell.InputDirs()) >= 2 {
		e.sched.RegisterCell(dst)
		return c, true
	}

	it := cell.ClearItem()
	dstCell.SetItem(it)
	e.sched.MarkMoved(dst)
	e.anim.EnqueueMove(it, e.grid.CellToWorld(c), e.grid.CellToWorld(dst))
	e.metrics.Moves++
	if cell.IsSplitter() {
		cell.Alt++
	}
	logrus.Debugf("moved item %d %v -> %v", it.ID, c, dst)
	return dst, true
}

// chooseOutput resolves the output direction for an occupied cell. Splitters
// pick the counter-selected leg, or the other leg when the primary
// destination is blocked. Returns false when no output is configured.
func (e *Engine) chooseOutput(c Coord, cell *Cell) (Direction, bool) {
	outs := cell.OutputDirs()
	switch len(outs) {
	case 0:
		return DirNone, false
	case 1:
		if outs[0] == DirNone {
			return DirNone, false
		}
		return outs[0], true
	}

	alt := cell.Alt % 2
	primary, secondary := outs[alt], outs[1-alt]
	if e.destOpen(c, primary) {
		return primary, true
	}
	if e.destOpen(c, secondary) {
		return secondary, true
	}
	// Both legs blocked: report the primary and let dispatch record the block.
	return primary, true
}

// destOpen reports whether the destination one cell along d can currently
// receive an item (a registered machine counts as open; acceptance is decided
// during handoff).
func (e *Engine) destOpen(c Coord, d Direction) bool {
	dst := c.Add(d.Vector())
	if !e.grid.InBounds(dst) {
		return false
	}
	if _, found := e.machines[dst]; found {
		return true
	}
	dstCell := e.grid.GetCell(dst)
	return dstCell != nil && dstCell.BeltLike() && !dstCell.Occupied
}

// handoff runs the machine handoff protocol for the item at c. The approach
// vector is the reverse of the output direction used to reach the machine. A
// machine that panics during either callback is treated as blocking; the item
// stays on the belt.
func (e *Engine) handoff(c Coord, cell *Cell, m Machine, out Direction) {
	approach := out.Opposite()
	it := cell.Item

	if !e.safeCanAccept(m, approach) || !e.safeTryStart(m, it) {
		e.metrics.Blocked++
		return
	}

	if vi, ok := m.(VisualIntake); ok && vi.AnimatesIntake() {
		// Defer clearing the source until the view visually arrives.
		e.anim.EnqueueMove(it, e.grid.CellToWorld(c), e.grid.CellToWorld(m.Cell()))
		e.pendingConsume[it.ID] = c
	} else {
		cell.ClearItem()
		e.anim.Remove(it.ID)
		e.metrics.Consumed++
	}
	if cell.IsSplitter() {
		cell.Alt++
	}
	logrus.Debugf("item %d handed to machine at %v", it.ID, m.Cell())
}
