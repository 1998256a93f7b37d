package sim

import "testing"

// newTestEngine builds an engine over a 1.0-cell-size grid with 1 cell/sec
// visual speed, so adjacent-cell segments last exactly one second.
func newTestEngine(min, max Coord) (*Engine, *SparseGrid) {
	grid := NewSparseGrid(1, min, max)
	cfg := DefaultEngineConfig()
	cfg.Animation.CellsPerSecond = 1
	cfg.Animation.MinSegmentSeconds = 0
	cfg.Animation.SyncToTick = false
	cfg.TickSeconds = 1
	return NewEngine(grid, cfg), grid
}

func addBelt(g *SparseGrid, e *Engine, x, y int, in, out Direction) *Cell {
	c := Coord{X: x, Y: y}
	cell := g.EnsureCell(c)
	cell.Kind = CellBelt
	if in != DirNone {
		cell.Inputs = []Direction{in}
	}
	if out != DirNone {
		cell.Outputs = []Direction{out}
	}
	e.RegisterCell(c)
	return cell
}

func addJunction(g *SparseGrid, e *Engine, x, y int, inputs, outputs []Direction) *Cell {
	c := Coord{X: x, Y: y}
	cell := g.EnsureCell(c)
	cell.Kind = CellJunction
	cell.Inputs = inputs
	cell.Outputs = outputs
	e.RegisterCell(c)
	return cell
}

// stubMachine is a configurable Machine collaborator for handoff tests.
type stubMachine struct {
	pos          Coord
	acceptFrom   map[Direction]bool // nil = accept all
	refuseStart  bool
	panicAccept  bool
	panicProcess bool
	visual       bool
	received     []*Item
}

func (m *stubMachine) Cell() Coord { return m.pos }

func (m *stubMachine) CanAcceptFrom(approach Direction) bool {
	if m.panicAccept {
		panic("acceptance probe failed")
	}
	if m.acceptFrom == nil {
		return true
	}
	return m.acceptFrom[approach]
}

func (m *stubMachine) TryStartProcess(item *Item) bool {
	if m.panicProcess {
		panic("process start failed")
	}
	if m.refuseStart {
		return false
	}
	m.received = append(m.received, item)
	return true
}

func (m *stubMachine) AnimatesIntake() bool { return m.visual }

// checkSingleOccupancy asserts the occupancy invariant over the whole grid:
// occupied == (item != nil), and no two cells share an item.
func checkSingleOccupancy(t *testing.T, g *SparseGrid) {
	t.Helper()
	seen := make(map[int64]Coord)
	for _, c := range g.OccupiedCells() {
		cell := g.GetCell(c)
		if cell.Item == nil {
			t.Fatalf("cell %v occupied with nil item", c)
		}
		if prev, dup := seen[cell.Item.ID]; dup {
			t.Fatalf("item %d present in both %v and %v", cell.Item.ID, prev, c)
		}
		seen[cell.Item.ID] = c
	}
}

// itemAt returns the item occupying c, or nil.
func itemAt(g *SparseGrid, c Coord) *Item {
	cell := g.GetCell(c)
	if cell == nil {
		return nil
	}
	return cell.Item
}
