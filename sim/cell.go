package sim

import "fmt"

// CellKind classifies a grid cell for routing purposes.
type CellKind int

const (
	CellEmpty CellKind = iota
	CellBelt
	CellJunction
	CellMachine
)

func (k CellKind) String() string {
	switch k {
	case CellBelt:
		return "belt"
	case CellJunction:
		return "junction"
	case CellMachine:
		return "machine"
	default:
		return "empty"
	}
}

// Conveyor is a legacy single-direction belt segment. It backs a cell without
// explicit input/output configuration: items enter from behind and leave along
// Dir.
type Conveyor struct {
	Pos Coord
	Dir Direction
}

// Cell is the per-cell routing state. At most one item occupies a cell at any
// time; Occupied is always equal to (Item != nil).
type Cell struct {
	Kind     CellKind
	Inputs   []Direction // configured input directions (at most 3)
	Outputs  []Direction // configured output directions (at most 2)
	Conveyor *Conveyor   // optional legacy single-direction conveyor
	Alt      int         // alternation counter for merge/splitter fairness
	Occupied bool
	Item     *Item
}

// BeltLike reports whether the cell can hold and forward an item.
func (c *Cell) BeltLike() bool {
	return c.Kind == CellBelt || c.Kind == CellJunction || c.Conveyor != nil
}

// InputDirs returns the directions items may be pulled from. A conveyor-backed
// cell without explicit configuration feeds from behind its travel direction.
func (c *Cell) InputDirs() []Direction {
	if len(c.Inputs) > 0 {
		return c.Inputs
	}
	if c.Conveyor != nil && c.Conveyor.Dir != DirNone {
		return []Direction{c.Conveyor.Dir.Opposite()}
	}
	return nil
}

// OutputDirs returns the directions the cell dispatches toward.
func (c *Cell) OutputDirs() []Direction {
	if len(c.Outputs) > 0 {
		return c.Outputs
	}
	if c.Conveyor != nil && c.Conveyor.Dir != DirNone {
		return []Direction{c.Conveyor.Dir}
	}
	return nil
}

// HasOutput reports whether d is one of the cell's output directions.
func (c *Cell) HasOutput(d Direction) bool {
	if d == DirNone {
		return false
	}
	for _, o := range c.OutputDirs() {
		if o == d {
			return true
		}
	}
	return false
}

// IsSplitter reports whether the cell is a two-output, single-input junction
// whose alternation counter flips after each successful dispatch.
func (c *Cell) IsSplitter() bool {
	return len(c.OutputDirs()) == 2 && len(c.InputDirs()) <= 1
}

// SetItem places an item into the cell. Placing into an occupied cell is a
// programmer error.
func (c *Cell) SetItem(it *Item) {
	if c.Occupied || c.Item != nil {
		panic(fmt.Sprintf("cell already occupied by item %d", c.Item.ID))
	}
	if it == nil {
		panic("cannot place nil item")
	}
	c.Item = it
	c.Occupied = true
}

// ClearItem removes and returns the cell's item, or nil if empty.
func (c *Cell) ClearItem() *Item {
	it := c.Item
	c.Item = nil
	c.Occupied = false
	return it
}
