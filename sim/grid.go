package sim

import (
	"math"
	"sort"
)

// GridSource is the spatial grid collaborator consumed by the engine: sparse
// cell storage plus world<->cell coordinate conversion. The engine is the only
// component that mutates cell routing state; the grid owns the records.
type GridSource interface {
	// WorldToCell maps a world position to the coordinate of the containing cell.
	WorldToCell(p Vec2) Coord
	// CellToWorld returns the world-space center of a cell.
	CellToWorld(c Coord) Vec2
	// GetCell returns the cell record at c, or nil if none exists.
	GetCell(c Coord) *Cell
	// EnsureCell returns the cell record at c, creating an empty one if needed.
	EnsureCell(c Coord) *Cell
	// InBounds reports whether c lies within the playable area.
	InBounds(c Coord) bool
	// OccupiedCells enumerates all coordinates currently holding an item,
	// in deterministic order. Used for reseeding after a resume.
	OccupiedCells() []Coord
}

// SparseGrid is the default GridSource: a sparse coordinate map over a fixed
// rectangular bound with square cells.
type SparseGrid struct {
	cellSize float64
	min, max Coord // inclusive bounds
	cells    map[Coord]*Cell
}

// NewSparseGrid creates a grid covering min..max (inclusive) with the given
// world-space cell size.
func NewSparseGrid(cellSize float64, min, max Coord) *SparseGrid {
	if cellSize <= 0 {
		cellSize = 1
	}
	return &SparseGrid{
		cellSize: cellSize,
		min:      min,
		max:      max,
		cells:    make(map[Coord]*Cell),
	}
}

// CellSize returns the world-space edge length of one cell.
func (g *SparseGrid) CellSize() float64 {
	return g.cellSize
}

func (g *SparseGrid) WorldToCell(p Vec2) Coord {
	return Coord{
		X: int(math.Floor(p.X / g.cellSize)),
		Y: int(math.Floor(p.Y / g.cellSize)),
	}
}

func (g *SparseGrid) CellToWorld(c Coord) Vec2 {
	return Vec2{
		X: (float64(c.X) + 0.5) * g.cellSize,
		Y: (float64(c.Y) + 0.5) * g.cellSize,
	}
}

func (g *SparseGrid) GetCell(c Coord) *Cell {
	return g.cells[c]
}

func (g *SparseGrid) EnsureCell(c Coord) *Cell {
	if cell, ok := g.cells[c]; ok {
		return cell
	}
	cell := &Cell{Kind: CellEmpty}
	g.cells[c] = cell
	return cell
}

func (g *SparseGrid) InBounds(c Coord) bool {
	return c.X >= g.min.X && c.X <= g.max.X && c.Y >= g.min.Y && c.Y <= g.max.Y
}

// OccupiedCells returns occupied coordinates sorted by (Y, X) so callers
// iterate in a reproducible order.
func (g *SparseGrid) OccupiedCells() []Coord {
	out := make([]Coord, 0)
	for c, cell := range g.cells {
		if cell.Occupied {
			out = append(out, c)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Y != out[j].Y {
			return out[i].Y < out[j].Y
		}
		return out[i].X < out[j].X
	})
	return out
}
