package sim

import "testing"

func TestSpawn_ThenImmediateAdvance_LandsAtDestinationSameStep(t *testing.T) {
	// GIVEN a belt at (2,2) whose output points to an empty belt at (3,2)
	e, g := newTestEngine(Coord{}, Coord{X: 5, Y: 5})
	addBelt(g, e, 2, 2, DirNone, DirRight)
	addBelt(g, e, 3, 2, DirLeft, DirRight)
	it := NewItem("ore")

	// WHEN the item spawns and immediately advances
	if !e.TrySpawnItem(Coord{X: 2, Y: 2}, it) {
		t.Fatal("spawn failed")
	}
	if !e.TryAdvanceSpawnedItem(Coord{X: 2, Y: 2}) {
		t.Fatal("immediate advance failed")
	}

	// THEN the item resides at (3,2) without waiting for a tick
	if got := itemAt(g, Coord{X: 3, Y: 2}); got != it {
		t.Errorf("item at (3,2) = %v, want %v", got, it)
	}

	// AND the view sits at (3,2)'s world center the same step, with no
	// residual segment animating toward it
	want := g.CellToWorld(Coord{X: 3, Y: 2})
	if p, ok := e.Animator().Position(it.ID); !ok || !approxEq(p, want) {
		t.Errorf("view = %v, want %v", p, want)
	}
	if e.Animator().Animating(it.ID) {
		t.Error("spawn advance left an animating segment")
	}
}

func TestSpawn_FailsOnOccupiedCell(t *testing.T) {
	// GIVEN an occupied belt cell
	e, g := newTestEngine(Coord{}, Coord{X: 5, Y: 5})
	addBelt(g, e, 0, 0, DirNone, DirRight)
	if !e.TrySpawnItem(Coord{X: 0, Y: 0}, NewItem("first")) {
		t.Fatal("first spawn failed")
	}

	// WHEN a second spawn targets the same cell
	ok := e.TrySpawnItem(Coord{X: 0, Y: 0}, NewItem("second"))

	// THEN it fails and the original item is untouched
	if ok {
		t.Error("spawn into occupied cell succeeded")
	}
	checkSingleOccupancy(t, g)
}

func TestSpawn_FailsOutOfBoundsAndNonBeltLike(t *testing.T) {
	// GIVEN a grid with one belt
	e, g := newTestEngine(Coord{}, Coord{X: 2, Y: 2})
	addBelt(g, e, 0, 0, DirNone, DirRight)
	g.EnsureCell(Coord{X: 1, Y: 1}) // empty, not belt-like

	// WHEN spawns target invalid cells
	// THEN each fails
	if e.TrySpawnItem(Coord{X: 9, Y: 9}, NewItem("x")) {
		t.Error("spawn out of bounds succeeded")
	}
	if e.TrySpawnItem(Coord{X: 1, Y: 1}, NewItem("x")) {
		t.Error("spawn into non-belt-like cell succeeded")
	}
	if e.TrySpawnItem(Coord{X: 2, Y: 2}, NewItem("x")) {
		t.Error("spawn into missing cell succeeded")
	}
	if e.TrySpawnItem(Coord{X: 0, Y: 0}, nil) {
		t.Error("spawn of nil item succeeded")
	}
}

func TestSpawn_ViewStartsAtCellCenter(t *testing.T) {
	// GIVEN a fresh spawn
	e, g := newTestEngine(Coord{}, Coord{X: 5, Y: 5})
	addBelt(g, e, 1, 1, DirNone, DirRight)
	it := NewItem("ore")
	if !e.TrySpawnItem(Coord{X: 1, Y: 1}, it) {
		t.Fatal("spawn failed")
	}

	// THEN the view sits at the spawn cell's world center
	want := g.CellToWorld(Coord{X: 1, Y: 1})
	if p, ok := e.Animator().Position(it.ID); !ok || !approxEq(p, want) {
		t.Errorf("view = %v, want %v", p, want)
	}
}

func TestAdvance_FailsWhenBlockedOrPaused(t *testing.T) {
	// GIVEN a spawned item whose destination is occupied
	e, g := newTestEngine(Coord{}, Coord{X: 5, Y: 5})
	addBelt(g, e, 0, 0, DirNone, DirRight)
	addBelt(g, e, 1, 0, DirLeft, DirRight)
	if !e.TrySpawnItem(Coord{X: 1, Y: 0}, NewItem("blocker")) {
		t.Fatal("blocker spawn failed")
	}
	it := NewItem("ore")
	if !e.TrySpawnItem(Coord{X: 0, Y: 0}, it) {
		t.Fatal("spawn failed")
	}

	// WHEN advance is attempted against the blocked destination
	if e.TryAdvanceSpawnedItem(Coord{X: 0, Y: 0}) {
		t.Error("advance succeeded into an occupied cell")
	}
	if got := itemAt(g, Coord{X: 0, Y: 0}); got != it {
		t.Error("item left origin despite blocked advance")
	}

	// AND WHEN the engine is paused
	e.Pause()
	if e.TryAdvanceSpawnedItem(Coord{X: 0, Y: 0}) {
		t.Error("advance succeeded while paused")
	}
}
