package sim

import (
	"sort"
	"sync"
)

// Scheduler maintains the set of cells due for evaluation each step, keeping
// per-step cost proportional to busy cells rather than grid area.
//
// Registrations arriving during a step (placement, spawn, a machine consuming
// and immediately re-triggering) land in the pending set and merge into the
// active set only at the start of the next step, so a cell can neither be
// evaluated twice nor skip evaluation due to concurrent registration.
//
// The mutex guards the sets against registration calls from outside the
// simulation goroutine (asynchronous placement tooling); evaluation itself is
// single-threaded.
type Scheduler struct {
	mu      sync.Mutex
	pending map[Coord]struct{}
	active  map[Coord]struct{}
	work    []Coord // reusable per-step snapshot buffer
	moved   map[Coord]struct{}
}

// NewScheduler creates an empty scheduler.
func NewScheduler() *Scheduler {
	return &Scheduler{
		pending: make(map[Coord]struct{}),
		active:  make(map[Coord]struct{}),
		moved:   make(map[Coord]struct{}),
	}
}

// RegisterCell schedules a coordinate for evaluation starting next step.
// Idempotent; safe to call redundantly and mid-step.
func (s *Scheduler) RegisterCell(c Coord) {
	s.mu.Lock()
	s.pending[c] = struct{}{}
	s.mu.Unlock()
}

// UnregisterCell removes a coordinate from both pending and active sets.
// Used when a cell or conveyor is destroyed.
func (s *Scheduler) UnregisterCell(c Coord) {
	s.mu.Lock()
	delete(s.pending, c)
	delete(s.active, c)
	s.mu.Unlock()
}

// MarkMoved records that a destination coordinate received a move this step.
func (s *Scheduler) MarkMoved(c Coord) {
	s.mu.Lock()
	s.moved[c] = struct{}{}
	s.mu.Unlock()
}

// MovedThisStep reports whether a coordinate already received a move this step.
func (s *Scheduler) MovedThisStep(c Coord) bool {
	s.mu.Lock()
	_, ok := s.moved[c]
	s.mu.Unlock()
	return ok
}

// Len returns the number of coordinates scheduled (pending plus active).
func (s *Scheduler) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	n := len(s.active)
	for c := range s.pending {
		if _, ok := s.active[c]; !ok {
			n++
		}
	}
	return n
}

// Step runs one scheduling pass: merge pending into active, snapshot active
// into the working buffer, clear active, then evaluate each coordinate that
// has not already received a move this step. Coordinates returned by eval are
// re-added to the active set for the next step.
//
// The snapshot is sorted by (Y, X) so evaluation order is deterministic.
func (s *Scheduler) Step(eval func(Coord) (Coord, bool)) {
	s.mu.Lock()
	for c := range s.pending {
		s.active[c] = struct{}{}
	}
	clear(s.pending)
	s.work = s.work[:0]
	for c := range s.active {
		s.work = append(s.work, c)
	}
	clear(s.active)
	clear(s.moved)
	s.mu.Unlock()

	sort.Slice(s.work, func(i, j int) bool {
		if s.work[i].Y != s.work[j].Y {
			return s.work[i].Y < s.work[j].Y
		}
		return s.work[i].X < s.work[j].X
	})

	for _, c := range s.work {
		if s.MovedThisStep(c) {
			continue
		}
		if next, ok := eval(c); ok {
			s.reactivate(next)
		}
	}
}

func (s *Scheduler) reactivate(c Coord) {
	s.mu.Lock()
	s.active[c] = struct{}{}
	s.mu.Unlock()
}
