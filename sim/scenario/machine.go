package scenario

import "github.com/belt-sim/belt-sim/sim"

// SinkMachine is the reference Machine collaborator used by scenarios: it
// accepts items from configured approach directions up to an optional
// capacity, and can animate its intake.
type SinkMachine struct {
	pos      sim.Coord
	accepts  map[sim.Direction]bool // empty = accept any approach
	capacity int                    // 0 = unlimited
	visual   bool
	received []*sim.Item
}

// NewSinkMachine creates a sink at pos. accepts lists allowed approach
// directions (nil or empty accepts all); capacity 0 means unlimited.
func NewSinkMachine(pos sim.Coord, accepts []sim.Direction, capacity int, visual bool) *SinkMachine {
	set := make(map[sim.Direction]bool, len(accepts))
	for _, d := range accepts {
		set[d] = true
	}
	return &SinkMachine{pos: pos, accepts: set, capacity: capacity, visual: visual}
}

func (m *SinkMachine) Cell() sim.Coord {
	return m.pos
}

func (m *SinkMachine) CanAcceptFrom(approach sim.Direction) bool {
	if m.capacity > 0 && len(m.received) >= m.capacity {
		return false
	}
	if len(m.accepts) == 0 {
		return true
	}
	return m.accepts[approach]
}

func (m *SinkMachine) TryStartProcess(item *sim.Item) bool {
	if m.capacity > 0 && len(m.received) >= m.capacity {
		return false
	}
	m.received = append(m.received, item)
	return true
}

// AnimatesIntake reports whether arriving items should finish their visual
// segment before the source cell clears.
func (m *SinkMachine) AnimatesIntake() bool {
	return m.visual
}

// Received returns the items accepted so far, in arrival order.
func (m *SinkMachine) Received() []*sim.Item {
	return m.received
}
