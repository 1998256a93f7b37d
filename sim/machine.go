package sim

import (
	"github.com/sirupsen/logrus"
)

// Machine is the handoff collaborator for cells occupied by a processing
// machine rather than another belt cell. Implementations live outside the
// engine (presses, smelters, storage) and are registered by coordinate.
type Machine interface {
	// Cell returns the grid coordinate the machine occupies.
	Cell() Coord
	// CanAcceptFrom reports whether the machine accepts items arriving from
	// the given approach direction (the reverse of the belt's output direction).
	CanAcceptFrom(approach Direction) bool
	// TryStartProcess hands the item to the machine. Returning false leaves
	// the item on the belt.
	TryStartProcess(item *Item) bool
}

// VisualIntake marks machines that display item motion into themselves. For
// these, the item's source cell is cleared only once its visual segment
// completes, so the item view does not vanish before it visually arrives.
type VisualIntake interface {
	AnimatesIntake() bool
}

// safeCanAccept queries machine acceptance, treating a panicking collaborator
// as blocking rather than dropping the item.
func (e *Engine) safeCanAccept(m Machine, approach Direction) (ok bool) {
	defer func() {
		if r := recover(); r != nil {
			logrus.Warnf("machine at %v panicked in CanAcceptFrom: %v", m.Cell(), r)
			e.metrics.MachineFaults++
			ok = false
		}
	}()
	return m.CanAcceptFrom(approach)
}

// safeTryStart starts processing, treating a panicking collaborator as
// blocking rather than dropping the item.
func (e *Engine) safeTryStart(m Machine, it *Item) (ok bool) {
	defer func() {
		if r := recover(); r != nil {
			logrus.Warnf("machine at %v panicked in TryStartProcess: %v", m.Cell(), r)
			e.metrics.MachineFaults++
			ok = false
		}
	}()
	return m.TryStartProcess(it)
}
