// Tracks engine-wide counters for final reporting and debugging.

package sim

import "fmt"

// Metrics aggregates statistics about a simulation run. Useful for evaluating
// throughput and debugging routing behavior over time.
type Metrics struct {
	Steps         int64 // logical ticks executed (skipped post-resume steps excluded)
	Moves         int64 // successful cell-to-cell item moves (pulls included)
	Pulls         int64 // moves initiated by an empty cell pulling its input
	Spawns        int64 // items handed in by producers
	Consumed      int64 // items accepted and consumed by machines
	Blocked       int64 // dispatch or handoff attempts that could not proceed
	MachineFaults int64 // machine callbacks that panicked and were treated as blocked
}

// Print displays aggregated metrics at the end of a run.
func (m *Metrics) Print() {
	fmt.Println("=== Belt Simulation Metrics ===")
	fmt.Printf("Steps            : %d\n", m.Steps)
	fmt.Printf("Item Moves       : %d\n", m.Moves)
	fmt.Printf("  via Pull       : %d\n", m.Pulls)
	fmt.Printf("Items Spawned    : %d\n", m.Spawns)
	fmt.Printf("Items Consumed   : %d\n", m.Consumed)
	fmt.Printf("Blocked Attempts : %d\n", m.Blocked)
	fmt.Printf("Machine Faults   : %d\n", m.MachineFaults)
	if m.Steps > 0 {
		fmt.Printf("Moves per Step   : %.2f\n", float64(m.Moves)/float64(m.Steps))
	}
}
