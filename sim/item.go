package sim

import "sync/atomic"

// Item is a lightweight value travelling across belt cells. The engine never
// allocates items; producers create them and hand them in via TrySpawnItem,
// after which the engine only moves the reference between cells. The visual
// representation is owned by the Animator, keyed by ID.
type Item struct {
	ID   int64  // stable identifier, unique within a run
	Kind string // logical type tag ("ore", "plate", ...)
}

var itemIDCounter atomic.Int64

// NextItemID returns a process-unique item identifier for producers.
func NextItemID() int64 {
	return itemIDCounter.Add(1)
}

// NewItem creates an item of the given kind with a fresh identifier.
func NewItem(kind string) *Item {
	return &Item{ID: NextItemID(), Kind: kind}
}
