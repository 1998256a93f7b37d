package sim

// AnimationConfig groups visual interpolation parameters for the Animator.
type AnimationConfig struct {
	CellsPerSecond    float64 // visual belt speed in cells per second (must be > 0)
	MinSegmentSeconds float64 // floor on a single segment duration to avoid imperceptible snaps
	Buckets           int     // round-robin animation buckets; 1 = advance every item every frame
	SyncToTick        bool    // clamp segment duration to the logical tick interval
}

// EngineConfig groups engine parameters for NewEngine.
type EngineConfig struct {
	Animation   AnimationConfig
	TickSeconds float64 // logical tick interval in seconds; used when Animation.SyncToTick is set
}

// DefaultEngineConfig returns the engine defaults: two cells per second visual
// speed, a 50ms segment floor, no bucketing, no tick sync.
func DefaultEngineConfig() EngineConfig {
	return EngineConfig{
		Animation: AnimationConfig{
			CellsPerSecond:    2.0,
			MinSegmentSeconds: 0.05,
			Buckets:           1,
		},
		TickSeconds: 0.25,
	}
}
