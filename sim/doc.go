// Package sim provides the core tick-driven belt simulation engine.
//
// # Reading Guide
//
// Start with these three files to understand the simulation kernel:
//   - cell.go: the per-cell state the engine reads and mutates every step
//   - scheduler.go: the active/pending set bookkeeping that bounds per-step cost
//   - routing.go: the per-cell step algorithm (pull, dispatch, destination resolution)
//
// # Architecture
//
// The engine is single-threaded and deterministic within a run. Step() executes
// one logical tick synchronously; RenderTick(dt) advances the decoupled visual
// animation layer once per render frame. Both cadences are driven by an owning
// loop (see sim/scenario for the headless runner).
//
// # Key Interfaces
//
// The extension points are small interfaces held as typed references:
//   - GridSource: sparse cell storage and world<->cell coordinate conversion
//   - Machine: acceptance and processing handoff for non-belt destinations
//   - VisualIntake: optional marker for machines that animate their intake
//
// Concrete collaborators are injected at construction; the engine holds no
// global state.
package sim
