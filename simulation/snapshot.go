package simulation

import "neuroarena/arena"

// Snapshot is an immutable copy of what views and sinks need from a running
// arena: geometry, the current object landscape, and the recent trajectory.
// It is taken inside the simulation loop (the only goroutine mutating the
// arena), so downstream consumers can hold it without coordination; the
// history tail is cloned because the arena rewrites its backing store on
// reset.
type Snapshot struct {
	Config  arena.Config
	Walls   []arena.Wall
	Grid    *arena.StateGrid
	Objects arena.ObjectTable
	History []arena.Transition
	// Position is the agent's continuous position at snapshot time.
	Position arena.Vec2
	Episode  int
	Step     int
}

// TakeSnapshot captures the arena mid-run. window bounds the history tail;
// <= 0 carries the entire episode so far.
func TakeSnapshot(env *arena.Arena, episode, window int) Snapshot {
	history := env.History()
	if window > 0 && len(history) > window {
		history = history[len(history)-window:]
	}

	return Snapshot{
		Config:   env.Config(),
		Walls:    env.Walls(),
		Grid:     env.Grid(),
		Objects:  env.Objects(),
		History:  append([]arena.Transition(nil), history...),
		Position: env.State().Position,
		Episode:  episode,
		Step:     env.Steps(),
	}
}
