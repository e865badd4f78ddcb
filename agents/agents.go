// agents holds the environment-facing side of the agent contract: something
// that turns the latest observation into the next 2D action. Learning rules
// live with their owners; the arena only ever sees Act.
package agents

import (
	"math/rand"

	"neuroarena/arena"
)

// Agent proposes the next positional increment from the latest observation.
type Agent interface {
	Act(obs arena.Observation) arena.Vec2
}

// RandomWalker emits Gaussian displacement proposals, the standard
// foraging-style exploration policy used to drive arenas when no trained
// policy is under study. Deterministic under a fixed random source.
type RandomWalker struct {
	// Scale is the standard deviation of each displacement component.
	Scale float64
	rng   *rand.Rand
}

func NewRandomWalker(scale float64, rng *rand.Rand) *RandomWalker {
	return &RandomWalker{
		Scale: scale,
		rng:   rng,
	}
}

// Act ignores the observation: a pure random walk.
func (w *RandomWalker) Act(arena.Observation) arena.Vec2 {
	return arena.Vec2{
		X: w.rng.NormFloat64() * w.Scale,
		Y: w.rng.NormFloat64() * w.Scale,
	}
}

// BatchAct maps a batch of observations to one action per instance, the form
// batched arenas consume. Provided on the package rather than the interface
// so any Agent can drive a batch.
func BatchAct(a Agent, obs []arena.Observation) []arena.Vec2 {
	actions := make([]arena.Vec2, len(obs))
	for i, o := range obs {
		actions[i] = a.Act(o)
	}
	return actions
}
