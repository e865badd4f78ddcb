package arena

import (
	"fmt"
	"math/rand"
)

// Batch drives N independent arenas in lockstep, the shape batched agents
// expect: one reset or step call fans out to every instance and the results
// come back as slices indexed by instance. Each arena keeps its own RNG
// (derived from a base seed) and its own state and history, so this is a
// plain vectorized loop over independent instances, not concurrency.
type Batch struct {
	arenas []*Arena
}

// NewBatch builds n arenas from one config. Instance i seeds its RNG with
// seed+i, so a batch is reproducible from (cfg, seed) while instances stay
// decorrelated.
func NewBatch(n int, cfg Config, reward RewardFunc, seed int64) (*Batch, error) {
	if n <= 0 {
		return nil, fmt.Errorf("batch: size %d must be positive", n)
	}
	arenas := make([]*Arena, n)
	for i := range arenas {
		rng := rand.New(rand.NewSource(seed + int64(i)))
		a, err := New(cfg, nil, reward, rng)
		if err != nil {
			return nil, err
		}
		arenas[i] = a
	}
	return &Batch{arenas: arenas}, nil
}

// Len is the number of instances.
func (b *Batch) Len() int {
	return len(b.arenas)
}

// Arenas exposes the underlying instances, e.g. for per-instance history.
func (b *Batch) Arenas() []*Arena {
	return b.arenas
}

// Reset resets every instance with the same arguments.
func (b *Batch) Reset(randomState bool, custom *Vec2) ([]Observation, []AgentState) {
	obs := make([]Observation, len(b.arenas))
	states := make([]AgentState, len(b.arenas))
	for i, a := range b.arenas {
		obs[i], states[i] = a.Reset(randomState, custom)
	}
	return obs, states
}

// Step applies actions[i] to instance i. The action slice length must match
// the batch size.
func (b *Batch) Step(actions []Vec2, normalizeStep bool) ([]Observation, []AgentState, error) {
	if len(actions) != len(b.arenas) {
		return nil, nil, fmt.Errorf("batch: %d actions for %d arenas", len(actions), len(b.arenas))
	}
	obs := make([]Observation, len(b.arenas))
	states := make([]AgentState, len(b.arenas))
	for i, a := range b.arenas {
		obs[i], states[i] = a.Step(actions[i], normalizeStep)
	}
	return obs, states, nil
}
