package arena

import "math/rand"

// Observation is what the agent perceives after a reset or step.
// The environment is fully observable, so the arena's own state has the same
// shape; AgentState aliases Observation to keep the reset/step signatures
// honest about returning both.
type Observation struct {
	// Index is the discrete state index, or -1 for continuous-only observers.
	Index int
	// Object is the one-hot sensory vector at Index; nil for continuous observers.
	Object []float64
	// Position is the continuous position, the only physically continuous
	// quantity; Index and Object are derived from it.
	Position Vec2
}

// AgentState is the arena-side view of the agent between steps.
type AgentState = Observation

// ObservationStrategy renders agent positions into observations. Strategies
// are selected at arena construction, replacing what would otherwise be a
// hierarchy of environment subclasses.
type ObservationStrategy interface {
	// Reset re-randomizes any per-episode observation structure.
	Reset(rng *rand.Rand)
	// Observe renders the observation for a continuous position.
	Observe(pos Vec2) Observation
}

// ContinuousObserver reports only the continuous position, the plain 2D room
// behavior with no discretization.
type ContinuousObserver struct{}

func (ContinuousObserver) Reset(*rand.Rand) {}

func (ContinuousObserver) Observe(pos Vec2) Observation {
	return Observation{Index: -1, Position: pos}
}

// DiscreteObjectObserver discretizes positions against a StateGrid and reads
// the one-hot object planted at the nearest cell. The object landscape is
// redrawn on every Reset.
type DiscreteObjectObserver struct {
	grid     *StateGrid
	nObjects int
	table    ObjectTable
}

func NewDiscreteObjectObserver(grid *StateGrid, nObjects int) *DiscreteObjectObserver {
	return &DiscreteObjectObserver{
		grid:     grid,
		nObjects: nObjects,
	}
}

func (o *DiscreteObjectObserver) Reset(rng *rand.Rand) {
	o.table = GenerateObjects(rng, o.grid.Len(), o.nObjects)
}

func (o *DiscreteObjectObserver) Observe(pos Vec2) Observation {
	i := o.grid.Locate(pos)
	return Observation{
		Index:    i,
		Object:   o.table[i],
		Position: pos,
	}
}

// Table exposes the current object landscape, e.g. for views. Valid only
// after the first Reset.
func (o *DiscreteObjectObserver) Table() ObjectTable {
	return o.table
}
