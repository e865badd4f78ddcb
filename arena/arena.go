package arena

import (
	"fmt"
	"math/rand"
)

// Config holds the construction-time parameters of an arena. Required fields
// are validated explicitly at construction rather than surfacing later as
// numeric failures.
type Config struct {
	// XLimits and YLimits bound the room: [min, max] per axis.
	XLimits [2]float64
	YLimits [2]float64
	// StateDensity is the number of discrete cells per unit length.
	StateDensity float64
	// NObjects is the size of the one-hot sensory alphabet.
	NObjects int
	// AgentStepSize scales normalized actions to a fixed per-step distance.
	AgentStepSize float64
	// TimeStepSize is the simulated seconds per step; defaults to 1.
	TimeStepSize float64
	// CustomWalls subdivide the room beyond the four boundary walls.
	CustomWalls []Wall
}

// RoomWidth is the physical x extent.
func (c *Config) RoomWidth() float64 {
	return c.XLimits[1] - c.XLimits[0]
}

// RoomDepth is the physical y extent.
func (c *Config) RoomDepth() float64 {
	return c.YLimits[1] - c.YLimits[0]
}

// Validate rejects malformed configurations up front. Degenerate geometry (a
// room too small for the density to produce any cells) is intentionally not
// rejected; research inputs are trusted, and Locate reports the condition.
func (c *Config) Validate() error {
	if c.XLimits[1] <= c.XLimits[0] {
		return fmt.Errorf("arena config: x limits %v not ascending", c.XLimits)
	}
	if c.YLimits[1] <= c.YLimits[0] {
		return fmt.Errorf("arena config: y limits %v not ascending", c.YLimits)
	}
	if c.StateDensity <= 0 {
		return fmt.Errorf("arena config: state density %v must be positive", c.StateDensity)
	}
	if c.NObjects <= 0 {
		return fmt.Errorf("arena config: n objects %d must be positive", c.NObjects)
	}
	if c.AgentStepSize <= 0 {
		return fmt.Errorf("arena config: agent step size %v must be positive", c.AgentStepSize)
	}
	return nil
}

func (c *Config) applyDefaults() {
	if c.TimeStepSize == 0 {
		c.TimeStepSize = 1
	}
}

// RewardFunc scores a transition from the previous position under the given
// action. The default yields no reward.
type RewardFunc func(action Vec2, prevPos Vec2) float64

// ZeroReward is the default reward function.
func ZeroReward(Vec2, Vec2) float64 { return 0 }

// Transition is one record of the append-only episode history.
type Transition struct {
	Action      Vec2
	State       AgentState
	NextState   AgentState
	Reward      float64
	Step        int
	CrossedWall bool
}

// Arena is the orchestrating state machine: geometry plus grid, composed with
// a pluggable observation strategy and reward function. One arena is driven
// by one caller in lockstep (reset, repeated steps, reset); nothing here is
// safe for concurrent use, and nothing needs to be.
type Arena struct {
	cfg      Config
	walls    []Wall
	grid     *StateGrid
	observer ObservationStrategy
	reward   RewardFunc
	rng      *rand.Rand

	state   AgentState
	history []Transition
	steps   int
	elapsed float64
}

// New builds an arena from a validated config. A nil observer defaults to
// discrete-object observations over the config's grid; a nil reward defaults
// to zero reward. The random source is threaded explicitly so runs are
// reproducible under a fixed seed.
func New(cfg Config, observer ObservationStrategy, reward RewardFunc, rng *rand.Rand) (*Arena, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	cfg.applyDefaults()

	grid := NewStateGrid(cfg.RoomWidth(), cfg.RoomDepth(), cfg.StateDensity)
	if observer == nil {
		observer = NewDiscreteObjectObserver(grid, cfg.NObjects)
	}
	if reward == nil {
		reward = ZeroReward
	}

	walls := BoundaryWalls(cfg.XLimits, cfg.YLimits)
	walls = append(walls, cfg.CustomWalls...)

	return &Arena{
		cfg:      cfg,
		walls:    walls,
		grid:     grid,
		observer: observer,
		reward:   reward,
		rng:      rng,
	}, nil
}

// NewDiscreteObjects is the common construction: discrete one-hot object
// observations and no reward.
func NewDiscreteObjects(cfg Config, rng *rand.Rand) (*Arena, error) {
	return New(cfg, nil, nil, rng)
}

// Reset clears the history and step counters, chooses the initial position,
// redraws the object landscape, and returns the initial observation. The
// initial position is the origin, or uniform-random within the room limits
// when randomState is set; custom overrides both when non-nil.
func (a *Arena) Reset(randomState bool, custom *Vec2) (Observation, AgentState) {
	a.steps = 0
	a.elapsed = 0
	a.history = a.history[:0]

	pos := Vec2{}
	if randomState {
		pos = Vec2{
			X: a.cfg.XLimits[0] + a.rng.Float64()*a.cfg.RoomWidth(),
			Y: a.cfg.YLimits[0] + a.rng.Float64()*a.cfg.RoomDepth(),
		}
	}
	if custom != nil {
		pos = *custom
	}

	a.observer.Reset(a.rng)
	obs := a.observer.Observe(pos)
	a.state = obs
	return obs, a.state
}

// Step runs one tick of the environment dynamics: the action is an (dx, dy)
// increment to position, optionally normalized to a unit vector scaled by the
// agent step size. Normalization rewrites the action for the rest of the
// tick: the reward function and the recorded transition both see the
// normalized increment, not the caller's raw vector. The proposed position is
// validated against every wall, reward is computed from the pre-move
// position, and one transition record is appended to the history. No error paths: malformed inputs (NaN actions and
// the like) propagate silently into the numeric results, as a research
// simulation tolerates.
func (a *Arena) Step(action Vec2, normalizeStep bool) (Observation, AgentState) {
	prev := a.state

	delta := action
	if normalizeStep {
		delta = action.Scale(a.cfg.AgentStepSize / action.Norm())
	}
	proposed := prev.Position.Add(delta)

	corrected, crossed := ValidateMove(a.walls, prev.Position, proposed)
	reward := a.reward(delta, prev.Position)

	obs := a.observer.Observe(corrected)
	a.state = obs
	a.history = append(a.history, Transition{
		Action:      delta,
		State:       prev,
		NextState:   obs,
		Reward:      reward,
		Step:        a.steps,
		CrossedWall: crossed,
	})
	a.steps++
	a.elapsed += a.cfg.TimeStepSize

	return obs, a.state
}

// History returns the transition records appended since the last Reset.
// The returned slice is the arena's own backing store; copy before retaining
// across a Reset.
func (a *Arena) History() []Transition {
	return a.history
}

// State returns the current agent state.
func (a *Arena) State() AgentState {
	return a.state
}

// Steps returns the number of Step calls since the last Reset.
func (a *Arena) Steps() int {
	return a.steps
}

// ElapsedTime returns steps * timeStepSize in simulated seconds.
func (a *Arena) ElapsedTime() float64 {
	return a.elapsed
}

// Walls returns all walls, boundary then custom, in validation order.
func (a *Arena) Walls() []Wall {
	return a.walls
}

// Grid returns the discretization lattice.
func (a *Arena) Grid() *StateGrid {
	return a.grid
}

// Config returns the construction parameters (with defaults applied).
func (a *Arena) Config() Config {
	return a.cfg
}

// Objects returns the current object landscape when the arena observes
// discrete objects, nil otherwise.
func (a *Arena) Objects() ObjectTable {
	if o, ok := a.observer.(*DiscreteObjectObserver); ok {
		return o.Table()
	}
	return nil
}
