package simulation

import (
	"context"
	"time"

	"neuroarena/arena"

	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"
)

// OuterConfig is the top-level config envelope: a kind selector and an
// untyped definition re-decoded into the concrete config below. The envelope
// leaves room for other run kinds to share one config file format.
type OuterConfig struct {
	Kind string      `mapstructure:"kind"`
	Def  interface{} `mapstructure:"def"`
}

// RunConfig gathers everything a simulation run needs: the arena geometry,
// the agent's step behavior, episode shape, and reproducibility knobs. All
// fields have documented defaults applied by FromYaml; the arena subsection
// is validated at arena construction.
type RunConfig struct {
	Arena ArenaParams `yaml:"arena"`
	Agent AgentParams `yaml:"agent"`

	// Episodes to run; <= 0 means run until the context ends.
	Episodes int `yaml:"episodes"`
	// StepsPerEpisode is the fixed episode length (default 1000).
	StepsPerEpisode int `yaml:"stepsPerEpisode"`
	// NormalizeStep scales every action to the agent step size.
	NormalizeStep bool `yaml:"normalizeStep"`
	// RandomStart samples the reset position uniformly within the room.
	RandomStart bool `yaml:"randomStart"`
	// Seed drives every random source in the run; 0 seeds from the clock.
	Seed int64 `yaml:"seed"`
	// SnapshotEvery is the step period of progress callbacks (default 10).
	SnapshotEvery int `yaml:"snapshotEvery"`
	// HistoryWindow bounds the trajectory tail carried in snapshots
	// (default 500; <= 0 carries the full episode).
	HistoryWindow int `yaml:"historyWindow"`
	// RunDeadline optionally bounds the whole run, e.g. {duration: 2m}.
	RunDeadline map[string]string `yaml:"runDeadline"`
}

// ArenaParams is the yaml-facing shape of arena.Config.
type ArenaParams struct {
	XLimits       [2]float64 `yaml:"xLimits,flow"`
	YLimits       [2]float64 `yaml:"yLimits,flow"`
	StateDensity  float64    `yaml:"stateDensity"`
	NObjects      int        `yaml:"nObjects"`
	AgentStepSize float64    `yaml:"agentStepSize"`
	TimeStepSize  float64    `yaml:"timeStepSize"`
}

// ArenaConfig converts the yaml shape into the arena's own config record.
func (p ArenaParams) ArenaConfig() arena.Config {
	return arena.Config{
		XLimits:       p.XLimits,
		YLimits:       p.YLimits,
		StateDensity:  p.StateDensity,
		NObjects:      p.NObjects,
		AgentStepSize: p.AgentStepSize,
		TimeStepSize:  p.TimeStepSize,
	}
}

type AgentParams struct {
	// StepScale is the standard deviation of the random walker's proposals.
	StepScale float64 `yaml:"stepScale"`
}

// FromYaml loads a RunConfig through viper. The file holds an OuterConfig
// envelope whose def is round-tripped through yaml into the typed config;
// viper's mapstructure decoding stops at interface{}, so the inner document
// is re-marshaled and decoded with the yaml tags directly.
func FromYaml(path string) (*RunConfig, error) {
	vp := viper.New()
	vp.SetConfigFile(path)
	vp.SetConfigType("yaml")
	if err := vp.ReadInConfig(); err != nil {
		return nil, err
	}

	outer := &OuterConfig{}
	if err := vp.Unmarshal(outer); err != nil {
		return nil, err
	}

	spec, err := yaml.Marshal(outer.Def)
	if err != nil {
		return nil, err
	}

	cfg := &RunConfig{}
	if err := yaml.Unmarshal(spec, cfg); err != nil {
		return nil, err
	}

	cfg.applyDefaults()
	return cfg, nil
}

func (cfg *RunConfig) applyDefaults() {
	if cfg.StepsPerEpisode <= 0 {
		cfg.StepsPerEpisode = 1000
	}
	if cfg.SnapshotEvery <= 0 {
		cfg.SnapshotEvery = 10
	}
	if cfg.HistoryWindow == 0 {
		cfg.HistoryWindow = 500
	}
	if cfg.Seed == 0 {
		cfg.Seed = time.Now().UnixNano()
	}
	if cfg.Agent.StepScale == 0 {
		cfg.Agent.StepScale = 0.1
	}
}

// WithRunDeadline returns a context bounded by the configured run deadline,
// if one is specified as a duration.
func (cfg *RunConfig) WithRunDeadline(
	ctx context.Context,
) (context.Context, context.CancelFunc, error) {
	if val, ok := cfg.RunDeadline["duration"]; ok {
		duration, err := time.ParseDuration(val)
		if err != nil {
			return nil, nil, err
		}
		innerCtx, cancel := context.WithTimeout(ctx, duration)
		return innerCtx, cancel, nil
	}
	defaultCtx, cancel := context.WithCancel(ctx)
	return defaultCtx, cancel, nil
}
