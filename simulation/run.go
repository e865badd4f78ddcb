package simulation

import (
	"context"
	"log"

	"neuroarena/agents"
	"neuroarena/arena"
)

// EpisodeSink receives each completed episode's full history, e.g. for
// persistence. Sink failures are logged, never fatal: losing a recording
// should not kill a long run.
type EpisodeSink interface {
	RecordEpisode(episode int, history []arena.Transition) error
}

// ProgressFunc is a synchronous callback invoked from inside the step loop
// every SnapshotEvery steps; it is the seam through which views and other
// observers receive state without touching the arena concurrently. Blocking
// here blocks the run, so implementations should complete quickly or drop.
type ProgressFunc func(ctx context.Context, episode, totalSteps int)

// Run drives the reset/step loop until the configured episode count is
// exhausted or the context ends. Run blocks; callers running a server
// alongside start it on a goroutine.
func Run(
	ctx context.Context,
	env *arena.Arena,
	agent agents.Agent,
	cfg *RunConfig,
	tel *Telemetry,
	sink EpisodeSink,
	progressFn ProgressFunc,
) {
	totalSteps := 0
	for ep := 0; cfg.Episodes <= 0 || ep < cfg.Episodes; ep++ {
		select {
		case <-ctx.Done():
			return
		default:
		}

		obs, _ := env.Reset(cfg.RandomStart, nil)
		tel.Episodes.MustAdd(1)

		for i := 0; i < cfg.StepsPerEpisode; i++ {
			select {
			case <-ctx.Done():
				return
			default:
			}

			action := agent.Act(obs)
			prevPos := obs.Position
			obs, _ = env.Step(action, cfg.NormalizeStep)
			totalSteps++

			tel.Steps.MustAdd(1)
			tel.Distance.MustAdd(obs.Position.Sub(prevPos).Norm())
			history := env.History()
			if history[len(history)-1].CrossedWall {
				tel.WallContacts.MustAdd(1)
			}

			if progressFn != nil && totalSteps%cfg.SnapshotEvery == 0 {
				progressFn(ctx, ep, totalSteps)
			}
		}

		if sink != nil {
			if err := sink.RecordEpisode(ep, env.History()); err != nil {
				log.Printf("episode %d not recorded: %v", ep, err)
			}
		}
	}
}

// RunBatch is the vectorized variant: one agent drives n independent arenas
// in lockstep. Telemetry aggregates across instances; per-instance histories
// stay with their arenas.
func RunBatch(
	ctx context.Context,
	batch *arena.Batch,
	agent agents.Agent,
	cfg *RunConfig,
	tel *Telemetry,
	progressFn ProgressFunc,
) error {
	totalSteps := 0
	for ep := 0; cfg.Episodes <= 0 || ep < cfg.Episodes; ep++ {
		select {
		case <-ctx.Done():
			return nil
		default:
		}

		obs, _ := batch.Reset(cfg.RandomStart, nil)
		tel.Episodes.MustAdd(1)

		for i := 0; i < cfg.StepsPerEpisode; i++ {
			select {
			case <-ctx.Done():
				return nil
			default:
			}

			actions := agents.BatchAct(agent, obs)
			var err error
			if obs, _, err = batch.Step(actions, cfg.NormalizeStep); err != nil {
				return err
			}
			totalSteps++
			tel.Steps.MustAdd(float64(batch.Len()))

			if progressFn != nil && totalSteps%cfg.SnapshotEvery == 0 {
				progressFn(ctx, ep, totalSteps)
			}
		}
	}
	return nil
}
