/*
Neuroarena simulates spatial-navigation experiments: a continuous 2D room
discretized into a state grid with a one-hot object landscape, a random-walk
agent stepped through it, and a live browser view of the trajectory and
landscape (pushed over websocket as the run progresses). Episodes can be
recorded to sqlite for offline analysis.
*/

package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"math/rand"

	"neuroarena/agents"
	"neuroarena/arena"
	"neuroarena/recorder"
	"neuroarena/server"
	"neuroarena/simulation"
)

var (
	configPath *string
	recordPath *string
	host       *string
	port       *string
	addr       string
)

func init() {
	configPath = flag.String("config", "./config.yaml", "path to the run config")
	recordPath = flag.String("record", "", "sqlite file to record episodes to; empty disables recording")
	host = flag.String("host", "", "the host ip")
	port = flag.String("port", "8080", "the host port")
	flag.Parse()
	addr = *host + ":" + *port
}

func runApp() (err error) {
	var cfg *simulation.RunConfig
	if cfg, err = simulation.FromYaml(*configPath); err != nil {
		return
	}

	appCtx, appCancel := context.WithCancel(context.Background())
	defer appCancel()

	runCtx, runCancel, err := cfg.WithRunDeadline(appCtx)
	if err != nil {
		return
	}
	defer runCancel()

	rng := rand.New(rand.NewSource(cfg.Seed))
	var env *arena.Arena
	if env, err = arena.NewDiscreteObjects(cfg.Arena.ArenaConfig(), rng); err != nil {
		return
	}
	walker := agents.NewRandomWalker(cfg.Agent.StepScale, rng)
	tel := simulation.NewTelemetry()

	var sink simulation.EpisodeSink
	if *recordPath != "" {
		var rec *recorder.Recorder
		if rec, err = recorder.Open(*recordPath); err != nil {
			return
		}
		defer rec.Close()
		sink = rec
	}

	// The initial reset gives the server a frame to render before the run
	// produces its first snapshot.
	env.Reset(cfg.RandomStart, nil)
	snapshots := make(chan simulation.Snapshot)
	initial := simulation.TakeSnapshot(env, 0, cfg.HistoryWindow)

	// When called during run progress, this blocks and sends the current
	// arena state to the server to update views.
	exportSnapshot := func(ctx context.Context, episode, totalSteps int) {
		select {
		case snapshots <- simulation.TakeSnapshot(env, episode, cfg.HistoryWindow):
		case <-ctx.Done():
		}
	}

	go simulation.Run(runCtx, env, walker, cfg, tel, sink, exportSnapshot)

	var srv *server.Server
	if srv, err = server.NewServer(appCtx, addr, initial, snapshots, tel); err != nil {
		return
	}

	err = srv.Serve()
	return
}

func main() {
	if err := runApp(); err != nil {
		log.Fatal(fmt.Errorf("neuroarena: %w", err))
	}
}
