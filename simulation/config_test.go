package simulation

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	. "github.com/smartystreets/goconvey/convey"
)

const testYaml = `
kind: simulation/v1
def:
  arena:
    xLimits: [-5, 5]
    yLimits: [-5, 5]
    stateDensity: 1.0
    nObjects: 45
    agentStepSize: 1.0
  agent:
    stepScale: 0.25
  episodes: 10
  stepsPerEpisode: 250
  normalizeStep: true
  seed: 1234
  runDeadline:
    duration: 90s
`

func writeTestConfig(t *testing.T, contents string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte(contents), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestFromYaml(t *testing.T) {
	Convey("When a full config file is loaded", t, func() {
		cfg, err := FromYaml(writeTestConfig(t, testYaml))
		So(err, ShouldBeNil)

		Convey("The arena section decodes into typed fields", func() {
			So(cfg.Arena.XLimits, ShouldResemble, [2]float64{-5, 5})
			So(cfg.Arena.YLimits, ShouldResemble, [2]float64{-5, 5})
			So(cfg.Arena.NObjects, ShouldEqual, 45)
			So(cfg.Arena.StateDensity, ShouldEqual, 1.0)
			arenaCfg := cfg.Arena.ArenaConfig()
			So(arenaCfg.Validate(), ShouldBeNil)
		})

		Convey("Run parameters decode alongside", func() {
			So(cfg.Episodes, ShouldEqual, 10)
			So(cfg.StepsPerEpisode, ShouldEqual, 250)
			So(cfg.NormalizeStep, ShouldBeTrue)
			So(cfg.Seed, ShouldEqual, 1234)
			So(cfg.Agent.StepScale, ShouldEqual, 0.25)
		})

		Convey("The run deadline bounds a context", func() {
			ctx, cancel, err := cfg.WithRunDeadline(context.Background())
			So(err, ShouldBeNil)
			defer cancel()
			deadline, ok := ctx.Deadline()
			So(ok, ShouldBeTrue)
			So(time.Until(deadline), ShouldBeLessThanOrEqualTo, 90*time.Second)
		})
	})

	Convey("When optional fields are omitted", t, func() {
		minimal := `
kind: simulation/v1
def:
  arena:
    xLimits: [-2, 2]
    yLimits: [-2, 2]
    stateDensity: 2.0
    nObjects: 4
    agentStepSize: 0.5
`
		cfg, err := FromYaml(writeTestConfig(t, minimal))
		So(err, ShouldBeNil)

		Convey("Defaults fill the gaps", func() {
			So(cfg.StepsPerEpisode, ShouldEqual, 1000)
			So(cfg.SnapshotEvery, ShouldEqual, 10)
			So(cfg.HistoryWindow, ShouldEqual, 500)
			So(cfg.Seed, ShouldNotEqual, 0)
			So(cfg.Agent.StepScale, ShouldEqual, 0.1)
		})

		Convey("No deadline yields a plain cancellable context", func() {
			ctx, cancel, err := cfg.WithRunDeadline(context.Background())
			So(err, ShouldBeNil)
			defer cancel()
			_, ok := ctx.Deadline()
			So(ok, ShouldBeFalse)
		})
	})

	Convey("When the deadline is malformed", t, func() {
		bad := `
kind: simulation/v1
def:
  runDeadline:
    duration: ninety-seconds
`
		cfg, err := FromYaml(writeTestConfig(t, bad))
		So(err, ShouldBeNil)
		_, _, err = cfg.WithRunDeadline(context.Background())
		So(err, ShouldNotBeNil)
	})

	Convey("When the file is missing", t, func() {
		_, err := FromYaml(filepath.Join(t.TempDir(), "nope.yaml"))
		So(err, ShouldNotBeNil)
	})
}
