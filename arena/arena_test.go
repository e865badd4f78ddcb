package arena

import (
	"math"
	"math/rand"
	"testing"

	. "github.com/smartystreets/goconvey/convey"
)

func testConfig() Config {
	return Config{
		XLimits:       [2]float64{-5, 5},
		YLimits:       [2]float64{-5, 5},
		StateDensity:  1,
		NObjects:      5,
		AgentStepSize: 1,
	}
}

func TestArenaReset(t *testing.T) {
	Convey("Given a discrete-object arena", t, func() {
		env, err := NewDiscreteObjects(testConfig(), rand.New(rand.NewSource(3)))
		So(err, ShouldBeNil)

		Convey("A non-random reset starts the agent at the origin", func() {
			obs, state := env.Reset(false, nil)
			So(obs.Position, ShouldResemble, Vec2{0, 0})
			So(obs.Index, ShouldEqual, env.Grid().Locate(Vec2{0, 0}))
			So(state, ShouldResemble, obs)
			So(env.History(), ShouldBeEmpty)
			So(env.Steps(), ShouldEqual, 0)
		})

		Convey("The initial observation carries a one-hot object", func() {
			obs, _ := env.Reset(false, nil)
			So(len(obs.Object), ShouldEqual, 5)
			So(ObjectID(obs.Object), ShouldBeGreaterThanOrEqualTo, 0)
		})

		Convey("A random reset lands within the room limits", func() {
			for i := 0; i < 50; i++ {
				obs, _ := env.Reset(true, nil)
				So(obs.Position.X, ShouldBeBetweenOrEqual, -5, 5)
				So(obs.Position.Y, ShouldBeBetweenOrEqual, -5, 5)
			}
		})

		Convey("A custom state overrides both start modes", func() {
			start := Vec2{2.5, -1.5}
			obs, _ := env.Reset(true, &start)
			So(obs.Position, ShouldResemble, start)
			So(obs.Index, ShouldEqual, env.Grid().Locate(start))
		})

		Convey("Reset redraws the object landscape", func() {
			env.Reset(false, nil)
			first := env.Objects()
			env.Reset(false, nil)
			So(env.Objects(), ShouldNotResemble, first)
		})

		Convey("Identical seeds reproduce identical initial observations", func() {
			a, _ := NewDiscreteObjects(testConfig(), rand.New(rand.NewSource(11)))
			b, _ := NewDiscreteObjects(testConfig(), rand.New(rand.NewSource(11)))
			obsA, _ := a.Reset(true, nil)
			obsB, _ := b.Reset(true, nil)
			So(obsA, ShouldResemble, obsB)
			So(a.Objects(), ShouldResemble, b.Objects())
		})
	})
}

func TestArenaStep(t *testing.T) {
	Convey("Given a freshly reset arena", t, func() {
		env, _ := NewDiscreteObjects(testConfig(), rand.New(rand.NewSource(5)))
		env.Reset(false, nil)

		Convey("Each step appends exactly one history record", func() {
			k := 25
			for i := 0; i < k; i++ {
				env.Step(Vec2{0.1, 0}, false)
			}
			So(len(env.History()), ShouldEqual, k)
			So(env.Steps(), ShouldEqual, k)
			for i, tr := range env.History() {
				So(tr.Step, ShouldEqual, i)
			}
		})

		Convey("A step updates position, index and observation together", func() {
			obs, state := env.Step(Vec2{1, 1}, false)
			So(obs.Position, ShouldResemble, Vec2{1, 1})
			So(obs.Index, ShouldEqual, env.Grid().Locate(Vec2{1, 1}))
			So(obs.Object, ShouldResemble, env.Objects()[obs.Index])
			So(state, ShouldResemble, obs)
		})

		Convey("Normalized steps travel exactly the agent step size", func() {
			obs, _ := env.Step(Vec2{3, 4}, true)
			So(obs.Position.Norm(), ShouldAlmostEqual, 1, 1e-12)
			// Direction is preserved.
			So(obs.Position.Y/obs.Position.X, ShouldAlmostEqual, 4.0/3.0, 1e-12)
		})

		Convey("A step through a wall is corrected and recorded as crossed", func() {
			obs, _ := env.Step(Vec2{7, 0}, false)
			So(obs.Position.X, ShouldBeLessThanOrEqualTo, 5)
			last := env.History()[len(env.History())-1]
			So(last.CrossedWall, ShouldBeTrue)
		})

		Convey("The previous state is captured before the move", func() {
			env.Step(Vec2{1, 0}, false)
			env.Step(Vec2{0, 1}, false)
			h := env.History()
			So(h[1].State, ShouldResemble, h[0].NextState)
			So(h[1].State.Position, ShouldResemble, Vec2{1, 0})
		})

		Convey("Elapsed time advances by the time step size", func() {
			env.Step(Vec2{0, 0.1}, false)
			env.Step(Vec2{0, 0.1}, false)
			So(env.ElapsedTime(), ShouldEqual, 2)
		})

		Convey("Reset clears history and counters", func() {
			env.Step(Vec2{1, 0}, false)
			env.Reset(false, nil)
			So(env.History(), ShouldBeEmpty)
			So(env.Steps(), ShouldEqual, 0)
			So(env.ElapsedTime(), ShouldEqual, 0)
		})
	})

	Convey("Given a reward function", t, func() {
		rewardEast := func(action Vec2, _ Vec2) float64 {
			if action.X > 0 {
				return 1
			}
			return 0
		}
		env, err := New(testConfig(), nil, rewardEast, rand.New(rand.NewSource(9)))
		So(err, ShouldBeNil)
		env.Reset(false, nil)

		Convey("Rewards are computed from the action and recorded", func() {
			env.Step(Vec2{1, 0}, false)
			env.Step(Vec2{-1, 0}, false)
			h := env.History()
			So(h[0].Reward, ShouldEqual, 1)
			So(h[1].Reward, ShouldEqual, 0)
		})
	})

	Convey("Given a normalizing step with a reward function", t, func() {
		var seen Vec2
		captureReward := func(action Vec2, _ Vec2) float64 {
			seen = action
			return 0
		}
		env, err := New(testConfig(), nil, captureReward, rand.New(rand.NewSource(11)))
		So(err, ShouldBeNil)
		env.Reset(false, nil)

		Convey("The normalized increment is what reward and history see", func() {
			env.Step(Vec2{3, 4}, true)
			last := env.History()[0]
			So(last.Action.Norm(), ShouldAlmostEqual, 1, 1e-12)
			So(last.Action.X, ShouldAlmostEqual, 0.6, 1e-12)
			So(last.Action.Y, ShouldAlmostEqual, 0.8, 1e-12)
			So(seen, ShouldResemble, last.Action)
		})
	})

	Convey("Given a continuous observer", t, func() {
		env, err := New(testConfig(), ContinuousObserver{}, nil, rand.New(rand.NewSource(1)))
		So(err, ShouldBeNil)

		Convey("Observations carry only the position", func() {
			obs, _ := env.Reset(false, nil)
			So(obs.Index, ShouldEqual, -1)
			So(obs.Object, ShouldBeNil)
			So(env.Objects(), ShouldBeNil)
		})
	})
}

func TestConfigValidation(t *testing.T) {
	Convey("When a config field is missing or degenerate", t, func() {
		cases := []struct {
			name   string
			mutate func(*Config)
		}{
			{"descending x limits", func(c *Config) { c.XLimits = [2]float64{5, -5} }},
			{"descending y limits", func(c *Config) { c.YLimits = [2]float64{5, -5} }},
			{"zero density", func(c *Config) { c.StateDensity = 0 }},
			{"zero objects", func(c *Config) { c.NObjects = 0 }},
			{"zero step size", func(c *Config) { c.AgentStepSize = 0 }},
		}
		for _, tc := range cases {
			Convey("Construction fails for "+tc.name, func() {
				cfg := testConfig()
				tc.mutate(&cfg)
				_, err := NewDiscreteObjects(cfg, rand.New(rand.NewSource(0)))
				So(err, ShouldNotBeNil)
			})
		}
	})

	Convey("When the time step size is unset", t, func() {
		Convey("It defaults to one simulated second", func() {
			env, err := NewDiscreteObjects(testConfig(), rand.New(rand.NewSource(0)))
			So(err, ShouldBeNil)
			So(env.Config().TimeStepSize, ShouldEqual, 1)
		})
	})

	Convey("NaN actions propagate silently, not as panics", t, func() {
		env, _ := NewDiscreteObjects(testConfig(), rand.New(rand.NewSource(0)))
		env.Reset(false, nil)
		obs, _ := env.Step(Vec2{math.NaN(), 0}, false)
		So(math.IsNaN(obs.Position.X), ShouldBeTrue)
	})
}
