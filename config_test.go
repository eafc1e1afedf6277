package qrel

import (
	"errors"
	"strings"
	"testing"

	. "github.com/smartystreets/goconvey/convey"
	"github.com/spf13/viper"
)

func TestConfig(t *testing.T) {
	Convey("Given the default config", t, func() {
		cfg := NewConfig()

		Convey("It should carry the documented defaults", func() {
			So(cfg.Simulations, ShouldEqual, 100)
			So(cfg.Shots, ShouldEqual, 8192)
			So(cfg.Confidence, ShouldEqual, 0.95)
			So(cfg.RenderCircuit, ShouldBeTrue)
			So(cfg.Interval, ShouldEqual, IntervalNormal)
			So(cfg.Construction, ShouldEqual, ConstructionCombination)
			So(cfg.Validate(), ShouldBeNil)
		})

		Convey("Options should override single fields", func() {
			for _, opt := range []Option{
				WithSimulations(5), WithShots(64), WithConfidence(0.9), WithRender(false),
				WithInterval(IntervalStudentT), WithConstruction(ConstructionPattern),
				WithWorkers(3), WithSeed(11),
			} {
				opt(cfg)
			}

			So(cfg, ShouldResemble, &Config{
				Simulations:   5,
				Shots:         64,
				Confidence:    0.9,
				RenderCircuit: false,
				Interval:      IntervalStudentT,
				Construction:  ConstructionPattern,
				Workers:       3,
				Seed:          11,
			})
		})

		Convey("Validate should reject out of range values", func() {
			for _, opt := range []Option{
				WithSimulations(0), WithShots(0), WithConfidence(1), WithConfidence(0),
				WithInterval(IntervalMethod(5)), WithConstruction(Construction(5)),
			} {
				bad := NewConfig()
				opt(bad)
				So(errors.Is(bad.Validate(), ErrInvalidParameter), ShouldBeTrue)
			}
		})
	})

	Convey("Given a viper instance", t, func() {
		v := viper.New()

		Convey("Unset keys should keep the defaults", func() {
			cfg, err := LoadConfig(v)
			So(err, ShouldBeNil)
			So(cfg, ShouldResemble, NewConfig())
		})

		Convey("A YAML document should override them", func() {
			v.SetConfigType("yaml")
			So(v.ReadConfig(strings.NewReader(strings.Join([]string{
				"simulations: 20",
				"shots: 1024",
				"confidence: 0.99",
				"interval: student-t",
				"construction: pattern",
				"workers: 4",
				"seed: 99",
				"render: false",
			}, "\n"))), ShouldBeNil)

			cfg, err := LoadConfig(v)
			So(err, ShouldBeNil)
			So(cfg.Simulations, ShouldEqual, 20)
			So(cfg.Shots, ShouldEqual, 1024)
			So(cfg.Confidence, ShouldEqual, 0.99)
			So(cfg.Interval, ShouldEqual, IntervalStudentT)
			So(cfg.Construction, ShouldEqual, ConstructionPattern)
			So(cfg.Workers, ShouldEqual, 4)
			So(cfg.Seed, ShouldEqual, 99)
			So(cfg.RenderCircuit, ShouldBeFalse)
		})

		Convey("Invalid values should be reported, not clamped", func() {
			v.Set("simulations", 0)
			_, err := LoadConfig(v)
			So(errors.Is(err, ErrInvalidParameter), ShouldBeTrue)

			v.Set("simulations", 10)
			v.Set("interval", "bootstrap")
			_, err = LoadConfig(v)
			So(errors.Is(err, ErrInvalidParameter), ShouldBeTrue)
		})
	})
}
