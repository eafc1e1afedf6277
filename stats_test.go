package qrel

import (
	"errors"
	"math"
	"testing"

	. "github.com/smartystreets/goconvey/convey"
)

func TestAnalyze(t *testing.T) {
	Convey("Given three estimates around 0.5", t, func() {
		estimates := []float64{0.4, 0.5, 0.6}

		Convey("The normal interval should use z ≈ 1.96", func() {
			s, err := Analyze(estimates, 0.45, 0.95, IntervalNormal)
			So(err, ShouldBeNil)

			So(s.Runs, ShouldEqual, 3)
			So(s.Mean, ShouldAlmostEqual, 0.5, 1e-12)
			So(s.StdDev, ShouldAlmostEqual, 0.1, 1e-12)
			So(s.StdErr, ShouldAlmostEqual, 0.1/math.Sqrt(3), 1e-12)
			So(s.Critical, ShouldAlmostEqual, 1.959964, 1e-6)
			So(s.CILower, ShouldAlmostEqual, 0.5-1.959964*0.1/math.Sqrt(3), 1e-6)
			So(s.CIUpper, ShouldAlmostEqual, 0.5+1.959964*0.1/math.Sqrt(3), 1e-6)
			So(s.AbsoluteError, ShouldAlmostEqual, 0.05, 1e-12)
			So(s.RelativeError, ShouldAlmostEqual, 0.05/0.45, 1e-12)
			So(s.RelativeErrorDefined, ShouldBeTrue)
			So(s.Degenerate, ShouldBeFalse)
			So(s.Contains(0.45), ShouldBeTrue)
		})

		Convey("Student's t should widen the interval for few runs", func() {
			s, err := Analyze(estimates, 0.45, 0.95, IntervalStudentT)
			So(err, ShouldBeNil)
			So(s.Critical, ShouldAlmostEqual, 4.302653, 1e-5)

			z, _ := Analyze(estimates, 0.45, 0.95, IntervalNormal)
			So(s.CIUpper-s.CILower, ShouldBeGreaterThan, z.CIUpper-z.CILower)
		})

		Convey("A higher confidence level should widen the interval", func() {
			s95, _ := Analyze(estimates, 0.5, 0.95, IntervalNormal)
			s99, _ := Analyze(estimates, 0.5, 0.99, IntervalNormal)
			So(s99.Critical, ShouldAlmostEqual, 2.575829, 1e-6)
			So(s99.CIUpper, ShouldBeGreaterThan, s95.CIUpper)
		})
	})

	Convey("Given a single estimate", t, func() {
		s, err := Analyze([]float64{0.7}, 0.75, 0.95, IntervalStudentT)
		So(err, ShouldBeNil)

		Convey("The interval should collapse onto the mean", func() {
			So(s.Degenerate, ShouldBeTrue)
			So(s.StdDev, ShouldEqual, 0)
			So(s.StdErr, ShouldEqual, 0)
			So(s.CILower, ShouldEqual, 0.7)
			So(s.CIUpper, ShouldEqual, 0.7)
			So(s.AbsoluteError, ShouldAlmostEqual, 0.05, 1e-12)
		})
	})

	Convey("Given a classical value of zero", t, func() {
		s, err := Analyze([]float64{0.01, 0.02}, 0, 0.95, IntervalNormal)
		So(err, ShouldBeNil)

		Convey("Relative error should be flagged as undefined", func() {
			So(s.RelativeErrorDefined, ShouldBeFalse)
			So(math.IsNaN(s.RelativeError), ShouldBeTrue)
			So(s.AbsoluteError, ShouldAlmostEqual, 0.015, 1e-12)
		})
	})

	Convey("Given invalid input", t, func() {
		_, err := Analyze(nil, 0.5, 0.95, IntervalNormal)
		So(errors.Is(err, ErrInvalidParameter), ShouldBeTrue)

		for _, c := range []float64{0, 1, -0.5, 1.2, math.NaN()} {
			_, err = Analyze([]float64{0.5, 0.5}, 0.5, c, IntervalNormal)
			So(errors.Is(err, ErrInvalidParameter), ShouldBeTrue)
		}

		_, err = Analyze([]float64{0.5, 0.5}, 0.5, 0.95, IntervalMethod(7))
		So(errors.Is(err, ErrInvalidParameter), ShouldBeTrue)
	})
}

func TestParseIntervalMethod(t *testing.T) {
	Convey("Given interval method names", t, func() {
		m, err := ParseIntervalMethod("student-t")
		So(err, ShouldBeNil)
		So(m, ShouldEqual, IntervalStudentT)

		m, err = ParseIntervalMethod("normal")
		So(err, ShouldBeNil)
		So(m, ShouldEqual, IntervalNormal)

		_, err = ParseIntervalMethod("bootstrap")
		So(errors.Is(err, ErrInvalidParameter), ShouldBeTrue)
	})
}
