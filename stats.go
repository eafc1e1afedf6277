package qrel

import (
	"fmt"
	"math"
	"strings"

	"gonum.org/v1/gonum/stat"
	"gonum.org/v1/gonum/stat/distuv"
)

// IntervalMethod selects the critical value used for the confidence interval.
type IntervalMethod int

const (
	// IntervalNormal uses the standard normal quantile (z ≈ 1.96 at 95%).
	IntervalNormal IntervalMethod = iota
	// IntervalStudentT uses Student's t with m-1 degrees of freedom.
	IntervalStudentT
)

func (method IntervalMethod) String() string {
	switch method {
	case IntervalNormal:
		return "normal"
	case IntervalStudentT:
		return "student-t"
	default:
		return fmt.Sprintf("IntervalMethod(%d)", int(method))
	}
}

func ParseIntervalMethod(s string) (IntervalMethod, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "normal", "z":
		return IntervalNormal, nil
	case "student-t", "studentt", "t":
		return IntervalStudentT, nil
	default:
		return 0, invalidf("unknown interval method %q", s)
	}
}

/*
Summary aggregates the per-repetition estimates and compares them with the
exact reliability. With a single repetition the sample deviation is undefined;
StdDev and StdErr are then reported as 0, the interval collapses onto the mean
and Degenerate is set.
*/
type Summary struct {
	Runs                 int
	Mean                 float64
	StdDev               float64
	StdErr               float64
	Critical             float64
	CILower              float64
	CIUpper              float64
	Classical            float64
	AbsoluteError        float64
	RelativeError        float64
	RelativeErrorDefined bool
	Degenerate           bool
}

// Analyze computes the Summary for the estimates at the given confidence level.
func Analyze(estimates []float64, classical, confidence float64, method IntervalMethod) (Summary, error) {
	m := len(estimates)
	if m == 0 {
		return Summary{}, invalidf("no estimates to analyze")
	}
	if math.IsNaN(confidence) || confidence <= 0 || confidence >= 1 {
		return Summary{}, invalidf("confidence level %v outside (0, 1)", confidence)
	}

	summary := Summary{
		Runs:      m,
		Classical: classical,
	}

	if m == 1 {
		summary.Mean = estimates[0]
		summary.Degenerate = true
	} else {
		summary.Mean, summary.StdDev = stat.MeanStdDev(estimates, nil)
		summary.StdErr = stat.StdErr(summary.StdDev, float64(m))

		crit, err := criticalValue(confidence, m, method)
		if err != nil {
			return Summary{}, err
		}
		summary.Critical = crit
	}

	halfWidth := summary.Critical * summary.StdErr
	summary.CILower = summary.Mean - halfWidth
	summary.CIUpper = summary.Mean + halfWidth

	summary.AbsoluteError = math.Abs(summary.Mean - classical)
	if classical != 0 {
		summary.RelativeError = summary.AbsoluteError / classical
		summary.RelativeErrorDefined = true
	} else {
		summary.RelativeError = math.NaN()
	}

	return summary, nil
}

// Contains reports whether value lies inside the confidence interval.
func (s Summary) Contains(value float64) bool {
	return value >= s.CILower && value <= s.CIUpper
}

func criticalValue(confidence float64, m int, method IntervalMethod) (float64, error) {
	p := (1 + confidence) / 2

	switch method {
	case IntervalNormal:
		return distuv.UnitNormal.Quantile(p), nil
	case IntervalStudentT:
		t := distuv.StudentsT{Mu: 0, Sigma: 1, Nu: float64(m - 1)}
		return t.Quantile(p), nil
	default:
		return 0, invalidf("unknown interval method %d", int(method))
	}
}
