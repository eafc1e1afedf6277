package qrel

import (
	"context"
	"io"
	"math"
	"os"
	"time"

	"github.com/google/uuid"
	"github.com/theapemachine/errnie"
)

// Report is the final result of one evaluation.
type Report struct {
	ID                   string    `json:"id"`
	ClassicalReliability float64   `json:"classical_reliability"`
	QuantumMean          float64   `json:"quantum_mean"`
	QuantumStdDev        float64   `json:"quantum_stddev"`
	StandardError        float64   `json:"standard_error"`
	CILower              float64   `json:"ci_lower"`
	CIUpper              float64   `json:"ci_upper"`
	AbsoluteError        float64   `json:"absolute_error"`
	RelativeError        float64   `json:"relative_error"`
	RelativeErrorPercent float64   `json:"relative_error_percent"`
	RelativeErrorDefined bool      `json:"relative_error_defined"`
	Degenerate           bool      `json:"degenerate"`
	NumComponents        int       `json:"num_components"`
	Threshold            int       `json:"threshold"`
	NumSimulations       int       `json:"num_simulations"`
	NumShots             int       `json:"numshots"`
	ConfidenceLevel      float64   `json:"confidence_level"`
	Interval             string    `json:"interval"`
	Construction         string    `json:"construction"`
	Toggles              int       `json:"toggles"`
	Estimates            []float64 `json:"estimates,omitempty"`
	Elapsed              string    `json:"elapsed"`
}

/*
Evaluator wires an Oracle, a Metrics sink and a destination for the rendered
network. The zero value is not usable; build it with NewEvaluator.
*/
type Evaluator struct {
	Oracle  Oracle
	Metrics *Metrics
	Out     io.Writer
}

// NewEvaluator returns an Evaluator around oracle. A nil oracle is replaced
// at evaluation time by a Simulator seeded from the Config.
func NewEvaluator(oracle Oracle) *Evaluator {
	return &Evaluator{
		Oracle:  oracle,
		Metrics: NewMetrics(),
		Out:     os.Stdout,
	}
}

/*
Evaluate estimates the reliability of the k-out-of-n system described by probs
with the default simulator. Defaults: 100 repetitions of 8192 shots, 95%
normal confidence interval, circuit rendered to stdout.
*/
func Evaluate(ctx context.Context, probs []float64, k int, opts ...Option) (*Report, error) {
	cfg := NewConfig()
	for _, opt := range opts {
		opt(cfg)
	}
	return NewEvaluator(nil).Evaluate(ctx, probs, k, cfg)
}

// Evaluate validates everything up front, so a bad parameter never reaches the oracle.
func (ev *Evaluator) Evaluate(ctx context.Context, probs []float64, k int, cfg *Config) (*Report, error) {
	if cfg == nil {
		cfg = NewConfig()
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	sys, err := NewSystem(probs, k)
	if err != nil {
		return nil, err
	}

	startTime := time.Now()

	classical, err := ClassicalReliability(sys.Probabilities(), sys.Threshold)
	if err != nil {
		return nil, err
	}

	net, err := BuildNetwork(sys, cfg.Construction)
	if err != nil {
		return nil, err
	}

	if cfg.RenderCircuit && ev.Out != nil {
		if err := Render(ev.Out, net); err != nil {
			return nil, err
		}
	}

	results, err := NewRunner(ev.oracle(cfg), ev.Metrics, cfg.Workers).Run(ctx, net, cfg.Simulations, cfg.Shots)
	if err != nil {
		return nil, err
	}

	estimates := Estimates(results)
	summary, err := Analyze(estimates, classical, cfg.Confidence, cfg.Interval)
	if err != nil {
		return nil, err
	}

	report := &Report{
		ID:                   uuid.NewString(),
		ClassicalReliability: classical,
		QuantumMean:          summary.Mean,
		QuantumStdDev:        summary.StdDev,
		StandardError:        summary.StdErr,
		CILower:              summary.CILower,
		CIUpper:              summary.CIUpper,
		AbsoluteError:        summary.AbsoluteError,
		RelativeError:        summary.RelativeError,
		RelativeErrorPercent: summary.RelativeError * 100,
		RelativeErrorDefined: summary.RelativeErrorDefined,
		Degenerate:           summary.Degenerate,
		NumComponents:        sys.N(),
		Threshold:            sys.Threshold,
		NumSimulations:       cfg.Simulations,
		NumShots:             cfg.Shots,
		ConfidenceLevel:      cfg.Confidence,
		Interval:             cfg.Interval.String(),
		Construction:         cfg.Construction.String(),
		Toggles:              net.NumToggles(),
		Estimates:            estimates,
		Elapsed:              time.Since(startTime).String(),
	}

	// encoding/json cannot carry NaN.
	if !report.RelativeErrorDefined {
		report.RelativeError = 0
		report.RelativeErrorPercent = 0
	}

	errnie.Info(
		"Evaluate - %d-out-of-%d, classical %v, mean %v, ci [%v, %v], abs error %v",
		report.Threshold,
		report.NumComponents,
		report.ClassicalReliability,
		report.QuantumMean,
		report.CILower,
		report.CIUpper,
		report.AbsoluteError,
	)

	return report, nil
}

func (ev *Evaluator) oracle(cfg *Config) Oracle {
	if ev.Oracle != nil {
		return ev.Oracle
	}
	if cfg.Seed != 0 {
		return NewSimulator(cfg.Seed)
	}
	return NewRandomSimulator()
}

// Within reports whether the exact reliability falls inside the interval.
func (r *Report) Within() bool {
	return r.ClassicalReliability >= r.CILower && r.ClassicalReliability <= r.CIUpper
}

// Coverage is the fraction of reports whose interval brackets the exact value.
func Coverage(reports []*Report) float64 {
	if len(reports) == 0 {
		return math.NaN()
	}
	hits := 0
	for _, r := range reports {
		if r.Within() {
			hits++
		}
	}
	return float64(hits) / float64(len(reports))
}
