package qrel

import (
	"context"
	"fmt"
	"log"
	"time"

	"golang.org/x/sync/errgroup"
)

/*
Runner drives repeated, independent oracle executions of one GateNetwork.
With Workers <= 1 the repetitions run strictly in sequence. With more workers
they are fanned out, but results are still returned in repetition order and
the first failure cancels the rest.
*/
type Runner struct {
	Oracle  Oracle
	Metrics *Metrics
	Workers int
}

func NewRunner(oracle Oracle, metrics *Metrics, workers int) *Runner {
	if metrics == nil {
		metrics = NewMetrics()
	}
	return &Runner{
		Oracle:  oracle,
		Metrics: metrics,
		Workers: workers,
	}
}

// Run executes simulations repetitions of shots each.
func (r *Runner) Run(ctx context.Context, net *GateNetwork, simulations, shots int) ([]RunResult, error) {
	if r.Oracle == nil {
		return nil, invalidf("runner has no oracle")
	}
	if net == nil {
		return nil, invalidf("nil network")
	}
	if simulations < 1 {
		return nil, invalidf("num_simulations must be >= 1, got %d", simulations)
	}
	if shots < 1 {
		return nil, invalidf("numshots must be >= 1, got %d", shots)
	}

	results := make([]RunResult, simulations)

	if r.Workers <= 1 {
		for i := range results {
			result, err := r.processJob(ctx, net, r.newJob(i, shots))
			if err != nil {
				return nil, err
			}
			results[i] = result
		}
		return results, nil
	}

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(r.Workers)

	for i := range results {
		job := r.newJob(i, shots)
		g.Go(func() error {
			result, err := r.processJob(gctx, net, job)
			if err != nil {
				return err
			}
			results[job.Index] = result
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return results, nil
}

func (r *Runner) newJob(index, shots int) Job {
	return Job{
		ID:    fmt.Sprintf("run-%d", index),
		Index: index,
		Shots: shots,
	}
}

func (r *Runner) processJob(ctx context.Context, net *GateNetwork, job Job) (RunResult, error) {
	if err := ctx.Err(); err != nil {
		return RunResult{}, err
	}

	job.StartTime = time.Now()
	counts, err := r.Oracle.Sample(ctx, net, job.Shots)
	if err == nil {
		err = checkCounts(counts, job.Shots)
	}

	duration := time.Since(job.StartTime)
	if err != nil {
		r.Metrics.recordFailure(duration)
		log.Printf("Job %s failed: %v", job.ID, err)
		return RunResult{}, oracleErr(job.Index, err)
	}

	successes := counts.Successes()
	result := RunResult{
		Index:     job.Index,
		Counts:    counts,
		Shots:     job.Shots,
		Successes: successes,
		Estimate:  float64(successes) / float64(job.Shots),
		Duration:  duration,
	}

	r.Metrics.recordRun(result)
	return result, nil
}

func checkCounts(counts Counts, shots int) error {
	for outcome, n := range counts {
		if outcome != OutcomeSuccess && outcome != OutcomeFailure {
			return fmt.Errorf("unexpected outcome %q", outcome)
		}
		if n < 0 {
			return fmt.Errorf("negative count %d for outcome %q", n, outcome)
		}
	}

	if total := counts.Total(); total != shots {
		return fmt.Errorf("counts total %d, requested %d shots", total, shots)
	}
	return nil
}

// Estimates extracts the per-repetition estimates in order.
func Estimates(results []RunResult) []float64 {
	estimates := make([]float64, len(results))
	for i, result := range results {
		estimates[i] = result.Estimate
	}
	return estimates
}
