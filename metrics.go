package qrel

import (
	"sort"
	"sync"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

type timeWindow struct {
	duration time.Duration
	count    int
}

/*
Metrics tracks oracle repetitions. The plain fields are for in-process
inspection; the prometheus collectors are only exported once Register is called.
*/
type Metrics struct {
	mu             sync.RWMutex
	RunCount       int64
	FailedRuns     int64
	ShotCount      int64
	SuccessCount   int64
	TotalRunTime   time.Duration
	RunSuccessRate float64

	AverageRunLatency time.Duration
	P95RunLatency     time.Duration
	P99RunLatency     time.Duration

	latencyWindows []timeWindow
	windowSize     int

	runDuration prometheus.Histogram
	runsTotal   *prometheus.CounterVec
	shotsTotal  prometheus.Counter
}

func NewMetrics() *Metrics {
	return &Metrics{
		latencyWindows: make([]timeWindow, 0, 1000), // Store last 1000 measurements
		windowSize:     1000,
		runDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Name:    "qrel_oracle_run_duration_seconds",
			Help:    "Time for one oracle repetition",
			Buckets: prometheus.ExponentialBuckets(0.0005, 2, 14),
		}),
		runsTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "qrel_oracle_runs_total",
			Help: "Oracle repetitions by result",
		}, []string{"result"}),
		shotsTotal: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "qrel_oracle_shots_total",
			Help: "Shots sampled across all repetitions",
		}),
	}
}

// Register exports the collectors on reg.
func (m *Metrics) Register(reg prometheus.Registerer) error {
	for _, c := range []prometheus.Collector{m.runDuration, m.runsTotal, m.shotsTotal} {
		if err := reg.Register(c); err != nil {
			return err
		}
	}
	return nil
}

func (m *Metrics) recordRun(result RunResult) {
	m.runDuration.Observe(result.Duration.Seconds())
	m.runsTotal.WithLabelValues("ok").Inc()
	m.shotsTotal.Add(float64(result.Shots))

	m.mu.Lock()
	defer m.mu.Unlock()

	m.RunCount++
	m.ShotCount += int64(result.Shots)
	m.SuccessCount += int64(result.Successes)
	m.TotalRunTime += result.Duration
	m.updateSuccessRate()
	m.updateLatencyPercentiles(result.Duration)
}

func (m *Metrics) recordFailure(duration time.Duration) {
	m.runDuration.Observe(duration.Seconds())
	m.runsTotal.WithLabelValues("error").Inc()

	m.mu.Lock()
	defer m.mu.Unlock()

	m.FailedRuns++
	m.updateSuccessRate()
}

func (m *Metrics) updateSuccessRate() {
	total := m.RunCount + m.FailedRuns
	if total > 0 {
		m.RunSuccessRate = float64(m.RunCount) / float64(total)
	}
}

func (m *Metrics) updateLatencyPercentiles(duration time.Duration) {
	m.AverageRunLatency = (m.AverageRunLatency*time.Duration(m.RunCount-1) + duration) / time.Duration(m.RunCount)

	m.latencyWindows = append(m.latencyWindows, timeWindow{
		duration: duration,
		count:    1,
	})

	if len(m.latencyWindows) > m.windowSize {
		m.latencyWindows = m.latencyWindows[1:]
	}

	sorted := make([]time.Duration, 0, len(m.latencyWindows))
	for _, w := range m.latencyWindows {
		for i := 0; i < w.count; i++ {
			sorted = append(sorted, w.duration)
		}
	}
	sort.Slice(sorted, func(i, j int) bool {
		return sorted[i] < sorted[j]
	})

	if len(sorted) > 0 {
		p95Index := min(int(float64(len(sorted))*0.95), len(sorted)-1)
		p99Index := min(int(float64(len(sorted))*0.99), len(sorted)-1)

		m.P95RunLatency = sorted[p95Index]
		m.P99RunLatency = sorted[p99Index]
	}
}

func (m *Metrics) ExportMetrics() map[string]interface{} {
	m.mu.RLock()
	defer m.mu.RUnlock()

	return map[string]interface{}{
		"run_count":        m.RunCount,
		"failed_runs":      m.FailedRuns,
		"shot_count":       m.ShotCount,
		"success_count":    m.SuccessCount,
		"run_success_rate": m.RunSuccessRate,
		"avg_latency":      m.AverageRunLatency.Milliseconds(),
		"p95_latency":      m.P95RunLatency.Milliseconds(),
		"p99_latency":      m.P99RunLatency.Milliseconds(),
	}
}
