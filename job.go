package qrel

import "time"

// Job is one repetition handed to the oracle.
type Job struct {
	ID        string
	Index     int
	Shots     int
	StartTime time.Time
}

// RunResult is the outcome of one repetition.
type RunResult struct {
	Index     int
	Counts    Counts
	Shots     int
	Successes int
	Estimate  float64
	Duration  time.Duration
}
