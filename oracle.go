package qrel

import "context"

// Counts maps each observed output-line value to the number of shots that produced it.
type Counts map[Outcome]int

// Successes is the number of shots where the system worked.
func (counts Counts) Successes() int {
	return counts[OutcomeSuccess]
}

// Total is the number of shots recorded.
func (counts Counts) Total() int {
	total := 0
	for _, n := range counts {
		total += n
	}
	return total
}

/*
Oracle executes a gate network for the requested number of shots and reports
how often each output value was observed. Every call must use fresh
randomness; the runner treats calls as independent repetitions.
*/
type Oracle interface {
	Sample(ctx context.Context, net *GateNetwork, shots int) (Counts, error)
}

// OracleFunc lets a plain function serve as an Oracle.
type OracleFunc func(ctx context.Context, net *GateNetwork, shots int) (Counts, error)

func (fn OracleFunc) Sample(ctx context.Context, net *GateNetwork, shots int) (Counts, error) {
	return fn(ctx, net, shots)
}
