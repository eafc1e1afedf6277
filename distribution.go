package qrel

/*
Outcome is the observed value of the output line: "1" when the system works,
"0" when it fails.
*/
type Outcome string

const (
	OutcomeFailure Outcome = "0"
	OutcomeSuccess Outcome = "1"
)

// State is one possible measurement outcome with its probability.
type State struct {
	Value       Outcome
	Probability float64
}

/*
Distribution is the measurement distribution of the output line. Collapse
picks an outcome by walking the cumulative probabilities, so a single uniform
draw decides each shot.
*/
type Distribution struct {
	States []State
}

// NewOutputDistribution builds the two-outcome distribution for P(1) = p.
func NewOutputDistribution(p float64) *Distribution {
	// Floating point drift from the state vector can leave p a hair outside [0, 1].
	p = min(max(p, 0), 1)

	dist := &Distribution{
		States: []State{
			{Value: OutcomeFailure, Probability: 1 - p},
			{Value: OutcomeSuccess, Probability: p},
		},
	}
	dist.normalize()
	return dist
}

// Probability returns the probability of the given outcome.
func (dist *Distribution) Probability(value Outcome) float64 {
	for _, state := range dist.States {
		if state.Value == value {
			return state.Probability
		}
	}
	return 0
}

// Collapse maps a uniform draw r in [0, 1) onto an outcome.
func (dist *Distribution) Collapse(r float64) Outcome {
	var cumulativeProb float64
	for _, state := range dist.States {
		if state.Probability == 0 {
			continue
		}
		cumulativeProb += state.Probability
		if r < cumulativeProb {
			return state.Value
		}
	}

	// r landed past the last bucket through rounding.
	for i := len(dist.States) - 1; i >= 0; i-- {
		if dist.States[i].Probability > 0 {
			return dist.States[i].Value
		}
	}
	return OutcomeFailure
}

func (dist *Distribution) normalize() {
	var total float64
	for _, s := range dist.States {
		total += s.Probability
	}

	if total > 0 {
		for i := range dist.States {
			dist.States[i].Probability /= total
		}
	}
}
