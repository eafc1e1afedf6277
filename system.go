package qrel

import "math"

// Component is one independently failing unit of the system.
type Component struct {
	Index       int
	Probability float64
}

/*
System is a k-out-of-n system: it works when at least Threshold of its
Components work. A System is immutable once NewSystem has accepted it.
*/
type System struct {
	Components []Component
	Threshold  int
}

// NewSystem validates the probabilities and threshold and returns the System.
func NewSystem(probs []float64, k int) (*System, error) {
	n := len(probs)
	if n == 0 {
		return nil, invalidf("system needs at least one component")
	}

	if k < 1 || k > n {
		return nil, invalidf("threshold k=%d outside [1, %d]", k, n)
	}

	components := make([]Component, n)
	for i, p := range probs {
		if math.IsNaN(p) || p <= 0 || p > 1 {
			return nil, invalidf("component %d probability %v outside (0, 1]", i, p)
		}
		components[i] = Component{Index: i, Probability: p}
	}

	return &System{Components: components, Threshold: k}, nil
}

func (sys *System) N() int {
	return len(sys.Components)
}

// Probabilities returns a copy of the component probabilities in index order.
func (sys *System) Probabilities() []float64 {
	probs := make([]float64, len(sys.Components))
	for i, c := range sys.Components {
		probs[i] = c.Probability
	}
	return probs
}
