package qrel

import "math"

// MaxEnumerated bounds EnumeratedReliability, which walks all 2^n states.
const MaxEnumerated = 24

/*
ExactDistribution returns dist where dist[j] is the probability that exactly j
of the components work. The table is built one component at a time: after
component i has been folded in, dist[j] holds the probability that exactly j
of the first i+1 components work.
*/
func ExactDistribution(probs []float64) ([]float64, error) {
	if err := checkProbabilities(probs); err != nil {
		return nil, err
	}

	dist := make([]float64, len(probs)+1)
	dist[0] = 1

	for i, p := range probs {
		// Walk j downwards so dist[j-1] still holds the previous row.
		for j := i + 1; j > 0; j-- {
			dist[j] = dist[j]*(1-p) + dist[j-1]*p
		}
		dist[0] *= 1 - p
	}

	return dist, nil
}

/*
ClassicalReliability is the exact probability that at least k of the
independent components work. No sampling is involved, so identical inputs
always give bit-identical output.
*/
func ClassicalReliability(probs []float64, k int) (float64, error) {
	n := len(probs)
	if k < 0 || k > n {
		return 0, invalidf("threshold k=%d outside [0, %d]", k, n)
	}

	dist, err := ExactDistribution(probs)
	if err != nil {
		return 0, err
	}

	var total float64
	for j := k; j <= n; j++ {
		total += dist[j]
	}

	return total, nil
}

// EnumeratedReliability sums the probability of every state with at least k
// working components. It is exponential in n and kept for cross-checking.
func EnumeratedReliability(probs []float64, k int) (float64, error) {
	n := len(probs)
	if n > MaxEnumerated {
		return 0, invalidf("enumeration limited to %d components, got %d", MaxEnumerated, n)
	}
	if k < 0 || k > n {
		return 0, invalidf("threshold k=%d outside [0, %d]", k, n)
	}
	if err := checkProbabilities(probs); err != nil {
		return 0, err
	}

	var total float64
	for state := 0; state < 1<<n; state++ {
		working := 0
		prob := 1.0
		for i, p := range probs {
			if state&(1<<i) != 0 {
				working++
				prob *= p
			} else {
				prob *= 1 - p
			}
		}
		if working >= k {
			total += prob
		}
	}

	return total, nil
}

func checkProbabilities(probs []float64) error {
	for i, p := range probs {
		if math.IsNaN(p) || p < 0 || p > 1 {
			return invalidf("component %d probability %v outside [0, 1]", i, p)
		}
	}
	return nil
}
