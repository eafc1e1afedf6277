package qrel

import (
	"fmt"
	"strings"

	"github.com/theapemachine/errnie"
	"gonum.org/v1/gonum/stat/combin"
)

// MaxToggles bounds the number of conditional toggles a network may carry.
const MaxToggles = 1 << 20

// GateKind identifies the operation a Gate performs.
type GateKind int

const (
	GateRY GateKind = iota
	GateX
	GateMCX
	GateMeasure
)

func (kind GateKind) String() string {
	switch kind {
	case GateRY:
		return "RY"
	case GateX:
		return "X"
	case GateMCX:
		return "MCX"
	case GateMeasure:
		return "MEASURE"
	default:
		return fmt.Sprintf("GateKind(%d)", int(kind))
	}
}

// Construction selects how the threshold condition is laid out on the output line.
type Construction int

const (
	/*
		ConstructionCombination toggles the output once per size-k combination of
		components. Toggles compose by parity, so when several combinations are
		satisfied at once they can cancel. That error is part of the construction
		and is kept as is.
	*/
	ConstructionCombination Construction = iota

	/*
		ConstructionPattern toggles the output once per basis pattern with at least
		k working components, using X gates to select the failed lines and a
		toggle controlled on every input. Exactly one toggle fires per state, so the
		output statistics match the exact reliability.
	*/
	ConstructionPattern
)

func (c Construction) String() string {
	switch c {
	case ConstructionCombination:
		return "combination"
	case ConstructionPattern:
		return "pattern"
	default:
		return fmt.Sprintf("Construction(%d)", int(c))
	}
}

// ParseConstruction is the inverse of Construction.String.
func ParseConstruction(s string) (Construction, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "combination":
		return ConstructionCombination, nil
	case "pattern":
		return ConstructionPattern, nil
	default:
		return 0, invalidf("unknown construction %q", s)
	}
}

// Gate is a single operation placed on the network.
type Gate struct {
	Kind     GateKind
	Target   int
	Controls []int   // only for GateMCX
	Theta    float64 // only for GateRY
}

/*
GateNetwork holds n input lines (0..n-1), one per component, and the output
line n. It is never modified after BuildNetwork returns it, so a single
network can be handed to any number of concurrent samplers.
*/
type GateNetwork struct {
	Inputs       int
	Output       int
	Threshold    int
	Construction Construction
	Gates        []Gate
}

// Lines is the total number of lines, inputs plus the output.
func (net *GateNetwork) Lines() int {
	return net.Inputs + 1
}

// NumToggles counts the conditional toggles on the output line.
func (net *GateNetwork) NumToggles() int {
	count := 0
	for _, gate := range net.Gates {
		if gate.Kind == GateMCX {
			count++
		}
	}
	return count
}

// BuildNetwork lays out the threshold network for sys.
func BuildNetwork(sys *System, construction Construction) (*GateNetwork, error) {
	if sys == nil {
		return nil, invalidf("nil system")
	}

	n, k := sys.N(), sys.Threshold
	if k < 1 || k > n {
		return nil, invalidf("threshold k=%d outside [1, %d]", k, n)
	}

	if toggles := toggleCount(n, k, construction); toggles > MaxToggles {
		return nil, invalidf("%s construction for %d-out-of-%d needs %.0f toggles, limit %d",
			construction, k, n, toggles, MaxToggles)
	}

	net := &GateNetwork{
		Inputs:       n,
		Output:       n,
		Threshold:    k,
		Construction: construction,
	}

	for _, c := range sys.Components {
		net.addGate(Gate{Kind: GateRY, Target: c.Index, Theta: Encode(c.Probability)})
	}

	switch construction {
	case ConstructionCombination:
		net.addCombinationToggles(n, k)
	case ConstructionPattern:
		net.addPatternToggles(n, k)
	default:
		return nil, invalidf("unknown construction %d", int(construction))
	}

	net.addGate(Gate{Kind: GateMeasure, Target: net.Output})

	errnie.Info(
		"BuildNetwork - n %d, k %d, construction %s, toggles %d",
		n, k, construction, net.NumToggles(),
	)

	return net, nil
}

func (net *GateNetwork) addGate(gate Gate) {
	net.Gates = append(net.Gates, gate)
}

func toggleCount(n, k int, construction Construction) float64 {
	if construction != ConstructionPattern {
		return combin.GeneralizedBinomial(float64(n), float64(k))
	}

	var total float64
	for r := k; r <= n; r++ {
		total += combin.GeneralizedBinomial(float64(n), float64(r))
	}
	return total
}

// combin generates index tuples in ascending lexicographic order.
func (net *GateNetwork) addCombinationToggles(n, k int) {
	gen := combin.NewCombinationGenerator(n, k)
	for gen.Next() {
		net.addGate(Gate{Kind: GateMCX, Target: net.Output, Controls: gen.Combination(nil)})
	}
}

func (net *GateNetwork) addPatternToggles(n, k int) {
	all := make([]int, n)
	for i := range all {
		all[i] = i
	}

	for r := k; r <= n; r++ {
		gen := combin.NewCombinationGenerator(n, r)
		for gen.Next() {
			failed := complement(gen.Combination(nil), n)
			for _, f := range failed {
				net.addGate(Gate{Kind: GateX, Target: f})
			}
			net.addGate(Gate{Kind: GateMCX, Target: net.Output, Controls: all})
			for _, f := range failed {
				net.addGate(Gate{Kind: GateX, Target: f})
			}
		}
	}
}

// complement returns the indices in [0, n) missing from the sorted subset.
func complement(subset []int, n int) []int {
	out := make([]int, 0, n-len(subset))
	next := 0
	for i := 0; i < n; i++ {
		if next < len(subset) && subset[next] == i {
			next++
			continue
		}
		out = append(out, i)
	}
	return out
}
