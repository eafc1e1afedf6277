package qrel

import (
	"fmt"
	"math"
	"math/cmplx"
)

// MaxQubits bounds the state vector at 2^MaxQubits amplitudes.
const MaxQubits = 25

/*
StateVector is the ideal amplitude vector of a GateNetwork. Line i is bit i of
the basis index.
*/
type StateVector struct {
	Vector    []complex128
	NumQubits int
}

// NewStateVector returns |0...0⟩ over numQubits lines.
func NewStateVector(numQubits int) (*StateVector, error) {
	if numQubits < 1 || numQubits > MaxQubits {
		return nil, fmt.Errorf("state vector needs 1..%d qubits, got %d", MaxQubits, numQubits)
	}

	vector := make([]complex128, 1<<numQubits)
	vector[0] = 1
	return &StateVector{Vector: vector, NumQubits: numQubits}, nil
}

// Evolve applies every unitary gate of the network in order. Measurements are
// left to the caller.
func (sv *StateVector) Evolve(net *GateNetwork) error {
	if net.Lines() != sv.NumQubits {
		return fmt.Errorf("network has %d lines, state vector %d", net.Lines(), sv.NumQubits)
	}

	for i, gate := range net.Gates {
		if err := sv.Apply(gate); err != nil {
			return fmt.Errorf("gate %d: %w", i, err)
		}
	}
	return nil
}

func (sv *StateVector) Apply(gate Gate) error {
	if gate.Target < 0 || gate.Target >= sv.NumQubits {
		return fmt.Errorf("%s target %d out of range", gate.Kind, gate.Target)
	}

	switch gate.Kind {
	case GateRY:
		sv.applyRY(gate.Target, gate.Theta)
	case GateX:
		sv.applyX(gate.Target)
	case GateMCX:
		return sv.applyMCX(gate.Controls, gate.Target)
	case GateMeasure:
	default:
		return fmt.Errorf("unsupported gate %s", gate.Kind)
	}
	return nil
}

func (sv *StateVector) applyRY(q int, theta float64) {
	bit := 1 << q
	c := complex(math.Cos(theta/2), 0)
	s := complex(math.Sin(theta/2), 0)
	for i := range sv.Vector {
		if i&bit == 0 {
			j := i | bit
			a0, a1 := sv.Vector[i], sv.Vector[j]
			sv.Vector[i] = c*a0 - s*a1
			sv.Vector[j] = s*a0 + c*a1
		}
	}
}

func (sv *StateVector) applyX(q int) {
	bit := 1 << q
	for i := range sv.Vector {
		if i&bit == 0 {
			j := i | bit
			sv.Vector[i], sv.Vector[j] = sv.Vector[j], sv.Vector[i]
		}
	}
}

func (sv *StateVector) applyMCX(controls []int, target int) error {
	mask := 0
	for _, c := range controls {
		if c < 0 || c >= sv.NumQubits || c == target {
			return fmt.Errorf("MCX control %d invalid for target %d", c, target)
		}
		mask |= 1 << c
	}

	bit := 1 << target
	for i := range sv.Vector {
		if i&bit == 0 && i&mask == mask {
			j := i | bit
			sv.Vector[i], sv.Vector[j] = sv.Vector[j], sv.Vector[i]
		}
	}
	return nil
}

// Probabilities returns |amplitude|² for every basis state.
func (sv *StateVector) Probabilities() []float64 {
	probs := make([]float64, len(sv.Vector))
	for i, amplitude := range sv.Vector {
		prob := cmplx.Abs(amplitude)
		probs[i] = prob * prob
	}
	return probs
}

// MarginalOne is the probability that measuring line q alone yields 1.
func (sv *StateVector) MarginalOne(q int) float64 {
	bit := 1 << q
	var total float64
	for i, prob := range sv.Probabilities() {
		if i&bit != 0 {
			total += prob
		}
	}
	return total
}
