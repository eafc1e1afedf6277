package qrel

import "math"

/*
Encode converts a success probability into the RY rotation angle that turns
|0⟩ into a state measuring 1 with probability p. Bounds are not checked here;
NewSystem is where probabilities are validated.
*/
func Encode(p float64) float64 {
	return 2 * math.Asin(math.Sqrt(p))
}

// Qubit is a single line of the network in isolation.
type Qubit struct {
	alpha complex128 // |0⟩ amplitude
	beta  complex128 // |1⟩ amplitude
}

func NewQubit(alpha, beta complex128) *Qubit {
	return &Qubit{
		alpha: alpha,
		beta:  beta,
	}
}

// ApplyRY rotates the qubit about the Y axis.
func (q *Qubit) ApplyRY(theta float64) {
	// RY = [cos(θ/2) -sin(θ/2)]
	//      [sin(θ/2)  cos(θ/2)]
	c := complex(math.Cos(theta/2), 0)
	s := complex(math.Sin(theta/2), 0)
	newAlpha := c*q.alpha - s*q.beta
	newBeta := s*q.alpha + c*q.beta
	q.alpha = newAlpha
	q.beta = newBeta
}

// ApplyX flips the basis states.
func (q *Qubit) ApplyX() {
	q.alpha, q.beta = q.beta, q.alpha
}

func (q *Qubit) ProbabilityOne() float64 {
	return real(q.beta)*real(q.beta) + imag(q.beta)*imag(q.beta)
}
