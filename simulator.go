package qrel

import (
	"context"
	"fmt"
	"math/rand/v2"
	"sync"

	"github.com/theapemachine/errnie"
)

// ctxCheckInterval is how many shots are drawn between context checks.
const ctxCheckInterval = 1 << 14

/*
Simulator is an ideal, noiseless Oracle. It evolves the network's state vector
once, reads the output-line marginal and then collapses that distribution once
per shot. The evolved distribution of the most recent network is cached, which
covers the runner's pattern of sampling one network many times.
*/
type Simulator struct {
	mu  sync.Mutex
	rng *rand.Rand

	cacheMu   sync.Mutex
	cachedNet *GateNetwork
	cached    *Distribution
}

// NewSimulator returns a Simulator whose draws are fully determined by seed.
func NewSimulator(seed uint64) *Simulator {
	return &Simulator{
		rng: rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15)),
	}
}

// NewRandomSimulator seeds a Simulator from the runtime's random source.
func NewRandomSimulator() *Simulator {
	return NewSimulator(rand.Uint64())
}

// Distribution returns the exact output-line distribution of net.
func (sim *Simulator) Distribution(net *GateNetwork) (*Distribution, error) {
	if net == nil {
		return nil, fmt.Errorf("nil network")
	}

	sim.cacheMu.Lock()
	defer sim.cacheMu.Unlock()

	if sim.cachedNet == net {
		return sim.cached, nil
	}

	sv, err := NewStateVector(net.Lines())
	if err != nil {
		return nil, err
	}

	if err := sv.Evolve(net); err != nil {
		return nil, err
	}

	dist := NewOutputDistribution(sv.MarginalOne(net.Output))
	errnie.Info(
		"Simulator.Distribution - lines %d, gates %d, p(1) %v",
		net.Lines(),
		len(net.Gates),
		dist.Probability(OutcomeSuccess),
	)

	sim.cachedNet = net
	sim.cached = dist
	return dist, nil
}

func (sim *Simulator) Sample(ctx context.Context, net *GateNetwork, shots int) (Counts, error) {
	if shots < 1 {
		return nil, fmt.Errorf("shots must be positive, got %d", shots)
	}

	dist, err := sim.Distribution(net)
	if err != nil {
		return nil, err
	}

	counts := Counts{OutcomeFailure: 0, OutcomeSuccess: 0}

	sim.mu.Lock()
	defer sim.mu.Unlock()

	for shot := 0; shot < shots; shot++ {
		if shot%ctxCheckInterval == 0 {
			if err := ctx.Err(); err != nil {
				return nil, err
			}
		}
		counts[dist.Collapse(sim.rng.Float64())]++
	}

	return counts, nil
}
