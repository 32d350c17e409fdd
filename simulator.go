package qcircuit

import (
	"context"
	"fmt"
	"math/rand/v2"
	"sync"
	"time"

	"github.com/theapemachine/errnie"
)

/*
Backend executes a circuit and samples measurements of every qubit. It is
the only collaborator the search builder talks to; failures it reports are
passed through to the caller untouched.
*/
type Backend interface {
	Run(ctx context.Context, circuit *Circuit, shots int) (Counts, error)
}

const (
	// DefaultMaxQubits bounds the dense vector at 2^24 amplitudes (256 MiB).
	DefaultMaxQubits = 24
	// CeilingQubits is the largest limit WithMaxQubits accepts (16 GiB of amplitudes).
	CeilingQubits = 30

	gateCheckInterval = 64
	shotBatch         = 1024
)

// SimulatorOption configures a Simulator.
type SimulatorOption func(*Simulator)

// WithSeed makes measurement sampling reproducible.
func WithSeed(seed uint64) SimulatorOption {
	return func(s *Simulator) {
		s.rng = rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))
	}
}

// WithReadoutError flips every measured bit with probability p.
func WithReadoutError(p float64) SimulatorOption {
	return func(s *Simulator) {
		s.readoutError = p
	}
}

// WithMaxQubits changes the largest register the simulator accepts, clamped to [1, CeilingQubits].
func WithMaxQubits(n int) SimulatorOption {
	return func(s *Simulator) {
		s.maxQubits = min(max(n, 1), CeilingQubits)
	}
}

/*
Simulator is an in-process state-vector Backend. Circuit construction is
deterministic; only sampling draws on the random source.
*/
type Simulator struct {
	mu           sync.Mutex
	rng          *rand.Rand
	readoutError float64
	maxQubits    int
	metrics      *Metrics
}

// NewSimulator creates a simulator with an unseeded random source.
func NewSimulator(opts ...SimulatorOption) *Simulator {
	s := &Simulator{
		rng:       rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64())),
		maxQubits: DefaultMaxQubits,
		metrics:   NewMetrics(),
	}

	for _, opt := range opts {
		opt(s)
	}

	return s
}

// Metrics exposes the simulator's run statistics.
func (s *Simulator) Metrics() *Metrics {
	return s.metrics
}

// Statevector evolves |0…0⟩ through the circuit and returns the final state.
func (s *Simulator) Statevector(ctx context.Context, circuit *Circuit) (*StateVector, error) {
	if circuit.Size() > s.maxQubits {
		return nil, fmt.Errorf(
			"%w: %d qubits, limit %d", ErrRegisterTooLarge, circuit.Size(), s.maxQubits,
		)
	}

	sv := NewStateVector(circuit.Size())
	for i, g := range circuit.gates {
		if i%gateCheckInterval == 0 {
			if err := ctx.Err(); err != nil {
				return nil, err
			}
		}
		if err := sv.Apply(g); err != nil {
			return nil, fmt.Errorf("gate %d: %w", i, err)
		}
	}

	return sv, nil
}

// Run simulates the circuit once and samples shots measurements from it.
func (s *Simulator) Run(ctx context.Context, circuit *Circuit, shots int) (counts Counts, err error) {
	startTime := time.Now()
	defer func() {
		s.metrics.recordRun(startTime, circuit.Size(), circuit.Len(), shots, err)
	}()

	if shots <= 0 {
		return nil, fmt.Errorf("%w: got %d", ErrInvalidShots, shots)
	}
	if s.readoutError < 0 || s.readoutError >= 0.5 {
		return nil, fmt.Errorf("%w: got %g", ErrReadoutError, s.readoutError)
	}

	errnie.Info(
		"Simulator.Run - qubits %v, gates %v, shots %v",
		circuit.Size(),
		circuit.Len(),
		shots,
	)

	sv, err := s.Statevector(ctx, circuit)
	if err != nil {
		return nil, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	counts = make(Counts)
	for remaining := shots; remaining > 0; remaining -= shotBatch {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		counts.Merge(sv.Sample(s.rng, min(remaining, shotBatch), s.readoutError))
	}

	return counts, nil
}
