package qcircuit

import (
	"context"
	"fmt"

	"github.com/theapemachine/errnie"
)

/*
SearchBuilder assembles one instance of Grover's amplitude-amplification
search and runs it once on a Backend. Stages are appended in the order they
are called; Search drives the canonical order
superposition → (oracle → diffuser) × rounds → measurement.
*/
type SearchBuilder struct {
	circuit *Circuit
	backend Backend
	ran     bool
}

// NewSearchBuilder creates a builder over a fresh register of n qubits.
func NewSearchBuilder(n int, backend Backend) (*SearchBuilder, error) {
	circuit, err := NewCircuit(n)
	if err != nil {
		return nil, err
	}

	return &SearchBuilder{
		circuit: circuit,
		backend: backend,
	}, nil
}

// Circuit exposes the gate sequence built so far.
func (b *SearchBuilder) Circuit() *Circuit {
	return b.circuit
}

// BuildSuperposition puts every qubit into an equal superposition.
func (b *SearchBuilder) BuildSuperposition() {
	b.circuit.Layer(Hadamard)
}

/*
BuildOracle appends the phase oracle for target: qubits whose target bit is
0 are conjugated by X so that the target maps onto |1…1⟩, which a
multi-controlled phase flip then negates. Every other basis state is left
untouched. Nothing is appended when the pattern is invalid.
*/
func (b *SearchBuilder) BuildOracle(target string) error {
	oracle, err := Oracle(b.circuit.Size(), target)
	if err != nil {
		return err
	}
	return b.circuit.Compose(oracle)
}

// BuildDiffuser appends the inversion about the mean.
func (b *SearchBuilder) BuildDiffuser() {
	// Both calls only fail on a register size mismatch or n < 1, neither possible here.
	diffuser, _ := Diffuser(b.circuit.Size())
	_ = b.circuit.Compose(diffuser)
}

// BuildRound appends one oracle followed by one diffuser.
func (b *SearchBuilder) BuildRound(target string) error {
	if err := b.BuildOracle(target); err != nil {
		return err
	}
	b.BuildDiffuser()
	return nil
}

/*
Run hands the assembled circuit to the backend and returns its counts.
An invalid shot count is rejected before the backend is called. Backend
failures propagate unchanged apart from wrapping, and the builder cannot
be run a second time.
*/
func (b *SearchBuilder) Run(ctx context.Context, shots int) (Counts, error) {
	if b.ran {
		return nil, ErrAlreadyRun
	}
	if shots <= 0 {
		return nil, fmt.Errorf("%w: got %d", ErrInvalidShots, shots)
	}
	b.ran = true

	counts, err := b.backend.Run(ctx, b.circuit, shots)
	if err != nil {
		return nil, fmt.Errorf("backend run failed: %w", err)
	}
	return counts, nil
}

// Oracle builds the standalone phase oracle marking target on n qubits.
func Oracle(n int, target string) (*Circuit, error) {
	if err := ValidatePattern(target, n); err != nil {
		return nil, err
	}

	oracle, err := NewCircuit(n)
	if err != nil {
		return nil, err
	}

	flipZeros(oracle, target)
	oracle.MCZ(allButLast(n), n-1)
	flipZeros(oracle, target)

	return oracle, nil
}

// Diffuser builds the standalone reflection through the uniform superposition.
func Diffuser(n int) (*Circuit, error) {
	diffuser, err := NewCircuit(n)
	if err != nil {
		return nil, err
	}

	diffuser.Layer(Hadamard).Layer(PauliX)
	diffuser.MCZ(allButLast(n), n-1)
	diffuser.Layer(PauliX).Layer(Hadamard)

	return diffuser, nil
}

func flipZeros(c *Circuit, target string) {
	for q := 0; q < len(target); q++ {
		if target[q] == '0' {
			c.X(q)
		}
	}
}

func allButLast(n int) []int {
	controls := make([]int, n-1)
	for i := range controls {
		controls[i] = i
	}
	return controls
}

// SearchResult is everything a search run reports.
type SearchResult struct {
	Circuit   *Circuit
	Counts    Counts
	Target    string
	Best      string
	BestCount int
	Rounds    int
	Shots     int
}

// Found reports whether the plurality outcome is the target.
func (r *SearchResult) Found() bool {
	return r.Best == r.Target
}

/*
Search validates cfg, builds the full pipeline and runs it once. All
configuration errors surface before the backend is touched.
*/
func Search(ctx context.Context, backend Backend, cfg *SearchConfig) (*SearchResult, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	errnie.Info(
		"Search - qubits %v, target %v, rounds %v, shots %v",
		cfg.Qubits,
		cfg.Target,
		cfg.Rounds,
		cfg.Shots,
	)

	builder, err := NewSearchBuilder(cfg.Qubits, backend)
	if err != nil {
		return nil, err
	}

	builder.BuildSuperposition()
	for round := 0; round < cfg.Rounds; round++ {
		if err := builder.BuildRound(cfg.Target); err != nil {
			return nil, err
		}
	}

	counts, err := builder.Run(ctx, cfg.Shots)
	if err != nil {
		return nil, err
	}

	best, bestCount := counts.MostFrequent()

	return &SearchResult{
		Circuit:   builder.Circuit(),
		Counts:    counts,
		Target:    cfg.Target,
		Best:      best,
		BestCount: bestCount,
		Rounds:    cfg.Rounds,
		Shots:     cfg.Shots,
	}, nil
}
