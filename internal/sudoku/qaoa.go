package sudoku

import (
	"context"
	"errors"
	"fmt"

	"github.com/theapemachine/errnie"
	"github.com/theapemachine/qcircuit"
)

// BitsPerCell qubits encode a value 1..4 as value-1 in binary, low bit first.
const BitsPerCell = 2

var ErrSolved = errors.New("puzzle has no empty cells")

/*
Encoding maps the empty cells of a puzzle onto qubits: empty cell k owns
qubits 2k and 2k+1. Fixed cells stay classical and only bias their
neighbours.
*/
type Encoding struct {
	initial Grid
	cells   []Cell
}

func NewEncoding(initial Grid) *Encoding {
	return &Encoding{initial: initial, cells: initial.Empty()}
}

// Qubits is the register size needed for the puzzle.
func (e *Encoding) Qubits() int {
	return BitsPerCell * len(e.cells)
}

func (e *Encoding) qubit(cell, bit int) int {
	return BitsPerCell*cell + bit
}

/*
Circuit builds a QAOA circuit with one layer per (gamma, beta) pair: a
uniform superposition over the free cells, then per layer a ZZ coupling
between the matching bits of every two free cells that share a unit, a Z
field pushing each free cell away from its fixed neighbours' values, and an
RX mixer.
*/
func (e *Encoding) Circuit(gammas, betas []float64) (*qcircuit.Circuit, error) {
	if len(e.cells) == 0 {
		return nil, ErrSolved
	}
	if len(gammas) != len(betas) {
		return nil, fmt.Errorf("need one beta per gamma, got %d and %d", len(gammas), len(betas))
	}

	circuit, err := qcircuit.NewCircuit(e.Qubits())
	if err != nil {
		return nil, err
	}

	circuit.Layer(qcircuit.Hadamard)
	for layer := range gammas {
		e.costLayer(circuit, gammas[layer])
		for q := 0; q < e.Qubits(); q++ {
			circuit.RX(2*betas[layer], q)
		}
	}

	return circuit, nil
}

func (e *Encoding) costLayer(circuit *qcircuit.Circuit, gamma float64) {
	for i, a := range e.cells {
		for j := i + 1; j < len(e.cells); j++ {
			if !a.SharesUnit(e.cells[j]) {
				continue
			}
			for bit := 0; bit < BitsPerCell; bit++ {
				control, target := e.qubit(i, bit), e.qubit(j, bit)
				circuit.CX(control, target).RZ(gamma, target).CX(control, target)
			}
		}

		for _, v := range e.fixedPeers(a) {
			for bit := 0; bit < BitsPerCell; bit++ {
				theta := gamma
				if (v-1)>>bit&1 == 1 {
					theta = -gamma
				}
				circuit.RZ(theta, e.qubit(i, bit))
			}
		}
	}
}

func (e *Encoding) fixedPeers(c Cell) []int {
	values := make([]int, 0)
	for r := 0; r < Size; r++ {
		for col := 0; col < Size; col++ {
			peer := Cell{Row: r, Col: col}
			if v := e.initial[r][col]; v != 0 && c.SharesUnit(peer) {
				values = append(values, v)
			}
		}
	}
	return values
}

// Decode fills the free cells from a measured bit pattern.
func (e *Encoding) Decode(bits string) (Grid, error) {
	if len(bits) != e.Qubits() {
		return Grid{}, fmt.Errorf("%w: %d bits for %d qubits", qcircuit.ErrPatternLength, len(bits), e.Qubits())
	}

	grid := e.initial
	for k, cell := range e.cells {
		value := 1
		for bit := 0; bit < BitsPerCell; bit++ {
			switch bits[e.qubit(k, bit)] {
			case '1':
				value += 1 << bit
			case '0':
			default:
				return Grid{}, fmt.Errorf("%w: %q", qcircuit.ErrPatternSymbol, bits)
			}
		}
		grid[cell.Row][cell.Col] = value
	}
	return grid, nil
}

// Solution is the best grid found by the parameter sweep.
type Solution struct {
	Grid       Grid
	Violations int
	Gamma      float64
	Beta       float64
	Counts     qcircuit.Counts
	Circuit    *qcircuit.Circuit
}

/*
Solver sweeps a fixed grid of QAOA angles, decodes the most frequent outcome
of each run and keeps the grid with the fewest violations.
*/
type Solver struct {
	Backend qcircuit.Backend
	Layers  int
	Shots   int
	Gammas  []float64
	Betas   []float64
}

func NewSolver(backend qcircuit.Backend) *Solver {
	return &Solver{
		Backend: backend,
		Layers:  1,
		Shots:   1024,
		Gammas:  []float64{0.1, 0.5, 1.0, 1.5},
		Betas:   []float64{0.1, 0.5, 1.0, 1.5},
	}
}

// Solve runs the sweep. A puzzle without empty cells is returned unchanged.
func (s *Solver) Solve(ctx context.Context, initial Grid) (*Solution, error) {
	if s.Layers < 1 {
		return nil, fmt.Errorf("%w: %d layers", qcircuit.ErrInvalidRounds, s.Layers)
	}
	if s.Shots <= 0 {
		return nil, fmt.Errorf("%w: got %d", qcircuit.ErrInvalidShots, s.Shots)
	}

	enc := NewEncoding(initial)
	if enc.Qubits() == 0 {
		return &Solution{Grid: initial, Violations: initial.Violations()}, nil
	}

	errnie.Info(
		"Solver.Solve - free cells %v, qubits %v, layers %v",
		len(enc.cells),
		enc.Qubits(),
		s.Layers,
	)

	var best *Solution
	for _, gamma := range s.Gammas {
		for _, beta := range s.Betas {
			candidate, err := s.try(ctx, enc, gamma, beta)
			if err != nil {
				return nil, err
			}
			if best == nil || candidate.Violations < best.Violations {
				best = candidate
			}
			if best.Violations == 0 {
				return best, nil
			}
		}
	}

	if best == nil {
		return nil, errors.New("no QAOA angles configured")
	}
	return best, nil
}

func (s *Solver) try(ctx context.Context, enc *Encoding, gamma, beta float64) (*Solution, error) {
	gammas := make([]float64, s.Layers)
	betas := make([]float64, s.Layers)
	for i := range gammas {
		gammas[i], betas[i] = gamma, beta
	}

	circuit, err := enc.Circuit(gammas, betas)
	if err != nil {
		return nil, err
	}

	counts, err := s.Backend.Run(ctx, circuit, s.Shots)
	if err != nil {
		return nil, fmt.Errorf("run gamma=%g beta=%g: %w", gamma, beta, err)
	}

	bits, _ := counts.MostFrequent()
	grid, err := enc.Decode(bits)
	if err != nil {
		return nil, err
	}

	return &Solution{
		Grid:       grid,
		Violations: grid.Violations(),
		Gamma:      gamma,
		Beta:       beta,
		Counts:     counts,
		Circuit:    circuit,
	}, nil
}
