package demo

import (
	"context"
	"fmt"
	"io"

	"github.com/rs/zerolog"
	"github.com/theapemachine/qcircuit"
	"github.com/theapemachine/qcircuit/internal/envconfig"
	"github.com/theapemachine/qcircuit/internal/report"
)

const entangleExplanation = `
1. H on q[0] and q[1] puts both into superposition.
2. CX(q[0], q[1]) entangles them.
3. S on q[0] adds a pi/2 phase to its |1> component.
4. CX(q[1], q[2]) spreads the entanglement to q[2].
5. T on q[1] adds a pi/4 phase.
6. A final H on q[0] turns the accumulated phases into interference.

Entangled qubits no longer have a pure state of their own, which shows up
as Bloch vectors shorter than 1.
`

// EntangleCircuit is the three-qubit superposition, entanglement and phase circuit.
func EntangleCircuit() *qcircuit.Circuit {
	circuit, _ := qcircuit.NewCircuit(3)
	return circuit.
		H(0).
		H(1).
		CX(0, 1).
		S(0).
		CX(1, 2).
		T(1).
		H(0)
}

// Entangle runs EntangleCircuit and reports counts, amplitudes and per-qubit Bloch vectors.
func Entangle(ctx context.Context, cfg *envconfig.Config, log zerolog.Logger, out io.Writer) error {
	if err := prepare(cfg); err != nil {
		return err
	}

	circuit := EntangleCircuit()

	sim := newSimulator(cfg)
	defer logMetrics(log, sim)

	shots := cfg.ShotsOr(1000)

	fmt.Fprintln(out, report.Banner("entangle"))
	section(out, "Quantum Circuit:")
	fmt.Fprint(out, circuit.QASM())

	counts, err := sim.Run(ctx, circuit, shots)
	if err != nil {
		return err
	}

	section(out, "Measurement Results:")
	fmt.Fprint(out, report.Histogram(counts, histogramWidth, ""))

	sv, err := sim.Statevector(ctx, circuit)
	if err != nil {
		return err
	}

	section(out, "Statevector (before measurement):")
	fmt.Fprint(out, report.StateTable(sv.States(1e-12)))

	section(out, "Reduced qubit states:")
	if err := blochVectors(out, sv); err != nil {
		return err
	}

	section(out, "Circuit Explanation:")
	fmt.Fprint(out, entangleExplanation)

	best, _ := counts.MostFrequent()
	return save(cfg, log, out, "entangle_results", &report.Artifact{
		Demo:    "entangle",
		Qubits:  circuit.Size(),
		Shots:   shots,
		Circuit: circuit.QASM(),
		Counts:  counts,
		Best:    best,
	})
}
