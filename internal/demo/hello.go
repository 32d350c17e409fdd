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

// Hello puts one qubit into an equal superposition and measures it.
func Hello(ctx context.Context, cfg *envconfig.Config, log zerolog.Logger, out io.Writer) error {
	if err := prepare(cfg); err != nil {
		return err
	}

	circuit, err := qcircuit.NewCircuit(1)
	if err != nil {
		return err
	}
	circuit.H(0)

	sim := newSimulator(cfg)
	defer logMetrics(log, sim)

	shots := cfg.ShotsOr(1000)

	fmt.Fprintln(out, report.Banner("hello"))
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

	section(out, "Statevector:")
	fmt.Fprint(out, report.StateTable(sv.States(0)))

	section(out, "Bloch vector:")
	if err := blochVectors(out, sv); err != nil {
		return err
	}

	best, _ := counts.MostFrequent()
	return save(cfg, log, out, "hello_results", &report.Artifact{
		Demo:    "hello",
		Qubits:  circuit.Size(),
		Shots:   shots,
		Circuit: circuit.QASM(),
		Counts:  counts,
		Best:    best,
	})
}
