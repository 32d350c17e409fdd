/*
Package demo holds the four walkthroughs shipped as commands: a one-qubit
superposition, a three-qubit entangling circuit, Grover's search and a toy
Sudoku. Each writes a text report to out and a result artifact to the
configured directory.
*/
package demo

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog"
	"github.com/theapemachine/qcircuit"
	"github.com/theapemachine/qcircuit/internal/envconfig"
	"github.com/theapemachine/qcircuit/internal/logger"
	"github.com/theapemachine/qcircuit/internal/report"
)

// Func is the signature shared by every demo.
type Func func(ctx context.Context, cfg *envconfig.Config, log zerolog.Logger, out io.Writer) error

const histogramWidth = 40

// Main is the whole body of a demo command: load overrides, run, exit non-zero on failure.
func Main(name string, fn Func) {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)

	code := Launch(ctx, name, fn, envconfig.Load, os.Stdout, os.Stderr)
	stop()
	os.Exit(code)
}

/*
Launch loads the configuration and runs fn. A configuration that fails to
load is logged at the default level and ends the command with 1 before
anything is simulated.
*/
func Launch(
	ctx context.Context, name string, fn Func,
	load func() (*envconfig.Config, error), out, logOut io.Writer,
) int {
	cfg, err := load()
	if err != nil {
		log := logger.NewWithWriter(logger.Config{Level: "info", Pretty: true}, logOut)
		log.Error().Err(err).Str("demo", name).Msg("invalid configuration")
		return 1
	}

	log := logger.NewWithWriter(logger.Config{Level: cfg.LogLevel, Pretty: cfg.LogPretty}, logOut)
	return Run(ctx, name, fn, cfg, log, out)
}

// Run executes fn and maps its outcome to an exit code.
func Run(ctx context.Context, name string, fn Func, cfg *envconfig.Config, log zerolog.Logger, out io.Writer) int {
	start := time.Now()

	if err := fn(ctx, cfg, log, out); err != nil {
		log.Error().Err(err).Str("demo", name).Msg("demo failed")
		return 1
	}

	log.Info().Str("demo", name).Dur("elapsed", time.Since(start)).Msg("demo completed")
	return 0
}

// prepare rejects settings that would otherwise only fail after the backend has run.
func prepare(cfg *envconfig.Config) error {
	return report.ValidFormat(cfg.ArtifactFormat)
}

func newSimulator(cfg *envconfig.Config) *qcircuit.Simulator {
	return qcircuit.NewSimulator(cfg.SimulatorOptions()...)
}

func section(out io.Writer, title string) {
	fmt.Fprintf(out, "\n%s\n", title)
}

func save(cfg *envconfig.Config, log zerolog.Logger, out io.Writer, name string, a *report.Artifact) error {
	path, err := report.WriteArtifact(cfg.ArtifactDir, name, cfg.ArtifactFormat, a)
	if err != nil {
		return err
	}

	log.Info().Str("demo", a.Demo).Str("path", path).Msg("artifact written")
	fmt.Fprintf(out, "\nResults saved as '%s'\n", path)
	return nil
}

func logMetrics(log zerolog.Logger, sim *qcircuit.Simulator) {
	log.Debug().Fields(sim.Metrics().ExportMetrics()).Msg("simulator metrics")
}

func blochVectors(out io.Writer, sv *qcircuit.StateVector) error {
	for q := 0; q < sv.Size(); q++ {
		qubit, err := sv.Qubit(q)
		if err != nil {
			return err
		}
		fmt.Fprintln(out, report.Bloch(fmt.Sprintf("q[%d]", q), qubit.Bloch()))
	}
	return nil
}
