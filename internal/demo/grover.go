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

const (
	GroverTarget = "101"
	GroverShots  = 1024
)

const groverExplanation = `
Grover's search finds a marked item among N = 2^n candidates in about
pi/4 * sqrt(N) steps.

1. Hadamards on every qubit start from the uniform superposition.
2. The oracle flips the sign of the target's amplitude only.
3. The diffuser reflects every amplitude about the mean, which grows the
   marked amplitude and shrinks the rest.
4. Repeating oracle and diffuser the right number of times concentrates
   the probability on the target before measuring.
`

// GroverConfig resolves the search parameters from the embedded constants and overrides.
func GroverConfig(cfg *envconfig.Config) *qcircuit.SearchConfig {
	target := GroverTarget
	if cfg.GroverTarget != "" {
		target = cfg.GroverTarget
	}

	search := qcircuit.NewSearchConfig(len(target), target)
	if cfg.GroverRounds != nil {
		search.Rounds = *cfg.GroverRounds
	}
	search.Shots = cfg.ShotsOr(GroverShots)
	return search
}

// Grover searches for the configured pattern and reports the outcome histogram.
func Grover(ctx context.Context, cfg *envconfig.Config, log zerolog.Logger, out io.Writer) error {
	if err := prepare(cfg); err != nil {
		return err
	}

	search := GroverConfig(cfg)

	sim := newSimulator(cfg)
	defer logMetrics(log, sim)

	fmt.Fprintln(out, report.Banner("grover"))
	fmt.Fprintf(out, "Search space size: %d items\n", 1<<search.Qubits)
	fmt.Fprintf(out, "Target state: |%s>\n", search.Target)
	fmt.Fprintf(out, "Grover iterations: %d\n", search.Rounds)

	log.Info().
		Str("target", search.Target).
		Int("rounds", search.Rounds).
		Int("shots", search.Shots).
		Msg("running search")

	result, err := qcircuit.Search(ctx, sim, search)
	if err != nil {
		return err
	}

	section(out, "Grover's Algorithm Circuit:")
	fmt.Fprint(out, result.Circuit.QASM())

	section(out, "Results:")
	fmt.Fprint(out, report.Histogram(result.Counts, histogramWidth, result.Target))
	fmt.Fprintf(
		out, "\nMost frequent outcome: |%s> (%d/%d shots)\n",
		result.Best, result.BestCount, result.Shots,
	)
	if result.Found() {
		fmt.Fprintln(out, "The target state has the highest probability.")
	} else {
		fmt.Fprintln(out, "The target state was not the most frequent outcome.")
	}

	section(out, "How it works:")
	fmt.Fprint(out, groverExplanation)

	return save(cfg, log, out, "grover_results", &report.Artifact{
		Demo:    "grover",
		Qubits:  result.Circuit.Size(),
		Shots:   result.Shots,
		Circuit: result.Circuit.QASM(),
		Counts:  result.Counts,
		Best:    result.Best,
		Extra: map[string]any{
			"target": result.Target,
			"rounds": result.Rounds,
			"found":  result.Found(),
		},
	})
}
