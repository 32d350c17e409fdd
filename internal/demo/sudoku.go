package demo

import (
	"context"
	"fmt"
	"io"

	"github.com/rs/zerolog"
	"github.com/theapemachine/qcircuit/internal/envconfig"
	"github.com/theapemachine/qcircuit/internal/report"
	"github.com/theapemachine/qcircuit/internal/sudoku"
)

// SudokuPuzzle is the 4x4 puzzle solved by the sudoku demo.
var SudokuPuzzle = sudoku.Grid{
	{1, 0, 0, 4},
	{0, 0, 1, 0},
	{4, 0, 0, 0},
	{0, 2, 0, 0},
}

// slowQubits is the register size above which each dense run takes seconds.
const slowQubits = 16

func slowNotice(qubits, runs int) string {
	if qubits <= slowQubits {
		return ""
	}
	return fmt.Sprintf(
		"Simulating %d qubits densely for up to %d angle pairs; expect this to take a minute or more.\n",
		qubits, runs,
	)
}

// Sudoku explores SudokuPuzzle with QAOA and repairs the best guess classically.
func Sudoku(ctx context.Context, cfg *envconfig.Config, log zerolog.Logger, out io.Writer) error {
	return solveSudoku(ctx, cfg, log, out, SudokuPuzzle)
}

func solveSudoku(ctx context.Context, cfg *envconfig.Config, log zerolog.Logger, out io.Writer, puzzle sudoku.Grid) error {
	if err := prepare(cfg); err != nil {
		return err
	}

	sim := newSimulator(cfg)
	defer logMetrics(log, sim)

	solver := sudoku.NewSolver(sim)
	solver.Shots = cfg.ShotsOr(solver.Shots)

	fmt.Fprintln(out, report.Banner("sudoku"))
	section(out, "Initial Sudoku puzzle:")
	fmt.Fprint(out, puzzle.String())

	enc := sudoku.NewEncoding(puzzle)
	fmt.Fprintf(
		out, "\n%d empty cells, %d qubits. Fixed cells stay classical.\n",
		len(puzzle.Empty()), enc.Qubits(),
	)

	runs := len(solver.Gammas) * len(solver.Betas)
	if notice := slowNotice(enc.Qubits(), runs); notice != "" {
		log.Warn().Int("qubits", enc.Qubits()).Int("runs", runs).Msg("large dense simulation")
		fmt.Fprint(out, notice)
	}

	solution, err := solver.Solve(ctx, puzzle)
	if err != nil {
		return err
	}

	log.Info().
		Float64("gamma", solution.Gamma).
		Float64("beta", solution.Beta).
		Int("violations", solution.Violations).
		Msg("best QAOA angles")

	section(out, "Quantum solution (may have violations):")
	fmt.Fprint(out, solution.Grid.String())
	fmt.Fprintf(out, "Number of constraint violations: %d\n", solution.Violations)

	final := solution.Grid
	if solution.Violations > 0 {
		section(out, "Applying classical correction...")
		final = sudoku.Correct(solution.Grid, puzzle)
		fmt.Fprint(out, final.String())
		fmt.Fprintf(out, "Number of constraint violations after correction: %d\n", final.Violations())
	}

	if final.Valid() {
		fmt.Fprintln(out, "\nThe solution is valid!")
	} else {
		fmt.Fprintln(out, "\nThe solution still has violations.")
	}

	artifact := &report.Artifact{
		Demo:   "sudoku",
		Qubits: enc.Qubits(),
		Shots:  solver.Shots,
		Counts: solution.Counts,
		Extra: map[string]any{
			"gamma": solution.Gamma,
			"beta":  solution.Beta,
			"grid":  final.String(),
			"valid": final.Valid(),
		},
	}
	if solution.Circuit != nil {
		artifact.Circuit = solution.Circuit.QASM()
		artifact.Best, _ = solution.Counts.MostFrequent()
	}
	return save(cfg, log, out, "sudoku_results", artifact)
}
