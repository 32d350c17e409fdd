package demo

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"path/filepath"
	"testing"

	"github.com/rs/zerolog"
	. "github.com/smartystreets/goconvey/convey"
	"github.com/theapemachine/qcircuit"
	"github.com/theapemachine/qcircuit/internal/envconfig"
	"github.com/theapemachine/qcircuit/internal/report"
	"github.com/theapemachine/qcircuit/internal/sudoku"
)

func testConfig(t *testing.T) *envconfig.Config {
	return &envconfig.Config{
		ArtifactDir:    t.TempDir(),
		ArtifactFormat: "json",
		Seed:           11,
		Seeded:         true,
	}
}

func TestHello(t *testing.T) {
	Convey("Given the hello demo", t, func() {
		cfg := testConfig(t)
		out := &bytes.Buffer{}

		So(Hello(context.Background(), cfg, zerolog.Nop(), out), ShouldBeNil)

		Convey("It should print the circuit and a +x Bloch vector", func() {
			So(out.String(), ShouldContainSubstring, "h q[0];")
			So(out.String(), ShouldContainSubstring, "q[0]: x=+1.000")
		})

		Convey("It should save both outcomes", func() {
			a, err := report.ReadArtifact(filepath.Join(cfg.ArtifactDir, "hello_results.json"))
			So(err, ShouldBeNil)
			So(a.Shots, ShouldEqual, 1000)
			So(a.Counts["0"]+a.Counts["1"], ShouldEqual, 1000)
			So(a.Counts["0"], ShouldBeGreaterThan, 400)
			So(a.Counts["1"], ShouldBeGreaterThan, 400)
		})
	})

	Convey("Given an unknown artifact format", t, func() {
		cfg := testConfig(t)
		cfg.ArtifactFormat = "yaml"

		out := &bytes.Buffer{}
		err := Hello(context.Background(), cfg, zerolog.Nop(), out)
		So(errors.Is(err, report.ErrUnknownFormat), ShouldBeTrue)

		Convey("It should fail before anything is simulated", func() {
			So(out.Len(), ShouldEqual, 0)

			for _, fn := range []Func{Entangle, Grover, Sudoku} {
				out.Reset()
				err := fn(context.Background(), cfg, zerolog.Nop(), out)
				So(errors.Is(err, report.ErrUnknownFormat), ShouldBeTrue)
				So(out.Len(), ShouldEqual, 0)
			}
		})
	})
}

func TestEntangle(t *testing.T) {
	Convey("Given the entangle demo", t, func() {
		cfg := testConfig(t)
		cfg.ArtifactFormat = "msgpack"
		out := &bytes.Buffer{}

		So(Entangle(context.Background(), cfg, zerolog.Nop(), out), ShouldBeNil)

		Convey("Only four patterns should be reachable", func() {
			a, err := report.ReadArtifact(filepath.Join(cfg.ArtifactDir, "entangle_results.msgpack"))
			So(err, ShouldBeNil)
			So(a.Qubits, ShouldEqual, 3)

			for bits := range a.Counts {
				So(bits, ShouldBeIn, []string{"000", "100", "011", "111"})
			}
		})

		Convey("The state listing should hide empty amplitudes", func() {
			So(out.String(), ShouldContainSubstring, "|011⟩")
			So(out.String(), ShouldNotContainSubstring, "|010⟩")
		})
	})
}

func TestGrover(t *testing.T) {
	Convey("Given the grover demo", t, func() {
		cfg := testConfig(t)

		Convey("It should find the embedded target", func() {
			out := &bytes.Buffer{}
			So(Grover(context.Background(), cfg, zerolog.Nop(), out), ShouldBeNil)
			So(out.String(), ShouldContainSubstring, "Grover iterations: 2")
			So(out.String(), ShouldContainSubstring, "Most frequent outcome: |101>")

			a, err := report.ReadArtifact(filepath.Join(cfg.ArtifactDir, "grover_results.json"))
			So(err, ShouldBeNil)
			So(a.Best, ShouldEqual, GroverTarget)
			So(a.Extra["found"], ShouldEqual, true)
		})

		Convey("Overrides should replace the embedded constants", func() {
			rounds, shots := 1, 500
			cfg.GroverTarget = "11"
			cfg.GroverRounds = &rounds
			cfg.Shots = &shots

			search := GroverConfig(cfg)
			So(search.Qubits, ShouldEqual, 2)
			So(search.Rounds, ShouldEqual, 1)
			So(search.Shots, ShouldEqual, 500)
		})

		Convey("An explicit zero shot count should be rejected, not replaced", func() {
			zero := 0
			cfg.Shots = &zero

			So(GroverConfig(cfg).Shots, ShouldEqual, 0)

			out := &bytes.Buffer{}
			err := Grover(context.Background(), cfg, zerolog.Nop(), out)
			So(errors.Is(err, qcircuit.ErrInvalidShots), ShouldBeTrue)
			So(out.String(), ShouldNotContainSubstring, "Most frequent outcome")
		})

		Convey("A negative round count should be rejected, not replaced", func() {
			rounds := -3
			cfg.GroverRounds = &rounds

			err := Grover(context.Background(), cfg, zerolog.Nop(), &bytes.Buffer{})
			So(errors.Is(err, qcircuit.ErrInvalidRounds), ShouldBeTrue)
		})

		Convey("A malformed target should be a configuration error", func() {
			cfg.GroverTarget = "1x1"
			err := Grover(context.Background(), cfg, zerolog.Nop(), &bytes.Buffer{})
			So(qcircuit.IsConfigError(err), ShouldBeTrue)
		})
	})
}

func TestSudoku(t *testing.T) {
	Convey("Given a nearly solved puzzle", t, func() {
		cfg := testConfig(t)
		out := &bytes.Buffer{}

		puzzle := sudoku.Grid{
			{1, 0, 0, 4},
			{2, 4, 1, 3},
			{4, 1, 3, 2},
			{3, 2, 4, 1},
		}

		So(solveSudoku(context.Background(), cfg, zerolog.Nop(), out, puzzle), ShouldBeNil)

		Convey("It should report the encoding and save the run", func() {
			So(out.String(), ShouldContainSubstring, "2 empty cells, 4 qubits.")
			So(out.String(), ShouldNotContainSubstring, "expect this to take")

			a, err := report.ReadArtifact(filepath.Join(cfg.ArtifactDir, "sudoku_results.json"))
			So(err, ShouldBeNil)
			So(a.Qubits, ShouldEqual, 4)
			So(a.Counts, ShouldNotBeEmpty)
			So(a.Circuit, ShouldStartWith, "qreg q[4];")
		})
	})
}

func TestSudokuShots(t *testing.T) {
	Convey("Given an explicit negative shot count", t, func() {
		cfg := testConfig(t)
		shots := -5
		cfg.Shots = &shots

		puzzle := sudoku.Grid{
			{1, 0, 0, 4},
			{2, 4, 1, 3},
			{4, 1, 3, 2},
			{3, 2, 4, 1},
		}

		err := solveSudoku(context.Background(), cfg, zerolog.Nop(), &bytes.Buffer{}, puzzle)
		So(errors.Is(err, qcircuit.ErrInvalidShots), ShouldBeTrue)
	})
}

func TestSlowNotice(t *testing.T) {
	Convey("Given the size of a sudoku encoding", t, func() {
		So(slowNotice(4, 16), ShouldBeEmpty)
		So(slowNotice(slowQubits, 16), ShouldBeEmpty)
		So(slowNotice(22, 16), ShouldContainSubstring, "Simulating 22 qubits densely for up to 16 angle pairs")
	})
}

func TestLaunch(t *testing.T) {
	Convey("Given a demo command", t, func() {
		logs := &bytes.Buffer{}
		out := &bytes.Buffer{}
		ran := false
		fn := func(context.Context, *envconfig.Config, zerolog.Logger, io.Writer) error {
			ran = true
			return nil
		}

		Convey("A configuration that fails to load should exit 1 without running", func() {
			load := func() (*envconfig.Config, error) {
				return nil, fmt.Errorf("%w: QCIRCUIT_SHOTS=0", qcircuit.ErrInvalidShots)
			}

			So(Launch(context.Background(), "grover", fn, load, out, logs), ShouldEqual, 1)
			So(ran, ShouldBeFalse)
			So(logs.String(), ShouldContainSubstring, "invalid configuration")
		})

		Convey("A zero shot count in the environment should end the grover command", func() {
			for _, key := range []string{"QCIRCUIT_SEED", "QCIRCUIT_READOUT_ERROR", "QCIRCUIT_LOG_PRETTY", "GROVER_ROUNDS"} {
				t.Setenv(key, "")
			}
			t.Setenv("QCIRCUIT_SHOTS", "0")
			t.Setenv("QCIRCUIT_ARTIFACT_DIR", t.TempDir())

			So(Launch(context.Background(), "grover", Grover, envconfig.Load, out, logs), ShouldEqual, 1)
			So(out.String(), ShouldNotContainSubstring, "Most frequent outcome")
		})

		Convey("A valid configuration should run the demo", func() {
			load := func() (*envconfig.Config, error) { return testConfig(t), nil }

			So(Launch(context.Background(), "noop", fn, load, out, logs), ShouldEqual, 0)
			So(ran, ShouldBeTrue)
		})
	})
}

func TestRun(t *testing.T) {
	Convey("Given a demo function", t, func() {
		logs := &bytes.Buffer{}
		log := zerolog.New(logs)

		Convey("A failure should exit with 1 and be logged", func() {
			boom := errors.New("backend down")
			fail := func(context.Context, *envconfig.Config, zerolog.Logger, io.Writer) error { return boom }

			So(Run(context.Background(), "broken", fail, testConfig(t), log, &bytes.Buffer{}), ShouldEqual, 1)
			So(logs.String(), ShouldContainSubstring, `"error":"backend down"`)
			So(logs.String(), ShouldContainSubstring, `"demo":"broken"`)
		})

		Convey("A success should exit with 0", func() {
			So(Run(context.Background(), "hello", Hello, testConfig(t), log, &bytes.Buffer{}), ShouldEqual, 0)
			So(logs.String(), ShouldContainSubstring, "demo completed")
		})
	})
}
