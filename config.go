package qcircuit

import (
	"fmt"
	"math"
	"strings"
)

// SearchConfig holds the constants of one amplitude-amplification run.
type SearchConfig struct {
	Qubits int
	Target string
	Rounds int
	Shots  int
}

/*
NewSearchConfig returns the defaults for a search over n qubits: the
textbook round count and 1024 shots.
*/
func NewSearchConfig(n int, target string) *SearchConfig {
	return &SearchConfig{
		Qubits: n,
		Target: target,
		Rounds: OptimalRounds(n),
		Shots:  1024,
	}
}

// Validate reports the first configuration error, if any.
func (c *SearchConfig) Validate() error {
	if c.Qubits < 1 {
		return fmt.Errorf("%w: got %d", ErrRegisterSize, c.Qubits)
	}
	if err := ValidatePattern(c.Target, c.Qubits); err != nil {
		return err
	}
	if c.Rounds < 0 {
		return fmt.Errorf("%w: got %d", ErrInvalidRounds, c.Rounds)
	}
	if c.Shots <= 0 {
		return fmt.Errorf("%w: got %d", ErrInvalidShots, c.Shots)
	}
	return nil
}

// ValidatePattern checks that pattern is a binary string of length n.
func ValidatePattern(pattern string, n int) error {
	if len(pattern) != n {
		return fmt.Errorf(
			"%w: pattern %q has %d bits, register has %d",
			ErrPatternLength, pattern, len(pattern), n,
		)
	}
	if strings.Trim(pattern, "01") != "" {
		return fmt.Errorf("%w: %q", ErrPatternSymbol, pattern)
	}
	return nil
}

// OptimalRounds is floor(π/4 · √(2^n)), never less than one.
func OptimalRounds(n int) int {
	if n < 1 {
		return 1
	}
	return max(1, int(math.Pi/4*math.Sqrt(math.Exp2(float64(n)))))
}
