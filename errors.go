package qcircuit

import "errors"

// Configuration errors. These are raised while a circuit or a run is being
// assembled and always before a backend sees the circuit.
var (
	ErrRegisterSize     = errors.New("register size must be at least 1")
	ErrRegisterMismatch = errors.New("circuits act on registers of different size")
	ErrPatternLength    = errors.New("target pattern length does not match register size")
	ErrPatternSymbol    = errors.New("target pattern may only contain '0' and '1'")
	ErrInvalidShots     = errors.New("shot count must be positive")
	ErrInvalidRounds    = errors.New("round count must not be negative")
	ErrAlreadyRun       = errors.New("search builder has already been run")
	ErrReadoutError     = errors.New("readout error probability must be in [0, 0.5)")
)

// Backend errors.
var (
	ErrRegisterTooLarge = errors.New("register too large for state-vector simulation")
	ErrQubitOutOfRange  = errors.New("qubit index out of range")
	ErrUnsupportedGate  = errors.New("unsupported gate")
)

/*
IsConfigError reports whether err was caused by invalid run or circuit
configuration rather than by the backend.
*/
func IsConfigError(err error) bool {
	for _, target := range []error{
		ErrRegisterSize, ErrRegisterMismatch, ErrPatternLength, ErrPatternSymbol,
		ErrInvalidShots, ErrInvalidRounds, ErrAlreadyRun, ErrReadoutError,
	} {
		if errors.Is(err, target) {
			return true
		}
	}
	return false
}
