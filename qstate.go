package qcircuit

import (
	"fmt"
	"math"
	"math/cmplx"
	"math/rand/v2"
	"sort"

	"gonum.org/v1/gonum/floats"
)

type matrix2 [2][2]complex128

var (
	invSqrt2 = complex(1/math.Sqrt2, 0)

	matH = matrix2{{invSqrt2, invSqrt2}, {invSqrt2, -invSqrt2}}
	matX = matrix2{{0, 1}, {1, 0}}
	matZ = matrix2{{1, 0}, {0, -1}}
	matS = matrix2{{1, 0}, {0, 1i}}
	matT = matrix2{{1, 0}, {0, cmplx.Exp(complex(0, math.Pi/4))}}
)

func matRX(theta float64) matrix2 {
	c := complex(math.Cos(theta/2), 0)
	s := complex(0, -math.Sin(theta/2))
	return matrix2{{c, s}, {s, c}}
}

func matRZ(theta float64) matrix2 {
	return matrix2{
		{cmplx.Exp(complex(0, -theta/2)), 0},
		{0, cmplx.Exp(complex(0, theta/2))},
	}
}

/*
StateVector is the dense amplitude vector of an n-qubit register. Bit q of a
basis index is the value of qubit q, so index 5 over three qubits is the
pattern "101".
*/
type StateVector struct {
	Vector []complex128
	qubits int
}

// NewStateVector returns n qubits prepared in |0…0⟩.
func NewStateVector(n int) *StateVector {
	v := make([]complex128, 1<<n)
	v[0] = 1
	return &StateVector{Vector: v, qubits: n}
}

// Size is the number of qubits.
func (sv *StateVector) Size() int {
	return sv.qubits
}

// Clone returns an independent copy.
func (sv *StateVector) Clone() *StateVector {
	v := make([]complex128, len(sv.Vector))
	copy(v, sv.Vector)
	return &StateVector{Vector: v, qubits: sv.qubits}
}

// Apply evolves the state by one gate.
func (sv *StateVector) Apply(g Gate) error {
	if err := sv.check(g); err != nil {
		return err
	}

	switch g.Kind {
	case Hadamard:
		sv.applySingle(g.Target, 0, matH)
	case PauliX:
		sv.applySingle(g.Target, 0, matX)
	case PauliZ:
		sv.applySingle(g.Target, 0, matZ)
	case PhaseS:
		sv.applySingle(g.Target, 0, matS)
	case PhaseT:
		sv.applySingle(g.Target, 0, matT)
	case RotateX:
		sv.applySingle(g.Target, 0, matRX(g.Theta))
	case RotateZ:
		sv.applySingle(g.Target, 0, matRZ(g.Theta))
	case ControlledNot:
		sv.applySingle(g.Target, 1<<g.Controls[0], matX)
	case ControlledPhase, MultiControlledPhaseFlip:
		sv.flipPhase(g.Qubits())
	default:
		return fmt.Errorf("%w: %v", ErrUnsupportedGate, g.Kind)
	}
	return nil
}

func (sv *StateVector) check(g Gate) error {
	if _, ok := gateNames[g.Kind]; !ok {
		return fmt.Errorf("%w: %v", ErrUnsupportedGate, g.Kind)
	}

	switch g.Kind {
	case ControlledNot, ControlledPhase:
		if len(g.Controls) != 1 {
			return fmt.Errorf("%w: %v needs exactly one control", ErrUnsupportedGate, g.Kind)
		}
	case MultiControlledPhaseFlip:
		if len(g.Controls) == 0 {
			return fmt.Errorf("%w: mcz needs at least one control", ErrUnsupportedGate)
		}
	default:
		if len(g.Controls) != 0 {
			return fmt.Errorf("%w: %v takes no controls", ErrUnsupportedGate, g.Kind)
		}
	}

	seen := 0
	for _, q := range g.Qubits() {
		if q < 0 || q >= sv.qubits {
			return fmt.Errorf("%w: %v on q[%d] with %d qubits", ErrQubitOutOfRange, g.Kind, q, sv.qubits)
		}
		if seen&(1<<q) != 0 {
			return fmt.Errorf("%w: %v repeats q[%d]", ErrUnsupportedGate, g.Kind, q)
		}
		seen |= 1 << q
	}
	return nil
}

// applySingle applies m to target on every basis pair whose control bits are set.
func (sv *StateVector) applySingle(target, controlMask int, m matrix2) {
	bit := 1 << target
	for i := range sv.Vector {
		if i&bit != 0 || i&controlMask != controlMask {
			continue
		}
		j := i | bit
		a, b := sv.Vector[i], sv.Vector[j]
		sv.Vector[i] = m[0][0]*a + m[0][1]*b
		sv.Vector[j] = m[1][0]*a + m[1][1]*b
	}
}

// flipPhase negates every amplitude whose listed qubits are all 1.
func (sv *StateVector) flipPhase(qubits []int) {
	mask := 0
	for _, q := range qubits {
		mask |= 1 << q
	}
	for i := range sv.Vector {
		if i&mask == mask {
			sv.Vector[i] = -sv.Vector[i]
		}
	}
}

// Probabilities returns |amplitude|² per basis index.
func (sv *StateVector) Probabilities() []float64 {
	probs := make([]float64, len(sv.Vector))
	for i, amplitude := range sv.Vector {
		prob := cmplx.Abs(amplitude)
		probs[i] = prob * prob
	}
	return probs
}

// Norm is the total probability, 1 up to rounding for any unitary evolution.
func (sv *StateVector) Norm() float64 {
	return floats.Sum(sv.Probabilities())
}

// Probability of observing a specific bit pattern.
func (sv *StateVector) Probability(bits string) float64 {
	idx := BasisIndex(bits)
	if len(bits) != sv.qubits || idx < 0 {
		return 0
	}
	a := cmplx.Abs(sv.Vector[idx])
	return a * a
}

/*
States lists the basis states whose probability is at least minProbability,
in basis-index order.
*/
func (sv *StateVector) States(minProbability float64) []BasisState {
	out := make([]BasisState, 0)
	for i, p := range sv.Probabilities() {
		if p < minProbability || p == 0 {
			continue
		}
		out = append(out, BasisState{
			Bits:        Bitstring(i, sv.qubits),
			Amplitude:   sv.Vector[i],
			Probability: p,
		})
	}
	return out
}

// Qubit traces out every other position and returns the reduced state of q.
func (sv *StateVector) Qubit(q int) (*Qubit, error) {
	if q < 0 || q >= sv.qubits {
		return nil, fmt.Errorf("%w: q[%d] with %d qubits", ErrQubitOutOfRange, q, sv.qubits)
	}

	bit := 1 << q
	out := &Qubit{}
	for i, a := range sv.Vector {
		if i&bit != 0 {
			continue
		}
		b := sv.Vector[i|bit]
		out.rho00 += real(a * cmplx.Conj(a))
		out.rho11 += real(b * cmplx.Conj(b))
		out.rho01 += a * cmplx.Conj(b)
	}
	return out, nil
}

/*
Sample draws shots measurements of every qubit from the current amplitudes
without collapsing the vector. Each measured bit is flipped independently
with probability readoutError.
*/
func (sv *StateVector) Sample(rng *rand.Rand, shots int, readoutError float64) Counts {
	probs := sv.Probabilities()
	cdf := floats.CumSum(make([]float64, len(probs)), probs)
	total := cdf[len(cdf)-1]

	counts := make(Counts)
	for s := 0; s < shots; s++ {
		r := rng.Float64() * total
		idx := sort.Search(len(cdf), func(i int) bool { return cdf[i] > r })
		if idx == len(cdf) {
			idx = len(cdf) - 1
		}
		if readoutError > 0 {
			for q := 0; q < sv.qubits; q++ {
				if rng.Float64() < readoutError {
					idx ^= 1 << q
				}
			}
		}
		counts[Bitstring(idx, sv.qubits)]++
	}
	return counts
}
