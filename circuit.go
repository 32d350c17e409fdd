package qcircuit

import (
	"fmt"
	"slices"
)

/*
Circuit is a register of qubit slots together with the ordered gate sequence
applied to it. It owns no quantum state; a Backend interprets the sequence.
A Circuit is a local value and is never shared between runs.
*/
type Circuit struct {
	qubits int
	gates  []Gate
}

// NewCircuit creates an empty circuit over a register of n qubits.
func NewCircuit(n int) (*Circuit, error) {
	if n < 1 {
		return nil, fmt.Errorf("%w: got %d", ErrRegisterSize, n)
	}

	return &Circuit{
		qubits: n,
		gates:  make([]Gate, 0, 4*n),
	}, nil
}

// Size is the number of qubits in the register.
func (c *Circuit) Size() int {
	return c.qubits
}

// Len is the number of gates appended so far.
func (c *Circuit) Len() int {
	return len(c.gates)
}

// Gates returns a copy of the gate sequence.
func (c *Circuit) Gates() []Gate {
	out := make([]Gate, len(c.gates))
	for i, g := range c.gates {
		out[i] = g
		out[i].Controls = slices.Clone(g.Controls)
	}
	return out
}

// Append adds gates to the end of the sequence.
func (c *Circuit) Append(gates ...Gate) *Circuit {
	c.gates = append(c.gates, gates...)
	return c
}

func (c *Circuit) H(q int) *Circuit { return c.Append(Gate{Kind: Hadamard, Target: q}) }
func (c *Circuit) X(q int) *Circuit { return c.Append(Gate{Kind: PauliX, Target: q}) }
func (c *Circuit) Z(q int) *Circuit { return c.Append(Gate{Kind: PauliZ, Target: q}) }
func (c *Circuit) S(q int) *Circuit { return c.Append(Gate{Kind: PhaseS, Target: q}) }
func (c *Circuit) T(q int) *Circuit { return c.Append(Gate{Kind: PhaseT, Target: q}) }

func (c *Circuit) RX(theta float64, q int) *Circuit {
	return c.Append(Gate{Kind: RotateX, Target: q, Theta: theta})
}

func (c *Circuit) RZ(theta float64, q int) *Circuit {
	return c.Append(Gate{Kind: RotateZ, Target: q, Theta: theta})
}

func (c *Circuit) CX(control, target int) *Circuit {
	return c.Append(Gate{Kind: ControlledNot, Controls: []int{control}, Target: target})
}

func (c *Circuit) CZ(control, target int) *Circuit {
	return c.Append(Gate{Kind: ControlledPhase, Controls: []int{control}, Target: target})
}

/*
MCZ flips the phase of the basis states in which every listed qubit is 1.
It degrades to Z or CZ when fewer than two controls are given, so callers
do not have to special-case small registers.
*/
func (c *Circuit) MCZ(controls []int, target int) *Circuit {
	switch len(controls) {
	case 0:
		return c.Z(target)
	case 1:
		return c.CZ(controls[0], target)
	}
	return c.Append(Gate{
		Kind:     MultiControlledPhaseFlip,
		Controls: slices.Clone(controls),
		Target:   target,
	})
}

// Layer applies a single-qubit gate kind to every qubit in order.
func (c *Circuit) Layer(kind GateKind) *Circuit {
	for q := 0; q < c.qubits; q++ {
		c.Append(Gate{Kind: kind, Target: q})
	}
	return c
}

// Compose appends the gate sequence of other, which must share the register size.
func (c *Circuit) Compose(other *Circuit) error {
	if other.qubits != c.qubits {
		return fmt.Errorf(
			"%w: cannot compose %d-qubit circuit onto %d qubits",
			ErrRegisterMismatch, other.qubits, c.qubits,
		)
	}
	c.Append(other.Gates()...)
	return nil
}

// Equal reports whether both circuits have the same register and gate sequence.
func (c *Circuit) Equal(other *Circuit) bool {
	if c.qubits != other.qubits || len(c.gates) != len(other.gates) {
		return false
	}
	for i := range c.gates {
		if !c.gates[i].Equal(other.gates[i]) {
			return false
		}
	}
	return true
}
