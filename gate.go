package qcircuit

import (
	"fmt"
	"slices"
	"strings"
)

// GateKind identifies one of the elementary operations a circuit can carry.
type GateKind int

const (
	Hadamard GateKind = iota
	PauliX
	PauliZ
	PhaseS
	PhaseT
	RotateX
	RotateZ
	ControlledNot
	ControlledPhase
	MultiControlledPhaseFlip
)

var gateNames = map[GateKind]string{
	Hadamard:                 "h",
	PauliX:                   "x",
	PauliZ:                   "z",
	PhaseS:                   "s",
	PhaseT:                   "t",
	RotateX:                  "rx",
	RotateZ:                  "rz",
	ControlledNot:            "cx",
	ControlledPhase:          "cz",
	MultiControlledPhaseFlip: "mcz",
}

func (k GateKind) String() string {
	if name, ok := gateNames[k]; ok {
		return name
	}
	return fmt.Sprintf("gate(%d)", int(k))
}

// Parametric reports whether the gate carries a rotation angle.
func (k GateKind) Parametric() bool {
	return k == RotateX || k == RotateZ
}

/*
Gate is a single declarative operation on register positions. Controls is
empty for single-qubit gates. Theta is only meaningful for rotations.

The phase gates (CZ and MCZ) are symmetric in their qubits; the split into
controls and target is kept so the sequence reads the way it was built.
*/
type Gate struct {
	Kind     GateKind
	Controls []int
	Target   int
	Theta    float64
}

// Qubits returns every register position the gate touches, controls first.
func (g Gate) Qubits() []int {
	return append(slices.Clone(g.Controls), g.Target)
}

// Equal compares two gates field by field.
func (g Gate) Equal(other Gate) bool {
	return g.Kind == other.Kind &&
		g.Target == other.Target &&
		g.Theta == other.Theta &&
		slices.Equal(g.Controls, other.Controls)
}

func (g Gate) String() string {
	var b strings.Builder
	b.WriteString(g.Kind.String())
	if g.Kind.Parametric() {
		fmt.Fprintf(&b, "(%g)", g.Theta)
	}
	b.WriteByte(' ')
	for i, q := range g.Qubits() {
		if i > 0 {
			b.WriteByte(',')
		}
		fmt.Fprintf(&b, "q[%d]", q)
	}
	return b.String()
}
