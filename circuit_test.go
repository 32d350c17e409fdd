package qcircuit

import (
	"errors"
	"testing"

	. "github.com/smartystreets/goconvey/convey"
)

func TestCircuit(t *testing.T) {
	Convey("Given a new circuit", t, func() {
		Convey("It should reject an empty register", func() {
			c, err := NewCircuit(0)
			So(c, ShouldBeNil)
			So(errors.Is(err, ErrRegisterSize), ShouldBeTrue)
			So(IsConfigError(err), ShouldBeTrue)
		})

		c, err := NewCircuit(3)
		So(err, ShouldBeNil)
		So(c.Size(), ShouldEqual, 3)
		So(c.Len(), ShouldEqual, 0)

		Convey("When appending gates", func() {
			c.H(0).CX(0, 1).RZ(0.25, 2)

			gates := c.Gates()
			So(len(gates), ShouldEqual, 3)
			So(gates[0], ShouldResemble, Gate{Kind: Hadamard, Target: 0})
			So(gates[1].Controls, ShouldResemble, []int{0})
			So(gates[1].Target, ShouldEqual, 1)
			So(gates[2].Theta, ShouldEqual, 0.25)

			Convey("The returned gates should be a copy", func() {
				gates[1].Controls[0] = 2
				So(c.Gates()[1].Controls, ShouldResemble, []int{0})
			})
		})

		Convey("When applying a layer", func() {
			c.Layer(Hadamard)
			So(c.Len(), ShouldEqual, 3)
			for q, g := range c.Gates() {
				So(g.Kind, ShouldEqual, Hadamard)
				So(g.Target, ShouldEqual, q)
			}
		})

		Convey("MCZ should degrade for small control sets", func() {
			c.MCZ(nil, 0)
			c.MCZ([]int{0}, 1)
			c.MCZ([]int{0, 1}, 2)

			gates := c.Gates()
			So(gates[0].Kind, ShouldEqual, PauliZ)
			So(gates[1].Kind, ShouldEqual, ControlledPhase)
			So(gates[2].Kind, ShouldEqual, MultiControlledPhaseFlip)
			So(gates[2].Qubits(), ShouldResemble, []int{0, 1, 2})
		})

		Convey("Compose should require matching registers", func() {
			other, _ := NewCircuit(2)
			err := c.Compose(other)
			So(errors.Is(err, ErrRegisterMismatch), ShouldBeTrue)

			same, _ := NewCircuit(3)
			same.X(2)
			So(c.Compose(same), ShouldBeNil)
			So(c.Gates()[0].Kind, ShouldEqual, PauliX)
		})

		Convey("Equal should compare register and sequence", func() {
			a, _ := NewCircuit(2)
			b, _ := NewCircuit(2)
			a.H(0).CZ(0, 1)
			b.H(0).CZ(0, 1)
			So(a.Equal(b), ShouldBeTrue)

			b.RX(0.1, 1)
			So(a.Equal(b), ShouldBeFalse)
		})
	})
}

func TestGateKind(t *testing.T) {
	Convey("Gate kinds should render their QASM names", t, func() {
		So(Hadamard.String(), ShouldEqual, "h")
		So(MultiControlledPhaseFlip.String(), ShouldEqual, "mcz")
		So(GateKind(99).String(), ShouldEqual, "gate(99)")
		So(RotateX.Parametric(), ShouldBeTrue)
		So(ControlledNot.Parametric(), ShouldBeFalse)
	})
}
