package qcircuit

import (
	"math"
	"math/cmplx"
)

/*
Qubit is the reduced state of a single register position, traced out of a
larger state vector. It is stored as the independent entries of its 2x2
density matrix so that entangled positions are described correctly.
*/
type Qubit struct {
	rho00 float64    // |0⟩⟨0| population
	rho11 float64    // |1⟩⟨1| population
	rho01 complex128 // |0⟩⟨1| coherence
}

// BlochVector holds the Cartesian coordinates of a qubit on the Bloch sphere.
type BlochVector struct {
	X float64
	Y float64
	Z float64
}

// Length is 1 for pure states and shrinks towards 0 as the qubit becomes mixed.
func (b BlochVector) Length() float64 {
	return math.Sqrt(b.X*b.X + b.Y*b.Y + b.Z*b.Z)
}

// NewQubit builds the reduced state of a pure single-qubit state α|0⟩ + β|1⟩.
func NewQubit(alpha, beta complex128) *Qubit {
	return &Qubit{
		rho00: real(alpha * cmplx.Conj(alpha)),
		rho11: real(beta * cmplx.Conj(beta)),
		rho01: alpha * cmplx.Conj(beta),
	}
}

// Probabilities returns the chance of measuring 0 and 1.
func (q *Qubit) Probabilities() (float64, float64) {
	return q.rho00, q.rho11
}

// Bloch maps ρ = (I + xX + yY + zZ)/2 onto its (x, y, z) coordinates.
func (q *Qubit) Bloch() BlochVector {
	return BlochVector{
		X: 2 * real(q.rho01),
		Y: -2 * imag(q.rho01),
		Z: q.rho00 - q.rho11,
	}
}

// Purity is Tr(ρ²): 1 for a pure qubit, 0.5 for a maximally mixed one.
func (q *Qubit) Purity() float64 {
	c := cmplx.Abs(q.rho01)
	return q.rho00*q.rho00 + q.rho11*q.rho11 + 2*c*c
}
