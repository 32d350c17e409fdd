package qcircuit

/*
BasisState is one computational basis state of a register together with its
amplitude and measurement probability. Bits follows the same ordering as
Counts keys: character i is qubit i.
*/
type BasisState struct {
	Bits        string
	Amplitude   complex128
	Probability float64
}

// Bitstring renders basis index idx over n qubits, qubit 0 first.
func Bitstring(idx, n int) string {
	buf := make([]byte, n)
	for q := 0; q < n; q++ {
		if idx&(1<<q) != 0 {
			buf[q] = '1'
		} else {
			buf[q] = '0'
		}
	}
	return string(buf)
}

// BasisIndex is the inverse of Bitstring. It returns -1 for anything that is
// not a binary pattern.
func BasisIndex(bits string) int {
	idx := 0
	for q := 0; q < len(bits); q++ {
		switch bits[q] {
		case '1':
			idx |= 1 << q
		case '0':
		default:
			return -1
		}
	}
	return idx
}
