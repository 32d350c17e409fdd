package qcircuit

import (
	"sort"

	"gonum.org/v1/gonum/floats"
)

/*
Counts maps an observed bit pattern to the number of shots that produced it.
Key character i is the measured value of qubit i. A Counts returned by a
Backend is treated as read-only.
*/
type Counts map[string]int

// Outcome is a single row of Counts.
type Outcome struct {
	Bits  string
	Count int
}

// Total is the number of shots recorded.
func (c Counts) Total() int {
	total := 0
	for _, n := range c {
		total += n
	}
	return total
}

// Merge adds other into c.
func (c Counts) Merge(other Counts) {
	for bits, n := range other {
		c[bits] += n
	}
}

/*
Sorted returns the outcomes ordered by descending count. Ties are broken
by bit pattern so the order is stable across runs.
*/
func (c Counts) Sorted() []Outcome {
	out := make([]Outcome, 0, len(c))
	for bits, n := range c {
		out = append(out, Outcome{Bits: bits, Count: n})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Count != out[j].Count {
			return out[i].Count > out[j].Count
		}
		return out[i].Bits < out[j].Bits
	})
	return out
}

// MostFrequent returns the plurality outcome, or "" for empty counts.
func (c Counts) MostFrequent() (string, int) {
	sorted := c.Sorted()
	if len(sorted) == 0 {
		return "", 0
	}
	return sorted[0].Bits, sorted[0].Count
}

// Probabilities converts counts into relative frequencies.
func (c Counts) Probabilities() map[string]float64 {
	keys := make([]string, 0, len(c))
	freq := make([]float64, 0, len(c))
	for bits, n := range c {
		keys = append(keys, bits)
		freq = append(freq, float64(n))
	}

	out := make(map[string]float64, len(c))
	total := floats.Sum(freq)
	if total == 0 {
		return out
	}
	floats.Scale(1/total, freq)
	for i, bits := range keys {
		out[bits] = freq[i]
	}
	return out
}
