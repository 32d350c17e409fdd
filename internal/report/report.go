/*
Package report renders demo results for the terminal and writes result
artifacts to disk. Plotting is not done here; histograms are text bars.
*/
package report

import (
	"fmt"
	"math/cmplx"
	"sort"
	"strings"

	"github.com/charmbracelet/lipgloss"
	figure "github.com/common-nighthawk/go-figure"
	"github.com/theapemachine/qcircuit"
)

var (
	barStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("39"))
	markedStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("205")).Bold(true)
	headerStyle = lipgloss.NewStyle().Bold(true)
)

// Banner renders title as ASCII art.
func Banner(title string) string {
	fig := figure.NewFigure(title, "", true)
	return strings.Join(fig.Slicify(), "\n")
}

/*
Histogram draws one bar per outcome in bit-pattern order, scaled so the
largest count spans width cells. The outcome equal to highlight, if any, is
drawn in a different style.
*/
func Histogram(counts qcircuit.Counts, width int, highlight string) string {
	if len(counts) == 0 {
		return "(no outcomes)\n"
	}
	width = max(width, 1)

	keys := make([]string, 0, len(counts))
	peak := 0
	for bits, n := range counts {
		keys = append(keys, bits)
		peak = max(peak, n)
	}
	sort.Strings(keys)

	total := counts.Total()
	var b strings.Builder
	for _, bits := range keys {
		n := counts[bits]
		cells := n * width / max(peak, 1)
		if n > 0 && cells == 0 {
			cells = 1
		}

		style := barStyle
		if bits == highlight {
			style = markedStyle
		}

		fmt.Fprintf(
			&b, "%s │ %s %d (%.1f%%)\n",
			bits,
			style.Render(strings.Repeat("█", cells)),
			n,
			100*float64(n)/float64(total),
		)
	}
	return b.String()
}

// StateTable lists basis states with amplitude, phase and probability.
func StateTable(states []qcircuit.BasisState) string {
	var b strings.Builder
	b.WriteString(headerStyle.Render("state      amplitude              phase     probability"))
	b.WriteByte('\n')
	for _, s := range states {
		fmt.Fprintf(
			&b, "|%s⟩ %+.4f%+.4fi  %+.4f  %.4f\n",
			s.Bits,
			real(s.Amplitude),
			imag(s.Amplitude),
			cmplx.Phase(s.Amplitude),
			s.Probability,
		)
	}
	return b.String()
}

// Bloch formats a Bloch vector.
func Bloch(label string, v qcircuit.BlochVector) string {
	return fmt.Sprintf("%s: x=%+.3f y=%+.3f z=%+.3f |r|=%.3f", label, v.X, v.Y, v.Z, v.Length())
}
