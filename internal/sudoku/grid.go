/*
Package sudoku is a toy constraint-satisfaction demo: a 4x4 Sudoku whose
empty cells are encoded in qubits, explored with a QAOA-style circuit and
then repaired classically.
*/
package sudoku

import (
	"slices"
	"strings"
)

const (
	Size    = 4
	BoxSize = 2
)

// Grid is a 4x4 puzzle; 0 marks an empty cell.
type Grid [Size][Size]int

// Cell addresses one grid position.
type Cell struct {
	Row int
	Col int
}

// Box is the index of the 2x2 box containing the cell.
func (c Cell) Box() int {
	return (c.Row/BoxSize)*BoxSize + c.Col/BoxSize
}

// SharesUnit reports whether two distinct cells share a row, column or box.
func (c Cell) SharesUnit(other Cell) bool {
	if c == other {
		return false
	}
	return c.Row == other.Row || c.Col == other.Col || c.Box() == other.Box()
}

// Empty lists the empty cells in row-major order.
func (g Grid) Empty() []Cell {
	cells := make([]Cell, 0)
	for r := 0; r < Size; r++ {
		for c := 0; c < Size; c++ {
			if g[r][c] == 0 {
				cells = append(cells, Cell{Row: r, Col: c})
			}
		}
	}
	return cells
}

// units returns every row, column and box as a list of cell values.
func (g Grid) units() [][]int {
	units := make([][]int, 0, 3*Size)
	for i := 0; i < Size; i++ {
		row := make([]int, 0, Size)
		col := make([]int, 0, Size)
		for j := 0; j < Size; j++ {
			row = append(row, g[i][j])
			col = append(col, g[j][i])
		}
		units = append(units, row, col)
	}
	for br := 0; br < Size; br += BoxSize {
		for bc := 0; bc < Size; bc += BoxSize {
			box := make([]int, 0, Size)
			for i := 0; i < BoxSize; i++ {
				for j := 0; j < BoxSize; j++ {
					box = append(box, g[br+i][bc+j])
				}
			}
			units = append(units, box)
		}
	}
	return units
}

// Valid reports whether every row, column and box holds 1..4 exactly once.
func (g Grid) Valid() bool {
	for _, unit := range g.units() {
		sorted := slices.Clone(unit)
		slices.Sort(sorted)
		if !slices.Equal(sorted, []int{1, 2, 3, 4}) {
			return false
		}
	}
	return true
}

/*
Violations counts surplus repeats: a value appearing k > 1 times in a unit
contributes k-1. Empty cells are ignored.
*/
func (g Grid) Violations() int {
	violations := 0
	for _, unit := range g.units() {
		seen := map[int]int{}
		for _, v := range unit {
			if v != 0 {
				seen[v]++
			}
		}
		for _, n := range seen {
			if n > 1 {
				violations += n - 1
			}
		}
	}
	return violations
}

func (g Grid) String() string {
	var b strings.Builder
	b.WriteString("+-----+-----+\n")
	for r := 0; r < Size; r++ {
		b.WriteString("| ")
		for c := 0; c < Size; c++ {
			if g[r][c] == 0 {
				b.WriteString(". ")
			} else {
				b.WriteByte(byte('0' + g[r][c]))
				b.WriteByte(' ')
			}
			if c == BoxSize-1 {
				b.WriteString("| ")
			}
		}
		b.WriteString("|\n")
		if r == BoxSize-1 {
			b.WriteString("+-----+-----+\n")
		}
	}
	b.WriteString("+-----+-----+\n")
	return b.String()
}

func missing(values []int) []int {
	out := make([]int, 0)
	for v := 1; v <= Size; v++ {
		if !slices.Contains(values, v) {
			out = append(out, v)
		}
	}
	return out
}

/*
Correct repairs repeats greedily, never touching cells fixed in initial. Each
pass rewrites one duplicate in a row, or failing that in a column, with the
first value missing from that unit. It stops after ten passes or when a pass
changes nothing.
*/
func Correct(grid, initial Grid) Grid {
	corrected := grid

	for pass := 0; pass < 10; pass++ {
		if !fixRow(&corrected, initial) && !fixColumn(&corrected, initial) {
			break
		}
	}
	return corrected
}

func fixRow(g *Grid, initial Grid) bool {
	for r := 0; r < Size; r++ {
		row := g[r][:]
		for v := 1; v <= Size; v++ {
			if count(row, v) < 2 {
				continue
			}
			for c := 0; c < Size; c++ {
				if g[r][c] == v && initial[r][c] == 0 {
					if free := missing(row); len(free) > 0 {
						g[r][c] = free[0]
						return true
					}
				}
			}
		}
	}
	return false
}

func fixColumn(g *Grid, initial Grid) bool {
	for c := 0; c < Size; c++ {
		col := make([]int, Size)
		for r := 0; r < Size; r++ {
			col[r] = g[r][c]
		}
		for v := 1; v <= Size; v++ {
			if count(col, v) < 2 {
				continue
			}
			for r := 0; r < Size; r++ {
				if g[r][c] == v && initial[r][c] == 0 {
					if free := missing(col); len(free) > 0 {
						g[r][c] = free[0]
						return true
					}
				}
			}
		}
	}
	return false
}

func count(values []int, v int) int {
	n := 0
	for _, x := range values {
		if x == v {
			n++
		}
	}
	return n
}
