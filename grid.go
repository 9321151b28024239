package main

import "strings"

// Grid is the rectangular (possibly ragged) character board a program's
// source text is loaded into. Rows shorter than the widest row, and any
// read past a row's end or outside [0, rows), yield the NUL sentinel.
type Grid struct {
	rows [][]byte
	cols int
}

func newGrid(src string) Grid {
	lines := strings.Split(src, "\n")
	g := Grid{rows: make([][]byte, len(lines))}
	for i, line := range lines {
		g.rows[i] = []byte(line)
		if len(line) > g.cols {
			g.cols = len(line)
		}
	}
	return g
}

// at reads the function character at c. Out-of-bounds reads, in either
// axis, return NUL.
func (g Grid) at(c Coordinate) byte {
	if c.Y < 0 || c.Y >= len(g.rows) {
		return 0
	}
	row := g.rows[c.Y]
	if c.X < 0 || c.X >= len(row) {
		return 0
	}
	return row[c.X]
}

func (g Grid) height() int { return len(g.rows) }
func (g Grid) width() int  { return g.cols }
