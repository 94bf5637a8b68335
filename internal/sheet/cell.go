// Package sheet reads disclosure spreadsheets into a grid of typed cells.
// Readers know nothing about donations; they only preserve whether a cell
// held a number, text, or nothing.
package sheet

import (
	"strconv"
	"strings"
)

// CellKind is the type a spreadsheet cell carried in the source file.
type CellKind int

const (
	CellEmpty CellKind = iota
	CellNumber
	CellText
)

func (k CellKind) String() string {
	switch k {
	case CellNumber:
		return "number"
	case CellText:
		return "text"
	default:
		return "empty"
	}
}

// Cell is one grid cell. Number is set for CellNumber, Text for CellText.
type Cell struct {
	Kind   CellKind
	Number float64
	Text   string
}

// Empty returns an empty cell.
func Empty() Cell { return Cell{} }

// Number returns a numeric cell.
func Number(v float64) Cell { return Cell{Kind: CellNumber, Number: v} }

// Text returns a text cell. Whitespace-only text is treated as empty.
func Text(s string) Cell {
	if strings.TrimSpace(s) == "" {
		return Cell{}
	}
	return Cell{Kind: CellText, Text: s}
}

func (c Cell) IsEmpty() bool  { return c.Kind == CellEmpty }
func (c Cell) IsNumber() bool { return c.Kind == CellNumber }
func (c Cell) IsText() bool   { return c.Kind == CellText }

// String renders the cell the way a spreadsheet shows it unformatted:
// integers without a fraction, other numbers in shortest form.
func (c Cell) String() string {
	switch c.Kind {
	case CellNumber:
		return strconv.FormatFloat(c.Number, 'f', -1, 64)
	case CellText:
		return c.Text
	default:
		return ""
	}
}

// Grid is a 2-D block of cells. Rows may have different lengths.
type Grid [][]Cell

// Cell returns the cell at (row, col), or an empty cell when out of range
// or when col is negative.
func (g Grid) Cell(row, col int) Cell {
	if row < 0 || row >= len(g) || col < 0 || col >= len(g[row]) {
		return Cell{}
	}
	return g[row][col]
}

// Rows returns the number of rows.
func (g Grid) Rows() int { return len(g) }

// Width returns the length of the longest row.
func (g Grid) Width() int {
	width := 0
	for _, row := range g {
		if len(row) > width {
			width = len(row)
		}
	}
	return width
}

// IsBlankRow reports whether every cell of row is empty.
func (g Grid) IsBlankRow(row int) bool {
	if row < 0 || row >= len(g) {
		return true
	}
	for _, c := range g[row] {
		if !c.IsEmpty() {
			return false
		}
	}
	return true
}
