package tables

import "strconv"

// CellKind identifies the underlying type of a Cell.
type CellKind int

// Cell kinds. Spreadsheet exports are loosely typed, so every cell is one of
// these three; all matching logic operates on the string-coerced form.
const (
	KindEmpty CellKind = iota
	KindString
	KindNumber
)

// Cell is a single loosely typed table value: a string, a number, or empty.
type Cell struct {
	Kind CellKind
	Str  string
	Num  float64
}

// String returns a string cell.
func String(s string) Cell {
	return Cell{Kind: KindString, Str: s}
}

// Number returns a numeric cell.
func Number(n float64) Cell {
	return Cell{Kind: KindNumber, Num: n}
}

// Empty returns an empty cell.
func Empty() Cell {
	return Cell{Kind: KindEmpty}
}

// Text returns the textual form of the cell. Numbers use the shortest
// representation that round-trips; empty cells coerce to "".
func (c Cell) Text() string {
	switch c.Kind {
	case KindString:
		return c.Str
	case KindNumber:
		return strconv.FormatFloat(c.Num, 'f', -1, 64)
	default:
		return ""
	}
}

// IsEmpty reports whether the cell is empty or its textual form is "".
func (c Cell) IsEmpty() bool {
	return c.Kind == KindEmpty || c.Text() == ""
}
