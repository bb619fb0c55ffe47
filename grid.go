package vestaboard

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
)

// Grid is one full screen: 6 lines of 22 codes. It encodes to JSON as an
// array of 6 arrays of 22 integers, the shape both board APIs accept.
type Grid [Rows]Line

// Validate checks a raw grid and converts it. It fails with *GridShapeError
// unless there are exactly 6 rows of exactly 22 codes, each in 0..MaxCode.
func Validate(rows [][]int) (Grid, error) {
	var g Grid
	if len(rows) != Rows {
		return g, &GridShapeError{Rows: len(rows), Row: -1, Col: -1}
	}
	for i, row := range rows {
		if len(row) != Cols {
			return Grid{}, &GridShapeError{Rows: Rows, Row: i, Length: len(row), Col: -1}
		}
		for j, v := range row {
			g[i][j] = Code(v)
		}
	}
	if err := g.Validate(); err != nil {
		return Grid{}, err
	}
	return g, nil
}

// Validate checks that every code is inside the range the board accepts.
// The shape is guaranteed by the type.
func (g Grid) Validate() error {
	for i, line := range g {
		for j, c := range line {
			if !ValidCode(c) {
				return &GridShapeError{Rows: Rows, Row: i, Length: Cols, Col: j, Code: int(c)}
			}
		}
	}
	return nil
}

// Ints returns the grid as nested integer slices.
func (g Grid) Ints() [][]int {
	out := make([][]int, Rows)
	for i, line := range g {
		out[i] = line.Ints()
	}
	return out
}

// String renders the grid as 6 newline-separated lines of glyphs. Formatting
// the result with FormatText gives back the same grid.
func (g Grid) String() string {
	parts := make([]string, Rows)
	for i, line := range g {
		parts[i] = line.String()
	}
	return strings.Join(parts, "\n")
}

// UnmarshalJSON accepts only a well-formed 6x22 array of in-range integers.
func (g *Grid) UnmarshalJSON(data []byte) error {
	rows, err := ParseRows(data)
	if err != nil {
		return err
	}
	v, err := Validate(rows)
	if err != nil {
		return err
	}
	*g = v
	return nil
}

// ParseRows decodes a JSON array of rows. Each row must be an array of
// integers; anything else fails with *MalformedRowError. Row lengths are
// checked later by FormatRows or Validate.
func ParseRows(data []byte) ([][]int, error) {
	var raw []json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("vestaboard: rows must be a JSON array: %w", err)
	}
	rows := make([][]int, len(raw))
	for i, r := range raw {
		var cells []json.RawMessage
		if err := json.Unmarshal(r, &cells); err != nil || cells == nil {
			return nil, &MalformedRowError{Row: i, Col: -1, Reason: "row is not a list of integers"}
		}
		row := make([]int, len(cells))
		for j, cell := range cells {
			n, reason := parseInt(cell)
			if reason != "" {
				return nil, &MalformedRowError{Row: i, Length: len(cells), Col: j, Reason: fmt.Sprintf("%s %s", cell, reason)}
			}
			row[j] = n
		}
		rows[i] = row
	}
	return rows, nil
}

// parseInt decodes one cell. A non-empty reason explains why it is not a usable code.
func parseInt(raw json.RawMessage) (int, string) {
	dec := json.NewDecoder(bytes.NewReader(raw))
	dec.UseNumber()
	var v interface{}
	if err := dec.Decode(&v); err != nil {
		return 0, "is not an integer"
	}
	num, ok := v.(json.Number)
	if !ok || strings.ContainsAny(num.String(), ".eE") {
		return 0, "is not an integer"
	}
	n, err := strconv.ParseInt(num.String(), 10, strconv.IntSize)
	if err != nil {
		return 0, "is out of range"
	}
	return int(n), ""
}
