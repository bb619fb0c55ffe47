package vestaboard

import (
	"fmt"
	"strings"
)

// VerticalAlignment places a grid that has fewer than 6 rows of content.
type VerticalAlignment int

const (
	// PadNone means no choice was made. Short grids are centered and a
	// WarnDefaultCentered warning is raised.
	PadNone VerticalAlignment = iota
	// PadTop keeps content at the top and pads below.
	PadTop
	// PadBottom keeps content at the bottom and pads above.
	PadBottom
	// PadCenter alternates blank rows below then above until the grid is full,
	// so an odd deficit leaves the extra blank row below.
	PadCenter
)

var verticalNames = []string{"top", "bottom", "center", "below", "above"}

func (p VerticalAlignment) String() string {
	switch p {
	case PadNone:
		return "none"
	case PadTop:
		return "top"
	case PadBottom:
		return "bottom"
	case PadCenter:
		return "center"
	default:
		return fmt.Sprintf("VerticalAlignment(%d)", int(p))
	}
}

// ParseVerticalAlignment accepts top (alias below), bottom (alias above), center
// (or centre) and the empty string or "none" for PadNone.
func ParseVerticalAlignment(s string) (VerticalAlignment, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "none":
		return PadNone, nil
	case "top", "below":
		return PadTop, nil
	case "bottom", "above":
		return PadBottom, nil
	case "center", "centre":
		return PadCenter, nil
	}
	if hint := Suggest(s, verticalNames); hint != "" {
		return PadNone, fmt.Errorf("vestaboard: unknown padding %q (did you mean %q?)", s, hint)
	}
	return PadNone, fmt.Errorf("vestaboard: unknown padding %q", s)
}

// FormatText lays out free text on the board. Explicit line breaks are kept,
// each line is word-wrapped to 22 columns, and the result is cut or padded to
// 6 rows. Use WithAlign, WithPad, WithStrictness and WithWarningHandler to
// control the layout.
func FormatText(text string, opts ...FormatOption) (Grid, error) {
	cfg := newFormatConfig(opts)

	var wrapped [][]string
	for _, logical := range splitLines(text) {
		wrapped = append(wrapped, wrapCells(splitCells(logical))...)
	}
	wrapped = clipRows(&cfg, wrapped)

	lines := make([]Line, 0, Rows)
	for i, cells := range wrapped {
		line, err := cfg.formatCells(cells, cfg.align)
		if err != nil {
			return Grid{}, fmt.Errorf("vestaboard: row %d: %w", i, err)
		}
		lines = append(lines, line)
	}
	return cfg.assemble(lines, cfg.pad)
}

// FormatRows fills the board with already-encoded rows. Every row must hold
// exactly 22 codes; rows are never re-wrapped. More than 6 rows are cut, fewer
// are padded according to pad.
func FormatRows(rows [][]int, pad VerticalAlignment, opts ...FormatOption) (Grid, error) {
	cfg := newFormatConfig(opts)
	lines := make([]Line, len(rows))
	for i, row := range rows {
		if len(row) != Cols {
			return Grid{}, &MalformedRowError{Row: i, Length: len(row), Col: -1}
		}
		for j, v := range row {
			lines[i][j] = Code(v)
		}
	}
	return cfg.assemble(clipRows(&cfg, lines), pad)
}

func (c *formatConfig) assemble(lines []Line, pad VerticalAlignment) (Grid, error) {
	var g Grid
	copy(g[:], c.padRows(lines, pad))
	if err := g.Validate(); err != nil {
		return Grid{}, err
	}
	return g, nil
}

func clipRows[T any](c *formatConfig, rows []T) []T {
	if n := len(rows); n > Rows {
		c.warn(WarnRowsTruncated, n-Rows, "the board shows only %d lines; %d were given and only the first %d are shown", Rows, n, Rows)
		return rows[:Rows]
	}
	return rows
}

// padRows fills lines up to Rows with blank lines.
func (c *formatConfig) padRows(lines []Line, pad VerticalAlignment) []Line {
	deficit := Rows - len(lines)
	if deficit <= 0 {
		return lines
	}
	out := make([]Line, 0, Rows)
	switch pad {
	case PadTop:
		out = append(out, lines...)
		out = append(out, make([]Line, deficit)...)
	case PadBottom:
		out = append(out, make([]Line, deficit)...)
		out = append(out, lines...)
	default:
		if pad == PadNone {
			c.warn(WarnDefaultCentered, 0, "%d lines were centered vertically by default; choose a padding to silence this warning", len(lines))
		}
		out = append(out, lines...)
		for len(out) < Rows {
			out = append(out, Line{})
			if len(out) < Rows {
				out = append([]Line{{}}, out...)
			}
		}
	}
	return out
}

func splitLines(text string) []string {
	text = strings.ReplaceAll(text, "\r\n", "\n")
	text = strings.ReplaceAll(text, "\r", "\n")
	return strings.Split(text, "\n")
}

// wrapCells breaks one logical line into rows of at most 22 cells. A row ends
// at the last whitespace at or before column 22; a word longer than the row
// is split at column 22. Whitespace at a break is dropped.
func wrapCells(cells []string) [][]string {
	var out [][]string
	for len(cells) > Cols {
		brk := -1
		for i := Cols; i > 0; i-- {
			if isSpace(cells[i]) {
				brk = i
				break
			}
		}
		var head []string
		if brk > 0 {
			head = trimCellsRight(cells[:brk])
		}
		if len(head) == 0 {
			out = append(out, cells[:Cols])
			cells = cells[Cols:]
			continue
		}
		out = append(out, head)
		cells = trimCellsLeft(cells[brk+1:])
	}
	if len(cells) > 0 || len(out) == 0 {
		out = append(out, cells)
	}
	return out
}

func trimCellsRight(cells []string) []string {
	for len(cells) > 0 && isSpace(cells[len(cells)-1]) {
		cells = cells[:len(cells)-1]
	}
	return cells
}

func trimCellsLeft(cells []string) []string {
	for len(cells) > 0 && isSpace(cells[0]) {
		cells = cells[1:]
	}
	return cells
}
