package vestaboard

import (
	"fmt"
	"strings"
)

// Line is one row of the board. The array length keeps every Line exactly 22 codes wide.
type Line [Cols]Code

// HorizontalAlignment places text shorter than a full line.
type HorizontalAlignment int

const (
	// AlignLeft starts text at column 0.
	AlignLeft HorizontalAlignment = iota
	// AlignCenter splits the free columns around the text; an odd column goes after it.
	AlignCenter
	// AlignRight ends text at the last column.
	AlignRight
)

var horizontalNames = []string{"left", "center", "right"}

func (a HorizontalAlignment) String() string {
	if a >= AlignLeft && int(a) < len(horizontalNames) {
		return horizontalNames[a]
	}
	return fmt.Sprintf("HorizontalAlignment(%d)", int(a))
}

// ParseHorizontalAlignment accepts left, center (or centre) and right, case-insensitively.
// An empty string selects AlignLeft.
func ParseHorizontalAlignment(s string) (HorizontalAlignment, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "left":
		return AlignLeft, nil
	case "center", "centre":
		return AlignCenter, nil
	case "right":
		return AlignRight, nil
	}
	if hint := Suggest(s, horizontalNames); hint != "" {
		return AlignLeft, fmt.Errorf("vestaboard: unknown alignment %q (did you mean %q?)", s, hint)
	}
	return AlignLeft, fmt.Errorf("vestaboard: unknown alignment %q", s)
}

// FormatLine converts one line of text into 22 codes. Text beyond 22 cells is cut
// and reported as a WarnColumnsTruncated warning. Shorter text is padded with
// blanks according to align.
func FormatLine(text string, align HorizontalAlignment, opts ...FormatOption) (Line, error) {
	cfg := newFormatConfig(opts)
	return cfg.formatCells(splitCells(text), align)
}

func (c *formatConfig) formatCells(cells []string, align HorizontalAlignment) (Line, error) {
	if n := len(cells); n > Cols {
		c.warn(WarnColumnsTruncated, n-Cols, "line has %d characters; only the first %d are shown", n, Cols)
		cells = cells[:Cols]
	}
	encoded := make([]Code, len(cells))
	for i, cell := range cells {
		code, err := Encode(cell)
		if err != nil {
			if c.strict == Strict {
				return Line{}, &UnsupportedCharacterError{Glyph: cell, Index: i}
			}
			code = Blank
		}
		encoded[i] = code
	}

	var line Line
	start := 0
	switch gap := Cols - len(encoded); align {
	case AlignRight:
		start = gap
	case AlignCenter:
		start = gap / 2
	}
	copy(line[start:], encoded)
	return line, nil
}

// Ints returns the codes as plain integers.
func (l Line) Ints() []int {
	out := make([]int, Cols)
	for i, c := range l {
		out[i] = int(c)
	}
	return out
}

// String renders the line as glyphs. Codes without a glyph are written as {NN}.
func (l Line) String() string {
	b := strings.Builder{}
	for _, c := range l {
		b.WriteString(glyphOrEscape(c))
	}
	return b.String()
}

// IsBlank reports whether every flap in the line is blank.
func (l Line) IsBlank() bool {
	return l == Line{}
}
