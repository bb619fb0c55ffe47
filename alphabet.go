package vestaboard

import (
	"strconv"
	"strings"
	"unicode"

	"github.com/rivo/uniseg"
	"golang.org/x/text/unicode/norm"
)

// Code identifies one flap position: a character or a color tile.
type Code int

const (
	// Blank is the empty flap. It is also the filler used for padding.
	Blank Code = 0
	// Red through Black are solid color tiles.
	Red    Code = 63
	Orange Code = 64
	Yellow Code = 65
	Green  Code = 66
	Blue   Code = 67
	Violet Code = 68
	White  Code = 69
	Black  Code = 70
	// Filled is the all-on tile.
	Filled Code = 71
	// MaxCode is the highest code the board accepts.
	MaxCode Code = Filled
)

const (
	// Rows is the number of lines on the board.
	Rows = 6
	// Cols is the number of flaps per line.
	Cols = 22
)

// glyphs is indexed by code; unassigned codes are empty.
var glyphs = [MaxCode + 1]string{
	0: " ",
	1: "A", 2: "B", 3: "C", 4: "D", 5: "E", 6: "F", 7: "G", 8: "H", 9: "I",
	10: "J", 11: "K", 12: "L", 13: "M", 14: "N", 15: "O", 16: "P", 17: "Q", 18: "R",
	19: "S", 20: "T", 21: "U", 22: "V", 23: "W", 24: "X", 25: "Y", 26: "Z",
	27: "1", 28: "2", 29: "3", 30: "4", 31: "5", 32: "6", 33: "7", 34: "8", 35: "9", 36: "0",
	37: "!", 38: "@", 39: "#", 40: "$", 41: "(", 42: ")",
	44: "-", 46: "+", 47: "&", 48: "=", 49: ";", 50: ":",
	52: "'", 53: "\"", 54: "%", 55: ",", 56: ".",
	59: "/", 60: "?", 62: "°",
	63: "🟥", 64: "🟧", 65: "🟨", 66: "🟩", 67: "🟦", 68: "🟪", 69: "⬜", 70: "⬛",
	71: "█",
}

// variationSelector is the emoji presentation selector some keyboards append to color squares.
const variationSelector = "\uFE0F"

// aliases folds look-alike input onto a canonical glyph.
var aliases = map[string]string{
	"‘": "'", "’": "'", "`": "'", "´": "'",
	"“": "\"", "”": "\"", "„": "\"",
	"–": "-", "‐": "-", "−": "-",
	"º": "°",
}

var codes = func() map[string]Code {
	m := make(map[string]Code, len(glyphs))
	for i, g := range glyphs {
		if g != "" {
			m[g] = Code(i)
		}
	}
	return m
}()

// Normalize returns the canonical glyph for g: letters are upper-cased,
// whitespace collapses to a single space and typographic look-alikes fold
// onto their ASCII forms. Glyphs with no canonical form come back NFC-normalized.
func Normalize(g string) string {
	g = strings.ReplaceAll(norm.NFC.String(g), variationSelector, "")
	if g == "" {
		return g
	}
	if isSpace(g) {
		return " "
	}
	if a, ok := aliases[g]; ok {
		return a
	}
	if up := strings.ToUpper(g); up != g {
		if _, ok := codes[up]; ok {
			return up
		}
	}
	return g
}

// Encode returns the code for a single glyph. {NN} escapes are accepted for
// any code in range, including ones without a printable glyph.
func Encode(g string) (Code, error) {
	if c, ok := parseEscape(g); ok {
		return c, nil
	}
	if c, ok := codes[Normalize(g)]; ok {
		return c, nil
	}
	return Blank, &UnsupportedCharacterError{Glyph: g, Index: -1}
}

// Decode returns the canonical glyph for c.
func Decode(c Code) (string, error) {
	if c < Blank || c > MaxCode || glyphs[c] == "" {
		return "", &InvalidCodeError{Code: c}
	}
	return glyphs[c], nil
}

// ValidCode reports whether c is inside the range the board accepts.
func ValidCode(c Code) bool {
	return c >= Blank && c <= MaxCode
}

// glyphOrEscape is the lossless text form of c used when serializing grids.
func glyphOrEscape(c Code) string {
	if g, err := Decode(c); err == nil {
		return g
	}
	return "{" + strconv.Itoa(int(c)) + "}"
}

func isSpace(s string) bool {
	return s != "" && strings.TrimFunc(s, unicode.IsSpace) == ""
}

// parseEscape recognizes "{N}" or "{NN}" naming a code in range.
func parseEscape(s string) (Code, bool) {
	if len(s) < 3 || len(s) > 4 || s[0] != '{' || s[len(s)-1] != '}' {
		return Blank, false
	}
	digits := s[1 : len(s)-1]
	if digits[0] < '0' || digits[0] > '9' {
		return Blank, false
	}
	n, err := strconv.Atoi(digits)
	if err != nil || !ValidCode(Code(n)) {
		return Blank, false
	}
	return Code(n), true
}

// splitCells breaks text into display cells: one grapheme cluster per cell,
// with {NN} escapes folded into a single cell.
func splitCells(text string) []string {
	if text == "" {
		return nil
	}
	g := uniseg.NewGraphemes(norm.NFC.String(text))
	out := make([]string, 0, len(text))
	for g.Next() {
		out = append(out, g.Str())
	}
	return foldEscapes(out)
}

func foldEscapes(cells []string) []string {
	out := cells[:0]
	for i := 0; i < len(cells); i++ {
		if cells[i] == "{" {
			if folded, n := matchEscape(cells[i:]); n > 0 {
				out = append(out, folded)
				i += n - 1
				continue
			}
		}
		out = append(out, cells[i])
	}
	return out
}

func matchEscape(cells []string) (string, int) {
	for n := 3; n <= 4 && n <= len(cells); n++ {
		if cells[n-1] != "}" {
			continue
		}
		s := strings.Join(cells[:n], "")
		if _, ok := parseEscape(s); ok {
			return s, n
		}
		return "", 0
	}
	return "", 0
}
