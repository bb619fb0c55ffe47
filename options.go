package vestaboard

import (
	"fmt"
	"strings"

	"github.com/agnivade/levenshtein"
)

// Strictness selects what the formatters do with characters the board cannot show.
type Strictness int

const (
	// Lenient replaces unsupported characters with a blank flap.
	Lenient Strictness = iota
	// Strict fails with *UnsupportedCharacterError.
	Strict
)

func (s Strictness) String() string {
	if s == Strict {
		return "strict"
	}
	return "lenient"
}

// WarningKind classifies a non-fatal formatting diagnostic.
type WarningKind int

const (
	// WarnColumnsTruncated means a line was longer than 22 cells and was cut.
	WarnColumnsTruncated WarningKind = iota + 1
	// WarnRowsTruncated means more than 6 rows were produced and the rest were dropped.
	WarnRowsTruncated
	// WarnDefaultCentered means no vertical padding was chosen and a short grid was centered.
	WarnDefaultCentered
)

func (k WarningKind) String() string {
	switch k {
	case WarnColumnsTruncated:
		return "columns-truncated"
	case WarnRowsTruncated:
		return "rows-truncated"
	case WarnDefaultCentered:
		return "default-centered"
	default:
		return fmt.Sprintf("warning(%d)", int(k))
	}
}

// Warning is an advisory raised while formatting. It never stops processing.
type Warning struct {
	Kind WarningKind
	// Dropped counts the cells or rows that were cut; zero for other kinds.
	Dropped int
	Message string
}

func (w Warning) String() string {
	return "vestaboard: " + w.Message
}

// IsTruncation reports whether content was cut to fit the board.
func (w Warning) IsTruncation() bool {
	return w.Kind == WarnColumnsTruncated || w.Kind == WarnRowsTruncated
}

// WarningHandler receives advisories synchronously from the formatting call that raised them.
type WarningHandler func(Warning)

type formatConfig struct {
	align  HorizontalAlignment
	pad    VerticalAlignment
	strict Strictness
	onWarn WarningHandler
}

// FormatOption adjusts a single formatting call.
type FormatOption func(*formatConfig)

// WithAlign sets the horizontal alignment used by FormatText.
func WithAlign(a HorizontalAlignment) FormatOption {
	return func(c *formatConfig) { c.align = a }
}

// WithPad sets the vertical padding used by FormatText.
func WithPad(p VerticalAlignment) FormatOption {
	return func(c *formatConfig) { c.pad = p }
}

// WithStrictness selects how unsupported characters are handled. Default Lenient.
func WithStrictness(s Strictness) FormatOption {
	return func(c *formatConfig) { c.strict = s }
}

// WithWarningHandler installs a sink for truncation and default-centering advisories.
func WithWarningHandler(h WarningHandler) FormatOption {
	return func(c *formatConfig) { c.onWarn = h }
}

func newFormatConfig(opts []FormatOption) formatConfig {
	var c formatConfig
	for _, opt := range opts {
		if opt != nil {
			opt(&c)
		}
	}
	return c
}

func (c *formatConfig) warn(kind WarningKind, dropped int, format string, args ...interface{}) {
	if c.onWarn == nil {
		return
	}
	c.onWarn(Warning{Kind: kind, Dropped: dropped, Message: fmt.Sprintf(format, args...)})
}

// Suggest returns the candidate spelled closest to s, or "" when none is
// within two edits. Used for "did you mean" hints.
func Suggest(s string, candidates []string) string {
	s = strings.ToLower(strings.TrimSpace(s))
	best, bestDist := "", -1
	for _, c := range candidates {
		d := levenshtein.ComputeDistance(s, c)
		if bestDist < 0 || d < bestDist {
			best, bestDist = c, d
		}
	}
	if bestDist < 0 || bestDist > 2 {
		return ""
	}
	return best
}
