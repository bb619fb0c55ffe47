package vestaboard

import (
	"errors"
	"fmt"
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func pad22(s string) string {
	return s + strings.Repeat(" ", Cols-len(s))
}

func rowStrings(g Grid) []string {
	out := make([]string, Rows)
	for i, line := range g {
		out[i] = line.String()
	}
	return out
}

func TestFormatText_AlwaysSixByTwentyTwo(t *testing.T) {
	inputs := []string{
		"",
		"\n\n\n\n\n\n\n\n\n",
		"HELLO",
		strings.Repeat("WORD ", 60),
		strings.Repeat("X", 500),
		"mixed ~ unsupported ⌘ glyphs 🟥 and {63}",
		"line one\r\nline two\rline three",
	}
	for _, in := range inputs {
		g, err := FormatText(in, WithPad(PadTop))
		require.NoError(t, err, "input %q", in)
		rows := g.Ints()
		require.Len(t, rows, Rows)
		for _, r := range rows {
			require.Len(t, r, Cols)
		}
		require.NoError(t, g.Validate())
	}
}

func TestFormatText_WrapsAtLastSpace(t *testing.T) {
	g, err := FormatText("THE QUICK BROWN FOX JUMPS OVER THE LAZY DOG", WithPad(PadTop))
	require.NoError(t, err)
	require.Equal(t, []string{
		pad22("THE QUICK BROWN FOX"),
		pad22("JUMPS OVER THE LAZY"),
		pad22("DOG"),
		pad22(""), pad22(""), pad22(""),
	}, rowStrings(g))
}

func TestFormatText_BreaksOnSpaceAtColumn22(t *testing.T) {
	g, err := FormatText(strings.Repeat("A", Cols)+" B", WithPad(PadTop))
	require.NoError(t, err)
	require.Equal(t, strings.Repeat("A", Cols), g[0].String())
	require.Equal(t, pad22("B"), g[1].String())
	require.True(t, g[2].IsBlank())
}

func TestFormatText_HardBreaksLongWord(t *testing.T) {
	g, err := FormatText(strings.Repeat("X", 30), WithPad(PadTop))
	require.NoError(t, err)
	require.Equal(t, strings.Repeat("X", Cols), g[0].String())
	require.Equal(t, pad22(strings.Repeat("X", 8)), g[1].String())
}

func TestFormatText_HonorsLineBreaksAndAlignment(t *testing.T) {
	g, err := FormatText("HI\nTHERE", WithPad(PadTop), WithAlign(AlignRight))
	require.NoError(t, err)
	require.Equal(t, strings.Repeat(" ", 20)+"HI", g[0].String())
	require.Equal(t, strings.Repeat(" ", 17)+"THERE", g[1].String())
}

func TestFormatText_SevenLinesTruncateWithWarning(t *testing.T) {
	var ws []Warning
	g, err := FormatText("1\n2\n3\n4\n5\n6\n7", collect(&ws))
	require.NoError(t, err)
	require.Equal(t, []string{pad22("1"), pad22("2"), pad22("3"), pad22("4"), pad22("5"), pad22("6")}, rowStrings(g))

	require.Len(t, ws, 1)
	assert.Equal(t, WarnRowsTruncated, ws[0].Kind)
	assert.Equal(t, 1, ws[0].Dropped)
}

func TestFormatText_CenterFourLines(t *testing.T) {
	var ws []Warning
	g, err := FormatText("A\nB\nC\nD", WithPad(PadCenter), collect(&ws))
	require.NoError(t, err)
	require.Empty(t, ws)
	require.Equal(t, []string{pad22(""), pad22("A"), pad22("B"), pad22("C"), pad22("D"), pad22("")}, rowStrings(g))
}

func TestFormatText_CenterOddDeficitLeavesExtraBelow(t *testing.T) {
	g, err := FormatText("A\nB\nC", WithPad(PadCenter))
	require.NoError(t, err)
	require.Equal(t, []string{pad22(""), pad22("A"), pad22("B"), pad22("C"), pad22(""), pad22("")}, rowStrings(g))

	g, err = FormatText("A", WithPad(PadCenter))
	require.NoError(t, err)
	require.Equal(t, pad22("A"), g[2].String())
	for _, i := range []int{0, 1, 3, 4, 5} {
		require.True(t, g[i].IsBlank(), "row %d", i)
	}
}

func TestFormatText_TopAndBottom(t *testing.T) {
	g, err := FormatText("A\nB", WithPad(PadTop))
	require.NoError(t, err)
	require.Equal(t, []string{pad22("A"), pad22("B"), pad22(""), pad22(""), pad22(""), pad22("")}, rowStrings(g))

	g, err = FormatText("A\nB", WithPad(PadBottom))
	require.NoError(t, err)
	require.Equal(t, []string{pad22(""), pad22(""), pad22(""), pad22(""), pad22("A"), pad22("B")}, rowStrings(g))
}

func TestFormatText_DefaultCenteringWarnsOnce(t *testing.T) {
	var ws []Warning
	g, err := FormatText("A\nB\nC\nD", collect(&ws))
	require.NoError(t, err)
	require.Len(t, ws, 1)
	assert.Equal(t, WarnDefaultCentered, ws[0].Kind)
	assert.False(t, ws[0].IsTruncation())

	centered, err := FormatText("A\nB\nC\nD", WithPad(PadCenter))
	require.NoError(t, err)
	require.Equal(t, centered, g)
}

func TestFormatText_StrictErrorNamesRow(t *testing.T) {
	_, err := FormatText("FINE\nNOT ~ FINE", WithStrictness(Strict), WithPad(PadTop))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "row 1")
	var uc *UnsupportedCharacterError
	require.True(t, errors.As(err, &uc))
	require.Equal(t, 4, uc.Index)
}

func TestFormatText_StrictIgnoresDroppedRows(t *testing.T) {
	_, err := FormatText("1\n2\n3\n4\n5\n6\n~", WithStrictness(Strict))
	require.NoError(t, err)
}

func TestFormatText_RoundTripsGridString(t *testing.T) {
	want, err := FormatText("Hello {63} world\n\nTEMP 72°\n\"Quoted\" & (more)!\n{66}{67}{68}", WithPad(PadBottom), WithAlign(AlignCenter))
	require.NoError(t, err)

	for _, a := range []HorizontalAlignment{AlignLeft, AlignCenter, AlignRight} {
		again, err := FormatText(want.String(), WithAlign(a), WithStrictness(Strict))
		require.NoError(t, err)
		require.Equal(t, want, again)
	}
}

func TestFormatText_RoundTripsUnassignedCodes(t *testing.T) {
	row := make([]int, Cols)
	row[0], row[5], row[21] = 43, 61, 71
	want, err := FormatRows([][]int{row}, PadTop)
	require.NoError(t, err)

	again, err := FormatText(want.String(), WithStrictness(Strict))
	require.NoError(t, err)
	require.Equal(t, want, again)
}

func TestFormatRows_RejectsShortRow(t *testing.T) {
	rows := [][]int{make([]int, Cols), make([]int, 21)}
	_, err := FormatRows(rows, PadTop)
	var mr *MalformedRowError
	require.True(t, errors.As(err, &mr))
	require.Equal(t, 1, mr.Row)
	require.Equal(t, 21, mr.Length)
	assert.Contains(t, err.Error(), "length 21")
}

func TestFormatRows_PadsAndTruncates(t *testing.T) {
	full := make([]int, Cols)
	for i := range full {
		full[i] = int(Filled)
	}

	var ws []Warning
	g, err := FormatRows([][]int{full, full}, PadNone, collect(&ws))
	require.NoError(t, err)
	require.Len(t, ws, 1)
	require.Equal(t, WarnDefaultCentered, ws[0].Kind)
	require.True(t, g[0].IsBlank())
	require.False(t, g[1].IsBlank())
	require.False(t, g[2].IsBlank())
	require.True(t, g[3].IsBlank())

	ws = nil
	eight := make([][]int, 8)
	for i := range eight {
		eight[i] = full
	}
	g, err = FormatRows(eight, PadTop, collect(&ws))
	require.NoError(t, err)
	require.Len(t, ws, 1)
	require.Equal(t, WarnRowsTruncated, ws[0].Kind)
	require.Equal(t, 2, ws[0].Dropped)
	for _, line := range g {
		require.Equal(t, Filled, line[0])
	}
}

func TestFormatRows_EmptyIsBlankBoard(t *testing.T) {
	g, err := FormatRows(nil, PadBottom)
	require.NoError(t, err)
	require.Equal(t, Grid{}, g)
}

func TestFormatRows_RangeCheckedByValidator(t *testing.T) {
	row := make([]int, Cols)
	row[3] = 99
	_, err := FormatRows([][]int{row}, PadTop)
	var gs *GridShapeError
	require.True(t, errors.As(err, &gs))
	require.Equal(t, 0, gs.Row)
	require.Equal(t, 3, gs.Col)
	require.Equal(t, 99, gs.Code)
}

func TestParseVerticalAlignment(t *testing.T) {
	cases := map[string]VerticalAlignment{
		"": PadNone, "none": PadNone, "top": PadTop, "below": PadTop,
		"Bottom": PadBottom, "above": PadBottom, "center": PadCenter, "centre": PadCenter,
	}
	for in, want := range cases {
		got, err := ParseVerticalAlignment(in)
		require.NoError(t, err, in)
		assert.Equal(t, want, got, in)
	}
	_, err := ParseVerticalAlignment("botom")
	require.Error(t, err)
	assert.Contains(t, err.Error(), `did you mean "bottom"`)
}

func TestWrapCells_DropsWhitespaceAtBreak(t *testing.T) {
	cells := splitCells(strings.Repeat("A", 20) + "    " + "BBB")
	got := wrapCells(cells)
	require.Len(t, got, 2)
	require.Equal(t, strings.Repeat("A", 20), strings.Join(got[0], ""))
	require.Equal(t, "BBB", strings.Join(got[1], ""))
}

func TestWrapCells_LeadingSpacesDoNotMakeEmptyRows(t *testing.T) {
	cells := splitCells("  " + strings.Repeat("Z", 25))
	got := wrapCells(cells)
	require.Len(t, got, 2)
	require.Len(t, got[0], Cols)
	require.Equal(t, "  "+strings.Repeat("Z", 20), strings.Join(got[0], ""))
}

func TestFormatText_ConcurrentCallsAreIndependent(t *testing.T) {
	const text = "HELLO WORLD {63}\nSECOND LINE THAT IS LONGER THAN THE BOARD"
	row := make([]int, Cols)
	row[0], row[21] = int(Red), int(Filled)

	wantText, err := FormatText(text, WithPad(PadCenter), WithAlign(AlignCenter))
	require.NoError(t, err)
	wantRows, err := FormatRows([][]int{row, row}, PadNone)
	require.NoError(t, err)
	wantLine, err := FormatLine(strings.Repeat("AB", 15), AlignRight)
	require.NoError(t, err)

	const workers, rounds = 32, 100
	var wg sync.WaitGroup
	errs := make(chan error, workers)
	for w := 0; w < workers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := 0; i < rounds; i++ {
				var ws []Warning
				g, err := FormatText(text, WithPad(PadCenter), WithAlign(AlignCenter), collect(&ws))
				if err != nil || g != wantText || len(ws) != 0 {
					errs <- fmt.Errorf("FormatText: grid mismatch or err=%v warnings=%v", err, ws)
					return
				}
				ws = nil
				g, err = FormatRows([][]int{row, row}, PadNone, collect(&ws))
				if err != nil || g != wantRows || len(ws) != 1 || ws[0].Kind != WarnDefaultCentered {
					errs <- fmt.Errorf("FormatRows: grid mismatch or err=%v warnings=%v", err, ws)
					return
				}
				ws = nil
				l, err := FormatLine(strings.Repeat("AB", 15), AlignRight, collect(&ws))
				if err != nil || l != wantLine || len(ws) != 1 || ws[0].Dropped != 8 {
					errs <- fmt.Errorf("FormatLine: line mismatch or err=%v warnings=%v", err, ws)
					return
				}
			}
		}()
	}
	wg.Wait()
	close(errs)
	for err := range errs {
		t.Error(err)
	}
}
