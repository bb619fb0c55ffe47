package vestaboard

import (
	"encoding/json"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func blankRows(n int) [][]int {
	rows := make([][]int, n)
	for i := range rows {
		rows[i] = make([]int, Cols)
	}
	return rows
}

func TestValidate_Shape(t *testing.T) {
	g, err := Validate(blankRows(Rows))
	require.NoError(t, err)
	require.Equal(t, Grid{}, g)

	_, err = Validate(blankRows(5))
	var gs *GridShapeError
	require.True(t, errors.As(err, &gs))
	assert.Equal(t, 5, gs.Rows)
	assert.Equal(t, -1, gs.Row)
	assert.Contains(t, err.Error(), "5 rows")

	rows := blankRows(Rows)
	rows[3] = make([]int, 23)
	_, err = Validate(rows)
	require.True(t, errors.As(err, &gs))
	assert.Equal(t, 3, gs.Row)
	assert.Equal(t, 23, gs.Length)
	assert.Equal(t, -1, gs.Col)
}

func TestValidate_CodeRange(t *testing.T) {
	rows := blankRows(Rows)
	rows[5][21] = int(MaxCode)
	_, err := Validate(rows)
	require.NoError(t, err)

	for _, bad := range []int{-1, int(MaxCode) + 1} {
		rows[2][7] = bad
		_, err = Validate(rows)
		var gs *GridShapeError
		require.True(t, errors.As(err, &gs), "code %d", bad)
		assert.Equal(t, 2, gs.Row)
		assert.Equal(t, 7, gs.Col)
		assert.Equal(t, bad, gs.Code)
	}
}

func TestValidate_AcceptsUnassignedCodes(t *testing.T) {
	rows := blankRows(Rows)
	rows[0][0] = 43
	_, err := Validate(rows)
	require.NoError(t, err)
}

func TestGrid_MarshalJSONShape(t *testing.T) {
	g, err := FormatText("HI", WithPad(PadTop))
	require.NoError(t, err)
	data, err := json.Marshal(g)
	require.NoError(t, err)

	var back [][]int
	require.NoError(t, json.Unmarshal(data, &back))
	require.Len(t, back, Rows)
	for _, r := range back {
		require.Len(t, r, Cols)
	}
	assert.Equal(t, 8, back[0][0])
	assert.Equal(t, 9, back[0][1])
	assert.True(t, strings.HasPrefix(string(data), "[[8,9,0"))
}

func TestGrid_UnmarshalJSON(t *testing.T) {
	data, err := json.Marshal(blankRows(Rows))
	require.NoError(t, err)
	var g Grid
	require.NoError(t, json.Unmarshal(data, &g))

	data, err = json.Marshal(blankRows(4))
	require.NoError(t, err)
	err = json.Unmarshal(data, &g)
	var gs *GridShapeError
	require.True(t, errors.As(err, &gs))

	err = json.Unmarshal([]byte(`{"characters":[]}`), &g)
	require.Error(t, err)
}

func TestParseRows(t *testing.T) {
	rows, err := ParseRows([]byte(`[[1,2,3],[]]`))
	require.NoError(t, err)
	require.Equal(t, [][]int{{1, 2, 3}, {}}, rows)

	cases := []struct {
		name string
		in   string
		row  int
		col  int
	}{
		{name: "row is object", in: `[[1],{"a":1}]`, row: 1, col: -1},
		{name: "row is null", in: `[null]`, row: 0, col: -1},
		{name: "row is number", in: `[5]`, row: 0, col: -1},
		{name: "quoted number", in: `[[1,"5"]]`, row: 0, col: 1},
		{name: "fraction", in: `[[1.5]]`, row: 0, col: 0},
		{name: "boolean", in: `[[0,0,true]]`, row: 0, col: 2},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := ParseRows([]byte(tc.in))
			var mr *MalformedRowError
			require.True(t, errors.As(err, &mr), "got %v", err)
			assert.Equal(t, tc.row, mr.Row)
			assert.Equal(t, tc.col, mr.Col)
			assert.NotEmpty(t, mr.Reason)
		})
	}

	_, err = ParseRows([]byte(`[[0,99999999999999999999]]`))
	var mr *MalformedRowError
	require.True(t, errors.As(err, &mr))
	assert.Equal(t, 1, mr.Col)
	assert.Contains(t, mr.Reason, "out of range")
	assert.NotContains(t, mr.Reason, "not an integer")

	_, err = ParseRows([]byte(`[[1e2]]`))
	require.True(t, errors.As(err, &mr))
	assert.Contains(t, mr.Reason, "not an integer")

	_, err = ParseRows([]byte(`"not an array"`))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "JSON array")
}

func TestGrid_StringHasSixLines(t *testing.T) {
	var g Grid
	g[0][0] = Red
	g[5][21] = 43
	lines := strings.Split(g.String(), "\n")
	require.Len(t, lines, Rows)
	assert.True(t, strings.HasPrefix(lines[0], "🟥"))
	assert.True(t, strings.HasSuffix(lines[5], "{43}"))
}
