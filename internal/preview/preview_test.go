package preview

import (
	"strings"
	"testing"

	"github.com/charmbracelet/lipgloss"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/1set/vestaboard"
)

func TestRender_Shape(t *testing.T) {
	g, err := vestaboard.FormatText("HELLO\n{63}{66} WORLD", vestaboard.WithPad(vestaboard.PadTop))
	require.NoError(t, err)
	g[5][0] = 43

	out := Render(g)
	lines := strings.Split(out, "\n")
	require.Len(t, lines, vestaboard.Rows+2)
	for _, l := range lines {
		assert.Equal(t, vestaboard.Cols+2, lipgloss.Width(l))
	}
	assert.Contains(t, out, "H")
	assert.Contains(t, out, "W")
}

func TestRenderFlap_UnassignedCode(t *testing.T) {
	assert.Contains(t, renderFlap(43), "?")
	assert.Contains(t, renderFlap(vestaboard.Code(1)), "A")
}
