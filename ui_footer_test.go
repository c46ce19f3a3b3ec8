package main

import (
	"strings"
	"testing"

	"github.com/charmbracelet/x/ansi"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func footerLines(t *testing.T, width int, st FooterState) []string {
	t.Helper()
	lines := strings.Split(ansi.Strip(RenderFooter(width, st)), "\n")
	require.Len(t, lines, 2)
	return lines
}

func TestRenderFooter(t *testing.T) {
	lines := footerLines(t, 100, FooterState{
		FileName:      "/data/models.csv",
		Dialogs:       2,
		Row:           3,
		TotalRows:     40,
		StatusMessage: "Saved",
		Legend:        "(? help)",
	})

	assert.True(t, strings.HasPrefix(lines[0], " NORMAL  ▸ /data/models.csv"), lines[0])
	assert.Contains(t, lines[0], "[FILTER: None] · [DIALOGS: 2]")
	assert.True(t, strings.HasSuffix(lines[0], " Rows 3/40"))
	assert.True(t, strings.HasPrefix(lines[1], "Saved"))
	assert.True(t, strings.HasSuffix(lines[1], "(? help)"))
	for _, l := range lines {
		assert.Equal(t, 100, ansi.StringWidth(l))
	}
}

func TestRenderFooter_CommandInput(t *testing.T) {
	lines := footerLines(t, 100, FooterState{Mode: CmdFilter, ModeInput: "[FILTER] f lora"})
	assert.Contains(t, lines[0], " FILTER ")
	assert.Contains(t, lines[0], "(no file) ▸ [FILTER] f lora")
}

func TestRenderFooter_LongFilterIsCut(t *testing.T) {
	lines := footerLines(t, 120, FooterState{FilterLabel: "checkpoint|lora|embedding"})
	assert.Contains(t, lines[0], "[FILTER: checkpoint|l]")
}

func TestRenderFooter_Narrow(t *testing.T) {
	for _, w := range []int{1, 12, 30} {
		for _, l := range footerLines(t, w, FooterState{FileName: "x.csv"}) {
			assert.LessOrEqual(t, ansi.StringWidth(l), w)
		}
	}
	assert.Empty(t, RenderFooter(0, FooterState{}))
}
