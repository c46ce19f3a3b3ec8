package main

import (
	"testing"
	"time"

	"github.com/andareed/siftly-gallery/config"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/x/ansi"
	"github.com/stretchr/testify/require"
)

var testRecords = [][]string{
	{"ID", "Name", "Type", "AutoV2", "SHA256", "Notes"},
	{"101", "Dreamshaper", "Checkpoint", "ABC123", "deadbeef", ""},
	{"102", "Juggernaut", "Checkpoint", "", "", ""},
	{"103", "Detail Tweaker", "LoRA", "FFF000", "", ""},
}

type fakeCopier struct {
	got []string
	err error
}

func (f *fakeCopier) Copy(text string) error {
	f.got = append(f.got, text)
	return f.err
}

func testConfig() config.Config {
	cfg := config.Default()
	cfg.UI.Transition = time.Millisecond
	cfg.UI.NoticeDuration = time.Hour
	return cfg
}

func newTestModel(t *testing.T) (*model, *fakeCopier) {
	t.Helper()
	cp := &fakeCopier{}
	m := newModel(catalogFromRecords(testRecords, []string{"Favourites", "Inspiration"}), hostDeps{
		cfg:    testConfig(),
		copier: cp,
	})
	m.Update(tea.WindowSizeMsg{Width: 120, Height: 40})
	require.True(t, m.ready)
	return m, cp
}

func keyMsg(s string) tea.KeyMsg {
	switch s {
	case "enter":
		return tea.KeyMsg{Type: tea.KeyEnter}
	case "esc":
		return tea.KeyMsg{Type: tea.KeyEsc}
	case "tab":
		return tea.KeyMsg{Type: tea.KeyTab}
	case "up":
		return tea.KeyMsg{Type: tea.KeyUp}
	case "down":
		return tea.KeyMsg{Type: tea.KeyDown}
	case "backspace":
		return tea.KeyMsg{Type: tea.KeyBackspace}
	case "ctrl+s":
		return tea.KeyMsg{Type: tea.KeyCtrlS}
	case "ctrl+w":
		return tea.KeyMsg{Type: tea.KeyCtrlW}
	case "ctrl+c":
		return tea.KeyMsg{Type: tea.KeyCtrlC}
	}
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

// collect runs cmd and returns the messages it produced within a short window.
// Long timers (blinks, notice expiry) are dropped.
func collect(cmd tea.Cmd) []tea.Msg {
	if cmd == nil {
		return nil
	}
	ch := make(chan tea.Msg, 1)
	go func() { ch <- cmd() }()
	select {
	case msg := <-ch:
		switch msg := msg.(type) {
		case nil:
			return nil
		case tea.BatchMsg:
			var out []tea.Msg
			for _, c := range msg {
				out = append(out, collect(c)...)
			}
			return out
		}
		return []tea.Msg{msg}
	case <-time.After(50 * time.Millisecond):
		return nil
	}
}

// settle feeds every message cmd produces back into the model until nothing is left.
func settle(m *model, cmd tea.Cmd) []tea.Msg {
	var seen []tea.Msg
	queue := collect(cmd)
	for i := 0; len(queue) > 0 && i < 50; i++ {
		msg := queue[0]
		queue = queue[1:]
		seen = append(seen, msg)
		if _, ok := msg.(tea.QuitMsg); ok {
			continue
		}
		_, next := m.Update(msg)
		queue = append(queue, collect(next)...)
	}
	return seen
}

func press(m *model, keys ...string) []tea.Msg {
	var seen []tea.Msg
	for _, k := range keys {
		_, cmd := m.Update(keyMsg(k))
		seen = append(seen, settle(m, cmd)...)
	}
	return seen
}

// screen is the rendered view without styling.
func screen(m *model) string {
	return ansi.Strip(m.View())
}

func typeText(m *model, text string) {
	for _, r := range text {
		_, cmd := m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{r}})
		settle(m, cmd)
	}
}
