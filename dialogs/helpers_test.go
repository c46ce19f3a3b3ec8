package dialogs

import (
	"context"
	"testing"

	"github.com/andareed/siftly-gallery/dialogstore"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/require"
)

type env struct {
	ctx   context.Context
	store *dialogstore.Store
	stack *dialogstore.StackingContext
}

func newEnv() env {
	s := dialogstore.New()
	c := dialogstore.NewStackingContext()
	ctx := dialogstore.NewStackContext(dialogstore.NewContext(context.Background(), s), c)
	return env{ctx: ctx, store: s, stack: c}
}

// mount opens a descriptor in the store and builds its component, like the host does.
func (e env) mount(t *testing.T, r *Registry, s dialogstore.Settings) Dialog {
	t.Helper()
	id := e.store.Trigger(s)
	d, ok := e.store.Latest()
	require.True(t, ok)
	require.Equal(t, id, d.ID)
	dlg, err := r.Build(e.ctx, d)
	require.NoError(t, err)
	return dlg
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
	case "left":
		return tea.KeyMsg{Type: tea.KeyLeft}
	case "right":
		return tea.KeyMsg{Type: tea.KeyRight}
	case "backspace":
		return tea.KeyMsg{Type: tea.KeyBackspace}
	case "ctrl+s":
		return tea.KeyMsg{Type: tea.KeyCtrlS}
	case "ctrl+p":
		return tea.KeyMsg{Type: tea.KeyCtrlP}
	}
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

// press sends keys one by one and returns the message produced by the last command.
func press(d Dialog, keys ...string) (Dialog, tea.Msg) {
	var msg tea.Msg
	for _, k := range keys {
		var cmd tea.Cmd
		d, cmd = d.Update(keyMsg(k))
		msg = nil
		if cmd != nil {
			msg = cmd()
		}
	}
	return d, msg
}

func typeText(d Dialog, text string) Dialog {
	for _, r := range text {
		d, _ = d.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{r}})
	}
	return d
}

type fakeCopier struct {
	got []string
	err error
}

func (f *fakeCopier) Copy(text string) error {
	f.got = append(f.got, text)
	return f.err
}
