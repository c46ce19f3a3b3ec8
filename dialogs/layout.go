package dialogs

import (
	"context"

	"github.com/andareed/siftly-gallery/dialogstore"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

const boxWidth = 60

var (
	hintStyle  = lipgloss.NewStyle().Faint(true)
	titleStyle = lipgloss.NewStyle().Bold(true)
	cursorMark = lipgloss.NewStyle().Foreground(lipgloss.Color("#ff9f1c")).Render("▸")
	dangerText = lipgloss.NewStyle().Foreground(lipgloss.Color("1"))
)

// base is embedded by every dialog: it remembers the descriptor id and the level the
// dialog was mounted at, so it can dim itself once something opens on top.
type base struct {
	id    dialogstore.ID
	level dialogstore.Level
}

func newBase(ctx context.Context, d dialogstore.Descriptor) base {
	return base{id: d.ID, level: dialogstore.MustFromContext(ctx).CaptureLevel()}
}

func (b base) close() tea.Cmd { return Close(b.id) }

// then closes the dialog and delivers msg as its result.
func (b base) then(msg tea.Msg) tea.Cmd {
	id := b.id
	return func() tea.Msg { return DoneMsg{ID: id, Result: msg} }
}

func (b base) box() lipgloss.Style {
	border := lipgloss.Color("252")
	if !b.level.Focused() {
		border = lipgloss.Color("240")
	}
	return lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(border).
		BorderBackground(lipgloss.Color("236")). // match the overlay
		Padding(1, 2).
		Width(boxWidth)
}

func center(s string, width, height int) string {
	box := lipgloss.NewStyle().Width(width).Height(height).Align(lipgloss.Center, lipgloss.Center)
	return box.Render(s)
}
