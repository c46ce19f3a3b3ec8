package dialogs

import (
	"context"
	"fmt"

	"github.com/andareed/siftly-gallery/dialogstore"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

type ConfirmProps struct {
	Title        string
	Body         string
	ConfirmLabel string
	CancelLabel  string
	// Danger focuses the cancel button first.
	Danger bool
	// OnConfirm is emitted before the dialog closes. Nil just closes.
	OnConfirm tea.Msg
}

var (
	buttonStyle       = lipgloss.NewStyle().Padding(0, 2).Border(lipgloss.NormalBorder())
	buttonActiveStyle = buttonStyle.BorderForeground(lipgloss.Color("#ff9f1c")).Bold(true)
)

type Confirm struct {
	base
	props     ConfirmProps
	onConfirm bool // which button has focus
}

func newConfirm(ctx context.Context, d dialogstore.Descriptor) (Dialog, error) {
	p, err := propsAs[ConfirmProps](d)
	if err != nil {
		return nil, err
	}
	if p.ConfirmLabel == "" {
		p.ConfirmLabel = "Confirm"
	}
	if p.CancelLabel == "" {
		p.CancelLabel = "Cancel"
	}
	return &Confirm{base: newBase(ctx, d), props: p, onConfirm: !p.Danger}, nil
}

func (d *Confirm) Init() tea.Cmd { return nil }

func (d *Confirm) accept() tea.Cmd {
	if d.props.OnConfirm == nil {
		return d.close()
	}
	return d.then(d.props.OnConfirm)
}

func (d *Confirm) Update(msg tea.Msg) (Dialog, tea.Cmd) {
	m, ok := msg.(tea.KeyMsg)
	if !ok {
		return d, nil
	}
	switch m.String() {
	case "left", "right", "tab", "shift+tab", "h", "l":
		d.onConfirm = !d.onConfirm
	case "y":
		return d, d.accept()
	case "n", "esc":
		return d, d.close()
	case "enter":
		if d.onConfirm {
			return d, d.accept()
		}
		return d, d.close()
	}
	return d, nil
}

func (d *Confirm) View() string {
	confirmLabel := d.props.ConfirmLabel
	if d.props.Danger {
		confirmLabel = dangerText.Render(confirmLabel)
	}
	confirm, cancel := buttonStyle.Render(confirmLabel), buttonActiveStyle.Render(d.props.CancelLabel)
	if d.onConfirm {
		confirm, cancel = buttonActiveStyle.Render(confirmLabel), buttonStyle.Render(d.props.CancelLabel)
	}
	buttons := lipgloss.JoinHorizontal(lipgloss.Top, cancel, " ", confirm)

	content := fmt.Sprintf("%s\n\n%s\n\n%s\n%s",
		titleStyle.Render(d.props.Title),
		d.props.Body,
		buttons,
		hintStyle.Render("y/n • ←/→ switch • enter to choose"),
	)
	return d.box().Render(content)
}

func (d *Confirm) Focus() tea.Cmd { return nil }
func (d *Confirm) Blur()          {}
