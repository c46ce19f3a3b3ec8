package dialogs

import (
	"context"
	"fmt"
	"strings"

	"github.com/andareed/siftly-gallery/dialogstore"
	"github.com/andareed/siftly-gallery/logging"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
)

type HelpProps struct {
	Title    string
	Bindings []key.Binding
}

// Help is a list of key bindings; enter or esc dismisses it.
type Help struct {
	base
	title    string
	bindings []key.Binding
}

func newHelp(ctx context.Context, d dialogstore.Descriptor) (Dialog, error) {
	p, err := propsAs[HelpProps](d)
	if err != nil {
		return nil, err
	}
	return NewHelpDialog(ctx, d.ID, p), nil
}

// NewHelpDialog creates a help dialog showing the given bindings.
func NewHelpDialog(ctx context.Context, id dialogstore.ID, p HelpProps) *Help {
	title := p.Title
	if title == "" {
		title = "Keys"
	}
	return &Help{
		base:     newBase(ctx, dialogstore.Descriptor{ID: id}),
		title:    title,
		bindings: p.Bindings,
	}
}

func (d *Help) Init() tea.Cmd { return nil }

func (d *Help) Update(msg tea.Msg) (Dialog, tea.Cmd) {
	if m, ok := msg.(tea.KeyMsg); ok {
		switch m.String() {
		case "enter", "esc", "?":
			logging.Debugf("HelpDialog:Update:: %s closes %s", m.String(), d.id)
			return d, d.close()
		}
	}
	return d, nil
}

func (d *Help) View() string {
	// Build lines "keys   description" from the bindings.
	lines := make([]string, 0, len(d.bindings))
	for _, b := range d.bindings {
		h := b.Help()
		lines = append(lines, fmt.Sprintf("%-12s %s", h.Key, h.Desc))
	}
	if len(lines) == 0 {
		lines = append(lines, "(no bindings)")
	}

	content := fmt.Sprintf("%s\n\n%s\n\n%s",
		titleStyle.Render(d.title),
		strings.Join(lines, "\n"),
		hintStyle.Render("enter/esc to return"))
	return d.box().Render(content)
}

func (d *Help) Focus() tea.Cmd { return nil }
func (d *Help) Blur()          {}
