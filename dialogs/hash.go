package dialogs

import (
	"context"
	"fmt"

	"github.com/andareed/siftly-gallery/dialogstore"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// ModelHash is one hash of a model file, e.g. AutoV2 or SHA256.
type ModelHash struct {
	Type string
	Hash string
}

type HashProps struct {
	ResourceID uint64
	Hashes     []ModelHash
	// Preferred selects the initial hash type when present.
	Preferred string
}

type (
	HashCopiedMsg struct {
		Type string
		Hash string
		Err  error
	}
	// HashTypeChangedMsg lets the host remember the preferred type across dialogs.
	HashTypeChangedMsg struct{ Type string }
)

var (
	badgeStyle       = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).Padding(0, 1)
	badgeCopiedStyle = badgeStyle.BorderForeground(lipgloss.Color("6"))
)

// Hash shows one model hash at a time; tab cycles types and enter copies.
type Hash struct {
	base
	hashes []ModelHash
	index  int
	copier Copier
	copied bool
	err    error
}

func newHash(ctx context.Context, d dialogstore.Descriptor, copier Copier) (Dialog, error) {
	p, err := propsAs[HashProps](d)
	if err != nil {
		return nil, err
	}
	if len(p.Hashes) == 0 {
		return nil, fmt.Errorf("%w: no hashes", ErrBadProps)
	}
	h := &Hash{base: newBase(ctx, d), hashes: p.Hashes, copier: copier}
	for i, mh := range p.Hashes {
		if mh.Type == p.Preferred {
			h.index = i
			break
		}
	}
	return h, nil
}

func (d *Hash) Init() tea.Cmd { return nil }

func (d *Hash) Selected() ModelHash { return d.hashes[d.index] }

func (d *Hash) copyCmd() tea.Cmd {
	sel := d.Selected()
	copier := d.copier
	return func() tea.Msg {
		if copier == nil {
			return HashCopiedMsg{Type: sel.Type, Hash: sel.Hash, Err: fmt.Errorf("no clipboard configured")}
		}
		return HashCopiedMsg{Type: sel.Type, Hash: sel.Hash, Err: copier.Copy(sel.Hash)}
	}
}

func (d *Hash) Update(msg tea.Msg) (Dialog, tea.Cmd) {
	switch m := msg.(type) {
	case HashCopiedMsg:
		d.copied = m.Err == nil
		d.err = m.Err
		return d, nil
	case tea.KeyMsg:
		switch m.String() {
		case "tab", "right", "l":
			if len(d.hashes) > 1 {
				d.index = (d.index + 1) % len(d.hashes)
				d.copied = false
				t := d.Selected().Type
				return d, emit(HashTypeChangedMsg{Type: t})
			}
		case "enter", "y":
			return d, d.copyCmd()
		case "esc", "q":
			return d, d.close()
		}
	}
	return d, nil
}

func (d *Hash) View() string {
	sel := d.Selected()
	style := badgeStyle
	value := sel.Hash
	if d.copied {
		style = badgeCopiedStyle
		value = "Copied"
	}
	typeBadge := badgeStyle.Render(sel.Type)
	badges := lipgloss.JoinHorizontal(lipgloss.Top, typeBadge, style.Render(value))
	if len(d.hashes) > 1 {
		badges = lipgloss.JoinHorizontal(lipgloss.Top, badges, badgeStyle.Render("›"))
	}

	status := ""
	if d.err != nil {
		status = "\n" + dangerText.Render("copy failed: "+d.err.Error())
	}
	return d.box().Render(fmt.Sprintf("%s\n\n%s%s\n\n%s",
		titleStyle.Render("Model hash"),
		badges,
		status,
		hintStyle.Render("tab next type • enter copy • esc close")))
}

func (d *Hash) Focus() tea.Cmd { return nil }
func (d *Hash) Blur()          {}
