package dialogs

import (
	"context"
	"fmt"
	"strings"

	"github.com/andareed/siftly-gallery/dialogstore"
	tea "github.com/charmbracelet/bubbletea"
)

// Action is a request from a dialog for the host to do something with a resource,
// usually opening another dialog.
type Action string

const (
	ActionReport       Action = "report"
	ActionReview       Action = "review"
	ActionCollect      Action = "collect"
	ActionHash         Action = "hash"
	ActionMenu         Action = "menu"
	ActionDetail       Action = "detail"
	ActionDeleteReview Action = "delete-review"
)

type ActionMsg struct {
	Action     Action
	ResourceID uint64
}

type MenuItem struct {
	Label  string
	Key    string // optional shortcut
	Danger bool
	// KeepOpen leaves the menu mounted under whatever Msg opens.
	KeepOpen bool
	Msg      tea.Msg
}

type MenuProps struct {
	Title string
	Items []MenuItem
}

type Menu struct {
	base
	props  MenuProps
	cursor int
}

func newMenu(ctx context.Context, d dialogstore.Descriptor) (Dialog, error) {
	p, err := propsAs[MenuProps](d)
	if err != nil {
		return nil, err
	}
	if len(p.Items) == 0 {
		return nil, fmt.Errorf("%w: menu without items", ErrBadProps)
	}
	return &Menu{base: newBase(ctx, d), props: p}, nil
}

func (d *Menu) Init() tea.Cmd { return nil }

func (d *Menu) choose(i int) tea.Cmd {
	item := d.props.Items[i]
	if item.Msg == nil {
		return d.close()
	}
	if item.KeepOpen {
		return emit(item.Msg)
	}
	return d.then(item.Msg)
}

func (d *Menu) Update(msg tea.Msg) (Dialog, tea.Cmd) {
	m, ok := msg.(tea.KeyMsg)
	if !ok {
		return d, nil
	}
	switch s := m.String(); s {
	case "up", "k":
		if d.cursor > 0 {
			d.cursor--
		}
	case "down", "j":
		if d.cursor < len(d.props.Items)-1 {
			d.cursor++
		}
	case "enter":
		return d, d.choose(d.cursor)
	case "esc":
		return d, d.close()
	default:
		for i, item := range d.props.Items {
			if item.Key != "" && item.Key == s {
				d.cursor = i
				return d, d.choose(i)
			}
		}
	}
	return d, nil
}

func (d *Menu) View() string {
	var b strings.Builder
	if d.props.Title != "" {
		b.WriteString(titleStyle.Render(d.props.Title))
		b.WriteString("\n\n")
	}
	for i, item := range d.props.Items {
		marker := " "
		if i == d.cursor {
			marker = cursorMark
		}
		label := item.Label
		if item.Danger {
			label = dangerText.Render(label)
		}
		key := ""
		if item.Key != "" {
			key = hintStyle.Render(" (" + item.Key + ")")
		}
		fmt.Fprintf(&b, "%s %s%s\n", marker, label, key)
	}
	b.WriteString("\n")
	b.WriteString(hintStyle.Render("↑/↓ move • enter to choose • esc to close"))
	return d.box().Render(b.String())
}

func (d *Menu) Focus() tea.Cmd { return nil }
func (d *Menu) Blur()          {}
