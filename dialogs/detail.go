package dialogs

import (
	"context"
	"fmt"
	"strings"

	"github.com/andareed/siftly-gallery/dialogstore"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

const detailWidth = 80

// Field is one labelled value on the detail page.
type Field struct {
	Name  string
	Value string
}

// ResourceView is the read-only summary the detail page shows.
type ResourceView struct {
	ID          uint64
	Title       string
	Fields      []Field
	Rating      int
	Recommended bool
	Details     string
	Reports     []string
	Collections []string
}

type DetailProps struct {
	Resource ResourceView
}

var labelStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("245")).Width(14)

// Detail is a full-screen resource page mounted as a routed dialog. It registers a
// stacking frame so it can tell when another page layer covers it.
type Detail struct {
	base
	res   ResourceView
	frame *dialogstore.Frame
	md    markdown
}

func newDetail(ctx context.Context, d dialogstore.Descriptor) (Dialog, error) {
	p, err := propsAs[DetailProps](d)
	if err != nil {
		return nil, err
	}
	return &Detail{
		base:  newBase(ctx, d),
		res:   p.Resource,
		frame: dialogstore.MustStackingFromContext(ctx).Register(),
		md:    markdown{width: detailWidth - 8},
	}, nil
}

func (d *Detail) Frame() *dialogstore.Frame { return d.frame }

// ResourceID is the id of the resource on the page.
func (d *Detail) ResourceID() uint64 { return d.res.ID }

// SetResource replaces what the page shows, after the resource's state changed.
func (d *Detail) SetResource(res ResourceView) { d.res = res }

func (d *Detail) Init() tea.Cmd { return nil }

func (d *Detail) action(a Action) tea.Cmd {
	return emit(ActionMsg{Action: a, ResourceID: d.res.ID})
}

func (d *Detail) Update(msg tea.Msg) (Dialog, tea.Cmd) {
	m, ok := msg.(tea.KeyMsg)
	if !ok {
		return d, nil
	}
	if !d.frame.IsCurrent() {
		return d, nil
	}
	switch m.String() {
	case "r":
		return d, d.action(ActionReport)
	case "R":
		return d, d.action(ActionReview)
	case "a":
		return d, d.action(ActionCollect)
	case "y":
		return d, d.action(ActionHash)
	case "m":
		return d, d.action(ActionMenu)
	case "esc", "backspace":
		return d, d.close()
	}
	return d, nil
}

func (d *Detail) View() string {
	var b strings.Builder
	b.WriteString(titleStyle.Render(d.res.Title))
	b.WriteString("\n\n")
	for _, f := range d.res.Fields {
		b.WriteString(labelStyle.Render(f.Name))
		b.WriteString(f.Value)
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(labelStyle.Render("Review"))
	if d.res.Rating == 0 {
		b.WriteString(hintStyle.Render("not reviewed"))
	} else {
		b.WriteString(starStyle.Render(strings.Repeat("★", d.res.Rating)))
		if d.res.Recommended {
			b.WriteString("  recommended")
		}
	}
	b.WriteString("\n")
	if md := d.md.render(d.res.Details); md != "" {
		b.WriteString(md)
		b.WriteString("\n")
	}

	b.WriteString(labelStyle.Render("Reports"))
	b.WriteString(fmt.Sprintf("%d", len(d.res.Reports)))
	b.WriteString("\n")
	b.WriteString(labelStyle.Render("Collections"))
	if len(d.res.Collections) == 0 {
		b.WriteString(hintStyle.Render("none"))
	} else {
		b.WriteString(strings.Join(d.res.Collections, ", "))
	}
	b.WriteString("\n\n")

	hint := "r report • R review • a collect • y hash • m menu • esc back"
	if !d.frame.IsCurrent() {
		hint = "covered by another page"
	}
	b.WriteString(hintStyle.Render(hint))

	border := lipgloss.Color("252")
	if !d.frame.IsCurrent() {
		border = lipgloss.Color("240")
	}
	return lipgloss.NewStyle().
		Border(lipgloss.DoubleBorder()).
		BorderForeground(border).
		Padding(1, 3).
		Width(detailWidth).
		Render(b.String())
}

func (d *Detail) Focus() tea.Cmd { return nil }
func (d *Detail) Blur()          {}

// Page renders the detail page centered on a width x height screen.
func (d *Detail) Page(width, height int) string {
	return center(d.View(), width, height)
}
