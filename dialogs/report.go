package dialogs

import (
	"context"
	"fmt"
	"strings"

	"github.com/andareed/siftly-gallery/dialogstore"
	tea "github.com/charmbracelet/bubbletea"
)

type EntityType string

const (
	EntityModel  EntityType = "model"
	EntityImage  EntityType = "image"
	EntityReview EntityType = "review"
)

// ReportReasons is the fixed reason list offered by the report dialog.
var ReportReasons = []string{
	"TOS violation",
	"NSFW content",
	"Ownership claim",
	"Spam",
	"Needs admin attention",
}

type ReportProps struct {
	EntityType EntityType
	EntityID   uint64
	Title      string
}

type ReportSubmittedMsg struct {
	EntityType EntityType
	EntityID   uint64
	Reason     string
}

type Report struct {
	base
	props  ReportProps
	cursor int
}

func newReport(ctx context.Context, d dialogstore.Descriptor) (Dialog, error) {
	p, err := propsAs[ReportProps](d)
	if err != nil {
		return nil, err
	}
	if p.EntityType == "" {
		return nil, fmt.Errorf("%w: report needs an entity type", ErrBadProps)
	}
	return &Report{base: newBase(ctx, d), props: p}, nil
}

func (d *Report) Init() tea.Cmd { return nil }

func (d *Report) Update(msg tea.Msg) (Dialog, tea.Cmd) {
	m, ok := msg.(tea.KeyMsg)
	if !ok {
		return d, nil
	}
	switch m.String() {
	case "up", "k":
		if d.cursor > 0 {
			d.cursor--
		}
	case "down", "j":
		if d.cursor < len(ReportReasons)-1 {
			d.cursor++
		}
	case "1", "2", "3", "4", "5":
		d.cursor = int(m.String()[0]-'1') % len(ReportReasons)
	case "enter":
		return d, d.then(ReportSubmittedMsg{
			EntityType: d.props.EntityType,
			EntityID:   d.props.EntityID,
			Reason:     ReportReasons[d.cursor],
		})
	case "esc":
		return d, d.close()
	}
	return d, nil
}

// Reason is the highlighted reason.
func (d *Report) Reason() string { return ReportReasons[d.cursor] }

func (d *Report) View() string {
	var b strings.Builder
	title := fmt.Sprintf("Report %s", d.props.EntityType)
	if d.props.Title != "" {
		title += ": " + d.props.Title
	}
	b.WriteString(titleStyle.Render(title))
	b.WriteString("\n\n")
	for i, r := range ReportReasons {
		marker := " "
		if i == d.cursor {
			marker = cursorMark
		}
		fmt.Fprintf(&b, "%s %d. %s\n", marker, i+1, r)
	}
	b.WriteString("\n")
	b.WriteString(hintStyle.Render("↑/↓ choose • enter to report • esc to cancel"))
	return d.box().Render(b.String())
}

func (d *Report) Focus() tea.Cmd { return nil }
func (d *Report) Blur()          {}
