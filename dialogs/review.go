package dialogs

import (
	"context"
	"fmt"
	"strings"

	"github.com/andareed/siftly-gallery/dialogstore"
	"github.com/andareed/siftly-gallery/logging"
	"github.com/charmbracelet/bubbles/textarea"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

const maxRating = 5

type ReviewProps struct {
	ResourceID  uint64
	Title       string
	Rating      int
	Recommended bool
	Details     string
}

type ReviewSavedMsg struct {
	ResourceID  uint64
	Rating      int
	Recommended bool
	Details     string
}

type reviewField int

const (
	fieldRating reviewField = iota
	fieldRecommended
	fieldDetails
	reviewFieldCount
)

var starStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("3"))

// Review edits a resource review: star rating, recommended flag and markdown details.
type Review struct {
	base
	resourceID  uint64
	title       string
	rating      int
	recommended bool
	details     textarea.Model
	field       reviewField
	preview     bool
	md          markdown
}

func newReview(ctx context.Context, d dialogstore.Descriptor) (Dialog, error) {
	p, err := propsAs[ReviewProps](d)
	if err != nil {
		return nil, err
	}

	ta := textarea.New()
	ta.Placeholder = "What did you think? (markdown)"
	ta.CharLimit = 2000
	ta.SetWidth(boxWidth - 6)
	ta.SetHeight(5)
	ta.SetValue(p.Details)

	r := &Review{
		base:        newBase(ctx, d),
		resourceID:  p.ResourceID,
		title:       p.Title,
		rating:      clampRating(p.Rating),
		recommended: p.Recommended,
		details:     ta,
		md:          markdown{width: boxWidth - 6},
	}
	if p.Rating == 0 {
		r.rating = maxRating
	}
	return r, nil
}

func clampRating(r int) int {
	if r < 1 {
		return 1
	}
	if r > maxRating {
		return maxRating
	}
	return r
}

func (d *Review) Init() tea.Cmd { return nil }

func (d *Review) setField(f reviewField) tea.Cmd {
	d.field = f
	if f == fieldDetails {
		return d.details.Focus()
	}
	d.details.Blur()
	return nil
}

func (d *Review) Update(msg tea.Msg) (Dialog, tea.Cmd) {
	m, ok := msg.(tea.KeyMsg)
	if !ok {
		var cmd tea.Cmd
		d.details, cmd = d.details.Update(msg)
		return d, cmd
	}

	switch m.String() {
	case "esc":
		return d, d.close()
	case "ctrl+s":
		saved := ReviewSavedMsg{
			ResourceID:  d.resourceID,
			Rating:      d.rating,
			Recommended: d.recommended,
			Details:     strings.TrimSpace(d.details.Value()),
		}
		logging.Debugf("ReviewDialog:Update:: saving review for %d (%d stars)", d.resourceID, d.rating)
		return d, d.then(saved)
	case "ctrl+p":
		d.preview = !d.preview
		return d, nil
	case "tab":
		return d, d.setField((d.field + 1) % reviewFieldCount)
	case "shift+tab":
		return d, d.setField((d.field + reviewFieldCount - 1) % reviewFieldCount)
	}

	switch d.field {
	case fieldRating:
		switch m.String() {
		case "left", "h", "-":
			d.rating = clampRating(d.rating - 1)
		case "right", "l", "+":
			d.rating = clampRating(d.rating + 1)
		case "1", "2", "3", "4", "5":
			d.rating = int(m.String()[0] - '0')
		}
	case fieldRecommended:
		switch m.String() {
		case " ", "space", "enter", "y", "n":
			d.recommended = !d.recommended
		}
	case fieldDetails:
		var cmd tea.Cmd
		d.details, cmd = d.details.Update(msg)
		return d, cmd
	}
	return d, nil
}

func (d *Review) Rating() int       { return d.rating }
func (d *Review) Recommended() bool { return d.recommended }

func (d *Review) renderPreview() string {
	out := d.md.render(d.details.Value())
	if out == "" {
		return hintStyle.Render("(nothing to preview)")
	}
	return out
}

func (d *Review) View() string {
	label := func(f reviewField, s string) string {
		if d.field == f {
			return cursorMark + " " + s
		}
		return "  " + s
	}

	stars := starStyle.Render(strings.Repeat("★", d.rating)) + strings.Repeat("☆", maxRating-d.rating)
	rec := "[ ] recommended"
	if d.recommended {
		rec = "[x] recommended"
	}

	body := d.details.View()
	if d.preview {
		body = d.renderPreview()
	}

	title := "Review"
	if d.title != "" {
		title += ": " + d.title
	}
	content := fmt.Sprintf("%s\n\n%s\n%s\n%s\n%s\n\n%s",
		titleStyle.Render(title),
		label(fieldRating, stars),
		label(fieldRecommended, rec),
		label(fieldDetails, "details"),
		body,
		hintStyle.Render("tab next field • ctrl+p preview • ctrl+s save • esc cancel"),
	)
	return d.box().Render(content)
}

func (d *Review) Focus() tea.Cmd {
	if d.field == fieldDetails {
		return d.details.Focus()
	}
	return nil
}

func (d *Review) Blur() { d.details.Blur() }
