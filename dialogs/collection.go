package dialogs

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"github.com/agnivade/levenshtein"
	"github.com/andareed/siftly-gallery/dialogstore"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
)

const collectionRows = 8

type CollectionProps struct {
	ResourceID  uint64
	Title       string
	Collections []string
	// Member lists the collections the resource is already in.
	Member []string
}

// CollectionSelectedMsg toggles membership: Added is false when the resource was
// already in the collection.
type CollectionSelectedMsg struct {
	ResourceID uint64
	Collection string
	Added      bool
}

// Collection is a fuzzy-filtered collection picker. Typing a name that does not
// exist offers to create it.
type Collection struct {
	base
	props    CollectionProps
	member   map[string]bool
	query    textinput.Model
	filtered []string
	cursor   int
}

func newCollection(ctx context.Context, d dialogstore.Descriptor) (Dialog, error) {
	p, err := propsAs[CollectionProps](d)
	if err != nil {
		return nil, err
	}
	ti := textinput.New()
	ti.Placeholder = "Search collections..."
	ti.Prompt = "/ "
	ti.CharLimit = 64
	ti.Width = boxWidth - 10
	ti.Focus()

	c := &Collection{
		base:   newBase(ctx, d),
		props:  p,
		member: make(map[string]bool, len(p.Member)),
		query:  ti,
	}
	for _, m := range p.Member {
		c.member[m] = true
	}
	c.rebuild()
	return c, nil
}

func (d *Collection) Init() tea.Cmd { return textinput.Blink }

type scoredCollection struct {
	name  string
	score int
	dist  int
}

func (d *Collection) rebuild() {
	q := strings.TrimSpace(d.query.Value())
	scored := make([]scoredCollection, 0, len(d.props.Collections))
	for _, name := range d.props.Collections {
		ok, score := fuzzyMatchScore(name, q)
		if !ok {
			continue
		}
		dist := 0
		if q != "" {
			dist = levenshtein.ComputeDistance(strings.ToLower(name), strings.ToLower(q))
		}
		scored = append(scored, scoredCollection{name: name, score: score, dist: dist})
	}
	sort.SliceStable(scored, func(i, j int) bool {
		if scored[i].score != scored[j].score {
			return scored[i].score > scored[j].score
		}
		if scored[i].dist != scored[j].dist {
			return scored[i].dist < scored[j].dist
		}
		return strings.ToLower(scored[i].name) < strings.ToLower(scored[j].name)
	})

	d.filtered = d.filtered[:0]
	for _, s := range scored {
		d.filtered = append(d.filtered, s.name)
	}
	if d.cursor > d.maxCursor() {
		d.cursor = d.maxCursor()
	}
	if d.cursor < 0 {
		d.cursor = 0
	}
}

func (d *Collection) showCreate() bool {
	q := strings.TrimSpace(d.query.Value())
	if q == "" {
		return false
	}
	for _, name := range d.props.Collections {
		if strings.EqualFold(strings.TrimSpace(name), q) {
			return false
		}
	}
	return true
}

func (d *Collection) maxCursor() int {
	n := len(d.filtered)
	if d.showCreate() {
		n++
	}
	return n - 1
}

// Filtered returns the visible collection names, best match first.
func (d *Collection) Filtered() []string { return append([]string(nil), d.filtered...) }

// Current returns the highlighted entry; create is true for the "new collection" row.
func (d *Collection) Current() (name string, create bool) {
	if d.cursor < len(d.filtered) {
		return d.filtered[d.cursor], false
	}
	if d.showCreate() {
		return strings.TrimSpace(d.query.Value()), true
	}
	return "", false
}

func (d *Collection) Update(msg tea.Msg) (Dialog, tea.Cmd) {
	if m, ok := msg.(tea.KeyMsg); ok {
		switch m.String() {
		case "esc":
			return d, d.close()
		case "up", "ctrl+k":
			if d.cursor > 0 {
				d.cursor--
			}
			return d, nil
		case "down", "ctrl+j":
			if d.cursor < d.maxCursor() {
				d.cursor++
			}
			return d, nil
		case "enter":
			name, _ := d.Current()
			if name == "" {
				return d, nil
			}
			return d, d.then(CollectionSelectedMsg{
				ResourceID: d.props.ResourceID,
				Collection: name,
				Added:      !d.member[name],
			})
		}
	}

	var cmd tea.Cmd
	before := d.query.Value()
	d.query, cmd = d.query.Update(msg)
	if d.query.Value() != before {
		d.cursor = 0
		d.rebuild()
	}
	return d, cmd
}

func (d *Collection) View() string {
	var b strings.Builder
	title := "Add to collection"
	if d.props.Title != "" {
		title += ": " + d.props.Title
	}
	b.WriteString(titleStyle.Render(title))
	b.WriteString("\n\n")
	b.WriteString(d.query.View())
	b.WriteString("\n\n")

	start := 0
	if d.cursor >= collectionRows {
		start = d.cursor - collectionRows + 1
	}
	for i := start; i < len(d.filtered) && i < start+collectionRows; i++ {
		name := d.filtered[i]
		marker := " "
		if i == d.cursor {
			marker = cursorMark
		}
		check := "  "
		if d.member[name] {
			check = "✓ "
		}
		fmt.Fprintf(&b, "%s %s%s\n", marker, check, name)
	}
	if d.showCreate() {
		marker := " "
		if d.cursor == len(d.filtered) {
			marker = cursorMark
		}
		fmt.Fprintf(&b, "%s + create %q\n", marker, strings.TrimSpace(d.query.Value()))
	}
	if len(d.filtered) == 0 && !d.showCreate() {
		b.WriteString(hintStyle.Render("no collections yet, type a name to create one"))
		b.WriteString("\n")
	}
	b.WriteString("\n")
	b.WriteString(hintStyle.Render("enter to toggle • ↑/↓ move • esc to close"))
	return d.box().Render(b.String())
}

func (d *Collection) Focus() tea.Cmd { return d.query.Focus() }
func (d *Collection) Blur()          { d.query.Blur() }

// fuzzyMatchScore reports whether every query byte appears in label in order, and
// scores prefix and consecutive matches higher.
func fuzzyMatchScore(label, query string) (bool, int) {
	if query == "" {
		return true, 0
	}
	labelLower := strings.ToLower(label)
	queryLower := strings.ToLower(query)

	matchIdx := make([]int, 0, len(queryLower))
	searchFrom := 0
	for i := 0; i < len(queryLower); i++ {
		ch := queryLower[i]
		found := false
		for j := searchFrom; j < len(labelLower); j++ {
			if labelLower[j] == ch {
				matchIdx = append(matchIdx, j)
				searchFrom = j + 1
				found = true
				break
			}
		}
		if !found {
			return false, 0
		}
	}

	score := len(queryLower)
	if len(matchIdx) > 0 && matchIdx[0] == 0 {
		score += 10
	}
	for i := 1; i < len(matchIdx); i++ {
		if matchIdx[i] == matchIdx[i-1]+1 {
			score += 3
		}
	}
	if strings.EqualFold(strings.TrimSpace(label), strings.TrimSpace(query)) {
		score += 20
	}
	return true, score
}
