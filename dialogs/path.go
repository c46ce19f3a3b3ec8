package dialogs

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/andareed/siftly-gallery/dialogstore"
	"github.com/andareed/siftly-gallery/logging"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
)

// --- Messages ---------------------------------------------------------------

type (
	SaveConfirmedMsg   struct{ Path string }
	ExportConfirmedMsg struct{ Path string }
)

type PathProps struct {
	DefaultName string
	// LastDir is prepended to bare file names.
	LastDir string
}

// PathPrompt is the file name prompt behind the save and export dialogs.
type PathPrompt struct {
	base
	input   textinput.Model
	lastDir string
	verb    string
	confirm func(path string) tea.Msg
}

func newPathPrompt(ctx context.Context, d dialogstore.Descriptor, verb string, confirm func(string) tea.Msg) (Dialog, error) {
	p, err := propsAs[PathProps](d)
	if err != nil {
		return nil, err
	}

	ti := textinput.New()
	ti.Placeholder = p.DefaultName
	ti.Prompt = verb + " as: "
	ti.CharLimit = 256
	// Wide enough for typical paths
	ti.Width = 50
	if p.DefaultName != "" {
		ti.SetValue(p.DefaultName)
	}
	ti.Focus()

	return &PathPrompt{
		base:    newBase(ctx, d),
		input:   ti,
		lastDir: p.LastDir,
		verb:    verb,
		confirm: confirm,
	}, nil
}

func newSave(ctx context.Context, d dialogstore.Descriptor) (Dialog, error) {
	return newPathPrompt(ctx, d, "Save", func(p string) tea.Msg { return SaveConfirmedMsg{Path: p} })
}

func newExport(ctx context.Context, d dialogstore.Descriptor) (Dialog, error) {
	return newPathPrompt(ctx, d, "Export", func(p string) tea.Msg { return ExportConfirmedMsg{Path: p} })
}

func (d *PathPrompt) Init() tea.Cmd { return textinput.Blink }

// Path resolves the current input the way enter would.
func (d *PathPrompt) Path() string {
	val := d.input.Value()
	if val == "" {
		// fall back to placeholder if user left it blank
		val = d.input.Placeholder
	}
	if val == "" {
		return ""
	}
	// Expand bare names into lastDir
	if d.lastDir != "" && !filepath.IsAbs(val) && filepath.Dir(val) == "." {
		val = filepath.Join(d.lastDir, filepath.Base(val))
	}
	return val
}

func (d *PathPrompt) Update(msg tea.Msg) (Dialog, tea.Cmd) {
	if m, ok := msg.(tea.KeyMsg); ok {
		switch m.String() {
		case "enter":
			path := d.Path()
			if path == "" {
				return d, nil
			}
			logging.Debugf("%sDialog:Update:: enter, path %s", d.verb, path)
			return d, d.then(d.confirm(path))
		case "esc":
			logging.Debugf("%sDialog:Update:: esc, cancelled", d.verb)
			return d, d.close()
		}
	}
	var cmd tea.Cmd
	d.input, cmd = d.input.Update(msg)
	return d, cmd
}

func (d *PathPrompt) View() string {
	help := hintStyle.Render(fmt.Sprintf("enter to %s • esc to cancel", strings.ToLower(d.verb)))
	return d.box().Render(fmt.Sprintf("%s\n\n%s", d.input.View(), help))
}

func (d *PathPrompt) Focus() tea.Cmd { return d.input.Focus() }
func (d *PathPrompt) Blur()          { d.input.Blur() }

