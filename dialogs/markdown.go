package dialogs

import (
	"strings"

	"github.com/andareed/siftly-gallery/logging"
	"github.com/charmbracelet/glamour"
)

// markdown lazily builds a glamour renderer for one wrap width.
type markdown struct {
	width    int
	renderer *glamour.TermRenderer
}

func (m *markdown) render(src string) string {
	src = strings.TrimSpace(src)
	if src == "" {
		return ""
	}
	if m.renderer == nil {
		r, err := glamour.NewTermRenderer(
			glamour.WithStandardStyle("dark"),
			glamour.WithWordWrap(m.width),
		)
		if err != nil {
			logging.Warnf("markdown renderer: %v", err)
			return src
		}
		m.renderer = r
	}
	out, err := m.renderer.Render(src)
	if err != nil {
		logging.Warnf("markdown render: %v", err)
		return src
	}
	return strings.Trim(out, "\n")
}
