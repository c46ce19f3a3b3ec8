package main

import (
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/andareed/siftly-gallery/dialogs"
	"github.com/andareed/siftly-gallery/dialogstore"
	"github.com/andareed/siftly-gallery/logging"
	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
)

func (m *model) View() string {
	if !m.ready {
		return "loading..."
	}
	w, h := m.terminalWidth, m.terminalHeight

	// The top-most routed layer replaces the page; plain dialogs above it are
	// composited in list order.
	descs := m.store.Dialogs()
	screen := ""
	start := 0
	for i := len(descs) - 1; i >= 0; i-- {
		if descs[i].Category != dialogstore.CategoryRoutedDialog {
			continue
		}
		if md, ok := m.mounted[descs[i].ID]; ok {
			screen = m.routedView(md)
			start = i + 1
			break
		}
	}
	if start == 0 {
		screen = m.pageView()
	}

	for _, d := range descs[start:] {
		md, ok := m.mounted[d.ID]
		if !ok || d.Category == dialogstore.CategoryRoutedDialog {
			continue
		}
		screen = placeDialog(screen, md.dlg.View(), d.Target, w, h)
	}
	return screen
}

func (m *model) routedView(md *mountedDialog) string {
	if p, ok := md.dlg.(dialogs.Pager); ok {
		return p.Page(m.terminalWidth, m.terminalHeight)
	}
	return lipgloss.Place(
		m.terminalWidth, m.terminalHeight,
		lipgloss.Center, lipgloss.Center,
		md.dlg.View(),
		lipgloss.WithWhitespaceChars(" "),
		lipgloss.WithWhitespaceBackground(lipgloss.Color(m.cfg.UI.OverlayBackground)),
	)
}

func (m *model) pageView() string {
	bordered := tableStyle.Render(m.viewport.View())
	contentW := lipgloss.Width(bordered)
	return appstyle.Render(lipgloss.JoinVertical(lipgloss.Left,
		m.headerView(),
		bordered,
		m.footerView(contentW),
	))
}

// gutterWidth is the row number plus the status marks.
func (m *model) gutterWidth() int {
	return len(fmt.Sprintf("%d", len(m.data.rows))) + utf8.RuneCountInString(statusMarksBlank) + 1
}

func (m *model) headerView() string {
	var cells []string
	for _, col := range m.data.header {
		if !col.Visible || col.Width <= 0 {
			continue
		}
		cells = append(cells, cellStyle.Width(col.Width).Render(col.Name))
	}
	headerRow := lipgloss.JoinHorizontal(lipgloss.Top, cells...)
	return headerStyle.Render(strings.Repeat(" ", m.gutterWidth()) + headerRow)
}

func (m *model) footerView(width int) string {
	st := FooterState{
		Mode:        CmdNone,
		FileName:    m.InitialPath,
		FilterLabel: "None",
		Dialogs:     m.store.Len(),
		Row:         m.cursor + 1,
		TotalRows:   len(m.data.filteredIndices),
		Legend:      "(? help · enter details · m menu · r report · R review · a collect · y hash)",
	}
	if m.ui.mode == modeCommand {
		st.Mode = m.ui.command.cmd
		st.ModeInput = m.activeCommandLine()
	}
	if m.data.filterRegex != nil && m.data.filterRegex.String() != "" {
		st.FilterLabel = m.data.filterRegex.String()
	}
	st.StatusMessage = noticeText(m.ui.noticeMsg, m.ui.noticeType)

	if logging.IsDebugMode() {
		st.Legend += fmt.Sprintf(" | dbg term=%dx%d vp=%dx%d cur=%d vis=%d-%d depth=%d",
			m.terminalWidth, m.terminalHeight, m.viewport.Width, m.viewport.Height,
			m.cursor, m.ui.visibleStart, m.ui.visibleEnd, m.stack.Len())
	}
	return RenderFooter(width, st)
}

// statusMarks shows review, report and collection state for a row.
func (m *model) statusMarks(id uint64) string {
	var b strings.Builder
	if _, ok := m.data.reviews[id]; ok {
		b.WriteString(reviewedMarker.Render("★"))
	} else {
		b.WriteString(" ")
	}
	if len(m.data.reports[id]) > 0 {
		b.WriteString(reportedMarker.Render("!"))
	} else {
		b.WriteString(" ")
	}
	if len(m.data.memberships[id]) > 0 {
		b.WriteString(collectedMarker.Render("+"))
	} else {
		b.WriteString(" ")
	}
	return b.String()
}

func (m *model) renderRowAt(filteredIdx int) (string, int, bool) {
	if filteredIdx < 0 || filteredIdx >= len(m.data.filteredIndices) {
		return "", 0, false
	}

	selected := filteredIdx == m.cursor
	rowBgStyle := rowStyle
	rowPrefix := bgSeq(lipgloss.Color("")) + fgSeq(lipgloss.Color(rowTextFGColor))
	if selected {
		rowBgStyle = rowSelectedStyle
		rowPrefix = bgSeq(lipgloss.Color(rowSelectedBGColor)) + fgSeq(lipgloss.Color(rowSelectedTextFGColor))
	}
	rowSuffix := termenv.CSI + "0m"

	rowPtr := &m.data.rows[m.data.filteredIndices[filteredIdx]]
	numW := len(fmt.Sprintf("%d", len(m.data.rows)))
	firstLineMarker := m.statusMarks(rowPtr.id) + rowBgStyle.Render(fmt.Sprintf(" %*d", numW, rowPtr.originalIndex))
	additionalLineMarker := statusMarksBlank + rowBgStyle.Render(strings.Repeat(" ", numW+1))

	contentRow := *rowPtr
	if m.ui.searchQuery != "" {
		cols := make([]string, len(rowPtr.cols))
		for i, col := range rowPtr.cols {
			cols[i] = highlightMatches(col, m.ui.searchQuery)
		}
		contentRow.cols = cols
	}
	content := contentRow.Render(cellStyle, m.data.header)
	rowPtr.height = contentRow.height

	lines := strings.Split(content, "\n")
	for i, line := range lines {
		left := additionalLineMarker
		if i == 0 {
			left = firstLineMarker
		}
		if m.ui.searchQuery != "" {
			line = restoreRowStyleAfterReset(line, rowPrefix)
		}
		lines[i] = left + rowPrefix + line + rowSuffix
	}
	return strings.Join(lines, "\n"), contentRow.height, true
}

func highlightMatches(text string, query string) string {
	q := strings.TrimSpace(query)
	if q == "" || text == "" {
		return text
	}
	lowerText := strings.ToLower(text)
	lowerQuery := strings.ToLower(q)
	if len(lowerText) != len(text) {
		// case folding changed byte offsets, skip highlighting
		return text
	}
	var b strings.Builder
	start := 0
	for {
		idx := strings.Index(lowerText[start:], lowerQuery)
		if idx == -1 {
			b.WriteString(text[start:])
			break
		}
		idx += start
		b.WriteString(text[start:idx])
		b.WriteString(searchHighlight.Render(text[idx : idx+len(lowerQuery)]))
		start = idx + len(lowerQuery)
	}
	return b.String()
}

func restoreRowStyleAfterReset(s string, rowPrefix string) string {
	reset := termenv.CSI + "0m"
	if rowPrefix == "" || !strings.Contains(s, reset) {
		return s
	}
	return strings.ReplaceAll(s, reset, reset+rowPrefix)
}

func fgSeq(c lipgloss.Color) string {
	return colorSeq(c, false)
}

func bgSeq(c lipgloss.Color) string {
	return colorSeq(c, true)
}

func colorSeq(c lipgloss.Color, bg bool) string {
	value := string(c)
	if value == "" {
		if bg {
			return termenv.CSI + "49m"
		}
		return termenv.CSI + "39m"
	}
	tc := lipgloss.ColorProfile().Color(value)
	if tc == nil {
		return ""
	}
	return termenv.CSI + tc.Sequence(bg) + "m"
}

func (m *model) renderViewport() string {
	if len(m.data.filteredIndices) == 0 || m.cursor < 0 {
		return ""
	}
	m.data.header = layoutColumns(m.data.header, m.viewport.Width-m.gutterWidth())

	renderedRows, startIdx, endIdx := m.computeVisibleRows(m.cursor, m.viewport.Height)
	m.ui.visibleStart = startIdx
	m.ui.visibleEnd = endIdx
	m.pageRowSize = len(renderedRows)

	var b strings.Builder
	for _, r := range renderedRows {
		b.WriteString(r + "\n")
	}
	return b.String()
}

// computeVisibleRows renders the cursor row and fills the remaining height around it,
// keeping the cursor roughly centred.
func (m *model) computeVisibleRows(cursor int, viewportHeight int) ([]string, int, int) {
	cursorRenderedRow, cursorHeight, ok := m.renderRowAt(cursor)
	if !ok {
		return nil, 0, 0
	}

	heightFree := viewportHeight - cursorHeight
	desiredAboveHeight := max(heightFree/2, 0)
	upIndex := cursor - 1
	downIndex := cursor + 1

	var above, below []string
	aboveHeight := 0
	for heightFree > 0 && (upIndex >= 0 || downIndex < len(m.data.filteredIndices)) {
		if upIndex >= 0 && aboveHeight < desiredAboveHeight {
			rendered, height, ok := m.renderRowAt(upIndex)
			if ok && height <= heightFree {
				above = append(above, rendered)
				heightFree -= height
				aboveHeight += height
				upIndex--
				continue
			}
		}
		if downIndex < len(m.data.filteredIndices) {
			rendered, height, ok := m.renderRowAt(downIndex)
			if ok && height <= heightFree {
				below = append(below, rendered)
				heightFree -= height
				downIndex++
				continue
			}
		}
		if upIndex >= 0 {
			rendered, height, ok := m.renderRowAt(upIndex)
			if ok && height <= heightFree {
				above = append(above, rendered)
				heightFree -= height
				aboveHeight += height
				upIndex--
				continue
			}
		}
		break
	}

	renderedRows := make([]string, 0, len(above)+1+len(below))
	for i := len(above) - 1; i >= 0; i-- {
		renderedRows = append(renderedRows, above[i])
	}
	renderedRows = append(renderedRows, cursorRenderedRow)
	renderedRows = append(renderedRows, below...)

	return renderedRows, cursor - len(above), cursor + len(below)
}
