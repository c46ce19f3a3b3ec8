package main

import (
	"fmt"

	"github.com/andareed/siftly-gallery/logging"
	tea "github.com/charmbracelet/bubbletea"
)

func (m *model) hasRows() bool {
	return len(m.data.filteredIndices) > 0 && m.cursor >= 0
}

func (m *model) jumpToStart() {
	if m.hasRows() {
		m.cursor = 0
	}
}

func (m *model) jumpToEnd() {
	if m.hasRows() {
		m.cursor = len(m.data.filteredIndices) - 1
	}
}

func (m *model) pageDown() {
	if !m.hasRows() {
		return
	}
	m.cursor = min(m.cursor+max(m.pageRowSize, 1), len(m.data.filteredIndices)-1)
}

func (m *model) pageUp() {
	if !m.hasRows() {
		return
	}
	m.cursor = max(m.cursor-max(m.pageRowSize, 1), 0)
}

// jumpToLine moves to the row with the given 1-based source line number.
func (m *model) jumpToLine(lineNo int) tea.Cmd {
	logging.Debugf("jumpToLine %d", lineNo)
	if !m.hasRows() {
		return nil
	}
	if lineNo <= 0 || lineNo > len(m.data.rows) {
		return m.startNotice(fmt.Sprintf("Line %d out of bounds", lineNo), "warn")
	}
	for i, idx := range m.data.filteredIndices {
		if m.data.rows[idx].originalIndex == lineNo {
			m.cursor = i
			return nil
		}
	}
	return m.startNotice(fmt.Sprintf("Line %d not in current filter", lineNo), "warn")
}
