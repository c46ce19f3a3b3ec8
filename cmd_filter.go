package main

import (
	"fmt"
	"regexp"

	"github.com/andareed/siftly-gallery/logging"
)

func (m *model) setFilterPattern(pattern string) error {
	logging.Infof("Setting Pattern to: %s", pattern)
	if pattern == "" {
		m.data.filterRegex = nil
	} else {
		re, err := regexp.Compile(pattern)
		if err != nil {
			return fmt.Errorf("compile filter: %w", err)
		}
		m.data.filterRegex = re
	}
	m.applyFilter()
	return nil
}

func (m *model) includeRow(row *catalogRow) bool {
	if m.data.filterRegex == nil {
		return true
	}
	return m.data.filterRegex.MatchString(row.String())
}

// applyFilter rebuilds filteredIndices and keeps the cursor in range.
func (m *model) applyFilter() {
	m.data.filteredIndices = m.data.filteredIndices[:0]
	for i := range m.data.rows {
		if m.includeRow(&m.data.rows[i]) {
			m.data.filteredIndices = append(m.data.filteredIndices, i)
		}
	}
	switch {
	case len(m.data.filteredIndices) == 0:
		m.cursor = -1
	case m.cursor < 0:
		m.cursor = 0
	case m.cursor >= len(m.data.filteredIndices):
		m.cursor = len(m.data.filteredIndices) - 1
	}
}
