package main

import "strings"

// searchOnce moves the cursor to the first visible row at or after it that contains
// query, wrapping around. The query stays highlighted.
func (m *model) searchOnce(query string) bool {
	m.ui.searchQuery = strings.TrimSpace(query)
	if m.ui.searchQuery == "" {
		return true
	}
	q := strings.ToLower(m.ui.searchQuery)
	n := len(m.data.filteredIndices)
	for step := 0; step < n; step++ {
		i := (max(m.cursor, 0) + step) % n
		row := &m.data.rows[m.data.filteredIndices[i]]
		if strings.Contains(strings.ToLower(row.String()), q) {
			m.cursor = i
			return true
		}
	}
	return false
}
