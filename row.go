package main

import (
	"fmt"
	"hash/fnv"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

type catalogRow struct {
	cols          []string
	height        int
	id            uint64
	originalIndex int // 1-based line in the source, not a unique ID
}

func newCatalogRow(cols []string, originalIndex int) catalogRow {
	r := catalogRow{cols: cols, height: 1, originalIndex: originalIndex}
	r.id = r.ComputeID()
	return r
}

// ComputeID hashes the normalized cells with FNV-64a so the id survives reloads.
func (r catalogRow) ComputeID() uint64 {
	h := fnv.New64a()
	for _, col := range r.cols {
		norm := strings.ToLower(strings.TrimSpace(col))
		h.Write([]byte(norm))
		h.Write([]byte{0})
	}
	return h.Sum64()
}

func (r *catalogRow) Join(sep string) string {
	return strings.Join(r.cols, sep)
}

// String joins cells with tabs, the form regex filters and search match against.
func (r *catalogRow) String() string {
	return r.Join("\t")
}

func (r *catalogRow) cell(i int) string {
	if i < 0 || i >= len(r.cols) {
		return ""
	}
	return r.cols[i]
}

// Title is the primary column, falling back to the row number.
func (r *catalogRow) Title(cols []ColumnMeta) string {
	if t := strings.TrimSpace(r.cell(primaryColumn(cols))); t != "" {
		return t
	}
	return fmt.Sprintf("Row %d", r.originalIndex)
}

func (r *catalogRow) Render(style lipgloss.Style, colsMeta []ColumnMeta) string {
	var rendered []string
	for i, text := range r.cols {
		if i >= len(colsMeta) {
			break
		}
		meta := colsMeta[i]
		if !meta.Visible || meta.Width <= 0 {
			continue
		}
		rendered = append(rendered, style.Width(meta.Width).MaxHeight(3).Render(text))
	}

	joined := lipgloss.JoinHorizontal(lipgloss.Top, rendered...)
	r.height = lipgloss.Height(joined)
	return joined
}
