package main

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"
)

// Placement targets a dialog descriptor can name.
const (
	targetCenter = ""
	targetTop    = "top"
	targetBottom = "bottom"
)

// placeDialog composites fg over base at the position target names, on a
// width x height screen.
func placeDialog(base, fg, target string, width, height int) string {
	fgW := lipgloss.Width(fg)
	fgH := lipgloss.Height(fg)
	x := max((width-fgW)/2, 0)

	var y int
	switch target {
	case targetTop:
		y = 1
	case targetBottom:
		y = height - fgH - 1
	default:
		y = (height - fgH) / 2
	}
	y = max(y, 0)

	return overlayAt(padLines(base, height), fg, x, y, width, height)
}

// overlayAt writes overlay on top of base starting at column x, row y. Both are
// line based grids.
func overlayAt(base, overlay string, x, y, width, height int) string {
	baseLines := splitLines(base)
	overlayLines := splitLines(overlay)
	overlayWidth := maxLineWidth(overlayLines)
	for i, line := range overlayLines {
		row := y + i
		if row < 0 || row >= len(baseLines) || row >= height {
			continue
		}
		target := padRight(baseLines[row], width)
		left := ansi.Truncate(target, x, "")
		if w := ansi.StringWidth(left); w < x {
			left += strings.Repeat(" ", x-w)
		}

		overlayLine := padRight(line, overlayWidth)
		pos := x + ansi.StringWidth(overlayLine)
		right := ""
		if width > 0 {
			right = ansi.TruncateLeft(target, pos, "")
			if gap := width - pos - ansi.StringWidth(right); gap > 0 {
				right = strings.Repeat(" ", gap) + right
			}
		}
		// reset so the overlay's colours do not bleed into the page
		baseLines[row] = left + "\x1b[0m" + overlayLine + "\x1b[0m" + right
	}
	return strings.Join(baseLines, "\n")
}

// padLines makes s at least height lines tall.
func padLines(s string, height int) string {
	lines := splitLines(s)
	for len(lines) < height {
		lines = append(lines, "")
	}
	return strings.Join(lines, "\n")
}

func splitLines(s string) []string {
	if s == "" {
		return []string{""}
	}
	return strings.Split(s, "\n")
}

func maxLineWidth(lines []string) int {
	m := 0
	for _, line := range lines {
		if w := ansi.StringWidth(line); w > m {
			m = w
		}
	}
	return m
}

func padRight(s string, width int) string {
	if width <= 0 {
		return s
	}
	w := ansi.StringWidth(s)
	if w >= width {
		return s
	}
	return s + strings.Repeat(" ", width-w)
}
