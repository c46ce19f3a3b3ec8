package main

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"
	"github.com/muesli/termenv"
)

// FooterState is everything the two footer lines show.
type FooterState struct {
	Mode      Command
	ModeInput string

	FileName string

	FilterLabel string
	Dialogs     int // open dialog count

	Row       int
	TotalRows int

	StatusMessage string
	Legend        string
}

type footerTheme struct {
	bar    lipgloss.Color
	status lipgloss.Color
	pillBG lipgloss.Color
	pillFG lipgloss.Color
	file   lipgloss.Color
	text   lipgloss.Color
	dim    lipgloss.Color
	notice lipgloss.Color
	legend lipgloss.Color
}

var footerColors = footerTheme{
	bar:    "#2b2b2b",
	status: "#000000",
	pillBG: "#ff9f1c",
	pillFG: "#000000",
	file:   "#e0e0e0",
	text:   "#cfcfcf",
	dim:    "#a0a0a0",
	notice: "#9a9a9a",
	legend: "#b0b0b0",
}

const (
	footerGap      = 1
	footerFilterW  = 12
	footerDialogsW = 2
	footerMinW     = 10 // narrowest the pill and counters shrink to
	countersFormat = "[FILTER: %s] · [DIALOGS: %s]"
)

// RenderFooter draws the control bar (mode, file, filter and dialog counters, row
// position) above the status bar (notice and key legend).
func RenderFooter(width int, st FooterState) string {
	if width <= 0 {
		return ""
	}
	if st.FilterLabel == "" {
		st.FilterLabel = "None"
	}
	if st.Legend == "" {
		st.Legend = "(? help · f filter · / search)"
	}
	st.Row = max(st.Row, 0)
	st.TotalRows = max(st.TotalRows, 0)

	return controlLine(width, st, footerColors) + "\n" + statusLine(width, st, footerColors)
}

func controlLine(width int, st FooterState, th footerTheme) string {
	rows := fit(fmt.Sprintf(" Rows %d/%d", st.Row, st.TotalRows), width)
	avail := max(width-ansi.StringWidth(rows), 0)

	pill := " " + commandLabel(st.Mode) + " "
	pillW := min(ansi.StringWidth(pill), min(max(avail/4, 20), 36))
	// counters keep their widest size so the bar does not jump as values change
	countersW := ansi.StringWidth(fmt.Sprintf(countersFormat,
		strings.Repeat("X", footerFilterW), strings.Repeat("X", footerDialogsW)))

	fileW := avail - pillW - countersW - 2*footerGap
	if fileW < 0 {
		cut := min(-fileW, max(countersW-footerMinW, 0))
		countersW -= cut
		fileW += cut
	}
	if fileW < 0 {
		cut := min(-fileW, max(pillW-footerMinW, 0))
		pillW -= cut
		fileW += cut
	}
	if fileW < 0 {
		pillW = max(pillW+fileW, 0)
		fileW = 0
	}

	counters := fmt.Sprintf(countersFormat,
		fit(strings.TrimSpace(st.FilterLabel), footerFilterW),
		fit(strconv.Itoa(st.Dialogs), footerDialogsW))

	var b strings.Builder
	b.WriteString(bgSeq(th.pillBG) + fgSeq(th.pillFG) + fit(pill, pillW))
	b.WriteString(bgSeq(th.bar) + fgSeq(th.text) + strings.Repeat(" ", footerGap))
	b.WriteString(fileSegment(fileW, st, th))
	b.WriteString(strings.Repeat(" ", footerGap))
	b.WriteString(fgSeq(th.dim) + padRight(fit(counters, countersW), countersW) + fgSeq(th.text))
	if used := pillW + fileW + countersW + 2*footerGap; used < avail {
		b.WriteString(strings.Repeat(" ", avail-used))
	}
	b.WriteString(rows)
	return bar(fit(b.String(), width), th.bar, th.text)
}

// fileSegment is the catalog path followed by the command being typed, if any.
func fileSegment(w int, st FooterState, th footerTheme) string {
	if w <= 0 {
		return ""
	}
	name := strings.TrimSpace(st.FileName)
	if name == "" {
		name = "(no file)"
	}
	file := fit("▸ "+name, w)
	rest := w - ansi.StringWidth(file)

	input := ""
	if in := strings.TrimSpace(st.ModeInput); in != "" {
		input = fit(" ▸ "+in, rest)
	}
	return fgSeq(th.file) + file + fgSeq(th.text) + padRight(input, rest)
}

func statusLine(width int, st FooterState, th footerTheme) string {
	legend := fit(st.Legend, width)
	left := max(width-ansi.StringWidth(legend), 0)
	notice := padRight(fit(st.StatusMessage, left), left)
	return bar(fgSeq(th.notice)+notice+fgSeq(th.legend)+legend, th.status, th.notice)
}

func bar(s string, bg, fg lipgloss.Color) string {
	return bgSeq(bg) + fgSeq(fg) + s + termenv.CSI + "0m"
}

// fit cuts s to at most w cells.
func fit(s string, w int) string {
	if w <= 0 {
		return ""
	}
	return ansi.Truncate(s, w, "")
}
