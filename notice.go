package main

import (
	"time"

	"github.com/andareed/siftly-gallery/logging"
	tea "github.com/charmbracelet/bubbletea"
)

// Notices are one-line footer messages. Each gets a sequence number and its clear
// timer only wipes that notice, never a newer one.

type clearNoticeMsg struct{ id int }

const defaultNoticeDuration = 2 * time.Second

var noticeIcons = map[string]string{
	"info":    "ℹ",
	"success": "✓",
	"warn":    "!",
	"error":   "×",
}

func noticeText(msg, kind string) string {
	icon, ok := noticeIcons[kind]
	switch {
	case msg == "":
		return ""
	case !ok:
		return msg
	}
	return icon + " " + msg
}

func (m *model) noticeDuration() time.Duration {
	if d := m.cfg.UI.NoticeDuration; d > 0 {
		return d
	}
	return defaultNoticeDuration
}

// startNotice shows msg and returns the timer that clears it.
func (m *model) startNotice(msg, kind string) tea.Cmd {
	m.ui.noticeSeq++
	m.ui.noticeMsg, m.ui.noticeType = msg, kind
	seq := m.ui.noticeSeq
	logging.Debugf("notice %d (%s): %s", seq, kind, msg)
	return tea.Tick(m.noticeDuration(), func(time.Time) tea.Msg { return clearNoticeMsg{id: seq} })
}

func (m *model) clearNotice(id int) {
	if id != m.ui.noticeSeq {
		return
	}
	m.ui.noticeMsg, m.ui.noticeType = "", ""
}
