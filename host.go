package main

import (
	"fmt"
	"time"

	"github.com/andareed/siftly-gallery/dialogs"
	"github.com/andareed/siftly-gallery/dialogstore"
	"github.com/andareed/siftly-gallery/logging"
	tea "github.com/charmbracelet/bubbletea"
)

// mountedDialog is a live component for one open descriptor.
type mountedDialog struct {
	desc dialogstore.Descriptor
	dlg  dialogs.Dialog
	// Routed layers only: frame is the layer's own registration, below the frame
	// that was increased when it mounted.
	frame *dialogstore.Frame
	below *dialogstore.Frame
}

type onCloseMsg struct {
	id dialogstore.ID
	fn func()
}

// syncDialogs reconciles mounted components with the store: components whose
// descriptor is gone are unmounted (and their OnClose scheduled), new descriptors get
// a component built by the registry.
func (m *model) syncDialogs() tea.Cmd {
	var cmds []tea.Cmd
	for m.store.Revision() != m.revision {
		m.revision = m.store.Revision()
		descs := m.store.Dialogs()

		open := make(map[dialogstore.ID]bool, len(descs))
		for _, d := range descs {
			open[d.ID] = true
		}
		for i := len(m.order) - 1; i >= 0; i-- {
			id := m.order[i]
			if open[id] {
				continue
			}
			cmds = append(cmds, m.unmount(id))
			m.order = append(m.order[:i], m.order[i+1:]...)
		}

		for _, d := range descs {
			if _, ok := m.mounted[d.ID]; ok {
				continue
			}
			cmd, err := m.mount(d)
			if err != nil {
				logging.Errorf("syncDialogs:: cannot mount %s (%s): %v", d.ID, d.Kind, err)
				cmds = append(cmds, m.startNotice(fmt.Sprintf("Cannot open %s: %v", d.Kind, err), "error"))
				m.store.CloseByID(d.ID)
				continue
			}
			cmds = append(cmds, cmd)
		}
	}
	cmds = append(cmds, m.refocus())
	m.refreshView()
	return tea.Batch(cmds...)
}

func (m *model) mount(d dialogstore.Descriptor) (tea.Cmd, error) {
	md := &mountedDialog{desc: d}
	if d.Category == dialogstore.CategoryRoutedDialog {
		md.below = m.topFrame()
		md.below.Increase()
	}

	dlg, err := m.registry.Build(m.ctx, d)
	if err != nil {
		if md.below != nil {
			md.below.Decrease()
		}
		return nil, err
	}
	md.dlg = dlg

	if md.below != nil {
		if l, ok := dlg.(dialogs.Layer); ok {
			md.frame = l.Frame()
		} else {
			md.frame = m.stack.Register()
		}
	}

	logging.Debugf("mount:: %s kind=%s category=%s depth=%d", d.ID, d.Kind, d.Category, m.stack.Len())
	m.mounted[d.ID] = md
	m.order = append(m.order, d.ID)
	return dlg.Init(), nil
}

func (m *model) unmount(id dialogstore.ID) tea.Cmd {
	md, ok := m.mounted[id]
	if !ok {
		return nil
	}
	delete(m.mounted, id)
	md.dlg.Blur()
	if md.below != nil {
		md.below.Decrease()
	}
	if m.focused == id {
		m.focused = ""
	}
	logging.Debugf("unmount:: %s depth=%d", id, m.stack.Len())

	fn := md.desc.Options.OnClose
	if fn == nil {
		return nil
	}
	wait := md.desc.Options.TransitionDuration
	if wait <= 0 {
		wait = m.cfg.UI.Transition
	}
	return tea.Tick(wait, func(time.Time) tea.Msg { return onCloseMsg{id: id, fn: fn} })
}

// topFrame is the stacking frame of the top-most routed layer, or the page's.
func (m *model) topFrame() *dialogstore.Frame {
	for i := len(m.order) - 1; i >= 0; i-- {
		if md := m.mounted[m.order[i]]; md != nil && md.frame != nil {
			return md.frame
		}
	}
	return m.page
}

// topDialog is the component of the latest descriptor.
func (m *model) topDialog() (*mountedDialog, bool) {
	d, ok := m.store.Latest()
	if !ok {
		return nil, false
	}
	md, ok := m.mounted[d.ID]
	return md, ok
}

func (m *model) refocus() tea.Cmd {
	top, ok := m.topDialog()
	if !ok || top.desc.ID == m.focused {
		return nil
	}
	if prev, ok := m.mounted[m.focused]; ok {
		prev.dlg.Blur()
	}
	m.focused = top.desc.ID
	return top.dlg.Focus()
}

func (m *model) updateTop(msg tea.Msg) tea.Cmd {
	top, ok := m.topDialog()
	if !ok {
		return nil
	}
	next, cmd := top.dlg.Update(msg)
	top.dlg = next
	return cmd
}

// trigger opens s and mounts it right away.
func (m *model) trigger(s dialogstore.Settings) tea.Cmd {
	m.store.Trigger(s)
	return m.syncDialogs()
}
