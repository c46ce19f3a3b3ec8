package main

import (
	"context"

	"github.com/andareed/siftly-gallery/clipboard"
	"github.com/andareed/siftly-gallery/config"
	"github.com/andareed/siftly-gallery/dialogs"
	"github.com/andareed/siftly-gallery/dialogstore"
	"github.com/andareed/siftly-gallery/logging"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
)

type model struct {
	data dataState
	ui   uiState
	cfg  config.Config

	viewport       viewport.Model
	ready          bool
	terminalWidth  int
	terminalHeight int
	cursor         int // index into data.filteredIndices
	pageRowSize    int

	InitialPath string

	// dialog host
	ctx      context.Context
	store    *dialogstore.Store
	stack    *dialogstore.StackingContext
	registry *dialogs.Registry
	page     *dialogstore.Frame
	mounted  map[dialogstore.ID]*mountedDialog
	order    []dialogstore.ID // mount order, oldest first
	revision uint64
	focused  dialogstore.ID
}

// hostDeps are the collaborators the model is built with.
type hostDeps struct {
	cfg       config.Config
	copier    clipboard.Copier
	storeOpts []dialogstore.Option
	stackOpts []dialogstore.StackOption
}

func newModel(data dataState, deps hostDeps) *model {
	if deps.copier == nil {
		deps.copier = clipboard.System{}
	}
	store := dialogstore.New(deps.storeOpts...)
	stack := dialogstore.NewStackingContext(deps.stackOpts...)
	ctx := dialogstore.NewStackContext(dialogstore.NewContext(context.Background(), store), stack)

	m := &model{
		data:     data,
		cfg:      deps.cfg,
		ctx:      ctx,
		store:    store,
		stack:    stack,
		registry: dialogs.Builtin(dialogs.Deps{Copier: deps.copier}),
		page:     stack.Register(),
		mounted:  make(map[dialogstore.ID]*mountedDialog),
	}
	m.applyFilter()
	return m
}

func (m *model) Init() tea.Cmd {
	logging.Info("sfgallery: Initialised")
	return nil
}

func (m *model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.resize(msg.Width, msg.Height)
		return m, nil
	case tea.KeyMsg:
		return m.updateKey(msg)
	case clearNoticeMsg:
		m.clearNotice(msg.id)
		return m, nil
	case onCloseMsg:
		logging.Debugf("Update:: running OnClose for %s", msg.id)
		msg.fn()
		m.refreshView()
		return m, nil
	case dialogs.CloseMsg:
		m.store.CloseByID(msg.ID)
		return m, m.syncDialogs()
	case dialogs.OpenMsg:
		m.store.Trigger(msg.Settings)
		return m, m.syncDialogs()
	case dialogs.DoneMsg:
		m.store.CloseByID(msg.ID)
		cmd := m.syncDialogs()
		if msg.Result == nil {
			return m, cmd
		}
		result := msg.Result
		return m, tea.Batch(cmd, func() tea.Msg { return result })
	case dialogs.ActionMsg:
		return m, m.runAction(msg.Action, msg.ResourceID)
	}

	if cmd, ok := m.handleResult(msg); ok {
		return m, cmd
	}
	// anything else (cursor blinks, async results) belongs to the top dialog
	return m, m.updateTop(msg)
}

func (m *model) resize(w, h int) {
	m.terminalWidth, m.terminalHeight = w, h
	// margins, table border, header and the two footer lines
	m.viewport = viewport.New(max(w-6, 0), max(h-7, 0))
	m.viewport.SetHorizontalStep(4)
	m.ready = true
	m.refreshView()
}

func (m *model) updateKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if msg.String() == "ctrl+c" {
		return m, tea.Quit
	}

	if m.store.Len() > 0 {
		switch {
		case key.Matches(msg, Keys.CloseAll):
			m.store.CloseAll()
			return m, m.syncDialogs()
		case key.Matches(msg, Keys.CloseDialog):
			m.store.CloseLatest()
			return m, m.syncDialogs()
		}
		return m, m.updateTop(msg)
	}

	if !m.page.IsCurrent() {
		return m, nil
	}
	if m.ui.mode == modeCommand {
		return m.handleCommandKey(msg)
	}
	return m.handleViewModeKey(msg)
}

func (m *model) handleViewModeKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd
	switch {
	case key.Matches(msg, Keys.Quit):
		return m, tea.Quit
	case key.Matches(msg, Keys.RowDown):
		if m.hasRows() && m.cursor < len(m.data.filteredIndices)-1 {
			m.cursor++
		}
	case key.Matches(msg, Keys.RowUp):
		if m.cursor > 0 {
			m.cursor--
		}
	case key.Matches(msg, Keys.PageDown):
		m.pageDown()
	case key.Matches(msg, Keys.PageUp):
		m.pageUp()
	case key.Matches(msg, Keys.Top):
		m.jumpToStart()
	case key.Matches(msg, Keys.Bottom):
		m.jumpToEnd()
	case key.Matches(msg, Keys.ScrollLeft):
		m.viewport.ScrollLeft(4)
	case key.Matches(msg, Keys.ScrollRight):
		m.viewport.ScrollRight(4)
	case key.Matches(msg, Keys.Search):
		m.enterCommandMode(CmdSearch)
	case key.Matches(msg, Keys.Filter):
		m.enterCommandMode(CmdFilter)
	case key.Matches(msg, Keys.Jump):
		m.enterCommandMode(CmdJump)
	case key.Matches(msg, Keys.ClearFilter):
		_ = m.setFilterPattern("")
		m.ui.searchQuery = ""
	case key.Matches(msg, Keys.OpenHelp):
		cmd = m.toggleHelp()
	case key.Matches(msg, Keys.SaveToFile):
		cmd = m.openPathDialog(dialogs.KindSave, ".json")
	case key.Matches(msg, Keys.ExportToFile):
		cmd = m.openPathDialog(dialogs.KindExport, ".csv")
	case key.Matches(msg, Keys.OpenDetail):
		cmd = m.runSelected(dialogs.ActionDetail)
	case key.Matches(msg, Keys.Report):
		cmd = m.runSelected(dialogs.ActionReport)
	case key.Matches(msg, Keys.Review):
		cmd = m.runSelected(dialogs.ActionReview)
	case key.Matches(msg, Keys.Collect):
		cmd = m.runSelected(dialogs.ActionCollect)
	case key.Matches(msg, Keys.Menu):
		cmd = m.runSelected(dialogs.ActionMenu)
	case key.Matches(msg, Keys.Hash):
		cmd = m.runSelected(dialogs.ActionHash)
	}

	m.refreshView()
	return m, cmd
}

// currentRow returns the row under the cursor.
func (m *model) currentRow() (*catalogRow, bool) {
	if !m.hasRows() || m.cursor >= len(m.data.filteredIndices) {
		return nil, false
	}
	return &m.data.rows[m.data.filteredIndices[m.cursor]], true
}

// selectRow moves the cursor to the row with id when it is visible.
func (m *model) selectRow(id uint64) {
	for i, idx := range m.data.filteredIndices {
		if m.data.rows[idx].id == id {
			m.cursor = i
			return
		}
	}
}

func (m *model) refreshView() {
	if !m.ready {
		return
	}
	m.viewport.SetContent(m.renderViewport())
}
