package main

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/andareed/siftly-gallery/dialogs"
	"github.com/andareed/siftly-gallery/dialogstore"
	"github.com/andareed/siftly-gallery/logging"
	tea "github.com/charmbracelet/bubbletea"
)

const helpID dialogstore.ID = "help"

// deleteReviewMsg is the confirm dialog's result for "Delete review".
type deleteReviewMsg struct{ ResourceID uint64 }

// dialogID keys a dialog by kind and resource, so opening the same dialog for the same
// resource twice is a no-op.
func dialogID(kind dialogstore.Kind, resourceID uint64) dialogstore.ID {
	return dialogstore.ID(fmt.Sprintf("%s:%d", kind, resourceID))
}

func (m *model) toggleHelp() tea.Cmd {
	m.store.Toggle(dialogstore.Settings{
		ID:   helpID,
		Kind: dialogs.KindHelp,
		Props: dialogs.HelpProps{
			Title:    "sfgallery keys",
			Bindings: Keys.Legend(),
		},
	})
	return m.syncDialogs()
}

func (m *model) runSelected(a dialogs.Action) tea.Cmd {
	row, ok := m.currentRow()
	if !ok {
		return m.startNotice("No row selected", "warn")
	}
	return m.runAction(a, row.id)
}

// runAction opens the dialog for a on the given row.
func (m *model) runAction(a dialogs.Action, id uint64) tea.Cmd {
	row, ok := m.data.rowByID(id)
	if !ok {
		return m.startNotice(fmt.Sprintf("Unknown resource %d", id), "warn")
	}
	title := row.Title(m.data.header)
	logging.Debugf("runAction:: %s on %d (%s)", a, id, title)

	switch a {
	case dialogs.ActionReport:
		return m.trigger(dialogstore.Settings{
			ID:   dialogID(dialogs.KindReport, id),
			Kind: dialogs.KindReport,
			Props: dialogs.ReportProps{
				EntityType: dialogs.EntityModel,
				EntityID:   id,
				Title:      title,
			},
		})

	case dialogs.ActionReview:
		r := m.data.reviews[id]
		return m.trigger(dialogstore.Settings{
			ID:   dialogID(dialogs.KindReview, id),
			Kind: dialogs.KindReview,
			Props: dialogs.ReviewProps{
				ResourceID:  id,
				Title:       title,
				Rating:      r.Rating,
				Recommended: r.Recommended,
				Details:     r.Details,
			},
		})

	case dialogs.ActionCollect:
		return m.trigger(dialogstore.Settings{
			ID:   dialogID(dialogs.KindCollection, id),
			Kind: dialogs.KindCollection,
			Props: dialogs.CollectionProps{
				ResourceID:  id,
				Title:       title,
				Collections: append([]string(nil), m.data.collections...),
				Member:      append([]string(nil), m.data.memberships[id]...),
			},
		})

	case dialogs.ActionHash:
		return m.trigger(dialogstore.Settings{
			ID:     dialogID(dialogs.KindHash, id),
			Kind:   dialogs.KindHash,
			Target: targetBottom,
			Props: dialogs.HashProps{
				ResourceID: id,
				Hashes:     m.rowHashes(row),
				Preferred:  m.data.hashType,
			},
		})

	case dialogs.ActionMenu:
		return m.trigger(dialogstore.Settings{
			ID:    dialogID(dialogs.KindMenu, id),
			Kind:  dialogs.KindMenu,
			Props: dialogs.MenuProps{Title: title, Items: m.menuItems(id)},
		})

	case dialogs.ActionDetail:
		return m.trigger(dialogstore.Settings{
			ID:       dialogID(dialogs.KindDetail, id),
			Kind:     dialogs.KindDetail,
			Category: dialogstore.CategoryRoutedDialog,
			Props:    dialogs.DetailProps{Resource: m.resourceView(row)},
			Options: dialogstore.Options{
				OnClose: func() { m.selectRow(id) },
			},
		})

	case dialogs.ActionDeleteReview:
		if _, ok := m.data.reviews[id]; !ok {
			return m.startNotice("Nothing to delete", "warn")
		}
		return m.trigger(dialogstore.Settings{
			ID:   dialogID(dialogs.KindConfirm, id),
			Kind: dialogs.KindConfirm,
			Props: dialogs.ConfirmProps{
				Title:        "Delete review",
				Body:         fmt.Sprintf("Delete your review of %s?", title),
				ConfirmLabel: "Delete",
				Danger:       true,
				OnConfirm:    deleteReviewMsg{ResourceID: id},
			},
		})
	}
	return m.startNotice(fmt.Sprintf("Unknown action %q", a), "warn")
}

func (m *model) menuItems(id uint64) []dialogs.MenuItem {
	act := func(a dialogs.Action) dialogs.ActionMsg { return dialogs.ActionMsg{Action: a, ResourceID: id} }

	reviewLabel := "Write review"
	_, reviewed := m.data.reviews[id]
	if reviewed {
		reviewLabel = "Edit review"
	}
	items := []dialogs.MenuItem{
		{Label: "Open details", Key: "o", Msg: act(dialogs.ActionDetail)},
		{Label: reviewLabel, Key: "e", Msg: act(dialogs.ActionReview)},
		{Label: "Add to collection", Key: "a", Msg: act(dialogs.ActionCollect)},
		{Label: "Copy model hash", Key: "y", Msg: act(dialogs.ActionHash)},
		{Label: "Report", Key: "r", Msg: act(dialogs.ActionReport)},
	}
	if reviewed {
		items = append(items, dialogs.MenuItem{
			Label:    "Delete review",
			Key:      "d",
			Danger:   true,
			KeepOpen: true,
			Msg:      act(dialogs.ActionDeleteReview),
		})
	}
	return append(items, dialogs.MenuItem{Label: "Cancel", Key: "c"})
}

// rowHashes collects the hash columns of row. Rows without any fall back to the
// row id so the badge always has something to copy.
func (m *model) rowHashes(row *catalogRow) []dialogs.ModelHash {
	var out []dialogs.ModelHash
	for _, c := range m.data.header {
		if c.Role != RoleHash {
			continue
		}
		v := strings.TrimSpace(row.cell(c.Index))
		if v == "" {
			continue
		}
		out = append(out, dialogs.ModelHash{Type: hashColumnTypes[strings.ToLower(strings.TrimSpace(c.Name))], Hash: v})
	}
	if len(out) == 0 {
		out = append(out, dialogs.ModelHash{Type: "ID", Hash: fmt.Sprintf("%016x", row.id)})
	}
	return out
}

func (m *model) resourceView(row *catalogRow) dialogs.ResourceView {
	v := dialogs.ResourceView{
		ID:          row.id,
		Title:       row.Title(m.data.header),
		Reports:     append([]string(nil), m.data.reports[row.id]...),
		Collections: append([]string(nil), m.data.memberships[row.id]...),
	}
	for _, c := range m.data.header {
		if c.Role == RolePrimary || !c.Visible {
			continue
		}
		if val := strings.TrimSpace(row.cell(c.Index)); val != "" {
			v.Fields = append(v.Fields, dialogs.Field{Name: c.Name, Value: val})
		}
	}
	if r, ok := m.data.reviews[row.id]; ok {
		v.Rating = r.Rating
		v.Recommended = r.Recommended
		v.Details = r.Details
	}
	return v
}

// refreshDetails re-reads the resource into every mounted detail page showing it.
func (m *model) refreshDetails(id uint64) {
	row, ok := m.data.rowByID(id)
	if !ok {
		return
	}
	for _, md := range m.mounted {
		if d, ok := md.dlg.(*dialogs.Detail); ok && d.ResourceID() == id {
			d.SetResource(m.resourceView(row))
		}
	}
}

func (m *model) openPathDialog(kind dialogstore.Kind, ext string) tea.Cmd {
	dir := m.ui.lastDir
	if dir == "" && m.InitialPath != "" {
		dir = filepath.Dir(m.InitialPath)
	}
	return m.trigger(dialogstore.Settings{
		ID:   dialogstore.ID(kind),
		Kind: kind,
		Props: dialogs.PathProps{
			DefaultName: defaultFileName(m.InitialPath, ext),
			LastDir:     dir,
		},
	})
}

// defaultFileName swaps the extension of the catalog file name for ext.
func defaultFileName(path, ext string) string {
	base := filepath.Base(path)
	if path == "" || base == "." {
		return "catalog" + ext
	}
	return strings.TrimSuffix(base, filepath.Ext(base)) + ext
}

// handleResult applies dialog results to the catalog. ok is false for messages that
// are not dialog results.
func (m *model) handleResult(msg tea.Msg) (tea.Cmd, bool) {
	switch msg := msg.(type) {
	case dialogs.ReportSubmittedMsg:
		n := m.data.addReport(msg.EntityID, msg.Reason)
		m.refreshDetails(msg.EntityID)
		m.refreshView()
		return m.startNotice(fmt.Sprintf("Reported (%s), %d report(s) on this %s", msg.Reason, n, msg.EntityType), "success"), true

	case dialogs.ReviewSavedMsg:
		m.data.setReview(msg.ResourceID, review{
			Rating:      msg.Rating,
			Recommended: msg.Recommended,
			Details:     msg.Details,
		})
		m.refreshDetails(msg.ResourceID)
		m.refreshView()
		return m.startNotice(fmt.Sprintf("Review saved (%d★)", msg.Rating), "success"), true

	case dialogs.CollectionSelectedMsg:
		m.data.toggleMembership(msg.ResourceID, msg.Collection, msg.Added)
		m.refreshDetails(msg.ResourceID)
		m.refreshView()
		if msg.Added {
			return m.startNotice("Added to "+msg.Collection, "success"), true
		}
		return m.startNotice("Removed from "+msg.Collection, "info"), true

	case deleteReviewMsg:
		m.data.deleteReview(msg.ResourceID)
		m.refreshDetails(msg.ResourceID)
		// the menu that offered the delete goes too
		m.store.CloseAll()
		cmd := m.syncDialogs()
		return tea.Batch(cmd, m.startNotice("Review deleted", "success")), true

	case dialogs.SaveConfirmedMsg:
		if err := saveSnapshot(&m.data, msg.Path); err != nil {
			logging.Errorf("save %s: %v", msg.Path, err)
			return m.startNotice(fmt.Sprintf("Save failed: %v", err), "error"), true
		}
		m.ui.lastDir = filepath.Dir(msg.Path)
		m.InitialPath = msg.Path
		return m.startNotice("Saved to "+msg.Path, "success"), true

	case dialogs.ExportConfirmedMsg:
		if err := exportCSV(&m.data, msg.Path); err != nil {
			logging.Errorf("export %s: %v", msg.Path, err)
			return m.startNotice(fmt.Sprintf("Export failed: %v", err), "error"), true
		}
		m.ui.lastDir = filepath.Dir(msg.Path)
		return m.startNotice("Exported to "+msg.Path, "success"), true

	case dialogs.HashTypeChangedMsg:
		m.data.hashType = msg.Type
		return nil, true

	case dialogs.HashCopiedMsg:
		notice := m.startNotice(msg.Type+" hash copied", "success")
		if msg.Err != nil {
			notice = m.startNotice(fmt.Sprintf("Copy failed: %v", msg.Err), "error")
		}
		return tea.Batch(notice, m.updateTop(msg)), true
	}
	return nil, false
}
