package dialogs

import (
	"context"
	"errors"
	"testing"

	"github.com/andareed/siftly-gallery/dialogstore"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRegistry_UnknownKind(t *testing.T) {
	e := newEnv()
	_, err := NewRegistry().Build(e.ctx, dialogstore.Descriptor{ID: "x", Kind: "nope"})
	assert.ErrorIs(t, err, ErrUnknownKind)
}

func TestRegistry_BuiltinKinds(t *testing.T) {
	r := Builtin(Deps{})
	assert.Equal(t, []dialogstore.Kind{
		KindCollection, KindConfirm, KindDetail, KindExport, KindHash,
		KindHelp, KindMenu, KindReport, KindReview, KindSave,
	}, r.Kinds())
}

func TestRegistry_BadProps(t *testing.T) {
	e := newEnv()
	r := Builtin(Deps{})
	_, err := r.Build(e.ctx, dialogstore.Descriptor{ID: "x", Kind: KindReport, Props: "not props"})
	assert.ErrorIs(t, err, ErrBadProps)

	_, err = r.Build(e.ctx, dialogstore.Descriptor{ID: "x", Kind: KindReport})
	assert.ErrorIs(t, err, ErrBadProps, "report needs an entity type")
}

func TestRegistry_PointerProps(t *testing.T) {
	e := newEnv()
	r := Builtin(Deps{})
	dlg := e.mount(t, r, dialogstore.Settings{ID: "r", Kind: KindReport, Props: &ReportProps{EntityType: EntityImage, EntityID: 3}})
	_, msg := press(dlg, "enter")
	done := msg.(DoneMsg)
	assert.Equal(t, uint64(3), done.Result.(ReportSubmittedMsg).EntityID)
}

func TestBuild_OutsideProviderPanics(t *testing.T) {
	r := Builtin(Deps{})
	assert.PanicsWithValue(t, dialogstore.ErrNoProvider, func() {
		_, _ = r.Build(context.Background(), dialogstore.Descriptor{ID: "h", Kind: KindHelp})
	})
}

func TestHelp_ClosesOnEsc(t *testing.T) {
	e := newEnv()
	dlg := e.mount(t, Builtin(Deps{}), dialogstore.Settings{ID: "help", Kind: KindHelp, Props: HelpProps{
		Bindings: []key.Binding{key.NewBinding(key.WithKeys("q"), key.WithHelp("q", "quit"))},
	}})
	assert.Contains(t, dlg.View(), "quit")

	_, msg := press(dlg, "esc")
	assert.Equal(t, CloseMsg{ID: "help"}, msg)
}

func TestBase_DimsWhenCovered(t *testing.T) {
	e := newEnv()
	r := Builtin(Deps{})
	first := e.mount(t, r, dialogstore.Settings{ID: "a", Kind: KindHelp}).(*Help)
	assert.True(t, first.level.Focused())

	e.mount(t, r, dialogstore.Settings{ID: "b", Kind: KindHelp})
	assert.False(t, first.level.Focused())

	e.store.CloseByID("b")
	assert.True(t, first.level.Focused())
}

func TestPathPrompt_SaveExpandsLastDir(t *testing.T) {
	e := newEnv()
	dlg := e.mount(t, Builtin(Deps{}), dialogstore.Settings{ID: "save", Kind: KindSave, Props: PathProps{
		DefaultName: "catalog.json",
		LastDir:     "/data",
	}})

	_, msg := press(dlg, "enter")
	done := msg.(DoneMsg)
	assert.Equal(t, dialogstore.ID("save"), done.ID)
	assert.Equal(t, SaveConfirmedMsg{Path: "/data/catalog.json"}, done.Result)
}

func TestPathPrompt_ExportKeepsAbsolute(t *testing.T) {
	e := newEnv()
	dlg := e.mount(t, Builtin(Deps{}), dialogstore.Settings{ID: "x", Kind: KindExport, Props: PathProps{LastDir: "/data"}})
	dlg = typeText(dlg, "/tmp/out.csv")

	_, msg := press(dlg, "enter")
	assert.Equal(t, ExportConfirmedMsg{Path: "/tmp/out.csv"}, msg.(DoneMsg).Result)
}

func TestPathPrompt_EmptyDoesNothing(t *testing.T) {
	e := newEnv()
	dlg := e.mount(t, Builtin(Deps{}), dialogstore.Settings{ID: "x", Kind: KindExport})
	_, msg := press(dlg, "enter")
	assert.Nil(t, msg)

	_, msg = press(dlg, "esc")
	assert.Equal(t, CloseMsg{ID: "x"}, msg)
}

func TestReport_ChoosesReason(t *testing.T) {
	e := newEnv()
	dlg := e.mount(t, Builtin(Deps{}), dialogstore.Settings{ID: "rep", Kind: KindReport, Props: ReportProps{
		EntityType: EntityModel,
		EntityID:   42,
		Title:      "Dreamshaper",
	}})
	assert.Contains(t, dlg.View(), "Dreamshaper")

	dlg, _ = press(dlg, "down", "down", "up")
	assert.Equal(t, ReportReasons[1], dlg.(*Report).Reason())

	_, msg := press(dlg, "4", "enter")
	assert.Equal(t, DoneMsg{ID: "rep", Result: ReportSubmittedMsg{
		EntityType: EntityModel,
		EntityID:   42,
		Reason:     ReportReasons[3],
	}}, msg)
}

func TestReview_EditsAndSaves(t *testing.T) {
	e := newEnv()
	dlg := e.mount(t, Builtin(Deps{}), dialogstore.Settings{ID: "rev", Kind: KindReview, Props: ReviewProps{
		ResourceID: 7,
		Rating:     3,
	}})
	rv := dlg.(*Review)

	press(dlg, "left", "left", "left")
	assert.Equal(t, 1, rv.Rating())
	press(dlg, "5")
	assert.Equal(t, 5, rv.Rating())

	press(dlg, "tab", " ")
	assert.True(t, rv.Recommended())

	press(dlg, "tab")
	typeText(dlg, "great **model**")

	_, msg := press(dlg, "ctrl+s")
	assert.Equal(t, DoneMsg{ID: "rev", Result: ReviewSavedMsg{
		ResourceID:  7,
		Rating:      5,
		Recommended: true,
		Details:     "great **model**",
	}}, msg)
}

func TestReview_DefaultsToFiveStars(t *testing.T) {
	e := newEnv()
	dlg := e.mount(t, Builtin(Deps{}), dialogstore.Settings{ID: "rev", Kind: KindReview, Props: ReviewProps{ResourceID: 1}})
	assert.Equal(t, 5, dlg.(*Review).Rating())

	press(dlg, "ctrl+p")
	assert.Contains(t, dlg.View(), "nothing to preview")
}

func TestCollection_FiltersAndRanks(t *testing.T) {
	e := newEnv()
	dlg := e.mount(t, Builtin(Deps{}), dialogstore.Settings{ID: "col", Kind: KindCollection, Props: CollectionProps{
		ResourceID:  9,
		Collections: []string{"Inspiration", "Favourites", "Fav poses", "To try"},
		Member:      []string{"Favourites"},
	}})
	c := dlg.(*Collection)
	assert.Equal(t, []string{"Fav poses", "Favourites", "Inspiration", "To try"}, c.Filtered())

	typeText(dlg, "fav")
	assert.Equal(t, []string{"Fav poses", "Favourites"}, c.Filtered())

	_, msg := press(dlg, "down", "enter")
	assert.Equal(t, DoneMsg{ID: "col", Result: CollectionSelectedMsg{
		ResourceID: 9,
		Collection: "Favourites",
		Added:      false,
	}}, msg)
}

func TestCollection_CreateNew(t *testing.T) {
	e := newEnv()
	dlg := e.mount(t, Builtin(Deps{}), dialogstore.Settings{ID: "col", Kind: KindCollection, Props: CollectionProps{
		ResourceID:  1,
		Collections: []string{"Favourites"},
	}})
	typeText(dlg, "Landscapes")
	name, create := dlg.(*Collection).Current()
	assert.True(t, create)
	assert.Equal(t, "Landscapes", name)

	_, msg := press(dlg, "enter")
	assert.Equal(t, CollectionSelectedMsg{ResourceID: 1, Collection: "Landscapes", Added: true}, msg.(DoneMsg).Result)
}

func TestFuzzyMatchScore(t *testing.T) {
	ok, _ := fuzzyMatchScore("Favourites", "fvt")
	assert.True(t, ok)
	ok, _ = fuzzyMatchScore("Favourites", "zz")
	assert.False(t, ok)

	_, prefix := fuzzyMatchScore("Favourites", "fav")
	_, inner := fuzzyMatchScore("My favourites", "fav")
	assert.Greater(t, prefix, inner)
}

type deleteReview struct{ id uint64 }

func TestConfirm_DangerDefaultsToCancel(t *testing.T) {
	e := newEnv()
	r := Builtin(Deps{})
	dlg := e.mount(t, r, dialogstore.Settings{ID: "c", Kind: KindConfirm, Props: ConfirmProps{
		Title:     "Delete review",
		Danger:    true,
		OnConfirm: deleteReview{id: 5},
	}})
	_, msg := press(dlg, "enter")
	assert.Equal(t, CloseMsg{ID: "c"}, msg)

	_, msg = press(dlg, "right", "enter")
	assert.Equal(t, DoneMsg{ID: "c", Result: deleteReview{id: 5}}, msg)

	_, msg = press(dlg, "y")
	assert.Equal(t, DoneMsg{ID: "c", Result: deleteReview{id: 5}}, msg)
}

func TestConfirm_NilOnConfirmJustCloses(t *testing.T) {
	e := newEnv()
	dlg := e.mount(t, Builtin(Deps{}), dialogstore.Settings{ID: "c", Kind: KindConfirm})
	_, msg := press(dlg, "y")
	assert.Equal(t, CloseMsg{ID: "c"}, msg)
}

func TestMenu_ItemsAndShortcuts(t *testing.T) {
	e := newEnv()
	dlg := e.mount(t, Builtin(Deps{}), dialogstore.Settings{ID: "m", Kind: KindMenu, Props: MenuProps{
		Title: "Review",
		Items: []MenuItem{
			{Label: "Edit review", Key: "e", Msg: ActionMsg{Action: ActionReview, ResourceID: 1}},
			{Label: "Delete review", Key: "d", Danger: true, KeepOpen: true, Msg: ActionMsg{Action: ActionDeleteReview, ResourceID: 1}},
			{Label: "Cancel"},
		},
	}})

	_, msg := press(dlg, "d")
	assert.Equal(t, ActionMsg{Action: ActionDeleteReview, ResourceID: 1}, msg, "KeepOpen items emit without closing")

	_, msg = press(dlg, "up", "up", "enter")
	assert.Equal(t, DoneMsg{ID: "m", Result: ActionMsg{Action: ActionReview, ResourceID: 1}}, msg)

	_, msg = press(dlg, "down", "down", "enter")
	assert.Equal(t, CloseMsg{ID: "m"}, msg)
}

func TestMenu_RequiresItems(t *testing.T) {
	e := newEnv()
	_, err := Builtin(Deps{}).Build(e.ctx, dialogstore.Descriptor{ID: "m", Kind: KindMenu, Props: MenuProps{}})
	assert.ErrorIs(t, err, ErrBadProps)
}

func TestHash_CyclesAndCopies(t *testing.T) {
	e := newEnv()
	cp := &fakeCopier{}
	dlg := e.mount(t, Builtin(Deps{Copier: cp}), dialogstore.Settings{ID: "h", Kind: KindHash, Props: HashProps{
		Hashes:    []ModelHash{{Type: "AutoV2", Hash: "abc"}, {Type: "SHA256", Hash: "def"}},
		Preferred: "SHA256",
	}})
	h := dlg.(*Hash)
	assert.Equal(t, "SHA256", h.Selected().Type)

	_, msg := press(dlg, "tab")
	assert.Equal(t, HashTypeChangedMsg{Type: "AutoV2"}, msg)

	_, msg = press(dlg, "enter")
	copied := msg.(HashCopiedMsg)
	require.NoError(t, copied.Err)
	assert.Equal(t, []string{"abc"}, cp.got)

	dlg.Update(copied)
	assert.Contains(t, dlg.View(), "Copied")
}

func TestHash_CopyFailureShown(t *testing.T) {
	e := newEnv()
	cp := &fakeCopier{err: errors.New("no tty")}
	dlg := e.mount(t, Builtin(Deps{Copier: cp}), dialogstore.Settings{ID: "h", Kind: KindHash, Props: HashProps{
		Hashes: []ModelHash{{Type: "AutoV2", Hash: "abc"}},
	}})
	_, msg := press(dlg, "enter")
	dlg.Update(msg)
	assert.Contains(t, dlg.View(), "no tty")
}

func TestDetail_ActionsOnlyWhenCurrent(t *testing.T) {
	e := newEnv()
	r := Builtin(Deps{})
	page := e.stack.Register()
	page.Increase()

	dlg := e.mount(t, r, dialogstore.Settings{ID: "d", Kind: KindDetail, Category: dialogstore.CategoryRoutedDialog,
		Props: DetailProps{Resource: ResourceView{ID: 4, Title: "Model 4", Rating: 4, Details: "nice"}}})
	det := dlg.(*Detail)
	assert.Equal(t, 1, det.Frame().Depth())
	assert.True(t, det.Frame().IsCurrent())

	_, msg := press(dlg, "r")
	assert.Equal(t, ActionMsg{Action: ActionReport, ResourceID: 4}, msg)

	// another page layer on top
	det.Frame().Increase()
	_, msg = press(dlg, "r")
	assert.Nil(t, msg)
	assert.Contains(t, dlg.View(), "covered")

	det.Frame().Decrease()
	_, msg = press(dlg, "esc")
	assert.Equal(t, CloseMsg{ID: "d"}, msg)
}

var _ tea.Msg = deleteReview{}
