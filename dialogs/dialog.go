package dialogs

import (
	"context"
	"errors"
	"fmt"
	"sort"

	"github.com/andareed/siftly-gallery/dialogstore"
	tea "github.com/charmbracelet/bubbletea"
)

// Dialog is the common interface all dialogs (Save, Report, Help, etc.) implement.
// The host mounts one per open descriptor and routes keys to the top-most one.
type Dialog interface {
	Init() tea.Cmd // optional, can return nil
	Update(msg tea.Msg) (Dialog, tea.Cmd)
	View() string

	Focus() tea.Cmd
	Blur()
}

// Layer is implemented by routed dialogs that take part in the stacking context.
type Layer interface {
	Frame() *dialogstore.Frame
}

// Pager is implemented by routed dialogs that lay out their own full-screen page.
type Pager interface {
	Page(width, height int) string
}

const (
	KindHelp       dialogstore.Kind = "help"
	KindSave       dialogstore.Kind = "save"
	KindExport     dialogstore.Kind = "export"
	KindReport     dialogstore.Kind = "report"
	KindReview     dialogstore.Kind = "review"
	KindCollection dialogstore.Kind = "collection"
	KindConfirm    dialogstore.Kind = "confirm"
	KindMenu       dialogstore.Kind = "menu"
	KindHash       dialogstore.Kind = "hash"
	KindDetail     dialogstore.Kind = "detail"
)

var (
	ErrUnknownKind = errors.New("unknown dialog kind")
	ErrBadProps    = errors.New("bad dialog props")
)

// --- Messages ---------------------------------------------------------------

type (
	// CloseMsg asks the host to dismiss one dialog.
	CloseMsg struct{ ID dialogstore.ID }
	// OpenMsg asks the host to open another dialog on top.
	OpenMsg struct{ Settings dialogstore.Settings }
	// DoneMsg dismisses a dialog and then hands Result to the host.
	DoneMsg struct {
		ID     dialogstore.ID
		Result tea.Msg
	}
)

func Close(id dialogstore.ID) tea.Cmd {
	return func() tea.Msg { return CloseMsg{ID: id} }
}

func Open(s dialogstore.Settings) tea.Cmd {
	return func() tea.Msg { return OpenMsg{Settings: s} }
}

func emit(msg tea.Msg) tea.Cmd {
	return func() tea.Msg { return msg }
}

// --- Registry ---------------------------------------------------------------

// Factory builds the component for a descriptor. ctx carries the dialog store and
// stacking context.
type Factory func(ctx context.Context, d dialogstore.Descriptor) (Dialog, error)

type Registry struct {
	factories map[dialogstore.Kind]Factory
}

func NewRegistry() *Registry {
	return &Registry{factories: make(map[dialogstore.Kind]Factory)}
}

func (r *Registry) Register(kind dialogstore.Kind, f Factory) {
	r.factories[kind] = f
}

func (r *Registry) Build(ctx context.Context, d dialogstore.Descriptor) (Dialog, error) {
	f, ok := r.factories[d.Kind]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownKind, d.Kind)
	}
	return f(ctx, d)
}

func (r *Registry) Kinds() []dialogstore.Kind {
	out := make([]dialogstore.Kind, 0, len(r.factories))
	for k := range r.factories {
		out = append(out, k)
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}

// Deps are the collaborators some built-in dialogs need.
type Deps struct {
	Copier Copier
}

// Copier is satisfied by clipboard.Copier.
type Copier interface {
	Copy(text string) error
}

// Builtin returns a registry with every dialog kind this package provides.
func Builtin(deps Deps) *Registry {
	r := NewRegistry()
	r.Register(KindHelp, newHelp)
	r.Register(KindSave, newSave)
	r.Register(KindExport, newExport)
	r.Register(KindReport, newReport)
	r.Register(KindReview, newReview)
	r.Register(KindCollection, newCollection)
	r.Register(KindConfirm, newConfirm)
	r.Register(KindMenu, newMenu)
	r.Register(KindHash, func(ctx context.Context, d dialogstore.Descriptor) (Dialog, error) {
		return newHash(ctx, d, deps.Copier)
	})
	r.Register(KindDetail, newDetail)
	return r
}

// propsAs extracts typed props. A nil payload yields the zero value.
func propsAs[T any](d dialogstore.Descriptor) (T, error) {
	var zero T
	switch p := d.Props.(type) {
	case nil:
		return zero, nil
	case T:
		return p, nil
	case *T:
		if p != nil {
			return *p, nil
		}
		return zero, nil
	}
	return zero, fmt.Errorf("%w: %s wants %T, got %T", ErrBadProps, d.Kind, zero, d.Props)
}
