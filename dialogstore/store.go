// Package dialogstore keeps the ordered set of open dialogs and the stacking context
// used by nested modal layers. It knows nothing about rendering: kinds and props are
// opaque and resolved by the host.
package dialogstore

import (
	"sync"

	"github.com/jonboulle/clockwork"
)

// Observer is notified after every change to the open set. Calls happen outside the
// store lock, so an observer may read the store.
type Observer interface {
	DialogOpened(d Descriptor)
	DialogClosed(d Descriptor, reason CloseReason)
}

type Option func(*Store)

// WithClock sets the clock used to derive implicit ids.
func WithClock(c clockwork.Clock) Option {
	return func(s *Store) { s.clock = c }
}

func WithObserver(o Observer) Option {
	return func(s *Store) { s.observers = append(s.observers, o) }
}

// Store is the dialog stack. The zero value is not usable; call New.
type Store struct {
	mu        sync.RWMutex
	dialogs   []Descriptor
	revision  uint64
	clock     clockwork.Clock
	observers []Observer
}

func New(opts ...Option) *Store {
	s := &Store{clock: clockwork.NewRealClock()}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// resolve fills the defaults of a Settings value.
func (s *Store) resolve(args Settings) Descriptor {
	d := Descriptor(args)
	if d.ID == "" {
		d.ID = IntID(s.clock.Now().UnixMilli())
	}
	if d.Category == "" {
		d.Category = CategoryDialog
	}
	return d
}

func (s *Store) indexOf(id ID) int {
	for i := range s.dialogs {
		if s.dialogs[i].ID == id {
			return i
		}
	}
	return -1
}

// Trigger opens a dialog unless one with the same id is already open, in which case
// nothing changes. It returns the id the dialog is tracked under.
func (s *Store) Trigger(args Settings) ID {
	d := s.resolve(args)

	s.mu.Lock()
	if s.indexOf(d.ID) > -1 {
		s.mu.Unlock()
		return d.ID
	}
	s.dialogs = append(s.dialogs, d)
	s.revision++
	s.mu.Unlock()

	for _, o := range s.observers {
		o.DialogOpened(d)
	}
	return d.ID
}

// Toggle opens the dialog if its id is absent and closes it otherwise. It reports
// whether the dialog is open afterwards. Without an explicit id there is nothing to
// close, so it behaves like Trigger.
func (s *Store) Toggle(args Settings) bool {
	if args.ID == "" {
		return s.Has(s.Trigger(args))
	}
	d := s.resolve(args)

	s.mu.Lock()
	if s.indexOf(d.ID) > -1 {
		removed := s.removeLocked(d.ID)
		s.mu.Unlock()
		s.notifyClosed(removed, ReasonByID)
		return false
	}
	s.dialogs = append(s.dialogs, d)
	s.revision++
	s.mu.Unlock()

	for _, o := range s.observers {
		o.DialogOpened(d)
	}
	return true
}

// CloseByID removes every dialog with the given id. Absent ids are ignored.
func (s *Store) CloseByID(id ID) {
	s.mu.Lock()
	removed := s.removeLocked(id)
	s.mu.Unlock()

	s.notifyClosed(removed, ReasonByID)
}

func (s *Store) removeLocked(id ID) []Descriptor {
	var removed []Descriptor
	kept := make([]Descriptor, 0, len(s.dialogs))
	for _, d := range s.dialogs {
		if d.ID == id {
			removed = append(removed, d)
			continue
		}
		kept = append(kept, d)
	}
	if len(removed) > 0 {
		s.dialogs = kept
		s.revision++
	}
	return removed
}

// CloseLatest pops the most recently opened dialog.
func (s *Store) CloseLatest() {
	s.mu.Lock()
	if len(s.dialogs) == 0 {
		s.mu.Unlock()
		return
	}
	last := s.dialogs[len(s.dialogs)-1]
	s.dialogs = s.dialogs[:len(s.dialogs)-1]
	s.revision++
	s.mu.Unlock()

	s.notifyClosed([]Descriptor{last}, ReasonLatest)
}

func (s *Store) CloseAll() {
	s.mu.Lock()
	removed := s.dialogs
	s.dialogs = nil
	if len(removed) > 0 {
		s.revision++
	}
	s.mu.Unlock()

	s.notifyClosed(removed, ReasonAll)
}

func (s *Store) notifyClosed(removed []Descriptor, reason CloseReason) {
	for _, d := range removed {
		for _, o := range s.observers {
			o.DialogClosed(d, reason)
		}
	}
}

// Dialogs returns a copy of the open dialogs, bottom first.
func (s *Store) Dialogs() []Descriptor {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]Descriptor, len(s.dialogs))
	copy(out, s.dialogs)
	return out
}

func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.dialogs)
}

func (s *Store) Has(id ID) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.indexOf(id) > -1
}

// Latest returns the top-most dialog.
func (s *Store) Latest() (Descriptor, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if len(s.dialogs) == 0 {
		return Descriptor{}, false
	}
	return s.dialogs[len(s.dialogs)-1], true
}

// Revision increases on every change to the open set. Hosts compare it to skip
// re-syncing when nothing moved.
func (s *Store) Revision() uint64 {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.revision
}

// Level is the dialog count captured when a component mounted.
type Level struct {
	store *Store
	n     int
}

// CaptureLevel records the current number of open dialogs.
func (s *Store) CaptureLevel() Level {
	return Level{store: s, n: s.Len()}
}

func (l Level) Value() int { return l.n }

// Focused reports whether no dialog was opened or closed since the level was captured.
func (l Level) Focused() bool {
	if l.store == nil {
		return false
	}
	return l.store.Len() == l.n
}
