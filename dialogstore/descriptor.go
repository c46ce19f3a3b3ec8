package dialogstore

import (
	"strconv"
	"time"

	"github.com/google/uuid"
)

// ID identifies an open dialog. Ids are compared as strings.
type ID string

// IntID normalizes a numeric id.
func IntID(n int64) ID { return ID(strconv.FormatInt(n, 10)) }

// NewID returns a random id. Use it when two dialogs may be opened within the same
// millisecond, since the implicit id is only a timestamp.
func NewID() ID { return ID(uuid.NewString()) }

// Kind names the component the host renders for a dialog. The store never looks at it.
type Kind string

// Category tells the host how to mount a dialog.
type Category string

const (
	CategoryDialog       Category = "dialog"
	CategoryRoutedDialog Category = "routed-dialog"
)

type Options struct {
	TransitionDuration time.Duration
	// OnClose is invoked by the host after it has removed the dialog, never by the store.
	OnClose func()
}

// Settings describes a dialog to open. ID and Category may be left empty.
type Settings struct {
	ID       ID
	Kind     Kind
	Props    any
	Category Category
	Target   string
	Options  Options
}

// Descriptor is an open dialog as held by the store. ID and Category are always set.
type Descriptor Settings

// CloseReason records which operation removed a dialog.
type CloseReason string

const (
	ReasonByID   CloseReason = "by-id"
	ReasonLatest CloseReason = "latest"
	ReasonAll    CloseReason = "all"
)
