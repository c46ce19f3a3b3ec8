// Package clipboard copies text to the system clipboard, falling back to the
// terminal's OSC52 sequence when no clipboard tool is available (e.g. over SSH).
package clipboard

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/andareed/siftly-gallery/logging"
	"github.com/atotto/clipboard"
)

// ErrUnavailable is returned when neither the system clipboard nor OSC52 can be used.
var ErrUnavailable = errors.New("clipboard unavailable")

// Copier copies text. The TUI holds one so tests can swap it out.
type Copier interface {
	Copy(text string) error
}

// System uses the platform clipboard, then OSC52 on Out.
type System struct {
	Out io.Writer
}

func (s System) Copy(text string) error {
	if !clipboard.Unsupported {
		err := clipboard.WriteAll(text)
		if err == nil {
			logging.Infof("Clipboard: copied via system clipboard")
			return nil
		}
		logging.Warnf("Clipboard: system clipboard failed: %v", err)
	}
	out := s.Out
	if out == nil {
		out = os.Stdout
	}
	return copyOSC52(out, text)
}

var _ Copier = System{}

func wrapUnavailable(reason string) error {
	return fmt.Errorf("%w: %s", ErrUnavailable, reason)
}
