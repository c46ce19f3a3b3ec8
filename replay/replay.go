// Package replay runs scripted dialog operations against a fresh store and stacking
// context, recording the stack after every step. It backs `sfgallery replay` and is
// handy for reproducing ordering bugs without a terminal.
package replay

import (
	"context"
	"errors"
	"fmt"
	"io"
	"sort"
	"time"

	"github.com/andareed/siftly-gallery/dialogstore"
	"github.com/andareed/siftly-gallery/logging"
	"github.com/jonboulle/clockwork"
	"gopkg.in/yaml.v3"
)

const (
	OpTrigger     = "trigger"
	OpToggle      = "toggle"
	OpClose       = "close"
	OpCloseLatest = "close-latest"
	OpCloseAll    = "close-all"
	OpRegister    = "register"
	OpIncrease    = "increase"
	OpDecrease    = "decrease"
)

var (
	ErrUnknownOp    = errors.New("unknown op")
	ErrUnknownFrame = errors.New("unknown frame")
	ErrBadStep      = errors.New("bad step")
)

// Step is one scripted operation. Frame names a stacking frame for register,
// increase and decrease.
type Step struct {
	Op       string `yaml:"op"`
	ID       string `yaml:"id,omitempty"`
	Kind     string `yaml:"kind,omitempty"`
	Category string `yaml:"category,omitempty"`
	Target   string `yaml:"target,omitempty"`
	Frame    string `yaml:"frame,omitempty"`
}

type Script struct {
	Name  string `yaml:"name,omitempty"`
	Steps []Step `yaml:"steps"`
}

// Dialog is the recorded form of an open descriptor.
type Dialog struct {
	ID       string `yaml:"id"`
	Kind     string `yaml:"kind,omitempty"`
	Category string `yaml:"category"`
	Target   string `yaml:"target,omitempty"`
}

// State is the snapshot taken after a step.
type State struct {
	Step    int      `yaml:"step"`
	Op      string   `yaml:"op"`
	Result  string   `yaml:"result,omitempty"`
	Dialogs []Dialog `yaml:"dialogs"`
	Depth   int      `yaml:"depth"`
	Current []string `yaml:"current,omitempty"`
}

// Parse decodes a YAML script. Unknown fields are rejected.
func Parse(r io.Reader) (*Script, error) {
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	var s Script
	if err := dec.Decode(&s); err != nil {
		if errors.Is(err, io.EOF) {
			return &s, nil
		}
		return nil, fmt.Errorf("decode script: %w", err)
	}
	return &s, nil
}

type Option func(*Runner)

// WithObserver attaches an observer to the store the runner creates.
func WithObserver(o dialogstore.Observer) Option {
	return func(r *Runner) { r.storeOpts = append(r.storeOpts, dialogstore.WithObserver(o)) }
}

// WithStackObserver attaches an observer to the runner's stacking context.
func WithStackObserver(o dialogstore.StackObserver) Option {
	return func(r *Runner) { r.stackOpts = append(r.stackOpts, dialogstore.WithStackObserver(o)) }
}

// Runner executes a script. Implicit ids come from a fake clock that starts at the
// Unix epoch and advances one millisecond per step, so output is reproducible.
type Runner struct {
	clock     *clockwork.FakeClock
	store     *dialogstore.Store
	stack     *dialogstore.StackingContext
	frames    map[string]*dialogstore.Frame
	storeOpts []dialogstore.Option
	stackOpts []dialogstore.StackOption
}

func NewRunner(opts ...Option) *Runner {
	r := &Runner{
		clock:  clockwork.NewFakeClockAt(time.UnixMilli(0)),
		frames: make(map[string]*dialogstore.Frame),
	}
	for _, opt := range opts {
		opt(r)
	}
	r.store = dialogstore.New(append([]dialogstore.Option{dialogstore.WithClock(r.clock)}, r.storeOpts...)...)
	r.stack = dialogstore.NewStackingContext(r.stackOpts...)
	return r
}

func (r *Runner) Store() *dialogstore.Store { return r.store }

// Run executes every step and returns the states recorded so far. The first failing
// step stops the run.
func (r *Runner) Run(ctx context.Context, s *Script) ([]State, error) {
	states := make([]State, 0, len(s.Steps))
	for i, step := range s.Steps {
		if err := ctx.Err(); err != nil {
			return states, err
		}
		result, err := r.apply(step)
		if err != nil {
			return states, fmt.Errorf("step %d (%s): %w", i+1, step.Op, err)
		}
		logging.Debugf("replay:: step %d %s %s", i+1, step.Op, result)
		states = append(states, r.snapshot(i+1, step.Op, result))
		r.clock.Advance(time.Millisecond)
	}
	return states, nil
}

func (r *Runner) apply(step Step) (string, error) {
	switch step.Op {
	case OpTrigger:
		return string(r.store.Trigger(settings(step))), nil
	case OpToggle:
		if step.ID == "" {
			return "", fmt.Errorf("%w: toggle needs an id", ErrBadStep)
		}
		if r.store.Toggle(settings(step)) {
			return "opened", nil
		}
		return "closed", nil
	case OpClose:
		if step.ID == "" {
			return "", fmt.Errorf("%w: close needs an id", ErrBadStep)
		}
		r.store.CloseByID(dialogstore.ID(step.ID))
		return "", nil
	case OpCloseLatest:
		r.store.CloseLatest()
		return "", nil
	case OpCloseAll:
		r.store.CloseAll()
		return "", nil
	case OpRegister:
		if step.Frame == "" {
			return "", fmt.Errorf("%w: register needs a frame name", ErrBadStep)
		}
		if _, ok := r.frames[step.Frame]; ok {
			return "", fmt.Errorf("%w: frame %q already registered", ErrBadStep, step.Frame)
		}
		f := r.stack.Register()
		r.frames[step.Frame] = f
		return fmt.Sprintf("depth %d", f.Depth()), nil
	case OpIncrease, OpDecrease:
		f, ok := r.frames[step.Frame]
		if !ok {
			return "", fmt.Errorf("%w: %q", ErrUnknownFrame, step.Frame)
		}
		if step.Op == OpIncrease {
			f.Increase()
		} else {
			f.Decrease()
		}
		return "", nil
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownOp, step.Op)
}

func settings(step Step) dialogstore.Settings {
	return dialogstore.Settings{
		ID:       dialogstore.ID(step.ID),
		Kind:     dialogstore.Kind(step.Kind),
		Category: dialogstore.Category(step.Category),
		Target:   step.Target,
	}
}

func (r *Runner) snapshot(n int, op, result string) State {
	st := State{Step: n, Op: op, Result: result, Depth: r.stack.Len(), Dialogs: []Dialog{}}
	for _, d := range r.store.Dialogs() {
		st.Dialogs = append(st.Dialogs, Dialog{
			ID:       string(d.ID),
			Kind:     string(d.Kind),
			Category: string(d.Category),
			Target:   d.Target,
		})
	}
	for name, f := range r.frames {
		if f.IsCurrent() {
			st.Current = append(st.Current, name)
		}
	}
	sort.Strings(st.Current)
	return st
}

// Write encodes states as a YAML document.
func Write(w io.Writer, states []State) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(states); err != nil {
		return fmt.Errorf("encode states: %w", err)
	}
	return enc.Close()
}
