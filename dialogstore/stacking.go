package dialogstore

import "sync"

// StackObserver is told the stacking depth after every Increase or Decrease.
type StackObserver interface {
	StackChanged(depth int)
}

type StackOption func(*StackingContext)

func WithStackObserver(o StackObserver) StackOption {
	return func(c *StackingContext) { c.observers = append(c.observers, o) }
}

// StackingContext tracks nested modal layers. Each layer that opens something on top
// of itself pushes its captured depth, and a layer is current while nothing deeper has
// been pushed since it registered.
type StackingContext struct {
	mu        sync.RWMutex
	stack     []int
	observers []StackObserver
}

func NewStackingContext(opts ...StackOption) *StackingContext {
	c := &StackingContext{}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

func (c *StackingContext) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.stack)
}

// Register captures the current depth for one consumer. The depth stays fixed for
// the lifetime of the frame.
func (c *StackingContext) Register() *Frame {
	return &Frame{ctx: c, depth: c.Len()}
}

func (c *StackingContext) push(depth int) {
	c.mu.Lock()
	c.stack = append(c.stack, depth)
	n := len(c.stack)
	c.mu.Unlock()
	c.notify(n)
}

// remove drops the first occurrence of depth. It is value based: frames do not own a
// position in the stack.
func (c *StackingContext) remove(depth int) {
	c.mu.Lock()
	idx := -1
	for i, v := range c.stack {
		if v == depth {
			idx = i
			break
		}
	}
	if idx < 0 {
		c.mu.Unlock()
		return
	}
	next := make([]int, 0, len(c.stack)-1)
	next = append(next, c.stack[:idx]...)
	next = append(next, c.stack[idx+1:]...)
	c.stack = next
	n := len(c.stack)
	c.mu.Unlock()
	c.notify(n)
}

func (c *StackingContext) notify(n int) {
	for _, o := range c.observers {
		o.StackChanged(n)
	}
}

// Frame is one consumer's registration in a StackingContext.
type Frame struct {
	ctx   *StackingContext
	depth int
}

func (f *Frame) Depth() int { return f.depth }

// IsCurrent reports whether the frame is the top-most layer.
func (f *Frame) IsCurrent() bool { return f.ctx.Len() == f.depth }

// Increase marks that this layer opened another layer above itself.
func (f *Frame) Increase() { f.ctx.push(f.depth) }

// Decrease undoes one Increase. It is a no-op when the depth is not on the stack.
func (f *Frame) Decrease() { f.ctx.remove(f.depth) }
