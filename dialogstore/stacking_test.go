package dialogstore

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

type depthRecorder struct{ depths []int }

func (d *depthRecorder) StackChanged(depth int) { d.depths = append(d.depths, depth) }

func TestStacking_OnlyDeepestIsCurrent(t *testing.T) {
	c := NewStackingContext()

	f0 := c.Register()
	f0.Increase()
	f1 := c.Register()
	f1.Increase()
	f2 := c.Register()

	assert.Equal(t, []int{0, 1, 2}, []int{f0.Depth(), f1.Depth(), f2.Depth()})
	assert.False(t, f0.IsCurrent())
	assert.False(t, f1.IsCurrent())
	assert.True(t, f2.IsCurrent())

	f1.Decrease()
	assert.True(t, f1.IsCurrent())
	assert.False(t, f2.IsCurrent())
}

func TestStacking_DepthIsCapturedOnce(t *testing.T) {
	c := NewStackingContext()
	f := c.Register()
	f.Increase()
	f.Increase()
	assert.Equal(t, 0, f.Depth())
	assert.Equal(t, 2, c.Len())
}

func TestStacking_DecreaseIsValueBased(t *testing.T) {
	c := NewStackingContext()
	a := c.Register()
	a.Increase()
	b := c.Register()
	b.Increase()
	a.Increase()

	// stack is [0 1 0]; removing 0 drops the first entry only.
	a.Decrease()
	assert.Equal(t, []int{1, 0}, c.stack)

	// a depth that was never pushed is ignored
	ghost := &Frame{ctx: c, depth: 9}
	ghost.Decrease()
	assert.Equal(t, 2, c.Len())
}

func TestStacking_ObserverSeesDepth(t *testing.T) {
	rec := &depthRecorder{}
	c := NewStackingContext(WithStackObserver(rec))
	f := c.Register()
	f.Increase()
	f.Decrease()
	f.Decrease()
	assert.Equal(t, []int{1, 0}, rec.depths)
}
