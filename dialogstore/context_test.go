package dialogstore

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestContext_RoundTrip(t *testing.T) {
	s := New()
	c := NewStackingContext()
	ctx := NewStackContext(NewContext(context.Background(), s), c)

	got, ok := FromContext(ctx)
	assert.True(t, ok)
	assert.Same(t, s, got)
	assert.Same(t, s, MustFromContext(ctx))
	assert.Same(t, c, MustStackingFromContext(ctx))
}

func TestContext_MissingProviderPanics(t *testing.T) {
	ctx := context.Background()
	_, ok := FromContext(ctx)
	assert.False(t, ok)
	assert.PanicsWithValue(t, ErrNoProvider, func() { MustFromContext(ctx) })
	assert.PanicsWithValue(t, ErrNoProvider, func() { MustStackingFromContext(ctx) })
}
