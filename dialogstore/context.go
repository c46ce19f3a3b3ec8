package dialogstore

import (
	"context"
	"errors"
)

// ErrNoProvider is the panic value of the Must accessors when nothing was attached to
// the context.
var ErrNoProvider = errors.New("dialogstore: used outside of provider")

type storeKey struct{}

type stackKey struct{}

func NewContext(ctx context.Context, s *Store) context.Context {
	return context.WithValue(ctx, storeKey{}, s)
}

func FromContext(ctx context.Context) (*Store, bool) {
	s, ok := ctx.Value(storeKey{}).(*Store)
	return s, ok && s != nil
}

// MustFromContext returns the attached store and panics with ErrNoProvider otherwise.
func MustFromContext(ctx context.Context) *Store {
	s, ok := FromContext(ctx)
	if !ok {
		panic(ErrNoProvider)
	}
	return s
}

func NewStackContext(ctx context.Context, c *StackingContext) context.Context {
	return context.WithValue(ctx, stackKey{}, c)
}

func StackingFromContext(ctx context.Context) (*StackingContext, bool) {
	c, ok := ctx.Value(stackKey{}).(*StackingContext)
	return c, ok && c != nil
}

func MustStackingFromContext(ctx context.Context) *StackingContext {
	c, ok := StackingFromContext(ctx)
	if !ok {
		panic(ErrNoProvider)
	}
	return c
}
