// Package settle holds the "degrade, don't fail" helpers used by every
// optional sub-fetch. A sub-fetch returns a Maybe instead of an error once it
// has crossed its own boundary; batches wait for every member to settle and
// never short-circuit on the first failure.
package settle

import (
	"context"
	"log/slog"

	"golang.org/x/sync/errgroup"
)

// Maybe is a value that may be absent.
type Maybe[T any] struct {
	value T
	ok    bool
}

// Some wraps a present value.
func Some[T any](v T) Maybe[T] {
	return Maybe[T]{value: v, ok: true}
}

// None returns an absent value.
func None[T any]() Maybe[T] {
	return Maybe[T]{}
}

// Get returns the value and whether it is present.
func (m Maybe[T]) Get() (T, bool) {
	return m.value, m.ok
}

// Present reports whether the value is present.
func (m Maybe[T]) Present() bool { return m.ok }

// OrElse returns the value, or fallback when absent.
func (m Maybe[T]) OrElse(fallback T) T {
	if !m.ok {
		return fallback
	}
	return m.value
}

// From converts a (value, error) pair into a Maybe. A non-nil error is logged
// at debug level under what and swallowed.
func From[T any](logger *slog.Logger, what string, v T, err error) Maybe[T] {
	if err != nil {
		if logger == nil {
			logger = slog.Default()
		}
		logger.Debug("optional fetch degraded", "what", what, "error", err)
		return None[T]()
	}
	return Some(v)
}

// All runs fn for every item with at most limit calls in flight and waits for
// all of them. Results keep the input order; a failed member is None.
// limit <= 0 means unbounded.
func All[T, R any](ctx context.Context, limit int, items []T, fn func(context.Context, T) (R, error)) []Maybe[R] {
	out := make([]Maybe[R], len(items))
	if len(items) == 0 {
		return out
	}

	var g errgroup.Group
	if limit > 0 {
		g.SetLimit(limit)
	}
	for i, item := range items {
		g.Go(func() error {
			if ctx.Err() != nil {
				return nil
			}
			v, err := fn(ctx, item)
			if err == nil {
				out[i] = Some(v)
			}
			return nil
		})
	}
	_ = g.Wait()
	return out
}

// Values drops absent entries, keeping order.
func Values[T any](ms []Maybe[T]) []T {
	out := make([]T, 0, len(ms))
	for _, m := range ms {
		if v, ok := m.Get(); ok {
			out = append(out, v)
		}
	}
	return out
}
