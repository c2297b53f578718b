// Package database holds connection plumbing shared by the storage backends.
package database

import (
	"context"
	"errors"
	"sync"

	"golang.org/x/sync/singleflight"
)

// ErrClosed is returned by Get after Close has been called.
var ErrClosed = errors.New("database: handle closed")

// OpenFunc establishes a new connection.
type OpenFunc[T any] func(ctx context.Context) (T, error)

// CloseFunc releases a connection created by an OpenFunc.
type CloseFunc[T any] func(ctx context.Context, conn T) error

// Lazy is a connection handle that is opened on first use and reused
// afterwards. Concurrent first callers share a single in-flight open; a
// failed open is not remembered, so the next caller tries again.
type Lazy[T any] struct {
	open  OpenFunc[T]
	close CloseFunc[T]
	group singleflight.Group

	mu     sync.RWMutex
	conn   T
	ready  bool
	closed bool
}

// NewLazy returns a handle that calls open on first use and close on Close.
func NewLazy[T any](open OpenFunc[T], close CloseFunc[T]) *Lazy[T] {
	return &Lazy[T]{open: open, close: close}
}

// Get returns the shared connection, opening it if needed. The open itself
// ignores ctx cancellation; ctx only bounds how long this caller waits.
func (l *Lazy[T]) Get(ctx context.Context) (T, error) {
	var zero T
	if conn, ok, err := l.current(); ok || err != nil {
		return conn, err
	}

	ch := l.group.DoChan("open", func() (any, error) {
		if conn, ok, err := l.current(); ok || err != nil {
			return conn, err
		}
		conn, err := l.open(context.WithoutCancel(ctx))
		if err != nil {
			return zero, err
		}

		l.mu.Lock()
		defer l.mu.Unlock()
		if l.closed {
			if l.close != nil {
				_ = l.close(context.WithoutCancel(ctx), conn)
			}
			return zero, ErrClosed
		}
		l.conn, l.ready = conn, true
		return conn, nil
	})

	select {
	case <-ctx.Done():
		return zero, ctx.Err()
	case res := <-ch:
		if res.Err != nil {
			return zero, res.Err
		}
		return res.Val.(T), nil
	}
}

func (l *Lazy[T]) current() (T, bool, error) {
	l.mu.RLock()
	defer l.mu.RUnlock()
	if l.closed {
		var zero T
		return zero, false, ErrClosed
	}
	return l.conn, l.ready, nil
}

// Close releases the connection if one was opened. Later calls are no-ops.
func (l *Lazy[T]) Close(ctx context.Context) error {
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.closed {
		return nil
	}
	l.closed = true
	if !l.ready {
		return nil
	}
	conn := l.conn
	var zero T
	l.conn, l.ready = zero, false
	if l.close == nil {
		return nil
	}
	return l.close(ctx, conn)
}
