// Package pooler provides a generic pool of closable resources with a hard
// limit on how many are checked out at once.
package pooler

import (
	"context"
	"errors"
	"sync"

	"golang.org/x/sync/semaphore"
)

// ErrClosed is returned by Get after Close.
var ErrClosed = errors.New("pool is closed")

type Config[T any] struct {
	// MaxItems is the maximum number of items checked out at once.
	// Must be greater than zero.
	MaxItems int
	// MaxIdle is the maximum number of items kept for reuse.
	// Must be between zero and MaxItems.
	MaxIdle int
	// NewFunc creates an item. It receives the ctx passed to Get.
	NewFunc func(ctx context.Context) (T, error)
	// CloseFunc releases an item.
	CloseFunc func(T) error
}

// Pool is a generic, thread-safe pool for any resource type T. Get blocks
// while MaxItems items are checked out; Put closes the item instead of
// keeping it when MaxIdle items are already idle.
type Pool[T any] struct {
	Config[T]

	sem *semaphore.Weighted

	mu         sync.Mutex
	closed     bool
	totalItems int
	idleItems  []T
}

// NewPool validates config and returns an empty pool.
func NewPool[T any](config Config[T]) (*Pool[T], error) {
	if config.MaxItems <= 0 {
		return nil, errors.New("maxItems must be greater than zero")
	}
	if config.MaxIdle < 0 {
		return nil, errors.New("maxIdle cannot be negative")
	}
	if config.MaxIdle > config.MaxItems {
		return nil, errors.New("maxIdle cannot exceed maxItems")
	}
	if config.NewFunc == nil {
		return nil, errors.New("newFunc must not be nil")
	}
	if config.CloseFunc == nil {
		return nil, errors.New("closeFunc must not be nil")
	}

	return &Pool[T]{
		Config:    config,
		sem:       semaphore.NewWeighted(int64(config.MaxItems)),
		idleItems: make([]T, 0, config.MaxIdle),
	}, nil
}

// Get returns an idle item or creates one. It waits while MaxItems items
// are checked out and fails with ctx.Err() if ctx ends first.
func (p *Pool[T]) Get(ctx context.Context) (T, error) {
	var zero T

	if err := p.sem.Acquire(ctx, 1); err != nil {
		return zero, err
	}

	p.mu.Lock()
	if p.closed {
		p.mu.Unlock()
		p.sem.Release(1)
		return zero, ErrClosed
	}

	if n := len(p.idleItems); n > 0 {
		res := p.idleItems[n-1]
		p.idleItems = p.idleItems[:n-1]
		p.mu.Unlock()
		return res, nil
	}

	p.totalItems++
	p.mu.Unlock()

	res, err := p.NewFunc(ctx)
	if err != nil {
		p.mu.Lock()
		p.totalItems--
		p.mu.Unlock()
		p.sem.Release(1)
		return zero, err
	}

	return res, nil
}

// Put gives back an item obtained with Get. After Close, or with MaxIdle
// items already idle, the item is closed.
func (p *Pool[T]) Put(res T) error {
	defer p.sem.Release(1)

	p.mu.Lock()
	defer p.mu.Unlock()

	if p.closed || len(p.idleItems) >= p.MaxIdle {
		p.totalItems--
		return p.CloseFunc(res)
	}

	p.idleItems = append(p.idleItems, res)
	return nil
}

// Len returns the number of items alive, idle or checked out.
func (p *Pool[T]) Len() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.totalItems
}

// Close closes the idle items. Later Get calls fail; items still checked
// out are closed when they are Put back.
func (p *Pool[T]) Close() error {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.closed {
		return nil
	}
	p.closed = true

	var errs []error
	for _, res := range p.idleItems {
		p.totalItems--
		if err := p.CloseFunc(res); err != nil {
			errs = append(errs, err)
		}
	}
	p.idleItems = nil
	return errors.Join(errs...)
}
