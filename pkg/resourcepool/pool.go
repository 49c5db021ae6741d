// Package resourcepool implements the two-tier browser x page resource
// pool (C6): a generic Pool[T] bounded by a weighted semaphore, and a
// TwoTier wrapper with a deferred-release ticker so that a
// browser-level pool can be released back to its outer pool as soon as its
// inner page pool drops below saturation (spec §4.5).
package resourcepool

import (
	"context"
	"fmt"
	"sync"

	"golang.org/x/sync/semaphore"

	"github.com/ideamans/go-webvideocreator/pkg/ports"
)

// Factory creates a new resource. Idle items below min are created eagerly
// on first acquisition (the pool is autostart:false per spec §4.5).
type Factory[T any] func(ctx context.Context) (T, error)

// Closer releases a resource when the pool itself is closed.
type Closer[T any] func(ctx context.Context, item T) error

// Pool is a generic resource pool bounded by [min, max] concurrent items.
type Pool[T any] struct {
	mu      sync.Mutex
	sem     *semaphore.Weighted
	max     int64
	min     int
	idle    []T
	created int
	factory Factory[T]
	closer  Closer[T]
	closed  bool
}

// New creates a Pool with the given bounds. min pre-warms that many items
// on the first Acquire call; items above min are created lazily.
func New[T any](min, max int, factory Factory[T], closer Closer[T]) *Pool[T] {
	if max < 1 {
		max = 1
	}
	return &Pool[T]{
		sem:     semaphore.NewWeighted(int64(max)),
		max:     int64(max),
		min:     min,
		factory: factory,
		closer:  closer,
	}
}

// Acquire blocks until an item is available or ctx is cancelled.
func (p *Pool[T]) Acquire(ctx context.Context) (T, error) {
	var zero T
	if err := p.sem.Acquire(ctx, 1); err != nil {
		return zero, fmt.Errorf("pool starvation: %w", err)
	}

	p.mu.Lock()
	defer p.mu.Unlock()
	if p.closed {
		p.sem.Release(1)
		return zero, fmt.Errorf("pool starvation: pool is closed")
	}

	if p.created == 0 {
		for p.created < p.min && int64(p.created) < p.max {
			warm, err := p.factory(ctx)
			if err != nil {
				p.sem.Release(1)
				return zero, fmt.Errorf("pool acquire: create resource: %w", err)
			}
			p.idle = append(p.idle, warm)
			p.created++
		}
	}

	if len(p.idle) > 0 {
		item := p.idle[len(p.idle)-1]
		p.idle = p.idle[:len(p.idle)-1]
		return item, nil
	}

	item, err := p.factory(ctx)
	if err != nil {
		p.sem.Release(1)
		return zero, fmt.Errorf("pool acquire: create resource: %w", err)
	}
	p.created++
	return item, nil
}

// Release returns an item to the pool's idle set and frees its semaphore
// slot. It never closes the item; Close does that for everything idle.
func (p *Pool[T]) Release(item T) {
	p.mu.Lock()
	if !p.closed {
		p.idle = append(p.idle, item)
	}
	p.mu.Unlock()
	p.sem.Release(1)
}

// Saturated reports whether every slot is currently checked out.
func (p *Pool[T]) Saturated() bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	inUse := int64(p.created) - int64(len(p.idle))
	return inUse >= p.max
}

// Len returns the number of items created so far (idle + in use).
func (p *Pool[T]) Len() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.created
}

// Close releases every idle item via closer and marks the pool closed.
func (p *Pool[T]) Close(ctx context.Context) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.closed {
		return nil
	}
	p.closed = true
	var firstErr error
	for _, item := range p.idle {
		if p.closer != nil {
			if err := p.closer(ctx, item); err != nil && firstErr == nil {
				firstErr = err
			}
		}
	}
	p.idle = nil
	return firstErr
}

var _ ports.Pool[int] = (*Pool[int])(nil)
