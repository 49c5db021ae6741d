package ports

import "context"

// Pool is the generic two-tier resource pool abstraction (C6). It is used
// both for the outer browser pool and, by each BrowserDriver, for its inner
// page pool. Acquire blocks until a resource is READY or ctx is cancelled;
// Release returns it to the pool. Holding an outer owner back while this
// pool is saturated, and releasing it once the pool drops below
// saturation, is done by resourcepool.TwoTier, not by Pool itself.
type Pool[T any] interface {
	Acquire(ctx context.Context) (T, error)
	Release(item T)
	Saturated() bool
	Len() int
	Close(ctx context.Context) error
}
