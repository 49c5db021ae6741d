package resourcepool

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPoolAcquireReleaseRoundTrip(t *testing.T) {
	created := 0
	p := New(0, 2,
		func(ctx context.Context) (int, error) {
			created++
			return created, nil
		},
		func(ctx context.Context, item int) error {
			return nil
		},
	)

	item, err := p.Acquire(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 1, item)
	assert.True(t, p.Saturated() == false)

	p.Release(item)
	assert.Equal(t, 1, p.Len())
}

func TestPoolSaturation(t *testing.T) {
	p := New(0, 1,
		func(ctx context.Context) (int, error) { return 1, nil },
		func(ctx context.Context, item int) error { return nil },
	)

	item, err := p.Acquire(context.Background())
	require.NoError(t, err)
	assert.True(t, p.Saturated())

	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()
	_, err = p.Acquire(ctx)
	assert.ErrorContains(t, err, "pool starvation")

	p.Release(item)
	assert.False(t, p.Saturated())
}

func TestPoolCloseReleasesIdleItems(t *testing.T) {
	closed := []int{}
	p := New(0, 2,
		func(ctx context.Context) (int, error) { return 42, nil },
		func(ctx context.Context, item int) error {
			closed = append(closed, item)
			return nil
		},
	)

	item, err := p.Acquire(context.Background())
	require.NoError(t, err)
	p.Release(item)

	require.NoError(t, p.Close(context.Background()))
	assert.Equal(t, []int{42}, closed)

	_, err = p.Acquire(context.Background())
	assert.ErrorContains(t, err, "pool is closed")
}
