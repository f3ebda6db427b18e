package session

import (
	"context"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemoryStore_SetGetRemove(t *testing.T) {
	ctx := context.Background()
	s := NewMemoryStore()

	_, err := s.Get(ctx, "user")
	assert.ErrorIs(t, err, ErrNotFound)

	require.NoError(t, s.Set(ctx, "user", "one"))
	require.NoError(t, s.Set(ctx, "user", "two"))

	got, err := s.Get(ctx, "user")
	require.NoError(t, err)
	assert.Equal(t, "two", got)

	require.NoError(t, s.Remove(ctx, "user"))
	require.NoError(t, s.Remove(ctx, "user"))

	_, err = s.Get(ctx, "user")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestMemoryStore_ConcurrentAccess(t *testing.T) {
	ctx := context.Background()
	s := NewMemoryStore()

	var wg sync.WaitGroup
	for i := 0; i < 16; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_ = s.Set(ctx, "user", "v")
			_, _ = s.Get(ctx, "user")
			_ = s.Remove(ctx, "user")
		}()
	}
	wg.Wait()
}
