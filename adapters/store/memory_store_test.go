package store_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/farstack/heimdall/adapters/store"
)

func TestMemoryStoreConsume(t *testing.T) {
	s := store.NewMemoryStore()
	ctx := context.Background()

	fresh, err := s.Consume(ctx, "nonce-1", time.Minute)
	require.NoError(t, err)
	assert.True(t, fresh)

	fresh, err = s.Consume(ctx, "nonce-1", time.Minute)
	require.NoError(t, err)
	assert.False(t, fresh)

	fresh, err = s.Consume(ctx, "nonce-2", time.Minute)
	require.NoError(t, err)
	assert.True(t, fresh)
}

func TestMemoryStoreExpiry(t *testing.T) {
	s := store.NewMemoryStore()
	ctx := context.Background()

	fresh, err := s.Consume(ctx, "nonce-1", 10*time.Millisecond)
	require.NoError(t, err)
	assert.True(t, fresh)

	time.Sleep(20 * time.Millisecond)

	fresh, err = s.Consume(ctx, "nonce-1", time.Minute)
	require.NoError(t, err)
	assert.True(t, fresh, "expired nonce record should be reusable")
}
