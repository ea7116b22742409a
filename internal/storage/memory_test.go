package storage

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemoryStore_GetSetRemove(t *testing.T) {
	store := NewMemoryStore()
	ctx := context.Background()

	_, err := store.Get(ctx, "theme")
	assert.ErrorIs(t, err, ErrNotFound)

	require.NoError(t, store.Set(ctx, "theme", "dark"))
	value, err := store.Get(ctx, "theme")
	require.NoError(t, err)
	assert.Equal(t, "dark", value)

	require.NoError(t, store.Set(ctx, "theme", "light"))
	value, err = store.Get(ctx, "theme")
	require.NoError(t, err)
	assert.Equal(t, "light", value)

	require.NoError(t, store.Remove(ctx, "theme"))
	_, err = store.Get(ctx, "theme")
	assert.ErrorIs(t, err, ErrNotFound)

	// Removing an empty slot is fine
	assert.NoError(t, store.Remove(ctx, "theme"))
}

func TestMemoryStore_Watch(t *testing.T) {
	store := NewMemoryStore()
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	changes, err := store.Watch(ctx, "currentUser")
	require.NoError(t, err)

	require.NoError(t, store.Set(ctx, "other", "ignored"))
	require.NoError(t, store.Set(ctx, "currentUser", `{"userId":"1"}`))
	require.NoError(t, store.Remove(ctx, "currentUser"))

	assert.Equal(t, Change{Key: "currentUser", Value: `{"userId":"1"}`}, receive(t, changes))
	assert.Equal(t, Change{Key: "currentUser", Removed: true}, receive(t, changes))

	cancel()
	deadline := time.After(time.Second)
	for {
		select {
		case _, ok := <-changes:
			if !ok {
				return
			}
		case <-deadline:
			t.Fatal("watch channel was not closed after cancel")
		}
	}
}

func receive(t *testing.T, ch <-chan Change) Change {
	t.Helper()
	select {
	case change, ok := <-ch:
		require.True(t, ok, "channel closed early")
		return change
	case <-time.After(2 * time.Second):
		t.Fatal("timed out waiting for change")
		return Change{}
	}
}
