package storage

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFileStore_PersistsAcrossInstances(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "state.json")
	ctx := context.Background()

	first, err := NewFileStore(path)
	require.NoError(t, err)

	_, err = first.Get(ctx, "theme")
	assert.ErrorIs(t, err, ErrNotFound)

	require.NoError(t, first.Set(ctx, "theme", "dark"))
	require.NoError(t, first.Set(ctx, "cookies:localhost", "[]"))

	second, err := NewFileStore(path)
	require.NoError(t, err)

	value, err := second.Get(ctx, "theme")
	require.NoError(t, err)
	assert.Equal(t, "dark", value)

	require.NoError(t, second.Remove(ctx, "theme"))
	_, err = first.Get(ctx, "theme")
	assert.ErrorIs(t, err, ErrNotFound)

	value, err = first.Get(ctx, "cookies:localhost")
	require.NoError(t, err)
	assert.Equal(t, "[]", value)
}

func TestFileStore_CorruptFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "state.json")
	require.NoError(t, os.WriteFile(path, []byte("{not json"), 0o600))

	store, err := NewFileStore(path)
	require.NoError(t, err)

	_, err = store.Get(context.Background(), "theme")
	assert.Error(t, err)
	assert.NotErrorIs(t, err, ErrNotFound)
}

func TestFileStore_WatchSeesOtherWriters(t *testing.T) {
	path := filepath.Join(t.TempDir(), "state.json")
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	watcher, err := NewFileStore(path, WithPollInterval(10*time.Millisecond))
	require.NoError(t, err)
	writer, err := NewFileStore(path)
	require.NoError(t, err)

	changes, err := watcher.Watch(ctx, "theme")
	require.NoError(t, err)

	require.NoError(t, writer.Set(ctx, "theme", "dark"))
	assert.Equal(t, Change{Key: "theme", Value: "dark"}, receive(t, changes))

	require.NoError(t, writer.Remove(ctx, "theme"))
	assert.Equal(t, Change{Key: "theme", Removed: true}, receive(t, changes))
}

func TestFileStore_ConcurrentWritersKeepEachOthersSlots(t *testing.T) {
	path := filepath.Join(t.TempDir(), "state.json")
	ctx := context.Background()

	// Separate instances hold separate lock file handles, like two processes
	const writers, perWriter = 4, 25
	var wg sync.WaitGroup
	for w := 0; w < writers; w++ {
		store, err := NewFileStore(path)
		require.NoError(t, err)

		wg.Add(1)
		go func(w int, store *FileStore) {
			defer wg.Done()
			for i := 0; i < perWriter; i++ {
				assert.NoError(t, store.Set(ctx, fmt.Sprintf("w%d:%d", w, i), "x"))
			}
		}(w, store)
	}
	wg.Wait()

	reader, err := NewFileStore(path)
	require.NoError(t, err)
	for w := 0; w < writers; w++ {
		for i := 0; i < perWriter; i++ {
			_, err := reader.Get(ctx, fmt.Sprintf("w%d:%d", w, i))
			assert.NoError(t, err, "slot w%d:%d was lost", w, i)
		}
	}
}

func TestFileStore_LockHonoursContext(t *testing.T) {
	path := filepath.Join(t.TempDir(), "state.json")
	holder, err := NewFileStore(path)
	require.NoError(t, err)
	waiter, err := NewFileStore(path)
	require.NoError(t, err)

	locked, err := holder.lock.TryLock()
	require.NoError(t, err)
	require.True(t, locked)
	defer holder.lock.Unlock()

	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()
	err = waiter.Set(ctx, "theme", "dark")
	assert.ErrorIs(t, err, context.DeadlineExceeded)
}
