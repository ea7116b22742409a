// Package storage provides named string slots for client-side state.
//
// A slot holds a single string value under a key. Backends differ in
// lifetime: MemoryStore lives as long as the process (session scope),
// FileStore and RedisStore survive restarts, and BrowserStore maps onto
// localStorage or sessionStorage when compiled for js/wasm.
//
// Several writers may share a slot (two browser tabs, two CLI processes).
// Writes are last-writer-wins; backends that implement Watcher tell every
// other reader about a change so they can follow it instead of racing.
package storage

import (
	"context"
	"errors"
	"sync"
)

var (
	// ErrNotFound is returned by Get when the slot is empty
	ErrNotFound = errors.New("storage: slot not found")
)

// Store reads and writes named slots
type Store interface {
	Get(ctx context.Context, key string) (string, error)
	Set(ctx context.Context, key, value string) error
	Remove(ctx context.Context, key string) error
}

// Change describes a write to a slot
type Change struct {
	Key     string `json:"key"`
	Value   string `json:"value,omitempty"`
	Removed bool   `json:"removed,omitempty"`
}

// Watcher streams changes to a slot until ctx is cancelled, then closes
// the channel. Slow receivers may miss intermediate changes.
type Watcher interface {
	Watch(ctx context.Context, key string) (<-chan Change, error)
}

// WatchableStore is a Store that can also report changes
type WatchableStore interface {
	Store
	Watcher
}

const watchBuffer = 8

// hub fans changes out to in-process subscribers
type hub struct {
	mu   sync.Mutex
	subs map[string]map[chan Change]struct{}
}

func newHub() *hub {
	return &hub{subs: make(map[string]map[chan Change]struct{})}
}

func (h *hub) subscribe(ctx context.Context, key string) <-chan Change {
	ch := make(chan Change, watchBuffer)

	h.mu.Lock()
	if h.subs[key] == nil {
		h.subs[key] = make(map[chan Change]struct{})
	}
	h.subs[key][ch] = struct{}{}
	h.mu.Unlock()

	go func() {
		<-ctx.Done()
		h.mu.Lock()
		delete(h.subs[key], ch)
		if len(h.subs[key]) == 0 {
			delete(h.subs, key)
		}
		close(ch)
		h.mu.Unlock()
	}()

	return ch
}

func (h *hub) publish(change Change) {
	h.mu.Lock()
	defer h.mu.Unlock()

	for ch := range h.subs[change.Key] {
		select {
		case ch <- change:
		default:
			// Drop if receiver is slow
		}
	}
}
