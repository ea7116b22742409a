//go:build js && wasm

package storage

import (
	"context"
	"fmt"
	"sync"
	"syscall/js"
)

// BrowserStore maps slots onto a Web Storage area. localStorage is durable;
// sessionStorage lives as long as the tab.
type BrowserStore struct {
	area js.Value
	name string
}

// NewLocalStore binds to window.localStorage
func NewLocalStore() (*BrowserStore, error) {
	return newBrowserStore("localStorage")
}

// NewSessionStore binds to window.sessionStorage
func NewSessionStore() (*BrowserStore, error) {
	return newBrowserStore("sessionStorage")
}

func newBrowserStore(name string) (*BrowserStore, error) {
	area := js.Global().Get(name)
	if !area.Truthy() {
		return nil, fmt.Errorf("storage: %s is not available", name)
	}
	return &BrowserStore{area: area, name: name}, nil
}

// Get returns the slot value or ErrNotFound
func (s *BrowserStore) Get(ctx context.Context, key string) (value string, err error) {
	defer recoverJS(&err, s.name, "getItem")

	v := s.area.Call("getItem", key)
	if v.IsNull() || v.IsUndefined() {
		return "", ErrNotFound
	}
	return v.String(), nil
}

// Set overwrites the slot. Quota errors surface as errors.
func (s *BrowserStore) Set(ctx context.Context, key, value string) (err error) {
	defer recoverJS(&err, s.name, "setItem")

	s.area.Call("setItem", key, value)
	return nil
}

// Remove empties the slot
func (s *BrowserStore) Remove(ctx context.Context, key string) (err error) {
	defer recoverJS(&err, s.name, "removeItem")

	s.area.Call("removeItem", key)
	return nil
}

// Watch listens for the window "storage" event, which browsers fire in every
// other tab sharing this storage area.
func (s *BrowserStore) Watch(ctx context.Context, key string) (<-chan Change, error) {
	ch := make(chan Change, watchBuffer)
	var (
		mu     sync.Mutex
		closed bool
	)

	listener := js.FuncOf(func(this js.Value, args []js.Value) any {
		if len(args) == 0 {
			return nil
		}
		event := args[0]
		if event.Get("key").String() != key || !event.Get("storageArea").Equal(s.area) {
			return nil
		}

		newValue := event.Get("newValue")
		change := Change{Key: key, Removed: newValue.IsNull()}
		if !change.Removed {
			change.Value = newValue.String()
		}

		mu.Lock()
		defer mu.Unlock()
		if closed {
			return nil
		}
		select {
		case ch <- change:
		default:
		}
		return nil
	})

	window := js.Global().Get("window")
	window.Call("addEventListener", "storage", listener)

	go func() {
		<-ctx.Done()
		window.Call("removeEventListener", "storage", listener)
		listener.Release()

		mu.Lock()
		closed = true
		close(ch)
		mu.Unlock()
	}()

	return ch, nil
}

func recoverJS(err *error, area, op string) {
	if r := recover(); r != nil {
		if jsErr, ok := r.(js.Error); ok {
			*err = fmt.Errorf("storage: %s.%s: %w", area, op, jsErr)
			return
		}
		panic(r)
	}
}
