package client

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"net/http/cookiejar"
	"net/url"
	"sync"

	"github.com/Lixing-Zhang/canteen/internal/storage"
)

const cookieSlotPrefix = "cookies:"

// storedCookie is the persisted form of a cookie
type storedCookie struct {
	Name  string `json:"name"`
	Value string `json:"value"`
}

// StoreJar is a cookie jar that saves each host's cookies into a storage
// slot, so a staff login survives between command-line runs.
type StoreJar struct {
	inner  *cookiejar.Jar
	store  storage.Store
	log    *slog.Logger
	mu     sync.Mutex
	loaded map[string]bool
}

// NewStoreJar creates a jar backed by store
func NewStoreJar(store storage.Store, log *slog.Logger) (*StoreJar, error) {
	inner, err := cookiejar.New(nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create cookie jar: %w", err)
	}
	if log == nil {
		log = slog.Default()
	}
	return &StoreJar{
		inner:  inner,
		store:  store,
		log:    log,
		loaded: make(map[string]bool),
	}, nil
}

// SetCookies implements http.CookieJar
func (j *StoreJar) SetCookies(u *url.URL, cookies []*http.Cookie) {
	j.mu.Lock()
	defer j.mu.Unlock()

	j.load(u)
	j.inner.SetCookies(u, cookies)
	j.persist(u)
}

// Cookies implements http.CookieJar
func (j *StoreJar) Cookies(u *url.URL) []*http.Cookie {
	j.mu.Lock()
	defer j.mu.Unlock()

	j.load(u)
	return j.inner.Cookies(u)
}

// Forget drops the stored cookies of the host in u
func (j *StoreJar) Forget(ctx context.Context, u *url.URL) error {
	j.mu.Lock()
	defer j.mu.Unlock()

	inner, err := cookiejar.New(nil)
	if err != nil {
		return err
	}
	j.inner = inner
	j.loaded = make(map[string]bool)
	return j.store.Remove(ctx, cookieSlotPrefix+u.Host)
}

func rootOf(u *url.URL) *url.URL {
	return &url.URL{Scheme: u.Scheme, Host: u.Host, Path: "/"}
}

// load reads the host's cookies once per jar lifetime; callers hold mu
func (j *StoreJar) load(u *url.URL) {
	if j.loaded[u.Host] {
		return
	}
	j.loaded[u.Host] = true

	raw, err := j.store.Get(context.Background(), cookieSlotPrefix+u.Host)
	if errors.Is(err, storage.ErrNotFound) {
		return
	}
	if err != nil {
		j.log.Warn("failed to read stored cookies", "host", u.Host, "error", err)
		return
	}

	var stored []storedCookie
	if err := json.Unmarshal([]byte(raw), &stored); err != nil {
		j.log.Warn("ignoring corrupt stored cookies", "host", u.Host, "error", err)
		return
	}

	cookies := make([]*http.Cookie, 0, len(stored))
	for _, sc := range stored {
		cookies = append(cookies, &http.Cookie{Name: sc.Name, Value: sc.Value, Path: "/"})
	}
	j.inner.SetCookies(rootOf(u), cookies)
}

// persist writes the host's current cookies; callers hold mu
func (j *StoreJar) persist(u *url.URL) {
	ctx := context.Background()
	slot := cookieSlotPrefix + u.Host

	current := j.inner.Cookies(rootOf(u))
	if len(current) == 0 {
		if err := j.store.Remove(ctx, slot); err != nil {
			j.log.Warn("failed to remove stored cookies", "host", u.Host, "error", err)
		}
		return
	}

	stored := make([]storedCookie, 0, len(current))
	for _, cookie := range current {
		stored = append(stored, storedCookie{Name: cookie.Name, Value: cookie.Value})
	}
	data, err := json.Marshal(stored)
	if err != nil {
		j.log.Warn("failed to encode cookies", "host", u.Host, "error", err)
		return
	}
	if err := j.store.Set(ctx, slot, string(data)); err != nil {
		j.log.Warn("failed to store cookies", "host", u.Host, "error", err)
	}
}
