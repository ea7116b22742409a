package storage

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/gofrs/flock"
)

const (
	defaultPollInterval = 500 * time.Millisecond
	lockRetryDelay      = 10 * time.Millisecond
)

// FileStore keeps slots in a JSON object on disk. It is the durable backend
// for command-line use. Every operation re-reads the file under an advisory
// lock on path+".lock", so separate processes sharing the path see each
// other's writes and never drop each other's slots.
type FileStore struct {
	path         string
	pollInterval time.Duration
	lock         *flock.Flock
	mu           sync.Mutex
}

// FileOption configures a FileStore
type FileOption func(*FileStore)

// WithPollInterval sets how often Watch checks the file for changes
func WithPollInterval(d time.Duration) FileOption {
	return func(s *FileStore) {
		if d > 0 {
			s.pollInterval = d
		}
	}
}

// NewFileStore creates a store backed by the file at path. The parent
// directory is created if missing; the file itself appears on first write.
func NewFileStore(path string, opts ...FileOption) (*FileStore, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o700); err != nil {
		return nil, fmt.Errorf("failed to create state directory: %w", err)
	}

	s := &FileStore{
		path:         path,
		pollInterval: defaultPollInterval,
		lock:         flock.New(path + ".lock"),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s, nil
}

// Path returns the backing file path
func (s *FileStore) Path() string {
	return s.path
}

// Get returns the slot value or ErrNotFound
func (s *FileStore) Get(ctx context.Context, key string) (string, error) {
	var (
		value string
		found bool
	)
	err := s.locked(ctx, false, func() error {
		slots, err := s.load()
		if err != nil {
			return err
		}
		value, found = slots[key]
		return nil
	})
	if err != nil {
		return "", err
	}
	if !found {
		return "", ErrNotFound
	}
	return value, nil
}

// Set overwrites the slot and rewrites the file atomically
func (s *FileStore) Set(ctx context.Context, key, value string) error {
	return s.locked(ctx, true, func() error {
		slots, err := s.load()
		if err != nil {
			return err
		}
		slots[key] = value
		return s.save(slots)
	})
}

// Remove empties the slot
func (s *FileStore) Remove(ctx context.Context, key string) error {
	return s.locked(ctx, true, func() error {
		slots, err := s.load()
		if err != nil {
			return err
		}
		if _, ok := slots[key]; !ok {
			return nil
		}
		delete(slots, key)
		return s.save(slots)
	})
}

// locked runs fn holding the in-process mutex and the lock file, shared for
// reads and exclusive for writes
func (s *FileStore) locked(ctx context.Context, exclusive bool, fn func() error) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	var (
		ok  bool
		err error
	)
	if exclusive {
		ok, err = s.lock.TryLockContext(ctx, lockRetryDelay)
	} else {
		ok, err = s.lock.TryRLockContext(ctx, lockRetryDelay)
	}
	if err != nil {
		return fmt.Errorf("failed to lock state file: %w", err)
	}
	if !ok {
		return fmt.Errorf("failed to lock state file %s", s.lock.Path())
	}
	defer func() {
		_ = s.lock.Unlock()
	}()

	return fn()
}

// Watch polls the file and reports when the slot value differs from the
// last one seen, including writes made by other processes.
func (s *FileStore) Watch(ctx context.Context, key string) (<-chan Change, error) {
	last, present, err := s.snapshot(ctx, key)
	if err != nil {
		return nil, err
	}

	ch := make(chan Change, watchBuffer)
	go func() {
		defer close(ch)
		ticker := time.NewTicker(s.pollInterval)
		defer ticker.Stop()

		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
			}

			value, ok, err := s.snapshot(ctx, key)
			if err != nil || (ok == present && value == last) {
				continue
			}
			last, present = value, ok

			change := Change{Key: key, Value: value, Removed: !ok}
			select {
			case ch <- change:
			case <-ctx.Done():
				return
			}
		}
	}()

	return ch, nil
}

func (s *FileStore) snapshot(ctx context.Context, key string) (string, bool, error) {
	value, err := s.Get(ctx, key)
	if errors.Is(err, ErrNotFound) {
		return "", false, nil
	}
	if err != nil {
		return "", false, err
	}
	return value, true, nil
}

func (s *FileStore) load() (map[string]string, error) {
	data, err := os.ReadFile(s.path)
	if errors.Is(err, fs.ErrNotExist) {
		return make(map[string]string), nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read state file: %w", err)
	}

	slots := make(map[string]string)
	if len(data) == 0 {
		return slots, nil
	}
	if err := json.Unmarshal(data, &slots); err != nil {
		return nil, fmt.Errorf("failed to parse state file %s: %w", s.path, err)
	}
	return slots, nil
}

func (s *FileStore) save(slots map[string]string) error {
	data, err := json.MarshalIndent(slots, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode state: %w", err)
	}

	tmp, err := os.CreateTemp(filepath.Dir(s.path), filepath.Base(s.path)+".*.tmp")
	if err != nil {
		return fmt.Errorf("failed to create temp state file: %w", err)
	}
	defer os.Remove(tmp.Name())

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return fmt.Errorf("failed to write state file: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("failed to close state file: %w", err)
	}
	if err := os.Rename(tmp.Name(), s.path); err != nil {
		return fmt.Errorf("failed to replace state file: %w", err)
	}
	return nil
}
