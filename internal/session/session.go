// Package session keeps the logged-in user in a session-scoped storage slot.
package session

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/Lixing-Zhang/canteen/internal/models"
	"github.com/Lixing-Zhang/canteen/internal/storage"
)

const (
	// SlotKey is the slot holding the JSON-encoded user
	SlotKey = "currentUser"

	// LogoutTarget is visited after the local session is cleared
	LogoutTarget = "/logout"
)

var (
	ErrWatchUnsupported = errors.New("session: storage backend cannot report changes")
	ErrInvalidRecord    = errors.New("session: record is not valid JSON")
)

// Navigator moves the user to another page once the session is gone
type Navigator interface {
	Navigate(ctx context.Context, target string) error
}

// Store reads and writes the current user
type Store struct {
	slots storage.Store
	nav   Navigator
	log   *slog.Logger
}

// New creates a session store. nav may be nil when nothing should happen
// after ClearSession.
func New(slots storage.Store, nav Navigator, log *slog.Logger) *Store {
	if log == nil {
		log = slog.Default()
	}
	return &Store{
		slots: slots,
		nav:   nav,
		log:   log,
	}
}

// Get returns the stored user. A missing, unreadable or corrupt slot means
// nobody is logged in, as does a record without a user or staff id.
func (s *Store) Get(ctx context.Context) (*models.UserSession, bool) {
	raw, ok := s.GetRaw(ctx)
	if !ok {
		return nil, false
	}
	return s.decode(raw)
}

// GetRaw returns the stored record exactly as it was saved. A missing or
// unreadable slot, invalid JSON and a JSON null all mean no session.
func (s *Store) GetRaw(ctx context.Context) (json.RawMessage, bool) {
	raw, err := s.slots.Get(ctx, SlotKey)
	if errors.Is(err, storage.ErrNotFound) {
		return nil, false
	}
	if err != nil {
		s.log.Warn("failed to read session slot", "error", err)
		return nil, false
	}
	return s.record(raw)
}

func (s *Store) record(raw string) (json.RawMessage, bool) {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" || trimmed == "null" {
		return nil, false
	}
	if !json.Valid([]byte(trimmed)) {
		s.log.Warn("ignoring corrupt session slot")
		return nil, false
	}
	return json.RawMessage(trimmed), true
}

func (s *Store) decode(raw json.RawMessage) (*models.UserSession, bool) {
	var user models.UserSession
	if err := json.Unmarshal(raw, &user); err != nil {
		s.log.Warn("ignoring corrupt session slot", "error", err)
		return nil, false
	}
	if user.ID() == "" {
		s.log.Warn("ignoring session without a user id")
		return nil, false
	}
	return &user, true
}

// Save overwrites the slot with user
func (s *Store) Save(ctx context.Context, user models.UserSession) error {
	data, err := json.Marshal(user)
	if err != nil {
		return fmt.Errorf("failed to encode session: %w", err)
	}
	if err := s.SaveRaw(ctx, data); err != nil {
		return err
	}
	s.log.Debug("session saved", "user_id", user.ID(), "user_type", user.Type)
	return nil
}

// SaveRaw overwrites the slot with an identity record of any shape.
// GetRaw returns it unchanged.
func (s *Store) SaveRaw(ctx context.Context, record json.RawMessage) error {
	if !json.Valid(record) {
		return ErrInvalidRecord
	}
	if err := s.slots.Set(ctx, SlotKey, string(record)); err != nil {
		return fmt.Errorf("failed to save session: %w", err)
	}
	return nil
}

// Clear empties the slot without navigating
func (s *Store) Clear(ctx context.Context) error {
	if err := s.slots.Remove(ctx, SlotKey); err != nil {
		return fmt.Errorf("failed to clear session: %w", err)
	}
	return nil
}

// ClearSession empties the slot and then navigates to the logout page
func (s *Store) ClearSession(ctx context.Context) error {
	if err := s.Clear(ctx); err != nil {
		return err
	}
	if s.nav == nil {
		return nil
	}
	if err := s.nav.Navigate(ctx, LogoutTarget); err != nil {
		return fmt.Errorf("failed to navigate to %s: %w", LogoutTarget, err)
	}
	return nil
}

// Event is a session change made elsewhere. User is nil after a logout or
// when the new value is not a readable user. Raw is the new record as saved,
// nil after a logout.
type Event struct {
	User *models.UserSession
	Raw  json.RawMessage
}

// Watch reports session changes until ctx is cancelled
func (s *Store) Watch(ctx context.Context) (<-chan Event, error) {
	w, ok := s.slots.(storage.Watcher)
	if !ok {
		return nil, ErrWatchUnsupported
	}
	changes, err := w.Watch(ctx, SlotKey)
	if err != nil {
		return nil, fmt.Errorf("failed to watch session: %w", err)
	}

	events := make(chan Event)
	go func() {
		defer close(events)
		for change := range changes {
			var ev Event
			if !change.Removed {
				if raw, ok := s.record(change.Value); ok {
					ev.Raw = raw
					ev.User, _ = s.decode(raw)
				}
			}
			select {
			case events <- ev:
			case <-ctx.Done():
				return
			}
		}
	}()
	return events, nil
}
