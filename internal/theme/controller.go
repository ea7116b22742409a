package theme

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"

	"github.com/Lixing-Zhang/canteen/internal/storage"
)

var (
	ErrFollowUnsupported = errors.New("theme: storage backend cannot report changes")
)

// Controller keeps a View and the durable theme slot in step
type Controller struct {
	view  View
	slots storage.Store
	log   *slog.Logger
	mu    sync.Mutex
}

// NewController creates a controller for view backed by slots
func NewController(view View, slots storage.Store, log *slog.Logger) *Controller {
	if log == nil {
		log = slog.Default()
	}
	return &Controller{
		view:  view,
		slots: slots,
		log:   log,
	}
}

// Initialize shows the persisted theme without writing it back. Unreadable
// storage falls back to light.
func (c *Controller) Initialize(ctx context.Context) Theme {
	c.mu.Lock()
	defer c.mu.Unlock()

	return c.initialize(ctx)
}

func (c *Controller) initialize(ctx context.Context) Theme {
	persisted, err := c.slots.Get(ctx, SlotKey)
	if err != nil && !errors.Is(err, storage.ErrNotFound) {
		c.log.Warn("failed to read theme preference", "error", err)
	}

	tr := Initial(persisted)
	apply(c.view, tr.To)
	return tr.To
}

// Current is the theme the view shows. The toggle control wins over the
// document flag when both exist.
func (c *Controller) Current() Theme {
	if cb := c.view.Checkbox(); cb != nil {
		return FromDark(cb.Checked())
	}
	return FromDark(c.view.Dark())
}

// Toggle flips the current theme, shows it and persists it
func (c *Controller) Toggle(ctx context.Context) (Theme, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	return c.commit(ctx, Toggle(c.Current()))
}

// Changed handles a user flipping the toggle control: the control already
// shows the new state, so it is adopted as is.
func (c *Controller) Changed(ctx context.Context) (Theme, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	cb := c.view.Checkbox()
	if cb == nil {
		return c.commit(ctx, Toggle(c.Current()))
	}
	return c.commit(ctx, Adopt(FromDark(c.view.Dark()), FromDark(cb.Checked())))
}

func (c *Controller) commit(ctx context.Context, tr Transition) (Theme, error) {
	apply(c.view, tr.To)
	if !tr.Persist {
		return tr.To, nil
	}
	if err := c.slots.Set(ctx, SlotKey, tr.To.String()); err != nil {
		return tr.To, fmt.Errorf("failed to save theme: %w", err)
	}
	c.log.Debug("theme changed", "from", tr.From, "to", tr.To)
	return tr.To, nil
}

// Inject mounts the toggle control unless it already exists, then shows the
// persisted theme on it before any toggle can read the unchecked default.
// It reports whether a control was mounted.
func (c *Controller) Inject(ctx context.Context) (bool, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.view.HasToggle() {
		return false, nil
	}
	if err := c.view.MountToggle(); err != nil {
		return false, fmt.Errorf("failed to mount theme toggle: %w", err)
	}
	c.initialize(ctx)
	return true, nil
}

// Follow shows themes persisted elsewhere (another tab or process) until
// ctx is cancelled. It does not write anything back.
func (c *Controller) Follow(ctx context.Context) error {
	w, ok := c.slots.(storage.Watcher)
	if !ok {
		return ErrFollowUnsupported
	}
	changes, err := w.Watch(ctx, SlotKey)
	if err != nil {
		return fmt.Errorf("failed to watch theme: %w", err)
	}

	for change := range changes {
		t := Resolve(change.Value)
		c.mu.Lock()
		apply(c.view, t)
		c.mu.Unlock()
		c.log.Debug("theme changed elsewhere", "theme", t)
	}
	return nil
}
