// Package cli implements the canteenctl commands.
package cli

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/Lixing-Zhang/canteen/internal/client"
	"github.com/Lixing-Zhang/canteen/internal/config"
	"github.com/Lixing-Zhang/canteen/internal/session"
	"github.com/Lixing-Zhang/canteen/internal/storage"
	"github.com/Lixing-Zhang/canteen/internal/theme"
)

const (
	durableFile  = "state.json"
	sessionFile  = "canteenctl-session.json"
	redisPrefix  = "canteen:"
	sessionScope = "session:"
)

// Env holds what the commands talk to
type Env struct {
	Client   *client.Client
	Sessions *session.Store
	Theme    *theme.Controller
	View     *theme.MemoryView
	Log      *slog.Logger

	closers []func() error
}

// Close releases backend connections
func (e *Env) Close() error {
	var firstErr error
	for _, c := range e.closers {
		if err := c(); err != nil && firstErr == nil {
			firstErr = err
		}
	}
	return firstErr
}

// NewEnv wires the client and the local state stores from configuration.
// With REDIS_URL set both durable and session slots live in Redis; otherwise
// durable slots go to a file in the state directory and session slots to a
// file in the temp directory.
func NewEnv(ctx context.Context, cfg *config.Config, log *slog.Logger) (*Env, error) {
	env := &Env{Log: log}

	durable, sessionSlots, err := env.openStores(ctx, cfg)
	if err != nil {
		return nil, err
	}

	policy, err := client.ParseCredentialPolicy(cfg.Client.Credentials)
	if err != nil {
		_ = env.Close()
		return nil, err
	}

	jar, err := client.NewStoreJar(durable, log)
	if err != nil {
		_ = env.Close()
		return nil, err
	}

	c, err := client.New(cfg.Client.BaseURL,
		client.WithCookieJar(jar),
		client.WithCredentials(policy),
		client.WithLogger(log),
	)
	if err != nil {
		_ = env.Close()
		return nil, err
	}

	env.Client = c
	env.Sessions = session.New(sessionSlots, c, log)
	env.View = theme.NewMemoryView(theme.WithIcon())
	env.Theme = theme.NewController(env.View, durable, log)
	return env, nil
}

func (e *Env) openStores(ctx context.Context, cfg *config.Config) (durable, sessionSlots storage.Store, err error) {
	if cfg.Redis.URL != "" {
		rdb, err := storage.NewRedisClient(ctx, cfg.Redis.URL)
		if err != nil {
			return nil, nil, err
		}
		e.closers = append(e.closers, rdb.Close)

		durable = storage.NewRedisStore(rdb, redisPrefix, 0, e.Log)
		sessionSlots = storage.NewRedisStore(rdb, redisPrefix+sessionScope, cfg.Redis.SessionTTL, e.Log)
		e.Log.Debug("using redis state", "url", cfg.Redis.URL)
		return durable, sessionSlots, nil
	}

	durable, err = storage.NewFileStore(filepath.Join(cfg.Client.StateDir, durableFile))
	if err != nil {
		return nil, nil, fmt.Errorf("failed to open state: %w", err)
	}
	sessionSlots, err = storage.NewFileStore(filepath.Join(os.TempDir(), sessionFile))
	if err != nil {
		return nil, nil, fmt.Errorf("failed to open session state: %w", err)
	}
	return durable, sessionSlots, nil
}
