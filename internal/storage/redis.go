package storage

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/redis/go-redis/v9"
)

// Key schema:
//   {prefix}{key}           string slot value, optional TTL
//   {prefix}changes:{key}   pub/sub channel carrying JSON Change messages

// RedisStore keeps slots in Redis so several processes share them. Every
// write is published so peers can follow it.
type RedisStore struct {
	rdb    *redis.Client
	prefix string
	ttl    time.Duration
	log    *slog.Logger
}

// NewRedisClient creates a go-redis client from a URL (e.g. "redis://localhost:6379")
// and verifies the connection.
func NewRedisClient(ctx context.Context, redisURL string) (*redis.Client, error) {
	opts, err := redis.ParseURL(redisURL)
	if err != nil {
		return nil, fmt.Errorf("failed to parse redis URL: %w", err)
	}

	rdb := redis.NewClient(opts)
	if err := rdb.Ping(ctx).Err(); err != nil {
		_ = rdb.Close()
		return nil, fmt.Errorf("failed to ping redis: %w", err)
	}
	return rdb, nil
}

// NewRedisStore creates a store whose keys are namespaced by prefix. A zero
// ttl keeps values forever; a positive ttl is refreshed on every write.
func NewRedisStore(rdb *redis.Client, prefix string, ttl time.Duration, log *slog.Logger) *RedisStore {
	if log == nil {
		log = slog.Default()
	}
	return &RedisStore{
		rdb:    rdb,
		prefix: prefix,
		ttl:    ttl,
		log:    log,
	}
}

func (s *RedisStore) slotKey(key string) string {
	return s.prefix + key
}

func (s *RedisStore) channel(key string) string {
	return s.prefix + "changes:" + key
}

// Get returns the slot value or ErrNotFound
func (s *RedisStore) Get(ctx context.Context, key string) (string, error) {
	value, err := s.rdb.Get(ctx, s.slotKey(key)).Result()
	if errors.Is(err, redis.Nil) {
		return "", ErrNotFound
	}
	if err != nil {
		return "", fmt.Errorf("failed to read slot %s: %w", key, err)
	}
	return value, nil
}

// Set overwrites the slot and announces the change
func (s *RedisStore) Set(ctx context.Context, key, value string) error {
	return s.write(ctx, Change{Key: key, Value: value}, func(pipe redis.Pipeliner) {
		pipe.Set(ctx, s.slotKey(key), value, s.ttl)
	})
}

// Remove deletes the slot and announces the change
func (s *RedisStore) Remove(ctx context.Context, key string) error {
	return s.write(ctx, Change{Key: key, Removed: true}, func(pipe redis.Pipeliner) {
		pipe.Del(ctx, s.slotKey(key))
	})
}

func (s *RedisStore) write(ctx context.Context, change Change, op func(redis.Pipeliner)) error {
	payload, err := json.Marshal(change)
	if err != nil {
		return fmt.Errorf("failed to marshal change: %w", err)
	}

	_, err = s.rdb.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		op(pipe)
		pipe.Publish(ctx, s.channel(change.Key), payload)
		return nil
	})
	if err != nil {
		return fmt.Errorf("failed to write slot %s: %w", change.Key, err)
	}
	return nil
}

// Watch subscribes to changes of the slot. The subscription is confirmed
// before Watch returns, so writes made afterwards are never missed.
func (s *RedisStore) Watch(ctx context.Context, key string) (<-chan Change, error) {
	sub := s.rdb.Subscribe(ctx, s.channel(key))
	if _, err := sub.Receive(ctx); err != nil {
		_ = sub.Close()
		return nil, fmt.Errorf("failed to subscribe to slot %s: %w", key, err)
	}

	ch := make(chan Change, watchBuffer)
	go func() {
		defer close(ch)
		defer sub.Close()

		msgCh := sub.Channel()
		for {
			select {
			case msg, ok := <-msgCh:
				if !ok {
					return
				}
				var change Change
				if err := json.Unmarshal([]byte(msg.Payload), &change); err != nil {
					s.log.Warn("dropping malformed slot change", "channel", msg.Channel, "error", err)
					continue
				}
				select {
				case ch <- change:
				default:
					// Drop if receiver is slow
				}
			case <-ctx.Done():
				return
			}
		}
	}()

	return ch, nil
}
