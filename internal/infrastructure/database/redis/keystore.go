// internal/infrastructure/database/redis/keystore.go
package redis

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"github.com/ro7arthub/storefront-backend/internal/pkg/keystore"
	"github.com/sirupsen/logrus"
)

// invalidationChannel carries key-change notifications between backend
// instances sharing the same Redis, so in-memory listeners (cart badges,
// open checkout summaries) can reload before their next computation.
const invalidationChannel = "storefront:keystore:events"

type invalidationMessage struct {
	Origin  string `json:"origin"`
	Key     string `json:"key"`
	Deleted bool   `json:"deleted"`
}

// KeyStore implements keystore.Store on Redis. Every Set is a single
// serialized write of the full snapshot, giving last-write-wins semantics
// for racing mutations on the same session key.
type KeyStore struct {
	client *redis.Client
	ttl    time.Duration
	origin string
	logger *logrus.Logger
}

// NewKeyStore creates a Redis-backed keystore. Keys expire after ttl;
// a zero ttl keeps them until explicitly deleted.
func NewKeyStore(client *redis.Client, ttl time.Duration, logger *logrus.Logger) *KeyStore {
	return &KeyStore{
		client: client,
		ttl:    ttl,
		origin: uuid.New().String(),
		logger: logger,
	}
}

// Get returns the snapshot stored under key
func (s *KeyStore) Get(ctx context.Context, key string) ([]byte, error) {
	value, err := s.client.Get(ctx, key).Bytes()
	if err == redis.Nil {
		return nil, keystore.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read key %q: %w", key, err)
	}
	return value, nil
}

// Set stores value under key and publishes an invalidation event
func (s *KeyStore) Set(ctx context.Context, key string, value []byte) error {
	if err := s.client.Set(ctx, key, value, s.ttl).Err(); err != nil {
		return fmt.Errorf("failed to write key %q: %w", key, err)
	}

	s.publish(ctx, key, false)
	return nil
}

// Delete removes the given keys and publishes invalidation events
func (s *KeyStore) Delete(ctx context.Context, keys ...string) error {
	if len(keys) == 0 {
		return nil
	}

	if err := s.client.Del(ctx, keys...).Err(); err != nil {
		return fmt.Errorf("failed to delete keys: %w", err)
	}

	for _, key := range keys {
		s.publish(ctx, key, true)
	}
	return nil
}

// Watch subscribes to the invalidation channel and delivers events produced
// by other contexts. Events from this store instance are filtered out.
func (s *KeyStore) Watch(ctx context.Context) (<-chan keystore.Event, error) {
	sub := s.client.Subscribe(ctx, invalidationChannel)

	// Confirm the subscription before handing out the channel
	if _, err := sub.Receive(ctx); err != nil {
		_ = sub.Close()
		return nil, fmt.Errorf("failed to subscribe to invalidation channel: %w", err)
	}

	events := make(chan keystore.Event)

	go func() {
		defer close(events)
		defer sub.Close()

		for {
			select {
			case <-ctx.Done():
				return
			case msg, ok := <-sub.Channel():
				if !ok {
					return
				}

				var inv invalidationMessage
				if err := json.Unmarshal([]byte(msg.Payload), &inv); err != nil {
					s.logger.WithError(err).Warn("Dropping malformed invalidation message")
					continue
				}

				// Ignore our own writes
				if inv.Origin == s.origin {
					continue
				}

				select {
				case events <- keystore.Event{Key: inv.Key, Deleted: inv.Deleted}:
				case <-ctx.Done():
					return
				}
			}
		}
	}()

	return events, nil
}

func (s *KeyStore) publish(ctx context.Context, key string, deleted bool) {
	payload, err := json.Marshal(invalidationMessage{
		Origin:  s.origin,
		Key:     key,
		Deleted: deleted,
	})
	if err != nil {
		return
	}

	// Invalidation is best-effort; a failed publish must not fail the write
	if err := s.client.Publish(ctx, invalidationChannel, payload).Err(); err != nil {
		s.logger.WithError(err).WithField("key", key).Warn("Failed to publish invalidation event")
	}
}
