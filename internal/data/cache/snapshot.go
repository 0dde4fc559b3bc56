// Package cache holds the availability snapshot: a per-showing set of seat
// ids known to be booked. The snapshot may lag behind the bookings table and
// is only ever unioned with it, never trusted on its own.
package cache

import (
	"context"
	"fmt"
	"time"

	"movie-booking/internal/data/entity"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

type SnapshotStore interface {
	Seats(ctx context.Context, key entity.ShowingKey) ([]string, error)
	AddSeats(ctx context.Context, key entity.ShowingKey, seats []string) error
	Replace(ctx context.Context, key entity.ShowingKey, seats []string) error
	Invalidate(ctx context.Context, key entity.ShowingKey) error
}

const keyPrefix = "movie-booking:snapshot:"

func snapshotKey(key entity.ShowingKey) string {
	return keyPrefix + key.String()
}

type redisSnapshotStore struct {
	client *redis.Client
	ttl    time.Duration
	log    *zap.Logger
}

func NewRedisSnapshotStore(client *redis.Client, ttl time.Duration, log *zap.Logger) SnapshotStore {
	return &redisSnapshotStore{
		client: client,
		ttl:    ttl,
		log:    log.With(zap.String("cache", "snapshot")),
	}
}

func (s *redisSnapshotStore) Seats(ctx context.Context, key entity.ShowingKey) ([]string, error) {
	seats, err := s.client.SMembers(ctx, snapshotKey(key)).Result()
	if err != nil {
		return nil, fmt.Errorf("read snapshot %s: %w", key.String(), err)
	}
	return seats, nil
}

func (s *redisSnapshotStore) AddSeats(ctx context.Context, key entity.ShowingKey, seats []string) error {
	if len(seats) == 0 {
		return nil
	}

	k := snapshotKey(key)
	_, err := s.client.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		pipe.SAdd(ctx, k, toMembers(seats)...)
		pipe.Expire(ctx, k, s.ttl)
		return nil
	})
	if err != nil {
		return fmt.Errorf("add to snapshot %s: %w", key.String(), err)
	}
	return nil
}

func (s *redisSnapshotStore) Replace(ctx context.Context, key entity.ShowingKey, seats []string) error {
	k := snapshotKey(key)
	_, err := s.client.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		pipe.Del(ctx, k)
		if len(seats) > 0 {
			pipe.SAdd(ctx, k, toMembers(seats)...)
			pipe.Expire(ctx, k, s.ttl)
		}
		return nil
	})
	if err != nil {
		return fmt.Errorf("replace snapshot %s: %w", key.String(), err)
	}

	s.log.Debug("Snapshot replaced",
		zap.String("showing", key.String()),
		zap.Int("seats", len(seats)),
	)
	return nil
}

func (s *redisSnapshotStore) Invalidate(ctx context.Context, key entity.ShowingKey) error {
	if err := s.client.Del(ctx, snapshotKey(key)).Err(); err != nil {
		return fmt.Errorf("invalidate snapshot %s: %w", key.String(), err)
	}
	return nil
}

func toMembers(seats []string) []any {
	members := make([]any, len(seats))
	for i, seat := range seats {
		members[i] = seat
	}
	return members
}

// NopSnapshotStore is used when no Redis is configured. Reads return an
// empty snapshot, so availability comes from the bookings table alone.
type NopSnapshotStore struct{}

func (NopSnapshotStore) Seats(context.Context, entity.ShowingKey) ([]string, error) {
	return nil, nil
}

func (NopSnapshotStore) AddSeats(context.Context, entity.ShowingKey, []string) error { return nil }

func (NopSnapshotStore) Replace(context.Context, entity.ShowingKey, []string) error { return nil }

func (NopSnapshotStore) Invalidate(context.Context, entity.ShowingKey) error { return nil }
