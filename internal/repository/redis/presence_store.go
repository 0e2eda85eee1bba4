package redis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"eventcompanion/internal/domain"

	"github.com/redis/go-redis/v9"
)

const presenceKeyPrefix = "presence:"

// Store keeps last-known presence records in Redis. Each record carries a TTL
// so a device that stops reporting fades out on its own.
type Store struct {
	client *redis.Client
	ttl    time.Duration
}

func NewStore(addr, password string, ttl time.Duration) *Store {
	client := redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: password,
		DB:       0,
	})
	return &Store{client: client, ttl: ttl}
}

func presenceKey(userID string) string {
	return presenceKeyPrefix + userID
}

func (s *Store) Set(ctx context.Context, p *domain.UserPresence) error {
	const op = "repository.redis.Set"

	data, err := json.Marshal(p)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	if err := s.client.Set(ctx, presenceKey(p.UserID), data, s.ttl).Err(); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	return nil
}

func (s *Store) Get(ctx context.Context, userID string) (*domain.UserPresence, error) {
	const op = "repository.redis.Get"

	data, err := s.client.Get(ctx, presenceKey(userID)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, domain.ErrPresenceNotFound
		}
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	p := &domain.UserPresence{}
	if err := json.Unmarshal(data, p); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return p, nil
}

func (s *Store) GetMany(ctx context.Context, userIDs []string) ([]*domain.UserPresence, error) {
	const op = "repository.redis.GetMany"

	if len(userIDs) == 0 {
		return nil, nil
	}
	keys := make([]string, len(userIDs))
	for i, id := range userIDs {
		keys[i] = presenceKey(id)
	}
	vals, err := s.client.MGet(ctx, keys...).Result()
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	presences := make([]*domain.UserPresence, 0, len(vals))
	for _, v := range vals {
		str, ok := v.(string)
		if !ok {
			// Missing key: the friend never reported or the record expired.
			continue
		}
		p := &domain.UserPresence{}
		if err := json.Unmarshal([]byte(str), p); err != nil {
			return nil, fmt.Errorf("%s: %w", op, err)
		}
		presences = append(presences, p)
	}
	return presences, nil
}

func (s *Store) Delete(ctx context.Context, userID string) error {
	const op = "repository.redis.Delete"

	if err := s.client.Del(ctx, presenceKey(userID)).Err(); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	return nil
}

func (s *Store) DeleteOlderThan(ctx context.Context, cutoff time.Time) (int, error) {
	const op = "repository.redis.DeleteOlderThan"

	removed := 0
	iter := s.client.Scan(ctx, 0, presenceKeyPrefix+"*", 100).Iterator()
	for iter.Next(ctx) {
		key := iter.Val()
		data, err := s.client.Get(ctx, key).Bytes()
		if err != nil {
			if errors.Is(err, redis.Nil) {
				continue
			}
			return removed, fmt.Errorf("%s: %w", op, err)
		}
		p := &domain.UserPresence{}
		if err := json.Unmarshal(data, p); err != nil {
			// Unreadable record: drop it rather than keep it forever.
			if delErr := s.client.Del(ctx, key).Err(); delErr != nil {
				return removed, fmt.Errorf("%s: %w", op, delErr)
			}
			removed++
			continue
		}
		if p.ReportedAt.Before(cutoff) {
			if err := s.client.Del(ctx, key).Err(); err != nil {
				return removed, fmt.Errorf("%s: %w", op, err)
			}
			removed++
		}
	}
	if err := iter.Err(); err != nil {
		return removed, fmt.Errorf("%s: %w", op, err)
	}
	return removed, nil
}

func (s *Store) Close() error {
	return s.client.Close()
}
