package pinauth

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	redisclient "github.com/mayaserrano/framelight-backend/pkg/redis"
)

// AttemptRecord tracks PIN failures for one client. A set LockedUntil in
// the future means the client must wait before the next attempt.
type AttemptRecord struct {
	Count       int        `json:"count"`
	LastAttempt time.Time  `json:"last_attempt"`
	LockedUntil *time.Time `json:"locked_until,omitempty"`
}

// AttemptStore persists PIN attempt records. A missing record reads as
// (nil, nil), never as an error.
type AttemptStore interface {
	Get(ctx context.Context, clientID string) (*AttemptRecord, error)
	Set(ctx context.Context, clientID string, record *AttemptRecord, ttl time.Duration) error
	Del(ctx context.Context, clientID string) error
}

type redisAttemptStore struct {
	client *redisclient.Client
}

// NewRedisAttemptStore backs the attempt records with Redis.
func NewRedisAttemptStore(client *redisclient.Client) (AttemptStore, error) {
	if client == nil {
		return nil, fmt.Errorf("redis client is required")
	}
	return &redisAttemptStore{client: client}, nil
}

func (s *redisAttemptStore) Get(ctx context.Context, clientID string) (*AttemptRecord, error) {
	raw, err := s.client.Get(ctx, s.client.PinAttemptsKey(clientID))
	if err != nil {
		if errors.Is(err, redisclient.Nil) {
			return nil, nil
		}
		return nil, fmt.Errorf("read pin attempts: %w", err)
	}
	var record AttemptRecord
	if err := json.Unmarshal([]byte(raw), &record); err != nil {
		return nil, fmt.Errorf("decode pin attempts: %w", err)
	}
	return &record, nil
}

func (s *redisAttemptStore) Set(ctx context.Context, clientID string, record *AttemptRecord, ttl time.Duration) error {
	payload, err := json.Marshal(record)
	if err != nil {
		return fmt.Errorf("encode pin attempts: %w", err)
	}
	if err := s.client.Set(ctx, s.client.PinAttemptsKey(clientID), payload, ttl); err != nil {
		return fmt.Errorf("write pin attempts: %w", err)
	}
	return nil
}

func (s *redisAttemptStore) Del(ctx context.Context, clientID string) error {
	if err := s.client.Del(ctx, s.client.PinAttemptsKey(clientID)); err != nil {
		return fmt.Errorf("clear pin attempts: %w", err)
	}
	return nil
}
