package session

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// ErrNotFound is returned when a session id has no binding, either because
// it was cleared or because it expired.
var ErrNotFound = errors.New("session binding not found")

// Binding associates one logical session with the tenant it belongs to.
// It is created on successful login and cleared on logout or when the
// license is discovered invalid mid-session. It is never trusted blindly:
// every request re-validates the license against the master registry.
type Binding struct {
	LicenseKey string   `json:"license_key"`
	UserID     string   `json:"user_id"`
	Username   string   `json:"username"`
	Roles      []string `json:"roles"`
}

// Store keeps session bindings in redis with the token lifetime as TTL.
type Store struct {
	redis *redis.Client
	ttl   time.Duration
}

func NewStore(client *redis.Client, ttl time.Duration) *Store {
	return &Store{redis: client, ttl: ttl}
}

func bindingKey(sessionID string) string {
	return fmt.Sprintf("session:binding:%s", sessionID)
}

func (s *Store) Set(ctx context.Context, sessionID string, b Binding) error {
	payload, err := json.Marshal(b)
	if err != nil {
		return err
	}
	return s.redis.Set(ctx, bindingKey(sessionID), payload, s.ttl).Err()
}

func (s *Store) Get(ctx context.Context, sessionID string) (*Binding, error) {
	payload, err := s.redis.Get(ctx, bindingKey(sessionID)).Bytes()
	if err == redis.Nil {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	var b Binding
	if err := json.Unmarshal(payload, &b); err != nil {
		return nil, err
	}
	return &b, nil
}

func (s *Store) Clear(ctx context.Context, sessionID string) error {
	return s.redis.Del(ctx, bindingKey(sessionID)).Err()
}
