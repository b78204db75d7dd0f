package repository

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/redis/go-redis/v9"
)

const revokedKeyPrefix = "revoked:"

// SessionRedis stores revoked token IDs as expiring Redis keys.
type SessionRedis struct {
	rdb *redis.Client
}

func NewSessionRedis(rdb *redis.Client) *SessionRedis {
	return &SessionRedis{rdb: rdb}
}

var _ SessionRepo = (*SessionRedis)(nil)

// NewRedisClient creates and pings a Redis client.
func NewRedisClient(ctx context.Context, addr, password string, db int) (*redis.Client, error) {
	rdb := redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: password,
		DB:       db,
	})
	if err := rdb.Ping(ctx).Err(); err != nil {
		_ = rdb.Close()
		return nil, fmt.Errorf("ping redis at %s: %w", addr, err)
	}
	return rdb, nil
}

func (s *SessionRedis) Revoke(ctx context.Context, tokenID string, until time.Time) error {
	ttl := time.Until(until)
	if ttl <= 0 {
		return nil // already expired, nothing to remember
	}
	if err := s.rdb.Set(ctx, revokedKeyPrefix+tokenID, "1", ttl).Err(); err != nil {
		return fmt.Errorf("revoke token %s: %w", tokenID, err)
	}
	return nil
}

func (s *SessionRedis) IsRevoked(ctx context.Context, tokenID string) (bool, error) {
	n, err := s.rdb.Exists(ctx, revokedKeyPrefix+tokenID).Result()
	if err != nil {
		return false, fmt.Errorf("check token %s: %w", tokenID, err)
	}
	return n > 0, nil
}

// SessionMemory keeps revocations in process; used when no Redis is configured.
type SessionMemory struct {
	mu      sync.Mutex
	revoked map[string]time.Time
	now     func() time.Time
}

func NewSessionMemory() *SessionMemory {
	return &SessionMemory{revoked: make(map[string]time.Time), now: time.Now}
}

var _ SessionRepo = (*SessionMemory)(nil)

func (s *SessionMemory) Revoke(_ context.Context, tokenID string, until time.Time) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.sweepLocked()
	if until.After(s.now()) {
		s.revoked[tokenID] = until
	}
	return nil
}

func (s *SessionMemory) IsRevoked(_ context.Context, tokenID string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	until, ok := s.revoked[tokenID]
	if !ok {
		return false, nil
	}
	if !until.After(s.now()) {
		delete(s.revoked, tokenID)
		return false, nil
	}
	return true, nil
}

// sweepLocked drops entries whose tokens have expired.
func (s *SessionMemory) sweepLocked() {
	now := s.now()
	for id, until := range s.revoked {
		if !until.After(now) {
			delete(s.revoked, id)
		}
	}
}
