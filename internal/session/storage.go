package session

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/redis/go-redis/v9"
)

var ErrNoRecord = errors.New("no session record")

// Storage persists the raw session record of each browser session.
type Storage interface {
	Get(ctx context.Context, sessionID string) ([]byte, error)
	Set(ctx context.Context, sessionID string, data []byte) error
	Delete(ctx context.Context, sessionID string) error
}

const keyPrefix = "session:"

type redisStorage struct {
	client *redis.Client
	ttl    time.Duration
}

// NewRedisStorage keeps one key per browser session, expiring after ttl of
// inactivity. A zero ttl never expires.
func NewRedisStorage(client *redis.Client, ttl time.Duration) Storage {
	return &redisStorage{client: client, ttl: ttl}
}

func (s *redisStorage) Get(ctx context.Context, sessionID string) ([]byte, error) {
	data, err := s.client.Get(ctx, keyPrefix+sessionID).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, ErrNoRecord
	}
	if err != nil {
		return nil, err
	}
	if s.ttl > 0 {
		s.client.Expire(ctx, keyPrefix+sessionID, s.ttl)
	}
	return data, nil
}

func (s *redisStorage) Set(ctx context.Context, sessionID string, data []byte) error {
	return s.client.Set(ctx, keyPrefix+sessionID, data, s.ttl).Err()
}

func (s *redisStorage) Delete(ctx context.Context, sessionID string) error {
	return s.client.Del(ctx, keyPrefix+sessionID).Err()
}

type memoryStorage struct {
	mu      sync.RWMutex
	records map[string][]byte
}

func NewMemoryStorage() Storage {
	return &memoryStorage{records: make(map[string][]byte)}
}

func (s *memoryStorage) Get(ctx context.Context, sessionID string) ([]byte, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	data, ok := s.records[sessionID]
	if !ok {
		return nil, ErrNoRecord
	}
	return data, nil
}

func (s *memoryStorage) Set(ctx context.Context, sessionID string, data []byte) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.records[sessionID] = append([]byte(nil), data...)
	return nil
}

func (s *memoryStorage) Delete(ctx context.Context, sessionID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.records, sessionID)
	return nil
}
