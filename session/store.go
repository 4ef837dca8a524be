package session

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// ErrRedisUnavailable is returned when a Redis command fails for reasons other than a
// missing key.
var ErrRedisUnavailable = errors.New("redis unavailable")

const defaultPrefix = "ms"

// Store is a [Holder] that keeps the active session in Redis under a single key.
//
// Processes that share a Redis instance and prefix share the same slot.
type Store struct {
	redis  redis.UniversalClient
	prefix string
	ttl    time.Duration
}

// NewStore returns a Redis-backed holder. An empty prefix falls back to "ms".
// A ttl of zero keeps the session until it is taken or overwritten.
func NewStore(client redis.UniversalClient, prefix string, ttl time.Duration) *Store {
	if prefix == "" {
		prefix = defaultPrefix
	}
	if ttl < 0 {
		ttl = 0
	}
	return &Store{
		redis:  client,
		prefix: prefix,
		ttl:    ttl,
	}
}

func (s *Store) key() string {
	return s.prefix + ":active"
}

// Load returns the active session without clearing it.
//
//	Performance: 1 Redis GET.
func (s *Store) Load(ctx context.Context) (*Session, error) {
	data, err := s.redis.Get(ctx, s.key()).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, nil
		}
		return nil, fmt.Errorf("%w: %v", ErrRedisUnavailable, err)
	}
	return Decode(data)
}

// Store replaces the active session.
//
//	Performance: 1 Redis SET.
func (s *Store) Store(ctx context.Context, sess *Session) error {
	data, err := Encode(sess)
	if err != nil {
		return err
	}
	if err := s.redis.Set(ctx, s.key(), data, s.ttl).Err(); err != nil {
		return fmt.Errorf("%w: %v", ErrRedisUnavailable, err)
	}
	return nil
}

// Take returns the active session and deletes the key in one GETDEL.
//
//	Performance: 1 Redis GETDEL.
func (s *Store) Take(ctx context.Context) (*Session, error) {
	data, err := s.redis.GetDel(ctx, s.key()).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, nil
		}
		return nil, fmt.Errorf("%w: %v", ErrRedisUnavailable, err)
	}
	return Decode(data)
}

// Ping returns a point-in-time Redis availability check and latency.
func (s *Store) Ping(ctx context.Context) (time.Duration, error) {
	start := time.Now()
	if err := s.redis.Ping(ctx).Err(); err != nil {
		return time.Since(start), fmt.Errorf("%w: %v", ErrRedisUnavailable, err)
	}
	return time.Since(start), nil
}
