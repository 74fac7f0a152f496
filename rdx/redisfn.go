package rdx

import (
	"context"
	"errors"
	"fmt"
	"time"

	"hostelhub/kv"

	"github.com/redis/go-redis/v9"
)

// Connect opens a client and verifies it with PING.
func Connect(ctx context.Context, addr, password string) (*redis.Client, error) {
	conn := redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: password,
		DB:       0,
	})

	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := conn.Ping(ctx).Err(); err != nil {
		conn.Close()
		return nil, fmt.Errorf("redis ping %s: %w", addr, err)
	}
	return conn, nil
}

// KV is a kv.Store backed by plain Redis strings.
type KV struct {
	conn   *redis.Client
	prefix string
}

func NewKV(conn *redis.Client, prefix string) *KV {
	return &KV{conn: conn, prefix: prefix}
}

func (s *KV) Get(ctx context.Context, key string) (string, error) {
	val, err := s.conn.Get(ctx, s.prefix+key).Result()
	if errors.Is(err, redis.Nil) {
		return "", kv.ErrNotFound
	}
	if err != nil {
		return "", fmt.Errorf("redis get %s: %w", key, err)
	}
	return val, nil
}

func (s *KV) Set(ctx context.Context, key, value string) error {
	if err := s.conn.Set(ctx, s.prefix+key, value, 0).Err(); err != nil {
		return fmt.Errorf("redis set %s: %w", key, err)
	}
	return nil
}

func (s *KV) Remove(ctx context.Context, key string) error {
	if err := s.conn.Del(ctx, s.prefix+key).Err(); err != nil {
		return fmt.Errorf("redis del %s: %w", key, err)
	}
	return nil
}

var _ kv.Store = (*KV)(nil)
