package redisstore

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/go-redis/redis/v8"

	"github.com/Xausdorf/khqr-offline/internal/domain/repository"
)

const (
	keyPrefix   = "khqr:settings:"
	dialTimeout = 800 * time.Millisecond
	ioTimeout   = 500 * time.Millisecond
	pingTimeout = 3 * time.Second
)

type Store struct {
	client *redis.Client
}

func New(ctx context.Context, addr string) (*Store, error) {
	client := redis.NewClient(&redis.Options{
		Addr:         addr,
		DialTimeout:  dialTimeout,
		ReadTimeout:  ioTimeout,
		WriteTimeout: ioTimeout,
		MaxRetries:   3,
	})

	pingCtx, cancel := context.WithTimeout(ctx, pingTimeout)
	defer cancel()
	if err := client.Ping(pingCtx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("failed to connect to redis: %w", err)
	}
	return &Store{client: client}, nil
}

func (s *Store) Close() error {
	return s.client.Close()
}

func (s *Store) Get(ctx context.Context, key string) (string, error) {
	v, err := s.client.Get(ctx, keyPrefix+key).Result()
	if errors.Is(err, redis.Nil) {
		return "", repository.ErrNotFound
	}
	return v, err
}

func (s *Store) Set(ctx context.Context, key, value string) error {
	return s.client.Set(ctx, keyPrefix+key, value, 0).Err()
}
