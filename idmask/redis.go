package idmask

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/supakorn-kn/peponi-admin/env"
)

const (
	tokenKeyPrefix = "peponi:idmask:token:"
	idKeyPrefix    = "peponi:idmask:id:"
)

// RedisStore shares tokens between every replica of the admin server.
type RedisStore struct {
	client redis.UniversalClient
}

func NewRedisStore(client redis.UniversalClient) *RedisStore {
	return &RedisStore{client: client}
}

// NewRedisClient connects to the configured Redis and pings it.
func NewRedisClient(ctx context.Context, config env.RedisConfig) (*redis.Client, error) {

	client := redis.NewClient(&redis.Options{
		Addr:     config.Addr,
		Password: config.Password,
		DB:       config.DB,
	})

	if err := client.Ping(ctx).Err(); err != nil {

		client.Close()
		return nil, fmt.Errorf("ping redis at %s: %w", config.Addr, err)
	}

	return client, nil
}

func (s *RedisStore) Lookup(ctx context.Context, id int64) (string, bool, error) {

	token, err := s.client.Get(ctx, idKeyPrefix+strconv.FormatInt(id, 10)).Result()
	if errors.Is(err, redis.Nil) {
		return "", false, nil
	}

	if err != nil {
		return "", false, err
	}

	return token, true, nil
}

func (s *RedisStore) Resolve(ctx context.Context, token string) (int64, bool, error) {

	raw, err := s.client.Get(ctx, tokenKeyPrefix+token).Result()
	if errors.Is(err, redis.Nil) {
		return 0, false, nil
	}

	if err != nil {
		return 0, false, err
	}

	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		return 0, false, fmt.Errorf("stored id of token %s is corrupted: %w", token, err)
	}

	return id, true, nil
}

func (s *RedisStore) Save(ctx context.Context, id int64, token string, ttl time.Duration) error {

	_, err := s.client.TxPipelined(ctx, func(pipe redis.Pipeliner) error {

		pipe.Set(ctx, tokenKeyPrefix+token, id, ttl)
		pipe.Set(ctx, idKeyPrefix+strconv.FormatInt(id, 10), token, ttl)
		return nil
	})

	return err
}
