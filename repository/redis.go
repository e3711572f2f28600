// redis.go
package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/go-redis/redis/v8"
	"go.uber.org/zap"

	"pandemic-deck/entities"
)

type RedisOptions struct {
	Addr     string
	Password string
	DB       int
}

// NewRedisClient 连接 redis 并检查是否可用
func NewRedisClient(ctx context.Context, opts RedisOptions, logger *zap.Logger) (*redis.Client, error) {
	rdb := redis.NewClient(&redis.Options{
		Addr:     opts.Addr,
		Password: opts.Password,
		DB:       opts.DB,
	})

	if _, err := rdb.Ping(ctx).Result(); err != nil {
		rdb.Close()
		return nil, fmt.Errorf("redis ping %s: %w", opts.Addr, err)
	}
	logger.Info("redis connected", zap.String("addr", opts.Addr), zap.Int("db", opts.DB))
	return rdb, nil
}

// RedisStorage 把整段历史作为一个 JSON 字符串存在一个 key 下
type RedisStorage struct {
	rdb *redis.Client
	key string
}

func NewRedisStorage(rdb *redis.Client, key string) *RedisStorage {
	return &RedisStorage{rdb: rdb, key: key}
}

func (r *RedisStorage) Load(ctx context.Context) (entities.GameStorage, bool, error) {
	data, err := r.rdb.Get(ctx, r.key).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, false, nil
		}
		return nil, false, fmt.Errorf("redis get %s: %w", r.key, err)
	}
	history, err := decodeHistory(data)
	if err != nil {
		return nil, false, err
	}
	return history, true, nil
}

func (r *RedisStorage) Save(ctx context.Context, history entities.GameStorage) error {
	data, err := encodeHistory(history)
	if err != nil {
		return err
	}
	if err := r.rdb.Set(ctx, r.key, data, 0).Err(); err != nil {
		return fmt.Errorf("redis set %s: %w", r.key, err)
	}
	return nil
}
