package main

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"pandemic-deck/config"
	"pandemic-deck/repository"
)

// openStorage 按配置选择历史存储，返回的 close 用于退出时释放连接
func openStorage(ctx context.Context, cfg config.Config, logger *zap.Logger) (repository.Storage, func(), error) {
	switch cfg.StorageDriver {
	case config.DriverRedis:
		rdb, err := repository.NewRedisClient(ctx, repository.RedisOptions{
			Addr:     cfg.RedisAddr,
			Password: cfg.RedisPassword,
			DB:       cfg.RedisDB,
		}, logger)
		if err != nil {
			return nil, nil, err
		}
		return repository.NewRedisStorage(rdb, cfg.StateKey), func() { rdb.Close() }, nil
	case config.DriverMySQL:
		db, err := repository.OpenMySQL(ctx, cfg.MySQLDSN, logger)
		if err != nil {
			return nil, nil, err
		}
		return repository.NewMySQLStorage(db, cfg.StateKey), func() { db.Close() }, nil
	case config.DriverMemory:
		logger.Warn("using in-memory storage, history is lost on restart")
		return repository.NewMemoryStorage(), func() {}, nil
	}
	return nil, nil, fmt.Errorf("unknown storage driver %q", cfg.StorageDriver)
}
