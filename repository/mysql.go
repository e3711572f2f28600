package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/go-sql-driver/mysql"
	"go.uber.org/zap"

	"pandemic-deck/entities"
)

const createHistoryTable = `CREATE TABLE IF NOT EXISTS deck_history (
	state_key  VARCHAR(191) NOT NULL PRIMARY KEY,
	payload    LONGBLOB     NOT NULL,
	updated_at TIMESTAMP    NOT NULL DEFAULT CURRENT_TIMESTAMP ON UPDATE CURRENT_TIMESTAMP
)`

// OpenMySQL 打开数据库连接并确保历史表存在
func OpenMySQL(ctx context.Context, dsn string, logger *zap.Logger) (*sql.DB, error) {
	cfg, err := mysql.ParseDSN(dsn)
	if err != nil {
		return nil, fmt.Errorf("parse mysql dsn: %w", err)
	}
	cfg.ParseTime = true

	db, err := sql.Open("mysql", cfg.FormatDSN())
	if err != nil {
		return nil, fmt.Errorf("open mysql: %w", err)
	}
	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("mysql ping %s: %w", cfg.Addr, err)
	}
	if _, err := db.ExecContext(ctx, createHistoryTable); err != nil {
		db.Close()
		return nil, fmt.Errorf("create deck_history table: %w", err)
	}
	logger.Info("mysql connected", zap.String("addr", cfg.Addr), zap.String("db", cfg.DBName))
	return db, nil
}

// MySQLStorage 每个 key 一行，payload 为整段历史的 JSON
type MySQLStorage struct {
	db  *sql.DB
	key string
}

func NewMySQLStorage(db *sql.DB, key string) *MySQLStorage {
	return &MySQLStorage{db: db, key: key}
}

func (m *MySQLStorage) Load(ctx context.Context) (entities.GameStorage, bool, error) {
	var payload []byte
	err := m.db.QueryRowContext(ctx, "SELECT payload FROM deck_history WHERE state_key = ?", m.key).Scan(&payload)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, false, nil
		}
		return nil, false, fmt.Errorf("select history %s: %w", m.key, err)
	}
	history, err := decodeHistory(payload)
	if err != nil {
		return nil, false, err
	}
	return history, true, nil
}

func (m *MySQLStorage) Save(ctx context.Context, history entities.GameStorage) error {
	payload, err := encodeHistory(history)
	if err != nil {
		return err
	}
	_, err = m.db.ExecContext(ctx,
		"INSERT INTO deck_history (state_key, payload) VALUES (?, ?) ON DUPLICATE KEY UPDATE payload = VALUES(payload)",
		m.key, payload)
	if err != nil {
		return fmt.Errorf("upsert history %s: %w", m.key, err)
	}
	return nil
}
