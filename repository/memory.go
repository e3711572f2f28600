package repository

import (
	"context"
	"sync"

	"pandemic-deck/entities"
)

// MemoryStorage 进程内存储，没有配置 redis/mysql 时使用。
// 保存的是编码后的字节，读出的历史与调用方不共享任何切片
type MemoryStorage struct {
	mu   sync.Mutex
	data []byte
}

func NewMemoryStorage() *MemoryStorage {
	return &MemoryStorage{}
}

func (m *MemoryStorage) Load(ctx context.Context) (entities.GameStorage, bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.data == nil {
		return nil, false, nil
	}
	history, err := decodeHistory(m.data)
	if err != nil {
		return nil, false, err
	}
	return history, true, nil
}

func (m *MemoryStorage) Save(ctx context.Context, history entities.GameStorage) error {
	data, err := encodeHistory(history)
	if err != nil {
		return err
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	m.data = data
	return nil
}
