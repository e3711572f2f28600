package repository

import (
	"context"
	"encoding/json"
	"fmt"

	"pandemic-deck/entities"
)

// Storage 历史记录的存储层，只负责整体读写，不理解也不修改内容
type Storage interface {
	// Load 返回 ok=false 表示还没有保存过任何历史
	Load(ctx context.Context) (history entities.GameStorage, ok bool, err error)
	Save(ctx context.Context, history entities.GameStorage) error
}

func encodeHistory(history entities.GameStorage) ([]byte, error) {
	data, err := json.Marshal(history)
	if err != nil {
		return nil, fmt.Errorf("encode history: %w", err)
	}
	return data, nil
}

func decodeHistory(data []byte) (entities.GameStorage, error) {
	var history entities.GameStorage
	if err := json.Unmarshal(data, &history); err != nil {
		return nil, fmt.Errorf("decode history: %w", err)
	}
	return history, nil
}
