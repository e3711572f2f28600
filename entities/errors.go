package entities

import "errors"

var (
	ErrValidation        = errors.New("validation error")
	ErrDuplicateCity     = errors.New("duplicate city")
	ErrInsufficientCards = errors.New("insufficient cards")
	ErrNoHistory         = errors.New("no history")
	// ErrInternalInvariant 内部结构损坏（程序错误，而不是用户输入错误）
	ErrInternalInvariant = errors.New("internal invariant violation")
)
