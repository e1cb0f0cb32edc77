package queue

import (
	"errors"
	"fmt"
)

// ErrInvalidConfiguration — лимит песен за ход не является положительным числом.
var ErrInvalidConfiguration = errors.New("invalid configuration")

// ConfigError — ошибка конфигурации с переданным значением лимита.
type ConfigError struct {
	TurnLimit int
}

// Error реализует интерфейс error.
func (e *ConfigError) Error() string {
	return fmt.Sprintf("invalid configuration: turn limit must be a positive integer, got %d", e.TurnLimit)
}

// Unwrap возвращает ErrInvalidConfiguration.
func (e *ConfigError) Unwrap() error {
	return ErrInvalidConfiguration
}
