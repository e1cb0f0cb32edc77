package domain

import (
	"fmt"
	"time"
)

// Допустимые значения лимита песен за ход.
const (
	MinTurnLimit     = 1
	MaxTurnLimit     = 10
	DefaultTurnLimit = 1
)

// KaraokeConfig — глобальная конфигурация вечера.
//
// В БД хранится одна строка (id = 1). Оператор меняет лимит через API,
// каждое изменение вызывает пересчёт очереди.
type KaraokeConfig struct {
	// TurnLimit — сколько песен одного участника допускается за один раунд.
	TurnLimit int `json:"turn_limit"`

	// AdminPasswordHash — bcrypt-хеш пароля оператора. Наружу не отдаётся.
	AdminPasswordHash string `json:"-"`

	// UpdatedAt — время последнего изменения.
	UpdatedAt time.Time `json:"updated_at"`
}

// ValidateTurnLimit проверяет значение лимита, которое задаёт оператор.
func ValidateTurnLimit(limit int) error {
	if limit < MinTurnLimit || limit > MaxTurnLimit {
		return NewValidationError("turn_limit",
			fmt.Sprintf("turn_limit must be between %d and %d", MinTurnLimit, MaxTurnLimit),
			ErrTurnLimitOutOfRange)
	}
	return nil
}
