package repo

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shaiso/Karaoke/internal/domain"
)

// configID — единственная строка karaoke_config.
const configID = 1

// ConfigRepo — репозиторий конфигурации вечера.
type ConfigRepo struct {
	pool *pgxpool.Pool
}

// NewConfigRepo создаёт новый ConfigRepo.
func NewConfigRepo(pool *pgxpool.Pool) *ConfigRepo {
	return &ConfigRepo{pool: pool}
}

// Get возвращает текущую конфигурацию.
func (r *ConfigRepo) Get(ctx context.Context) (*domain.KaraokeConfig, error) {
	query := `
		SELECT songs_per_turn, admin_password_hash, updated_at
		FROM karaoke_config
		WHERE id = $1
	`
	return scanConfig(r.pool.QueryRow(ctx, query, configID))
}

// SetTurnLimit обновляет лимит песен за ход.
// Значение не проверяется: валидация — задача вызывающей стороны.
func (r *ConfigRepo) SetTurnLimit(ctx context.Context, limit int) (*domain.KaraokeConfig, error) {
	query := `
		UPDATE karaoke_config
		SET songs_per_turn = $2, updated_at = NOW()
		WHERE id = $1
		RETURNING songs_per_turn, admin_password_hash, updated_at
	`
	return scanConfig(r.pool.QueryRow(ctx, query, configID, limit))
}

// InitAdminPasswordHash задаёт хеш пароля оператора, только если он ещё не задан.
// Возвращает true, если хеш был записан.
func (r *ConfigRepo) InitAdminPasswordHash(ctx context.Context, hash string) (bool, error) {
	result, err := r.pool.Exec(ctx, `
		UPDATE karaoke_config
		SET admin_password_hash = $2, updated_at = NOW()
		WHERE id = $1 AND admin_password_hash IS NULL
	`, configID, hash)
	if err != nil {
		return false, fmt.Errorf("init admin password: %w", err)
	}
	return result.RowsAffected() > 0, nil
}

// AdminPasswordHash возвращает bcrypt-хеш пароля оператора.
func (r *ConfigRepo) AdminPasswordHash(ctx context.Context) (string, error) {
	cfg, err := r.Get(ctx)
	if err != nil {
		return "", err
	}
	return cfg.AdminPasswordHash, nil
}

func scanConfig(row pgx.Row) (*domain.KaraokeConfig, error) {
	var c domain.KaraokeConfig
	var hash *string

	err := row.Scan(&c.TurnLimit, &hash, &c.UpdatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("scan config: %w", err)
	}

	if hash != nil {
		c.AdminPasswordHash = *hash
	}
	return &c, nil
}
