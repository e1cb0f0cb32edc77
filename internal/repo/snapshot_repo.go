package repo

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shaiso/Karaoke/internal/domain"
)

// SnapshotRepo читает согласованный срез заявок и лимита.
type SnapshotRepo struct {
	pool *pgxpool.Pool
}

// NewSnapshotRepo создаёт новый SnapshotRepo.
func NewSnapshotRepo(pool *pgxpool.Pool) *SnapshotRepo {
	return &SnapshotRepo{pool: pool}
}

// Snapshot возвращает все заявки и лимит из одной транзакции.
//
// REPEATABLE READ гарантирует, что лимит и набор заявок относятся
// к одному моменту времени.
func (r *SnapshotRepo) Snapshot(ctx context.Context) (*domain.Snapshot, error) {
	tx, err := r.pool.BeginTx(ctx, pgx.TxOptions{
		IsoLevel:   pgx.RepeatableRead,
		AccessMode: pgx.ReadOnly,
	})
	if err != nil {
		return nil, fmt.Errorf("begin snapshot: %w", err)
	}
	defer tx.Rollback(ctx)

	snap := &domain.Snapshot{TakenAt: time.Now().UTC()}

	err = tx.QueryRow(ctx, `SELECT songs_per_turn FROM karaoke_config WHERE id = $1`, configID).
		Scan(&snap.TurnLimit)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("read turn limit: %w", err)
	}

	snap.Songs, err = listSongs(ctx, tx)
	if err != nil {
		return nil, err
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, fmt.Errorf("commit snapshot: %w", err)
	}
	return snap, nil
}
