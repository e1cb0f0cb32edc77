package repo

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shaiso/Karaoke/internal/domain"
)

// songColumns — колонки songs в порядке сканирования.
const songColumns = `id, title, artist, description, singer_first_name, singer_last_name, created_at`

// SongRepo — репозиторий для работы с заявками.
type SongRepo struct {
	pool *pgxpool.Pool
}

// NewSongRepo создаёт новый SongRepo.
func NewSongRepo(pool *pgxpool.Pool) *SongRepo {
	return &SongRepo{pool: pool}
}

// Create сохраняет новую заявку.
func (r *SongRepo) Create(ctx context.Context, song *domain.Song) error {
	query := `
		INSERT INTO songs (id, title, artist, description, singer_first_name, singer_last_name, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
	`
	_, err := r.pool.Exec(ctx, query,
		song.ID,
		song.Title,
		song.Artist,
		nullString(song.Description),
		song.SingerFirstName,
		song.SingerLastName,
		song.CreatedAt,
	)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return ErrAlreadyExists
		}
		return fmt.Errorf("insert song: %w", err)
	}
	return nil
}

// GetByID возвращает заявку по ID.
func (r *SongRepo) GetByID(ctx context.Context, id uuid.UUID) (*domain.Song, error) {
	query := `SELECT ` + songColumns + ` FROM songs WHERE id = $1`

	song, err := scanSong(r.pool.QueryRow(ctx, query, id))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &song, nil
}

// List возвращает все заявки в порядке подачи.
func (r *SongRepo) List(ctx context.Context) ([]domain.Song, error) {
	return listSongs(ctx, r.pool)
}

// Delete удаляет заявку (песня исполнена или отозвана).
func (r *SongRepo) Delete(ctx context.Context, id uuid.UUID) error {
	result, err := r.pool.Exec(ctx, `DELETE FROM songs WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete song: %w", err)
	}
	if result.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

// --- Helpers ---

// querier — общий интерфейс пула и транзакции.
type querier interface {
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
}

func listSongs(ctx context.Context, q querier) ([]domain.Song, error) {
	rows, err := q.Query(ctx, `SELECT `+songColumns+` FROM songs ORDER BY created_at ASC, id ASC`)
	if err != nil {
		return nil, fmt.Errorf("list songs: %w", err)
	}

	songs, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (domain.Song, error) {
		return scanSong(row)
	})
	if err != nil {
		return nil, fmt.Errorf("collect songs: %w", err)
	}
	return songs, nil
}

// scanSong читает одну строку songs. pgx.ErrNoRows возвращается как есть.
func scanSong(row pgx.Row) (domain.Song, error) {
	var s domain.Song
	var description *string

	err := row.Scan(
		&s.ID,
		&s.Title,
		&s.Artist,
		&description,
		&s.SingerFirstName,
		&s.SingerLastName,
		&s.CreatedAt,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return s, err
	}
	if err != nil {
		return s, fmt.Errorf("scan song: %w", err)
	}

	if description != nil {
		s.Description = *description
	}
	s.CreatedAt = s.CreatedAt.UTC()

	return s, nil
}

// nullString возвращает nil для пустой строки.
func nullString(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}
