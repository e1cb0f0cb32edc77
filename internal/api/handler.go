package api

import (
	"context"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/shaiso/Karaoke/internal/domain"
)

// SongStore — хранилище заявок.
type SongStore interface {
	Create(ctx context.Context, song *domain.Song) error
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Song, error)
	List(ctx context.Context) ([]domain.Song, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

// ConfigStore — хранилище конфигурации вечера.
type ConfigStore interface {
	Get(ctx context.Context) (*domain.KaraokeConfig, error)
	SetTurnLimit(ctx context.Context, limit int) (*domain.KaraokeConfig, error)
	AdminPasswordHash(ctx context.Context) (string, error)
}

// SnapshotStore возвращает согласованный снимок заявок и лимита.
type SnapshotStore interface {
	Snapshot(ctx context.Context) (*domain.Snapshot, error)
}

// EventPublisher публикует события об изменениях.
type EventPublisher interface {
	PublishSongAdded(ctx context.Context, song *domain.Song) error
	PublishSongRemoved(ctx context.Context, songID uuid.UUID) error
	PublishConfigUpdated(ctx context.Context, turnLimit int) error
}

// Handler — главный обработчик API с зависимостями.
type Handler struct {
	songs     SongStore
	configs   ConfigStore
	snapshots SnapshotStore
	publisher EventPublisher
	logger    *slog.Logger
	now       func() time.Time
}

// Config — конфигурация для создания Handler.
type Config struct {
	Songs     SongStore
	Configs   ConfigStore
	Snapshots SnapshotStore

	// Publisher — опционален. Без него табло обновляется только по resync.
	Publisher EventPublisher

	Logger *slog.Logger
}

// NewHandler создаёт новый Handler.
func NewHandler(cfg Config) *Handler {
	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}

	return &Handler{
		songs:     cfg.Songs,
		configs:   cfg.Configs,
		snapshots: cfg.Snapshots,
		publisher: cfg.Publisher,
		logger:    logger,
		now:       time.Now,
	}
}

// publish отправляет событие, если publisher настроен.
// Ошибка только логируется: изменение уже сохранено, табло догонит по resync.
func (h *Handler) publish(ctx context.Context, event domain.ChangeKind, fn func(context.Context, EventPublisher) error) {
	if h.publisher == nil {
		return
	}
	if err := fn(context.WithoutCancel(ctx), h.publisher); err != nil {
		h.logger.Warn("failed to publish event", "type", event, "error", err)
	}
}
