package board

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"sync/atomic"
	"time"

	"github.com/robfig/cron/v3"
	"golang.org/x/sync/errgroup"

	"github.com/shaiso/Karaoke/internal/domain"
	"github.com/shaiso/Karaoke/internal/mq"
	"github.com/shaiso/Karaoke/internal/notify"
	"github.com/shaiso/Karaoke/internal/queue"
	"github.com/shaiso/Karaoke/internal/telemetry"
)

const (
	metricsService  = "board"
	defaultResync   = "@every 30s"
	defaultPrefetch = 10
)

// SnapshotSource — источник согласованных снимков.
type SnapshotSource interface {
	Snapshot(ctx context.Context) (*domain.Snapshot, error)
}

// Board держит последнюю вычисленную очередь.
type Board struct {
	snapshots SnapshotSource
	notifier  notify.Notifier
	conn      *mq.Connection
	resync    cron.Schedule
	logger    *slog.Logger

	generation atomic.Uint64

	mu      sync.RWMutex
	current *Lineup

	group      *errgroup.Group
	cancelFunc context.CancelFunc
}

// Config — конфигурация Board.
type Config struct {
	Snapshots SnapshotSource

	// Notifier — уведомления о новых заявках (default: LogNotifier).
	Notifier notify.Notifier

	// Conn — соединение с RabbitMQ. Nil — только периодический resync.
	Conn *mq.Connection

	// Resync — расписание периодического пересчёта (default: @every 30s).
	Resync cron.Schedule

	Logger *slog.Logger
}

// New создаёт новый Board.
func New(cfg Config) *Board {
	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}

	notifier := cfg.Notifier
	if notifier == nil {
		notifier = notify.NewLogNotifier(logger)
	}

	resync := cfg.Resync
	if resync == nil {
		resync, _ = ParseResync(defaultResync)
	}

	return &Board{
		snapshots: cfg.Snapshots,
		notifier:  notifier,
		conn:      cfg.Conn,
		resync:    resync,
		logger:    logger,
	}
}

// Start запускает consumer событий и цикл resync.
func (b *Board) Start(ctx context.Context) error {
	ctx, cancel := context.WithCancel(ctx)
	b.cancelFunc = cancel

	g, gctx := errgroup.WithContext(ctx)
	b.group = g

	if b.conn != nil {
		consumer := mq.NewConsumer(b.conn, b.logger, mq.ConsumerConfig{
			Queue: mq.QueueBoardChanges,
			Handlers: map[domain.ChangeKind]mq.Handler{
				domain.ChangeSongAdded:     b.handleSongAdded,
				domain.ChangeSongRemoved:   b.handleChange,
				domain.ChangeConfigUpdated: b.handleChange,
			},
			Prefetch: defaultPrefetch,
		})

		g.Go(func() error {
			if err := consumer.Start(gctx); err != nil && !errors.Is(err, context.Canceled) {
				return fmt.Errorf("consumer: %w", err)
			}
			return nil
		})
	} else {
		b.logger.Warn("no RabbitMQ connection, relying on periodic resync only")
	}

	g.Go(func() error {
		b.resyncLoop(gctx)
		return nil
	})

	b.logger.Info("board started", "event_driven", b.conn != nil)
	return nil
}

// Stop останавливает Board и ждёт завершения горутин.
func (b *Board) Stop() error {
	if b.cancelFunc != nil {
		b.cancelFunc()
	}
	if b.group == nil {
		return nil
	}

	err := b.group.Wait()
	b.logger.Info("board stopped")
	return err
}

// Current возвращает последнюю сохранённую очередь.
func (b *Board) Current() (*Lineup, bool) {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return b.current, b.current != nil
}

// Refresh читает снимок, пересчитывает очередь и сохраняет её,
// если за это время не сохранили более свежую.
func (b *Board) Refresh(ctx context.Context) (*Lineup, error) {
	gen := b.generation.Add(1)
	start := time.Now()
	defer func() {
		telemetry.LineupDuration.WithLabelValues(metricsService).Observe(time.Since(start).Seconds())
	}()

	snap, err := b.snapshots.Snapshot(ctx)
	if err != nil {
		telemetry.LineupRecomputes.WithLabelValues(metricsService, telemetry.ResultError).Inc()
		return nil, fmt.Errorf("load snapshot: %w", err)
	}

	entries, err := queue.Lineup(snap.Songs, snap.TurnLimit)
	if err != nil {
		if errors.Is(err, queue.ErrInvalidConfiguration) {
			telemetry.LineupRecomputes.WithLabelValues(metricsService, telemetry.ResultInvalidConfig).Inc()
			b.logger.Error("invalid turn limit, keeping previous lineup",
				"turn_limit", snap.TurnLimit,
				"generation", gen,
				"error", err,
			)
		}
		return nil, err
	}

	lineup := &Lineup{
		Generation: gen,
		TurnLimit:  snap.TurnLimit,
		Entries:    entries,
		SnapshotAt: snap.TakenAt,
		ComputedAt: time.Now().UTC(),
	}
	telemetry.LineupRecomputes.WithLabelValues(metricsService, telemetry.ResultOK).Inc()

	if b.store(lineup) {
		telemetry.LineupSongs.Set(float64(len(lineup.Entries)))
		telemetry.LineupRequesters.Set(float64(lineup.Requesters()))
		telemetry.LineupRounds.Set(float64(lineup.Rounds()))
		telemetry.LineupTurnLimit.Set(float64(lineup.TurnLimit))

		b.logger.Debug("lineup updated",
			"generation", gen,
			"songs", len(lineup.Entries),
			"rounds", lineup.Rounds(),
			"turn_limit", lineup.TurnLimit,
		)
	} else {
		b.logger.Debug("discarding stale lineup", "generation", gen)
	}

	return lineup, nil
}

// resyncOnce выполняет один периодический пересчёт.
// Неверный лимит уже залогирован в Refresh.
func (b *Board) resyncOnce(ctx context.Context) {
	_, err := b.Refresh(ctx)
	if err == nil || ctx.Err() != nil || errors.Is(err, queue.ErrInvalidConfiguration) {
		return
	}
	b.logger.Warn("resync failed", "error", err)
}

// store сохраняет очередь, если её поколение новее текущего.
func (b *Board) store(l *Lineup) bool {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.current != nil && b.current.Generation > l.Generation {
		return false
	}
	b.current = l
	return true
}

// resyncLoop пересчитывает очередь при старте и далее по расписанию.
func (b *Board) resyncLoop(ctx context.Context) {
	for {
		b.resyncOnce(ctx)

		timer := time.NewTimer(untilNext(b.resync, time.Now()))
		select {
		case <-ctx.Done():
			timer.Stop()
			return
		case <-timer.C:
		}
	}
}
