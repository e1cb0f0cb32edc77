package board

import (
	"context"
	"errors"

	"github.com/shaiso/Karaoke/internal/mq"
	"github.com/shaiso/Karaoke/internal/notify"
	"github.com/shaiso/Karaoke/internal/queue"
	"github.com/shaiso/Karaoke/internal/telemetry"
)

// handleChange пересчитывает очередь по событию song.removed / config.updated.
func (b *Board) handleChange(ctx context.Context, msg *mq.Message) error {
	b.logger.Debug("received change event", "type", msg.Type, "message_id", msg.ID)

	_, err := b.Refresh(ctx)
	if errors.Is(err, queue.ErrInvalidConfiguration) {
		// Повтор не поможет, пока оператор не исправит лимит
		return nil
	}
	return err
}

// handleSongAdded пересчитывает очередь и уведомляет оператора о новой заявке.
func (b *Board) handleSongAdded(ctx context.Context, msg *mq.Message) error {
	payload, err := mq.ParsePayload[mq.SongAddedPayload](msg)
	if err != nil {
		b.logger.Error("failed to parse song.added payload", "error", err)
		return err
	}

	logger := telemetry.WithSongID(b.logger, payload.SongID.String())
	logger.Debug("received song.added event")

	n := notify.SongAdded{
		Title:       payload.Title,
		Artist:      payload.Artist,
		Singer:      payload.Singer,
		Description: payload.Description,
	}

	lineup, err := b.Refresh(ctx)
	switch {
	case err == nil:
		n.QueueLength = len(lineup.Entries)
		if entry, ok := lineup.Find(payload.SongID); ok {
			n.Position = entry.Position
		}
	case errors.Is(err, queue.ErrInvalidConfiguration):
		// Уведомляем без позиции
	default:
		return err
	}

	// Ошибка уведомления не возвращает событие в очередь, иначе оператор
	// получит дубль после повторной доставки
	if err := b.notifier.NotifySongAdded(ctx, n); err != nil {
		telemetry.NotificationsSent.WithLabelValues(telemetry.ResultError).Inc()
		logger.Warn("failed to send notification", "error", err)
		return nil
	}
	telemetry.NotificationsSent.WithLabelValues(telemetry.ResultOK).Inc()

	return nil
}
