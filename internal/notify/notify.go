// Package notify уведомляет оператора о новых заявках.
package notify

import (
	"context"
	"log/slog"
)

// SongAdded — данные уведомления о новой заявке.
type SongAdded struct {
	Title       string
	Artist      string
	Singer      string
	Description string

	// Position — позиция заявки в очереди (0, если неизвестна).
	Position int

	// QueueLength — длина очереди на момент уведомления.
	QueueLength int
}

// Notifier отправляет уведомления.
type Notifier interface {
	NotifySongAdded(ctx context.Context, n SongAdded) error
}

// LogNotifier пишет уведомления в лог. Используется, если Discord не настроен.
type LogNotifier struct {
	logger *slog.Logger
}

// NewLogNotifier создаёт LogNotifier.
func NewLogNotifier(logger *slog.Logger) *LogNotifier {
	return &LogNotifier{logger: logger}
}

// NotifySongAdded реализует Notifier.
func (n *LogNotifier) NotifySongAdded(_ context.Context, s SongAdded) error {
	n.logger.Info("new song in the queue",
		"singer", s.Singer,
		"title", s.Title,
		"artist", s.Artist,
		"position", s.Position,
		"queue_length", s.QueueLength,
	)
	return nil
}

var _ Notifier = (*LogNotifier)(nil)
