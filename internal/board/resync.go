package board

import (
	"fmt"
	"time"

	"github.com/robfig/cron/v3"
)

// cronParser — парсер cron-выражений. Поддерживает дескрипторы (@every 30s).
var cronParser = cron.NewParser(
	cron.Minute | cron.Hour | cron.Dom | cron.Month | cron.Dow | cron.Descriptor,
)

// ParseResync разбирает cron-выражение периодического пересчёта.
func ParseResync(expr string) (cron.Schedule, error) {
	schedule, err := cronParser.Parse(expr)
	if err != nil {
		return nil, fmt.Errorf("parse resync expression %q: %w", expr, err)
	}
	return schedule, nil
}

// untilNext возвращает время ожидания до следующего срабатывания.
func untilNext(schedule cron.Schedule, now time.Time) time.Duration {
	return max(schedule.Next(now).Sub(now), 0)
}
