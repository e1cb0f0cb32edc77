// Package telemetry обеспечивает наблюдаемость сервисов karaoke.
//
// Включает:
//   - logging.go — structured logging через slog
//   - metrics.go — Prometheus метрики пересчёта очереди, HTTP и уведомлений
//
// Метрики пересчёта помечены меткой service (api, board),
// gauges очереди обновляет только board.
package telemetry
