package api

import (
	"errors"
	"net/http"
	"time"

	"github.com/shaiso/Karaoke/internal/queue"
	"github.com/shaiso/Karaoke/internal/telemetry"
)

// GetQueue возвращает упорядоченную очередь, вычисленную по свежему снимку.
// GET /api/v1/queue
func (h *Handler) GetQueue(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	defer func() {
		telemetry.LineupDuration.WithLabelValues(metricsService).Observe(time.Since(start).Seconds())
	}()

	snap, err := h.snapshots.Snapshot(r.Context())
	if err != nil {
		telemetry.LineupRecomputes.WithLabelValues(metricsService, telemetry.ResultError).Inc()
		HandleRepoError(w, h.logger, err, "")
		return
	}

	entries, err := queue.Lineup(snap.Songs, snap.TurnLimit)
	if err != nil {
		result := telemetry.ResultError
		if errors.Is(err, queue.ErrInvalidConfiguration) {
			result = telemetry.ResultInvalidConfig
		}
		telemetry.LineupRecomputes.WithLabelValues(metricsService, result).Inc()
		HandleRepoError(w, h.logger, err, "")
		return
	}
	telemetry.LineupRecomputes.WithLabelValues(metricsService, telemetry.ResultOK).Inc()

	Success(w, LineupFromEntries(entries, snap.TurnLimit, 0))
}
