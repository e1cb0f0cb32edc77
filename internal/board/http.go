package board

import (
	"net/http"

	"github.com/shaiso/Karaoke/internal/api"
)

// RegisterRoutes регистрирует HTTP маршруты табло.
func (b *Board) RegisterRoutes(mux *http.ServeMux) {
	chain := api.Chain(
		api.Recovery(b.logger),
		api.Logging(b.logger),
		api.Metrics(metricsService),
	)

	mux.Handle("GET /api/v1/lineup", chain(http.HandlerFunc(b.GetLineup)))
}

// GetLineup возвращает последнюю вычисленную очередь.
// GET /api/v1/lineup
func (b *Board) GetLineup(w http.ResponseWriter, r *http.Request) {
	lineup, ok := b.Current()
	if !ok {
		api.Error(w, http.StatusServiceUnavailable, api.ErrCodeNotReady, "lineup is not computed yet")
		return
	}

	api.Success(w, api.LineupFromEntries(lineup.Entries, lineup.TurnLimit, lineup.Generation))
}
