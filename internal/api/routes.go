package api

import (
	"net/http"
)

// metricsService — значение метки service для HTTP метрик.
const metricsService = "api"

// RegisterRoutes регистрирует все маршруты API.
func (h *Handler) RegisterRoutes(mux *http.ServeMux) {
	// Middleware chain
	chain := Chain(
		Recovery(h.logger),
		Logging(h.logger),
		Metrics(metricsService),
	)
	admin := Chain(chain, h.RequireAdmin)

	// Public
	mux.Handle("POST /api/v1/songs", chain(http.HandlerFunc(h.CreateSong)))
	mux.Handle("POST /api/v1/admin/login", chain(http.HandlerFunc(h.Login)))

	// Songs
	mux.Handle("GET /api/v1/songs", admin(http.HandlerFunc(h.ListSongs)))
	mux.Handle("GET /api/v1/songs/{id}", admin(http.HandlerFunc(h.GetSong)))
	mux.Handle("DELETE /api/v1/songs/{id}", admin(http.HandlerFunc(h.DeleteSong)))

	// Queue
	mux.Handle("GET /api/v1/queue", admin(http.HandlerFunc(h.GetQueue)))

	// Config
	mux.Handle("GET /api/v1/config", admin(http.HandlerFunc(h.GetConfig)))
	mux.Handle("PUT /api/v1/config/turn-limit", admin(http.HandlerFunc(h.SetTurnLimit)))
}
