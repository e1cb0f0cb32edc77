package api

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/shaiso/Karaoke/internal/domain"
)

// GetConfig возвращает конфигурацию вечера.
// GET /api/v1/config
func (h *Handler) GetConfig(w http.ResponseWriter, r *http.Request) {
	cfg, err := h.configs.Get(r.Context())
	if HandleRepoError(w, h.logger, err, "config not found") {
		return
	}

	Success(w, ConfigFromDomain(*cfg))
}

// SetTurnLimit меняет лимит песен за ход.
// PUT /api/v1/config/turn-limit
func (h *Handler) SetTurnLimit(w http.ResponseWriter, r *http.Request) {
	var req SetTurnLimitRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		BadRequest(w, "invalid request body")
		return
	}

	if req.TurnLimit == nil {
		BadRequest(w, "turn_limit is required")
		return
	}

	if err := domain.ValidateTurnLimit(*req.TurnLimit); HandleRepoError(w, h.logger, err, "") {
		return
	}

	cfg, err := h.configs.SetTurnLimit(r.Context(), *req.TurnLimit)
	if HandleRepoError(w, h.logger, err, "config not found") {
		return
	}

	h.logger.Info("turn limit updated", "turn_limit", cfg.TurnLimit)

	h.publish(r.Context(), domain.ChangeConfigUpdated, func(ctx context.Context, p EventPublisher) error {
		return p.PublishConfigUpdated(ctx, cfg.TurnLimit)
	})

	Success(w, ConfigFromDomain(*cfg))
}
