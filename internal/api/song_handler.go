package api

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/google/uuid"
	"github.com/shaiso/Karaoke/internal/domain"
	"github.com/shaiso/Karaoke/internal/telemetry"
)

// CreateSong принимает заявку из формы.
// POST /api/v1/songs
func (h *Handler) CreateSong(w http.ResponseWriter, r *http.Request) {
	var req CreateSongRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		BadRequest(w, "invalid request body")
		return
	}

	song, err := domain.NewSong(req.ToInput(), h.now())
	if HandleRepoError(w, h.logger, err, "") {
		return
	}

	if err := h.songs.Create(r.Context(), song); err != nil {
		HandleRepoError(w, h.logger, err, "")
		return
	}

	logger := telemetry.WithRequester(telemetry.WithSongID(h.logger, song.ID.String()), song.RequesterKey())
	logger.Info("song requested", "title", song.Title, "artist", song.Artist)

	h.publish(r.Context(), domain.ChangeSongAdded, func(ctx context.Context, p EventPublisher) error {
		return p.PublishSongAdded(ctx, song)
	})

	Created(w, SongFromDomain(*song))
}

// ListSongs возвращает заявки в порядке подачи, без упорядочивания по раундам.
// GET /api/v1/songs
func (h *Handler) ListSongs(w http.ResponseWriter, r *http.Request) {
	songs, err := h.songs.List(r.Context())
	if HandleRepoError(w, h.logger, err, "") {
		return
	}

	result := make([]SongResponse, len(songs))
	for i, s := range songs {
		result[i] = SongFromDomain(s)
	}

	List(w, result, len(result))
}

// GetSong возвращает заявку по ID.
// GET /api/v1/songs/{id}
func (h *Handler) GetSong(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(r.PathValue("id"))
	if err != nil {
		BadRequest(w, "invalid song id")
		return
	}

	song, err := h.songs.GetByID(r.Context(), id)
	if HandleRepoError(w, h.logger, err, "song not found") {
		return
	}

	Success(w, SongFromDomain(*song))
}

// DeleteSong удаляет исполненную заявку.
// DELETE /api/v1/songs/{id}
func (h *Handler) DeleteSong(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(r.PathValue("id"))
	if err != nil {
		BadRequest(w, "invalid song id")
		return
	}

	if err := h.songs.Delete(r.Context(), id); HandleRepoError(w, h.logger, err, "song not found") {
		return
	}

	telemetry.WithSongID(h.logger, id.String()).Info("song done")

	h.publish(r.Context(), domain.ChangeSongRemoved, func(ctx context.Context, p EventPublisher) error {
		return p.PublishSongRemoved(ctx, id)
	})

	NoContent(w)
}
