package api

import (
	"time"

	"github.com/google/uuid"
	"github.com/shaiso/Karaoke/internal/domain"
	"github.com/shaiso/Karaoke/internal/queue"
)

// Song DTOs

// CreateSongRequest — форма заявки.
type CreateSongRequest struct {
	Title       string `json:"title"`
	Artist      string `json:"artist"`
	Description string `json:"description,omitempty"`
	FirstName   string `json:"singer_first_name"`
	LastName    string `json:"singer_last_name"`
}

// ToInput конвертирует запрос в domain.NewSongInput.
func (r CreateSongRequest) ToInput() domain.NewSongInput {
	return domain.NewSongInput{
		Title:           r.Title,
		Artist:          r.Artist,
		Description:     r.Description,
		SingerFirstName: r.FirstName,
		SingerLastName:  r.LastName,
	}
}

// SongResponse — ответ с заявкой.
type SongResponse struct {
	ID          uuid.UUID `json:"id"`
	Title       string    `json:"title"`
	Artist      string    `json:"artist"`
	Description string    `json:"description,omitempty"`
	FirstName   string    `json:"singer_first_name"`
	LastName    string    `json:"singer_last_name"`
	CreatedAt   time.Time `json:"created_at"`
}

// SongFromDomain конвертирует domain.Song в SongResponse.
func SongFromDomain(s domain.Song) SongResponse {
	return SongResponse{
		ID:          s.ID,
		Title:       s.Title,
		Artist:      s.Artist,
		Description: s.Description,
		FirstName:   s.SingerFirstName,
		LastName:    s.SingerLastName,
		CreatedAt:   s.CreatedAt,
	}
}

// Lineup DTOs

// LineupEntryResponse — позиция в очереди.
type LineupEntryResponse struct {
	Position int          `json:"position"`
	Round    int          `json:"round"`
	Singer   string       `json:"singer"`
	Song     SongResponse `json:"song"`
}

// LineupResponse — упорядоченная очередь.
type LineupResponse struct {
	TurnLimit  int                   `json:"turn_limit"`
	Total      int                   `json:"total"`
	Rounds     int                   `json:"rounds"`
	Generation uint64                `json:"generation,omitempty"`
	Entries    []LineupEntryResponse `json:"entries"`
}

// LineupFromEntries конвертирует результат упорядочивания в LineupResponse.
func LineupFromEntries(entries []queue.Entry, turnLimit int, generation uint64) LineupResponse {
	resp := LineupResponse{
		TurnLimit:  turnLimit,
		Total:      len(entries),
		Generation: generation,
		Entries:    make([]LineupEntryResponse, len(entries)),
	}

	for i, e := range entries {
		resp.Entries[i] = LineupEntryResponse{
			Position: e.Position,
			Round:    e.Round,
			Singer:   e.Song.SingerName(),
			Song:     SongFromDomain(e.Song),
		}
		resp.Rounds = max(resp.Rounds, e.Round)
	}
	return resp
}

// Config DTOs

// SetTurnLimitRequest — запрос на изменение лимита песен за ход.
type SetTurnLimitRequest struct {
	TurnLimit *int `json:"turn_limit"`
}

// ConfigResponse — ответ с конфигурацией.
type ConfigResponse struct {
	TurnLimit    int       `json:"turn_limit"`
	MinTurnLimit int       `json:"min_turn_limit"`
	MaxTurnLimit int       `json:"max_turn_limit"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// ConfigFromDomain конвертирует domain.KaraokeConfig в ConfigResponse.
func ConfigFromDomain(c domain.KaraokeConfig) ConfigResponse {
	return ConfigResponse{
		TurnLimit:    c.TurnLimit,
		MinTurnLimit: domain.MinTurnLimit,
		MaxTurnLimit: domain.MaxTurnLimit,
		UpdatedAt:    c.UpdatedAt,
	}
}

// Admin DTOs

// LoginRequest — запрос на вход оператора.
type LoginRequest struct {
	Password string `json:"password"`
}
