package domain

import (
	"strings"
	"time"
	"unicode/utf8"

	"github.com/google/uuid"
	"golang.org/x/text/cases"
)

// Ограничения полей заявки.
const (
	MaxTitleLength       = 200
	MaxArtistLength      = 200
	MaxNameLength        = 100
	MaxDescriptionLength = 500
)

// Song — заявка на исполнение песни.
//
// Заявка создаётся участником через форму и удаляется оператором,
// когда песня исполнена. Порядок исполнения не хранится: он каждый раз
// вычисляется заново из полного набора заявок (см. пакет queue).
type Song struct {
	// ID — уникальный идентификатор заявки. Назначается хранилищем.
	ID uuid.UUID `json:"id"`

	// Title — название песни.
	Title string `json:"title"`

	// Artist — оригинальный исполнитель.
	Artist string `json:"artist"`

	// Description — посвящение или заметка (необязательно).
	Description string `json:"description,omitempty"`

	// SingerFirstName — имя участника.
	SingerFirstName string `json:"singer_first_name"`

	// SingerLastName — фамилия участника.
	SingerLastName string `json:"singer_last_name"`

	// CreatedAt — время подачи заявки. Используется только для упорядочивания.
	CreatedAt time.Time `json:"created_at"`
}

// NewSongInput — данные формы заявки.
type NewSongInput struct {
	Title           string
	Artist          string
	Description     string
	SingerFirstName string
	SingerLastName  string
}

// NewSong создаёт заявку из данных формы.
// Пробелы по краям обрезаются, обязательные поля проверяются.
func NewSong(in NewSongInput, now time.Time) (*Song, error) {
	s := &Song{
		ID:              uuid.New(),
		Title:           strings.TrimSpace(in.Title),
		Artist:          strings.TrimSpace(in.Artist),
		Description:     strings.TrimSpace(in.Description),
		SingerFirstName: strings.TrimSpace(in.SingerFirstName),
		SingerLastName:  strings.TrimSpace(in.SingerLastName),
		CreatedAt:       now.UTC(),
	}

	if err := s.Validate(); err != nil {
		return nil, err
	}
	return s, nil
}

// Validate проверяет обязательные поля и их длину.
func (s *Song) Validate() error {
	fields := []struct {
		name     string
		value    string
		required bool
		max      int
	}{
		{"title", s.Title, true, MaxTitleLength},
		{"artist", s.Artist, true, MaxArtistLength},
		{"singer_first_name", s.SingerFirstName, true, MaxNameLength},
		{"singer_last_name", s.SingerLastName, true, MaxNameLength},
		{"description", s.Description, false, MaxDescriptionLength},
	}

	for _, f := range fields {
		if f.required && strings.TrimSpace(f.value) == "" {
			return NewValidationError(f.name, f.name+" is required", ErrRequiredField)
		}
		if utf8.RuneCountInString(f.value) > f.max {
			return NewValidationError(f.name, f.name+" is too long", ErrFieldTooLong)
		}
	}
	return nil
}

// SingerName возвращает имя участника для отображения.
func (s *Song) SingerName() string {
	return strings.TrimSpace(s.SingerFirstName + " " + s.SingerLastName)
}

// RequesterKey возвращает нормализованную идентичность участника.
//
// Два участника с одинаковыми именем и фамилией (без учёта регистра и
// пробелов по краям) считаются одним и тем же человеком. Это известное
// ограничение модели: аутентификации участников нет.
//
// Разделитель "_" не экранируется, поэтому "ana_" + "bel" и "ana" + "_bel"
// дают один ключ "ana__bel".
func (s *Song) RequesterKey() string {
	return NormalizeRequester(s.SingerFirstName, s.SingerLastName)
}

// NormalizeRequester строит ключ участника из имени и фамилии.
func NormalizeRequester(firstName, lastName string) string {
	fold := cases.Fold()
	first := fold.String(strings.TrimSpace(firstName))
	last := fold.String(strings.TrimSpace(lastName))
	return first + "_" + last
}
