package domain

import (
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validInput() NewSongInput {
	return NewSongInput{
		Title:           "Bésame Mucho",
		Artist:          "Luis Miguel",
		SingerFirstName: "Ana",
		SingerLastName:  "García",
	}
}

func TestNewSong_TrimsAndAssignsID(t *testing.T) {
	in := validInput()
	in.Title = "  Bésame Mucho  "
	in.Description = "  para mamá "

	now := time.Date(2026, 10, 16, 21, 0, 0, 0, time.FixedZone("CET", 3600))
	song, err := NewSong(in, now)
	require.NoError(t, err)

	assert.NotEqual(t, uuid.Nil, song.ID)
	assert.Equal(t, "Bésame Mucho", song.Title)
	assert.Equal(t, "para mamá", song.Description)
	assert.Equal(t, time.UTC, song.CreatedAt.Location())
	assert.True(t, song.CreatedAt.Equal(now))
}

func TestNewSong_RequiredFields(t *testing.T) {
	tests := []struct {
		name  string
		edit  func(*NewSongInput)
		field string
	}{
		{"missing title", func(in *NewSongInput) { in.Title = "" }, "title"},
		{"blank artist", func(in *NewSongInput) { in.Artist = "   " }, "artist"},
		{"missing first name", func(in *NewSongInput) { in.SingerFirstName = "" }, "singer_first_name"},
		{"missing last name", func(in *NewSongInput) { in.SingerLastName = "\t" }, "singer_last_name"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			in := validInput()
			tt.edit(&in)

			_, err := NewSong(in, time.Now())
			require.Error(t, err)
			assert.True(t, errors.Is(err, ErrRequiredField))

			var verr *ValidationError
			require.ErrorAs(t, err, &verr)
			assert.Equal(t, tt.field, verr.Field)
		})
	}
}

func TestNewSong_DescriptionIsOptionalButBounded(t *testing.T) {
	in := validInput()
	_, err := NewSong(in, time.Now())
	require.NoError(t, err)

	in.Description = strings.Repeat("x", MaxDescriptionLength+1)
	_, err = NewSong(in, time.Now())
	assert.ErrorIs(t, err, ErrFieldTooLong)
}

func TestRequesterKey_Normalization(t *testing.T) {
	a := Song{SingerFirstName: "  Alice ", SingerLastName: "SMITH"}
	b := Song{SingerFirstName: "alice", SingerLastName: " smith  "}
	c := Song{SingerFirstName: "Alice", SingerLastName: "Smyth"}

	assert.Equal(t, "alice_smith", a.RequesterKey())
	assert.Equal(t, a.RequesterKey(), b.RequesterKey())
	assert.NotEqual(t, a.RequesterKey(), c.RequesterKey())
}

func TestRequesterKey_UnicodeFolding(t *testing.T) {
	a := Song{SingerFirstName: "JOSÉ", SingerLastName: "ÑÚÑEZ"}
	b := Song{SingerFirstName: "josé", SingerLastName: "ñúñez"}

	assert.Equal(t, a.RequesterKey(), b.RequesterKey())
}

func TestRequesterKey_SeparatorSplitsNameBoundary(t *testing.T) {
	a := Song{SingerFirstName: "ana", SingerLastName: "bel"}
	b := Song{SingerFirstName: "anab", SingerLastName: "el"}

	assert.NotEqual(t, a.RequesterKey(), b.RequesterKey())
}

func TestRequesterKey_UnderscoreInNameCollides(t *testing.T) {
	a := Song{SingerFirstName: "ana_", SingerLastName: "bel"}
	b := Song{SingerFirstName: "ana", SingerLastName: "_bel"}

	assert.Equal(t, "ana__bel", a.RequesterKey())
	assert.Equal(t, a.RequesterKey(), b.RequesterKey())
}

func TestValidateTurnLimit(t *testing.T) {
	for _, limit := range []int{1, 2, MaxTurnLimit} {
		assert.NoError(t, ValidateTurnLimit(limit), "limit %d", limit)
	}
	for _, limit := range []int{-1, 0, MaxTurnLimit + 1} {
		assert.ErrorIs(t, ValidateTurnLimit(limit), ErrTurnLimitOutOfRange, "limit %d", limit)
	}
}

func TestChangeKind_IsValid(t *testing.T) {
	assert.True(t, ChangeSongAdded.IsValid())
	assert.True(t, ChangeSongRemoved.IsValid())
	assert.True(t, ChangeConfigUpdated.IsValid())
	assert.False(t, ChangeKind("song.updated").IsValid())
}
