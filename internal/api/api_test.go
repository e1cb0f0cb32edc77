package api

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"slices"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/shaiso/Karaoke/internal/domain"
	"github.com/shaiso/Karaoke/internal/repo"
	"github.com/shaiso/Karaoke/internal/telemetry"
)

const testPassword = "open-mic"

var baseTime = time.Date(2026, 3, 14, 20, 0, 0, 0, time.UTC)

// fakeStore реализует SongStore, ConfigStore и SnapshotStore в памяти.
type fakeStore struct {
	mu     sync.Mutex
	songs  map[uuid.UUID]domain.Song
	config domain.KaraokeConfig
}

func newFakeStore(t *testing.T) *fakeStore {
	t.Helper()

	hash, err := bcrypt.GenerateFromPassword([]byte(testPassword), bcrypt.MinCost)
	require.NoError(t, err)

	return &fakeStore{
		songs: make(map[uuid.UUID]domain.Song),
		config: domain.KaraokeConfig{
			TurnLimit:         domain.DefaultTurnLimit,
			AdminPasswordHash: string(hash),
			UpdatedAt:         baseTime,
		},
	}
}

func (f *fakeStore) Create(_ context.Context, song *domain.Song) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if _, ok := f.songs[song.ID]; ok {
		return repo.ErrAlreadyExists
	}
	f.songs[song.ID] = *song
	return nil
}

func (f *fakeStore) GetByID(_ context.Context, id uuid.UUID) (*domain.Song, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	s, ok := f.songs[id]
	if !ok {
		return nil, repo.ErrNotFound
	}
	return &s, nil
}

func (f *fakeStore) List(_ context.Context) ([]domain.Song, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	songs := make([]domain.Song, 0, len(f.songs))
	for _, s := range f.songs {
		songs = append(songs, s)
	}
	slices.SortFunc(songs, func(a, b domain.Song) int {
		if c := a.CreatedAt.Compare(b.CreatedAt); c != 0 {
			return c
		}
		return strings.Compare(a.ID.String(), b.ID.String())
	})
	return songs, nil
}

func (f *fakeStore) Delete(_ context.Context, id uuid.UUID) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if _, ok := f.songs[id]; !ok {
		return repo.ErrNotFound
	}
	delete(f.songs, id)
	return nil
}

func (f *fakeStore) Get(_ context.Context) (*domain.KaraokeConfig, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	c := f.config
	return &c, nil
}

func (f *fakeStore) SetTurnLimit(_ context.Context, limit int) (*domain.KaraokeConfig, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.config.TurnLimit = limit
	c := f.config
	return &c, nil
}

func (f *fakeStore) AdminPasswordHash(_ context.Context) (string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.config.AdminPasswordHash, nil
}

func (f *fakeStore) InitAdminPasswordHash(_ context.Context, hash string) (bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.config.AdminPasswordHash != "" {
		return false, nil
	}
	f.config.AdminPasswordHash = hash
	return true, nil
}

func (f *fakeStore) Snapshot(_ context.Context) (*domain.Snapshot, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	songs := make([]domain.Song, 0, len(f.songs))
	for _, s := range f.songs {
		songs = append(songs, s)
	}
	return &domain.Snapshot{Songs: songs, TurnLimit: f.config.TurnLimit, TakenAt: baseTime}, nil
}

func (f *fakeStore) add(title, first, last string, at time.Time) domain.Song {
	s := domain.Song{
		ID:              uuid.New(),
		Title:           title,
		Artist:          "Artist",
		SingerFirstName: first,
		SingerLastName:  last,
		CreatedAt:       at,
	}
	f.songs[s.ID] = s
	return s
}

// fakePublisher запоминает опубликованные события.
type fakePublisher struct {
	mu     sync.Mutex
	events []domain.ChangeKind
	err    error
}

func (p *fakePublisher) record(kind domain.ChangeKind) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.events = append(p.events, kind)
	return p.err
}

func (p *fakePublisher) PublishSongAdded(context.Context, *domain.Song) error {
	return p.record(domain.ChangeSongAdded)
}

func (p *fakePublisher) PublishSongRemoved(context.Context, uuid.UUID) error {
	return p.record(domain.ChangeSongRemoved)
}

func (p *fakePublisher) PublishConfigUpdated(context.Context, int) error {
	return p.record(domain.ChangeConfigUpdated)
}

func (p *fakePublisher) recorded() []domain.ChangeKind {
	p.mu.Lock()
	defer p.mu.Unlock()
	return append([]domain.ChangeKind(nil), p.events...)
}

type testEnv struct {
	mux   *http.ServeMux
	store *fakeStore
	pub   *fakePublisher
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	store := newFakeStore(t)
	pub := &fakePublisher{}
	h := NewHandler(Config{
		Songs:     store,
		Configs:   store,
		Snapshots: store,
		Publisher: pub,
		Logger:    slog.New(slog.NewTextHandler(io.Discard, nil)),
	})
	h.now = func() time.Time { return baseTime }

	mux := http.NewServeMux()
	h.RegisterRoutes(mux)
	return &testEnv{mux: mux, store: store, pub: pub}
}

func (e *testEnv) do(t *testing.T, method, path string, body any, password string) *httptest.ResponseRecorder {
	t.Helper()

	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}

	req := httptest.NewRequest(method, path, &buf)
	if password != "" {
		req.Header.Set("Authorization", "Bearer "+password)
	}

	rec := httptest.NewRecorder()
	e.mux.ServeHTTP(rec, req)
	return rec
}

func decodeData[T any](t *testing.T, rec *httptest.ResponseRecorder) T {
	t.Helper()
	var resp struct {
		Data T `json:"data"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	return resp.Data
}

func decodeError(t *testing.T, rec *httptest.ResponseRecorder) ErrorDetail {
	t.Helper()
	var resp ErrorResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	return resp.Error
}

func TestCreateSong(t *testing.T) {
	env := newTestEnv(t)

	rec := env.do(t, http.MethodPost, "/api/v1/songs", CreateSongRequest{
		Title:       " Bohemian Rhapsody ",
		Artist:      "Queen",
		Description: "for Mom",
		FirstName:   "Freddie",
		LastName:    "Mercury",
	}, "")
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())

	song := decodeData[SongResponse](t, rec)
	assert.NotEqual(t, uuid.Nil, song.ID)
	assert.Equal(t, "Bohemian Rhapsody", song.Title)
	assert.Equal(t, "for Mom", song.Description)
	assert.True(t, baseTime.Equal(song.CreatedAt))

	assert.Contains(t, env.store.songs, song.ID)
	assert.Equal(t, []domain.ChangeKind{domain.ChangeSongAdded}, env.pub.recorded())
}

func TestCreateSong_Validation(t *testing.T) {
	env := newTestEnv(t)

	rec := env.do(t, http.MethodPost, "/api/v1/songs", CreateSongRequest{
		Artist:    "Queen",
		FirstName: "Freddie",
		LastName:  "Mercury",
	}, "")
	require.Equal(t, http.StatusBadRequest, rec.Code)

	detail := decodeError(t, rec)
	assert.Equal(t, ErrCodeValidation, detail.Code)
	assert.Equal(t, "title", detail.Field)
	assert.Empty(t, env.store.songs)
	assert.Empty(t, env.pub.recorded())
}

func TestCreateSong_InvalidBody(t *testing.T) {
	env := newTestEnv(t)

	req := httptest.NewRequest(http.MethodPost, "/api/v1/songs", bytes.NewBufferString("{"))
	rec := httptest.NewRecorder()
	env.mux.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, ErrCodeBadRequest, decodeError(t, rec).Code)
}

func TestCreateSong_PublishFailureStillCreated(t *testing.T) {
	env := newTestEnv(t)
	env.pub.err = errors.New("broker down")

	rec := env.do(t, http.MethodPost, "/api/v1/songs", CreateSongRequest{
		Title: "Song", Artist: "Artist", FirstName: "A", LastName: "B",
	}, "")

	assert.Equal(t, http.StatusCreated, rec.Code)
	assert.Len(t, env.store.songs, 1)
}

func TestCreateSong_WithoutPublisher(t *testing.T) {
	store := newFakeStore(t)
	h := NewHandler(Config{Songs: store, Configs: store, Snapshots: store})
	mux := http.NewServeMux()
	h.RegisterRoutes(mux)

	body, err := json.Marshal(CreateSongRequest{Title: "Song", Artist: "Artist", FirstName: "A", LastName: "B"})
	require.NoError(t, err)

	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/api/v1/songs", bytes.NewReader(body)))

	assert.Equal(t, http.StatusCreated, rec.Code)
}

func TestAdminAuth(t *testing.T) {
	env := newTestEnv(t)

	tests := []struct {
		name   string
		header string
		value  string
		want   int
	}{
		{"no password", "", "", http.StatusUnauthorized},
		{"wrong bearer", "Authorization", "Bearer nope", http.StatusUnauthorized},
		{"bearer", "Authorization", "Bearer " + testPassword, http.StatusOK},
		{"header", HeaderAdminPassword, testPassword, http.StatusOK},
		{"basic scheme", "Authorization", "Basic " + testPassword, http.StatusUnauthorized},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/api/v1/config", nil)
			if tt.header != "" {
				req.Header.Set(tt.header, tt.value)
			}
			rec := httptest.NewRecorder()
			env.mux.ServeHTTP(rec, req)

			assert.Equal(t, tt.want, rec.Code)
			if tt.want == http.StatusUnauthorized {
				assert.Equal(t, ErrCodeUnauthorized, decodeError(t, rec).Code)
				assert.NotEmpty(t, rec.Header().Get("WWW-Authenticate"))
			}
		})
	}
}

func TestAdminAuth_NoPasswordConfigured(t *testing.T) {
	env := newTestEnv(t)
	env.store.config.AdminPasswordHash = ""

	rec := env.do(t, http.MethodGet, "/api/v1/queue", nil, testPassword)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestLogin(t *testing.T) {
	env := newTestEnv(t)

	rec := env.do(t, http.MethodPost, "/api/v1/admin/login", LoginRequest{Password: testPassword}, "")
	assert.Equal(t, http.StatusNoContent, rec.Code)

	rec = env.do(t, http.MethodPost, "/api/v1/admin/login", LoginRequest{Password: "guess"}, "")
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestGetQueue(t *testing.T) {
	env := newTestEnv(t)
	a := env.store.add("A", "Alice", "Smith", baseTime)
	b := env.store.add("B", "alice", "smith ", baseTime.Add(time.Minute))
	c := env.store.add("C", "Bob", "Jones", baseTime.Add(2*time.Minute))

	rec := env.do(t, http.MethodGet, "/api/v1/queue", nil, testPassword)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	lineup := decodeData[LineupResponse](t, rec)
	assert.Equal(t, 1, lineup.TurnLimit)
	assert.Equal(t, 3, lineup.Total)
	assert.Equal(t, 2, lineup.Rounds)

	require.Len(t, lineup.Entries, 3)
	ids := []uuid.UUID{lineup.Entries[0].Song.ID, lineup.Entries[1].Song.ID, lineup.Entries[2].Song.ID}
	assert.Equal(t, []uuid.UUID{a.ID, c.ID, b.ID}, ids)
	assert.Equal(t, []int{1, 2, 3}, []int{lineup.Entries[0].Position, lineup.Entries[1].Position, lineup.Entries[2].Position})
	assert.Equal(t, "Bob Jones", lineup.Entries[1].Singer)
}

func TestGetQueue_Empty(t *testing.T) {
	env := newTestEnv(t)

	rec := env.do(t, http.MethodGet, "/api/v1/queue", nil, testPassword)
	require.Equal(t, http.StatusOK, rec.Code)

	lineup := decodeData[LineupResponse](t, rec)
	assert.Zero(t, lineup.Total)
	assert.Empty(t, lineup.Entries)
}

func TestGetQueue_InvalidConfiguration(t *testing.T) {
	env := newTestEnv(t)
	env.store.add("A", "Alice", "Smith", baseTime)
	env.store.config.TurnLimit = 0

	rec := env.do(t, http.MethodGet, "/api/v1/queue", nil, testPassword)
	require.Equal(t, http.StatusUnprocessableEntity, rec.Code)
	assert.Equal(t, ErrCodeInvalidConfiguration, decodeError(t, rec).Code)
}

func TestListSongs(t *testing.T) {
	env := newTestEnv(t)
	c := env.store.add("C", "Bob", "Jones", baseTime.Add(2*time.Minute))
	a := env.store.add("A", "Alice", "Smith", baseTime)
	b := env.store.add("B", "Alice", "Smith", baseTime.Add(time.Minute))

	rec := env.do(t, http.MethodGet, "/api/v1/songs", nil, "")
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	rec = env.do(t, http.MethodGet, "/api/v1/songs", nil, testPassword)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	var resp struct {
		Data  []SongResponse `json:"data"`
		Total int            `json:"total"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))

	// Порядок подачи, а не порядок исполнения
	assert.Equal(t, 3, resp.Total)
	require.Len(t, resp.Data, 3)
	assert.Equal(t, []uuid.UUID{a.ID, b.ID, c.ID}, []uuid.UUID{resp.Data[0].ID, resp.Data[1].ID, resp.Data[2].ID})
}

func TestListSongs_Empty(t *testing.T) {
	env := newTestEnv(t)

	rec := env.do(t, http.MethodGet, "/api/v1/songs", nil, testPassword)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"data":[]}`, rec.Body.String())
}

func TestGetQueue_RecordsMetrics(t *testing.T) {
	ok := telemetry.LineupRecomputes.WithLabelValues(metricsService, telemetry.ResultOK)
	invalid := telemetry.LineupRecomputes.WithLabelValues(metricsService, telemetry.ResultInvalidConfig)
	okBefore := testutil.ToFloat64(ok)
	invalidBefore := testutil.ToFloat64(invalid)

	env := newTestEnv(t)
	env.store.add("A", "Alice", "Smith", baseTime)

	rec := env.do(t, http.MethodGet, "/api/v1/queue", nil, testPassword)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, okBefore+1, testutil.ToFloat64(ok))

	env.store.config.TurnLimit = 0
	rec = env.do(t, http.MethodGet, "/api/v1/queue", nil, testPassword)
	require.Equal(t, http.StatusUnprocessableEntity, rec.Code)
	assert.Equal(t, invalidBefore+1, testutil.ToFloat64(invalid))
	assert.Equal(t, okBefore+1, testutil.ToFloat64(ok))
}

func TestGetSong(t *testing.T) {
	env := newTestEnv(t)
	s := env.store.add("A", "Alice", "Smith", baseTime)

	rec := env.do(t, http.MethodGet, "/api/v1/songs/"+s.ID.String(), nil, testPassword)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, s.ID, decodeData[SongResponse](t, rec).ID)

	rec = env.do(t, http.MethodGet, "/api/v1/songs/"+uuid.NewString(), nil, testPassword)
	assert.Equal(t, http.StatusNotFound, rec.Code)

	rec = env.do(t, http.MethodGet, "/api/v1/songs/not-a-uuid", nil, testPassword)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestDeleteSong(t *testing.T) {
	env := newTestEnv(t)
	s := env.store.add("A", "Alice", "Smith", baseTime)

	rec := env.do(t, http.MethodDelete, "/api/v1/songs/"+s.ID.String(), nil, testPassword)
	require.Equal(t, http.StatusNoContent, rec.Code)
	assert.NotContains(t, env.store.songs, s.ID)
	assert.Equal(t, []domain.ChangeKind{domain.ChangeSongRemoved}, env.pub.recorded())

	rec = env.do(t, http.MethodDelete, "/api/v1/songs/"+s.ID.String(), nil, testPassword)
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Len(t, env.pub.recorded(), 1)
}

func TestSetTurnLimit(t *testing.T) {
	env := newTestEnv(t)

	rec := env.do(t, http.MethodPut, "/api/v1/config/turn-limit", map[string]int{"turn_limit": 2}, testPassword)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	cfg := decodeData[ConfigResponse](t, rec)
	assert.Equal(t, 2, cfg.TurnLimit)
	assert.Equal(t, domain.MaxTurnLimit, cfg.MaxTurnLimit)
	assert.Equal(t, 2, env.store.config.TurnLimit)
	assert.Equal(t, []domain.ChangeKind{domain.ChangeConfigUpdated}, env.pub.recorded())
}

func TestSetTurnLimit_Invalid(t *testing.T) {
	tests := []struct {
		name string
		body any
		code ErrorCode
	}{
		{"zero", map[string]int{"turn_limit": 0}, ErrCodeValidation},
		{"negative", map[string]int{"turn_limit": -3}, ErrCodeValidation},
		{"too large", map[string]int{"turn_limit": domain.MaxTurnLimit + 1}, ErrCodeValidation},
		{"missing", map[string]int{}, ErrCodeBadRequest},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			env := newTestEnv(t)

			rec := env.do(t, http.MethodPut, "/api/v1/config/turn-limit", tt.body, testPassword)
			require.Equal(t, http.StatusBadRequest, rec.Code)
			assert.Equal(t, tt.code, decodeError(t, rec).Code)
			assert.Equal(t, domain.DefaultTurnLimit, env.store.config.TurnLimit)
			assert.Empty(t, env.pub.recorded())
		})
	}
}

func TestBootstrapAdminPassword(t *testing.T) {
	store := newFakeStore(t)
	store.config.AdminPasswordHash = ""
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	require.NoError(t, BootstrapAdminPassword(context.Background(), store, "first", logger))
	first := store.config.AdminPasswordHash
	require.NoError(t, bcrypt.CompareHashAndPassword([]byte(first), []byte("first")))

	// Уже заданный пароль не перезаписывается
	require.NoError(t, BootstrapAdminPassword(context.Background(), store, "second", logger))
	assert.Equal(t, first, store.config.AdminPasswordHash)

	require.NoError(t, BootstrapAdminPassword(context.Background(), store, "", logger))
	assert.Equal(t, first, store.config.AdminPasswordHash)
}

func TestRecovery(t *testing.T) {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	h := Chain(Recovery(logger), Logging(logger))(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {
		panic("boom")
	}))

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.Equal(t, ErrCodeInternalError, decodeError(t, rec).Code)
}
