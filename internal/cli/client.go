package cli

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"time"
)

// --- Response types (дублируются из api/dto.go, CLI не импортирует internal/api) ---

// SongResponse — заявка из API.
type SongResponse struct {
	ID          string `json:"id"`
	Title       string `json:"title"`
	Artist      string `json:"artist"`
	Description string `json:"description,omitempty"`
	FirstName   string `json:"singer_first_name"`
	LastName    string `json:"singer_last_name"`
	CreatedAt   string `json:"created_at"`
}

// LineupEntryResponse — позиция в очереди из API.
type LineupEntryResponse struct {
	Position int          `json:"position"`
	Round    int          `json:"round"`
	Singer   string       `json:"singer"`
	Song     SongResponse `json:"song"`
}

// LineupResponse — упорядоченная очередь из API.
type LineupResponse struct {
	TurnLimit  int                   `json:"turn_limit"`
	Total      int                   `json:"total"`
	Rounds     int                   `json:"rounds"`
	Generation uint64                `json:"generation,omitempty"`
	Entries    []LineupEntryResponse `json:"entries"`
}

// ConfigResponse — конфигурация вечера из API.
type ConfigResponse struct {
	TurnLimit    int    `json:"turn_limit"`
	MinTurnLimit int    `json:"min_turn_limit"`
	MaxTurnLimit int    `json:"max_turn_limit"`
	UpdatedAt    string `json:"updated_at"`
}

// --- Request types ---

// CreateSongRequest — заявка на песню.
type CreateSongRequest struct {
	Title       string `json:"title"`
	Artist      string `json:"artist"`
	Description string `json:"description,omitempty"`
	FirstName   string `json:"singer_first_name"`
	LastName    string `json:"singer_last_name"`
}

// --- API response wrappers ---

type dataResponse struct {
	Data json.RawMessage `json:"data"`
}

type listResponse struct {
	Data  json.RawMessage `json:"data"`
	Total int             `json:"total"`
}

type errorResponse struct {
	Error struct {
		Code    string `json:"code"`
		Message string `json:"message"`
		Field   string `json:"field,omitempty"`
	} `json:"error"`
}

// APIError — ошибка, которую вернул API.
type APIError struct {
	Status  int
	Code    string
	Message string
}

// Error реализует интерфейс error.
func (e *APIError) Error() string {
	if e.Code == "" {
		return fmt.Sprintf("API error: HTTP %d", e.Status)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// --- Client ---

// Client — HTTP-клиент для Karaoke API.
type Client struct {
	baseURL       string
	adminPassword string
	httpClient    *http.Client
}

// NewClient создаёт клиент для API.
// adminPassword передаётся в Authorization: Bearer для маршрутов оператора.
func NewClient(baseURL, adminPassword string) *Client {
	return &Client{
		baseURL:       baseURL,
		adminPassword: adminPassword,
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
		},
	}
}

// --- Songs ---

// RequestSong отправляет заявку на песню.
func (c *Client) RequestSong(req CreateSongRequest) (*SongResponse, error) {
	var song SongResponse
	err := c.post("/api/v1/songs", req, &song)
	return &song, err
}

// ListSongs возвращает заявки в порядке подачи.
func (c *Client) ListSongs() ([]SongResponse, error) {
	var songs []SongResponse
	err := c.list("/api/v1/songs", &songs)
	return songs, err
}

// GetSong возвращает заявку по ID.
func (c *Client) GetSong(id string) (*SongResponse, error) {
	var song SongResponse
	err := c.get("/api/v1/songs/"+id, &song)
	return &song, err
}

// DoneSong удаляет исполненную заявку.
func (c *Client) DoneSong(id string) error {
	return c.delete("/api/v1/songs/" + id)
}

// --- Queue ---

// Queue возвращает упорядоченную очередь.
func (c *Client) Queue() (*LineupResponse, error) {
	var lineup LineupResponse
	err := c.get("/api/v1/queue", &lineup)
	return &lineup, err
}

// --- Config ---

// GetConfig возвращает конфигурацию вечера.
func (c *Client) GetConfig() (*ConfigResponse, error) {
	var cfg ConfigResponse
	err := c.get("/api/v1/config", &cfg)
	return &cfg, err
}

// SetTurnLimit меняет лимит песен за ход.
func (c *Client) SetTurnLimit(limit int) (*ConfigResponse, error) {
	var cfg ConfigResponse
	body := map[string]int{"turn_limit": limit}
	err := c.put("/api/v1/config/turn-limit", body, &cfg)
	return &cfg, err
}

// --- Admin ---

// Login проверяет пароль оператора.
func (c *Client) Login() error {
	body := map[string]string{"password": c.adminPassword}
	return c.post("/api/v1/admin/login", body, nil)
}

// --- HTTP helpers ---

func (c *Client) get(path string, result any) error {
	return c.doData(http.MethodGet, path, nil, result)
}

func (c *Client) post(path string, body any, result any) error {
	return c.doData(http.MethodPost, path, body, result)
}

func (c *Client) put(path string, body any, result any) error {
	return c.doData(http.MethodPut, path, body, result)
}

func (c *Client) delete(path string) error {
	resp, err := c.do(http.MethodDelete, path, nil)
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	return c.checkError(resp)
}

func (c *Client) list(path string, result any) error {
	resp, err := c.do(http.MethodGet, path, nil)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if err := c.checkError(resp); err != nil {
		return err
	}

	var lr listResponse
	if err := json.NewDecoder(resp.Body).Decode(&lr); err != nil {
		return fmt.Errorf("failed to decode response: %w", err)
	}

	return json.Unmarshal(lr.Data, result)
}

func (c *Client) doData(method, path string, body any, result any) error {
	resp, err := c.do(method, path, body)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if err := c.checkError(resp); err != nil {
		return err
	}

	// 204 No Content
	if resp.StatusCode == http.StatusNoContent {
		return nil
	}

	var dr dataResponse
	if err := json.NewDecoder(resp.Body).Decode(&dr); err != nil {
		return fmt.Errorf("failed to decode response: %w", err)
	}

	if result != nil {
		return json.Unmarshal(dr.Data, result)
	}
	return nil
}

func (c *Client) do(method, path string, body any) (*http.Response, error) {
	var bodyReader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return nil, fmt.Errorf("failed to marshal request: %w", err)
		}
		bodyReader = bytes.NewReader(data)
	}

	req, err := http.NewRequest(method, c.baseURL+path, bodyReader)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if c.adminPassword != "" {
		req.Header.Set("Authorization", "Bearer "+c.adminPassword)
	}

	return c.httpClient.Do(req)
}

func (c *Client) checkError(resp *http.Response) error {
	if resp.StatusCode < 400 {
		return nil
	}

	apiErr := &APIError{Status: resp.StatusCode}

	var er errorResponse
	if err := json.NewDecoder(resp.Body).Decode(&er); err != nil {
		return apiErr
	}

	apiErr.Code = er.Error.Code
	apiErr.Message = er.Error.Message
	if er.Error.Field != "" {
		apiErr.Message += " (field " + strconv.Quote(er.Error.Field) + ")"
	}
	return apiErr
}
