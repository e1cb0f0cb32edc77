package api

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strings"

	"golang.org/x/crypto/bcrypt"
)

// HeaderAdminPassword — заголовок с паролем оператора.
const HeaderAdminPassword = "X-Admin-Password"

// AdminPasswordInitializer записывает хеш пароля, если он ещё не задан.
type AdminPasswordInitializer interface {
	InitAdminPasswordHash(ctx context.Context, hash string) (bool, error)
}

// BootstrapAdminPassword задаёт пароль оператора при первом запуске.
// Уже заданный пароль не перезаписывается.
func BootstrapAdminPassword(ctx context.Context, store AdminPasswordInitializer, password string, logger *slog.Logger) error {
	if password == "" {
		return nil
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("hash admin password: %w", err)
	}

	written, err := store.InitAdminPasswordHash(ctx, string(hash))
	if err != nil {
		return err
	}

	if written {
		logger.Info("admin password initialized")
	} else {
		logger.Debug("admin password already set, bootstrap skipped")
	}
	return nil
}

// adminPassword извлекает пароль из X-Admin-Password или Authorization: Bearer.
func adminPassword(r *http.Request) string {
	if v := r.Header.Get(HeaderAdminPassword); v != "" {
		return v
	}
	if token, ok := strings.CutPrefix(r.Header.Get("Authorization"), "Bearer "); ok {
		return strings.TrimSpace(token)
	}
	return ""
}

// checkAdmin сверяет пароль с bcrypt-хешем из конфигурации.
func (h *Handler) checkAdmin(ctx context.Context, password string) (bool, error) {
	if password == "" {
		return false, nil
	}

	hash, err := h.configs.AdminPasswordHash(ctx)
	if err != nil {
		return false, fmt.Errorf("load admin password: %w", err)
	}
	if hash == "" {
		return false, nil
	}

	err = bcrypt.CompareHashAndPassword([]byte(hash), []byte(password))
	if errors.Is(err, bcrypt.ErrMismatchedHashAndPassword) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("compare admin password: %w", err)
	}
	return true, nil
}

// RequireAdmin пропускает запрос только с верным паролем оператора.
func (h *Handler) RequireAdmin(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ok, err := h.checkAdmin(r.Context(), adminPassword(r))
		if err != nil {
			InternalError(w, h.logger, err)
			return
		}
		if !ok {
			Unauthorized(w, "admin password required")
			return
		}

		next.ServeHTTP(w, r)
	})
}

// Login проверяет пароль оператора.
// POST /api/v1/admin/login
func (h *Handler) Login(w http.ResponseWriter, r *http.Request) {
	var req LoginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		BadRequest(w, "invalid request body")
		return
	}

	ok, err := h.checkAdmin(r.Context(), req.Password)
	if err != nil {
		InternalError(w, h.logger, err)
		return
	}
	if !ok {
		h.logger.Warn("admin login failed", "remote_addr", r.RemoteAddr)
		Unauthorized(w, "invalid password")
		return
	}

	NoContent(w)
}
