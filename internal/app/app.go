// Package app содержит HTTP-обработчики сервиса коротких ссылок
package app

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/ntkrnl64/krnl-go/internal/models"
	"github.com/ntkrnl64/krnl-go/internal/service"
	"go.uber.org/zap"
)

// App содержит хендлеры и зависимости
type App struct {
	svc          *service.Service
	noTokenCheck bool
	logger       *zap.Logger
}

// NewApp создаёт новое приложение
func NewApp(svc *service.Service, noTokenCheck bool, logger *zap.Logger) *App {
	return &App{svc: svc, noTokenCheck: noTokenCheck, logger: logger}
}

// HandleStatus обрабатывает GET-запросы на "/api/status"
func (a *App) HandleStatus(w http.ResponseWriter, r *http.Request) {
	setup, err := a.svc.IsSetup()
	if err != nil {
		a.handleServiceError(w, err)
		return
	}
	a.writeJSONResponse(w, http.StatusOK, models.StatusResponse{
		Setup:        setup || a.noTokenCheck,
		NoTokenCheck: a.noTokenCheck,
	})
}

// HandleSetup обрабатывает POST-запросы на "/api/setup"
func (a *App) HandleSetup(w http.ResponseWriter, r *http.Request) {
	var req models.AuthRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		a.writeError(w, http.StatusBadRequest, "Invalid JSON")
		return
	}
	if err := a.svc.Setup(req.Password); err != nil {
		a.handleServiceError(w, err)
		return
	}
	a.writeJSONResponse(w, http.StatusOK, map[string]bool{"ok": true})
}

// HandleAuth обрабатывает POST-запросы на "/api/auth"
func (a *App) HandleAuth(w http.ResponseWriter, r *http.Request) {
	var req models.AuthRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		a.writeError(w, http.StatusBadRequest, "Invalid JSON")
		return
	}
	token, err := a.svc.Authenticate(req.Password)
	if err != nil {
		a.handleServiceError(w, err)
		return
	}
	a.writeJSONResponse(w, http.StatusOK, models.AuthResponse{Token: token})
}

// HandleLogout обрабатывает POST-запросы на "/api/logout"
func (a *App) HandleLogout(w http.ResponseWriter, r *http.Request) {
	auth := r.Header.Get("Authorization")
	if strings.HasPrefix(auth, "Bearer ") {
		if err := a.svc.Logout(strings.TrimPrefix(auth, "Bearer ")); err != nil {
			a.handleServiceError(w, err)
			return
		}
	}
	a.writeJSONResponse(w, http.StatusOK, map[string]bool{"ok": true})
}

// HandlePassword обрабатывает POST-запросы на "/api/password"
func (a *App) HandlePassword(w http.ResponseWriter, r *http.Request) {
	var req models.PasswordChangeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		a.writeError(w, http.StatusBadRequest, "Invalid JSON")
		return
	}
	if err := a.svc.ChangePassword(req.CurrentPassword, req.NewPassword); err != nil {
		if errors.Is(err, service.ErrWrongPassword) {
			a.writeError(w, http.StatusUnauthorized, "Current password is incorrect")
			return
		}
		a.handleServiceError(w, err)
		return
	}
	a.writeJSONResponse(w, http.StatusOK, map[string]bool{"ok": true})
}

// HandleResolve обрабатывает GET-запросы на "/api/resolve/{id}".
// Публичный маршрут: его использует промежуточная страница.
func (a *App) HandleResolve(w http.ResponseWriter, r *http.Request) {
	resolved, err := a.svc.ResolvePublic(chi.URLParam(r, "id"))
	if err != nil {
		a.handleServiceError(w, err)
		return
	}
	a.writeJSONResponse(w, http.StatusOK, resolved)
}

// HandleListLinks обрабатывает GET-запросы на "/api/links"
func (a *App) HandleListLinks(w http.ResponseWriter, r *http.Request) {
	links, err := a.svc.List()
	if err != nil {
		a.handleServiceError(w, err)
		return
	}
	a.writeJSONResponse(w, http.StatusOK, links)
}

// HandleCreateLink обрабатывает POST-запросы на "/api/links"
func (a *App) HandleCreateLink(w http.ResponseWriter, r *http.Request) {
	var payload models.LinkPayload
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		a.writeError(w, http.StatusBadRequest, "Invalid JSON")
		return
	}
	link, err := a.svc.Create(payload)
	if err != nil {
		a.handleServiceError(w, err)
		return
	}
	a.writeJSONResponse(w, http.StatusCreated, link)
}

// HandleGetLink обрабатывает GET-запросы на "/api/links/{id}"
func (a *App) HandleGetLink(w http.ResponseWriter, r *http.Request) {
	link, err := a.svc.Get(chi.URLParam(r, "id"))
	if err != nil {
		a.handleServiceError(w, err)
		return
	}
	a.writeJSONResponse(w, http.StatusOK, link)
}

// HandleUpdateLink обрабатывает PUT-запросы на "/api/links/{id}"
func (a *App) HandleUpdateLink(w http.ResponseWriter, r *http.Request) {
	var payload models.LinkPayload
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		a.writeError(w, http.StatusBadRequest, "Invalid JSON")
		return
	}
	link, err := a.svc.Update(chi.URLParam(r, "id"), payload)
	if err != nil {
		a.handleServiceError(w, err)
		return
	}
	a.writeJSONResponse(w, http.StatusOK, link)
}

// HandleDeleteLink обрабатывает DELETE-запросы на "/api/links/{id}"
func (a *App) HandleDeleteLink(w http.ResponseWriter, r *http.Request) {
	if err := a.svc.Delete(chi.URLParam(r, "id")); err != nil {
		a.handleServiceError(w, err)
		return
	}
	a.writeJSONResponse(w, http.StatusOK, map[string]bool{"ok": true})
}

// HandleAddAlias обрабатывает POST-запросы на "/api/links/{id}/aliases"
func (a *App) HandleAddAlias(w http.ResponseWriter, r *http.Request) {
	var req models.AliasRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		a.writeError(w, http.StatusBadRequest, "Invalid JSON")
		return
	}
	link, err := a.svc.AddAlias(chi.URLParam(r, "id"), req.Alias)
	if err != nil {
		a.handleServiceError(w, err)
		return
	}
	a.writeJSONResponse(w, http.StatusOK, link)
}

// HandleRemoveAlias обрабатывает DELETE-запросы на "/api/links/{id}/aliases/{aliasId}"
func (a *App) HandleRemoveAlias(w http.ResponseWriter, r *http.Request) {
	link, err := a.svc.RemoveAlias(chi.URLParam(r, "id"), chi.URLParam(r, "aliasId"))
	if err != nil {
		a.handleServiceError(w, err)
		return
	}
	a.writeJSONResponse(w, http.StatusOK, link)
}

// HandleMerge обрабатывает POST-запросы на "/api/merge".
// Пустое или некорректное тело означает объединение по всему хранилищу.
func (a *App) HandleMerge(w http.ResponseWriter, r *http.Request) {
	var req models.MergeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		req.IDs = nil
	}
	merged, err := a.svc.Merge(req.IDs)
	if err != nil {
		a.handleServiceError(w, err)
		return
	}
	a.writeJSONResponse(w, http.StatusOK, models.MergeResponse{Merged: merged})
}

// HandleGetConfig обрабатывает GET-запросы на "/api/config"
func (a *App) HandleGetConfig(w http.ResponseWriter, r *http.Request) {
	cfg, err := a.svc.GetConfig()
	if err != nil {
		a.handleServiceError(w, err)
		return
	}
	a.writeJSONResponse(w, http.StatusOK, cfg)
}

// HandleUpdateConfig обрабатывает PUT-запросы на "/api/config"
func (a *App) HandleUpdateConfig(w http.ResponseWriter, r *http.Request) {
	var payload models.ConfigPayload
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		a.writeError(w, http.StatusBadRequest, "Invalid JSON")
		return
	}
	cfg, err := a.svc.UpdateConfig(payload)
	if err != nil {
		a.handleServiceError(w, err)
		return
	}
	a.writeJSONResponse(w, http.StatusOK, cfg)
}

// HandleStats обрабатывает GET-запросы на "/api/internal/stats"
func (a *App) HandleStats(w http.ResponseWriter, r *http.Request) {
	links, aliases, err := a.svc.Stats()
	if err != nil {
		a.handleServiceError(w, err)
		return
	}
	a.writeJSONResponse(w, http.StatusOK, models.StatsResponse{Links: links, Aliases: aliases})
}

// writeJSONResponse пишет JSON-ответ с проверкой ошибок
func (a *App) writeJSONResponse(w http.ResponseWriter, status int, v interface{}) {
	data, err := json.Marshal(v)
	if err != nil {
		http.Error(w, "Failed to encode JSON", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if _, err := w.Write(data); err != nil {
		a.logger.Error("Failed to write response", zap.Error(err))
	}
}

// writeError пишет JSON-ошибку с заданным статусом
func (a *App) writeError(w http.ResponseWriter, status int, msg string) {
	a.writeJSONResponse(w, status, map[string]string{"error": msg})
}

// handleServiceError подбирает HTTP-статус для ошибки бизнес-логики
func (a *App) handleServiceError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, service.ErrLinkNotFound):
		a.writeError(w, http.StatusNotFound, "Not found")
	case errors.Is(err, service.ErrIDExists):
		a.writeError(w, http.StatusConflict, err.Error())
	case errors.Is(err, service.ErrInvalidInput),
		errors.Is(err, service.ErrInvalidID),
		errors.Is(err, service.ErrAliasTarget),
		errors.Is(err, service.ErrAlreadySetup),
		errors.Is(err, service.ErrNotConfigured),
		errors.Is(err, service.ErrWeakPassword):
		a.writeError(w, http.StatusBadRequest, err.Error())
	case errors.Is(err, service.ErrWrongPassword):
		a.writeError(w, http.StatusUnauthorized, err.Error())
	default:
		a.logger.Error("Unexpected error", zap.Error(err))
		a.writeError(w, http.StatusInternalServerError, "Internal server error")
	}
}
