package app

import (
	_ "embed"
	"net/http"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

//go:embed interstitial.html
var interstitialPage []byte

// HandleRedirect обрабатывает GET-запросы на "/{id}".
// Без промежуточной страницы клиент сразу получает редирект,
// иначе отдаётся HTML-страница, которая сама запрашивает "/api/resolve/{id}".
func (a *App) HandleRedirect(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	target, interstitial, err := a.svc.RedirectTarget(id)
	if err != nil {
		a.handleServiceError(w, err)
		return
	}

	if !interstitial {
		http.Redirect(w, r, target, http.StatusFound)
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if _, err := w.Write(interstitialPage); err != nil {
		a.logger.Error("Failed to write interstitial page", zap.Error(err))
	}
}
