// Package middleware содержит HTTP middleware: проверку администраторской
// сессии, логирование запросов, сжатие ответов и проверку доверенной подсети.
package middleware

import (
	"net/http"
	"strings"

	"github.com/ntkrnl64/krnl-go/internal/service"
	"go.uber.org/zap"
)

// AuthMiddleware проверяет сессионный токен администратора в заголовке
// Authorization. При включённом noTokenCheck проверка пропускается.
func AuthMiddleware(svc *service.Service, noTokenCheck bool, logger *zap.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if noTokenCheck {
				next.ServeHTTP(w, r)
				return
			}

			auth := r.Header.Get("Authorization")
			if !strings.HasPrefix(auth, "Bearer ") {
				writeUnauthorized(w)
				return
			}
			token := strings.TrimPrefix(auth, "Bearer ")
			if !svc.CheckSession(token) {
				logger.Warn("Rejected request with invalid session token",
					zap.String("method", r.Method),
					zap.String("uri", r.RequestURI))
				writeUnauthorized(w)
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}

// writeUnauthorized пишет стандартный JSON-ответ для неавторизованных запросов
func writeUnauthorized(w http.ResponseWriter) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusUnauthorized)
	_, _ = w.Write([]byte(`{"error":"Unauthorized"}`))
}
