package middleware

import (
	"net"
	"net/http"

	"go.uber.org/zap"
)

// TrustedSubnetMiddleware создаёт middleware для проверки IP-адреса клиента
// по заголовку X-Real-IP. Пустая подсеть запрещает доступ полностью.
func TrustedSubnetMiddleware(trustedSubnet string, logger *zap.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if trustedSubnet == "" {
				http.Error(w, "Access denied", http.StatusForbidden)
				return
			}

			clientIP := r.Header.Get("X-Real-IP")
			ip := net.ParseIP(clientIP)
			if ip == nil {
				logger.Warn("Access denied: missing or invalid X-Real-IP header",
					zap.String("client_ip", clientIP),
					zap.String("remote_addr", r.RemoteAddr))
				http.Error(w, "Access denied", http.StatusForbidden)
				return
			}

			_, subnet, err := net.ParseCIDR(trustedSubnet)
			if err != nil {
				logger.Error("Invalid trusted subnet configuration",
					zap.String("subnet", trustedSubnet), zap.Error(err))
				http.Error(w, "Internal server error", http.StatusInternalServerError)
				return
			}
			if !subnet.Contains(ip) {
				logger.Warn("Access denied from untrusted IP", zap.String("ip", clientIP))
				http.Error(w, "Access denied", http.StatusForbidden)
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}
