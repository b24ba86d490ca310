// Package middleware содержит HTTP middleware дашборда: проверку сессии,
// логирование с идентификатором запроса, сжатие ответов и проверку доверенных подсетей.
package middleware

import (
	"errors"
	"net"
	"net/http"

	"go.uber.org/zap"
)

// ErrSubnetNotConfigured возвращается, если доверенная подсеть не задана
var ErrSubnetNotConfigured = errors.New("trusted subnet is not configured")

// IPInSubnet проверяет, входит ли адрес clientIP в подсеть trustedSubnet (CIDR)
func IPInSubnet(trustedSubnet, clientIP string) (bool, error) {
	if trustedSubnet == "" {
		return false, ErrSubnetNotConfigured
	}
	_, network, err := net.ParseCIDR(trustedSubnet)
	if err != nil {
		return false, err
	}
	ip := net.ParseIP(clientIP)
	if ip == nil {
		return false, nil
	}
	return network.Contains(ip), nil
}

// TrustedSubnetMiddleware создаёт middleware для проверки IP-адреса в доверенной подсети.
// Адрес клиента берётся из заголовка X-Real-IP.
func TrustedSubnetMiddleware(trustedSubnet string, logger *zap.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			clientIP := r.Header.Get("X-Real-IP")
			ok, err := IPInSubnet(trustedSubnet, clientIP)
			switch {
			case errors.Is(err, ErrSubnetNotConfigured):
				logger.Warn("Access denied: trusted_subnet is empty",
					zap.String("uri", r.RequestURI),
					zap.String("remote_addr", r.RemoteAddr))
				http.Error(w, "Access denied", http.StatusForbidden)
				return
			case err != nil:
				logger.Error("Invalid trusted_subnet CIDR",
					zap.String("trusted_subnet", trustedSubnet),
					zap.Error(err))
				http.Error(w, "Internal server error", http.StatusInternalServerError)
				return
			case !ok:
				logger.Warn("Access denied: IP not in trusted subnet",
					zap.String("uri", r.RequestURI),
					zap.String("client_ip", clientIP),
					zap.String("trusted_subnet", trustedSubnet),
					zap.String("remote_addr", r.RemoteAddr))
				http.Error(w, "Access denied", http.StatusForbidden)
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}
