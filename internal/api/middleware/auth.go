package middleware

import (
	"errors"
	"log/slog"
	"net/http"
	"strings"
	"xyzbank/internal/config"

	"github.com/golang-jwt/jwt/v5"
)

var errUnexpectedSigningMethod = errors.New("unexpected signing method")

// AuthMiddleware requires an HS256 bearer token signed with the configured
// secret. It is a pass-through when auth is disabled.
func AuthMiddleware(cfg config.AuthConfig, logger *slog.Logger) func(http.Handler) http.Handler {
	if !cfg.Enabled {
		return func(next http.Handler) http.Handler {
			return next
		}
	}
	logger = logger.With("component", "AuthMiddleware")

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if !validateJWT(r, cfg.JWTSecret, logger) {
				w.Header().Set("Content-Type", "application/json")
				http.Error(w, `{"error":{"message":"Unauthorized"}}`, http.StatusUnauthorized)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

func validateJWT(r *http.Request, secret string, logger *slog.Logger) bool {
	authHeader := r.Header.Get("Authorization")
	if authHeader == "" {
		logger.WarnContext(r.Context(), "Missing Authorization header")
		return false
	}

	parts := strings.SplitN(authHeader, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "bearer") {
		logger.WarnContext(r.Context(), "Invalid Authorization header format")
		return false
	}

	token, err := jwt.Parse(parts[1], func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errUnexpectedSigningMethod
		}
		return []byte(secret), nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))

	if err != nil || !token.Valid {
		logger.WarnContext(r.Context(), "Invalid token", slog.Any("error", err))
		return false
	}

	logger.DebugContext(r.Context(), "Authenticated request")
	return true
}
