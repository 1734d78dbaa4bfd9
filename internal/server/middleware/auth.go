package middleware

import (
	"context"
	"log/slog"
	"net/http"
	"strings"

	"github.com/iudanet/taskkeeper/internal/server/handlers"
	"github.com/iudanet/taskkeeper/internal/server/token"
)

// AuthMiddleware создает middleware для проверки bearer токена.
// Принимаются только сессионные токены: reset-токены отклоняются,
// чтобы их нельзя было переиспользовать как сессию.
// Subject проверенного токена кладется в контекст запроса.
func AuthMiddleware(logger *slog.Logger, tokens *token.Service) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			// Извлекаем токен из заголовка Authorization
			authHeader := r.Header.Get("Authorization")
			if authHeader == "" {
				logger.Warn("missing Authorization header")
				unauthorized(w)
				return
			}

			// Ожидаем формат: "Bearer <token>"
			parts := strings.SplitN(authHeader, " ", 2)
			if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") || parts[1] == "" {
				logger.Warn("invalid Authorization header format")
				unauthorized(w)
				return
			}

			claims, err := tokens.VerifySession(parts[1])
			if err != nil {
				// Expired, malformed и wrong purpose наружу неразличимы
				logger.Warn("invalid access token", "error", err)
				unauthorized(w)
				return
			}

			ctx := context.WithValue(r.Context(), handlers.UserIDKey, claims.Subject)

			logger.Debug("user authenticated", "user_id", claims.Subject)

			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// unauthorized отправляет единый generic 401 ответ
func unauthorized(w http.ResponseWriter) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusUnauthorized)
	_, _ = w.Write([]byte(`{"error":"Unauthorized","message":"could not validate credentials"}`))
}
