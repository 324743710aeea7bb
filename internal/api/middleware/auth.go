package middleware

import (
	"context"
	"errors"
	"net/http"

	"github.com/m04kA/SMC-FieldService/internal/api/handlers"
	"github.com/m04kA/SMC-FieldService/internal/service/session"
)

const (
	msgNotAuthenticated = "требуется вход в систему"
	msgSessionExpired   = "сессия истекла, войдите снова"
)

// Auth пропускает запрос только при действующей сессии
// ID пользователя кладется в контекст
func Auth(sessions SessionProvider) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			s, err := sessions.Current()
			if err != nil {
				msg := msgNotAuthenticated
				if errors.Is(err, session.ErrSessionExpired) {
					msg = msgSessionExpired
				}
				handlers.RespondUnauthorized(w, msg)
				return
			}

			ctx := context.WithValue(r.Context(), userIDKey, s.UserID)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// GetUserID возвращает ID пользователя, положенный Auth
func GetUserID(ctx context.Context) (int64, bool) {
	id, ok := ctx.Value(userIDKey).(int64)
	return id, ok
}
