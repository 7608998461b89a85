package middleware

import (
	"context"
	"net/http"
	"strconv"

	"github.com/m04kA/SMC-WellnessBooking/internal/api/handlers"
)

type contextKey string

const userIDKey contextKey = "userID"

const (
	// HeaderUserID заголовок с ID аутентифицированного пользователя
	// Проставляется API-шлюзом после проверки токена
	HeaderUserID = "X-User-ID"

	msgMissingUserID = "отсутствует ID пользователя"
	msgInvalidUserID = "некорректный ID пользователя"
)

// Auth извлекает ID пользователя из заголовка и кладет его в контекст
// Запросы без корректного заголовка отклоняются
func Auth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		raw := r.Header.Get(HeaderUserID)
		if raw == "" {
			handlers.RespondUnauthorized(w, msgMissingUserID)
			return
		}

		userID, err := strconv.ParseInt(raw, 10, 64)
		if err != nil || userID <= 0 {
			handlers.RespondUnauthorized(w, msgInvalidUserID)
			return
		}

		ctx := context.WithValue(r.Context(), userIDKey, userID)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// GetUserID возвращает ID пользователя из контекста запроса
func GetUserID(ctx context.Context) (int64, bool) {
	userID, ok := ctx.Value(userIDKey).(int64)
	return userID, ok
}
