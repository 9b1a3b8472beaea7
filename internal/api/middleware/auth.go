package middleware

import (
	"context"
	"net/http"
	"strconv"

	"github.com/m04kA/SMC-SalonBookingService/internal/api/handlers"
)

// UserIDHeader заголовок с ID пользователя, проставляемый API gateway
const UserIDHeader = "X-User-ID"

type contextKey string

const userIDKey contextKey = "user_id"

// Auth извлекает ID пользователя из заголовка и кладет его в контекст
// Запросы без корректного заголовка отклоняются с 401
func Auth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		raw := r.Header.Get(UserIDHeader)
		if raw == "" {
			handlers.RespondUnauthorized(w, "отсутствует заголовок "+UserIDHeader)
			return
		}

		userID, err := strconv.ParseInt(raw, 10, 64)
		if err != nil || userID <= 0 {
			handlers.RespondUnauthorized(w, "некорректный заголовок "+UserIDHeader)
			return
		}

		next.ServeHTTP(w, r.WithContext(WithUserID(r.Context(), userID)))
	})
}

// WithUserID возвращает контекст с ID пользователя
func WithUserID(ctx context.Context, userID int64) context.Context {
	return context.WithValue(ctx, userIDKey, userID)
}

// GetUserID возвращает ID пользователя из контекста
func GetUserID(ctx context.Context) (int64, bool) {
	userID, ok := ctx.Value(userIDKey).(int64)
	return userID, ok
}
