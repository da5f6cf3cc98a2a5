package middleware

import (
	"context"
	"net/http"

	"github.com/taimeline/taimeline-service/internal/api/handlers"
)

type contextKey string

const adminIDKey contextKey = "adminID"

// HeaderAdminID заголовок идентификации администратора
// Проверку подлинности выполняет API gateway перед этим сервисом
const HeaderAdminID = "X-Admin-ID"

// Auth проверяет наличие заголовка X-Admin-ID и кладет его в контекст
func Auth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		adminID := r.Header.Get(HeaderAdminID)
		if adminID == "" {
			handlers.RespondError(w, http.StatusUnauthorized, "отсутствует заголовок X-Admin-ID")
			return
		}

		ctx := context.WithValue(r.Context(), adminIDKey, adminID)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// AdminIDFromContext возвращает идентификатор администратора из контекста
func AdminIDFromContext(ctx context.Context) (string, bool) {
	adminID, ok := ctx.Value(adminIDKey).(string)
	return adminID, ok
}
