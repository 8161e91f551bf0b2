package middleware

import (
	"context"
	"net/http"
	"strconv"
	"strings"

	"github.com/m04kA/SMC-WorkshopBooking/internal/api/handlers"
)

// Заголовки, которые выставляет шлюз аутентификации
const (
	HeaderUserID    = "X-User-ID"
	HeaderStaffRole = "X-Staff-Role"
)

const msgMissingUserID = "отсутствует или некорректен заголовок X-User-ID"

type contextKey string

const (
	userIDKey    contextKey = "user_id"
	staffRoleKey contextKey = "staff_role"
)

// Auth требует X-User-ID и переносит идентичность вызывающего в контекст.
// Токены проверяет шлюз, сервис доверяет заголовкам.
func Auth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		userID, err := strconv.ParseInt(r.Header.Get(HeaderUserID), 10, 64)
		if err != nil || userID <= 0 {
			handlers.RespondUnauthorized(w, msgMissingUserID)
			return
		}

		ctx := context.WithValue(r.Context(), userIDKey, userID)
		if role := strings.TrimSpace(r.Header.Get(HeaderStaffRole)); role != "" {
			ctx = context.WithValue(ctx, staffRoleKey, role)
		}

		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// OptionalStaff переносит X-Staff-Role в контекст, не требуя аутентификации
func OptionalStaff(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if role := strings.TrimSpace(r.Header.Get(HeaderStaffRole)); role != "" {
			r = r.WithContext(context.WithValue(r.Context(), staffRoleKey, role))
		}
		next.ServeHTTP(w, r)
	})
}

// GetUserID возвращает ID пользователя из контекста
func GetUserID(ctx context.Context) (int64, bool) {
	userID, ok := ctx.Value(userIDKey).(int64)
	return userID, ok
}

// GetStaffRole возвращает роль сотрудника из контекста
func GetStaffRole(ctx context.Context) (string, bool) {
	role, ok := ctx.Value(staffRoleKey).(string)
	return role, ok
}

// IsPrivileged true, если запрос выполняет сотрудник дилера
func IsPrivileged(ctx context.Context) bool {
	_, ok := GetStaffRole(ctx)
	return ok
}
