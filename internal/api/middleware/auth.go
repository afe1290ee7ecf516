package middleware

import (
	"context"
	"net/http"
	"strconv"

	"github.com/m04kA/SMC-FieldBookingService/internal/api/handlers"
)

const (
	HeaderUserID   = "X-User-ID"
	HeaderTenantID = "X-Tenant-ID"
)

const (
	msgMissingUserID   = "отсутствует или некорректен заголовок X-User-ID"
	msgMissingTenantID = "отсутствует или некорректен заголовок X-Tenant-ID"
)

type contextKey string

const (
	userIDKey    contextKey = "user_id"
	tenantIDKey  contextKey = "tenant_id"
	requestIDKey contextKey = "request_id"
)

// Auth достаёт actor и тенанта из заголовков X-User-ID и X-Tenant-ID.
// Аутентификация выполняется выше по цепочке (gateway), здесь только разбор.
func Auth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		userID, err := parsePositiveID(r.Header.Get(HeaderUserID))
		if err != nil {
			handlers.RespondUnauthorized(w, msgMissingUserID)
			return
		}
		tenantID, err := parsePositiveID(r.Header.Get(HeaderTenantID))
		if err != nil {
			handlers.RespondUnauthorized(w, msgMissingTenantID)
			return
		}

		ctx := WithIdentity(r.Context(), userID, tenantID)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// WithIdentity кладёт actor и тенанта в контекст
func WithIdentity(ctx context.Context, userID, tenantID int64) context.Context {
	ctx = context.WithValue(ctx, userIDKey, userID)
	return context.WithValue(ctx, tenantIDKey, tenantID)
}

// GetUserID извлекает user ID из контекста
func GetUserID(ctx context.Context) (int64, bool) {
	userID, ok := ctx.Value(userIDKey).(int64)
	return userID, ok
}

// GetTenantID извлекает tenant ID из контекста
func GetTenantID(ctx context.Context) (int64, bool) {
	tenantID, ok := ctx.Value(tenantIDKey).(int64)
	return tenantID, ok
}

func parsePositiveID(raw string) (int64, error) {
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		return 0, err
	}
	if id <= 0 {
		return 0, strconv.ErrRange
	}
	return id, nil
}
