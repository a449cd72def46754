package middleware

import (
	"context"
	"net/http"
	"strings"

	"github.com/m04kA/SMC-RentalService/internal/api/handlers"
)

// TenantHeader заголовок с идентификатором арендатора
const TenantHeader = "X-Tenant-ID"

const msgMissingTenant = "отсутствует ID арендатора"

type contextKey string

const tenantIDKey contextKey = "tenantID"

// Tenant кладет ID арендатора из заголовка X-Tenant-ID в контекст; без заголовка - 401
func Tenant(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		tenantID := strings.TrimSpace(r.Header.Get(TenantHeader))
		if tenantID == "" {
			handlers.RespondUnauthorized(w, msgMissingTenant)
			return
		}

		ctx := context.WithValue(r.Context(), tenantIDKey, tenantID)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// GetTenantID возвращает ID арендатора из контекста
func GetTenantID(ctx context.Context) (string, bool) {
	tenantID, ok := ctx.Value(tenantIDKey).(string)
	return tenantID, ok && tenantID != ""
}

// WithTenantID кладет ID арендатора в контекст (используется в тестах хендлеров)
func WithTenantID(ctx context.Context, tenantID string) context.Context {
	return context.WithValue(ctx, tenantIDKey, tenantID)
}
