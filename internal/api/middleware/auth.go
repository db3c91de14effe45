package middleware

import (
	"context"
	"net/http"
	"strings"

	"github.com/google/uuid"

	"github.com/m04kA/SMC-SchedulingService/internal/api/handlers"
)

// OrganizationIDHeader заголовок, в котором gateway передает организацию запроса
const OrganizationIDHeader = "X-Organization-ID"

const (
	msgMissingOrganizationID = "отсутствует ID организации"
	msgInvalidOrganizationID = "некорректный ID организации"
)

type contextKey string

const organizationIDKey contextKey = "organization_id"

// Auth проверяет заголовок X-Organization-ID и кладет организацию в контекст.
// Проверка сессии или API-ключа выполняется до сервиса.
func Auth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		raw := strings.TrimSpace(r.Header.Get(OrganizationIDHeader))
		if raw == "" {
			handlers.RespondUnauthorized(w, msgMissingOrganizationID)
			return
		}

		organizationID, err := uuid.Parse(raw)
		if err != nil || organizationID == uuid.Nil {
			handlers.RespondUnauthorized(w, msgInvalidOrganizationID)
			return
		}

		next.ServeHTTP(w, r.WithContext(WithOrganizationID(r.Context(), organizationID)))
	})
}

// WithOrganizationID возвращает контекст с организацией
func WithOrganizationID(ctx context.Context, organizationID uuid.UUID) context.Context {
	return context.WithValue(ctx, organizationIDKey, organizationID)
}

// GetOrganizationID достает организацию, положенную Auth
func GetOrganizationID(ctx context.Context) (uuid.UUID, bool) {
	organizationID, ok := ctx.Value(organizationIDKey).(uuid.UUID)
	return organizationID, ok
}
