package middlewarectx

import (
	"log/slog"
	"net/http"
	"slices"

	"github.com/go-chi/render"

	"github.com/autopuzzle/dealership-crm/internal/http/response"
)

// RequireRoleMiddleware создает middleware, пропускающий только пользователей
// с одной из перечисленных ролей. Клиенты видят календарь встреч в урезанном
// виде через публичные ручки, закрытые ручки требуют роль admin или expert.
func RequireRoleMiddleware(log *slog.Logger, roles ...string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			role, ok := r.Context().Value(Role).(string)
			if !ok || role == "" {
				log.Error("user role missing")
				w.WriteHeader(http.StatusUnauthorized)
				render.JSON(w, r, response.Error("user role missing"))
				return
			}

			if !slices.Contains(roles, role) {
				log.Error("access denied for role", slog.String("role", role))
				w.WriteHeader(http.StatusForbidden)
				render.JSON(w, r, response.Error("access denied"))
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}
