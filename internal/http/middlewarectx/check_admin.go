package middlewarectx

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/render"

	"github.com/magabrotheeeer/notes-keeper/internal/http/response"
	"github.com/magabrotheeeer/notes-keeper/internal/models"
)

// AdminMiddleware пропускает дальше только пользователей с ролью admin.
// Ставится после JWTMiddleware: роль берётся из контекста запроса.
func AdminMiddleware(log *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			role, ok := r.Context().Value(Role).(string)
			if !ok || role == "" {
				log.Error("user role missing")
				w.WriteHeader(http.StatusUnauthorized)
				render.JSON(w, r, response.Error("Token missing or invalid"))
				return
			}

			if role != models.RoleAdmin {
				log.Error("access denied", slog.String("role", role))
				w.WriteHeader(http.StatusForbidden)
				render.JSON(w, r, response.Error("Unauthorized. Only the administrator can access this information."))
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}
