// Package userremove реализует HTTP-обработчик удаления пользователя администратором.
//
// Заметки удалённого пользователя не удаляются: они остаются в хранилище
// недоступными, поскольку все запросы заметок фильтруются по владельцу.
package userremove

import (
	"context"
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi"
	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"

	"github.com/magabrotheeeer/notes-keeper/internal/http/response"
	"github.com/magabrotheeeer/notes-keeper/internal/lib/sl"
	adminservice "github.com/magabrotheeeer/notes-keeper/internal/services/admin"
)

type Handler struct {
	log     *slog.Logger
	service Service
}

type Service interface {
	RemoveUser(ctx context.Context, userUID string) error
}

func New(log *slog.Logger, service Service) *Handler {
	return &Handler{
		log:     log,
		service: service,
	}
}

func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.admin.userremove"

	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	userUID := chi.URLParam(r, "id")

	if err := h.service.RemoveUser(r.Context(), userUID); err != nil {
		if errors.Is(err, adminservice.ErrUserNotFound) {
			log.Info("user not found", slog.String("uid", userUID))
			w.WriteHeader(http.StatusNotFound)
			render.JSON(w, r, response.Error("User Not Found"))
			return
		}
		log.Error("failed to delete user", sl.Err(err))
		w.WriteHeader(http.StatusInternalServerError)
		render.JSON(w, r, response.Error("Error Delete User"))
		return
	}

	log.Info("user deleted", slog.String("uid", userUID))
	render.JSON(w, r, response.OK("User Deleted"))
}
