// Package profile реализует HTTP-обработчик выдачи профиля текущего пользователя.
package profile

import (
	"context"
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"

	"github.com/magabrotheeeer/notes-keeper/internal/http/middlewarectx"
	"github.com/magabrotheeeer/notes-keeper/internal/http/response"
	"github.com/magabrotheeeer/notes-keeper/internal/lib/sl"
	"github.com/magabrotheeeer/notes-keeper/internal/models"
	authservice "github.com/magabrotheeeer/notes-keeper/internal/services/auth"
)

// Service описывает интерфейс выдачи профиля.
type Service interface {
	GetProfile(ctx context.Context, userUID string) (*models.User, error)
}

type Handler struct {
	log     *slog.Logger
	service Service
}

func New(log *slog.Logger, service Service) *Handler {
	return &Handler{
		log:     log,
		service: service,
	}
}

func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.auth.profile"

	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	userUID, ok := r.Context().Value(middlewarectx.UserUID).(string)
	if !ok || userUID == "" {
		log.Error("user identification missing")
		w.WriteHeader(http.StatusUnauthorized)
		render.JSON(w, r, response.Error("unauthorized"))
		return
	}

	user, err := h.service.GetProfile(r.Context(), userUID)
	if err != nil {
		// Учётная запись могла быть удалена после выдачи токена
		if errors.Is(err, authservice.ErrUserNotFound) {
			log.Info("user no longer exists", slog.String("uid", userUID))
			w.WriteHeader(http.StatusUnauthorized)
			render.JSON(w, r, response.Error("unauthorized"))
			return
		}
		log.Error("failed to get profile", sl.Err(err))
		w.WriteHeader(http.StatusInternalServerError)
		render.JSON(w, r, response.Error("Internal Server Error"))
		return
	}

	log.Info("profile fetched", slog.String("uid", user.UID))
	resp := response.OK("")
	resp.User = user
	render.JSON(w, r, resp)
}
