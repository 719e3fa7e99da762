// Package search реализует HTTP-обработчик поиска заметок по подстроке.
//
// Поиск выполняется без ранжирования и токенизации: совпадением считается
// вхождение подстроки в заголовок или текст без учёта регистра.
package search

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"

	"github.com/magabrotheeeer/notes-keeper/internal/http/middlewarectx"
	"github.com/magabrotheeeer/notes-keeper/internal/http/response"
	"github.com/magabrotheeeer/notes-keeper/internal/lib/sl"
	"github.com/magabrotheeeer/notes-keeper/internal/models"
)

type Handler struct {
	log     *slog.Logger
	service Service
}

type Service interface {
	Search(ctx context.Context, userUID, query string) ([]*models.Note, error)
}

func New(log *slog.Logger, service Service) *Handler {
	return &Handler{
		log:     log,
		service: service,
	}
}

func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.note.search"

	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	query := r.URL.Query().Get("query")
	if query == "" {
		log.Info("empty search query")
		w.WriteHeader(http.StatusBadRequest)
		render.JSON(w, r, response.Error("Search query is required"))
		return
	}

	userUID, ok := r.Context().Value(middlewarectx.UserUID).(string)
	if !ok || userUID == "" {
		log.Error("user uid not found in context")
		w.WriteHeader(http.StatusUnauthorized)
		render.JSON(w, r, response.Error("unauthorized"))
		return
	}

	notes, err := h.service.Search(r.Context(), userUID, query)
	if err != nil {
		log.Error("failed to search notes", sl.Err(err))
		w.WriteHeader(http.StatusInternalServerError)
		render.JSON(w, r, response.Error("Internal Server Error"))
		return
	}

	log.Info("notes searched", slog.String("query", query), slog.Int("count", len(notes)))
	resp := response.OK("Notes matching the search query retrieved successfully")
	resp.Notes = notes
	render.JSON(w, r, resp)
}
