// Package update реализует HTTP-обработчик частичного обновления заметки.
package update

import (
	"context"
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi"
	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"

	"github.com/magabrotheeeer/notes-keeper/internal/http/middlewarectx"
	"github.com/magabrotheeeer/notes-keeper/internal/http/response"
	"github.com/magabrotheeeer/notes-keeper/internal/lib/sl"
	"github.com/magabrotheeeer/notes-keeper/internal/models"
	noteservice "github.com/magabrotheeeer/notes-keeper/internal/services/note"
)

type Handler struct {
	log     *slog.Logger
	service Service
}

type Service interface {
	Update(ctx context.Context, userUID, id string, req models.UpdateNoteRequest) (*models.Note, error)
}

func New(log *slog.Logger, service Service) *Handler {
	return &Handler{
		log:     log,
		service: service,
	}
}

func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.note.update"

	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	var req models.UpdateNoteRequest
	if err := render.DecodeJSON(r.Body, &req); err != nil {
		log.Error("failed to decode request body", sl.Err(err))
		w.WriteHeader(http.StatusBadRequest)
		render.JSON(w, r, response.Error("invalid request body"))
		return
	}
	log.Info("request body decoded")

	userUID, ok := r.Context().Value(middlewarectx.UserUID).(string)
	if !ok || userUID == "" {
		log.Error("user uid not found in context")
		w.WriteHeader(http.StatusUnauthorized)
		render.JSON(w, r, response.Error("unauthorized"))
		return
	}

	noteID := chi.URLParam(r, "noteId")

	note, err := h.service.Update(r.Context(), userUID, noteID, req)
	if err != nil {
		switch {
		case errors.Is(err, noteservice.ErrNoChanges):
			log.Info("no fields to update")
			w.WriteHeader(http.StatusBadRequest)
			render.JSON(w, r, response.Error("No changes provides"))
		case errors.Is(err, noteservice.ErrNoteNotFound):
			log.Info("note not found", slog.String("id", noteID))
			w.WriteHeader(http.StatusNotFound)
			render.JSON(w, r, response.Error("Note not found"))
		default:
			log.Error("failed to update note", sl.Err(err))
			w.WriteHeader(http.StatusInternalServerError)
			render.JSON(w, r, response.Error("Internal Server Error"))
		}
		return
	}

	log.Info("success to update note", slog.String("id", noteID))
	resp := response.OK("Note Updated successfully")
	resp.Note = note
	render.JSON(w, r, resp)
}
