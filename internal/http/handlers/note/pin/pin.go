// Package pin реализует HTTP-обработчик закрепления и снятия закрепления заметки.
//
// В отличие от частичного обновления, здесь is_pinned применяется безусловно,
// включая значение false.
package pin

import (
	"context"
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi"
	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"
	"github.com/go-playground/validator"

	"github.com/magabrotheeeer/notes-keeper/internal/http/middlewarectx"
	"github.com/magabrotheeeer/notes-keeper/internal/http/response"
	"github.com/magabrotheeeer/notes-keeper/internal/lib/sl"
	"github.com/magabrotheeeer/notes-keeper/internal/models"
	noteservice "github.com/magabrotheeeer/notes-keeper/internal/services/note"
)

// Request — входные данные для смены признака закрепления.
type Request struct {
	IsPinned *bool `json:"isPinned" validate:"required"`
}

type Handler struct {
	log      *slog.Logger
	service  Service
	validate *validator.Validate
}

type Service interface {
	SetPinned(ctx context.Context, userUID, id string, isPinned bool) (*models.Note, error)
}

func New(log *slog.Logger, service Service) *Handler {
	return &Handler{
		log:      log,
		service:  service,
		validate: validator.New(),
	}
}

func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.note.pin"

	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	var req Request
	if err := render.DecodeJSON(r.Body, &req); err != nil {
		log.Error("failed to decode request body", sl.Err(err))
		w.WriteHeader(http.StatusBadRequest)
		render.JSON(w, r, response.Error("invalid request body"))
		return
	}

	if err := h.validate.Struct(req); err != nil {
		log.Error("validation failed", sl.Err(err))
		w.WriteHeader(http.StatusBadRequest)
		render.JSON(w, r, response.ValidationError(err.(validator.ValidationErrors)))
		return
	}

	userUID, ok := r.Context().Value(middlewarectx.UserUID).(string)
	if !ok || userUID == "" {
		log.Error("user uid not found in context")
		w.WriteHeader(http.StatusUnauthorized)
		render.JSON(w, r, response.Error("unauthorized"))
		return
	}

	noteID := chi.URLParam(r, "noteId")

	note, err := h.service.SetPinned(r.Context(), userUID, noteID, *req.IsPinned)
	if err != nil {
		if errors.Is(err, noteservice.ErrNoteNotFound) {
			log.Info("note not found", slog.String("id", noteID))
			w.WriteHeader(http.StatusNotFound)
			render.JSON(w, r, response.Error("Note not found"))
			return
		}
		log.Error("failed to update pinned flag", sl.Err(err))
		w.WriteHeader(http.StatusInternalServerError)
		render.JSON(w, r, response.Error("Internal Server Error"))
		return
	}

	log.Info("success to update pinned flag", slog.String("id", noteID), slog.Bool("is_pinned", note.IsPinned))
	resp := response.OK("Note Updated successfully")
	resp.Note = note
	render.JSON(w, r, resp)
}
