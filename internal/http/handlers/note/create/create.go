// Package create реализует HTTP-обработчик для создания новых заметок пользователя.
//
// Handler принимает JSON-запрос с данными заметки, валидирует их, извлекает
// владельца из контекста, вызывает бизнес-логику создания заметки через сервис
// и возвращает созданную запись в JSON-формате.
package create

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"
	"github.com/go-playground/validator"

	"github.com/magabrotheeeer/notes-keeper/internal/http/middlewarectx"
	"github.com/magabrotheeeer/notes-keeper/internal/http/response"
	"github.com/magabrotheeeer/notes-keeper/internal/lib/sl"
	"github.com/magabrotheeeer/notes-keeper/internal/models"
)

// Handler управляет HTTP-запросами на создание новых заметок.
type Handler struct {
	log      *slog.Logger        // Логгер для записи информации и ошибок
	service  Service             // Сервис бизнес-логики для создания заметок
	validate *validator.Validate // Валидатор структуры входящих данных
}

// Service описывает интерфейс бизнес-логики создания заметки.
type Service interface {
	Create(ctx context.Context, userUID string, req models.CreateNoteRequest) (*models.Note, error)
}

// New создает новый Handler с переданными логгером и сервисом.
func New(log *slog.Logger, service Service) *Handler {
	return &Handler{
		log:      log,
		service:  service,
		validate: validator.New(),
	}
}

// ServeHTTP godoc
// @Summary Создать новую заметку
// @Description Создает заметку текущего пользователя. Возвращает созданную запись.
// @Tags Notes
// @Accept  json
// @Produce  json
// @Param request body models.CreateNoteRequest true "Данные новой заметки"
// @Success 200 {object} response.Response "Успешное создание заметки"
// @Failure 400 {object} response.Response "Некорректный JSON или отсутствующее поле"
// @Failure 401 {object} response.Response "Пользователь не авторизован"
// @Failure 500 {object} response.Response "Ошибка сервера при создании заметки"
// @Router /add-note [post]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.note.create"
	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	var req models.CreateNoteRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		log.Error("failed to decode request", sl.Err(err))
		w.WriteHeader(http.StatusBadRequest)
		render.JSON(w, r, response.Error("invalid request body"))
		return
	}
	log.Info("request body decoded")

	if err := h.validate.Struct(req); err != nil {
		log.Error("validation failed", sl.Err(err))
		w.WriteHeader(http.StatusBadRequest)
		render.JSON(w, r, response.ValidationError(err.(validator.ValidationErrors)))
		return
	}
	log.Info("all fields are validated")

	userUID, ok := r.Context().Value(middlewarectx.UserUID).(string)
	if !ok || userUID == "" {
		log.Error("user uid not found in context")
		w.WriteHeader(http.StatusUnauthorized)
		render.JSON(w, r, response.Error("unauthorized"))
		return
	}

	note, err := h.service.Create(r.Context(), userUID, req)
	if err != nil {
		log.Error("failed to create note", sl.Err(err))
		w.WriteHeader(http.StatusInternalServerError)
		render.JSON(w, r, response.Error("Internal Server Error"))
		return
	}

	log.Info("success to create note", slog.String("id", note.ID))
	resp := response.OK("Note added successfully")
	resp.Note = note
	render.JSON(w, r, resp)
}
