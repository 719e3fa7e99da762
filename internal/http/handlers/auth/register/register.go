// Package register реализует HTTP-обработчик регистрации учётной записи.
//
// Повторная регистрация существующего email — ожидаемое бизнес-событие:
// ответ уходит со статусом 200 и флагом error в теле, а не транспортной ошибкой.
package register

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"
	"github.com/go-playground/validator"

	"github.com/magabrotheeeer/notes-keeper/internal/http/response"
	"github.com/magabrotheeeer/notes-keeper/internal/lib/sl"
	"github.com/magabrotheeeer/notes-keeper/internal/models"
	authservice "github.com/magabrotheeeer/notes-keeper/internal/services/auth"
)

// Request — входные данные для регистрации
type Request struct {
	FullName string `json:"fullName" validate:"required"`
	Email    string `json:"email" validate:"required"`
	Password string `json:"password" validate:"required"`
}

// Service описывает интерфейс бизнес-логики регистрации.
type Service interface {
	Register(ctx context.Context, fullName, email, password string) (*models.User, string, error)
}

type Handler struct {
	log      *slog.Logger
	service  Service
	validate *validator.Validate
}

func New(log *slog.Logger, service Service) *Handler {
	return &Handler{
		log:      log,
		service:  service,
		validate: validator.New(),
	}
}

// ServeHTTP godoc
// @Summary Регистрация пользователя
// @Description Создает учётную запись и возвращает пользователя с токеном доступа.
// @Tags Auth
// @Accept  json
// @Produce  json
// @Param request body Request true "Данные новой учётной записи"
// @Success 200 {object} response.Response "Успешная регистрация либо мягкий отказ при дубликате"
// @Failure 400 {object} response.Response "Некорректный JSON или отсутствующее поле"
// @Failure 500 {object} response.Response "Внутренняя ошибка сервера"
// @Router /create-account [post]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.auth.register"

	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	var req Request
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		log.Error("failed to decode request body", sl.Err(err))
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

	user, token, err := h.service.Register(r.Context(), req.FullName, req.Email, req.Password)
	if err != nil {
		if errors.Is(err, authservice.ErrUserExists) {
			log.Info("user already exists", slog.String("email", req.Email))
			render.JSON(w, r, response.Error("User already exist"))
			return
		}
		log.Error("registration failed", sl.Err(err))
		w.WriteHeader(http.StatusInternalServerError)
		render.JSON(w, r, response.Error("Internal Server Error"))
		return
	}

	log.Info("user registered", slog.String("uid", user.UID))
	resp := response.OK("Registration Successful")
	resp.User = user
	resp.AccessToken = token
	render.JSON(w, r, resp)
}
