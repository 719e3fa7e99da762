// Package response содержит вспомогательные типы и функции для формирования
// унифицированных JSON‑ответов HTTP‑обработчиков. Каждый ответ несёт флаг
// ошибки и сообщение; успешные ответы добавляют запрошенный ресурс.
package response

import (
	"fmt"
	"strings"

	"github.com/go-playground/validator"

	"github.com/magabrotheeeer/notes-keeper/internal/models"
)

// Response описывает стандартную структуру JSON‑ответа сервера.
// Поле Err — признак ошибки, Message — текст для пользователя.
// Остальные поля заполняются обработчиком, вернувшим ресурс.
type Response struct {
	Err         bool           `json:"error"`
	Message     string         `json:"message"`
	User        *models.User   `json:"user,omitempty"`
	Note        *models.Note   `json:"note,omitempty"`
	Notes       []*models.Note `json:"notes,omitempty"`
	Users       []*models.User `json:"users,omitempty"`
	Email       string         `json:"email,omitempty"`
	AccessToken string         `json:"accessToken,omitempty"`
}

// OK возвращает успешный Response с сообщением.
func OK(msg string) Response {
	return Response{Message: msg}
}

// Error возвращает Response с ошибкой и переданным сообщением.
func Error(msg string) Response {
	return Response{Err: true, Message: msg}
}

// ValidationError формирует Response с ошибкой на основе ошибок валидации.
// Каждое нарушение формируется в человеко‑читаемый текст, объединённый через запятую.
func ValidationError(errs validator.ValidationErrors) Response {
	var errsMsgs []string

	for _, err := range errs {
		switch err.ActualTag() {
		case "required":
			errsMsgs = append(errsMsgs, fmt.Sprintf("field %s is a required field", err.Field()))
		case "email":
			errsMsgs = append(errsMsgs, fmt.Sprintf("field %s must be a valid email", err.Field()))
		case "min":
			errsMsgs = append(errsMsgs, fmt.Sprintf("field %s is too short", err.Field()))
		default:
			errsMsgs = append(errsMsgs, fmt.Sprintf("field %s is not a valid", err.Field()))
		}
	}
	return Error(strings.Join(errsMsgs, ", "))
}
