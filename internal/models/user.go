// Package models содержит доменную модель пользователя системы,
// включающую данные учётной записи, хэш пароля и дату создания.
// Структуры используются в бизнес‑логике и при работе с хранилищем.
package models

import "time"

// Роли пользователя в системе.
const (
	RoleUser  = "user"
	RoleAdmin = "admin"
)

// User представляет зарегистрированного пользователя системы.
// Хэш пароля никогда не сериализуется в ответы API.
type User struct {
	UID          string    `json:"uid"`       // Уникальный идентификатор пользователя
	FullName     string    `json:"full_name"` // Полное имя пользователя
	Email        string    `json:"email"`     // Электронная почта (уникальная, логин)
	PasswordHash string    `json:"-"`         // Хэш пароля пользователя
	Role         string    `json:"role"`      // Роль пользователя, admin или user
	CreatedOn    time.Time `json:"created_on"`
}

// Identity минимальная проекция пользователя, извлекаемая из проверенного JWT.
// Используется для скоупинга всех операций по владельцу.
type Identity struct {
	UserUID string
	Email   string
	Role    string
}
