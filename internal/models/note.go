// Package models содержит доменные структуры заметок.
package models

import "time"

// Note представляет заметку пользователя.
// Поле UserUID неизменяемо после создания: все запросы к хранилищу
// фильтруются одновременно по ID заметки и владельцу.
type Note struct {
	ID        string    `json:"id"`         // Уникальный идентификатор заметки
	Title     string    `json:"title"`      // Заголовок
	Content   string    `json:"content"`    // Текст заметки
	Tags      []string  `json:"tags"`       // Упорядоченный список тегов, может быть пустым
	IsPinned  bool      `json:"is_pinned"`  // Признак закрепления
	UserUID   string    `json:"user_uid"`   // Владелец заметки
	CreatedOn time.Time `json:"created_on"` // Дата создания
}

// CreateNoteRequest используется для приёма данных из JSON-запроса на создание заметки.
type CreateNoteRequest struct {
	Title   string   `json:"title" validate:"required"`   // Заголовок
	Content string   `json:"content" validate:"required"` // Текст заметки
	Tags    []string `json:"tags"`                        // Теги, необязательны
}

// UpdateNoteRequest используется для частичного обновления заметки.
// Пустое значение поля означает "поле не передано": очистить заголовок,
// текст или теги через этот запрос нельзя. IsPinned применяется только
// при значении true; снятие закрепления выполняется отдельной операцией.
type UpdateNoteRequest struct {
	Title    string   `json:"title"`
	Content  string   `json:"content"`
	Tags     []string `json:"tags"`
	IsPinned *bool    `json:"is_pinned"`
}
