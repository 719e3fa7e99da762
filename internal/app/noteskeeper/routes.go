// Package noteskeeper предоставляет маршруты приложения.
package noteskeeper

import (
	"log/slog"

	"github.com/go-chi/chi"
	"github.com/go-chi/chi/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	httpSwagger "github.com/swaggo/http-swagger"

	"github.com/magabrotheeeer/notes-keeper/internal/http/handlers/admin/userlist"
	"github.com/magabrotheeeer/notes-keeper/internal/http/handlers/admin/userremove"
	"github.com/magabrotheeeer/notes-keeper/internal/http/handlers/auth/login"
	"github.com/magabrotheeeer/notes-keeper/internal/http/handlers/auth/profile"
	"github.com/magabrotheeeer/notes-keeper/internal/http/handlers/auth/register"
	"github.com/magabrotheeeer/notes-keeper/internal/http/handlers/note/create"
	"github.com/magabrotheeeer/notes-keeper/internal/http/handlers/note/list"
	"github.com/magabrotheeeer/notes-keeper/internal/http/handlers/note/pin"
	"github.com/magabrotheeeer/notes-keeper/internal/http/handlers/note/remove"
	"github.com/magabrotheeeer/notes-keeper/internal/http/handlers/note/search"
	"github.com/magabrotheeeer/notes-keeper/internal/http/handlers/note/update"
	"github.com/magabrotheeeer/notes-keeper/internal/http/middlewarectx"
	adminservice "github.com/magabrotheeeer/notes-keeper/internal/services/admin"
	authservice "github.com/magabrotheeeer/notes-keeper/internal/services/auth"
	noteservice "github.com/magabrotheeeer/notes-keeper/internal/services/note"
)

// RegisterRoutes регистрирует все маршруты приложения.
func RegisterRoutes(r chi.Router, logger *slog.Logger, parser middlewarectx.TokenParser,
	authService *authservice.AuthService, noteService *noteservice.NoteService,
	adminService *adminservice.AdminService) {
	// Глобальные middleware
	r.Use(
		middleware.RequestID,
		middleware.Logger,
		middleware.Recoverer,
		middleware.URLFormat,
	)

	// Открытые конечные точки
	r.Post("/create-account", register.New(logger, authService).ServeHTTP)
	r.Post("/login", login.New(logger, authService).ServeHTTP)

	// Группа с JWT аутентификацией
	r.Group(func(r chi.Router) {
		r.Use(middlewarectx.JWTMiddleware(parser, logger))
		r.Use(middlewarectx.RateLimitMiddleware(logger, 10, 20))
		r.Get("/get-user", profile.New(logger, authService).ServeHTTP)
		r.Post("/add-note", create.New(logger, noteService).ServeHTTP)
		r.Get("/get-all-notes", list.New(logger, noteService).ServeHTTP)
		r.Put("/edit-note/{noteId}", update.New(logger, noteService).ServeHTTP)
		r.Put("/update-note-pinned/{noteId}", pin.New(logger, noteService).ServeHTTP)
		r.Delete("/delete-note/{noteId}", remove.New(logger, noteService).ServeHTTP)
		r.Get("/search-notes", search.New(logger, noteService).ServeHTTP)
	})

	// Группа администратора
	r.Group(func(r chi.Router) {
		r.Use(middlewarectx.JWTMiddleware(parser, logger))
		r.Use(middlewarectx.AdminMiddleware(logger))
		r.Get("/users", userlist.New(logger, adminService).ServeHTTP)
		r.Delete("/delete-user/{id}", userremove.New(logger, adminService).ServeHTTP)
	})

	r.Handle("/metrics", promhttp.Handler())
	// Swagger docs endpoint
	r.Get("/docs/*", httpSwagger.WrapHandler)
}
