// Package noteskeeper собирает приложение: хранилище, кеш, брокер событий,
// сервисы и HTTP-сервер с корректным завершением по сигналу.
package noteskeeper

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi"
	"github.com/streadway/amqp"

	"github.com/magabrotheeeer/notes-keeper/internal/cache"
	"github.com/magabrotheeeer/notes-keeper/internal/config"
	"github.com/magabrotheeeer/notes-keeper/internal/lib/jwt"
	"github.com/magabrotheeeer/notes-keeper/internal/lib/rabbitmq"
	"github.com/magabrotheeeer/notes-keeper/internal/migrations"
	adminservice "github.com/magabrotheeeer/notes-keeper/internal/services/admin"
	authservice "github.com/magabrotheeeer/notes-keeper/internal/services/auth"
	noteservice "github.com/magabrotheeeer/notes-keeper/internal/services/note"
	"github.com/magabrotheeeer/notes-keeper/internal/storage/repository"
)

type App struct {
	server *http.Server
	logger *slog.Logger
	db     *repository.Storage
	broker *amqp.Connection
}

func New(ctx context.Context, cfg *config.Config, logger *slog.Logger) (*App, error) {
	db, err := repository.New(cfg.StorageConnectionString)
	if err != nil {
		return nil, err
	}
	if err = migrations.Run(db.DB, "./migrations"); err != nil {
		return nil, err
	}

	cacheRedis, err := cache.InitServer(ctx, cfg.RedisConnection)
	if err != nil {
		return nil, err
	}

	broker, err := amqp.Dial(cfg.RabbitURL)
	if err != nil {
		return nil, err
	}
	channel, err := broker.Channel()
	if err != nil {
		return nil, err
	}
	if err = rabbitmq.DeclareEventQueue(channel, cfg.EventQueue); err != nil {
		return nil, err
	}
	publisher := rabbitmq.NewPublisher(channel, cfg.EventQueue)

	jwtMaker := jwt.NewJWTMaker(cfg.JWTSecretKey, cfg.TokenTTL)

	authSvc := authservice.NewAuthService(db, jwtMaker, publisher, cacheRedis, cfg.AdminEmail, logger)
	noteSvc := noteservice.NewNoteService(db, cacheRedis, logger)
	adminSvc := adminservice.NewAdminService(db, cacheRedis, logger)

	router := chi.NewRouter()
	RegisterRoutes(router, logger, jwtMaker, authSvc, noteSvc, adminSvc)

	srv := &http.Server{
		Addr:         cfg.AddressHTTP,
		Handler:      router,
		ReadTimeout:  cfg.TimeoutHTTP,
		WriteTimeout: cfg.TimeoutHTTP,
		IdleTimeout:  cfg.IdleTimeout,
	}

	return &App{
		server: srv,
		logger: logger,
		db:     db,
		broker: broker,
	}, nil
}

func (a *App) Run(ctx context.Context) error {
	errCh := make(chan error, 1)
	go func() {
		a.logger.Info("HTTP server starting on", slog.String("address", a.server.Addr))
		err := a.server.ListenAndServe()
		if errors.Is(err, http.ErrServerClosed) {
			errCh <- nil
		} else {
			errCh <- err
		}
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
		timeoutCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
		defer cancel()
		a.logger.Info("shutting down HTTP server gracefully")
		err := a.server.Shutdown(timeoutCtx)
		_ = a.broker.Close()
		_ = a.db.DB.Close()
		return err
	}
}
