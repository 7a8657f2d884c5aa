// Package dealershipcrm собирает и запускает HTTP-приложение CRM:
// хранилище, кеш, миграции, сервисы и маршруты.
package dealershipcrm

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi"

	"github.com/autopuzzle/dealership-crm/internal/cache"
	"github.com/autopuzzle/dealership-crm/internal/config"
	"github.com/autopuzzle/dealership-crm/internal/lib/jwt"
	"github.com/autopuzzle/dealership-crm/internal/migrations"
	authservice "github.com/autopuzzle/dealership-crm/internal/services/auth"
	calendarservice "github.com/autopuzzle/dealership-crm/internal/services/calendar"
	meetingservice "github.com/autopuzzle/dealership-crm/internal/services/meeting"
	"github.com/autopuzzle/dealership-crm/internal/storage/repository"
)

type App struct {
	server *http.Server
	logger *slog.Logger
	db     *repository.Storage
	cache  *cache.Cache
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

	jwtMaker := jwt.NewJWTMaker(cfg.JWTSecretKey, cfg.TokenTTL)

	authService := authservice.NewAuthService(db, jwtMaker)
	meetingService := meetingservice.NewMeetingService(db, cacheRedis, logger)
	calendarService := calendarservice.NewCalendarService(db, cacheRedis, cfg.Meetings, logger)

	router := chi.NewRouter()
	RegisterRoutes(router, logger, jwtMaker, db,
		authService, meetingService, calendarService)

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
		cache:  cacheRedis,
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
		a.db.DB.Close()
		return err
	}
}
