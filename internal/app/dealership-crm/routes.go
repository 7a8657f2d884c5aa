// Package dealershipcrm предоставляет маршруты для основного приложения.
package dealershipcrm

import (
	"log/slog"

	"github.com/go-chi/chi"
	"github.com/go-chi/chi/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	httpSwagger "github.com/swaggo/http-swagger"

	"github.com/autopuzzle/dealership-crm/internal/http/handlers/auth/login"
	"github.com/autopuzzle/dealership-crm/internal/http/handlers/auth/register"
	"github.com/autopuzzle/dealership-crm/internal/http/handlers/calendar/datemap"
	"github.com/autopuzzle/dealership-crm/internal/http/handlers/calendar/view"
	"github.com/autopuzzle/dealership-crm/internal/http/handlers/calendar/weekly"
	"github.com/autopuzzle/dealership-crm/internal/http/handlers/health"
	"github.com/autopuzzle/dealership-crm/internal/http/handlers/inquiry/schedule"
	"github.com/autopuzzle/dealership-crm/internal/http/handlers/meeting/create"
	"github.com/autopuzzle/dealership-crm/internal/http/handlers/meeting/list"
	"github.com/autopuzzle/dealership-crm/internal/http/handlers/meeting/read"
	"github.com/autopuzzle/dealership-crm/internal/http/handlers/meeting/remove"
	"github.com/autopuzzle/dealership-crm/internal/http/handlers/meeting/update"
	"github.com/autopuzzle/dealership-crm/internal/http/middlewarectx"
	"github.com/autopuzzle/dealership-crm/internal/lib/jwt"
	"github.com/autopuzzle/dealership-crm/internal/models"
	authservice "github.com/autopuzzle/dealership-crm/internal/services/auth"
	calendarservice "github.com/autopuzzle/dealership-crm/internal/services/calendar"
	meetingservice "github.com/autopuzzle/dealership-crm/internal/services/meeting"
	"github.com/autopuzzle/dealership-crm/internal/storage/repository"
)

// RegisterRoutes регистрирует все маршруты приложения.
func RegisterRoutes(r chi.Router, logger *slog.Logger, jwtMaker jwt.Maker, db *repository.Storage,
	authService *authservice.AuthService,
	meetingService *meetingservice.MeetingService,
	calendarService *calendarservice.CalendarService) {
	// Глобальные middleware
	r.Use(
		middleware.RequestID,
		middleware.Logger,
		middleware.Recoverer,
		middleware.URLFormat,
	)

	r.Route("/api/v1", func(r chi.Router) {
		// Открытые конечные точки
		r.Post("/register", register.New(logger, authService).ServeHTTP)
		r.Post("/login", login.New(logger, authService).ServeHTTP)

		// Группа с JWT аутентификацией: календарь и встречи доступны
		// только администраторам и экспертам
		r.Group(func(r chi.Router) {
			r.Use(middlewarectx.JWTMiddleware(jwtMaker, logger))
			r.Use(middlewarectx.RateLimitMiddleware(logger))
			r.Use(middlewarectx.RequireRoleMiddleware(logger, models.RoleAdmin, models.RoleExpert))

			r.Get("/calendar", view.New(logger, calendarService, db).ServeHTTP)
			r.Get("/calendar/weekly", weekly.New(logger, calendarService, db).ServeHTTP)
			r.Get("/calendar/datemap", datemap.New(logger, calendarService).ServeHTTP)

			r.Post("/meetings", create.New(logger, meetingService).ServeHTTP)
			r.Get("/meetings", list.New(logger, meetingService).ServeHTTP)
			r.Get("/meetings/{id}", read.New(logger, meetingService).ServeHTTP)
			r.Put("/meetings/{id}", update.New(logger, meetingService).ServeHTTP)

			r.Post("/inquiries/{type}/{id}/schedule", schedule.New(logger, meetingService).ServeHTTP)

			// Удаление встреч доступно только администраторам
			r.Group(func(r chi.Router) {
				r.Use(middlewarectx.RequireRoleMiddleware(logger, models.RoleAdmin))
				r.Delete("/meetings/{id}", remove.New(logger, meetingService).ServeHTTP)
			})
		})
	})

	r.Get("/health", health.New(logger, db).ServeHTTP)
	r.Handle("/metrics", promhttp.Handler())
	// Swagger docs endpoint
	r.Get("/docs/*", httpSwagger.WrapHandler)
}
