// Package view реализует HTTP-обработчик сводного календаря встреч.
//
// Handler собирает встречи из прямых записей и заявок (наличные и рассрочка),
// сортирует их, группирует по дням и дополняет статистикой. Видимость
// контактов клиента зависит от роли и назначенного эксперта.
package view

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"

	"github.com/autopuzzle/dealership-crm/internal/http/middlewarectx"
	"github.com/autopuzzle/dealership-crm/internal/http/response"
	"github.com/autopuzzle/dealership-crm/internal/lib/sl"
	"github.com/autopuzzle/dealership-crm/internal/models"
	calendar "github.com/autopuzzle/dealership-crm/internal/services/calendar"
)

// Handler управляет HTTP-запросами сводного календаря.
type Handler struct {
	log     *slog.Logger  // Логгер для записи информации и ошибок
	service Service       // Сервис сборки календаря
	users   UserDirectory // Справочник пользователей для определения ID эксперта
}

// Service описывает интерфейс бизнес-логики сборки календаря.
type Service interface {
	Collect(ctx context.Context, viewerRole string, viewerID int) ([]models.MeetingRecord, error)
	SortAndGroup(records []models.MeetingRecord) calendar.Grouped
	Stats(records []models.MeetingRecord, now time.Time) models.CalendarStats
}

// UserDirectory описывает поиск пользователя по имени.
type UserDirectory interface {
	GetUserByUsername(ctx context.Context, username string) (*models.User, error)
}

// New создает новый Handler с переданными логгером и сервисами.
func New(log *slog.Logger, service Service, users UserDirectory) *Handler {
	return &Handler{
		log:     log,
		service: service,
		users:   users,
	}
}

// ServeHTTP godoc
// @Summary Сводный календарь встреч
// @Description Возвращает все встречи из трёх источников, сгруппированные по дням, со статистикой. Эксперт видит контакты только своих клиентов.
// @Tags Calendar
// @Produce  json
// @Success 200 {object} map[string]any "Записи, группировка по дням, статистика"
// @Failure 401 {object} response.ErrorResponse "Нет авторизации"
// @Failure 500 {object} response.ErrorResponse "Ошибка сервера"
// @Router /calendar [get]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.calendar.view"
	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	role, _ := r.Context().Value(middlewarectx.Role).(string)
	username, _ := r.Context().Value(middlewarectx.User).(string)
	if role == "" {
		log.Error("missing role in request context")
		w.WriteHeader(http.StatusUnauthorized)
		render.JSON(w, r, response.Error("missing authorization context"))
		return
	}

	// Администратору видно всё, его ID для проверки видимости не нужен.
	viewerID := 0
	if role != models.RoleAdmin {
		user, err := h.users.GetUserByUsername(r.Context(), username)
		if err != nil {
			log.Error("failed to resolve viewer", sl.Err(err))
			w.WriteHeader(http.StatusInternalServerError)
			render.JSON(w, r, response.Error("could not resolve viewer"))
			return
		}
		viewerID = user.ID
	}

	records, err := h.service.Collect(r.Context(), role, viewerID)
	if err != nil {
		log.Error("failed to collect calendar records", sl.Err(err))
		w.WriteHeader(http.StatusInternalServerError)
		render.JSON(w, r, response.Error("could not build calendar"))
		return
	}

	grouped := h.service.SortAndGroup(records)
	stats := h.service.Stats(grouped.Records, time.Now())

	render.JSON(w, r, response.StatusOKWithData(map[string]any{
		"records": grouped.Records,
		"days":    grouped.Days,
		"by_day":  grouped.ByDay,
		"stats":   stats,
	}))
}
