// Package weekly реализует HTTP-обработчик недельной сетки встреч.
package weekly

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

// Handler управляет HTTP-запросами недельной сетки.
type Handler struct {
	log     *slog.Logger  // Логгер для записи информации и ошибок
	service Service       // Сервис сборки календаря
	users   UserDirectory // Справочник пользователей для определения ID эксперта
}

// Service описывает интерфейс бизнес-логики недельной сетки.
type Service interface {
	Collect(ctx context.Context, viewerRole string, viewerID int) ([]models.MeetingRecord, error)
	WeeklySlots(records []models.MeetingRecord, weekStart time.Time) calendar.WeekGrid
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

// startOfWeek возвращает ближайшую прошедшую субботу. Неделя в календаре
// начинается с субботы.
func startOfWeek(t time.Time) time.Time {
	daysSinceSaturday := (int(t.Weekday()) + 1) % 7
	day := t.AddDate(0, 0, -daysSinceSaturday)
	return time.Date(day.Year(), day.Month(), day.Day(), 0, 0, 0, 0, time.UTC)
}

// ServeHTTP godoc
// @Summary Недельная сетка встреч
// @Description Возвращает встречи недели, разложенные по слотам рабочего дня. Неделя начинается с субботы; week_start принимает дату YYYY-MM-DD.
// @Tags Calendar
// @Produce  json
// @Param week_start query string false "Начало недели (YYYY-MM-DD), по умолчанию текущая неделя"
// @Success 200 {object} map[string]any "Сетка недели"
// @Failure 400 {object} response.ErrorResponse "Некорректная дата начала недели"
// @Failure 401 {object} response.ErrorResponse "Нет авторизации"
// @Failure 500 {object} response.ErrorResponse "Ошибка сервера"
// @Router /calendar/weekly [get]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.calendar.weekly"
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

	weekStart := startOfWeek(time.Now().UTC())
	if raw := r.URL.Query().Get("week_start"); raw != "" {
		parsed, err := time.Parse("2006-01-02", raw)
		if err != nil {
			log.Error("failed to parse week_start", sl.Err(err))
			w.WriteHeader(http.StatusBadRequest)
			render.JSON(w, r, response.Error("invalid week_start, expected YYYY-MM-DD"))
			return
		}
		weekStart = parsed
	}

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
		render.JSON(w, r, response.Error("could not build weekly grid"))
		return
	}

	grid := h.service.WeeklySlots(records, weekStart)
	render.JSON(w, r, response.StatusOKWithData(map[string]any{
		"week": grid,
	}))
}
