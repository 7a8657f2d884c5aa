// Package datemap реализует HTTP-обработчик таблицы соответствия дат.
//
// Таблица сопоставляет каждому григорианскому дню диапазона его
// джалали-дату, имя месяца и день недели.
package datemap

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"

	"github.com/autopuzzle/dealership-crm/internal/http/response"
	"github.com/autopuzzle/dealership-crm/internal/lib/jalali"
	"github.com/autopuzzle/dealership-crm/internal/lib/sl"
)

// Handler управляет HTTP-запросами таблицы дат.
type Handler struct {
	log     *slog.Logger // Логгер для записи информации и ошибок
	service Service      // Сервис сборки календаря
}

// Service описывает интерфейс построения таблицы дат.
type Service interface {
	BuildDateMapping(from, to time.Time) ([]jalali.Date, error)
}

// New создает новый Handler с переданным логгером и сервисом.
func New(log *slog.Logger, service Service) *Handler {
	return &Handler{
		log:     log,
		service: service,
	}
}

// ServeHTTP godoc
// @Summary Таблица соответствия дат
// @Description Возвращает джалали-метаданные для каждого григорианского дня диапазона. По умолчанию год назад и два года вперёд от сегодня.
// @Tags Calendar
// @Produce  json
// @Param from query string false "Начало диапазона (YYYY-MM-DD)"
// @Param to query string false "Конец диапазона (YYYY-MM-DD)"
// @Success 200 {object} map[string]any "Список дней с джалали-метаданными"
// @Failure 400 {object} response.ErrorResponse "Некорректная дата"
// @Failure 500 {object} response.ErrorResponse "Ошибка сервера"
// @Router /calendar/datemap [get]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.calendar.datemap"
	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	now := time.Now().UTC()
	from := now.AddDate(-1, 0, 0)
	to := now.AddDate(2, 0, 0)

	if raw := r.URL.Query().Get("from"); raw != "" {
		parsed, err := time.Parse("2006-01-02", raw)
		if err != nil {
			log.Error("failed to parse from", sl.Err(err))
			w.WriteHeader(http.StatusBadRequest)
			render.JSON(w, r, response.Error("invalid from, expected YYYY-MM-DD"))
			return
		}
		from = parsed
	}
	if raw := r.URL.Query().Get("to"); raw != "" {
		parsed, err := time.Parse("2006-01-02", raw)
		if err != nil {
			log.Error("failed to parse to", sl.Err(err))
			w.WriteHeader(http.StatusBadRequest)
			render.JSON(w, r, response.Error("invalid to, expected YYYY-MM-DD"))
			return
		}
		to = parsed
	}
	if to.Before(from) {
		log.Error("range end before start")
		w.WriteHeader(http.StatusBadRequest)
		render.JSON(w, r, response.Error("to must not be before from"))
		return
	}

	days, err := h.service.BuildDateMapping(from, to)
	if err != nil {
		log.Error("failed to build date mapping", sl.Err(err))
		w.WriteHeader(http.StatusInternalServerError)
		render.JSON(w, r, response.Error("could not build date mapping"))
		return
	}

	render.JSON(w, r, response.StatusOKWithData(map[string]any{
		"days": days,
	}))
}
