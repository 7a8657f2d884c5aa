// Package list реализует HTTP-обработчик постраничного списка встреч.
package list

import (
	"context"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"

	"github.com/autopuzzle/dealership-crm/internal/http/response"
	"github.com/autopuzzle/dealership-crm/internal/lib/sl"
	"github.com/autopuzzle/dealership-crm/internal/models"
)

// Handler обрабатывает запросы списка встреч.
type Handler struct {
	log     *slog.Logger // Логгер для записи информации и ошибок
	service Service      // Сервис бизнес-логики встреч
}

// Service описывает интерфейс выборки списка встреч.
type Service interface {
	List(ctx context.Context, limit, offset int) ([]*models.Meeting, error)
}

// New создает новый Handler с переданным логгером и сервисом.
func New(log *slog.Logger, service Service) *Handler {
	return &Handler{
		log:     log,
		service: service,
	}
}

// ServeHTTP godoc
// @Summary Список встреч
// @Description Возвращает встречи постранично в порядке времени начала.
// @Tags Meetings
// @Produce  json
// @Param limit query int false "Размер страницы, по умолчанию 10"
// @Param offset query int false "Смещение, по умолчанию 0"
// @Success 200 {object} map[string]any "Список встреч"
// @Failure 500 {object} response.ErrorResponse "Ошибка сервера"
// @Router /meetings [get]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.meeting.list"

	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	limit, err := strconv.Atoi(r.URL.Query().Get("limit"))
	if err != nil || limit <= 0 {
		limit = 10
	}
	offset, err := strconv.Atoi(r.URL.Query().Get("offset"))
	if err != nil || offset < 0 {
		offset = 0
	}

	res, err := h.service.List(r.Context(), limit, offset)
	if err != nil {
		log.Error("failed to list meetings", sl.Err(err))
		w.WriteHeader(http.StatusInternalServerError)
		render.JSON(w, r, response.Error("could not list meetings"))
		return
	}

	render.JSON(w, r, response.StatusOKWithData(map[string]any{
		"list_count": len(res),
		"meetings":   res,
	}))
}
