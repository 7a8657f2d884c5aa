// Package schedule реализует HTTP-обработчик назначения встречи по заявке.
//
// Заявка может быть наличной или в рассрочку; тип передаётся в URL.
// После успешного назначения статус заявки становится meeting_scheduled.
package schedule

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi"
	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"
	"github.com/go-playground/validator"

	"github.com/autopuzzle/dealership-crm/internal/http/response"
	"github.com/autopuzzle/dealership-crm/internal/lib/sl"
	"github.com/autopuzzle/dealership-crm/internal/models"
)

// Handler управляет HTTP-запросами назначения встреч по заявкам.
type Handler struct {
	log      *slog.Logger        // Логгер для записи информации и ошибок
	service  Service             // Сервис бизнес-логики встреч
	validate *validator.Validate // Валидатор структуры входящих данных
}

// Service описывает интерфейс назначения встречи по заявке.
type Service interface {
	ScheduleFromInquiry(ctx context.Context, inquiryType string, id int, req models.DummySchedule) (int, error)
}

// New создает новый Handler с переданными логгером и сервисом.
func New(log *slog.Logger, service Service) *Handler {
	return &Handler{
		log:      log,
		service:  service,
		validate: validator.New(),
	}
}

// ServeHTTP godoc
// @Summary Назначить встречу по заявке
// @Description Назначает дату и время встречи по заявке указанного типа (cash или installment). Дата проверяется на разборчивость до записи.
// @Tags Inquiries
// @Accept  json
// @Produce  json
// @Param type path string true "Тип заявки" Enums(cash, installment)
// @Param id path int true "ID заявки"
// @Param request body models.DummySchedule true "Дата и время встречи"
// @Success 200 {object} map[string]any "Количество обновлённых заявок"
// @Failure 400 {object} response.ErrorResponse "Некорректный запрос или нечитаемая дата"
// @Failure 422 {object} response.ErrorResponse "Ошибка валидации"
// @Router /inquiries/{type}/{id}/schedule [post]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.inquiry.schedule"
	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	inquiryType := chi.URLParam(r, "type")
	id, err := strconv.Atoi(chi.URLParam(r, "id"))
	if err != nil {
		log.Error("failed to decode id from url", sl.Err(err))
		w.WriteHeader(http.StatusBadRequest)
		render.JSON(w, r, response.Error("failed to decode id from url"))
		return
	}

	var req models.DummySchedule
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		log.Error("failed to decode request", sl.Err(err))
		w.WriteHeader(http.StatusBadRequest)
		render.JSON(w, r, response.Error("invalid request body"))
		return
	}

	if err := h.validate.Struct(req); err != nil {
		log.Error("validation failed", sl.Err(err))
		w.WriteHeader(http.StatusUnprocessableEntity)
		render.JSON(w, r, response.ValidationError(err.(validator.ValidationErrors)))
		return
	}

	count, err := h.service.ScheduleFromInquiry(r.Context(), inquiryType, id, req)
	if err != nil {
		log.Error("failed to schedule meeting from inquiry", sl.Err(err))
		w.WriteHeader(http.StatusBadRequest)
		render.JSON(w, r, response.Error("could not schedule meeting"))
		return
	}

	log.Info("inquiry meeting scheduled",
		slog.String("type", inquiryType), slog.Int("id", id))
	render.JSON(w, r, response.StatusOKWithData(map[string]any{
		"updated": count,
	}))
}
