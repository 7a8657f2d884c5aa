// Package services реализует конвейер напоминаний о встречах: планировщик
// находит встречи в настроенных окнах и публикует задания в очередь,
// отправитель доставляет их клиентам по SMS и почте.
package services

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/autopuzzle/dealership-crm/internal/config"
	"github.com/autopuzzle/dealership-crm/internal/lib/sl"
	"github.com/autopuzzle/dealership-crm/internal/models"
	"github.com/autopuzzle/dealership-crm/internal/rabbitmq"
)

// Как часто планировщик пересканирует встречи.
const scanInterval = 5 * time.Minute

// ReminderRepository определяет выборку встреч и журнал отправленных напоминаний.
type ReminderRepository interface {
	// FindMeetingsStartingBetween возвращает встречи, начинающиеся в интервале.
	FindMeetingsStartingBetween(ctx context.Context, from, to time.Time) ([]*models.ReminderJob, error)
	// TryLogReminder фиксирует отправку; false — напоминание уже было.
	TryLogReminder(ctx context.Context, meetingID int, window string) (bool, error)
}

// Publisher публикует сообщение в обменник с указанным ключом маршрутизации.
type Publisher interface {
	PublishMessage(exchange, routingKey string, message any) error
}

// SchedulerService периодически ищет встречи, до которых осталось одно из
// настроенных окон, и публикует задания на напоминания.
type SchedulerService struct {
	repo ReminderRepository
	cfg  config.Meetings
	log  *slog.Logger
}

// NewSchedulerService создает новый экземпляр SchedulerService.
func NewSchedulerService(repo ReminderRepository, cfg config.Meetings, log *slog.Logger) *SchedulerService {
	return &SchedulerService{
		repo: repo,
		cfg:  cfg,
		log:  log,
	}
}

// Run запускает цикл сканирования до отмены контекста.
func (s *SchedulerService) Run(ctx context.Context, publisher Publisher) {
	s.scan(ctx, publisher)

	ticker := time.NewTicker(scanInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			s.scan(ctx, publisher)
		case <-ctx.Done():
			return
		}
	}
}

// window — одно окно напоминания: метка для журнала и длительность.
type window struct {
	label string
	dur   time.Duration
}

func (s *SchedulerService) windows() []window {
	var ws []window
	for _, h := range s.cfg.ReminderHoursBefore {
		ws = append(ws, window{label: fmt.Sprintf("%dh", h), dur: time.Duration(h) * time.Hour})
	}
	for _, d := range s.cfg.ReminderDaysBefore {
		ws = append(ws, window{label: fmt.Sprintf("%dd", d), dur: time.Duration(d) * 24 * time.Hour})
	}
	return ws
}

func (s *SchedulerService) scan(ctx context.Context, publisher Publisher) {
	s.log.Info("scanning meetings for reminders")
	now := time.Now()

	for _, w := range s.windows() {
		jobs, err := s.repo.FindMeetingsStartingBetween(ctx, now, now.Add(w.dur))
		if err != nil {
			s.log.Error("failed to find meetings", slog.String("window", w.label), sl.Err(err))
			continue
		}
		for _, job := range jobs {
			logged, err := s.repo.TryLogReminder(ctx, job.MeetingID, w.label)
			if err != nil {
				s.log.Error("failed to log reminder", sl.Err(err))
				continue
			}
			if !logged {
				// Напоминание в этом окне уже отправлялось.
				continue
			}
			job.Window = w.label
			if job.CustomerPhone != "" {
				if err := publisher.PublishMessage(rabbitmq.ExchangeReminders, "sms", job); err != nil {
					s.log.Error("failed to publish sms reminder", sl.Err(err))
				}
			}
			if job.CustomerEmail != "" {
				if err := publisher.PublishMessage(rabbitmq.ExchangeReminders, "email", job); err != nil {
					s.log.Error("failed to publish email reminder", sl.Err(err))
				}
			}
		}
	}
}
