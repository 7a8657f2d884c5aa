// Package services содержит бизнес-логику для управления встречами
// автосалона и назначения встреч по заявкам.
package services

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/autopuzzle/dealership-crm/internal/lib/jalali"
	"github.com/autopuzzle/dealership-crm/internal/models"
	"github.com/autopuzzle/dealership-crm/internal/storage/repository"
)

// MeetingRepository определяет методы для работы со встречами в хранилище.
type MeetingRepository interface {
	// CreateMeeting добавляет новую встречу и возвращает её ID.
	CreateMeeting(ctx context.Context, meeting models.Meeting) (int, error)
	// RemoveMeeting удаляет встречу по ID и возвращает количество удалённых записей.
	RemoveMeeting(ctx context.Context, id int) (int, error)
	// ReadMeeting возвращает встречу по ID.
	ReadMeeting(ctx context.Context, id int) (*models.Meeting, error)
	// UpdateMeeting обновляет данные встречи по ID.
	UpdateMeeting(ctx context.Context, meeting models.Meeting, id int) (int, error)
	// ListMeetings возвращает список всех встреч с пагинацией.
	ListMeetings(ctx context.Context, limit, offset int) ([]*models.Meeting, error)
	// ScheduleInquiryMeeting записывает дату и время встречи по заявке.
	ScheduleInquiryMeeting(ctx context.Context, table string, id int, date, timeStr string) (int, error)
}

// Cache описывает методы для кэширования данных.
type Cache interface {
	// Get пытается получить значение из кеша по ключу.
	Get(key string, result any) (bool, error)
	// Set сохраняет значение в кеш с временем жизни.
	Set(key string, value any, expiration time.Duration) error
	// Invalidate удаляет значение из кеша по ключу.
	Invalidate(key string) error
}

// MeetingService реализует бизнес-логику работы со встречами, включая кеширование.
type MeetingService struct {
	repo  MeetingRepository
	cache Cache
	log   *slog.Logger
}

// NewMeetingService создает новый экземпляр MeetingService.
func NewMeetingService(repo MeetingRepository, cache Cache, log *slog.Logger) *MeetingService {
	return &MeetingService{
		repo:  repo,
		cache: cache,
		log:   log,
	}
}

// parseStart собирает time.Time из сырых строк даты и времени формы.
// Дата может прийти и джалали, и григорианской, цифры — любой локали.
func parseStart(rawDate, rawTime string) (time.Time, error) {
	dateStr, ok := jalali.ConvertDateStringToGregorian(rawDate)
	if !ok {
		return time.Time{}, fmt.Errorf("unrecognized date: %q", rawDate)
	}
	timeStr, ok := jalali.NormalizeClock(rawTime)
	if !ok {
		return time.Time{}, fmt.Errorf("unrecognized time: %q", rawTime)
	}
	start, err := time.Parse("2006-01-02 15:04", dateStr+" "+timeStr)
	if err != nil {
		return time.Time{}, err
	}
	return start, nil
}

// Create создает новую встречу, кеширует её и возвращает ID.
func (s *MeetingService) Create(ctx context.Context, req models.DummyMeeting) (int, error) {
	start, err := parseStart(req.Date, req.Time)
	if err != nil {
		return 0, err
	}

	meeting := models.Meeting{
		Start:            start,
		CustomerName:     req.CustomerName,
		CustomerPhone:    req.CustomerPhone,
		ProductName:      req.ProductName,
		InquiryID:        req.InquiryID,
		InquiryType:      req.InquiryType,
		AssignedExpertID: req.AssignedExpertID,
	}

	id, err := s.repo.CreateMeeting(ctx, meeting)
	if err != nil {
		return 0, err
	}

	s.log.Info("created new meeting", slog.Int("id", id))

	cacheKey := fmt.Sprintf("meeting:%d", id)
	if err := s.cache.Set(cacheKey, meeting, time.Hour); err != nil {
		s.log.Warn("failed to cache meeting", slog.String("key", cacheKey), slog.Any("err", err))
	}

	return id, nil
}

// Remove удаляет встречу по ID и инвалидирует кеш.
func (s *MeetingService) Remove(ctx context.Context, id int) (int, error) {
	cacheKey := fmt.Sprintf("meeting:%d", id)
	if err := s.cache.Invalidate(cacheKey); err != nil {
		s.log.Warn("failed to remove from cache", slog.String("key", cacheKey), slog.Any("err", err))
	}

	count, err := s.repo.RemoveMeeting(ctx, id)
	if err != nil {
		return 0, err
	}

	return count, nil
}

// Read возвращает встречу по ID, используя кеш или репозиторий.
func (s *MeetingService) Read(ctx context.Context, id int) (*models.Meeting, error) {
	var result *models.Meeting
	cacheKey := fmt.Sprintf("meeting:%d", id)
	found, err := s.cache.Get(cacheKey, &result)
	if err != nil {
		return nil, err
	}
	if found {
		return result, nil
	}
	result, err = s.repo.ReadMeeting(ctx, id)
	if err != nil {
		return nil, err
	}

	if result != nil {
		if err := s.cache.Set(cacheKey, result, time.Hour); err != nil {
			s.log.Warn("failed to add to cache", slog.String("key", cacheKey),
				slog.Any("err", err))
		}
	}
	return result, nil
}

// Update обновляет встречу и обновляет кеш.
func (s *MeetingService) Update(ctx context.Context, req models.DummyMeeting, id int) (int, error) {
	start, err := parseStart(req.Date, req.Time)
	if err != nil {
		return 0, err
	}

	meeting := models.Meeting{
		Start:            start,
		CustomerName:     req.CustomerName,
		CustomerPhone:    req.CustomerPhone,
		ProductName:      req.ProductName,
		InquiryID:        req.InquiryID,
		InquiryType:      req.InquiryType,
		AssignedExpertID: req.AssignedExpertID,
	}
	res, err := s.repo.UpdateMeeting(ctx, meeting, id)
	if err != nil {
		return 0, err
	}
	s.log.Info("updated meeting in storage", slog.Int("id", id))

	cacheKey := fmt.Sprintf("meeting:%d", id)
	if err := s.cache.Set(cacheKey, meeting, time.Hour); err != nil {
		s.log.Warn("failed to cache meeting", slog.String("key", cacheKey), slog.Any("err", err))
	}
	return res, nil
}

// List возвращает список всех встреч с пагинацией.
func (s *MeetingService) List(ctx context.Context, limit, offset int) ([]*models.Meeting, error) {
	return s.repo.ListMeetings(ctx, limit, offset)
}

// ScheduleFromInquiry назначает встречу по заявке: проверяет, что дата и
// время распознаются, и переводит заявку в статус "встреча назначена".
// Сырые строки даты и времени сохраняются как есть, нормализация в
// григорианский вид выполняется при агрегации календаря.
func (s *MeetingService) ScheduleFromInquiry(ctx context.Context, inquiryType string, id int, req models.DummySchedule) (int, error) {
	var table string
	switch inquiryType {
	case "cash":
		table = repository.TableCashInquiries
	case "installment":
		table = repository.TableInstallmentInquiries
	default:
		return 0, fmt.Errorf("unknown inquiry type: %q", inquiryType)
	}

	if _, err := parseStart(req.Date, req.Time); err != nil {
		return 0, err
	}

	date := jalali.NormalizeDigits(req.Date)
	timeStr, _ := jalali.NormalizeClock(req.Time)

	rows, err := s.repo.ScheduleInquiryMeeting(ctx, table, id, date, timeStr)
	if err != nil {
		return 0, err
	}
	s.log.Info("scheduled inquiry meeting",
		slog.String("type", inquiryType), slog.Int("id", id))
	return rows, nil
}
