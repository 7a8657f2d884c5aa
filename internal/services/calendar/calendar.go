// Package services реализует агрегацию календаря встреч автосалона.
//
// Записи собираются из трёх разнородных источников: таблицы встреч,
// наличных заявок и заявок в рассрочку. Каждая запись нормализуется к
// григорианской дате YYYY-MM-DD и времени HH:MM, обогащается полями
// джалали и проходит проверку видимости для просматривающего эксперта.
package services

import (
	"context"
	"fmt"
	"log/slog"
	"sort"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"github.com/autopuzzle/dealership-crm/internal/config"
	"github.com/autopuzzle/dealership-crm/internal/lib/jalali"
	"github.com/autopuzzle/dealership-crm/internal/models"
)

// Календарь отображает обозримое число встреч, выборка ограничена сверху.
const fetchLimit = 1000

var (
	meetingsAggregatedTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "meetings_aggregated_total",
		Help: "Number of calendar records aggregated, by source.",
	}, []string{"source"})

	meetingsDroppedTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "meetings_dropped_total",
		Help: "Number of source rows dropped due to unparseable date or time.",
	})
)

// CalendarRepository определяет выборки трёх источников записей календаря.
type CalendarRepository interface {
	// ListMeetings возвращает встречи из таблицы встреч.
	ListMeetings(ctx context.Context, limit, offset int) ([]*models.Meeting, error)
	// ListScheduledCashInquiries возвращает наличные заявки с назначенной встречей.
	ListScheduledCashInquiries(ctx context.Context) ([]*models.Inquiry, error)
	// ListScheduledInstallmentInquiries возвращает рассрочные заявки с назначенной встречей.
	ListScheduledInstallmentInquiries(ctx context.Context) ([]*models.Inquiry, error)
}

// Cache описывает методы для кэширования данных.
type Cache interface {
	Get(key string, result any) (bool, error)
	Set(key string, value any, expiration time.Duration) error
	Invalidate(key string) error
}

// CalendarService реализует сборку, сортировку и группировку записей календаря.
type CalendarService struct {
	repo  CalendarRepository
	cache Cache
	cfg   config.Meetings
	log   *slog.Logger
}

// NewCalendarService создает новый экземпляр CalendarService.
func NewCalendarService(repo CalendarRepository, cache Cache, cfg config.Meetings, log *slog.Logger) *CalendarService {
	return &CalendarService{
		repo:  repo,
		cache: cache,
		cfg:   cfg,
		log:   log,
	}
}

// newRecord заполняет поля джалали по уже нормализованной григорианской дате.
func newRecord(id string, source models.SourceType, dateStr, timeStr string) (models.MeetingRecord, bool) {
	day, err := time.Parse("2006-01-02", dateStr)
	if err != nil {
		return models.MeetingRecord{}, false
	}
	d := jalali.FromTime(day)
	return models.MeetingRecord{
		ID:              id,
		SourceType:      source,
		Date:            dateStr,
		Time:            timeStr,
		JalaliDate:      fmt.Sprintf("%04d/%02d/%02d", d.JalaliYear, d.JalaliMonth, d.JalaliDay),
		JalaliYear:      d.JalaliYear,
		JalaliMonth:     d.JalaliMonth,
		JalaliDay:       d.JalaliDay,
		JalaliMonthName: jalali.MonthName(d.JalaliMonth),
		JalaliDayName:   jalali.WeekdayName(d.Weekday),
	}, true
}

// canSee решает, видит ли просматривающий данные клиента.
// Администратор видит всё, эксперт — только свои заявки и встречи.
func canSee(viewerRole string, viewerID, assignedExpertID int) bool {
	if viewerRole == models.RoleAdmin {
		return true
	}
	return viewerID == assignedExpertID
}

func redact(rec *models.MeetingRecord, name, phone, product string, allowed bool) {
	rec.VisibilityAllowed = allowed
	rec.ProductName = product
	if allowed {
		rec.CustomerName = name
		rec.CustomerPhone = phone
		return
	}
	rec.CustomerName = models.ReservedName
	rec.CustomerPhone = models.ReservedPhone
}

// Collect собирает записи из всех трёх источников. Строки с нечитаемой
// датой или временем отбрасываются молча, агрегация никогда не падает
// из-за одной плохой записи.
func (s *CalendarService) Collect(ctx context.Context, viewerRole string, viewerID int) ([]models.MeetingRecord, error) {
	const op = "calendar.Collect"

	meetings, err := s.repo.ListMeetings(ctx, fetchLimit, 0)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	cash, err := s.repo.ListScheduledCashInquiries(ctx)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	installment, err := s.repo.ListScheduledInstallmentInquiries(ctx)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	records := make([]models.MeetingRecord, 0, len(meetings)+len(cash)+len(installment))

	for _, m := range meetings {
		rec, ok := newRecord(fmt.Sprintf("meeting_%d", m.ID), models.SourceDirectMeeting,
			m.Start.Format("2006-01-02"), m.Start.Format("15:04"))
		if !ok {
			meetingsDroppedTotal.Inc()
			continue
		}
		redact(&rec, m.CustomerName, m.CustomerPhone, m.ProductName,
			canSee(viewerRole, viewerID, m.AssignedExpertID))
		rec.InquiryID = m.InquiryID
		records = append(records, rec)
		meetingsAggregatedTotal.WithLabelValues(string(models.SourceDirectMeeting)).Inc()
	}

	records = s.appendInquiries(records, cash, models.SourceCashInquiry, "cash", viewerRole, viewerID)
	records = s.appendInquiries(records, installment, models.SourceInstallmentInquiry, "installment", viewerRole, viewerID)

	return records, nil
}

func (s *CalendarService) appendInquiries(records []models.MeetingRecord, inquiries []*models.Inquiry,
	source models.SourceType, prefix, viewerRole string, viewerID int) []models.MeetingRecord {
	for _, q := range inquiries {
		dateStr, ok := jalali.ConvertDateStringToGregorian(q.MeetingDate)
		if !ok {
			s.log.Warn("dropping inquiry with unreadable meeting date",
				slog.String("source", prefix), slog.Int("id", q.ID),
				slog.String("raw", q.MeetingDate))
			meetingsDroppedTotal.Inc()
			continue
		}
		timeStr, ok := jalali.NormalizeClock(q.MeetingTime)
		if !ok {
			s.log.Warn("dropping inquiry with unreadable meeting time",
				slog.String("source", prefix), slog.Int("id", q.ID),
				slog.String("raw", q.MeetingTime))
			meetingsDroppedTotal.Inc()
			continue
		}
		rec, ok := newRecord(fmt.Sprintf("%s_%d", prefix, q.ID), source, dateStr, timeStr)
		if !ok {
			meetingsDroppedTotal.Inc()
			continue
		}
		redact(&rec, q.CustomerName, q.CustomerPhone, q.ProductName,
			canSee(viewerRole, viewerID, q.AssignedExpertID))
		id := q.ID
		rec.InquiryID = &id
		records = append(records, rec)
		meetingsAggregatedTotal.WithLabelValues(string(source)).Inc()
	}
	return records
}

// Grouped — результат сортировки и группировки записей по дням.
type Grouped struct {
	// Records — все записи, отсортированные по дате и времени.
	Records []models.MeetingRecord `json:"records"`
	// Days — ключи дней в возрастающем порядке.
	Days []string `json:"days"`
	// ByDay — записи каждого дня, в том же порядке, что и в Records.
	ByDay map[string][]models.MeetingRecord `json:"by_day"`
}

// SortAndGroup сортирует записи по дате и времени и группирует по дням.
// Сортировка устойчивая: записи с одинаковыми датой и временем сохраняют
// исходный порядок. Строки сравниваются лексикографически, что для
// форматов YYYY-MM-DD и HH:MM совпадает с хронологическим порядком.
func (s *CalendarService) SortAndGroup(records []models.MeetingRecord) Grouped {
	sorted := make([]models.MeetingRecord, len(records))
	copy(sorted, records)
	sort.SliceStable(sorted, func(i, j int) bool {
		if sorted[i].Date != sorted[j].Date {
			return sorted[i].Date < sorted[j].Date
		}
		return sorted[i].Time < sorted[j].Time
	})

	byDay := make(map[string][]models.MeetingRecord)
	var days []string
	for _, rec := range sorted {
		if _, ok := byDay[rec.Date]; !ok {
			days = append(days, rec.Date)
		}
		byDay[rec.Date] = append(byDay[rec.Date], rec)
	}

	return Grouped{Records: sorted, Days: days, ByDay: byDay}
}

// WeekDay — один день недельной сетки.
type WeekDay struct {
	Date   string      `json:"date"`
	Jalali jalali.Date `json:"jalali"`
	// Slots — записи по слотам; запись попадает в слот только при
	// точном совпадении времени HH:MM с началом слота.
	Slots map[string][]models.MeetingRecord `json:"slots"`
}

// WeekGrid — недельная сетка встреч с фиксированными слотами.
type WeekGrid struct {
	WeekStart string    `json:"week_start"`
	SlotTimes []string  `json:"slot_times"`
	Days      []WeekDay `json:"days"`
}

// slotTimes строит список меток слотов от начала до конца рабочего дня.
func (s *CalendarService) slotTimes() []string {
	start, err := time.Parse("15:04", s.cfg.StartHour)
	if err != nil {
		start, _ = time.Parse("15:04", "10:00")
	}
	end, err := time.Parse("15:04", s.cfg.EndHour)
	if err != nil {
		end, _ = time.Parse("15:04", "20:00")
	}
	step := time.Duration(s.cfg.SlotMinutes) * time.Minute

	var slots []string
	for t := start; t.Before(end); t = t.Add(step) {
		slots = append(slots, t.Format("15:04"))
	}
	return slots
}

// WeeklySlots раскладывает записи по сетке недели, начинающейся с weekStart.
// Запись без точного совпадения со слотом в сетку не попадает.
func (s *CalendarService) WeeklySlots(records []models.MeetingRecord, weekStart time.Time) WeekGrid {
	slots := s.slotTimes()

	byDate := make(map[string][]models.MeetingRecord)
	for _, rec := range records {
		byDate[rec.Date] = append(byDate[rec.Date], rec)
	}

	grid := WeekGrid{
		WeekStart: weekStart.Format("2006-01-02"),
		SlotTimes: slots,
		Days:      make([]WeekDay, 0, 7),
	}
	for i := range 7 {
		day := weekStart.AddDate(0, 0, i)
		dateStr := day.Format("2006-01-02")
		wd := WeekDay{
			Date:   dateStr,
			Jalali: jalali.FromTime(day),
			Slots:  make(map[string][]models.MeetingRecord, len(slots)),
		}
		for _, slot := range slots {
			for _, rec := range byDate[dateStr] {
				if rec.Time == slot {
					wd.Slots[slot] = append(wd.Slots[slot], rec)
				}
			}
		}
		grid.Days = append(grid.Days, wd)
	}
	return grid
}

// BuildDateMapping возвращает метаданные джалали для каждого григорианского
// дня в [from, to]. Таблица детерминирована, поэтому кешируется на сутки.
func (s *CalendarService) BuildDateMapping(from, to time.Time) ([]jalali.Date, error) {
	cacheKey := fmt.Sprintf("datemap:%s:%s",
		from.Format("2006-01-02"), to.Format("2006-01-02"))

	var cached []jalali.Date
	found, err := s.cache.Get(cacheKey, &cached)
	if err != nil {
		s.log.Warn("date mapping cache read failed", slog.Any("err", err))
	}
	if found {
		return cached, nil
	}

	var mapping []jalali.Date
	for day := from; !day.After(to); day = day.AddDate(0, 0, 1) {
		mapping = append(mapping, jalali.FromTime(day))
	}

	if err := s.cache.Set(cacheKey, mapping, 24*time.Hour); err != nil {
		s.log.Warn("failed to cache date mapping", slog.String("key", cacheKey), slog.Any("err", err))
	}
	return mapping, nil
}

// Stats считает карточки шапки календаря: встречи сегодня, в ближайшие
// семь дней и всего.
func (s *CalendarService) Stats(records []models.MeetingRecord, now time.Time) models.CalendarStats {
	today := now.Format("2006-01-02")
	weekEnd := now.AddDate(0, 0, 7).Format("2006-01-02")

	var stats models.CalendarStats
	stats.Total = len(records)
	for _, rec := range records {
		if rec.Date == today {
			stats.Today++
		}
		if rec.Date >= today && rec.Date < weekEnd {
			stats.Week++
		}
	}
	return stats
}
