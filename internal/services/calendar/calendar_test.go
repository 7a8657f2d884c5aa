package services_test

import (
	"context"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/autopuzzle/dealership-crm/internal/config"
	"github.com/autopuzzle/dealership-crm/internal/models"
	services "github.com/autopuzzle/dealership-crm/internal/services/calendar"
)

type CalendarRepoMock struct {
	mock.Mock
}

func (m *CalendarRepoMock) ListMeetings(ctx context.Context, limit, offset int) ([]*models.Meeting, error) {
	args := m.Called(ctx, limit, offset)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*models.Meeting), args.Error(1)
}

func (m *CalendarRepoMock) ListScheduledCashInquiries(ctx context.Context) ([]*models.Inquiry, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*models.Inquiry), args.Error(1)
}

func (m *CalendarRepoMock) ListScheduledInstallmentInquiries(ctx context.Context) ([]*models.Inquiry, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*models.Inquiry), args.Error(1)
}

type CacheMock struct {
	mock.Mock
}

func (m *CacheMock) Get(key string, result any) (bool, error) {
	args := m.Called(key, result)
	return args.Bool(0), args.Error(1)
}

func (m *CacheMock) Set(key string, value any, expiration time.Duration) error {
	args := m.Called(key, value, expiration)
	return args.Error(0)
}

func (m *CacheMock) Invalidate(key string) error {
	args := m.Called(key)
	return args.Error(0)
}

func newNoopLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, &slog.HandlerOptions{}))
}

func defaultMeetingsConfig() config.Meetings {
	return config.Meetings{
		StartHour:   "10:00",
		EndHour:     "20:00",
		SlotMinutes: 30,
	}
}

func newService(repo *CalendarRepoMock, cache *CacheMock) *services.CalendarService {
	return services.NewCalendarService(repo, cache, defaultMeetingsConfig(), newNoopLogger())
}

// Сценарий с тремя источниками: прямая встреча, наличная заявка с датой
// джалали и заявка с нечитаемой датой. Плохая запись отбрасывается,
// остальные нормализуются и группируются по двум дням.
func TestCalendarService_Collect_MixedSources(t *testing.T) {
	repo := new(CalendarRepoMock)
	cache := new(CacheMock)
	svc := newService(repo, cache)

	repo.On("ListMeetings", mock.Anything, mock.Anything, 0).Return([]*models.Meeting{
		{
			ID:               1,
			Start:            time.Date(2024, 3, 20, 10, 0, 0, 0, time.UTC),
			CustomerName:     "Ali Rezai",
			CustomerPhone:    "09121234567",
			ProductName:      "Peugeot 207",
			AssignedExpertID: 1,
		},
	}, nil).Once()
	repo.On("ListScheduledCashInquiries", mock.Anything).Return([]*models.Inquiry{
		{
			ID:               2,
			CustomerName:     "Sara Amini",
			CustomerPhone:    "09351112233",
			ProductName:      "Tiggo 7",
			Status:           models.StatusMeetingScheduled,
			MeetingDate:      "1403/01/02",
			MeetingTime:      "14:30",
			AssignedExpertID: 1,
		},
	}, nil).Once()
	repo.On("ListScheduledInstallmentInquiries", mock.Anything).Return([]*models.Inquiry{
		{
			ID:               3,
			CustomerName:     "Reza Karimi",
			Status:           models.StatusMeetingScheduled,
			MeetingDate:      "invalid",
			MeetingTime:      "10:00",
			AssignedExpertID: 1,
		},
	}, nil).Once()

	records, err := svc.Collect(context.Background(), models.RoleAdmin, 0)
	require.NoError(t, err)
	require.Len(t, records, 2)

	grouped := svc.SortAndGroup(records)
	assert.Equal(t, []string{"2024-03-20", "2024-03-21"}, grouped.Days)

	first := grouped.ByDay["2024-03-20"][0]
	assert.Equal(t, "meeting_1", first.ID)
	assert.Equal(t, "10:00", first.Time)
	assert.Equal(t, "1403/01/01", first.JalaliDate)
	assert.Equal(t, "Farvardin", first.JalaliMonthName)
	assert.Equal(t, "Wednesday", first.JalaliDayName)

	second := grouped.ByDay["2024-03-21"][0]
	assert.Equal(t, "cash_2", second.ID)
	assert.Equal(t, "14:30", second.Time)
	assert.Equal(t, "1403/01/02", second.JalaliDate)

	repo.AssertExpectations(t)
}

func TestCalendarService_Collect_VisibilityRedaction(t *testing.T) {
	meetings := []*models.Meeting{
		{
			ID:               1,
			Start:            time.Date(2024, 3, 20, 10, 0, 0, 0, time.UTC),
			CustomerName:     "Ali Rezai",
			CustomerPhone:    "09121234567",
			ProductName:      "Peugeot 207",
			AssignedExpertID: 1,
		},
		{
			ID:               2,
			Start:            time.Date(2024, 3, 20, 11, 0, 0, 0, time.UTC),
			CustomerName:     "Sara Amini",
			CustomerPhone:    "09351112233",
			ProductName:      "Tiggo 7",
			AssignedExpertID: 2,
		},
	}

	tests := []struct {
		name       string
		viewerRole string
		viewerID   int
		wantNames  []string
		wantPhones []string
	}{
		{
			name:       "admin sees everything",
			viewerRole: models.RoleAdmin,
			viewerID:   99,
			wantNames:  []string{"Ali Rezai", "Sara Amini"},
			wantPhones: []string{"09121234567", "09351112233"},
		},
		{
			name:       "expert sees only own meetings",
			viewerRole: models.RoleExpert,
			viewerID:   1,
			wantNames:  []string{"Ali Rezai", models.ReservedName},
			wantPhones: []string{"09121234567", models.ReservedPhone},
		},
		{
			name:       "other expert sees nothing",
			viewerRole: models.RoleExpert,
			viewerID:   3,
			wantNames:  []string{models.ReservedName, models.ReservedName},
			wantPhones: []string{models.ReservedPhone, models.ReservedPhone},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := new(CalendarRepoMock)
			cache := new(CacheMock)
			svc := newService(repo, cache)

			repo.On("ListMeetings", mock.Anything, mock.Anything, 0).Return(meetings, nil).Once()
			repo.On("ListScheduledCashInquiries", mock.Anything).Return([]*models.Inquiry{}, nil).Once()
			repo.On("ListScheduledInstallmentInquiries", mock.Anything).Return([]*models.Inquiry{}, nil).Once()

			records, err := svc.Collect(context.Background(), tt.viewerRole, tt.viewerID)
			require.NoError(t, err)
			require.Len(t, records, 2)

			for i, rec := range records {
				assert.Equal(t, tt.wantNames[i], rec.CustomerName)
				assert.Equal(t, tt.wantPhones[i], rec.CustomerPhone)
				assert.Equal(t, tt.wantNames[i] != models.ReservedName, rec.VisibilityAllowed)
				// Название автомобиля не скрывается.
				assert.NotEmpty(t, rec.ProductName)
			}
		})
	}
}

func TestCalendarService_SortAndGroup_Stable(t *testing.T) {
	repo := new(CalendarRepoMock)
	cache := new(CacheMock)
	svc := newService(repo, cache)

	records := []models.MeetingRecord{
		{ID: "a", Date: "2024-03-21", Time: "09:00"},
		{ID: "b", Date: "2024-03-20", Time: "14:00"},
		{ID: "c", Date: "2024-03-20", Time: "14:00"},
		{ID: "d", Date: "2024-03-20", Time: "09:00"},
	}

	grouped := svc.SortAndGroup(records)

	gotIDs := make([]string, 0, len(grouped.Records))
	for _, rec := range grouped.Records {
		gotIDs = append(gotIDs, rec.ID)
	}
	// b и c имеют одинаковые дату и время: исходный порядок сохранён.
	assert.Equal(t, []string{"d", "b", "c", "a"}, gotIDs)
	assert.Equal(t, []string{"2024-03-20", "2024-03-21"}, grouped.Days)
	assert.Len(t, grouped.ByDay["2024-03-20"], 3)
	assert.Len(t, grouped.ByDay["2024-03-21"], 1)
}

func TestCalendarService_WeeklySlots_ExactMatchOnly(t *testing.T) {
	repo := new(CalendarRepoMock)
	cache := new(CacheMock)
	svc := newService(repo, cache)

	weekStart := time.Date(2024, 3, 16, 0, 0, 0, 0, time.UTC) // суббота
	records := []models.MeetingRecord{
		{ID: "exact", Date: "2024-03-20", Time: "10:30"},
		// 10:45 не совпадает ни с одним началом слота при шаге 30 минут.
		{ID: "offgrid", Date: "2024-03-20", Time: "10:45"},
		{ID: "otherweek", Date: "2024-03-30", Time: "10:30"},
	}

	grid := svc.WeeklySlots(records, weekStart)

	require.Len(t, grid.Days, 7)
	assert.Equal(t, "10:00", grid.SlotTimes[0])
	assert.Equal(t, "19:30", grid.SlotTimes[len(grid.SlotTimes)-1])

	day := grid.Days[4] // 2024-03-20
	require.Equal(t, "2024-03-20", day.Date)
	require.Len(t, day.Slots["10:30"], 1)
	assert.Equal(t, "exact", day.Slots["10:30"][0].ID)

	total := 0
	for _, d := range grid.Days {
		for _, recs := range d.Slots {
			total += len(recs)
		}
	}
	assert.Equal(t, 1, total)
}

func TestCalendarService_BuildDateMapping(t *testing.T) {
	repo := new(CalendarRepoMock)
	cache := new(CacheMock)
	svc := newService(repo, cache)

	from := time.Date(2024, 3, 19, 0, 0, 0, 0, time.UTC)
	to := time.Date(2024, 3, 22, 0, 0, 0, 0, time.UTC)

	cache.On("Get", "datemap:2024-03-19:2024-03-22", mock.Anything).Return(false, nil).Once()
	cache.On("Set", "datemap:2024-03-19:2024-03-22", mock.Anything, 24*time.Hour).Return(nil).Once()

	mapping, err := svc.BuildDateMapping(from, to)
	require.NoError(t, err)
	require.Len(t, mapping, 4)

	// 2024-03-19 — последний день 1402, 2024-03-20 — Новруз.
	assert.Equal(t, 1402, mapping[0].JalaliYear)
	assert.Equal(t, 1403, mapping[1].JalaliYear)
	assert.Equal(t, 1, mapping[1].JalaliMonth)
	assert.Equal(t, 1, mapping[1].JalaliDay)
	assert.Equal(t, 4, mapping[1].Weekday) // среда при начале недели с субботы

	cache.AssertExpectations(t)
}

func TestCalendarService_Stats(t *testing.T) {
	repo := new(CalendarRepoMock)
	cache := new(CacheMock)
	svc := newService(repo, cache)

	now := time.Date(2024, 3, 20, 12, 0, 0, 0, time.UTC)
	records := []models.MeetingRecord{
		{ID: "today1", Date: "2024-03-20"},
		{ID: "today2", Date: "2024-03-20"},
		{ID: "inweek", Date: "2024-03-25"},
		{ID: "past", Date: "2024-03-01"},
		{ID: "far", Date: "2024-05-01"},
	}

	stats := svc.Stats(records, now)
	assert.Equal(t, 2, stats.Today)
	assert.Equal(t, 3, stats.Week)
	assert.Equal(t, 5, stats.Total)
}
