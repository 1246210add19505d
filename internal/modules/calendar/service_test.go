package calendar

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"diligencias/internal/domain"
	"diligencias/internal/schedule"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type MockAppointmentLister struct {
	mock.Mock
}

func (m *MockAppointmentLister) ListScheduled(ctx context.Context, from, to string) ([]domain.Appointment, error) {
	args := m.Called(ctx, from, to)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Appointment), args.Error(1)
}

type MockUnavailabilityLister struct {
	mock.Mock
}

func (m *MockUnavailabilityLister) List(ctx context.Context, from, to string) ([]domain.Unavailability, error) {
	args := m.Called(ctx, from, to)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Unavailability), args.Error(1)
}

type MockHolidayProvider struct {
	mock.Mock
}

func (m *MockHolidayProvider) Between(ctx context.Context, from, to string) ([]domain.Holiday, error) {
	args := m.Called(ctx, from, to)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Holiday), args.Error(1)
}

var brt = time.FixedZone("BRT", -3*60*60)

func newTestService(t *testing.T, now time.Time) (*Service, *MockAppointmentLister, *MockUnavailabilityLister, *MockHolidayProvider) {
	t.Helper()
	catalog, err := schedule.NewCatalog([]string{"09:15", "15:00"})
	require.NoError(t, err)

	appts := new(MockAppointmentLister)
	days := new(MockUnavailabilityLister)
	hols := new(MockHolidayProvider)
	svc := NewService(appts, days, hols, catalog, schedule.NewFixedClock(brt, now), zap.NewNop())
	return svc, appts, days, hols
}

func dayOf(t *testing.T, m *Month, date string) domain.CalendarDay {
	t.Helper()
	for _, d := range m.Days {
		if d.Date == date {
			return d
		}
	}
	t.Fatalf("day %s not in grid", date)
	return domain.CalendarDay{}
}

func TestService_ComputeMonth(t *testing.T) {
	// Monday 2024-06-10 at 09:20: the 09:15 slot has elapsed today
	svc, appts, days, hols := newTestService(t, time.Date(2024, 6, 10, 9, 20, 0, 0, brt))
	ctx := context.Background()

	appts.On("ListScheduled", ctx, "2024-05-26", "2024-07-06").Return([]domain.Appointment{
		{ID: "a1", Date: "2024-06-11", Slot: "09:15", Status: domain.AppointmentScheduled},
		{ID: "a2", Date: "2024-06-12", Slot: "09:15", Status: domain.AppointmentScheduled},
		{ID: "a3", Date: "2024-06-12", Slot: "15:00", Status: domain.AppointmentScheduled},
	}, nil)
	days.On("List", ctx, "2024-05-26", "2024-07-06").Return([]domain.Unavailability{
		{ID: "u1", Date: "2024-06-13", Reason: "consulta"},
	}, nil)
	hols.On("Between", ctx, "2024-05-26", "2024-07-06").Return([]domain.Holiday{
		{Date: "2024-05-30", Name: "Corpus Christi", Type: domain.HolidayNational},
	}, nil)

	m, err := svc.ComputeMonth(ctx, 2024, 6)
	require.NoError(t, err)

	assert.Len(t, m.Days, 42)
	assert.Equal(t, "2024-05-26", m.Days[0].Date)
	assert.False(t, m.Days[0].InMonth)
	assert.Equal(t, []string{"09:15", "15:00"}, m.Slots)

	today := dayOf(t, m, "2024-06-10")
	assert.True(t, today.IsToday)
	assert.Equal(t, []string{"09:15"}, today.ElapsedSlots)
	assert.Equal(t, []string{"15:00"}, today.AvailableSlots)
	assert.Equal(t, domain.DayPartial, today.Status)
	assert.Equal(t, 0, today.MorningAvailable)
	assert.Equal(t, 1, today.AfternoonAvailable)

	partial := dayOf(t, m, "2024-06-11")
	assert.Equal(t, []string{"09:15"}, partial.OccupiedSlots)
	assert.Equal(t, domain.DayPartial, partial.Status)
	assert.Len(t, partial.Appointments, 1)

	assert.Equal(t, domain.DayBooked, dayOf(t, m, "2024-06-12").Status)

	blocked := dayOf(t, m, "2024-06-13")
	assert.Equal(t, domain.DayUnavailable, blocked.Status)
	assert.Empty(t, blocked.AvailableSlots)
	require.NotNil(t, blocked.Unavailability)

	free := dayOf(t, m, "2024-06-14")
	assert.Equal(t, domain.DayAvailable, free.Status)
	assert.Equal(t, 2, free.AvailableCount)

	assert.Equal(t, domain.DayWeekend, dayOf(t, m, "2024-06-15").Status)
	assert.Equal(t, domain.DayHoliday, dayOf(t, m, "2024-05-30").Status)
	assert.Equal(t, domain.DayPast, dayOf(t, m, "2024-06-07").Status)
}

func TestService_ComputeMonth_HolidayFailureDegrades(t *testing.T) {
	svc, appts, days, hols := newTestService(t, time.Date(2024, 6, 10, 8, 0, 0, 0, brt))
	ctx := context.Background()

	appts.On("ListScheduled", ctx, mock.Anything, mock.Anything).Return([]domain.Appointment{}, nil)
	days.On("List", ctx, mock.Anything, mock.Anything).Return([]domain.Unavailability{}, nil)
	hols.On("Between", ctx, mock.Anything, mock.Anything).Return(nil, errors.New("timeout"))

	m, err := svc.ComputeMonth(ctx, 2024, 6)
	require.NoError(t, err)
	assert.Empty(t, m.Holidays)
	assert.Equal(t, domain.DayAvailable, dayOf(t, m, "2024-06-10").Status)
}

func TestService_ComputeMonth_StoreFailureFails(t *testing.T) {
	svc, appts, days, _ := newTestService(t, time.Date(2024, 6, 10, 8, 0, 0, 0, brt))
	ctx := context.Background()

	appts.On("ListScheduled", ctx, mock.Anything, mock.Anything).Return(nil, errors.New("db down"))

	_, err := svc.ComputeMonth(ctx, 2024, 6)
	assert.Error(t, err)
	days.AssertNotCalled(t, "List", mock.Anything, mock.Anything, mock.Anything)

	_, err = svc.ComputeMonth(ctx, 2024, 13)
	assert.ErrorIs(t, err, ErrInvalidMonth)
}

func TestHandler_GetMonth_NoStore(t *testing.T) {
	gin.SetMode(gin.TestMode)
	now := time.Date(2024, 6, 10, 8, 0, 0, 0, brt)
	svc, appts, days, hols := newTestService(t, now)

	appts.On("ListScheduled", mock.Anything, "2024-05-26", "2024-07-06").Return([]domain.Appointment{}, nil)
	days.On("List", mock.Anything, "2024-05-26", "2024-07-06").Return([]domain.Unavailability{}, nil)
	hols.On("Between", mock.Anything, "2024-05-26", "2024-07-06").Return([]domain.Holiday{}, nil)

	r := gin.New()
	NewHandler(svc, schedule.NewFixedClock(brt, now)).RegisterRoutes(r.Group("/api/v1"))

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/v1/calendar", nil))

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Header().Get("Cache-Control"), "no-store")
	assert.Contains(t, w.Body.String(), `"month":6`)

	w = httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/v1/calendar?year=2024&month=0x", nil))
	assert.Equal(t, http.StatusBadRequest, w.Code)
}
