package repository

import (
	"context"
	"errors"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"diligencias/internal/database"
	"diligencias/internal/domain"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := database.Connect(filepath.Join(t.TempDir(), "test.db"), zap.NewNop())
	require.NoError(t, err)
	require.NoError(t, database.Migrate(db))
	t.Cleanup(func() {
		if sqlDB, err := db.DB(); err == nil {
			_ = sqlDB.Close()
		}
	})
	return db
}

func newAppointment(date, slot string) *domain.Appointment {
	return &domain.Appointment{
		ID:            uuid.NewString(),
		RequesterName: "Maria Souza",
		Date:          date,
		Slot:          slot,
		CEP:           "88010-000",
		Street:        "Rua Felipe Schmidt",
		Number:        "100",
		District:      "Centro",
		City:          "Florianópolis",
		State:         "SC",
	}
}

func TestAppointmentRepository_CreateAndSlotExclusivity(t *testing.T) {
	db := newTestDB(t)
	repo := NewAppointmentRepository(db)
	ctx := context.Background()

	first := newAppointment("2024-06-11", "09:15")
	require.NoError(t, repo.Create(ctx, first))
	assert.Equal(t, domain.AppointmentScheduled, first.Status)
	assert.False(t, first.CreatedAt.IsZero())

	err := repo.Create(ctx, newAppointment("2024-06-11", "09:15"))
	assert.ErrorIs(t, err, ErrDuplicate)

	taken, err := repo.IsSlotTaken(ctx, "2024-06-11", "09:15")
	require.NoError(t, err)
	assert.True(t, taken)

	// a cancelled visit frees the slot
	_, err = repo.Cancel(ctx, first.ID, "Recepção", time.Now())
	require.NoError(t, err)
	require.NoError(t, repo.Create(ctx, newAppointment("2024-06-11", "09:15")))
}

func TestAppointmentRepository_CreateOnBlockedDay(t *testing.T) {
	db := newTestDB(t)
	repo := NewAppointmentRepository(db)
	days := NewUnavailabilityRepository(db)
	ctx := context.Background()

	require.NoError(t, days.Create(ctx, &domain.Unavailability{ID: uuid.NewString(), Date: "2024-06-12", Reason: "consulta médica"}))

	err := repo.Create(ctx, newAppointment("2024-06-12", "10:00"))
	assert.ErrorIs(t, err, ErrDayBlocked)

	list, err := repo.List(ctx, domain.AppointmentFilter{})
	require.NoError(t, err)
	assert.Empty(t, list)
}

func TestAppointmentRepository_ConcurrentCreate(t *testing.T) {
	db := newTestDB(t)
	repo := NewAppointmentRepository(db)
	ctx := context.Background()

	const workers = 8
	var (
		wg        sync.WaitGroup
		mu        sync.Mutex
		succeeded int
		conflicts int
	)
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			err := repo.Create(ctx, newAppointment("2024-06-13", "14:00"))
			mu.Lock()
			defer mu.Unlock()
			switch {
			case err == nil:
				succeeded++
			case errors.Is(err, ErrDuplicate):
				conflicts++
			}
		}()
	}
	wg.Wait()

	assert.Equal(t, 1, succeeded)
	assert.Equal(t, workers-1, conflicts)
}

func TestBookingAndBlockingSameDayAreExclusive(t *testing.T) {
	db := newTestDB(t)
	appts := NewAppointmentRepository(db)
	days := NewUnavailabilityRepository(db)
	ctx := context.Background()

	dates := []string{"2024-07-01", "2024-07-02", "2024-07-03", "2024-07-04", "2024-07-05"}
	var wg sync.WaitGroup
	for _, date := range dates {
		wg.Add(2)
		go func(date string) {
			defer wg.Done()
			_ = appts.Create(ctx, newAppointment(date, "09:15"))
		}(date)
		go func(date string) {
			defer wg.Done()
			_ = days.Create(ctx, &domain.Unavailability{ID: uuid.NewString(), Date: date})
		}(date)
	}
	wg.Wait()

	for _, date := range dates {
		booked, err := appts.HasScheduledOn(ctx, date)
		require.NoError(t, err)
		blocked, err := days.GetByDate(ctx, date)
		require.NoError(t, err)
		assert.True(t, booked != (blocked != nil), "date %s must be either booked or blocked", date)
	}
}

func TestDayLockStatement(t *testing.T) {
	assert.Contains(t, dayLockStatement("postgres"), "pg_advisory_xact_lock")
	assert.Empty(t, dayLockStatement("sqlite"))
	assert.NoError(t, lockDay(newTestDB(t), "2024-07-01"))
}

func TestAppointmentRepository_CancelIsConditional(t *testing.T) {
	db := newTestDB(t)
	repo := NewAppointmentRepository(db)
	ctx := context.Background()

	a := newAppointment("2024-06-14", "15:00")
	require.NoError(t, repo.Create(ctx, a))

	cancelled, err := repo.Cancel(ctx, a.ID, "Sistema", time.Now())
	require.NoError(t, err)
	assert.Equal(t, domain.AppointmentCancelled, cancelled.Status)
	assert.Equal(t, "Sistema", cancelled.CancelledBy)
	require.NotNil(t, cancelled.CancelledAt)

	_, err = repo.Cancel(ctx, a.ID, "Sistema", time.Now())
	assert.ErrorIs(t, err, ErrStatusChanged)

	_, err = repo.GetByID(ctx, uuid.NewString())
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestAppointmentRepository_Complete(t *testing.T) {
	db := newTestDB(t)
	repo := NewAppointmentRepository(db)
	receipts := NewReceiptRepository(db)
	ctx := context.Background()

	a := newAppointment("2024-06-17", "08:45")
	require.NoError(t, repo.Create(ctx, a))

	rec := &domain.Receipt{ID: uuid.NewString(), Amount: 85.5}
	done, err := repo.Complete(ctx, a.ID, rec, time.Now())
	require.NoError(t, err)
	assert.Equal(t, domain.AppointmentCompleted, done.Status)
	require.NotNil(t, done.CompletedAt)

	_, err = repo.Complete(ctx, a.ID, &domain.Receipt{ID: uuid.NewString(), Amount: 10}, time.Now())
	assert.ErrorIs(t, err, ErrStatusChanged)

	exists, err := receipts.ExistsForAppointment(ctx, a.ID)
	require.NoError(t, err)
	assert.True(t, exists)

	list, err := receipts.List(ctx)
	require.NoError(t, err)
	require.Len(t, list, 1)
	require.NotNil(t, list[0].Appointment)
	assert.Equal(t, a.ID, list[0].Appointment.ID)
	assert.InDelta(t, 85.5, list[0].Amount, 0.001)

	inJune, err := receipts.ListByAppointmentDate(ctx, "2024-06-01", "2024-06-30")
	require.NoError(t, err)
	assert.Len(t, inJune, 1)

	inJuly, err := receipts.ListByAppointmentDate(ctx, "2024-07-01", "2024-07-31")
	require.NoError(t, err)
	assert.Empty(t, inJuly)
}

func TestAppointmentRepository_CompletedWithoutReceipt(t *testing.T) {
	db := newTestDB(t)
	repo := NewAppointmentRepository(db)
	ctx := context.Background()

	legacy := newAppointment("2024-05-20", "09:00")
	legacy.Status = domain.AppointmentCompleted
	require.NoError(t, db.Create(legacy).Error)

	withReceipt := newAppointment("2024-05-21", "09:00")
	require.NoError(t, repo.Create(ctx, withReceipt))
	_, err := repo.Complete(ctx, withReceipt.ID, &domain.Receipt{ID: uuid.NewString(), Amount: 50}, time.Now())
	require.NoError(t, err)

	missing, err := repo.ListCompletedWithoutReceipt(ctx)
	require.NoError(t, err)
	require.Len(t, missing, 1)
	assert.Equal(t, legacy.ID, missing[0].ID)
}

func TestAppointmentRepository_ListFilters(t *testing.T) {
	db := newTestDB(t)
	repo := NewAppointmentRepository(db)
	ctx := context.Background()

	require.NoError(t, repo.Create(ctx, newAppointment("2024-06-10", "14:00")))
	require.NoError(t, repo.Create(ctx, newAppointment("2024-06-10", "09:00")))
	late := newAppointment("2024-06-20", "09:00")
	require.NoError(t, repo.Create(ctx, late))
	_, err := repo.Cancel(ctx, late.ID, "Sistema", time.Now())
	require.NoError(t, err)

	all, err := repo.List(ctx, domain.AppointmentFilter{})
	require.NoError(t, err)
	require.Len(t, all, 3)
	assert.Equal(t, "2024-06-20", all[0].Date)
	assert.Equal(t, "09:00", all[1].Slot)

	scheduled, err := repo.List(ctx, domain.AppointmentFilter{Status: domain.AppointmentScheduled})
	require.NoError(t, err)
	assert.Len(t, scheduled, 2)

	window, err := repo.ListScheduled(ctx, "2024-06-10", "2024-06-10")
	require.NoError(t, err)
	require.Len(t, window, 2)
	assert.Equal(t, "09:00", window[0].Slot)

	has, err := repo.HasScheduledOn(ctx, "2024-06-20")
	require.NoError(t, err)
	assert.False(t, has)
}

func TestUnavailabilityRepository(t *testing.T) {
	db := newTestDB(t)
	appts := NewAppointmentRepository(db)
	repo := NewUnavailabilityRepository(db)
	ctx := context.Background()

	require.NoError(t, appts.Create(ctx, newAppointment("2024-06-18", "10:00")))

	err := repo.Create(ctx, &domain.Unavailability{ID: uuid.NewString(), Date: "2024-06-18"})
	assert.ErrorIs(t, err, ErrDayHasAppointments)

	u := &domain.Unavailability{ID: uuid.NewString(), Date: "2024-06-19", Reason: "folga"}
	require.NoError(t, repo.Create(ctx, u))
	assert.Equal(t, "folga", u.Reason)

	err = repo.Create(ctx, &domain.Unavailability{ID: uuid.NewString(), Date: "2024-06-19"})
	assert.ErrorIs(t, err, ErrDuplicate)

	found, err := repo.GetByDate(ctx, "2024-06-19")
	require.NoError(t, err)
	require.NotNil(t, found)

	none, err := repo.GetByDate(ctx, "2024-06-21")
	require.NoError(t, err)
	assert.Nil(t, none)

	list, err := repo.List(ctx, "2024-06-01", "2024-06-30")
	require.NoError(t, err)
	assert.Len(t, list, 1)

	_, err = repo.Delete(ctx, u.ID)
	require.NoError(t, err)
	_, err = repo.Delete(ctx, u.ID)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestAuditLogRepository(t *testing.T) {
	db := newTestDB(t)
	appts := NewAppointmentRepository(db)
	repo := NewAuditLogRepository(db)
	ctx := context.Background()

	a := newAppointment("2024-06-11", "11:00")
	require.NoError(t, appts.Create(ctx, a))

	for i := 0; i < 3; i++ {
		require.NoError(t, repo.Create(ctx, &domain.AuditLog{
			ID:            uuid.NewString(),
			Action:        domain.ActionAppointmentCreated,
			AppointmentID: &a.ID,
			Actor:         a.RequesterName,
			CreatedAt:     time.Now().Add(time.Duration(i) * time.Second),
		}))
	}

	logs, err := repo.List(ctx, 2)
	require.NoError(t, err)
	require.Len(t, logs, 2)
	require.NotNil(t, logs[0].Appointment)
	assert.Equal(t, a.ID, logs[0].Appointment.ID)
}

func TestPushTokenRepository(t *testing.T) {
	db := newTestDB(t)
	repo := NewPushTokenRepository(db)
	ctx := context.Background()

	require.NoError(t, repo.Upsert(ctx, "ExponentPushToken[a]", "android"))
	require.NoError(t, repo.Upsert(ctx, "ExponentPushToken[a]", "ios"))
	require.NoError(t, repo.Upsert(ctx, "ExponentPushToken[b]", "ios"))

	tokens, err := repo.ListTokens(ctx)
	require.NoError(t, err)
	assert.ElementsMatch(t, []string{"ExponentPushToken[a]", "ExponentPushToken[b]"}, tokens)

	require.NoError(t, repo.Delete(ctx, "ExponentPushToken[a]"))
	tokens, err = repo.ListTokens(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"ExponentPushToken[b]"}, tokens)
}
