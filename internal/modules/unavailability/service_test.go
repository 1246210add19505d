package unavailability

import (
	"context"
	"errors"
	"testing"
	"time"

	"diligencias/internal/domain"
	"diligencias/internal/repository"
	"diligencias/internal/schedule"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type MockRepository struct {
	mock.Mock
}

func (m *MockRepository) Create(ctx context.Context, u *domain.Unavailability) error {
	return m.Called(ctx, u).Error(0)
}

func (m *MockRepository) List(ctx context.Context, from, to string) ([]domain.Unavailability, error) {
	args := m.Called(ctx, from, to)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Unavailability), args.Error(1)
}

func (m *MockRepository) Delete(ctx context.Context, id string) (*domain.Unavailability, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Unavailability), args.Error(1)
}

type MockEventPublisher struct {
	mock.Mock
}

func (m *MockEventPublisher) UnavailabilityChanged(ctx context.Context, u *domain.Unavailability, removed bool) {
	m.Called(ctx, u, removed)
}

func newTestService() (*Service, *MockRepository, *MockEventPublisher) {
	repo := new(MockRepository)
	events := new(MockEventPublisher)
	clock := schedule.NewFixedClock(time.UTC, time.Date(2024, 6, 10, 12, 0, 0, 0, time.UTC))
	return NewService(repo, events, clock, zap.NewNop()), repo, events
}

func TestService_Create(t *testing.T) {
	ctx := context.Background()

	t.Run("success", func(t *testing.T) {
		svc, repo, events := newTestService()
		repo.On("Create", ctx, mock.MatchedBy(func(u *domain.Unavailability) bool {
			return u.Date == "2024-06-12" && u.Reason == "consulta médica" && u.ID != ""
		})).Return(nil)
		events.On("UnavailabilityChanged", ctx, mock.Anything, false).Return()

		u, err := svc.Create(ctx, CreateRequest{Date: "2024-06-12", Reason: " consulta médica "})
		require.NoError(t, err)
		assert.Equal(t, "2024-06-12", u.Date)
		events.AssertExpectations(t)
	})

	t.Run("day has appointments", func(t *testing.T) {
		svc, repo, events := newTestService()
		repo.On("Create", ctx, mock.Anything).Return(repository.ErrDayHasAppointments)

		_, err := svc.Create(ctx, CreateRequest{Date: "2024-06-12"})
		assert.ErrorIs(t, err, ErrHasAppointments)
		events.AssertNotCalled(t, "UnavailabilityChanged", mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("already blocked", func(t *testing.T) {
		svc, repo, _ := newTestService()
		repo.On("Create", ctx, mock.Anything).Return(repository.ErrDuplicate)

		_, err := svc.Create(ctx, CreateRequest{Date: "2024-06-12"})
		assert.ErrorIs(t, err, ErrAlreadyBlocked)
	})

	t.Run("validation", func(t *testing.T) {
		svc, repo, _ := newTestService()

		_, err := svc.Create(ctx, CreateRequest{Date: "2024-6-12"})
		assert.ErrorIs(t, err, ErrInvalidDate)
		_, err = svc.Create(ctx, CreateRequest{Date: "2024-06-09"})
		assert.ErrorIs(t, err, ErrPastDate)
		repo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
	})
}

func TestService_Delete(t *testing.T) {
	ctx := context.Background()
	svc, repo, events := newTestService()

	u := &domain.Unavailability{ID: "u1", Date: "2024-06-12"}
	repo.On("Delete", ctx, "u1").Return(u, nil)
	repo.On("Delete", ctx, "missing").Return(nil, repository.ErrNotFound)
	repo.On("Delete", ctx, "broken").Return(nil, errors.New("db down"))
	events.On("UnavailabilityChanged", ctx, u, true).Return()

	require.NoError(t, svc.Delete(ctx, "u1"))
	assert.ErrorIs(t, svc.Delete(ctx, "missing"), ErrNotFound)
	assert.Error(t, svc.Delete(ctx, "broken"))
	events.AssertExpectations(t)
}

func TestService_List(t *testing.T) {
	svc, repo, _ := newTestService()
	ctx := context.Background()

	repo.On("List", ctx, "2024-06-01", "").Return([]domain.Unavailability{{ID: "u1", Date: "2024-06-12"}}, nil)

	list, err := svc.List(ctx, ListQuery{From: "2024-06-01"})
	require.NoError(t, err)
	assert.Len(t, list, 1)

	_, err = svc.List(ctx, ListQuery{To: "june"})
	assert.ErrorIs(t, err, ErrInvalidDate)
}
