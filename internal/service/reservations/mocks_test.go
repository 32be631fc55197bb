package reservations

import (
	"context"
	"time"

	"github.com/stretchr/testify/mock"

	"github.com/m04kA/ReDe-ReservationService/internal/domain"
)

type mockReservationRepo struct{ mock.Mock }

func (m *mockReservationRepo) GetByID(ctx context.Context, id int64) (*domain.Reservation, error) {
	args := m.Called(ctx, id)
	if v := args.Get(0); v != nil {
		return v.(*domain.Reservation), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockReservationRepo) Delete(ctx context.Context, id int64) error {
	return m.Called(ctx, id).Error(0)
}

func (m *mockReservationRepo) ListActiveByUser(ctx context.Context, userID int64, now time.Time) ([]*domain.Reservation, error) {
	args := m.Called(ctx, userID, now)
	if v := args.Get(0); v != nil {
		return v.([]*domain.Reservation), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockReservationRepo) ListHistoryByUser(ctx context.Context, userID int64, now time.Time) ([]*domain.Reservation, error) {
	args := m.Called(ctx, userID, now)
	if v := args.Get(0); v != nil {
		return v.([]*domain.Reservation), args.Error(1)
	}
	return nil, args.Error(1)
}

type mockDepositRepo struct{ mock.Mock }

func (m *mockDepositRepo) Add(ctx context.Context, userID int64, delta int) (int, error) {
	args := m.Called(ctx, userID, delta)
	return args.Int(0), args.Error(1)
}

type mockPublisher struct{ mock.Mock }

func (m *mockPublisher) Publish(ctx context.Context, event domain.ReservationEvent) error {
	return m.Called(ctx, event).Error(0)
}

type mockMetrics struct{ mock.Mock }

func (m *mockMetrics) IncReservation(operation, facility string) { m.Called(operation, facility) }

type fakeTxManager struct{}

func (fakeTxManager) DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}
