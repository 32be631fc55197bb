package create_reservation

import (
	"context"
	"fmt"
	"time"

	"github.com/lib/pq"
	"github.com/stretchr/testify/mock"

	"github.com/m04kA/ReDe-ReservationService/internal/domain"
	"github.com/m04kA/ReDe-ReservationService/pkg/txmanager"
)

type mockReservationRepo struct{ mock.Mock }

func (m *mockReservationRepo) Create(ctx context.Context, res *domain.Reservation) (*domain.Reservation, error) {
	args := m.Called(ctx, res)
	if v := args.Get(0); v != nil {
		return v.(*domain.Reservation), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockReservationRepo) CountActiveByUser(ctx context.Context, userID int64, now time.Time, excludeID *int64) (int, error) {
	args := m.Called(ctx, userID, now, excludeID)
	return args.Int(0), args.Error(1)
}

func (m *mockReservationRepo) FindOverlapping(ctx context.Context, facility domain.Facility, start, end time.Time, excludeID *int64) ([]*domain.Reservation, error) {
	args := m.Called(ctx, facility, start, end, excludeID)
	if v := args.Get(0); v != nil {
		return v.([]*domain.Reservation), args.Error(1)
	}
	return nil, args.Error(1)
}

type mockConfigRepo struct{ mock.Mock }

func (m *mockConfigRepo) GetByFacility(ctx context.Context, facility domain.Facility) (*domain.FacilityConfig, error) {
	args := m.Called(ctx, facility)
	if v := args.Get(0); v != nil {
		return v.(*domain.FacilityConfig), args.Error(1)
	}
	return nil, args.Error(1)
}

type mockDepositRepo struct{ mock.Mock }

func (m *mockDepositRepo) Get(ctx context.Context, userID int64) (*domain.Deposit, error) {
	args := m.Called(ctx, userID)
	if v := args.Get(0); v != nil {
		return v.(*domain.Deposit), args.Error(1)
	}
	return nil, args.Error(1)
}

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
func (m *mockMetrics) IncRejection(reason string)                { m.Called(reason) }

// fakeTxManager выполняет функцию без реальной транзакции
type fakeTxManager struct{}

func (fakeTxManager) DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

type fixedTime struct{ now time.Time }

func (f fixedTime) Now() time.Time { return f.now }

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

// conflictTxManager имитирует исчерпанные повторы сериализуемой транзакции
type conflictTxManager struct{}

func (conflictTxManager) DoSerializable(context.Context, func(ctx context.Context) error) error {
	return fmt.Errorf("%w: %w", txmanager.ErrSerialization, &pq.Error{Code: "40001"})
}
