package update_reservation

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/ReDe-ReservationService/internal/domain"
	configRepo "github.com/m04kA/ReDe-ReservationService/internal/infra/storage/config"
	reservationRepo "github.com/m04kA/ReDe-ReservationService/internal/infra/storage/reservation"
	"github.com/m04kA/ReDe-ReservationService/pkg/ptr"
)

var (
	ctx = context.Background()
	now = time.Date(2026, 5, 10, 9, 30, 0, 0, time.UTC)
)

func at(hour int) time.Time {
	return time.Date(2026, 5, 10, hour, 0, 0, 0, time.UTC)
}

type fixture struct {
	reservations *mockReservationRepo
	configs      *mockConfigRepo
	publisher    *mockPublisher
	metrics      *mockMetrics
	uc           *UseCase
}

func newFixture() *fixture {
	f := &fixture{
		reservations: &mockReservationRepo{},
		configs:      &mockConfigRepo{},
		publisher:    &mockPublisher{},
		metrics:      &mockMetrics{},
	}
	f.uc = NewUseCase(f.reservations, f.configs, fakeTxManager{}, f.publisher, f.metrics,
		domain.DefaultBookingRules(time.UTC), nopLogger{})
	f.uc.timeProvider = fixedTime{now: now}
	return f
}

func (f *fixture) assertExpectations(t *testing.T) {
	f.reservations.AssertExpectations(t)
	f.configs.AssertExpectations(t)
	f.publisher.AssertExpectations(t)
	f.metrics.AssertExpectations(t)
}

func existing() *domain.Reservation {
	return &domain.Reservation{ID: 4, UserID: 7, Facility: domain.FacilityPadel, StartTime: at(12), EndTime: at(13)}
}

func TestExecute_ChangeFacilityKeepsTime(t *testing.T) {
	f := newFixture()

	f.reservations.On("GetByID", ctx, int64(4)).Return(existing(), nil)
	f.configs.On("GetByFacility", ctx, domain.FacilityBasketball).Return(nil, configRepo.ErrConfigNotFound)
	f.reservations.On("CountActiveByUser", ctx, int64(7), now, ptr.Ptr(int64(4))).Return(2, nil)
	f.reservations.On("FindOverlapping", ctx, domain.FacilityBasketball, at(12), at(13), ptr.Ptr(int64(4))).Return(nil, nil)
	f.reservations.On("Update", ctx, mock.MatchedBy(func(r *domain.Reservation) bool {
		return r.ID == 4 && r.Facility == domain.FacilityBasketball && r.StartTime.Equal(at(12))
	})).Return(&domain.Reservation{ID: 4, UserID: 7, Facility: domain.FacilityBasketball, StartTime: at(12), EndTime: at(13)}, nil)
	f.metrics.On("IncReservation", "update", "baloncesto").Return()
	f.publisher.On("Publish", ctx, mock.MatchedBy(func(e domain.ReservationEvent) bool {
		return e.Type == domain.EventReservationUpdated
	})).Return(nil)

	resp, err := f.uc.Execute(ctx, &Request{UserID: 7, ReservationID: 4, Facility: ptr.Ptr("Baloncesto")})
	require.NoError(t, err)
	assert.Equal(t, domain.FacilityBasketball, resp.Reservation.Facility)
	f.assertExpectations(t)
}

func TestExecute_ForeignReservationIsNotFound(t *testing.T) {
	f := newFixture()

	foreign := existing()
	foreign.UserID = 8
	f.reservations.On("GetByID", ctx, int64(4)).Return(foreign, nil)

	_, err := f.uc.Execute(ctx, &Request{UserID: 7, ReservationID: 4, StartTime: ptr.Ptr(at(14)), EndTime: ptr.Ptr(at(15))})
	assert.ErrorIs(t, err, ErrReservationNotFound)
	f.assertExpectations(t)
}

func TestExecute_MissingReservation(t *testing.T) {
	f := newFixture()
	f.reservations.On("GetByID", ctx, int64(4)).Return(nil, reservationRepo.ErrReservationNotFound)

	_, err := f.uc.Execute(ctx, &Request{UserID: 7, ReservationID: 4, Facility: ptr.Ptr("padel")})
	assert.ErrorIs(t, err, ErrReservationNotFound)
}

func TestExecute_OnlyStartBreaksDuration(t *testing.T) {
	f := newFixture()
	f.reservations.On("GetByID", ctx, int64(4)).Return(existing(), nil)
	f.metrics.On("IncRejection", "invalid_duration").Return()

	_, err := f.uc.Execute(ctx, &Request{UserID: 7, ReservationID: 4, StartTime: ptr.Ptr(at(11))})
	assert.ErrorIs(t, err, domain.ErrInvalidDuration)
	f.assertExpectations(t)
}

func TestExecute_SlotTakenByOther(t *testing.T) {
	f := newFixture()
	f.reservations.On("GetByID", ctx, int64(4)).Return(existing(), nil)
	f.configs.On("GetByFacility", ctx, domain.FacilityPadel).Return(nil, configRepo.ErrConfigNotFound)
	f.reservations.On("CountActiveByUser", ctx, int64(7), now, ptr.Ptr(int64(4))).Return(0, nil)
	f.reservations.On("FindOverlapping", ctx, domain.FacilityPadel, at(15), at(16), ptr.Ptr(int64(4))).
		Return([]*domain.Reservation{{ID: 9}}, nil)
	f.metrics.On("IncRejection", "slot_taken").Return()

	_, err := f.uc.Execute(ctx, &Request{UserID: 7, ReservationID: 4, StartTime: ptr.Ptr(at(15)), EndTime: ptr.Ptr(at(16))})
	assert.ErrorIs(t, err, domain.ErrSlotTaken)
	f.assertExpectations(t)
}

func TestExecute_ConcurrentWriteReportedAsSlotTaken(t *testing.T) {
	f := newFixture()
	f.uc.txManager = conflictTxManager{}
	f.metrics.On("IncRejection", "slot_taken").Return()

	_, err := f.uc.Execute(ctx, &Request{UserID: 7, ReservationID: 4, StartTime: ptr.Ptr(at(15)), EndTime: ptr.Ptr(at(16))})
	assert.ErrorIs(t, err, domain.ErrSlotTaken)
	f.assertExpectations(t)
}

func TestExecute_CapExcludesItself(t *testing.T) {
	f := newFixture()
	f.reservations.On("GetByID", ctx, int64(4)).Return(existing(), nil)
	f.configs.On("GetByFacility", ctx, domain.FacilityPadel).Return(nil, configRepo.ErrConfigNotFound)
	f.reservations.On("CountActiveByUser", ctx, int64(7), now, ptr.Ptr(int64(4))).Return(3, nil)
	f.metrics.On("IncRejection", "too_many_active").Return()

	_, err := f.uc.Execute(ctx, &Request{UserID: 7, ReservationID: 4, StartTime: ptr.Ptr(at(15)), EndTime: ptr.Ptr(at(16))})
	assert.ErrorIs(t, err, domain.ErrTooManyActive)
	f.assertExpectations(t)
}

func TestExecute_InvalidInput(t *testing.T) {
	f := newFixture()

	_, err := f.uc.Execute(ctx, &Request{UserID: 7, ReservationID: 4})
	assert.ErrorIs(t, err, ErrInvalidInput)

	_, err = f.uc.Execute(ctx, &Request{UserID: 7, ReservationID: 4, Facility: ptr.Ptr("golf")})
	assert.ErrorIs(t, err, ErrInvalidInput)

	_, err = f.uc.Execute(ctx, &Request{UserID: 7, ReservationID: 0, Facility: ptr.Ptr("padel")})
	assert.ErrorIs(t, err, ErrInvalidInput)
}
