package create_reservation

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/ReDe-ReservationService/internal/domain"
	configRepo "github.com/m04kA/ReDe-ReservationService/internal/infra/storage/config"
)

type fixture struct {
	reservations *mockReservationRepo
	configs      *mockConfigRepo
	deposits     *mockDepositRepo
	publisher    *mockPublisher
	metrics      *mockMetrics
	uc           *UseCase
}

var madrid = func() *time.Location {
	loc, err := time.LoadLocation("Europe/Madrid")
	if err != nil {
		panic(err)
	}
	return loc
}()

// now: 10 мая 2026, 09:30 по Мадриду
var now = time.Date(2026, 5, 10, 9, 30, 0, 0, madrid)

func newFixture(depositEnabled bool) *fixture {
	f := &fixture{
		reservations: &mockReservationRepo{},
		configs:      &mockConfigRepo{},
		deposits:     &mockDepositRepo{},
		publisher:    &mockPublisher{},
		metrics:      &mockMetrics{},
	}

	rules := domain.DefaultBookingRules(madrid)
	rules.DepositEnabled = depositEnabled

	f.uc = NewUseCase(f.reservations, f.configs, f.deposits, fakeTxManager{}, f.publisher, f.metrics, rules, nopLogger{})
	f.uc.timeProvider = fixedTime{now: now}
	return f
}

func (f *fixture) assertExpectations(t *testing.T) {
	f.reservations.AssertExpectations(t)
	f.configs.AssertExpectations(t)
	f.deposits.AssertExpectations(t)
	f.publisher.AssertExpectations(t)
	f.metrics.AssertExpectations(t)
}

func slot(hour int) (time.Time, time.Time) {
	start := time.Date(2026, 5, 10, hour, 0, 0, 0, madrid)
	return start, start.Add(time.Hour)
}

func TestExecute_Success(t *testing.T) {
	f := newFixture(true)
	ctx := context.Background()
	start, end := slot(18)

	f.configs.On("GetByFacility", ctx, domain.FacilityPadel).Return(nil, configRepo.ErrConfigNotFound)
	f.deposits.On("Get", ctx, int64(7)).Return(&domain.Deposit{UserID: 7, Amount: 4}, nil)
	f.reservations.On("CountActiveByUser", ctx, int64(7), now, (*int64)(nil)).Return(2, nil)
	f.reservations.On("FindOverlapping", ctx, domain.FacilityPadel, start, end, (*int64)(nil)).Return([]*domain.Reservation{}, nil)
	f.reservations.On("Create", ctx, mock.MatchedBy(func(r *domain.Reservation) bool {
		return r.UserID == 7 && r.Facility == domain.FacilityPadel && r.StartTime.Equal(start) && r.EndTime.Equal(end)
	})).Return(&domain.Reservation{ID: 11, UserID: 7, Facility: domain.FacilityPadel, StartTime: start, EndTime: end}, nil)
	f.deposits.On("Add", ctx, int64(7), 2).Return(6, nil)
	f.metrics.On("IncReservation", "create", "padel").Return()
	f.publisher.On("Publish", ctx, mock.MatchedBy(func(e domain.ReservationEvent) bool {
		return e.Type == domain.EventReservationCreated && e.ReservationID == 11
	})).Return(nil)

	resp, err := f.uc.Execute(ctx, &Request{UserID: 7, Facility: "padel", StartTime: start, EndTime: end})
	require.NoError(t, err)
	assert.Equal(t, int64(11), resp.Reservation.ID)
	require.NotNil(t, resp.Deposit)
	assert.Equal(t, 6, *resp.Deposit)
	f.assertExpectations(t)
}

func TestExecute_UTCInputIsConvertedToLocalZone(t *testing.T) {
	f := newFixture(false)
	ctx := context.Background()
	start, end := slot(8)

	f.configs.On("GetByFacility", ctx, domain.FacilityPool1).Return(nil, configRepo.ErrConfigNotFound)
	f.reservations.On("CountActiveByUser", ctx, int64(7), now, (*int64)(nil)).Return(0, nil)
	f.reservations.On("FindOverlapping", ctx, domain.FacilityPool1, mock.Anything, mock.Anything, (*int64)(nil)).Return(nil, nil)
	f.reservations.On("Create", ctx, mock.Anything).Return(&domain.Reservation{ID: 1, Facility: domain.FacilityPool1}, nil)
	f.metrics.On("IncReservation", "create", "piscina1").Return()
	f.publisher.On("Publish", ctx, mock.Anything).Return(nil)

	// 08:00 по Мадриду в мае = 06:00 UTC
	resp, err := f.uc.Execute(ctx, &Request{UserID: 7, Facility: "Piscina1", StartTime: start.UTC(), EndTime: end.UTC()})
	require.NoError(t, err)
	assert.Nil(t, resp.Deposit)
	f.assertExpectations(t)
}

func TestExecute_IntervalRejections(t *testing.T) {
	start, end := slot(18)

	cases := []struct {
		name       string
		start, end time.Time
		want       error
		reason     string
	}{
		{"not on the hour", start.Add(30 * time.Minute), end.Add(30 * time.Minute), domain.ErrNotOnTheHour, "not_on_the_hour"},
		{"two hours", start, end.Add(time.Hour), domain.ErrInvalidDuration, "invalid_duration"},
		{"in past", start.Add(-10 * time.Hour), end.Add(-10 * time.Hour), domain.ErrInPast, "in_past"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			f := newFixture(false)
			f.metrics.On("IncRejection", tc.reason).Return()

			_, err := f.uc.Execute(context.Background(), &Request{UserID: 7, Facility: "padel", StartTime: tc.start, EndTime: tc.end})
			assert.ErrorIs(t, err, tc.want)
			f.assertExpectations(t)
		})
	}
}

func TestExecute_OutsideOpeningHours(t *testing.T) {
	f := newFixture(false)
	ctx := context.Background()
	start, end := slot(22)

	f.configs.On("GetByFacility", ctx, domain.FacilityFootball).Return(nil, configRepo.ErrConfigNotFound)
	f.metrics.On("IncRejection", "outside_opening_hours").Return()

	_, err := f.uc.Execute(ctx, &Request{UserID: 7, Facility: "futbol", StartTime: start, EndTime: end})
	assert.ErrorIs(t, err, domain.ErrOutsideOpeningHours)
	f.assertExpectations(t)
}

func TestExecute_FacilityClosed(t *testing.T) {
	f := newFixture(false)
	ctx := context.Background()
	start, end := slot(12)

	f.configs.On("GetByFacility", ctx, domain.FacilityPool2).
		Return(&domain.FacilityConfig{Facility: domain.FacilityPool2, OpenHour: 8, CloseHour: 22, IsOpen: false}, nil)
	f.metrics.On("IncRejection", "facility_closed").Return()

	_, err := f.uc.Execute(ctx, &Request{UserID: 7, Facility: "piscina2", StartTime: start, EndTime: end})
	assert.ErrorIs(t, err, domain.ErrFacilityClosed)
	f.assertExpectations(t)
}

func TestExecute_DepositLimit(t *testing.T) {
	f := newFixture(true)
	ctx := context.Background()
	start, end := slot(12)

	f.configs.On("GetByFacility", ctx, domain.FacilityPadel).Return(nil, configRepo.ErrConfigNotFound)
	f.deposits.On("Get", ctx, int64(7)).Return(&domain.Deposit{UserID: 7, Amount: 10}, nil)
	f.metrics.On("IncRejection", "deposit_limit").Return()

	_, err := f.uc.Execute(ctx, &Request{UserID: 7, Facility: "padel", StartTime: start, EndTime: end})
	assert.ErrorIs(t, err, domain.ErrDepositLimit)
	f.assertExpectations(t)
}

func TestExecute_TooManyActive(t *testing.T) {
	f := newFixture(false)
	ctx := context.Background()
	start, end := slot(12)

	f.configs.On("GetByFacility", ctx, domain.FacilityPadel).Return(nil, configRepo.ErrConfigNotFound)
	f.reservations.On("CountActiveByUser", ctx, int64(7), now, (*int64)(nil)).Return(3, nil)
	f.metrics.On("IncRejection", "too_many_active").Return()

	_, err := f.uc.Execute(ctx, &Request{UserID: 7, Facility: "padel", StartTime: start, EndTime: end})
	assert.ErrorIs(t, err, domain.ErrTooManyActive)
	f.assertExpectations(t)
}

func TestExecute_SlotTaken(t *testing.T) {
	f := newFixture(false)
	ctx := context.Background()
	start, end := slot(12)

	f.configs.On("GetByFacility", ctx, domain.FacilityPadel).Return(nil, configRepo.ErrConfigNotFound)
	f.reservations.On("CountActiveByUser", ctx, int64(7), now, (*int64)(nil)).Return(0, nil)
	f.reservations.On("FindOverlapping", ctx, domain.FacilityPadel, start, end, (*int64)(nil)).
		Return([]*domain.Reservation{{ID: 3, UserID: 8}}, nil)
	f.metrics.On("IncRejection", "slot_taken").Return()

	_, err := f.uc.Execute(ctx, &Request{UserID: 7, Facility: "padel", StartTime: start, EndTime: end})
	assert.ErrorIs(t, err, domain.ErrSlotTaken)
	f.assertExpectations(t)
}

func TestExecute_ConcurrentWriteReportedAsSlotTaken(t *testing.T) {
	f := newFixture(false)
	f.uc.txManager = conflictTxManager{}
	ctx := context.Background()
	start, end := slot(12)

	f.configs.On("GetByFacility", ctx, domain.FacilityPadel).Return(nil, configRepo.ErrConfigNotFound)
	f.metrics.On("IncRejection", "slot_taken").Return()

	_, err := f.uc.Execute(ctx, &Request{UserID: 7, Facility: "padel", StartTime: start, EndTime: end})
	assert.ErrorIs(t, err, domain.ErrSlotTaken)
	f.assertExpectations(t)
}

func TestExecute_InvalidInput(t *testing.T) {
	f := newFixture(false)
	start, end := slot(12)

	_, err := f.uc.Execute(context.Background(), &Request{UserID: 7, Facility: "tenis", StartTime: start, EndTime: end})
	assert.ErrorIs(t, err, ErrInvalidInput)

	_, err = f.uc.Execute(context.Background(), &Request{UserID: 0, Facility: "padel", StartTime: start, EndTime: end})
	assert.ErrorIs(t, err, ErrInvalidInput)

	_, err = f.uc.Execute(context.Background(), &Request{UserID: 7, Facility: "padel"})
	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestExecute_RepositoryError(t *testing.T) {
	f := newFixture(false)
	ctx := context.Background()
	start, end := slot(12)

	f.configs.On("GetByFacility", ctx, domain.FacilityPadel).Return(nil, configRepo.ErrConfigNotFound)
	f.reservations.On("CountActiveByUser", ctx, int64(7), now, (*int64)(nil)).Return(0, errors.New("connection reset"))

	_, err := f.uc.Execute(ctx, &Request{UserID: 7, Facility: "padel", StartTime: start, EndTime: end})
	assert.ErrorIs(t, err, ErrInternal)
	f.assertExpectations(t)
}

func TestExecute_PublishFailureDoesNotFailRequest(t *testing.T) {
	f := newFixture(false)
	ctx := context.Background()
	start, end := slot(12)

	f.configs.On("GetByFacility", ctx, domain.FacilityPadel).Return(nil, configRepo.ErrConfigNotFound)
	f.reservations.On("CountActiveByUser", ctx, int64(7), now, (*int64)(nil)).Return(0, nil)
	f.reservations.On("FindOverlapping", ctx, domain.FacilityPadel, start, end, (*int64)(nil)).Return(nil, nil)
	f.reservations.On("Create", ctx, mock.Anything).Return(&domain.Reservation{ID: 5, Facility: domain.FacilityPadel}, nil)
	f.metrics.On("IncReservation", "create", "padel").Return()
	f.publisher.On("Publish", ctx, mock.Anything).Return(errors.New("broker down"))

	resp, err := f.uc.Execute(ctx, &Request{UserID: 7, Facility: "padel", StartTime: start, EndTime: end})
	require.NoError(t, err)
	assert.Equal(t, int64(5), resp.Reservation.ID)
	f.assertExpectations(t)
}
