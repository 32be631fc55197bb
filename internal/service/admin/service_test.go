package admin

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/ReDe-ReservationService/internal/domain"
	userRepo "github.com/m04kA/ReDe-ReservationService/internal/infra/storage/user"
	"github.com/m04kA/ReDe-ReservationService/internal/service/admin/models"
	"github.com/m04kA/ReDe-ReservationService/internal/service/reservations"
	reservationModels "github.com/m04kA/ReDe-ReservationService/internal/service/reservations/models"
	"github.com/m04kA/ReDe-ReservationService/pkg/logger"
	"github.com/m04kA/ReDe-ReservationService/pkg/ptr"
)

type mockReservationRepo struct{ mock.Mock }

func (m *mockReservationRepo) ListWithFilter(ctx context.Context, filter domain.ReservationsFilter) ([]*domain.Reservation, error) {
	args := m.Called(ctx, filter)
	if v := args.Get(0); v != nil {
		return v.([]*domain.Reservation), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockReservationRepo) CountAll(ctx context.Context) (int, error) {
	args := m.Called(ctx)
	return args.Int(0), args.Error(1)
}

func (m *mockReservationRepo) CountActive(ctx context.Context, now time.Time) (int, error) {
	args := m.Called(ctx, now)
	return args.Int(0), args.Error(1)
}

func (m *mockReservationRepo) CountByFacility(ctx context.Context) (map[domain.Facility]int, error) {
	args := m.Called(ctx)
	if v := args.Get(0); v != nil {
		return v.(map[domain.Facility]int), args.Error(1)
	}
	return nil, args.Error(1)
}

type mockUserRepo struct{ mock.Mock }

func (m *mockUserRepo) GetByID(ctx context.Context, id int64) (*domain.User, error) {
	args := m.Called(ctx, id)
	if v := args.Get(0); v != nil {
		return v.(*domain.User), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockUserRepo) ListWithStats(ctx context.Context, search string) ([]*domain.UserWithStats, error) {
	args := m.Called(ctx, search)
	if v := args.Get(0); v != nil {
		return v.([]*domain.UserWithStats), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockUserRepo) Count(ctx context.Context) (int, error) {
	args := m.Called(ctx)
	return args.Int(0), args.Error(1)
}

type mockDepositRepo struct{ mock.Mock }

func (m *mockDepositRepo) Set(ctx context.Context, userID int64, amount int) (*domain.Deposit, error) {
	args := m.Called(ctx, userID, amount)
	if v := args.Get(0); v != nil {
		return v.(*domain.Deposit), args.Error(1)
	}
	return nil, args.Error(1)
}

type mockDeleter struct{ mock.Mock }

func (m *mockDeleter) DeleteAny(ctx context.Context, id int64) (*reservationModels.DeleteResponse, error) {
	args := m.Called(ctx, id)
	if v := args.Get(0); v != nil {
		return v.(*reservationModels.DeleteResponse), args.Error(1)
	}
	return nil, args.Error(1)
}

type fixture struct {
	reservations *mockReservationRepo
	users        *mockUserRepo
	deposits     *mockDepositRepo
	deleter      *mockDeleter
	now          time.Time
	svc          *Service
}

func newFixture(depositEnabled bool) *fixture {
	f := &fixture{
		reservations: &mockReservationRepo{},
		users:        &mockUserRepo{},
		deposits:     &mockDepositRepo{},
		deleter:      &mockDeleter{},
		now:          time.Date(2026, 5, 10, 9, 30, 0, 0, time.UTC),
	}

	rules := domain.DefaultBookingRules(time.UTC)
	rules.DepositEnabled = depositEnabled

	f.svc = NewService(f.reservations, f.users, f.deposits, f.deleter, rules, logger.Nop())
	f.svc.now = func() time.Time { return f.now }
	return f
}

func TestInfo(t *testing.T) {
	ctx := context.Background()
	f := newFixture(true)

	f.users.On("Count", ctx).Return(12, nil)
	f.reservations.On("CountAll", ctx).Return(40, nil)
	f.reservations.On("CountActive", ctx, f.now).Return(5, nil)
	f.reservations.On("CountByFacility", ctx).Return(map[domain.Facility]int{
		domain.FacilityPadel:    30,
		domain.FacilityFootball: 10,
	}, nil)

	resp, err := f.svc.Info(ctx)
	require.NoError(t, err)

	want := &models.InfoResponse{
		Users:              12,
		Reservations:       40,
		ActiveReservations: 5,
		ByFacility: map[string]int{
			"baloncesto": 0,
			"futbol":     10,
			"padel":      30,
			"piscina1":   0,
			"piscina2":   0,
		},
		DepositEnabled:        true,
		DepositThreshold:      10,
		MaxActiveReservations: 3,
	}
	if diff := cmp.Diff(want, resp); diff != "" {
		t.Errorf("Info mismatch (-want +got):\n%s", diff)
	}
}

func TestInfo_RepositoryError(t *testing.T) {
	ctx := context.Background()
	f := newFixture(false)
	f.users.On("Count", ctx).Return(0, errors.New("boom"))

	_, err := f.svc.Info(ctx)
	assert.ErrorIs(t, err, ErrInternal)
}

func TestListReservations_Filter(t *testing.T) {
	ctx := context.Background()
	f := newFixture(false)

	from := time.Date(2026, 5, 1, 0, 0, 0, 0, time.UTC)
	to := time.Date(2026, 6, 1, 0, 0, 0, 0, time.UTC)
	padel := domain.FacilityPadel

	f.reservations.On("ListWithFilter", ctx, domain.ReservationsFilter{
		Facility: &padel,
		From:     &from,
		To:       &to,
		Search:   "1234",
	}).Return([]*domain.Reservation{
		{ID: 3, UserID: 7, UserDNI: "12345678A", Facility: domain.FacilityPadel, StartTime: from.Add(10 * time.Hour), EndTime: from.Add(11 * time.Hour)},
	}, nil)

	resp, err := f.svc.ListReservations(ctx, &models.ListReservationsRequest{
		Facility: "Padel",
		From:     "2026-05-01",
		To:       "2026-05-31",
		Search:   " 1234 ",
	})
	require.NoError(t, err)
	require.Len(t, resp.Reservations, 1)
	assert.Equal(t, "12345678A", resp.Reservations[0].UserDNI)
	f.reservations.AssertExpectations(t)
}

func TestListReservations_InvalidFilter(t *testing.T) {
	cases := map[string]models.ListReservationsRequest{
		"facility": {Facility: "golf"},
		"from":     {From: "01/05/2026"},
		"to":       {To: "mañana"},
		"reversed": {From: "2026-05-10", To: "2026-05-01"},
	}

	for name, req := range cases {
		t.Run(name, func(t *testing.T) {
			f := newFixture(false)
			_, err := f.svc.ListReservations(context.Background(), &req)
			assert.ErrorIs(t, err, ErrInvalidInput)
		})
	}
}

func TestDeleteReservation(t *testing.T) {
	ctx := context.Background()
	f := newFixture(true)

	f.deleter.On("DeleteAny", ctx, int64(3)).Return(&reservationModels.DeleteResponse{Success: true, Deposit: ptr.Ptr(2)}, nil)
	resp, err := f.svc.DeleteReservation(ctx, 3)
	require.NoError(t, err)
	assert.True(t, resp.Success)

	f.deleter.On("DeleteAny", ctx, int64(4)).Return(nil, reservations.ErrReservationNotFound)
	_, err = f.svc.DeleteReservation(ctx, 4)
	assert.ErrorIs(t, err, ErrReservationNotFound)
}

func TestListUsers(t *testing.T) {
	ctx := context.Background()
	f := newFixture(false)

	f.users.On("ListWithStats", ctx, "ana").Return([]*domain.UserWithStats{
		{User: domain.User{ID: 7, DNI: "12345678A", Email: "ana@example.com"}, ReservationsCount: 4, Deposit: 8},
	}, nil)

	resp, err := f.svc.ListUsers(ctx, " ana ")
	require.NoError(t, err)
	require.Len(t, resp.Users, 1)
	assert.Equal(t, 4, resp.Users[0].ReservationsCount)
	assert.Equal(t, 8, resp.Users[0].Deposit)
}

func TestSetDeposit(t *testing.T) {
	ctx := context.Background()

	t.Run("success", func(t *testing.T) {
		f := newFixture(true)
		f.users.On("GetByID", ctx, int64(7)).Return(&domain.User{ID: 7}, nil)
		f.deposits.On("Set", ctx, int64(7), 0).Return(&domain.Deposit{UserID: 7, Amount: 0, UpdatedAt: f.now}, nil)

		resp, err := f.svc.SetDeposit(ctx, 7, &models.SetDepositRequest{Amount: ptr.Ptr(0)})
		require.NoError(t, err)
		assert.Equal(t, 0, resp.Amount)
		assert.Equal(t, f.now, resp.UpdatedAt)
	})

	t.Run("negative amount", func(t *testing.T) {
		f := newFixture(true)
		_, err := f.svc.SetDeposit(ctx, 7, &models.SetDepositRequest{Amount: ptr.Ptr(-2)})
		assert.ErrorIs(t, err, ErrInvalidInput)
	})

	t.Run("missing amount", func(t *testing.T) {
		f := newFixture(true)
		_, err := f.svc.SetDeposit(ctx, 7, &models.SetDepositRequest{})
		assert.ErrorIs(t, err, ErrInvalidInput)
	})

	t.Run("unknown user", func(t *testing.T) {
		f := newFixture(true)
		f.users.On("GetByID", ctx, int64(9)).Return(nil, userRepo.ErrUserNotFound)

		_, err := f.svc.SetDeposit(ctx, 9, &models.SetDepositRequest{Amount: ptr.Ptr(4)})
		assert.ErrorIs(t, err, ErrUserNotFound)
		f.deposits.AssertNotCalled(t, "Set", mock.Anything, mock.Anything, mock.Anything)
	})
}
