package auth

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/m04kA/ReDe-ReservationService/internal/domain"
	userRepo "github.com/m04kA/ReDe-ReservationService/internal/infra/storage/user"
	"github.com/m04kA/ReDe-ReservationService/internal/service/auth/models"
	"github.com/m04kA/ReDe-ReservationService/pkg/logger"
	"github.com/m04kA/ReDe-ReservationService/pkg/password"
	"github.com/m04kA/ReDe-ReservationService/pkg/token"
)

type mockUserRepo struct{ mock.Mock }

func (m *mockUserRepo) Create(ctx context.Context, user *domain.User) (*domain.User, error) {
	args := m.Called(ctx, user)
	if v := args.Get(0); v != nil {
		return v.(*domain.User), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockUserRepo) GetByID(ctx context.Context, id int64) (*domain.User, error) {
	args := m.Called(ctx, id)
	if v := args.Get(0); v != nil {
		return v.(*domain.User), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockUserRepo) GetByDNI(ctx context.Context, dni string) (*domain.User, error) {
	args := m.Called(ctx, dni)
	if v := args.Get(0); v != nil {
		return v.(*domain.User), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockUserRepo) UpdateLastLogin(ctx context.Context, id int64, at time.Time) error {
	return m.Called(ctx, id, at).Error(0)
}

type mockDepositRepo struct{ mock.Mock }

func (m *mockDepositRepo) Get(ctx context.Context, userID int64) (*domain.Deposit, error) {
	args := m.Called(ctx, userID)
	if v := args.Get(0); v != nil {
		return v.(*domain.Deposit), args.Error(1)
	}
	return nil, args.Error(1)
}

type mockSessions struct{ mock.Mock }

func (m *mockSessions) Revoke(ctx context.Context, tokenID string, expiresAt time.Time) error {
	return m.Called(ctx, tokenID, expiresAt).Error(0)
}

type mockMetrics struct{ mock.Mock }

func (m *mockMetrics) IncLogin(result string) { m.Called(result) }

type fixture struct {
	users    *mockUserRepo
	deposits *mockDepositRepo
	sessions *mockSessions
	metrics  *mockMetrics
	hasher   *password.Hasher
	tokens   *token.Service
	now      time.Time
	svc      *Service
}

func newFixture() *fixture {
	f := &fixture{
		users:    &mockUserRepo{},
		deposits: &mockDepositRepo{},
		sessions: &mockSessions{},
		metrics:  &mockMetrics{},
		hasher:   password.NewHasher(bcrypt.MinCost),
		tokens:   token.NewService("test-secret", "rede", time.Hour),
		now:      time.Date(2026, 5, 10, 9, 30, 0, 0, time.UTC),
	}
	f.svc = NewService(f.users, f.deposits, f.hasher, f.tokens, f.sessions, f.metrics, true, logger.Nop())
	f.svc.now = func() time.Time { return f.now }
	return f
}

func (f *fixture) user(t *testing.T, active bool) *domain.User {
	t.Helper()
	hash, err := f.hasher.Hash("secreto123")
	require.NoError(t, err)
	return &domain.User{ID: 7, DNI: "12345678A", PasswordHash: hash, IsActive: active}
}

func TestRegister_Success(t *testing.T) {
	ctx := context.Background()
	f := newFixture()

	f.users.On("Create", ctx, mock.MatchedBy(func(u *domain.User) bool {
		return u.DNI == "12345678A" && u.IsActive && !u.IsStaff &&
			u.PasswordHash != "secreto123" && f.hasher.Compare(u.PasswordHash, "secreto123") == nil
	})).Return(&domain.User{ID: 7, DNI: "12345678A", Email: "ana@example.com", IsActive: true, DateJoined: f.now}, nil)

	resp, err := f.svc.Register(ctx, &models.RegisterRequest{
		DNI:             " 12345678a ",
		Password:        "secreto123",
		ConfirmPassword: "secreto123",
		Email:           "ana@example.com",
	})
	require.NoError(t, err)
	assert.Equal(t, int64(7), resp.ID)
	assert.Equal(t, "12345678A", resp.DNI)
	f.users.AssertExpectations(t)
}

func TestRegister_Validation(t *testing.T) {
	cases := []struct {
		name string
		req  models.RegisterRequest
		want error
	}{
		{"bad dni", models.RegisterRequest{DNI: "1234", Password: "secreto123", ConfirmPassword: "secreto123"}, ErrInvalidDNI},
		{"empty password", models.RegisterRequest{DNI: "12345678A"}, ErrPasswordTooShort},
		{"short password", models.RegisterRequest{DNI: "12345678A", Password: "abc", ConfirmPassword: "abc"}, ErrPasswordTooShort},
		{"mismatch", models.RegisterRequest{DNI: "12345678A", Password: "secreto123", ConfirmPassword: "secreto124"}, ErrPasswordMismatch},
		{"bad email", models.RegisterRequest{DNI: "12345678A", Password: "secreto123", ConfirmPassword: "secreto123", Email: "no-at"}, ErrInvalidInput},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			f := newFixture()
			_, err := f.svc.Register(context.Background(), &tc.req)
			assert.ErrorIs(t, err, tc.want)
			f.users.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
		})
	}
}

func TestRegister_DuplicateDNI(t *testing.T) {
	ctx := context.Background()
	f := newFixture()
	f.users.On("Create", ctx, mock.Anything).Return(nil, userRepo.ErrDNIAlreadyExists)

	_, err := f.svc.Register(ctx, &models.RegisterRequest{DNI: "12345678A", Password: "secreto123", ConfirmPassword: "secreto123"})
	assert.ErrorIs(t, err, ErrDNIAlreadyExists)
}

func TestLogin_Success(t *testing.T) {
	ctx := context.Background()
	f := newFixture()
	user := f.user(t, true)

	f.users.On("GetByDNI", ctx, "12345678A").Return(user, nil)
	f.users.On("UpdateLastLogin", ctx, int64(7), f.now).Return(nil)
	f.metrics.On("IncLogin", "success").Return()

	resp, err := f.svc.Login(ctx, &models.LoginRequest{DNI: "12345678a", Password: "secreto123"})
	require.NoError(t, err)
	assert.Equal(t, "Bearer", resp.TokenType)
	require.NotNil(t, resp.User.LastLogin)
	assert.Equal(t, f.now, *resp.User.LastLogin)

	claims, err := f.tokens.Parse(resp.Token)
	require.NoError(t, err)
	id, err := claims.UserID()
	require.NoError(t, err)
	assert.Equal(t, int64(7), id)
	assert.Equal(t, "12345678A", claims.DNI)
	assert.NotEmpty(t, claims.ID)

	f.users.AssertExpectations(t)
	f.metrics.AssertExpectations(t)
}

func TestLogin_InvalidCredentials(t *testing.T) {
	ctx := context.Background()

	t.Run("wrong password", func(t *testing.T) {
		f := newFixture()
		f.users.On("GetByDNI", ctx, "12345678A").Return(f.user(t, true), nil)
		f.metrics.On("IncLogin", "invalid").Return()

		_, err := f.svc.Login(ctx, &models.LoginRequest{DNI: "12345678A", Password: "otra-clave"})
		assert.ErrorIs(t, err, ErrInvalidCredentials)
	})

	t.Run("inactive user", func(t *testing.T) {
		f := newFixture()
		f.users.On("GetByDNI", ctx, "12345678A").Return(f.user(t, false), nil)
		f.metrics.On("IncLogin", "invalid").Return()

		_, err := f.svc.Login(ctx, &models.LoginRequest{DNI: "12345678A", Password: "secreto123"})
		assert.ErrorIs(t, err, ErrInvalidCredentials)
	})

	t.Run("unknown dni", func(t *testing.T) {
		f := newFixture()
		f.users.On("GetByDNI", ctx, "87654321B").Return(nil, userRepo.ErrUserNotFound)
		f.metrics.On("IncLogin", "invalid").Return()

		_, err := f.svc.Login(ctx, &models.LoginRequest{DNI: "87654321B", Password: "secreto123"})
		assert.ErrorIs(t, err, ErrInvalidCredentials)
	})

	t.Run("malformed dni", func(t *testing.T) {
		f := newFixture()
		f.metrics.On("IncLogin", "invalid").Return()

		_, err := f.svc.Login(ctx, &models.LoginRequest{DNI: "admin", Password: "secreto123"})
		assert.ErrorIs(t, err, ErrInvalidCredentials)
		f.users.AssertNotCalled(t, "GetByDNI", mock.Anything, mock.Anything)
	})
}

func TestLogin_LastLoginFailureDoesNotBlock(t *testing.T) {
	ctx := context.Background()
	f := newFixture()

	f.users.On("GetByDNI", ctx, "12345678A").Return(f.user(t, true), nil)
	f.users.On("UpdateLastLogin", ctx, int64(7), f.now).Return(errors.New("timeout"))
	f.metrics.On("IncLogin", "success").Return()

	resp, err := f.svc.Login(ctx, &models.LoginRequest{DNI: "12345678A", Password: "secreto123"})
	require.NoError(t, err)
	assert.Nil(t, resp.User.LastLogin)
}

func TestLogout(t *testing.T) {
	ctx := context.Background()
	f := newFixture()
	exp := f.now.Add(time.Hour)

	f.sessions.On("Revoke", ctx, "jti-1", exp).Return(nil)
	require.NoError(t, f.svc.Logout(ctx, &models.LogoutRequest{TokenID: "jti-1", ExpiresAt: exp}))

	assert.ErrorIs(t, f.svc.Logout(ctx, &models.LogoutRequest{}), ErrInvalidInput)

	f.sessions.On("Revoke", ctx, "jti-2", exp).Return(errors.New("redis down"))
	assert.ErrorIs(t, f.svc.Logout(ctx, &models.LogoutRequest{TokenID: "jti-2", ExpiresAt: exp}), ErrInternal)
}

func TestMe(t *testing.T) {
	ctx := context.Background()
	f := newFixture()

	f.users.On("GetByID", ctx, int64(7)).Return(&domain.User{ID: 7, DNI: "12345678A", IsActive: true}, nil)
	f.deposits.On("Get", ctx, int64(7)).Return(&domain.Deposit{UserID: 7, Amount: 6}, nil)

	resp, err := f.svc.Me(ctx, 7)
	require.NoError(t, err)
	assert.Equal(t, 6, resp.Deposit)
	assert.True(t, resp.DepositEnabled)
	assert.Equal(t, "12345678A", resp.User.DNI)

	f.users.On("GetByID", ctx, int64(9)).Return(nil, userRepo.ErrUserNotFound)
	_, err = f.svc.Me(ctx, 9)
	assert.ErrorIs(t, err, ErrUserNotFound)
}
