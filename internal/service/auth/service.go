package auth

import (
	"context"
	"errors"
	"fmt"
	"net/mail"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/m04kA/ReDe-ReservationService/internal/domain"
	userRepo "github.com/m04kA/ReDe-ReservationService/internal/infra/storage/user"
	"github.com/m04kA/ReDe-ReservationService/internal/service/auth/models"
)

// Service сервис регистрации и аутентификации пользователей
type Service struct {
	userRepo       UserRepository
	depositRepo    DepositRepository
	hasher         PasswordHasher
	tokens         TokenIssuer
	sessions       SessionStore
	metrics        Metrics
	depositEnabled bool
	now            func() time.Time
	logger         Logger
}

// NewService создает новый экземпляр сервиса аутентификации
func NewService(
	userRepo UserRepository,
	depositRepo DepositRepository,
	hasher PasswordHasher,
	tokens TokenIssuer,
	sessions SessionStore,
	metrics Metrics,
	depositEnabled bool,
	logger Logger,
) *Service {
	return &Service{
		userRepo:       userRepo,
		depositRepo:    depositRepo,
		hasher:         hasher,
		tokens:         tokens,
		sessions:       sessions,
		metrics:        metrics,
		depositEnabled: depositEnabled,
		now:            time.Now,
		logger:         logger,
	}
}

// Register регистрирует нового пользователя; DNI используется как логин
func (s *Service) Register(ctx context.Context, req *models.RegisterRequest) (*models.UserResponse, error) {
	s.logger.Info("Register: dni=%s", req.DNI)

	// 1. Валидация входных данных
	dni, err := domain.NormalizeDNI(req.DNI)
	if err != nil {
		s.logger.Warn("Register: invalid dni %q", req.DNI)
		return nil, ErrInvalidDNI
	}
	if utf8.RuneCountInString(req.Password) < domain.MinPasswordLength {
		return nil, ErrPasswordTooShort
	}
	if req.Password != req.ConfirmPassword {
		return nil, ErrPasswordMismatch
	}
	if err := validateProfile(req); err != nil {
		s.logger.Warn("Register: validation failed: %v", err)
		return nil, err
	}

	// 2. Хешируем пароль
	hash, err := s.hasher.Hash(req.Password)
	if err != nil {
		s.logger.Error("Register: failed to hash password: %v", err)
		return nil, fmt.Errorf("%w: Register - hash password: %v", ErrInternal, err)
	}

	// 3. Сохраняем пользователя, уникальность DNI проверяет БД
	created, err := s.userRepo.Create(ctx, &domain.User{
		DNI:          dni,
		PasswordHash: hash,
		Email:        strings.TrimSpace(req.Email),
		FirstName:    strings.TrimSpace(req.FirstName),
		LastName:     strings.TrimSpace(req.LastName),
		IsActive:     true,
		DateJoined:   s.now(),
	})
	if err != nil {
		if errors.Is(err, userRepo.ErrDNIAlreadyExists) {
			s.logger.Warn("Register: dni=%s already registered", dni)
			return nil, ErrDNIAlreadyExists
		}
		s.logger.Error("Register: repository error: %v", err)
		return nil, fmt.Errorf("%w: Register - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("Register: created user id=%d", created.ID)
	return models.FromDomainUser(created), nil
}

// Login проверяет DNI и пароль и выпускает access токен
// Неизвестный DNI, неверный пароль и неактивный пользователь неразличимы для клиента
func (s *Service) Login(ctx context.Context, req *models.LoginRequest) (*models.LoginResponse, error) {
	dni, err := domain.NormalizeDNI(req.DNI)
	if err != nil || req.Password == "" {
		s.metrics.IncLogin("invalid")
		return nil, ErrInvalidCredentials
	}

	s.logger.Info("Login: dni=%s", dni)

	user, err := s.userRepo.GetByDNI(ctx, dni)
	if err != nil {
		if errors.Is(err, userRepo.ErrUserNotFound) {
			s.logger.Warn("Login: unknown dni=%s", dni)
			s.metrics.IncLogin("invalid")
			return nil, ErrInvalidCredentials
		}
		s.logger.Error("Login: repository error: %v", err)
		s.metrics.IncLogin("error")
		return nil, fmt.Errorf("%w: Login - repository error: %v", ErrInternal, err)
	}

	if err := s.hasher.Compare(user.PasswordHash, req.Password); err != nil || !user.IsActive {
		s.logger.Warn("Login: rejected user id=%d (active=%t)", user.ID, user.IsActive)
		s.metrics.IncLogin("invalid")
		return nil, ErrInvalidCredentials
	}

	issued, err := s.tokens.Issue(user.ID, user.DNI, user.IsStaff)
	if err != nil {
		s.logger.Error("Login: failed to issue token for user id=%d: %v", user.ID, err)
		s.metrics.IncLogin("error")
		return nil, fmt.Errorf("%w: Login - issue token: %v", ErrInternal, err)
	}

	now := s.now()
	if err := s.userRepo.UpdateLastLogin(ctx, user.ID, now); err != nil {
		// вход не блокируется, если не удалось обновить last_login
		s.logger.Warn("Login: failed to update last login for user id=%d: %v", user.ID, err)
	} else {
		user.LastLogin = &now
	}

	s.logger.Info("Login: user id=%d logged in", user.ID)
	s.metrics.IncLogin("success")

	return &models.LoginResponse{
		Token:     issued.Token,
		TokenType: "Bearer",
		ExpiresAt: issued.ExpiresAt,
		User:      *models.FromDomainUser(user),
	}, nil
}

// Logout отзывает текущий токен до истечения его срока
func (s *Service) Logout(ctx context.Context, req *models.LogoutRequest) error {
	if req.TokenID == "" {
		return fmt.Errorf("%w: token id is required", ErrInvalidInput)
	}

	if err := s.sessions.Revoke(ctx, req.TokenID, req.ExpiresAt); err != nil {
		s.logger.Error("Logout: failed to revoke token %s: %v", req.TokenID, err)
		return fmt.Errorf("%w: Logout - revoke token: %v", ErrInternal, err)
	}

	s.logger.Info("Logout: token %s revoked", req.TokenID)
	return nil
}

// Me возвращает профиль пользователя и текущую фиансу
func (s *Service) Me(ctx context.Context, userID int64) (*models.MeResponse, error) {
	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, userRepo.ErrUserNotFound) {
			s.logger.Warn("Me: user id=%d not found", userID)
			return nil, ErrUserNotFound
		}
		s.logger.Error("Me: repository error for user id=%d: %v", userID, err)
		return nil, fmt.Errorf("%w: Me - repository error: %v", ErrInternal, err)
	}

	deposit, err := s.depositRepo.Get(ctx, userID)
	if err != nil {
		s.logger.Error("Me: failed to get deposit for user id=%d: %v", userID, err)
		return nil, fmt.Errorf("%w: Me - get deposit: %v", ErrInternal, err)
	}

	return &models.MeResponse{
		User:           *models.FromDomainUser(user),
		Deposit:        deposit.Amount,
		DepositEnabled: s.depositEnabled,
	}, nil
}

// validateProfile проверяет необязательные поля профиля
func validateProfile(req *models.RegisterRequest) error {
	if email := strings.TrimSpace(req.Email); email != "" {
		if len(email) > domain.MaxEmailLength {
			return fmt.Errorf("%w: email is too long", ErrInvalidInput)
		}
		if _, err := mail.ParseAddress(email); err != nil {
			return fmt.Errorf("%w: invalid email", ErrInvalidInput)
		}
	}
	if utf8.RuneCountInString(req.FirstName) > domain.MaxNameLength || utf8.RuneCountInString(req.LastName) > domain.MaxNameLength {
		return fmt.Errorf("%w: name is too long", ErrInvalidInput)
	}
	return nil
}
