package admin

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/m04kA/ReDe-ReservationService/internal/domain"
	userRepo "github.com/m04kA/ReDe-ReservationService/internal/infra/storage/user"
	"github.com/m04kA/ReDe-ReservationService/internal/service/admin/models"
	"github.com/m04kA/ReDe-ReservationService/internal/service/reservations"
	reservationModels "github.com/m04kA/ReDe-ReservationService/internal/service/reservations/models"
)

// Service сервис администратора: статистика, бронирования, пользователи, фианса
type Service struct {
	reservationRepo ReservationRepository
	userRepo        UserRepository
	depositRepo     DepositRepository
	deleter         ReservationDeleter
	rules           domain.BookingRules
	now             func() time.Time
	logger          Logger
}

// NewService создает новый экземпляр сервиса администратора
func NewService(
	reservationRepo ReservationRepository,
	userRepo UserRepository,
	depositRepo DepositRepository,
	deleter ReservationDeleter,
	rules domain.BookingRules,
	logger Logger,
) *Service {
	return &Service{
		reservationRepo: reservationRepo,
		userRepo:        userRepo,
		depositRepo:     depositRepo,
		deleter:         deleter,
		rules:           rules,
		now:             time.Now,
		logger:          logger,
	}
}

// Info возвращает сводную статистику
func (s *Service) Info(ctx context.Context) (*models.InfoResponse, error) {
	s.logger.Info("Info: collecting admin statistics")

	users, err := s.userRepo.Count(ctx)
	if err != nil {
		return nil, s.internal("Info - count users", err)
	}

	total, err := s.reservationRepo.CountAll(ctx)
	if err != nil {
		return nil, s.internal("Info - count reservations", err)
	}

	active, err := s.reservationRepo.CountActive(ctx, s.now())
	if err != nil {
		return nil, s.internal("Info - count active reservations", err)
	}

	counts, err := s.reservationRepo.CountByFacility(ctx)
	if err != nil {
		return nil, s.internal("Info - count by facility", err)
	}

	// все сооружения присутствуют в ответе, даже без бронирований
	byFacility := make(map[string]int, len(domain.AllFacilities))
	for _, facility := range domain.AllFacilities {
		byFacility[facility.Code()] = counts[facility]
	}

	resp := &models.InfoResponse{
		Users:                 users,
		Reservations:          total,
		ActiveReservations:    active,
		ByFacility:            byFacility,
		DepositEnabled:        s.rules.DepositEnabled,
		MaxActiveReservations: s.rules.MaxActiveReservations,
	}
	if s.rules.DepositEnabled {
		resp.DepositThreshold = s.rules.DepositThreshold
	}

	return resp, nil
}

// ListReservations возвращает бронирования всех пользователей по фильтру, новые первыми
func (s *Service) ListReservations(ctx context.Context, req *models.ListReservationsRequest) (*reservationModels.ReservationListResponse, error) {
	s.logger.Info("ListReservations: facility=%q, from=%q, to=%q, search=%q", req.Facility, req.From, req.To, req.Search)

	filter, err := s.toFilter(req)
	if err != nil {
		s.logger.Warn("ListReservations: invalid filter: %v", err)
		return nil, err
	}

	list, err := s.reservationRepo.ListWithFilter(ctx, filter)
	if err != nil {
		return nil, s.internal("ListReservations - repository error", err)
	}

	s.logger.Info("ListReservations: fetched %d reservations", len(list))
	return reservationModels.FromDomainReservationList(list, s.rules.Location), nil
}

// DeleteReservation удаляет бронирование любого пользователя
func (s *Service) DeleteReservation(ctx context.Context, id int64) (*reservationModels.DeleteResponse, error) {
	s.logger.Info("DeleteReservation: deleting reservation id=%d", id)

	resp, err := s.deleter.DeleteAny(ctx, id)
	if err != nil {
		switch {
		case errors.Is(err, reservations.ErrReservationNotFound):
			return nil, ErrReservationNotFound
		case errors.Is(err, reservations.ErrInvalidInput):
			return nil, fmt.Errorf("%w: %v", ErrInvalidInput, err)
		}
		return nil, s.internal("DeleteReservation", err)
	}

	return resp, nil
}

// ListUsers возвращает пользователей со статистикой, новые первыми
func (s *Service) ListUsers(ctx context.Context, search string) (*models.UserListResponse, error) {
	s.logger.Info("ListUsers: search=%q", search)

	users, err := s.userRepo.ListWithStats(ctx, strings.TrimSpace(search))
	if err != nil {
		return nil, s.internal("ListUsers - repository error", err)
	}

	return models.FromDomainUserList(users), nil
}

// SetDeposit устанавливает фиансу пользователя
func (s *Service) SetDeposit(ctx context.Context, userID int64, req *models.SetDepositRequest) (*models.DepositResponse, error) {
	// 1. Валидация входных данных
	if userID <= 0 {
		return nil, fmt.Errorf("%w: userID must be positive", ErrInvalidInput)
	}
	if req.Amount == nil || *req.Amount < 0 {
		return nil, fmt.Errorf("%w: amount must be a non-negative integer", ErrInvalidInput)
	}

	s.logger.Info("SetDeposit: user=%d, amount=%d", userID, *req.Amount)

	// 2. Проверяем, что пользователь существует
	if _, err := s.userRepo.GetByID(ctx, userID); err != nil {
		if errors.Is(err, userRepo.ErrUserNotFound) {
			s.logger.Warn("SetDeposit: user id=%d not found", userID)
			return nil, ErrUserNotFound
		}
		return nil, s.internal("SetDeposit - get user", err)
	}

	// 3. Сохраняем
	deposit, err := s.depositRepo.Set(ctx, userID, *req.Amount)
	if err != nil {
		return nil, s.internal("SetDeposit - repository error", err)
	}

	return models.FromDomainDeposit(deposit), nil
}

// toFilter конвертирует запрос в domain фильтр
// Даты интерпретируются в часовом поясе сооружений, To включает весь день
func (s *Service) toFilter(req *models.ListReservationsRequest) (domain.ReservationsFilter, error) {
	filter := domain.ReservationsFilter{Search: strings.TrimSpace(req.Search)}

	if req.Facility != "" {
		facility, err := domain.ParseFacility(req.Facility)
		if err != nil {
			return filter, fmt.Errorf("%w: unknown facility %q", ErrInvalidInput, req.Facility)
		}
		filter.Facility = &facility
	}

	if req.From != "" {
		from, err := time.ParseInLocation(domain.DateFormat, req.From, s.rules.Location)
		if err != nil {
			return filter, fmt.Errorf("%w: from must be YYYY-MM-DD", ErrInvalidInput)
		}
		filter.From = &from
	}

	if req.To != "" {
		to, err := time.ParseInLocation(domain.DateFormat, req.To, s.rules.Location)
		if err != nil {
			return filter, fmt.Errorf("%w: to must be YYYY-MM-DD", ErrInvalidInput)
		}
		to = to.AddDate(0, 0, 1)
		filter.To = &to
	}

	if filter.From != nil && filter.To != nil && !filter.From.Before(*filter.To) {
		return filter, fmt.Errorf("%w: from must not be after to", ErrInvalidInput)
	}

	return filter, nil
}

// internal логирует и оборачивает внутреннюю ошибку
func (s *Service) internal(op string, err error) error {
	s.logger.Error("%s: %v", op, err)
	return fmt.Errorf("%w: %s: %v", ErrInternal, op, err)
}
