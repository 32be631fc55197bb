package reservations

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/m04kA/ReDe-ReservationService/internal/domain"
	reservationRepo "github.com/m04kA/ReDe-ReservationService/internal/infra/storage/reservation"
	"github.com/m04kA/ReDe-ReservationService/internal/service/reservations/models"
	"github.com/m04kA/ReDe-ReservationService/pkg/ptr"
)

// Service сервис для чтения и удаления бронирований
type Service struct {
	reservationRepo ReservationRepository
	depositRepo     DepositRepository
	txManager       TransactionManager
	publisher       EventPublisher
	metrics         Metrics
	rules           domain.BookingRules
	now             func() time.Time
	logger          Logger
}

// NewService создает новый экземпляр сервиса бронирований
func NewService(
	reservationRepo ReservationRepository,
	depositRepo DepositRepository,
	txManager TransactionManager,
	publisher EventPublisher,
	metrics Metrics,
	rules domain.BookingRules,
	logger Logger,
) *Service {
	return &Service{
		reservationRepo: reservationRepo,
		depositRepo:     depositRepo,
		txManager:       txManager,
		publisher:       publisher,
		metrics:         metrics,
		rules:           rules,
		now:             time.Now,
		logger:          logger,
	}
}

// GetByID получает бронирование по ID
// Пользователь видит только свои бронирования, чужое считается несуществующим
func (s *Service) GetByID(ctx context.Context, userID, id int64) (*models.ReservationResponse, error) {
	s.logger.Info("GetByID: fetching reservation id=%d for user=%d", id, userID)

	reservation, err := s.reservationRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, reservationRepo.ErrReservationNotFound) {
			s.logger.Warn("GetByID: reservation id=%d not found", id)
			return nil, ErrReservationNotFound
		}
		s.logger.Error("GetByID: repository error for reservation id=%d: %v", id, err)
		return nil, fmt.Errorf("%w: GetByID - repository error: %w", ErrInternal, err)
	}

	if reservation.UserID != userID {
		s.logger.Warn("GetByID: reservation id=%d belongs to another user, requested by user=%d", id, userID)
		return nil, ErrReservationNotFound
	}

	return models.FromDomainReservation(reservation, s.rules.Location), nil
}

// ListActive получает бронирования, которые еще не закончились, по возрастанию начала
func (s *Service) ListActive(ctx context.Context, userID int64) (*models.ReservationListResponse, error) {
	s.logger.Info("ListActive: fetching active reservations for user=%d", userID)

	reservations, err := s.reservationRepo.ListActiveByUser(ctx, userID, s.now())
	if err != nil {
		s.logger.Error("ListActive: repository error for user=%d: %v", userID, err)
		return nil, fmt.Errorf("%w: ListActive - repository error: %w", ErrInternal, err)
	}

	s.logger.Info("ListActive: fetched %d reservations for user=%d", len(reservations), userID)
	return models.FromDomainReservationList(reservations, s.rules.Location), nil
}

// ListHistory получает закончившиеся бронирования, новые первыми
func (s *Service) ListHistory(ctx context.Context, userID int64) (*models.ReservationListResponse, error) {
	s.logger.Info("ListHistory: fetching history for user=%d", userID)

	reservations, err := s.reservationRepo.ListHistoryByUser(ctx, userID, s.now())
	if err != nil {
		s.logger.Error("ListHistory: repository error for user=%d: %v", userID, err)
		return nil, fmt.Errorf("%w: ListHistory - repository error: %w", ErrInternal, err)
	}

	s.logger.Info("ListHistory: fetched %d reservations for user=%d", len(reservations), userID)
	return models.FromDomainReservationList(reservations, s.rules.Location), nil
}

// Delete удаляет бронирование пользователя
func (s *Service) Delete(ctx context.Context, userID, id int64) (*models.DeleteResponse, error) {
	if userID <= 0 || id <= 0 {
		return nil, fmt.Errorf("%w: userID and reservationID must be positive", ErrInvalidInput)
	}
	return s.delete(ctx, id, &userID)
}

// DeleteAny удаляет бронирование любого пользователя (администратор)
func (s *Service) DeleteAny(ctx context.Context, id int64) (*models.DeleteResponse, error) {
	if id <= 0 {
		return nil, fmt.Errorf("%w: reservationID must be positive", ErrInvalidInput)
	}
	return s.delete(ctx, id, nil)
}

// delete удаляет бронирование и уменьшает фиансу владельца в одной транзакции
// ownerID == nil отключает проверку владельца
func (s *Service) delete(ctx context.Context, id int64, ownerID *int64) (*models.DeleteResponse, error) {
	s.logger.Info("Delete: deleting reservation id=%d, owner=%v", id, ownerID)

	var (
		deleted *domain.Reservation
		deposit *int
	)

	err := s.txManager.DoSerializable(ctx, func(txCtx context.Context) error {
		// 1. Получаем бронирование с блокировкой
		reservation, err := s.reservationRepo.GetByID(txCtx, id)
		if err != nil {
			if errors.Is(err, reservationRepo.ErrReservationNotFound) {
				return ErrReservationNotFound
			}
			return fmt.Errorf("%w: Delete - get reservation: %w", ErrInternal, err)
		}

		// 2. Проверяем владельца
		if ownerID != nil && reservation.UserID != *ownerID {
			s.logger.Warn("Delete: reservation id=%d belongs to user=%d, not %d", id, reservation.UserID, *ownerID)
			return ErrReservationNotFound
		}

		// 3. Удаляем
		if err := s.reservationRepo.Delete(txCtx, id); err != nil {
			if errors.Is(err, reservationRepo.ErrReservationNotFound) {
				return ErrReservationNotFound
			}
			return fmt.Errorf("%w: Delete - delete reservation: %w", ErrInternal, err)
		}

		// 4. Уменьшаем фиансу владельца, не ниже нуля
		if s.rules.DepositEnabled {
			amount, err := s.depositRepo.Add(txCtx, reservation.UserID, -s.rules.DepositIncrement)
			if err != nil {
				return fmt.Errorf("%w: Delete - decrement deposit: %w", ErrInternal, err)
			}
			deposit = ptr.Ptr(amount)
		}

		deleted = reservation
		return nil
	})

	if err != nil {
		if errors.Is(err, ErrReservationNotFound) {
			s.logger.Warn("Delete: reservation id=%d not found", id)
		} else {
			s.logger.Error("Delete: failed to delete reservation id=%d: %v", id, err)
		}
		return nil, err
	}

	s.logger.Info("Delete: successfully deleted reservation id=%d", id)
	s.metrics.IncReservation("delete", deleted.Facility.Code())

	event := domain.NewReservationEvent(domain.EventReservationDeleted, deleted, s.now())
	if err := s.publisher.Publish(ctx, event); err != nil {
		s.logger.Warn("Delete: failed to publish event for id=%d: %v", id, err)
	}

	return &models.DeleteResponse{Success: true, Deposit: deposit}, nil
}
