package update_reservation

import (
	"context"
	"errors"
	"fmt"

	"github.com/m04kA/ReDe-ReservationService/internal/domain"
	configRepo "github.com/m04kA/ReDe-ReservationService/internal/infra/storage/config"
	reservationRepo "github.com/m04kA/ReDe-ReservationService/internal/infra/storage/reservation"
	"github.com/m04kA/ReDe-ReservationService/pkg/txmanager"
)

// UseCase use case для изменения бронирования
type UseCase struct {
	reservationRepo ReservationRepository
	configRepo      ConfigRepository
	txManager       TransactionManager
	publisher       EventPublisher
	metrics         Metrics
	rules           domain.BookingRules
	timeProvider    TimeProvider
	logger          Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	reservationRepo ReservationRepository,
	configRepo ConfigRepository,
	txManager TransactionManager,
	publisher EventPublisher,
	metrics Metrics,
	rules domain.BookingRules,
	logger Logger,
) *UseCase {
	return &UseCase{
		reservationRepo: reservationRepo,
		configRepo:      configRepo,
		txManager:       txManager,
		publisher:       publisher,
		metrics:         metrics,
		rules:           rules,
		timeProvider:    &RealTimeProvider{},
		logger:          logger,
	}
}

// Execute выполняет use case изменения бронирования
// Итоговое бронирование проходит те же проверки, что и при создании,
// лимит и пересечения считаются без учета самого бронирования. Фианса не меняется
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("UpdateReservation: user=%d, reservation=%d", req.UserID, req.ReservationID)

	// 1. Валидация входных данных
	newFacility, err := validateRequest(req)
	if err != nil {
		uc.logger.Warn("UpdateReservation: validation failed: %v", err)
		return nil, err
	}

	// 2. Получаем текущее время
	now := uc.timeProvider.Now()

	var result *domain.Reservation

	// 3. Выполняем операции с БД в сериализуемой транзакции
	err = uc.txManager.DoSerializable(ctx, func(txCtx context.Context) error {
		// 3.1. Получаем бронирование с блокировкой, чужое считается несуществующим
		current, err := uc.reservationRepo.GetByID(txCtx, req.ReservationID)
		if err != nil {
			if errors.Is(err, reservationRepo.ErrReservationNotFound) {
				return ErrReservationNotFound
			}
			uc.logger.Error("UpdateReservation: failed to get reservation id=%d: %v", req.ReservationID, err)
			return fmt.Errorf("%w: failed to get reservation: %w", ErrInternal, err)
		}
		if current.UserID != req.UserID {
			uc.logger.Warn("UpdateReservation: reservation id=%d belongs to user=%d, not %d",
				current.ID, current.UserID, req.UserID)
			return ErrReservationNotFound
		}

		// 3.2. Накладываем изменения
		updated := mergeChanges(current, newFacility, req, uc.rules)

		// 3.3. Кратность часу, длительность, время в будущем
		if err := domain.ValidateInterval(updated.StartTime, updated.EndTime, now); err != nil {
			return err
		}

		// 3.4. Часы работы сооружения
		config, err := uc.configRepo.GetByFacility(txCtx, updated.Facility)
		if err != nil {
			if !errors.Is(err, configRepo.ErrConfigNotFound) {
				uc.logger.Error("UpdateReservation: failed to get config for %s: %v", updated.Facility, err)
				return fmt.Errorf("%w: failed to get config: %w", ErrInternal, err)
			}
			config = uc.rules.DefaultFacilityConfig(updated.Facility)
		}
		if err := domain.ValidateOpening(config, updated.StartTime, updated.EndTime); err != nil {
			return err
		}

		// 3.5. Лимит активных бронирований без учета изменяемого
		active, err := uc.reservationRepo.CountActiveByUser(txCtx, req.UserID, now, &current.ID)
		if err != nil {
			uc.logger.Error("UpdateReservation: failed to count active reservations: %v", err)
			return fmt.Errorf("%w: failed to count active reservations: %w", ErrInternal, err)
		}
		if active >= uc.rules.MaxActiveReservations {
			return domain.ErrTooManyActive
		}

		// 3.6. Пересечения по сооружению без учета изменяемого
		overlapping, err := uc.reservationRepo.FindOverlapping(txCtx, updated.Facility, updated.StartTime, updated.EndTime, &current.ID)
		if err != nil {
			uc.logger.Error("UpdateReservation: failed to find overlapping reservations: %v", err)
			return fmt.Errorf("%w: failed to find overlapping reservations: %w", ErrInternal, err)
		}
		if len(overlapping) > 0 {
			return domain.ErrSlotTaken
		}

		// 3.7. Сохраняем
		saved, err := uc.reservationRepo.Update(txCtx, updated)
		if err != nil {
			uc.logger.Error("UpdateReservation: failed to update reservation id=%d: %v", updated.ID, err)
			return fmt.Errorf("%w: failed to update reservation: %w", ErrInternal, err)
		}

		result = saved
		return nil
	})

	if err != nil {
		if errors.Is(err, txmanager.ErrSerialization) {
			err = domain.ErrSlotTaken
		}
		if domain.IsRuleViolation(err) {
			uc.logger.Warn("UpdateReservation: rejected reservation id=%d: %v", req.ReservationID, err)
			uc.metrics.IncRejection(domain.RejectionReason(err))
		}
		return nil, err
	}

	uc.logger.Info("UpdateReservation: successfully updated reservation id=%d", result.ID)
	uc.metrics.IncReservation("update", result.Facility.Code())

	event := domain.NewReservationEvent(domain.EventReservationUpdated, result, now)
	if err := uc.publisher.Publish(ctx, event); err != nil {
		uc.logger.Warn("UpdateReservation: failed to publish event for id=%d: %v", result.ID, err)
	}

	return &Response{Reservation: result}, nil
}

// mergeChanges возвращает копию бронирования с примененными изменениями
func mergeChanges(current *domain.Reservation, facility *domain.Facility, req *Request, rules domain.BookingRules) *domain.Reservation {
	updated := *current

	if facility != nil {
		updated.Facility = *facility
	}
	if req.StartTime != nil {
		updated.StartTime = *req.StartTime
	}
	if req.EndTime != nil {
		updated.EndTime = *req.EndTime
	}

	updated.StartTime = updated.StartTime.In(rules.Location)
	updated.EndTime = updated.EndTime.In(rules.Location)

	return &updated
}

// validateRequest валидирует входные данные запроса
func validateRequest(req *Request) (*domain.Facility, error) {
	if req.UserID <= 0 {
		return nil, fmt.Errorf("%w: userID must be positive", ErrInvalidInput)
	}
	if req.ReservationID <= 0 {
		return nil, fmt.Errorf("%w: reservationID must be positive", ErrInvalidInput)
	}
	if req.Facility == nil && req.StartTime == nil && req.EndTime == nil {
		return nil, fmt.Errorf("%w: nothing to update", ErrInvalidInput)
	}

	if req.Facility == nil {
		return nil, nil
	}

	facility, err := domain.ParseFacility(*req.Facility)
	if err != nil {
		return nil, fmt.Errorf("%w: unknown facility %q", ErrInvalidInput, *req.Facility)
	}
	return &facility, nil
}
