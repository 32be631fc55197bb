package create_reservation

import (
	"context"
	"errors"
	"fmt"

	"github.com/m04kA/ReDe-ReservationService/internal/domain"
	configRepo "github.com/m04kA/ReDe-ReservationService/internal/infra/storage/config"
	"github.com/m04kA/ReDe-ReservationService/pkg/ptr"
	"github.com/m04kA/ReDe-ReservationService/pkg/txmanager"
)

// UseCase use case для создания бронирования
type UseCase struct {
	reservationRepo ReservationRepository
	configRepo      ConfigRepository
	depositRepo     DepositRepository
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
	depositRepo DepositRepository,
	txManager TransactionManager,
	publisher EventPublisher,
	metrics Metrics,
	rules domain.BookingRules,
	logger Logger,
) *UseCase {
	return &UseCase{
		reservationRepo: reservationRepo,
		configRepo:      configRepo,
		depositRepo:     depositRepo,
		txManager:       txManager,
		publisher:       publisher,
		metrics:         metrics,
		rules:           rules,
		timeProvider:    &RealTimeProvider{},
		logger:          logger,
	}
}

// Execute выполняет use case создания бронирования
// Проверки лимитов, пересечений и запись выполняются в одной сериализуемой транзакции
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("CreateReservation: user=%d, facility=%s, start=%s, end=%s",
		req.UserID, req.Facility, req.StartTime.Format(domain.DateTimeFormat), req.EndTime.Format(domain.DateTimeFormat))

	// 1. Валидация входных данных
	facility, err := validateRequest(req)
	if err != nil {
		uc.logger.Warn("CreateReservation: validation failed: %v", err)
		return nil, err
	}

	// 2. Получаем текущее время и приводим интервал к часовому поясу сооружений
	now := uc.timeProvider.Now()
	start := req.StartTime.In(uc.rules.Location)
	end := req.EndTime.In(uc.rules.Location)

	// 3. Кратность часу, длительность, время в будущем
	if err := domain.ValidateInterval(start, end, now); err != nil {
		return nil, uc.reject("interval", err)
	}

	// 4. Часы работы сооружения
	config, err := uc.getFacilityConfig(ctx, facility)
	if err != nil {
		return nil, err
	}
	if err := domain.ValidateOpening(config, start, end); err != nil {
		return nil, uc.reject("opening", err)
	}

	var (
		result  *domain.Reservation
		deposit *int
	)

	// 5. Выполняем операции с БД в сериализуемой транзакции
	err = uc.txManager.DoSerializable(ctx, func(txCtx context.Context) error {
		// 5.1. Фианса не должна достигать порога
		if uc.rules.DepositEnabled {
			current, err := uc.depositRepo.Get(txCtx, req.UserID)
			if err != nil {
				uc.logger.Error("CreateReservation: failed to get deposit: %v", err)
				return fmt.Errorf("%w: failed to get deposit: %w", ErrInternal, err)
			}
			if current.ReachedThreshold(uc.rules.DepositThreshold) {
				uc.logger.Warn("CreateReservation: user=%d deposit %d reached threshold %d",
					req.UserID, current.Amount, uc.rules.DepositThreshold)
				return domain.ErrDepositLimit
			}
		}

		// 5.2. Лимит активных бронирований
		active, err := uc.reservationRepo.CountActiveByUser(txCtx, req.UserID, now, nil)
		if err != nil {
			uc.logger.Error("CreateReservation: failed to count active reservations: %v", err)
			return fmt.Errorf("%w: failed to count active reservations: %w", ErrInternal, err)
		}
		if active >= uc.rules.MaxActiveReservations {
			uc.logger.Warn("CreateReservation: user=%d has %d/%d active reservations",
				req.UserID, active, uc.rules.MaxActiveReservations)
			return domain.ErrTooManyActive
		}

		// 5.3. Пересечения по сооружению (с блокировкой FOR UPDATE)
		overlapping, err := uc.reservationRepo.FindOverlapping(txCtx, facility, start, end, nil)
		if err != nil {
			uc.logger.Error("CreateReservation: failed to find overlapping reservations: %v", err)
			return fmt.Errorf("%w: failed to find overlapping reservations: %w", ErrInternal, err)
		}
		if len(overlapping) > 0 {
			uc.logger.Warn("CreateReservation: slot %s %s taken by reservation id=%d",
				facility, start.Format(domain.DateTimeFormat), overlapping[0].ID)
			return domain.ErrSlotTaken
		}

		// 5.4. Сохраняем бронирование
		created, err := uc.reservationRepo.Create(txCtx, &domain.Reservation{
			UserID:    req.UserID,
			Facility:  facility,
			StartTime: start,
			EndTime:   end,
		})
		if err != nil {
			uc.logger.Error("CreateReservation: failed to create reservation: %v", err)
			return fmt.Errorf("%w: failed to create reservation: %w", ErrInternal, err)
		}

		// 5.5. Увеличиваем фиансу
		if uc.rules.DepositEnabled {
			amount, err := uc.depositRepo.Add(txCtx, req.UserID, uc.rules.DepositIncrement)
			if err != nil {
				uc.logger.Error("CreateReservation: failed to increment deposit: %v", err)
				return fmt.Errorf("%w: failed to increment deposit: %w", ErrInternal, err)
			}
			deposit = ptr.Ptr(amount)
		}

		result = created
		return nil
	})

	if err != nil {
		// Конкурентная запись не сериализовалась за все попытки: слот занят другим запросом
		if errors.Is(err, txmanager.ErrSerialization) {
			err = domain.ErrSlotTaken
		}
		if domain.IsRuleViolation(err) {
			return nil, uc.reject("tx", err)
		}
		uc.logger.Error("CreateReservation: transaction failed: %v", err)
		return nil, err
	}

	uc.logger.Info("CreateReservation: successfully created reservation id=%d", result.ID)
	uc.metrics.IncReservation("create", result.Facility.Code())

	// 6. Событие публикуется после фиксации транзакции, ошибка не влияет на ответ
	event := domain.NewReservationEvent(domain.EventReservationCreated, result, now)
	if err := uc.publisher.Publish(ctx, event); err != nil {
		uc.logger.Warn("CreateReservation: failed to publish event for id=%d: %v", result.ID, err)
	}

	return &Response{
		Reservation: result,
		Deposit:     deposit,
	}, nil
}

// getFacilityConfig возвращает конфигурацию сооружения или значения по умолчанию
func (uc *UseCase) getFacilityConfig(ctx context.Context, facility domain.Facility) (*domain.FacilityConfig, error) {
	config, err := uc.configRepo.GetByFacility(ctx, facility)
	if err != nil {
		if errors.Is(err, configRepo.ErrConfigNotFound) {
			return uc.rules.DefaultFacilityConfig(facility), nil
		}
		uc.logger.Error("CreateReservation: failed to get config for %s: %v", facility, err)
		return nil, fmt.Errorf("%w: failed to get config: %w", ErrInternal, err)
	}
	return config, nil
}

// reject фиксирует отказ в метриках
func (uc *UseCase) reject(stage string, err error) error {
	uc.logger.Warn("CreateReservation: rejected at %s: %v", stage, err)
	uc.metrics.IncRejection(domain.RejectionReason(err))
	return err
}

// validateRequest валидирует входные данные запроса
func validateRequest(req *Request) (domain.Facility, error) {
	if req.UserID <= 0 {
		return "", fmt.Errorf("%w: userID must be positive", ErrInvalidInput)
	}

	facility, err := domain.ParseFacility(req.Facility)
	if err != nil {
		return "", fmt.Errorf("%w: unknown facility %q", ErrInvalidInput, req.Facility)
	}

	if req.StartTime.IsZero() || req.EndTime.IsZero() {
		return "", fmt.Errorf("%w: start and end are required", ErrInvalidInput)
	}

	return facility, nil
}
