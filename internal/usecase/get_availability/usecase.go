package get_availability

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/m04kA/ReDe-ReservationService/internal/domain"
	configRepo "github.com/m04kA/ReDe-ReservationService/internal/infra/storage/config"
)

// UseCase use case для получения слотов сооружения на день
type UseCase struct {
	reservationRepo ReservationRepository
	configRepo      ConfigRepository
	rules           domain.BookingRules
	timeProvider    TimeProvider
	logger          Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	reservationRepo ReservationRepository,
	configRepo ConfigRepository,
	rules domain.BookingRules,
	logger Logger,
) *UseCase {
	return &UseCase{
		reservationRepo: reservationRepo,
		configRepo:      configRepo,
		rules:           rules,
		timeProvider:    &RealTimeProvider{},
		logger:          logger,
	}
}

// Execute выполняет use case получения слотов
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("GetAvailability: facility=%s, date=%s", req.Facility, req.Date.Format(domain.DateFormat))

	// 1. Валидация входных данных
	facility, err := domain.ParseFacility(req.Facility)
	if err != nil {
		uc.logger.Warn("GetAvailability: unknown facility %q", req.Facility)
		return nil, fmt.Errorf("%w: unknown facility %q", ErrInvalidInput, req.Facility)
	}
	if req.Date.IsZero() {
		return nil, fmt.Errorf("%w: date is required", ErrInvalidInput)
	}

	// 2. Получаем текущее время и начало дня в часовом поясе сооружений
	now := uc.timeProvider.Now()
	y, m, d := req.Date.Date()
	day := time.Date(y, m, d, 0, 0, 0, 0, uc.rules.Location)

	// 3. Получаем часы работы
	config, err := uc.configRepo.GetByFacility(ctx, facility)
	if err != nil {
		if !errors.Is(err, configRepo.ErrConfigNotFound) {
			uc.logger.Error("GetAvailability: failed to get config for %s: %v", facility, err)
			return nil, fmt.Errorf("%w: failed to get config: %v", ErrInternal, err)
		}
		config = uc.rules.DefaultFacilityConfig(facility)
	}

	resp := &Response{
		Facility:  facility,
		Date:      day,
		IsOpen:    config.IsOpen,
		OpenHour:  config.OpenHour,
		CloseHour: config.CloseHour,
		Slots:     []domain.AvailableSlot{},
		Occupied:  []string{},
	}

	// 4. Получаем бронирования за весь день
	reservations, err := uc.reservationRepo.ListByFacilityAndRange(ctx, facility, day, day.AddDate(0, 0, 1))
	if err != nil {
		uc.logger.Error("GetAvailability: failed to get reservations: %v", err)
		return nil, fmt.Errorf("%w: failed to get reservations: %v", ErrInternal, err)
	}

	for _, r := range reservations {
		resp.Occupied = append(resp.Occupied, r.StartTime.In(uc.rules.Location).Format(domain.TimeFormat))
	}

	// 5. Закрытое сооружение не отдает слотов
	if !config.IsOpen {
		uc.logger.Info("GetAvailability: facility %s is closed", facility)
		return resp, nil
	}

	// 6. Генерируем слоты и помечаем недоступные
	resp.Slots = buildSlots(config, day, now, reservations)

	uc.logger.Info("GetAvailability: generated %d slots for %s on %s",
		len(resp.Slots), facility, day.Format(domain.DateFormat))

	return resp, nil
}

// buildSlots генерирует часовые слоты от открытия до закрытия
// Слот недоступен, если пересекается с бронированием или начинается не позже now
// Граничащие интервалы пересечением не считаются
func buildSlots(config *domain.FacilityConfig, day, now time.Time, reservations []*domain.Reservation) []domain.AvailableSlot {
	closeAt := config.CloseAt(day)
	slots := make([]domain.AvailableSlot, 0, config.CloseHour-config.OpenHour)

	for start := config.OpenAt(day); !start.Add(domain.SlotDuration).After(closeAt); start = start.Add(domain.SlotDuration) {
		end := start.Add(domain.SlotDuration)
		slot := domain.AvailableSlot{StartTime: start, EndTime: end, Available: true}

		switch {
		case isOccupied(reservations, start, end):
			slot.Available = false
			slot.Reason = domain.SlotReasonOccupied
		case !start.After(now):
			slot.Available = false
			slot.Reason = domain.SlotReasonPast
		}

		slots = append(slots, slot)
	}

	return slots
}

func isOccupied(reservations []*domain.Reservation, start, end time.Time) bool {
	for _, r := range reservations {
		if r.Overlaps(start, end) {
			return true
		}
	}
	return false
}
