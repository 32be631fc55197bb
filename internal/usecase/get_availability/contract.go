package get_availability

import (
	"context"
	"time"

	"github.com/m04kA/ReDe-ReservationService/internal/domain"
)

// ReservationRepository интерфейс репозитория бронирований
type ReservationRepository interface {
	// ListByFacilityAndRange получает бронирования сооружения, пересекающиеся с [from, to)
	ListByFacilityAndRange(ctx context.Context, facility domain.Facility, from, to time.Time) ([]*domain.Reservation, error)
}

// ConfigRepository интерфейс репозитория часов работы сооружений
type ConfigRepository interface {
	GetByFacility(ctx context.Context, facility domain.Facility) (*domain.FacilityConfig, error)
}

// TimeProvider интерфейс для получения текущего времени (для тестирования)
type TimeProvider interface {
	Now() time.Time
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

// RealTimeProvider реальный провайдер времени для production
type RealTimeProvider struct{}

// Now возвращает текущее время
func (p *RealTimeProvider) Now() time.Time {
	return time.Now()
}
