package update_reservation

import (
	"context"
	"time"

	"github.com/m04kA/ReDe-ReservationService/internal/domain"
)

// ReservationRepository интерфейс репозитория бронирований
type ReservationRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.Reservation, error)
	Update(ctx context.Context, res *domain.Reservation) (*domain.Reservation, error)
	CountActiveByUser(ctx context.Context, userID int64, now time.Time, excludeID *int64) (int, error)
	FindOverlapping(ctx context.Context, facility domain.Facility, start, end time.Time, excludeID *int64) ([]*domain.Reservation, error)
}

// ConfigRepository интерфейс репозитория часов работы сооружений
type ConfigRepository interface {
	GetByFacility(ctx context.Context, facility domain.Facility) (*domain.FacilityConfig, error)
}

// TransactionManager интерфейс для управления транзакциями
type TransactionManager interface {
	DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error
}

// EventPublisher публикует события о бронированиях
type EventPublisher interface {
	Publish(ctx context.Context, event domain.ReservationEvent) error
}

// Metrics бизнес-метрики бронирований
type Metrics interface {
	IncReservation(operation, facility string)
	IncRejection(reason string)
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
