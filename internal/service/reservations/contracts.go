package reservations

import (
	"context"
	"time"

	"github.com/m04kA/ReDe-ReservationService/internal/domain"
)

// ReservationRepository интерфейс репозитория бронирований
type ReservationRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.Reservation, error)
	Delete(ctx context.Context, id int64) error
	ListActiveByUser(ctx context.Context, userID int64, now time.Time) ([]*domain.Reservation, error)
	ListHistoryByUser(ctx context.Context, userID int64, now time.Time) ([]*domain.Reservation, error)
}

// DepositRepository интерфейс репозитория фиансы
type DepositRepository interface {
	Add(ctx context.Context, userID int64, delta int) (int, error)
}

// TransactionManager интерфейс для управления транзакциями
type TransactionManager interface {
	DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error
}

// EventPublisher интерфейс публикации событий бронирований
type EventPublisher interface {
	Publish(ctx context.Context, event domain.ReservationEvent) error
}

// Metrics интерфейс бизнес-метрик
type Metrics interface {
	IncReservation(operation, facility string)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
