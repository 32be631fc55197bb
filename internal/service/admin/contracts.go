package admin

import (
	"context"
	"time"

	"github.com/m04kA/ReDe-ReservationService/internal/domain"
	reservationModels "github.com/m04kA/ReDe-ReservationService/internal/service/reservations/models"
)

// ReservationRepository интерфейс репозитория бронирований
type ReservationRepository interface {
	ListWithFilter(ctx context.Context, filter domain.ReservationsFilter) ([]*domain.Reservation, error)
	CountAll(ctx context.Context) (int, error)
	CountActive(ctx context.Context, now time.Time) (int, error)
	CountByFacility(ctx context.Context) (map[domain.Facility]int, error)
}

// UserRepository интерфейс репозитория пользователей
type UserRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.User, error)
	ListWithStats(ctx context.Context, search string) ([]*domain.UserWithStats, error)
	Count(ctx context.Context) (int, error)
}

// DepositRepository интерфейс репозитория фиансы
type DepositRepository interface {
	Set(ctx context.Context, userID int64, amount int) (*domain.Deposit, error)
}

// ReservationDeleter удаляет бронирование с уменьшением фиансы владельца
type ReservationDeleter interface {
	DeleteAny(ctx context.Context, id int64) (*reservationModels.DeleteResponse, error)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
