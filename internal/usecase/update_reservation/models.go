package update_reservation

import (
	"time"

	"github.com/m04kA/ReDe-ReservationService/internal/domain"
)

// Request модель частичного изменения бронирования
// nil поле сохраняет текущее значение
type Request struct {
	UserID        int64
	ReservationID int64
	Facility      *string
	StartTime     *time.Time
	EndTime       *time.Time
}

// Response модель ответа с измененным бронированием
type Response struct {
	Reservation *domain.Reservation
}
