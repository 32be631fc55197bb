package admin_delete_reservation

import (
	"context"

	reservationModels "github.com/m04kA/ReDe-ReservationService/internal/service/reservations/models"
)

type AdminService interface {
	DeleteReservation(ctx context.Context, id int64) (*reservationModels.DeleteResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
