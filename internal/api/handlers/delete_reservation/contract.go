package delete_reservation

import (
	"context"

	"github.com/m04kA/ReDe-ReservationService/internal/service/reservations/models"
)

type ReservationService interface {
	Delete(ctx context.Context, userID, id int64) (*models.DeleteResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
