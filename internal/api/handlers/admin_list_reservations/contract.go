package admin_list_reservations

import (
	"context"

	"github.com/m04kA/ReDe-ReservationService/internal/service/admin/models"
	reservationModels "github.com/m04kA/ReDe-ReservationService/internal/service/reservations/models"
)

type AdminService interface {
	ListReservations(ctx context.Context, req *models.ListReservationsRequest) (*reservationModels.ReservationListResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
