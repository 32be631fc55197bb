package admin_info

import (
	"context"

	"github.com/m04kA/ReDe-ReservationService/internal/service/admin/models"
)

type AdminService interface {
	Info(ctx context.Context) (*models.InfoResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
