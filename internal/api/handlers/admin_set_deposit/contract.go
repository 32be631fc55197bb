package admin_set_deposit

import (
	"context"

	"github.com/m04kA/ReDe-ReservationService/internal/service/admin/models"
)

type AdminService interface {
	SetDeposit(ctx context.Context, userID int64, req *models.SetDepositRequest) (*models.DepositResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
