package get_me

import (
	"context"

	"github.com/m04kA/ReDe-ReservationService/internal/service/auth/models"
)

type AuthService interface {
	Me(ctx context.Context, userID int64) (*models.MeResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
