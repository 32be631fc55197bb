package list_facilities

import (
	"context"

	"github.com/m04kA/ReDe-ReservationService/internal/service/config/models"
)

type ConfigService interface {
	List(ctx context.Context) (*models.ConfigListResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
