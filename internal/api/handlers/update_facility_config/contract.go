package update_facility_config

import (
	"context"

	"github.com/m04kA/ReDe-ReservationService/internal/service/config/models"
)

type ConfigService interface {
	Update(ctx context.Context, facilityCode string, req *models.UpdateConfigRequest) (*models.ConfigResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
