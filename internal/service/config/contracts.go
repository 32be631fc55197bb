package config

import (
	"context"

	"github.com/m04kA/ReDe-ReservationService/internal/domain"
)

// ConfigRepository интерфейс репозитория часов работы сооружений
type ConfigRepository interface {
	GetByFacility(ctx context.Context, facility domain.Facility) (*domain.FacilityConfig, error)
	GetAll(ctx context.Context) ([]*domain.FacilityConfig, error)
	Upsert(ctx context.Context, config *domain.FacilityConfig) (*domain.FacilityConfig, error)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
