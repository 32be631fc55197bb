package models

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/m04kA/ReDe-ReservationService/internal/domain"
)

var (
	// ErrInvalidHour возвращается при некорректном формате часа
	ErrInvalidHour = errors.New("time must be HH:00")
)

// Request модели

// UpdateConfigRequest запрос на обновление часов работы сооружения
// Все поля опциональны - обновляются только переданные значения
type UpdateConfigRequest struct {
	OpenTime  *string `json:"openTime,omitempty"`  // "08:00"
	CloseTime *string `json:"closeTime,omitempty"` // "22:00", допускается "24:00"
	IsOpen    *bool   `json:"isOpen,omitempty"`
}

// Response модели

// ConfigResponse ответ с часами работы сооружения
type ConfigResponse struct {
	Facility     string     `json:"facility"`
	FacilityName string     `json:"facilityName"`
	OpenTime     string     `json:"openTime"`
	CloseTime    string     `json:"closeTime"`
	IsOpen       bool       `json:"isOpen"`
	IsDefault    bool       `json:"isDefault"` // Запись в БД отсутствует
	UpdatedAt    *time.Time `json:"updatedAt,omitempty"`
}

// ConfigListResponse ответ со списком сооружений
type ConfigListResponse struct {
	Facilities []ConfigResponse `json:"facilities"`
}

// Методы конвертации

// FromDomainConfig конвертирует domain модель в DTO
func FromDomainConfig(c *domain.FacilityConfig, isDefault bool) *ConfigResponse {
	if c == nil {
		return nil
	}

	resp := &ConfigResponse{
		Facility:     c.Facility.Code(),
		FacilityName: c.Facility.Name(),
		OpenTime:     domain.FormatHour(c.OpenHour),
		CloseTime:    domain.FormatHour(c.CloseHour),
		IsOpen:       c.IsOpen,
		IsDefault:    isDefault,
	}
	if !c.UpdatedAt.IsZero() {
		updatedAt := c.UpdatedAt
		resp.UpdatedAt = &updatedAt
	}

	return resp
}

// ParseHour разбирает "HH:MM" с нулевыми минутами в час от 0 до 24
func ParseHour(s string) (int, error) {
	hh, mm, ok := strings.Cut(strings.TrimSpace(s), ":")
	if !ok || len(hh) != 2 || mm != "00" {
		return 0, fmt.Errorf("%w: %q", ErrInvalidHour, s)
	}

	hour, err := strconv.Atoi(hh)
	if err != nil || hour < 0 || hour > 24 {
		return 0, fmt.Errorf("%w: %q", ErrInvalidHour, s)
	}

	return hour, nil
}
