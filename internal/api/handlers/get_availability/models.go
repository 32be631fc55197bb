package get_availability

import (
	"time"

	"github.com/m04kA/ReDe-ReservationService/internal/domain"
	getAvailability "github.com/m04kA/ReDe-ReservationService/internal/usecase/get_availability"
)

// AvailabilityResponse HTTP response model
type AvailabilityResponse struct {
	Facility     string          `json:"facility"`
	FacilityName string          `json:"facilityName"`
	Date         string          `json:"date"`
	IsOpen       bool            `json:"isOpen"`
	OpenTime     string          `json:"openTime"`
	CloseTime    string          `json:"closeTime"`
	Slots        []AvailableSlot `json:"slots"`
	Occupied     []string        `json:"occupied"` // "HH:MM" начала занятых часов
}

// AvailableSlot модель часового слота
type AvailableSlot struct {
	StartTime time.Time `json:"startTime"`
	EndTime   time.Time `json:"endTime"`
	Label     string    `json:"label"` // "18:00"
	Available bool      `json:"available"`
	Reason    string    `json:"reason,omitempty"` // "occupied" | "past"
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *getAvailability.Response) *AvailabilityResponse {
	slots := make([]AvailableSlot, len(resp.Slots))
	for i, slot := range resp.Slots {
		slots[i] = AvailableSlot{
			StartTime: slot.StartTime,
			EndTime:   slot.EndTime,
			Label:     slot.StartTime.Format(domain.TimeFormat),
			Available: slot.Available,
			Reason:    string(slot.Reason),
		}
	}

	return &AvailabilityResponse{
		Facility:     resp.Facility.Code(),
		FacilityName: resp.Facility.Name(),
		Date:         resp.Date.Format(domain.DateFormat),
		IsOpen:       resp.IsOpen,
		OpenTime:     domain.FormatHour(resp.OpenHour),
		CloseTime:    domain.FormatHour(resp.CloseHour),
		Slots:        slots,
		Occupied:     resp.Occupied,
	}
}
