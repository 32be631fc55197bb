package update_reservation

import (
	"time"

	"github.com/m04kA/ReDe-ReservationService/internal/api/handlers"
	updateReservation "github.com/m04kA/ReDe-ReservationService/internal/usecase/update_reservation"
)

// UpdateReservationRequest HTTP request model
// Отсутствующее поле сохраняет текущее значение
type UpdateReservationRequest struct {
	Facility  *string `json:"facility,omitempty"`
	StartTime *string `json:"startTime,omitempty"`
	EndTime   *string `json:"endTime,omitempty"`
}

// ToUseCaseRequest конвертирует HTTP запрос в модель use case
func (r *UpdateReservationRequest) ToUseCaseRequest(userID, reservationID int64, loc *time.Location) (*updateReservation.Request, error) {
	req := &updateReservation.Request{
		UserID:        userID,
		ReservationID: reservationID,
		Facility:      r.Facility,
	}

	if r.StartTime != nil {
		start, err := handlers.ParseDateTime(*r.StartTime, loc)
		if err != nil {
			return nil, err
		}
		req.StartTime = &start
	}

	if r.EndTime != nil {
		end, err := handlers.ParseDateTime(*r.EndTime, loc)
		if err != nil {
			return nil, err
		}
		req.EndTime = &end
	}

	return req, nil
}
