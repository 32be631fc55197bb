package create_reservation

import (
	"time"

	"github.com/m04kA/ReDe-ReservationService/internal/api/handlers"
	reservationModels "github.com/m04kA/ReDe-ReservationService/internal/service/reservations/models"
	createReservation "github.com/m04kA/ReDe-ReservationService/internal/usecase/create_reservation"
)

// CreateReservationRequest HTTP request model
type CreateReservationRequest struct {
	Facility  string `json:"facility"`  // "padel" или "Padel"
	StartTime string `json:"startTime"` // "2026-05-10T18:00" или RFC 3339
	EndTime   string `json:"endTime"`
}

// ReservationCreatedResponse HTTP response model
type ReservationCreatedResponse struct {
	reservationModels.ReservationResponse
	Deposit *int `json:"deposit,omitempty"`
}

// ToUseCaseRequest конвертирует HTTP запрос в модель use case
func (r *CreateReservationRequest) ToUseCaseRequest(userID int64, loc *time.Location) (*createReservation.Request, error) {
	start, err := handlers.ParseDateTime(r.StartTime, loc)
	if err != nil {
		return nil, err
	}

	end, err := handlers.ParseDateTime(r.EndTime, loc)
	if err != nil {
		return nil, err
	}

	return &createReservation.Request{
		UserID:    userID,
		Facility:  r.Facility,
		StartTime: start,
		EndTime:   end,
	}, nil
}

// FromUseCaseResponse конвертирует ответ use case в HTTP модель
func FromUseCaseResponse(resp *createReservation.Response, loc *time.Location) *ReservationCreatedResponse {
	return &ReservationCreatedResponse{
		ReservationResponse: *reservationModels.FromDomainReservation(resp.Reservation, loc),
		Deposit:             resp.Deposit,
	}
}
