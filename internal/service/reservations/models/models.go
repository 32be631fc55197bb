package models

import (
	"time"

	"github.com/m04kA/ReDe-ReservationService/internal/domain"
)

// Response модели

// ReservationResponse ответ с данными бронирования
// Время отдается в часовом поясе сооружений (RFC 3339 со смещением)
type ReservationResponse struct {
	ID           int64     `json:"id"`
	UserID       int64     `json:"userId"`
	UserDNI      string    `json:"userDni,omitempty"` // Только в админских выборках
	Facility     string    `json:"facility"`          // "padel"
	FacilityName string    `json:"facilityName"`      // "Padel"
	Date         string    `json:"date"`              // "2026-05-10"
	StartTime    time.Time `json:"startTime"`
	EndTime      time.Time `json:"endTime"`
	CreatedAt    time.Time `json:"createdAt"`
	UpdatedAt    time.Time `json:"updatedAt"`
}

// ReservationListResponse ответ со списком бронирований
type ReservationListResponse struct {
	Reservations []ReservationResponse `json:"reservations"`
}

// DeleteResponse ответ на удаление бронирования
type DeleteResponse struct {
	Success bool `json:"success"`
	Deposit *int `json:"deposit,omitempty"` // Новое значение фиансы, если она включена
}

// Методы конвертации

// FromDomainReservation конвертирует domain модель в DTO
func FromDomainReservation(r *domain.Reservation, loc *time.Location) *ReservationResponse {
	if r == nil {
		return nil
	}
	if loc == nil {
		loc = time.UTC
	}

	start := r.StartTime.In(loc)

	return &ReservationResponse{
		ID:           r.ID,
		UserID:       r.UserID,
		UserDNI:      r.UserDNI,
		Facility:     r.Facility.Code(),
		FacilityName: r.Facility.Name(),
		Date:         start.Format(domain.DateFormat),
		StartTime:    start,
		EndTime:      r.EndTime.In(loc),
		CreatedAt:    r.CreatedAt,
		UpdatedAt:    r.UpdatedAt,
	}
}

// FromDomainReservationList конвертирует список domain моделей в DTO
func FromDomainReservationList(reservations []*domain.Reservation, loc *time.Location) *ReservationListResponse {
	resp := &ReservationListResponse{
		Reservations: make([]ReservationResponse, 0, len(reservations)),
	}

	for _, r := range reservations {
		if item := FromDomainReservation(r, loc); item != nil {
			resp.Reservations = append(resp.Reservations, *item)
		}
	}

	return resp
}
