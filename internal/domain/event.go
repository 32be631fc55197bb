package domain

import "time"

// EventType тип события бронирования
type EventType string

const (
	EventReservationCreated EventType = "reservation.created"
	EventReservationUpdated EventType = "reservation.updated"
	EventReservationDeleted EventType = "reservation.deleted"
)

// ReservationEvent событие об изменении бронирования
type ReservationEvent struct {
	Type          EventType
	ReservationID int64
	UserID        int64
	Facility      Facility
	StartTime     time.Time
	EndTime       time.Time
	OccurredAt    time.Time
}

// NewReservationEvent собирает событие по бронированию
func NewReservationEvent(eventType EventType, r *Reservation, at time.Time) ReservationEvent {
	return ReservationEvent{
		Type:          eventType,
		ReservationID: r.ID,
		UserID:        r.UserID,
		Facility:      r.Facility,
		StartTime:     r.StartTime,
		EndTime:       r.EndTime,
		OccurredAt:    at,
	}
}
