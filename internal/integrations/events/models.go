package events

import (
	"time"

	"github.com/m04kA/ReDe-ReservationService/internal/domain"
)

// Message тело сообщения о бронировании в брокере
type Message struct {
	Type          string    `json:"type"`
	ReservationID int64     `json:"reservation_id"`
	UserID        int64     `json:"user_id"`
	Facility      string    `json:"facility"`
	StartTime     time.Time `json:"start_time"`
	EndTime       time.Time `json:"end_time"`
	OccurredAt    time.Time `json:"occurred_at"`
}

// FromDomainEvent конвертирует событие в сообщение
func FromDomainEvent(e domain.ReservationEvent) Message {
	return Message{
		Type:          string(e.Type),
		ReservationID: e.ReservationID,
		UserID:        e.UserID,
		Facility:      e.Facility.Code(),
		StartTime:     e.StartTime.UTC(),
		EndTime:       e.EndTime.UTC(),
		OccurredAt:    e.OccurredAt.UTC(),
	}
}
