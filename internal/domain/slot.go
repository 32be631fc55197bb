package domain

import "time"

// AvailableSlot часовой слот сооружения на конкретную дату
type AvailableSlot struct {
	StartTime time.Time
	EndTime   time.Time
	Available bool
	Reason    SlotUnavailableReason
}

// SlotUnavailableReason причина недоступности слота
type SlotUnavailableReason string

const (
	SlotReasonNone     SlotUnavailableReason = ""
	SlotReasonOccupied SlotUnavailableReason = "occupied"
	SlotReasonPast     SlotUnavailableReason = "past"
)

// IsOccupied возвращает true, если слот занят другим бронированием
func (s *AvailableSlot) IsOccupied() bool {
	return s.Reason == SlotReasonOccupied
}
