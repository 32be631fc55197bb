package domain

import (
	"errors"
	"time"
)

// Нарушения правил бронирования
// Общие для создания и изменения бронирования
var (
	ErrInvalidDuration     = errors.New("domain: reservation must last exactly one hour")
	ErrNotOnTheHour        = errors.New("domain: reservation must start and end on the hour")
	ErrInPast              = errors.New("domain: reservation must start in the future")
	ErrOutsideOpeningHours = errors.New("domain: reservation is outside opening hours")
	ErrFacilityClosed      = errors.New("domain: facility is closed")
	ErrSlotTaken           = errors.New("domain: slot is already reserved")
	ErrTooManyActive       = errors.New("domain: too many active reservations")
	ErrDepositLimit        = errors.New("domain: deposit limit reached")
)

// RejectionReason короткое имя нарушения для метрик
func RejectionReason(err error) string {
	switch {
	case errors.Is(err, ErrInvalidDuration):
		return "invalid_duration"
	case errors.Is(err, ErrNotOnTheHour):
		return "not_on_the_hour"
	case errors.Is(err, ErrInPast):
		return "in_past"
	case errors.Is(err, ErrOutsideOpeningHours):
		return "outside_opening_hours"
	case errors.Is(err, ErrFacilityClosed):
		return "facility_closed"
	case errors.Is(err, ErrSlotTaken):
		return "slot_taken"
	case errors.Is(err, ErrTooManyActive):
		return "too_many_active"
	case errors.Is(err, ErrDepositLimit):
		return "deposit_limit"
	default:
		return "other"
	}
}

// IsRuleViolation возвращает true для нарушений правил бронирования
func IsRuleViolation(err error) bool {
	return RejectionReason(err) != "other"
}

// ValidateInterval проверяет интервал бронирования без обращения к хранилищу
// Порядок проверок: кратность часу, длительность, время в будущем
func ValidateInterval(start, end, now time.Time) error {
	if !IsOnTheHour(start) || !IsOnTheHour(end) {
		return ErrNotOnTheHour
	}
	if end.Sub(start) != SlotDuration {
		return ErrInvalidDuration
	}
	if !start.After(now) {
		return ErrInPast
	}
	return nil
}

// ValidateOpening проверяет, что сооружение открыто и интервал в часах работы
// start и end должны быть в часовом поясе сооружения
func ValidateOpening(cfg *FacilityConfig, start, end time.Time) error {
	if !cfg.IsOpen {
		return ErrFacilityClosed
	}
	if !cfg.Contains(start, end) {
		return ErrOutsideOpeningHours
	}
	return nil
}

// BookingRules настраиваемые правила бронирования
// Собираются из конфигурации сервиса при старте
type BookingRules struct {
	MaxActiveReservations int
	DepositEnabled        bool
	DepositIncrement      int
	DepositThreshold      int
	OpenHour              int // часы работы, если у сооружения нет своей конфигурации
	CloseHour             int
	Location              *time.Location
}

// DefaultBookingRules правила по умолчанию в часовом поясе loc
func DefaultBookingRules(loc *time.Location) BookingRules {
	return BookingRules{
		MaxActiveReservations: DefaultMaxActiveReservations,
		DepositEnabled:        false,
		DepositIncrement:      DefaultDepositIncrement,
		DepositThreshold:      DefaultDepositThreshold,
		OpenHour:              DefaultOpenHour,
		CloseHour:             DefaultCloseHour,
		Location:              loc,
	}
}

// DefaultFacilityConfig конфигурация сооружения без записи в БД
func (r BookingRules) DefaultFacilityConfig(facility Facility) *FacilityConfig {
	return &FacilityConfig{
		Facility:  facility,
		OpenHour:  r.OpenHour,
		CloseHour: r.CloseHour,
		IsOpen:    true,
	}
}
