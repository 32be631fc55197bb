package handlers

import (
	"errors"
	"time"

	"github.com/m04kA/ReDe-ReservationService/internal/domain"
)

// ErrInvalidDateTime дата или время не распознаны
var ErrInvalidDateTime = errors.New("invalid date/time")

// дополнительные форматы без смещения, как их присылает datetime-local
var localLayouts = []string{
	domain.DateTimeFormat,
	"2006-01-02T15:04",
	"2006-01-02 15:04",
}

// ParseDateTime разбирает RFC 3339 или локальное время сооружений без смещения
func ParseDateTime(value string, loc *time.Location) (time.Time, error) {
	if t, err := time.Parse(time.RFC3339, value); err == nil {
		return t.In(loc), nil
	}
	for _, layout := range localLayouts {
		if t, err := time.ParseInLocation(layout, value, loc); err == nil {
			return t, nil
		}
	}
	return time.Time{}, ErrInvalidDateTime
}

// ParseDate разбирает YYYY-MM-DD в часовом поясе сооружений
func ParseDate(value string, loc *time.Location) (time.Time, error) {
	t, err := time.ParseInLocation(domain.DateFormat, value, loc)
	if err != nil {
		return time.Time{}, ErrInvalidDateTime
	}
	return t, nil
}
