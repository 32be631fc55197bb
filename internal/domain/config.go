package domain

import (
	"fmt"
	"time"
)

// FacilityConfig настройки работы сооружения
// Если записи в БД нет, используются значения из конфигурации сервиса
type FacilityConfig struct {
	Facility  Facility
	OpenHour  int  // Час открытия (0-23)
	CloseHour int  // Час закрытия (1-24), последний слот начинается в CloseHour-1
	IsOpen    bool // false = закрыто администратором (ремонт, соревнования)
	UpdatedAt time.Time
}

// Validate проверяет границы часов работы
func (c *FacilityConfig) Validate() error {
	if c.OpenHour < 0 || c.OpenHour > 23 {
		return fmt.Errorf("open hour must be in [0, 23], got %d", c.OpenHour)
	}
	if c.CloseHour < 1 || c.CloseHour > 24 {
		return fmt.Errorf("close hour must be in [1, 24], got %d", c.CloseHour)
	}
	if c.OpenHour >= c.CloseHour {
		return fmt.Errorf("open hour %d must be before close hour %d", c.OpenHour, c.CloseHour)
	}
	return nil
}

// OpenAt возвращает время открытия в день date
func (c *FacilityConfig) OpenAt(date time.Time) time.Time {
	y, m, d := date.Date()
	return time.Date(y, m, d, c.OpenHour, 0, 0, 0, date.Location())
}

// CloseAt возвращает время закрытия в день date
func (c *FacilityConfig) CloseAt(date time.Time) time.Time {
	y, m, d := date.Date()
	// CloseHour = 24 нормализуется в полночь следующего дня
	return time.Date(y, m, d, c.CloseHour, 0, 0, 0, date.Location())
}

// Contains проверяет, что интервал [start, end) помещается в часы работы дня start
func (c *FacilityConfig) Contains(start, end time.Time) bool {
	return !start.Before(c.OpenAt(start)) && !end.After(c.CloseAt(start))
}

// FormatHour форматирует час как "HH:MM"
func FormatHour(hour int) string {
	return fmt.Sprintf("%02d:00", hour)
}
