package domain

import "time"

// Reservation бронирование сооружения пользователем на один час
type Reservation struct {
	ID        int64
	UserID    int64
	Facility  Facility
	StartTime time.Time
	EndTime   time.Time
	CreatedAt time.Time
	UpdatedAt time.Time

	// Заполняется только в админских выборках
	UserDNI string
}

// IsActive возвращает true, если бронирование еще не закончилось
func (r *Reservation) IsActive(now time.Time) bool {
	return r.EndTime.After(now)
}

// IsPast возвращает true, если бронирование уже закончилось
func (r *Reservation) IsPast(now time.Time) bool {
	return !r.IsActive(now)
}

// Duration длительность бронирования
func (r *Reservation) Duration() time.Duration {
	return r.EndTime.Sub(r.StartTime)
}

// Overlaps проверяет пересечение с интервалом [start, end)
// Интервалы, которые только граничат, не пересекаются
func (r *Reservation) Overlaps(start, end time.Time) bool {
	return r.StartTime.Before(end) && r.EndTime.After(start)
}

// IsOnTheHour проверяет, что время кратно часу (минуты, секунды и наносекунды равны нулю)
func IsOnTheHour(t time.Time) bool {
	return t.Minute() == 0 && t.Second() == 0 && t.Nanosecond() == 0
}

// ReservationsFilter фильтр для админской выборки бронирований
type ReservationsFilter struct {
	Facility *Facility  // Фильтр по сооружению (опционально)
	From     *time.Time // Начало не раньше (опционально)
	To       *time.Time // Начало строго раньше (опционально)
	Search   string     // Поиск по DNI или email пользователя (опционально)
	UserID   *int64     // Фильтр по пользователю (опционально)
}
