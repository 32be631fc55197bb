package domain

import "time"

// Правила бронирования
const (
	// SlotDuration единственная допустимая длительность бронирования
	SlotDuration = time.Hour

	DefaultMaxActiveReservations = 3
	DefaultDepositIncrement      = 2  // евро за одно бронирование
	DefaultDepositThreshold      = 10 // при достижении новые бронирования запрещены
	DefaultOpenHour              = 8
	DefaultCloseHour             = 22
	DefaultTimezone              = "Europe/Madrid"
)

// Ограничения входных данных
const (
	MinPasswordLength = 8
	MaxNameLength     = 150
	MaxEmailLength    = 254
)

// Форматы времени
const (
	TimeFormat     = "15:04"               // HH:MM
	DateFormat     = "2006-01-02"          // YYYY-MM-DD
	DateTimeFormat = "2006-01-02T15:04:05" // ISO без смещения, интерпретируется в локальной зоне
)
