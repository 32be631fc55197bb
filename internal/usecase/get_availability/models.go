package get_availability

import (
	"time"

	"github.com/m04kA/ReDe-ReservationService/internal/domain"
)

// Request модель запроса на получение слотов сооружения
type Request struct {
	Facility string    // Код или имя сооружения
	Date     time.Time // День (время игнорируется)
}

// Response модель ответа со слотами дня
type Response struct {
	Facility  domain.Facility
	Date      time.Time
	IsOpen    bool
	OpenHour  int
	CloseHour int
	Slots     []domain.AvailableSlot
	Occupied  []string // Время начала занятых слотов в формате HH:MM
}
