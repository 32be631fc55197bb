package create_reservation

import (
	"time"

	"github.com/m04kA/ReDe-ReservationService/internal/domain"
)

// Request модель запроса на создание бронирования
type Request struct {
	UserID    int64     // ID пользователя из токена
	Facility  string    // Код или имя сооружения
	StartTime time.Time // Начало, приводится к часовому поясу сооружений
	EndTime   time.Time // Конец, ровно через час после начала
}

// Response модель ответа с созданным бронированием
type Response struct {
	Reservation *domain.Reservation
	Deposit     *int // Фианса после бронирования (nil, если механика выключена)
}
