package update_reservation

import "errors"

var (
	// ErrReservationNotFound бронирование не найдено или принадлежит другому пользователю
	ErrReservationNotFound = errors.New("update_reservation: reservation not found")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("update_reservation: invalid input data")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("update_reservation: internal error")
)
