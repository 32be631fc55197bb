package handlers

import (
	"errors"
	"net/http"

	"github.com/m04kA/ReDe-ReservationService/internal/domain"
)

// Сообщения о нарушении правил бронирования
const (
	MsgInvalidDuration     = "La reserva debe durar exactamente una hora."
	MsgNotOnTheHour        = "La hora de inicio y fin deben ser en punto."
	MsgInPast              = "No se pueden hacer reservas en el pasado."
	MsgOutsideOpeningHours = "La reserva está fuera del horario de apertura."
	MsgFacilityClosed      = "El espacio está cerrado."
	MsgSlotTaken           = "Ya existe una reserva para este espacio en ese horario."
	MsgTooManyActive       = "Has alcanzado el número máximo de reservas activas."
	MsgDepositLimit        = "Has alcanzado el límite de fianza. No puedes hacer más reservas."
)

var ruleResponses = []struct {
	err     error
	status  int
	message string
}{
	{domain.ErrInvalidDuration, http.StatusUnprocessableEntity, MsgInvalidDuration},
	{domain.ErrNotOnTheHour, http.StatusUnprocessableEntity, MsgNotOnTheHour},
	{domain.ErrInPast, http.StatusUnprocessableEntity, MsgInPast},
	{domain.ErrOutsideOpeningHours, http.StatusUnprocessableEntity, MsgOutsideOpeningHours},
	{domain.ErrFacilityClosed, http.StatusConflict, MsgFacilityClosed},
	{domain.ErrSlotTaken, http.StatusConflict, MsgSlotTaken},
	{domain.ErrTooManyActive, http.StatusConflict, MsgTooManyActive},
	{domain.ErrDepositLimit, http.StatusConflict, MsgDepositLimit},
}

// RespondRuleViolation отправляет ответ, если err нарушение правила бронирования
// Возвращает false, если err к правилам не относится
func RespondRuleViolation(w http.ResponseWriter, err error) bool {
	for _, rr := range ruleResponses {
		if errors.Is(err, rr.err) {
			RespondError(w, rr.status, rr.message)
			return true
		}
	}
	return false
}
