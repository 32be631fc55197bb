package update_reservation

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/gorilla/mux"

	"github.com/m04kA/ReDe-ReservationService/internal/api/handlers"
	"github.com/m04kA/ReDe-ReservationService/internal/api/middleware"
	reservationModels "github.com/m04kA/ReDe-ReservationService/internal/service/reservations/models"
	updateReservation "github.com/m04kA/ReDe-ReservationService/internal/usecase/update_reservation"
)

const (
	msgInvalidReservationID = "ID de reserva incorrecto."
	msgInvalidRequestBody   = "Cuerpo de la solicitud incorrecto."
	msgMissingUserID        = "Se requiere autenticación."
	msgInvalidDateTime      = "Formato de fecha y hora incorrecto, se espera YYYY-MM-DDTHH:MM."
	msgInvalidData          = "Datos de la reserva incorrectos."
	msgNotFound             = "Reserva no encontrada."
)

type Handler struct {
	useCase  UpdateReservationUseCase
	location *time.Location
	logger   Logger
}

func NewHandler(useCase UpdateReservationUseCase, location *time.Location, logger Logger) *Handler {
	return &Handler{
		useCase:  useCase,
		location: location,
		logger:   logger,
	}
}

// Handle PUT /api/v1/reservations/{reservationId}
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	reservationID, err := strconv.ParseInt(mux.Vars(r)["reservationId"], 10, 64)
	if err != nil || reservationID <= 0 {
		h.logger.Warn("PUT /reservations/{id} - Invalid reservation ID: %q", mux.Vars(r)["reservationId"])
		handlers.RespondBadRequest(w, msgInvalidReservationID)
		return
	}

	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		h.logger.Warn("PUT /reservations/{id} - Missing user ID")
		handlers.RespondUnauthorized(w, msgMissingUserID)
		return
	}

	var req UpdateReservationRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("PUT /reservations/{id} - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	useCaseReq, err := req.ToUseCaseRequest(userID, reservationID, h.location)
	if err != nil {
		h.logger.Warn("PUT /reservations/{id} - Failed to parse time: %v", err)
		handlers.RespondBadRequest(w, msgInvalidDateTime)
		return
	}

	result, err := h.useCase.Execute(r.Context(), useCaseReq)
	if err != nil {
		if handlers.RespondRuleViolation(w, err) {
			h.logger.Warn("PUT /reservations/{id} - Rejected: reservation_id=%d, reason=%v", reservationID, err)
			return
		}
		switch {
		case errors.Is(err, updateReservation.ErrReservationNotFound):
			h.logger.Warn("PUT /reservations/{id} - Not found: reservation_id=%d, user_id=%d", reservationID, userID)
			handlers.RespondNotFound(w, msgNotFound)

		case errors.Is(err, updateReservation.ErrInvalidInput):
			h.logger.Warn("PUT /reservations/{id} - Invalid data: %v", err)
			handlers.RespondBadRequest(w, msgInvalidData)

		default:
			h.logger.Error("PUT /reservations/{id} - Failed to update reservation: reservation_id=%d, error=%v", reservationID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("PUT /reservations/{id} - Reservation updated: reservation_id=%d, user_id=%d", reservationID, userID)
	handlers.RespondJSON(w, http.StatusOK, reservationModels.FromDomainReservation(result.Reservation, h.location))
}
