package create_reservation

import (
	"errors"
	"net/http"
	"time"

	"github.com/m04kA/ReDe-ReservationService/internal/api/handlers"
	"github.com/m04kA/ReDe-ReservationService/internal/api/middleware"
	createReservation "github.com/m04kA/ReDe-ReservationService/internal/usecase/create_reservation"
)

const (
	msgInvalidRequestBody = "Cuerpo de la solicitud incorrecto."
	msgMissingUserID      = "Se requiere autenticación."
	msgInvalidDateTime    = "Formato de fecha y hora incorrecto, se espera YYYY-MM-DDTHH:MM."
	msgInvalidData        = "Datos de la reserva incorrectos."
)

type Handler struct {
	useCase  CreateReservationUseCase
	location *time.Location
	logger   Logger
}

func NewHandler(useCase CreateReservationUseCase, location *time.Location, logger Logger) *Handler {
	return &Handler{
		useCase:  useCase,
		location: location,
		logger:   logger,
	}
}

// Handle POST /api/v1/reservations
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		h.logger.Warn("POST /reservations - Missing user ID")
		handlers.RespondUnauthorized(w, msgMissingUserID)
		return
	}

	var req CreateReservationRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /reservations - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	// Конвертируем HTTP запрос в модель use case (с парсингом времени)
	useCaseReq, err := req.ToUseCaseRequest(userID, h.location)
	if err != nil {
		h.logger.Warn("POST /reservations - Failed to parse time: %v", err)
		handlers.RespondBadRequest(w, msgInvalidDateTime)
		return
	}

	result, err := h.useCase.Execute(r.Context(), useCaseReq)
	if err != nil {
		if handlers.RespondRuleViolation(w, err) {
			h.logger.Warn("POST /reservations - Rejected: user_id=%d, facility=%s, reason=%v", userID, req.Facility, err)
			return
		}
		if errors.Is(err, createReservation.ErrInvalidInput) {
			h.logger.Warn("POST /reservations - Invalid data: user_id=%d, error=%v", userID, err)
			handlers.RespondBadRequest(w, msgInvalidData)
			return
		}
		h.logger.Error("POST /reservations - Failed to create reservation: user_id=%d, error=%v", userID, err)
		handlers.RespondInternalError(w)
		return
	}

	h.logger.Info("POST /reservations - Reservation created: reservation_id=%d, user_id=%d",
		result.Reservation.ID, userID)
	handlers.RespondJSON(w, http.StatusCreated, FromUseCaseResponse(result, h.location))
}
