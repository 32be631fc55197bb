package get_availability

import (
	"net/http"
	"time"

	"github.com/gorilla/mux"

	"github.com/m04kA/ReDe-ReservationService/internal/api/handlers"
	"github.com/m04kA/ReDe-ReservationService/internal/domain"
	getAvailability "github.com/m04kA/ReDe-ReservationService/internal/usecase/get_availability"
)

const (
	msgFacilityNotFound = "Espacio no encontrado."
	msgMissingDate      = "La fecha es obligatoria."
	msgInvalidDate      = "Formato de fecha incorrecto, se espera YYYY-MM-DD."
)

type Handler struct {
	useCase  GetAvailabilityUseCase
	location *time.Location
	logger   Logger
}

func NewHandler(useCase GetAvailabilityUseCase, location *time.Location, logger Logger) *Handler {
	return &Handler{
		useCase:  useCase,
		location: location,
		logger:   logger,
	}
}

// Handle GET /api/v1/facilities/{facility}/availability
// Query params: date (required, YYYY-MM-DD)
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	facilityParam := mux.Vars(r)["facility"]
	if _, err := domain.ParseFacility(facilityParam); err != nil {
		h.logger.Warn("GET /facilities/{facility}/availability - Unknown facility: %q", facilityParam)
		handlers.RespondNotFound(w, msgFacilityNotFound)
		return
	}

	dateStr := r.URL.Query().Get("date")
	if dateStr == "" {
		handlers.RespondBadRequest(w, msgMissingDate)
		return
	}

	date, err := handlers.ParseDate(dateStr, h.location)
	if err != nil {
		h.logger.Warn("GET /facilities/{facility}/availability - Invalid date: %q", dateStr)
		handlers.RespondBadRequest(w, msgInvalidDate)
		return
	}

	result, err := h.useCase.Execute(r.Context(), &getAvailability.Request{
		Facility: facilityParam,
		Date:     date,
	})
	if err != nil {
		h.logger.Error("GET /facilities/{facility}/availability - Failed to get slots: facility=%s, date=%s, error=%v",
			facilityParam, dateStr, err)
		handlers.RespondInternalError(w)
		return
	}

	h.logger.Info("GET /facilities/{facility}/availability - Slots retrieved: facility=%s, date=%s, slots_count=%d",
		facilityParam, dateStr, len(result.Slots))
	handlers.RespondJSON(w, http.StatusOK, FromUseCaseResponse(result))
}
