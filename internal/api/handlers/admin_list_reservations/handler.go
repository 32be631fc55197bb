package admin_list_reservations

import (
	"errors"
	"net/http"

	"github.com/m04kA/ReDe-ReservationService/internal/api/handlers"
	"github.com/m04kA/ReDe-ReservationService/internal/service/admin"
	"github.com/m04kA/ReDe-ReservationService/internal/service/admin/models"
)

const msgInvalidFilter = "Filtro incorrecto: espacio desconocido o fechas fuera de formato YYYY-MM-DD."

type Handler struct {
	service AdminService
	logger  Logger
}

func NewHandler(service AdminService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle GET /api/v1/admin/reservations
// Query params: facility, from, to (YYYY-MM-DD), search (DNI или email)
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()
	req := &models.ListReservationsRequest{
		Facility: query.Get("facility"),
		From:     query.Get("from"),
		To:       query.Get("to"),
		Search:   query.Get("search"),
	}

	list, err := h.service.ListReservations(r.Context(), req)
	if err != nil {
		if errors.Is(err, admin.ErrInvalidInput) {
			h.logger.Warn("GET /admin/reservations - Invalid filter: %v", err)
			handlers.RespondBadRequest(w, msgInvalidFilter)
			return
		}
		h.logger.Error("GET /admin/reservations - Failed to list reservations: %v", err)
		handlers.RespondInternalError(w)
		return
	}

	handlers.RespondJSON(w, http.StatusOK, list)
}
