package get_facility_config

import (
	"errors"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/m04kA/ReDe-ReservationService/internal/api/handlers"
	"github.com/m04kA/ReDe-ReservationService/internal/service/config"
)

const msgNotFound = "Espacio no encontrado."

type Handler struct {
	service ConfigService
	logger  Logger
}

func NewHandler(service ConfigService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle GET /api/v1/admin/facilities/{facility}/config
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	facility := mux.Vars(r)["facility"]

	cfg, err := h.service.Get(r.Context(), facility)
	if err != nil {
		if errors.Is(err, config.ErrFacilityNotFound) {
			h.logger.Warn("GET /admin/facilities/{facility}/config - Unknown facility: %q", facility)
			handlers.RespondNotFound(w, msgNotFound)
			return
		}
		h.logger.Error("GET /admin/facilities/{facility}/config - Failed to get config: facility=%s, error=%v", facility, err)
		handlers.RespondInternalError(w)
		return
	}

	handlers.RespondJSON(w, http.StatusOK, cfg)
}
