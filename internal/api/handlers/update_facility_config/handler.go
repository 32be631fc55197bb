package update_facility_config

import (
	"errors"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/m04kA/ReDe-ReservationService/internal/api/handlers"
	"github.com/m04kA/ReDe-ReservationService/internal/service/config"
	"github.com/m04kA/ReDe-ReservationService/internal/service/config/models"
)

const (
	msgInvalidRequestBody = "Cuerpo de la solicitud incorrecto."
	msgNotFound           = "Espacio no encontrado."
	msgInvalidData        = "Horario incorrecto: las horas deben ser en punto y la apertura anterior al cierre."
)

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

// Handle PUT /api/v1/admin/facilities/{facility}/config
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	facility := mux.Vars(r)["facility"]

	var req models.UpdateConfigRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("PUT /admin/facilities/{facility}/config - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	cfg, err := h.service.Update(r.Context(), facility, &req)
	if err != nil {
		switch {
		case errors.Is(err, config.ErrFacilityNotFound):
			handlers.RespondNotFound(w, msgNotFound)

		case errors.Is(err, config.ErrInvalidInput):
			h.logger.Warn("PUT /admin/facilities/{facility}/config - Invalid data: facility=%s, error=%v", facility, err)
			handlers.RespondBadRequest(w, msgInvalidData)

		default:
			h.logger.Error("PUT /admin/facilities/{facility}/config - Failed to update config: facility=%s, error=%v", facility, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("PUT /admin/facilities/{facility}/config - Config updated: facility=%s, open=%s, close=%s, is_open=%t",
		cfg.Facility, cfg.OpenTime, cfg.CloseTime, cfg.IsOpen)
	handlers.RespondJSON(w, http.StatusOK, cfg)
}
