package admin_set_deposit

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/m04kA/ReDe-ReservationService/internal/api/handlers"
	"github.com/m04kA/ReDe-ReservationService/internal/service/admin"
	"github.com/m04kA/ReDe-ReservationService/internal/service/admin/models"
)

const (
	msgInvalidUserID      = "ID de usuario incorrecto."
	msgInvalidRequestBody = "Cuerpo de la solicitud incorrecto."
	msgInvalidAmount      = "La fianza debe ser un número entero no negativo."
	msgUserNotFound       = "Usuario no encontrado."
)

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

// Handle PUT /api/v1/admin/users/{userId}/deposit
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	userID, err := strconv.ParseInt(mux.Vars(r)["userId"], 10, 64)
	if err != nil || userID <= 0 {
		handlers.RespondBadRequest(w, msgInvalidUserID)
		return
	}

	var req models.SetDepositRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("PUT /admin/users/{id}/deposit - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	deposit, err := h.service.SetDeposit(r.Context(), userID, &req)
	if err != nil {
		switch {
		case errors.Is(err, admin.ErrInvalidInput):
			handlers.RespondBadRequest(w, msgInvalidAmount)

		case errors.Is(err, admin.ErrUserNotFound):
			h.logger.Warn("PUT /admin/users/{id}/deposit - User not found: user_id=%d", userID)
			handlers.RespondNotFound(w, msgUserNotFound)

		default:
			h.logger.Error("PUT /admin/users/{id}/deposit - Failed to set deposit: user_id=%d, error=%v", userID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("PUT /admin/users/{id}/deposit - Deposit updated: user_id=%d, amount=%d", userID, deposit.Amount)
	handlers.RespondJSON(w, http.StatusOK, deposit)
}
