package register

import (
	"errors"
	"net/http"

	"github.com/m04kA/ReDe-ReservationService/internal/api/handlers"
	"github.com/m04kA/ReDe-ReservationService/internal/service/auth"
	"github.com/m04kA/ReDe-ReservationService/internal/service/auth/models"
)

const (
	msgInvalidRequestBody = "Cuerpo de la solicitud incorrecto."
	msgInvalidDNI         = "El DNI debe tener 8 dígitos seguidos de una letra."
	msgPasswordTooShort   = "La contraseña debe tener al menos 8 caracteres."
	msgPasswordMismatch   = "Las contraseñas no coinciden."
	msgDNIAlreadyExists   = "Este DNI ya está registrado."
	msgInvalidData        = "Datos de registro incorrectos."
)

type Handler struct {
	service AuthService
	logger  Logger
}

func NewHandler(service AuthService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle POST /api/v1/auth/register
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	var req models.RegisterRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /auth/register - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	user, err := h.service.Register(r.Context(), &req)
	if err != nil {
		switch {
		case errors.Is(err, auth.ErrInvalidDNI):
			handlers.RespondBadRequest(w, msgInvalidDNI)

		case errors.Is(err, auth.ErrPasswordTooShort):
			handlers.RespondBadRequest(w, msgPasswordTooShort)

		case errors.Is(err, auth.ErrPasswordMismatch):
			handlers.RespondBadRequest(w, msgPasswordMismatch)

		case errors.Is(err, auth.ErrDNIAlreadyExists):
			h.logger.Warn("POST /auth/register - DNI already registered")
			handlers.RespondConflict(w, msgDNIAlreadyExists)

		case errors.Is(err, auth.ErrInvalidInput):
			h.logger.Warn("POST /auth/register - Invalid data: %v", err)
			handlers.RespondBadRequest(w, msgInvalidData)

		default:
			h.logger.Error("POST /auth/register - Failed to register user: %v", err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /auth/register - User registered: user_id=%d", user.ID)
	handlers.RespondJSON(w, http.StatusCreated, user)
}
