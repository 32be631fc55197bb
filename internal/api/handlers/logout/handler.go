package logout

import (
	"net/http"

	"github.com/m04kA/ReDe-ReservationService/internal/api/handlers"
	"github.com/m04kA/ReDe-ReservationService/internal/api/middleware"
	"github.com/m04kA/ReDe-ReservationService/internal/service/auth/models"
)

const msgMissingToken = "Se requiere autenticación."

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

// Handle POST /api/v1/auth/logout
// Отзывает текущий токен до истечения его срока
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	claims, ok := middleware.GetClaims(r.Context())
	if !ok || claims.ExpiresAt == nil {
		h.logger.Warn("POST /auth/logout - Missing token claims")
		handlers.RespondUnauthorized(w, msgMissingToken)
		return
	}

	err := h.service.Logout(r.Context(), &models.LogoutRequest{
		TokenID:   claims.ID,
		ExpiresAt: claims.ExpiresAt.Time,
	})
	if err != nil {
		h.logger.Error("POST /auth/logout - Failed to revoke token: %v", err)
		handlers.RespondInternalError(w)
		return
	}

	h.logger.Info("POST /auth/logout - Token revoked: subject=%s", claims.Subject)
	handlers.RespondJSON(w, http.StatusOK, LogoutResponse{Success: true})
}
