package middleware

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"github.com/m04kA/ReDe-ReservationService/internal/api/handlers"
	"github.com/m04kA/ReDe-ReservationService/internal/domain"
	userRepo "github.com/m04kA/ReDe-ReservationService/internal/infra/storage/user"
	"github.com/m04kA/ReDe-ReservationService/pkg/token"
)

const (
	msgMissingToken = "se requiere autenticación"
	msgInvalidToken = "token inválido"
	msgExpiredToken = "el token ha expirado"
	msgRevokedToken = "la sesión ha finalizado"
	msgStaffOnly    = "acceso solo para administradores"
)

type claimsKey struct{}

// TokenParser проверяет access токен
type TokenParser interface {
	Parse(raw string) (*token.Claims, error)
}

// RevocationChecker проверяет, отозван ли токен
type RevocationChecker interface {
	IsRevoked(ctx context.Context, tokenID string) (bool, error)
}

// UserLoader загружает пользователя для проверки прав администратора
type UserLoader interface {
	GetByID(ctx context.Context, id int64) (*domain.User, error)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

// Auth проверяет заголовок Authorization: Bearer <token> и кладет claims в контекст
func Auth(tokens TokenParser, sessions RevocationChecker, log Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			raw, ok := bearerToken(r)
			if !ok {
				handlers.RespondUnauthorized(w, msgMissingToken)
				return
			}

			claims, err := tokens.Parse(raw)
			if err != nil {
				log.Warn("Auth: %s %s - rejected token: %v", r.Method, r.URL.Path, err)
				if errors.Is(err, token.ErrExpiredToken) {
					handlers.RespondUnauthorized(w, msgExpiredToken)
					return
				}
				handlers.RespondUnauthorized(w, msgInvalidToken)
				return
			}

			revoked, err := sessions.IsRevoked(r.Context(), claims.ID)
			if err != nil {
				log.Error("Auth: failed to check token revocation: %v", err)
				handlers.RespondInternalError(w)
				return
			}
			if revoked {
				handlers.RespondUnauthorized(w, msgRevokedToken)
				return
			}

			next.ServeHTTP(w, r.WithContext(WithClaims(r.Context(), claims)))
		})
	}
}

// RequireStaff пропускает только активных администраторов; ставится после Auth
// Флаг staff из токена только отсекает обычных пользователей, права перечитываются из БД
func RequireStaff(users UserLoader, log Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			claims, ok := GetClaims(r.Context())
			if !ok {
				handlers.RespondUnauthorized(w, msgMissingToken)
				return
			}
			if !claims.Staff {
				handlers.RespondForbidden(w, msgStaffOnly)
				return
			}

			userID, err := claims.UserID()
			if err != nil {
				handlers.RespondUnauthorized(w, msgInvalidToken)
				return
			}

			user, err := users.GetByID(r.Context(), userID)
			if err != nil {
				if errors.Is(err, userRepo.ErrUserNotFound) {
					log.Warn("RequireStaff: %s %s - user id=%d no longer exists", r.Method, r.URL.Path, userID)
					handlers.RespondUnauthorized(w, msgInvalidToken)
					return
				}
				log.Error("RequireStaff: failed to load user id=%d: %v", userID, err)
				handlers.RespondInternalError(w)
				return
			}
			if !user.IsStaff || !user.IsActive {
				log.Warn("RequireStaff: %s %s - user id=%d lost access (staff=%t, active=%t)",
					r.Method, r.URL.Path, userID, user.IsStaff, user.IsActive)
				handlers.RespondForbidden(w, msgStaffOnly)
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}

// WithClaims кладет claims в контекст
func WithClaims(ctx context.Context, claims *token.Claims) context.Context {
	return context.WithValue(ctx, claimsKey{}, claims)
}

// GetClaims возвращает claims текущего токена
func GetClaims(ctx context.Context) (*token.Claims, bool) {
	claims, ok := ctx.Value(claimsKey{}).(*token.Claims)
	return claims, ok && claims != nil
}

// GetUserID возвращает ID пользователя из токена
func GetUserID(ctx context.Context) (int64, bool) {
	claims, ok := GetClaims(ctx)
	if !ok {
		return 0, false
	}
	id, err := claims.UserID()
	if err != nil {
		return 0, false
	}
	return id, true
}

func bearerToken(r *http.Request) (string, bool) {
	header := r.Header.Get("Authorization")
	scheme, raw, ok := strings.Cut(header, " ")
	if !ok || !strings.EqualFold(scheme, "Bearer") {
		return "", false
	}
	raw = strings.TrimSpace(raw)
	return raw, raw != ""
}
