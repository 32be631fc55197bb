package models

import (
	"time"

	"github.com/m04kA/ReDe-ReservationService/internal/domain"
)

// Request модели

// RegisterRequest запрос на регистрацию
type RegisterRequest struct {
	DNI             string `json:"dni"`
	Password        string `json:"password"`
	ConfirmPassword string `json:"confirmPassword"`
	Email           string `json:"email"`
	FirstName       string `json:"firstName"`
	LastName        string `json:"lastName"`
}

// LoginRequest запрос на вход
type LoginRequest struct {
	DNI      string `json:"dni"`
	Password string `json:"password"`
}

// LogoutRequest данные текущего токена
type LogoutRequest struct {
	TokenID   string
	ExpiresAt time.Time
}

// Response модели

// UserResponse профиль пользователя
type UserResponse struct {
	ID         int64      `json:"id"`
	DNI        string     `json:"dni"`
	Email      string     `json:"email"`
	FirstName  string     `json:"firstName"`
	LastName   string     `json:"lastName"`
	IsStaff    bool       `json:"isStaff"`
	DateJoined time.Time  `json:"dateJoined"`
	LastLogin  *time.Time `json:"lastLogin,omitempty"`
}

// LoginResponse ответ с access токеном
type LoginResponse struct {
	Token     string       `json:"token"`
	TokenType string       `json:"tokenType"`
	ExpiresAt time.Time    `json:"expiresAt"`
	User      UserResponse `json:"user"`
}

// MeResponse профиль с текущей фиансой
type MeResponse struct {
	User           UserResponse `json:"user"`
	Deposit        int          `json:"deposit"`
	DepositEnabled bool         `json:"depositEnabled"`
}

// Методы конвертации

// FromDomainUser конвертирует domain модель в DTO
func FromDomainUser(u *domain.User) *UserResponse {
	if u == nil {
		return nil
	}

	return &UserResponse{
		ID:         u.ID,
		DNI:        u.DNI,
		Email:      u.Email,
		FirstName:  u.FirstName,
		LastName:   u.LastName,
		IsStaff:    u.IsStaff,
		DateJoined: u.DateJoined,
		LastLogin:  u.LastLogin,
	}
}
