package models

import (
	"time"

	"github.com/m04kA/ReDe-ReservationService/internal/domain"
)

// Request модели

// ListReservationsRequest фильтр админского списка бронирований
// Все поля опциональны
type ListReservationsRequest struct {
	Facility string // Код или имя сооружения
	From     string // "2026-05-01", включительно
	To       string // "2026-05-31", включительно
	Search   string // Вхождение в DNI или email
}

// SetDepositRequest запрос на установку фиансы
type SetDepositRequest struct {
	Amount *int `json:"amount"`
}

// Response модели

// InfoResponse сводная информация для панели администратора
type InfoResponse struct {
	Users                 int            `json:"users"`
	Reservations          int            `json:"reservations"`
	ActiveReservations    int            `json:"activeReservations"`
	ByFacility            map[string]int `json:"byFacility"`
	DepositEnabled        bool           `json:"depositEnabled"`
	DepositThreshold      int            `json:"depositThreshold,omitempty"`
	MaxActiveReservations int            `json:"maxActiveReservations"`
}

// UserResponse пользователь со статистикой
type UserResponse struct {
	ID                int64      `json:"id"`
	DNI               string     `json:"dni"`
	Email             string     `json:"email"`
	FirstName         string     `json:"firstName"`
	LastName          string     `json:"lastName"`
	IsStaff           bool       `json:"isStaff"`
	IsActive          bool       `json:"isActive"`
	DateJoined        time.Time  `json:"dateJoined"`
	LastLogin         *time.Time `json:"lastLogin,omitempty"`
	ReservationsCount int        `json:"reservationsCount"`
	Deposit           int        `json:"deposit"`
}

// UserListResponse ответ со списком пользователей
type UserListResponse struct {
	Users []UserResponse `json:"users"`
}

// DepositResponse текущая фианса пользователя
type DepositResponse struct {
	UserID    int64     `json:"userId"`
	Amount    int       `json:"amount"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// Методы конвертации

// FromDomainUserList конвертирует список пользователей в DTO
func FromDomainUserList(users []*domain.UserWithStats) *UserListResponse {
	resp := &UserListResponse{Users: make([]UserResponse, 0, len(users))}

	for _, u := range users {
		resp.Users = append(resp.Users, UserResponse{
			ID:                u.ID,
			DNI:               u.DNI,
			Email:             u.Email,
			FirstName:         u.FirstName,
			LastName:          u.LastName,
			IsStaff:           u.IsStaff,
			IsActive:          u.IsActive,
			DateJoined:        u.DateJoined,
			LastLogin:         u.LastLogin,
			ReservationsCount: u.ReservationsCount,
			Deposit:           u.Deposit,
		})
	}

	return resp
}

// FromDomainDeposit конвертирует фиансу в DTO
func FromDomainDeposit(d *domain.Deposit) *DepositResponse {
	if d == nil {
		return nil
	}
	return &DepositResponse{UserID: d.UserID, Amount: d.Amount, UpdatedAt: d.UpdatedAt}
}
