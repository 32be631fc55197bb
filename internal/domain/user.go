package domain

import (
	"errors"
	"regexp"
	"strings"
	"time"
)

// ErrInvalidDNI DNI не соответствует формату 8 цифр + буква
var ErrInvalidDNI = errors.New("domain: invalid DNI")

var dniPattern = regexp.MustCompile(`^[0-9]{8}[A-Z]$`)

// User пользователь; DNI используется как логин
type User struct {
	ID           int64
	DNI          string
	PasswordHash string
	Email        string
	FirstName    string
	LastName     string
	IsStaff      bool
	IsActive     bool
	DateJoined   time.Time
	LastLogin    *time.Time
}

// UserWithStats пользователь с количеством бронирований (для админки)
type UserWithStats struct {
	User
	ReservationsCount int
	Deposit           int
}

// NormalizeDNI приводит DNI к каноническому виду и проверяет формат
// Контрольная буква не проверяется
func NormalizeDNI(dni string) (string, error) {
	normalized := strings.ToUpper(strings.TrimSpace(dni))
	if !dniPattern.MatchString(normalized) {
		return "", ErrInvalidDNI
	}
	return normalized, nil
}
