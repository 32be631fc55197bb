package auth

import (
	"context"
	"time"

	"github.com/m04kA/ReDe-ReservationService/internal/domain"
	"github.com/m04kA/ReDe-ReservationService/pkg/token"
)

// UserRepository интерфейс репозитория пользователей
type UserRepository interface {
	Create(ctx context.Context, user *domain.User) (*domain.User, error)
	GetByID(ctx context.Context, id int64) (*domain.User, error)
	GetByDNI(ctx context.Context, dni string) (*domain.User, error)
	UpdateLastLogin(ctx context.Context, id int64, at time.Time) error
}

// DepositRepository интерфейс репозитория фиансы
type DepositRepository interface {
	Get(ctx context.Context, userID int64) (*domain.Deposit, error)
}

// PasswordHasher интерфейс хеширования паролей
type PasswordHasher interface {
	Hash(plain string) (string, error)
	Compare(hash, plain string) error
}

// TokenIssuer интерфейс выпуска access токенов
type TokenIssuer interface {
	Issue(userID int64, dni string, staff bool) (*token.Issued, error)
}

// SessionStore интерфейс хранилища отозванных токенов
type SessionStore interface {
	Revoke(ctx context.Context, tokenID string, expiresAt time.Time) error
}

// Metrics интерфейс метрик входа
type Metrics interface {
	IncLogin(result string)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
