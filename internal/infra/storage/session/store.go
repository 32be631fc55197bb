package session

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

const keyPrefix = "rede:revoked:"

// Store хранит отозванные токены (jti) до истечения их срока действия
type Store struct {
	client *redis.Client
	now    func() time.Time
}

// NewStore создает хранилище поверх клиента Redis
func NewStore(client *redis.Client) *Store {
	return &Store{client: client, now: time.Now}
}

// Connect создает клиент Redis и проверяет соединение
func Connect(ctx context.Context, addr, password string, db int) (*redis.Client, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: password,
		DB:       db,
	})

	pingCtx, cancel := context.WithTimeout(ctx, 2*time.Second)
	defer cancel()

	if err := client.Ping(pingCtx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("%w: %s: %v", ErrConnect, addr, err)
	}

	return client, nil
}

// Revoke отзывает токен до момента expiresAt
// Истекший токен не сохраняется, он и так не пройдет проверку
func (s *Store) Revoke(ctx context.Context, tokenID string, expiresAt time.Time) error {
	ttl := expiresAt.Sub(s.now())
	if ttl <= 0 {
		return nil
	}

	if err := s.client.Set(ctx, keyPrefix+tokenID, 1, ttl).Err(); err != nil {
		return fmt.Errorf("%w: Revoke: %v", ErrStore, err)
	}
	return nil
}

// IsRevoked проверяет, был ли токен отозван
func (s *Store) IsRevoked(ctx context.Context, tokenID string) (bool, error) {
	n, err := s.client.Exists(ctx, keyPrefix+tokenID).Result()
	if err != nil {
		return false, fmt.Errorf("%w: IsRevoked: %v", ErrStore, err)
	}
	return n > 0, nil
}

// NopStore используется, когда Redis отключен: выход из системы не отзывает токен на сервере
type NopStore struct{}

// Revoke ничего не делает
func (NopStore) Revoke(context.Context, string, time.Time) error { return nil }

// IsRevoked всегда возвращает false
func (NopStore) IsRevoked(context.Context, string) (bool, error) { return false, nil }
