package password

import (
	"errors"

	"golang.org/x/crypto/bcrypt"
)

var (
	// ErrEmptyPassword пустой пароль
	ErrEmptyPassword = errors.New("password: empty password")

	// ErrMismatch пароль не совпадает с хешем
	ErrMismatch = errors.New("password: mismatch")
)

// Hasher хеширует пароли через bcrypt
type Hasher struct {
	cost int
}

// NewHasher создает hasher с указанной стоимостью (0 = bcrypt.DefaultCost)
func NewHasher(cost int) *Hasher {
	if cost == 0 {
		cost = bcrypt.DefaultCost
	}
	return &Hasher{cost: cost}
}

// Hash возвращает bcrypt хеш пароля
func (h *Hasher) Hash(plain string) (string, error) {
	if plain == "" {
		return "", ErrEmptyPassword
	}
	b, err := bcrypt.GenerateFromPassword([]byte(plain), h.cost)
	if err != nil {
		return "", err
	}
	return string(b), nil
}

// Compare сравнивает хеш и пароль
func (h *Hasher) Compare(hash, plain string) error {
	if hash == "" || plain == "" {
		return ErrMismatch
	}
	err := bcrypt.CompareHashAndPassword([]byte(hash), []byte(plain))
	if errors.Is(err, bcrypt.ErrMismatchedHashAndPassword) {
		return ErrMismatch
	}
	return err
}
