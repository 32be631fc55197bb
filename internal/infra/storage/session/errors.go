package session

import "errors"

var (
	// ErrConnect возвращается, если Redis недоступен при старте
	ErrConnect = errors.New("session.store: failed to connect to redis")

	// ErrStore возвращается при ошибке команды Redis
	ErrStore = errors.New("session.store: redis command failed")
)
