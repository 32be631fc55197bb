package events

import "errors"

var (
	// ErrConnect возвращается, если не удалось подключиться к брокеру
	ErrConnect = errors.New("events publisher: failed to connect to broker")

	// ErrPublish возвращается, если сообщение не удалось отправить
	ErrPublish = errors.New("events publisher: publish failed")

	// ErrClosed возвращается при публикации после Close
	ErrClosed = errors.New("events publisher: closed")
)
