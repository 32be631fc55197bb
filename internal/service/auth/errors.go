package auth

import "errors"

var (
	// ErrInvalidDNI возвращается, если DNI не соответствует формату
	ErrInvalidDNI = errors.New("invalid DNI")

	// ErrPasswordTooShort возвращается для пустого или короткого пароля
	ErrPasswordTooShort = errors.New("password too short")

	// ErrPasswordMismatch возвращается, если пароль и подтверждение не совпадают
	ErrPasswordMismatch = errors.New("passwords do not match")

	// ErrDNIAlreadyExists возвращается при повторной регистрации DNI
	ErrDNIAlreadyExists = errors.New("dni already registered")

	// ErrInvalidCredentials возвращается при неверном DNI, пароле или неактивном пользователе
	ErrInvalidCredentials = errors.New("invalid credentials")

	// ErrUserNotFound возвращается, когда пользователь не найден
	ErrUserNotFound = errors.New("user not found")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("invalid input data")

	// ErrInternal возвращается при внутренних ошибках сервиса
	ErrInternal = errors.New("service: internal error")
)
