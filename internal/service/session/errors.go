package session

import "errors"

var (
	// ErrNotAuthenticated возвращается, когда пользователь не вошел в систему
	ErrNotAuthenticated = errors.New("session: not authenticated")

	// ErrSessionExpired возвращается, когда срок действия токена истек
	ErrSessionExpired = errors.New("session: token expired")

	// ErrInvalidCredentials возвращается при пустом логине или пароле
	ErrInvalidCredentials = errors.New("session: username and password are required")

	// ErrInternal возвращается при ошибке локального хранилища
	ErrInternal = errors.New("session: internal error")
)
