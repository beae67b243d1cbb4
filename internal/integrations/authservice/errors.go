package authservice

import "errors"

var (
	// ErrInvalidToken возвращается, когда токен отсутствует, истек или отозван
	ErrInvalidToken = errors.New("authservice client: invalid access token")

	// ErrInternal возвращается при внутренних ошибках клиента
	ErrInternal = errors.New("authservice client: internal error")

	// ErrInvalidResponse возвращается при некорректном ответе от сервиса
	ErrInvalidResponse = errors.New("authservice client: invalid response")
)
