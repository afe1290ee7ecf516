package accessservice

import "errors"

var (
	// ErrInternal возвращается при внутренних ошибках клиента
	ErrInternal = errors.New("accessservice client: internal error")

	// ErrInvalidResponse возвращается при некорректном ответе от сервиса
	ErrInvalidResponse = errors.New("accessservice client: invalid response")

	// ErrUnavailable сервис прав недоступен, решение принять нельзя
	ErrUnavailable = errors.New("accessservice unavailable")
)
