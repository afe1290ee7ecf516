package reservations

import "errors"

var (
	// ErrReservationNotFound возвращается, когда бронь не найдена у тенанта
	ErrReservationNotFound = errors.New("reservation not found")

	// ErrFieldNotFound возвращается, когда площадка не найдена у тенанта
	ErrFieldNotFound = errors.New("field not found")

	// ErrIllegalTransition возвращается при недопустимой смене статуса. Бронь не меняется.
	ErrIllegalTransition = errors.New("illegal status transition")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("invalid input data")

	// ErrInternal возвращается при внутренних ошибках сервиса
	ErrInternal = errors.New("service: internal error")
)
