package schedules

import "errors"

var (
	// ErrFieldNotFound возвращается, когда площадка не найдена у тенанта
	ErrFieldNotFound = errors.New("field not found")

	// ErrInvalidRange возвращается, когда время открытия не раньше времени закрытия
	ErrInvalidRange = errors.New("open time must be before close time")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("invalid input data")

	// ErrInternal возвращается при внутренних ошибках сервиса
	ErrInternal = errors.New("service: internal error")
)
