package compute_slots

import "errors"

var (
	// ErrFieldNotFound возвращается, когда площадка не найдена у тенанта
	ErrFieldNotFound = errors.New("compute_slots: field not found")

	// ErrInvalidDateRange возвращается, когда from > to или диапазон слишком длинный
	ErrInvalidDateRange = errors.New("compute_slots: invalid date range")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("compute_slots: invalid input data")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("compute_slots: internal error")
)
