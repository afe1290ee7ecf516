package create_reservation

import "errors"

var (
	// ErrInvalidTimeRange возвращается, когда конец брони не позже начала
	ErrInvalidTimeRange = errors.New("create_reservation: end must be after start")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("create_reservation: invalid input data")

	// ErrFieldNotFound возвращается, когда площадка не найдена у тенанта
	ErrFieldNotFound = errors.New("create_reservation: field not found")

	// ErrInvalidField возвращается, когда площадка вручную выключена
	ErrInvalidField = errors.New("create_reservation: field is not available")

	// ErrDurationExceeded возвращается, когда бронь длиннее настроенного максимума
	ErrDurationExceeded = errors.New("create_reservation: reservation is too long")

	// ErrOutsideSchedule возвращается, когда интервал не лежит целиком в окне работы
	ErrOutsideSchedule = errors.New("create_reservation: interval is outside the schedule window")

	// ErrOverlap возвращается, когда интервал пересекается с активной бронью
	ErrOverlap = errors.New("create_reservation: interval overlaps an active reservation")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("create_reservation: internal error")
)
