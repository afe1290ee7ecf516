package reservation

import "errors"

var (
	// ErrReservationNotFound возвращается, когда бронь не найдена у тенанта
	ErrReservationNotFound = errors.New("reservation.repository: reservation not found")

	// ErrConflict возвращается, когда вставка нарушает ограничение на пересечение интервалов
	ErrConflict = errors.New("reservation.repository: reservation conflicts with an active one")

	// ErrStatusChanged возвращается, когда статус брони изменился между чтением и обновлением
	ErrStatusChanged = errors.New("reservation.repository: reservation status changed concurrently")

	// ErrBuildQuery возвращается при ошибке построения SQL запроса
	ErrBuildQuery = errors.New("reservation.repository: failed to build query")

	// ErrExecQuery возвращается при ошибке выполнения SQL запроса
	ErrExecQuery = errors.New("reservation.repository: failed to execute query")

	// ErrScanRow возвращается при ошибке сканирования результата запроса
	ErrScanRow = errors.New("reservation.repository: failed to scan row")
)
