package field

import "errors"

var (
	// ErrFieldNotFound возвращается, когда площадка не найдена у тенанта
	ErrFieldNotFound = errors.New("field.repository: field not found")

	ErrBuildQuery = errors.New("field.repository: failed to build query")
	ErrExecQuery  = errors.New("field.repository: failed to execute query")
	ErrScanRow    = errors.New("field.repository: failed to scan row")
)
