package schedule

import "errors"

var (
	// ErrScheduleNotFound возвращается, когда на день недели нет окна работы
	ErrScheduleNotFound = errors.New("schedule.repository: schedule not found")

	ErrBuildQuery = errors.New("schedule.repository: failed to build query")
	ErrExecQuery  = errors.New("schedule.repository: failed to execute query")
	ErrScanRow    = errors.New("schedule.repository: failed to scan row")
)
