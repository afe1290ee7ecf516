package remove_schedule

import "context"

type ScheduleService interface {
	RemoveSchedule(ctx context.Context, tenantID, fieldID int64, weekday string) error
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
