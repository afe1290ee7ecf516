package set_schedule

import (
	"context"

	"github.com/m04kA/SMC-FieldBookingService/internal/service/schedules/models"
)

type ScheduleService interface {
	SetSchedule(ctx context.Context, req *models.SetScheduleRequest) (*models.ScheduleResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
