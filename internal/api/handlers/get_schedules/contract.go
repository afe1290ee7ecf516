package get_schedules

import (
	"context"

	"github.com/m04kA/SMC-FieldBookingService/internal/service/schedules/models"
)

type ScheduleService interface {
	GetSchedules(ctx context.Context, tenantID, fieldID int64) (*models.FieldSchedulesResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
