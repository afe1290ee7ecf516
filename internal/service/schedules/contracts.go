package schedules

import (
	"context"

	"github.com/m04kA/SMC-FieldBookingService/internal/domain"
)

// FieldRepository интерфейс репозитория площадок
type FieldRepository interface {
	GetByID(ctx context.Context, tenantID, fieldID int64) (*domain.Field, error)
}

// ScheduleRepository интерфейс репозитория расписаний
type ScheduleRepository interface {
	Upsert(ctx context.Context, s *domain.WeeklySchedule) (*domain.WeeklySchedule, error)
	Delete(ctx context.Context, fieldID int64, weekday domain.Weekday) error
	ListByField(ctx context.Context, fieldID int64) ([]*domain.WeeklySchedule, error)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
