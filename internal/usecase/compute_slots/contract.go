package compute_slots

import (
	"context"
	"time"

	"github.com/m04kA/SMC-FieldBookingService/internal/domain"
)

// FieldRepository интерфейс репозитория площадок
type FieldRepository interface {
	GetByID(ctx context.Context, tenantID, fieldID int64) (*domain.Field, error)
}

// ScheduleRepository интерфейс репозитория расписаний
type ScheduleRepository interface {
	GetByFieldAndWeekday(ctx context.Context, fieldID int64, weekday domain.Weekday) (*domain.WeeklySchedule, error)
}

// ReservationRepository журнал броней
type ReservationRepository interface {
	FindOverlapping(ctx context.Context, fieldID int64, start, end time.Time, exclude []domain.ReservationStatus) ([]*domain.Reservation, error)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
