package create_reservation

import (
	"context"
	"time"

	"github.com/m04kA/SMC-FieldBookingService/internal/domain"
)

// FieldRepository интерфейс репозитория площадок
type FieldRepository interface {
	GetByID(ctx context.Context, tenantID, fieldID int64) (*domain.Field, error)
	Lock(ctx context.Context, tenantID, fieldID int64) error
}

// ScheduleRepository интерфейс репозитория расписаний
type ScheduleRepository interface {
	GetByFieldAndWeekday(ctx context.Context, fieldID int64, weekday domain.Weekday) (*domain.WeeklySchedule, error)
}

// ReservationRepository журнал броней
type ReservationRepository interface {
	FindOverlapping(ctx context.Context, fieldID int64, start, end time.Time, exclude []domain.ReservationStatus) ([]*domain.Reservation, error)
	Insert(ctx context.Context, res *domain.Reservation) (*domain.Reservation, error)
}

// TransactionManager интерфейс для управления транзакциями
type TransactionManager interface {
	Do(ctx context.Context, fn func(ctx context.Context) error) error
}

// MetricsRecorder исходы попыток бронирования
type MetricsRecorder interface {
	RecordReservationAttempt(outcome string)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
