package storage

import (
	"context"
	"time"

	"github.com/m04kA/SMC-FieldBookingService/internal/domain"
)

// FieldRepository объединение того, что нужно сервисам и use case от площадок
type FieldRepository interface {
	GetByID(ctx context.Context, tenantID, fieldID int64) (*domain.Field, error)
	Lock(ctx context.Context, tenantID, fieldID int64) error
}

type ScheduleRepository interface {
	Upsert(ctx context.Context, s *domain.WeeklySchedule) (*domain.WeeklySchedule, error)
	Delete(ctx context.Context, fieldID int64, weekday domain.Weekday) error
	GetByFieldAndWeekday(ctx context.Context, fieldID int64, weekday domain.Weekday) (*domain.WeeklySchedule, error)
	ListByField(ctx context.Context, fieldID int64) ([]*domain.WeeklySchedule, error)
}

type ReservationRepository interface {
	Insert(ctx context.Context, res *domain.Reservation) (*domain.Reservation, error)
	GetByID(ctx context.Context, tenantID, id int64) (*domain.Reservation, error)
	FindOverlapping(ctx context.Context, fieldID int64, start, end time.Time, exclude []domain.ReservationStatus) ([]*domain.Reservation, error)
	ListByField(ctx context.Context, filter domain.ReservationsFilter) ([]*domain.Reservation, error)
	ListEndedBefore(ctx context.Context, status domain.ReservationStatus, before time.Time, limit int) ([]*domain.Reservation, error)
	UpdateStatus(ctx context.Context, tenantID, id int64, from, to domain.ReservationStatus, reason *string) (*domain.Reservation, error)
}

type TransactionManager interface {
	Do(ctx context.Context, fn func(ctx context.Context) error) error
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
