package reservations

import (
	"context"
	"time"

	"github.com/m04kA/SMC-FieldBookingService/internal/domain"
)

// ReservationRepository интерфейс журнала броней
type ReservationRepository interface {
	GetByID(ctx context.Context, tenantID, id int64) (*domain.Reservation, error)
	ListByField(ctx context.Context, filter domain.ReservationsFilter) ([]*domain.Reservation, error)
	ListEndedBefore(ctx context.Context, status domain.ReservationStatus, before time.Time, limit int) ([]*domain.Reservation, error)
	UpdateStatus(ctx context.Context, tenantID, id int64, from, to domain.ReservationStatus, reason *string) (*domain.Reservation, error)
}

// FieldRepository интерфейс репозитория площадок
type FieldRepository interface {
	GetByID(ctx context.Context, tenantID, fieldID int64) (*domain.Field, error)
}

// MetricsRecorder счётчик применённых переходов
type MetricsRecorder interface {
	RecordStatusTransition(from, to string)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
