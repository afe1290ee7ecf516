package create_reservation

import (
	"time"

	"github.com/m04kA/SMC-FieldBookingService/internal/domain"
)

// Request модель запроса на бронирование интервала
type Request struct {
	TenantID int64
	ActorID  int64 // кто создаёт бронь (для логов)
	FieldID  int64
	StartAt  time.Time
	EndAt    time.Time
	Holder   domain.Holder
	Amount   float64
}

// Response созданная бронь в статусе PENDING
type Response struct {
	ID        int64
	FieldID   int64
	StartAt   time.Time
	EndAt     time.Time
	Status    string
	Amount    float64
	Holder    domain.Holder
	CreatedAt time.Time
	UpdatedAt time.Time
}
