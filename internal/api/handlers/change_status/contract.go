package change_status

import (
	"context"

	"github.com/m04kA/SMC-FieldBookingService/internal/service/reservations/models"
)

type ReservationService interface {
	ChangeStatus(ctx context.Context, req *models.ChangeStatusRequest) (*models.ReservationResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
