package get_slots

import (
	"context"

	computeSlots "github.com/m04kA/SMC-FieldBookingService/internal/usecase/compute_slots"
)

type ComputeSlotsUseCase interface {
	Execute(ctx context.Context, req *computeSlots.Request) (*computeSlots.Response, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
