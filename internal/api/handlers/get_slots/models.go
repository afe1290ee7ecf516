package get_slots

import (
	"time"

	"github.com/m04kA/SMC-FieldBookingService/internal/domain"
	computeSlots "github.com/m04kA/SMC-FieldBookingService/internal/usecase/compute_slots"
)

// ToUseCaseRequest собирает запрос из query параметров. Пустой to означает один день.
func ToUseCaseRequest(tenantID, fieldID int64, fromStr, toStr string) (*computeSlots.Request, error) {
	from, err := time.Parse(domain.DateFormat, fromStr)
	if err != nil {
		return nil, err
	}

	to := from
	if toStr != "" {
		to, err = time.Parse(domain.DateFormat, toStr)
		if err != nil {
			return nil, err
		}
	}

	return &computeSlots.Request{
		TenantID: tenantID,
		FieldID:  fieldID,
		From:     from,
		To:       to,
	}, nil
}
