package list_reservations

import (
	"strconv"
	"time"

	"github.com/m04kA/SMC-FieldBookingService/internal/service/reservations/models"
	"github.com/m04kA/SMC-FieldBookingService/pkg/ptr"
)

// ToServiceRequest собирает запрос к сервису из query параметров.
// from/to в RFC3339, все параметры опциональны.
func ToServiceRequest(tenantID, fieldID int64, fromStr, toStr, statusStr, includeInactiveStr string) (*models.ListReservationsRequest, error) {
	req := &models.ListReservationsRequest{
		TenantID: tenantID,
		FieldID:  fieldID,
	}

	if fromStr != "" {
		from, err := time.Parse(time.RFC3339, fromStr)
		if err != nil {
			return nil, err
		}
		req.From = &from
	}
	if toStr != "" {
		to, err := time.Parse(time.RFC3339, toStr)
		if err != nil {
			return nil, err
		}
		req.To = &to
	}
	if statusStr != "" {
		req.Status = ptr.Ptr(statusStr)
	}
	if includeInactiveStr != "" {
		includeInactive, err := strconv.ParseBool(includeInactiveStr)
		if err != nil {
			return nil, err
		}
		req.IncludeInactive = includeInactive
	}

	return req, nil
}
