package compute_slots

import (
	"fmt"
	"time"
)

// validateRequest проверяет запрос и возвращает даты from/to без времени
func validateRequest(req *Request, maxRangeDays int) (time.Time, time.Time, error) {
	if req.TenantID <= 0 || req.FieldID <= 0 {
		return time.Time{}, time.Time{}, fmt.Errorf("%w: tenantID and fieldID must be positive", ErrInvalidInput)
	}
	if req.From.IsZero() || req.To.IsZero() {
		return time.Time{}, time.Time{}, fmt.Errorf("%w: from and to are required", ErrInvalidDateRange)
	}

	from := dateOnly(req.From)
	to := dateOnly(req.To)
	if to.Before(from) {
		return time.Time{}, time.Time{}, fmt.Errorf("%w: from is after to", ErrInvalidDateRange)
	}

	days := int(to.Sub(from).Hours()/24) + 1
	if maxRangeDays > 0 && days > maxRangeDays {
		return time.Time{}, time.Time{}, fmt.Errorf("%w: %d days requested, max %d", ErrInvalidDateRange, days, maxRangeDays)
	}

	return from, to, nil
}

// dateOnly календарная дата в UTC, чтобы шаг в сутки был ровно 24 часа
func dateOnly(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}
