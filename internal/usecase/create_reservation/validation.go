package create_reservation

import (
	"fmt"
	"time"

	"github.com/m04kA/SMC-FieldBookingService/internal/domain"
)

// validateRequest валидирует входные данные запроса
func validateRequest(req *Request) error {
	if req.TenantID <= 0 || req.FieldID <= 0 {
		return fmt.Errorf("%w: tenantID and fieldID must be positive", ErrInvalidInput)
	}
	if req.StartAt.IsZero() || req.EndAt.IsZero() {
		return fmt.Errorf("%w: startAt and endAt are required", ErrInvalidInput)
	}
	if !req.EndAt.After(req.StartAt) {
		return ErrInvalidTimeRange
	}
	if err := req.Holder.Validate(); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}
	if req.Amount < 0 {
		return fmt.Errorf("%w: amount must not be negative", ErrInvalidInput)
	}
	return nil
}

// validateDuration ограничение длины брони, 0 отключает проверку
func validateDuration(start, end time.Time, maxMinutes int) error {
	if maxMinutes <= 0 {
		return nil
	}
	if end.Sub(start) > time.Duration(maxMinutes)*time.Minute {
		return fmt.Errorf("%w: max %d minutes", ErrDurationExceeded, maxMinutes)
	}
	return nil
}

// localSpan переводит [start, end) в минуты от полуночи локальной даты начала.
// Конец ровно в полночь следующего дня даёт 1440. Интервалы через полночь не допускаются.
func localSpan(start, end time.Time, loc *time.Location) (date time.Time, startMin, endMin int, err error) {
	date = domain.LocalDate(start, loc)
	startMin = domain.MinutesSinceMidnight(start, loc)

	endDate := domain.LocalDate(end, loc)
	endMin = domain.MinutesSinceMidnight(end, loc)
	if hasSubMinute(end.In(loc)) {
		endMin++
	}

	switch {
	case endDate.Equal(date):
	case endDate.Equal(date.AddDate(0, 0, 1)) && endMin == 0:
		endMin = domain.GridCeilingMinutes
	default:
		return date, 0, 0, fmt.Errorf("%w: interval spans more than one day", ErrOutsideSchedule)
	}

	return date, startMin, endMin, nil
}

// gridSpan границы получасовых слотов, которые задевает [startMin, endMin)
func gridSpan(startMin, endMin int) (int, int) {
	step := domain.SlotDurationMinutes
	first := startMin / step * step
	last := (endMin + step - 1) / step * step
	return first, last
}

// validateWithinSchedule каждый задетый слот сетки лежит внутри окна работы и внутри 07:00-24:00
func validateWithinSchedule(schedule *domain.WeeklySchedule, startMin, endMin int) error {
	first, last := gridSpan(startMin, endMin)
	if first < domain.GridFloorMinutes || last > domain.GridCeilingMinutes {
		return fmt.Errorf("%w: outside of %s-%s grid", ErrOutsideSchedule, domain.GridFloor, domain.GridCeiling)
	}
	if !schedule.Contains(first, last) {
		return fmt.Errorf("%w: window is %s-%s", ErrOutsideSchedule, schedule.OpenTime, schedule.CloseTime)
	}
	return nil
}

func hasSubMinute(t time.Time) bool {
	return t.Second() != 0 || t.Nanosecond() != 0
}
