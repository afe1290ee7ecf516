package compute_slots

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/m04kA/SMC-FieldBookingService/internal/domain"
	scheduleRepo "github.com/m04kA/SMC-FieldBookingService/internal/infra/storage/schedule"
	"github.com/m04kA/SMC-FieldBookingService/pkg/types"
)

// daySlots сетка одной локальной даты площадки.
// Журнал броней запрашивается один раз на дату и только если окно работы непустое.
func (uc *UseCase) daySlots(ctx context.Context, field *domain.Field, date time.Time) ([]domain.Slot, error) {
	weekday := domain.WeekdayOf(date)

	schedule, err := uc.scheduleRepo.GetByFieldAndWeekday(ctx, field.ID, weekday)
	if err != nil && !errors.Is(err, scheduleRepo.ErrScheduleNotFound) {
		return nil, fmt.Errorf("%w: failed to get schedule for %s: %v", ErrInternal, weekday, err)
	}
	if errors.Is(err, scheduleRepo.ErrScheduleNotFound) {
		schedule = nil
	}

	var reservations []*domain.Reservation
	if schedule != nil {
		openMin := max(schedule.OpenTime.Minutes(), domain.GridFloorMinutes)
		closeMin := min(schedule.CloseTime.Minutes(), domain.GridCeilingMinutes)
		if openMin < closeMin {
			reservations, err = uc.reservationRepo.FindOverlapping(ctx, field.ID,
				domain.WallClock(date, openMin), domain.WallClock(date, closeMin), nil)
			if err != nil {
				return nil, fmt.Errorf("%w: failed to find reservations for %s: %v",
					ErrInternal, date.Format(domain.DateFormat), err)
			}
		}
	}

	slots := make([]domain.Slot, 0, domain.SlotsPerDay)
	for _, startMin := range domain.GridStarts() {
		endMin := startMin + domain.SlotDurationMinutes
		slot := domain.Slot{
			Date:      date,
			StartTime: types.MustFromMinutes(startMin),
			EndTime:   types.MustFromMinutes(endMin),
			State:     domain.SlotClosed,
		}

		if schedule != nil && schedule.Contains(startMin, endMin) {
			slot.State = domain.SlotOpen
			slotStart, slotEnd := slot.StartAt(), slot.EndAt()
			// частичное пересечение тоже занимает слот
			for _, r := range reservations {
				if r.Overlaps(slotStart, slotEnd) {
					id := r.ID
					slot.State = domain.SlotBooked
					slot.ReservationID = &id
					slot.HolderLabel = r.Holder.DisplayLabel()
					break
				}
			}
		}

		slots = append(slots, slot)
	}

	return slots, nil
}
