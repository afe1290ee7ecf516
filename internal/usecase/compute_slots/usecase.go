package compute_slots

import (
	"context"
	"errors"
	"fmt"
	"iter"
	"time"

	"github.com/m04kA/SMC-FieldBookingService/internal/domain"
	fieldRepo "github.com/m04kA/SMC-FieldBookingService/internal/infra/storage/field"
)

// UseCase вычисление сетки слотов площадки.
// Ничего не кэширует: каждый проход читает текущие расписание и журнал броней.
type UseCase struct {
	fieldRepo       FieldRepository
	scheduleRepo    ScheduleRepository
	reservationRepo ReservationRepository
	maxRangeDays    int
	logger          Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	fieldRepo FieldRepository,
	scheduleRepo ScheduleRepository,
	reservationRepo ReservationRepository,
	maxRangeDays int,
	logger Logger,
) *UseCase {
	return &UseCase{
		fieldRepo:       fieldRepo,
		scheduleRepo:    scheduleRepo,
		reservationRepo: reservationRepo,
		maxRangeDays:    maxRangeDays,
		logger:          logger,
	}
}

// Slots ленивая последовательность слотов с from по to включительно, по 34 на дату.
// Ошибка отдаётся последним элементом, после неё последовательность заканчивается.
// Последовательность можно обходить повторно.
func (uc *UseCase) Slots(ctx context.Context, req *Request) iter.Seq2[domain.Slot, error] {
	return func(yield func(domain.Slot, error) bool) {
		from, to, err := validateRequest(req, uc.maxRangeDays)
		if err != nil {
			yield(domain.Slot{}, err)
			return
		}

		field, err := uc.getField(ctx, req.TenantID, req.FieldID)
		if err != nil {
			yield(domain.Slot{}, err)
			return
		}

		loc := field.Location()
		for d := from; !d.After(to); d = d.AddDate(0, 0, 1) {
			if err := ctx.Err(); err != nil {
				yield(domain.Slot{}, err)
				return
			}

			date := time.Date(d.Year(), d.Month(), d.Day(), 0, 0, 0, 0, loc)
			slots, err := uc.daySlots(ctx, field, date)
			if err != nil {
				uc.logger.Error("ComputeSlots: field=%d date=%s: %v", field.ID, d.Format(domain.DateFormat), err)
				yield(domain.Slot{}, err)
				return
			}

			for _, slot := range slots {
				if !yield(slot, nil) {
					return
				}
			}
		}
	}
}

// Execute собирает всю сетку в ответ
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("ComputeSlots: field=%d tenant=%d from=%s to=%s",
		req.FieldID, req.TenantID, req.From.Format(domain.DateFormat), req.To.Format(domain.DateFormat))

	resp := &Response{
		FieldID: req.FieldID,
		From:    req.From.Format(domain.DateFormat),
		To:      req.To.Format(domain.DateFormat),
		Days:    make([]Day, 0),
	}

	for slot, err := range uc.Slots(ctx, req) {
		if err != nil {
			return nil, err
		}

		date := slot.Date.Format(domain.DateFormat)
		if n := len(resp.Days); n == 0 || resp.Days[n-1].Date != date {
			resp.Timezone = slot.Date.Location().String()
			resp.Days = append(resp.Days, Day{
				Date:    date,
				Weekday: domain.WeekdayOf(slot.Date).String(),
				Slots:   make([]Slot, 0, domain.SlotsPerDay),
			})
		}

		day := &resp.Days[len(resp.Days)-1]
		day.Slots = append(day.Slots, Slot{
			StartTime:     slot.StartTime.String(),
			EndTime:       slot.EndTime.String(),
			State:         string(slot.State),
			ReservationID: slot.ReservationID,
			HolderLabel:   slot.HolderLabel,
		})
	}

	uc.logger.Info("ComputeSlots: field=%d returned %d days", req.FieldID, len(resp.Days))
	return resp, nil
}

func (uc *UseCase) getField(ctx context.Context, tenantID, fieldID int64) (*domain.Field, error) {
	field, err := uc.fieldRepo.GetByID(ctx, tenantID, fieldID)
	if err != nil {
		if errors.Is(err, fieldRepo.ErrFieldNotFound) {
			uc.logger.Warn("ComputeSlots: field id=%d not found for tenant=%d", fieldID, tenantID)
			return nil, ErrFieldNotFound
		}
		uc.logger.Error("ComputeSlots: failed to get field id=%d: %v", fieldID, err)
		return nil, fmt.Errorf("%w: failed to get field: %v", ErrInternal, err)
	}
	return field, nil
}
