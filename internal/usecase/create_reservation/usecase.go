package create_reservation

import (
	"context"
	"errors"
	"fmt"

	"github.com/m04kA/SMC-FieldBookingService/internal/domain"
	fieldRepo "github.com/m04kA/SMC-FieldBookingService/internal/infra/storage/field"
	reservationRepo "github.com/m04kA/SMC-FieldBookingService/internal/infra/storage/reservation"
	scheduleRepo "github.com/m04kA/SMC-FieldBookingService/internal/infra/storage/schedule"
	"github.com/m04kA/SMC-FieldBookingService/pkg/txmanager"
)

// Исходы попытки для метрик
const (
	outcomeCreated         = "created"
	outcomeInvalid         = "invalid"
	outcomeInvalidField    = "invalid_field"
	outcomeOutsideSchedule = "outside_schedule"
	outcomeOverlap         = "overlap"
	outcomeError           = "error"
)

// UseCase проверяет интервал по расписанию и журналу и атомарно создаёт бронь
type UseCase struct {
	fieldRepo             FieldRepository
	scheduleRepo          ScheduleRepository
	reservationRepo       ReservationRepository
	txManager             TransactionManager
	maxReservationMinutes int
	metrics               MetricsRecorder
	logger                Logger
}

// NewUseCase создает новый экземпляр use case. metrics может быть nil.
func NewUseCase(
	fieldRepo FieldRepository,
	scheduleRepo ScheduleRepository,
	reservationRepo ReservationRepository,
	txManager TransactionManager,
	maxReservationMinutes int,
	metrics MetricsRecorder,
	logger Logger,
) *UseCase {
	return &UseCase{
		fieldRepo:             fieldRepo,
		scheduleRepo:          scheduleRepo,
		reservationRepo:       reservationRepo,
		txManager:             txManager,
		maxReservationMinutes: maxReservationMinutes,
		metrics:               metrics,
		logger:                logger,
	}
}

// Execute выполняет use case создания брони
// Проверка пересечений и вставка идут в одной сериализуемой транзакции под блокировкой площадки.
// Проигравшая гонку попытка получает ErrOverlap, повторов нет.
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("CreateReservation: tenant=%d field=%d actor=%d %s - %s",
		req.TenantID, req.FieldID, req.ActorID, req.StartAt.Format("2006-01-02T15:04Z07:00"), req.EndAt.Format("2006-01-02T15:04Z07:00"))

	resp, err := uc.execute(ctx, req)
	uc.record(err)
	return resp, err
}

func (uc *UseCase) execute(ctx context.Context, req *Request) (*Response, error) {
	// 1. Валидация входных данных
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("CreateReservation: validation failed: %v", err)
		return nil, err
	}

	// 2. Площадка и ручной выключатель
	field, err := uc.fieldRepo.GetByID(ctx, req.TenantID, req.FieldID)
	if err != nil {
		if errors.Is(err, fieldRepo.ErrFieldNotFound) {
			uc.logger.Warn("CreateReservation: field id=%d not found for tenant=%d", req.FieldID, req.TenantID)
			return nil, ErrFieldNotFound
		}
		uc.logger.Error("CreateReservation: failed to get field id=%d: %v", req.FieldID, err)
		return nil, fmt.Errorf("%w: failed to get field: %v", ErrInternal, err)
	}
	if !field.IsAvailable {
		uc.logger.Warn("CreateReservation: field id=%d is switched off", field.ID)
		return nil, ErrInvalidField
	}

	// 3. Максимальная длительность
	if err := validateDuration(req.StartAt, req.EndAt, uc.maxReservationMinutes); err != nil {
		uc.logger.Warn("CreateReservation: %v", err)
		return nil, err
	}

	// 4. Окно работы в локальном времени площадки
	if err := uc.checkSchedule(ctx, field, req); err != nil {
		return nil, err
	}

	var created *domain.Reservation

	// 5-6. Пересечения и вставка атомарно.
	// READ COMMITTED: конкурирующие брони одной площадки выстраиваются в очередь на FOR UPDATE по площадке.
	err = uc.txManager.Do(ctx, func(txCtx context.Context) error {
		if err := uc.fieldRepo.Lock(txCtx, req.TenantID, req.FieldID); err != nil {
			if errors.Is(err, fieldRepo.ErrFieldNotFound) {
				return ErrFieldNotFound
			}
			return fmt.Errorf("%w: failed to lock field: %w", ErrInternal, err)
		}

		overlapping, err := uc.reservationRepo.FindOverlapping(txCtx, req.FieldID, req.StartAt, req.EndAt, nil)
		if err != nil {
			return fmt.Errorf("%w: failed to find overlapping reservations: %w", ErrInternal, err)
		}
		if len(overlapping) > 0 {
			uc.logger.Warn("CreateReservation: field=%d overlaps reservation id=%d (%s)",
				req.FieldID, overlapping[0].ID, overlapping[0].Status)
			return ErrOverlap
		}

		created, err = uc.reservationRepo.Insert(txCtx, &domain.Reservation{
			TenantID: req.TenantID,
			FieldID:  req.FieldID,
			StartAt:  req.StartAt,
			EndAt:    req.EndAt,
			Status:   domain.StatusPending,
			Amount:   req.Amount,
			Holder:   req.Holder,
		})
		if err != nil {
			if errors.Is(err, reservationRepo.ErrConflict) {
				uc.logger.Warn("CreateReservation: insert rejected by store: %v", err)
				return ErrOverlap
			}
			return fmt.Errorf("%w: failed to insert reservation: %w", ErrInternal, err)
		}
		return nil
	})

	if err != nil {
		switch {
		case errors.Is(err, txmanager.ErrSerializationFailure):
			return nil, uc.resolveAbortedTx(ctx, req, err)
		case errors.Is(err, ErrOverlap), errors.Is(err, ErrFieldNotFound):
			return nil, err
		case errors.Is(err, ErrInternal):
			uc.logger.Error("CreateReservation: %v", err)
			return nil, err
		default:
			uc.logger.Error("CreateReservation: transaction failed: %v", err)
			return nil, fmt.Errorf("%w: %v", ErrInternal, err)
		}
	}

	uc.logger.Info("CreateReservation: created reservation id=%d on field=%d", created.ID, created.FieldID)

	return &Response{
		ID:        created.ID,
		FieldID:   created.FieldID,
		StartAt:   created.StartAt,
		EndAt:     created.EndAt,
		Status:    string(created.Status),
		Amount:    created.Amount,
		Holder:    created.Holder,
		CreatedAt: created.CreatedAt,
		UpdatedAt: created.UpdatedAt,
	}, nil
}

// resolveAbortedTx отвечает Overlap, только если пересекающаяся бронь действительно есть.
// Иначе транзакция сорвалась не из-за брони (дедлок и т.п.) и это внутренняя ошибка.
func (uc *UseCase) resolveAbortedTx(ctx context.Context, req *Request, txErr error) error {
	overlapping, err := uc.reservationRepo.FindOverlapping(ctx, req.FieldID, req.StartAt, req.EndAt, nil)
	if err != nil {
		uc.logger.Error("CreateReservation: recheck after aborted transaction failed: %v (tx error: %v)", err, txErr)
		return fmt.Errorf("%w: %v", ErrInternal, txErr)
	}
	if len(overlapping) > 0 {
		uc.logger.Warn("CreateReservation: concurrent reservation id=%d on field=%d won",
			overlapping[0].ID, req.FieldID)
		return ErrOverlap
	}

	uc.logger.Error("CreateReservation: transaction aborted without overlap on field=%d: %v", req.FieldID, txErr)
	return fmt.Errorf("%w: %v", ErrInternal, txErr)
}

func (uc *UseCase) checkSchedule(ctx context.Context, field *domain.Field, req *Request) error {
	date, startMin, endMin, err := localSpan(req.StartAt, req.EndAt, field.Location())
	if err != nil {
		uc.logger.Warn("CreateReservation: %v", err)
		return err
	}

	weekday := domain.WeekdayOf(date)
	schedule, err := uc.scheduleRepo.GetByFieldAndWeekday(ctx, field.ID, weekday)
	if err != nil {
		if errors.Is(err, scheduleRepo.ErrScheduleNotFound) {
			uc.logger.Warn("CreateReservation: field=%d is closed on %s", field.ID, weekday)
			return fmt.Errorf("%w: closed on %s", ErrOutsideSchedule, weekday)
		}
		uc.logger.Error("CreateReservation: failed to get schedule: %v", err)
		return fmt.Errorf("%w: failed to get schedule: %v", ErrInternal, err)
	}

	if err := validateWithinSchedule(schedule, startMin, endMin); err != nil {
		uc.logger.Warn("CreateReservation: %v", err)
		return err
	}
	return nil
}

func (uc *UseCase) record(err error) {
	if uc.metrics == nil {
		return
	}

	outcome := outcomeError
	switch {
	case err == nil:
		outcome = outcomeCreated
	case errors.Is(err, ErrOverlap):
		outcome = outcomeOverlap
	case errors.Is(err, ErrOutsideSchedule):
		outcome = outcomeOutsideSchedule
	case errors.Is(err, ErrInvalidField):
		outcome = outcomeInvalidField
	case errors.Is(err, ErrInvalidInput), errors.Is(err, ErrInvalidTimeRange),
		errors.Is(err, ErrDurationExceeded), errors.Is(err, ErrFieldNotFound):
		outcome = outcomeInvalid
	}
	uc.metrics.RecordReservationAttempt(outcome)
}
