package reservations

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/m04kA/SMC-FieldBookingService/internal/domain"
	fieldRepo "github.com/m04kA/SMC-FieldBookingService/internal/infra/storage/field"
	reservationRepo "github.com/m04kA/SMC-FieldBookingService/internal/infra/storage/reservation"
	"github.com/m04kA/SMC-FieldBookingService/internal/service/reservations/models"
)

// Service жизненный цикл брони после создания
type Service struct {
	reservationRepo ReservationRepository
	fieldRepo       FieldRepository
	metrics         MetricsRecorder
	logger          Logger
}

// NewService создает новый экземпляр сервиса броней. metrics может быть nil.
func NewService(
	reservationRepo ReservationRepository,
	fieldRepo FieldRepository,
	metrics MetricsRecorder,
	logger Logger,
) *Service {
	return &Service{
		reservationRepo: reservationRepo,
		fieldRepo:       fieldRepo,
		metrics:         metrics,
		logger:          logger,
	}
}

// GetByID получает бронь тенанта
func (s *Service) GetByID(ctx context.Context, tenantID, id int64) (*models.ReservationResponse, error) {
	res, err := s.get(ctx, tenantID, id, "GetByID")
	if err != nil {
		return nil, err
	}
	return models.FromDomainReservation(res), nil
}

// ListByField брони площадки с фильтрами
func (s *Service) ListByField(ctx context.Context, req *models.ListReservationsRequest) (*models.ReservationListResponse, error) {
	s.logger.Info("ListByField: field=%d tenant=%d includeInactive=%v", req.FieldID, req.TenantID, req.IncludeInactive)

	if req.From != nil && req.To != nil && !req.From.Before(*req.To) {
		return nil, fmt.Errorf("%w: from must be before to", ErrInvalidInput)
	}

	filter := domain.ReservationsFilter{
		TenantID:        req.TenantID,
		FieldID:         req.FieldID,
		From:            req.From,
		To:              req.To,
		IncludeInactive: req.IncludeInactive,
	}
	if req.Status != nil {
		status, err := domain.ParseReservationStatus(*req.Status)
		if err != nil {
			s.logger.Warn("ListByField: invalid status=%q", *req.Status)
			return nil, fmt.Errorf("%w: %v", ErrInvalidInput, err)
		}
		filter.Status = &status
	}

	if _, err := s.fieldRepo.GetByID(ctx, req.TenantID, req.FieldID); err != nil {
		if errors.Is(err, fieldRepo.ErrFieldNotFound) {
			return nil, ErrFieldNotFound
		}
		s.logger.Error("ListByField: failed to get field id=%d: %v", req.FieldID, err)
		return nil, fmt.Errorf("%w: ListByField - failed to get field: %v", ErrInternal, err)
	}

	list, err := s.reservationRepo.ListByField(ctx, filter)
	if err != nil {
		s.logger.Error("ListByField: repository error for field=%d: %v", req.FieldID, err)
		return nil, fmt.Errorf("%w: ListByField - repository error: %v", ErrInternal, err)
	}

	return models.FromDomainReservationList(list), nil
}

// Confirm PENDING -> CONFIRMED
func (s *Service) Confirm(ctx context.Context, tenantID, id int64) (*models.ReservationResponse, error) {
	return s.transition(ctx, tenantID, id, domain.StatusConfirmed, nil)
}

// Cancel PENDING|CONFIRMED -> CANCELLED. Интервал освобождается сразу.
func (s *Service) Cancel(ctx context.Context, tenantID, id int64, reason *string) (*models.ReservationResponse, error) {
	if reason != nil {
		trimmed := strings.TrimSpace(*reason)
		if len(trimmed) > domain.MaxCancellationReasonLength {
			return nil, fmt.Errorf("%w: cancellation reason is too long", ErrInvalidInput)
		}
		reason = &trimmed
	}
	return s.transition(ctx, tenantID, id, domain.StatusCancelled, reason)
}

// Complete CONFIRMED -> COMPLETED
func (s *Service) Complete(ctx context.Context, tenantID, id int64) (*models.ReservationResponse, error) {
	return s.transition(ctx, tenantID, id, domain.StatusCompleted, nil)
}

// MarkNoShow CONFIRMED -> NO_SHOW
func (s *Service) MarkNoShow(ctx context.Context, tenantID, id int64) (*models.ReservationResponse, error) {
	return s.transition(ctx, tenantID, id, domain.StatusNoShow, nil)
}

// ChangeStatus смена статуса по имени
func (s *Service) ChangeStatus(ctx context.Context, req *models.ChangeStatusRequest) (*models.ReservationResponse, error) {
	status, err := domain.ParseReservationStatus(req.Status)
	if err != nil {
		s.logger.Warn("ChangeStatus: invalid status=%q for reservation id=%d", req.Status, req.ReservationID)
		return nil, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}

	if status == domain.StatusCancelled {
		return s.Cancel(ctx, req.TenantID, req.ReservationID, req.Reason)
	}
	return s.transition(ctx, req.TenantID, req.ReservationID, status, nil)
}

// CompleteElapsed переводит в COMPLETED подтверждённые брони, закончившиеся до now.
// Обрабатывает не больше batch броней за вызов, возвращает число переведённых и число выбранных.
// Выбранных может быть больше: бронь, которую успели поменять вручную, пропускается.
func (s *Service) CompleteElapsed(ctx context.Context, now time.Time, batch int) (completed, fetched int, err error) {
	list, err := s.reservationRepo.ListEndedBefore(ctx, domain.StatusConfirmed, now, batch)
	if err != nil {
		s.logger.Error("CompleteElapsed: repository error: %v", err)
		return 0, 0, fmt.Errorf("%w: CompleteElapsed - repository error: %v", ErrInternal, err)
	}
	fetched = len(list)

	for _, res := range list {
		_, err := s.reservationRepo.UpdateStatus(ctx, res.TenantID, res.ID, domain.StatusConfirmed, domain.StatusCompleted, nil)
		switch {
		case err == nil:
			completed++
			s.recordTransition(domain.StatusConfirmed, domain.StatusCompleted)
		case errors.Is(err, reservationRepo.ErrStatusChanged), errors.Is(err, reservationRepo.ErrReservationNotFound):
			// статус успели поменять вручную
			s.logger.Warn("CompleteElapsed: reservation id=%d skipped: %v", res.ID, err)
		default:
			s.logger.Error("CompleteElapsed: failed to complete reservation id=%d: %v", res.ID, err)
			return completed, fetched, fmt.Errorf("%w: CompleteElapsed - repository error: %v", ErrInternal, err)
		}
	}

	if completed > 0 {
		s.logger.Info("CompleteElapsed: completed %d reservations ended before %s", completed, now.Format(time.RFC3339))
	}
	return completed, fetched, nil
}

func (s *Service) transition(ctx context.Context, tenantID, id int64, to domain.ReservationStatus, reason *string) (*models.ReservationResponse, error) {
	s.logger.Info("transition: reservation id=%d tenant=%d -> %s", id, tenantID, to)

	res, err := s.get(ctx, tenantID, id, "transition")
	if err != nil {
		return nil, err
	}

	from := res.Status
	if err := res.TransitionTo(to, time.Now()); err != nil {
		s.logger.Warn("transition: reservation id=%d: %v", id, err)
		return nil, fmt.Errorf("%w: %v", ErrIllegalTransition, err)
	}

	updated, err := s.reservationRepo.UpdateStatus(ctx, tenantID, id, from, to, reason)
	if err != nil {
		switch {
		case errors.Is(err, reservationRepo.ErrReservationNotFound):
			return nil, ErrReservationNotFound
		case errors.Is(err, reservationRepo.ErrStatusChanged):
			s.logger.Warn("transition: reservation id=%d changed concurrently", id)
			return nil, fmt.Errorf("%w: status changed concurrently", ErrIllegalTransition)
		default:
			s.logger.Error("transition: repository error for reservation id=%d: %v", id, err)
			return nil, fmt.Errorf("%w: transition - repository error: %v", ErrInternal, err)
		}
	}

	s.recordTransition(from, to)
	s.logger.Info("transition: reservation id=%d %s -> %s", id, from, to)
	return models.FromDomainReservation(updated), nil
}

func (s *Service) get(ctx context.Context, tenantID, id int64, op string) (*domain.Reservation, error) {
	res, err := s.reservationRepo.GetByID(ctx, tenantID, id)
	if err != nil {
		if errors.Is(err, reservationRepo.ErrReservationNotFound) {
			s.logger.Warn("%s: reservation id=%d not found", op, id)
			return nil, ErrReservationNotFound
		}
		s.logger.Error("%s: repository error for reservation id=%d: %v", op, id, err)
		return nil, fmt.Errorf("%w: %s - repository error: %v", ErrInternal, op, err)
	}
	return res, nil
}

func (s *Service) recordTransition(from, to domain.ReservationStatus) {
	if s.metrics != nil {
		s.metrics.RecordStatusTransition(string(from), string(to))
	}
}
