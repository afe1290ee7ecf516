package schedules

import (
	"context"
	"errors"
	"fmt"
	"sort"

	"github.com/m04kA/SMC-FieldBookingService/internal/domain"
	fieldRepo "github.com/m04kA/SMC-FieldBookingService/internal/infra/storage/field"
	"github.com/m04kA/SMC-FieldBookingService/internal/service/schedules/models"
	"github.com/m04kA/SMC-FieldBookingService/pkg/types"
)

// Service недельное расписание площадок. Бронирования не учитывает.
type Service struct {
	fieldRepo    FieldRepository
	scheduleRepo ScheduleRepository
	logger       Logger
}

// NewService создает новый экземпляр сервиса расписаний
func NewService(
	fieldRepo FieldRepository,
	scheduleRepo ScheduleRepository,
	logger Logger,
) *Service {
	return &Service{
		fieldRepo:    fieldRepo,
		scheduleRepo: scheduleRepo,
		logger:       logger,
	}
}

// SetSchedule создаёт или заменяет окно работы на день недели
func (s *Service) SetSchedule(ctx context.Context, req *models.SetScheduleRequest) (*models.ScheduleResponse, error) {
	s.logger.Info("SetSchedule: field=%d weekday=%s %s-%s by actor=%d",
		req.FieldID, req.Weekday, req.OpenTime, req.CloseTime, req.ActorID)

	weekday, err := domain.ParseWeekday(req.Weekday)
	if err != nil {
		s.logger.Warn("SetSchedule: invalid weekday=%q", req.Weekday)
		return nil, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}

	schedule := &domain.WeeklySchedule{
		FieldID:   req.FieldID,
		Weekday:   weekday,
		OpenTime:  types.TimeString(req.OpenTime),
		CloseTime: types.TimeString(req.CloseTime),
	}
	if err := schedule.Validate(); err != nil {
		s.logger.Warn("SetSchedule: invalid range for field=%d: %v", req.FieldID, err)
		return nil, fmt.Errorf("%w: %v", ErrInvalidRange, err)
	}

	if err := s.ensureField(ctx, req.TenantID, req.FieldID); err != nil {
		return nil, err
	}

	saved, err := s.scheduleRepo.Upsert(ctx, schedule)
	if err != nil {
		s.logger.Error("SetSchedule: repository error for field=%d: %v", req.FieldID, err)
		return nil, fmt.Errorf("%w: SetSchedule - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("SetSchedule: saved schedule id=%d for field=%d weekday=%s", saved.ID, saved.FieldID, saved.Weekday)
	return models.FromDomainSchedule(saved), nil
}

// RemoveSchedule закрывает день недели. Повторный вызов не ошибка.
func (s *Service) RemoveSchedule(ctx context.Context, tenantID, fieldID int64, weekdayRaw string) error {
	s.logger.Info("RemoveSchedule: field=%d weekday=%s", fieldID, weekdayRaw)

	weekday, err := domain.ParseWeekday(weekdayRaw)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}

	if err := s.ensureField(ctx, tenantID, fieldID); err != nil {
		return err
	}

	if err := s.scheduleRepo.Delete(ctx, fieldID, weekday); err != nil {
		s.logger.Error("RemoveSchedule: repository error for field=%d: %v", fieldID, err)
		return fmt.Errorf("%w: RemoveSchedule - repository error: %v", ErrInternal, err)
	}

	return nil
}

// GetSchedules не более семи окон, с понедельника по воскресенье
func (s *Service) GetSchedules(ctx context.Context, tenantID, fieldID int64) (*models.FieldSchedulesResponse, error) {
	if err := s.ensureField(ctx, tenantID, fieldID); err != nil {
		return nil, err
	}

	list, err := s.scheduleRepo.ListByField(ctx, fieldID)
	if err != nil {
		s.logger.Error("GetSchedules: repository error for field=%d: %v", fieldID, err)
		return nil, fmt.Errorf("%w: GetSchedules - repository error: %v", ErrInternal, err)
	}

	sort.Slice(list, func(i, j int) bool {
		return list[i].Weekday.Index() < list[j].Weekday.Index()
	})

	resp := &models.FieldSchedulesResponse{
		FieldID:   fieldID,
		Schedules: make([]models.ScheduleResponse, 0, len(list)),
	}
	for _, sch := range list {
		resp.Schedules = append(resp.Schedules, *models.FromDomainSchedule(sch))
	}

	return resp, nil
}

func (s *Service) ensureField(ctx context.Context, tenantID, fieldID int64) error {
	if _, err := s.fieldRepo.GetByID(ctx, tenantID, fieldID); err != nil {
		if errors.Is(err, fieldRepo.ErrFieldNotFound) {
			s.logger.Warn("field id=%d not found for tenant=%d", fieldID, tenantID)
			return ErrFieldNotFound
		}
		s.logger.Error("failed to get field id=%d: %v", fieldID, err)
		return fmt.Errorf("%w: failed to get field: %v", ErrInternal, err)
	}
	return nil
}
