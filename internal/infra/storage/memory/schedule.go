package memory

import (
	"context"

	"github.com/m04kA/SMC-FieldBookingService/internal/domain"
	"github.com/m04kA/SMC-FieldBookingService/internal/infra/storage/schedule"
)

type ScheduleRepository struct {
	store *Store
}

func (r *ScheduleRepository) Upsert(_ context.Context, s *domain.WeeklySchedule) (*domain.WeeklySchedule, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	byDay, ok := r.store.schedules[s.FieldID]
	if !ok {
		byDay = make(map[domain.Weekday]*domain.WeeklySchedule)
		r.store.schedules[s.FieldID] = byDay
	}

	now := r.store.now()
	saved := *s
	if existing, ok := byDay[s.Weekday]; ok {
		saved.ID = existing.ID
		saved.CreatedAt = existing.CreatedAt
	} else {
		r.store.nextScheduleID++
		saved.ID = r.store.nextScheduleID
		saved.CreatedAt = now
	}
	saved.UpdatedAt = now
	byDay[s.Weekday] = &saved

	out := saved
	return &out, nil
}

func (r *ScheduleRepository) Delete(_ context.Context, fieldID int64, weekday domain.Weekday) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	delete(r.store.schedules[fieldID], weekday)
	return nil
}

func (r *ScheduleRepository) GetByFieldAndWeekday(_ context.Context, fieldID int64, weekday domain.Weekday) (*domain.WeeklySchedule, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	s, ok := r.store.schedules[fieldID][weekday]
	if !ok {
		return nil, schedule.ErrScheduleNotFound
	}
	out := *s
	return &out, nil
}

func (r *ScheduleRepository) ListByField(_ context.Context, fieldID int64) ([]*domain.WeeklySchedule, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	out := make([]*domain.WeeklySchedule, 0, len(r.store.schedules[fieldID]))
	for _, s := range r.store.schedules[fieldID] {
		cp := *s
		out = append(out, &cp)
	}
	return out, nil
}
