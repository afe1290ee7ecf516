package memory

import (
	"context"
	"fmt"
	"slices"
	"sort"
	"time"

	"github.com/m04kA/SMC-FieldBookingService/internal/domain"
	"github.com/m04kA/SMC-FieldBookingService/internal/infra/storage/reservation"
)

type ReservationRepository struct {
	store *Store
}

// Insert повторяет exclusion constraint из миграции: активные интервалы одной площадки не пересекаются
func (r *ReservationRepository) Insert(_ context.Context, res *domain.Reservation) (*domain.Reservation, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	if res.Status.IsActive() {
		for _, existing := range r.store.reservations {
			if existing.FieldID == res.FieldID && existing.IsActive() && existing.Overlaps(res.StartAt, res.EndAt) {
				return nil, fmt.Errorf("%w: Insert - overlaps reservation %d", reservation.ErrConflict, existing.ID)
			}
		}
	}

	now := r.store.now()
	r.store.nextReservationID++
	saved := cloneReservation(res)
	saved.ID = r.store.nextReservationID
	saved.CreatedAt = now
	saved.UpdatedAt = now
	r.store.reservations[saved.ID] = saved

	return cloneReservation(saved), nil
}

func (r *ReservationRepository) GetByID(_ context.Context, tenantID, id int64) (*domain.Reservation, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	res, ok := r.store.reservations[id]
	if !ok || res.TenantID != tenantID {
		return nil, reservation.ErrReservationNotFound
	}
	return cloneReservation(res), nil
}

func (r *ReservationRepository) FindOverlapping(_ context.Context, fieldID int64, start, end time.Time, exclude []domain.ReservationStatus) ([]*domain.Reservation, error) {
	if exclude == nil {
		exclude = domain.DefaultExcludedStatuses
	}

	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	out := make([]*domain.Reservation, 0)
	for _, res := range r.store.reservations {
		if res.FieldID != fieldID || !res.Overlaps(start, end) || slices.Contains(exclude, res.Status) {
			continue
		}
		out = append(out, cloneReservation(res))
	}
	sortByStart(out)
	return out, nil
}

func (r *ReservationRepository) ListByField(_ context.Context, filter domain.ReservationsFilter) ([]*domain.Reservation, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	out := make([]*domain.Reservation, 0)
	for _, res := range r.store.reservations {
		if res.TenantID != filter.TenantID || res.FieldID != filter.FieldID {
			continue
		}
		if filter.From != nil && !res.EndAt.After(*filter.From) {
			continue
		}
		if filter.To != nil && !res.StartAt.Before(*filter.To) {
			continue
		}
		if filter.Status != nil {
			if res.Status != *filter.Status {
				continue
			}
		} else if !filter.IncludeInactive && slices.Contains(domain.DefaultExcludedStatuses, res.Status) {
			continue
		}
		out = append(out, cloneReservation(res))
	}
	sortByStart(out)
	return out, nil
}

func (r *ReservationRepository) ListEndedBefore(_ context.Context, status domain.ReservationStatus, before time.Time, limit int) ([]*domain.Reservation, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	out := make([]*domain.Reservation, 0)
	for _, res := range r.store.reservations {
		if res.Status == status && !res.EndAt.After(before) {
			out = append(out, cloneReservation(res))
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].EndAt.Before(out[j].EndAt) })
	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

func (r *ReservationRepository) UpdateStatus(_ context.Context, tenantID, id int64, from, to domain.ReservationStatus, reason *string) (*domain.Reservation, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	res, ok := r.store.reservations[id]
	if !ok || res.TenantID != tenantID {
		return nil, reservation.ErrReservationNotFound
	}
	if res.Status != from {
		return nil, fmt.Errorf("%w: UpdateStatus - expected %s, got %s", reservation.ErrStatusChanged, from, res.Status)
	}

	now := r.store.now()
	res.Status = to
	res.UpdatedAt = now
	if to == domain.StatusCancelled {
		res.CancellationReason = reason
		cancelledAt := now
		res.CancelledAt = &cancelledAt
	}

	return cloneReservation(res), nil
}

func sortByStart(list []*domain.Reservation) {
	sort.Slice(list, func(i, j int) bool {
		if list[i].StartAt.Equal(list[j].StartAt) {
			return list[i].ID < list[j].ID
		}
		return list[i].StartAt.Before(list[j].StartAt)
	})
}

func cloneReservation(res *domain.Reservation) *domain.Reservation {
	out := *res
	if res.Holder.UserID != nil {
		id := *res.Holder.UserID
		out.Holder.UserID = &id
	}
	if res.Holder.Guest != nil {
		g := *res.Holder.Guest
		out.Holder.Guest = &g
	}
	if res.CancellationReason != nil {
		reason := *res.CancellationReason
		out.CancellationReason = &reason
	}
	if res.CancelledAt != nil {
		at := *res.CancelledAt
		out.CancelledAt = &at
	}
	return &out
}
