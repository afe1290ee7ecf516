package memory

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-FieldBookingService/internal/domain"
	"github.com/m04kA/SMC-FieldBookingService/internal/infra/storage/field"
	"github.com/m04kA/SMC-FieldBookingService/internal/infra/storage/reservation"
	"github.com/m04kA/SMC-FieldBookingService/internal/infra/storage/schedule"
	"github.com/m04kA/SMC-FieldBookingService/pkg/ptr"
)

var day = time.Date(2025, 3, 3, 0, 0, 0, 0, time.UTC)

func at(h, m int) time.Time {
	return day.Add(time.Duration(h)*time.Hour + time.Duration(m)*time.Minute)
}

func newReservation(start, end time.Time, status domain.ReservationStatus) *domain.Reservation {
	return &domain.Reservation{
		TenantID: 1,
		FieldID:  5,
		StartAt:  start,
		EndAt:    end,
		Status:   status,
		Holder:   domain.Holder{UserID: ptr.Ptr(int64(42))},
	}
}

func TestFields_TenantScoped(t *testing.T) {
	store := NewStore()
	store.AddField(domain.Field{ID: 5, TenantID: 1, Name: "A", IsAvailable: true})

	f, err := store.Fields().GetByID(context.Background(), 1, 5)
	require.NoError(t, err)
	assert.Equal(t, domain.DefaultTimezone, f.Timezone)

	_, err = store.Fields().GetByID(context.Background(), 2, 5)
	assert.ErrorIs(t, err, field.ErrFieldNotFound)
}

func TestSchedules_UpsertReplaces(t *testing.T) {
	store := NewStore()
	repo := store.Schedules()
	ctx := context.Background()

	first, err := repo.Upsert(ctx, &domain.WeeklySchedule{FieldID: 5, Weekday: domain.Monday, OpenTime: "08:00", CloseTime: "22:00"})
	require.NoError(t, err)
	second, err := repo.Upsert(ctx, &domain.WeeklySchedule{FieldID: 5, Weekday: domain.Monday, OpenTime: "09:00", CloseTime: "21:00"})
	require.NoError(t, err)

	assert.Equal(t, first.ID, second.ID)
	list, err := repo.ListByField(ctx, 5)
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, "09:00", list[0].OpenTime.String())

	require.NoError(t, repo.Delete(ctx, 5, domain.Monday))
	require.NoError(t, repo.Delete(ctx, 5, domain.Monday))
	_, err = repo.GetByFieldAndWeekday(ctx, 5, domain.Monday)
	assert.ErrorIs(t, err, schedule.ErrScheduleNotFound)
}

func TestReservations_InsertRejectsActiveOverlap(t *testing.T) {
	store := NewStore()
	repo := store.Reservations()
	ctx := context.Background()

	_, err := repo.Insert(ctx, newReservation(at(10, 0), at(11, 0), domain.StatusConfirmed))
	require.NoError(t, err)

	_, err = repo.Insert(ctx, newReservation(at(10, 30), at(11, 30), domain.StatusPending))
	assert.ErrorIs(t, err, reservation.ErrConflict)

	_, err = repo.Insert(ctx, newReservation(at(11, 0), at(12, 0), domain.StatusPending))
	assert.NoError(t, err)
}

func TestReservations_FindOverlappingExcludes(t *testing.T) {
	store := NewStore()
	repo := store.Reservations()
	ctx := context.Background()

	active, err := repo.Insert(ctx, newReservation(at(10, 0), at(11, 0), domain.StatusConfirmed))
	require.NoError(t, err)

	found, err := repo.FindOverlapping(ctx, 5, at(10, 30), at(11, 30), nil)
	require.NoError(t, err)
	require.Len(t, found, 1)

	_, err = repo.UpdateStatus(ctx, 1, active.ID, domain.StatusConfirmed, domain.StatusCancelled, ptr.Ptr("rain"))
	require.NoError(t, err)

	found, err = repo.FindOverlapping(ctx, 5, at(10, 30), at(11, 30), nil)
	require.NoError(t, err)
	assert.Empty(t, found)

	found, err = repo.FindOverlapping(ctx, 5, at(10, 30), at(11, 30), []domain.ReservationStatus{})
	require.NoError(t, err)
	assert.Len(t, found, 1)
}

func TestReservations_UpdateStatusConditional(t *testing.T) {
	store := NewStore()
	repo := store.Reservations()
	ctx := context.Background()

	res, err := repo.Insert(ctx, newReservation(at(10, 0), at(11, 0), domain.StatusPending))
	require.NoError(t, err)

	_, err = repo.UpdateStatus(ctx, 1, res.ID, domain.StatusConfirmed, domain.StatusCompleted, nil)
	assert.ErrorIs(t, err, reservation.ErrStatusChanged)

	_, err = repo.UpdateStatus(ctx, 2, res.ID, domain.StatusPending, domain.StatusConfirmed, nil)
	assert.ErrorIs(t, err, reservation.ErrReservationNotFound)

	got, err := repo.GetByID(ctx, 1, res.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.StatusPending, got.Status)
}

func TestReservations_ListEndedBefore(t *testing.T) {
	store := NewStore()
	repo := store.Reservations()
	ctx := context.Background()

	for h := 8; h < 12; h++ {
		_, err := repo.Insert(ctx, newReservation(at(h, 0), at(h+1, 0), domain.StatusConfirmed))
		require.NoError(t, err)
	}

	list, err := repo.ListEndedBefore(ctx, domain.StatusConfirmed, at(11, 0), 2)
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, at(9, 0), list[0].EndAt)
	assert.Equal(t, at(10, 0), list[1].EndAt)
}

func TestTxManager_SerializesClosures(t *testing.T) {
	store := NewStore()
	tx := store.TxManager()

	var (
		mu      sync.Mutex
		running int
		maxSeen int
		wg      sync.WaitGroup
	)
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_ = tx.Do(context.Background(), func(ctx context.Context) error {
				mu.Lock()
				running++
				if running > maxSeen {
					maxSeen = running
				}
				mu.Unlock()

				time.Sleep(time.Millisecond)

				mu.Lock()
				running--
				mu.Unlock()
				return nil
			})
		}()
	}
	wg.Wait()

	assert.Equal(t, 1, maxSeen)
}

func TestTxManager_Nested(t *testing.T) {
	tx := NewStore().TxManager()

	err := tx.Do(context.Background(), func(ctx context.Context) error {
		return tx.Do(ctx, func(context.Context) error { return nil })
	})
	assert.NoError(t, err)
}
