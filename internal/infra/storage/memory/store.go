package memory

import (
	"sync"
	"time"

	"github.com/m04kA/SMC-FieldBookingService/internal/domain"
)

// Store хранилище в памяти процесса для локального запуска и тестов.
// Ошибки совпадают с ошибками Postgres-репозиториев.
type Store struct {
	mu   sync.RWMutex
	txMu sync.Mutex

	fields       map[int64]*domain.Field
	schedules    map[int64]map[domain.Weekday]*domain.WeeklySchedule
	reservations map[int64]*domain.Reservation

	nextScheduleID    int64
	nextReservationID int64

	now func() time.Time
}

func NewStore() *Store {
	return &Store{
		fields:       make(map[int64]*domain.Field),
		schedules:    make(map[int64]map[domain.Weekday]*domain.WeeklySchedule),
		reservations: make(map[int64]*domain.Reservation),
		now:          time.Now,
	}
}

// AddField заводит площадку. Площадки в этом сервисе только читаются, поэтому других способов нет.
func (s *Store) AddField(f domain.Field) *domain.Field {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.now()
	if f.CreatedAt.IsZero() {
		f.CreatedAt = now
	}
	f.UpdatedAt = now
	if f.Timezone == "" {
		f.Timezone = domain.DefaultTimezone
	}
	s.fields[f.ID] = &f

	out := f
	return &out
}

func (s *Store) Fields() *FieldRepository {
	return &FieldRepository{store: s}
}

func (s *Store) Schedules() *ScheduleRepository {
	return &ScheduleRepository{store: s}
}

func (s *Store) Reservations() *ReservationRepository {
	return &ReservationRepository{store: s}
}

func (s *Store) TxManager() *TxManager {
	return &TxManager{store: s}
}
