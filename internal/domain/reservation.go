package domain

import (
	"fmt"
	"strings"
	"time"
)

// ReservationStatus represents the status of a reservation
type ReservationStatus string

const (
	StatusPending   ReservationStatus = "PENDING"
	StatusConfirmed ReservationStatus = "CONFIRMED"
	StatusCancelled ReservationStatus = "CANCELLED"
	StatusCompleted ReservationStatus = "COMPLETED"
	StatusNoShow    ReservationStatus = "NO_SHOW"
)

// transitions допустимые переходы. Статусы без записи терминальные.
var transitions = map[ReservationStatus][]ReservationStatus{
	StatusPending:   {StatusConfirmed, StatusCancelled},
	StatusConfirmed: {StatusCancelled, StatusCompleted, StatusNoShow},
}

// ParseReservationStatus accepts any letter case
func ParseReservationStatus(s string) (ReservationStatus, error) {
	st := ReservationStatus(strings.ToUpper(strings.TrimSpace(s)))
	if !st.IsValid() {
		return "", fmt.Errorf("%w: %q", ErrInvalidStatus, s)
	}
	return st, nil
}

func (s ReservationStatus) IsValid() bool {
	switch s {
	case StatusPending, StatusConfirmed, StatusCancelled, StatusCompleted, StatusNoShow:
		return true
	}
	return false
}

// IsActive returns true if the reservation occupies its interval
func (s ReservationStatus) IsActive() bool {
	return s == StatusPending || s == StatusConfirmed || s == StatusCompleted
}

// IsTerminal returns true if no transition out of the status exists
func (s ReservationStatus) IsTerminal() bool {
	return len(transitions[s]) == 0
}

// CanTransition checks the transition table
func CanTransition(from, to ReservationStatus) bool {
	for _, next := range transitions[from] {
		if next == to {
			return true
		}
	}
	return false
}

// GuestContact контакты незарегистрированного клиента
type GuestContact struct {
	Name  string
	Email string
	Phone string
}

// Holder владелец брони: либо пользователь, либо гость, но не оба сразу
type Holder struct {
	UserID *int64
	Guest  *GuestContact
}

func (h Holder) Validate() error {
	switch {
	case h.UserID != nil && h.Guest != nil:
		return fmt.Errorf("%w: both user and guest set", ErrInvalidHolder)
	case h.UserID != nil:
		if *h.UserID <= 0 {
			return fmt.Errorf("%w: user id must be positive", ErrInvalidHolder)
		}
		return nil
	case h.Guest != nil:
		name := strings.TrimSpace(h.Guest.Name)
		if name == "" || len(name) > MaxGuestNameLength {
			return fmt.Errorf("%w: guest name is required", ErrInvalidHolder)
		}
		if strings.TrimSpace(h.Guest.Email) == "" && strings.TrimSpace(h.Guest.Phone) == "" {
			return fmt.Errorf("%w: guest email or phone is required", ErrInvalidHolder)
		}
		if len(h.Guest.Email) > MaxGuestContactLength || len(h.Guest.Phone) > MaxGuestContactLength {
			return fmt.Errorf("%w: guest contact too long", ErrInvalidHolder)
		}
		return nil
	default:
		return fmt.Errorf("%w: holder is empty", ErrInvalidHolder)
	}
}

// DisplayLabel минимальная подпись для занятого слота, без контактов
func (h Holder) DisplayLabel() string {
	switch {
	case h.UserID != nil:
		return fmt.Sprintf("user #%d", *h.UserID)
	case h.Guest != nil:
		return strings.TrimSpace(h.Guest.Name)
	default:
		return ""
	}
}

// Reservation занятие площадки на интервал [StartAt, EndAt)
type Reservation struct {
	ID       int64
	TenantID int64
	FieldID  int64
	StartAt  time.Time
	EndAt    time.Time
	Status   ReservationStatus
	Amount   float64
	Holder   Holder

	CancellationReason *string
	CancelledAt        *time.Time

	CreatedAt time.Time
	UpdatedAt time.Time
}

// Overlaps half-open interval intersection
func (r *Reservation) Overlaps(start, end time.Time) bool {
	return r.StartAt.Before(end) && r.EndAt.After(start)
}

// IsActive returns true if the reservation occupies its interval
func (r *Reservation) IsActive() bool {
	return r.Status.IsActive()
}

// TransitionTo меняет статус, если переход разрешён. При ошибке состояние не меняется.
func (r *Reservation) TransitionTo(to ReservationStatus, at time.Time) error {
	if !CanTransition(r.Status, to) {
		return fmt.Errorf("%w: %s -> %s", ErrIllegalTransition, r.Status, to)
	}
	r.Status = to
	r.UpdatedAt = at
	if to == StatusCancelled {
		cancelledAt := at
		r.CancelledAt = &cancelledAt
	}
	return nil
}

// ReservationsFilter фильтр для списка бронирований площадки
type ReservationsFilter struct {
	TenantID        int64              // Обязательный параметр
	FieldID         int64              // Обязательный параметр
	From            *time.Time         // Бронирования, заканчивающиеся после From
	To              *time.Time         // Бронирования, начинающиеся до To
	Status          *ReservationStatus // Фильтр по статусу (опционально)
	IncludeInactive bool               // Включать ли отменённые и no-show
}
