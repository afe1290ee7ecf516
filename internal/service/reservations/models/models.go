package models

import (
	"time"

	"github.com/m04kA/SMC-FieldBookingService/internal/domain"
)

// Request модели

// ChangeStatusRequest запрос на смену статуса брони
type ChangeStatusRequest struct {
	TenantID      int64   `json:"-"`
	ActorID       int64   `json:"-"`
	ReservationID int64   `json:"-"`
	Status        string  `json:"status"`
	Reason        *string `json:"reason,omitempty"` // только для отмены
}

// ListReservationsRequest запрос на список броней площадки
type ListReservationsRequest struct {
	TenantID        int64
	FieldID         int64
	From            *time.Time
	To              *time.Time
	Status          *string
	IncludeInactive bool
}

// Response модели

// GuestResponse контакты гостя
type GuestResponse struct {
	Name  string `json:"name"`
	Email string `json:"email,omitempty"`
	Phone string `json:"phone,omitempty"`
}

// ReservationResponse ответ с данными брони
type ReservationResponse struct {
	ID                 int64          `json:"id"`
	FieldID            int64          `json:"fieldId"`
	StartAt            time.Time      `json:"startAt"`
	EndAt              time.Time      `json:"endAt"`
	Status             string         `json:"status"`
	Amount             float64        `json:"amount"`
	UserID             *int64         `json:"userId,omitempty"`
	Guest              *GuestResponse `json:"guest,omitempty"`
	CancellationReason *string        `json:"cancellationReason,omitempty"`
	CancelledAt        *time.Time     `json:"cancelledAt,omitempty"`
	CreatedAt          time.Time      `json:"createdAt"`
	UpdatedAt          time.Time      `json:"updatedAt"`
}

// ReservationListResponse список броней
type ReservationListResponse struct {
	Reservations []ReservationResponse `json:"reservations"`
	Total        int                   `json:"total"`
}

// FromDomainReservation конвертирует domain.Reservation в ответ
func FromDomainReservation(r *domain.Reservation) *ReservationResponse {
	resp := &ReservationResponse{
		ID:                 r.ID,
		FieldID:            r.FieldID,
		StartAt:            r.StartAt,
		EndAt:              r.EndAt,
		Status:             string(r.Status),
		Amount:             r.Amount,
		UserID:             r.Holder.UserID,
		CancellationReason: r.CancellationReason,
		CancelledAt:        r.CancelledAt,
		CreatedAt:          r.CreatedAt,
		UpdatedAt:          r.UpdatedAt,
	}
	if r.Holder.Guest != nil {
		resp.Guest = &GuestResponse{
			Name:  r.Holder.Guest.Name,
			Email: r.Holder.Guest.Email,
			Phone: r.Holder.Guest.Phone,
		}
	}
	return resp
}

func FromDomainReservationList(list []*domain.Reservation) *ReservationListResponse {
	out := &ReservationListResponse{
		Reservations: make([]ReservationResponse, 0, len(list)),
		Total:        len(list),
	}
	for _, r := range list {
		out.Reservations = append(out.Reservations, *FromDomainReservation(r))
	}
	return out
}
