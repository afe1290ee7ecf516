package create_reservation

import (
	"time"

	"github.com/m04kA/SMC-FieldBookingService/internal/domain"
	createReservation "github.com/m04kA/SMC-FieldBookingService/internal/usecase/create_reservation"
)

// CreateReservationRequest HTTP request model
// Держатель либо зарегистрированный пользователь (userId), либо гость.
type CreateReservationRequest struct {
	StartAt string        `json:"startAt"` // RFC3339, "2025-03-03T10:00:00+03:00"
	EndAt   string        `json:"endAt"`
	Amount  float64       `json:"amount"`
	UserID  *int64        `json:"userId,omitempty"`
	Guest   *GuestRequest `json:"guest,omitempty"`
}

// GuestRequest контакты гостя без аккаунта
type GuestRequest struct {
	Name  string `json:"name"`
	Email string `json:"email,omitempty"`
	Phone string `json:"phone,omitempty"`
}

// GuestResponse контакты гостя
type GuestResponse struct {
	Name  string `json:"name"`
	Email string `json:"email,omitempty"`
	Phone string `json:"phone,omitempty"`
}

// ReservationResponse HTTP response model
type ReservationResponse struct {
	ID        int64          `json:"id"`
	FieldID   int64          `json:"fieldId"`
	StartAt   string         `json:"startAt"`
	EndAt     string         `json:"endAt"`
	Status    string         `json:"status"`
	Amount    float64        `json:"amount"`
	UserID    *int64         `json:"userId,omitempty"`
	Guest     *GuestResponse `json:"guest,omitempty"`
	CreatedAt string         `json:"createdAt"`
	UpdatedAt string         `json:"updatedAt"`
}

// ToUseCaseRequest конвертирует HTTP запрос в модель use case
func (r *CreateReservationRequest) ToUseCaseRequest(tenantID, actorID, fieldID int64) (*createReservation.Request, error) {
	startAt, err := time.Parse(time.RFC3339, r.StartAt)
	if err != nil {
		return nil, err
	}
	endAt, err := time.Parse(time.RFC3339, r.EndAt)
	if err != nil {
		return nil, err
	}

	holder := domain.Holder{UserID: r.UserID}
	if r.Guest != nil {
		holder.Guest = &domain.GuestContact{
			Name:  r.Guest.Name,
			Email: r.Guest.Email,
			Phone: r.Guest.Phone,
		}
	}

	return &createReservation.Request{
		TenantID: tenantID,
		ActorID:  actorID,
		FieldID:  fieldID,
		StartAt:  startAt,
		EndAt:    endAt,
		Holder:   holder,
		Amount:   r.Amount,
	}, nil
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *createReservation.Response) *ReservationResponse {
	out := &ReservationResponse{
		ID:        resp.ID,
		FieldID:   resp.FieldID,
		StartAt:   resp.StartAt.Format(time.RFC3339),
		EndAt:     resp.EndAt.Format(time.RFC3339),
		Status:    resp.Status,
		Amount:    resp.Amount,
		UserID:    resp.Holder.UserID,
		CreatedAt: resp.CreatedAt.Format(time.RFC3339),
		UpdatedAt: resp.UpdatedAt.Format(time.RFC3339),
	}
	if g := resp.Holder.Guest; g != nil {
		out.Guest = &GuestResponse{Name: g.Name, Email: g.Email, Phone: g.Phone}
	}
	return out
}
