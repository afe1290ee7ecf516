package change_status

import (
	"errors"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/m04kA/SMC-FieldBookingService/internal/api/handlers"
	"github.com/m04kA/SMC-FieldBookingService/internal/api/middleware"
	"github.com/m04kA/SMC-FieldBookingService/internal/domain"
	"github.com/m04kA/SMC-FieldBookingService/internal/service/reservations"
	"github.com/m04kA/SMC-FieldBookingService/internal/service/reservations/models"
)

const (
	msgInvalidReservationID = "некорректный ID брони"
	msgUnknownAction        = "неизвестное действие над бронью"
	msgMissingIdentity      = "отсутствует ID пользователя или тенанта"
	msgInvalidRequestBody   = "некорректное тело запроса"
	msgInvalidInput         = "некорректные данные запроса"
	msgNotFound             = "бронь не найдена"
	msgIllegalTransition    = "недопустимая смена статуса брони"
)

type Handler struct {
	service ReservationService
	logger  Logger
}

func NewHandler(service ReservationService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle PATCH /api/v1/reservations/{reservationId}/{action}
// action: confirm | cancel | complete | no-show. Тело опционально.
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	reservationID, err := handlers.PathID(r, "reservationId")
	if err != nil {
		h.logger.Warn("PATCH /reservations/{id}/{action} - Invalid reservation ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidReservationID)
		return
	}

	action := mux.Vars(r)["action"]
	status, ok := actionStatuses[action]
	if !ok {
		handlers.RespondNotFound(w, msgUnknownAction)
		return
	}

	userID, okUser := middleware.GetUserID(r.Context())
	tenantID, okTenant := middleware.GetTenantID(r.Context())
	if !okUser || !okTenant {
		handlers.RespondUnauthorized(w, msgMissingIdentity)
		return
	}

	var body ChangeStatusBody
	if r.ContentLength != 0 {
		if err := handlers.DecodeJSON(r, &body); err != nil {
			h.logger.Warn("PATCH /reservations/{id}/%s - Invalid request body: %v", action, err)
			handlers.RespondBadRequest(w, msgInvalidRequestBody)
			return
		}
	}

	req := &models.ChangeStatusRequest{
		TenantID:      tenantID,
		ActorID:       userID,
		ReservationID: reservationID,
		Status:        string(status),
	}
	if status == domain.StatusCancelled {
		req.Reason = body.Reason
	}

	result, err := h.service.ChangeStatus(r.Context(), req)
	if err != nil {
		switch {
		case errors.Is(err, reservations.ErrReservationNotFound):
			h.logger.Warn("PATCH /reservations/{id}/%s - Reservation not found: reservation_id=%d", action, reservationID)
			handlers.RespondNotFound(w, msgNotFound)

		case errors.Is(err, reservations.ErrIllegalTransition):
			h.logger.Warn("PATCH /reservations/{id}/%s - Illegal transition: reservation_id=%d", action, reservationID)
			handlers.RespondConflict(w, handlers.CodeIllegalTransition, msgIllegalTransition)

		case errors.Is(err, reservations.ErrInvalidInput):
			h.logger.Warn("PATCH /reservations/{id}/%s - Invalid input: %v", action, err)
			handlers.RespondBadRequest(w, msgInvalidInput)

		default:
			h.logger.Error("PATCH /reservations/{id}/%s - Failed to change status: reservation_id=%d, request_id=%s, error=%v",
				action, reservationID, middleware.GetRequestID(r.Context()), err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("PATCH /reservations/{id}/%s - Status changed: reservation_id=%d, status=%s, actor=%d",
		action, reservationID, result.Status, userID)
	handlers.RespondJSON(w, http.StatusOK, result)
}
