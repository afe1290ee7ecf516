package create_reservation

import (
	"errors"
	"net/http"

	"github.com/m04kA/SMC-FieldBookingService/internal/api/handlers"
	"github.com/m04kA/SMC-FieldBookingService/internal/api/middleware"
	createReservation "github.com/m04kA/SMC-FieldBookingService/internal/usecase/create_reservation"
)

const (
	msgInvalidFieldID     = "некорректный ID площадки"
	msgMissingIdentity    = "отсутствует ID пользователя или тенанта"
	msgInvalidRequestBody = "некорректное тело запроса"
	msgInvalidTime        = "некорректный формат времени, ожидается RFC3339"
	msgInvalidTimeRange   = "конец брони должен быть позже начала"
	msgInvalidInput       = "некорректные данные брони"
	msgDurationExceeded   = "бронь длиннее допустимого"
	msgFieldNotFound      = "площадка не найдена"
	msgFieldUnavailable   = "площадка недоступна для бронирования"
	msgOutsideSchedule    = "интервал выходит за часы работы площадки"
	msgOverlap            = "интервал пересекается с существующей бронью"
)

type Handler struct {
	useCase CreateReservationUseCase
	logger  Logger
}

func NewHandler(useCase CreateReservationUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle POST /api/v1/fields/{fieldId}/reservations
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	fieldID, err := handlers.PathID(r, "fieldId")
	if err != nil {
		h.logger.Warn("POST /fields/{id}/reservations - Invalid field ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidFieldID)
		return
	}

	userID, okUser := middleware.GetUserID(r.Context())
	tenantID, okTenant := middleware.GetTenantID(r.Context())
	if !okUser || !okTenant {
		handlers.RespondUnauthorized(w, msgMissingIdentity)
		return
	}

	var req CreateReservationRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /fields/{id}/reservations - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	useCaseReq, err := req.ToUseCaseRequest(tenantID, userID, fieldID)
	if err != nil {
		h.logger.Warn("POST /fields/{id}/reservations - Failed to parse request: %v", err)
		handlers.RespondBadRequest(w, msgInvalidTime)
		return
	}

	result, err := h.useCase.Execute(r.Context(), useCaseReq)
	if err != nil {
		switch {
		case errors.Is(err, createReservation.ErrOverlap):
			h.logger.Warn("POST /fields/{id}/reservations - Overlap: field_id=%d, actor=%d", fieldID, userID)
			handlers.RespondConflict(w, handlers.CodeOverlap, msgOverlap)

		case errors.Is(err, createReservation.ErrOutsideSchedule):
			h.logger.Warn("POST /fields/{id}/reservations - Outside schedule: field_id=%d, actor=%d", fieldID, userID)
			handlers.RespondUnprocessable(w, handlers.CodeOutsideSchedule, msgOutsideSchedule)

		case errors.Is(err, createReservation.ErrInvalidField):
			h.logger.Warn("POST /fields/{id}/reservations - Field unavailable: field_id=%d", fieldID)
			handlers.RespondUnprocessable(w, handlers.CodeInvalidField, msgFieldUnavailable)

		case errors.Is(err, createReservation.ErrFieldNotFound):
			h.logger.Warn("POST /fields/{id}/reservations - Field not found: field_id=%d", fieldID)
			handlers.RespondNotFound(w, msgFieldNotFound)

		case errors.Is(err, createReservation.ErrInvalidTimeRange):
			handlers.RespondBadRequest(w, msgInvalidTimeRange)

		case errors.Is(err, createReservation.ErrDurationExceeded):
			handlers.RespondBadRequest(w, msgDurationExceeded)

		case errors.Is(err, createReservation.ErrInvalidInput):
			h.logger.Warn("POST /fields/{id}/reservations - Invalid input: %v", err)
			handlers.RespondBadRequest(w, msgInvalidInput)

		default:
			h.logger.Error("POST /fields/{id}/reservations - Failed to create reservation: field_id=%d, actor=%d, request_id=%s, error=%v",
				fieldID, userID, middleware.GetRequestID(r.Context()), err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /fields/{id}/reservations - Reservation created: reservation_id=%d, field_id=%d, actor=%d",
		result.ID, fieldID, userID)
	handlers.RespondJSON(w, http.StatusCreated, FromUseCaseResponse(result))
}
