package set_schedule

import (
	"errors"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/m04kA/SMC-FieldBookingService/internal/api/handlers"
	"github.com/m04kA/SMC-FieldBookingService/internal/api/middleware"
	"github.com/m04kA/SMC-FieldBookingService/internal/service/schedules"
	"github.com/m04kA/SMC-FieldBookingService/internal/service/schedules/models"
)

const (
	msgInvalidFieldID     = "некорректный ID площадки"
	msgMissingIdentity    = "отсутствует ID пользователя или тенанта"
	msgInvalidRequestBody = "некорректное тело запроса"
	msgInvalidInput       = "некорректный день недели или формат времени, ожидается HH:MM"
	msgInvalidRange       = "время открытия должно быть раньше времени закрытия"
	msgFieldNotFound      = "площадка не найдена"
)

type Handler struct {
	service ScheduleService
	logger  Logger
}

func NewHandler(service ScheduleService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle PUT /api/v1/fields/{fieldId}/schedules/{weekday}
// Повторная установка заменяет окно целиком.
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	fieldID, err := handlers.PathID(r, "fieldId")
	if err != nil {
		h.logger.Warn("PUT /fields/{id}/schedules/{weekday} - Invalid field ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidFieldID)
		return
	}

	userID, okUser := middleware.GetUserID(r.Context())
	tenantID, okTenant := middleware.GetTenantID(r.Context())
	if !okUser || !okTenant {
		handlers.RespondUnauthorized(w, msgMissingIdentity)
		return
	}

	var req models.SetScheduleRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("PUT /fields/{id}/schedules/{weekday} - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}
	req.TenantID = tenantID
	req.ActorID = userID
	req.FieldID = fieldID
	req.Weekday = mux.Vars(r)["weekday"]

	result, err := h.service.SetSchedule(r.Context(), &req)
	if err != nil {
		switch {
		case errors.Is(err, schedules.ErrInvalidRange):
			h.logger.Warn("PUT /fields/{id}/schedules/{weekday} - Invalid range: field_id=%d, %s-%s",
				fieldID, req.OpenTime, req.CloseTime)
			handlers.RespondBadRequest(w, msgInvalidRange)

		case errors.Is(err, schedules.ErrInvalidInput):
			h.logger.Warn("PUT /fields/{id}/schedules/{weekday} - Invalid input: %v", err)
			handlers.RespondBadRequest(w, msgInvalidInput)

		case errors.Is(err, schedules.ErrFieldNotFound):
			h.logger.Warn("PUT /fields/{id}/schedules/{weekday} - Field not found: field_id=%d", fieldID)
			handlers.RespondNotFound(w, msgFieldNotFound)

		default:
			h.logger.Error("PUT /fields/{id}/schedules/{weekday} - Failed to set schedule: field_id=%d, request_id=%s, error=%v", fieldID, middleware.GetRequestID(r.Context()), err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("PUT /fields/{id}/schedules/{weekday} - Schedule set: field_id=%d, weekday=%s, actor=%d",
		fieldID, result.Weekday, userID)
	handlers.RespondJSON(w, http.StatusOK, result)
}
