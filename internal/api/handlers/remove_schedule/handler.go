package remove_schedule

import (
	"errors"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/m04kA/SMC-FieldBookingService/internal/api/handlers"
	"github.com/m04kA/SMC-FieldBookingService/internal/api/middleware"
	"github.com/m04kA/SMC-FieldBookingService/internal/service/schedules"
)

const (
	msgInvalidFieldID  = "некорректный ID площадки"
	msgMissingTenantID = "отсутствует ID тенанта"
	msgInvalidWeekday  = "некорректный день недели"
	msgFieldNotFound   = "площадка не найдена"
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

// Handle DELETE /api/v1/fields/{fieldId}/schedules/{weekday}
// Идемпотентно: удаление отсутствующего окна тоже 204.
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	fieldID, err := handlers.PathID(r, "fieldId")
	if err != nil {
		h.logger.Warn("DELETE /fields/{id}/schedules/{weekday} - Invalid field ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidFieldID)
		return
	}

	tenantID, ok := middleware.GetTenantID(r.Context())
	if !ok {
		handlers.RespondUnauthorized(w, msgMissingTenantID)
		return
	}

	weekday := mux.Vars(r)["weekday"]
	if err := h.service.RemoveSchedule(r.Context(), tenantID, fieldID, weekday); err != nil {
		switch {
		case errors.Is(err, schedules.ErrInvalidInput):
			h.logger.Warn("DELETE /fields/{id}/schedules/{weekday} - Invalid weekday: %q", weekday)
			handlers.RespondBadRequest(w, msgInvalidWeekday)

		case errors.Is(err, schedules.ErrFieldNotFound):
			h.logger.Warn("DELETE /fields/{id}/schedules/{weekday} - Field not found: field_id=%d", fieldID)
			handlers.RespondNotFound(w, msgFieldNotFound)

		default:
			h.logger.Error("DELETE /fields/{id}/schedules/{weekday} - Failed to remove schedule: field_id=%d, request_id=%s, error=%v", fieldID, middleware.GetRequestID(r.Context()), err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("DELETE /fields/{id}/schedules/{weekday} - Schedule removed: field_id=%d, weekday=%s", fieldID, weekday)
	handlers.RespondJSON(w, http.StatusNoContent, nil)
}
