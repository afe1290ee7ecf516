package get_schedules

import (
	"errors"
	"net/http"

	"github.com/m04kA/SMC-FieldBookingService/internal/api/handlers"
	"github.com/m04kA/SMC-FieldBookingService/internal/api/middleware"
	"github.com/m04kA/SMC-FieldBookingService/internal/service/schedules"
)

const (
	msgInvalidFieldID  = "некорректный ID площадки"
	msgMissingTenantID = "отсутствует ID тенанта"
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

// Handle GET /api/v1/fields/{fieldId}/schedules
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	fieldID, err := handlers.PathID(r, "fieldId")
	if err != nil {
		h.logger.Warn("GET /fields/{id}/schedules - Invalid field ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidFieldID)
		return
	}

	tenantID, ok := middleware.GetTenantID(r.Context())
	if !ok {
		handlers.RespondUnauthorized(w, msgMissingTenantID)
		return
	}

	result, err := h.service.GetSchedules(r.Context(), tenantID, fieldID)
	if err != nil {
		switch {
		case errors.Is(err, schedules.ErrFieldNotFound):
			h.logger.Warn("GET /fields/{id}/schedules - Field not found: field_id=%d", fieldID)
			handlers.RespondNotFound(w, msgFieldNotFound)

		default:
			h.logger.Error("GET /fields/{id}/schedules - Failed to get schedules: field_id=%d, request_id=%s, error=%v", fieldID, middleware.GetRequestID(r.Context()), err)
			handlers.RespondInternalError(w)
		}
		return
	}

	handlers.RespondJSON(w, http.StatusOK, result)
}
