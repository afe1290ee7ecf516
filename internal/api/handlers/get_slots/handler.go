package get_slots

import (
	"errors"
	"net/http"

	"github.com/m04kA/SMC-FieldBookingService/internal/api/handlers"
	"github.com/m04kA/SMC-FieldBookingService/internal/api/middleware"
	computeSlots "github.com/m04kA/SMC-FieldBookingService/internal/usecase/compute_slots"
)

const (
	msgInvalidFieldID   = "некорректный ID площадки"
	msgMissingTenantID  = "отсутствует ID тенанта"
	msgMissingFrom      = "параметр from обязателен"
	msgInvalidDate      = "некорректный формат даты, ожидается YYYY-MM-DD"
	msgInvalidDateRange = "некорректный диапазон дат"
	msgFieldNotFound    = "площадка не найдена"
)

type Handler struct {
	useCase ComputeSlotsUseCase
	logger  Logger
}

func NewHandler(useCase ComputeSlotsUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle GET /api/v1/fields/{fieldId}/slots
// Query params: from (required, YYYY-MM-DD), to (optional, включительно)
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	fieldID, err := handlers.PathID(r, "fieldId")
	if err != nil {
		h.logger.Warn("GET /fields/{id}/slots - Invalid field ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidFieldID)
		return
	}

	tenantID, ok := middleware.GetTenantID(r.Context())
	if !ok {
		h.logger.Warn("GET /fields/{id}/slots - Missing tenant ID")
		handlers.RespondUnauthorized(w, msgMissingTenantID)
		return
	}

	fromStr := r.URL.Query().Get("from")
	if fromStr == "" {
		h.logger.Warn("GET /fields/{id}/slots - Missing from")
		handlers.RespondBadRequest(w, msgMissingFrom)
		return
	}

	useCaseReq, err := ToUseCaseRequest(tenantID, fieldID, fromStr, r.URL.Query().Get("to"))
	if err != nil {
		h.logger.Warn("GET /fields/{id}/slots - Invalid date format: %v", err)
		handlers.RespondBadRequest(w, msgInvalidDate)
		return
	}

	result, err := h.useCase.Execute(r.Context(), useCaseReq)
	if err != nil {
		switch {
		case errors.Is(err, computeSlots.ErrFieldNotFound):
			h.logger.Warn("GET /fields/{id}/slots - Field not found: field_id=%d", fieldID)
			handlers.RespondNotFound(w, msgFieldNotFound)

		case errors.Is(err, computeSlots.ErrInvalidDateRange), errors.Is(err, computeSlots.ErrInvalidInput):
			h.logger.Warn("GET /fields/{id}/slots - Invalid range: field_id=%d: %v", fieldID, err)
			handlers.RespondBadRequest(w, msgInvalidDateRange)

		default:
			h.logger.Error("GET /fields/{id}/slots - Failed to compute slots: field_id=%d, request_id=%s, error=%v", fieldID, middleware.GetRequestID(r.Context()), err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("GET /fields/{id}/slots - Slots computed: field_id=%d, days=%d", fieldID, len(result.Days))
	handlers.RespondJSON(w, http.StatusOK, result)
}
