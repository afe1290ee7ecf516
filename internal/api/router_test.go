package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-FieldBookingService/internal/api/handlers"
	"github.com/m04kA/SMC-FieldBookingService/internal/api/middleware"
	"github.com/m04kA/SMC-FieldBookingService/internal/domain"
	"github.com/m04kA/SMC-FieldBookingService/internal/infra/storage/memory"
	"github.com/m04kA/SMC-FieldBookingService/internal/integrations/accessservice"
	reservationsService "github.com/m04kA/SMC-FieldBookingService/internal/service/reservations"
	schedulesService "github.com/m04kA/SMC-FieldBookingService/internal/service/schedules"
	computeSlotsUC "github.com/m04kA/SMC-FieldBookingService/internal/usecase/compute_slots"
	createReservationUC "github.com/m04kA/SMC-FieldBookingService/internal/usecase/create_reservation"
	"github.com/m04kA/SMC-FieldBookingService/pkg/logger"
	"github.com/m04kA/SMC-FieldBookingService/pkg/metrics"
)

type denyAll struct{}

func (denyAll) IsAuthorized(context.Context, int64, int64, string, string) (bool, error) {
	return false, nil
}

func newTestRouter(t *testing.T, authorizer middleware.Authorizer) (http.Handler, *metrics.Metrics) {
	t.Helper()

	store := memory.NewStore()
	store.AddField(domain.Field{ID: 5, TenantID: 1, Name: "Field A", IsAvailable: true})

	log := logger.NewNop()
	m := metrics.New("field_booking_test")

	return NewRouter(Deps{
		ComputeSlots:      computeSlotsUC.NewUseCase(store.Fields(), store.Schedules(), store.Reservations(), 31, log),
		CreateReservation: createReservationUC.NewUseCase(store.Fields(), store.Schedules(), store.Reservations(), store.TxManager(), 0, m, log),
		Schedules:         schedulesService.NewService(store.Fields(), store.Schedules(), log),
		Reservations:      reservationsService.NewService(store.Reservations(), store.Fields(), m, log),
		Authorizer:        authorizer,
		Metrics:           m,
		MetricsPath:       "/metrics",
		Logger:            log,
	}), m
}

func do(t *testing.T, h http.Handler, method, path string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()

	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("X-User-ID", "42")
	req.Header.Set("X-Tenant-ID", "1")

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func errorCode(t *testing.T, rec *httptest.ResponseRecorder) string {
	t.Helper()
	var body handlers.ErrorBody
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	return body.Error.Code
}

func TestRouter_ReservationFlow(t *testing.T) {
	h, _ := newTestRouter(t, accessservice.AllowAll{})

	rec := do(t, h, http.MethodPut, "/api/v1/fields/5/schedules/monday",
		map[string]string{"openTime": "08:00", "closeTime": "22:00"})
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	reservation := map[string]interface{}{
		"startAt": "2025-03-03T10:00:00Z",
		"endAt":   "2025-03-03T11:00:00Z",
		"amount":  1500,
		"userId":  42,
	}
	rec = do(t, h, http.MethodPost, "/api/v1/fields/5/reservations", reservation)
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())

	var created struct {
		ID     int64  `json:"id"`
		Status string `json:"status"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &created))
	assert.Equal(t, "PENDING", created.Status)

	// тот же интервал второй раз
	rec = do(t, h, http.MethodPost, "/api/v1/fields/5/reservations", reservation)
	assert.Equal(t, http.StatusConflict, rec.Code)
	assert.Equal(t, handlers.CodeOverlap, errorCode(t, rec))

	// за пределами окна
	rec = do(t, h, http.MethodPost, "/api/v1/fields/5/reservations", map[string]interface{}{
		"startAt": "2025-03-03T21:00:00Z",
		"endAt":   "2025-03-03T23:00:00Z",
		"guest":   map[string]string{"name": "Ivan", "phone": "+79990000000"},
	})
	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
	assert.Equal(t, handlers.CodeOutsideSchedule, errorCode(t, rec))

	// сетка показывает занятые слоты
	rec = do(t, h, http.MethodGet, "/api/v1/fields/5/slots?from=2025-03-03", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	var grid computeSlotsUC.Response
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &grid))
	require.Len(t, grid.Days, 1)
	states := map[string]string{}
	for _, s := range grid.Days[0].Slots {
		states[s.StartTime] = s.State
	}
	assert.Equal(t, "CLOSED", states["07:30"])
	assert.Equal(t, "OPEN", states["09:30"])
	assert.Equal(t, "BOOKED", states["10:00"])
	assert.Equal(t, "BOOKED", states["10:30"])
	assert.Equal(t, "OPEN", states["11:00"])

	// жизненный цикл
	path := fmt.Sprintf("/api/v1/reservations/%d", created.ID)
	rec = do(t, h, http.MethodPatch, path+"/complete", nil)
	assert.Equal(t, http.StatusConflict, rec.Code)
	assert.Equal(t, handlers.CodeIllegalTransition, errorCode(t, rec))

	rec = do(t, h, http.MethodPatch, path+"/confirm", nil)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	rec = do(t, h, http.MethodPatch, path+"/cancel", map[string]string{"reason": "дождь"})
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	rec = do(t, h, http.MethodGet, path, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	var got struct {
		Status             string `json:"status"`
		CancellationReason string `json:"cancellationReason"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &got))
	assert.Equal(t, "CANCELLED", got.Status)
	assert.Equal(t, "дождь", got.CancellationReason)

	// отменённая бронь освобождает интервал
	rec = do(t, h, http.MethodPost, "/api/v1/fields/5/reservations", reservation)
	assert.Equal(t, http.StatusCreated, rec.Code)

	rec = do(t, h, http.MethodGet, "/api/v1/fields/5/reservations?includeInactive=true", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	var list struct {
		Total int `json:"total"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &list))
	assert.Equal(t, 2, list.Total)
}

func TestRouter_Errors(t *testing.T) {
	h, _ := newTestRouter(t, accessservice.AllowAll{})

	tests := []struct {
		name       string
		method     string
		path       string
		body       interface{}
		wantStatus int
	}{
		{"unknown field slots", http.MethodGet, "/api/v1/fields/99/slots?from=2025-03-03", nil, http.StatusNotFound},
		{"bad date", http.MethodGet, "/api/v1/fields/5/slots?from=03.03.2025", nil, http.StatusBadRequest},
		{"reversed range", http.MethodGet, "/api/v1/fields/5/slots?from=2025-03-05&to=2025-03-03", nil, http.StatusBadRequest},
		{"bad weekday", http.MethodPut, "/api/v1/fields/5/schedules/someday", map[string]string{"openTime": "08:00", "closeTime": "22:00"}, http.StatusBadRequest},
		{"inverted window", http.MethodPut, "/api/v1/fields/5/schedules/MONDAY", map[string]string{"openTime": "22:00", "closeTime": "08:00"}, http.StatusBadRequest},
		{"remove absent window", http.MethodDelete, "/api/v1/fields/5/schedules/SUNDAY", nil, http.StatusNoContent},
		{"unknown reservation", http.MethodGet, "/api/v1/reservations/77", nil, http.StatusNotFound},
		{"bad reservation id", http.MethodGet, "/api/v1/reservations/abc", nil, http.StatusBadRequest},
		{"no holder", http.MethodPost, "/api/v1/fields/5/reservations", map[string]string{"startAt": "2025-03-03T10:00:00Z", "endAt": "2025-03-03T11:00:00Z"}, http.StatusBadRequest},
		{"unknown action", http.MethodPatch, "/api/v1/reservations/1/archive", nil, http.StatusNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := do(t, h, tt.method, tt.path, tt.body)
			assert.Equal(t, tt.wantStatus, rec.Code, rec.Body.String())
		})
	}
}

func TestRouter_RequiresIdentity(t *testing.T) {
	h, _ := newTestRouter(t, accessservice.AllowAll{})

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/v1/fields/5/slots?from=2025-03-03", nil))
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestRouter_DeniedMutations(t *testing.T) {
	h, _ := newTestRouter(t, denyAll{})

	rec := do(t, h, http.MethodPut, "/api/v1/fields/5/schedules/MONDAY",
		map[string]string{"openTime": "08:00", "closeTime": "22:00"})
	assert.Equal(t, http.StatusForbidden, rec.Code)

	rec = do(t, h, http.MethodPost, "/api/v1/fields/5/reservations", map[string]interface{}{
		"startAt": "2025-03-03T10:00:00Z", "endAt": "2025-03-03T11:00:00Z", "userId": 42,
	})
	assert.Equal(t, http.StatusForbidden, rec.Code)

	// чтение не требует прав
	rec = do(t, h, http.MethodGet, "/api/v1/fields/5/schedules", nil)
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestRouter_MetricsEndpoint(t *testing.T) {
	h, _ := newTestRouter(t, accessservice.AllowAll{})

	do(t, h, http.MethodGet, "/api/v1/fields/5/schedules", nil)

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "/api/v1/fields/{fieldId}/schedules")
}
