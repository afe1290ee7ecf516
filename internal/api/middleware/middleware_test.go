package middleware

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-FieldBookingService/pkg/logger"
)

func TestAuth(t *testing.T) {
	tests := []struct {
		name       string
		userID     string
		tenantID   string
		wantStatus int
	}{
		{"ok", "42", "1", http.StatusOK},
		{"missing user", "", "1", http.StatusUnauthorized},
		{"missing tenant", "42", "", http.StatusUnauthorized},
		{"not a number", "abc", "1", http.StatusUnauthorized},
		{"zero tenant", "42", "0", http.StatusUnauthorized},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var gotUser, gotTenant int64
			h := Auth(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				gotUser, _ = GetUserID(r.Context())
				gotTenant, _ = GetTenantID(r.Context())
			}))

			req := httptest.NewRequest(http.MethodGet, "/", nil)
			req.Header.Set(HeaderUserID, tt.userID)
			req.Header.Set(HeaderTenantID, tt.tenantID)
			rec := httptest.NewRecorder()
			h.ServeHTTP(rec, req)

			assert.Equal(t, tt.wantStatus, rec.Code)
			if tt.wantStatus == http.StatusOK {
				assert.Equal(t, int64(42), gotUser)
				assert.Equal(t, int64(1), gotTenant)
			}
		})
	}
}

func TestRequestID(t *testing.T) {
	var seen string
	h := RequestID(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		seen = GetRequestID(r.Context())
	}))

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))
	_, err := uuid.Parse(seen)
	require.NoError(t, err)
	assert.Equal(t, seen, rec.Header().Get(HeaderRequestID))

	given := uuid.NewString()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set(HeaderRequestID, given)
	rec = httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	assert.Equal(t, given, seen)
}

type recordedRequest struct {
	method, route string
	status        int
}

type fakeHTTPMetrics struct {
	calls []recordedRequest
}

func (f *fakeHTTPMetrics) RecordHTTPRequest(method, route string, status int, _ time.Duration) {
	f.calls = append(f.calls, recordedRequest{method, route, status})
}

func TestMetricsMiddleware_UsesRouteTemplate(t *testing.T) {
	m := &fakeHTTPMetrics{}
	r := mux.NewRouter()
	r.Use(MetricsMiddleware(m))
	r.HandleFunc("/fields/{fieldId}/slots", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTeapot)
	})

	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/fields/5/slots", nil))

	require.Len(t, m.calls, 1)
	assert.Equal(t, recordedRequest{http.MethodGet, "/fields/{fieldId}/slots", http.StatusTeapot}, m.calls[0])
}

type fakeAuthorizer struct {
	allowed  bool
	err      error
	action   string
	resource string
}

func (f *fakeAuthorizer) IsAuthorized(_ context.Context, _, _ int64, action, resource string) (bool, error) {
	f.action, f.resource = action, resource
	return f.allowed, f.err
}

func TestRequireCapability(t *testing.T) {
	tests := []struct {
		name       string
		authorizer *fakeAuthorizer
		wantStatus int
	}{
		{"allowed", &fakeAuthorizer{allowed: true}, http.StatusOK},
		{"denied", &fakeAuthorizer{}, http.StatusForbidden},
		{"authorizer down", &fakeAuthorizer{err: errors.New("timeout")}, http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := mux.NewRouter()
			r.Handle("/fields/{fieldId}/schedules/{weekday}",
				RequireCapability(tt.authorizer, ActionScheduleManage, logger.NewNop())(
					http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {})))

			req := httptest.NewRequest(http.MethodPut, "/fields/5/schedules/MONDAY", nil)
			req = req.WithContext(WithIdentity(req.Context(), 42, 1))
			rec := httptest.NewRecorder()
			r.ServeHTTP(rec, req)

			assert.Equal(t, tt.wantStatus, rec.Code)
			assert.Equal(t, ActionScheduleManage, tt.authorizer.action)
			assert.Equal(t, "field:5", tt.authorizer.resource)
		})
	}
}

func TestRequireCapability_NoIdentity(t *testing.T) {
	h := RequireCapability(&fakeAuthorizer{allowed: true}, ActionReservationManage, logger.NewNop())(
		http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodPatch, "/reservations/1/confirm", nil))
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

type capturingLogger struct {
	lines []string
}

func (l *capturingLogger) Info(format string, v ...interface{}) {
	l.lines = append(l.lines, fmt.Sprintf(format, v...))
}

func (l *capturingLogger) Warn(format string, v ...interface{}) {
	l.lines = append(l.lines, fmt.Sprintf(format, v...))
}

func (l *capturingLogger) Error(format string, v ...interface{}) {
	l.lines = append(l.lines, fmt.Sprintf(format, v...))
}

func TestRequireCapability_LogsRequestID(t *testing.T) {
	log := &capturingLogger{}
	r := mux.NewRouter()
	r.Use(RequestID)
	r.Handle("/reservations/{reservationId}/cancel",
		RequireCapability(&fakeAuthorizer{err: errors.New("timeout")}, ActionReservationManage, log)(
			http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {})))

	requestID := uuid.NewString()
	req := httptest.NewRequest(http.MethodPatch, "/reservations/7/cancel", nil)
	req.Header.Set(HeaderRequestID, requestID)
	req = req.WithContext(WithIdentity(req.Context(), 42, 1))
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	require.Len(t, log.lines, 1)
	assert.Contains(t, log.lines[0], "request_id="+requestID)
}
