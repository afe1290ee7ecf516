package accessservice

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/m04kA/SMC-FieldBookingService/pkg/logger"
)

func TestClient_IsAuthorized(t *testing.T) {
	tests := []struct {
		name    string
		status  int
		body    string
		want    bool
		wantErr error
	}{
		{name: "allowed", status: http.StatusOK, body: `{"allowed":true}`, want: true},
		{name: "denied in body", status: http.StatusOK, body: `{"allowed":false,"reason":"not a manager"}`},
		{name: "forbidden status", status: http.StatusForbidden},
		{name: "server error", status: http.StatusInternalServerError, wantErr: ErrUnavailable},
		{name: "broken body", status: http.StatusOK, body: `{`, wantErr: ErrInvalidResponse},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var got CheckRequest
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				assert.Equal(t, "/internal/access/check", r.URL.Path)
				assert.Equal(t, http.MethodPost, r.Method)
				assert.NoError(t, json.NewDecoder(r.Body).Decode(&got))
				w.WriteHeader(tt.status)
				_, _ = w.Write([]byte(tt.body))
			}))
			defer srv.Close()

			c := NewClient(srv.URL, time.Second, logger.NewNop())
			allowed, err := c.IsAuthorized(context.Background(), 42, 1, "reservation.create", "field:5")

			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
			} else {
				assert.NoError(t, err)
			}
			assert.Equal(t, tt.want, allowed)
			assert.Equal(t, CheckRequest{ActorID: 42, TenantID: 1, Action: "reservation.create", Resource: "field:5"}, got)
		})
	}
}

func TestClient_Unreachable(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	url := srv.URL
	srv.Close()

	c := NewClient(url, time.Second, logger.NewNop())
	allowed, err := c.IsAuthorized(context.Background(), 1, 1, "schedule.set", "field:1")
	assert.False(t, allowed)
	assert.ErrorIs(t, err, ErrUnavailable)
}

func TestAllowAll(t *testing.T) {
	allowed, err := AllowAll{}.IsAuthorized(context.Background(), 0, 0, "", "")
	assert.NoError(t, err)
	assert.True(t, allowed)
}
