package accessservice

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"
)

// Client клиент для проверки прав в AccessService
type Client struct {
	baseURL    string
	httpClient *http.Client
	log        Logger
}

// NewClient создает новый экземпляр клиента AccessService
func NewClient(baseURL string, timeout time.Duration, log Logger) *Client {
	return &Client{
		baseURL: baseURL,
		httpClient: &http.Client{
			Timeout: timeout,
		},
		log: log,
	}
}

// IsAuthorized спрашивает у AccessService, может ли actor выполнить action над resource.
// При недоступности сервиса возвращает ErrUnavailable, доступ в этом случае не выдаётся.
func (c *Client) IsAuthorized(ctx context.Context, actorID, tenantID int64, action, resource string) (bool, error) {
	body, err := json.Marshal(CheckRequest{
		ActorID:  actorID,
		TenantID: tenantID,
		Action:   action,
		Resource: resource,
	})
	if err != nil {
		return false, fmt.Errorf("%w: failed to encode request: %v", ErrInternal, err)
	}

	url := fmt.Sprintf("%s/internal/access/check", c.baseURL)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return false, fmt.Errorf("%w: failed to create request: %v", ErrInternal, err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.log.Error("AccessService request failed: actor=%d tenant=%d action=%s: %v", actorID, tenantID, action, err)
		return false, fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	defer resp.Body.Close()

	switch resp.StatusCode {
	case http.StatusOK:
	case http.StatusForbidden, http.StatusNotFound:
		return false, nil
	default:
		raw, _ := io.ReadAll(resp.Body)
		c.log.Error("AccessService unexpected status %d: %s", resp.StatusCode, string(raw))
		return false, fmt.Errorf("%w: unexpected status code %d", ErrUnavailable, resp.StatusCode)
	}

	var check CheckResponse
	if err := json.NewDecoder(resp.Body).Decode(&check); err != nil {
		return false, fmt.Errorf("%w: failed to decode response: %v", ErrInvalidResponse, err)
	}

	if !check.Allowed {
		c.log.Info("Access denied: actor=%d tenant=%d action=%s resource=%s reason=%q",
			actorID, tenantID, action, resource, check.Reason)
	}
	return check.Allowed, nil
}

// AllowAll разрешает всё. Используется, когда access_service.enabled = false.
type AllowAll struct{}

func (AllowAll) IsAuthorized(context.Context, int64, int64, string, string) (bool, error) {
	return true, nil
}
