package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/google/uuid"

	"github.com/timmyz/newlongfor/internal/client/models"
	"github.com/timmyz/newlongfor/internal/logging"
)

// HTTPClient is the JSON-over-HTTP implementation of Client.
type HTTPClient struct {
	baseURL string
	http    *http.Client
	log     logging.Logger
}

func NewHTTPClient(baseURL string, log logging.Logger) *HTTPClient {
	return &HTTPClient{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    &http.Client{},
		log:     log,
	}
}

// roundTrip issues one request with a fresh correlation id. Transport-level
// failures map to ErrUnavailable; status interpretation is left to callers.
func (c *HTTPClient) roundTrip(ctx context.Context, method, path string, body any) (*http.Response, error) {
	var payload io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return nil, fmt.Errorf("encode %s %s: %w", method, path, err)
		}
		payload = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, payload)
	if err != nil {
		return nil, err
	}
	requestID := uuid.NewString()
	req.Header.Set("X-Request-ID", requestID)
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.http.Do(req)
	if err != nil {
		c.log.Error(ctx, "request failed", "method", method, "path", path, "request_id", requestID, "err", err.Error())
		return nil, fmt.Errorf("%s %s: %w", method, path, ErrUnavailable)
	}
	c.log.Info(ctx, "request done", "method", method, "path", path, "status", resp.StatusCode, "request_id", requestID)
	return resp, nil
}

// do issues one request and decodes a 2xx body into out when out is non-nil.
// Any non-2xx status is a uniform ErrRequestFailed; bodies of failed
// responses are not interpreted.
func (c *HTTPClient) do(ctx context.Context, method, path string, body, out any) error {
	resp, err := c.roundTrip(ctx, method, path, body)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return fmt.Errorf("%s %s: status %d: %w", method, path, resp.StatusCode, ErrRequestFailed)
	}
	if out != nil {
		if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
			return fmt.Errorf("decode %s %s: %w", method, path, err)
		}
	}
	return nil
}

func (c *HTTPClient) ListUsers(ctx context.Context) ([]models.UserRecord, error) {
	var users []models.UserRecord
	if err := c.do(ctx, http.MethodGet, "/api/users", nil, &users); err != nil {
		return nil, err
	}
	return users, nil
}

func (c *HTTPClient) CreateUser(ctx context.Context, p models.UserPayload) (*models.UserRecord, error) {
	var created models.UserRecord
	if err := c.do(ctx, http.MethodPost, "/api/users", p, &created); err != nil {
		return nil, err
	}
	return &created, nil
}

func (c *HTTPClient) UpdateUser(ctx context.Context, id int64, p models.UserPayload) (*models.UserRecord, error) {
	var updated models.UserRecord
	if err := c.do(ctx, http.MethodPut, fmt.Sprintf("/api/users/%d", id), p, &updated); err != nil {
		return nil, err
	}
	return &updated, nil
}

func (c *HTTPClient) DeleteUser(ctx context.Context, id int64) error {
	return c.do(ctx, http.MethodDelete, fmt.Sprintf("/api/users/%d", id), nil, nil)
}

func (c *HTTPClient) GetSettings(ctx context.Context) (*models.SettingsRecord, error) {
	var s models.SettingsRecord
	if err := c.do(ctx, http.MethodGet, "/api/settings", nil, &s); err != nil {
		return nil, err
	}
	return &s, nil
}

func (c *HTTPClient) SaveSettings(ctx context.Context, s models.SettingsRecord) error {
	return c.do(ctx, http.MethodPost, "/api/settings", s, nil)
}

// ChangePassword interprets the body even on a failed status: the server
// reports current-password mismatches and policy violations as a message.
func (c *HTTPClient) ChangePassword(ctx context.Context, reqBody models.PasswordChangeRequest) (*PasswordChangeResult, error) {
	resp, err := c.roundTrip(ctx, http.MethodPost, "/api/change-password", reqBody)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	ok := resp.StatusCode >= 200 && resp.StatusCode <= 299

	var body struct {
		Message string `json:"message"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		if ok {
			// success with an empty or non-JSON body still counts
			return &PasswordChangeResult{OK: true}, nil
		}
		return nil, fmt.Errorf("POST /api/change-password: status %d: %w", resp.StatusCode, ErrRequestFailed)
	}
	return &PasswordChangeResult{OK: ok, Message: body.Message}, nil
}
