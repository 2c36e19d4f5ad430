// Package api is the transport boundary: thin JSON clients for the house
// service and the user service. Every call is a single attempt; callers
// decide whether a failure is surfaced or silently degraded.
package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"
)

// StatusError is returned for non-2xx responses. Message carries the
// server-supplied error field when the body had one.
type StatusError struct {
	Code    int
	Message string
}

func (e *StatusError) Error() string {
	if e.Message != "" {
		return fmt.Sprintf("remote returned status %d: %s", e.Code, e.Message)
	}
	return fmt.Sprintf("remote returned status %d", e.Code)
}

// Client talks to one remote service.
type Client struct {
	baseURL    string
	httpClient *http.Client
}

func NewClient(baseURL string, timeout time.Duration) *Client {
	return &Client{
		baseURL:    baseURL,
		httpClient: &http.Client{Timeout: timeout},
	}
}

func (c *Client) doRequest(ctx context.Context, method, path string, body any, headerKey, headerValue string) (*http.Response, error) {
	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return nil, fmt.Errorf("failed to encode request body: %w", err)
		}
		reader = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")
	if headerKey != "" {
		req.Header.Set(headerKey, headerValue)
	}

	return c.httpClient.Do(req)
}

// doJSON performs a request and decodes the response payload from the
// conventional data envelope into out. Non-2xx responses become a
// StatusError carrying the server's error message when present.
func (c *Client) doJSON(ctx context.Context, method, path string, body, out any) error {
	return c.doJSONWithHeader(ctx, method, path, body, out, "", "")
}

// doJSONWithHeader is doJSON with one extra request header attached.
func (c *Client) doJSONWithHeader(ctx context.Context, method, path string, body, out any, headerKey, headerValue string) error {
	resp, err := c.doRequest(ctx, method, path, body, headerKey, headerValue)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return statusError(resp)
	}

	if out == nil {
		return nil
	}
	envelope := struct {
		Data json.RawMessage `json:"data"`
	}{}
	if err := json.NewDecoder(resp.Body).Decode(&envelope); err != nil {
		return fmt.Errorf("failed to decode response: %w", err)
	}
	if err := json.Unmarshal(envelope.Data, out); err != nil {
		return fmt.Errorf("failed to decode response payload: %w", err)
	}
	return nil
}

func statusError(resp *http.Response) error {
	raw, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
	serverErr := struct {
		Error string `json:"error"`
	}{}
	_ = json.Unmarshal(raw, &serverErr)
	return &StatusError{Code: resp.StatusCode, Message: serverErr.Error}
}
