package voice

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/oapi-codegen/runtime"
)

// ErrEmptyCallSID is returned when the voice service answers without a call sid.
var ErrEmptyCallSID = errors.New("voice service returned no call_sid")

// Client calls the external voice-automation service.
type Client struct {
	baseURL    *url.URL
	httpClient *http.Client
}

// TriggerCallResponse is the voice service reply to a trigger request.
type TriggerCallResponse struct {
	CallSID string `json:"call_sid"`
	Status  string `json:"status,omitempty"`
	Message string `json:"message,omitempty"`
	Error   string `json:"error,omitempty"`
}

// NewClient instantiates the voice client with sane defaults.
func NewClient(baseURL string, httpClient *http.Client) (*Client, error) {
	baseURL = strings.TrimSpace(baseURL)
	if baseURL == "" {
		return nil, errors.New("voice service base URL is required")
	}
	parsed, err := url.Parse(strings.TrimRight(baseURL, "/"))
	if err != nil {
		return nil, fmt.Errorf("parse voice service URL: %w", err)
	}
	if parsed.Scheme == "" || parsed.Host == "" {
		return nil, fmt.Errorf("voice service URL %q must be absolute", baseURL)
	}
	if httpClient == nil {
		httpClient = &http.Client{Timeout: 5 * time.Second}
	}
	return &Client{baseURL: parsed, httpClient: httpClient}, nil
}

// TriggerCall issues GET /trigger-call?phone=... and returns the call sid.
func (c *Client) TriggerCall(ctx context.Context, phone string) (string, error) {
	if c == nil || c.httpClient == nil {
		return "", errors.New("voice client not configured")
	}
	query, err := runtime.StyleParamWithLocation("form", true, "phone", runtime.ParamLocationQuery, phone)
	if err != nil {
		return "", fmt.Errorf("encode phone parameter: %w", err)
	}
	endpoint := *c.baseURL
	endpoint.Path = strings.TrimRight(endpoint.Path, "/") + "/trigger-call"
	endpoint.RawQuery = query

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint.String(), nil)
	if err != nil {
		return "", err
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("call voice service: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if err != nil {
		return "", fmt.Errorf("read voice service response: %w", err)
	}
	var payload TriggerCallResponse
	if len(body) > 0 {
		if err := json.Unmarshal(body, &payload); err != nil && resp.StatusCode < http.StatusBadRequest {
			return "", fmt.Errorf("decode voice service response: %w", err)
		}
	}
	switch {
	case resp.StatusCode >= http.StatusBadRequest:
		return "", fmt.Errorf("voice service error: %s", errorMessage(payload, resp.Status))
	case resp.StatusCode != http.StatusOK:
		return "", fmt.Errorf("voice service unexpected status: %s", resp.Status)
	}
	sid := strings.TrimSpace(payload.CallSID)
	if sid == "" {
		return "", ErrEmptyCallSID
	}
	return sid, nil
}

func errorMessage(payload TriggerCallResponse, fallback string) string {
	for _, candidate := range []string{payload.Error, payload.Message} {
		if msg := strings.TrimSpace(candidate); msg != "" {
			return msg
		}
	}
	return fallback
}
