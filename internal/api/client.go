package api

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/fadna/oms/internal/config"
)

// ErrNotFound marks a 404 from the backend, e.g. a customer phone lookup
// with no match.
var ErrNotFound = errors.New("not found")

// Error is a non-2xx backend response. Message is the backend's own
// message when it sent one, otherwise a generic fallback.
type Error struct {
	Status  int
	Message string
}

func (e *Error) Error() string {
	return e.Message
}

// Unwrap lets errors.Is(err, ErrNotFound) keep working while the
// backend's own 404 message stays visible to the operator.
func (e *Error) Unwrap() error {
	if e.Status == http.StatusNotFound {
		return ErrNotFound
	}
	return nil
}

// Client wraps the OMS backend REST API. All mutation and consistency
// decisions belong to the backend; the client only shapes requests and
// decodes responses.
type Client struct {
	baseURL string
	token   string
	client  *http.Client
}

func NewClient(cfg config.APIConfig) *Client {
	return &Client{
		baseURL: strings.TrimRight(cfg.BaseURL, "/"),
		client: &http.Client{
			Timeout: cfg.Timeout,
		},
	}
}

// SetToken attaches the session token to every subsequent request.
func (c *Client) SetToken(token string) {
	c.token = token
}

func (c *Client) do(ctx context.Context, method, path string, payload, out any) error {
	var body io.Reader
	if payload != nil {
		jsonData, err := json.Marshal(payload)
		if err != nil {
			return fmt.Errorf("failed to marshal request: %w", err)
		}
		body = bytes.NewBuffer(jsonData)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}

	resp, err := c.client.Do(req)
	if err != nil {
		return fmt.Errorf("failed to make request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return c.decodeError(resp)
	}

	if out != nil {
		if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
			return fmt.Errorf("failed to decode response: %w", err)
		}
	}
	return nil
}

func (c *Client) decodeError(resp *http.Response) error {
	raw, _ := io.ReadAll(resp.Body)
	var payload struct {
		Message string `json:"message"`
	}
	if err := json.Unmarshal(raw, &payload); err == nil && payload.Message != "" {
		return &Error{Status: resp.StatusCode, Message: payload.Message}
	}
	if resp.StatusCode == http.StatusNotFound {
		return ErrNotFound
	}
	return &Error{
		Status:  resp.StatusCode,
		Message: fmt.Sprintf("request failed with status %d", resp.StatusCode),
	}
}

func (c *Client) get(ctx context.Context, path string, out any) error {
	return c.do(ctx, http.MethodGet, path, nil, out)
}

func (c *Client) post(ctx context.Context, path string, payload, out any) error {
	return c.do(ctx, http.MethodPost, path, payload, out)
}

func (c *Client) put(ctx context.Context, path string, payload, out any) error {
	return c.do(ctx, http.MethodPut, path, payload, out)
}

// delete sends DELETE with an optional JSON body; destructive endpoints
// expect the account password there for server-side re-authorization.
func (c *Client) delete(ctx context.Context, path string, payload, out any) error {
	return c.do(ctx, http.MethodDelete, path, payload, out)
}
