// Package api is a thin HTTP client for the identity service's JSON API.
package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"
)

// Result mirrors the {code, message} pair present in every response body.
type Result struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}

// Response is the full response body; token fields are set only on success.
type Response struct {
	Result       Result `json:"result"`
	AccessToken  string `json:"accessToken,omitempty"`
	RefreshToken string `json:"refreshToken,omitempty"`
}

// Error is returned when the server answered with a non-2xx status. The
// decoded result is preserved so callers can show the server's message.
type Error struct {
	StatusCode int
	Result     Result
}

func (e *Error) Error() string {
	return fmt.Sprintf("server returned %d: %s (code %d)", e.StatusCode, e.Result.Message, e.Result.Code)
}

// Client calls the identity service over HTTP.
type Client struct {
	baseURL string
	http    *http.Client
}

func NewClient(baseURL string) *Client {
	return &Client{
		baseURL: baseURL,
		http:    &http.Client{Timeout: 10 * time.Second},
	}
}

func (c *Client) post(ctx context.Context, path string, body any) (*Response, error) {
	payload, err := json.Marshal(body)
	if err != nil {
		return nil, fmt.Errorf("error encoding request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+path, bytes.NewReader(payload))
	if err != nil {
		return nil, fmt.Errorf("error building request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("error calling %s: %w", path, err)
	}
	defer resp.Body.Close()

	var out Response
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return nil, fmt.Errorf("error decoding response from %s: %w", path, err)
	}

	if resp.StatusCode != http.StatusOK {
		return nil, &Error{StatusCode: resp.StatusCode, Result: out.Result}
	}
	return &out, nil
}

// Register creates a new account.
func (c *Client) Register(ctx context.Context, email, password string) (*Response, error) {
	return c.post(ctx, "/register", map[string]string{"email": email, "password": password})
}

// Login exchanges credentials for an access/refresh token pair.
func (c *Client) Login(ctx context.Context, email, password string) (*Response, error) {
	return c.post(ctx, "/login", map[string]string{"email": email, "password": password})
}

// Refresh renews the session. The returned refresh token may differ from the
// presented one when the server rotated it; callers must always adopt it.
func (c *Client) Refresh(ctx context.Context, refreshToken string) (*Response, error) {
	return c.post(ctx, "/refresh", map[string]string{"refreshToken": refreshToken})
}

// Authenticate checks an access token against the server.
func (c *Client) Authenticate(ctx context.Context, accessToken string) (*Response, error) {
	return c.post(ctx, "/authenticate", map[string]string{"accessToken": accessToken})
}
