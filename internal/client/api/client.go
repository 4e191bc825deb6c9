// Package api is the thin HTTP client the phonebook CLI talks to the REST
// backend through. It owns the session cookie and normalizes every failure
// mode (transport error, non-2xx status, {success:false} body) into Go
// errors carrying the server's message with a generic fallback.
package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/cookiejar"
	"net/url"
	"strings"

	"github.com/dmitrijs2005/phonebook/internal/models"
)

const genericFailure = "Operation failed"

// Client issues requests against one phonebook server. The embedded cookie
// jar holds the session cookie, so a successful Login authenticates every
// later call. Requests carry no timeout of their own; cancellation is the
// caller's context.
type Client struct {
	baseURL string
	http    *http.Client
}

func New(baseURL string) (*Client, error) {
	jar, err := cookiejar.New(nil)
	if err != nil {
		return nil, fmt.Errorf("cookie jar init error: %w", err)
	}
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    &http.Client{Jar: jar},
	}, nil
}

// envelope is the response body shared by the auth and mutation endpoints.
type envelope struct {
	Success bool         `json:"success"`
	Error   string       `json:"error"`
	Message string       `json:"message"`
	User    *models.User `json:"user"`
}

// do sends one JSON request and returns the raw body and status. A transport
// failure wraps ErrUnavailable; HTTP-level failures are left to the caller,
// which knows the expected body shape.
func (c *Client) do(ctx context.Context, method, path string, query url.Values, body any) ([]byte, int, error) {
	u := c.baseURL + path
	if len(query) > 0 {
		u += "?" + query.Encode()
	}

	var reqBody *bytes.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return nil, 0, fmt.Errorf("request encoding error: %w", err)
		}
		reqBody = bytes.NewReader(data)
	} else {
		reqBody = bytes.NewReader(nil)
	}

	req, err := http.NewRequestWithContext(ctx, method, u, reqBody)
	if err != nil {
		return nil, 0, err
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, 0, fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	defer resp.Body.Close()

	var buf bytes.Buffer
	if _, err := buf.ReadFrom(resp.Body); err != nil {
		return nil, 0, fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	return buf.Bytes(), resp.StatusCode, nil
}

// fail turns a failed response into an *Error. The message is taken from
// the body's error field, then message, then a generic fallback.
func fail(status int, body []byte) error {
	var env envelope
	_ = json.Unmarshal(body, &env)

	msg := env.Error
	if msg == "" {
		msg = env.Message
	}
	if msg == "" {
		msg = genericFailure
	}
	return &Error{Status: status, Message: msg}
}

func ok(status int) bool {
	return status >= 200 && status < 300
}

// Status probes the session. A {success:false} answer means anonymous and is
// reported as (nil, nil); only transport or decoding problems return an error.
func (c *Client) Status(ctx context.Context) (*models.User, error) {
	body, status, err := c.do(ctx, http.MethodGet, "/api/auth/status", nil, nil)
	if err != nil {
		return nil, err
	}
	if !ok(status) {
		return nil, fail(status, body)
	}

	var env envelope
	if err := json.Unmarshal(body, &env); err != nil {
		return nil, fmt.Errorf("status decoding error: %w", err)
	}
	if !env.Success || env.User == nil {
		return nil, nil
	}
	return env.User, nil
}

// Login exchanges credentials for a session cookie and returns the signed-in
// user. On rejection the error carries the server's message (for example
// "Invalid credentials").
func (c *Client) Login(ctx context.Context, username, password string) (*models.User, error) {
	payload := map[string]string{"username": username, "password": password}
	body, status, err := c.do(ctx, http.MethodPost, "/api/auth/login", nil, payload)
	if err != nil {
		return nil, err
	}

	var env envelope
	if !ok(status) || json.Unmarshal(body, &env) != nil || !env.Success || env.User == nil {
		return nil, fail(status, body)
	}
	return env.User, nil
}

// Logout tears down the server session. Callers treat it as best-effort.
func (c *Client) Logout(ctx context.Context) error {
	body, status, err := c.do(ctx, http.MethodPost, "/api/auth/logout", nil, nil)
	if err != nil {
		return err
	}
	if !ok(status) {
		return fail(status, body)
	}
	return nil
}
