package apisvc

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/url"
	"time"

	"github.com/google/uuid"

	"github.com/unicrm/unicli/core"
)

// SessionStore is the slice of the token store the client needs: the bearer
// token for outbound requests, and Clear for the 401 interceptor.
type SessionStore interface {
	Token() (string, bool)
	Clear() error
}

// Client wraps outbound HTTP calls to the backend REST API. Every request
// carries the bearer token when one is stored; every failed response is
// normalized into an *Error. There is no retry logic: every failure is
// terminal for that call and must be re-issued by the caller.
type Client struct {
	baseURL  string
	http     *http.Client
	sessions SessionStore
	notifier core.Notifier
	logger   core.Logger

	// invoked after a 401 clears the session; the terminal stand-in for
	// the browser redirect to /login.
	onUnauthorized func()
}

var _ core.APIClient = (*Client)(nil)

func NewClient(baseURL string, timeout time.Duration, sessions SessionStore, notifier core.Notifier, logger core.Logger) *Client {
	return &Client{
		baseURL:  baseURL,
		http:     &http.Client{Timeout: timeout},
		sessions: sessions,
		notifier: notifier,
		logger:   logger,
	}
}

// OnUnauthorized registers the forced-login hook run after any 401.
func (c *Client) OnUnauthorized(fn func()) {
	c.onUnauthorized = fn
}

func (c *Client) Get(ctx context.Context, path string, params url.Values, out interface{}) error {
	return c.do(ctx, http.MethodGet, path, params, nil, out)
}

func (c *Client) Post(ctx context.Context, path string, body, out interface{}) error {
	return c.do(ctx, http.MethodPost, path, nil, body, out)
}

func (c *Client) Put(ctx context.Context, path string, body, out interface{}) error {
	return c.do(ctx, http.MethodPut, path, nil, body, out)
}

func (c *Client) Patch(ctx context.Context, path string, body, out interface{}) error {
	return c.do(ctx, http.MethodPatch, path, nil, body, out)
}

func (c *Client) Delete(ctx context.Context, path string, out interface{}) error {
	return c.do(ctx, http.MethodDelete, path, nil, nil, out)
}

func (c *Client) do(ctx context.Context, method, path string, params url.Values, body, out interface{}) error {
	var buf bytes.Buffer
	if body != nil {
		if err := json.NewEncoder(&buf).Encode(body); err != nil {
			return &Error{Message: err.Error()}
		}
	}

	req, err := http.NewRequestWithContext(ctx, method, c.url(path, params), &buf)
	if err != nil {
		return &Error{Message: err.Error()}
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	c.decorate(req)

	return c.roundTrip(req, out)
}

func (c *Client) url(path string, params url.Values) string {
	u := c.baseURL + path
	if len(params) > 0 {
		u += "?" + params.Encode()
	}
	return u
}

// decorate attaches the bearer token (when stored) and a correlation id.
func (c *Client) decorate(req *http.Request) {
	if token, ok := c.sessions.Token(); ok {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	req.Header.Set("X-Request-ID", uuid.NewString())
}

func (c *Client) roundTrip(req *http.Request, out interface{}) error {
	resp, err := c.http.Do(req)
	if err != nil {
		return c.failTransport(err)
	}
	defer resp.Body.Close()

	data, err := readBody(resp)
	if err != nil {
		return c.failTransport(err)
	}
	if resp.StatusCode >= 400 {
		return c.fail(resp.StatusCode, data)
	}
	return decode(data, out)
}

func (c *Client) failTransport(err error) error {
	var msg string
	if isTimeout(err) {
		msg = msgTimeout
	} else {
		msg = msgNetworkError
	}
	c.logger.Warn("api: request failed", err)
	c.notifier.Error(msg)
	return &Error{Message: msg}
}

// fail normalizes an error response. 401 additionally clears the persisted
// session and forces navigation back to login, regardless of which call
// triggered it.
func (c *Client) fail(status int, body []byte) error {
	serverMsg := serverMessage(body)

	var msg string
	var intercepted bool
	switch {
	case status == http.StatusUnauthorized:
		_ = c.sessions.Clear()
		if c.onUnauthorized != nil {
			c.onUnauthorized()
		}
		msg = serverMsg
		if msg == "" {
			msg = msgSessionExpired
		}
		intercepted = true
	case status == http.StatusForbidden:
		msg = msgPermissionDenied
		intercepted = true
	case status == http.StatusNotFound:
		msg = msgNotFound
		intercepted = true
	case status >= 500:
		msg = msgServerError
		intercepted = true
	default:
		msg = serverMsg
		if msg == "" {
			msg = msgUnexpected
		}
	}
	if intercepted {
		c.notifier.Error(msg)
	}
	return &Error{StatusCode: status, Message: msg}
}

// envelope is the backend's response wrapper: {success, data, message?, error?}.
type envelope struct {
	Success bool            `json:"success"`
	Data    json.RawMessage `json:"data"`
	Message string          `json:"message"`
	Error   string          `json:"error"`
}

// decode unwraps the envelope's data payload into out when present,
// else decodes the whole response body.
func decode(body []byte, out interface{}) error {
	if out == nil || len(body) == 0 {
		return nil
	}
	var env envelope
	if err := json.Unmarshal(body, &env); err == nil && len(env.Data) > 0 && string(env.Data) != "null" {
		if err = json.Unmarshal(env.Data, out); err == nil {
			return nil
		}
	}
	if err := json.Unmarshal(body, out); err != nil {
		return &Error{Message: msgUnexpected}
	}
	return nil
}

func serverMessage(body []byte) string {
	var env envelope
	if err := json.Unmarshal(body, &env); err != nil {
		return ""
	}
	if env.Message != "" {
		return env.Message
	}
	return env.Error
}
