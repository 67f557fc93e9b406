package gateway

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"strings"
	"time"
)

const defaultTimeout = 10 * time.Second

// connectionErrMsg is the generic message shown for transport failures.
const connectionErrMsg = "erro de conexão com o servidor"

// Client translates every backend call into a typed result or a *Error.
// No transport or decoding error escapes it in any other form.
type Client struct {
	baseURL       string
	http          *http.Client
	creds         CredentialStore
	onAuthExpired func()
}

// Option customizes a Client.
type Option func(*Client)

// WithTimeout bounds every request; a timed-out call fails as a transport error.
func WithTimeout(timeout time.Duration) Option {
	return func(c *Client) { c.http.Timeout = timeout }
}

// WithHTTPClient swaps the underlying HTTP client (tests, custom transports).
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) { c.http = hc }
}

// WithAuthExpiredHook registers the redirect-to-login analog, invoked after the
// credential store has been cleared on a 401.
func WithAuthExpiredHook(hook func()) Option {
	return func(c *Client) { c.onAuthExpired = hook }
}

// New constructs a client for the given base URL, e.g. "http://localhost:3000/api".
func New(baseURL string, creds CredentialStore, opts ...Option) *Client {
	c := &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    &http.Client{Timeout: defaultTimeout},
		creds:   creds,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// do performs one round trip. out, when non-nil, receives the decoded 2xx JSON
// body. authed attaches the bearer credential if one is stored.
func (c *Client) do(ctx context.Context, method, path string, payload, out any, authed bool) error {
	var body io.Reader
	if payload != nil {
		raw, err := json.Marshal(payload)
		if err != nil {
			return transportErr(connectionErrMsg)
		}
		body = bytes.NewReader(raw)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
	if err != nil {
		return transportErr(connectionErrMsg)
	}
	req.Header.Set("Content-Type", "application/json")
	if authed {
		if token, ok := c.creds.Token(); ok {
			req.Header.Set("Authorization", "Bearer "+token)
		}
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return transportErr(connectionErrMsg)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return transportErr(connectionErrMsg)
	}

	if resp.StatusCode == http.StatusUnauthorized {
		c.creds.Clear()
		if c.onAuthExpired != nil {
			c.onAuthExpired()
		}
		return &Error{Kind: KindAuthExpired, Message: "sessão expirada, faça login novamente"}
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return &Error{Kind: KindBackendRejected, Message: rejectionMessage(resp, raw)}
	}

	if out != nil {
		if err := json.Unmarshal(raw, out); err != nil {
			return transportErr(connectionErrMsg)
		}
	}
	return nil
}

// rejectionMessage extracts the backend-supplied message field from a JSON error
// body. Endpoints that reply with plain text on errors are a required
// compatibility case, so non-JSON bodies pass through as-is.
func rejectionMessage(resp *http.Response, raw []byte) string {
	contentType := resp.Header.Get("Content-Type")
	if strings.Contains(contentType, "application/json") {
		var payload struct {
			Message string `json:"message"`
		}
		if err := json.Unmarshal(raw, &payload); err == nil && payload.Message != "" {
			return payload.Message
		}
	} else if text := strings.TrimSpace(string(raw)); text != "" {
		return text
	}
	if resp.Status != "" {
		return resp.Status
	}
	return http.StatusText(resp.StatusCode)
}
