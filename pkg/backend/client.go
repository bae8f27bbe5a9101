package backend

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net"
	"net/http"
	"net/url"
	"os"
	"sync/atomic"
	"time"
)

// ErrUnreachable wraps transport-level failures where no response was
// received at all.
var ErrUnreachable = errors.New("backend: server unreachable")

// Config holds settings for the employee backend client.
type Config struct {
	// BaseURL is the HTTP endpoint of the employee backend, e.g. http://localhost:5205
	BaseURL string `yaml:"base_url" json:"base_url"`
	// Timeout is the per-request timeout
	Timeout time.Duration `yaml:"timeout" json:"timeout"`
	// ValidateResponses enables JSON Schema validation of list payloads
	ValidateResponses bool `yaml:"validate_responses" json:"validate_responses"`
}

// DefaultConfig returns a sensible default configuration.
func DefaultConfig() Config {
	return Config{
		BaseURL: "http://localhost:5205",
		Timeout: 15 * time.Second,
	}
}

// TokenFunc supplies the current bearer token, or "" when no session exists.
type TokenFunc func() string

// Client is a typed client for the employee backend REST API. It attaches
// the session bearer token to every request except login and register, and
// maps 401 responses to ErrUnauthorized without any side effect; navigation
// decisions belong to the caller.
type Client struct {
	cfg    Config
	base   *url.URL
	client *http.Client
	token  TokenFunc

	closed int32 // atomic flag for Close()
}

// NewClient creates a new backend client. token may be nil for a client that
// only performs login/register calls.
func NewClient(cfg Config, token TokenFunc, httpClient *http.Client) (*Client, error) {
	if httpClient == nil {
		httpClient = &http.Client{Timeout: cfg.Timeout}
	}

	u, err := url.ParseRequestURI(cfg.BaseURL)
	if err != nil {
		return nil, fmt.Errorf("invalid base url: %w", err)
	}

	if token == nil {
		token = func() string { return "" }
	}

	c := &Client{cfg: cfg, base: u, client: httpClient, token: token}
	logger.Info("backend: NewClient created", slog.String("base_url", cfg.BaseURL), slog.Duration("timeout", cfg.Timeout))
	return c, nil
}

// NewDefaultClient creates a client with a tuned default transport.
func NewDefaultClient(cfg Config, token TokenFunc) (*Client, error) {
	defaultClient := &http.Client{
		Transport: &http.Transport{
			Proxy: http.ProxyFromEnvironment,
			DialContext: (&net.Dialer{
				Timeout:   10 * time.Second,
				KeepAlive: 15 * time.Second,
			}).DialContext,
			ForceAttemptHTTP2:     true,
			MaxIdleConns:          100,
			IdleConnTimeout:       90 * time.Second,
			TLSHandshakeTimeout:   10 * time.Second,
			ExpectContinueTimeout: 1 * time.Second,
		},
	}

	return NewClient(cfg, token, defaultClient)
}

// WithToken returns a client that authenticates with fn. The configuration
// and underlying transport are shared with the receiver.
func (c *Client) WithToken(fn TokenFunc) *Client {
	if fn == nil {
		fn = func() string { return "" }
	}
	return &Client{cfg: c.cfg, base: c.base, client: c.client, token: fn}
}

// Close releases any resources held by the client. Currently this closes
// idle connections on the underlying HTTP transport when supported. Close is
// idempotent and safe to call multiple times.
func (c *Client) Close() error {
	if c == nil {
		return nil
	}
	if !atomic.CompareAndSwapInt32(&c.closed, 0, 1) {
		return nil
	}
	if c.client != nil && c.client.Transport != nil {
		if tr, ok := c.client.Transport.(interface{ CloseIdleConnections() }); ok {
			tr.CloseIdleConnections()
		}
	}
	return nil
}

// package-level logger for pkg/backend; can be replaced by callers
var logger = slog.New(slog.NewJSONHandler(os.Stdout, nil))

// SetLogger sets the logger used by pkg/backend. Passing nil is a no-op.
func SetLogger(l *slog.Logger) {
	if l != nil {
		logger = l
	}
}

// Login authenticates with the backend. No bearer token is attached.
func (c *Client) Login(ctx context.Context, username, password string) (*LoginResponse, error) {
	var resp LoginResponse
	if err := c.do(ctx, http.MethodPost, "/api/Employee/login", loginRequest{Username: username, Password: password}, &resp, false); err != nil {
		return nil, err
	}
	return &resp, nil
}

// Register creates a new employee account. No bearer token is attached.
func (c *Client) Register(ctx context.Context, req RegisterRequest) error {
	return c.do(ctx, http.MethodPost, "/api/Employee/register", req, nil, false)
}

// Employee fetches one employee record by id.
func (c *Client) Employee(ctx context.Context, id string) (*Employee, error) {
	var e Employee
	if err := c.do(ctx, http.MethodGet, "/api/Employee/"+url.PathEscape(id), nil, &e, true); err != nil {
		return nil, err
	}
	return &e, nil
}

// UpdateEmployee submits a self-service profile update. e.ModifiedBy must
// carry the acting user's username.
func (c *Client) UpdateEmployee(ctx context.Context, id string, e Employee) error {
	return c.do(ctx, http.MethodPut, "/api/Employee/"+url.PathEscape(id), e, nil, true)
}

// UpdateProfileImage replaces the employee's profile image; an empty
// base64Image removes it.
func (c *Client) UpdateProfileImage(ctx context.Context, id, base64Image, modifiedBy string) error {
	return c.do(ctx, http.MethodPut, "/api/Employee/"+url.PathEscape(id)+"/image", imageRequest{Base64Image: base64Image, ModifiedBy: modifiedBy}, nil, true)
}

// ListEmployees fetches the full employee list (admin only).
func (c *Client) ListEmployees(ctx context.Context) ([]Employee, error) {
	req, err := c.newRequest(ctx, http.MethodGet, "/api/Admin/employees", nil, true)
	if err != nil {
		return nil, err
	}

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUnreachable, err)
	}
	defer resp.Body.Close()

	if err := checkStatus(resp); err != nil {
		return nil, err
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read employee list: %w", err)
	}

	if c.cfg.ValidateResponses {
		if err := validateEmployeeList(ctx, body); err != nil {
			return nil, err
		}
	}

	var list []Employee
	if err := json.Unmarshal(body, &list); err != nil {
		return nil, fmt.Errorf("decode employee list: %w", err)
	}
	return list, nil
}

// AdminUpdateEmployee submits an admin edit of any employee field.
func (c *Client) AdminUpdateEmployee(ctx context.Context, id string, e Employee) error {
	return c.do(ctx, http.MethodPut, "/api/Admin/employees/"+url.PathEscape(id), e, nil, true)
}

// UpdateEmployeeStatus activates or deactivates an account (admin only).
func (c *Client) UpdateEmployeeStatus(ctx context.Context, id, status, modifiedBy string) error {
	return c.do(ctx, http.MethodPut, "/api/Admin/employees/"+url.PathEscape(id)+"/status", statusRequest{Status: status, ModifiedBy: modifiedBy}, nil, true)
}

func (c *Client) newRequest(ctx context.Context, method, path string, body any, authed bool) (*http.Request, error) {
	u := c.base.ResolveReference(&url.URL{Path: path})

	var rd io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		if err != nil {
			return nil, fmt.Errorf("encode request: %w", err)
		}
		rd = bytes.NewReader(b)
	}

	req, err := http.NewRequestWithContext(ctx, method, u.String(), rd)
	if err != nil {
		return nil, err
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if authed {
		if tok := c.token(); tok != "" {
			req.Header.Set("Authorization", "Bearer "+tok)
		}
	}
	return req, nil
}

func (c *Client) do(ctx context.Context, method, path string, body, out any, authed bool) error {
	req, err := c.newRequest(ctx, method, path, body, authed)
	if err != nil {
		return err
	}

	resp, err := c.client.Do(req)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrUnreachable, err)
	}
	defer resp.Body.Close()

	if err := checkStatus(resp); err != nil {
		return err
	}

	if out != nil {
		if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
			return fmt.Errorf("decode response: %w", err)
		}
	}
	return nil
}

func checkStatus(resp *http.Response) error {
	if resp.StatusCode >= 200 && resp.StatusCode < 300 {
		return nil
	}
	if resp.StatusCode == http.StatusUnauthorized {
		return ErrUnauthorized
	}

	apiErr := &APIError{StatusCode: resp.StatusCode}
	if err := json.NewDecoder(resp.Body).Decode(apiErr); err != nil {
		// non-JSON error body; keep the status-derived message
		apiErr.Message = ""
	}
	logger.Warn("backend: request rejected",
		slog.Int("status", resp.StatusCode),
		slog.String("message", apiErr.Message),
	)
	return apiErr
}
