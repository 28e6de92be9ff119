// Copyright 2026 The Fichas Authors
// SPDX-License-Identifier: Apache-2.0

package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"golang.org/x/time/rate"

	"github.com/assistec/fichas/lib/netutil"
	"github.com/assistec/fichas/lib/version"
)

const (
	// requestTimeout bounds every JSON call.
	requestTimeout = 10 * time.Second

	// documentTimeout bounds PDF downloads and photo uploads, which
	// move real payloads.
	documentTimeout = 20 * time.Second
)

// Config configures a Client.
type Config struct {
	// BaseURL is the service root, e.g. "https://os.assistec.example".
	// Required.
	BaseURL string

	// Token is the bearer token from a previous login. Optional; the
	// unauthenticated endpoints (login, tracking) work without it.
	Token string

	// OnUnauthorized is invoked whenever an authenticated call comes
	// back 401, after the client has cleared its token. Optional.
	OnUnauthorized func()

	// HTTPClient overrides the transport. Optional; defaults to a
	// plain http.Client. Timeouts are applied per request via
	// context, not here.
	HTTPClient *http.Client

	// Logger receives one debug line per request. Optional; defaults
	// to slog.Default().
	Logger *slog.Logger
}

// Client is a typed client for the shop management service. Safe for
// concurrent use.
type Client struct {
	httpClient     *http.Client
	baseURL        string
	onUnauthorized func()
	logger         *slog.Logger

	// limiter caps outbound request rate. The debouncer already
	// spaces type-ahead traffic; this is the hard backstop.
	limiter *rate.Limiter

	mu    sync.Mutex
	token string
}

// New creates a Client from cfg.
func New(cfg Config) (*Client, error) {
	base := strings.TrimRight(cfg.BaseURL, "/")
	if base == "" {
		return nil, fmt.Errorf("api: BaseURL is required")
	}
	parsed, err := url.Parse(base)
	if err != nil {
		return nil, fmt.Errorf("api: invalid BaseURL: %w", err)
	}
	if parsed.Scheme != "http" && parsed.Scheme != "https" {
		return nil, fmt.Errorf("api: BaseURL must be http or https, got %q", parsed.Scheme)
	}
	httpClient := cfg.HTTPClient
	if httpClient == nil {
		httpClient = &http.Client{}
	}
	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}
	return &Client{
		httpClient:     httpClient,
		baseURL:        base,
		onUnauthorized: cfg.OnUnauthorized,
		logger:         logger,
		limiter:        rate.NewLimiter(rate.Limit(20), 40),
		token:          cfg.Token,
	}, nil
}

// NewForTesting creates a Client that sends every request through the
// given transport. Tests pair this with an httptest server and a
// transport that rewrites the request URL to the server's address.
func NewForTesting(transport http.RoundTripper) *Client {
	client, err := New(Config{
		BaseURL:    "https://fichas.test",
		HTTPClient: &http.Client{Transport: transport},
		Logger:     slog.New(slog.DiscardHandler),
	})
	if err != nil {
		panic(fmt.Sprintf("api: NewForTesting: %v", err))
	}
	return client
}

// SetToken installs the bearer token from a fresh login.
func (c *Client) SetToken(token string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.token = token
}

// ClearToken drops the bearer token.
func (c *Client) ClearToken() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.token = ""
}

func (c *Client) currentToken() string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.token
}

// SetOnUnauthorized replaces the 401 callback. It runs on the
// goroutine of whichever request hit the rejection, so handlers must
// be safe to call from outside the UI loop.
func (c *Client) SetOnUnauthorized(f func()) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.onUnauthorized = f
}

func (c *Client) unauthorizedCallback() func() {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.onUnauthorized
}

// request describes one call for the do helper.
type request struct {
	method string
	path   string
	query  url.Values

	// body is JSON-encoded when non-nil. rawBody wins over body when
	// set (multipart uploads).
	body        any
	rawBody     []byte
	contentType string

	// authenticated attaches the bearer token and routes 401 through
	// the invalidation path.
	authenticated bool

	// document reads the response through the document bound and the
	// longer timeout.
	document bool
}

// do executes req and returns the response body. Non-2xx responses
// become *APIError. The caller owns JSON decoding.
func (c *Client) do(ctx context.Context, op string, req request) ([]byte, error) {
	if err := c.limiter.Wait(ctx); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	timeout := requestTimeout
	if req.document {
		timeout = documentTimeout
	}
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	target := c.baseURL + req.path
	if len(req.query) > 0 {
		target += "?" + req.query.Encode()
	}

	var body io.Reader
	contentType := req.contentType
	switch {
	case req.rawBody != nil:
		body = bytes.NewReader(req.rawBody)
	case req.body != nil:
		encoded, err := json.Marshal(req.body)
		if err != nil {
			return nil, fmt.Errorf("%s: encoding request: %w", op, err)
		}
		body = bytes.NewReader(encoded)
		contentType = "application/json"
	}

	httpReq, err := http.NewRequestWithContext(ctx, req.method, target, body)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	if contentType != "" {
		httpReq.Header.Set("Content-Type", contentType)
	}
	httpReq.Header.Set("X-Request-ID", uuid.NewString())
	httpReq.Header.Set("User-Agent", "fichas/"+version.Short())
	if req.authenticated {
		if token := c.currentToken(); token != "" {
			httpReq.Header.Set("Authorization", "Bearer "+token)
		}
	}

	started := time.Now()
	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	defer resp.Body.Close()

	c.logger.Debug("api request",
		"op", op,
		"method", req.method,
		"path", req.path,
		"status", resp.StatusCode,
		"elapsed", time.Since(started))

	if resp.StatusCode == http.StatusUnauthorized && req.authenticated {
		c.ClearToken()
		if callback := c.unauthorizedCallback(); callback != nil {
			callback()
		}
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, fmt.Errorf("%s: %w", op, parseError(resp.StatusCode, netutil.ErrorBody(resp.Body)))
	}

	if req.document {
		data, err := netutil.ReadDocument(resp.Body)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", op, err)
		}
		return data, nil
	}
	data, err := netutil.ReadResponse(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return data, nil
}

// decodeInto unmarshals a response body with the operation name in
// the error.
func decodeInto(data []byte, v any, op string) error {
	if err := json.Unmarshal(data, v); err != nil {
		return fmt.Errorf("%s: decoding response: %w", op, err)
	}
	return nil
}

// getJSON runs a GET and decodes the response into v.
func (c *Client) getJSON(ctx context.Context, op, path string, query url.Values, authenticated bool, v any) error {
	data, err := c.do(ctx, op, request{
		method:        http.MethodGet,
		path:          path,
		query:         query,
		authenticated: authenticated,
	})
	if err != nil {
		return err
	}
	if err := json.Unmarshal(data, v); err != nil {
		return fmt.Errorf("%s: decoding response: %w", op, err)
	}
	return nil
}

// sendJSON runs a POST or PUT with a JSON body and decodes the
// response into v when v is non-nil.
func (c *Client) sendJSON(ctx context.Context, op, method, path string, body, v any) error {
	data, err := c.do(ctx, op, request{
		method:        method,
		path:          path,
		body:          body,
		authenticated: true,
	})
	if err != nil {
		return err
	}
	if v == nil {
		return nil
	}
	if err := json.Unmarshal(data, v); err != nil {
		return fmt.Errorf("%s: decoding response: %w", op, err)
	}
	return nil
}
