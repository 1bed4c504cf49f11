package api

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"mime/multipart"
	"net"
	"net/http"
	"strings"
	"time"

	"github.com/cenkalti/backoff/v5"
	"github.com/gregjones/httpcache"
	"github.com/rs/zerolog/log"

	"github.com/peopleops/hrctl/internal/session"
)

const (
	// DefaultTimeout bounds a full round trip. It is generous because the
	// backend cold-starts on its hosting platform.
	DefaultTimeout = 30 * time.Second

	// maxAttempts caps dispatches of one logical request. Only transport
	// failures without a response are retried.
	maxAttempts = 3

	// healthTimeout bounds the health probe, tighter than the request
	// deadline so a cold backend is reported promptly.
	healthTimeout = 10 * time.Second
)

// Config holds client configuration. BaseURL is resolved once per client
// lifetime, before the client is constructed.
type Config struct {
	BaseURL string
	Timeout time.Duration
	Debug   bool
}

// Client is the single pipeline every domain service calls through.
type Client struct {
	base string
	hc   *http.Client
}

// New creates a client whose requests carry the bearer token from the
// session store and whose authorization failures tear the session down
// through nav.
func New(cfg Config, store *session.Store, nav Navigator) *Client {
	return newClient(cfg, store, nav, http.DefaultTransport)
}

// NewCaching creates a client identical to New but with an in-memory HTTP
// cache beneath the auth transport. Suitable for read-mostly endpoints
// such as the dashboard aggregates.
func NewCaching(cfg Config, store *session.Store, nav Navigator) *Client {
	return newClient(cfg, store, nav, httpcache.NewTransport(httpcache.NewMemoryCache()))
}

func newClient(cfg Config, store *session.Store, nav Navigator, base http.RoundTripper) *Client {
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = DefaultTimeout
	}

	return &Client{
		base: strings.TrimSuffix(cfg.BaseURL, "/"),
		hc: &http.Client{
			Timeout: timeout,
			Transport: &authTransport{
				base:  base,
				store: store,
				nav:   nav,
			},
		},
	}
}

// BaseURL returns the resolved backend endpoint.
func (c *Client) BaseURL() string {
	return c.base
}

// Get issues a GET and decodes the JSON response into out.
func (c *Client) Get(ctx context.Context, path string, out any) error {
	return c.do(ctx, http.MethodGet, path, "", nil, out)
}

// Post issues a POST with a JSON body and decodes the response into out.
func (c *Client) Post(ctx context.Context, path string, body, out any) error {
	data, err := marshalBody(body)
	if err != nil {
		return &Error{Kind: KindRequestSetup, Method: http.MethodPost, Path: path, cause: err}
	}
	return c.do(ctx, http.MethodPost, path, "application/json", data, out)
}

// Put issues a PUT with a JSON body and decodes the response into out.
func (c *Client) Put(ctx context.Context, path string, body, out any) error {
	data, err := marshalBody(body)
	if err != nil {
		return &Error{Kind: KindRequestSetup, Method: http.MethodPut, Path: path, cause: err}
	}
	return c.do(ctx, http.MethodPut, path, "application/json", data, out)
}

// Delete issues a DELETE and decodes the response into out.
func (c *Client) Delete(ctx context.Context, path string, out any) error {
	return c.do(ctx, http.MethodDelete, path, "", nil, out)
}

// Upload issues a multipart POST with a single file field and decodes the
// response into out. Everything else about the call follows the uniform
// contract.
func (c *Client) Upload(ctx context.Context, path, field, filename string, r io.Reader, out any) error {
	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)

	part, err := w.CreateFormFile(field, filename)
	if err != nil {
		return &Error{Kind: KindRequestSetup, Method: http.MethodPost, Path: path, cause: err}
	}
	if _, err := io.Copy(part, r); err != nil {
		return &Error{Kind: KindRequestSetup, Method: http.MethodPost, Path: path, cause: err}
	}
	if err := w.Close(); err != nil {
		return &Error{Kind: KindRequestSetup, Method: http.MethodPost, Path: path, cause: err}
	}

	return c.do(ctx, http.MethodPost, path, w.FormDataContentType(), buf.Bytes(), out)
}

// CheckHealth probes the backend's health endpoint, which lives beside
// the API root rather than under it. The probe carries no credentials
// and runs outside the pipeline, so it can never trigger a session
// teardown, and it is never retried.
func (c *Client) CheckHealth(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, healthTimeout)
	defer cancel()

	target := strings.TrimSuffix(c.base, "/api") + "/health"
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, target, nil)
	if err != nil {
		return &Error{Kind: KindRequestSetup, Method: http.MethodGet, Path: "/health", cause: err}
	}

	resp, err := (&http.Client{Timeout: healthTimeout}).Do(req)
	if err != nil {
		kind := KindUnreachable
		if isTimeout(err) {
			kind = KindTimeout
		}
		log.Warn().Err(err).Msg("backend health check failed")
		return &Error{Kind: kind, Method: http.MethodGet, Path: "/health", cause: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 400 {
		return &Error{
			Kind:   classifyStatus(resp.StatusCode),
			Method: http.MethodGet,
			Path:   "/health",
			Status: resp.StatusCode,
		}
	}

	log.Debug().Int("status", resp.StatusCode).Msg("backend healthy")

	return nil
}

func marshalBody(body any) ([]byte, error) {
	if body == nil {
		return nil, nil
	}
	return json.Marshal(body)
}

// do dispatches one logical request. Stages are strictly ordered: the
// request is tagged with its teardown guard, augmented by the transport,
// transmitted, and its outcome classified after the response arrives.
func (c *Client) do(ctx context.Context, method, path, contentType string, body []byte, out any) error {
	ctx = withTeardownGuard(ctx)
	target := c.base + path

	// Surface malformed targets before anything is dispatched.
	if _, err := http.NewRequestWithContext(ctx, method, target, nil); err != nil {
		return &Error{Kind: KindRequestSetup, Method: method, Path: path, cause: err}
	}

	started := time.Now()

	operation := func() (*http.Response, error) {
		req, err := http.NewRequestWithContext(ctx, method, target, bytes.NewReader(body))
		if err != nil {
			return nil, backoff.Permanent(err)
		}
		if contentType != "" {
			req.Header.Set("Content-Type", contentType)
		}

		resp, err := c.hc.Do(req)
		if err != nil {
			if isTimeout(err) {
				// The deadline covers the whole round trip; there is no
				// budget left to retry in.
				return nil, backoff.Permanent(err)
			}
			log.Debug().Err(err).Str("method", method).Str("path", path).
				Msg("transport failure, will retry")
			return nil, err
		}
		return resp, nil
	}

	resp, err := backoff.Retry(ctx, operation,
		backoff.WithBackOff(backoff.NewExponentialBackOff()),
		backoff.WithMaxTries(maxAttempts))
	if err != nil {
		kind := KindUnreachable
		if isTimeout(err) {
			kind = KindTimeout
		}
		log.Error().Err(err).Str("method", method).Str("path", path).
			Dur("duration", time.Since(started)).Msg("api call failed without a response")
		return &Error{Kind: kind, Method: method, Path: path, cause: err}
	}
	defer resp.Body.Close()

	logEvent := log.Debug()
	if resp.StatusCode >= 400 {
		logEvent = log.Warn()
	}
	logEvent.Str("method", method).Str("path", path).Int("status", resp.StatusCode).
		Dur("duration", time.Since(started)).Msg("api call")

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return &Error{Kind: KindUnreachable, Method: method, Path: path, Status: resp.StatusCode, cause: err}
	}

	if resp.StatusCode >= 400 {
		return &Error{
			Kind:    classifyStatus(resp.StatusCode),
			Method:  method,
			Path:    path,
			Status:  resp.StatusCode,
			Message: serverMessage(data),
		}
	}

	if out == nil || len(data) == 0 {
		return nil
	}

	if err := json.Unmarshal(data, out); err != nil {
		return &Error{Kind: KindMalformedResponse, Method: method, Path: path, Status: resp.StatusCode, cause: err}
	}

	return nil
}

// serverMessage extracts the backend's human-readable message from an
// error body, when it has one.
func serverMessage(data []byte) string {
	var body struct {
		Message string `json:"message"`
		Error   string `json:"error"`
	}
	if err := json.Unmarshal(data, &body); err != nil {
		return ""
	}
	if body.Message != "" {
		return body.Message
	}
	return body.Error
}

func isTimeout(err error) bool {
	if errors.Is(err, context.DeadlineExceeded) {
		return true
	}
	var netErr net.Error
	return errors.As(err, &netErr) && netErr.Timeout()
}
