// Package api is the HTTP client for the SwapMart remote API. It applies the
// cross-cutting request/response policy: bearer-token injection on the way out,
// forced session invalidation on 401 on the way in, and normalization of every
// failure into *model.APIError.
package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/gofrs/uuid/v5"
	"go.uber.org/zap"

	"github.com/dkolesn/swapmart/internal/errs"
	"github.com/dkolesn/swapmart/internal/model"
	"github.com/dkolesn/swapmart/internal/tokenstore"
)

// maxBodyBytes caps how much of a response body is read when parsing errors.
const maxBodyBytes = 1 << 20

// Client issues requests against the remote API. The token source and the
// unauthorized hook are injected explicitly; the client never reaches into
// shared storage behind the credential store's back.
type Client struct {
	base           string
	http           *http.Client
	tokens         tokenstore.Store
	onUnauthorized func()
	log            *zap.Logger
}

// New constructs a Client. baseURL is the API root (e.g. http://127.0.0.1:8000/api).
// httpClient may be nil, in which case http.DefaultClient is used; the wrapper
// adds no timeout of its own.
func New(baseURL string, httpClient *http.Client, tokens tokenstore.Store, log *zap.Logger) *Client {
	if httpClient == nil {
		httpClient = http.DefaultClient
	}
	if log == nil {
		log = zap.NewNop()
	}
	return &Client{
		base:   strings.TrimRight(baseURL, "/"),
		http:   httpClient,
		tokens: tokens,
		log:    log,
	}
}

// SetUnauthorizedHook installs the callback invoked when any response comes
// back 401. The hook runs before the error is returned to the caller; the
// caller's request still fails.
func (c *Client) SetUnauthorizedHook(fn func()) { c.onUnauthorized = fn }

// do sends one request and decodes a JSON response into out (when non-nil).
// Every failure path returns *model.APIError wrapping an errs sentinel.
func (c *Client) do(ctx context.Context, method, path string, body io.Reader, contentType string, out any) error {
	req, err := http.NewRequestWithContext(ctx, method, c.base+path, body)
	if err != nil {
		return &model.APIError{Message: "invalid request: " + err.Error(), Err: errs.ErrValidation}
	}
	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}
	req.Header.Set("Accept", "application/json")

	// Outgoing hook: current token read immediately before send.
	bearer := false
	if tok, terr := c.tokens.Load(); terr == nil && tok != "" {
		req.Header.Set("Authorization", "Bearer "+tok)
		bearer = true
	}
	reqID := requestID()
	req.Header.Set("X-Request-Id", reqID)

	start := time.Now()
	resp, err := c.http.Do(req)
	if err != nil {
		c.log.Debug("http request failed",
			zap.String("method", method),
			zap.String("path", path),
			zap.String("request_id", reqID),
			zap.Error(err),
		)
		return &model.APIError{Message: "no response from server", Err: errs.ErrUnavailable}
	}
	defer resp.Body.Close()

	c.log.Debug("http",
		zap.String("method", method),
		zap.String("path", path),
		zap.Int("status", resp.StatusCode),
		zap.Duration("dur", time.Since(start)),
		zap.String("request_id", reqID),
	)

	data, err := io.ReadAll(io.LimitReader(resp.Body, maxBodyBytes))
	if err != nil {
		return &model.APIError{Message: "reading response: " + err.Error(), Err: errs.ErrUnavailable}
	}

	if resp.StatusCode == http.StatusUnauthorized && bearer {
		// Incoming hook: a 401 on a bearer-authenticated request is the sole
		// signal for session expiry. Clear the durable token, notify the
		// credential store, then fail the caller's request. A 401 on an
		// unauthenticated request (bad login) is an ordinary auth error and
		// leaves session state alone.
		_ = c.tokens.Clear()
		if c.onUnauthorized != nil {
			c.onUnauthorized()
		}
		return normalizeError(resp.StatusCode, data)
	}
	if resp.StatusCode >= 400 {
		return normalizeError(resp.StatusCode, data)
	}

	if out == nil {
		return nil
	}
	if err := json.Unmarshal(data, out); err != nil {
		return &model.APIError{Message: "malformed response body", Err: errs.ErrUnavailable}
	}
	return nil
}

func (c *Client) get(ctx context.Context, path string, out any) error {
	return c.do(ctx, http.MethodGet, path, nil, "", out)
}

func (c *Client) postJSON(ctx context.Context, path string, in, out any) error {
	b, err := json.Marshal(in)
	if err != nil {
		return &model.APIError{Message: "encoding request: " + err.Error(), Err: errs.ErrValidation}
	}
	return c.do(ctx, http.MethodPost, path, bytes.NewReader(b), "application/json", out)
}

// normalizeError maps a non-2xx response to *model.APIError, preserving the
// server's message and field-level details when the body carries them.
func normalizeError(status int, body []byte) *model.APIError {
	apiErr := &model.APIError{}
	_ = json.Unmarshal(body, apiErr)

	switch {
	case status == http.StatusUnauthorized:
		apiErr.Err = errs.ErrUnauthorized
	case status == http.StatusNotFound:
		apiErr.Err = errs.ErrNotFound
	case status == http.StatusBadRequest || status == http.StatusUnprocessableEntity:
		apiErr.Err = errs.ErrValidation
	default:
		apiErr.Err = errs.ErrUnavailable
	}
	if apiErr.Message == "" {
		apiErr.Message = fmt.Sprintf("request failed (%s)", http.StatusText(status))
	}
	return apiErr
}

func requestID() string {
	id, err := uuid.NewV4()
	if err != nil {
		return ""
	}
	return id.String()
}
