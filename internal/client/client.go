package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/cenkalti/backoff/v4"
	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/sync/singleflight"
)

// TokenSource supplies the bearer token for authenticated requests.
type TokenSource interface {
	Token() (string, error)
}

// Config holds everything the client needs to reach the canteen backend.
type Config struct {
	BaseURL    string
	Timeout    time.Duration
	MaxRetries uint64
	CSRFToken  string
	Tokens     TokenSource
}

// Client handles communication with the canteen backend
type Client struct {
	baseURL    string
	csrfToken  string
	tokens     TokenSource
	maxRetries uint64
	httpClient *http.Client
	logger     *zap.Logger
	group      singleflight.Group
}

// New creates a new canteen backend client
func New(cfg Config, logger *zap.Logger) *Client {
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	return &Client{
		baseURL:    cfg.BaseURL,
		csrfToken:  cfg.CSRFToken,
		tokens:     cfg.Tokens,
		maxRetries: cfg.MaxRetries,
		httpClient: &http.Client{
			Timeout: timeout,
		},
		logger: logger,
	}
}

// newRequest builds a request with auth headers applied.
func (c *Client) newRequest(ctx context.Context, method, path string, body io.Reader) (*http.Request, error) {
	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	req.Header.Set("Accept", "application/json")
	req.Header.Set("X-Requested-With", "XMLHttpRequest")

	if c.tokens != nil {
		token, err := c.tokens.Token()
		if err != nil {
			c.logger.Warn("no session token available", zap.Error(err))
		} else if token != "" {
			req.Header.Set("Authorization", "Bearer "+token)
		}
	}

	return req, nil
}

// get issues a GET request and decodes the JSON response into out. Transient
// failures (transport errors and 5xx responses) are retried with exponential
// backoff; 4xx responses are not.
func (c *Client) get(ctx context.Context, path string, out interface{}) error {
	operation := func() error {
		req, err := c.newRequest(ctx, http.MethodGet, path, nil)
		if err != nil {
			return backoff.Permanent(err)
		}

		err = c.do(req, out)
		if err != nil {
			var srvErr *ServerError
			if AsServerError(err, &srvErr) && srvErr.Status < http.StatusInternalServerError {
				return backoff.Permanent(err)
			}
			return err
		}
		return nil
	}

	policy := backoff.WithContext(
		backoff.WithMaxRetries(backoff.NewExponentialBackOff(), c.maxRetries), ctx)
	return backoff.Retry(operation, policy)
}

// post issues a mutating request. Mutations are never retried automatically;
// the user decides whether to try again. The anti-forgery token is attached
// when the client has one, and each mutation carries a fresh idempotency key
// so an accidental resubmit is safe for the backend to drop.
func (c *Client) post(ctx context.Context, path string, body, out interface{}) error {
	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("failed to marshal request body: %w", err)
		}
		reader = bytes.NewReader(payload)
	}

	req, err := c.newRequest(ctx, http.MethodPost, path, reader)
	if err != nil {
		return err
	}

	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Idempotency-Key", uuid.NewString())
	if c.csrfToken != "" {
		req.Header.Set("X-CSRFToken", c.csrfToken)
	}

	return c.do(req, out)
}

// do sends the request and decodes the response. Non-2xx responses become a
// *ServerError carrying the backend's message when one can be decoded.
func (c *Client) do(req *http.Request, out interface{}) error {
	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.logger.Error("request to canteen backend failed",
			zap.String("method", req.Method),
			zap.String("url", req.URL.String()),
			zap.Error(err))
		return &NetworkError{URL: req.URL.Path, Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		srvErr := &ServerError{Status: resp.StatusCode}
		var envelope struct {
			Message string `json:"message"`
			Error   string `json:"error"`
		}
		if err := json.NewDecoder(resp.Body).Decode(&envelope); err == nil {
			if envelope.Message != "" {
				srvErr.Message = envelope.Message
			} else {
				srvErr.Message = envelope.Error
			}
		}
		c.logger.Error("canteen backend returned error",
			zap.String("method", req.Method),
			zap.String("url", req.URL.String()),
			zap.Int("status", resp.StatusCode),
			zap.String("message", srvErr.Message))
		return srvErr
	}

	if out == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		c.logger.Error("failed to decode response",
			zap.String("url", req.URL.String()),
			zap.Error(err))
		return fmt.Errorf("failed to decode response: %w", err)
	}
	return nil
}
