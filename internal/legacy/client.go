// Package legacy pushes new candidates to the external legacy recruitment
// system. The remote is a black box: only the response status is read.
package legacy

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/cockroachdb/errors"
	"go.uber.org/zap"
	"golang.org/x/time/rate"

	"jobmate/recruitment-service/internal/apperr"
	"jobmate/recruitment-service/internal/logger"
)

const (
	apiKeyHeader = "X-API-KEY"

	msgConflict   = "Candidate with this email already exists in the legacy system"
	msgTimeout    = "Legacy system did not respond in time"
	msgBadRequest = "Legacy system rejected the candidate data"
	msgFailed     = "Failed to push candidate to the legacy system"
)

// Config is the construction-time configuration of a Client.
type Config struct {
	BaseURL string
	APIKey  string
	// Retries is the total number of attempts, including the first one.
	Retries int
	// Backoff is multiplied by the attempt number to get the wait before the
	// next attempt.
	Backoff time.Duration
	// Timeout bounds a single HTTP attempt.
	Timeout time.Duration
	// RPS caps outbound requests per second. Zero or less means unlimited.
	RPS float64
}

// DefaultConfig returns the documented defaults: 3 attempts, 1s linear
// backoff, 15s per attempt, no rate limit.
func DefaultConfig() Config {
	return Config{
		Retries: 3,
		Backoff: time.Second,
		Timeout: 15 * time.Second,
	}
}

// Payload is the reduced candidate summary the legacy system accepts.
type Payload struct {
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
	Email     string `json:"email"`
}

// Client talks to the legacy system with bounded retry on 504.
type Client struct {
	cfg     Config
	http    *http.Client
	limiter *rate.Limiter
	log     *zap.Logger
}

// NewClient constructs a Client. Missing Retries or Backoff fall back to the
// defaults.
func NewClient(cfg Config, log *zap.Logger) *Client {
	def := DefaultConfig()
	if cfg.Retries < 1 {
		cfg.Retries = def.Retries
	}
	if cfg.Backoff <= 0 {
		cfg.Backoff = def.Backoff
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = def.Timeout
	}
	cfg.BaseURL = strings.TrimRight(cfg.BaseURL, "/")

	limit := rate.Inf
	if cfg.RPS > 0 {
		limit = rate.Limit(cfg.RPS)
	}

	return &Client{
		cfg:     cfg,
		http:    &http.Client{Timeout: cfg.Timeout},
		limiter: rate.NewLimiter(limit, 1),
		log:     logger.Component(log, "legacy"),
	}
}

// Push sends p to POST {BaseURL}/candidates. A 504 on any attempt but the last
// one is retried after Backoff × attempt; every other outcome ends the loop.
// The last observed status decides the returned error.
func (c *Client) Push(ctx context.Context, p Payload) error {
	body, err := json.Marshal(p)
	if err != nil {
		return errors.Wrap(err, "marshal legacy payload")
	}
	endpoint := c.cfg.BaseURL + "/candidates"

	var status int
	for attempt := 1; attempt <= c.cfg.Retries; attempt++ {
		if err := c.limiter.Wait(ctx); err != nil {
			return apperr.Server(msgFailed).WithCause(err)
		}

		status, err = c.post(ctx, endpoint, body)
		if err != nil {
			c.log.Warn("legacy push failed",
				zap.String(logger.FieldEmail, p.Email),
				zap.Int(logger.FieldAttempt, attempt),
				zap.Error(err),
			)
			return apperr.Server(msgFailed).WithCause(err)
		}

		if status >= 200 && status < 300 {
			c.log.Debug("legacy push accepted",
				zap.String(logger.FieldEmail, p.Email),
				zap.Int(logger.FieldAttempt, attempt),
				zap.Int(logger.FieldStatus, status),
			)
			return nil
		}

		if status != http.StatusGatewayTimeout || attempt == c.cfg.Retries {
			break
		}

		delay := c.cfg.Backoff * time.Duration(attempt)
		c.log.Info("legacy system timed out, retrying",
			zap.String(logger.FieldEmail, p.Email),
			zap.Int(logger.FieldAttempt, attempt),
			zap.Duration(logger.FieldDelay, delay),
		)
		if err := sleep(ctx, delay); err != nil {
			return apperr.Server(msgFailed).WithCause(err)
		}
	}

	c.log.Warn("legacy push gave up",
		zap.String(logger.FieldEmail, p.Email),
		zap.Int(logger.FieldStatus, status),
	)
	return statusError(status)
}

func (c *Client) post(ctx context.Context, endpoint string, body []byte) (int, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(body))
	if err != nil {
		return 0, errors.Wrap(err, "build legacy request")
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set(apiKeyHeader, c.cfg.APIKey)

	resp, err := c.http.Do(req)
	if err != nil {
		return 0, errors.Wrap(err, "http POST")
	}
	defer resp.Body.Close()
	// Drain so the connection can be reused.
	_, _ = io.Copy(io.Discard, resp.Body)

	return resp.StatusCode, nil
}

// statusError maps the final non-2xx status to the error taxonomy.
func statusError(status int) error {
	switch status {
	case http.StatusConflict:
		return apperr.Conflict(msgConflict)
	case http.StatusGatewayTimeout:
		return apperr.Timeout(msgTimeout)
	case http.StatusBadRequest:
		return apperr.BadRequest(msgBadRequest)
	default:
		return apperr.Server(msgFailed)
	}
}

func sleep(ctx context.Context, d time.Duration) error {
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-t.C:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// Nop is used when no legacy endpoint is configured.
type Nop struct{}

// Push does nothing.
func (Nop) Push(context.Context, Payload) error { return nil }
