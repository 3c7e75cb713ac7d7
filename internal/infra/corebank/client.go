// Package corebank provides the client for the FFB core-banking REST API,
// the sole owner of every entity the dashboard shows. The client implements
// the store ports; every call goes through the shared circuit breaker and
// retry policy.
package corebank

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"

	"github.com/freshpex/ffb-dashboard-bfa-go/internal/domain"
	"github.com/freshpex/ffb-dashboard-bfa-go/internal/infra/observability"
	"github.com/freshpex/ffb-dashboard-bfa-go/internal/infra/resilience"

	"github.com/sony/gobreaker"
	"go.opentelemetry.io/otel"
	"go.uber.org/zap"
)

var tracer = otel.Tracer("corebank")

// Client wraps HTTP calls to the core-bank REST API.
type Client struct {
	httpClient *http.Client
	baseURL    string
	apiKey     string
	cb         *gobreaker.CircuitBreaker
	bulkhead   *resilience.Bulkhead
	cfg        resilience.Config
	metrics    *observability.Metrics
	logger     *zap.Logger
}

// NewClient creates a core-bank client. The bulkhead is sized by
// cfg.MaxConcurrency.
func NewClient(httpClient *http.Client, baseURL, apiKey string, cb *gobreaker.CircuitBreaker, cfg resilience.Config, metrics *observability.Metrics, logger *zap.Logger) *Client {
	maxConcurrency := cfg.MaxConcurrency
	if maxConcurrency <= 0 {
		maxConcurrency = 50
	}
	return &Client{
		httpClient: httpClient,
		baseURL:    baseURL,
		apiKey:     apiKey,
		cb:         cb,
		bulkhead:   resilience.NewBulkhead(maxConcurrency),
		cfg:        cfg,
		metrics:    metrics,
		logger:     logger,
	}
}

// doRequest executes an authenticated request against the core bank.
// headers may be nil; payload may be nil for GET/DELETE.
func (c *Client) doRequest(ctx context.Context, method, path string, payload any, headers map[string]string) ([]byte, error) {
	url := fmt.Sprintf("%s%s", c.baseURL, path)

	var body io.Reader
	if payload != nil {
		raw, err := json.Marshal(payload)
		if err != nil {
			return nil, fmt.Errorf("encode request body: %w", err)
		}
		body = bytes.NewReader(raw)
	}

	req, err := http.NewRequestWithContext(ctx, method, url, body)
	if err != nil {
		c.logger.Error("corebank: failed to create request",
			zap.String("method", method),
			zap.String("path", path),
			zap.Error(err),
		)
		return nil, err
	}

	req.Header.Set("Content-Type", "application/json")
	if c.apiKey != "" {
		req.Header.Set("Authorization", fmt.Sprintf("Bearer %s", c.apiKey))
	}
	for k, v := range headers {
		req.Header.Set(k, v)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.logger.Error("corebank: request failed",
			zap.String("method", method),
			zap.String("path", path),
			zap.Error(err),
		)
		return nil, err
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		c.logger.Error("corebank: failed to read response body",
			zap.String("method", method),
			zap.String("path", path),
			zap.Error(err),
		)
		return nil, err
	}

	if resp.StatusCode == http.StatusNotFound {
		return nil, nil // no data
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		c.logger.Warn("corebank: non-2xx response",
			zap.String("method", method),
			zap.String("path", path),
			zap.Int("status", resp.StatusCode),
			zap.String("body", string(raw)),
		)
		return nil, fmt.Errorf("core bank returned status %d: %s", resp.StatusCode, string(raw))
	}

	c.logger.Debug("corebank: request OK",
		zap.String("method", method),
		zap.String("path", path),
		zap.Int("status", resp.StatusCode),
	)

	return raw, nil
}

// call runs fn behind the bulkhead, circuit breaker, and retry policy,
// wrapping failures as external-service errors attributed to the named
// endpoint. Not-found responses skip the retry schedule.
func (c *Client) call(ctx context.Context, service string, fn func() error) error {
	if err := c.bulkhead.Acquire(ctx); err != nil {
		c.metrics.IncrExternalError(service)
		return &domain.ErrTimeout{Operation: service}
	}
	defer c.bulkhead.Release()

	attempt := func() error {
		err := fn()
		var notFound *domain.ErrNotFound
		if errors.As(err, &notFound) {
			return resilience.Permanent(err)
		}
		return err
	}

	_, err := c.cb.Execute(func() (any, error) {
		return nil, resilience.RetryWithBackoff(ctx, c.cfg, attempt)
	})
	if err != nil {
		if err == gobreaker.ErrOpenState || err == gobreaker.ErrTooManyRequests {
			c.metrics.IncrExternalError(service)
			return &domain.ErrCircuitOpen{Service: service}
		}
		var notFound *domain.ErrNotFound
		if errors.As(err, &notFound) {
			return notFound
		}
		c.metrics.IncrExternalError(service)
		return &domain.ErrExternalService{Service: service, Err: err}
	}
	return nil
}
