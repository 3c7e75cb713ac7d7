package corebank_test

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/freshpex/ffb-dashboard-bfa-go/internal/domain"
	"github.com/freshpex/ffb-dashboard-bfa-go/internal/infra/corebank"
	"github.com/freshpex/ffb-dashboard-bfa-go/internal/infra/observability"
	"github.com/freshpex/ffb-dashboard-bfa-go/internal/infra/resilience"

	"go.uber.org/zap"
)

func newTestClient(t *testing.T, baseURL string, cfg resilience.Config) (*corebank.Client, *observability.Metrics) {
	t.Helper()
	metrics := observability.NewMetrics()
	cb := resilience.NewCircuitBreaker(t.Name())
	httpClient := &http.Client{Timeout: 5 * time.Second}
	return corebank.NewClient(httpClient, baseURL, "test-key", cb, cfg, metrics, zap.NewNop()), metrics
}

func coreBankErrors(t *testing.T, metrics *observability.Metrics) float64 {
	t.Helper()
	families, err := metrics.Registry.Gather()
	if err != nil {
		t.Fatalf("gather metrics: %v", err)
	}
	for _, mf := range families {
		if mf.GetName() != "dashboard_corebank_errors_total" {
			continue
		}
		var total float64
		for _, m := range mf.GetMetric() {
			total += m.GetCounter().GetValue()
		}
		return total
	}
	return 0
}

func TestClient_NotFoundSkipsRetrySchedule(t *testing.T) {
	var hits int64
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt64(&hits, 1)
		w.WriteHeader(http.StatusNotFound)
	}))
	defer server.Close()

	client, _ := newTestClient(t, server.URL, resilience.Config{MaxRetries: 3, InitialBackoff: 10 * time.Millisecond, MaxConcurrency: 10})

	_, err := client.GetCard(context.Background(), "card-missing")
	var notFound *domain.ErrNotFound
	if !errors.As(err, &notFound) {
		t.Fatalf("expected not-found error, got %v", err)
	}
	if got := atomic.LoadInt64(&hits); got != 1 {
		t.Errorf("expected 1 request for a 404, got %d", got)
	}
}

func TestClient_FailureIncrementsErrorCounter(t *testing.T) {
	var hits int64
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt64(&hits, 1)
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer server.Close()

	client, metrics := newTestClient(t, server.URL, resilience.Config{MaxRetries: 1, InitialBackoff: 10 * time.Millisecond, MaxConcurrency: 10})

	_, err := client.ListPlans(context.Background())
	var external *domain.ErrExternalService
	if !errors.As(err, &external) {
		t.Fatalf("expected external-service error, got %v", err)
	}
	if got := atomic.LoadInt64(&hits); got != 2 {
		t.Errorf("expected 2 requests (1 + 1 retry), got %d", got)
	}
	if got := coreBankErrors(t, metrics); got != 1 {
		t.Errorf("expected core-bank error counter at 1, got %v", got)
	}
}

func TestClient_BulkheadCapsConcurrentCalls(t *testing.T) {
	started := make(chan struct{}, 1)
	release := make(chan struct{})
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		started <- struct{}{}
		<-release
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"data":[]}`))
	}))
	defer server.Close()

	client, _ := newTestClient(t, server.URL, resilience.Config{MaxRetries: 0, InitialBackoff: 10 * time.Millisecond, MaxConcurrency: 1})

	done := make(chan error, 1)
	go func() {
		_, err := client.ListPlans(context.Background())
		done <- err
	}()
	<-started

	// The single slot is held by the in-flight call; the second call must
	// wait and give up when its context expires.
	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()

	_, err := client.ListPlans(ctx)
	var timeout *domain.ErrTimeout
	if !errors.As(err, &timeout) {
		t.Fatalf("expected timeout while the bulkhead is full, got %v", err)
	}

	close(release)
	if err := <-done; err != nil {
		t.Fatalf("expected the in-flight call to finish cleanly, got %v", err)
	}
}
