// Package service provides the business logic layer (use cases).
// DashboardService orchestrates the dashboard screens: payment cards,
// investments, referrals, deposits/withdrawals, and the admin review queue.
package service

import (
	"time"

	"github.com/freshpex/ffb-dashboard-bfa-go/internal/domain"
	"github.com/freshpex/ffb-dashboard-bfa-go/internal/infra/observability"
	"github.com/freshpex/ffb-dashboard-bfa-go/internal/paging"
	"github.com/freshpex/ffb-dashboard-bfa-go/internal/port"

	"go.opentelemetry.io/otel"
	"go.uber.org/zap"
)

var tracer = otel.Tracer("service/dashboard")

const plansCacheKey = "plans"

// DashboardService orchestrates all dashboard operations via the core-bank
// store. Plan reference data and per-customer card lists are cached with a
// TTL; a fetch replaces the cached slice wholesale and every mutation drops
// the key, so the next read is authoritative.
type DashboardService struct {
	store     port.DashboardStore
	metrics   *observability.Metrics
	logger    *zap.Logger
	planCache port.Cache[[]domain.InvestmentPlan]
	cardCache port.Cache[[]domain.Card]
}

// NewDashboardService creates a new dashboard service.
func NewDashboardService(
	store port.DashboardStore,
	metrics *observability.Metrics,
	logger *zap.Logger,
	planCache port.Cache[[]domain.InvestmentPlan],
	cardCache port.Cache[[]domain.Card],
) *DashboardService {
	return &DashboardService{
		store:     store,
		metrics:   metrics,
		logger:    logger,
		planCache: planCache,
		cardCache: cardCache,
	}
}

// paginate slices items for the requested page and builds the page envelope
// every list endpoint returns.
func paginate[T any](items []T, page, pageSize int) ([]T, domain.Pagination) {
	p := paging.Compute(len(items), pageSize, page)
	return paging.Slice(items, p), domain.Pagination{
		Page:  p.Current,
		Pages: p.PageCount,
		Total: len(items),
		Limit: pageSize,
	}
}

func formatDate(t time.Time) string {
	return t.Format(time.RFC3339)
}
