package service

import (
	"context"
	"time"

	"github.com/freshpex/ffb-dashboard-bfa-go/internal/domain"

	"go.opentelemetry.io/otel/attribute"
	"golang.org/x/sync/errgroup"
)

// ============================================================
// Dashboard Overview
// ============================================================

// GetOverview assembles the landing screen aggregate with concurrent
// core-bank fetches. A single failing fetch fails the whole overview; the
// frontend retries rather than rendering partial balances.
func (s *DashboardService) GetOverview(ctx context.Context, customerID string) (*domain.DashboardOverview, error) {
	ctx, span := tracer.Start(ctx, "DashboardService.GetOverview")
	defer span.End()
	span.SetAttributes(attribute.String("customer.id", customerID))

	start := time.Now()
	defer func() { s.metrics.RecordRequestDuration("dashboard_overview", time.Since(start)) }()

	var (
		balance     float64
		cards       []domain.CardAPIResponse
		investments []domain.InvestmentAPIResponse
		stats       *domain.ReferralStats
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		balance, err = s.GetBalance(gctx, customerID)
		return err
	})
	g.Go(func() error {
		var err error
		cards, err = s.ListCards(gctx, customerID)
		return err
	})
	g.Go(func() error {
		var err error
		investments, err = s.ListInvestments(gctx, customerID)
		return err
	})
	g.Go(func() error {
		var err error
		stats, err = s.GetReferralStats(gctx, customerID)
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	active := make([]domain.InvestmentAPIResponse, 0, len(investments))
	var investedTotal float64
	for _, inv := range investments {
		if inv.Status != domain.InvestmentStatusActive {
			continue
		}
		active = append(active, inv)
		investedTotal += inv.Principal
	}

	return &domain.DashboardOverview{
		Balance:           balance,
		Cards:             cards,
		ActiveInvestments: active,
		InvestedTotal:     investedTotal,
		ReferralStats:     stats,
	}, nil
}
