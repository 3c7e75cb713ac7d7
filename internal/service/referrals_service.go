package service

import (
	"context"
	"time"

	"github.com/freshpex/ffb-dashboard-bfa-go/internal/domain"
	"github.com/freshpex/ffb-dashboard-bfa-go/internal/txfilter"

	"go.opentelemetry.io/otel/attribute"
)

// ============================================================
// Referral Commissions
// ============================================================

// commissionAdapter maps referral commissions into the filter engine. The
// commission type plays the category role.
func commissionAdapter() txfilter.Adapter[domain.ReferralCommission] {
	return txfilter.Adapter[domain.ReferralCommission]{
		Category:  func(c domain.ReferralCommission) string { return string(c.Type) },
		Timestamp: func(c domain.ReferralCommission) time.Time { return c.Date },
		SearchFields: func(c domain.ReferralCommission) []string {
			return []string{c.ReferredName, c.ReferredEmail}
		},
		SortKeys: map[string]func(a, b domain.ReferralCommission) int{
			"date":   func(a, b domain.ReferralCommission) int { return txfilter.CompareTime(a.Date, b.Date) },
			"amount": func(a, b domain.ReferralCommission) int { return txfilter.CompareFloat64(a.Amount, b.Amount) },
			"name":   func(a, b domain.ReferralCommission) int { return txfilter.CompareString(a.ReferredName, b.ReferredName) },
		},
	}
}

// ListCommissions filters and paginates the customer's commission history.
// status narrows by payout state before the filter engine runs.
func (s *DashboardService) ListCommissions(ctx context.Context, customerID string, spec txfilter.Spec, status string, page, pageSize int) ([]domain.ReferralCommission, domain.Pagination, error) {
	ctx, span := tracer.Start(ctx, "DashboardService.ListCommissions")
	defer span.End()
	span.SetAttributes(attribute.String("customer.id", customerID))

	s.metrics.IncrVisitorHit("referrals")

	commissions, err := s.store.ListCommissions(ctx, customerID)
	if err != nil {
		return nil, domain.Pagination{}, err
	}

	if status != "" && status != "all" {
		kept := make([]domain.ReferralCommission, 0, len(commissions))
		for _, c := range commissions {
			if string(c.Status) == status {
				kept = append(kept, c)
			}
		}
		commissions = kept
	}

	filtered := txfilter.Filter(commissions, spec, commissionAdapter())
	items, pagination := paginate(filtered, page, pageSize)
	return items, pagination, nil
}

// GetReferralStats aggregates commission totals for the referrals screen.
func (s *DashboardService) GetReferralStats(ctx context.Context, customerID string) (*domain.ReferralStats, error) {
	ctx, span := tracer.Start(ctx, "DashboardService.GetReferralStats")
	defer span.End()

	commissions, err := s.store.ListCommissions(ctx, customerID)
	if err != nil {
		return nil, err
	}

	stats := &domain.ReferralStats{
		ByType: make(map[domain.CommissionType]float64),
	}
	for _, c := range commissions {
		stats.TotalEarned += c.Amount
		stats.TotalCount++
		stats.ByType[c.Type] += c.Amount
		switch c.Status {
		case domain.CommissionStatusPaid:
			stats.PaidAmount += c.Amount
		default:
			stats.PendingAmount += c.Amount
		}
	}
	return stats, nil
}
