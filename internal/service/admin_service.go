package service

import (
	"context"
	"fmt"
	"time"

	"github.com/freshpex/ffb-dashboard-bfa-go/internal/domain"
	"github.com/freshpex/ffb-dashboard-bfa-go/internal/txfilter"

	"go.opentelemetry.io/otel/attribute"
	"go.uber.org/zap"
)

// ============================================================
// Admin: card review queue, analytics
// ============================================================

// adminCardAdapter maps cards into the filter engine for the review queue.
// The card type plays the category role; status narrowing happens before the
// engine runs.
func adminCardAdapter() txfilter.Adapter[domain.Card] {
	return txfilter.Adapter[domain.Card]{
		Category:  func(c domain.Card) string { return string(c.Type) },
		Timestamp: func(c domain.Card) time.Time { return c.RequestedAt },
		SearchFields: func(c domain.Card) []string {
			return []string{c.HolderName, c.Email, c.Last4}
		},
		SortKeys: map[string]func(a, b domain.Card) int{
			"holderName":  func(a, b domain.Card) int { return txfilter.CompareString(a.HolderName, b.HolderName) },
			"requestedAt": func(a, b domain.Card) int { return txfilter.CompareTime(a.RequestedAt, b.RequestedAt) },
			"dailyLimit":  func(a, b domain.Card) int { return txfilter.CompareFloat64(a.Limits.Daily, b.Limits.Daily) },
			"balance":     func(a, b domain.Card) int { return txfilter.CompareFloat64(a.Balance, b.Balance) },
		},
	}
}

// ListAllCards is the admin review queue: every card across customers,
// filtered, sorted, and paginated.
func (s *DashboardService) ListAllCards(ctx context.Context, status string, spec txfilter.Spec, page, pageSize int) ([]domain.CardAPIResponse, domain.Pagination, error) {
	ctx, span := tracer.Start(ctx, "DashboardService.ListAllCards")
	defer span.End()

	s.metrics.IncrVisitorHit("admin")

	cards, err := s.store.ListAllCards(ctx)
	if err != nil {
		return nil, domain.Pagination{}, err
	}

	if status != "" && status != "all" {
		kept := make([]domain.Card, 0, len(cards))
		for _, c := range cards {
			if string(c.Status) == status {
				kept = append(kept, c)
			}
		}
		cards = kept
	}

	filtered := txfilter.Filter(cards, spec, adminCardAdapter())
	pageItems, pagination := paginate(filtered, page, pageSize)

	resp := make([]domain.CardAPIResponse, 0, len(pageItems))
	for i := range pageItems {
		resp = append(resp, *toCardResponse(&pageItems[i]))
	}
	return resp, pagination, nil
}

// ApproveCard moves a pending card request to active.
func (s *DashboardService) ApproveCard(ctx context.Context, cardID string) (*domain.CardAPIResponse, error) {
	ctx, span := tracer.Start(ctx, "DashboardService.ApproveCard")
	defer span.End()
	span.SetAttributes(attribute.String("card.id", cardID))

	card, err := s.store.GetCard(ctx, cardID)
	if err != nil {
		return nil, err
	}
	if card == nil {
		return nil, &domain.ErrNotFound{Resource: "card", ID: cardID}
	}
	if card.Status != domain.CardStatusPending {
		return nil, &domain.ErrValidation{Field: "status", Message: fmt.Sprintf("cannot approve card with status '%s'", card.Status)}
	}

	updated, err := s.store.UpdateCardStatus(ctx, cardID, domain.CardStatusActive, "")
	if err != nil {
		s.logger.Error("failed to approve card", zap.String("card_id", cardID), zap.Error(err))
		return nil, err
	}
	s.cardCache.Delete(updated.CustomerID)

	s.logger.Info("card approved",
		zap.String("card_id", cardID),
		zap.String("customer_id", updated.CustomerID),
	)
	return toCardResponse(updated), nil
}

// RejectCard rejects a pending card request with a required reason.
func (s *DashboardService) RejectCard(ctx context.Context, cardID, reason string) (*domain.CardAPIResponse, error) {
	ctx, span := tracer.Start(ctx, "DashboardService.RejectCard")
	defer span.End()
	span.SetAttributes(attribute.String("card.id", cardID))

	if reason == "" {
		return nil, &domain.ErrValidation{Field: "reason", Message: "required"}
	}

	card, err := s.store.GetCard(ctx, cardID)
	if err != nil {
		return nil, err
	}
	if card == nil {
		return nil, &domain.ErrNotFound{Resource: "card", ID: cardID}
	}
	if card.Status != domain.CardStatusPending {
		return nil, &domain.ErrValidation{Field: "status", Message: fmt.Sprintf("cannot reject card with status '%s'", card.Status)}
	}

	updated, err := s.store.UpdateCardStatus(ctx, cardID, domain.CardStatusRejected, reason)
	if err != nil {
		s.logger.Error("failed to reject card", zap.String("card_id", cardID), zap.Error(err))
		return nil, err
	}
	s.cardCache.Delete(updated.CustomerID)

	s.logger.Info("card rejected",
		zap.String("card_id", cardID),
		zap.String("customer_id", updated.CustomerID),
		zap.String("reason", reason),
	)
	return toCardResponse(updated), nil
}

// GetVisitorStats returns visitor analytics collected by the core bank.
func (s *DashboardService) GetVisitorStats(ctx context.Context, rangeKey string) ([]domain.VisitorStat, error) {
	ctx, span := tracer.Start(ctx, "DashboardService.GetVisitorStats")
	defer span.End()

	switch rangeKey {
	case "", "all", "today", "week", "month":
	default:
		return nil, &domain.ErrValidation{Field: "range", Message: "must be today, week, month, or all"}
	}
	if rangeKey == "" {
		rangeKey = "all"
	}

	return s.store.ListVisitorStats(ctx, rangeKey)
}

// GetServiceTraffic returns this service's own request metrics snapshot.
func (s *DashboardService) GetServiceTraffic() *domain.ServiceTrafficSnapshot {
	return s.metrics.GetTrafficSnapshot()
}
