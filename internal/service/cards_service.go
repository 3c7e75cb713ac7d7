package service

import (
	"context"
	"fmt"
	"time"

	"github.com/freshpex/ffb-dashboard-bfa-go/internal/cardlimit"
	"github.com/freshpex/ffb-dashboard-bfa-go/internal/domain"
	"github.com/freshpex/ffb-dashboard-bfa-go/internal/txfilter"

	"go.opentelemetry.io/otel/attribute"
	"go.uber.org/zap"
)

// ============================================================
// Payment Cards
// ============================================================

// toCardResponse builds the API shape with labels, badges, and utilization
// ratios precomputed so user and admin screens render identically.
func toCardResponse(c *domain.Card) *domain.CardAPIResponse {
	return &domain.CardAPIResponse{
		ID:                 c.ID,
		HolderName:         c.HolderName,
		Last4:              c.Last4,
		Type:               c.Type,
		TypeLabel:          c.Type.Label(),
		Status:             c.Status,
		StatusBadge:        c.Status.Badge(),
		Limits:             c.Limits,
		Balance:            c.Balance,
		DailyUtilization:   cardlimit.UtilizationRatio(c.Limits.DailyUsed, c.Limits.Daily),
		MonthlyUtilization: cardlimit.UtilizationRatio(c.Limits.MonthlyUsed, c.Limits.Monthly),
		RequestedAt:        formatDate(c.RequestedAt),
	}
}

// ListCards returns the customer's cards, served from the card cache when a
// fresh entry exists.
func (s *DashboardService) ListCards(ctx context.Context, customerID string) ([]domain.CardAPIResponse, error) {
	ctx, span := tracer.Start(ctx, "DashboardService.ListCards")
	defer span.End()
	span.SetAttributes(attribute.String("customer.id", customerID))

	s.metrics.IncrVisitorHit("cards")

	cards, err := s.cachedCards(ctx, customerID)
	if err != nil {
		return nil, err
	}

	resp := make([]domain.CardAPIResponse, 0, len(cards))
	for i := range cards {
		resp = append(resp, *toCardResponse(&cards[i]))
	}
	return resp, nil
}

// cachedCards is the read-through path for a customer's card list. A store
// fetch replaces the cached slice wholesale.
func (s *DashboardService) cachedCards(ctx context.Context, customerID string) ([]domain.Card, error) {
	if cards, ok := s.cardCache.Get(customerID); ok {
		s.metrics.IncrCacheHit("cards")
		return cards, nil
	}
	s.metrics.IncrCacheMiss("cards")

	cards, err := s.store.ListCards(ctx, customerID)
	if err != nil {
		return nil, err
	}
	s.cardCache.Set(customerID, cards)
	return cards, nil
}

// ownedCard fetches a card and verifies the customer owns it. A card that
// exists but belongs to someone else reads as not found.
func (s *DashboardService) ownedCard(ctx context.Context, customerID, cardID string) (*domain.Card, error) {
	card, err := s.store.GetCard(ctx, cardID)
	if err != nil {
		return nil, err
	}
	if card == nil || card.CustomerID != customerID {
		return nil, &domain.ErrNotFound{Resource: "card", ID: cardID}
	}
	return card, nil
}

// RequestCard submits a new card request. Initial limits, when provided, are
// validated against the card type's policy before the core bank sees them.
func (s *DashboardService) RequestCard(ctx context.Context, customerID string, req *domain.CardRequest) (*domain.CardAPIResponse, error) {
	ctx, span := tracer.Start(ctx, "DashboardService.RequestCard")
	defer span.End()
	span.SetAttributes(
		attribute.String("customer.id", customerID),
		attribute.String("card.type", string(req.Type)),
	)

	if !req.Type.Valid() {
		return nil, &domain.ErrValidation{Field: "type", Message: fmt.Sprintf("unknown card type '%s'", req.Type)}
	}
	if req.Limits != nil {
		validated, err := cardlimit.ValidateLimitChange(req.Type, *req.Limits)
		if err != nil {
			return nil, err
		}
		req.Limits = &validated
	}

	card, err := s.store.RequestCard(ctx, customerID, req)
	if err != nil {
		s.logger.Error("failed to request card", zap.String("customer_id", customerID), zap.Error(err))
		return nil, err
	}
	s.cardCache.Delete(customerID)

	s.logger.Info("card requested",
		zap.String("customer_id", customerID),
		zap.String("card_id", card.ID),
		zap.String("type", string(card.Type)),
	)

	return toCardResponse(card), nil
}

// UpdateCardLimits validates the proposed limits against the card type's
// floors and ceilings, then forwards them. The check is advisory; the core
// bank re-enforces the same policy.
func (s *DashboardService) UpdateCardLimits(ctx context.Context, customerID, cardID string, proposed domain.CardLimits) (*domain.CardAPIResponse, error) {
	ctx, span := tracer.Start(ctx, "DashboardService.UpdateCardLimits")
	defer span.End()
	span.SetAttributes(attribute.String("card.id", cardID))

	card, err := s.ownedCard(ctx, customerID, cardID)
	if err != nil {
		return nil, err
	}

	validated, err := cardlimit.ValidateLimitChange(card.Type, proposed)
	if err != nil {
		return nil, err
	}

	updated, err := s.store.UpdateCardLimits(ctx, cardID, validated)
	if err != nil {
		s.logger.Error("failed to update card limits", zap.String("card_id", cardID), zap.Error(err))
		return nil, err
	}
	s.cardCache.Delete(customerID)

	s.logger.Info("card limits updated",
		zap.String("customer_id", customerID),
		zap.String("card_id", cardID),
		zap.Float64("daily", validated.Daily),
		zap.Float64("monthly", validated.Monthly),
	)

	return toCardResponse(updated), nil
}

// CanSpend answers the advisory spending check for an amount on a card.
func (s *DashboardService) CanSpend(ctx context.Context, customerID, cardID string, amount float64) (*domain.CanSpendResponse, error) {
	ctx, span := tracer.Start(ctx, "DashboardService.CanSpend")
	defer span.End()

	if amount <= 0 {
		return nil, &domain.ErrValidation{Field: "amount", Message: "must be positive"}
	}

	card, err := s.ownedCard(ctx, customerID, cardID)
	if err != nil {
		return nil, err
	}

	decision := cardlimit.CanSpend(card, amount)
	return &domain.CanSpendResponse{
		Admissible: decision.Admissible,
		Reason:     string(decision.Reason),
	}, nil
}

// FreezeCard moves an active card to frozen.
func (s *DashboardService) FreezeCard(ctx context.Context, customerID, cardID string) (*domain.CardAPIResponse, error) {
	ctx, span := tracer.Start(ctx, "DashboardService.FreezeCard")
	defer span.End()

	card, err := s.ownedCard(ctx, customerID, cardID)
	if err != nil {
		return nil, err
	}
	if card.Status != domain.CardStatusActive {
		return nil, &domain.ErrValidation{Field: "status", Message: fmt.Sprintf("cannot freeze card with status '%s'", card.Status)}
	}

	updated, err := s.store.UpdateCardStatus(ctx, cardID, domain.CardStatusFrozen, "")
	if err != nil {
		return nil, err
	}
	s.cardCache.Delete(customerID)

	s.logger.Info("card frozen", zap.String("customer_id", customerID), zap.String("card_id", cardID))
	return toCardResponse(updated), nil
}

// UnfreezeCard moves a frozen card back to active.
func (s *DashboardService) UnfreezeCard(ctx context.Context, customerID, cardID string) (*domain.CardAPIResponse, error) {
	ctx, span := tracer.Start(ctx, "DashboardService.UnfreezeCard")
	defer span.End()

	card, err := s.ownedCard(ctx, customerID, cardID)
	if err != nil {
		return nil, err
	}
	if card.Status != domain.CardStatusFrozen {
		return nil, &domain.ErrValidation{Field: "status", Message: fmt.Sprintf("cannot unfreeze card with status '%s'", card.Status)}
	}

	updated, err := s.store.UpdateCardStatus(ctx, cardID, domain.CardStatusActive, "")
	if err != nil {
		return nil, err
	}
	s.cardCache.Delete(customerID)

	s.logger.Info("card unfrozen", zap.String("customer_id", customerID), zap.String("card_id", cardID))
	return toCardResponse(updated), nil
}

// cardTransactionAdapter maps card statement entries into the filter engine.
func cardTransactionAdapter() txfilter.Adapter[domain.CardTransaction] {
	return txfilter.Adapter[domain.CardTransaction]{
		Category:  func(t domain.CardTransaction) string { return t.Category },
		Timestamp: func(t domain.CardTransaction) time.Time { return t.Date },
		SearchFields: func(t domain.CardTransaction) []string {
			return []string{t.Merchant, t.Category, string(t.Type)}
		},
		SortKeys: map[string]func(a, b domain.CardTransaction) int{
			"date":     func(a, b domain.CardTransaction) int { return txfilter.CompareTime(a.Date, b.Date) },
			"amount":   func(a, b domain.CardTransaction) int { return txfilter.CompareFloat64(a.Amount, b.Amount) },
			"merchant": func(a, b domain.CardTransaction) int { return txfilter.CompareString(a.Merchant, b.Merchant) },
		},
	}
}

// ListCardTransactions filters, sorts, and paginates a card's statement.
func (s *DashboardService) ListCardTransactions(ctx context.Context, customerID, cardID string, spec txfilter.Spec, page, pageSize int) ([]domain.CardTransaction, domain.Pagination, error) {
	ctx, span := tracer.Start(ctx, "DashboardService.ListCardTransactions")
	defer span.End()
	span.SetAttributes(attribute.String("card.id", cardID))

	if _, err := s.ownedCard(ctx, customerID, cardID); err != nil {
		return nil, domain.Pagination{}, err
	}

	txns, err := s.store.ListCardTransactions(ctx, cardID)
	if err != nil {
		return nil, domain.Pagination{}, err
	}

	filtered := txfilter.Filter(txns, spec, cardTransactionAdapter())
	items, pagination := paginate(filtered, page, pageSize)
	return items, pagination, nil
}

// SpendingSummary aggregates a card's purchases by category for the spending
// chart. Refunds and non-purchase entries are excluded.
func (s *DashboardService) SpendingSummary(ctx context.Context, customerID, cardID string) (*domain.SpendingSummary, error) {
	ctx, span := tracer.Start(ctx, "DashboardService.SpendingSummary")
	defer span.End()

	if _, err := s.ownedCard(ctx, customerID, cardID); err != nil {
		return nil, err
	}

	txns, err := s.store.ListCardTransactions(ctx, cardID)
	if err != nil {
		return nil, err
	}

	type bucket struct {
		total float64
		count int
	}
	buckets := make(map[string]*bucket)
	order := make([]string, 0)
	var total float64

	for _, t := range txns {
		if t.Type != domain.TransactionTypePurchase {
			continue
		}
		cat := t.Category
		if cat == "" {
			cat = "other"
		}
		b, ok := buckets[cat]
		if !ok {
			b = &bucket{}
			buckets[cat] = b
			order = append(order, cat)
		}
		b.total += t.Amount
		b.count++
		total += t.Amount
	}

	categories := make([]domain.SpendingCategory, 0, len(order))
	for _, cat := range order {
		b := buckets[cat]
		pct := float64(0)
		if total > 0 {
			pct = b.total / total * 100
		}
		categories = append(categories, domain.SpendingCategory{
			Category: cat,
			Total:    b.total,
			Count:    b.count,
			Percent:  pct,
		})
	}

	return &domain.SpendingSummary{CardID: cardID, Total: total, Categories: categories}, nil
}
