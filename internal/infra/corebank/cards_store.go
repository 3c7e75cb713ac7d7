package corebank

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"github.com/freshpex/ffb-dashboard-bfa-go/internal/domain"

	"go.opentelemetry.io/otel/attribute"
)

// cardRow maps the core-bank card payload.
type cardRow struct {
	ID          string  `json:"id"`
	CustomerID  string  `json:"customerId"`
	HolderName  string  `json:"holderName"`
	Email       string  `json:"email"`
	Last4       string  `json:"last4"`
	Type        string  `json:"type"`
	Status      string  `json:"status"`
	Balance     float64 `json:"balance"`
	RequestedAt string  `json:"requestedAt"`
	IssuedAt    string  `json:"issuedAt,omitempty"`
	Limits      struct {
		Daily       float64 `json:"daily"`
		Monthly     float64 `json:"monthly"`
		DailyUsed   float64 `json:"dailyUsed"`
		MonthlyUsed float64 `json:"monthlyUsed"`
	} `json:"limits"`
}

func (r cardRow) toDomain() domain.Card {
	card := domain.Card{
		ID:         r.ID,
		CustomerID: r.CustomerID,
		HolderName: r.HolderName,
		Email:      r.Email,
		Last4:      r.Last4,
		Type:       domain.CardType(r.Type),
		Status:     domain.CardStatus(r.Status),
		Balance:    r.Balance,
		Limits: domain.CardLimits{
			Daily:       r.Limits.Daily,
			Monthly:     r.Limits.Monthly,
			DailyUsed:   r.Limits.DailyUsed,
			MonthlyUsed: r.Limits.MonthlyUsed,
		},
	}
	card.RequestedAt, _ = time.Parse(time.RFC3339, r.RequestedAt)
	if r.IssuedAt != "" {
		if t, err := time.Parse(time.RFC3339, r.IssuedAt); err == nil {
			card.IssuedAt = &t
		}
	}
	return card
}

type cardListEnvelope struct {
	Data struct {
		Cards      []cardRow `json:"cards"`
		Pagination struct {
			Page  int `json:"page"`
			Pages int `json:"pages"`
			Total int `json:"total"`
			Limit int `json:"limit"`
		} `json:"pagination"`
	} `json:"data"`
}

type cardEnvelope struct {
	Data cardRow `json:"data"`
}

// ListCards fetches one customer's cards.
func (c *Client) ListCards(ctx context.Context, customerID string) ([]domain.Card, error) {
	ctx, span := tracer.Start(ctx, "CoreBank.ListCards")
	defer span.End()
	span.SetAttributes(attribute.String("customer.id", customerID))

	var cards []domain.Card
	err := c.call(ctx, "corebank/cards", func() error {
		path := fmt.Sprintf("/api/atm-cards?customerId=%s", url.QueryEscape(customerID))
		body, err := c.doRequest(ctx, http.MethodGet, path, nil, nil)
		if err != nil {
			return err
		}
		rows, err := decodeCardList(body)
		if err != nil {
			return err
		}
		cards = rows
		return nil
	})
	if err != nil {
		return nil, err
	}
	return cards, nil
}

// ListAllCards fetches the full card table for the admin review queue.
// Filtering, sorting, and paging happen BFF-side so the admin table and the
// customer screens share one filter engine.
func (c *Client) ListAllCards(ctx context.Context) ([]domain.Card, error) {
	ctx, span := tracer.Start(ctx, "CoreBank.ListAllCards")
	defer span.End()

	var cards []domain.Card
	err := c.call(ctx, "corebank/admin-cards", func() error {
		body, err := c.doRequest(ctx, http.MethodGet, "/admin/atm-cards/all?limit=1000", nil, nil)
		if err != nil {
			return err
		}
		rows, err := decodeCardList(body)
		if err != nil {
			return err
		}
		cards = rows
		return nil
	})
	if err != nil {
		return nil, err
	}
	return cards, nil
}

func decodeCardList(body []byte) ([]domain.Card, error) {
	if body == nil {
		return []domain.Card{}, nil
	}
	var env cardListEnvelope
	if err := unmarshal(body, &env); err != nil {
		return nil, fmt.Errorf("failed to decode cards: %w", err)
	}
	cards := make([]domain.Card, 0, len(env.Data.Cards))
	for _, r := range env.Data.Cards {
		cards = append(cards, r.toDomain())
	}
	return cards, nil
}

// GetCard fetches a single card.
func (c *Client) GetCard(ctx context.Context, cardID string) (*domain.Card, error) {
	ctx, span := tracer.Start(ctx, "CoreBank.GetCard")
	defer span.End()
	span.SetAttributes(attribute.String("card.id", cardID))

	var card *domain.Card
	err := c.call(ctx, "corebank/cards", func() error {
		path := fmt.Sprintf("/api/atm-cards/%s", url.PathEscape(cardID))
		body, err := c.doRequest(ctx, http.MethodGet, path, nil, nil)
		if err != nil {
			return err
		}
		if body == nil {
			return &domain.ErrNotFound{Resource: "card", ID: cardID}
		}
		var env cardEnvelope
		if err := unmarshal(body, &env); err != nil {
			return fmt.Errorf("failed to decode card: %w", err)
		}
		d := env.Data.toDomain()
		card = &d
		return nil
	})
	if err != nil {
		return nil, err
	}
	return card, nil
}

// RequestCard submits a new card request on behalf of the customer.
func (c *Client) RequestCard(ctx context.Context, customerID string, req *domain.CardRequest) (*domain.Card, error) {
	ctx, span := tracer.Start(ctx, "CoreBank.RequestCard")
	defer span.End()
	span.SetAttributes(attribute.String("customer.id", customerID))

	payload := map[string]any{
		"customerId": customerID,
		"type":       req.Type,
	}
	if req.Limits != nil {
		payload["limits"] = req.Limits
	}

	var card *domain.Card
	err := c.call(ctx, "corebank/cards", func() error {
		body, err := c.doRequest(ctx, http.MethodPost, "/api/atm-cards", payload, nil)
		if err != nil {
			return err
		}
		var env cardEnvelope
		if err := unmarshal(body, &env); err != nil {
			return fmt.Errorf("failed to decode card: %w", err)
		}
		d := env.Data.toDomain()
		card = &d
		return nil
	})
	if err != nil {
		return nil, err
	}
	return card, nil
}

// UpdateCardStatus drives card lifecycle transitions. Approve and reject go
// through the admin endpoints; freeze/unfreeze and cancellation through the
// customer ones.
func (c *Client) UpdateCardStatus(ctx context.Context, cardID string, status domain.CardStatus, reason string) (*domain.Card, error) {
	ctx, span := tracer.Start(ctx, "CoreBank.UpdateCardStatus")
	defer span.End()
	span.SetAttributes(
		attribute.String("card.id", cardID),
		attribute.String("card.status", string(status)),
	)

	var (
		method  = http.MethodPost
		path    string
		payload any
	)
	escaped := url.PathEscape(cardID)
	switch status {
	case domain.CardStatusActive:
		// Approval from pending, or unfreeze; core bank resolves which.
		path = fmt.Sprintf("/admin/atm-cards/%s/approve", escaped)
	case domain.CardStatusRejected:
		path = fmt.Sprintf("/admin/atm-cards/%s/reject", escaped)
		payload = map[string]string{"reason": reason}
	case domain.CardStatusFrozen:
		path = fmt.Sprintf("/api/atm-cards/%s/freeze", escaped)
	case domain.CardStatusCancelled:
		method = http.MethodDelete
		path = fmt.Sprintf("/api/atm-cards/%s", escaped)
	default:
		return nil, &domain.ErrValidation{Field: "status", Message: fmt.Sprintf("transition to '%s' not supported", status)}
	}

	var card *domain.Card
	err := c.call(ctx, "corebank/cards", func() error {
		body, err := c.doRequest(ctx, method, path, payload, nil)
		if err != nil {
			return err
		}
		if body == nil {
			return &domain.ErrNotFound{Resource: "card", ID: cardID}
		}
		var env cardEnvelope
		if err := unmarshal(body, &env); err != nil {
			return fmt.Errorf("failed to decode card: %w", err)
		}
		d := env.Data.toDomain()
		card = &d
		return nil
	})
	if err != nil {
		return nil, err
	}
	return card, nil
}

// UpdateCardLimits persists validated limits. The core bank re-checks the
// same ceiling table; the BFF validation is advisory.
func (c *Client) UpdateCardLimits(ctx context.Context, cardID string, limits domain.CardLimits) (*domain.Card, error) {
	ctx, span := tracer.Start(ctx, "CoreBank.UpdateCardLimits")
	defer span.End()
	span.SetAttributes(attribute.String("card.id", cardID))

	var card *domain.Card
	err := c.call(ctx, "corebank/cards", func() error {
		path := fmt.Sprintf("/api/atm-cards/%s/limits", url.PathEscape(cardID))
		body, err := c.doRequest(ctx, http.MethodPut, path, map[string]any{"limits": limits}, nil)
		if err != nil {
			return err
		}
		if body == nil {
			return &domain.ErrNotFound{Resource: "card", ID: cardID}
		}
		var env cardEnvelope
		if err := unmarshal(body, &env); err != nil {
			return fmt.Errorf("failed to decode card: %w", err)
		}
		d := env.Data.toDomain()
		card = &d
		return nil
	})
	if err != nil {
		return nil, err
	}
	return card, nil
}

// transactionRow maps a card transaction payload.
type transactionRow struct {
	ID       string  `json:"id"`
	CardID   string  `json:"cardId"`
	Type     string  `json:"type"`
	Amount   float64 `json:"amount"`
	Category string  `json:"category"`
	Merchant string  `json:"merchant"`
	Date     string  `json:"date"`
}

type transactionListEnvelope struct {
	Data []transactionRow `json:"data"`
}

// ListCardTransactions fetches a card's recent statement. The core bank
// caps the window; filtering and paging happen BFF-side.
func (c *Client) ListCardTransactions(ctx context.Context, cardID string) ([]domain.CardTransaction, error) {
	ctx, span := tracer.Start(ctx, "CoreBank.ListCardTransactions")
	defer span.End()
	span.SetAttributes(attribute.String("card.id", cardID))

	var txns []domain.CardTransaction
	err := c.call(ctx, "corebank/transactions", func() error {
		path := fmt.Sprintf("/api/atm-cards/%s/transactions?page=1&limit=500", url.PathEscape(cardID))
		body, err := c.doRequest(ctx, http.MethodGet, path, nil, nil)
		if err != nil {
			return err
		}
		if body == nil {
			txns = []domain.CardTransaction{}
			return nil
		}
		var env transactionListEnvelope
		if err := unmarshal(body, &env); err != nil {
			return fmt.Errorf("failed to decode transactions: %w", err)
		}
		txns = make([]domain.CardTransaction, 0, len(env.Data))
		for _, r := range env.Data {
			t, _ := time.Parse(time.RFC3339, r.Date)
			if t.IsZero() {
				t, _ = time.Parse("2006-01-02", r.Date)
			}
			txns = append(txns, domain.CardTransaction{
				ID:       r.ID,
				CardID:   r.CardID,
				Type:     domain.TransactionType(r.Type),
				Amount:   r.Amount,
				Category: r.Category,
				Merchant: r.Merchant,
				Date:     t,
			})
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return txns, nil
}
