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

// commissionRow maps the core-bank referral commission payload.
type commissionRow struct {
	ID            string  `json:"id"`
	ReferralID    string  `json:"referralId"`
	ReferredName  string  `json:"referredName"`
	ReferredEmail string  `json:"referredEmail"`
	Amount        float64 `json:"amount"`
	Type          string  `json:"type"`
	Status        string  `json:"status"`
	Date          string  `json:"date"`
}

type commissionListEnvelope struct {
	Data []commissionRow `json:"data"`
}

// ListCommissions fetches a customer's referral commission history.
func (c *Client) ListCommissions(ctx context.Context, customerID string) ([]domain.ReferralCommission, error) {
	ctx, span := tracer.Start(ctx, "CoreBank.ListCommissions")
	defer span.End()
	span.SetAttributes(attribute.String("customer.id", customerID))

	var commissions []domain.ReferralCommission
	err := c.call(ctx, "corebank/referrals", func() error {
		path := fmt.Sprintf("/api/referrals/commissions?customerId=%s", url.QueryEscape(customerID))
		body, err := c.doRequest(ctx, http.MethodGet, path, nil, nil)
		if err != nil {
			return err
		}
		if body == nil {
			commissions = []domain.ReferralCommission{}
			return nil
		}
		var env commissionListEnvelope
		if err := unmarshal(body, &env); err != nil {
			return fmt.Errorf("failed to decode commissions: %w", err)
		}
		commissions = make([]domain.ReferralCommission, 0, len(env.Data))
		for _, r := range env.Data {
			t, _ := time.Parse(time.RFC3339, r.Date)
			if t.IsZero() {
				t, _ = time.Parse("2006-01-02", r.Date)
			}
			commissions = append(commissions, domain.ReferralCommission{
				ID:            r.ID,
				ReferralID:    r.ReferralID,
				ReferredName:  r.ReferredName,
				ReferredEmail: r.ReferredEmail,
				Amount:        r.Amount,
				Type:          domain.CommissionType(r.Type),
				Status:        domain.CommissionStatus(r.Status),
				Date:          t,
			})
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return commissions, nil
}
