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

// planRow maps the core-bank investment plan payload.
type planRow struct {
	ID           string   `json:"id"`
	Name         string   `json:"name"`
	ROIPercent   float64  `json:"roiPercent"`
	DurationDays int      `json:"durationDays"`
	MinAmount    float64  `json:"minAmount"`
	MaxAmount    *float64 `json:"maxAmount"`
}

func (r planRow) toDomain() domain.InvestmentPlan {
	return domain.InvestmentPlan{
		ID:           r.ID,
		Name:         r.Name,
		ROIPercent:   r.ROIPercent,
		DurationDays: r.DurationDays,
		MinAmount:    r.MinAmount,
		MaxAmount:    r.MaxAmount,
	}
}

// investmentRow maps the core-bank investment payload.
type investmentRow struct {
	ID           string  `json:"id"`
	CustomerID   string  `json:"customerId"`
	PlanID       string  `json:"planId"`
	Principal    float64 `json:"principal"`
	StartDate    string  `json:"startDate"`
	EndDate      string  `json:"endDate"`
	Status       string  `json:"status"`
	CurrentValue float64 `json:"currentValue"`
}

func (r investmentRow) toDomain() domain.Investment {
	inv := domain.Investment{
		ID:           r.ID,
		CustomerID:   r.CustomerID,
		PlanID:       r.PlanID,
		Principal:    r.Principal,
		Status:       domain.InvestmentStatus(r.Status),
		CurrentValue: r.CurrentValue,
	}
	inv.StartDate, _ = time.Parse(time.RFC3339, r.StartDate)
	inv.EndDate, _ = time.Parse(time.RFC3339, r.EndDate)
	return inv
}

type planListEnvelope struct {
	Data []planRow `json:"data"`
}

type investmentListEnvelope struct {
	Data []investmentRow `json:"data"`
}

type investmentEnvelope struct {
	Data investmentRow `json:"data"`
}

// ListPlans fetches investment plan reference data.
func (c *Client) ListPlans(ctx context.Context) ([]domain.InvestmentPlan, error) {
	ctx, span := tracer.Start(ctx, "CoreBank.ListPlans")
	defer span.End()

	var plans []domain.InvestmentPlan
	err := c.call(ctx, "corebank/plans", func() error {
		body, err := c.doRequest(ctx, http.MethodGet, "/api/investments/plans", nil, nil)
		if err != nil {
			return err
		}
		var env planListEnvelope
		if err := unmarshal(body, &env); err != nil {
			return fmt.Errorf("failed to decode plans: %w", err)
		}
		plans = make([]domain.InvestmentPlan, 0, len(env.Data))
		for _, r := range env.Data {
			plans = append(plans, r.toDomain())
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return plans, nil
}

// GetPlan fetches a single plan.
func (c *Client) GetPlan(ctx context.Context, planID string) (*domain.InvestmentPlan, error) {
	ctx, span := tracer.Start(ctx, "CoreBank.GetPlan")
	defer span.End()
	span.SetAttributes(attribute.String("plan.id", planID))

	var plan *domain.InvestmentPlan
	err := c.call(ctx, "corebank/plans", func() error {
		path := fmt.Sprintf("/api/investments/plans/%s", url.PathEscape(planID))
		body, err := c.doRequest(ctx, http.MethodGet, path, nil, nil)
		if err != nil {
			return err
		}
		if body == nil {
			return &domain.ErrNotFound{Resource: "plan", ID: planID}
		}
		var env struct {
			Data planRow `json:"data"`
		}
		if err := unmarshal(body, &env); err != nil {
			return fmt.Errorf("failed to decode plan: %w", err)
		}
		d := env.Data.toDomain()
		plan = &d
		return nil
	})
	if err != nil {
		return nil, err
	}
	return plan, nil
}

// ListInvestments fetches a customer's positions.
func (c *Client) ListInvestments(ctx context.Context, customerID string) ([]domain.Investment, error) {
	ctx, span := tracer.Start(ctx, "CoreBank.ListInvestments")
	defer span.End()
	span.SetAttributes(attribute.String("customer.id", customerID))

	var investments []domain.Investment
	err := c.call(ctx, "corebank/investments", func() error {
		path := fmt.Sprintf("/api/investments?customerId=%s", url.QueryEscape(customerID))
		body, err := c.doRequest(ctx, http.MethodGet, path, nil, nil)
		if err != nil {
			return err
		}
		if body == nil {
			investments = []domain.Investment{}
			return nil
		}
		var env investmentListEnvelope
		if err := unmarshal(body, &env); err != nil {
			return fmt.Errorf("failed to decode investments: %w", err)
		}
		investments = make([]domain.Investment, 0, len(env.Data))
		for _, r := range env.Data {
			investments = append(investments, r.toDomain())
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return investments, nil
}

// GetInvestment fetches one position, scoped to the owning customer.
func (c *Client) GetInvestment(ctx context.Context, customerID, investmentID string) (*domain.Investment, error) {
	ctx, span := tracer.Start(ctx, "CoreBank.GetInvestment")
	defer span.End()
	span.SetAttributes(attribute.String("investment.id", investmentID))

	var investment *domain.Investment
	err := c.call(ctx, "corebank/investments", func() error {
		path := fmt.Sprintf("/api/investments/%s?customerId=%s", url.PathEscape(investmentID), url.QueryEscape(customerID))
		body, err := c.doRequest(ctx, http.MethodGet, path, nil, nil)
		if err != nil {
			return err
		}
		if body == nil {
			return &domain.ErrNotFound{Resource: "investment", ID: investmentID}
		}
		var env investmentEnvelope
		if err := unmarshal(body, &env); err != nil {
			return fmt.Errorf("failed to decode investment: %w", err)
		}
		d := env.Data.toDomain()
		investment = &d
		return nil
	})
	if err != nil {
		return nil, err
	}
	return investment, nil
}

// CreateInvestment opens a position. The principal has already passed the
// plan range gate; the core bank revalidates and owns accrual from here.
func (c *Client) CreateInvestment(ctx context.Context, customerID, planID string, principal float64) (*domain.Investment, error) {
	ctx, span := tracer.Start(ctx, "CoreBank.CreateInvestment")
	defer span.End()
	span.SetAttributes(
		attribute.String("customer.id", customerID),
		attribute.String("plan.id", planID),
	)

	payload := map[string]any{
		"customerId": customerID,
		"planId":     planID,
		"amount":     principal,
	}

	var investment *domain.Investment
	err := c.call(ctx, "corebank/investments", func() error {
		body, err := c.doRequest(ctx, http.MethodPost, "/api/investments", payload, nil)
		if err != nil {
			return err
		}
		var env investmentEnvelope
		if err := unmarshal(body, &env); err != nil {
			return fmt.Errorf("failed to decode investment: %w", err)
		}
		d := env.Data.toDomain()
		investment = &d
		return nil
	})
	if err != nil {
		return nil, err
	}
	return investment, nil
}

// CancelInvestment requests early cancellation. The core bank applies the
// forfeiture rule and returns the final position state.
func (c *Client) CancelInvestment(ctx context.Context, customerID, investmentID string) (*domain.Investment, error) {
	ctx, span := tracer.Start(ctx, "CoreBank.CancelInvestment")
	defer span.End()
	span.SetAttributes(attribute.String("investment.id", investmentID))

	payload := map[string]string{"customerId": customerID}

	var investment *domain.Investment
	err := c.call(ctx, "corebank/investments", func() error {
		path := fmt.Sprintf("/api/investments/%s/cancel", url.PathEscape(investmentID))
		body, err := c.doRequest(ctx, http.MethodPost, path, payload, nil)
		if err != nil {
			return err
		}
		if body == nil {
			return &domain.ErrNotFound{Resource: "investment", ID: investmentID}
		}
		var env investmentEnvelope
		if err := unmarshal(body, &env); err != nil {
			return fmt.Errorf("failed to decode investment: %w", err)
		}
		d := env.Data.toDomain()
		investment = &d
		return nil
	})
	if err != nil {
		return nil, err
	}
	return investment, nil
}
