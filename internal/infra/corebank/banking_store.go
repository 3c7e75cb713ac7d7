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

// GetBalance fetches the customer's account balance.
func (c *Client) GetBalance(ctx context.Context, customerID string) (float64, error) {
	ctx, span := tracer.Start(ctx, "CoreBank.GetBalance")
	defer span.End()
	span.SetAttributes(attribute.String("customer.id", customerID))

	var balance float64
	err := c.call(ctx, "corebank/accounts", func() error {
		path := fmt.Sprintf("/api/customers/%s/balance", url.PathEscape(customerID))
		body, err := c.doRequest(ctx, http.MethodGet, path, nil, nil)
		if err != nil {
			return err
		}
		if body == nil {
			return &domain.ErrNotFound{Resource: "account", ID: customerID}
		}
		var env struct {
			Data struct {
				Balance float64 `json:"balance"`
			} `json:"data"`
		}
		if err := unmarshal(body, &env); err != nil {
			return fmt.Errorf("failed to decode balance: %w", err)
		}
		balance = env.Data.Balance
		return nil
	})
	if err != nil {
		return 0, err
	}
	return balance, nil
}

// accountTxRow maps an account statement entry.
type accountTxRow struct {
	ID          string  `json:"id"`
	CustomerID  string  `json:"customerId"`
	Type        string  `json:"type"`
	Amount      float64 `json:"amount"`
	Category    string  `json:"category"`
	Description string  `json:"description"`
	Date        string  `json:"date"`
}

// ListAccountTransactions fetches the customer's account statement.
func (c *Client) ListAccountTransactions(ctx context.Context, customerID string) ([]domain.AccountTransaction, error) {
	ctx, span := tracer.Start(ctx, "CoreBank.ListAccountTransactions")
	defer span.End()
	span.SetAttributes(attribute.String("customer.id", customerID))

	var txns []domain.AccountTransaction
	err := c.call(ctx, "corebank/accounts", func() error {
		path := fmt.Sprintf("/api/customers/%s/transactions?page=1&limit=500", url.PathEscape(customerID))
		body, err := c.doRequest(ctx, http.MethodGet, path, nil, nil)
		if err != nil {
			return err
		}
		if body == nil {
			txns = []domain.AccountTransaction{}
			return nil
		}
		var env struct {
			Data []accountTxRow `json:"data"`
		}
		if err := unmarshal(body, &env); err != nil {
			return fmt.Errorf("failed to decode account transactions: %w", err)
		}
		txns = make([]domain.AccountTransaction, 0, len(env.Data))
		for _, r := range env.Data {
			t, _ := time.Parse(time.RFC3339, r.Date)
			txns = append(txns, domain.AccountTransaction{
				ID:          r.ID,
				CustomerID:  r.CustomerID,
				Type:        r.Type,
				Amount:      r.Amount,
				Category:    r.Category,
				Description: r.Description,
				Date:        t,
			})
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return txns, nil
}

// submissionEnvelope maps the acknowledgement for a funds movement.
type submissionEnvelope struct {
	Data struct {
		ID             string  `json:"id"`
		IdempotencyKey string  `json:"idempotencyKey"`
		Amount         float64 `json:"amount"`
		Status         string  `json:"status"`
		SubmittedAt    string  `json:"submittedAt"`
	} `json:"data"`
}

// SubmitDeposit posts a deposit request. The idempotency key makes retried
// submissions safe behind the shared retry policy.
func (c *Client) SubmitDeposit(ctx context.Context, customerID, idempotencyKey string, req *domain.DepositRequest) (*domain.FundsSubmission, error) {
	ctx, span := tracer.Start(ctx, "CoreBank.SubmitDeposit")
	defer span.End()
	span.SetAttributes(attribute.String("customer.id", customerID))

	payload := map[string]any{
		"customerId": customerID,
		"amount":     req.Amount,
		"method":     req.Method,
	}
	headers := map[string]string{"Idempotency-Key": idempotencyKey}

	return c.submitFunds(ctx, "/api/deposits", payload, headers)
}

// SubmitWithdrawal posts a withdrawal request.
func (c *Client) SubmitWithdrawal(ctx context.Context, customerID, idempotencyKey string, req *domain.WithdrawalRequest) (*domain.FundsSubmission, error) {
	ctx, span := tracer.Start(ctx, "CoreBank.SubmitWithdrawal")
	defer span.End()
	span.SetAttributes(attribute.String("customer.id", customerID))

	payload := map[string]any{
		"customerId":  customerID,
		"amount":      req.Amount,
		"destination": req.Destination,
	}
	headers := map[string]string{"Idempotency-Key": idempotencyKey}

	return c.submitFunds(ctx, "/api/withdrawals", payload, headers)
}

func (c *Client) submitFunds(ctx context.Context, path string, payload any, headers map[string]string) (*domain.FundsSubmission, error) {
	var submission *domain.FundsSubmission
	err := c.call(ctx, "corebank/funds", func() error {
		body, err := c.doRequest(ctx, http.MethodPost, path, payload, headers)
		if err != nil {
			return err
		}
		var env submissionEnvelope
		if err := unmarshal(body, &env); err != nil {
			return fmt.Errorf("failed to decode submission: %w", err)
		}
		submission = &domain.FundsSubmission{
			ID:             env.Data.ID,
			IdempotencyKey: env.Data.IdempotencyKey,
			Amount:         env.Data.Amount,
			Status:         env.Data.Status,
			SubmittedAt:    env.Data.SubmittedAt,
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return submission, nil
}
