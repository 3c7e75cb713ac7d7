package service

import (
	"context"
	"time"

	"github.com/freshpex/ffb-dashboard-bfa-go/internal/domain"
	"github.com/freshpex/ffb-dashboard-bfa-go/internal/txfilter"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel/attribute"
	"go.uber.org/zap"
)

// ============================================================
// Balance, Account History, Funds Movement
// ============================================================

var depositMethods = map[string]bool{
	"bank-transfer": true,
	"card":          true,
	"crypto":        true,
}

// GetBalance returns the customer's available balance.
func (s *DashboardService) GetBalance(ctx context.Context, customerID string) (float64, error) {
	ctx, span := tracer.Start(ctx, "DashboardService.GetBalance")
	defer span.End()

	return s.store.GetBalance(ctx, customerID)
}

// accountTxAdapter maps account statement entries into the filter engine.
func accountTxAdapter() txfilter.Adapter[domain.AccountTransaction] {
	return txfilter.Adapter[domain.AccountTransaction]{
		Category:  func(t domain.AccountTransaction) string { return t.Category },
		Timestamp: func(t domain.AccountTransaction) time.Time { return t.Date },
		SearchFields: func(t domain.AccountTransaction) []string {
			return []string{t.Description, t.Category, t.Type}
		},
		SortKeys: map[string]func(a, b domain.AccountTransaction) int{
			"date":   func(a, b domain.AccountTransaction) int { return txfilter.CompareTime(a.Date, b.Date) },
			"amount": func(a, b domain.AccountTransaction) int { return txfilter.CompareFloat64(a.Amount, b.Amount) },
		},
	}
}

// ListAccountTransactions filters and paginates the account statement.
func (s *DashboardService) ListAccountTransactions(ctx context.Context, customerID string, spec txfilter.Spec, page, pageSize int) ([]domain.AccountTransaction, domain.Pagination, error) {
	ctx, span := tracer.Start(ctx, "DashboardService.ListAccountTransactions")
	defer span.End()
	span.SetAttributes(attribute.String("customer.id", customerID))

	txns, err := s.store.ListAccountTransactions(ctx, customerID)
	if err != nil {
		return nil, domain.Pagination{}, err
	}

	filtered := txfilter.Filter(txns, spec, accountTxAdapter())
	items, pagination := paginate(filtered, page, pageSize)
	return items, pagination, nil
}

// SubmitDeposit forwards a deposit request with a generated idempotency key
// so a retried submission never posts twice.
func (s *DashboardService) SubmitDeposit(ctx context.Context, customerID string, req *domain.DepositRequest) (*domain.FundsSubmission, error) {
	ctx, span := tracer.Start(ctx, "DashboardService.SubmitDeposit")
	defer span.End()
	span.SetAttributes(
		attribute.String("customer.id", customerID),
		attribute.Float64("amount", req.Amount),
	)

	if req.Amount <= 0 {
		return nil, &domain.ErrValidation{Field: "amount", Message: "must be positive"}
	}
	if req.Method == "" {
		req.Method = "bank-transfer"
	}
	if !depositMethods[req.Method] {
		return nil, &domain.ErrValidation{Field: "method", Message: "must be bank-transfer, card, or crypto"}
	}

	key := uuid.New().String()
	submission, err := s.store.SubmitDeposit(ctx, customerID, key, req)
	if err != nil {
		s.logger.Error("failed to submit deposit", zap.String("customer_id", customerID), zap.Error(err))
		return nil, err
	}

	s.logger.Info("deposit submitted",
		zap.String("customer_id", customerID),
		zap.String("submission_id", submission.ID),
		zap.Float64("amount", req.Amount),
		zap.String("method", req.Method),
	)
	return submission, nil
}

// SubmitWithdrawal forwards a withdrawal request with a generated idempotency
// key.
func (s *DashboardService) SubmitWithdrawal(ctx context.Context, customerID string, req *domain.WithdrawalRequest) (*domain.FundsSubmission, error) {
	ctx, span := tracer.Start(ctx, "DashboardService.SubmitWithdrawal")
	defer span.End()
	span.SetAttributes(
		attribute.String("customer.id", customerID),
		attribute.Float64("amount", req.Amount),
	)

	if req.Amount <= 0 {
		return nil, &domain.ErrValidation{Field: "amount", Message: "must be positive"}
	}
	if req.Destination == "" {
		return nil, &domain.ErrValidation{Field: "destination", Message: "required"}
	}

	balance, err := s.store.GetBalance(ctx, customerID)
	if err != nil {
		return nil, err
	}
	if req.Amount > balance {
		return nil, &domain.ErrValidation{Field: "amount", Message: "exceeds available balance"}
	}

	key := uuid.New().String()
	submission, err := s.store.SubmitWithdrawal(ctx, customerID, key, req)
	if err != nil {
		s.logger.Error("failed to submit withdrawal", zap.String("customer_id", customerID), zap.Error(err))
		return nil, err
	}

	s.logger.Info("withdrawal submitted",
		zap.String("customer_id", customerID),
		zap.String("submission_id", submission.ID),
		zap.Float64("amount", req.Amount),
	)
	return submission, nil
}
