// Package port defines the interfaces (ports) for external dependencies.
// Following hexagonal architecture, these ports decouple the domain/service
// layer from the core-bank client implementation.
package port

import (
	"context"

	"github.com/freshpex/ffb-dashboard-bfa-go/internal/domain"
)

// Cache provides generic caching with TTL.
type Cache[T any] interface {
	Get(key string) (T, bool)
	Set(key string, value T)
	Delete(key string)
}

// CardStore covers every card operation the dashboard needs from the core
// bank. All entities are owned and mutated backend-side; a fetch replaces
// the cached slice wholesale.
type CardStore interface {
	ListCards(ctx context.Context, customerID string) ([]domain.Card, error)
	ListAllCards(ctx context.Context) ([]domain.Card, error)
	GetCard(ctx context.Context, cardID string) (*domain.Card, error)
	RequestCard(ctx context.Context, customerID string, req *domain.CardRequest) (*domain.Card, error)
	UpdateCardStatus(ctx context.Context, cardID string, status domain.CardStatus, reason string) (*domain.Card, error)
	UpdateCardLimits(ctx context.Context, cardID string, limits domain.CardLimits) (*domain.Card, error)
	ListCardTransactions(ctx context.Context, cardID string) ([]domain.CardTransaction, error)
}

// InvestmentStore covers plan reference data and investment positions.
type InvestmentStore interface {
	ListPlans(ctx context.Context) ([]domain.InvestmentPlan, error)
	GetPlan(ctx context.Context, planID string) (*domain.InvestmentPlan, error)
	ListInvestments(ctx context.Context, customerID string) ([]domain.Investment, error)
	GetInvestment(ctx context.Context, customerID, investmentID string) (*domain.Investment, error)
	CreateInvestment(ctx context.Context, customerID, planID string, principal float64) (*domain.Investment, error)
	CancelInvestment(ctx context.Context, customerID, investmentID string) (*domain.Investment, error)
}

// ReferralStore covers referral commission history.
type ReferralStore interface {
	ListCommissions(ctx context.Context, customerID string) ([]domain.ReferralCommission, error)
}

// BankingStore covers account balance, statement, and funds movement.
type BankingStore interface {
	GetBalance(ctx context.Context, customerID string) (float64, error)
	ListAccountTransactions(ctx context.Context, customerID string) ([]domain.AccountTransaction, error)
	SubmitDeposit(ctx context.Context, customerID, idempotencyKey string, req *domain.DepositRequest) (*domain.FundsSubmission, error)
	SubmitWithdrawal(ctx context.Context, customerID, idempotencyKey string, req *domain.WithdrawalRequest) (*domain.FundsSubmission, error)
}

// AnalyticsStore covers visitor analytics collected by the core bank.
type AnalyticsStore interface {
	ListVisitorStats(ctx context.Context, rangeKey string) ([]domain.VisitorStat, error)
}

// DashboardStore is the full core-bank surface the BFF depends on.
type DashboardStore interface {
	CardStore
	InvestmentStore
	ReferralStore
	BankingStore
	AnalyticsStore
}
