package domain

import "time"

// ============================================================
// Deposits, Withdrawals, Account History
// ============================================================

// AccountTransaction is an entry in the customer's account statement
// (deposits, withdrawals, investment funding, referral payouts).
type AccountTransaction struct {
	ID          string    `json:"id"`
	CustomerID  string    `json:"customerId"`
	Type        string    `json:"type"`
	Amount      float64   `json:"amount"`
	Category    string    `json:"category"`
	Description string    `json:"description"`
	Date        time.Time `json:"date"`
}

// DepositRequest is the body for POST /api/deposits.
type DepositRequest struct {
	Amount float64 `json:"amount"`
	Method string  `json:"method"` // bank-transfer, card, crypto
}

// WithdrawalRequest is the body for POST /api/withdrawals.
type WithdrawalRequest struct {
	Amount      float64 `json:"amount"`
	Destination string  `json:"destination"`
}

// FundsSubmission is the core-bank acknowledgement of a deposit or
// withdrawal request. The idempotency key is generated client-side so a
// retried submission never posts twice.
type FundsSubmission struct {
	ID             string  `json:"id"`
	IdempotencyKey string  `json:"idempotencyKey"`
	Amount         float64 `json:"amount"`
	Status         string  `json:"status"`
	SubmittedAt    string  `json:"submittedAt"`
}

// DashboardOverview is the aggregate for the landing screen, assembled from
// concurrent core-bank fetches.
type DashboardOverview struct {
	Balance           float64                 `json:"balance"`
	Cards             []CardAPIResponse       `json:"cards"`
	ActiveInvestments []InvestmentAPIResponse `json:"activeInvestments"`
	InvestedTotal     float64                 `json:"investedTotal"`
	ReferralStats     *ReferralStats          `json:"referralStats"`
}

// ============================================================
// Visitor Analytics (admin)
// ============================================================

// VisitorStat is one bucket of visitor analytics collected by the core bank.
type VisitorStat struct {
	Date     string `json:"date"`
	Page     string `json:"page"`
	Visits   int    `json:"visits"`
	Uniques  int    `json:"uniques"`
	Referrer string `json:"referrer,omitempty"`
}

// ServiceTrafficSnapshot summarizes this service's own request metrics for
// the admin analytics screen.
type ServiceTrafficSnapshot struct {
	TotalRequests int64   `json:"totalRequests"`
	ErrorRate     float64 `json:"errorRate"`
	CacheHitRate  float64 `json:"cacheHitRate"`
	VisitorHits   int64   `json:"visitorHits"`
	Period        string  `json:"period"`
}

// Pagination is the page envelope used by every list endpoint.
type Pagination struct {
	Page  int `json:"page"`
	Pages int `json:"pages"`
	Total int `json:"total"`
	Limit int `json:"limit"`
}
