package domain

import "time"

// ============================================================
// Referral Commissions
// ============================================================

// CommissionType classifies how a referral commission was earned.
type CommissionType string

const (
	CommissionTypeDeposit CommissionType = "deposit"
	CommissionTypeTrading CommissionType = "trading"
	CommissionTypeSignup  CommissionType = "signup"
)

// CommissionStatus is the payout state of a commission.
type CommissionStatus string

const (
	CommissionStatusPending CommissionStatus = "pending"
	CommissionStatusPaid    CommissionStatus = "paid"
)

// ReferralCommission is a single commission earned from a referral.
// Append-only from the dashboard's perspective.
type ReferralCommission struct {
	ID            string           `json:"id"`
	ReferralID    string           `json:"referralId"`
	ReferredName  string           `json:"referredName"`
	ReferredEmail string           `json:"referredEmail"`
	Amount        float64          `json:"amount"`
	Type          CommissionType   `json:"type"`
	Status        CommissionStatus `json:"status"`
	Date          time.Time        `json:"date"`
}

// ReferralStats is the aggregate view shown on the referrals screen.
type ReferralStats struct {
	TotalEarned   float64 `json:"totalEarned"`
	PendingAmount float64 `json:"pendingAmount"`
	PaidAmount    float64 `json:"paidAmount"`
	TotalCount    int     `json:"totalCount"`

	// Earnings broken down by commission type.
	ByType map[CommissionType]float64 `json:"byType"`
}
