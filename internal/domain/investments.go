package domain

import "time"

// ============================================================
// Investment Plans
// ============================================================

// InvestmentPlan is immutable reference data owned by the core bank.
// ROI is a flat percentage over the full duration, not annualized and
// not compounded.
type InvestmentPlan struct {
	ID           string   `json:"id"`
	Name         string   `json:"name"`
	ROIPercent   float64  `json:"roiPercent"`
	DurationDays int      `json:"durationDays"`
	MinAmount    float64  `json:"minAmount"`
	MaxAmount    *float64 `json:"maxAmount,omitempty"` // nil means unbounded
}

// InvestmentStatus is the lifecycle state of an investment.
type InvestmentStatus string

const (
	InvestmentStatusActive    InvestmentStatus = "active"
	InvestmentStatusCompleted InvestmentStatus = "completed"
	InvestmentStatusCancelled InvestmentStatus = "cancelled"
)

var investmentStatusBadges = map[InvestmentStatus]string{
	InvestmentStatusActive:    "success",
	InvestmentStatusCompleted: "info",
	InvestmentStatusCancelled: "secondary",
}

// Badge returns the badge variant for the status.
func (s InvestmentStatus) Badge() string {
	if b, ok := investmentStatusBadges[s]; ok {
		return b
	}
	return "secondary"
}

// Investment is a customer's position in a plan.
type Investment struct {
	ID           string           `json:"id"`
	CustomerID   string           `json:"customerId"`
	PlanID       string           `json:"planId"`
	Principal    float64          `json:"principal"`
	StartDate    time.Time        `json:"startDate"`
	EndDate      time.Time        `json:"endDate"`
	Status       InvestmentStatus `json:"status"`
	CurrentValue float64          `json:"currentValue"`
}

// CreateInvestmentRequest is the body for POST /api/investments.
type CreateInvestmentRequest struct {
	PlanID string  `json:"planId"`
	Amount float64 `json:"amount"`
}

// InvestmentAPIResponse is an investment enriched with live figures computed
// at read time, so the dashboard shows accrual between core-bank syncs.
type InvestmentAPIResponse struct {
	ID              string           `json:"id"`
	PlanID          string           `json:"planId"`
	PlanName        string           `json:"planName"`
	Principal       float64          `json:"principal"`
	ExpectedReturn  float64          `json:"expectedReturn"`
	MaturityValue   float64          `json:"maturityValue"`
	DailyAccrual    float64          `json:"dailyAccrual"`
	CurrentValue    float64          `json:"currentValue"`
	ProgressPercent float64          `json:"progressPercent"`
	StartDate       string           `json:"startDate"`
	EndDate         string           `json:"endDate"`
	Status          InvestmentStatus `json:"status"`
	StatusBadge     string           `json:"statusBadge"`
}

// CancelInvestmentResponse is returned after an early cancellation.
// ReturnAmount reflects the forfeiture rule: accrued return is not paid out.
type CancelInvestmentResponse struct {
	ID           string  `json:"id"`
	RefundAmount float64 `json:"refundAmount"`
	ReturnAmount float64 `json:"returnAmount"`
	Status       string  `json:"status"`
}
