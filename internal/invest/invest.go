// Package invest computes plan returns, accrual, and maturity figures for
// investment positions. All functions are pure: they take plain snapshots
// and return plain numbers, so they are safe to call from any handler or
// optimistic-update path without locking.
package invest

import (
	"time"

	"github.com/freshpex/ffb-dashboard-bfa-go/internal/domain"
)

// ExpectedReturn is the flat return over the plan's full term.
// Not compounded, not annualized: the duration does not enter into it.
func ExpectedReturn(principal, roiPercent float64) float64 {
	return principal * roiPercent / 100
}

// MaturityValue is the principal plus the full expected return.
func MaturityValue(principal, roiPercent float64) float64 {
	return principal + ExpectedReturn(principal, roiPercent)
}

// DailyAccrual is the portion of expected return attributed to each day of
// the term. durationDays <= 0 is rejected at plan creation, so hitting the
// error here means a corrupt plan slipped through.
func DailyAccrual(principal, roiPercent float64, durationDays int) (float64, error) {
	if durationDays <= 0 {
		return 0, &domain.ErrDivision{Operation: "daily accrual"}
	}
	return ExpectedReturn(principal, roiPercent) / float64(durationDays), nil
}

// ProgressPercent is the elapsed share of the term as of asOf, saturating
// at 0 before start and 100 after end. endDate == startDate is invalid input.
func ProgressPercent(startDate, endDate, asOf time.Time) (float64, error) {
	total := endDate.Sub(startDate)
	if total <= 0 {
		return 0, &domain.ErrDivision{Operation: "progress percent"}
	}
	elapsed := asOf.Sub(startDate)
	pct := 100 * float64(elapsed) / float64(total)
	if pct < 0 {
		return 0, nil
	}
	if pct > 100 {
		return 100, nil
	}
	return pct, nil
}

// CurrentValue is the principal plus the return accrued so far. Used to show
// live accrual for active investments between core-bank syncs.
func CurrentValue(principal, roiPercent, progressPercent float64) float64 {
	return principal + ExpectedReturn(principal, roiPercent)*progressPercent/100
}

// ValidateAmount gates new investments against the plan's bounds.
func ValidateAmount(plan *domain.InvestmentPlan, principal float64) error {
	if principal < plan.MinAmount {
		return &domain.ErrAmountOutOfRange{Amount: principal, Min: plan.MinAmount, Max: plan.MaxAmount}
	}
	if plan.MaxAmount != nil && principal > *plan.MaxAmount {
		return &domain.ErrAmountOutOfRange{Amount: principal, Min: plan.MinAmount, Max: plan.MaxAmount}
	}
	return nil
}

// ValidatePlan rejects plans whose duration would make accrual undefined.
// Plans come from core-bank reference data, so this is a consistency check
// on ingestion, not a user-facing validation.
func ValidatePlan(plan *domain.InvestmentPlan) error {
	if plan.DurationDays <= 0 {
		return &domain.ErrValidation{Field: "durationDays", Message: "must be positive"}
	}
	if plan.ROIPercent < 0 {
		return &domain.ErrValidation{Field: "roiPercent", Message: "must not be negative"}
	}
	if plan.MaxAmount != nil && *plan.MaxAmount < plan.MinAmount {
		return &domain.ErrValidation{Field: "maxAmount", Message: "below minAmount"}
	}
	return nil
}
