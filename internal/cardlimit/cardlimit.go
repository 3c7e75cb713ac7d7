// Package cardlimit enforces the card limit policy: per-type ceilings on
// configured limits and admissibility of proposed transactions. The policy
// here is advisory — the core bank enforces the same table authoritatively
// when posting transactions or persisting limit changes.
package cardlimit

import (
	"github.com/freshpex/ffb-dashboard-bfa-go/internal/domain"
)

// Policy floors. Limits below these are rejected for every card type.
const (
	DailyFloor   = 100
	MonthlyFloor = 500
)

// ceiling is the maximum configurable daily/monthly limit for a card type.
type ceiling struct {
	Daily   float64
	Monthly float64
}

// ceilings is the per-type absolute ceiling table. Policy constants, not
// derived from anything.
var ceilings = map[domain.CardType]ceiling{
	domain.CardTypeVirtualDebit:  {Daily: 5000, Monthly: 15000},
	domain.CardTypeStandardDebit: {Daily: 10000, Monthly: 30000},
	domain.CardTypePremiumDebit:  {Daily: 25000, Monthly: 100000},
}

// Ceiling returns the limit ceiling for a card type.
func Ceiling(cardType domain.CardType) (daily, monthly float64, ok bool) {
	c, ok := ceilings[cardType]
	return c.Daily, c.Monthly, ok
}

// ValidateLimitChange checks a proposed limit change against the policy.
// On success the proposed limits come back unchanged: the policy rejects,
// it never silently clamps. Usage counters above a newly lowered limit are
// allowed to stand; future spending is what gets blocked.
func ValidateLimitChange(cardType domain.CardType, proposed domain.CardLimits) (domain.CardLimits, error) {
	c, ok := ceilings[cardType]
	if !ok {
		return domain.CardLimits{}, &domain.ErrValidation{Field: "type", Message: "unknown card type '" + string(cardType) + "'"}
	}

	if proposed.Daily < DailyFloor {
		return domain.CardLimits{}, &domain.ErrBelowMinimum{Field: "daily", Proposed: proposed.Daily, Floor: DailyFloor}
	}
	if proposed.Monthly < MonthlyFloor {
		return domain.CardLimits{}, &domain.ErrBelowMinimum{Field: "monthly", Proposed: proposed.Monthly, Floor: MonthlyFloor}
	}
	if proposed.Daily > c.Daily {
		return domain.CardLimits{}, &domain.ErrAboveMaximum{Field: "daily", Proposed: proposed.Daily, Ceiling: c.Daily}
	}
	if proposed.Monthly > c.Monthly {
		return domain.CardLimits{}, &domain.ErrAboveMaximum{Field: "monthly", Proposed: proposed.Monthly, Ceiling: c.Monthly}
	}
	if proposed.Daily > proposed.Monthly {
		return domain.CardLimits{}, &domain.ErrInconsistentLimits{Daily: proposed.Daily, Monthly: proposed.Monthly}
	}

	return proposed, nil
}

// DenialReason says why a proposed spend is inadmissible.
type DenialReason string

const (
	ReasonCardNotActive        DenialReason = "CardNotActive"
	ReasonDailyLimitExceeded   DenialReason = "DailyLimitExceeded"
	ReasonMonthlyLimitExceeded DenialReason = "MonthlyLimitExceeded"
)

// Decision is the outcome of a CanSpend check.
type Decision struct {
	Admissible bool
	Reason     DenialReason
}

// CanSpend reports whether amount is admissible on the card right now.
// Both windows are enforced independently. Pure decision function: debiting
// the usage counters is the core bank's job.
func CanSpend(card *domain.Card, amount float64) Decision {
	if card.Status != domain.CardStatusActive {
		return Decision{Admissible: false, Reason: ReasonCardNotActive}
	}
	if card.Limits.DailyUsed+amount > card.Limits.Daily {
		return Decision{Admissible: false, Reason: ReasonDailyLimitExceeded}
	}
	if card.Limits.MonthlyUsed+amount > card.Limits.Monthly {
		return Decision{Admissible: false, Reason: ReasonMonthlyLimitExceeded}
	}
	return Decision{Admissible: true}
}

// UtilizationRatio drives progress-bar widths. Every screen that renders a
// limit goes through this so admin and user views agree on the number.
func UtilizationRatio(used, limit float64) float64 {
	if limit <= 0 {
		return 0
	}
	return used / limit
}
