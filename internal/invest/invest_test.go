package invest_test

import (
	"errors"
	"math"
	"testing"
	"time"

	"github.com/freshpex/ffb-dashboard-bfa-go/internal/domain"
	"github.com/freshpex/ffb-dashboard-bfa-go/internal/invest"
)

const tolerance = 1e-9

func almostEqual(a, b float64) bool {
	return math.Abs(a-b) < tolerance
}

func TestExpectedReturn(t *testing.T) {
	cases := []struct {
		principal, roi, want float64
	}{
		{2500, 5, 125},
		{1000, 0, 0},
		{0, 10, 0},
		{10000, 12.5, 1250},
	}
	for _, c := range cases {
		got := invest.ExpectedReturn(c.principal, c.roi)
		if !almostEqual(got, c.want) {
			t.Errorf("ExpectedReturn(%v, %v) = %v, want %v", c.principal, c.roi, got, c.want)
		}
	}
}

func TestMaturityValue_RoundTrip(t *testing.T) {
	for _, principal := range []float64{0, 100, 2500, 99999.99} {
		for _, roi := range []float64{0, 2.5, 5, 18} {
			maturity := invest.MaturityValue(principal, roi)
			ret := invest.ExpectedReturn(principal, roi)
			if !almostEqual(maturity, principal+ret) {
				t.Errorf("maturity %v != principal %v + return %v", maturity, principal, ret)
			}
			if !almostEqual(ret, maturity-principal) {
				t.Errorf("return %v != maturity %v - principal %v", ret, maturity, principal)
			}
		}
	}
}

func TestDailyAccrual(t *testing.T) {
	got, err := invest.DailyAccrual(2500, 5, 30)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if math.Abs(got-4.166666666666667) > 1e-9 {
		t.Errorf("DailyAccrual(2500, 5, 30) = %v, want 4.1666...", got)
	}
}

func TestDailyAccrual_TimesDurationEqualsReturn(t *testing.T) {
	for _, days := range []int{1, 7, 30, 365} {
		accrual, err := invest.DailyAccrual(12345.67, 8.25, days)
		if err != nil {
			t.Fatalf("unexpected error for %d days: %v", days, err)
		}
		want := invest.ExpectedReturn(12345.67, 8.25)
		if math.Abs(accrual*float64(days)-want) > 1e-6 {
			t.Errorf("accrual*%d = %v, want %v", days, accrual*float64(days), want)
		}
	}
}

func TestDailyAccrual_ZeroDuration(t *testing.T) {
	for _, days := range []int{0, -5} {
		_, err := invest.DailyAccrual(1000, 5, days)
		var div *domain.ErrDivision
		if !errors.As(err, &div) {
			t.Errorf("DailyAccrual with %d days: expected ErrDivision, got %v", days, err)
		}
	}
}

func TestProgressPercent_Saturation(t *testing.T) {
	start := time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)
	end := start.AddDate(0, 0, 30)

	before, err := invest.ProgressPercent(start, end, start.AddDate(0, 0, -10))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if before != 0 {
		t.Errorf("before start: got %v, want 0", before)
	}

	after, err := invest.ProgressPercent(start, end, end.AddDate(0, 0, 10))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if after != 100 {
		t.Errorf("after end: got %v, want 100", after)
	}

	half, err := invest.ProgressPercent(start, end, start.AddDate(0, 0, 15))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !almostEqual(half, 50) {
		t.Errorf("midpoint: got %v, want 50", half)
	}
}

func TestProgressPercent_MonotonicNonDecreasing(t *testing.T) {
	start := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	end := start.AddDate(0, 0, 90)

	prev := -1.0
	for d := -5; d <= 100; d += 5 {
		pct, err := invest.ProgressPercent(start, end, start.AddDate(0, 0, d))
		if err != nil {
			t.Fatalf("unexpected error at day %d: %v", d, err)
		}
		if pct < prev {
			t.Errorf("progress decreased at day %d: %v -> %v", d, prev, pct)
		}
		if pct < 0 || pct > 100 {
			t.Errorf("progress out of range at day %d: %v", d, pct)
		}
		prev = pct
	}
}

func TestProgressPercent_DegenerateTerm(t *testing.T) {
	at := time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)
	_, err := invest.ProgressPercent(at, at, at)
	var div *domain.ErrDivision
	if !errors.As(err, &div) {
		t.Errorf("endDate == startDate: expected ErrDivision, got %v", err)
	}
}

func TestCurrentValue(t *testing.T) {
	// Halfway through a 5% plan on 2500: half of the 125 return accrued.
	got := invest.CurrentValue(2500, 5, 50)
	if !almostEqual(got, 2562.5) {
		t.Errorf("CurrentValue = %v, want 2562.5", got)
	}
	if v := invest.CurrentValue(2500, 5, 0); !almostEqual(v, 2500) {
		t.Errorf("at 0%%: got %v, want principal", v)
	}
	if v := invest.CurrentValue(2500, 5, 100); !almostEqual(v, invest.MaturityValue(2500, 5)) {
		t.Errorf("at 100%%: got %v, want maturity value", v)
	}
}

func TestValidateAmount(t *testing.T) {
	max := 10000.0
	plan := &domain.InvestmentPlan{ID: "plan-1", ROIPercent: 5, DurationDays: 30, MinAmount: 1000, MaxAmount: &max}

	if err := invest.ValidateAmount(plan, 2500); err != nil {
		t.Errorf("2500 within range: unexpected error %v", err)
	}
	if err := invest.ValidateAmount(plan, 1000); err != nil {
		t.Errorf("exactly at min: unexpected error %v", err)
	}
	if err := invest.ValidateAmount(plan, 10000); err != nil {
		t.Errorf("exactly at max: unexpected error %v", err)
	}

	var oor *domain.ErrAmountOutOfRange
	if err := invest.ValidateAmount(plan, 999.99); !errors.As(err, &oor) {
		t.Errorf("below min: expected ErrAmountOutOfRange, got %v", err)
	}
	if err := invest.ValidateAmount(plan, 10000.01); !errors.As(err, &oor) {
		t.Errorf("above max: expected ErrAmountOutOfRange, got %v", err)
	}

	// Unbounded plan accepts any principal at or above the minimum.
	open := &domain.InvestmentPlan{ID: "plan-2", ROIPercent: 8, DurationDays: 90, MinAmount: 500}
	if err := invest.ValidateAmount(open, 1e9); err != nil {
		t.Errorf("unbounded plan: unexpected error %v", err)
	}
}

func TestEndToEndScenario(t *testing.T) {
	// Plan {roi 5%, 30 days, 1000..10000}, principal 2500.
	max := 10000.0
	plan := &domain.InvestmentPlan{ID: "p", ROIPercent: 5, DurationDays: 30, MinAmount: 1000, MaxAmount: &max}

	if err := invest.ValidateAmount(plan, 2500); err != nil {
		t.Fatalf("validate: %v", err)
	}
	if got := invest.ExpectedReturn(2500, plan.ROIPercent); !almostEqual(got, 125) {
		t.Errorf("expectedReturn = %v, want 125", got)
	}
	if got := invest.MaturityValue(2500, plan.ROIPercent); !almostEqual(got, 2625) {
		t.Errorf("maturityValue = %v, want 2625", got)
	}
	accrual, err := invest.DailyAccrual(2500, plan.ROIPercent, plan.DurationDays)
	if err != nil {
		t.Fatalf("dailyAccrual: %v", err)
	}
	if math.Abs(accrual-125.0/30.0) > 1e-9 {
		t.Errorf("dailyAccrual = %v, want %v", accrual, 125.0/30.0)
	}
}

func TestValidatePlan(t *testing.T) {
	var val *domain.ErrValidation

	bad := &domain.InvestmentPlan{ID: "p", ROIPercent: 5, DurationDays: 0, MinAmount: 100}
	if err := invest.ValidatePlan(bad); !errors.As(err, &val) {
		t.Errorf("zero duration: expected ErrValidation, got %v", err)
	}

	lowMax := 50.0
	inverted := &domain.InvestmentPlan{ID: "p", ROIPercent: 5, DurationDays: 30, MinAmount: 100, MaxAmount: &lowMax}
	if err := invest.ValidatePlan(inverted); !errors.As(err, &val) {
		t.Errorf("max < min: expected ErrValidation, got %v", err)
	}

	ok := &domain.InvestmentPlan{ID: "p", ROIPercent: 5, DurationDays: 30, MinAmount: 100}
	if err := invest.ValidatePlan(ok); err != nil {
		t.Errorf("valid plan: unexpected error %v", err)
	}
}
