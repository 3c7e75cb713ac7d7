package service

import (
	"context"
	"fmt"
	"time"

	"github.com/freshpex/ffb-dashboard-bfa-go/internal/domain"
	"github.com/freshpex/ffb-dashboard-bfa-go/internal/invest"

	"go.opentelemetry.io/otel/attribute"
	"go.uber.org/zap"
)

// ============================================================
// Investments
// ============================================================

// ListPlans returns investment plan reference data, served from the plan
// cache when a fresh entry exists.
func (s *DashboardService) ListPlans(ctx context.Context) ([]domain.InvestmentPlan, error) {
	ctx, span := tracer.Start(ctx, "DashboardService.ListPlans")
	defer span.End()

	if plans, ok := s.planCache.Get(plansCacheKey); ok {
		s.metrics.IncrCacheHit("plans")
		return plans, nil
	}
	s.metrics.IncrCacheMiss("plans")

	plans, err := s.store.ListPlans(ctx)
	if err != nil {
		return nil, err
	}
	s.planCache.Set(plansCacheKey, plans)
	return plans, nil
}

// planByID resolves a plan against the plan list, warming the cache on the
// way. The per-plan store lookup only runs for plans absent from the list.
func (s *DashboardService) planByID(ctx context.Context, planID string) (*domain.InvestmentPlan, error) {
	plans, err := s.ListPlans(ctx)
	if err != nil {
		return nil, err
	}
	for i := range plans {
		if plans[i].ID == planID {
			return &plans[i], nil
		}
	}
	plan, err := s.store.GetPlan(ctx, planID)
	if err != nil {
		return nil, err
	}
	if plan == nil {
		return nil, &domain.ErrNotFound{Resource: "investment_plan", ID: planID}
	}
	return plan, nil
}

// toInvestmentResponse enriches an investment with figures computed at read
// time, so the dashboard shows accrual between core-bank syncs.
func toInvestmentResponse(inv *domain.Investment, plan *domain.InvestmentPlan, now time.Time) (*domain.InvestmentAPIResponse, error) {
	expected := invest.ExpectedReturn(inv.Principal, plan.ROIPercent)
	maturity := invest.MaturityValue(inv.Principal, plan.ROIPercent)
	accrual, err := invest.DailyAccrual(inv.Principal, plan.ROIPercent, plan.DurationDays)
	if err != nil {
		return nil, err
	}

	var progress, current float64
	switch inv.Status {
	case domain.InvestmentStatusCompleted:
		progress = 100
		current = maturity
	case domain.InvestmentStatusCancelled:
		current = inv.Principal
	default:
		progress, err = invest.ProgressPercent(inv.StartDate, inv.EndDate, now)
		if err != nil {
			return nil, err
		}
		current = invest.CurrentValue(inv.Principal, plan.ROIPercent, progress)
	}

	return &domain.InvestmentAPIResponse{
		ID:              inv.ID,
		PlanID:          plan.ID,
		PlanName:        plan.Name,
		Principal:       inv.Principal,
		ExpectedReturn:  expected,
		MaturityValue:   maturity,
		DailyAccrual:    accrual,
		CurrentValue:    current,
		ProgressPercent: progress,
		StartDate:       formatDate(inv.StartDate),
		EndDate:         formatDate(inv.EndDate),
		Status:          inv.Status,
		StatusBadge:     inv.Status.Badge(),
	}, nil
}

// CreateInvestment validates the principal against the plan's range and
// submits the position, returning it with projected figures.
func (s *DashboardService) CreateInvestment(ctx context.Context, customerID string, req *domain.CreateInvestmentRequest) (*domain.InvestmentAPIResponse, error) {
	ctx, span := tracer.Start(ctx, "DashboardService.CreateInvestment")
	defer span.End()
	span.SetAttributes(
		attribute.String("customer.id", customerID),
		attribute.String("plan.id", req.PlanID),
		attribute.Float64("amount", req.Amount),
	)

	start := time.Now()
	defer func() { s.metrics.RecordRequestDuration("create_investment", time.Since(start)) }()

	if req.PlanID == "" {
		return nil, &domain.ErrValidation{Field: "planId", Message: "required"}
	}

	plan, err := s.planByID(ctx, req.PlanID)
	if err != nil {
		return nil, err
	}
	if err := invest.ValidatePlan(plan); err != nil {
		return nil, err
	}
	if err := invest.ValidateAmount(plan, req.Amount); err != nil {
		return nil, err
	}

	created, err := s.store.CreateInvestment(ctx, customerID, plan.ID, req.Amount)
	if err != nil {
		s.logger.Error("failed to create investment",
			zap.String("customer_id", customerID),
			zap.String("plan_id", plan.ID),
			zap.Error(err),
		)
		return nil, err
	}

	s.logger.Info("investment created",
		zap.String("customer_id", customerID),
		zap.String("investment_id", created.ID),
		zap.String("plan_id", plan.ID),
		zap.Float64("principal", created.Principal),
	)

	return toInvestmentResponse(created, plan, time.Now())
}

// ListInvestments returns the customer's positions with live figures.
func (s *DashboardService) ListInvestments(ctx context.Context, customerID string) ([]domain.InvestmentAPIResponse, error) {
	ctx, span := tracer.Start(ctx, "DashboardService.ListInvestments")
	defer span.End()
	span.SetAttributes(attribute.String("customer.id", customerID))

	s.metrics.IncrVisitorHit("investments")

	investments, err := s.store.ListInvestments(ctx, customerID)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	resp := make([]domain.InvestmentAPIResponse, 0, len(investments))
	for i := range investments {
		plan, err := s.planByID(ctx, investments[i].PlanID)
		if err != nil {
			s.logger.Warn("skipping investment with unresolvable plan",
				zap.String("investment_id", investments[i].ID),
				zap.String("plan_id", investments[i].PlanID),
				zap.Error(err),
			)
			continue
		}
		item, err := toInvestmentResponse(&investments[i], plan, now)
		if err != nil {
			return nil, err
		}
		resp = append(resp, *item)
	}
	return resp, nil
}

// GetInvestment returns one position with live figures.
func (s *DashboardService) GetInvestment(ctx context.Context, customerID, investmentID string) (*domain.InvestmentAPIResponse, error) {
	ctx, span := tracer.Start(ctx, "DashboardService.GetInvestment")
	defer span.End()

	inv, err := s.store.GetInvestment(ctx, customerID, investmentID)
	if err != nil {
		return nil, err
	}
	if inv == nil {
		return nil, &domain.ErrNotFound{Resource: "investment", ID: investmentID}
	}

	plan, err := s.planByID(ctx, inv.PlanID)
	if err != nil {
		return nil, err
	}
	return toInvestmentResponse(inv, plan, time.Now())
}

// CancelInvestment cancels an active position early. The principal is
// refunded in full; accrued return is forfeited.
func (s *DashboardService) CancelInvestment(ctx context.Context, customerID, investmentID string) (*domain.CancelInvestmentResponse, error) {
	ctx, span := tracer.Start(ctx, "DashboardService.CancelInvestment")
	defer span.End()
	span.SetAttributes(attribute.String("investment.id", investmentID))

	inv, err := s.store.GetInvestment(ctx, customerID, investmentID)
	if err != nil {
		return nil, err
	}
	if inv == nil {
		return nil, &domain.ErrNotFound{Resource: "investment", ID: investmentID}
	}
	if inv.Status != domain.InvestmentStatusActive {
		return nil, &domain.ErrValidation{Field: "status", Message: fmt.Sprintf("cannot cancel investment with status '%s'", inv.Status)}
	}

	cancelled, err := s.store.CancelInvestment(ctx, customerID, investmentID)
	if err != nil {
		s.logger.Error("failed to cancel investment",
			zap.String("customer_id", customerID),
			zap.String("investment_id", investmentID),
			zap.Error(err),
		)
		return nil, err
	}

	s.logger.Info("investment cancelled",
		zap.String("customer_id", customerID),
		zap.String("investment_id", investmentID),
		zap.Float64("refund", cancelled.Principal),
	)

	return &domain.CancelInvestmentResponse{
		ID:           cancelled.ID,
		RefundAmount: cancelled.Principal,
		ReturnAmount: 0,
		Status:       string(cancelled.Status),
	}, nil
}
