package handler

import (
	"net/http"

	"github.com/freshpex/ffb-dashboard-bfa-go/internal/service"

	"go.uber.org/zap"
)

// ============================================================
// Referrals
// ============================================================

func listCommissionsHandler(svc *service.DashboardService, logger *zap.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, span := tracer.Start(r.Context(), "GET /api/referrals/commissions")
		defer span.End()

		spec := parseFilterSpec(r)
		status := r.URL.Query().Get("status")
		page, limit := parsePagination(r)

		commissions, pagination, err := svc.ListCommissions(ctx, CustomerIDFromContext(ctx), spec, status, page, limit)
		if err != nil {
			handleServiceError(w, err, logger)
			return
		}
		writeJSON(w, http.StatusOK, map[string]any{
			"commissions": commissions,
			"pagination":  pagination,
		})
	}
}

func referralStatsHandler(svc *service.DashboardService, logger *zap.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, span := tracer.Start(r.Context(), "GET /api/referrals/stats")
		defer span.End()

		stats, err := svc.GetReferralStats(ctx, CustomerIDFromContext(ctx))
		if err != nil {
			handleServiceError(w, err, logger)
			return
		}
		writeJSON(w, http.StatusOK, stats)
	}
}
