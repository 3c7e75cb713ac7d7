package handler

import (
	"encoding/json"
	"net/http"

	"github.com/freshpex/ffb-dashboard-bfa-go/internal/domain"
	"github.com/freshpex/ffb-dashboard-bfa-go/internal/service"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

// ============================================================
// Admin
// ============================================================

func adminListCardsHandler(svc *service.DashboardService, logger *zap.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, span := tracer.Start(r.Context(), "GET /admin/atm-cards/all")
		defer span.End()

		spec := parseFilterSpec(r)
		status := r.URL.Query().Get("status")
		page, limit := parsePagination(r)

		cards, pagination, err := svc.ListAllCards(ctx, status, spec, page, limit)
		if err != nil {
			handleServiceError(w, err, logger)
			return
		}
		writeJSON(w, http.StatusOK, map[string]any{
			"data": map[string]any{
				"cards":      cards,
				"pagination": pagination,
			},
		})
	}
}

func approveCardHandler(svc *service.DashboardService, logger *zap.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, span := tracer.Start(r.Context(), "POST /admin/atm-cards/{cardId}/approve")
		defer span.End()

		card, err := svc.ApproveCard(ctx, chi.URLParam(r, "cardId"))
		if err != nil {
			handleServiceError(w, err, logger)
			return
		}
		writeJSON(w, http.StatusOK, card)
	}
}

func rejectCardHandler(svc *service.DashboardService, logger *zap.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, span := tracer.Start(r.Context(), "POST /admin/atm-cards/{cardId}/reject")
		defer span.End()

		var req domain.RejectCardRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			writeError(w, http.StatusBadRequest, "invalid request body")
			return
		}

		card, err := svc.RejectCard(ctx, chi.URLParam(r, "cardId"), req.Reason)
		if err != nil {
			handleServiceError(w, err, logger)
			return
		}
		writeJSON(w, http.StatusOK, card)
	}
}

func visitorStatsHandler(svc *service.DashboardService, logger *zap.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, span := tracer.Start(r.Context(), "GET /admin/analytics/visitors")
		defer span.End()

		stats, err := svc.GetVisitorStats(ctx, r.URL.Query().Get("range"))
		if err != nil {
			handleServiceError(w, err, logger)
			return
		}
		writeJSON(w, http.StatusOK, map[string]any{"data": stats})
	}
}

func serviceTrafficHandler(svc *service.DashboardService, logger *zap.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		_, span := tracer.Start(r.Context(), "GET /admin/analytics/service")
		defer span.End()

		writeJSON(w, http.StatusOK, map[string]any{"data": svc.GetServiceTraffic()})
	}
}
