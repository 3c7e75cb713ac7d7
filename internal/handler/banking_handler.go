package handler

import (
	"encoding/json"
	"net/http"

	"github.com/freshpex/ffb-dashboard-bfa-go/internal/domain"
	"github.com/freshpex/ffb-dashboard-bfa-go/internal/service"

	"go.uber.org/zap"
)

// ============================================================
// Account & Funds
// ============================================================

func listAccountTransactionsHandler(svc *service.DashboardService, logger *zap.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, span := tracer.Start(r.Context(), "GET /api/transactions")
		defer span.End()

		spec := parseFilterSpec(r)
		page, limit := parsePagination(r)

		txns, pagination, err := svc.ListAccountTransactions(ctx, CustomerIDFromContext(ctx), spec, page, limit)
		if err != nil {
			handleServiceError(w, err, logger)
			return
		}
		writeJSON(w, http.StatusOK, map[string]any{
			"transactions": txns,
			"pagination":   pagination,
		})
	}
}

func depositHandler(svc *service.DashboardService, logger *zap.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, span := tracer.Start(r.Context(), "POST /api/deposits")
		defer span.End()

		var req domain.DepositRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			writeError(w, http.StatusBadRequest, "invalid request body")
			return
		}

		submission, err := svc.SubmitDeposit(ctx, CustomerIDFromContext(ctx), &req)
		if err != nil {
			handleServiceError(w, err, logger)
			return
		}
		writeJSON(w, http.StatusCreated, submission)
	}
}

func withdrawalHandler(svc *service.DashboardService, logger *zap.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, span := tracer.Start(r.Context(), "POST /api/withdrawals")
		defer span.End()

		var req domain.WithdrawalRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			writeError(w, http.StatusBadRequest, "invalid request body")
			return
		}

		submission, err := svc.SubmitWithdrawal(ctx, CustomerIDFromContext(ctx), &req)
		if err != nil {
			handleServiceError(w, err, logger)
			return
		}
		writeJSON(w, http.StatusCreated, submission)
	}
}

func overviewHandler(svc *service.DashboardService, logger *zap.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, span := tracer.Start(r.Context(), "GET /api/dashboard/overview")
		defer span.End()

		overview, err := svc.GetOverview(ctx, CustomerIDFromContext(ctx))
		if err != nil {
			handleServiceError(w, err, logger)
			return
		}
		writeJSON(w, http.StatusOK, overview)
	}
}
