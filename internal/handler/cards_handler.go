package handler

import (
	"encoding/json"
	"net/http"

	"github.com/freshpex/ffb-dashboard-bfa-go/internal/domain"
	"github.com/freshpex/ffb-dashboard-bfa-go/internal/service"

	"github.com/go-chi/chi/v5"
	"go.opentelemetry.io/otel/attribute"
	"go.uber.org/zap"
)

// ============================================================
// Payment Cards
// ============================================================

func listCardsHandler(svc *service.DashboardService, logger *zap.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, span := tracer.Start(r.Context(), "GET /api/atm-cards")
		defer span.End()

		customerID := CustomerIDFromContext(ctx)
		span.SetAttributes(attribute.String("customer.id", customerID))

		cards, err := svc.ListCards(ctx, customerID)
		if err != nil {
			handleServiceError(w, err, logger)
			return
		}
		writeJSON(w, http.StatusOK, map[string]any{"cards": cards})
	}
}

func requestCardHandler(svc *service.DashboardService, logger *zap.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, span := tracer.Start(r.Context(), "POST /api/atm-cards/request")
		defer span.End()

		var req domain.CardRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			writeError(w, http.StatusBadRequest, "invalid request body")
			return
		}

		card, err := svc.RequestCard(ctx, CustomerIDFromContext(ctx), &req)
		if err != nil {
			handleServiceError(w, err, logger)
			return
		}
		writeJSON(w, http.StatusCreated, card)
	}
}

func updateCardLimitsHandler(svc *service.DashboardService, logger *zap.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, span := tracer.Start(r.Context(), "PUT /api/atm-cards/{cardId}/limits")
		defer span.End()

		cardID := chi.URLParam(r, "cardId")
		var req domain.UpdateLimitsRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			writeError(w, http.StatusBadRequest, "invalid request body")
			return
		}

		card, err := svc.UpdateCardLimits(ctx, CustomerIDFromContext(ctx), cardID, req.Limits)
		if err != nil {
			handleServiceError(w, err, logger)
			return
		}
		writeJSON(w, http.StatusOK, card)
	}
}

func canSpendHandler(svc *service.DashboardService, logger *zap.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, span := tracer.Start(r.Context(), "POST /api/atm-cards/{cardId}/can-spend")
		defer span.End()

		cardID := chi.URLParam(r, "cardId")
		var req domain.CanSpendRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			writeError(w, http.StatusBadRequest, "invalid request body")
			return
		}

		resp, err := svc.CanSpend(ctx, CustomerIDFromContext(ctx), cardID, req.Amount)
		if err != nil {
			handleServiceError(w, err, logger)
			return
		}
		writeJSON(w, http.StatusOK, resp)
	}
}

func freezeCardHandler(svc *service.DashboardService, logger *zap.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, span := tracer.Start(r.Context(), "POST /api/atm-cards/{cardId}/freeze")
		defer span.End()

		card, err := svc.FreezeCard(ctx, CustomerIDFromContext(ctx), chi.URLParam(r, "cardId"))
		if err != nil {
			handleServiceError(w, err, logger)
			return
		}
		writeJSON(w, http.StatusOK, card)
	}
}

func unfreezeCardHandler(svc *service.DashboardService, logger *zap.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, span := tracer.Start(r.Context(), "POST /api/atm-cards/{cardId}/unfreeze")
		defer span.End()

		card, err := svc.UnfreezeCard(ctx, CustomerIDFromContext(ctx), chi.URLParam(r, "cardId"))
		if err != nil {
			handleServiceError(w, err, logger)
			return
		}
		writeJSON(w, http.StatusOK, card)
	}
}

func listCardTransactionsHandler(svc *service.DashboardService, logger *zap.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, span := tracer.Start(r.Context(), "GET /api/atm-cards/{cardId}/transactions")
		defer span.End()

		cardID := chi.URLParam(r, "cardId")
		spec := parseFilterSpec(r)
		page, limit := parsePagination(r)

		txns, pagination, err := svc.ListCardTransactions(ctx, CustomerIDFromContext(ctx), cardID, spec, page, limit)
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

func spendingSummaryHandler(svc *service.DashboardService, logger *zap.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, span := tracer.Start(r.Context(), "GET /api/atm-cards/{cardId}/spending-summary")
		defer span.End()

		summary, err := svc.SpendingSummary(ctx, CustomerIDFromContext(ctx), chi.URLParam(r, "cardId"))
		if err != nil {
			handleServiceError(w, err, logger)
			return
		}
		writeJSON(w, http.StatusOK, summary)
	}
}
