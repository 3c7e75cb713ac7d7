package handler

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/freshpex/ffb-dashboard-bfa-go/internal/domain"
	"github.com/freshpex/ffb-dashboard-bfa-go/internal/txfilter"

	"go.uber.org/zap"
)

// ============================================================
// Shared helper functions
// ============================================================

type errorResponse struct {
	Error string `json:"error"`
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, errorResponse{Error: msg})
}

func writeJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}

func parsePagination(r *http.Request) (page, limit int) {
	page = 1
	limit = 20
	if v := r.URL.Query().Get("page"); v != "" {
		if p, err := strconv.Atoi(v); err == nil && p > 0 {
			page = p
		}
	}
	if v := r.URL.Query().Get("limit"); v != "" {
		if l, err := strconv.Atoi(v); err == nil && l > 0 && l <= 100 {
			limit = l
		}
	}
	return
}

// parseFilterSpec reads the shared filter query parameters every list
// endpoint accepts: category (or type, for entities whose type plays the
// category role), range, search, sortBy, sortOrder.
func parseFilterSpec(r *http.Request) txfilter.Spec {
	q := r.URL.Query()
	dir := txfilter.SortAsc
	if q.Get("sortOrder") == "desc" {
		dir = txfilter.SortDesc
	}
	category := q.Get("category")
	if category == "" {
		category = q.Get("type")
	}
	return txfilter.Spec{
		Category:  category,
		DateRange: txfilter.ParseDateRange(q.Get("range")),
		Query:     q.Get("search"),
		SortBy:    q.Get("sortBy"),
		SortDir:   dir,
	}
}

// handleServiceError maps domain errors to HTTP responses. Calculator policy
// violations come back as 4xx form errors, never 500.
func handleServiceError(w http.ResponseWriter, err error, logger *zap.Logger) {
	var notFound *domain.ErrNotFound
	var circuitOpen *domain.ErrCircuitOpen
	var timeout *domain.ErrTimeout
	var validation *domain.ErrValidation
	var unauthorized *domain.ErrUnauthorized
	var forbidden *domain.ErrForbidden
	var outOfRange *domain.ErrAmountOutOfRange
	var belowMin *domain.ErrBelowMinimum
	var aboveMax *domain.ErrAboveMaximum
	var inconsistent *domain.ErrInconsistentLimits
	var division *domain.ErrDivision
	var external *domain.ErrExternalService

	switch {
	case errors.As(err, &notFound):
		logger.Debug("not found", zap.String("error", err.Error()))
		writeError(w, http.StatusNotFound, err.Error())
	case errors.As(err, &circuitOpen):
		logger.Error("circuit breaker open", zap.Error(err))
		writeError(w, http.StatusServiceUnavailable, err.Error())
	case errors.As(err, &timeout):
		logger.Error("request timeout", zap.Error(err))
		writeError(w, http.StatusGatewayTimeout, err.Error())
	case errors.As(err, &validation):
		logger.Debug("validation error", zap.String("error", err.Error()))
		writeError(w, http.StatusBadRequest, err.Error())
	case errors.As(err, &unauthorized):
		logger.Warn("unauthorized", zap.String("error", err.Error()))
		writeError(w, http.StatusUnauthorized, err.Error())
	case errors.As(err, &forbidden):
		logger.Warn("forbidden access", zap.String("error", err.Error()))
		writeError(w, http.StatusForbidden, err.Error())
	case errors.As(err, &outOfRange):
		logger.Debug("amount out of range", zap.String("error", err.Error()))
		writeError(w, http.StatusUnprocessableEntity, err.Error())
	case errors.As(err, &belowMin):
		logger.Debug("limit below floor", zap.String("error", err.Error()))
		writeError(w, http.StatusUnprocessableEntity, err.Error())
	case errors.As(err, &aboveMax):
		logger.Debug("limit above ceiling", zap.String("error", err.Error()))
		writeError(w, http.StatusUnprocessableEntity, err.Error())
	case errors.As(err, &inconsistent):
		logger.Debug("inconsistent limits", zap.String("error", err.Error()))
		writeError(w, http.StatusUnprocessableEntity, err.Error())
	case errors.As(err, &division):
		logger.Warn("degenerate calculator input", zap.String("error", err.Error()))
		writeError(w, http.StatusBadRequest, err.Error())
	case errors.As(err, &external):
		logger.Error("core bank error", zap.Error(err))
		writeError(w, http.StatusBadGateway, err.Error())
	default:
		logger.Error("unhandled error", zap.Error(err))
		writeError(w, http.StatusInternalServerError, "internal server error")
	}
}
