package handler

import (
	"net/http"
	"time"

	"github.com/freshpex/ffb-dashboard-bfa-go/internal/infra/observability"
	"github.com/freshpex/ffb-dashboard-bfa-go/internal/service"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.opentelemetry.io/otel"
	"go.uber.org/zap"
)

var tracer = otel.Tracer("handler")

// NewRouter creates the HTTP router with all routes and middleware.
// Routes follow the API contract the dashboard frontend consumes.
func NewRouter(svc *service.DashboardService, auth *Auth, metrics *observability.Metrics, allowedOrigins []string, logger *zap.Logger) http.Handler {
	r := chi.NewRouter()

	// --- Middleware ---
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(observability.RequestLogger(logger))
	r.Use(observability.TracePropagation)
	r.Use(requestMetricsMiddleware(metrics))
	r.Use(middleware.Recoverer)
	r.Use(middleware.Heartbeat("/ping"))
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   allowedOrigins,
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", "X-Admin-Key"},
		AllowCredentials: true,
		MaxAge:           300,
	}))

	// --- Operational endpoints ---
	r.Get("/healthz", healthzHandler(svc, logger))
	r.Get("/readyz", readyzHandler())
	r.Handle("/metrics", promhttp.HandlerFor(metrics.Registry, promhttp.HandlerOpts{}))

	// --- Customer API ---
	r.Route("/api", func(r chi.Router) {
		r.Use(auth.RequireAuth)

		r.Route("/atm-cards", func(r chi.Router) {
			r.Get("/", listCardsHandler(svc, logger))
			r.Post("/request", requestCardHandler(svc, logger))
			r.Put("/{cardId}/limits", updateCardLimitsHandler(svc, logger))
			r.Post("/{cardId}/can-spend", canSpendHandler(svc, logger))
			r.Post("/{cardId}/freeze", freezeCardHandler(svc, logger))
			r.Post("/{cardId}/unfreeze", unfreezeCardHandler(svc, logger))
			r.Get("/{cardId}/transactions", listCardTransactionsHandler(svc, logger))
			r.Get("/{cardId}/spending-summary", spendingSummaryHandler(svc, logger))
		})

		r.Route("/investments", func(r chi.Router) {
			r.Get("/plans", listPlansHandler(svc, logger))
			r.Get("/", listInvestmentsHandler(svc, logger))
			r.Post("/", createInvestmentHandler(svc, logger))
			r.Get("/{investmentId}", getInvestmentHandler(svc, logger))
			r.Post("/{investmentId}/cancel", cancelInvestmentHandler(svc, logger))
		})

		r.Route("/referrals", func(r chi.Router) {
			r.Get("/commissions", listCommissionsHandler(svc, logger))
			r.Get("/stats", referralStatsHandler(svc, logger))
		})

		r.Get("/transactions", listAccountTransactionsHandler(svc, logger))
		r.Post("/deposits", depositHandler(svc, logger))
		r.Post("/withdrawals", withdrawalHandler(svc, logger))
		r.Get("/dashboard/overview", overviewHandler(svc, logger))
	})

	// --- Admin API ---
	r.Route("/admin", func(r chi.Router) {
		r.Use(auth.RequireAuth)
		r.Use(auth.RequireAdmin)

		r.Get("/atm-cards/all", adminListCardsHandler(svc, logger))
		r.Post("/atm-cards/{cardId}/approve", approveCardHandler(svc, logger))
		r.Post("/atm-cards/{cardId}/reject", rejectCardHandler(svc, logger))
		r.Get("/analytics/visitors", visitorStatsHandler(svc, logger))
		r.Get("/analytics/service", serviceTrafficHandler(svc, logger))
	})

	return r
}

// requestMetricsMiddleware feeds the request counter behind the admin
// service-analytics snapshot.
func requestMetricsMiddleware(metrics *observability.Metrics) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
			next.ServeHTTP(ww, r)
			if ww.Status() >= 400 {
				metrics.IncrRequest("error")
			} else {
				metrics.IncrRequest("success")
			}
		})
	}
}

// ============================================================
// Operational
// ============================================================

func healthzHandler(svc *service.DashboardService, logger *zap.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		now := time.Now().Format(time.RFC3339)

		status := "healthy"
		corebank := "healthy"
		start := time.Now()
		if _, err := svc.ListPlans(ctx); err != nil {
			logger.Warn("health probe: core bank unreachable", zap.Error(err))
			corebank = "degraded"
			status = "degraded"
		}

		writeJSON(w, http.StatusOK, map[string]any{
			"status": status,
			"services": []map[string]any{
				{"name": "dashboard-bff", "status": "healthy", "lastChecked": now},
				{"name": "corebank", "status": corebank, "latencyMs": time.Since(start).Milliseconds(), "lastChecked": now},
			},
		})
	}
}

func readyzHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]string{"status": "ready"})
	}
}
