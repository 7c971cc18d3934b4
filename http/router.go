package http

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/sirupsen/logrus"

	"car-dealer/metrics"
	"car-dealer/service"
)

// Services groups what the router serves.
type Services struct {
	Inventory          *service.InventoryService
	Loan               *service.LoanService
	TermRecommendation *service.TermRecommendationService
}

// NewRouter wires every route. Loan routes share limiter.
func NewRouter(svc Services, limiter *RateLimiter, log logrus.FieldLogger) http.Handler {
	inventoryHandler := NewInventoryHandler(svc.Inventory, log)
	vehicleHandler := NewVehicleHandler(svc.Inventory, log)
	loanHandler := NewLoanHandler(svc.Loan, log)
	termHandler := NewTermRecommendationHandler(svc.TermRecommendation, log)

	r := chi.NewRouter()

	r.Use(middleware.Recoverer)
	r.Use(RequestLogger(log))
	r.Use(metrics.Middleware)

	r.Get("/healthz", HandleHealthz(svc.Inventory, log))
	r.Handle("/metrics", promhttp.Handler())

	r.Route("/api/v1", func(r chi.Router) {
		r.Route("/inventory", func(r chi.Router) {
			r.Get("/", inventoryHandler.Query)
			r.Get("/makes", inventoryHandler.Makes)
			r.Get("/makes/{make}/models", inventoryHandler.Models)
			r.Get("/ranges", inventoryHandler.Ranges)
			r.Get("/facets", inventoryHandler.Facets)
			r.Post("/reload", inventoryHandler.Reload)
		})

		r.Route("/vehicles/{id}", func(r chi.Router) {
			r.Get("/", vehicleHandler.Get)
			r.Get("/similar", vehicleHandler.Similar)
		})

		r.Route("/loan", func(r chi.Router) {
			r.Use(RateLimitMiddleware(limiter, log))
			r.Post("/affordability", loanHandler.EstimateAffordability)
			r.Post("/calculate", loanHandler.CalculateLoan)
			r.Post("/recommend-term", termHandler.RecommendTerm)
		})
	})

	return r
}
