package handler

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// RouterConfig carries everything the HTTP routes depend on
type RouterConfig struct {
	Customers      *CustomerHandler
	Sessions       *SessionHandler
	Health         *HealthHandler
	AllowedOrigins []string
	Logger         *slog.Logger
}

// NewRouter builds the dashboard API router
func NewRouter(cfg RouterConfig) http.Handler {
	r := chi.NewRouter()

	r.Use(RecoveryMiddleware(cfg.Logger))
	r.Use(LoggingMiddleware(cfg.Logger))
	r.Use(CORSMiddleware(cfg.AllowedOrigins))

	r.Get("/health", cfg.Health.Health)
	r.Method(http.MethodGet, "/metrics", promhttp.Handler())
	r.Get("/analytics", cfg.Customers.Analytics)

	r.Route("/customers", func(r chi.Router) {
		r.Post("/", cfg.Customers.CreateCustomer)
		r.Get("/{id}", cfg.Customers.GetCustomer)
		r.Put("/{id}", cfg.Customers.UpdateCustomer)
		r.Delete("/{id}", cfg.Customers.DeleteCustomer)
	})

	r.Route("/sessions", func(r chi.Router) {
		r.Post("/", cfg.Sessions.CreateSession)

		r.Route("/{sid}", func(r chi.Router) {
			r.Get("/", cfg.Sessions.GetSession)
			r.Delete("/", cfg.Sessions.DeleteSession)
			r.Get("/customers", cfg.Sessions.ListCustomers)
			r.Get("/customers/export", cfg.Sessions.ExportCustomers)
			r.Put("/search", cfg.Sessions.SetSearch)
			r.Put("/sort", cfg.Sessions.SetSort)
			r.Post("/sort/toggle", cfg.Sessions.ToggleSort)
			r.Put("/page", cfg.Sessions.SetPage)
			r.Put("/page-size", cfg.Sessions.SetPageSize)
			r.Put("/filters", cfg.Sessions.ApplyFilters)
			r.Delete("/filters", cfg.Sessions.ClearFilters)
			r.Post("/refresh", cfg.Sessions.Refresh)
		})
	})

	return r
}
