package handler

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/Raymond9734/customer-dashboard-backend/internal/analytics"
	"github.com/Raymond9734/customer-dashboard-backend/internal/form"
	"github.com/Raymond9734/customer-dashboard-backend/internal/service"
)

// CustomerHandler handles customer HTTP requests
type CustomerHandler struct {
	customerService service.CustomerService
	logger          *slog.Logger
}

// NewCustomerHandler creates a new customer handler
func NewCustomerHandler(customerService service.CustomerService, logger *slog.Logger) *CustomerHandler {
	return &CustomerHandler{
		customerService: customerService,
		logger:          logger,
	}
}

// CreateCustomer handles POST /customers
func (h *CustomerHandler) CreateCustomer(w http.ResponseWriter, r *http.Request) {
	// omitted fields keep the add dialog's defaults
	f := form.NewAddForm()
	draft := f.Draft()
	if !decodeJSON(w, r, &draft) {
		return
	}
	f.Load(draft)

	customer, err := f.Submit(r.Context(), h.customerService)
	if err != nil {
		handleError(w, err, h.logger)
		return
	}

	respondCreated(w, customer.Detail())
}

// GetCustomer handles GET /customers/{id}
func (h *CustomerHandler) GetCustomer(w http.ResponseWriter, r *http.Request) {
	customer, err := h.customerService.GetCustomer(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		handleError(w, err, h.logger)
		return
	}

	respondSuccess(w, customer.Detail())
}

// UpdateCustomer handles PUT /customers/{id}
func (h *CustomerHandler) UpdateCustomer(w http.ResponseWriter, r *http.Request) {
	current, err := h.customerService.GetCustomer(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		handleError(w, err, h.logger)
		return
	}

	// omitted fields keep the stored values
	f := form.NewEditForm(*current)
	draft := f.Draft()
	if !decodeJSON(w, r, &draft) {
		return
	}
	f.Load(draft)

	customer, err := f.Submit(r.Context(), h.customerService)
	if err != nil {
		handleError(w, err, h.logger)
		return
	}

	respondSuccess(w, customer.Detail())
}

// DeleteCustomer handles DELETE /customers/{id}
func (h *CustomerHandler) DeleteCustomer(w http.ResponseWriter, r *http.Request) {
	if err := h.customerService.DeleteCustomer(r.Context(), chi.URLParam(r, "id")); err != nil {
		handleError(w, err, h.logger)
		return
	}

	respondNoContent(w)
}

// Analytics handles GET /analytics
func (h *CustomerHandler) Analytics(w http.ResponseWriter, r *http.Request) {
	customers, err := h.customerService.ListCustomers(r.Context())
	if err != nil {
		handleError(w, err, h.logger)
		return
	}

	respondSuccess(w, analytics.Summarize(customers))
}
