package handler

import (
	"bytes"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/Raymond9734/customer-dashboard-backend/internal/export"
	"github.com/Raymond9734/customer-dashboard-backend/internal/form"
	"github.com/Raymond9734/customer-dashboard-backend/internal/service"
)

// SessionHandler handles the query state of dashboard sessions
type SessionHandler struct {
	dashboardService service.DashboardService
	logger           *slog.Logger
}

// NewSessionHandler creates a new session handler
func NewSessionHandler(dashboardService service.DashboardService, logger *slog.Logger) *SessionHandler {
	return &SessionHandler{
		dashboardService: dashboardService,
		logger:           logger,
	}
}

func sessionID(r *http.Request) string {
	return chi.URLParam(r, "sid")
}

// CreateSession handles POST /sessions
func (h *SessionHandler) CreateSession(w http.ResponseWriter, r *http.Request) {
	result, err := h.dashboardService.NewSession(r.Context())
	if err != nil {
		handleError(w, err, h.logger)
		return
	}

	respondCreated(w, result)
}

// GetSession handles GET /sessions/{sid}
func (h *SessionHandler) GetSession(w http.ResponseWriter, r *http.Request) {
	state, err := h.dashboardService.GetState(r.Context(), sessionID(r))
	if err != nil {
		handleError(w, err, h.logger)
		return
	}

	respondSuccess(w, state)
}

// DeleteSession handles DELETE /sessions/{sid}
func (h *SessionHandler) DeleteSession(w http.ResponseWriter, r *http.Request) {
	if err := h.dashboardService.EndSession(r.Context(), sessionID(r)); err != nil {
		handleError(w, err, h.logger)
		return
	}

	respondNoContent(w)
}

// ListCustomers handles GET /sessions/{sid}/customers
func (h *SessionHandler) ListCustomers(w http.ResponseWriter, r *http.Request) {
	view, err := h.dashboardService.View(r.Context(), sessionID(r))
	if err != nil {
		handleError(w, err, h.logger)
		return
	}

	respondSuccess(w, view)
}

// ExportCustomers handles GET /sessions/{sid}/customers/export
func (h *SessionHandler) ExportCustomers(w http.ResponseWriter, r *http.Request) {
	customers, _, err := h.dashboardService.Matching(r.Context(), sessionID(r))
	if err != nil {
		handleError(w, err, h.logger)
		return
	}

	// Buffer so a failed render can still become a JSON error
	var buf bytes.Buffer
	if err := export.WriteXLSX(&buf, customers); err != nil {
		handleError(w, err, h.logger)
		return
	}

	filename := fmt.Sprintf("customers-%s.xlsx", time.Now().UTC().Format("20060102-150405"))
	w.Header().Set("Content-Type", export.ContentType)
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
	w.WriteHeader(http.StatusOK)
	_, _ = buf.WriteTo(w)
}

// SetSearch handles PUT /sessions/{sid}/search
func (h *SessionHandler) SetSearch(w http.ResponseWriter, r *http.Request) {
	var req service.SearchRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	state, err := h.dashboardService.SetSearchTerm(r.Context(), sessionID(r), req.SearchTerm)
	if err != nil {
		handleError(w, err, h.logger)
		return
	}

	respondSuccess(w, state)
}

// SetSort handles PUT /sessions/{sid}/sort
func (h *SessionHandler) SetSort(w http.ResponseWriter, r *http.Request) {
	var req service.SortRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	if err := req.Validate(); err != nil {
		handleError(w, err, h.logger)
		return
	}

	state, err := h.dashboardService.SetSorting(r.Context(), sessionID(r), req.SortBy, req.SortOrder)
	if err != nil {
		handleError(w, err, h.logger)
		return
	}

	respondSuccess(w, state)
}

// ToggleSort handles POST /sessions/{sid}/sort/toggle
func (h *SessionHandler) ToggleSort(w http.ResponseWriter, r *http.Request) {
	var req service.ToggleSortRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	state, err := h.dashboardService.ToggleSort(r.Context(), sessionID(r), req.SortBy)
	if err != nil {
		handleError(w, err, h.logger)
		return
	}

	respondSuccess(w, state)
}

// SetPage handles PUT /sessions/{sid}/page
func (h *SessionHandler) SetPage(w http.ResponseWriter, r *http.Request) {
	var req service.PageRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	state, err := h.dashboardService.SetCurrentPage(r.Context(), sessionID(r), req.Page)
	if err != nil {
		handleError(w, err, h.logger)
		return
	}

	respondSuccess(w, state)
}

// SetPageSize handles PUT /sessions/{sid}/page-size
func (h *SessionHandler) SetPageSize(w http.ResponseWriter, r *http.Request) {
	var req service.PageSizeRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	state, err := h.dashboardService.SetItemsPerPage(r.Context(), sessionID(r), req.ItemsPerPage)
	if err != nil {
		handleError(w, err, h.logger)
		return
	}

	respondSuccess(w, state)
}

// ApplyFilters handles PUT /sessions/{sid}/filters
func (h *SessionHandler) ApplyFilters(w http.ResponseWriter, r *http.Request) {
	current, err := h.dashboardService.GetState(r.Context(), sessionID(r))
	if err != nil {
		handleError(w, err, h.logger)
		return
	}

	// omitted fields keep the active filter
	f := form.OpenFilterForm(sessionID(r), current.FilterOptions)
	draft := f.Draft()
	if !decodeJSON(w, r, &draft) {
		return
	}
	f.Load(draft)

	state, err := f.Apply(r.Context(), h.dashboardService)
	if err != nil {
		handleError(w, err, h.logger)
		return
	}

	respondSuccess(w, state)
}

// ClearFilters handles DELETE /sessions/{sid}/filters
func (h *SessionHandler) ClearFilters(w http.ResponseWriter, r *http.Request) {
	current, err := h.dashboardService.GetState(r.Context(), sessionID(r))
	if err != nil {
		handleError(w, err, h.logger)
		return
	}

	f := form.OpenFilterForm(sessionID(r), current.FilterOptions)

	state, err := f.Clear(r.Context(), h.dashboardService)
	if err != nil {
		handleError(w, err, h.logger)
		return
	}

	respondSuccess(w, state)
}

// Refresh handles POST /sessions/{sid}/refresh
func (h *SessionHandler) Refresh(w http.ResponseWriter, r *http.Request) {
	result, err := h.dashboardService.Refresh(r.Context(), sessionID(r))
	if err != nil {
		handleError(w, err, h.logger)
		return
	}

	respondSuccess(w, result)
}
