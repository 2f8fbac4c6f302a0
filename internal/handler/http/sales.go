package http

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/storeanalytics/sales-dashboard-go/internal/domain/sales"
	"github.com/storeanalytics/sales-dashboard-go/internal/handler/http/response"
)

type SalesHandler interface {
	// CPF Clube capture rate per seller
	GetClubReport(w http.ResponseWriter, r *http.Request)

	// Non-buffet items per sale per seller
	GetSellerItemsReport(w http.ResponseWriter, r *http.Request)

	// Item sales per item and seller
	GetItemSalesReport(w http.ResponseWriter, r *http.Request)

	// All reports from one snapshot
	GetDashboard(w http.ResponseWriter, r *http.Request)

	// XLSX download of one report
	ExportReport(w http.ResponseWriter, r *http.Request)
}

type salesHandlerImpl struct {
	salesService sales.SalesService
}

func NewSalesHandler(salesService sales.SalesService) SalesHandler {
	return &salesHandlerImpl{
		salesService: salesService,
	}
}

func dateRangeFromQuery(r *http.Request) sales.DateRangeRequest {
	query := r.URL.Query()
	return sales.DateRangeRequest{
		StartDate: query.Get("start_date"),
		EndDate:   query.Get("end_date"),
	}
}

// GetClubReport handles GET /reports/club
func (h *salesHandlerImpl) GetClubReport(w http.ResponseWriter, r *http.Request) {
	result, err := h.salesService.ClubReport(r.Context(), dateRangeFromQuery(r))
	if err != nil {
		slog.Error("Club report error", "error", err)
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

// GetSellerItemsReport handles GET /reports/seller-items
func (h *salesHandlerImpl) GetSellerItemsReport(w http.ResponseWriter, r *http.Request) {
	result, err := h.salesService.SellerItemsReport(r.Context(), dateRangeFromQuery(r))
	if err != nil {
		slog.Error("Seller items report error", "error", err)
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

// GetItemSalesReport handles GET /reports/items
func (h *salesHandlerImpl) GetItemSalesReport(w http.ResponseWriter, r *http.Request) {
	result, err := h.salesService.ItemSalesReport(r.Context(), dateRangeFromQuery(r))
	if err != nil {
		slog.Error("Item sales report error", "error", err)
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

// GetDashboard handles GET /reports/dashboard
func (h *salesHandlerImpl) GetDashboard(w http.ResponseWriter, r *http.Request) {
	result, err := h.salesService.DashboardReport(r.Context(), dateRangeFromQuery(r))
	if err != nil {
		slog.Error("Dashboard report error", "error", err)
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

// ExportReport handles GET /reports/{report}/export
func (h *salesHandlerImpl) ExportReport(w http.ResponseWriter, r *http.Request) {
	kind, err := sales.ParseReportKind(chi.URLParam(r, "report"))
	if err != nil {
		response.HandleError(w, err)
		return
	}

	file, err := h.salesService.ExportReport(r.Context(), kind, dateRangeFromQuery(r))
	if err != nil {
		slog.Error("Export report error", "report", kind, "error", err)
		response.HandleError(w, err)
		return
	}

	response.File(w, file.Filename, file.ContentType, file.Content)
}
