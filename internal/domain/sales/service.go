package sales

import "context"

// SalesService defines the interface for report generation
type SalesService interface {
	// CPF Clube capture rate per seller
	ClubReport(ctx context.Context, req DateRangeRequest) (DailyReport, error)

	// Non-buffet items per sale per seller
	SellerItemsReport(ctx context.Context, req DateRangeRequest) (DailyReport, error)

	// Non-buffet item sales per item and seller
	ItemSalesReport(ctx context.Context, req DateRangeRequest) (ItemSalesReport, error)

	// All three reports from a single database snapshot
	DashboardReport(ctx context.Context, req DateRangeRequest) (DashboardReport, error)

	// XLSX workbook of one report
	ExportReport(ctx context.Context, kind ReportKind, req DateRangeRequest) (ExportFile, error)
}
