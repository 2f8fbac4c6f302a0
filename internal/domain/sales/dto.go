package sales

import (
	"time"

	"github.com/storeanalytics/sales-dashboard-go/internal/pkg/validator"
	"github.com/storeanalytics/sales-dashboard-go/internal/pkg/vegalite"
)

// ========================================
// REQUEST
// ========================================

// DateRangeRequest is the inclusive report period. Both dates may be omitted
// to report the current month to date.
type DateRangeRequest struct {
	StartDate string `json:"start_date" validate:"required_with=EndDate,omitempty,datetime=2006-01-02"`
	EndDate   string `json:"end_date" validate:"required_with=StartDate,omitempty,datetime=2006-01-02"`
}

func (r *DateRangeRequest) Validate() error {
	if err := validator.Struct(r); err != nil {
		return err
	}

	if r.StartDate == "" {
		return nil
	}
	start, _ := validator.IsValidDate(r.StartDate)
	end, _ := validator.IsValidDate(r.EndDate)
	if end.Before(start) {
		return validator.ValidationErrors{{
			Field:   "end_date",
			Message: "end_date must not be before start_date",
		}}
	}
	return nil
}

// Range resolves the request against today. An empty request yields the first
// day of today's month through today.
func (r *DateRangeRequest) Range(today time.Time) (DateRange, error) {
	if r.StartDate == "" && r.EndDate == "" {
		end := DateOf(today)
		return DateRange{Start: NewDate(end.Year(), end.Month(), 1), End: end}, nil
	}

	start, err := ParseDate(r.StartDate)
	if err != nil {
		return DateRange{}, err
	}
	end, err := ParseDate(r.EndDate)
	if err != nil {
		return DateRange{}, err
	}
	if end.Before(start.Time) {
		return DateRange{}, ErrInvalidDateRange
	}
	return DateRange{Start: start, End: end}, nil
}

type DateRange struct {
	Start Date `json:"start_date"`
	End   Date `json:"end_date"`
}

// ========================================
// REPORTS
// ========================================

// ReportKind names a report in routes, metrics and export file names.
type ReportKind string

const (
	ReportClub        ReportKind = "club"
	ReportSellerItems ReportKind = "seller-items"
	ReportItems       ReportKind = "items"
)

func ParseReportKind(s string) (ReportKind, error) {
	switch k := ReportKind(s); k {
	case ReportClub, ReportSellerItems, ReportItems:
		return k, nil
	}
	return "", ErrUnknownReport
}

const (
	MessageNoClubData        = "no club data found for the selected period"
	MessageNoSellerItemsData = "no item sales per seller found for the selected period"
	MessageNoItemData        = "no item sales found for the selected period"
)

// DailyReport is a per-seller daily report with its weekly rollups and
// leaderboard. Both the club and the seller items reports use it.
type DailyReport struct {
	Kind         ReportKind         `json:"kind"`
	Range        DateRange          `json:"range"`
	Empty        bool               `json:"empty"`
	Message      string             `json:"message,omitempty"`
	Rows         []DailyRecord      `json:"rows"`
	Weekly       []WeeklyRecord     `json:"weekly"`
	StoreWeekly  []StoreWeeklyTotal `json:"store_weekly"`
	Ranking      []RankingEntry     `json:"ranking"`
	TrendAxis    *TrendAxis         `json:"trend_axis"`
	TrendChart   *vegalite.Spec     `json:"trend_chart"`
	RankingChart *vegalite.Spec     `json:"ranking_chart"`
}

type ItemSalesReport struct {
	Range      DateRange         `json:"range"`
	Empty      bool              `json:"empty"`
	Message    string            `json:"message,omitempty"`
	Rows       []ItemSellerSales `json:"rows"`
	ItemTotals []ItemTotal       `json:"item_totals"`
	Chart      *vegalite.Spec    `json:"chart"`
}

// DashboardReport bundles the three reports, all read from one snapshot.
type DashboardReport struct {
	Range       DateRange       `json:"range"`
	Club        DailyReport     `json:"club"`
	SellerItems DailyReport     `json:"seller_items"`
	Items       ItemSalesReport `json:"items"`
}

// ExportFile is a rendered workbook ready to be sent as a download.
type ExportFile struct {
	Filename    string
	ContentType string
	Content     []byte
}
