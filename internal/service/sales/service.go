package sales

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/go-chi/jwtauth/v5"
	"github.com/storeanalytics/sales-dashboard-go/internal/domain/sales"
	"github.com/storeanalytics/sales-dashboard-go/internal/pkg/jwt"
	"github.com/storeanalytics/sales-dashboard-go/internal/pkg/metrics"
	"github.com/storeanalytics/sales-dashboard-go/internal/service/chart"
)

// Options are the store-wide report settings.
type Options struct {
	ExcludedSellers []string
	BuffetItemName  string
	SlowReport      time.Duration
}

type SalesServiceImpl struct {
	repo    sales.SalesRepository
	metrics *metrics.Recorder
	opts    Options
	now     func() time.Time
}

func NewSalesService(repo sales.SalesRepository, recorder *metrics.Recorder, opts Options) *SalesServiceImpl {
	return &SalesServiceImpl{
		repo:    repo,
		metrics: recorder,
		opts:    opts,
		now:     time.Now,
	}
}

// dailyLabels are the display names of a daily report.
type dailyLabels struct {
	metric  string
	scale   chart.Scale
	message string
}

var labels = map[sales.ReportKind]dailyLabels{
	sales.ReportClub:        {metric: "% CPF Clube (Acumulado)", scale: chart.Percent, message: sales.MessageNoClubData},
	sales.ReportSellerItems: {metric: "% Venda Itens Acumulado", scale: chart.Fraction, message: sales.MessageNoSellerItemsData},
}

// getStoreIDFromContext extracts store_id from JWT claims
func (s *SalesServiceImpl) getStoreIDFromContext(ctx context.Context) (int64, error) {
	_, claims, err := jwtauth.FromContext(ctx)
	if err != nil {
		return 0, fmt.Errorf("failed to extract claims from context: %w", err)
	}

	storeID, ok := jwt.ClaimInt64(claims, jwt.ClaimStoreID)
	if !ok || storeID <= 0 {
		return 0, sales.ErrStoreNotInClaims
	}
	return storeID, nil
}

// prepare validates req and builds the query filter for the caller's store.
func (s *SalesServiceImpl) prepare(ctx context.Context, req sales.DateRangeRequest) (sales.Filter, sales.DateRange, error) {
	if err := req.Validate(); err != nil {
		return sales.Filter{}, sales.DateRange{}, err
	}

	rng, err := req.Range(s.now())
	if err != nil {
		return sales.Filter{}, sales.DateRange{}, err
	}

	storeID, err := s.getStoreIDFromContext(ctx)
	if err != nil {
		return sales.Filter{}, sales.DateRange{}, err
	}

	return sales.Filter{
		StoreID:         storeID,
		Start:           rng.Start,
		End:             rng.End,
		ExcludedSellers: s.opts.ExcludedSellers,
		BuffetItemName:  s.opts.BuffetItemName,
	}, rng, nil
}

// ClubReport implements sales.SalesService.
func (s *SalesServiceImpl) ClubReport(ctx context.Context, req sales.DateRangeRequest) (sales.DailyReport, error) {
	filter, rng, err := s.prepare(ctx, req)
	if err != nil {
		return sales.DailyReport{}, err
	}

	start := time.Now()
	report, err := s.clubReport(ctx, filter, rng)
	if err != nil {
		return sales.DailyReport{}, err
	}
	s.observe(sales.ReportClub, filter, start, report.Empty)
	return report, nil
}

// SellerItemsReport implements sales.SalesService.
func (s *SalesServiceImpl) SellerItemsReport(ctx context.Context, req sales.DateRangeRequest) (sales.DailyReport, error) {
	filter, rng, err := s.prepare(ctx, req)
	if err != nil {
		return sales.DailyReport{}, err
	}

	start := time.Now()
	report, err := s.sellerItemsReport(ctx, filter, rng)
	if err != nil {
		return sales.DailyReport{}, err
	}
	s.observe(sales.ReportSellerItems, filter, start, report.Empty)
	return report, nil
}

// ItemSalesReport implements sales.SalesService.
func (s *SalesServiceImpl) ItemSalesReport(ctx context.Context, req sales.DateRangeRequest) (sales.ItemSalesReport, error) {
	filter, rng, err := s.prepare(ctx, req)
	if err != nil {
		return sales.ItemSalesReport{}, err
	}

	start := time.Now()
	report, err := s.itemSalesReport(ctx, filter, rng)
	if err != nil {
		return sales.ItemSalesReport{}, err
	}
	s.observe(sales.ReportItems, filter, start, report.Empty)
	return report, nil
}

// DashboardReport runs the three reports one after the other inside a single
// read-only snapshot, so all of them describe the same state of the store.
func (s *SalesServiceImpl) DashboardReport(ctx context.Context, req sales.DateRangeRequest) (sales.DashboardReport, error) {
	filter, rng, err := s.prepare(ctx, req)
	if err != nil {
		return sales.DashboardReport{}, err
	}

	start := time.Now()
	dashboard := sales.DashboardReport{Range: rng}
	err = s.repo.ReadSnapshot(ctx, func(ctx context.Context) error {
		var err error
		if dashboard.Club, err = s.clubReport(ctx, filter, rng); err != nil {
			return err
		}
		if dashboard.SellerItems, err = s.sellerItemsReport(ctx, filter, rng); err != nil {
			return err
		}
		dashboard.Items, err = s.itemSalesReport(ctx, filter, rng)
		return err
	})
	if err != nil {
		return sales.DashboardReport{}, err
	}

	empty := dashboard.Club.Empty && dashboard.SellerItems.Empty && dashboard.Items.Empty
	s.observe("dashboard", filter, start, empty)
	return dashboard, nil
}

func (s *SalesServiceImpl) clubReport(ctx context.Context, filter sales.Filter, rng sales.DateRange) (sales.DailyReport, error) {
	rows, err := s.repo.GetClubDaily(ctx, filter)
	if err != nil {
		slog.Error("club report query failed", "store_id", filter.StoreID, "error", err)
		return sales.DailyReport{}, fmt.Errorf("failed to get club data: %w", err)
	}
	return buildDailyReport(sales.ReportClub, rng, rows), nil
}

func (s *SalesServiceImpl) sellerItemsReport(ctx context.Context, filter sales.Filter, rng sales.DateRange) (sales.DailyReport, error) {
	rows, err := s.repo.GetSellerItemsDaily(ctx, filter)
	if err != nil {
		slog.Error("seller items report query failed", "store_id", filter.StoreID, "error", err)
		return sales.DailyReport{}, fmt.Errorf("failed to get seller items data: %w", err)
	}
	return buildDailyReport(sales.ReportSellerItems, rng, rows), nil
}

func (s *SalesServiceImpl) itemSalesReport(ctx context.Context, filter sales.Filter, rng sales.DateRange) (sales.ItemSalesReport, error) {
	rows, err := s.repo.GetItemSales(ctx, filter)
	if err != nil {
		slog.Error("item sales report query failed", "store_id", filter.StoreID, "error", err)
		return sales.ItemSalesReport{}, fmt.Errorf("failed to get item sales data: %w", err)
	}

	if rows == nil {
		rows = []sales.ItemSellerSales{}
	}

	totals := chart.ItemTotals(rows)
	report := sales.ItemSalesReport{
		Range:      rng,
		Empty:      len(rows) == 0,
		Rows:       rows,
		ItemTotals: totals,
		Chart:      chart.Items(rows, totals),
	}
	if report.Empty {
		report.Message = sales.MessageNoItemData
	}
	return report, nil
}

func buildDailyReport(kind sales.ReportKind, rng sales.DateRange, rows []sales.DailyRecord) sales.DailyReport {
	l := labels[kind]
	if rows == nil {
		rows = []sales.DailyRecord{}
	}

	weekly := WeeklyRollup(rows)
	ranking := chart.RankLatest(rows)
	trend, axis := chart.Trend(rows, l.metric)

	report := sales.DailyReport{
		Kind:         kind,
		Range:        rng,
		Empty:        len(rows) == 0,
		Rows:         rows,
		Weekly:       weekly,
		StoreWeekly:  StoreWeeklyTotals(weekly),
		Ranking:      ranking,
		TrendAxis:    axis,
		TrendChart:   trend,
		RankingChart: chart.Ranking(ranking, l.metric, l.scale),
	}
	if report.Empty {
		report.Message = l.message
	}
	return report
}

func (s *SalesServiceImpl) observe(kind sales.ReportKind, filter sales.Filter, start time.Time, empty bool) {
	s.metrics.ObserveReport(string(kind), empty)

	elapsed := time.Since(start)
	if s.opts.SlowReport > 0 && elapsed > s.opts.SlowReport {
		slog.Warn("slow report",
			"report", kind,
			"store_id", filter.StoreID,
			"start_date", filter.Start.String(),
			"end_date", filter.End.String(),
			"duration_ms", elapsed.Milliseconds(),
		)
	}
}
