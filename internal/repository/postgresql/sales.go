package postgresql

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/storeanalytics/sales-dashboard-go/internal/domain/sales"
	"github.com/storeanalytics/sales-dashboard-go/internal/pkg/database"
	"github.com/storeanalytics/sales-dashboard-go/internal/pkg/metrics"
)

type salesRepositoryImpl struct {
	db      *database.Handle
	metrics *metrics.Recorder
}

func NewSalesRepository(db *database.Handle, recorder *metrics.Recorder) sales.SalesRepository {
	return &salesRepositoryImpl{db: db, metrics: recorder}
}

// Running totals restart per seller and include the current day. A zero
// denominator yields NULL instead of a division error.
const windowedDaily = `
	windowed AS (
		SELECT
			sale_date,
			seller_id,
			seller_name,
			qualifying,
			total,
			SUM(qualifying) OVER w AS qualifying_cumulative,
			SUM(total) OVER w AS total_cumulative
		FROM daily
		WINDOW w AS (PARTITION BY seller_id ORDER BY sale_date ROWS BETWEEN UNBOUNDED PRECEDING AND CURRENT ROW)
	)
	SELECT
		sale_date,
		seller_id,
		seller_name,
		qualifying,
		total,
		ROUND(100.0 * qualifying / NULLIF(total, 0), 2)::float8 AS pct_daily,
		qualifying_cumulative::bigint,
		total_cumulative::bigint,
		ROUND(100.0 * qualifying_cumulative / NULLIF(total_cumulative, 0), 2)::float8 AS pct_cumulative
	FROM windowed
	ORDER BY sale_date DESC, seller_name ASC
`

// GetClubDaily counts, per seller and day, the sales where the customer's CPF
// was registered in the loyalty club. Only cash sessions with a balance
// history are considered.
func (r *salesRepositoryImpl) GetClubDaily(ctx context.Context, filter sales.Filter) ([]sales.DailyRecord, error) {
	query := `
		WITH daily AS (
			SELECT
				DATE(s.created_at) AS sale_date,
				ch.opened_by AS seller_id,
				COALESCE(MAX(u.name), '') AS seller_name,
				COUNT(*) FILTER (WHERE s.cpf_used_club = true) AS qualifying,
				COUNT(*) AS total
			FROM cash_history ch
			INNER JOIN user_the_best u ON u.id = ch.opened_by
			INNER JOIN sales s ON s.cash_history_id = ch.id
			WHERE ch.store_id = $1
				AND DATE(s.created_at) >= $2
				AND DATE(s.created_at) <= $3
				AND s.type = 0
				AND s.abstract_sale = false
				AND NOT (u.name = ANY($4))
				AND EXISTS (
					SELECT 1 FROM balance_history bh WHERE bh.cash_history_id = ch.id
				)
			GROUP BY ch.opened_by, DATE(s.created_at)
		),` + windowedDaily

	return r.queryDaily(ctx, "club_daily", query,
		filter.StoreID, filter.Start.Time, filter.End.Time, excluded(filter))
}

// GetSellerItemsDaily counts, per seller and day, the non-buffet items sold
// against the number of sales.
func (r *salesRepositoryImpl) GetSellerItemsDaily(ctx context.Context, filter sales.Filter) ([]sales.DailyRecord, error) {
	query := `
		WITH item_counts AS (
			SELECT si.sale_id, COUNT(*) AS items
			FROM sale_items si
			WHERE si.name <> $5
			GROUP BY si.sale_id
		),
		daily AS (
			SELECT
				DATE(s.created_at) AS sale_date,
				ch.opened_by AS seller_id,
				COALESCE(MAX(u.name), '') AS seller_name,
				COALESCE(SUM(ic.items), 0)::bigint AS qualifying,
				COUNT(*) AS total
			FROM cash_history ch
			INNER JOIN user_the_best u ON u.id = ch.opened_by
			INNER JOIN sales s ON s.cash_history_id = ch.id
			LEFT JOIN item_counts ic ON ic.sale_id = s.id
			WHERE ch.store_id = $1
				AND DATE(s.created_at) >= $2
				AND DATE(s.created_at) <= $3
				AND s.type = 0
				AND s.abstract_sale = false
				AND NOT (u.name = ANY($4))
			GROUP BY ch.opened_by, DATE(s.created_at)
		),` + windowedDaily

	return r.queryDaily(ctx, "seller_items_daily", query,
		filter.StoreID, filter.Start.Time, filter.End.Time, excluded(filter), filter.BuffetItemName)
}

// GetItemSales counts non-buffet item sales per item and seller.
func (r *salesRepositoryImpl) GetItemSales(ctx context.Context, filter sales.Filter) (result []sales.ItemSellerSales, err error) {
	start := time.Now()
	defer func() { r.metrics.ObserveQuery("item_sales", start, len(result), err) }()

	q, err := GetQuerier(ctx, r.db)
	if err != nil {
		return nil, err
	}

	query := `
		SELECT
			si.name AS item,
			COALESCE(u.name, '') AS seller_name,
			COUNT(*) AS sales
		FROM cash_history ch
		INNER JOIN user_the_best u ON u.id = ch.opened_by
		INNER JOIN sales s ON s.cash_history_id = ch.id
		INNER JOIN sale_items si ON si.sale_id = s.id
		WHERE ch.store_id = $1
			AND si.name <> $5
			AND DATE(s.created_at) >= $2
			AND DATE(s.created_at) <= $3
			AND s.type = 0
			AND s.abstract_sale = false
			AND NOT (u.name = ANY($4))
		GROUP BY si.name, u.name
		ORDER BY si.name, u.name
	`

	rows, err := q.Query(ctx, query,
		filter.StoreID, filter.Start.Time, filter.End.Time, excluded(filter), filter.BuffetItemName)
	if err != nil {
		return nil, fmt.Errorf("failed to query item sales: %w", err)
	}
	defer rows.Close()

	result = []sales.ItemSellerSales{}
	for rows.Next() {
		var row sales.ItemSellerSales
		if err := rows.Scan(&row.Item, &row.SellerName, &row.Sales); err != nil {
			return nil, fmt.Errorf("failed to scan item sales row: %w", err)
		}
		result = append(result, row)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating item sales rows: %w", err)
	}

	return result, nil
}

func (r *salesRepositoryImpl) ReadSnapshot(ctx context.Context, fn func(ctx context.Context) error) error {
	return WithReadOnlySnapshot(ctx, r.db, fn)
}

func (r *salesRepositoryImpl) queryDaily(ctx context.Context, name, query string, args ...interface{}) (result []sales.DailyRecord, err error) {
	start := time.Now()
	defer func() { r.metrics.ObserveQuery(name, start, len(result), err) }()

	q, err := GetQuerier(ctx, r.db)
	if err != nil {
		return nil, err
	}

	rows, err := q.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query %s: %w", name, err)
	}
	defer rows.Close()

	result, err = scanDailyRecords(rows)
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", name, err)
	}
	return result, nil
}

func scanDailyRecords(rows pgx.Rows) ([]sales.DailyRecord, error) {
	records := []sales.DailyRecord{}
	for rows.Next() {
		var (
			rec      sales.DailyRecord
			saleDate time.Time
		)
		err := rows.Scan(
			&saleDate,
			&rec.SellerID,
			&rec.SellerName,
			&rec.Qualifying,
			&rec.Total,
			&rec.PctDaily,
			&rec.QualifyingCumulative,
			&rec.TotalCumulative,
			&rec.PctCumulative,
		)
		if err != nil {
			return nil, err
		}
		rec.Date = sales.DateOf(saleDate)
		records = append(records, rec)
	}
	return records, rows.Err()
}

// excluded never returns nil; a nil slice would be sent as NULL and
// NOT (name = ANY(NULL)) filters out every row.
func excluded(filter sales.Filter) []string {
	if filter.ExcludedSellers == nil {
		return []string{}
	}
	return filter.ExcludedSellers
}
