package sales

import "github.com/storeanalytics/sales-dashboard-go/internal/domain/sales"

type weekKey struct {
	seller string
	start  sales.Date
}

// WeeklyRollup sums each seller's daily figures per Monday..Sunday week. Only
// the per-day columns are summed, the running totals are ignored. Groups keep
// the order in which they first appear in daily.
func WeeklyRollup(daily []sales.DailyRecord) []sales.WeeklyRecord {
	index := make(map[weekKey]int)
	weekly := make([]sales.WeeklyRecord, 0)

	for _, d := range daily {
		start := d.Date.WeekStart()
		key := weekKey{seller: d.SellerName, start: start}

		i, ok := index[key]
		if !ok {
			i = len(weekly)
			index[key] = i
			weekly = append(weekly, sales.WeeklyRecord{
				WeekStart:  start,
				WeekEnd:    start.AddDays(6),
				SellerName: d.SellerName,
			})
		}
		weekly[i].SumTotal += d.Total
		weekly[i].SumQualifying += d.Qualifying
	}

	for i := range weekly {
		weekly[i].PctWeek = sales.Percent(weekly[i].SumQualifying, weekly[i].SumTotal)
	}
	return weekly
}

// StoreWeeklyTotals sums the weekly records of all sellers per week, in order
// of first appearance.
func StoreWeeklyTotals(weekly []sales.WeeklyRecord) []sales.StoreWeeklyTotal {
	index := make(map[sales.Date]int)
	totals := make([]sales.StoreWeeklyTotal, 0)

	for _, w := range weekly {
		i, ok := index[w.WeekStart]
		if !ok {
			i = len(totals)
			index[w.WeekStart] = i
			totals = append(totals, sales.StoreWeeklyTotal{WeekStart: w.WeekStart, WeekEnd: w.WeekEnd})
		}
		totals[i].SumTotal += w.SumTotal
		totals[i].SumQualifying += w.SumQualifying
	}

	for i := range totals {
		totals[i].PctWeek = sales.Percent(totals[i].SumQualifying, totals[i].SumTotal)
	}
	return totals
}
