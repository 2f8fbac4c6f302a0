package sales

import (
	"testing"
	"time"

	"github.com/storeanalytics/sales-dashboard-go/internal/domain/sales"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func pct(v float64) *float64 { return &v }

func day(y int, m time.Month, d int, seller string, total, qualifying int64) sales.DailyRecord {
	return sales.DailyRecord{
		Date:       sales.NewDate(y, m, d),
		SellerName: seller,
		Total:      total,
		Qualifying: qualifying,
		PctDaily:   sales.Percent(qualifying, total),
	}
}

func TestWeeklyRollup_TwoWeeks(t *testing.T) {
	daily := []sales.DailyRecord{
		day(2024, 1, 1, "A", 10, 4),
		day(2024, 1, 2, "A", 5, 1),
		day(2024, 1, 8, "A", 8, 8),
	}

	got := WeeklyRollup(daily)
	assert.Equal(t, []sales.WeeklyRecord{
		{
			WeekStart: sales.NewDate(2024, 1, 1), WeekEnd: sales.NewDate(2024, 1, 7),
			SellerName: "A", SumTotal: 15, SumQualifying: 5, PctWeek: pct(33.33),
		},
		{
			WeekStart: sales.NewDate(2024, 1, 8), WeekEnd: sales.NewDate(2024, 1, 14),
			SellerName: "A", SumTotal: 8, SumQualifying: 8, PctWeek: pct(100),
		},
	}, got)
}

func TestWeeklyRollup_IgnoresCumulativeColumns(t *testing.T) {
	d := day(2024, 1, 3, "A", 4, 2)
	d.TotalCumulative, d.QualifyingCumulative = 400, 200

	got := WeeklyRollup([]sales.DailyRecord{d})
	require.Len(t, got, 1)
	assert.Equal(t, int64(4), got[0].SumTotal)
	assert.Equal(t, int64(2), got[0].SumQualifying)
}

func TestWeeklyRollup_Empty(t *testing.T) {
	got := WeeklyRollup(nil)
	assert.NotNil(t, got)
	assert.Empty(t, got)

	assert.Empty(t, StoreWeeklyTotals(got))
}

func TestWeeklyRollup_ZeroTotals(t *testing.T) {
	got := WeeklyRollup([]sales.DailyRecord{
		day(2024, 1, 1, "A", 0, 0),
		day(2024, 1, 2, "A", 0, 0),
	})
	require.Len(t, got, 1)
	assert.Nil(t, got[0].PctWeek)

	store := StoreWeeklyTotals(got)
	require.Len(t, store, 1)
	assert.Nil(t, store[0].PctWeek)
}

func TestWeeklyRollup_FirstSeenOrder(t *testing.T) {
	daily := []sales.DailyRecord{
		day(2024, 1, 9, "B", 1, 1),
		day(2024, 1, 2, "A", 1, 0),
		day(2024, 1, 8, "A", 1, 1),
		day(2024, 1, 3, "B", 1, 0),
		day(2024, 1, 1, "A", 1, 1),
	}

	got := WeeklyRollup(daily)
	require.Len(t, got, 4)
	assert.Equal(t, "B", got[0].SellerName)
	assert.Equal(t, sales.NewDate(2024, 1, 8), got[0].WeekStart)
	assert.Equal(t, "A", got[1].SellerName)
	assert.Equal(t, sales.NewDate(2024, 1, 1), got[1].WeekStart)
	assert.Equal(t, int64(2), got[1].SumTotal)
	assert.Equal(t, "A", got[2].SellerName)
	assert.Equal(t, sales.NewDate(2024, 1, 8), got[2].WeekStart)
	assert.Equal(t, "B", got[3].SellerName)
	assert.Equal(t, sales.NewDate(2024, 1, 1), got[3].WeekStart)

	assert.Equal(t, got, WeeklyRollup(daily), "same input gives the same output")
}

func TestWeeklyRollup_Conservation(t *testing.T) {
	daily := []sales.DailyRecord{
		day(2024, 1, 28, "A", 3, 1),
		day(2024, 1, 29, "A", 7, 2),
		day(2024, 2, 4, "A", 2, 2),
		day(2024, 2, 5, "A", 9, 0),
		day(2024, 1, 29, "B", 5, 5),
		day(2024, 2, 6, "B", 1, 0),
	}

	dailyTotals := map[string]int64{}
	for _, d := range daily {
		dailyTotals[d.SellerName] += d.Total
	}

	weekly := WeeklyRollup(daily)
	weeklyTotals := map[string]int64{}
	for _, w := range weekly {
		weeklyTotals[w.SellerName] += w.SumTotal
		assert.Equal(t, w.WeekStart.AddDays(6), w.WeekEnd)
	}
	assert.Equal(t, dailyTotals, weeklyTotals)
}

func TestStoreWeeklyTotals(t *testing.T) {
	daily := []sales.DailyRecord{
		day(2024, 1, 1, "A", 10, 4),
		day(2024, 1, 2, "B", 5, 1),
		day(2024, 1, 9, "A", 3, 3),
		day(2024, 1, 10, "B", 0, 0),
	}
	weekly := WeeklyRollup(daily)
	store := StoreWeeklyTotals(weekly)

	assert.Equal(t, []sales.StoreWeeklyTotal{
		{
			WeekStart: sales.NewDate(2024, 1, 1), WeekEnd: sales.NewDate(2024, 1, 7),
			SumTotal: 15, SumQualifying: 5, PctWeek: pct(33.33),
		},
		{
			WeekStart: sales.NewDate(2024, 1, 8), WeekEnd: sales.NewDate(2024, 1, 14),
			SumTotal: 3, SumQualifying: 3, PctWeek: pct(100),
		},
	}, store)

	for _, s := range store {
		var sum int64
		for _, w := range weekly {
			if w.WeekStart == s.WeekStart {
				sum += w.SumTotal
			}
		}
		assert.Equal(t, sum, s.SumTotal)
	}
}
