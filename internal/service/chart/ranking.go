package chart

import (
	"math"
	"sort"

	"github.com/storeanalytics/sales-dashboard-go/internal/domain/sales"
	"github.com/storeanalytics/sales-dashboard-go/internal/pkg/vegalite"
)

// RankLatest keeps each seller's most recent row and orders the sellers by
// cumulative percentage, highest first, sellers without one last. Two rows of
// a seller on the same date are settled by the higher cumulative percentage,
// then by input order.
func RankLatest(rows []sales.DailyRecord) []sales.RankingEntry {
	latest := make(map[string]int)
	order := make([]string, 0)
	for i, r := range rows {
		j, seen := latest[r.SellerName]
		if !seen {
			latest[r.SellerName] = i
			order = append(order, r.SellerName)
			continue
		}
		cur := rows[j]
		if r.Date.After(cur.Date.Time) || (r.Date.Equal(cur.Date.Time) && pctGreater(r.PctCumulative, cur.PctCumulative)) {
			latest[r.SellerName] = i
		}
	}

	entries := make([]sales.RankingEntry, 0, len(order))
	for _, name := range order {
		entries = append(entries, sales.RankingEntry{DailyRecord: rows[latest[name]]})
	}

	sort.SliceStable(entries, func(a, b int) bool {
		pa, pb := entries[a].PctCumulative, entries[b].PctCumulative
		if pctGreater(pa, pb) {
			return true
		}
		if pctGreater(pb, pa) {
			return false
		}
		return entries[a].SellerName < entries[b].SellerName
	})
	for i := range entries {
		entries[i].Position = i + 1
	}
	return entries
}

// pctGreater orders nil below every value.
func pctGreater(a, b *float64) bool {
	switch {
	case a == nil:
		return false
	case b == nil:
		return true
	default:
		return *a > *b
	}
}

// Scale selects how ranking values are shown.
type Scale int

const (
	// Percent shows values as given, with two decimals.
	Percent Scale = iota
	// Fraction divides values by 100 and formats them as percentages.
	Fraction
)

type rankBar struct {
	Seller string  `json:"seller"`
	Pct    float64 `json:"pct"`
}

// Ranking draws the leaderboard as horizontal bars sorted by value with the
// value printed next to each bar. Entries without a percentage are skipped;
// nil is returned when none is left.
func Ranking(entries []sales.RankingEntry, metric string, scale Scale) *vegalite.Spec {
	bars := make([]rankBar, 0, len(entries))
	peak := 0.0
	for _, e := range entries {
		pct := e.PctCumulative
		if scale == Fraction {
			pct = sales.Fraction(pct)
		}
		if pct == nil {
			continue
		}
		bars = append(bars, rankBar{Seller: e.SellerName, Pct: *pct})
		peak = math.Max(peak, *pct)
	}
	if len(bars) == 0 {
		return nil
	}

	format := ".2f"
	x := &vegalite.Channel{Field: "pct", Type: vegalite.Quantitative, Title: metric}
	if scale == Fraction {
		format = ".2%"
		x.Scale = &vegalite.Scale{Domain: []float64{0, peak * 1.1}}
		x.Axis = &vegalite.Axis{Format: "%"}
	}

	base := vegalite.Encoding{
		Y:     &vegalite.Channel{Field: "seller", Type: vegalite.Nominal, Title: "Vendedor", Sort: "-x"},
		X:     x,
		Color: &vegalite.Channel{Field: "seller", Type: vegalite.Nominal, Legend: vegalite.NoLegend},
		Tooltip: []vegalite.Channel{
			{Field: "seller", Type: vegalite.Nominal, Title: "Vendedor"},
			{Field: "pct", Type: vegalite.Quantitative, Title: "Percentual", Format: format},
		},
	}
	text := base
	text.Text = &vegalite.Channel{Field: "pct", Type: vegalite.Quantitative, Format: format}

	spec := vegalite.New("Ranking "+metric, bars)
	spec.Layer = []vegalite.Spec{
		{Mark: &vegalite.Mark{Type: "bar"}, Encoding: &base},
		{Mark: &vegalite.Mark{Type: "text", Align: "left", Baseline: "middle", Dx: 3}, Encoding: &text},
	}
	return spec
}
