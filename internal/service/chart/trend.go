package chart

import (
	"github.com/storeanalytics/sales-dashboard-go/internal/domain/sales"
	"github.com/storeanalytics/sales-dashboard-go/internal/pkg/vegalite"
)

const dateFormat = "%d/%m/%Y"

type trendPoint struct {
	Date   sales.Date `json:"date"`
	Seller string     `json:"seller"`
	Pct    float64    `json:"pct"`
}

// Trend draws each seller's cumulative percentage over time as a line with a
// marker on every day. Days without a percentage are left out. Both results
// are nil when no day has one.
func Trend(rows []sales.DailyRecord, metric string) (*vegalite.Spec, *sales.TrendAxis) {
	values := make([]*float64, len(rows))
	points := make([]trendPoint, 0, len(rows))
	for i, r := range rows {
		values[i] = r.PctCumulative
		if r.PctCumulative != nil {
			points = append(points, trendPoint{Date: r.Date, Seller: r.SellerName, Pct: *r.PctCumulative})
		}
	}

	axis, ok := TrendAxis(values)
	if !ok {
		return nil, nil
	}

	encoding := func() *vegalite.Encoding {
		return &vegalite.Encoding{
			X: &vegalite.Channel{
				Field: "date",
				Type:  vegalite.Temporal,
				Title: "Data da Venda",
				Axis:  &vegalite.Axis{Format: dateFormat},
			},
			Y: &vegalite.Channel{
				Field: "pct",
				Type:  vegalite.Quantitative,
				Title: metric,
				Scale: &vegalite.Scale{Domain: []float64{float64(axis.Domain[0]), float64(axis.Domain[1])}},
				Axis:  &vegalite.Axis{Values: toFloats(axis.Ticks)},
			},
			Color: &vegalite.Channel{Field: "seller", Type: vegalite.Nominal, Title: "Vendedor"},
			Tooltip: []vegalite.Channel{
				{Field: "date", Type: vegalite.Temporal, Title: "Data da Venda", Format: dateFormat},
				{Field: "seller", Type: vegalite.Nominal, Title: "Vendedor"},
				{Field: "pct", Type: vegalite.Quantitative, Title: metric, Format: ".2f"},
			},
		}
	}

	spec := vegalite.New(metric, points)
	spec.Layer = []vegalite.Spec{
		{Mark: &vegalite.Mark{Type: "line"}, Encoding: encoding()},
		{Mark: &vegalite.Mark{Type: "circle", Size: 60}, Encoding: encoding()},
	}
	return spec, &axis
}
