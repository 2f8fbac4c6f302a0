package chart

import (
	"math"

	"github.com/storeanalytics/sales-dashboard-go/internal/domain/sales"
)

const (
	tickStep     = 5
	domainMargin = 2
)

// TrendAxis fits a y axis around the non-nil values: whole-number bounds,
// ticks every 5 starting at the lower bound and running past the upper one,
// and a domain padded by 2 on both sides. It returns false when there is no
// value to fit.
func TrendAxis(values []*float64) (sales.TrendAxis, bool) {
	lo, hi := math.Inf(1), math.Inf(-1)
	for _, v := range values {
		if v == nil {
			continue
		}
		lo = math.Min(lo, *v)
		hi = math.Max(hi, *v)
	}
	if math.IsInf(lo, 1) {
		return sales.TrendAxis{}, false
	}

	axis := sales.TrendAxis{
		Min: int(math.Floor(lo)),
		Max: int(math.Ceil(hi)),
	}
	for tick := axis.Min; tick < axis.Max+tickStep; tick += tickStep {
		axis.Ticks = append(axis.Ticks, tick)
	}
	axis.Domain = [2]int{axis.Min - domainMargin, axis.Max + domainMargin}
	return axis, true
}

func toFloats(ints []int) []float64 {
	out := make([]float64, len(ints))
	for i, v := range ints {
		out[i] = float64(v)
	}
	return out
}
