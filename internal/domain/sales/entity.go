package sales

// DailyRecord is one seller's figures for one calendar day, together with the
// running totals of that seller up to and including the day.
type DailyRecord struct {
	Date                 Date     `json:"date"`
	SellerID             int64    `json:"seller_id"`
	SellerName           string   `json:"seller"`
	Qualifying           int64    `json:"qualifying"`
	Total                int64    `json:"total"`
	PctDaily             *float64 `json:"pct_daily"`
	QualifyingCumulative int64    `json:"qualifying_cumulative"`
	TotalCumulative      int64    `json:"total_cumulative"`
	PctCumulative        *float64 `json:"pct_cumulative"`
}

// WeeklyRecord sums a seller's daily figures over a Monday..Sunday week.
type WeeklyRecord struct {
	WeekStart     Date     `json:"week_start"`
	WeekEnd       Date     `json:"week_end"`
	SellerName    string   `json:"seller"`
	SumTotal      int64    `json:"sum_total"`
	SumQualifying int64    `json:"sum_qualifying"`
	PctWeek       *float64 `json:"pct_week"`
}

// StoreWeeklyTotal sums every seller's WeeklyRecord for one week.
type StoreWeeklyTotal struct {
	WeekStart     Date     `json:"week_start"`
	WeekEnd       Date     `json:"week_end"`
	SumTotal      int64    `json:"sum_total"`
	SumQualifying int64    `json:"sum_qualifying"`
	PctWeek       *float64 `json:"pct_week"`
}

// RankingEntry is a seller's most recent DailyRecord in the range, placed on
// the leaderboard.
type RankingEntry struct {
	Position int `json:"position"`
	DailyRecord
}

type ItemSellerSales struct {
	Item       string `json:"item"`
	SellerName string `json:"seller"`
	Sales      int64  `json:"sales"`
}

type ItemTotal struct {
	Item  string `json:"item"`
	Sales int64  `json:"sales"`
}

// TrendAxis is the y axis of a percentage trend chart.
type TrendAxis struct {
	Min    int    `json:"min"`
	Max    int    `json:"max"`
	Ticks  []int  `json:"ticks"`
	Domain [2]int `json:"domain"`
}

// Filter narrows every report query to one store and one inclusive date range.
type Filter struct {
	StoreID         int64
	Start           Date
	End             Date
	ExcludedSellers []string
	BuffetItemName  string
}
