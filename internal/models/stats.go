package models

// DailyStat is one day of the trailing-7-day aggregation. Derived per
// request, never stored.
type DailyStat struct {
	Date    string  `json:"date"`
	Day     string  `json:"day"`
	Income  float64 `json:"income"`
	Expense float64 `json:"expense"`
}

// ChartPoint is one bar of the weekly chart. Days are emitted as paired
// points: an income point carrying the day label, then an expense point.
type ChartPoint struct {
	Value float64 `json:"value"`
	Label string  `json:"label,omitempty"`
	Type  string  `json:"type"`
}

// WeeklyStats bundles the chart series with the raw transactions that
// produced it.
type WeeklyStats struct {
	Stats        []ChartPoint   `json:"stats"`
	Days         []*DailyStat   `json:"days"`
	Transactions []*Transaction `json:"transactions"`
}
