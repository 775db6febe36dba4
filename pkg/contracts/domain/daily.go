package domain

// DailyPoint is one day of the spend/revenue trend. Cumulative fields are a
// prefix sum over the date-ascending sequence, so a point is only valid in the
// context of the full series.
type DailyPoint struct {
	Date              string  `json:"date"`
	DailyCost         float64 `json:"dailyCost"`
	DailyRevenue      float64 `json:"dailyRevenue"`
	DailyInstalls     float64 `json:"dailyInstalls"`
	DailyCards        float64 `json:"dailyCards"`
	DailySubs         float64 `json:"dailySubs"`
	CumulativeCost    float64 `json:"cumulativeCost"`
	CumulativeRevenue float64 `json:"cumulativeRevenue"`
	NetProfit         float64 `json:"netProfit"`
}

// CohortPoint is one row of the day-offset x acquisition-week efficiency
// matrix: the fixed "day" key plus one key per week label holding the
// revenue-to-cost ratio (percent) or null when the week accumulated no spend.
type CohortPoint map[string]any

// DailyResult is the response body of the daily endpoint.
type DailyResult struct {
	ChartData  []DailyPoint        `json:"chartData"`
	CohortData []CohortPoint       `json:"cohortData"`
	WeekLabels []string            `json:"weekLabels"`
	DateRange  string              `json:"dateRange"`
	RawData    []map[string]string `json:"rawData"`
}
