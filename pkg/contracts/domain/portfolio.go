package domain

// ProductSplit is one category's share of a portfolio metric.
type ProductSplit struct {
	Product    Category `json:"product"`
	Value      float64  `json:"value"`
	Percentage float64  `json:"percentage"`
}

// PortfolioMetrics aggregates the ranked campaign set into portfolio-level
// totals, spend-weighted averages and per-category splits.
type PortfolioMetrics struct {
	TotalSpend    float64        `json:"totalSpend"`
	TotalRevenue  float64        `json:"totalRevenue"`
	TotalProfit   float64        `json:"totalProfit"`
	AvgROAS       float64        `json:"avgRoas"`
	TotalInstalls float64        `json:"totalInstalls"`
	AvgCPI        float64        `json:"avgCpi"`
	TotalCards    float64        `json:"totalCards"`
	AvgCPACards   float64        `json:"avgCpaCards"`
	TotalSubs     float64        `json:"totalSubs"`
	AvgCPASubs    float64        `json:"avgCpaSubs"`
	SpendSplit    []ProductSplit `json:"spendSplit"`
	RevenueSplit  []ProductSplit `json:"revenueSplit"`
	ProfitSplit   []ProductSplit `json:"profitSplit"`
	InstallsSplit []ProductSplit `json:"installsSplit"`
	CardsSplit    []ProductSplit `json:"cardsSplit"`
	SubsSplit     []ProductSplit `json:"subsSplit"`
}

// BenchmarkCampaign is a campaign cited in the benchmark section.
type BenchmarkCampaign struct {
	Name   string  `json:"name"`
	ROAS   float64 `json:"roas"`
	Spend  float64 `json:"spend"`
	Profit float64 `json:"profit"`
}

// ROASOutlier flags a campaign whose ROAS deviates strongly from the
// spend-weighted portfolio average.
type ROASOutlier struct {
	Name      string  `json:"name"`
	ROAS      float64 `json:"roas"`
	Deviation float64 `json:"deviation"`
	Reason    string  `json:"reason"`
}

// Benchmarks compares every campaign against portfolio-wide reference values.
type Benchmarks struct {
	GlobalAverageROAS float64             `json:"globalAverageROAS"`
	GlobalAverageCPI  float64             `json:"globalAverageCPI"`
	TopPerformers     []BenchmarkCampaign `json:"topPerformers"`
	Underperformers   []BenchmarkCampaign `json:"underperformers"`
	Outliers          []ROASOutlier       `json:"outliers"`
}
