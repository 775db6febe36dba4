package dataprocessing

import (
	"fmt"
	"math"
	"sort"

	"adpulse/pkg/contracts/domain"
)

// outlierThreshold is the relative ROAS deviation beyond which a campaign is
// flagged as an outlier.
const outlierThreshold = 0.2

// maxOutliers caps the outlier list to the most extreme entries.
const maxOutliers = 5

// maxPerformers is the size of the top/bottom performer lists.
const maxPerformers = 3

// ComputePortfolioMetrics aggregates the ranked campaign set into totals,
// spend-weighted averages and per-category splits. Averages are weighted:
// avgRoas is total revenue over total spend, not a mean of per-campaign
// ratios.
func ComputePortfolioMetrics(campaigns []domain.CampaignSummary) *domain.PortfolioMetrics {
	m := &domain.PortfolioMetrics{}
	for _, c := range campaigns {
		m.TotalSpend += c.Cost
		m.TotalRevenue += c.Revenue
		m.TotalProfit += c.Profit
		m.TotalInstalls += c.Installs
		m.TotalCards += c.Cards
		m.TotalSubs += c.Subs
	}

	if m.TotalSpend > 0 {
		m.AvgROAS = m.TotalRevenue / m.TotalSpend * 100
	}
	m.AvgCPI = safeDiv(m.TotalSpend, m.TotalInstalls)
	m.AvgCPACards = safeDiv(m.TotalSpend, m.TotalCards)
	m.AvgCPASubs = safeDiv(m.TotalSpend, m.TotalSubs)

	m.SpendSplit = categorySplit(campaigns, func(c *domain.CampaignSummary) float64 { return c.Cost })
	m.RevenueSplit = categorySplit(campaigns, func(c *domain.CampaignSummary) float64 { return c.Revenue })
	m.ProfitSplit = categorySplit(campaigns, func(c *domain.CampaignSummary) float64 { return c.Profit })
	m.InstallsSplit = categorySplit(campaigns, func(c *domain.CampaignSummary) float64 { return c.Installs })
	m.CardsSplit = categorySplit(campaigns, func(c *domain.CampaignSummary) float64 { return c.Cards })
	m.SubsSplit = categorySplit(campaigns, func(c *domain.CampaignSummary) float64 { return c.Subs })

	return m
}

// categorySplit sums one metric per product category and expresses each
// category's share as a percentage of the categorized total. Categories with
// no contribution are dropped from the split.
func categorySplit(campaigns []domain.CampaignSummary, metric func(*domain.CampaignSummary) float64) []domain.ProductSplit {
	splits := make([]domain.ProductSplit, 0, len(domain.Categories))
	var total float64

	for _, product := range domain.Categories {
		var value float64
		for i := range campaigns {
			if campaigns[i].Category == product {
				value += metric(&campaigns[i])
			}
		}
		splits = append(splits, domain.ProductSplit{Product: product, Value: value})
		total += value
	}

	out := splits[:0]
	for _, s := range splits {
		if s.Value <= 0 {
			continue
		}
		if total > 0 {
			s.Percentage = s.Value / total * 100
		}
		out = append(out, s)
	}
	return out
}

// ComputeBenchmarks derives the portfolio reference values campaigns are
// compared against: spend-weighted global ROAS and CPI, the top and bottom
// performers by profit, and ROAS outliers.
func ComputeBenchmarks(campaigns []domain.CampaignSummary) *domain.Benchmarks {
	var totalCost, totalRevenue, totalInstalls float64
	for _, c := range campaigns {
		totalCost += c.Cost
		totalRevenue += c.Revenue
		totalInstalls += c.Installs
	}

	b := &domain.Benchmarks{
		TopPerformers:   []domain.BenchmarkCampaign{},
		Underperformers: []domain.BenchmarkCampaign{},
		Outliers:        []domain.ROASOutlier{},
	}
	if totalCost > 0 {
		b.GlobalAverageROAS = totalRevenue / totalCost * 100
	}
	b.GlobalAverageCPI = safeDiv(totalCost, totalInstalls)

	if len(campaigns) == 0 {
		return b
	}

	byProfit := make([]domain.CampaignSummary, len(campaigns))
	copy(byProfit, campaigns)
	sort.SliceStable(byProfit, func(i, j int) bool { return byProfit[i].Profit > byProfit[j].Profit })

	top := maxPerformers
	if top > len(byProfit) {
		top = len(byProfit)
	}
	for _, c := range byProfit[:top] {
		b.TopPerformers = append(b.TopPerformers, benchmarkEntry(c))
	}
	for i := len(byProfit) - 1; i >= len(byProfit)-top; i-- {
		b.Underperformers = append(b.Underperformers, benchmarkEntry(byProfit[i]))
	}

	b.Outliers = detectOutliers(campaigns, b.GlobalAverageROAS)
	return b
}

func benchmarkEntry(c domain.CampaignSummary) domain.BenchmarkCampaign {
	return domain.BenchmarkCampaign{
		Name:   c.CampaignName,
		ROAS:   c.ROAS,
		Spend:  c.Cost,
		Profit: c.Profit,
	}
}

// detectOutliers flags campaigns whose ROAS deviates more than the threshold
// from the global weighted average, most extreme first.
func detectOutliers(campaigns []domain.CampaignSummary, globalROAS float64) []domain.ROASOutlier {
	outliers := []domain.ROASOutlier{}
	if globalROAS == 0 {
		return outliers
	}

	for _, c := range campaigns {
		deviation := (c.ROAS - globalROAS) / globalROAS
		if math.Abs(deviation) <= outlierThreshold {
			continue
		}
		direction := "above"
		if deviation < 0 {
			direction = "below"
		}
		outliers = append(outliers, domain.ROASOutlier{
			Name:      c.CampaignName,
			ROAS:      c.ROAS,
			Deviation: deviation * 100,
			Reason:    fmt.Sprintf("%.0f%% %s average", math.Abs(deviation*100), direction),
		})
	}

	sort.SliceStable(outliers, func(i, j int) bool {
		return math.Abs(outliers[i].Deviation) > math.Abs(outliers[j].Deviation)
	})
	if len(outliers) > maxOutliers {
		outliers = outliers[:maxOutliers]
	}
	return outliers
}
