package dataprocessing

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"adpulse/pkg/contracts/domain"
)

func benchmarkFixture() []domain.CampaignSummary {
	return []domain.CampaignSummary{
		{
			CampaignName: "p2p_winner",
			Category:     domain.CategoryP2P,
			Cost:         100, Revenue: 300, Profit: 200,
			Installs: 100, Cards: 10, Subs: 5,
			ROAS: 300,
		},
		{
			CampaignName: "payments_laggard",
			Category:     domain.CategoryPayments,
			Cost:         200, Revenue: 200, Profit: 0,
			Installs: 50,
			ROAS:     100,
		},
	}
}

func TestComputePortfolioMetrics(t *testing.T) {
	m := ComputePortfolioMetrics(benchmarkFixture())

	assert.InDelta(t, 300.0, m.TotalSpend, 1e-9)
	assert.InDelta(t, 500.0, m.TotalRevenue, 1e-9)
	assert.InDelta(t, 200.0, m.TotalProfit, 1e-9)
	assert.InDelta(t, 150.0, m.TotalInstalls, 1e-9)

	// Spend-weighted, not a mean of per-campaign ratios.
	assert.InDelta(t, 500.0/300.0*100, m.AvgROAS, 1e-9)
	assert.InDelta(t, 2.0, m.AvgCPI, 1e-9)
	assert.InDelta(t, 30.0, m.AvgCPACards, 1e-9)
	assert.InDelta(t, 60.0, m.AvgCPASubs, 1e-9)

	require.Len(t, m.SpendSplit, 2)
	for _, split := range m.SpendSplit {
		switch split.Product {
		case domain.CategoryP2P:
			assert.InDelta(t, 100.0, split.Value, 1e-9)
			assert.InDelta(t, 100.0/300.0*100, split.Percentage, 1e-9)
		case domain.CategoryPayments:
			assert.InDelta(t, 200.0, split.Value, 1e-9)
			assert.InDelta(t, 200.0/300.0*100, split.Percentage, 1e-9)
		default:
			t.Fatalf("unexpected category in spend split: %s", split.Product)
		}
	}

	// Only the winner has cards: zero-value categories drop out of the split.
	require.Len(t, m.CardsSplit, 1)
	assert.Equal(t, domain.CategoryP2P, m.CardsSplit[0].Product)
	assert.InDelta(t, 100.0, m.CardsSplit[0].Percentage, 1e-9)
}

func TestComputePortfolioMetrics_Empty(t *testing.T) {
	m := ComputePortfolioMetrics(nil)

	assert.Zero(t, m.TotalSpend)
	assert.Zero(t, m.AvgROAS)
	assert.Zero(t, m.AvgCPI)
	assert.Empty(t, m.SpendSplit)
}

func TestComputeBenchmarks(t *testing.T) {
	b := ComputeBenchmarks(benchmarkFixture())

	globalROAS := 500.0 / 300.0 * 100
	assert.InDelta(t, globalROAS, b.GlobalAverageROAS, 1e-9)
	assert.InDelta(t, 2.0, b.GlobalAverageCPI, 1e-9)

	require.Len(t, b.TopPerformers, 2)
	assert.Equal(t, "p2p_winner", b.TopPerformers[0].Name)
	assert.InDelta(t, 200.0, b.TopPerformers[0].Profit, 1e-9)

	require.Len(t, b.Underperformers, 2)
	assert.Equal(t, "payments_laggard", b.Underperformers[0].Name)

	// 300 vs ~166.7 is +80%, 100 vs ~166.7 is -40%: both beyond the 20%
	// threshold, most extreme first.
	require.Len(t, b.Outliers, 2)
	assert.Equal(t, "p2p_winner", b.Outliers[0].Name)
	assert.InDelta(t, 80.0, b.Outliers[0].Deviation, 1e-6)
	assert.Equal(t, "80% above average", b.Outliers[0].Reason)
	assert.Equal(t, "payments_laggard", b.Outliers[1].Name)
	assert.InDelta(t, -40.0, b.Outliers[1].Deviation, 1e-6)
	assert.Equal(t, "40% below average", b.Outliers[1].Reason)
}

func TestComputeBenchmarks_Empty(t *testing.T) {
	b := ComputeBenchmarks(nil)

	assert.Zero(t, b.GlobalAverageROAS)
	assert.Empty(t, b.TopPerformers)
	assert.Empty(t, b.Underperformers)
	assert.Empty(t, b.Outliers)
}

func TestDetectOutliers_CapAndThreshold(t *testing.T) {
	campaigns := make([]domain.CampaignSummary, 0, 8)
	// Seven outliers with growing deviation plus one in-range campaign.
	rates := []float64{200, 210, 220, 230, 240, 250, 260}
	for i, r := range rates {
		campaigns = append(campaigns, domain.CampaignSummary{
			CampaignName: string(rune('a' + i)),
			ROAS:         r,
		})
	}
	campaigns = append(campaigns, domain.CampaignSummary{CampaignName: "steady", ROAS: 101})

	outliers := detectOutliers(campaigns, 100)
	require.Len(t, outliers, 5, "outlier list is capped")

	assert.Equal(t, "g", outliers[0].Name, "most extreme deviation first")
	for _, o := range outliers {
		assert.NotEqual(t, "steady", o.Name)
	}
}
