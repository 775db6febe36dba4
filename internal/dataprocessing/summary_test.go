package dataprocessing

import (
	"context"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"adpulse/pkg/contracts/domain"
)

func summaryTable(rows [][]string) *Table {
	headers := []string{
		ColumnCampaign,
		ColumnMediaSource,
		ColumnCost,
		ColumnRevenue,
		ColumnProfit,
		ColumnInstalls,
		ColumnCards,
		ColumnSubs,
	}
	return NewTable(headers, rows)
}

func TestSummaryPipeline_Run(t *testing.T) {
	pipeline := NewSummaryPipeline(slog.Default())

	table := summaryTable([][]string{
		{"p2p_winner", "Facebook Ads", "100", "300", "200", "100", "10", "5"},
		{"payments_laggard", "googleadwords_int", "200", "200", "0", "50", "0", "0"},
		{"zero_cost", "bigo_int", "0", "500", "500", "10", "1", "1"},
		{"negative_cost", "tiktok", "-5", "100", "100", "10", "1", "1"},
	})

	campaigns := pipeline.Run(context.Background(), table)
	require.Len(t, campaigns, 2, "zero and negative cost rows must be excluded")

	winner, laggard := campaigns[0], campaigns[1]

	assert.Equal(t, "p2p_winner", winner.CampaignName)
	assert.Equal(t, 1, winner.Rank)
	assert.Equal(t, domain.CategoryP2P, winner.Category)
	assert.Equal(t, domain.SourceFacebook, winner.NormalizedSource)
	assert.InDelta(t, 300.0, winner.ROAS, 1e-9)
	assert.InDelta(t, 1.0, winner.CPI, 1e-9)
	assert.InDelta(t, 10.0, winner.CPACards, 1e-9)
	assert.InDelta(t, 20.0, winner.CPASubs, 1e-9)
	// Best on every normalized metric: full weighted score.
	assert.InDelta(t, 100.0, winner.PIScore, 1e-9)

	assert.Equal(t, "payments_laggard", laggard.CampaignName)
	assert.Equal(t, 2, laggard.Rank)
	assert.Equal(t, domain.CategoryPayments, laggard.Category)
	assert.InDelta(t, 100.0, laggard.ROAS, 1e-9)
	assert.InDelta(t, 0.0, laggard.PIScore, 1e-9)
	// Zero denominators never produce infinities.
	assert.Equal(t, 0.0, laggard.CPACards)
	assert.Equal(t, 0.0, laggard.CPASubs)
}

func TestSummaryPipeline_Run_Defaults(t *testing.T) {
	pipeline := NewSummaryPipeline(slog.Default())

	table := summaryTable([][]string{
		{"", "", "100", "50", "0", "0", "0", "0"},
	})

	campaigns := pipeline.Run(context.Background(), table)
	require.Len(t, campaigns, 1)

	assert.Equal(t, "Unknown Campaign", campaigns[0].CampaignName)
	assert.Equal(t, "unknown", campaigns[0].MediaSource)
	assert.Equal(t, domain.SourceOther, campaigns[0].NormalizedSource)
	assert.Equal(t, domain.CategoryOther, campaigns[0].Category)
	assert.Equal(t, 0.0, campaigns[0].CPI)
	// A single survivor is its own min and max on every metric.
	assert.Equal(t, 0.0, campaigns[0].PIScore)
	assert.Equal(t, 1, campaigns[0].Rank)
}

func TestSummaryPipeline_Run_Deterministic(t *testing.T) {
	pipeline := NewSummaryPipeline(slog.Default())

	rows := [][]string{
		{"p2p_winner", "Facebook Ads", "100", "300", "200", "100", "10", "5"},
		{"payments_laggard", "googleadwords_int", "200", "200", "0", "50", "0", "0"},
	}

	first := pipeline.Run(context.Background(), summaryTable(rows))
	second := pipeline.Run(context.Background(), summaryTable(rows))
	assert.Equal(t, first, second)
}

func TestSummaryPipeline_Run_EmptyAndAllFiltered(t *testing.T) {
	pipeline := NewSummaryPipeline(slog.Default())

	campaigns := pipeline.Run(context.Background(), summaryTable(nil))
	assert.Empty(t, campaigns)

	campaigns = pipeline.Run(context.Background(), summaryTable([][]string{
		{"a", "src", "0", "10", "1", "1", "0", "0"},
		{"b", "src", "", "10", "1", "1", "0", "0"},
	}))
	assert.Empty(t, campaigns)
}

func TestSummaryPipeline_Run_IdenticalCampaigns(t *testing.T) {
	pipeline := NewSummaryPipeline(slog.Default())

	// When every campaign has identical metrics, no metric discriminates:
	// all scores are zero and ties keep input order.
	table := summaryTable([][]string{
		{"first", "src", "100", "150", "50", "20", "2", "1"},
		{"second", "src", "100", "150", "50", "20", "2", "1"},
	})

	campaigns := pipeline.Run(context.Background(), table)
	require.Len(t, campaigns, 2)

	assert.Equal(t, "first", campaigns[0].CampaignName)
	assert.Equal(t, "second", campaigns[1].CampaignName)
	assert.Equal(t, 0.0, campaigns[0].PIScore)
	assert.Equal(t, 0.0, campaigns[1].PIScore)
	assert.Equal(t, 1, campaigns[0].Rank)
	assert.Equal(t, 2, campaigns[1].Rank)
}

func TestSummaryPipeline_Run_ScoreRounding(t *testing.T) {
	pipeline := NewSummaryPipeline(slog.Default())

	// Three campaigns so the middle one lands on a fractional normalized
	// position. Scores carry exactly one decimal place.
	table := summaryTable([][]string{
		{"top", "src", "100", "300", "300", "90", "9", "3"},
		{"mid", "src", "100", "200", "100", "30", "3", "1"},
		{"low", "src", "100", "100", "0", "0", "0", "0"},
	})

	campaigns := pipeline.Run(context.Background(), table)
	require.Len(t, campaigns, 3)

	for _, c := range campaigns {
		scaled := c.PIScore * 10
		assert.InDelta(t, scaled, float64(int64(scaled+0.5)), 1e-6,
			"PIScore %v of %s must have at most one decimal", c.PIScore, c.CampaignName)
	}

	assert.Equal(t, []int{1, 2, 3}, []int{campaigns[0].Rank, campaigns[1].Rank, campaigns[2].Rank})
	assert.True(t, campaigns[0].PIScore >= campaigns[1].PIScore)
	assert.True(t, campaigns[1].PIScore >= campaigns[2].PIScore)
}
