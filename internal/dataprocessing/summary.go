package dataprocessing

import (
	"context"
	"log/slog"
	"math"
	"sort"

	"adpulse/pkg/contracts/domain"
)

// Performance Index weights. Profit, ROAS and install volume carry the
// ranking; card adds and subscription activations are secondary conversion
// signals. Fixed domain constants, not configurable per request.
const (
	weightProfit   = 0.30
	weightROAS     = 0.30
	weightInstalls = 0.30
	weightCards    = 0.05
	weightSubs     = 0.05
)

// SummaryPipeline turns a parsed table into the ranked campaign summary.
// It is an explicit two-phase pipeline: phase one derives per-row metrics,
// phase two consumes the whole collection to compute the cross-row
// normalization, scores and ranks.
type SummaryPipeline struct {
	logger *slog.Logger
}

// NewSummaryPipeline creates a summary pipeline.
func NewSummaryPipeline(logger *slog.Logger) *SummaryPipeline {
	if logger == nil {
		logger = slog.Default()
	}
	return &SummaryPipeline{logger: logger.With(slog.String("component", "summary_pipeline"))}
}

// Run computes the ranked campaign summary. Rows with parsed cost <= 0 are
// excluded entirely; an upload where nothing survives the filter yields an
// empty slice, not an error.
func (p *SummaryPipeline) Run(ctx context.Context, table *Table) []domain.CampaignSummary {
	campaigns := p.buildRecords(table)
	if len(campaigns) == 0 {
		p.logger.InfoContext(ctx, "no campaigns with positive spend in upload",
			slog.Int("input_rows", len(table.Rows)))
		return []domain.CampaignSummary{}
	}

	p.scoreAndRank(campaigns)

	p.logger.InfoContext(ctx, "campaign summary computed",
		slog.Int("input_rows", len(table.Rows)),
		slog.Int("ranked_campaigns", len(campaigns)))

	return campaigns
}

// buildRecords is phase one: per-row parsing and derived efficiency ratios.
// Division guards keep zero denominators from propagating infinities.
func (p *SummaryPipeline) buildRecords(table *Table) []domain.CampaignSummary {
	campaigns := make([]domain.CampaignSummary, 0, len(table.Rows))

	for _, row := range table.Rows {
		cost := ParseNumber(table.Cell(row, ColumnCost))
		if cost <= 0 {
			continue
		}

		name := table.Cell(row, ColumnCampaign)
		if name == "" {
			name = "Unknown Campaign"
		}
		source := table.Cell(row, ColumnMediaSource)
		if source == "" {
			source = "unknown"
		}

		revenue := ParseNumber(table.Cell(row, ColumnRevenue))
		installs := ParseNumber(table.Cell(row, ColumnInstalls))
		cards := ParseNumber(table.Cell(row, ColumnCards))
		subs := ParseNumber(table.Cell(row, ColumnSubs))

		campaigns = append(campaigns, domain.CampaignSummary{
			ID:               name,
			Category:         Categorize(name),
			CampaignName:     name,
			MediaSource:      source,
			NormalizedSource: NormalizeSource(source),
			Cost:             cost,
			Revenue:          revenue,
			Profit:           ParseNumber(table.Cell(row, ColumnProfit)),
			ROAS:             revenue / cost * 100,
			Installs:         installs,
			Cards:            cards,
			CPACards:         safeDiv(cost, cards),
			Subs:             subs,
			CPASubs:          safeDiv(cost, subs),
			CPI:              safeDiv(cost, installs),
		})
	}

	return campaigns
}

// scoreAndRank is phase two: min-max normalization across the filtered set,
// weighted scoring, stable descending sort and dense 1..N ranks. Ties keep
// input order.
func (p *SummaryPipeline) scoreAndRank(campaigns []domain.CampaignSummary) {
	normProfit := normalize(campaigns, func(c *domain.CampaignSummary) float64 { return c.Profit })
	normROAS := normalize(campaigns, func(c *domain.CampaignSummary) float64 { return c.ROAS })
	normInstalls := normalize(campaigns, func(c *domain.CampaignSummary) float64 { return c.Installs })
	normCards := normalize(campaigns, func(c *domain.CampaignSummary) float64 { return c.Cards })
	normSubs := normalize(campaigns, func(c *domain.CampaignSummary) float64 { return c.Subs })

	for i := range campaigns {
		raw := weightProfit*normProfit[i] +
			weightROAS*normROAS[i] +
			weightInstalls*normInstalls[i] +
			weightCards*normCards[i] +
			weightSubs*normSubs[i]
		campaigns[i].PIScore = math.Round(raw*100*10) / 10
	}

	sort.SliceStable(campaigns, func(i, j int) bool {
		return campaigns[i].PIScore > campaigns[j].PIScore
	})
	for i := range campaigns {
		campaigns[i].Rank = i + 1
	}
}

// normalize min-max scales one metric across the whole set. When max equals
// min the metric carries no discriminating signal and every value maps to 0.
func normalize(campaigns []domain.CampaignSummary, metric func(*domain.CampaignSummary) float64) []float64 {
	minVal, maxVal := metric(&campaigns[0]), metric(&campaigns[0])
	for i := range campaigns {
		v := metric(&campaigns[i])
		if v < minVal {
			minVal = v
		}
		if v > maxVal {
			maxVal = v
		}
	}

	out := make([]float64, len(campaigns))
	if maxVal == minVal {
		return out
	}
	for i := range campaigns {
		out[i] = (metric(&campaigns[i]) - minVal) / (maxVal - minVal)
	}
	return out
}

func safeDiv(num, den float64) float64 {
	if den <= 0 {
		return 0
	}
	return num / den
}
