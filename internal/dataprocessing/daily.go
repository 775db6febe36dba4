package dataprocessing

import (
	"context"
	"fmt"
	"log/slog"
	"sort"
	"strings"
	"time"

	"golang.org/x/sync/errgroup"

	"adpulse/internal/errors"
	"adpulse/pkg/contracts/domain"
)

// Business-revenue take rates: the operator's share of attributed transfer
// and purchase revenue.
const (
	takeRateTransfer = 0.007
	takeRatePurchase = 0.00635
)

// cohortDays is the attribution window tracked per acquisition week:
// day offsets 0 through 30 since acquisition.
const cohortDays = 31

// ErrMissingDateColumn is returned when an upload lacks the Date column the
// daily pipeline is structured around. This is the one schema requirement
// that fails fast instead of degrading.
var ErrMissingDateColumn = errors.NewAppValidationError("upload must contain a 'Date' column")

// DailyPipeline turns a parsed table into the daily trend and the
// acquisition-week cohort matrix.
type DailyPipeline struct {
	logger *slog.Logger
}

// NewDailyPipeline creates a daily pipeline.
func NewDailyPipeline(logger *slog.Logger) *DailyPipeline {
	if logger == nil {
		logger = slog.Default()
	}
	return &DailyPipeline{logger: logger.With(slog.String("component", "daily_pipeline"))}
}

// weekBucket accumulates one ISO week's spend and attributed business
// revenue. Buckets are mutated additively during the fold and finalized to
// ratios only at output time.
type weekBucket struct {
	label        string
	cost         float64
	revenueByDay [cohortDays]float64
}

// dayTotals accumulates one calendar date's per-day sums.
type dayTotals struct {
	cost, revenue, installs, cards, subs float64
}

// Run computes the daily result. Both halves read the immutable table, so
// the trend fold and the cohort fold run concurrently.
func (p *DailyPipeline) Run(ctx context.Context, table *Table) (*domain.DailyResult, error) {
	if !table.HasColumn(ColumnDate) {
		return nil, ErrMissingDateColumn
	}

	var (
		chartData []domain.DailyPoint
		dateRange string
		weeks     map[string]*weekBucket
		g         errgroup.Group
	)

	g.Go(func() error {
		chartData, dateRange = p.buildTrend(table)
		return nil
	})
	g.Go(func() error {
		weeks = p.foldCohorts(table)
		return nil
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	cohortData, weekLabels := formatCohorts(weeks)

	rawData := make([]map[string]string, 0, len(table.Rows))
	for _, row := range table.Rows {
		rawData = append(rawData, table.RowMap(row))
	}

	p.logger.InfoContext(ctx, "daily analytics computed",
		slog.Int("input_rows", len(table.Rows)),
		slog.Int("trend_days", len(chartData)),
		slog.Int("cohort_weeks", len(weekLabels)),
		slog.String("date_range", dateRange))

	return &domain.DailyResult{
		ChartData:  chartData,
		CohortData: cohortData,
		WeekLabels: weekLabels,
		DateRange:  dateRange,
		RawData:    rawData,
	}, nil
}

// buildTrend groups rows by calendar date, sorts ascending and walks the
// sequence computing the cumulative prefix sums. Rows whose date cell does
// not parse are skipped: they cannot be placed on the time axis.
func (p *DailyPipeline) buildTrend(table *Table) ([]domain.DailyPoint, string) {
	totals := make(map[string]*dayTotals)
	var minDate, maxDate time.Time

	for _, row := range table.Rows {
		date, ok := ParseDate(table.Cell(row, ColumnDate))
		if !ok {
			continue
		}
		if minDate.IsZero() || date.Before(minDate) {
			minDate = date
		}
		if maxDate.IsZero() || date.After(maxDate) {
			maxDate = date
		}

		key := date.Format("2006-01-02")
		day, ok := totals[key]
		if !ok {
			day = &dayTotals{}
			totals[key] = day
		}
		day.cost += ParseNumber(table.Cell(row, ColumnCost))
		day.revenue += ParseNumber(table.Cell(row, ColumnRevenue))
		day.installs += ParseNumber(table.Cell(row, ColumnInstalls))
		day.cards += ParseNumber(table.Cell(row, ColumnCards))
		day.subs += ParseNumber(table.Cell(row, ColumnSubs))
	}

	dates := make([]string, 0, len(totals))
	for date := range totals {
		dates = append(dates, date)
	}
	sort.Strings(dates)

	chartData := make([]domain.DailyPoint, 0, len(dates))
	var cumulativeCost, cumulativeRevenue float64
	for _, date := range dates {
		day := totals[date]
		cumulativeCost += day.cost
		cumulativeRevenue += day.revenue
		chartData = append(chartData, domain.DailyPoint{
			Date:              date,
			DailyCost:         day.cost,
			DailyRevenue:      day.revenue,
			DailyInstalls:     day.installs,
			DailyCards:        day.cards,
			DailySubs:         day.subs,
			CumulativeCost:    cumulativeCost,
			CumulativeRevenue: cumulativeRevenue,
			NetProfit:         cumulativeRevenue - cumulativeCost,
		})
	}

	dateRange := "Unknown Period"
	if !minDate.IsZero() {
		dateRange = fmt.Sprintf("%s to %s", minDate.Format("2006-01-02"), maxDate.Format("2006-01-02"))
	}

	return chartData, dateRange
}

// revenueColumns indexes the attributed-revenue columns once per request:
// for each day offset, the positions of the transfer and purchase columns,
// -1 when absent. At most one column of each kind is expected per offset.
type revenueColumns struct {
	transfer [cohortDays]int
	purchase [cohortDays]int
}

func indexRevenueColumns(headers []string) *revenueColumns {
	idx := &revenueColumns{}
	for day := 0; day < cohortDays; day++ {
		idx.transfer[day] = -1
		idx.purchase[day] = -1
	}
	for day := 0; day < cohortDays; day++ {
		needle := fmt.Sprintf("Revenue %d days", day)
		for col, h := range headers {
			if !strings.Contains(h, needle) {
				continue
			}
			switch {
			case strings.Contains(h, eventMarkerTransfer):
				if idx.transfer[day] == -1 {
					idx.transfer[day] = col
				}
			case strings.Contains(h, eventMarkerPurchase):
				if idx.purchase[day] == -1 {
					idx.purchase[day] = col
				}
			}
		}
	}
	return idx
}

func cellAt(row []string, col int) string {
	if col < 0 || col >= len(row) {
		return ""
	}
	return row[col]
}

// foldCohorts accumulates every row into its acquisition week's bucket:
// spend into the bucket total, take-rate-adjusted business revenue into the
// day-offset slots. Unparseable dates land in the synthetic Unknown bucket.
func (p *DailyPipeline) foldCohorts(table *Table) map[string]*weekBucket {
	columns := indexRevenueColumns(table.Headers)
	weeks := make(map[string]*weekBucket)

	for _, row := range table.Rows {
		week := ResolveWeek(table.Cell(row, ColumnDate))
		bucket, ok := weeks[week.Key()]
		if !ok {
			bucket = &weekBucket{label: week.Label}
			weeks[week.Key()] = bucket
		}

		bucket.cost += ParseNumber(table.Cell(row, ColumnCost))

		for day := 0; day < cohortDays; day++ {
			transfer := ParseNumber(cellAt(row, columns.transfer[day]))
			purchase := ParseNumber(cellAt(row, columns.purchase[day]))
			bucket.revenueByDay[day] += transfer*takeRateTransfer + purchase*takeRatePurchase
		}
	}

	return weeks
}

// formatCohorts finalizes the buckets into the day-by-week efficiency
// matrix. Week keys sort lexicographically; a week with no accumulated spend
// renders as null at every day offset.
func formatCohorts(weeks map[string]*weekBucket) ([]domain.CohortPoint, []string) {
	keys := make([]string, 0, len(weeks))
	for key := range weeks {
		keys = append(keys, key)
	}
	sort.Strings(keys)

	labels := make([]string, 0, len(keys))
	for _, key := range keys {
		labels = append(labels, weeks[key].label)
	}

	points := make([]domain.CohortPoint, 0, cohortDays)
	for day := 0; day < cohortDays; day++ {
		point := domain.CohortPoint{"day": day}
		for _, key := range keys {
			bucket := weeks[key]
			if bucket.cost > 0 {
				point[bucket.label] = bucket.revenueByDay[day] / bucket.cost * 100
			} else {
				point[bucket.label] = nil
			}
		}
		points = append(points, point)
	}

	return points, labels
}
