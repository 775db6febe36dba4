package dataprocessing

import (
	"context"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func dailyTable(rows [][]string) *Table {
	headers := []string{
		ColumnDate,
		ColumnCost,
		ColumnRevenue,
		ColumnInstalls,
		ColumnCards,
		ColumnSubs,
		"Revenue 0 days (af_transfer_completed)",
		"Revenue 1 days (af_purchase)",
	}
	return NewTable(headers, rows)
}

func TestDailyPipeline_Run_MissingDateColumn(t *testing.T) {
	pipeline := NewDailyPipeline(slog.Default())

	table := NewTable([]string{ColumnCost, ColumnRevenue}, [][]string{{"100", "50"}})
	_, err := pipeline.Run(context.Background(), table)
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrMissingDateColumn)
}

func TestDailyPipeline_Run_Trend(t *testing.T) {
	pipeline := NewDailyPipeline(slog.Default())

	table := dailyTable([][]string{
		{"2023-01-10", "100", "70", "20", "2", "1", "", ""},
		{"2023-01-09", "100", "50", "10", "1", "0", "", ""},
		{"2023-01-09", "50", "30", "5", "0", "0", "", ""},
		{"bad date", "10", "5", "1", "0", "0", "", ""},
	})

	result, err := pipeline.Run(context.Background(), table)
	require.NoError(t, err)

	// Unparseable dates are excluded from the trend but kept in raw data.
	require.Len(t, result.ChartData, 2)
	assert.Len(t, result.RawData, 4)
	assert.Equal(t, "2023-01-09 to 2023-01-10", result.DateRange)

	day1, day2 := result.ChartData[0], result.ChartData[1]

	assert.Equal(t, "2023-01-09", day1.Date)
	assert.InDelta(t, 150.0, day1.DailyCost, 1e-9)
	assert.InDelta(t, 80.0, day1.DailyRevenue, 1e-9)
	assert.InDelta(t, 15.0, day1.DailyInstalls, 1e-9)
	assert.InDelta(t, 150.0, day1.CumulativeCost, 1e-9)
	assert.InDelta(t, 80.0, day1.CumulativeRevenue, 1e-9)
	assert.InDelta(t, -70.0, day1.NetProfit, 1e-9)

	assert.Equal(t, "2023-01-10", day2.Date)
	assert.InDelta(t, 250.0, day2.CumulativeCost, 1e-9)
	assert.InDelta(t, 150.0, day2.CumulativeRevenue, 1e-9)
	assert.InDelta(t, -100.0, day2.NetProfit, 1e-9)
}

func TestDailyPipeline_Run_Cohorts(t *testing.T) {
	pipeline := NewDailyPipeline(slog.Default())

	table := dailyTable([][]string{
		// ISO week 2 of 2023: two rows accumulate into one bucket.
		{"2023-01-09", "100", "0", "0", "0", "0", "1000", "2000"},
		{"2023-01-10", "100", "0", "0", "0", "0", "0", "0"},
		// ISO week 3 with zero spend: ratios must render as null.
		{"2023-01-16", "0", "0", "0", "0", "0", "500", "0"},
		// Unparseable date lands in the Unknown bucket.
		{"garbage", "10", "0", "0", "0", "0", "0", "0"},
	})

	result, err := pipeline.Run(context.Background(), table)
	require.NoError(t, err)

	// Keys sort lexicographically: week0 (Unknown), week2, week3.
	require.Len(t, result.WeekLabels, 3)
	assert.Equal(t, "Unknown", result.WeekLabels[0])
	assert.Equal(t, "Week 2 (Jan 09 - Jan 15)", result.WeekLabels[1])
	assert.Equal(t, "Week 3 (Jan 16 - Jan 22)", result.WeekLabels[2])

	require.Len(t, result.CohortData, 31)

	day0 := result.CohortData[0]
	assert.Equal(t, 0, day0["day"])

	// Week 2: transfer revenue 1000 * 0.007 over 200 spend.
	assert.InDelta(t, 3.5, day0["Week 2 (Jan 09 - Jan 15)"].(float64), 1e-9)
	// Week 3 has no spend.
	assert.Nil(t, day0["Week 3 (Jan 16 - Jan 22)"])
	// Unknown bucket has spend but no attributed revenue.
	assert.InDelta(t, 0.0, day0["Unknown"].(float64), 1e-9)

	day1 := result.CohortData[1]
	assert.Equal(t, 1, day1["day"])
	// Week 2: purchase revenue 2000 * 0.00635 over 200 spend.
	assert.InDelta(t, 6.35, day1["Week 2 (Jan 09 - Jan 15)"].(float64), 1e-9)
}

func TestDailyPipeline_Run_NoParseableDates(t *testing.T) {
	pipeline := NewDailyPipeline(slog.Default())

	table := dailyTable([][]string{
		{"???", "10", "5", "0", "0", "0", "", ""},
	})

	result, err := pipeline.Run(context.Background(), table)
	require.NoError(t, err)

	assert.Empty(t, result.ChartData)
	assert.Equal(t, "Unknown Period", result.DateRange)
	require.Len(t, result.WeekLabels, 1)
	assert.Equal(t, "Unknown", result.WeekLabels[0])
}

func TestIndexRevenueColumns(t *testing.T) {
	headers := []string{
		ColumnDate,
		"Revenue 0 days (af_transfer_completed)",
		"Revenue 0 days (af_purchase)",
		"Revenue 30 days (af_transfer_completed)",
		"Revenue 3 days (af_purchase)",
		"unrelated column",
	}

	idx := indexRevenueColumns(headers)

	assert.Equal(t, 1, idx.transfer[0])
	assert.Equal(t, 2, idx.purchase[0])
	assert.Equal(t, 4, idx.purchase[3])
	// "Revenue 3 days" must not claim the 30-day column.
	assert.Equal(t, 3, idx.transfer[30])
	assert.Equal(t, -1, idx.transfer[3])
	assert.Equal(t, -1, idx.purchase[30])
	assert.Equal(t, -1, idx.transfer[15])
}
