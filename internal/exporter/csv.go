// Package exporter renders analytics results into downloadable formats.
package exporter

import (
	"encoding/csv"
	"fmt"
	"io"
	"log/slog"
	"strconv"

	"adpulse/pkg/contracts/domain"
)

// utf8BOM helps Excel recognize the file as UTF-8.
var utf8BOM = []byte{0xEF, 0xBB, 0xBF}

// summaryHeaders is the column layout of the summary export.
var summaryHeaders = []string{
	"Rank",
	"Source",
	"Category",
	"Campaign",
	"Spend",
	"Revenue",
	"Profit",
	"ROAS",
	"Installs",
	"CPI",
	"Cards",
	"CPA (Cards)",
	"Subs",
	"CPA (Subs)",
	"PI Score",
}

// CSVWriter renders ranked campaign summaries as CSV.
type CSVWriter struct {
	logger *slog.Logger
}

// NewCSVWriter creates a CSV writer.
func NewCSVWriter(logger *slog.Logger) *CSVWriter {
	if logger == nil {
		logger = slog.Default()
	}
	return &CSVWriter{logger: logger.With(slog.String("component", "csv_exporter"))}
}

// WriteSummary streams the ranked campaign set to w, BOM first so Excel
// opens it as UTF-8.
func (e *CSVWriter) WriteSummary(w io.Writer, campaigns []domain.CampaignSummary) error {
	if _, err := w.Write(utf8BOM); err != nil {
		return fmt.Errorf("failed to write BOM: %w", err)
	}

	writer := csv.NewWriter(w)
	if err := writer.Write(summaryHeaders); err != nil {
		return fmt.Errorf("failed to write headers: %w", err)
	}

	for _, c := range campaigns {
		record := []string{
			strconv.Itoa(c.Rank),
			string(c.NormalizedSource),
			string(c.Category),
			c.CampaignName,
			formatMoney(c.Cost),
			formatMoney(c.Revenue),
			formatMoney(c.Profit),
			fmt.Sprintf("%.1f%%", c.ROAS),
			strconv.FormatFloat(c.Installs, 'f', -1, 64),
			formatMoney(c.CPI),
			strconv.FormatFloat(c.Cards, 'f', -1, 64),
			formatMoney(c.CPACards),
			strconv.FormatFloat(c.Subs, 'f', -1, 64),
			formatMoney(c.CPASubs),
			strconv.FormatFloat(c.PIScore, 'f', 1, 64),
		}
		if err := writer.Write(record); err != nil {
			return fmt.Errorf("failed to write record: %w", err)
		}
	}

	writer.Flush()
	if err := writer.Error(); err != nil {
		return fmt.Errorf("failed to flush csv: %w", err)
	}

	e.logger.Debug("summary export written", slog.Int("campaigns", len(campaigns)))
	return nil
}

// formatMoney renders a currency amount with two decimals.
func formatMoney(v float64) string {
	return strconv.FormatFloat(v, 'f', 2, 64)
}
