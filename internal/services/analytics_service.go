// Package services contains the business orchestration between the HTTP
// boundary and the data processing pipelines.
package services

import (
	"context"
	"io"
	"log/slog"
	"time"

	"adpulse/internal/dataprocessing"
	"adpulse/internal/exporter"
	"adpulse/internal/infrastructure"
	"adpulse/pkg/contracts/domain"
)

// AnalyticsService orchestrates upload parsing and the analytics pipelines.
// It holds no per-request state; every call works on the upload it is given.
type AnalyticsService struct {
	summary *dataprocessing.SummaryPipeline
	daily   *dataprocessing.DailyPipeline
	csv     *exporter.CSVWriter
	metrics *infrastructure.BusinessMetrics
	logger  *slog.Logger
}

// NewAnalyticsService creates the analytics service. metrics may be nil when
// observability is disabled.
func NewAnalyticsService(logger *slog.Logger, metrics *infrastructure.BusinessMetrics) *AnalyticsService {
	if logger == nil {
		logger = slog.Default()
	}
	return &AnalyticsService{
		summary: dataprocessing.NewSummaryPipeline(logger),
		daily:   dataprocessing.NewDailyPipeline(logger),
		csv:     exporter.NewCSVWriter(logger),
		metrics: metrics,
		logger:  logger.With(slog.String("component", "analytics_service")),
	}
}

// ProcessSummary parses the upload and returns the ranked campaign summary
// with portfolio metrics and benchmarks.
func (s *AnalyticsService) ProcessSummary(ctx context.Context, filename string, r io.Reader, sizeBytes int64) (*domain.SummaryResult, error) {
	start := time.Now()

	table, err := dataprocessing.ParseUpload(filename, r)
	if err != nil {
		infrastructure.RecordUploadMetrics(ctx, s.metrics, "summary", sizeBytes, 0, time.Since(start), err)
		return nil, err
	}

	campaigns := s.summary.Run(ctx, table)

	result := &domain.SummaryResult{
		Campaigns:  campaigns,
		Metrics:    dataprocessing.ComputePortfolioMetrics(campaigns),
		Benchmarks: dataprocessing.ComputeBenchmarks(campaigns),
	}

	s.logger.InfoContext(ctx, "summary processed",
		slog.String("filename", filename),
		slog.Int("input_rows", len(table.Rows)),
		slog.Int("campaigns", len(campaigns)),
		slog.Duration("duration", time.Since(start)))
	infrastructure.RecordUploadMetrics(ctx, s.metrics, "summary", sizeBytes, len(table.Rows), time.Since(start), nil)

	return result, nil
}

// ProcessDaily parses the upload and returns the daily trend and cohort
// analysis.
func (s *AnalyticsService) ProcessDaily(ctx context.Context, filename string, r io.Reader, sizeBytes int64) (*domain.DailyResult, error) {
	start := time.Now()

	table, err := dataprocessing.ParseUpload(filename, r)
	if err != nil {
		infrastructure.RecordUploadMetrics(ctx, s.metrics, "daily", sizeBytes, 0, time.Since(start), err)
		return nil, err
	}

	result, err := s.daily.Run(ctx, table)
	if err != nil {
		infrastructure.RecordUploadMetrics(ctx, s.metrics, "daily", sizeBytes, len(table.Rows), time.Since(start), err)
		return nil, err
	}

	s.logger.InfoContext(ctx, "daily analytics processed",
		slog.String("filename", filename),
		slog.Int("input_rows", len(table.Rows)),
		slog.Duration("duration", time.Since(start)))
	infrastructure.RecordUploadMetrics(ctx, s.metrics, "daily", sizeBytes, len(table.Rows), time.Since(start), nil)

	return result, nil
}

// ExportSummaryCSV parses the upload, runs the summary pipeline and streams
// the ranked result as CSV to w.
func (s *AnalyticsService) ExportSummaryCSV(ctx context.Context, filename string, r io.Reader, sizeBytes int64, w io.Writer) error {
	start := time.Now()

	table, err := dataprocessing.ParseUpload(filename, r)
	if err != nil {
		infrastructure.RecordUploadMetrics(ctx, s.metrics, "export", sizeBytes, 0, time.Since(start), err)
		return err
	}

	campaigns := s.summary.Run(ctx, table)

	if err := s.csv.WriteSummary(w, campaigns); err != nil {
		infrastructure.RecordUploadMetrics(ctx, s.metrics, "export", sizeBytes, len(table.Rows), time.Since(start), err)
		return err
	}

	s.logger.InfoContext(ctx, "summary exported",
		slog.String("filename", filename),
		slog.Int("campaigns", len(campaigns)),
		slog.Duration("duration", time.Since(start)))
	infrastructure.RecordUploadMetrics(ctx, s.metrics, "export", sizeBytes, len(table.Rows), time.Since(start), nil)

	return nil
}
