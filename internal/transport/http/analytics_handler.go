// Package http contains the HTTP handlers and route wiring for the
// analytics API.
package http

import (
	"bytes"
	"context"
	"io"
	"log/slog"
	"mime/multipart"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/render"

	apperrors "adpulse/internal/errors"
	"adpulse/internal/validation"
	"adpulse/pkg/contracts/domain"
)

// uploadFieldName is the multipart form field carrying the spreadsheet.
const uploadFieldName = "file"

// AnalyticsService is the orchestration surface the handler depends on.
type AnalyticsService interface {
	ProcessSummary(ctx context.Context, filename string, r io.Reader, sizeBytes int64) (*domain.SummaryResult, error)
	ProcessDaily(ctx context.Context, filename string, r io.Reader, sizeBytes int64) (*domain.DailyResult, error)
	ExportSummaryCSV(ctx context.Context, filename string, r io.Reader, sizeBytes int64, w io.Writer) error
}

// AnalyticsHandler handles the spreadsheet upload endpoints with RFC 7807
// error responses.
type AnalyticsHandler struct {
	service      AnalyticsService
	validator    *validation.UploadValidator
	logger       *slog.Logger
	errorHandler *apperrors.ErrorHandler
}

// NewAnalyticsHandler creates a new analytics handler.
func NewAnalyticsHandler(service AnalyticsService, validator *validation.UploadValidator, logger *slog.Logger, errorHandler *apperrors.ErrorHandler) *AnalyticsHandler {
	return &AnalyticsHandler{
		service:      service,
		validator:    validator,
		logger:       logger.With(slog.String("component", "analytics_handler")),
		errorHandler: errorHandler,
	}
}

// Routes returns the analytics routes.
func (h *AnalyticsHandler) Routes() chi.Router {
	r := chi.NewRouter()

	r.Use(render.SetContentType(render.ContentTypeJSON))

	r.Post("/summary", h.ProcessSummary)
	r.Post("/summary/export", h.ExportSummary)
	r.Post("/daily", h.ProcessDaily)

	return r
}

// ProcessSummary handles POST /api/analytics/summary.
func (h *AnalyticsHandler) ProcessSummary(w http.ResponseWriter, r *http.Request) {
	file, header, err := h.openUpload(r)
	if err != nil {
		h.errorHandler.HandleError(w, r, err)
		return
	}
	defer file.Close()

	result, err := h.service.ProcessSummary(r.Context(), header.Filename, file, header.Size)
	if err != nil {
		h.errorHandler.HandleError(w, r, err)
		return
	}

	render.Status(r, http.StatusOK)
	render.JSON(w, r, result)
}

// ProcessDaily handles POST /api/analytics/daily.
func (h *AnalyticsHandler) ProcessDaily(w http.ResponseWriter, r *http.Request) {
	file, header, err := h.openUpload(r)
	if err != nil {
		h.errorHandler.HandleError(w, r, err)
		return
	}
	defer file.Close()

	result, err := h.service.ProcessDaily(r.Context(), header.Filename, file, header.Size)
	if err != nil {
		h.errorHandler.HandleError(w, r, err)
		return
	}

	render.Status(r, http.StatusOK)
	render.JSON(w, r, result)
}

// ExportSummary handles POST /api/analytics/summary/export. The response is
// a CSV attachment rather than JSON, so the body is only written after the
// pipeline has succeeded.
func (h *AnalyticsHandler) ExportSummary(w http.ResponseWriter, r *http.Request) {
	file, header, err := h.openUpload(r)
	if err != nil {
		h.errorHandler.HandleError(w, r, err)
		return
	}
	defer file.Close()

	var buf bytes.Buffer
	if err := h.service.ExportSummaryCSV(r.Context(), header.Filename, file, header.Size, &buf); err != nil {
		h.errorHandler.HandleError(w, r, err)
		return
	}

	w.Header().Set("Content-Type", "text/csv; charset=utf-8")
	w.Header().Set("Content-Disposition", `attachment; filename="campaign_summary.csv"`)
	w.WriteHeader(http.StatusOK)
	if _, err := w.Write(buf.Bytes()); err != nil {
		h.logger.ErrorContext(r.Context(), "failed to write CSV response",
			slog.String("error", err.Error()))
	}
}

// openUpload extracts and validates the multipart spreadsheet upload.
func (h *AnalyticsHandler) openUpload(r *http.Request) (multipart.File, *multipart.FileHeader, error) {
	if h.validator.MaxSizeBytes() > 0 {
		r.Body = http.MaxBytesReader(nil, r.Body, h.validator.MaxSizeBytes())
	}

	file, header, err := r.FormFile(uploadFieldName)
	if err != nil {
		return nil, nil, apperrors.NewAppValidationError("request must include a spreadsheet in the 'file' form field")
	}

	if err := h.validator.Validate(header.Filename, header.Size); err != nil {
		file.Close()
		return nil, nil, err
	}

	return file, header, nil
}
