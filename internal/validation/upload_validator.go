package validation

import (
	"log/slog"
	"path/filepath"
	"strings"

	apperrors "adpulse/internal/errors"
)

// allowedExtensions are the spreadsheet formats the analytics endpoints accept.
var allowedExtensions = map[string]bool{
	".csv":  true,
	".xlsx": true,
	".xlsm": true,
}

// UploadValidator checks uploaded spreadsheet files before parsing.
type UploadValidator struct {
	logger       *slog.Logger
	maxSizeBytes int64
}

// NewUploadValidator creates an upload validator with the given size cap.
func NewUploadValidator(maxSizeBytes int64, logger *slog.Logger) *UploadValidator {
	if logger == nil {
		logger = slog.Default()
	}
	return &UploadValidator{
		logger:       logger.With(slog.String("component", "upload_validator")),
		maxSizeBytes: maxSizeBytes,
	}
}

// MaxSizeBytes returns the configured upload size cap.
func (v *UploadValidator) MaxSizeBytes() int64 {
	return v.maxSizeBytes
}

// Validate checks the upload's filename and declared size. A size of -1 means
// unknown and is accepted; the HTTP layer enforces the cap on the body reader.
func (v *UploadValidator) Validate(filename string, sizeBytes int64) error {
	if strings.TrimSpace(filename) == "" {
		return apperrors.NewAppValidationError("upload filename is empty")
	}

	base := filepath.Base(filename)
	if strings.HasPrefix(base, "~$") {
		return apperrors.NewAppValidationError("temporary spreadsheet files are not accepted").
			WithContext("filename", base)
	}

	ext := strings.ToLower(filepath.Ext(base))
	if !allowedExtensions[ext] {
		v.logger.Warn("rejected upload with unsupported extension",
			slog.String("filename", base),
			slog.String("extension", ext))
		return apperrors.NewAppValidationError("unsupported file type, expected .csv, .xlsx or .xlsm").
			WithContext("extension", ext)
	}

	if sizeBytes == 0 {
		return apperrors.NewAppValidationError("uploaded file is empty").
			WithContext("filename", base)
	}
	if sizeBytes > 0 && v.maxSizeBytes > 0 && sizeBytes > v.maxSizeBytes {
		v.logger.Warn("rejected oversized upload",
			slog.String("filename", base),
			slog.Int64("size_bytes", sizeBytes),
			slog.Int64("max_bytes", v.maxSizeBytes))
		return apperrors.NewAppValidationError("uploaded file exceeds the size limit").
			WithContext("size_bytes", sizeBytes).
			WithContext("max_bytes", v.maxSizeBytes)
	}

	return nil
}
