package validation

import (
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apperrors "adpulse/internal/errors"
)

func TestUploadValidator_Validate(t *testing.T) {
	v := NewUploadValidator(1024, slog.Default())

	tests := []struct {
		name     string
		filename string
		size     int64
		wantErr  bool
	}{
		{name: "csv accepted", filename: "report.csv", size: 100, wantErr: false},
		{name: "xlsx accepted", filename: "report.xlsx", size: 100, wantErr: false},
		{name: "xlsm accepted", filename: "macro.xlsm", size: 100, wantErr: false},
		{name: "uppercase extension", filename: "REPORT.CSV", size: 100, wantErr: false},
		{name: "unknown size accepted", filename: "report.csv", size: -1, wantErr: false},
		{name: "at size limit", filename: "report.csv", size: 1024, wantErr: false},

		{name: "empty filename", filename: "", size: 100, wantErr: true},
		{name: "blank filename", filename: "   ", size: 100, wantErr: true},
		{name: "unsupported extension", filename: "report.pdf", size: 100, wantErr: true},
		{name: "no extension", filename: "report", size: 100, wantErr: true},
		{name: "excel temp file", filename: "~$report.xlsx", size: 100, wantErr: true},
		{name: "empty file", filename: "report.csv", size: 0, wantErr: true},
		{name: "over size limit", filename: "report.csv", size: 1025, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := v.Validate(tt.filename, tt.size)
			if !tt.wantErr {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)

			var appErr *apperrors.AppError
			require.ErrorAs(t, err, &appErr)
			assert.Equal(t, apperrors.ErrTypeValidation, appErr.Type)
		})
	}
}

func TestUploadValidator_NoSizeCap(t *testing.T) {
	v := NewUploadValidator(0, slog.Default())
	assert.NoError(t, v.Validate("huge.csv", 1<<40))
}
