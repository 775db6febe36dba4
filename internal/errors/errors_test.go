package errors

import (
	"errors"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAppError(t *testing.T) {
	cause := errors.New("boom")
	err := NewParsingError("failed to parse CSV upload", cause)

	assert.Equal(t, "[PARSING] failed to parse CSV upload: boom", err.Error())
	assert.ErrorIs(t, err, cause)

	err = NewAppValidationError("bad input")
	assert.Equal(t, "[VALIDATION] bad input", err.Error())
	assert.Nil(t, err.Unwrap())
}

func TestAppError_WithContext(t *testing.T) {
	err := NewAppValidationError("bad input").
		WithContext("field", "file").
		WithContext("size", 42)

	assert.Equal(t, "file", err.Context["field"])
	assert.Equal(t, 42, err.Context["size"])
}

func TestProblemDetails_MarshalJSON(t *testing.T) {
	pd := NewProblemDetails(http.StatusBadRequest, TypeValidation, "Validation Failed", "bad input", "/api/analytics/summary").
		WithExtension("trace_id", "abc-123")

	data, err := pd.MarshalJSON()
	require.NoError(t, err)

	assert.Contains(t, string(data), `"type":"/errors/validation"`)
	assert.Contains(t, string(data), `"status":400`)
	assert.Contains(t, string(data), `"trace_id":"abc-123"`)
	assert.Contains(t, string(data), `"instance":"/api/analytics/summary"`)
}
