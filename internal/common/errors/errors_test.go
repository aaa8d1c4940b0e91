package errors

import (
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConvertToBPMNError(t *testing.T) {
	t.Run("retryable keeps retry count", func(t *testing.T) {
		bpmn := ConvertToBPMNError(NewDatabaseInsertFailedError(fmt.Errorf("conn reset")))
		assert.Equal(t, "DATABASE_INSERT_FAILED", bpmn.Code)
		assert.Equal(t, 3, bpmn.Retries)
		assert.True(t, bpmn.Retryable)
		assert.Equal(t, "DATABASE_INSERT_FAILED", bpmn.ToErrorVariables()["originalErrorCode"])
	})

	t.Run("non-retryable has zero retries", func(t *testing.T) {
		bpmn := ConvertToBPMNError(NewPincodeInvalidError("12"))
		assert.Equal(t, 0, bpmn.Retries)
		assert.False(t, bpmn.Retryable)
	})
}

func TestAsStandardError(t *testing.T) {
	wrapped := fmt.Errorf("saving: %w", NewDatabaseInsertFailedError(fmt.Errorf("boom")))
	stdErr := AsStandardError(wrapped)
	require.NotNil(t, stdErr)
	assert.Equal(t, ErrCodeDatabaseInsertFailed, stdErr.Code)

	plain := AsStandardError(fmt.Errorf("plain"))
	assert.Equal(t, ErrCodeInternal, plain.Code)
	assert.Equal(t, "plain", plain.Details)
}

func TestHTTPStatus(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want int
	}{
		{"nil", nil, http.StatusOK},
		{"invalid input", NewInvalidInputError("question"), http.StatusBadRequest},
		{"validation", NewValidationFailedError("schema"), http.StatusBadRequest},
		{"rate limited", NewRateLimitedError("data_gov", nil), http.StatusTooManyRequests},
		{"timeout", NewUpstreamTimeoutError("postal"), http.StatusGatewayTimeout},
		{"db down", NewDatabaseConnectionFailedError(fmt.Errorf("refused")), http.StatusServiceUnavailable},
		{"unknown", fmt.Errorf("x"), http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, HTTPStatus(tt.err))
		})
	}
}

func TestGetErrorCategory(t *testing.T) {
	assert.Equal(t, "UPSTREAM", GetErrorCategory(ErrCodeScrapeFailed))
	assert.Equal(t, "VALIDATION", GetErrorCategory(ErrCodeInvalidInput))
	assert.Equal(t, "DATABASE", GetErrorCategory(ErrCodeDatabaseQueryFailed))
	assert.Equal(t, "TEMPLATE", GetErrorCategory(ErrCodeTemplateNotFound))
	assert.Equal(t, "OTHER", GetErrorCategory(ErrCodeInternal))
}
