package errors

import (
	stderrors "errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConvertToBPMNError(t *testing.T) {
	tests := []struct {
		name            string
		err             *StandardError
		expectedCode    string
		expectedRetries int
	}{
		{
			name:            "invalid input is terminal",
			err:             NewInvalidInputError("Please enter a valid tenure.", "tenure"),
			expectedCode:    "INVALID_INPUT",
			expectedRetries: 0,
		},
		{
			name:            "request failure is terminal",
			err:             NewRequestFailedError("Error connecting to the prediction server.", fmt.Errorf("dial tcp: refused")),
			expectedCode:    "REQUEST_FAILED",
			expectedRetries: 0,
		},
		{
			name:            "in-flight is terminal",
			err:             NewSubmissionInFlightError("busy", "42"),
			expectedCode:    "SUBMISSION_IN_FLIGHT",
			expectedRetries: 0,
		},
		{
			name:            "guard outage retries",
			err:             NewGuardUnavailableError(fmt.Errorf("redis: connection refused")),
			expectedCode:    "GUARD_UNAVAILABLE",
			expectedRetries: 2,
		},
		{
			name:            "internal keeps its own code",
			err:             NewInternalError(fmt.Errorf("boom")),
			expectedCode:    "INTERNAL_ERROR",
			expectedRetries: 0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			bpmnErr := ConvertToBPMNError(tt.err)
			assert.Equal(t, tt.expectedCode, bpmnErr.Code)
			assert.Equal(t, tt.expectedRetries, bpmnErr.Retries)
			assert.Equal(t, tt.err.Message, bpmnErr.Message)

			vars := bpmnErr.ToErrorVariables()
			assert.Equal(t, tt.expectedCode, vars["errorCode"])
			assert.Equal(t, string(tt.err.Code), vars["originalErrorCode"])
		})
	}
}

func TestNormalize(t *testing.T) {
	stdErr := NewInvalidInputError("Please enter a valid tenure.", "tenure")
	wrapped := fmt.Errorf("submit: %w", stdErr)

	assert.Same(t, stdErr, Normalize(wrapped))

	plain := Normalize(stderrors.New("unexpected"))
	require.NotNil(t, plain)
	assert.Equal(t, ErrCodeInternal, plain.Code)
	assert.Equal(t, "unexpected", plain.Details)
}

func TestErrorCategoryAndRetryability(t *testing.T) {
	assert.Equal(t, "VALIDATION", GetErrorCategory(ErrCodeInvalidInput))
	assert.Equal(t, "VALIDATION", GetErrorCategory(ErrCodeInvalidJobPayload))
	assert.Equal(t, "PREDICTION", GetErrorCategory(ErrCodeRequestFailed))
	assert.Equal(t, "CONCURRENCY", GetErrorCategory(ErrCodeSubmissionInFlight))
	assert.Equal(t, "CONCURRENCY", GetErrorCategory(ErrCodeGuardUnavailable))
	assert.Equal(t, "OTHER", GetErrorCategory(ErrCodeInternal))

	assert.True(t, IsRetryableErrorCode(ErrCodeGuardUnavailable))
	assert.False(t, IsRetryableErrorCode(ErrCodeRequestFailed))
}
