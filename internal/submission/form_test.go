package submission

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/url"
	"testing"

	commonerrors "churn-console/internal/common/errors"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFormFromValues_LastValueWins(t *testing.T) {
	values := url.Values{
		"tenure":  {"3", "12"},
		"gender":  {"Male"},
		"Partner": {},
	}

	form := FormFromValues(values)
	assert.Equal(t, FormInput{"tenure": "12", "gender": "Male"}, form)
}

func TestFormFromJSON(t *testing.T) {
	var raw map[string]interface{}
	require.NoError(t, json.Unmarshal([]byte(`{
		"tenure": 12,
		"MonthlyCharges": 70.5,
		"TotalCharges": null,
		"SeniorCitizen": "0",
		"Partner": true,
		"tiny": 0.0000001,
		"huge": 1e21
	}`), &raw))

	form, err := FormFromJSON(raw)
	require.NoError(t, err)
	assert.Equal(t, FormInput{
		"tenure":         "12",
		"MonthlyCharges": "70.5",
		"SeniorCitizen":  "0",
		"Partner":        "true",
		"tiny":           "1e-7",
		"huge":           "1e+21",
	}, form)
}

func TestFormFromJSON_RejectsNestedValues(t *testing.T) {
	_, err := FormFromJSON(map[string]interface{}{"tenure": []interface{}{1.0}})
	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestToStandardError(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		expected commonerrors.ErrorCode
	}{
		{"invalid input", &InputError{Field: "tenure", Message: MsgInvalidTenure}, commonerrors.ErrCodeInvalidInput},
		{"in flight", fmt.Errorf("%w: key s", ErrSubmissionInFlight), commonerrors.ErrCodeSubmissionInFlight},
		{"guard", fmt.Errorf("%w: redis down", ErrGuardUnavailable), commonerrors.ErrCodeGuardUnavailable},
		{"request failed", fmt.Errorf("%w: boom", ErrRequestFailed), commonerrors.ErrCodeRequestFailed},
		{"unknown", errors.New("boom"), commonerrors.ErrCodeInternal},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, ToStandardError(tt.err).Code)
		})
	}

	stdErr := ToStandardError(&InputError{Field: "tenure", Message: MsgInvalidTenure})
	assert.Equal(t, MsgInvalidTenure, stdErr.Message)
	assert.Equal(t, "tenure", stdErr.Metadata["field"])
}
