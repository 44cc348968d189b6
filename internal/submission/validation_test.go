package submission

import (
	"encoding/json"
	"errors"
	"testing"

	"churn-console/internal/prediction"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validForm() FormInput {
	return FormInput{
		"gender":           "Female",
		"SeniorCitizen":    "0",
		"Partner":          "Yes",
		"Dependents":       "No",
		"tenure":           "12",
		"PhoneService":     "No",
		"MultipleLines":    "No phone service",
		"InternetService":  "DSL",
		"OnlineSecurity":   "No",
		"OnlineBackup":     "Yes",
		"DeviceProtection": "No",
		"TechSupport":      "No",
		"StreamingTV":      "No",
		"StreamingMovies":  "No",
		"Contract":         "Month-to-month",
		"PaperlessBilling": "Yes",
		"PaymentMethod":    "Electronic check",
		"MonthlyCharges":   "70.5",
		"TotalCharges":     "846",
	}
}

func withValues(form FormInput, values map[string]string) FormInput {
	out := FormInput{}
	for k, v := range form {
		out[k] = v
	}
	for k, v := range values {
		out[k] = v
	}
	return out
}

func withoutField(form FormInput, field string) FormInput {
	out := withValues(form, nil)
	delete(out, field)
	return out
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name          string
		form          FormInput
		expectedField string
		expectedMsg   string
	}{
		{
			name: "valid form",
			form: validForm(),
		},
		{
			name:          "negative tenure",
			form:          withValues(validForm(), map[string]string{"tenure": "-1"}),
			expectedField: "tenure",
			expectedMsg:   MsgInvalidTenure,
		},
		{
			name:          "missing tenure",
			form:          withoutField(validForm(), "tenure"),
			expectedField: "tenure",
			expectedMsg:   MsgInvalidTenure,
		},
		{
			name:          "empty tenure",
			form:          withValues(validForm(), map[string]string{"tenure": ""}),
			expectedField: "tenure",
			expectedMsg:   MsgInvalidTenure,
		},
		{
			name:          "negative monthly charges",
			form:          withValues(validForm(), map[string]string{"MonthlyCharges": "-0.01"}),
			expectedField: "MonthlyCharges",
			expectedMsg:   MsgInvalidMonthlyCharges,
		},
		{
			name:          "missing monthly charges",
			form:          withoutField(validForm(), "MonthlyCharges"),
			expectedField: "MonthlyCharges",
			expectedMsg:   MsgInvalidMonthlyCharges,
		},
		{
			name:          "tenure reported before monthly charges",
			form:          withValues(validForm(), map[string]string{"tenure": "-2", "MonthlyCharges": "-2"}),
			expectedField: "tenure",
			expectedMsg:   MsgInvalidTenure,
		},
		{
			name:          "monthly charges missing after bad tenure",
			form:          withoutField(withValues(validForm(), map[string]string{"tenure": "-2"}), "MonthlyCharges"),
			expectedField: "tenure",
			expectedMsg:   MsgInvalidTenure,
		},
		{
			name: "zero is allowed",
			form: withValues(validForm(), map[string]string{"tenure": "0", "MonthlyCharges": "0"}),
		},
		{
			name: "not a number passes the guard",
			form: withValues(validForm(), map[string]string{"tenure": "abc"}),
		},
		{
			name: "whitespace only counts as zero",
			form: withValues(validForm(), map[string]string{"MonthlyCharges": "  "}),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := Validate(tt.form)
			if tt.expectedMsg == "" {
				assert.NoError(t, err)
				return
			}

			require.Error(t, err)
			assert.True(t, errors.Is(err, ErrInvalidInput))

			var inputErr *InputError
			require.True(t, errors.As(err, &inputErr))
			assert.Equal(t, tt.expectedField, inputErr.Field)
			assert.Equal(t, tt.expectedMsg, inputErr.Message)
		})
	}
}

func TestBuildRequest(t *testing.T) {
	req := BuildRequest(validForm())

	assert.Equal(t, prediction.Int{Value: 0, Valid: true}, req.SeniorCitizen)
	assert.Equal(t, prediction.Int{Value: 12, Valid: true}, req.Tenure)
	assert.Equal(t, prediction.Float{Value: 70.5, Valid: true}, req.MonthlyCharges)
	assert.Equal(t, prediction.Float{Value: 846, Valid: true}, req.TotalCharges)
	assert.Equal(t, "Month-to-month", req.Fields["Contract"])
	assert.Empty(t, req.Malformed())
}

func TestBuildRequest_Parsing(t *testing.T) {
	tests := []struct {
		name      string
		values    map[string]string
		check     func(t *testing.T, req *prediction.Request)
		malformed []string
	}{
		{
			name:   "tenure truncates",
			values: map[string]string{"tenure": "12.7"},
			check: func(t *testing.T, req *prediction.Request) {
				assert.Equal(t, int64(12), req.Tenure.Value)
			},
		},
		{
			name:   "monthly charges keeps prefix",
			values: map[string]string{"MonthlyCharges": "70.25 USD"},
			check: func(t *testing.T, req *prediction.Request) {
				assert.Equal(t, 70.25, req.MonthlyCharges.Value)
			},
		},
		{
			name:   "empty total charges is zero",
			values: map[string]string{"TotalCharges": ""},
			check: func(t *testing.T, req *prediction.Request) {
				assert.Equal(t, prediction.Float{Value: 0, Valid: true}, req.TotalCharges)
			},
		},
		{
			name:      "unparseable total charges is malformed",
			values:    map[string]string{"TotalCharges": "n/a"},
			malformed: []string{prediction.FieldTotalCharges},
		},
		{
			name:      "non numeric tenure is malformed",
			values:    map[string]string{"tenure": "abc", "SeniorCitizen": "yes"},
			malformed: []string{prediction.FieldSeniorCitizen, prediction.FieldTenure},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := BuildRequest(withValues(validForm(), tt.values))
			if tt.check != nil {
				tt.check(t, req)
			}
			assert.Equal(t, tt.malformed, req.Malformed())
		})
	}
}

func TestBuildRequest_MissingTotalChargesIsZero(t *testing.T) {
	req := BuildRequest(withoutField(validForm(), "TotalCharges"))
	assert.Equal(t, prediction.Float{Value: 0, Valid: true}, req.TotalCharges)

	data, err := json.Marshal(req)
	require.NoError(t, err)

	var body map[string]interface{}
	require.NoError(t, json.Unmarshal(data, &body))
	assert.Equal(t, float64(0), body["TotalCharges"])
}

func TestBuildRequest_Deterministic(t *testing.T) {
	first, err := json.Marshal(BuildRequest(validForm()))
	require.NoError(t, err)
	second, err := json.Marshal(BuildRequest(validForm()))
	require.NoError(t, err)

	assert.Equal(t, string(first), string(second))
}

func TestBuildRequest_DoesNotAliasForm(t *testing.T) {
	form := validForm()
	req := BuildRequest(form)
	form["gender"] = "Male"

	assert.Equal(t, "Female", req.Fields["gender"])
}

// Integers beyond int64 cannot be carried exactly, so they go out as null and are
// reported as malformed.
func TestBuildRequest_OutOfRangeIntegersAreNull(t *testing.T) {
	tests := []struct {
		name      string
		values    map[string]string
		malformed []string
	}{
		{
			name:      "tenure",
			values:    map[string]string{"tenure": "99999999999999999999"},
			malformed: []string{prediction.FieldTenure},
		},
		{
			name:      "negative senior citizen",
			values:    map[string]string{"SeniorCitizen": "-99999999999999999999"},
			malformed: []string{prediction.FieldSeniorCitizen},
		},
		{
			name:      "hex tenure",
			values:    map[string]string{"tenure": "0xFFFFFFFFFFFFFFFFFF"},
			malformed: []string{prediction.FieldTenure},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := BuildRequest(withValues(validForm(), tt.values))
			assert.Equal(t, tt.malformed, req.Malformed())

			data, err := json.Marshal(req)
			require.NoError(t, err)

			var body map[string]interface{}
			require.NoError(t, json.Unmarshal(data, &body))
			for _, field := range tt.malformed {
				value, present := body[field]
				assert.True(t, present, field)
				assert.Nil(t, value, field)
			}
		})
	}
}

func TestBuildRequest_Int64BoundsAreKept(t *testing.T) {
	req := BuildRequest(withValues(validForm(), map[string]string{"tenure": "9223372036854775807"}))
	assert.Equal(t, prediction.Int{Value: 9223372036854775807, Valid: true}, req.Tenure)
	assert.Empty(t, req.Malformed())

	data, err := json.Marshal(req)
	require.NoError(t, err)
	assert.Contains(t, string(data), `"tenure":9223372036854775807`)
}
