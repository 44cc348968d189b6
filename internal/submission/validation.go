// internal/submission/validation.go
package submission

import (
	"churn-console/internal/common/numconv"
	"churn-console/internal/common/validation"
	"churn-console/internal/prediction"
)

var guardSchema = validation.JSONSchema{
	Type: "object",
	Properties: map[string]validation.Property{
		prediction.FieldTenure: {
			Type:        "number",
			Description: "Time with company in months",
			Minimum:     validation.Float64Ptr(0),
		},
		prediction.FieldMonthlyCharges: {
			Type:        "number",
			Description: "Monthly bill amount",
			Minimum:     validation.Float64Ptr(0),
		},
	},
	Required:             []string{prediction.FieldTenure, prediction.FieldMonthlyCharges},
	AdditionalProperties: true,
	PropertyOrder:        []string{prediction.FieldTenure, prediction.FieldMonthlyCharges},
}

var guardMessages = map[string]string{
	prediction.FieldTenure:         MsgInvalidTenure,
	prediction.FieldMonthlyCharges: MsgInvalidMonthlyCharges,
}

// Validate checks that tenure and MonthlyCharges are present and not negative. Only the
// first failing field is reported. A value that is not a number passes.
func Validate(form FormInput) error {
	input := make(map[string]interface{}, len(guardSchema.PropertyOrder))
	for _, field := range guardSchema.PropertyOrder {
		if value := form[field]; value != "" {
			input[field] = numconv.ToNumber(value)
		}
	}

	result := validation.ValidateInput(input, guardSchema)
	first := result.FirstError()
	if first == nil {
		return nil
	}

	return &InputError{
		Field:   first.Field,
		Message: guardMessages[first.Field],
	}
}
