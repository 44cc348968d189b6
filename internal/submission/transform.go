// internal/submission/transform.go
package submission

import (
	"churn-console/internal/common/numconv"
	"churn-console/internal/prediction"
)

// BuildRequest converts the form into the prediction payload. Every field is carried over as a
// string; the numeric fields are parsed, and TotalCharges defaults to 0 when blank.
func BuildRequest(form FormInput) *prediction.Request {
	fields := make(map[string]string, len(form))
	for name, value := range form {
		fields[name] = value
	}

	req := &prediction.Request{
		Fields:         fields,
		SeniorCitizen:  parseInt(form[prediction.FieldSeniorCitizen]),
		Tenure:         parseInt(form[prediction.FieldTenure]),
		MonthlyCharges: parseFloat(form[prediction.FieldMonthlyCharges]),
		TotalCharges:   prediction.Float{Value: 0, Valid: true},
	}
	if total := form[prediction.FieldTotalCharges]; total != "" {
		req.TotalCharges = parseFloat(total)
	}

	return req
}

func parseInt(value string) prediction.Int {
	n, ok := numconv.ParseInt(value)
	return prediction.Int{Value: n, Valid: ok}
}

func parseFloat(value string) prediction.Float {
	f, ok := numconv.ParseFloat(value)
	return prediction.Float{Value: f, Valid: ok}
}
