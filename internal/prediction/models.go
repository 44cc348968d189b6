// internal/prediction/models.go
package prediction

import (
	"encoding/json"
	"fmt"
	"math"
	"strconv"
)

// Numeric field names sent to the prediction service.
const (
	FieldSeniorCitizen  = "SeniorCitizen"
	FieldTenure         = "tenure"
	FieldMonthlyCharges = "MonthlyCharges"
	FieldTotalCharges   = "TotalCharges"
)

// Int is an integer that may be invalid. Invalid values serialize as null.
type Int struct {
	Value int64
	Valid bool
}

func (i Int) MarshalJSON() ([]byte, error) {
	if !i.Valid {
		return []byte("null"), nil
	}
	return strconv.AppendInt(nil, i.Value, 10), nil
}

func (i Int) String() string {
	if !i.Valid {
		return "NaN"
	}
	return strconv.FormatInt(i.Value, 10)
}

// Float is a float that may be invalid. Invalid and non-finite values serialize as null.
type Float struct {
	Value float64
	Valid bool
}

func (f Float) MarshalJSON() ([]byte, error) {
	if !f.Valid || math.IsNaN(f.Value) || math.IsInf(f.Value, 0) {
		return []byte("null"), nil
	}
	if f.Value == 0 {
		// negative zero prints as 0
		return []byte("0"), nil
	}
	return json.Marshal(f.Value)
}

func (f Float) String() string {
	if !f.Valid {
		return "NaN"
	}
	return strconv.FormatFloat(f.Value, 'f', -1, 64)
}

// Request is the body of POST /predict: every submitted form field as a string, with the four
// numeric fields replaced by typed values.
type Request struct {
	Fields         map[string]string
	SeniorCitizen  Int
	Tenure         Int
	MonthlyCharges Float
	TotalCharges   Float
}

// MarshalJSON renders the flat object expected by the service. Keys are sorted, so equal
// requests encode to identical bytes.
func (r Request) MarshalJSON() ([]byte, error) {
	body := make(map[string]interface{}, len(r.Fields)+4)
	for name, value := range r.Fields {
		body[name] = value
	}
	body[FieldSeniorCitizen] = r.SeniorCitizen
	body[FieldTenure] = r.Tenure
	body[FieldMonthlyCharges] = r.MonthlyCharges
	body[FieldTotalCharges] = r.TotalCharges
	return json.Marshal(body)
}

// Malformed lists the numeric fields that did not parse, in a fixed order.
func (r Request) Malformed() []string {
	var fields []string
	if !r.SeniorCitizen.Valid {
		fields = append(fields, FieldSeniorCitizen)
	}
	if !r.Tenure.Valid {
		fields = append(fields, FieldTenure)
	}
	if !r.MonthlyCharges.Valid {
		fields = append(fields, FieldMonthlyCharges)
	}
	if !r.TotalCharges.Valid {
		fields = append(fields, FieldTotalCharges)
	}
	return fields
}

// Result is the prediction returned by the service. ChurnProbability is NaN when the
// service sent no usable number.
type Result struct {
	ChurnProbability float64 `json:"churn_probability"`
	RiskCategory     string  `json:"risk_category"`
}

// MarshalJSON writes a non-finite probability as null.
func (r Result) MarshalJSON() ([]byte, error) {
	return json.Marshal(struct {
		ChurnProbability Float  `json:"churn_probability"`
		RiskCategory     string `json:"risk_category"`
	}{
		ChurnProbability: Float{Value: r.ChurnProbability, Valid: true},
		RiskCategory:     r.RiskCategory,
	})
}

// HealthStatus is returned by GET /health.
type HealthStatus struct {
	Status  string `json:"status"`
	Version string `json:"version"`
}

// ModelInfo is returned by GET /model-info.
type ModelInfo struct {
	ModelType     string `json:"model_type"`
	Version       string `json:"version"`
	TrainedDate   string `json:"trained_date"`
	FeaturesCount int    `json:"features_count"`
}

// StatusError is returned when the service answers outside the 2xx range.
type StatusError struct {
	StatusCode int
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("server returned status: %d", e.StatusCode)
}
