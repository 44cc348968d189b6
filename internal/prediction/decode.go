// internal/prediction/decode.go
package prediction

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"math"
	"strconv"
	"strings"

	"churn-console/internal/common/numconv"
)

// decodeResult reads a /predict body the way the browser script reads it. The body must
// be a single JSON value other than null. Beyond that nothing is rejected: the probability
// is coerced with Number() semantics, so a missing field becomes NaN, and a category that
// is not a string is dropped.
func decodeResult(body []byte) (*Result, error) {
	dec := json.NewDecoder(bytes.NewReader(body))
	dec.UseNumber()

	var doc interface{}
	if err := dec.Decode(&doc); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidResponse, err)
	}
	if _, err := dec.Token(); err != io.EOF {
		return nil, fmt.Errorf("%w: unexpected data after JSON value", ErrInvalidResponse)
	}
	if doc == nil {
		return nil, fmt.Errorf("%w: body is null", ErrInvalidResponse)
	}

	result := &Result{ChurnProbability: math.NaN()}

	fields, ok := doc.(map[string]interface{})
	if !ok {
		return result, nil
	}

	if raw, present := fields["churn_probability"]; present {
		result.ChurnProbability = coerceNumber(raw)
	}
	if category, ok := fields["risk_category"].(string); ok {
		result.RiskCategory = category
	}

	return result, nil
}

func coerceNumber(v interface{}) float64 {
	switch x := v.(type) {
	case nil:
		return 0
	case bool:
		if x {
			return 1
		}
		return 0
	case json.Number:
		return numconv.ToNumber(x.String())
	case string:
		return numconv.ToNumber(x)
	case []interface{}:
		return numconv.ToNumber(joinArray(x))
	default:
		return math.NaN()
	}
}

// joinArray renders an array the way Array.prototype.toString does.
func joinArray(items []interface{}) string {
	parts := make([]string, len(items))
	for i, item := range items {
		switch x := item.(type) {
		case nil:
			parts[i] = ""
		case bool:
			parts[i] = strconv.FormatBool(x)
		case json.Number:
			parts[i] = x.String()
		case string:
			parts[i] = x
		case []interface{}:
			parts[i] = joinArray(x)
		default:
			parts[i] = "[object Object]"
		}
	}
	return strings.Join(parts, ",")
}
