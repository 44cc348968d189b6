// internal/submission/form.go
package submission

import (
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"net/url"
	"strconv"
	"strings"

	commonerrors "churn-console/internal/common/errors"
)

// FormFromValues builds form input from a posted form. When a name repeats, the last value wins.
func FormFromValues(values url.Values) FormInput {
	form := make(FormInput, len(values))
	for name, vals := range values {
		if len(vals) > 0 {
			form[name] = vals[len(vals)-1]
		}
	}
	return form
}

// FormFromJSON builds form input from a decoded JSON object. Strings are kept, numbers and
// booleans are written the way a browser stringifies them, and null leaves the field absent.
func FormFromJSON(values map[string]interface{}) (FormInput, error) {
	form := make(FormInput, len(values))
	for name, raw := range values {
		switch v := raw.(type) {
		case nil:
		case string:
			form[name] = v
		case json.Number:
			form[name] = v.String()
		case float64:
			form[name] = formatNumber(v)
		case bool:
			form[name] = strconv.FormatBool(v)
		default:
			return nil, &InputError{
				Field:   name,
				Message: fmt.Sprintf("Field %s must be a string or a number.", name),
			}
		}
	}
	return form, nil
}

// formatNumber writes v in the shortest form, switching to exponent notation outside
// [1e-6, 1e21) with an unpadded exponent ("1e-7", "1e+21").
func formatNumber(v float64) string {
	abs := math.Abs(v)
	if v == 0 {
		return "0"
	}
	if abs >= 1e-6 && abs < 1e21 {
		return strconv.FormatFloat(v, 'f', -1, 64)
	}

	mantissa, exp, _ := strings.Cut(strconv.FormatFloat(v, 'e', -1, 64), "e")
	return mantissa + "e" + exp[:1] + strings.TrimLeft(exp[1:], "0")
}

// ToStandardError maps a submission error to the shared error model.
func ToStandardError(err error) *commonerrors.StandardError {
	var inputErr *InputError
	switch {
	case errors.As(err, &inputErr):
		return commonerrors.NewInvalidInputError(inputErr.Message, inputErr.Field)
	case errors.Is(err, ErrSubmissionInFlight):
		return commonerrors.NewSubmissionInFlightError(MsgSubmissionInFlight, "")
	case errors.Is(err, ErrGuardUnavailable):
		return commonerrors.NewGuardUnavailableError(err)
	case errors.Is(err, ErrRequestFailed):
		return commonerrors.NewRequestFailedError(MsgRequestFailed, err)
	default:
		return commonerrors.NewInternalError(err)
	}
}
