package validation

import (
	"fmt"
	"regexp"
	"sort"
)

// JSONSchema describes the accepted shape of a flat input object.
type JSONSchema struct {
	Type                 string              `json:"type"`
	Properties           map[string]Property `json:"properties"`
	Required             []string            `json:"required,omitempty"`
	AdditionalProperties bool                `json:"additionalProperties,omitempty"`
	// PropertyOrder fixes the evaluation order; the first reported error follows it.
	// Properties not listed are evaluated afterwards in name order.
	PropertyOrder []string `json:"-"`
}

type Property struct {
	Type        string   `json:"type"`
	Description string   `json:"description,omitempty"`
	Minimum     *float64 `json:"minimum,omitempty"`
	Maximum     *float64 `json:"maximum,omitempty"`
	Enum        []string `json:"enum,omitempty"`
	Pattern     *string  `json:"pattern,omitempty"`
	MinLength   *int     `json:"minLength,omitempty"`
	MaxLength   *int     `json:"maxLength,omitempty"`
}

type ValidationResult struct {
	Valid  bool              `json:"valid"`
	Errors []ValidationError `json:"errors,omitempty"`
}

type ValidationError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
	Code    string `json:"code,omitempty"`
}

const (
	CodeRequiredFieldMissing = "REQUIRED_FIELD_MISSING"
	CodeExtraField           = "EXTRA_FIELD"
	CodeInvalidType          = "INVALID_TYPE"
	CodeMinimumViolation     = "MINIMUM_VIOLATION"
	CodeMaximumViolation     = "MAXIMUM_VIOLATION"
	CodeMinLengthViolation   = "MIN_LENGTH_VIOLATION"
	CodeMaxLengthViolation   = "MAX_LENGTH_VIOLATION"
	CodePatternMismatch      = "PATTERN_MISMATCH"
	CodeInvalidEnumValue     = "INVALID_ENUM_VALUE"
)

// ValidateInput validates input against the schema. Each declared property is checked in
// PropertyOrder: a missing required property reports REQUIRED_FIELD_MISSING, a present one is
// checked against its constraints. Numeric bounds use plain comparisons, so NaN never violates them.
func ValidateInput(input map[string]interface{}, schema JSONSchema) *ValidationResult {
	errors := []ValidationError{}

	required := make(map[string]bool, len(schema.Required))
	for _, name := range schema.Required {
		required[name] = true
	}

	for _, fieldName := range evaluationOrder(schema) {
		value, exists := input[fieldName]
		if !exists {
			if required[fieldName] {
				errors = append(errors, ValidationError{
					Field:   fieldName,
					Message: "required field missing",
					Code:    CodeRequiredFieldMissing,
				})
			}
			continue
		}

		prop, declared := schema.Properties[fieldName]
		if !declared {
			continue
		}
		errors = append(errors, validateField(fieldName, value, prop)...)
	}

	if !schema.AdditionalProperties {
		extra := make([]string, 0)
		for fieldName := range input {
			if _, declared := schema.Properties[fieldName]; !declared && !required[fieldName] {
				extra = append(extra, fieldName)
			}
		}
		sort.Strings(extra)
		for _, fieldName := range extra {
			errors = append(errors, ValidationError{
				Field:   fieldName,
				Message: "field not allowed in schema",
				Code:    CodeExtraField,
			})
		}
	}

	return &ValidationResult{
		Valid:  len(errors) == 0,
		Errors: errors,
	}
}

func evaluationOrder(schema JSONSchema) []string {
	seen := make(map[string]bool)
	order := make([]string, 0, len(schema.Properties)+len(schema.Required))
	for _, name := range schema.PropertyOrder {
		if !seen[name] {
			seen[name] = true
			order = append(order, name)
		}
	}

	rest := make([]string, 0)
	for name := range schema.Properties {
		if !seen[name] {
			seen[name] = true
			rest = append(rest, name)
		}
	}
	for _, name := range schema.Required {
		if !seen[name] {
			seen[name] = true
			rest = append(rest, name)
		}
	}
	sort.Strings(rest)

	return append(order, rest...)
}

func validateField(fieldName string, value interface{}, prop Property) []ValidationError {
	errors := []ValidationError{}

	if typeErr := validateType(value, prop.Type); typeErr != nil {
		return append(errors, ValidationError{
			Field:   fieldName,
			Message: typeErr.Error(),
			Code:    CodeInvalidType,
		})
	}

	if strVal, ok := value.(string); ok {
		if prop.MinLength != nil && len(strVal) < *prop.MinLength {
			errors = append(errors, ValidationError{
				Field:   fieldName,
				Message: fmt.Sprintf("value must be at least %d characters", *prop.MinLength),
				Code:    CodeMinLengthViolation,
			})
		}
		if prop.MaxLength != nil && len(strVal) > *prop.MaxLength {
			errors = append(errors, ValidationError{
				Field:   fieldName,
				Message: fmt.Sprintf("value must be at most %d characters", *prop.MaxLength),
				Code:    CodeMaxLengthViolation,
			})
		}

		if prop.Pattern != nil {
			matched, err := regexp.MatchString(*prop.Pattern, strVal)
			if err != nil || !matched {
				errors = append(errors, ValidationError{
					Field:   fieldName,
					Message: fmt.Sprintf("value must match pattern %s", *prop.Pattern),
					Code:    CodePatternMismatch,
				})
			}
		}

		if len(prop.Enum) > 0 {
			found := false
			for _, enumVal := range prop.Enum {
				if strVal == enumVal {
					found = true
					break
				}
			}
			if !found {
				errors = append(errors, ValidationError{
					Field:   fieldName,
					Message: fmt.Sprintf("value must be one of %v", prop.Enum),
					Code:    CodeInvalidEnumValue,
				})
			}
		}
	}

	if numVal, ok := toFloat(value); ok {
		if prop.Minimum != nil && numVal < *prop.Minimum {
			errors = append(errors, ValidationError{
				Field:   fieldName,
				Message: fmt.Sprintf("value must be >= %v", *prop.Minimum),
				Code:    CodeMinimumViolation,
			})
		}
		if prop.Maximum != nil && numVal > *prop.Maximum {
			errors = append(errors, ValidationError{
				Field:   fieldName,
				Message: fmt.Sprintf("value must be <= %v", *prop.Maximum),
				Code:    CodeMaximumViolation,
			})
		}
	}

	return errors
}

func toFloat(value interface{}) (float64, bool) {
	switch v := value.(type) {
	case float64:
		return v, true
	case float32:
		return float64(v), true
	case int:
		return float64(v), true
	case int64:
		return float64(v), true
	case int32:
		return float64(v), true
	}
	return 0, false
}

func validateType(value interface{}, expectedType string) error {
	switch expectedType {
	case "string":
		if _, ok := value.(string); !ok {
			return fmt.Errorf("expected string, got %T", value)
		}
	case "number":
		if _, ok := toFloat(value); !ok {
			return fmt.Errorf("expected number, got %T", value)
		}
	case "integer":
		switch value.(type) {
		case int, int32, int64:
		default:
			return fmt.Errorf("expected integer, got %T", value)
		}
	case "boolean":
		if _, ok := value.(bool); !ok {
			return fmt.Errorf("expected boolean, got %T", value)
		}
	}
	return nil
}

// GetErrorMessages returns a simple list of error messages
func (vr *ValidationResult) GetErrorMessages() []string {
	messages := make([]string, len(vr.Errors))
	for i, err := range vr.Errors {
		messages[i] = fmt.Sprintf("%s: %s", err.Field, err.Message)
	}
	return messages
}

// FirstError returns the first reported error, or nil when the input is valid.
func (vr *ValidationResult) FirstError() *ValidationError {
	if len(vr.Errors) == 0 {
		return nil
	}
	return &vr.Errors[0]
}

// HasErrors checks if validation has errors for specific field
func (vr *ValidationResult) HasErrors(field string) bool {
	for _, err := range vr.Errors {
		if err.Field == field {
			return true
		}
	}
	return false
}

// Float64Ptr returns a pointer to f for schema bounds.
func Float64Ptr(f float64) *float64 {
	return &f
}

// IntPtr returns a pointer to i for schema lengths.
func IntPtr(i int) *int {
	return &i
}
