// internal/submission/models.go
package submission

import (
	"errors"
	"fmt"

	"churn-console/internal/prediction"
)

var (
	ErrInvalidInput       = errors.New("INVALID_INPUT")
	ErrRequestFailed      = errors.New("REQUEST_FAILED")
	ErrSubmissionInFlight = errors.New("SUBMISSION_IN_FLIGHT")
	ErrGuardUnavailable   = errors.New("GUARD_UNAVAILABLE")
)

// User-facing alert texts.
const (
	MsgInvalidTenure         = "Please enter a valid number for Time with Company."
	MsgInvalidMonthlyCharges = "Please enter a valid Monthly Bill amount."
	MsgRequestFailed         = "Unable to analyze risk right now.\n\nPlease check if the backend server is running and try again."
	MsgSubmissionInFlight    = "A risk analysis is already running. Please wait for it to finish."
	msgMalformedNumbers      = "Please check the numeric fields: %s."
)

// Busy-state styling of the submit control.
const (
	BusyOpacity  = "0.7"
	IdleOpacity  = "1"
	ScrollSmooth = "smooth"
	ScrollNear   = "nearest"
)

// FormInput maps a form control name to its submitted value.
type FormInput map[string]string

// InputError is a failed guard check. Message is the text shown to the user.
type InputError struct {
	Field   string
	Message string
}

func (e *InputError) Error() string {
	return fmt.Sprintf("%s: %s", ErrInvalidInput, e.Message)
}

func (e *InputError) Unwrap() error {
	return ErrInvalidInput
}

// SubmitControl is the form's submit button.
type SubmitControl interface {
	Label() string
	SetLabel(label string)
	SetDisabled(disabled bool)
	SetOpacity(opacity string)
}

// ResultPanel is the card that shows the prediction.
type ResultPanel interface {
	Reveal()
	SetProbability(text, meterWidth string)
	ResetTier()
	ApplyTier(view RiskView)
	ScrollIntoView(behavior, block string)
}

// Alerter shows a blocking message to the user.
type Alerter interface {
	Alert(message string)
}

// Elements are the page handles a submission drives.
type Elements struct {
	Submit SubmitControl
	Result ResultPanel
	Alerts Alerter
}

// Tier is the rendered risk tier.
type Tier string

const (
	TierHigh   Tier = "HIGH"
	TierMedium Tier = "MEDIUM"
	TierLow    Tier = "LOW"
)

// RiskView is the rendering of one prediction result.
type RiskView struct {
	Tier            Tier   `json:"tier"`
	ProbabilityText string `json:"probability_text"`
	MeterWidth      string `json:"meter_width"`
	MeterColor      string `json:"meter_color"`
	Label           string `json:"label"`
	BadgeClass      string `json:"badge_class"`
	CardClass       string `json:"card_class"`
	Explanation     string `json:"explanation"`
}

// Outcome is a completed submission.
type Outcome struct {
	SubmissionID string              `json:"submission_id"`
	Request      *prediction.Request `json:"request"`
	Result       *prediction.Result  `json:"result"`
	View         RiskView            `json:"view"`
}
