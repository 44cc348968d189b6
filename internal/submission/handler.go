// internal/submission/handler.go
package submission

import (
	"context"
	"errors"
	"fmt"
	"math"
	"strings"
	"time"

	"churn-console/internal/common/logger"
	"churn-console/internal/common/metrics"
	"churn-console/internal/prediction"

	"github.com/google/uuid"
)

// Predictor is the prediction service seen by the handler.
type Predictor interface {
	Predict(ctx context.Context, req *prediction.Request) (*prediction.Result, error)
}

// Recorder receives submission telemetry. observability.Observability implements it.
type Recorder interface {
	RecordSubmission(ctx context.Context, outcome string)
	RecordSubmissionDuration(ctx context.Context, duration time.Duration, outcome string)
}

// Outcome labels for metrics.
const (
	outcomeRendered         = "rendered"
	outcomeInvalidInput     = "invalid_input"
	outcomeInFlight         = "in_flight"
	outcomeRequestFailed    = "request_failed"
	outcomeGuardUnavailable = "guard_unavailable"
)

type Handler struct {
	config    *Config
	predictor Predictor
	guard     Guard
	recorder  Recorder
	logger    logger.Logger
}

// NewHandler wires a submission handler. A nil guard admits one submission per key in
// process memory; recorder may be nil.
func NewHandler(cfg *Config, predictor Predictor, guard Guard, recorder Recorder, log logger.Logger) *Handler {
	if cfg == nil {
		cfg = &Config{BusyLabel: DefaultBusyLabel}
	}
	if guard == nil {
		guard = NewMemoryGuard()
	}
	return &Handler{
		config:    cfg,
		predictor: predictor,
		guard:     guard,
		recorder:  recorder,
		logger:    log.WithFields(map[string]interface{}{"component": "submission"}),
	}
}

// Submit runs one submission: validate, build the payload, hold the busy state while the
// prediction request is outstanding, then render. Failures are reported through
// elements.Alerts and returned wrapped in ErrInvalidInput, ErrSubmissionInFlight,
// ErrGuardUnavailable or ErrRequestFailed. key identifies the submitter for the in-flight guard;
// an empty key is never contended.
func (h *Handler) Submit(ctx context.Context, key string, form FormInput, elements Elements) (*Outcome, error) {
	start := time.Now()
	submissionID := uuid.New().String()
	if key == "" {
		key = submissionID
	}

	log := h.logger.WithFields(map[string]interface{}{
		"submissionId": submissionID,
		"key":          key,
	})
	log.Debug("submission received", map[string]interface{}{
		"fields": len(form),
	})

	outcome, err := h.submit(ctx, log, key, submissionID, form, elements)

	label := outcomeLabel(err)
	metrics.SubmissionsTotal.WithLabelValues(label).Inc()
	if h.recorder != nil {
		h.recorder.RecordSubmission(ctx, label)
		h.recorder.RecordSubmissionDuration(ctx, time.Since(start), label)
	}

	return outcome, err
}

func (h *Handler) submit(ctx context.Context, log logger.Logger, key, submissionID string, form FormInput, elements Elements) (*Outcome, error) {
	if err := Validate(form); err != nil {
		var inputErr *InputError
		if errors.As(err, &inputErr) {
			elements.Alerts.Alert(inputErr.Message)
			log.Info("submission rejected", map[string]interface{}{
				"field": inputErr.Field,
			})
		}
		return nil, err
	}

	req := BuildRequest(form)
	if malformed := req.Malformed(); len(malformed) > 0 {
		if h.config.RejectMalformedNumbers {
			inputErr := &InputError{
				Field:   strings.Join(malformed, ","),
				Message: fmt.Sprintf(msgMalformedNumbers, strings.Join(malformed, ", ")),
			}
			elements.Alerts.Alert(inputErr.Message)
			return nil, inputErr
		}
		log.Warn("payload has malformed numeric fields", map[string]interface{}{
			"fields": malformed,
		})
	}

	acquired, err := h.guard.Acquire(ctx, key)
	if err != nil {
		log.Error("in-flight guard unavailable", map[string]interface{}{
			"error": err,
		})
		elements.Alerts.Alert(MsgRequestFailed)
		return nil, fmt.Errorf("%w: %v", ErrGuardUnavailable, err)
	}
	if !acquired {
		elements.Alerts.Alert(MsgSubmissionInFlight)
		return nil, fmt.Errorf("%w: key %s", ErrSubmissionInFlight, key)
	}
	defer func() {
		if err := h.guard.Release(context.WithoutCancel(ctx), key); err != nil {
			log.Warn("failed to release in-flight key", map[string]interface{}{
				"error": err,
			})
		}
	}()

	restore := h.enterBusy(elements.Submit)
	defer restore()

	result, err := h.predictor.Predict(ctx, req)
	if err == nil && h.config.RejectOutOfRangeProbability {
		err = checkProbability(result.ChurnProbability)
	}
	if err != nil {
		log.Error("Prediction Error", map[string]interface{}{
			"error": err,
		})
		elements.Alerts.Alert(MsgRequestFailed)
		return nil, fmt.Errorf("%w: %v", ErrRequestFailed, err)
	}

	view := Render(result)
	apply(view, elements.Result)
	metrics.RiskRenderedTotal.WithLabelValues(string(view.Tier)).Inc()

	log.Info("risk rendered", map[string]interface{}{
		"tier":        view.Tier,
		"probability": view.ProbabilityText,
	})

	return &Outcome{
		SubmissionID: submissionID,
		Request:      req,
		Result:       result,
		View:         view,
	}, nil
}

// enterBusy disables the submit control and returns the function that restores it.
func (h *Handler) enterBusy(control SubmitControl) func() {
	original := control.Label()
	control.SetLabel(h.config.BusyLabel)
	control.SetDisabled(true)
	control.SetOpacity(BusyOpacity)
	metrics.SubmissionsInFlight.Inc()

	return func() {
		control.SetLabel(original)
		control.SetDisabled(false)
		control.SetOpacity(IdleOpacity)
		metrics.SubmissionsInFlight.Dec()
	}
}

func checkProbability(p float64) error {
	if math.IsNaN(p) || p < 0 || p > 1 {
		return fmt.Errorf("churn probability %v outside [0, 1]", p)
	}
	return nil
}

func outcomeLabel(err error) string {
	switch {
	case err == nil:
		return outcomeRendered
	case errors.Is(err, ErrInvalidInput):
		return outcomeInvalidInput
	case errors.Is(err, ErrSubmissionInFlight):
		return outcomeInFlight
	case errors.Is(err, ErrGuardUnavailable):
		return outcomeGuardUnavailable
	default:
		return outcomeRequestFailed
	}
}
