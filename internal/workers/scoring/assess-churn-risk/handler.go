// internal/workers/scoring/assess-churn-risk/handler.go
package assesschurnrisk

import (
	"context"
	"encoding/json"
	"strconv"

	"churn-console/internal/common/errors"
	"churn-console/internal/common/logger"
	"churn-console/internal/common/metrics"
	"churn-console/internal/prediction"
	"churn-console/internal/submission"

	"github.com/camunda/zeebe/clients/go/v8/pkg/entities"
	"github.com/camunda/zeebe/clients/go/v8/pkg/worker"
)

const (
	TaskType = "assess-churn-risk"
)

// Submitter runs one submission. *submission.Handler implements it.
type Submitter interface {
	Submit(ctx context.Context, key string, form submission.FormInput, elements submission.Elements) (*submission.Outcome, error)
}

type Handler struct {
	config       *Config
	submitter    Submitter
	errorHandler *errors.ErrorHandler
	logger       logger.Logger
}

func NewHandler(config *Config, submitter Submitter, log logger.Logger) *Handler {
	return &Handler{
		config:       config,
		submitter:    submitter,
		errorHandler: errors.NewErrorHandler(log),
		logger:       log.WithFields(map[string]interface{}{"taskType": TaskType}),
	}
}

func (h *Handler) Handle(client worker.JobClient, job entities.Job) error {
	h.logger.Info("processing job", map[string]interface{}{
		"jobKey":      job.Key,
		"workflowKey": job.ProcessInstanceKey,
	})

	input, err := h.parseInput(job)
	if err != nil {
		h.fail(client, job, err)
		return nil
	}

	output, err := h.executeWithTimeout(input)
	if err != nil {
		h.fail(client, job, submission.ToStandardError(err))
		return nil
	}

	return h.completeJob(client, job, output)
}

// executeWithTimeout bounds the assessment only. Job commands are sent on their own context.
func (h *Handler) executeWithTimeout(input *Input) (*Output, error) {
	ctx := context.Background()
	if h.config.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, h.config.Timeout)
		defer cancel()
	}
	return h.Execute(ctx, input)
}

// parseInput reads the customer fields from the job variables. Nested values belong to the
// process, not the customer, and are skipped.
func (h *Handler) parseInput(job entities.Job) (*Input, error) {
	var variables map[string]interface{}
	if err := json.Unmarshal([]byte(job.Variables), &variables); err != nil {
		return nil, errors.NewInvalidJobPayloadError(err)
	}

	scalars := make(map[string]interface{}, len(variables))
	for name, value := range variables {
		switch value.(type) {
		case map[string]interface{}, []interface{}:
			continue
		}
		scalars[name] = value
	}

	form, err := submission.FormFromJSON(scalars)
	if err != nil {
		return nil, submission.ToStandardError(err)
	}

	return &Input{
		Customer:      form,
		SubmissionKey: strconv.FormatInt(job.ProcessInstanceKey, 10),
	}, nil
}

func (h *Handler) Execute(ctx context.Context, input *Input) (*Output, error) {
	elements := &jobElements{}
	outcome, err := h.submitter.Submit(ctx, input.SubmissionKey, input.Customer, elements.handles())
	if err != nil {
		h.logger.Warn("assessment failed", map[string]interface{}{
			"error":  err.Error(),
			"alerts": elements.alerts,
		})
		return nil, err
	}

	return &Output{
		SubmissionID:     outcome.SubmissionID,
		ChurnProbability: prediction.Float{Value: outcome.Result.ChurnProbability, Valid: true},
		RiskCategory:     outcome.Result.RiskCategory,
		RiskLabel:        outcome.View.Label,
		ProbabilityText:  outcome.View.ProbabilityText,
		Explanation:      outcome.View.Explanation,
		Tier:             string(outcome.View.Tier),
	}, nil
}

func (h *Handler) completeJob(client worker.JobClient, job entities.Job, output *Output) error {
	cmd, err := client.NewCompleteJobCommand().
		JobKey(job.Key).
		VariablesFromObject(output)
	if err != nil {
		h.logger.Error("failed to create complete job command", map[string]interface{}{
			"error": err,
		})
		return err
	}
	if _, err := cmd.Send(context.Background()); err != nil {
		h.logger.Error("failed to send complete job command", map[string]interface{}{
			"error": err,
		})
		return err
	}

	metrics.WorkerJobsCompleted.WithLabelValues(TaskType).Inc()
	return nil
}

func (h *Handler) fail(client worker.JobClient, job entities.Job, err error) {
	stdErr := errors.Normalize(err)
	metrics.WorkerJobsFailed.WithLabelValues(TaskType, string(stdErr.Code)).Inc()
	h.errorHandler.HandleJobError(context.Background(), client, job, stdErr)
}

// jobElements stands in for the page when there is no user to show anything to. Alerts are
// kept for the log.
type jobElements struct {
	label  string
	alerts []string
}

func (e *jobElements) handles() submission.Elements {
	return submission.Elements{
		Submit: (*jobButton)(e),
		Result: jobPanel{},
		Alerts: (*jobAlerts)(e),
	}
}

type jobButton jobElements

func (b *jobButton) Label() string         { return b.label }
func (b *jobButton) SetLabel(label string) { b.label = label }
func (b *jobButton) SetDisabled(bool)      {}
func (b *jobButton) SetOpacity(string)     {}

type jobPanel struct{}

func (jobPanel) Reveal()                       {}
func (jobPanel) SetProbability(string, string) {}
func (jobPanel) ResetTier()                    {}
func (jobPanel) ApplyTier(submission.RiskView) {}
func (jobPanel) ScrollIntoView(string, string) {}

type jobAlerts jobElements

func (a *jobAlerts) Alert(message string) { a.alerts = append(a.alerts, message) }
