// internal/workers/scoring/assess-churn-risk/models.go
package assesschurnrisk

import (
	"churn-console/internal/prediction"
	"churn-console/internal/submission"
)

// Input is the customer carried by the process instance.
type Input struct {
	Customer      submission.FormInput
	SubmissionKey string
}

// Output is written back as process variables. churnProbability is null when the service
// sent no usable number.
type Output struct {
	SubmissionID     string           `json:"submissionId"`
	ChurnProbability prediction.Float `json:"churnProbability"`
	RiskCategory     string           `json:"riskCategory"`
	RiskLabel        string           `json:"riskLabel"`
	ProbabilityText  string           `json:"probabilityText"`
	Explanation      string           `json:"explanation"`
	Tier             string           `json:"tier"`
}
