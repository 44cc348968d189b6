// internal/workers/scoring/assess-churn-risk/config.go
package assesschurnrisk

import (
	"time"

	"churn-console/internal/common/config"
)

type Config struct {
	// Timeout bounds one job, prediction request included. Zero leaves it to the job deadline.
	Timeout time.Duration
}

func LoadConfig(cfg config.WorkerConfig) *Config {
	return &Config{
		Timeout: config.GetDuration(cfg.Timeout),
	}
}
