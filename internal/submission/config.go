// internal/submission/config.go
package submission

import "churn-console/internal/common/config"

const DefaultBusyLabel = "Analyzing Risk..."

type Config struct {
	BusyLabel                   string
	RejectMalformedNumbers      bool
	RejectOutOfRangeProbability bool
}

func LoadConfig(cfg config.SubmissionConfig) *Config {
	c := &Config{
		BusyLabel:                   cfg.BusyLabel,
		RejectMalformedNumbers:      cfg.RejectMalformedNumbers,
		RejectOutOfRangeProbability: cfg.RejectOutOfRangeProbability,
	}
	if c.BusyLabel == "" {
		c.BusyLabel = DefaultBusyLabel
	}
	return c
}
