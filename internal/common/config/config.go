// internal/common/config/config.go
package config

// DefaultPredictionBaseURL is the origin of the prediction service when nothing overrides it.
const DefaultPredictionBaseURL = "http://localhost:8000"

// Config is the main application configuration struct.
type Config struct {
	App           AppConfig               `mapstructure:"app"`
	Server        ServerConfig            `mapstructure:"server"`
	PredictionAPI PredictionAPIConfig     `mapstructure:"prediction_api"`
	Submission    SubmissionConfig        `mapstructure:"submission"`
	Redis         RedisConfig             `mapstructure:"redis"`
	Camunda       CamundaConfig           `mapstructure:"camunda"`
	Workers       map[string]WorkerConfig `mapstructure:"workers"`
	Logging       LoggingConfig           `mapstructure:"logging"`
	Tracing       TracingConfig           `mapstructure:"tracing"`
}

// --- Core App/Infrastructure Config ---
type AppConfig struct {
	Name        string `mapstructure:"name"`
	Version     string `mapstructure:"version"`
	Environment string `mapstructure:"environment"`
}

// ServerConfig holds the console HTTP listener settings.
type ServerConfig struct {
	Address         string   `mapstructure:"address"`
	ShutdownTimeout int      `mapstructure:"shutdown_timeout"` // milliseconds
	AllowedOrigins  []string `mapstructure:"allowed_origins"`
	MetricsEnabled  bool     `mapstructure:"metrics_enabled"`
	SecureCookies   bool     `mapstructure:"secure_cookies"`
}

// PredictionAPIConfig points at the external prediction service.
type PredictionAPIConfig struct {
	BaseURL         string `mapstructure:"base_url"`
	Timeout         int    `mapstructure:"timeout"` // milliseconds, 0 waits indefinitely
	StrictResponses bool   `mapstructure:"strict_responses"`
}

// SubmissionConfig holds settings for the submission handler.
type SubmissionConfig struct {
	BusyLabel                   string `mapstructure:"busy_label"`
	Guard                       string `mapstructure:"guard"`         // memory | redis
	InFlightTTL                 int    `mapstructure:"in_flight_ttl"` // milliseconds
	RejectMalformedNumbers      bool   `mapstructure:"reject_malformed_numbers"`
	RejectOutOfRangeProbability bool   `mapstructure:"reject_out_of_range_probability"`
}

type RedisConfig struct {
	Address  string `mapstructure:"address"`
	Password string `mapstructure:"password"`
	DB       int    `mapstructure:"db"`
}

type CamundaConfig struct {
	Enabled        bool   `mapstructure:"enabled"`
	BrokerAddress  string `mapstructure:"broker_address"`
	Timeout        int    `mapstructure:"timeout"`         // milliseconds
	RequestTimeout int    `mapstructure:"request_timeout"` // milliseconds
}

// WorkerConfig holds the core settings applicable to every job worker.
type WorkerConfig struct {
	Enabled       bool `mapstructure:"enabled"`
	MaxJobsActive int  `mapstructure:"max_jobs_active"`
	Timeout       int  `mapstructure:"timeout"` // milliseconds
}

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
	Output string `mapstructure:"output"`
}

// TracingConfig enables span export. An empty endpoint keeps spans in-process.
type TracingConfig struct {
	OTLPEndpoint string `mapstructure:"otlp_endpoint"`
}
