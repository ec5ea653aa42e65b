package config

import "time"

// Config holds all application configuration.
// It organizes settings into logical groups for better maintainability.
type Config struct {
	Server  ServerConfig  `mapstructure:"server" validate:"required"`
	LLM     LLMConfig     `mapstructure:"llm" validate:"required"`
	Metrics MetricsConfig `mapstructure:"metrics"`
}

// ServerConfig contains all server-related configuration settings.
type ServerConfig struct {
	Port     int    `mapstructure:"port" validate:"required,gt=0,lt=65536"`
	LogLevel string `mapstructure:"log_level" validate:"required,oneof=debug info warn error"`

	// WriteTimeout must cover a quality-tier call plus a full fast-tier
	// fallback with retries; Load raises it to LLMConfig.WorstCaseLatency
	// plus a margin when configured lower.
	ReadTimeout     time.Duration `mapstructure:"read_timeout" validate:"gt=0"`
	WriteTimeout    time.Duration `mapstructure:"write_timeout" validate:"gt=0"`
	ShutdownTimeout time.Duration `mapstructure:"shutdown_timeout" validate:"gt=0"`
}

// LLMConfig contains all LLM integration related settings.
type LLMConfig struct {
	// GeminiAPIKey is the server-side fallback credential. Optional: clients
	// may send their own key with each request.
	GeminiAPIKey string `mapstructure:"gemini_api_key"`

	BaseURL      string `mapstructure:"base_url" validate:"required,url"`
	FastModel    string `mapstructure:"fast_model" validate:"required"`
	QualityModel string `mapstructure:"quality_model" validate:"required"`

	FastTimeout    time.Duration `mapstructure:"fast_timeout" validate:"gt=0"`
	QualityTimeout time.Duration `mapstructure:"quality_timeout" validate:"gt=0"`

	// MaxRetries is the number of additional fast-tier attempts after the first.
	MaxRetries     int           `mapstructure:"max_retries" validate:"gte=0,lte=10"`
	RetryBaseDelay time.Duration `mapstructure:"retry_base_delay" validate:"gte=0"`
}

// MetricsConfig controls the admin listener serving Prometheus metrics.
type MetricsConfig struct {
	// Port of the admin listener; 0 disables it.
	Port int `mapstructure:"port" validate:"gte=0,lt=65536"`
}

// WorstCaseLatency is the longest a quality-tier completion can take before
// the client gives up: both auth strategies on the quality tier, then every
// fast-tier attempt with both strategies and the linear backoff between them.
func (c LLMConfig) WorstCaseLatency() time.Duration {
	attempts := time.Duration(c.MaxRetries + 1)
	backoff := c.RetryBaseDelay * time.Duration(c.MaxRetries*(c.MaxRetries+1)/2)
	return 2*c.QualityTimeout + attempts*2*c.FastTimeout + backoff
}
