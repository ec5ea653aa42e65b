package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/spf13/viper"
)

// EnvPrefix is the prefix of environment variables overriding config keys,
// e.g. STORYFORGE_SERVER_PORT for server.port.
const EnvPrefix = "STORYFORGE"

// Default values applied before any file or environment override.
const (
	DefaultPort            = 3000
	DefaultLogLevel        = "info"
	DefaultBaseURL         = "https://generativelanguage.googleapis.com/v1beta"
	DefaultFastModel       = "gemini-2.0-flash"
	DefaultQualityModel    = "gemini-2.5-pro"
	DefaultFastTimeout     = 30 * time.Second
	DefaultQualityTimeout  = 120 * time.Second
	DefaultMaxRetries      = 3
	DefaultRetryBaseDelay  = time.Second
	DefaultReadTimeout     = 30 * time.Second
	DefaultWriteTimeout    = 10 * time.Minute
	DefaultShutdownTimeout = 10 * time.Second
)

// writeTimeoutMargin is headroom above the model client's worst case for
// building and writing the response.
const writeTimeoutMargin = 30 * time.Second

// Load configuration from environment variables and optionally config files.
// Environment variables take precedence over values from config files.
// Returns a populated Config struct or an error if loading/validation fails.
func Load() (*Config, error) {
	return LoadWithViper(viper.New())
}

// LoadWithViper loads configuration using the supplied viper instance, which
// lets tests point it at a specific config file.
func LoadWithViper(v *viper.Viper) (*Config, error) {
	setDefaults(v)

	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// Conventional names used by hosting platforms and the Gemini tooling.
	if err := v.BindEnv("llm.gemini_api_key", EnvPrefix+"_LLM_GEMINI_API_KEY", "GEMINI_API_KEY"); err != nil {
		return nil, fmt.Errorf("failed to bind API key environment: %w", err)
	}
	if err := v.BindEnv("server.port", EnvPrefix+"_SERVER_PORT", "PORT"); err != nil {
		return nil, fmt.Errorf("failed to bind port environment: %w", err)
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	if err := validator.New().Struct(cfg); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	// A response cut off mid-retry reaches the client as EOF instead of the
	// fallback payload.
	if minWrite := cfg.LLM.WorstCaseLatency() + writeTimeoutMargin; cfg.Server.WriteTimeout < minWrite {
		cfg.Server.WriteTimeout = minWrite
	}

	return &cfg, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("server.port", DefaultPort)
	v.SetDefault("server.log_level", DefaultLogLevel)
	v.SetDefault("server.read_timeout", DefaultReadTimeout)
	v.SetDefault("server.write_timeout", DefaultWriteTimeout)
	v.SetDefault("server.shutdown_timeout", DefaultShutdownTimeout)

	v.SetDefault("llm.gemini_api_key", "")
	v.SetDefault("llm.base_url", DefaultBaseURL)
	v.SetDefault("llm.fast_model", DefaultFastModel)
	v.SetDefault("llm.quality_model", DefaultQualityModel)
	v.SetDefault("llm.fast_timeout", DefaultFastTimeout)
	v.SetDefault("llm.quality_timeout", DefaultQualityTimeout)
	v.SetDefault("llm.max_retries", DefaultMaxRetries)
	v.SetDefault("llm.retry_base_delay", DefaultRetryBaseDelay)

	v.SetDefault("metrics.port", 0)
}
