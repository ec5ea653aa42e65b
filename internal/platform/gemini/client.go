package gemini

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/go-resty/resty/v2"
	"github.com/phrazzld/storyforge-api/internal/config"
	"github.com/phrazzld/storyforge-api/internal/generation"
	"github.com/phrazzld/storyforge-api/internal/platform/metrics"
	"github.com/phrazzld/storyforge-api/internal/redact"
)

// Client calls the Gemini generateContent endpoint. It is safe for concurrent
// use; credentials are passed per call and never stored.
type Client struct {
	logger     *slog.Logger
	http       *resty.Client
	tiers      map[generation.Tier]tierConfig
	auth       []authStrategy
	maxRetries int
	baseDelay  time.Duration
	sleep      func(ctx context.Context, d time.Duration) error
	metrics    *metrics.Recorder
}

// Compile-time checks.
var (
	_ generation.ModelClient      = (*Client)(nil)
	_ generation.CredentialProber = (*Client)(nil)
)

// Option customizes a Client.
type Option func(*Client)

// WithHTTPClient sends requests through hc instead of a default client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		c.http = resty.NewWithClient(hc)
	}
}

// WithSleep replaces the backoff wait, mainly for tests.
func WithSleep(sleep func(ctx context.Context, d time.Duration) error) Option {
	return func(c *Client) {
		c.sleep = sleep
	}
}

// WithMetrics records call outcomes, retries and tier fallbacks.
func WithMetrics(m *metrics.Recorder) Option {
	return func(c *Client) {
		c.metrics = m
	}
}

// NewClient creates a Client from the LLM configuration.
func NewClient(logger *slog.Logger, cfg config.LLMConfig, opts ...Option) (*Client, error) {
	if logger == nil {
		return nil, fmt.Errorf("%w: logger cannot be nil", generation.ErrInvalidConfig)
	}
	if cfg.BaseURL == "" {
		return nil, fmt.Errorf("%w: base URL cannot be empty", generation.ErrInvalidConfig)
	}
	if cfg.FastModel == "" || cfg.QualityModel == "" {
		return nil, fmt.Errorf("%w: both fast and quality models are required", generation.ErrInvalidConfig)
	}
	if cfg.FastTimeout <= 0 || cfg.QualityTimeout <= 0 {
		return nil, fmt.Errorf("%w: tier timeouts must be positive", generation.ErrInvalidConfig)
	}
	if cfg.MaxRetries < 0 || cfg.RetryBaseDelay < 0 {
		return nil, fmt.Errorf("%w: retry settings cannot be negative", generation.ErrInvalidConfig)
	}

	c := &Client{
		logger: logger.With("component", "gemini_client"),
		tiers: map[generation.Tier]tierConfig{
			generation.TierFast:    {model: cfg.FastModel, timeout: cfg.FastTimeout},
			generation.TierQuality: {model: cfg.QualityModel, timeout: cfg.QualityTimeout},
		},
		auth:       authStrategies,
		maxRetries: cfg.MaxRetries,
		baseDelay:  cfg.RetryBaseDelay,
		sleep:      sleepContext,
	}
	for _, opt := range opts {
		opt(c)
	}
	if c.http == nil {
		c.http = resty.New()
	}

	c.http.
		SetBaseURL(strings.TrimRight(cfg.BaseURL, "/")).
		SetHeader("Content-Type", "application/json").
		SetLogger(restyLogger{logger: c.logger})

	return c, nil
}

// Complete sends prompt to the given tier and returns the first candidate's
// text. Fast-tier calls are retried; quality-tier calls fall back to the fast
// tier and, when that fails too, return the quality-tier error.
func (c *Client) Complete(ctx context.Context, prompt, apiKey string, tier generation.Tier) (string, error) {
	if apiKey == "" {
		return "", generation.ErrMissingCredential
	}

	switch tier {
	case generation.TierFast:
		return c.completeWithRetry(ctx, prompt, apiKey)
	case generation.TierQuality:
		return c.completeWithTierFallback(ctx, prompt, apiKey)
	default:
		return "", fmt.Errorf("%w: unknown tier %q", generation.ErrInvalidConfig, tier)
	}
}

// Probe checks that apiKey can obtain a minimal fast-tier completion. It makes
// a single attempt without retries.
func (c *Client) Probe(ctx context.Context, apiKey string) error {
	if apiKey == "" {
		return generation.ErrMissingCredential
	}

	_, err := c.attempt(ctx, generation.ProbePrompt, apiKey, generation.TierFast)
	return err
}

func (c *Client) completeWithTierFallback(ctx context.Context, prompt, apiKey string) (string, error) {
	text, err := c.attempt(ctx, prompt, apiKey, generation.TierQuality)
	if err == nil {
		return text, nil
	}

	c.logger.WarnContext(ctx, "Quality tier failed, falling back to fast tier",
		"error", redact.Error(err))

	text, fallbackErr := c.completeWithRetry(ctx, prompt, apiKey)
	if fallbackErr == nil {
		c.metrics.IncTierFallback("success")
		return text, nil
	}

	c.metrics.IncTierFallback("failure")
	c.logger.ErrorContext(ctx, "Fast tier fallback failed, returning quality tier error",
		"error", redact.Error(err),
		"fallback_error", redact.Error(fallbackErr))

	// The quality-tier error is the one surfaced, even though the fallback
	// error may be more recent.
	return "", err
}

func (c *Client) completeWithRetry(ctx context.Context, prompt, apiKey string) (string, error) {
	attempts := c.maxRetries + 1

	var lastErr error
	for attempt := 1; attempt <= attempts; attempt++ {
		text, err := c.attempt(ctx, prompt, apiKey, generation.TierFast)
		if err == nil {
			if attempt > 1 {
				c.logger.InfoContext(ctx, "Model call succeeded after retry", "attempt", attempt)
			}
			return text, nil
		}
		lastErr = err

		if !generation.IsRetryable(err) {
			c.logger.WarnContext(ctx, "Terminal model error, not retrying",
				"attempt", attempt,
				"error", redact.Error(err))
			return "", err
		}
		if attempt == attempts {
			break
		}

		delay := time.Duration(attempt) * c.baseDelay
		c.logger.WarnContext(ctx, "Model call failed, retrying after delay",
			"attempt", attempt,
			"max_attempts", attempts,
			"delay", delay,
			"error", redact.Error(err))
		c.metrics.IncRetry(string(generation.TierFast))

		if err := c.sleep(ctx, delay); err != nil {
			return "", fmt.Errorf("retry wait interrupted: %w", lastErr)
		}
	}

	c.logger.ErrorContext(ctx, "Maximum retry attempts reached",
		"max_attempts", attempts,
		"error", redact.Error(lastErr))
	return "", fmt.Errorf("giving up after %d attempts: %w", attempts, lastErr)
}

// attempt performs one logical call, walking the authentication strategies.
func (c *Client) attempt(ctx context.Context, prompt, apiKey string, tier generation.Tier) (string, error) {
	var err error
	for i, strategy := range c.auth {
		var text string
		text, err = c.call(ctx, prompt, apiKey, tier, strategy)
		if err == nil {
			return text, nil
		}
		if !errors.Is(err, generation.ErrTransport) || i == len(c.auth)-1 {
			return "", err
		}

		c.logger.WarnContext(ctx, "Transport failure, switching authentication method",
			"tier", tier,
			"from", strategy.name,
			"to", c.auth[i+1].name,
			"error", redact.Error(err))
	}
	return "", err
}

// call performs one HTTP request under the tier's deadline.
func (c *Client) call(
	ctx context.Context,
	prompt, apiKey string,
	tier generation.Tier,
	strategy authStrategy,
) (string, error) {
	cfg, ok := c.tiers[tier]
	if !ok {
		return "", fmt.Errorf("%w: unknown tier %q", generation.ErrInvalidConfig, tier)
	}

	callCtx, cancel := context.WithTimeout(ctx, cfg.timeout)
	defer cancel()

	start := time.Now()
	req := c.http.R().
		SetContext(callCtx).
		SetBody(newGenerateContentRequest(prompt))
	strategy.apply(req, apiKey)

	c.logger.DebugContext(ctx, "Calling model",
		"tier", tier,
		"model", cfg.model,
		"auth", strategy.name,
		"prompt_length", len(prompt))

	var text string
	resp, err := req.Post("/models/" + cfg.model + ":generateContent")
	switch {
	case err != nil:
		err = transportError(callCtx, err)
	case !resp.IsSuccess():
		err = statusError(resp.StatusCode(), resp.Body())
	default:
		text, err = decodeResponse(resp.Body())
	}

	elapsed := time.Since(start)
	c.metrics.ObserveUpstreamCall(string(tier), strategy.name, outcomeLabel(err), elapsed)
	if err != nil {
		c.logger.DebugContext(ctx, "Model call failed",
			"tier", tier,
			"auth", strategy.name,
			"duration", elapsed,
			"error", redact.Error(err))
		return "", err
	}

	c.logger.DebugContext(ctx, "Model call succeeded",
		"tier", tier,
		"auth", strategy.name,
		"duration", elapsed,
		"text_length", len(text))
	return text, nil
}

func sleepContext(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return nil
	}
	timer := time.NewTimer(d)
	defer timer.Stop()

	select {
	case <-timer.C:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// restyLogger routes resty's internal messages to slog.
type restyLogger struct {
	logger *slog.Logger
}

func (l restyLogger) Errorf(format string, v ...interface{}) {
	l.logger.Error(redact.String(fmt.Sprintf(format, v...)))
}

func (l restyLogger) Warnf(format string, v ...interface{}) {
	l.logger.Warn(redact.String(fmt.Sprintf(format, v...)))
}

func (l restyLogger) Debugf(format string, v ...interface{}) {
	l.logger.Debug(redact.String(fmt.Sprintf(format, v...)))
}
