package llm

import (
	"fmt"
	"time"
)

// Config contains configuration for the generative text service client.
// The service speaks the OpenRouter-compatible chat-completions protocol.
type Config struct {
	// APIKey authenticates against the service
	APIKey string

	// BaseURL is the service API base URL
	// Default: https://openrouter.ai/api/v1
	BaseURL string

	// DefaultModel is the model used when a call does not name one
	DefaultModel string

	// Timeout is the HTTP request timeout
	// Default: 60 seconds (batch generation responses are large)
	Timeout time.Duration

	// MaxRetries is the maximum number of validation retries
	// Default: 3
	MaxRetries int
}

// Validate checks that required config fields are set.
func (c *Config) Validate() error {
	if c.APIKey == "" {
		return fmt.Errorf("APIKey is required")
	}
	if c.BaseURL == "" {
		return fmt.Errorf("BaseURL is required")
	}
	if c.DefaultModel == "" {
		return fmt.Errorf("DefaultModel is required")
	}
	return nil
}

// SetDefaults fills in default values for optional fields.
func (c *Config) SetDefaults() {
	if c.Timeout == 0 {
		c.Timeout = 60 * time.Second
	}
	if c.MaxRetries == 0 {
		c.MaxRetries = 3
	}
}
