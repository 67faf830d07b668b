// Engine configuration types.
//
// Information Hiding:
// - Default values hidden behind DefaultConfig

package engine

import "time"

// Default tuning values.
const (
	DefaultMaxRounds        = 8
	DefaultRetryAttempts    = 3
	DefaultRetryBaseBackoff = 500 * time.Millisecond
	DefaultRetryMaxBackoff  = 5 * time.Second
	DefaultModelTimeout     = 60 * time.Second
	DefaultHistoryLimit     = 40
)

// DefaultFallbackAnswer is returned when the round budget runs out before
// the model produces a final answer.
const DefaultFallbackAnswer = "I wasn't able to finish looking that up. Could you rephrase your question or ask about something more specific?"

// Config holds engine configuration.
type Config struct {
	// SystemPrompt guides the assistant's behavior.
	SystemPrompt string

	// MaxRounds caps model round trips per run. When exhausted the run
	// resolves with FallbackAnswer instead of an error.
	MaxRounds int

	// RetryAttempts is the number of model call attempts per round.
	RetryAttempts int

	// RetryBaseBackoff is the delay before the first retry. It doubles per
	// attempt, capped at RetryMaxBackoff.
	RetryBaseBackoff time.Duration

	// RetryMaxBackoff caps the per-attempt backoff delay.
	RetryMaxBackoff time.Duration

	// ModelTimeout bounds a single model call.
	ModelTimeout time.Duration

	// FallbackAnswer replaces the final answer when MaxRounds is exhausted.
	FallbackAnswer string

	// HistoryLimit caps how many stored messages are rendered to the model.
	// The full transcript is always persisted; only the model view is
	// trimmed. Zero means unlimited.
	HistoryLimit int
}

// DefaultConfig returns a configuration with sensible defaults.
func DefaultConfig() Config {
	return Config{
		MaxRounds:        DefaultMaxRounds,
		RetryAttempts:    DefaultRetryAttempts,
		RetryBaseBackoff: DefaultRetryBaseBackoff,
		RetryMaxBackoff:  DefaultRetryMaxBackoff,
		ModelTimeout:     DefaultModelTimeout,
		FallbackAnswer:   DefaultFallbackAnswer,
		HistoryLimit:     DefaultHistoryLimit,
	}
}

// withDefaults fills zero fields with defaults.
func (c Config) withDefaults() Config {
	if c.MaxRounds <= 0 {
		c.MaxRounds = DefaultMaxRounds
	}
	if c.RetryAttempts <= 0 {
		c.RetryAttempts = DefaultRetryAttempts
	}
	if c.RetryBaseBackoff <= 0 {
		c.RetryBaseBackoff = DefaultRetryBaseBackoff
	}
	if c.RetryMaxBackoff <= 0 {
		c.RetryMaxBackoff = DefaultRetryMaxBackoff
	}
	if c.ModelTimeout <= 0 {
		c.ModelTimeout = DefaultModelTimeout
	}
	if c.FallbackAnswer == "" {
		c.FallbackAnswer = DefaultFallbackAnswer
	}
	return c
}
