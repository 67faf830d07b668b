// Package llm provides LLM provider abstractions.
//
// LLM Provider interface - the abstract interface for LLM providers.
// Each provider implementation hides:
// - API client initialization and authentication
// - Request/response format conversion between the transcript model and the
//   provider's native message schema
// - Provider-specific error shapes (classified via ClassifyError)

package llm

import (
	"context"

	"github.com/serenityspa/concierge/model"
)

// Provider defines the abstract interface for LLM providers.
// Converse sends the transcript plus tool schemas and returns the model's
// next turn: a final answer or one or more tool-call requests.
type Provider interface {
	// Name returns the provider name (for logging/debugging).
	Name() string

	// Model returns the current model being used.
	Model() string

	// Converse sends the transcript with tool definitions and returns the
	// model's turn. The call blocks until the provider responds or fails.
	Converse(ctx context.Context, system string, transcript []model.Message, tools []ToolDefinition) (ModelTurn, error)
}

// Client wraps a Provider with a simple interface.
type Client struct {
	provider Provider
}

// NewClient creates a new LLM client from a provider.
func NewClient(provider Provider) *Client {
	return &Client{provider: provider}
}

// Converse delegates to the underlying provider.
func (c *Client) Converse(ctx context.Context, system string, transcript []model.Message, tools []ToolDefinition) (ModelTurn, error) {
	return c.provider.Converse(ctx, system, transcript, tools)
}

// Provider returns the underlying provider.
func (c *Client) Provider() Provider {
	return c.provider
}
