// Package llm provides shared data models for LLM providers.
package llm

import "encoding/json"

// ToolDefinition defines a tool that the model may call.
type ToolDefinition struct {
	Name        string                 `json:"name"`
	Description string                 `json:"description"`
	Parameters  map[string]interface{} `json:"parameters"` // JSON Schema
}

// ToolCallRequest is one tool invocation requested by the model.
// The ID is assigned by the provider and is unique within a round.
type ToolCallRequest struct {
	ID        string          `json:"id"`
	Name      string          `json:"name"`
	Arguments json.RawMessage `json:"arguments"`
}

// ModelTurn is one model response: either a final textual answer or a list
// of tool-call requests (possibly accompanied by text).
type ModelTurn struct {
	Answer       string
	ToolRequests []ToolCallRequest
	Usage        *TokenUsage
}

// IsFinal reports whether the turn carries no tool requests.
func (t ModelTurn) IsFinal() bool {
	return len(t.ToolRequests) == 0
}

// TokenUsage contains token usage statistics.
type TokenUsage struct {
	PromptTokens     uint32
	CompletionTokens uint32
	TotalTokens      uint32
}
