// Package tools provides the tool system for the concierge.
//
// Information Hiding:
// - Tool execution details hidden behind the Tool interface
// - Parameter schemas declared once and rendered per consumer
// - Error classification internalized in the executor
package tools

import (
	"context"
	"fmt"
)

// Parameter types supported by tool schemas.
const (
	TypeString  = "string"
	TypeNumber  = "number"
	TypeBoolean = "boolean"
)

// Parameter defines one parameter of a tool schema.
type Parameter struct {
	Name        string `json:"name"`
	Type        string `json:"type"`
	Description string `json:"description"`
	Required    bool   `json:"required"`
}

// Spec describes what a tool does and how to call it.
// Immutable once a registry is built.
type Spec struct {
	Name        string      `json:"name"`
	Description string      `json:"description"`
	Parameters  []Parameter `json:"parameters"`
}

// String returns a short representation of the spec.
func (s Spec) String() string {
	return fmt.Sprintf("%s: %s", s.Name, s.Description)
}

// InputSchema renders the spec as a JSON-schema-shaped map for model
// providers.
func (s Spec) InputSchema() map[string]interface{} {
	properties := make(map[string]interface{}, len(s.Parameters))
	required := []string{}
	for _, p := range s.Parameters {
		properties[p.Name] = map[string]interface{}{
			"type":        p.Type,
			"description": p.Description,
		}
		if p.Required {
			required = append(required, p.Name)
		}
	}
	return map[string]interface{}{
		"type":       "object",
		"properties": properties,
		"required":   required,
	}
}

// ErrorKind classifies a failed tool execution.
type ErrorKind string

const (
	// KindUnknownTool means the requested tool name is not registered.
	KindUnknownTool ErrorKind = "unknown_tool"
	// KindInvalidArguments means a required argument is missing or malformed.
	KindInvalidArguments ErrorKind = "invalid_arguments"
	// KindBackendFailure means the catalog backend call failed or timed out.
	KindBackendFailure ErrorKind = "backend_failure"
)

// Result is the outcome of one tool execution. Exactly one of Content or
// Err is meaningful, selected by Kind being empty or set.
type Result struct {
	ToolUseID string    `json:"tool_use_id"`
	Content   string    `json:"content,omitempty"`
	Err       string    `json:"error,omitempty"`
	Kind      ErrorKind `json:"kind,omitempty"`
}

// IsError reports whether the execution failed.
func (r Result) IsError() bool {
	return r.Kind != ""
}

// Payload returns the content to hand back to the model: the success output
// or the error description.
func (r Result) Payload() string {
	if r.IsError() {
		return r.Err
	}
	return r.Content
}

// SuccessResult creates a successful result.
func SuccessResult(toolUseID, content string) Result {
	return Result{ToolUseID: toolUseID, Content: content}
}

// FailureResult creates a failed result with the given kind.
func FailureResult(toolUseID string, kind ErrorKind, format string, args ...interface{}) Result {
	return Result{ToolUseID: toolUseID, Kind: kind, Err: fmt.Sprintf(format, args...)}
}

// Tool is the interface all concierge tools implement. Tools are read-only
// lookups: Execute must not mutate shared state.
type Tool interface {
	// Spec returns the tool schema (name, description, parameters).
	Spec() Spec

	// Execute runs the tool with decoded arguments.
	Execute(ctx context.Context, args map[string]interface{}) (string, error)
}
