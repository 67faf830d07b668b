// Tool executor with argument validation.
//
// Information Hiding:
// - Argument decoding and schema validation hidden
// - Backend failures contained and classified, never propagated as faults

package tools

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/rs/zerolog"
	"github.com/serenityspa/concierge/model"
)

// DefaultToolTimeout bounds a single backend call when no timeout is
// configured.
const DefaultToolTimeout = 10 * time.Second

// Executor validates and dispatches tool calls against the registry.
// Any failure is returned in-band as a Result; Execute never panics and
// never returns an error to the caller.
type Executor struct {
	registry *Registry
	timeout  time.Duration
	log      zerolog.Logger
}

// NewExecutor creates an executor over the given registry.
func NewExecutor(registry *Registry, timeout time.Duration, log zerolog.Logger) *Executor {
	if timeout <= 0 {
		timeout = DefaultToolTimeout
	}
	return &Executor{registry: registry, timeout: timeout, log: log}
}

// Execute runs the named tool with the given arguments.
func (e *Executor) Execute(ctx context.Context, call model.ToolUseBlock) Result {
	started := time.Now()

	tool, exists := e.registry.Get(call.Name)
	if !exists {
		e.log.Warn().Str("tool", call.Name).Msg("unknown tool requested")
		return FailureResult(call.ID, KindUnknownTool, "unknown tool %q", call.Name)
	}

	args, err := decodeArguments(call.Arguments)
	if err != nil {
		return FailureResult(call.ID, KindInvalidArguments, "arguments for %q are not a JSON object: %v", call.Name, err)
	}

	if err := validateArguments(tool.Spec(), args); err != nil {
		return FailureResult(call.ID, KindInvalidArguments, "invalid arguments for %q: %v", call.Name, err)
	}

	callCtx, cancel := context.WithTimeout(ctx, e.timeout)
	defer cancel()

	output, err := tool.Execute(callCtx, args)
	elapsed := time.Since(started)
	if err != nil {
		e.log.Warn().
			Str("tool", call.Name).
			Dur("elapsed", elapsed).
			Err(err).
			Msg("tool backend call failed")
		if errors.Is(err, context.DeadlineExceeded) {
			return FailureResult(call.ID, KindBackendFailure, "tool %q timed out after %s", call.Name, e.timeout)
		}
		return FailureResult(call.ID, KindBackendFailure, "tool %q failed: %v", call.Name, err)
	}

	e.log.Debug().
		Str("tool", call.Name).
		Dur("elapsed", elapsed).
		Int("output_bytes", len(output)).
		Msg("tool executed")

	return SuccessResult(call.ID, output)
}

// decodeArguments decodes the raw JSON arguments into a map.
// Nil or empty arguments decode to an empty map.
func decodeArguments(raw json.RawMessage) (map[string]interface{}, error) {
	if len(raw) == 0 {
		return map[string]interface{}{}, nil
	}
	var args map[string]interface{}
	if err := json.Unmarshal(raw, &args); err != nil {
		return nil, err
	}
	if args == nil {
		args = map[string]interface{}{}
	}
	return args, nil
}

// validateArguments checks required parameters and JSON type compatibility
// against the spec.
func validateArguments(spec Spec, args map[string]interface{}) error {
	known := make(map[string]Parameter, len(spec.Parameters))
	for _, p := range spec.Parameters {
		known[p.Name] = p
		value, present := args[p.Name]
		if !present {
			if p.Required {
				return fmt.Errorf("missing required parameter %q", p.Name)
			}
			continue
		}
		if err := checkType(p, value); err != nil {
			return err
		}
	}

	for name := range args {
		if _, ok := known[name]; !ok {
			return fmt.Errorf("unexpected parameter %q", name)
		}
	}
	return nil
}

// checkType verifies a decoded JSON value against the declared parameter
// type. JSON numbers decode to float64.
func checkType(p Parameter, value interface{}) error {
	switch p.Type {
	case TypeString:
		if _, ok := value.(string); !ok {
			return fmt.Errorf("parameter %q must be a string, got %T", p.Name, value)
		}
	case TypeNumber:
		if _, ok := value.(float64); !ok {
			return fmt.Errorf("parameter %q must be a number, got %T", p.Name, value)
		}
	case TypeBoolean:
		if _, ok := value.(bool); !ok {
			return fmt.Errorf("parameter %q must be a boolean, got %T", p.Name, value)
		}
	default:
		return fmt.Errorf("parameter %q has unsupported declared type %q", p.Name, p.Type)
	}
	return nil
}
