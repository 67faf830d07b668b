// Conversation engine: the tool-use orchestration loop.
//
// This is THE canonical implementation of the loop.
// All conversation turns go through this module.
//
// Information Hiding:
// - Round loop internals hidden
// - Model retry and backoff policy hidden
// - Per-session serialization hidden
// - Persistence and version-conflict recovery hidden

package engine

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/rs/zerolog"
	"github.com/serenityspa/concierge/llm"
	"github.com/serenityspa/concierge/model"
	"github.com/serenityspa/concierge/storage"
	"github.com/serenityspa/concierge/tools"
)

// Engine drives one conversation turn: load history, run model rounds,
// execute requested tools, persist the outcome.
type Engine struct {
	config   Config
	client   *llm.Client
	registry *tools.Registry
	executor *tools.Executor
	store    storage.ConversationStore
	log      zerolog.Logger

	mu    sync.Mutex
	locks map[string]*sync.Mutex
}

// New creates an engine over the given provider, tools and store.
func New(config Config, provider llm.Provider, registry *tools.Registry, executor *tools.Executor, store storage.ConversationStore, log zerolog.Logger) *Engine {
	return &Engine{
		config:   config.withDefaults(),
		client:   llm.NewClient(provider),
		registry: registry,
		executor: executor,
		store:    store,
		log:      log,
		locks:    make(map[string]*sync.Mutex),
	}
}

// Config returns the effective engine configuration.
func (e *Engine) Config() Config {
	return e.config
}

// Run executes one conversation turn for a session and returns the
// assistant's reply. Runs for the same session are serialized; runs for
// different sessions proceed concurrently.
func (e *Engine) Run(ctx context.Context, sessionID, message string) (string, error) {
	if strings.TrimSpace(message) == "" {
		return "", fmt.Errorf("%w: empty message", ErrInvalidInput)
	}
	if sessionID == "" {
		return "", fmt.Errorf("%w: empty session ID", ErrInvalidInput)
	}

	lock := e.sessionLock(sessionID)
	lock.Lock()
	defer lock.Unlock()

	started := time.Now()

	history, version, err := e.store.Load(ctx, sessionID)
	if err != nil {
		return "", fmt.Errorf("%w: loading history: %v", ErrInternalFault, err)
	}

	userMsg := model.UserMessage(message)
	newMsgs := []model.Message{userMsg}
	transcript := append(append([]model.Message{}, history...), userMsg)

	definitions := e.toolDefinitions()

	for round := 1; round <= e.config.MaxRounds; round++ {
		turn, err := e.converse(ctx, transcript, definitions)
		if err != nil {
			return "", err
		}

		if turn.IsFinal() {
			answer := strings.TrimSpace(turn.Answer)
			if answer == "" {
				e.log.Error().
					Str("session", sessionID).
					Int("round", round).
					Msg("model turn carried neither answer nor tool requests")
				return "", fmt.Errorf("%w: model turn carried neither answer nor tool requests", ErrInternalFault)
			}

			newMsgs = append(newMsgs, model.AssistantText(answer))
			if err := e.persist(ctx, sessionID, newMsgs, version); err != nil {
				return "", err
			}

			e.log.Info().
				Str("session", sessionID).
				Int("rounds", round).
				Dur("elapsed", time.Since(started)).
				Msg("run completed")
			return answer, nil
		}

		assistantMsg, toolMsg := e.executeRound(ctx, sessionID, round, turn)
		newMsgs = append(newMsgs, assistantMsg, toolMsg)
		transcript = append(transcript, assistantMsg, toolMsg)
	}

	// Round budget exhausted. Resolve with the fallback answer rather than
	// an error so the session stays usable.
	e.log.Warn().
		Str("session", sessionID).
		Int("max_rounds", e.config.MaxRounds).
		Msg("round budget exhausted, answering with fallback")

	newMsgs = append(newMsgs, model.AssistantText(e.config.FallbackAnswer))
	if err := e.persist(ctx, sessionID, newMsgs, version); err != nil {
		return "", err
	}
	return e.config.FallbackAnswer, nil
}

// executeRound runs every tool the turn requested, in request order, and
// returns the assistant and tool messages for the transcript. Tool failures
// ride in-band as error results; they never abort the round.
func (e *Engine) executeRound(ctx context.Context, sessionID string, round int, turn llm.ModelTurn) (model.Message, model.Message) {
	uses := make([]model.ToolUseBlock, 0, len(turn.ToolRequests))
	for _, req := range turn.ToolRequests {
		uses = append(uses, model.ToolUseBlock{
			ID:        req.ID,
			Name:      req.Name,
			Arguments: req.Arguments,
		})
	}

	results := make([]model.ToolResultBlock, 0, len(uses))
	for _, use := range uses {
		result := e.executor.Execute(ctx, use)
		results = append(results, model.ToolResultBlock{
			ToolUseID: result.ToolUseID,
			Content:   result.Payload(),
			IsError:   result.IsError(),
		})
	}

	e.log.Debug().
		Str("session", sessionID).
		Int("round", round).
		Int("tool_calls", len(uses)).
		Msg("round executed")

	return model.AssistantToolUse(turn.Answer, uses), model.ToolResults(results)
}

// converse calls the model with retry and exponential backoff. Only
// transient failures are retried; a fatally rejected request maps to
// ErrInternalFault, an exhausted retry budget to ErrUpstreamUnavailable.
func (e *Engine) converse(ctx context.Context, transcript []model.Message, definitions []llm.ToolDefinition) (llm.ModelTurn, error) {
	rendered := e.renderTranscript(transcript)

	var lastErr error
	for attempt := 0; attempt < e.config.RetryAttempts; attempt++ {
		if attempt > 0 {
			delay := e.backoffDelay(attempt - 1)
			select {
			case <-time.After(delay):
			case <-ctx.Done():
				return llm.ModelTurn{}, fmt.Errorf("%w: %v", ErrUpstreamUnavailable, ctx.Err())
			}
		}

		callCtx, cancel := context.WithTimeout(ctx, e.config.ModelTimeout)
		turn, err := e.client.Converse(callCtx, e.config.SystemPrompt, rendered, definitions)
		cancel()
		if err == nil {
			return turn, nil
		}

		kind := llm.ClassifyError(err)
		e.log.Warn().
			Int("attempt", attempt+1).
			Str("kind", kind.String()).
			Err(err).
			Msg("model call failed")

		if !kind.Retryable() {
			return llm.ModelTurn{}, fmt.Errorf("%w: model rejected request: %v", ErrInternalFault, err)
		}
		if ctx.Err() != nil {
			return llm.ModelTurn{}, fmt.Errorf("%w: %v", ErrUpstreamUnavailable, ctx.Err())
		}
		lastErr = err
	}

	return llm.ModelTurn{}, fmt.Errorf("%w: %d attempts failed, last: %v", ErrUpstreamUnavailable, e.config.RetryAttempts, lastErr)
}

// persist appends the run's messages in one atomic write. A version
// conflict means another writer appended since our load; reload for the
// fresh version and retry once.
func (e *Engine) persist(ctx context.Context, sessionID string, msgs []model.Message, version int64) error {
	err := e.store.Append(ctx, sessionID, msgs, version)
	if err == nil {
		return nil
	}
	if !errors.Is(err, storage.ErrVersionConflict) {
		return fmt.Errorf("%w: persisting transcript: %v", ErrInternalFault, err)
	}

	e.log.Warn().Str("session", sessionID).Msg("version conflict on append, reloading")

	_, fresh, err := e.store.Load(ctx, sessionID)
	if err != nil {
		return fmt.Errorf("%w: reloading after conflict: %v", ErrInternalFault, err)
	}
	if err := e.store.Append(ctx, sessionID, msgs, fresh); err != nil {
		return fmt.Errorf("%w: persisting transcript after reload: %v", ErrInternalFault, err)
	}
	return nil
}

// renderTranscript trims the model's view of the transcript to the history
// limit. The trimmed view always starts at a user message so tool pairing
// stays intact.
func (e *Engine) renderTranscript(transcript []model.Message) []model.Message {
	limit := e.config.HistoryLimit
	if limit <= 0 || len(transcript) <= limit {
		return transcript
	}

	start := len(transcript) - limit
	for i := start; i < len(transcript); i++ {
		if transcript[i].Role == model.RoleUser {
			return transcript[i:]
		}
	}

	// No user message inside the window; widen it backward to the nearest
	// one instead of sending an empty view.
	for start > 0 && transcript[start].Role != model.RoleUser {
		start--
	}
	return transcript[start:]
}

// backoffDelay computes the delay before retry number attempt+1.
func (e *Engine) backoffDelay(attempt int) time.Duration {
	delay := e.config.RetryBaseBackoff
	for i := 0; i < attempt; i++ {
		delay *= 2
		if delay >= e.config.RetryMaxBackoff {
			return e.config.RetryMaxBackoff
		}
	}
	if delay > e.config.RetryMaxBackoff {
		return e.config.RetryMaxBackoff
	}
	return delay
}

// toolDefinitions renders the registry as model-facing tool definitions.
func (e *Engine) toolDefinitions() []llm.ToolDefinition {
	specs := e.registry.List()
	definitions := make([]llm.ToolDefinition, 0, len(specs))
	for _, spec := range specs {
		definitions = append(definitions, llm.ToolDefinition{
			Name:        spec.Name,
			Description: spec.Description,
			Parameters:  spec.InputSchema(),
		})
	}
	return definitions
}

// sessionLock returns the mutex serializing runs for a session.
func (e *Engine) sessionLock(sessionID string) *sync.Mutex {
	e.mu.Lock()
	defer e.mu.Unlock()

	lock, ok := e.locks[sessionID]
	if !ok {
		lock = &sync.Mutex{}
		e.locks[sessionID] = lock
	}
	return lock
}
