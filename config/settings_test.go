package config

import (
	"strings"
	"testing"
	"time"
)

func TestNewDefaults(t *testing.T) {
	settings, err := New()
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}

	if settings.LLM.Provider != "anthropic" {
		t.Errorf("LLM.Provider = %q", settings.LLM.Provider)
	}
	if settings.LLM.MaxTokens != 1024 {
		t.Errorf("LLM.MaxTokens = %d", settings.LLM.MaxTokens)
	}
	if settings.Agent.MaxRounds != 8 {
		t.Errorf("Agent.MaxRounds = %d", settings.Agent.MaxRounds)
	}
	if settings.Agent.RetryAttempts != 3 {
		t.Errorf("Agent.RetryAttempts = %d", settings.Agent.RetryAttempts)
	}
	if settings.Agent.RetryBaseBackoff != 500*time.Millisecond {
		t.Errorf("Agent.RetryBaseBackoff = %v", settings.Agent.RetryBaseBackoff)
	}
	if settings.Agent.HistoryLimit != 40 {
		t.Errorf("Agent.HistoryLimit = %d", settings.Agent.HistoryLimit)
	}
	if settings.Store.Backend != "memory" {
		t.Errorf("Store.Backend = %q", settings.Store.Backend)
	}
	if settings.Catalog.Backend != "static" {
		t.Errorf("Catalog.Backend = %q", settings.Catalog.Backend)
	}
	if settings.Server.Addr != ":8080" {
		t.Errorf("Server.Addr = %q", settings.Server.Addr)
	}
}

func TestNewAppliesDefaultSystemPrompt(t *testing.T) {
	settings, err := New()
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}
	if settings.Agent.SystemPrompt != DefaultSystemPrompt {
		t.Errorf("expected default system prompt, got %q", settings.Agent.SystemPrompt)
	}
	if !strings.Contains(settings.Agent.SystemPrompt, "Serenity Spa") {
		t.Errorf("prompt missing spa name: %q", settings.Agent.SystemPrompt)
	}
}

func TestNewOverrides(t *testing.T) {
	t.Setenv("LLM_PROVIDER", "openai")
	t.Setenv("AGENT_MAX_ROUNDS", "3")
	t.Setenv("AGENT_MODEL_TIMEOUT", "30s")
	t.Setenv("AGENT_SYSTEM_PROMPT", "You are terse.")
	t.Setenv("STORE_BACKEND", "sqlite")
	t.Setenv("STORE_PATH", "/tmp/chat.db")

	settings, err := New()
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}
	if settings.LLM.Provider != "openai" {
		t.Errorf("LLM.Provider = %q", settings.LLM.Provider)
	}
	if settings.Agent.MaxRounds != 3 {
		t.Errorf("Agent.MaxRounds = %d", settings.Agent.MaxRounds)
	}
	if settings.Agent.ModelTimeout != 30*time.Second {
		t.Errorf("Agent.ModelTimeout = %v", settings.Agent.ModelTimeout)
	}
	if settings.Agent.SystemPrompt != "You are terse." {
		t.Errorf("configured prompt not honored: %q", settings.Agent.SystemPrompt)
	}
	if settings.Store.Backend != "sqlite" || settings.Store.Path != "/tmp/chat.db" {
		t.Errorf("store config = %+v", settings.Store)
	}
}

func TestNewInvalidValue(t *testing.T) {
	t.Setenv("AGENT_MAX_ROUNDS", "not-a-number")

	if _, err := New(); err == nil {
		t.Error("expected error for invalid AGENT_MAX_ROUNDS")
	}
}
