// Package config provides application settings loaded from environment variables.
//
// Settings are created via New() which handles:
// - Environment variable parsing with validation
// - Default value application
//
// Variables follow the nested struct layout: LLM_PROVIDER, AGENT_MAX_ROUNDS,
// STORE_BACKEND, SERVER_ADDR and so on.

package config

import (
	"fmt"
	"time"

	"github.com/kelseyhightower/envconfig"
)

// DefaultSystemPrompt is the receptionist persona used when none is
// configured.
const DefaultSystemPrompt = `You are a friendly spa receptionist at "Serenity Spa".

Your role:
- Help customers learn about our spa services
- Answer questions about prices and duration
- Make recommendations based on their interests
- Be warm, professional, and helpful

Use the tools available to get accurate service information.
Keep responses conversational and concise.`

// Settings holds all application configuration.
type Settings struct {
	LLM     LLMConfig
	Agent   AgentConfig
	Store   StoreConfig
	Catalog CatalogConfig
	Server  ServerConfig
	Log     LogConfig
}

// LLMConfig holds model provider configuration.
type LLMConfig struct {
	Provider    string  `default:"anthropic"`
	Model       string  `default:""`
	MaxTokens   uint32  `split_words:"true" default:"1024"`
	Temperature float32 `default:"0.7"`
}

// AgentConfig holds orchestration loop configuration.
type AgentConfig struct {
	SystemPrompt     string        `split_words:"true" default:""`
	MaxRounds        int           `split_words:"true" default:"8"`
	RetryAttempts    int           `split_words:"true" default:"3"`
	RetryBaseBackoff time.Duration `split_words:"true" default:"500ms"`
	RetryMaxBackoff  time.Duration `split_words:"true" default:"5s"`
	ModelTimeout     time.Duration `split_words:"true" default:"60s"`
	ToolTimeout      time.Duration `split_words:"true" default:"10s"`
	HistoryLimit     int           `split_words:"true" default:"40"`
	FallbackAnswer   string        `split_words:"true" default:""`
}

// StoreConfig selects the conversation store backend.
type StoreConfig struct {
	Backend string `default:"memory"`
	Path    string `default:"concierge.db"`
}

// CatalogConfig selects the service catalog source.
type CatalogConfig struct {
	Backend string `default:"static"`
	Path    string `default:""`
}

// ServerConfig holds HTTP server configuration.
type ServerConfig struct {
	Addr            string        `default:":8080"`
	ReadTimeout     time.Duration `split_words:"true" default:"10s"`
	WriteTimeout    time.Duration `split_words:"true" default:"120s"`
	ShutdownTimeout time.Duration `split_words:"true" default:"10s"`
}

// LogConfig holds logging configuration.
type LogConfig struct {
	Debug  bool `default:"false"`
	Pretty bool `default:"false"`
}

// New loads settings from environment variables.
// Returns an error if a variable contains an invalid value.
func New() (Settings, error) {
	var s Settings
	if err := envconfig.Process("", &s); err != nil {
		return Settings{}, fmt.Errorf("config: %w", err)
	}
	if s.Agent.SystemPrompt == "" {
		s.Agent.SystemPrompt = DefaultSystemPrompt
	}
	return s, nil
}

// MustNew loads settings and panics on invalid values.
// Use this only when configuration errors should be fatal.
func MustNew() Settings {
	s, err := New()
	if err != nil {
		panic(err.Error())
	}
	return s
}
