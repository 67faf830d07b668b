package llm

import "testing"

func TestParseProviderType(t *testing.T) {
	tests := []struct {
		input string
		want  ProviderType
	}{
		{"openai", ProviderOpenAI},
		{"gpt", ProviderOpenAI},
		{"OpenAI", ProviderOpenAI},
		{"anthropic", ProviderAnthropic},
		{"claude", ProviderAnthropic},
		{"deepseek", ProviderDeepSeek},
		{"gemini", ProviderGemini},
		{"google", ProviderGemini},
	}

	for _, tt := range tests {
		got, err := ParseProviderType(tt.input)
		if err != nil {
			t.Errorf("ParseProviderType(%q) failed: %v", tt.input, err)
			continue
		}
		if got != tt.want {
			t.Errorf("ParseProviderType(%q) = %s, want %s", tt.input, got, tt.want)
		}
	}

	if _, err := ParseProviderType("cohere"); err == nil {
		t.Error("expected error for unknown provider")
	}
}

func TestProviderTypeEnvVar(t *testing.T) {
	tests := []struct {
		provider ProviderType
		want     string
	}{
		{ProviderOpenAI, "OPENAI_API_KEY"},
		{ProviderAnthropic, "ANTHROPIC_API_KEY"},
		{ProviderDeepSeek, "DEEPSEEK_API_KEY"},
		{ProviderGemini, "GEMINI_API_KEY"},
	}
	for _, tt := range tests {
		if got := tt.provider.EnvVar(); got != tt.want {
			t.Errorf("%s.EnvVar() = %q, want %q", tt.provider, got, tt.want)
		}
	}
}

func TestProviderTypeDefaultModel(t *testing.T) {
	if got := ProviderAnthropic.DefaultModel(); got != ModelAnthropicClaudeOpus45 {
		t.Errorf("anthropic default = %q", got)
	}
	if got := ProviderOpenAI.DefaultModel(); got != ModelOpenAIGPT52 {
		t.Errorf("openai default = %q", got)
	}
	if got := ProviderDeepSeek.DefaultModel(); got != ModelDeepSeekV32 {
		t.Errorf("deepseek default = %q", got)
	}
	if got := ProviderGemini.DefaultModel(); got != ModelGeminiFlash3 {
		t.Errorf("gemini default = %q", got)
	}
}

func TestBuilderAppliesDefaultModel(t *testing.T) {
	t.Setenv("ANTHROPIC_API_KEY", "test-key")

	provider, err := NewProviderBuilder(ProviderAnthropic).
		MaxTokens(1024).
		Temperature(0.7).
		FromEnv()
	if err != nil {
		t.Fatalf("FromEnv failed: %v", err)
	}
	if provider.Name() != "anthropic" {
		t.Errorf("Name() = %q", provider.Name())
	}
	if provider.Model() != ModelAnthropicClaudeOpus45 {
		t.Errorf("Model() = %q, want default", provider.Model())
	}
}

func TestBuilderCustomModel(t *testing.T) {
	t.Setenv("OPENAI_API_KEY", "test-key")

	provider, err := NewProviderBuilder(ProviderOpenAI).
		Model("gpt-4o-mini").
		MaxTokens(512).
		Temperature(0.2).
		FromEnv()
	if err != nil {
		t.Fatalf("FromEnv failed: %v", err)
	}
	if provider.Model() != "gpt-4o-mini" {
		t.Errorf("Model() = %q", provider.Model())
	}
}

func TestBuilderRequiresMaxTokens(t *testing.T) {
	t.Setenv("ANTHROPIC_API_KEY", "test-key")

	if _, err := NewProviderBuilder(ProviderAnthropic).FromEnv(); err == nil {
		t.Error("expected error when max tokens is unset")
	}
}

func TestFromEnvMissingKey(t *testing.T) {
	t.Setenv("DEEPSEEK_API_KEY", "")

	if _, err := NewProviderBuilder(ProviderDeepSeek).MaxTokens(1024).FromEnv(); err == nil {
		t.Error("expected error when env var is empty")
	}
}
